package scene_test

import (
	"image"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/backdrop/internal/geom"
	"github.com/san-kum/backdrop/internal/render"
	"github.com/san-kum/backdrop/internal/scene"
	"github.com/san-kum/backdrop/internal/scheduler"
)

var _ = Describe("Scene", func() {
	var (
		vp   geom.Viewport
		host *scheduler.ManualHost
		sc   *scene.Scene
	)

	BeforeEach(func() {
		vp = geom.Viewport{W: 1500, H: 900}
		host = scheduler.NewManualHost(vp)
		opts := scene.DefaultOptions()
		opts.Seed = 7
		sc = scene.New(host, render.NewRaster(geom.Viewport{}), render.NewRaster(geom.Viewport{}), opts)
	})

	Describe("Mount", func() {
		It("spawns the field for the host viewport", func() {
			sc.Mount()
			Expect(sc.Running()).To(BeTrue())
			Expect(sc.Background.Field().Len()).To(Equal(90))
			Expect(sc.Background.Surface().Size()).To(Equal(vp))
			Expect(sc.Cursor.Surface().Size()).To(Equal(vp))
		})

		It("registers listeners and one frame per layer", func() {
			sc.Mount()
			Expect(host.Listeners()).To(Equal(6))
			Expect(host.PendingFrames()).To(Equal(2))
		})

		It("starts the pointer at the origin", func() {
			sc.Mount()
			Expect(sc.Background.PointerPos()).To(Equal(geom.Vec2{}))
		})

		It("does nothing when the viewport is empty", func() {
			empty := scheduler.NewManualHost(geom.Viewport{})
			s := scene.New(empty, render.NewRaster(geom.Viewport{}), render.NewRaster(geom.Viewport{}), scene.DefaultOptions())
			s.Mount()
			Expect(s.Running()).To(BeFalse())
			Expect(empty.Listeners()).To(BeZero())
			Expect(empty.PendingFrames()).To(BeZero())
		})

		It("does nothing without a host", func() {
			s := scene.New(nil, render.NewRaster(geom.Viewport{}), render.NewRaster(geom.Viewport{}), scene.DefaultOptions())
			s.Mount()
			Expect(s.Running()).To(BeFalse())
		})
	})

	Describe("Unmount", func() {
		It("leaves no listeners and no pending frames", func() {
			sc.Mount()
			host.Tick(10)
			sc.Unmount()
			Expect(sc.Running()).To(BeFalse())
			Expect(host.Listeners()).To(BeZero())
			Expect(host.PendingFrames()).To(BeZero())
		})

		It("is safe to call twice", func() {
			sc.Mount()
			sc.Unmount()
			sc.Unmount()
			Expect(host.Listeners()).To(BeZero())
		})

		It("stops reacting to input", func() {
			sc.Mount()
			sc.Unmount()
			host.Move(10, 10)
			Expect(sc.Cursor.Emitter().Len()).To(BeZero())
			Expect(host.Tick(5)).To(BeZero())
		})
	})

	Describe("trail", func() {
		It("fades a single point from 1 to gone in 50 frames", func() {
			sc.Mount()
			host.Move(300, 200)
			pts := sc.Cursor.Emitter().Points()
			Expect(pts).To(HaveLen(1))
			Expect(pts[0].Life).To(Equal(1.0))

			host.Tick(1)
			Expect(sc.Cursor.Emitter().Points()[0].Life).To(BeNumerically("~", 0.98, 1e-9))

			host.Tick(48)
			Expect(sc.Cursor.Emitter().Len()).To(Equal(1))
			host.Tick(1)
			Expect(sc.Cursor.Emitter().Len()).To(BeZero())
		})

		It("treats touch like pointer movement", func() {
			sc.Mount()
			host.Touch(40, 50)
			Expect(sc.Cursor.Emitter().Len()).To(Equal(1))
			Expect(sc.Background.PointerPos()).To(Equal(geom.V(40, 50)))
		})

		It("caps a burst at fifty points", func() {
			sc.Mount()
			for i := 0; i < 200; i++ {
				host.Move(float64(i), 10)
			}
			pts := sc.Cursor.Emitter().Points()
			Expect(pts).To(HaveLen(50))
			Expect(pts[0].Pos.X).To(Equal(150.0))
		})
	})

	Describe("resize", func() {
		It("respawns the field and resizes both surfaces", func() {
			sc.Mount()
			small := geom.Viewport{W: 300, H: 500}
			host.Resize(small)
			Expect(sc.Background.Field().Len()).To(Equal(10))
			Expect(sc.Background.Surface().Size()).To(Equal(small))
			Expect(sc.Cursor.Surface().Size()).To(Equal(small))
		})

		It("keeps the trail", func() {
			sc.Mount()
			host.Move(5, 5)
			host.Resize(geom.Viewport{W: 300, H: 500})
			Expect(sc.Cursor.Emitter().Len()).To(Equal(1))
		})
	})

	Describe("theme", func() {
		It("changes only the palette", func() {
			sc.Mount()
			host.Tick(3)
			before := append([]geom.Vec2(nil), positions(sc)...)
			sc.SetDark(false)
			Expect(sc.Dark()).To(BeFalse())
			Expect(positions(sc)).To(Equal(before))
		})

		It("paints the light background when composited", func() {
			sc.SetDark(false)
			sc.Mount()
			host.Tick(1)
			img, ok := sc.Composite()
			Expect(ok).To(BeTrue())
			Expect(img.Bounds().Dx()).To(Equal(1500))
			Expect(img.Bounds().Dy()).To(Equal(900))
		})

		It("multiplies the field into the light page", func() {
			sc.SetDark(false)
			sc.Mount()
			host.Tick(1)
			img, ok := sc.Composite()
			Expect(ok).To(BeTrue())
			bg := render.LightPalette.Background
			r, _, _ := bg.RGB255()
			for _, p := range positions(sc) {
				if !(image.Point{X: int(p.X), Y: int(p.Y)}).In(img.Bounds()) {
					continue
				}
				px := img.RGBAAt(int(p.X), int(p.Y))
				Expect(px.R).To(BeNumerically("<=", r))
				Expect(px.A).To(Equal(uint8(255)))
			}
		})
	})
})

func positions(sc *scene.Scene) []geom.Vec2 {
	ps := sc.Background.Field().Particles
	out := make([]geom.Vec2, len(ps))
	for i, p := range ps {
		out[i] = p.Pos
	}
	return out
}
