package scheduler_test

import (
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/backdrop/internal/geom"
	"github.com/san-kum/backdrop/internal/scheduler"
)

// spyLoop records what the scheduler delivers to a loop.
type spyLoop struct {
	resizes  []geom.Viewport
	pointers []geom.Vec2
	touches  []geom.Vec2
	frames   []time.Time
}

func (p *spyLoop) Resize(vp geom.Viewport) { p.resizes = append(p.resizes, vp) }
func (p *spyLoop) Pointer(v geom.Vec2)     { p.pointers = append(p.pointers, v) }
func (p *spyLoop) Touch(v geom.Vec2)       { p.touches = append(p.touches, v) }
func (p *spyLoop) Frame(now time.Time)     { p.frames = append(p.frames, now) }

var _ = Describe("Scheduler", func() {
	var (
		host  *scheduler.ManualHost
		loop  *spyLoop
		sched *scheduler.Scheduler
	)

	BeforeEach(func() {
		host = scheduler.NewManualHost(geom.Viewport{W: 1500, H: 900})
		loop = &spyLoop{}
		sched = scheduler.New("test", host, loop, nil)
	})

	Describe("Start", func() {
		It("sizes the loop, subscribes and requests a frame", func() {
			Expect(sched.Start()).To(Succeed())
			Expect(sched.State()).To(Equal(scheduler.Running))
			Expect(loop.resizes).To(ConsistOf(geom.Viewport{W: 1500, H: 900}))
			Expect(host.Listeners()).To(Equal(3))
			Expect(host.ListenersFor(scheduler.PointerMove)).To(Equal(1))
			Expect(host.ListenersFor(scheduler.TouchMove)).To(Equal(1))
			Expect(host.ListenersFor(scheduler.Resize)).To(Equal(1))
			Expect(host.PendingFrames()).To(Equal(1))
		})

		It("refuses a missing host", func() {
			s := scheduler.New("orphan", nil, loop, nil)
			Expect(s.Start()).To(MatchError(scheduler.ErrNoHost))
			Expect(s.State()).To(Equal(scheduler.Unmounted))
			Expect(loop.resizes).To(BeEmpty())
		})

		It("refuses an empty surface without touching the host", func() {
			empty := scheduler.NewManualHost(geom.Viewport{})
			s := scheduler.New("empty", empty, loop, nil)
			Expect(s.Start()).To(MatchError(scheduler.ErrNoSurface))
			Expect(empty.Listeners()).To(BeZero())
			Expect(empty.PendingFrames()).To(BeZero())
		})

		It("cannot start twice", func() {
			Expect(sched.Start()).To(Succeed())
			Expect(sched.Start()).To(MatchError(scheduler.ErrRunning))
			Expect(host.Listeners()).To(Equal(3))
		})
	})

	Describe("frames", func() {
		BeforeEach(func() {
			Expect(sched.Start()).To(Succeed())
		})

		It("runs one frame per tick and keeps exactly one pending", func() {
			Expect(host.Tick(10)).To(Equal(10))
			Expect(loop.frames).To(HaveLen(10))
			Expect(sched.Frames()).To(BeEquivalentTo(10))
			Expect(host.PendingFrames()).To(Equal(1))
		})

		It("passes the host clock to the loop", func() {
			host.Tick(2)
			Expect(loop.frames[1].Sub(loop.frames[0])).To(Equal(scheduler.DefaultFrameInterval))
		})

		It("forwards input to the loop", func() {
			host.Move(100, 100)
			host.Touch(5, 6)
			host.Resize(geom.Viewport{W: 640, H: 480})

			Expect(loop.pointers).To(ConsistOf(geom.V(100, 100)))
			Expect(loop.touches).To(ConsistOf(geom.V(5, 6)))
			Expect(loop.resizes).To(HaveLen(2))
			Expect(loop.resizes[1]).To(Equal(geom.Viewport{W: 640, H: 480}))
		})
	})

	Describe("Stop", func() {
		It("releases every listener and the pending frame", func() {
			Expect(sched.Start()).To(Succeed())
			host.Tick(3)

			sched.Stop()

			Expect(sched.State()).To(Equal(scheduler.Stopped))
			Expect(host.Listeners()).To(BeZero())
			Expect(host.PendingFrames()).To(BeZero())

			host.Move(1, 1)
			Expect(host.Tick(5)).To(BeZero())
			Expect(loop.frames).To(HaveLen(3))
			Expect(loop.pointers).To(BeEmpty())
		})

		It("is terminal", func() {
			Expect(sched.Start()).To(Succeed())
			sched.Stop()
			sched.Stop()
			Expect(sched.Start()).To(MatchError(scheduler.ErrStopped))
			Expect(host.Listeners()).To(BeZero())
		})

		It("leaves other layers on the same host alone", func() {
			other := &spyLoop{}
			second := scheduler.New("other", host, other, nil)
			Expect(sched.Start()).To(Succeed())
			Expect(second.Start()).To(Succeed())
			Expect(host.Listeners()).To(Equal(6))

			sched.Stop()
			Expect(host.Listeners()).To(Equal(3))
			Expect(host.PendingFrames()).To(Equal(1))

			host.Tick(4)
			Expect(other.frames).To(HaveLen(4))
		})
	})
})

var _ = Describe("Dispatcher", func() {
	It("skips listeners removed during dispatch", func() {
		var d scheduler.Dispatcher
		calls := 0
		var second scheduler.ListenerID
		d.AddListener(scheduler.PointerMove, func(scheduler.Event) {
			calls++
			d.RemoveListener(second)
		})
		second = d.AddListener(scheduler.PointerMove, func(scheduler.Event) { calls++ })

		d.Dispatch(scheduler.Event{Kind: scheduler.PointerMove})
		Expect(calls).To(Equal(1))
		Expect(d.Listeners()).To(Equal(1))
	})

	It("defers frames requested inside a frame", func() {
		var d scheduler.Dispatcher
		runs := 0
		var again scheduler.FrameFunc
		again = func(time.Time) {
			runs++
			d.RequestFrame(again)
		}
		d.RequestFrame(again)

		Expect(d.RunFrame(time.Now())).To(Equal(1))
		Expect(d.RunFrame(time.Now())).To(Equal(1))
		Expect(runs).To(Equal(2))
	})

	It("cancels a pending frame", func() {
		var d scheduler.Dispatcher
		id := d.RequestFrame(func(time.Time) { Fail("canceled frame ran") })
		d.CancelFrame(id)
		Expect(d.RunFrame(time.Now())).To(BeZero())
	})

	It("names event kinds", func() {
		Expect(scheduler.PointerMove.String()).To(Equal("pointermove"))
		Expect(scheduler.Resize.String()).To(Equal("resize"))
	})
})
