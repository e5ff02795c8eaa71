package render

import (
	"image"
	"math"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/san-kum/backdrop/internal/geom"
)

// Raster is a transparent RGBA buffer. Primitives are anti-aliased by
// distance-based coverage and blended source-over.
type Raster struct {
	img *image.RGBA
}

func NewRaster(vp geom.Viewport) *Raster {
	r := &Raster{}
	r.Resize(vp)
	return r
}

func (r *Raster) Image() *image.RGBA { return r.img }

func (r *Raster) Size() geom.Viewport {
	b := r.img.Bounds()
	return geom.Viewport{W: b.Dx(), H: b.Dy()}
}

func (r *Raster) Resize(vp geom.Viewport) {
	w, h := max(vp.W, 0), max(vp.H, 0)
	r.img = image.NewRGBA(image.Rect(0, 0, w, h))
}

func (r *Raster) Clear() {
	clear(r.img.Pix)
}

func (r *Raster) FillCircle(center geom.Vec2, radius float64, c RGBA) {
	if radius <= 0 || c.A <= 0 {
		return
	}
	r.eachInCircle(center, radius, func(x, y int, d, coverage float64) {
		r.blend(x, y, c.C, c.A*coverage)
	})
}

func (r *Raster) RadialGradient(center geom.Vec2, radius, gradientR float64, stops []Stop, alpha float64) {
	if radius <= 0 || gradientR <= 0 || alpha <= 0 {
		return
	}
	r.eachInCircle(center, radius, func(x, y int, d, coverage float64) {
		s := Sample(stops, d/gradientR)
		r.blend(x, y, s.C, s.A*alpha*coverage)
	})
}

func (r *Raster) Line(a, b geom.Vec2, width float64, c RGBA) {
	if c.A <= 0 || width <= 0 {
		return
	}
	half := width / 2
	x0 := int(math.Floor(math.Min(a.X, b.X) - half - 1))
	x1 := int(math.Ceil(math.Max(a.X, b.X) + half + 1))
	y0 := int(math.Floor(math.Min(a.Y, b.Y) - half - 1))
	y1 := int(math.Ceil(math.Max(a.Y, b.Y) + half + 1))
	x0, y0, x1, y1 = r.clip(x0, y0, x1, y1)

	// thin lines lose alpha instead of disappearing
	strength := math.Min(width, 1)
	for y := y0; y < y1; y++ {
		for x := x0; x < x1; x++ {
			p := geom.V(float64(x)+0.5, float64(y)+0.5)
			cov := clamp01(math.Max(half, 0.5) + 0.5 - segmentDist(p, a, b))
			if cov > 0 {
				r.blend(x, y, c.C, c.A*cov*strength)
			}
		}
	}
}

// At returns the straight-alpha color at (x, y).
func (r *Raster) At(x, y int) RGBA {
	if !image.Pt(x, y).In(r.img.Rect) {
		return RGBA{}
	}
	i := r.img.PixOffset(x, y)
	p := r.img.Pix[i : i+4 : i+4]
	if p[3] == 0 {
		return RGBA{}
	}
	a := float64(p[3]) / 255
	return RGBA{
		C: colorful.Color{R: float64(p[0]) / 255 / a, G: float64(p[1]) / 255 / a, B: float64(p[2]) / 255 / a},
		A: a,
	}
}

func (r *Raster) eachInCircle(center geom.Vec2, radius float64, fn func(x, y int, d, coverage float64)) {
	x0 := int(math.Floor(center.X - radius - 1))
	x1 := int(math.Ceil(center.X + radius + 1))
	y0 := int(math.Floor(center.Y - radius - 1))
	y1 := int(math.Ceil(center.Y + radius + 1))
	x0, y0, x1, y1 = r.clip(x0, y0, x1, y1)

	for y := y0; y < y1; y++ {
		for x := x0; x < x1; x++ {
			d := geom.V(float64(x)+0.5, float64(y)+0.5).Dist(center)
			cov := clamp01(radius + 0.5 - d)
			if cov > 0 {
				fn(x, y, d, cov)
			}
		}
	}
}

func (r *Raster) clip(x0, y0, x1, y1 int) (int, int, int, int) {
	b := r.img.Rect
	return max(x0, b.Min.X), max(y0, b.Min.Y), min(x1, b.Max.X), min(y1, b.Max.Y)
}

// blend composites a straight-alpha color over the premultiplied pixel.
func (r *Raster) blend(x, y int, c colorful.Color, a float64) {
	a = clamp01(a)
	if a == 0 {
		return
	}
	i := r.img.PixOffset(x, y)
	p := r.img.Pix[i : i+4 : i+4]
	inv := 1 - a
	p[0] = channel(c.R*a + float64(p[0])/255*inv)
	p[1] = channel(c.G*a + float64(p[1])/255*inv)
	p[2] = channel(c.B*a + float64(p[2])/255*inv)
	p[3] = channel(a + float64(p[3])/255*inv)
}

func channel(v float64) uint8 {
	return uint8(clamp01(v)*255 + 0.5)
}

func segmentDist(p, a, b geom.Vec2) float64 {
	ab := b.Sub(a)
	l2 := ab.X*ab.X + ab.Y*ab.Y
	if l2 == 0 {
		return p.Dist(a)
	}
	t := ((p.X-a.X)*ab.X + (p.Y-a.Y)*ab.Y) / l2
	t = clamp01(t)
	return p.Dist(a.Add(ab.Scale(t)))
}
