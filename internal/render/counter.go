package render

import "github.com/san-kum/backdrop/internal/geom"

// Counter is a surface that draws nothing and counts primitives since the
// last Clear. Sweeps mount scenes on it to measure the simulation alone.
type Counter struct {
	Circles, Gradients, Lines int

	vp geom.Viewport
}

func NewCounter(vp geom.Viewport) *Counter { return &Counter{vp: vp} }

func (c *Counter) Size() geom.Viewport { return c.vp }

func (c *Counter) Resize(vp geom.Viewport) {
	c.vp = vp
	c.Clear()
}

func (c *Counter) Clear() { c.Circles, c.Gradients, c.Lines = 0, 0, 0 }

func (c *Counter) FillCircle(geom.Vec2, float64, RGBA) { c.Circles++ }

func (c *Counter) RadialGradient(geom.Vec2, float64, float64, []Stop, float64) { c.Gradients++ }

func (c *Counter) Line(geom.Vec2, geom.Vec2, float64, RGBA) { c.Lines++ }
