package geom

import "math"

type Vec2 struct {
	X, Y float64
}

func V(x, y float64) Vec2 { return Vec2{X: x, Y: y} }

func (v Vec2) Add(o Vec2) Vec2 { return Vec2{v.X + o.X, v.Y + o.Y} }

func (v Vec2) Sub(o Vec2) Vec2 { return Vec2{v.X - o.X, v.Y - o.Y} }

func (v Vec2) Scale(f float64) Vec2 { return Vec2{v.X * f, v.Y * f} }

func (v Vec2) Len() float64 { return math.Sqrt(v.X*v.X + v.Y*v.Y) }

// Dist returns the Euclidean distance between v and o.
func (v Vec2) Dist(o Vec2) float64 { return o.Sub(v).Len() }

func (v Vec2) IsValid() bool {
	return !math.IsNaN(v.X) && !math.IsNaN(v.Y) && !math.IsInf(v.X, 0) && !math.IsInf(v.Y, 0)
}

// Viewport is the pixel size of a drawing surface.
type Viewport struct {
	W, H int
}

func (vp Viewport) Area() int {
	if vp.W <= 0 || vp.H <= 0 {
		return 0
	}
	return vp.W * vp.H
}

func (vp Viewport) Empty() bool { return vp.Area() == 0 }

// Contains reports whether p lies in [0,W]x[0,H].
func (vp Viewport) Contains(p Vec2) bool {
	return p.X >= 0 && p.X <= float64(vp.W) && p.Y >= 0 && p.Y <= float64(vp.H)
}
