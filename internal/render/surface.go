package render

import "github.com/san-kum/backdrop/internal/geom"

// Surface is a 2D drawing target sized in pixels.
type Surface interface {
	Size() geom.Viewport
	Resize(vp geom.Viewport)
	Clear()
	FillCircle(center geom.Vec2, r float64, c RGBA)
	// RadialGradient fills a circle of radius r with stops spread over
	// gradientR, then scales the result by alpha.
	RadialGradient(center geom.Vec2, r, gradientR float64, stops []Stop, alpha float64)
	Line(a, b geom.Vec2, width float64, c RGBA)
}
