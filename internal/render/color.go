package render

import (
	"math"

	"github.com/lucasb-eyer/go-colorful"
)

// RGBA is a color with straight (non-premultiplied) alpha in [0,1].
type RGBA struct {
	C colorful.Color
	A float64
}

func RGB(r, g, b uint8) colorful.Color {
	return colorful.Color{R: float64(r) / 255, G: float64(g) / 255, B: float64(b) / 255}
}

// Scale multiplies the alpha, like canvas globalAlpha.
func (c RGBA) Scale(f float64) RGBA { return RGBA{C: c.C, A: clamp01(c.A * f)} }

// Stop is a radial gradient color stop; Offset is in [0,1].
type Stop struct {
	Offset float64
	Color  RGBA
}

// Sample interpolates stops at t. Stops must be sorted by offset.
func Sample(stops []Stop, t float64) RGBA {
	if len(stops) == 0 {
		return RGBA{}
	}
	if t <= stops[0].Offset {
		return stops[0].Color
	}
	for i := 1; i < len(stops); i++ {
		a, b := stops[i-1], stops[i]
		if t <= b.Offset {
			span := b.Offset - a.Offset
			if span <= 0 {
				return b.Color
			}
			f := (t - a.Offset) / span
			return RGBA{
				C: a.Color.C.BlendRgb(b.Color.C, f),
				A: a.Color.A + (b.Color.A-a.Color.A)*f,
			}
		}
	}
	return stops[len(stops)-1].Color
}

func clamp01(v float64) float64 {
	return math.Max(0, math.Min(1, v))
}
