// Package pointer synthesizes pointer motion for runs without a mouse:
// headless renders, benchmarks and the live view's autopilot.
package pointer

import (
	opensimplex "github.com/ojrac/opensimplex-go"
	"github.com/san-kum/backdrop/internal/geom"
)

const DefaultSpeed = 0.004

// Wander traces a smooth path over the viewport. Each axis follows its own
// normalized OpenSimplex channel, so the path never leaves the viewport.
type Wander struct {
	noise opensimplex.Noise
	vp    geom.Viewport
	t     float64
	Speed float64
}

func NewWander(seed int64, vp geom.Viewport) *Wander {
	return &Wander{
		noise: opensimplex.NewNormalized(seed),
		vp:    vp,
		Speed: DefaultSpeed,
	}
}

func (w *Wander) Resize(vp geom.Viewport) { w.vp = vp }

// At returns the position at path time t without advancing.
func (w *Wander) At(t float64) geom.Vec2 {
	x := w.noise.Eval2(t, 0.5) * float64(w.vp.W)
	y := w.noise.Eval2(t, 1000.5) * float64(w.vp.H)
	return geom.V(x, y)
}

// Next advances the path by one step and returns the new position.
func (w *Wander) Next() geom.Vec2 {
	w.t += w.Speed
	return w.At(w.t)
}
