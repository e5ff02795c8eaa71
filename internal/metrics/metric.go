package metrics

import (
	"github.com/san-kum/backdrop/internal/field"
	"github.com/san-kum/backdrop/internal/trail"
)

// Frame is what a metric observes once per frame.
type Frame struct {
	Field *field.Field
	Trail *trail.Emitter
}

type Metric interface {
	Name() string
	Observe(f Frame)
	Value() float64
	Reset()
}

// KineticEnergy returns sum(|v|^2 / 2) over ps.
func KineticEnergy(ps []field.Particle) float64 {
	e := 0.0
	for _, p := range ps {
		e += 0.5 * (p.Vel.X*p.Vel.X + p.Vel.Y*p.Vel.Y)
	}
	return e
}

// MeanDisplacement returns the average distance of ps from their origins.
func MeanDisplacement(ps []field.Particle) float64 {
	if len(ps) == 0 {
		return 0
	}
	sum := 0.0
	for _, p := range ps {
		sum += p.Pos.Dist(p.Origin)
	}
	return sum / float64(len(ps))
}
