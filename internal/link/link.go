// Package link computes the proximity mesh drawn between nearby particles.
// It owns no state: every call is a fresh O(N^2) pass over the positions it
// is given.
package link

import (
	"github.com/san-kum/backdrop/internal/field"
	"github.com/san-kum/backdrop/internal/geom"
)

const DefaultRadius = 80.0

// Segment connects particles I and J (I < J).
type Segment struct {
	A, B    geom.Vec2
	I, J    int
	Opacity float64 // (radius - d) / radius, in (0, 1]
}

// Links returns a segment for every pair closer than radius. A pair at
// exactly radius is not linked.
func Links(ps []field.Particle, radius float64) []Segment {
	var out []Segment
	Each(ps, radius, func(s Segment) {
		out = append(out, s)
	})
	return out
}

// Each calls fn for every linked pair without building a slice.
func Each(ps []field.Particle, radius float64, fn func(Segment)) {
	if radius <= 0 {
		return
	}
	for i := 0; i < len(ps); i++ {
		for j := i + 1; j < len(ps); j++ {
			d := ps[i].Pos.Dist(ps[j].Pos)
			if d < radius {
				fn(Segment{
					A:       ps[i].Pos,
					B:       ps[j].Pos,
					I:       i,
					J:       j,
					Opacity: (radius - d) / radius,
				})
			}
		}
	}
}

func Count(ps []field.Particle, radius float64) int {
	n := 0
	Each(ps, radius, func(Segment) { n++ })
	return n
}
