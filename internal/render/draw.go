package render

import (
	"github.com/san-kum/backdrop/internal/field"
	"github.com/san-kum/backdrop/internal/link"
	"github.com/san-kum/backdrop/internal/trail"
)

// DrawField repaints the particle layer: clear, particles, proximity links.
func DrawField(s Surface, f *field.Field, linkRadius float64, pal Palette) {
	s.Clear()
	DrawParticles(s, f.Particles, pal)
	DrawLinks(s, f.Particles, linkRadius, pal)
}

func DrawParticles(s Surface, ps []field.Particle, pal Palette) {
	for _, p := range ps {
		s.FillCircle(p.Pos, p.Radius, RGBA{C: pal.Particle, A: p.Opacity * pal.ParticleAlpha})
	}
}

func DrawLinks(s Surface, ps []field.Particle, radius float64, pal Palette) {
	link.Each(ps, radius, func(seg link.Segment) {
		s.Line(seg.A, seg.B, pal.LinkWidth, RGBA{C: pal.Link, A: seg.Opacity * pal.LinkAlpha})
	})
}

// DrawTrail repaints the trail layer. Radius and opacity shrink with life.
func DrawTrail(s Surface, pts []trail.Point, pal Palette) {
	s.Clear()
	for _, p := range pts {
		if !p.Alive() {
			continue
		}
		s.RadialGradient(p.Pos, p.Size*p.Life, p.Size, pal.Trail, p.Life*pal.TrailAlpha)
	}
}
