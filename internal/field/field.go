package field

import (
	"math"

	"github.com/san-kum/backdrop/internal/geom"
)

// Rand is the random source used at spawn. *math/rand.Rand satisfies it.
type Rand interface {
	Float64() float64
}

type Particle struct {
	Pos     geom.Vec2
	Vel     geom.Vec2
	Origin  geom.Vec2 // spawn position, fixed for the particle's lifetime
	Radius  float64
	Opacity float64
}

type Field struct {
	Particles []Particle
	Viewport  geom.Viewport
	Params    Params
}

// Count returns floor(W*H/density); empty viewports hold no particles.
func Count(vp geom.Viewport, density float64) int {
	if density <= 0 || vp.Empty() {
		return 0
	}
	return int(math.Floor(float64(vp.Area()) / density))
}

// Spawn builds a field sized to vp.
func Spawn(vp geom.Viewport, params Params, rng Rand) *Field {
	f := &Field{Params: params}
	f.Rebuild(vp, rng)
	return f
}

// Rebuild discards every particle and respawns the field for vp. Origins of
// the old field are meaningless once the viewport changes.
func (f *Field) Rebuild(vp geom.Viewport, rng Rand) {
	n := Count(vp, f.Params.Density)
	f.Viewport = vp
	f.Particles = make([]Particle, n)
	for i := range f.Particles {
		f.Particles[i] = NewParticle(vp, f.Params, rng)
	}
}

func NewParticle(vp geom.Viewport, params Params, rng Rand) Particle {
	pos := geom.V(rng.Float64()*float64(vp.W), rng.Float64()*float64(vp.H))
	return Particle{
		Pos:     pos,
		Vel:     geom.V(uniform(rng, -params.SpawnSpeed, params.SpawnSpeed), uniform(rng, -params.SpawnSpeed, params.SpawnSpeed)),
		Origin:  pos,
		Radius:  uniform(rng, params.MinRadius, params.MaxRadius),
		Opacity: uniform(rng, params.MinOpacity, params.MaxOpacity),
	}
}

// UpdateParticle advances p by one frame:
// pointer attraction, spring toward origin, integrate, damp, reflect.
func UpdateParticle(p Particle, pointer geom.Vec2, vp geom.Viewport, params Params) Particle {
	d := pointer.Sub(p.Pos)
	dist := d.Len()
	if dist > 0 && dist < params.InteractionRadius {
		force := (params.InteractionRadius - dist) / params.InteractionRadius
		p.Vel = p.Vel.Add(d.Scale(force * params.Attraction / dist))
	}

	p.Vel = p.Vel.Add(p.Origin.Sub(p.Pos).Scale(params.Spring))
	p.Pos = p.Pos.Add(p.Vel)
	p.Vel = p.Vel.Scale(params.Damping)

	if p.Pos.X < 0 || p.Pos.X > float64(vp.W) {
		p.Vel.X = -p.Vel.X
	}
	if p.Pos.Y < 0 || p.Pos.Y > float64(vp.H) {
		p.Vel.Y = -p.Vel.Y
	}
	return p
}

// Step advances every particle by one frame toward the given pointer.
func (f *Field) Step(pointer geom.Vec2) {
	for i := range f.Particles {
		f.Particles[i] = UpdateParticle(f.Particles[i], pointer, f.Viewport, f.Params)
	}
}

func (f *Field) Len() int { return len(f.Particles) }

func uniform(rng Rand, lo, hi float64) float64 {
	return lo + rng.Float64()*(hi-lo)
}
