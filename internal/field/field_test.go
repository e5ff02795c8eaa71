package field

import (
	"math"
	"math/rand"
	"testing"

	"github.com/san-kum/backdrop/internal/geom"
)

// farPointer keeps the pointer outside every interaction radius.
var farPointer = geom.V(-1e6, -1e6)

func TestCount(t *testing.T) {
	tests := []struct {
		name     string
		vp       geom.Viewport
		expected int
	}{
		{"1500x900", geom.Viewport{W: 1500, H: 900}, 90},
		{"1920x1080", geom.Viewport{W: 1920, H: 1080}, 138},
		{"below one particle", geom.Viewport{W: 100, H: 100}, 0},
		{"exact multiple", geom.Viewport{W: 150, H: 100}, 1},
		{"empty", geom.Viewport{}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Count(tt.vp, DefaultDensity); got != tt.expected {
				t.Errorf("expected %d particles, got %d", tt.expected, got)
			}
		})
	}
}

func TestCountMatchesFloorFormula(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	for i := 0; i < 500; i++ {
		vp := geom.Viewport{W: rng.Intn(4000), H: rng.Intn(3000)}
		want := int(math.Floor(float64(vp.W*vp.H) / 15000))
		if got := Count(vp, DefaultDensity); got != want {
			t.Fatalf("%+v: expected %d, got %d", vp, want, got)
		}
	}
}

func TestSpawnRanges(t *testing.T) {
	vp := geom.Viewport{W: 1500, H: 900}
	f := Spawn(vp, DefaultParams(), rand.New(rand.NewSource(42)))

	if f.Len() != 90 {
		t.Fatalf("expected 90 particles, got %d", f.Len())
	}
	for i, p := range f.Particles {
		if !vp.Contains(p.Pos) {
			t.Errorf("particle %d spawned outside viewport: %+v", i, p.Pos)
		}
		if p.Origin != p.Pos {
			t.Errorf("particle %d origin %+v differs from spawn position %+v", i, p.Origin, p.Pos)
		}
		if math.Abs(p.Vel.X) > DefaultSpawnSpeed || math.Abs(p.Vel.Y) > DefaultSpawnSpeed {
			t.Errorf("particle %d spawn velocity too large: %+v", i, p.Vel)
		}
		if p.Radius < DefaultMinRadius || p.Radius > DefaultMaxRadius {
			t.Errorf("particle %d radius %f out of range", i, p.Radius)
		}
		if p.Opacity < DefaultMinOpacity || p.Opacity > DefaultMaxOpacity {
			t.Errorf("particle %d opacity %f out of range", i, p.Opacity)
		}
	}
}

func TestRebuildRespawns(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	f := Spawn(geom.Viewport{W: 1500, H: 900}, DefaultParams(), rng)
	f.Rebuild(geom.Viewport{W: 600, H: 500}, rng)

	if f.Len() != 20 {
		t.Fatalf("expected 20 particles after resize, got %d", f.Len())
	}
	if f.Viewport.W != 600 || f.Viewport.H != 500 {
		t.Errorf("viewport not updated: %+v", f.Viewport)
	}
	for _, p := range f.Particles {
		if !f.Viewport.Contains(p.Origin) {
			t.Errorf("origin %+v outside new viewport", p.Origin)
		}
	}
}

func TestReflectionKeepsParticlesInBounds(t *testing.T) {
	// Reflection does not clamp, so allow the sub-pixel overshoot the next
	// tick corrects.
	const slack = 1.0

	rng := rand.New(rand.NewSource(99))
	vp := geom.Viewport{W: 1500, H: 900}
	f := Spawn(vp, DefaultParams(), rng)

	pointer := geom.V(0, 0)
	for tick := 0; tick < 3000; tick++ {
		if tick%5 == 0 {
			pointer = geom.V(rng.Float64()*1500, rng.Float64()*900)
		}
		f.Step(pointer)
		for i, p := range f.Particles {
			if p.Pos.X < -slack || p.Pos.X > float64(vp.W)+slack ||
				p.Pos.Y < -slack || p.Pos.Y > float64(vp.H)+slack {
				t.Fatalf("tick %d: particle %d escaped to %+v", tick, i, p.Pos)
			}
		}
	}
}

func TestReflectionInvertsWithoutClamping(t *testing.T) {
	vp := geom.Viewport{W: 100, H: 100}
	p := Particle{
		Pos:    geom.V(0.1, 50),
		Vel:    geom.V(-0.5, 0),
		Origin: geom.V(0.1, 50),
	}

	got := UpdateParticle(p, farPointer, vp, DefaultParams())

	if math.Abs(got.Pos.X-(-0.4)) > 1e-12 {
		t.Errorf("expected unclamped x -0.4, got %f", got.Pos.X)
	}
	if math.Abs(got.Vel.X-0.495) > 1e-12 {
		t.Errorf("expected reflected vx 0.495, got %f", got.Vel.X)
	}
	if got.Vel.Y != 0 {
		t.Errorf("vy should be untouched, got %f", got.Vel.Y)
	}
}

func TestPointerAttraction(t *testing.T) {
	vp := geom.Viewport{W: 1000, H: 1000}
	p := Particle{Pos: geom.V(500, 500), Origin: geom.V(500, 500)}

	got := UpdateParticle(p, geom.V(550, 500), vp, DefaultParams())

	// force (100-50)/100 * 0.01 along +x, then damped
	want := 0.5 * 0.01 * 0.99
	if math.Abs(got.Vel.X-want) > 1e-12 {
		t.Errorf("expected vx %g, got %g", want, got.Vel.X)
	}
	if got.Vel.Y != 0 {
		t.Errorf("expected vy 0, got %g", got.Vel.Y)
	}

	outside := UpdateParticle(p, geom.V(600, 500), vp, DefaultParams())
	if outside.Vel.X != 0 {
		t.Errorf("pointer at exactly the interaction radius should not attract, got vx %g", outside.Vel.X)
	}
}

func TestPointerOnParticleIsFinite(t *testing.T) {
	vp := geom.Viewport{W: 100, H: 100}
	p := Particle{Pos: geom.V(50, 50), Origin: geom.V(50, 50)}

	got := UpdateParticle(p, geom.V(50, 50), vp, DefaultParams())
	if !got.Pos.IsValid() || !got.Vel.IsValid() {
		t.Fatalf("update produced invalid state: %+v", got)
	}
}

func TestSpringAndDamping(t *testing.T) {
	vp := geom.Viewport{W: 1000, H: 1000}
	p := Particle{Pos: geom.V(400, 500), Origin: geom.V(500, 500)}

	got := UpdateParticle(p, farPointer, vp, DefaultParams())
	// v = 100*0.001 = 0.1; x = 400.1; v *= 0.99
	if math.Abs(got.Pos.X-400.1) > 1e-9 {
		t.Errorf("expected x 400.1, got %f", got.Pos.X)
	}
	if math.Abs(got.Vel.X-0.099) > 1e-12 {
		t.Errorf("expected vx 0.099, got %f", got.Vel.X)
	}

	// absent forcing, velocity decays toward zero
	still := Particle{Pos: geom.V(500, 500), Origin: geom.V(500, 500), Vel: geom.V(0.2, -0.2)}
	for i := 0; i < 2000; i++ {
		still = UpdateParticle(still, farPointer, vp, DefaultParams())
	}
	if still.Vel.Len() > 1e-3 {
		t.Errorf("velocity did not settle: %+v", still.Vel)
	}
}

func TestUpdateParticleIsPure(t *testing.T) {
	vp := geom.Viewport{W: 100, H: 100}
	p := Particle{Pos: geom.V(10, 10), Vel: geom.V(0.1, 0.1), Origin: geom.V(12, 12)}
	before := p
	_ = UpdateParticle(p, geom.V(20, 20), vp, DefaultParams())
	if p != before {
		t.Error("UpdateParticle mutated its argument")
	}
}

func TestParamsValidate(t *testing.T) {
	if err := DefaultParams().Validate(); err != nil {
		t.Fatalf("default params invalid: %v", err)
	}

	tests := []struct {
		name   string
		mutate func(*Params)
	}{
		{"zero density", func(p *Params) { p.Density = 0 }},
		{"damping above one", func(p *Params) { p.Damping = 1.5 }},
		{"negative speed", func(p *Params) { p.SpawnSpeed = -1 }},
		{"inverted radius", func(p *Params) { p.MinRadius, p.MaxRadius = 3, 1 }},
		{"opacity above one", func(p *Params) { p.MaxOpacity = 2 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := DefaultParams()
			tt.mutate(&p)
			if err := p.Validate(); err == nil {
				t.Error("expected error, got nil")
			}
		})
	}
}
