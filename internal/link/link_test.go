package link

import (
	"math"
	"math/rand"
	"testing"

	"github.com/san-kum/backdrop/internal/field"
	"github.com/san-kum/backdrop/internal/geom"
)

func at(points ...geom.Vec2) []field.Particle {
	ps := make([]field.Particle, len(points))
	for i, p := range points {
		ps[i] = field.Particle{Pos: p, Origin: p}
	}
	return ps
}

func TestBoundaryIsStrict(t *testing.T) {
	tests := []struct {
		name string
		b    geom.Vec2
		want int
	}{
		{"exactly 80", geom.V(80, 0), 0},
		{"just inside", geom.V(79.999, 0), 1},
		{"diagonal 3-4-5 at 80", geom.V(48, 64), 0},
		{"far", geom.V(200, 0), 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Links(at(geom.V(0, 0), tt.b), DefaultRadius)
			if len(got) != tt.want {
				t.Errorf("expected %d links, got %d", tt.want, len(got))
			}
		})
	}
}

func TestOpacity(t *testing.T) {
	segs := Links(at(geom.V(0, 0), geom.V(20, 0)), DefaultRadius)
	if len(segs) != 1 {
		t.Fatalf("expected 1 link, got %d", len(segs))
	}
	if math.Abs(segs[0].Opacity-0.75) > 1e-12 {
		t.Errorf("expected opacity 0.75, got %f", segs[0].Opacity)
	}
	if segs[0].I != 0 || segs[0].J != 1 {
		t.Errorf("unexpected pair (%d,%d)", segs[0].I, segs[0].J)
	}
}

func TestMatchesBruteForce(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	f := field.Spawn(geom.Viewport{W: 800, H: 600}, field.DefaultParams(), rng)

	want := 0
	for i := range f.Particles {
		for j := range f.Particles {
			if i < j && f.Particles[i].Pos.Dist(f.Particles[j].Pos) < DefaultRadius {
				want++
			}
		}
	}

	segs := Links(f.Particles, DefaultRadius)
	if len(segs) != want {
		t.Errorf("expected %d links, got %d", want, len(segs))
	}
	if Count(f.Particles, DefaultRadius) != want {
		t.Errorf("Count disagrees with Links")
	}
	for _, s := range segs {
		if s.I >= s.J {
			t.Errorf("pair not ordered: (%d,%d)", s.I, s.J)
		}
		if s.Opacity <= 0 || s.Opacity > 1 {
			t.Errorf("opacity %f out of range", s.Opacity)
		}
	}
}

func TestDegenerateInputs(t *testing.T) {
	if Links(nil, DefaultRadius) != nil {
		t.Error("expected no links for empty field")
	}
	if Count(at(geom.V(0, 0), geom.V(1, 1)), 0) != 0 {
		t.Error("zero radius should link nothing")
	}
}
