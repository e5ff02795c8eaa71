package metrics

import (
	"math"
	"math/rand"
	"testing"

	"github.com/san-kum/backdrop/internal/field"
	"github.com/san-kum/backdrop/internal/geom"
	"github.com/san-kum/backdrop/internal/trail"
)

func testField() *field.Field {
	return &field.Field{
		Viewport: geom.Viewport{W: 100, H: 100},
		Params:   field.DefaultParams(),
		Particles: []field.Particle{
			{Pos: geom.V(10, 10), Origin: geom.V(10, 13), Vel: geom.V(3, 4)},
			{Pos: geom.V(20, 10), Origin: geom.V(20, 10), Vel: geom.V(0, 0)},
			{Pos: geom.V(-1, 50), Origin: geom.V(1, 50), Vel: geom.V(1, 0)},
		},
	}
}

func TestKineticEnergy(t *testing.T) {
	if got := KineticEnergy(testField().Particles); math.Abs(got-13) > 1e-12 {
		t.Errorf("expected 13, got %f", got)
	}
	if KineticEnergy(nil) != 0 {
		t.Error("empty field should have zero energy")
	}
}

func TestMeanDisplacement(t *testing.T) {
	if got := MeanDisplacement(testField().Particles); math.Abs(got-5.0/3) > 1e-12 {
		t.Errorf("expected 5/3, got %f", got)
	}
}

func TestMetrics(t *testing.T) {
	f := testField()
	e := trail.NewEmitter(trail.DefaultParams(), rand.New(rand.NewSource(1)))
	e.Push(1, 1)
	e.Push(2, 2)

	energy := NewEnergy()
	contain := NewContainment()
	links := NewLinks(80)
	tl := &TrailLength{}

	all := []Metric{energy, contain, links, tl}
	for _, m := range all {
		m.Observe(Frame{Field: f, Trail: e})
		m.Observe(Frame{Field: f, Trail: e})
	}

	if energy.Value() != 13 || energy.Last() != 13 {
		t.Errorf("energy: %f", energy.Value())
	}
	if math.Abs(contain.Value()-2.0/3) > 1e-12 {
		t.Errorf("containment: %f", contain.Value())
	}
	// (10,10)-(20,10) and (10,10)-(-1,50) are within 80, (20,10)-(-1,50) too
	if links.Value() != 3 {
		t.Errorf("links: %f", links.Value())
	}
	if tl.Value() != 2 {
		t.Errorf("trail: %f", tl.Value())
	}

	for _, m := range all {
		m.Reset()
	}
	if energy.Value() != 0 || contain.Value() != 1 || links.Value() != 0 || tl.Value() != 0 {
		t.Error("reset did not clear metrics")
	}
}

func TestSeriesIsBounded(t *testing.T) {
	s := NewSeries("x", 3)
	for i := 1; i <= 5; i++ {
		s.Push(float64(i))
	}
	if s.Len() != 3 {
		t.Fatalf("expected 3 values, got %d", s.Len())
	}
	if s.Values()[0] != 3 || s.Last() != 5 || s.Max() != 5 {
		t.Errorf("unexpected values %v", s.Values())
	}
	s.Reset()
	if s.Len() != 0 || s.Last() != 0 {
		t.Error("reset did not clear series")
	}
}

func TestSampler(t *testing.T) {
	s := NewSampler(80, 10)
	s.Observe(Frame{Field: testField()})
	if s.Energy.Last() != 13 || s.Links.Last() != 3 {
		t.Errorf("unexpected samples energy=%f links=%f", s.Energy.Last(), s.Links.Last())
	}
	if s.Trail.Len() != 0 {
		t.Error("trail sampled without an emitter")
	}
}

func TestDominantPeriod(t *testing.T) {
	data := make([]float64, 240)
	for i := range data {
		data[i] = 5 + math.Sin(2*math.Pi*float64(i)/24)
	}
	if p := DominantPeriod(data); math.Abs(p-24) > 0.5 {
		t.Errorf("period = %v, want 24", p)
	}
}

func TestDominantPeriodFlat(t *testing.T) {
	if p := DominantPeriod([]float64{3, 3, 3, 3}); p != 0 {
		t.Errorf("flat period = %v, want 0", p)
	}
	if p := DominantPeriod([]float64{1}); p != 0 {
		t.Errorf("short period = %v, want 0", p)
	}
	if PowerSpectrum(nil) != nil {
		t.Error("empty spectrum should be nil")
	}
}
