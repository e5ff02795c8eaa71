package field

import "fmt"

const (
	DefaultDensity           = 15000.0
	DefaultInteractionRadius = 100.0
	DefaultAttraction        = 0.01
	DefaultSpring            = 0.001
	DefaultDamping           = 0.99
	DefaultSpawnSpeed        = 0.25
	DefaultMinRadius         = 0.5
	DefaultMaxRadius         = 2.0
	DefaultMinOpacity        = 0.2
	DefaultMaxOpacity        = 1.0
)

// Params holds the tunables of the field physics.
type Params struct {
	Density           float64 // viewport area per particle
	InteractionRadius float64
	Attraction        float64
	Spring            float64
	Damping           float64
	SpawnSpeed        float64 // max |v| per axis at spawn
	MinRadius         float64
	MaxRadius         float64
	MinOpacity        float64
	MaxOpacity        float64
}

func DefaultParams() Params {
	return Params{
		Density:           DefaultDensity,
		InteractionRadius: DefaultInteractionRadius,
		Attraction:        DefaultAttraction,
		Spring:            DefaultSpring,
		Damping:           DefaultDamping,
		SpawnSpeed:        DefaultSpawnSpeed,
		MinRadius:         DefaultMinRadius,
		MaxRadius:         DefaultMaxRadius,
		MinOpacity:        DefaultMinOpacity,
		MaxOpacity:        DefaultMaxOpacity,
	}
}

func (p Params) Validate() error {
	if p.Density <= 0 {
		return fmt.Errorf("field: density must be positive, got %f", p.Density)
	}
	if p.InteractionRadius < 0 {
		return fmt.Errorf("field: interaction radius must not be negative, got %f", p.InteractionRadius)
	}
	if p.Damping < 0 || p.Damping > 1 {
		return fmt.Errorf("field: damping must be in [0,1], got %f", p.Damping)
	}
	if p.SpawnSpeed < 0 {
		return fmt.Errorf("field: spawn speed must not be negative, got %f", p.SpawnSpeed)
	}
	if p.MinRadius <= 0 || p.MaxRadius < p.MinRadius {
		return fmt.Errorf("field: invalid radius range [%f, %f]", p.MinRadius, p.MaxRadius)
	}
	if p.MinOpacity < 0 || p.MaxOpacity > 1 || p.MaxOpacity < p.MinOpacity {
		return fmt.Errorf("field: invalid opacity range [%f, %f]", p.MinOpacity, p.MaxOpacity)
	}
	return nil
}
