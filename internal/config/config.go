package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/san-kum/backdrop/internal/field"
	"github.com/san-kum/backdrop/internal/link"
	"github.com/san-kum/backdrop/internal/trail"
	"gopkg.in/yaml.v3"
)

const (
	DefaultTheme        = "dark"
	DefaultFPS          = 60
	DefaultPixelsPerDot = 8.0
)

type Config struct {
	Theme        string      `yaml:"theme"`
	FPS          int         `yaml:"fps"`
	PixelsPerDot float64     `yaml:"pixels_per_dot"`
	Seed         int64       `yaml:"seed"`
	Field        FieldConfig `yaml:"field"`
	Link         LinkConfig  `yaml:"link"`
	Trail        TrailConfig `yaml:"trail"`
}

type FieldConfig struct {
	Density           float64 `yaml:"density"`
	InteractionRadius float64 `yaml:"interaction_radius"`
	Attraction        float64 `yaml:"attraction"`
	Spring            float64 `yaml:"spring"`
	Damping           float64 `yaml:"damping"`
	SpawnSpeed        float64 `yaml:"spawn_speed"`
	MinRadius         float64 `yaml:"min_radius"`
	MaxRadius         float64 `yaml:"max_radius"`
	MinOpacity        float64 `yaml:"min_opacity"`
	MaxOpacity        float64 `yaml:"max_opacity"`
}

type LinkConfig struct {
	Radius float64 `yaml:"radius"`
}

type TrailConfig struct {
	Capacity int     `yaml:"capacity"`
	Decay    float64 `yaml:"decay"`
	MinSize  float64 `yaml:"min_size"`
	MaxSize  float64 `yaml:"max_size"`
}

func DefaultConfig() *Config {
	fp := field.DefaultParams()
	tp := trail.DefaultParams()
	return &Config{
		Theme:        DefaultTheme,
		FPS:          DefaultFPS,
		PixelsPerDot: DefaultPixelsPerDot,
		Field: FieldConfig{
			Density:           fp.Density,
			InteractionRadius: fp.InteractionRadius,
			Attraction:        fp.Attraction,
			Spring:            fp.Spring,
			Damping:           fp.Damping,
			SpawnSpeed:        fp.SpawnSpeed,
			MinRadius:         fp.MinRadius,
			MaxRadius:         fp.MaxRadius,
			MinOpacity:        fp.MinOpacity,
			MaxOpacity:        fp.MaxOpacity,
		},
		Link: LinkConfig{Radius: link.DefaultRadius},
		Trail: TrailConfig{
			Capacity: tp.Capacity,
			Decay:    tp.Decay,
			MinSize:  tp.MinSize,
			MaxSize:  tp.MaxSize,
		},
	}
}

// Load reads a YAML file over the defaults; keys missing from the file keep
// their default values.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()
	if err := cfg.Merge(path); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Merge reads a YAML file over c. Keys missing from the file are left alone,
// so a file can be layered over a preset.
func (c *Config) Merge(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("parse %s: %w", path, err)
	}
	return nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

func (c *Config) Dark() bool { return c.Theme != "light" }

func (c *Config) FieldParams() field.Params {
	return field.Params{
		Density:           c.Field.Density,
		InteractionRadius: c.Field.InteractionRadius,
		Attraction:        c.Field.Attraction,
		Spring:            c.Field.Spring,
		Damping:           c.Field.Damping,
		SpawnSpeed:        c.Field.SpawnSpeed,
		MinRadius:         c.Field.MinRadius,
		MaxRadius:         c.Field.MaxRadius,
		MinOpacity:        c.Field.MinOpacity,
		MaxOpacity:        c.Field.MaxOpacity,
	}
}

func (c *Config) TrailParams() trail.Params {
	return trail.Params{
		Capacity: c.Trail.Capacity,
		Decay:    c.Trail.Decay,
		MinSize:  c.Trail.MinSize,
		MaxSize:  c.Trail.MaxSize,
	}
}

// Validate reports every problem found, not just the first.
func (c *Config) Validate() error {
	var errs []error
	if c.Theme != "dark" && c.Theme != "light" {
		errs = append(errs, fmt.Errorf("config: unknown theme %q (want dark or light)", c.Theme))
	}
	if c.FPS <= 0 || c.FPS > 240 {
		errs = append(errs, fmt.Errorf("config: fps must be in [1,240], got %d", c.FPS))
	}
	if c.PixelsPerDot <= 0 {
		errs = append(errs, fmt.Errorf("config: pixels_per_dot must be positive, got %f", c.PixelsPerDot))
	}
	if c.Link.Radius < 0 {
		errs = append(errs, fmt.Errorf("config: link radius must not be negative, got %f", c.Link.Radius))
	}
	if err := c.FieldParams().Validate(); err != nil {
		errs = append(errs, err)
	}
	if err := c.TrailParams().Validate(); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}
