package config

import "sort"

// Presets are named tweaks applied over DefaultConfig.
var Presets = map[string]func(*Config){
	"calm": func(c *Config) {
		c.Field.Attraction = 0.004
		c.Field.SpawnSpeed = 0.1
		c.Trail.Decay = 0.01
	},
	"dense": func(c *Config) {
		c.Field.Density = 7500
		c.Link.Radius = 60
	},
	"sparse": func(c *Config) {
		c.Field.Density = 40000
		c.Link.Radius = 120
	},
	"web": func(c *Config) {
		c.Link.Radius = 140
		c.Field.Spring = 0.0005
	},
	"storm": func(c *Config) {
		c.Field.Attraction = 0.05
		c.Field.InteractionRadius = 180
		c.Field.Damping = 0.995
		c.Trail.Capacity = 120
	},
}

var PresetInfo = map[string]string{
	"calm":   "slow drift, long trail",
	"dense":  "twice the particles, short links",
	"sparse": "few particles, long links",
	"web":    "long links, loose springs",
	"storm":  "strong wide pull, heavy trail",
}

// GetPreset returns the default config with the named preset applied, or nil.
func GetPreset(name string) *Config {
	apply, ok := Presets[name]
	if !ok {
		return nil
	}
	cfg := DefaultConfig()
	apply(cfg)
	return cfg
}

// Apply applies the named preset to c and reports whether it exists.
func (c *Config) Apply(name string) bool {
	apply, ok := Presets[name]
	if ok {
		apply(c)
	}
	return ok
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
