package automation

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/san-kum/backdrop/internal/config"
	"github.com/san-kum/backdrop/internal/geom"
	"github.com/san-kum/backdrop/internal/metrics"
	"github.com/san-kum/backdrop/internal/pointer"
	"github.com/san-kum/backdrop/internal/render"
	"github.com/san-kum/backdrop/internal/scene"
	"github.com/san-kum/backdrop/internal/scheduler"
)

// setters are the config keys a sweep can vary.
var setters = map[string]func(*config.Config, float64){
	"density":            func(c *config.Config, v float64) { c.Field.Density = v },
	"interaction_radius": func(c *config.Config, v float64) { c.Field.InteractionRadius = v },
	"attraction":         func(c *config.Config, v float64) { c.Field.Attraction = v },
	"spring":             func(c *config.Config, v float64) { c.Field.Spring = v },
	"damping":            func(c *config.Config, v float64) { c.Field.Damping = v },
	"spawn_speed":        func(c *config.Config, v float64) { c.Field.SpawnSpeed = v },
	"link_radius":        func(c *config.Config, v float64) { c.Link.Radius = v },
	"trail_decay":        func(c *config.Config, v float64) { c.Trail.Decay = v },
}

func SweepParams() []string {
	names := make([]string, 0, len(setters))
	for k := range setters {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}

// Sweep runs the scene once per parameter value under the same seed and
// pointer path.
type Sweep struct {
	Param    string
	Min, Max float64
	Steps    int
	Frames   int
	Viewport geom.Viewport
}

type SweepResult struct {
	Value       float64
	Particles   int
	Links       float64 // mean per frame
	Energy      float64 // mean per frame
	Containment float64
	Trail       float64 // mean live points
}

func (s Sweep) Validate() error {
	if _, ok := setters[s.Param]; !ok {
		return fmt.Errorf("sweep: unknown parameter %q (available: %v)", s.Param, SweepParams())
	}
	if s.Steps < 2 {
		return fmt.Errorf("sweep: need at least 2 steps, got %d", s.Steps)
	}
	if s.Frames <= 0 {
		return fmt.Errorf("sweep: frames must be positive, got %d", s.Frames)
	}
	if s.Viewport.Empty() {
		return fmt.Errorf("sweep: empty viewport %dx%d", s.Viewport.W, s.Viewport.H)
	}
	return nil
}

// RunSweep measures every value of the sweep. Each value gets its own scene
// and host, so the values run concurrently; results come back in value order.
func RunSweep(ctx context.Context, base *config.Config, sw Sweep) ([]SweepResult, error) {
	if err := sw.Validate(); err != nil {
		return nil, err
	}
	results := make([]SweepResult, sw.Steps)
	errs := make([]error, sw.Steps)
	paramStep := (sw.Max - sw.Min) / float64(sw.Steps-1)

	var wg sync.WaitGroup
	for i := 0; i < sw.Steps; i++ {
		wg.Add(1)
		go func(idx int) {
			defer wg.Done()

			value := sw.Min + float64(idx)*paramStep
			cfg := *base
			setters[sw.Param](&cfg, value)
			if err := cfg.Validate(); err != nil {
				errs[idx] = fmt.Errorf("sweep %s=%g: %w", sw.Param, value, err)
				return
			}

			res, err := measure(ctx, &cfg, sw)
			if err != nil {
				errs[idx] = fmt.Errorf("sweep %s=%g: %w", sw.Param, value, err)
				return
			}
			res.Value = value
			results[idx] = res
		}(i)
	}

	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}
	return results, nil
}

func measure(ctx context.Context, cfg *config.Config, sw Sweep) (SweepResult, error) {
	host := scheduler.NewManualHost(sw.Viewport)
	sc := scene.New(host, render.NewCounter(sw.Viewport), render.NewCounter(sw.Viewport), scene.Options{
		Field:      cfg.FieldParams(),
		LinkRadius: cfg.Link.Radius,
		Trail:      cfg.TrailParams(),
		Dark:       cfg.Dark(),
		Seed:       cfg.Seed,
	})
	sc.Mount()
	defer sc.Unmount()
	if !sc.Running() {
		return SweepResult{}, fmt.Errorf("sweep: scene did not mount")
	}

	wander := pointer.NewWander(cfg.Seed, sw.Viewport)
	energy := metrics.NewEnergy()
	links := metrics.NewLinks(cfg.Link.Radius)
	contained := metrics.NewContainment()
	trail := &metrics.TrailLength{}
	tracked := []metrics.Metric{energy, links, contained, trail}

	for k := 0; k < sw.Frames; k++ {
		if k%30 == 0 {
			if err := ctx.Err(); err != nil {
				return SweepResult{}, err
			}
		}
		p := wander.Next()
		host.Move(p.X, p.Y)
		host.Tick(1)
		f := metrics.Frame{Field: sc.Background.Field(), Trail: sc.Cursor.Emitter()}
		for _, m := range tracked {
			m.Observe(f)
		}
	}

	return SweepResult{
		Particles:   sc.Background.Field().Len(),
		Links:       links.Value(),
		Energy:      energy.Value(),
		Containment: contained.Value(),
		Trail:       trail.Value(),
	}, nil
}
