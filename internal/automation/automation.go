// Package automation drives headless runs from scripts: YAML scenarios that
// move the pointer along paths, and parameter sweeps over a config key.
package automation

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"os"

	"github.com/san-kum/backdrop/internal/geom"
	"github.com/san-kum/backdrop/internal/pointer"
	"github.com/san-kum/backdrop/internal/scheduler"
	"gopkg.in/yaml.v3"
)

// Path kinds for a scenario step.
const (
	PathStill  = "still"
	PathLine   = "line"
	PathCircle = "circle"
	PathWander = "wander"
)

// Scenario defines a scripted pointer sequence.
type Scenario struct {
	Name        string `yaml:"name"`
	Description string `yaml:"description"`
	Steps       []Step `yaml:"steps"`
}

// Step moves the pointer for Frames frames. Coordinates are fractions of
// the viewport, so a script works at any size. For circles From is the
// center and To[0] the radius as a fraction of the shorter side.
type Step struct {
	Frames int        `yaml:"frames"`
	Path   string     `yaml:"path"`
	From   [2]float64 `yaml:"from"`
	To     [2]float64 `yaml:"to"`
	Touch  bool       `yaml:"touch"`
	Theme  string     `yaml:"theme"`
	Resize [2]int     `yaml:"resize"`
}

// LoadScenario loads a scenario from a YAML file
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var scenario Scenario
	if err := yaml.Unmarshal(data, &scenario); err != nil {
		return nil, fmt.Errorf("parse scenario %s: %w", path, err)
	}
	if err := scenario.Validate(); err != nil {
		return nil, err
	}
	return &scenario, nil
}

func (s *Scenario) Validate() error {
	if len(s.Steps) == 0 {
		return errors.New("scenario: no steps")
	}
	var errs []error
	for i, st := range s.Steps {
		if st.Frames <= 0 {
			errs = append(errs, fmt.Errorf("scenario step %d: frames must be positive", i+1))
		}
		switch st.Path {
		case "", PathStill, PathLine, PathCircle, PathWander:
		default:
			errs = append(errs, fmt.Errorf("scenario step %d: unknown path %q", i+1, st.Path))
		}
		if st.Theme != "" && st.Theme != "dark" && st.Theme != "light" {
			errs = append(errs, fmt.Errorf("scenario step %d: unknown theme %q", i+1, st.Theme))
		}
		if st.Resize[0] < 0 || st.Resize[1] < 0 {
			errs = append(errs, fmt.Errorf("scenario step %d: negative resize", i+1))
		}
	}
	return errors.Join(errs...)
}

// Frames is the total frame count of the scenario.
func (s *Scenario) Frames() int {
	n := 0
	for _, st := range s.Steps {
		n += st.Frames
	}
	return n
}

// Runner plays scenarios on a manual host.
type Runner struct {
	Host    *scheduler.ManualHost
	Wander  *pointer.Wander
	SetDark func(dark bool)
	// OnFrame runs after every frame with the running frame index.
	OnFrame func(frame int)
	Log     *slog.Logger
}

// Run executes all steps in a scenario
func (r *Runner) Run(ctx context.Context, sc *Scenario) error {
	logger := r.Log
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	frame := 0
	for i, st := range sc.Steps {
		logger.Info("scenario step", "step", i+1, "of", len(sc.Steps), "path", st.Path, "frames", st.Frames)

		if st.Resize != [2]int{} {
			vp := geom.Viewport{W: st.Resize[0], H: st.Resize[1]}
			r.Host.Resize(vp)
			if r.Wander != nil {
				r.Wander.Resize(vp)
			}
		}
		if st.Theme != "" && r.SetDark != nil {
			r.SetDark(st.Theme == "dark")
		}

		for k := 0; k < st.Frames; k++ {
			if err := ctx.Err(); err != nil {
				return fmt.Errorf("step %d: %w", i+1, err)
			}
			if p, ok := r.position(st, k); ok {
				if st.Touch {
					r.Host.Touch(p.X, p.Y)
				} else {
					r.Host.Move(p.X, p.Y)
				}
			}
			r.Host.Tick(1)
			if r.OnFrame != nil {
				r.OnFrame(frame)
			}
			frame++
		}
	}
	return nil
}

// position returns the pointer for frame k of st. A still step only moves
// the pointer on its first frame.
func (r *Runner) position(st Step, k int) (geom.Vec2, bool) {
	vp := r.Host.Viewport()
	at := func(f [2]float64) geom.Vec2 {
		return geom.V(f[0]*float64(vp.W), f[1]*float64(vp.H))
	}
	t := 0.0
	if st.Frames > 1 {
		t = float64(k) / float64(st.Frames-1)
	}

	switch st.Path {
	case PathLine:
		a, b := at(st.From), at(st.To)
		return a.Add(b.Sub(a).Scale(t)), true
	case PathCircle:
		c := at(st.From)
		rad := st.To[0] * float64(min(vp.W, vp.H))
		th := 2 * math.Pi * t
		return geom.V(c.X+rad*math.Cos(th), c.Y+rad*math.Sin(th)), true
	case PathWander:
		if r.Wander == nil {
			return geom.Vec2{}, false
		}
		return r.Wander.Next(), true
	default:
		return at(st.From), k == 0
	}
}
