package scene

import (
	"image"
	"log/slog"
	"math/rand"

	"github.com/san-kum/backdrop/internal/field"
	"github.com/san-kum/backdrop/internal/link"
	"github.com/san-kum/backdrop/internal/render"
	"github.com/san-kum/backdrop/internal/scheduler"
	"github.com/san-kum/backdrop/internal/trail"
)

type Options struct {
	Field      field.Params
	LinkRadius float64
	Trail      trail.Params
	Dark       bool
	Seed       int64
	Logger     *slog.Logger
}

func DefaultOptions() Options {
	return Options{
		Field:      field.DefaultParams(),
		LinkRadius: link.DefaultRadius,
		Trail:      trail.DefaultParams(),
		Dark:       true,
	}
}

// Scene is the background and trail layers mounted on one host.
type Scene struct {
	Background *Background
	Cursor     *Cursor

	bg, fg *scheduler.Scheduler
	log    *slog.Logger
}

// New builds both layers. The theme flag is applied before mount so the
// first frame already uses the right palette.
func New(host scheduler.Host, bgSurface, trailSurface render.Surface, opts Options) *Scene {
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	s := &Scene{
		Background: NewBackground(bgSurface, opts.Field, opts.LinkRadius, rand.New(rand.NewSource(opts.Seed))),
		Cursor:     NewCursor(trailSurface, opts.Trail, rand.New(rand.NewSource(opts.Seed+1))),
		log:        logger,
	}
	s.SetDark(opts.Dark)
	s.bg = scheduler.New("background", host, s.Background, logger)
	s.fg = scheduler.New("trail", host, s.Cursor, logger)
	return s
}

// Mount starts both layers. A layer that cannot mount (no host, no surface)
// is skipped; the other still runs.
func (s *Scene) Mount() {
	for _, sched := range []*scheduler.Scheduler{s.bg, s.fg} {
		if err := sched.Start(); err != nil {
			s.log.Debug("layer not mounted", "layer", sched.Name(), "err", err)
		}
	}
}

// Unmount stops both layers and releases everything they registered.
func (s *Scene) Unmount() {
	s.fg.Stop()
	s.bg.Stop()
}

// SetDark switches the palette of both layers from the next frame on.
func (s *Scene) SetDark(dark bool) {
	s.Background.SetDark(dark)
	s.Cursor.SetDark(dark)
}

func (s *Scene) Dark() bool { return s.Background.dark }

func (s *Scene) Running() bool {
	return s.bg.State() == scheduler.Running || s.fg.State() == scheduler.Running
}

// Layers returns the surfaces bottom first.
func (s *Scene) Layers() []render.Surface {
	return []render.Surface{s.Background.Surface(), s.Cursor.Surface()}
}

func (s *Scene) Schedulers() (background, trail *scheduler.Scheduler) {
	return s.bg, s.fg
}

// Composite flattens both layers over the theme background, the field with
// the palette's blend mode and the trail over it. It reports false
// when either layer is not a raster.
func (s *Scene) Composite() (*image.RGBA, bool) {
	bg, ok := s.Background.Surface().(*render.Raster)
	if !ok {
		return nil, false
	}
	fg, ok := s.Cursor.Surface().(*render.Raster)
	if !ok {
		return nil, false
	}
	p := render.PaletteFor(s.Dark())
	return render.Flatten(p.Background, render.Layer{Raster: bg, Mode: p.FieldBlend}, render.Layer{Raster: fg}), true
}
