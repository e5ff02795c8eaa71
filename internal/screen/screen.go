// Package screen is a tcell host for the backdrop layers. It draws the
// composited braille canvas straight into the terminal cells, without the
// Bubble Tea chrome.
package screen

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/lucasb-eyer/go-colorful"
	"github.com/san-kum/backdrop/internal/geom"
	"github.com/san-kum/backdrop/internal/pointer"
	"github.com/san-kum/backdrop/internal/render"
	"github.com/san-kum/backdrop/internal/scene"
	"github.com/san-kum/backdrop/internal/scheduler"
)

type Options struct {
	Scene     scene.Options
	FPS       int
	Scale     float64
	Autopilot bool
	Logger    *slog.Logger
}

// host is the scheduler side of the terminal. It is only used from the Run
// goroutine.
type host struct {
	scheduler.Dispatcher
	vp geom.Viewport
}

func (h *host) Viewport() geom.Viewport { return h.vp }

type App struct {
	screen tcell.Screen
	opts   Options
	log    *slog.Logger
	host   *host
	scene  *scene.Scene
	bg, fg *render.Canvas
	out    *render.Canvas
	wander *pointer.Wander

	autopilot bool
	frames    int
}

// Open initializes the real terminal with mouse motion reporting.
func Open(opts Options) (*App, error) {
	s, err := tcell.NewScreen()
	if err != nil {
		return nil, fmt.Errorf("open terminal: %w", err)
	}
	if err := s.Init(); err != nil {
		return nil, fmt.Errorf("init terminal: %w", err)
	}
	s.EnableMouse(tcell.MouseMotionEvents)
	s.HideCursor()
	return New(s, opts), nil
}

// New mounts the layers on an initialized screen.
func New(s tcell.Screen, opts Options) *App {
	if opts.FPS <= 0 {
		opts.FPS = 60
	}
	if opts.Scale <= 0 {
		opts.Scale = 8
	}
	if opts.Logger == nil {
		opts.Logger = slog.New(slog.DiscardHandler)
	}
	opts.Scene.Logger = opts.Logger

	w, h := s.Size()
	vp := viewport(w, h, opts.Scale)
	a := &App{
		screen:    s,
		opts:      opts,
		log:       opts.Logger,
		host:      &host{vp: vp},
		bg:        render.NewCanvas(w, h, opts.Scale),
		fg:        render.NewCanvas(w, h, opts.Scale),
		out:       render.NewCanvas(w, h, opts.Scale),
		wander:    pointer.NewWander(opts.Scene.Seed, vp),
		autopilot: opts.Autopilot,
	}
	a.scene = scene.New(a.host, a.bg, a.fg, opts.Scene)
	a.setTheme(opts.Scene.Dark)
	a.scene.Mount()
	return a
}

func viewport(w, h int, scale float64) geom.Viewport {
	return render.CellsViewport(w, h, scale)
}

// Run drives frames at the configured rate until ctx is done or the user
// quits. Events are read on a separate goroutine and handled here.
func (a *App) Run(ctx context.Context) error {
	ticker := time.NewTicker(time.Second / time.Duration(a.opts.FPS))
	defer ticker.Stop()

	events := make(chan tcell.Event, 100)
	done := make(chan struct{})
	defer close(done)
	go func() {
		for {
			ev := a.screen.PollEvent()
			if ev == nil {
				return
			}
			select {
			case events <- ev:
			case <-done:
				return
			}
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return nil
		case ev := <-events:
			if !a.HandleEvent(ev) {
				return nil
			}
		case now := <-ticker.C:
			a.Frame(now)
			a.Draw()
		}
	}
}

// HandleEvent translates one terminal event. It returns false on quit.
func (a *App) HandleEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		if ev.Key() == tcell.KeyEscape || ev.Key() == tcell.KeyCtrlC {
			return false
		}
		if ev.Key() == tcell.KeyRune {
			switch ev.Rune() {
			case 'q':
				return false
			case 't':
				a.setTheme(!a.scene.Dark())
			case 'a':
				a.autopilot = !a.autopilot
			}
		}
	case *tcell.EventMouse:
		x, y := ev.Position()
		a.autopilot = false
		a.move(geom.V(float64(x*2+1)*a.opts.Scale, float64(y*4+2)*a.opts.Scale))
	case *tcell.EventResize:
		w, h := ev.Size()
		a.resize(w, h)
	}
	return true
}

func (a *App) move(p geom.Vec2) {
	a.host.Dispatch(scheduler.Event{Kind: scheduler.PointerMove, Pos: p})
}

func (a *App) resize(w, h int) {
	vp := viewport(w, h, a.opts.Scale)
	if vp == a.host.vp {
		return
	}
	a.host.vp = vp
	a.out.Resize(vp)
	a.wander.Resize(vp)
	a.host.Dispatch(scheduler.Event{Kind: scheduler.Resize, Viewport: vp})
	a.screen.Sync()
	a.log.Debug("terminal resized", "cells", fmt.Sprintf("%dx%d", w, h))
}

func (a *App) setTheme(dark bool) {
	a.scene.SetDark(dark)
	bg := render.PaletteFor(dark).Background
	for _, c := range []*render.Canvas{a.bg, a.fg, a.out} {
		c.SetBackground(bg, true)
	}
}

// Frame runs one animation frame and composites the layers.
func (a *App) Frame(now time.Time) {
	if a.autopilot {
		a.move(a.wander.Next())
	}
	a.host.RunFrame(now)
	a.out.CopyFrom(a.bg)
	a.out.Overlay(a.fg)
	a.frames++
}

// Draw copies the composited canvas to the terminal.
func (a *App) Draw() {
	bg := color(a.out.Background())
	for row := 0; row < a.out.Height; row++ {
		for col := 0; col < a.out.Width; col++ {
			style := tcell.StyleDefault.Background(bg).Foreground(color(a.out.Colors[row][col]))
			a.screen.SetContent(col, row, a.out.Grid[row][col], nil, style)
		}
	}
	a.screen.Show()
}

func color(c colorful.Color) tcell.Color {
	r, g, b := c.Clamped().RGB255()
	return tcell.NewRGBColor(int32(r), int32(g), int32(b))
}

// Close unmounts the layers and restores the terminal.
func (a *App) Close() {
	a.scene.Unmount()
	a.screen.Fini()
	a.log.Debug("terminal closed", "frames", a.frames)
}

func (a *App) Scene() *scene.Scene { return a.scene }

func (a *App) Viewport() geom.Viewport { return a.host.vp }

func (a *App) Frames() int { return a.frames }
