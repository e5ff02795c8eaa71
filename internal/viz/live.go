package viz

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"
	"github.com/guptarohit/asciigraph"
	"github.com/san-kum/backdrop/internal/export"
	"github.com/san-kum/backdrop/internal/geom"
	"github.com/san-kum/backdrop/internal/metrics"
	"github.com/san-kum/backdrop/internal/pointer"
	"github.com/san-kum/backdrop/internal/render"
	"github.com/san-kum/backdrop/internal/scene"
)

const (
	width  = 80
	height = 24

	// cells taken by the canvas padding
	padX, padY = 2, 1

	// the stats panel only shows on terminals at least this wide
	panelMinWidth = 120

	// pixel size of one cell in GIF frames
	gifCharW, gifCharH = 8, 16
)

type Options struct {
	Scene     scene.Options
	FPS       int
	Scale     float64 // surface pixels per braille dot
	Autopilot bool
	NoColor   bool // draw the canvas as bare braille
	GIFPath   string
	SVGPath   string
	Logger    *slog.Logger
}

func DefaultOptions() Options {
	return Options{
		Scene:   scene.DefaultOptions(),
		FPS:     60,
		Scale:   8,
		GIFPath: "backdrop.gif",
		SVGPath: "backdrop.svg",
	}
}

type TickMsg time.Time

// Model is the live view: a host, the two mounted layers and their canvases.
type Model struct {
	opts     Options
	log      *slog.Logger
	host     *Host
	scene    *scene.Scene
	bg, fg   *render.Canvas
	out      *render.Canvas
	wander   *pointer.Wander
	sampler  *metrics.Sampler
	recorder *export.Recorder
	theme    Theme
	styles   styles

	width, height int
	frameTime     time.Duration
	autopilot     bool
	recording     bool
	showHelp      bool
	showPanel     bool
	status        string
}

func NewModel(opts Options) Model {
	if opts.FPS <= 0 {
		opts.FPS = 60
	}
	if opts.Scale <= 0 {
		opts.Scale = 8
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	opts.Scene.Logger = logger

	m := Model{
		opts:      opts,
		log:       logger,
		width:     width,
		height:    height,
		autopilot: opts.Autopilot,
		sampler:   metrics.NewSampler(opts.Scene.LinkRadius, metrics.HistoryCapacity),
		recorder:  export.NewRecorder(max(100/opts.FPS, 1)),
	}
	cw, ch := m.canvasCells()
	vp := CellsToViewport(cw, ch, opts.Scale)
	m.bg = render.NewCanvas(cw, ch, opts.Scale)
	m.fg = render.NewCanvas(cw, ch, opts.Scale)
	m.out = render.NewCanvas(cw, ch, opts.Scale)
	m.host = NewHost(vp)
	m.wander = pointer.NewWander(opts.Scene.Seed, vp)
	m.scene = scene.New(m.host, m.bg, m.fg, opts.Scene)
	m.applyTheme(opts.Scene.Dark)
	m.scene.Mount()
	return m
}

func (m Model) Init() tea.Cmd {
	return m.tick()
}

func (m Model) tick() tea.Cmd {
	return tea.Tick(time.Second/time.Duration(m.opts.FPS), func(t time.Time) tea.Msg { return TickMsg(t) })
}

// Update translates terminal input into host events and runs frames.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			m.quit()
			return m, tea.Quit
		case "t":
			m.applyTheme(!m.scene.Dark())
			m.log.Info("theme changed", "theme", m.theme.Name)
		case "a":
			m.autopilot = !m.autopilot
		case "g":
			m.toggleRecording()
		case "s":
			m.snapshot()
		case "r":
			m.host.SetViewport(m.host.Viewport())
			m.sampler.Reset()
		case "p":
			m.showPanel = !m.showPanel
			m.layout()
		case "?":
			m.showHelp = !m.showHelp
		}
	case tea.MouseMsg:
		if msg.Action != tea.MouseActionMotion && msg.Action != tea.MouseActionPress {
			break
		}
		if p, ok := m.cellToPixel(msg.X, msg.Y); ok {
			m.autopilot = false
			m.host.Move(p)
		}
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.showPanel = msg.Width >= panelMinWidth
		m.layout()
	case TickMsg:
		m.frame(time.Time(msg))
		return m, m.tick()
	}
	return m, nil
}

func (m *Model) frame(now time.Time) {
	if m.autopilot {
		m.host.Move(m.wander.Next())
	}
	start := time.Now()
	m.host.RunFrame(now)
	m.out.CopyFrom(m.bg)
	m.out.Overlay(m.fg)
	m.frameTime = time.Since(start)

	m.sampler.Observe(metrics.Frame{
		Field: m.scene.Background.Field(),
		Trail: m.scene.Cursor.Emitter(),
	})
	if m.recording {
		m.recorder.Add(m.out.Image(gifCharW, gifCharH))
	}
}

// canvasCells is the canvas size in cells for the current terminal.
func (m *Model) canvasCells() (int, int) {
	w := m.width - 2*padX
	if m.showPanel {
		w -= panelWidth + 1
	}
	return max(w, 1), max(m.height-2*padY, 1)
}

func (m *Model) layout() {
	cw, ch := m.canvasCells()
	vp := CellsToViewport(cw, ch, m.opts.Scale)
	m.out.Resize(vp)
	m.wander.Resize(vp)
	if vp != m.host.Viewport() {
		m.host.SetViewport(vp)
		m.log.Debug("resized", "cells", fmt.Sprintf("%dx%d", cw, ch), "pixels", fmt.Sprintf("%dx%d", vp.W, vp.H))
	}
}

func (m *Model) cellToPixel(x, y int) (geom.Vec2, bool) {
	col, row := x-padX, y-padY
	if col < 0 || row < 0 || col >= m.out.Width || row >= m.out.Height {
		return geom.Vec2{}, false
	}
	return CellToPixel(col, row, m.opts.Scale), true
}

func (m *Model) applyTheme(dark bool) {
	m.scene.SetDark(dark)
	pal := render.PaletteFor(dark)
	for _, c := range []*render.Canvas{m.bg, m.fg, m.out} {
		c.SetBackground(pal.Background, true)
	}
	m.theme = ThemeFor(dark)
	m.styles = newStyles(m.theme)
}

func (m *Model) toggleRecording() {
	if !m.recording {
		m.recording = true
		m.recorder.Reset()
		m.status = "recording"
		return
	}
	m.recording = false
	m.saveGIF()
}

func (m *Model) saveGIF() {
	n := m.recorder.Len()
	if err := m.recorder.Save(m.opts.GIFPath); err != nil {
		m.status = err.Error()
		m.log.Error("save gif", "err", err)
		return
	}
	m.recorder.Reset()
	m.status = fmt.Sprintf("saved %d frames to %s", n, m.opts.GIFPath)
	m.log.Info("gif saved", "path", m.opts.GIFPath, "frames", n)
}

func (m *Model) snapshot() {
	if err := export.WriteSVG(m.opts.SVGPath, export.CanvasToSVG(m.out, 4)); err != nil {
		m.status = err.Error()
		m.log.Error("save svg", "err", err)
		return
	}
	m.status = "saved " + m.opts.SVGPath
}

func (m *Model) quit() {
	if m.recording {
		m.recording = false
		m.saveGIF()
	}
	m.scene.Unmount()
}

// View renders the canvas and, on wide terminals, the stats panel.
func (m Model) View() string {
	canvasView := m.styles.canvas.Render(m.canvasText())
	mainView := canvasView
	if m.showPanel {
		mainView = lipgloss.JoinHorizontal(lipgloss.Top, canvasView, m.styles.stats.Render(m.panel()))
	}
	if m.showHelp {
		return m.styles.helpBox.Render(helpText) + "\n\n" + mainView
	}
	return mainView
}

func (m Model) canvasText() string {
	if m.opts.NoColor {
		return m.out.Plain()
	}
	return m.out.String()
}

const helpText = `KEYBOARD SHORTCUTS

  T      Toggle dark/light theme
  A      Toggle autopilot pointer
  G      Toggle GIF recording
  S      Save SVG snapshot
  R      Respawn the field
  P      Toggle this panel
  ?      Toggle this help
  Q      Quit`

func (m Model) panel() string {
	st := m.styles
	var s strings.Builder
	s.WriteString(st.header.Render("BACKDROP") + "\n")

	status := st.running.Render(strings.ToUpper(m.theme.Name))
	if m.autopilot {
		status += "  " + st.running.Render("AUTOPILOT")
	}
	if m.recording {
		status += "  " + st.recording.Render(fmt.Sprintf("REC %d", m.recorder.Len()))
	}
	s.WriteString(status + "\n\n")

	if energy := m.sampler.Energy.Values(); len(energy) > 1 {
		chart := asciigraph.Plot(energy, asciigraph.Height(4), asciigraph.Width(30), asciigraph.Caption("Kinetic energy"))
		s.WriteString(st.graph.Render(chart) + "\n\n")
	}

	f := m.scene.Background.Field()
	vp := m.host.Viewport()
	trailCap := m.scene.Cursor.Emitter().Params().Capacity
	trailLen := m.scene.Cursor.Emitter().Len()
	row := func(label, value string) {
		s.WriteString(st.label.Render(label) + st.value.Render(value) + "\n")
	}
	row("Viewport", fmt.Sprintf("%dx%d px", vp.W, vp.H))
	row("Particles", humanize.Comma(int64(f.Len())))
	row("Links", humanize.Comma(int64(m.sampler.Links.Last())))
	row("Trail", fmt.Sprintf("%s %d/%d", st.bar(float64(trailLen)/float64(max(trailCap, 1)), 10), trailLen, trailCap))
	row("Energy", fmt.Sprintf("%.3f", m.sampler.Energy.Last()))
	row("Frame", m.frameTime.Round(time.Microsecond).String())
	s.WriteString("\n" + st.sparkline(m.sampler.Trail.Values(), panelWidth-6) + "\n")

	if m.status != "" {
		s.WriteString("\n" + st.value.Render(m.status) + "\n")
	}
	s.WriteString(st.help.Render("─────────────────────\nT:Theme A:Auto G:Record\nS:SVG   R:Respawn Q:Quit"))
	return s.String()
}

// Scene exposes the mounted layers, mainly for tests.
func (m Model) Scene() *scene.Scene { return m.scene }

func (m Model) Host() *Host { return m.host }
