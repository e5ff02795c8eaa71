package viz

import (
	"errors"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/san-kum/backdrop/internal/geom"
	"github.com/san-kum/backdrop/internal/render"
	"github.com/san-kum/backdrop/internal/scheduler"
)

func testOptions(t *testing.T) Options {
	opts := DefaultOptions()
	opts.Scene.Seed = 3
	dir := t.TempDir()
	opts.GIFPath = dir + "/out.gif"
	opts.SVGPath = dir + "/out.svg"
	return opts
}

func update(m Model, msg tea.Msg) Model {
	next, _ := m.Update(msg)
	return next.(Model)
}

func TestCellToPixel(t *testing.T) {
	tests := []struct {
		col, row int
		scale    float64
		want     geom.Vec2
	}{
		{0, 0, 1, geom.V(1, 2)},
		{0, 0, 8, geom.V(8, 16)},
		{10, 5, 8, geom.V(168, 176)},
	}
	for _, tt := range tests {
		if got := CellToPixel(tt.col, tt.row, tt.scale); got != tt.want {
			t.Errorf("CellToPixel(%d, %d, %v) = %v, want %v", tt.col, tt.row, tt.scale, got, tt.want)
		}
	}
}

func TestCellsToViewport(t *testing.T) {
	if got := CellsToViewport(76, 22, 8); got != (geom.Viewport{W: 1216, H: 704}) {
		t.Errorf("viewport = %v", got)
	}
}

func TestCellsToViewportRoundTrip(t *testing.T) {
	c := render.NewCanvas(1, 1, 1.7)
	c.Resize(CellsToViewport(3, 3, 1.7))
	if c.Width != 3 || c.Height != 3 {
		t.Errorf("3x3 at scale 1.7 became %dx%d", c.Width, c.Height)
	}
}

func TestNewModelMounts(t *testing.T) {
	m := NewModel(testOptions(t))
	if !m.Scene().Running() {
		t.Fatal("scene not running after NewModel")
	}
	if m.Host().Listeners() != 6 {
		t.Errorf("listeners = %d, want 6", m.Host().Listeners())
	}
	if m.Host().PendingFrames() != 2 {
		t.Errorf("pending frames = %d, want 2", m.Host().PendingFrames())
	}
}

func TestWindowResizeRespawns(t *testing.T) {
	m := NewModel(testOptions(t))
	m = update(m, tea.WindowSizeMsg{Width: 100, Height: 40})

	want := CellsToViewport(100-2*padX, 40-2*padY, 8)
	if got := m.Host().Viewport(); got != want {
		t.Fatalf("viewport = %v, want %v", got, want)
	}
	if got := m.Scene().Background.Field().Len(); got != want.W*want.H/15000 {
		t.Errorf("particles = %d, want %d", got, want.W*want.H/15000)
	}
}

func TestWidePanelShrinksCanvas(t *testing.T) {
	m := NewModel(testOptions(t))
	m = update(m, tea.WindowSizeMsg{Width: 160, Height: 40})
	want := CellsToViewport(160-2*padX-panelWidth-1, 40-2*padY, 8)
	if got := m.Host().Viewport(); got != want {
		t.Errorf("viewport = %v, want %v", got, want)
	}
	if !strings.Contains(m.View(), "BACKDROP") {
		t.Error("panel missing from wide view")
	}
}

func TestMouseMotionPushesTrail(t *testing.T) {
	m := NewModel(testOptions(t))
	m = update(m, tea.MouseMsg{X: padX + 3, Y: padY + 2, Action: tea.MouseActionMotion})

	e := m.Scene().Cursor.Emitter()
	if e.Len() != 1 {
		t.Fatalf("trail len = %d, want 1", e.Len())
	}
	if got, want := e.Points()[0].Pos, CellToPixel(3, 2, 8); got != want {
		t.Errorf("trail point = %v, want %v", got, want)
	}
	if m.Scene().Background.PointerPos() != CellToPixel(3, 2, 8) {
		t.Error("background pointer not updated")
	}
}

func TestMouseOutsideCanvasIgnored(t *testing.T) {
	m := NewModel(testOptions(t))
	m = update(m, tea.MouseMsg{X: 0, Y: 0, Action: tea.MouseActionMotion})
	if m.Scene().Cursor.Emitter().Len() != 0 {
		t.Error("padding click reached the trail")
	}
}

func TestTickRunsBothLayers(t *testing.T) {
	m := NewModel(testOptions(t))
	m = update(m, TickMsg(time.Now()))
	bg, fg := m.Scene().Schedulers()
	if bg.Frames() != 1 || fg.Frames() != 1 {
		t.Errorf("frames = %d/%d, want 1/1", bg.Frames(), fg.Frames())
	}
	if m.sampler.Energy.Len() != 1 {
		t.Errorf("energy samples = %d, want 1", m.sampler.Energy.Len())
	}
}

func TestAutopilotMovesPointer(t *testing.T) {
	opts := testOptions(t)
	opts.Autopilot = true
	m := NewModel(opts)
	for i := 0; i < 5; i++ {
		m = update(m, TickMsg(time.Now()))
	}
	if m.Scene().Cursor.Emitter().Len() != 5 {
		t.Errorf("trail len = %d, want 5", m.Scene().Cursor.Emitter().Len())
	}
}

func TestThemeToggle(t *testing.T) {
	m := NewModel(testOptions(t))
	m = update(m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("t")})
	if m.Scene().Dark() {
		t.Error("theme still dark")
	}
	if m.theme.Name != "light" {
		t.Errorf("ui theme = %s, want light", m.theme.Name)
	}
}

func TestQuitUnmounts(t *testing.T) {
	m := NewModel(testOptions(t))
	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})
	m = next.(Model)
	if cmd == nil {
		t.Fatal("expected quit command")
	}
	if m.Scene().Running() {
		t.Error("scene still running")
	}
	if m.Host().Listeners() != 0 || m.Host().PendingFrames() != 0 {
		t.Errorf("host not released: %d listeners, %d frames", m.Host().Listeners(), m.Host().PendingFrames())
	}
}

func TestHostResizeDispatches(t *testing.T) {
	h := NewHost(geom.Viewport{W: 10, H: 10})
	var got geom.Viewport
	h.AddListener(scheduler.Resize, func(ev scheduler.Event) { got = ev.Viewport })
	h.SetViewport(geom.Viewport{W: 20, H: 30})
	if got != (geom.Viewport{W: 20, H: 30}) || h.Viewport() != got {
		t.Errorf("resize not dispatched: %v", got)
	}
}

func TestPickerStartsLive(t *testing.T) {
	built := ""
	p := NewPicker([]string{"calm", "dense"}, nil, func(name string) (Model, error) {
		built = name
		return NewModel(testOptions(t)), nil
	})
	next, _ := p.Update(tea.KeyMsg{Type: tea.KeyDown})
	next, _ = next.(Picker).Update(tea.KeyMsg{Type: tea.KeyEnter})
	p = next.(Picker)
	if built != "dense" || p.Chosen() != "dense" {
		t.Errorf("built %q, chosen %q, want dense", built, p.Chosen())
	}
}

func TestPickerKeepsMenuOnBuildError(t *testing.T) {
	p := NewPicker([]string{"calm"}, nil, func(name string) (Model, error) {
		return Model{}, errors.New("bad config")
	})
	next, _ := p.Update(tea.KeyMsg{Type: tea.KeyEnter})
	p = next.(Picker)
	if p.Chosen() != "" {
		t.Errorf("chosen = %q after a failed build", p.Chosen())
	}
	if !strings.Contains(p.View(), "bad config") {
		t.Error("menu does not show the build error")
	}
}

func TestNoColorDrawsPlainCanvas(t *testing.T) {
	opts := testOptions(t)
	opts.NoColor = true
	m := NewModel(opts)
	m = update(m, TickMsg(time.Now()))
	if got := m.canvasText(); got != m.out.Plain() {
		t.Error("no-color canvas is not plain braille")
	}
	if strings.Contains(m.canvasText(), "\x1b[") {
		t.Error("no-color canvas carries escape codes")
	}
}
