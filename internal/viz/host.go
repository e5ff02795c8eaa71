package viz

import (
	"github.com/san-kum/backdrop/internal/geom"
	"github.com/san-kum/backdrop/internal/render"
	"github.com/san-kum/backdrop/internal/scheduler"
)

// Host adapts Bubble Tea messages to scheduler events. It is only touched
// from the Bubble Tea update loop.
type Host struct {
	scheduler.Dispatcher
	vp geom.Viewport
}

func NewHost(vp geom.Viewport) *Host { return &Host{vp: vp} }

func (h *Host) Viewport() geom.Viewport { return h.vp }

func (h *Host) SetViewport(vp geom.Viewport) {
	h.vp = vp
	h.Dispatch(scheduler.Event{Kind: scheduler.Resize, Viewport: vp})
}

func (h *Host) Move(p geom.Vec2) {
	h.Dispatch(scheduler.Event{Kind: scheduler.PointerMove, Pos: p})
}

// CellToPixel maps a terminal cell to the surface pixel under the center of
// its braille dot grid.
func CellToPixel(col, row int, scale float64) geom.Vec2 {
	return geom.V(float64(col*2+1)*scale, float64(row*4+2)*scale)
}

// CellsToViewport is the pixel viewport covered by a w x h cell canvas.
func CellsToViewport(w, h int, scale float64) geom.Viewport {
	return render.CellsViewport(w, h, scale)
}
