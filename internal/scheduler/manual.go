package scheduler

import (
	"time"

	"github.com/san-kum/backdrop/internal/geom"
)

const DefaultFrameInterval = time.Second / 60

// ManualHost is a display-less host. Frames only run when Tick is called,
// and the clock advances by Interval per frame.
type ManualHost struct {
	Dispatcher
	Interval time.Duration

	vp  geom.Viewport
	now time.Time
}

func NewManualHost(vp geom.Viewport) *ManualHost {
	return &ManualHost{
		Interval: DefaultFrameInterval,
		vp:       vp,
		now:      time.Unix(0, 0),
	}
}

func (h *ManualHost) Viewport() geom.Viewport { return h.vp }

func (h *ManualHost) Now() time.Time { return h.now }

// Resize changes the viewport and notifies resize listeners.
func (h *ManualHost) Resize(vp geom.Viewport) {
	h.vp = vp
	h.Dispatch(Event{Kind: Resize, Viewport: vp})
}

func (h *ManualHost) Move(x, y float64) {
	h.Dispatch(Event{Kind: PointerMove, Pos: geom.V(x, y)})
}

func (h *ManualHost) Touch(x, y float64) {
	h.Dispatch(Event{Kind: TouchMove, Pos: geom.V(x, y)})
}

// Tick runs n frames and returns the number of callbacks executed.
func (h *ManualHost) Tick(n int) int {
	ran := 0
	for i := 0; i < n; i++ {
		h.now = h.now.Add(h.Interval)
		ran += h.RunFrame(h.now)
	}
	return ran
}
