package scheduler

import (
	"fmt"
	"time"

	"github.com/san-kum/backdrop/internal/geom"
)

type EventKind int

const (
	PointerMove EventKind = iota
	TouchMove
	Resize
)

func (k EventKind) String() string {
	switch k {
	case PointerMove:
		return "pointermove"
	case TouchMove:
		return "touchmove"
	case Resize:
		return "resize"
	default:
		return fmt.Sprintf("EventKind(%d)", int(k))
	}
}

// Event is an input delivered by a host. Pos is surface-relative for pointer
// and touch events; Viewport is set for resize events.
type Event struct {
	Kind     EventKind
	Pos      geom.Vec2
	Viewport geom.Viewport
}

type (
	Listener   func(Event)
	FrameFunc  func(now time.Time)
	ListenerID uint64
	FrameID    uint64
)

// Host is the environment a layer is mounted into.
type Host interface {
	Viewport() geom.Viewport
	AddListener(kind EventKind, fn Listener) ListenerID
	RemoveListener(id ListenerID)
	// RequestFrame schedules fn for the next frame. Callbacks run once.
	RequestFrame(fn FrameFunc) FrameID
	CancelFrame(id FrameID)
}

type listenerEntry struct {
	id   ListenerID
	kind EventKind
	fn   Listener
}

type frameEntry struct {
	id FrameID
	fn FrameFunc
}

// Dispatcher keeps listeners and pending frame callbacks in registration
// order. The zero value is ready to use.
type Dispatcher struct {
	next      uint64
	listeners []listenerEntry
	frames    []frameEntry
}

func (d *Dispatcher) id() uint64 {
	d.next++
	return d.next
}

func (d *Dispatcher) AddListener(kind EventKind, fn Listener) ListenerID {
	id := ListenerID(d.id())
	d.listeners = append(d.listeners, listenerEntry{id: id, kind: kind, fn: fn})
	return id
}

func (d *Dispatcher) RemoveListener(id ListenerID) {
	for i, l := range d.listeners {
		if l.id == id {
			d.listeners = append(d.listeners[:i], d.listeners[i+1:]...)
			return
		}
	}
}

func (d *Dispatcher) RequestFrame(fn FrameFunc) FrameID {
	id := FrameID(d.id())
	d.frames = append(d.frames, frameEntry{id: id, fn: fn})
	return id
}

func (d *Dispatcher) CancelFrame(id FrameID) {
	for i, f := range d.frames {
		if f.id == id {
			d.frames = append(d.frames[:i], d.frames[i+1:]...)
			return
		}
	}
}

// Dispatch delivers ev to every listener of its kind. Listeners removed
// during dispatch are not called.
func (d *Dispatcher) Dispatch(ev Event) {
	snapshot := append([]listenerEntry(nil), d.listeners...)
	for _, l := range snapshot {
		if l.kind == ev.Kind && d.registered(l.id) {
			l.fn(ev)
		}
	}
}

func (d *Dispatcher) registered(id ListenerID) bool {
	for _, l := range d.listeners {
		if l.id == id {
			return true
		}
	}
	return false
}

// RunFrame runs the callbacks pending at entry and returns how many ran.
// Frames requested from inside a callback wait for the next RunFrame.
func (d *Dispatcher) RunFrame(now time.Time) int {
	pending := d.frames
	d.frames = nil
	ran := 0
	for _, f := range pending {
		f.fn(now)
		ran++
	}
	return ran
}

func (d *Dispatcher) Listeners() int { return len(d.listeners) }

func (d *Dispatcher) ListenersFor(kind EventKind) int {
	n := 0
	for _, l := range d.listeners {
		if l.kind == kind {
			n++
		}
	}
	return n
}

func (d *Dispatcher) PendingFrames() int { return len(d.frames) }
