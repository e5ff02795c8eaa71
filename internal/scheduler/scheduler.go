package scheduler

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/san-kum/backdrop/internal/geom"
)

type State int

const (
	Unmounted State = iota
	Running
	Stopped
)

func (s State) String() string {
	switch s {
	case Unmounted:
		return "unmounted"
	case Running:
		return "running"
	case Stopped:
		return "stopped"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// Loop is the per-layer work the scheduler drives. Event methods only record
// input; all entity mutation happens in Frame.
type Loop interface {
	Resize(vp geom.Viewport)
	Pointer(p geom.Vec2)
	Touch(p geom.Vec2)
	Frame(now time.Time)
}

type Scheduler struct {
	name  string
	host  Host
	loop  Loop
	log   *slog.Logger
	state State

	listeners []ListenerID
	frame     FrameID
	pending   bool
	frames    uint64
}

func New(name string, host Host, loop Loop, logger *slog.Logger) *Scheduler {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Scheduler{
		name: name,
		host: host,
		loop: loop,
		log:  logger.With("layer", name),
	}
}

// Start mounts the loop: it checks the host can be drawn into, sizes the
// loop to the viewport, subscribes to input and requests the first frame.
func (s *Scheduler) Start() error {
	switch s.state {
	case Running:
		return ErrRunning
	case Stopped:
		return ErrStopped
	}
	if s.host == nil {
		return ErrNoHost
	}
	vp := s.host.Viewport()
	if vp.Empty() {
		return fmt.Errorf("%w: viewport %dx%d", ErrNoSurface, vp.W, vp.H)
	}

	s.loop.Resize(vp)
	s.listeners = append(s.listeners,
		s.host.AddListener(Resize, func(ev Event) { s.loop.Resize(ev.Viewport) }),
		s.host.AddListener(PointerMove, func(ev Event) { s.loop.Pointer(ev.Pos) }),
		s.host.AddListener(TouchMove, func(ev Event) { s.loop.Touch(ev.Pos) }),
	)
	s.state = Running
	s.request()

	s.log.Debug("layer mounted", "viewport", fmt.Sprintf("%dx%d", vp.W, vp.H))
	return nil
}

func (s *Scheduler) request() {
	s.frame = s.host.RequestFrame(s.tick)
	s.pending = true
}

func (s *Scheduler) tick(now time.Time) {
	s.pending = false
	if s.state != Running {
		return
	}
	s.loop.Frame(now)
	s.frames++
	s.request()
}

// Stop unmounts the loop, releasing every listener and the pending frame.
// It is safe to call more than once.
func (s *Scheduler) Stop() {
	if s.state == Running {
		for _, id := range s.listeners {
			s.host.RemoveListener(id)
		}
		if s.pending {
			s.host.CancelFrame(s.frame)
			s.pending = false
		}
		s.log.Debug("layer unmounted", "frames", s.frames)
	}
	s.listeners = nil
	s.state = Stopped
}

func (s *Scheduler) State() State { return s.state }

func (s *Scheduler) Frames() uint64 { return s.frames }

func (s *Scheduler) Name() string { return s.name }
