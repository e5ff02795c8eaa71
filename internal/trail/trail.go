// Package trail implements the pointer trail: a bounded FIFO of fading
// points spawned on pointer and touch movement.
package trail

import (
	"fmt"

	"github.com/san-kum/backdrop/internal/geom"
)

const (
	DefaultCapacity = 50
	DefaultDecay    = 0.02
	DefaultMinSize  = 4.0
	DefaultMaxSize  = 12.0

	// lifeEpsilon absorbs the rounding of repeated subtraction so a point
	// dies within ceil(1/decay) ticks for any decay.
	lifeEpsilon = 1e-9
)

type Rand interface {
	Float64() float64
}

// Point is one trail sample. Life runs from 1 down to 0.
type Point struct {
	Pos  geom.Vec2
	Life float64
	Size float64
}

func (p Point) Alive() bool { return p.Life > lifeEpsilon }

type Params struct {
	Capacity int
	Decay    float64 // life lost per frame
	MinSize  float64
	MaxSize  float64
}

func DefaultParams() Params {
	return Params{
		Capacity: DefaultCapacity,
		Decay:    DefaultDecay,
		MinSize:  DefaultMinSize,
		MaxSize:  DefaultMaxSize,
	}
}

func (p Params) Validate() error {
	if p.Capacity <= 0 {
		return fmt.Errorf("trail: capacity must be positive, got %d", p.Capacity)
	}
	if p.Decay <= 0 || p.Decay > 1 {
		return fmt.Errorf("trail: decay must be in (0,1], got %f", p.Decay)
	}
	if p.MinSize <= 0 || p.MaxSize < p.MinSize {
		return fmt.Errorf("trail: invalid size range [%f, %f]", p.MinSize, p.MaxSize)
	}
	return nil
}

// Lifetime is the number of frames a point survives without eviction.
func (p Params) Lifetime() int {
	n := int(1 / p.Decay)
	if float64(n)*p.Decay < 1-lifeEpsilon {
		n++
	}
	return n
}

// Emitter owns the trail points exclusively.
type Emitter struct {
	params Params
	rng    Rand
	points []Point
}

func NewEmitter(params Params, rng Rand) *Emitter {
	return &Emitter{
		params: params,
		rng:    rng,
		points: make([]Point, 0, params.Capacity+1),
	}
}

// Push spawns a point at (x, y). When the queue is over capacity the oldest
// point is evicted regardless of its remaining life.
func (e *Emitter) Push(x, y float64) {
	e.points = append(e.points, Point{
		Pos:  geom.V(x, y),
		Life: 1.0,
		Size: e.params.MinSize + e.rng.Float64()*(e.params.MaxSize-e.params.MinSize),
	})
	if over := len(e.points) - e.params.Capacity; over > 0 {
		n := copy(e.points, e.points[over:])
		e.points = e.points[:n]
	}
}

// Step decays every point by one frame and drops the dead ones, preserving
// order.
func (e *Emitter) Step() {
	live := e.points[:0]
	for _, p := range e.points {
		p.Life -= e.params.Decay
		if p.Alive() {
			live = append(live, p)
		}
	}
	clear(e.points[len(live):])
	e.points = live
}

// Points returns the live points, oldest first. The slice is only valid
// until the next Push or Step.
func (e *Emitter) Points() []Point { return e.points }

func (e *Emitter) Len() int { return len(e.points) }

func (e *Emitter) Params() Params { return e.params }

func (e *Emitter) Reset() { e.points = e.points[:0] }
