package scene

import (
	"time"

	"github.com/san-kum/backdrop/internal/field"
	"github.com/san-kum/backdrop/internal/geom"
	"github.com/san-kum/backdrop/internal/render"
	"github.com/san-kum/backdrop/internal/trail"
)

// Background is the particle-field layer.
type Background struct {
	field      *field.Field
	rng        field.Rand
	surface    render.Surface
	linkRadius float64
	pointer    geom.Vec2
	dark       bool
}

func NewBackground(surface render.Surface, params field.Params, linkRadius float64, rng field.Rand) *Background {
	return &Background{
		field:      &field.Field{Params: params},
		rng:        rng,
		surface:    surface,
		linkRadius: linkRadius,
		dark:       true,
	}
}

// Resize resizes the surface and respawns the whole field.
func (b *Background) Resize(vp geom.Viewport) {
	b.surface.Resize(vp)
	b.field.Rebuild(vp, b.rng)
}

func (b *Background) Pointer(p geom.Vec2) { b.pointer = p }

func (b *Background) Touch(p geom.Vec2) { b.pointer = p }

func (b *Background) Frame(time.Time) {
	b.field.Step(b.pointer)
	render.DrawField(b.surface, b.field, b.linkRadius, render.PaletteFor(b.dark))
}

func (b *Background) SetDark(dark bool) { b.dark = dark }

func (b *Background) Field() *field.Field { return b.field }

func (b *Background) PointerPos() geom.Vec2 { return b.pointer }

func (b *Background) Surface() render.Surface { return b.surface }

func (b *Background) LinkRadius() float64 { return b.linkRadius }

// Cursor is the pointer-trail layer.
type Cursor struct {
	emitter *trail.Emitter
	surface render.Surface
	dark    bool
}

func NewCursor(surface render.Surface, params trail.Params, rng trail.Rand) *Cursor {
	return &Cursor{
		emitter: trail.NewEmitter(params, rng),
		surface: surface,
		dark:    true,
	}
}

func (c *Cursor) Resize(vp geom.Viewport) { c.surface.Resize(vp) }

func (c *Cursor) Pointer(p geom.Vec2) { c.emitter.Push(p.X, p.Y) }

// Touch only ever receives the first touch point.
func (c *Cursor) Touch(p geom.Vec2) { c.emitter.Push(p.X, p.Y) }

func (c *Cursor) Frame(time.Time) {
	c.emitter.Step()
	render.DrawTrail(c.surface, c.emitter.Points(), render.PaletteFor(c.dark))
}

func (c *Cursor) SetDark(dark bool) { c.dark = dark }

func (c *Cursor) Emitter() *trail.Emitter { return c.emitter }

func (c *Cursor) Surface() render.Surface { return c.surface }
