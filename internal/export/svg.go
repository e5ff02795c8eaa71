package export

import (
	"fmt"
	"io"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/san-kum/backdrop/internal/geom"
	"github.com/san-kum/backdrop/internal/render"
)

// SVG is a vector render.Surface. Every primitive drawn since the last Clear
// is kept and written out as one SVG document.
type SVG struct {
	vp         geom.Viewport
	background *colorful.Color
	body       strings.Builder
	defs       strings.Builder
	gradients  int
	elements   int
}

func NewSVG(vp geom.Viewport) *SVG {
	return &SVG{vp: vp}
}

// SetBackground adds an opaque backdrop rect. Without one the document is
// transparent, like a single canvas layer.
func (s *SVG) SetBackground(c colorful.Color) { s.background = &c }

func (s *SVG) Size() geom.Viewport { return s.vp }

func (s *SVG) Resize(vp geom.Viewport) {
	s.vp = vp
	s.Clear()
}

func (s *SVG) Clear() {
	s.body.Reset()
	s.defs.Reset()
	s.gradients = 0
	s.elements = 0
}

// Elements returns the number of primitives drawn since the last Clear.
func (s *SVG) Elements() int { return s.elements }

func (s *SVG) FillCircle(center geom.Vec2, r float64, c render.RGBA) {
	fmt.Fprintf(&s.body, `<circle cx="%.2f" cy="%.2f" r="%.2f" fill="%s" fill-opacity="%.3f"/>`+"\n",
		center.X, center.Y, r, c.C.Clamped().Hex(), c.A)
	s.elements++
}

func (s *SVG) RadialGradient(center geom.Vec2, r, gradientR float64, stops []render.Stop, alpha float64) {
	if r <= 0 || alpha <= 0 {
		return
	}
	s.gradients++
	id := fmt.Sprintf("g%d", s.gradients)
	fmt.Fprintf(&s.defs, `<radialGradient id="%s" gradientUnits="userSpaceOnUse" cx="%.2f" cy="%.2f" r="%.2f">`+"\n",
		id, center.X, center.Y, gradientR)
	for _, st := range stops {
		fmt.Fprintf(&s.defs, `<stop offset="%.2f" stop-color="%s" stop-opacity="%.3f"/>`+"\n",
			st.Offset, st.Color.C.Clamped().Hex(), st.Color.A)
	}
	s.defs.WriteString("</radialGradient>\n")
	fmt.Fprintf(&s.body, `<circle cx="%.2f" cy="%.2f" r="%.2f" fill="url(#%s)" opacity="%.3f"/>`+"\n",
		center.X, center.Y, r, id, alpha)
	s.elements++
}

func (s *SVG) Line(a, b geom.Vec2, width float64, c render.RGBA) {
	fmt.Fprintf(&s.body, `<line x1="%.2f" y1="%.2f" x2="%.2f" y2="%.2f" stroke="%s" stroke-opacity="%.3f" stroke-width="%.2f"/>`+"\n",
		a.X, a.Y, b.X, b.Y, c.C.Clamped().Hex(), c.A, width)
	s.elements++
}

func (s *SVG) String() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, `<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
`, s.vp.W, s.vp.H, s.vp.W, s.vp.H)
	if s.defs.Len() > 0 {
		sb.WriteString("<defs>\n")
		sb.WriteString(s.defs.String())
		sb.WriteString("</defs>\n")
	}
	if s.background != nil {
		fmt.Fprintf(&sb, `<rect width="100%%" height="100%%" fill="%s"/>`+"\n", s.background.Hex())
	}
	sb.WriteString(s.body.String())
	sb.WriteString("</svg>\n")
	return sb.String()
}

func (s *SVG) WriteTo(w io.Writer) (int64, error) {
	n, err := io.WriteString(w, s.String())
	return int64(n), err
}

// Stack writes several layers into one document, bottom first.
func Stack(bg colorful.Color, layers ...*SVG) string {
	if len(layers) == 0 {
		return ""
	}
	vp := layers[0].vp
	var sb strings.Builder
	fmt.Fprintf(&sb, `<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="%s"/>
`, vp.W, vp.H, vp.W, vp.H, bg.Hex())
	for i, l := range layers {
		fmt.Fprintf(&sb, "<g id=\"layer%d\">\n", i)
		if l.defs.Len() > 0 {
			// gradient ids restart per layer
			sb.WriteString("<defs>\n")
			sb.WriteString(strings.ReplaceAll(l.defs.String(), `id="g`, fmt.Sprintf(`id="l%dg`, i)))
			sb.WriteString("</defs>\n")
		}
		sb.WriteString(strings.ReplaceAll(l.body.String(), `url(#g`, fmt.Sprintf(`url(#l%dg`, i)))
		sb.WriteString("</g>\n")
	}
	sb.WriteString("</svg>\n")
	return sb.String()
}

// CanvasToSVG converts the lit dots of a braille canvas to SVG circles in
// their cell color.
func CanvasToSVG(canvas *render.Canvas, scale float64) string {
	if canvas == nil {
		return ""
	}

	width := float64(canvas.Width) * scale * 2
	height := float64(canvas.Height) * scale * 4

	var sb strings.Builder
	bg := canvas.Background()
	fmt.Fprintf(&sb, `<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%.0f" height="%.0f" viewBox="0 0 %.0f %.0f">
<rect width="100%%" height="100%%" fill="%s"/>
`, width, height, width, height, bg.Hex())

	dotRadius := scale * 0.4
	for y := 0; y < canvas.Height*4; y++ {
		for x := 0; x < canvas.Width*2; x++ {
			if !canvas.Lit(x, y) {
				continue
			}
			cx := float64(x)*scale + scale/2
			cy := float64(y)*scale + scale/2
			fmt.Fprintf(&sb, `<circle cx="%.1f" cy="%.1f" r="%.1f" fill="%s"/>`+"\n",
				cx, cy, dotRadius, canvas.Colors[y/4][x/2].Clamped().Hex())
		}
	}

	sb.WriteString("</svg>\n")
	return sb.String()
}
