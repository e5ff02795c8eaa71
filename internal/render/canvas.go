package render

import (
	"image"
	"image/color"
	"image/draw"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/lucasb-eyer/go-colorful"
	"github.com/san-kum/backdrop/internal/geom"
)

// Braille Patterns: 2x4 dots
// 1 4
// 2 5
// 3 6
// 7 8
//
// Unicode offset 0x2800
var pixelMap = [4][2]int{
	{0x1, 0x8},
	{0x2, 0x10},
	{0x4, 0x20},
	{0x40, 0x80},
}

const (
	brailleBlank = 0x2800

	// dots fainter than this stay dark
	litThreshold = 0.03
)

// Canvas is a braille terminal surface. Each cell holds 2x4 dots and one
// color; a dot covers Scale x Scale surface pixels.
type Canvas struct {
	Width, Height int // cells
	Scale         float64
	Grid          [][]rune
	Colors        [][]colorful.Color
	touched       [][]bool
	background    colorful.Color
	paintBg       bool
}

func NewCanvas(w, h int, scale float64) *Canvas {
	if scale <= 0 {
		scale = 1
	}
	c := &Canvas{Scale: scale}
	c.alloc(w, h)
	return c
}

func (c *Canvas) alloc(w, h int) {
	c.Width, c.Height = max(w, 0), max(h, 0)
	c.Grid = make([][]rune, c.Height)
	c.Colors = make([][]colorful.Color, c.Height)
	c.touched = make([][]bool, c.Height)
	for i := range c.Grid {
		c.Grid[i] = make([]rune, c.Width)
		c.Colors[i] = make([]colorful.Color, c.Width)
		c.touched[i] = make([]bool, c.Width)
	}
	c.Clear()
}

// SetBackground sets the color faint dots blend toward. When paint is set,
// String also fills cell backgrounds with it.
func (c *Canvas) SetBackground(bg colorful.Color, paint bool) {
	c.background = bg
	c.paintBg = paint
	c.Clear()
}

func (c *Canvas) Background() colorful.Color { return c.background }

// Size reports the surface in pixels.
func (c *Canvas) Size() geom.Viewport { return CellsViewport(c.Width, c.Height, c.Scale) }

// CellsViewport is the pixel surface under a w x h cell grid, rounded to the
// nearest pixel.
func CellsViewport(w, h int, scale float64) geom.Viewport {
	return geom.Viewport{
		W: int(math.Round(float64(w*2) * scale)),
		H: int(math.Round(float64(h*4) * scale)),
	}
}

// Resize picks the cell grid nearest to vp, so that Resize(c.Size()) keeps
// the grid for any scale above half a pixel per dot.
func (c *Canvas) Resize(vp geom.Viewport) {
	c.alloc(int(math.Round(float64(vp.W)/(2*c.Scale))), int(math.Round(float64(vp.H)/(4*c.Scale))))
}

// Clear resets the canvas
func (c *Canvas) Clear() {
	for i := range c.Grid {
		for j := range c.Grid[i] {
			c.Grid[i][j] = brailleBlank
			c.Colors[i][j] = c.background
			c.touched[i][j] = false
		}
	}
}

// Set lights a dot at (x, y) in dot coordinates.
// The canvas size in dots is (Width*2) x (Height*4).
func (c *Canvas) Set(x, y int) {
	if x < 0 || y < 0 {
		return
	}

	col := x / 2
	row := y / 4
	if col >= c.Width || row >= c.Height {
		return
	}

	c.Grid[row][col] |= rune(pixelMap[y%4][x%2])
	c.touched[row][col] = true
}

// Lit reports whether the dot at (x, y) is set.
func (c *Canvas) Lit(x, y int) bool {
	if x < 0 || y < 0 || x/2 >= c.Width || y/4 >= c.Height {
		return false
	}
	return c.Grid[y/4][x/2]&rune(pixelMap[y%4][x%2]) != 0
}

// plot lights a dot and blends its color into the cell.
func (c *Canvas) plot(x, y int, col RGBA) {
	if col.A < litThreshold || x < 0 || y < 0 || x/2 >= c.Width || y/4 >= c.Height {
		return
	}
	c.Set(x, y)
	c.Colors[y/4][x/2] = c.Colors[y/4][x/2].BlendRgb(col.C, col.A)
}

func (c *Canvas) toDot(p geom.Vec2) (int, int) {
	return int(math.Floor(p.X / c.Scale)), int(math.Floor(p.Y / c.Scale))
}

func (c *Canvas) FillCircle(center geom.Vec2, r float64, col RGBA) {
	c.eachDotInCircle(center, r, func(x, y int, d float64) {
		c.plot(x, y, col)
	})
}

func (c *Canvas) RadialGradient(center geom.Vec2, r, gradientR float64, stops []Stop, alpha float64) {
	if gradientR <= 0 {
		return
	}
	c.eachDotInCircle(center, r, func(x, y int, d float64) {
		c.plot(x, y, Sample(stops, d/gradientR).Scale(alpha))
	})
}

// eachDotInCircle visits dots whose centers fall within r of center. Circles
// smaller than a dot still light the dot under their center.
func (c *Canvas) eachDotInCircle(center geom.Vec2, r float64, fn func(x, y int, d float64)) {
	if r <= 0 {
		return
	}
	cx, cy := c.toDot(center)
	reach := int(math.Ceil(r / c.Scale))
	hit := false
	for y := cy - reach; y <= cy+reach; y++ {
		for x := cx - reach; x <= cx+reach; x++ {
			dotCenter := geom.V((float64(x)+0.5)*c.Scale, (float64(y)+0.5)*c.Scale)
			d := dotCenter.Dist(center)
			if d <= r {
				fn(x, y, d)
				hit = true
			}
		}
	}
	if !hit {
		fn(cx, cy, 0)
	}
}

func (c *Canvas) Line(a, b geom.Vec2, width float64, col RGBA) {
	x0, y0 := c.toDot(a)
	x1, y1 := c.toDot(b)
	c.drawLine(x0, y0, x1, y1, col)
}

func (c *Canvas) drawLine(x0, y0, x1, y1 int, col RGBA) {
	dx := absInt(x1 - x0)
	dy := absInt(y1 - y0)
	sx := -1
	if x0 < x1 {
		sx = 1
	}
	sy := -1
	if y0 < y1 {
		sy = 1
	}
	err := dx - dy

	for {
		c.plot(x0, y0, col)
		if x0 == x1 && y0 == y1 {
			break
		}
		e2 := 2 * err
		if e2 > -dy {
			err -= dy
			x0 += sx
		}
		if e2 < dx {
			err += dx
			y0 += sy
		}
	}
}

// Overlay copies every touched cell of top onto c. Both canvases must share
// a grid size; top wins where it drew anything.
func (c *Canvas) Overlay(top *Canvas) {
	for i := 0; i < min(c.Height, top.Height); i++ {
		for j := 0; j < min(c.Width, top.Width); j++ {
			if !top.touched[i][j] {
				continue
			}
			c.Grid[i][j] |= top.Grid[i][j]
			c.Colors[i][j] = top.Colors[i][j]
			c.touched[i][j] = true
		}
	}
}

// CopyFrom makes c an exact copy of src, resizing if needed.
func (c *Canvas) CopyFrom(src *Canvas) {
	if c.Width != src.Width || c.Height != src.Height {
		c.alloc(src.Width, src.Height)
	}
	c.Scale = src.Scale
	c.background, c.paintBg = src.background, src.paintBg
	for i := range src.Grid {
		copy(c.Grid[i], src.Grid[i])
		copy(c.Colors[i], src.Colors[i])
		copy(c.touched[i], src.touched[i])
	}
}

// Plain renders the canvas without color, for terminals that ask for none.
func (c *Canvas) Plain() string {
	var b strings.Builder
	for _, row := range c.Grid {
		b.WriteString(string(row) + "\n")
	}
	return b.String()
}

// String renders the canvas with one lipgloss style per run of equally
// colored cells.
func (c *Canvas) String() string {
	var b strings.Builder
	bg := lipgloss.Color(c.background.Hex())
	for i, row := range c.Grid {
		start := 0
		for j := 1; j <= len(row); j++ {
			if j < len(row) && c.Colors[i][j].Hex() == c.Colors[i][start].Hex() {
				continue
			}
			style := lipgloss.NewStyle().Foreground(lipgloss.Color(c.Colors[i][start].Hex()))
			if c.paintBg {
				style = style.Background(bg)
			}
			b.WriteString(style.Render(string(row[start:j])))
			start = j
		}
		b.WriteString("\n")
	}
	return b.String()
}

// Image rasterizes the lit dots at charW x charH pixels per cell, for GIF
// capture.
func (c *Canvas) Image(charW, charH int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, c.Width*charW, c.Height*charH))
	br, bgG, bb := c.background.RGB255()
	bgc := color.RGBA{R: br, G: bgG, B: bb, A: 255}
	draw.Draw(img, img.Bounds(), &image.Uniform{C: bgc}, image.Point{}, draw.Src)
	dotW, dotH := charW/2, charH/4
	for row := 0; row < c.Height; row++ {
		for col := 0; col < c.Width; col++ {
			r := c.Grid[row][col]
			if r <= brailleBlank {
				continue
			}
			pattern := int(r - brailleBlank)
			cr, cg, cb := c.Colors[row][col].Clamped().RGB255()
			fg := color.RGBA{R: cr, G: cg, B: cb, A: 255}
			baseX, baseY := col*charW, row*charH
			for dy := 0; dy < 4; dy++ {
				for dx := 0; dx < 2; dx++ {
					if pattern&pixelMap[dy][dx] == 0 {
						continue
					}
					for py := 0; py < dotH; py++ {
						for px := 0; px < dotW; px++ {
							img.SetRGBA(baseX+dx*dotW+px, baseY+dy*dotH+py, fg)
						}
					}
				}
			}
		}
	}
	return img
}

func absInt(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
