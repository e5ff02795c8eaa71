package export

import (
	"fmt"
	"image"
	"image/color"
	"image/color/palette"
	"image/draw"
	"image/gif"
	"image/png"
	"io"
	"os"
)

// DefaultMaxFrames bounds a recording; older frames are dropped.
const DefaultMaxFrames = 600

// Recorder collects frames for an animated GIF.
type Recorder struct {
	Delay     int // hundredths of a second between frames
	MaxFrames int

	frames []*image.Paletted
}

func NewRecorder(delay int) *Recorder {
	return &Recorder{Delay: max(delay, 1), MaxFrames: DefaultMaxFrames}
}

// Add quantizes img to the web-safe palette and appends it.
func (r *Recorder) Add(img image.Image) {
	r.frames = append(r.frames, Paletted(img))
	if r.MaxFrames > 0 && len(r.frames) > r.MaxFrames {
		r.frames = r.frames[len(r.frames)-r.MaxFrames:]
	}
}

func (r *Recorder) Len() int { return len(r.frames) }

func (r *Recorder) Reset() { r.frames = nil }

func (r *Recorder) Encode(w io.Writer) error {
	return EncodeGIF(w, r.frames, r.Delay)
}

// Save writes the recording to path. An empty recording writes nothing.
func (r *Recorder) Save(path string) error {
	if len(r.frames) == 0 {
		return nil
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create gif: %w", err)
	}
	defer f.Close()
	if err := r.Encode(f); err != nil {
		return fmt.Errorf("encode gif %s: %w", path, err)
	}
	return nil
}

func Paletted(img image.Image) *image.Paletted {
	b := img.Bounds()
	p := image.NewPaletted(b, palette.WebSafe)
	draw.Draw(p, b, img, b.Min, draw.Src)
	return p
}

func EncodeGIF(w io.Writer, frames []*image.Paletted, delay int) error {
	if len(frames) == 0 {
		return fmt.Errorf("encode gif: no frames")
	}
	anim := gif.GIF{LoopCount: 0}
	bounds := frames[0].Rect
	for _, frame := range frames {
		anim.Image = append(anim.Image, frame)
		anim.Delay = append(anim.Delay, delay)
		bounds = bounds.Union(frame.Rect)
	}
	// frames recorded across a resize differ in size; the logical screen
	// must hold the largest
	if bounds != frames[0].Rect {
		anim.Config = image.Config{ColorModel: color.Palette(palette.WebSafe), Width: bounds.Max.X, Height: bounds.Max.Y}
	}
	return gif.EncodeAll(w, &anim)
}

func WritePNG(path string, img image.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create png: %w", err)
	}
	defer f.Close()
	if err := png.Encode(f, img); err != nil {
		return fmt.Errorf("encode png %s: %w", path, err)
	}
	return nil
}

func WriteSVG(path, doc string) error {
	if err := os.WriteFile(path, []byte(doc), 0o644); err != nil {
		return fmt.Errorf("write svg: %w", err)
	}
	return nil
}
