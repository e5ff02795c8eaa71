package render

import (
	"image"
	"image/color"
	"image/draw"

	"github.com/lucasb-eyer/go-colorful"
)

// Blend is how a layer mixes with what lies beneath it.
type Blend int

const (
	BlendNormal Blend = iota
	BlendScreen
	BlendMultiply
)

func (b Blend) String() string {
	switch b {
	case BlendScreen:
		return "screen"
	case BlendMultiply:
		return "multiply"
	default:
		return "normal"
	}
}

// mix is the blend function B(cb, cs) on one channel in [0,1].
func (b Blend) mix(cb, cs float64) float64 {
	switch b {
	case BlendScreen:
		return cb + cs - cb*cs
	case BlendMultiply:
		return cb * cs
	default:
		return cs
	}
}

// Layer is a raster and the mode it is composited with.
type Layer struct {
	*Raster
	Mode Blend
}

// Flatten paints bg and then each layer, bottom first, into a new opaque
// image the size of the first layer.
func Flatten(bg colorful.Color, layers ...Layer) *image.RGBA {
	if len(layers) == 0 {
		return image.NewRGBA(image.Rect(0, 0, 0, 0))
	}
	bounds := layers[0].Image().Bounds()
	out := image.NewRGBA(bounds)
	r, g, b := bg.RGB255()
	draw.Draw(out, bounds, &image.Uniform{C: color.RGBA{R: r, G: g, B: b, A: 255}}, image.Point{}, draw.Src)
	for _, l := range layers {
		if l.Mode == BlendNormal {
			draw.Draw(out, bounds, l.Image(), bounds.Min, draw.Over)
			continue
		}
		composite(out, l.Image().SubImage(bounds).(*image.RGBA), l.Mode)
	}
	return out
}

// composite blends src into the opaque dst: the result is
// (1-as)*cb + as*B(cb, cs) per channel.
func composite(dst, src *image.RGBA, mode Blend) {
	b := dst.Bounds().Intersect(src.Bounds())
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			s := src.RGBAAt(x, y)
			if s.A == 0 {
				continue
			}
			as := float64(s.A) / 255
			d := dst.RGBAAt(x, y)
			ch := func(cb, cs uint8) uint8 {
				fb := float64(cb) / 255
				// src is premultiplied
				fs := min(float64(cs)/255/as, 1)
				return channel((1-as)*fb + as*mode.mix(fb, fs))
			}
			dst.SetRGBA(x, y, color.RGBA{R: ch(d.R, s.R), G: ch(d.G, s.G), B: ch(d.B, s.B), A: 255})
		}
	}
}
