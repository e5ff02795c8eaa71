package render

import "github.com/lucasb-eyer/go-colorful"

// Palette is the color set for one theme. Only drawing reads it; the
// physics is identical in both themes.
type Palette struct {
	Name          string
	Dark          bool
	Background    colorful.Color
	Particle      colorful.Color
	ParticleAlpha float64 // multiplied by each particle's opacity
	Link          colorful.Color
	LinkAlpha     float64 // multiplied by the link's proximity opacity
	LinkWidth     float64
	Trail         []Stop
	TrailAlpha    float64 // multiplied by the point's life
	FieldBlend    Blend   // how the field layer mixes with the page
}

var (
	DarkPalette = Palette{
		Name:          "dark",
		Dark:          true,
		Background:    RGB(10, 10, 10),
		Particle:      RGB(255, 255, 255),
		ParticleAlpha: 0.6,
		Link:          RGB(255, 255, 255),
		LinkAlpha:     0.2,
		LinkWidth:     0.5,
		Trail: []Stop{
			{0, RGBA{RGB(147, 197, 253), 0.8}}, // blue-300
			{0.5, RGBA{RGB(59, 130, 246), 0.5}},
			{1, RGBA{RGB(29, 78, 216), 0}},
		},
		TrailAlpha: 0.8,
		FieldBlend: BlendScreen,
	}

	LightPalette = Palette{
		Name:          "light",
		Background:    RGB(250, 250, 250),
		Particle:      RGB(100, 100, 100),
		ParticleAlpha: 0.4,
		Link:          RGB(100, 100, 100),
		LinkAlpha:     0.15,
		LinkWidth:     0.5,
		Trail: []Stop{
			{0, RGBA{RGB(239, 68, 68), 0.8}}, // red-500
			{0.5, RGBA{RGB(220, 38, 38), 0.5}},
			{1, RGBA{RGB(185, 28, 28), 0}},
		},
		TrailAlpha: 0.8,
		FieldBlend: BlendMultiply,
	}
)

func PaletteFor(dark bool) Palette {
	if dark {
		return DarkPalette
	}
	return LightPalette
}
