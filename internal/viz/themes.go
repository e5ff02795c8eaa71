package viz

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/san-kum/backdrop/internal/render"
)

// Theme is the UI chrome around the canvas. The canvas itself is colored by
// render.Palette.
type Theme struct {
	Name       string
	Primary    lipgloss.Color
	Accent     lipgloss.Color
	Background lipgloss.Color
	Text       lipgloss.Color
	Muted      lipgloss.Color
	Warning    lipgloss.Color
	Error      lipgloss.Color
}

var (
	ThemeDark = Theme{
		Name:       "dark",
		Primary:    lipgloss.Color("#93c5fd"), // blue-300
		Accent:     lipgloss.Color("#3b82f6"),
		Background: lipgloss.Color(render.DarkPalette.Background.Hex()),
		Text:       lipgloss.Color("#e5e5e5"),
		Muted:      lipgloss.Color("#666666"),
		Warning:    lipgloss.Color("#ffaa00"),
		Error:      lipgloss.Color("#ff4444"),
	}

	ThemeLight = Theme{
		Name:       "light",
		Primary:    lipgloss.Color("#dc2626"), // red-600
		Accent:     lipgloss.Color("#ef4444"),
		Background: lipgloss.Color(render.LightPalette.Background.Hex()),
		Text:       lipgloss.Color("#262626"),
		Muted:      lipgloss.Color("#8a8a8a"),
		Warning:    lipgloss.Color("#b45309"),
		Error:      lipgloss.Color("#b91c1c"),
	}
)

func ThemeFor(dark bool) Theme {
	if dark {
		return ThemeDark
	}
	return ThemeLight
}
