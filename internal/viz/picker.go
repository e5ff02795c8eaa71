package viz

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

var (
	cyan   = lipgloss.NewStyle().Foreground(lipgloss.Color("86"))
	white  = lipgloss.NewStyle().Foreground(lipgloss.Color("255"))
	dim    = lipgloss.NewStyle().Foreground(lipgloss.Color("242"))
	dimmer = lipgloss.NewStyle().Foreground(lipgloss.Color("238"))

	errStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("203"))
)

// Picker is a preset menu that hands over to the live view once a preset
// is chosen.
type Picker struct {
	presets []string
	info    map[string]string
	cursor  int
	build   func(preset string) (Model, error)
	err     error

	live          *Model
	width, height int
}

func NewPicker(presets []string, info map[string]string, build func(preset string) (Model, error)) Picker {
	return Picker{presets: presets, info: info, build: build}
}

// Chosen returns the selected preset, or "" while the menu is showing.
func (p Picker) Chosen() string {
	if p.live == nil {
		return ""
	}
	return p.presets[p.cursor]
}

func (p Picker) Init() tea.Cmd { return nil }

func (p Picker) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if p.live != nil {
		next, cmd := p.live.Update(msg)
		live := next.(Model)
		p.live = &live
		return p, cmd
	}
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		p.width, p.height = msg.Width, msg.Height
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return p, tea.Quit
		case "up", "k":
			if p.cursor > 0 {
				p.cursor--
			}
		case "down", "j":
			if p.cursor < len(p.presets)-1 {
				p.cursor++
			}
		case "enter", " ":
			if len(p.presets) == 0 {
				return p, tea.Quit
			}
			live, err := p.build(p.presets[p.cursor])
			if err != nil {
				p.err = err
				return p, nil
			}
			p.err = nil
			p.live = &live
			cmds := []tea.Cmd{live.Init()}
			if p.width > 0 {
				size := tea.WindowSizeMsg{Width: p.width, Height: p.height}
				cmds = append(cmds, func() tea.Msg { return size })
			}
			return p, tea.Batch(cmds...)
		}
	}
	return p, nil
}

func (p Picker) View() string {
	if p.live != nil {
		return p.live.View()
	}
	var s strings.Builder
	s.WriteString(cyan.Bold(true).Render("backdrop") + dim.Render("  choose a preset") + "\n\n")
	for i, name := range p.presets {
		line := fmt.Sprintf("%-8s %s", name, dimmer.Render(p.info[name]))
		if i == p.cursor {
			s.WriteString(cyan.Render("> ") + white.Render(line) + "\n")
		} else {
			s.WriteString("  " + dim.Render(line) + "\n")
		}
	}
	if p.err != nil {
		s.WriteString("\n" + errStyle.Render(p.err.Error()) + "\n")
	}
	s.WriteString("\n" + dimmer.Render("↑↓ select  enter start  q quit"))
	return lipgloss.NewStyle().Padding(1, 2).Render(s.String())
}
