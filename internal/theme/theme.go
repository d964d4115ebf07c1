// Package theme maps the terminal's semantic colours to phosphor palettes.
package theme

import (
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/fakeyudi/termfolio/internal/terminal"
)

// Palette is one phosphor colour scheme.
type Palette struct {
	Name       string
	Background lipgloss.Color
	Foreground lipgloss.Color
	Accent     lipgloss.Color // prompt echoes and section titles
	Info       lipgloss.Color
	Error      lipgloss.Color
	Dim        lipgloss.Color
}

var (
	Green = Palette{
		Name:       "green",
		Background: lipgloss.Color("#0D110D"),
		Foreground: lipgloss.Color("#33FF33"),
		Accent:     lipgloss.Color("#66FF66"),
		Info:       lipgloss.Color("#29CC29"),
		Error:      lipgloss.Color("#FF4444"),
		Dim:        lipgloss.Color("#24BB24"),
	}
	Amber = Palette{
		Name:       "amber",
		Background: lipgloss.Color("#110D05"),
		Foreground: lipgloss.Color("#FFB000"),
		Accent:     lipgloss.Color("#FFCC66"),
		Info:       lipgloss.Color("#CC8C00"),
		Error:      lipgloss.Color("#FF4444"),
		Dim:        lipgloss.Color("#996A00"),
	}
)

var palettes = map[string]Palette{
	Green.Name: Green,
	Amber.Name: Amber,
}

// Lookup returns the palette called name; "" selects green.
func Lookup(name string) (Palette, error) {
	if name == "" {
		return Green, nil
	}
	p, ok := palettes[strings.ToLower(name)]
	if !ok {
		return Palette{}, fmt.Errorf("unknown theme %q (available: %s)", name, strings.Join(Names(), ", "))
	}
	return p, nil
}

// Names lists the available palettes.
func Names() []string {
	out := make([]string, 0, len(palettes))
	for n := range palettes {
		out = append(out, n)
	}
	sort.Strings(out)
	return out
}

// Styles are a palette's lipgloss styles bound to one renderer.
type Styles struct {
	Text   lipgloss.Style
	Prompt lipgloss.Style
	Accent lipgloss.Style
	Info   lipgloss.Style
	Error  lipgloss.Style
	Dim    lipgloss.Style
	Frame  lipgloss.Style
}

// Styles builds the palette's styles with r; a nil renderer uses lipgloss's
// default one. SSH sessions pass a renderer bound to their own output.
func (p Palette) Styles(r *lipgloss.Renderer) Styles {
	if r == nil {
		r = lipgloss.DefaultRenderer()
	}
	return Styles{
		Text:   r.NewStyle().Foreground(p.Foreground),
		Prompt: r.NewStyle().Foreground(p.Accent).Bold(true),
		Accent: r.NewStyle().Foreground(p.Accent),
		Info:   r.NewStyle().Foreground(p.Info).Italic(true),
		Error:  r.NewStyle().Foreground(p.Error),
		Dim:    r.NewStyle().Foreground(p.Dim),
		Frame: r.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(p.Dim),
	}
}

// For returns the style of a transcript colour.
func (s Styles) For(c terminal.Color) lipgloss.Style {
	switch c {
	case terminal.ColorPrompt:
		return s.Prompt
	case terminal.ColorAccent:
		return s.Accent
	case terminal.ColorInfo:
		return s.Info
	case terminal.ColorError:
		return s.Error
	default:
		return s.Text
	}
}
