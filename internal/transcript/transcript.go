// Package transcript serializes a terminal session's output for hosts that
// are not a live TUI: `termfolio exec` and the HTTP API.
package transcript

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/fakeyudi/termfolio/internal/terminal"
	"github.com/fakeyudi/termfolio/internal/theme"
)

// Transcript is a snapshot of a session's output and location.
type Transcript struct {
	Path   string                `json:"path"`
	Repo   string                `json:"repo,omitempty"`
	Lines  []terminal.OutputLine `json:"lines"`
	Opened []string              `json:"opened,omitempty"`
}

// FromState snapshots s. opened lists URLs the session asked to open.
func FromState(s *terminal.State, opened []string) *Transcript {
	repo, _ := s.Repo()
	return &Transcript{
		Path:   s.Path(),
		Repo:   repo,
		Lines:  s.Output(),
		Opened: opened,
	}
}

// Renderer serializes a Transcript to bytes.
type Renderer interface {
	Render(t *Transcript) ([]byte, error)
}

// PlainRenderer writes the line texts, one per line.
type PlainRenderer struct{}

func (r *PlainRenderer) Render(t *Transcript) ([]byte, error) {
	var sb strings.Builder
	for _, l := range t.Lines {
		sb.WriteString(l.Text)
		sb.WriteByte('\n')
	}
	return []byte(sb.String()), nil
}

// ANSIRenderer writes each line coloured with its theme style.
type ANSIRenderer struct {
	Styles theme.Styles
}

func (r *ANSIRenderer) Render(t *Transcript) ([]byte, error) {
	var sb strings.Builder
	for _, l := range t.Lines {
		if l.Text != "" {
			sb.WriteString(r.Styles.For(l.Color).Render(l.Text))
		}
		sb.WriteByte('\n')
	}
	return []byte(sb.String()), nil
}

// JSONRenderer renders a Transcript as indented JSON.
type JSONRenderer struct{}

func (r *JSONRenderer) Render(t *Transcript) ([]byte, error) {
	return json.MarshalIndent(t, "", "  ")
}

// ForFormat returns the renderer for "text", "ansi" or "json".
func ForFormat(format string, styles theme.Styles) (Renderer, error) {
	switch format {
	case "", "text":
		return &PlainRenderer{}, nil
	case "ansi":
		return &ANSIRenderer{Styles: styles}, nil
	case "json":
		return &JSONRenderer{}, nil
	default:
		return nil, fmt.Errorf("unknown format %q: must be text, ansi or json", format)
	}
}
