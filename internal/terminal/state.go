// Package terminal holds the per-session state of the portfolio terminal:
// the bounded transcript, the line being edited, command history and the
// position in the fake project filesystem.
package terminal

import (
	"strings"
	"unicode/utf8"
)

// MaxLines is the number of transcript lines kept before the oldest are evicted.
const MaxLines = 100

// Well-known locations of the fake filesystem.
const (
	HomePath     = "~"
	ProjectsPath = "~/projects"
)

// Color is the semantic colour of a transcript line. Hosts map it to real
// colours through a theme.
type Color int

const (
	ColorDefault Color = iota
	ColorPrompt
	ColorAccent
	ColorInfo
	ColorError
)

var colorNames = [...]string{"default", "prompt", "accent", "info", "error"}

func (c Color) String() string {
	if c < 0 || int(c) >= len(colorNames) {
		return "default"
	}
	return colorNames[c]
}

// MarshalText encodes the colour by name so JSON transcripts stay readable.
func (c Color) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

// OutputLine is one line of transcript.
type OutputLine struct {
	Text  string `json:"text"`
	Color Color  `json:"color"`
}

// State is the mutable terminal session. It is not safe for concurrent use;
// each host owns one State per session.
type State struct {
	output       []OutputLine
	input        string
	history      []string
	historyIndex int
	scrollOffset int
	path         string
	repo         string
}

// New returns a State positioned at the home directory with empty buffers.
func New() *State {
	return &State{path: HomePath}
}

// ── Transcript ────────────────────────────────────────────────────────────────

// AddOutput appends a line in the given colour, evicting the oldest line once
// the buffer exceeds MaxLines, and scrolls to the bottom.
func (s *State) AddOutput(text string, color Color) {
	s.output = append(s.output, OutputLine{Text: text, Color: color})
	if len(s.output) > MaxLines {
		// Copy down so the backing array does not grow without bound.
		n := copy(s.output, s.output[len(s.output)-MaxLines:])
		s.output = s.output[:n]
	}
	s.scrollOffset = len(s.output)
}

// AddLine appends a line in the default colour.
func (s *State) AddLine(text string) {
	s.AddOutput(text, ColorDefault)
}

// ClearOutput empties the transcript. Input, history and location are kept.
func (s *State) ClearOutput() {
	s.output = nil
}

// Output returns a copy of the transcript, oldest first.
func (s *State) Output() []OutputLine {
	out := make([]OutputLine, len(s.output))
	copy(out, s.output)
	return out
}

// Len returns the number of transcript lines.
func (s *State) Len() int {
	return len(s.output)
}

// ScrollOffset returns the raw scroll offset. After any AddOutput it equals Len.
func (s *State) ScrollOffset() int {
	return s.scrollOffset
}

// VisibleOffset returns the index of the first line to draw when visible
// lines fit on screen: the raw offset clamped to [0, max(0, Len-visible)].
func (s *State) VisibleOffset(visible int) int {
	maxOffset := len(s.output) - visible
	if maxOffset < 0 {
		maxOffset = 0
	}
	switch {
	case s.scrollOffset < 0:
		return 0
	case s.scrollOffset > maxOffset:
		return maxOffset
	}
	return s.scrollOffset
}

// ScrollBy moves the view by delta lines (negative scrolls towards older
// output). The offset is normalised to the visible window first so a single
// step is always noticeable.
func (s *State) ScrollBy(delta, visible int) {
	s.scrollOffset = s.VisibleOffset(visible) + delta
	s.scrollOffset = s.VisibleOffset(visible)
}

// ── Input line ────────────────────────────────────────────────────────────────

// Input returns the line being edited.
func (s *State) Input() string {
	return s.input
}

// SetInput replaces the line being edited.
func (s *State) SetInput(text string) {
	s.input = text
}

// AppendInput adds typed or pasted text to the line being edited. Line breaks
// are dropped; a submission is always a single line.
func (s *State) AppendInput(text string) {
	text = strings.NewReplacer("\r", "", "\n", "").Replace(text)
	s.input += text
}

// Backspace removes the last rune of the input line.
func (s *State) Backspace() {
	if s.input == "" {
		return
	}
	_, size := utf8.DecodeLastRuneInString(s.input)
	s.input = s.input[:len(s.input)-size]
}

// ── History ───────────────────────────────────────────────────────────────────

// RecordSubmittedCommand appends text to the history (duplicates included) and
// stops any history browsing.
func (s *State) RecordSubmittedCommand(text string) {
	s.history = append(s.history, text)
	s.historyIndex = len(s.history)
}

// PreviousHistoryEntry steps one entry back in history and returns it. At the
// oldest entry (or with no history) it returns the current input unchanged.
func (s *State) PreviousHistoryEntry() string {
	if s.historyIndex > 0 {
		s.historyIndex--
		return s.history[s.historyIndex]
	}
	return s.input
}

// NextHistoryEntry steps one entry forward. Moving past the newest entry
// returns "" and leaves the cursor on a fresh line.
func (s *State) NextHistoryEntry() string {
	if s.historyIndex < len(s.history)-1 {
		s.historyIndex++
		return s.history[s.historyIndex]
	}
	s.historyIndex = len(s.history)
	return ""
}

// History returns a copy of the submitted commands, oldest first.
func (s *State) History() []string {
	out := make([]string, len(s.history))
	copy(out, s.history)
	return out
}

// HistoryIndex returns the browsing cursor; len(History()) means not browsing.
func (s *State) HistoryIndex() int {
	return s.historyIndex
}

// ── Location ──────────────────────────────────────────────────────────────────

// Path returns the current directory: "~", "~/projects" or "~/projects/<name>".
func (s *State) Path() string {
	return s.path
}

// Repo returns the source identifier of the entered project, if any.
func (s *State) Repo() (string, bool) {
	return s.repo, s.repo != ""
}

// SetLocation moves to path. repo must be non-empty exactly when path names a
// single project.
func (s *State) SetLocation(path, repo string) {
	s.path = path
	s.repo = repo
}

// GoHome moves back to "~" and forgets the entered project.
func (s *State) GoHome() {
	s.SetLocation(HomePath, "")
}
