package tui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/fakeyudi/termfolio/internal/crt"
	"github.com/fakeyudi/termfolio/internal/opener"
	"github.com/fakeyudi/termfolio/internal/profile"
	"github.com/fakeyudi/termfolio/internal/projects"
	"github.com/fakeyudi/termfolio/internal/terminal"
)

func newModel(t *testing.T, skipBoot bool) (Model, *projects.Catalog, *opener.Recorder) {
	t.Helper()
	cat := projects.NewCatalog()
	rec := &opener.Recorder{}
	m := New(Options{
		Profile:  profile.Default(),
		Catalog:  cat,
		Opener:   rec,
		SkipBoot: skipBoot,
	})
	return step(m, tea.WindowSizeMsg{Width: 80, Height: 24}), cat, rec
}

func step(m Model, msgs ...tea.Msg) Model {
	for _, msg := range msgs {
		next, _ := m.Update(msg)
		m = next.(Model)
	}
	return m
}

func typeText(s string) tea.Msg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

var enter = tea.KeyMsg{Type: tea.KeyEnter}

func contains(s *terminal.State, text string) bool {
	for _, l := range s.Output() {
		if strings.Contains(l.Text, text) {
			return true
		}
	}
	return false
}

func TestWelcomeShownOnStart(t *testing.T) {
	m, _, _ := newModel(t, true)
	if !contains(m.term, "JANE DOE - PORTFOLIO") {
		t.Error("welcome banner missing")
	}
	if !strings.Contains(m.View(), "PORTFOLIO") {
		t.Error("banner not rendered in view")
	}
}

func TestTypeAndSubmit(t *testing.T) {
	m, _, _ := newModel(t, true)
	m = step(m, typeText("pw"), typeText("d"), enter)

	if m.term.Input() != "" {
		t.Errorf("input = %q after submit, want empty", m.term.Input())
	}
	if h := m.term.History(); len(h) != 1 || h[0] != "pwd" {
		t.Errorf("history = %v", h)
	}
	if !contains(m.term, "> pwd") {
		t.Error("command not echoed")
	}
}

func TestBlankSubmitIgnored(t *testing.T) {
	m, _, _ := newModel(t, true)
	before := m.term.Len()
	m = step(m, tea.KeyMsg{Type: tea.KeySpace}, enter)
	if m.term.Len() != before || len(m.term.History()) != 0 {
		t.Errorf("blank submit changed state: len %d -> %d, history %v", before, m.term.Len(), m.term.History())
	}
}

func TestHistoryNavigation(t *testing.T) {
	m, _, _ := newModel(t, true)
	m = step(m, typeText("help"), enter, typeText("about"), enter)

	up := tea.KeyMsg{Type: tea.KeyUp}
	down := tea.KeyMsg{Type: tea.KeyDown}

	m = step(m, up)
	if m.term.Input() != "about" {
		t.Fatalf("after up: %q", m.term.Input())
	}
	m = step(m, up, up)
	if m.term.Input() != "help" {
		t.Fatalf("after up x3: %q", m.term.Input())
	}
	if bar := m.statusBar(); !strings.Contains(bar, "history 1/2") {
		t.Errorf("status bar while browsing: %q", bar)
	}
	m = step(m, down, down)
	if m.term.Input() != "" {
		t.Fatalf("after down past newest: %q", m.term.Input())
	}
	if bar := m.statusBar(); strings.Contains(bar, "history") {
		t.Errorf("status bar after browsing: %q", bar)
	}
}

func TestBackspaceAndClearLine(t *testing.T) {
	m, _, _ := newModel(t, true)
	m = step(m, typeText("héllo"), tea.KeyMsg{Type: tea.KeyBackspace})
	if m.term.Input() != "héll" {
		t.Errorf("after backspace: %q", m.term.Input())
	}
	m = step(m, tea.KeyMsg{Type: tea.KeyCtrlU})
	if m.term.Input() != "" {
		t.Errorf("after ctrl+u: %q", m.term.Input())
	}
}

func TestPasteDropsNewlines(t *testing.T) {
	m, _, _ := newModel(t, true)
	m = step(m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("cd\nprojects"), Paste: true})
	if m.term.Input() != "cdprojects" {
		t.Errorf("input = %q", m.term.Input())
	}
}

func TestTabCompletes(t *testing.T) {
	m, _, _ := newModel(t, true)
	m = step(m, typeText("expe"), tea.KeyMsg{Type: tea.KeyTab})
	if m.term.Input() != "experience" {
		t.Errorf("input = %q", m.term.Input())
	}
}

func TestCtrlLClears(t *testing.T) {
	m, _, _ := newModel(t, true)
	m = step(m, tea.KeyMsg{Type: tea.KeyCtrlL})
	if m.term.Len() != 0 {
		t.Errorf("Len() = %d after ctrl+l", m.term.Len())
	}
}

func TestExitQuits(t *testing.T) {
	m, _, _ := newModel(t, true)
	m = step(m, typeText("exit"))
	_, cmd := m.Update(enter)
	if cmd == nil {
		t.Fatal("expected a quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("exit did not quit the program")
	}
}

func TestCtrlCQuitsDuringBoot(t *testing.T) {
	m, _, _ := newModel(t, false)
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyCtrlC})
	if cmd == nil {
		t.Fatal("expected a quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("ctrl+c did not quit")
	}
}

func TestBootRunsThenHandsOver(t *testing.T) {
	m, _, _ := newModel(t, false)
	if !m.booting {
		t.Fatal("expected boot animation")
	}
	// A quarter of the way in, the picture is fully wide and still warming up.
	quarter := crt.PowerOnFrames / 4
	for i := 0; i < quarter; i++ {
		m = step(m, bootTickMsg{})
	}
	if !strings.Contains(m.View(), "WARMING UP...") {
		t.Errorf("boot view at frame %d:\n%s", quarter, m.View())
	}
	for i := quarter; i < crt.PowerOnFrames; i++ {
		m = step(m, bootTickMsg{})
	}
	if m.booting {
		t.Error("still booting after the full sequence")
	}
}

func TestAnyKeySkipsBoot(t *testing.T) {
	m, _, _ := newModel(t, false)
	m = step(m, typeText("x"))
	if m.booting {
		t.Error("key press did not skip boot")
	}
	if m.term.Input() != "" {
		t.Errorf("skip key leaked into input: %q", m.term.Input())
	}
}

func TestProjectsArriveWhileRunning(t *testing.T) {
	m, cat, rec := newModel(t, true)
	m = step(m, typeText("cd projects"), enter)
	if !strings.Contains(m.View(), "loading repositories") {
		t.Error("status bar does not show loading")
	}

	cat.Resolve([]projects.Project{{Name: "demo", Repo: "u/demo"}})
	m = step(m, projectsReadyMsg{}, typeText("cd demo"), enter, typeText("open main.go"), enter)

	if got := rec.Drain(); len(got) != 1 || got[0] != "https://github.com/u/demo/blob/main/main.go" {
		t.Errorf("opened %v", got)
	}
	if !strings.Contains(m.View(), "1 repositories") {
		t.Error("status bar does not show the count")
	}
}

func TestScrollKeys(t *testing.T) {
	m, _, _ := newModel(t, true)
	for i := 0; i < 5; i++ {
		m = step(m, typeText("help"), enter)
	}
	visible := m.viewport.Height
	bottom := m.term.VisibleOffset(visible)

	if strings.Contains(m.statusBar(), "scrolled") {
		t.Error("scrolled marker shown at the bottom")
	}

	m = step(m, tea.KeyMsg{Type: tea.KeyPgUp})
	if got := m.term.VisibleOffset(visible); got >= bottom {
		t.Errorf("pgup: offset %d, want below %d", got, bottom)
	}
	if !strings.Contains(m.statusBar(), "scrolled") {
		t.Errorf("scrolled marker missing: %q", m.statusBar())
	}
	m = step(m, tea.KeyMsg{Type: tea.KeyPgDown}, tea.KeyMsg{Type: tea.KeyPgDown})
	if got := m.term.VisibleOffset(visible); got != bottom {
		t.Errorf("pgdown: offset %d, want %d", got, bottom)
	}
	if strings.Contains(m.statusBar(), "scrolled") {
		t.Error("scrolled marker still shown after returning to the bottom")
	}

	m = step(m, tea.MouseMsg{Action: tea.MouseActionPress, Button: tea.MouseButtonWheelUp})
	if got := m.term.VisibleOffset(visible); got != bottom-3 {
		t.Errorf("wheel up: offset %d, want %d", got, bottom-3)
	}
}
