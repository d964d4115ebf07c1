// Package tui hosts the portfolio terminal in a Bubble Tea program, locally
// or inside an SSH session.
package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
	"github.com/sirupsen/logrus"

	"github.com/fakeyudi/termfolio/internal/crt"
	"github.com/fakeyudi/termfolio/internal/opener"
	"github.com/fakeyudi/termfolio/internal/projects"
	"github.com/fakeyudi/termfolio/internal/shell"
	"github.com/fakeyudi/termfolio/internal/terminal"
	"github.com/fakeyudi/termfolio/internal/theme"
)

// Options configures one terminal session.
type Options struct {
	Profile   shell.ProfileSource
	Catalog   *projects.Catalog
	Opener    opener.Opener
	BrowseURL string

	Palette  theme.Palette
	Renderer *lipgloss.Renderer // nil uses the default renderer

	PromptUser string // shown in the title bar as <user>@termfolio
	SkipBoot   bool
	Log        *logrus.Entry
}

// ── Messages ──────────────────────────────────────────────────────────────────

type bootTickMsg struct{}

type projectsReadyMsg struct{}

func bootTick() tea.Cmd {
	return tea.Tick(time.Second/crt.FrameRate, func(time.Time) tea.Msg { return bootTickMsg{} })
}

func waitForProjects(c *projects.Catalog) tea.Cmd {
	return func() tea.Msg {
		<-c.Ready()
		return projectsReadyMsg{}
	}
}

// ── Model ─────────────────────────────────────────────────────────────────────

// fixed rows: title bar, prompt line, status bar
const chromeRows = 3

// Model is the root Bubble Tea model of a terminal session.
type Model struct {
	term    *terminal.State
	exec    *shell.Executor
	catalog *projects.Catalog
	exiting *bool

	styles     theme.Styles
	titleStyle lipgloss.Style
	barStyle   lipgloss.Style
	promptUser string

	keys     keyMap
	help     help.Model
	viewport viewport.Model
	spinner  spinner.Model

	width   int
	height  int
	ready   bool
	booting bool
	frame   int
}

// New creates a session model. The welcome banner is already in the
// transcript when the first frame is drawn.
func New(opts Options) Model {
	if opts.Catalog == nil {
		opts.Catalog = projects.NewCatalog()
	}
	if opts.Palette.Name == "" {
		opts.Palette = theme.Green
	}
	if opts.PromptUser == "" {
		opts.PromptUser = "guest"
	}
	r := opts.Renderer
	if r == nil {
		r = lipgloss.DefaultRenderer()
	}

	exiting := new(bool)
	term := terminal.New()
	exec := &shell.Executor{
		Term:      term,
		Profile:   opts.Profile,
		Projects:  opts.Catalog,
		Opener:    opts.Opener,
		BrowseURL: opts.BrowseURL,
		OnExit:    func() { *exiting = true },
		Log:       opts.Log,
	}
	exec.Welcome()

	pal := opts.Palette
	sp := spinner.New(spinner.WithSpinner(spinner.Dot))
	sp.Style = r.NewStyle().Foreground(pal.Accent)
	h := help.New()
	h.Styles.ShortKey = r.NewStyle().Foreground(pal.Accent)
	h.Styles.ShortDesc = r.NewStyle().Foreground(pal.Dim)
	h.Styles.ShortSeparator = r.NewStyle().Foreground(pal.Dim)

	return Model{
		term:       term,
		exec:       exec,
		catalog:    opts.Catalog,
		exiting:    exiting,
		styles:     pal.Styles(r),
		titleStyle: r.NewStyle().Bold(true).Foreground(pal.Background).Background(pal.Foreground).Padding(0, 1),
		barStyle:   r.NewStyle().Foreground(pal.Dim),
		promptUser: opts.PromptUser,
		keys:       defaultKeys(),
		help:       h,
		spinner:    sp,
		booting:    !opts.SkipBoot,
	}
}

// ── Bubble Tea interface ──────────────────────────────────────────────────────

func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{waitForProjects(m.catalog), m.spinner.Tick}
	if m.booting {
		cmds = append(cmds, bootTick())
	}
	return tea.Batch(cmds...)
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true
		m.viewport = viewport.New(m.width, max(m.height-chromeRows, 1))
		m.sync()
		return m, nil

	case bootTickMsg:
		if !m.booting {
			return m, nil
		}
		m.frame++
		if m.frame >= crt.PowerOnFrames {
			m.booting = false
			return m, nil
		}
		return m, bootTick()

	case projectsReadyMsg:
		m.sync()
		return m, nil

	case spinner.TickMsg:
		if m.catalog.Loaded() {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tea.MouseMsg:
		if msg.Action != tea.MouseActionPress {
			return m, nil
		}
		switch msg.Button {
		case tea.MouseButtonWheelUp:
			m.scroll(-3)
		case tea.MouseButtonWheelDown:
			m.scroll(3)
		}
		return m, nil

	case tea.KeyMsg:
		if key.Matches(msg, m.keys.Quit) {
			return m, tea.Quit
		}
		if m.booting {
			m.booting = false
			return m, nil
		}
		return m.handleKey(msg)
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Submit):
		input := m.term.Input()
		m.term.SetInput("")
		if strings.TrimSpace(input) == "" {
			return m, nil
		}
		m.term.RecordSubmittedCommand(input)
		m.exec.Execute(input)
		m.sync()
		if *m.exiting {
			return m, tea.Quit
		}
		return m, nil

	case key.Matches(msg, m.keys.HistoryPrev):
		m.term.SetInput(m.term.PreviousHistoryEntry())
	case key.Matches(msg, m.keys.HistoryNext):
		m.term.SetInput(m.term.NextHistoryEntry())

	case key.Matches(msg, m.keys.ScrollUp):
		m.scroll(-1)
	case key.Matches(msg, m.keys.ScrollDown):
		m.scroll(1)
	case key.Matches(msg, m.keys.PageUp):
		m.scroll(-m.page())
	case key.Matches(msg, m.keys.PageDown):
		m.scroll(m.page())

	case key.Matches(msg, m.keys.Complete):
		c := m.exec.Complete(m.term.Input())
		if len(c.Candidates) > 1 {
			m.exec.ShowCandidates(m.term.Input(), c.Candidates)
			m.sync()
		}
		m.term.SetInput(c.Input)

	case key.Matches(msg, m.keys.Backspace):
		m.term.Backspace()
	case key.Matches(msg, m.keys.ClearLine):
		m.term.SetInput("")
	case key.Matches(msg, m.keys.ClearScreen):
		m.term.ClearOutput()
		m.sync()

	case msg.Type == tea.KeySpace:
		m.term.AppendInput(" ")
	case msg.Type == tea.KeyRunes:
		// Pasted text arrives here too, as one message.
		m.term.AppendInput(string(msg.Runes))
	}
	return m, nil
}

func (m *Model) page() int {
	return max(m.viewport.Height-1, 1)
}

func (m *Model) scroll(delta int) {
	m.term.ScrollBy(delta, m.viewport.Height)
	m.sync()
}

// sync redraws the viewport from the transcript window selected by the
// terminal's scroll offset.
func (m *Model) sync() {
	if !m.ready {
		return
	}
	visible := m.viewport.Height
	out := m.term.Output()
	start := m.term.VisibleOffset(visible)
	end := min(start+visible, len(out))

	lines := make([]string, 0, visible)
	for _, l := range out[start:end] {
		text := runewidth.Truncate(l.Text, m.width, "…")
		lines = append(lines, m.styles.For(l.Color).Render(text))
	}
	m.viewport.SetContent(strings.Join(lines, "\n"))
}

func (m Model) View() string {
	if !m.ready {
		return "Loading…"
	}
	if m.booting {
		return m.bootView()
	}

	title := m.titleStyle.Width(m.width).Render(
		runewidth.Truncate(fmt.Sprintf("%s@termfolio  %s", m.promptUser, m.term.Path()), max(m.width-2, 0), "…"))

	prompt := m.styles.Prompt.Render("> ") +
		m.styles.Text.Render(m.term.Input()) +
		m.styles.Accent.Render("█")

	return lipgloss.JoinVertical(lipgloss.Left, title, m.viewport.View(), prompt, m.statusBar())
}

// statusBar shows key hints on the left and, on the right, the history
// cursor while browsing, a marker while scrolled back, and the repository
// count.
func (m Model) statusBar() string {
	var right []string
	if n := len(m.term.History()); m.term.HistoryIndex() < n {
		right = append(right, fmt.Sprintf("history %d/%d", m.term.HistoryIndex()+1, n))
	}
	if m.term.ScrollOffset() < m.term.Len()-m.viewport.Height {
		right = append(right, "↑ scrolled")
	}
	if m.catalog.Loaded() {
		right = append(right, fmt.Sprintf("%d repositories", len(m.catalog.Projects())))
	} else {
		right = append(right, m.spinner.View()+" loading repositories")
	}
	status := strings.Join(right, " · ")
	hints := m.help.ShortHelpView(m.keys.ShortHelp())
	pad := m.width - lipgloss.Width(hints) - lipgloss.Width(status) - 1
	if pad < 1 {
		return m.barStyle.Render(status)
	}
	return hints + strings.Repeat(" ", pad) + m.barStyle.Render(status)
}

// bootView draws the power-on picture: a frame that grows from a line to
// nearly the full screen with a loading caption inside.
func (m Model) bootView() string {
	p := crt.Progress(m.frame)
	bw, bh := crt.Box(m.width, m.height, p)

	var body string
	if bw < 4 || bh < 3 {
		body = m.styles.Accent.Render(strings.Repeat("─", bw))
	} else {
		inner := bw - 2
		stage := crt.StageAt(p)
		caption := stage.Caption
		if crt.Warmup(p) {
			caption = "WARMING UP..."
		}
		rows := []string{runewidth.Truncate(caption, inner, "")}
		if bh-2 >= 2 {
			rows = append(rows, m.styles.Accent.Render(loadingBar(stage.Fill, min(inner, 30))))
		}
		body = m.styles.Frame.
			Width(inner).
			Height(bh-2).
			Align(lipgloss.Center, lipgloss.Center).
			Render(m.styles.Text.Render(lipgloss.JoinVertical(lipgloss.Center, rows...)))
	}
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, body)
}

func loadingBar(fill float64, width int) string {
	n := int(fill * float64(width))
	return strings.Repeat("█", n) + strings.Repeat("░", width-n)
}

// Run starts a local session on the controlling terminal.
func Run(opts Options) error {
	p := tea.NewProgram(New(opts), tea.WithAltScreen(), tea.WithMouseCellMotion())
	_, err := p.Run()
	return err
}
