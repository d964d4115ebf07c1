package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Submit      key.Binding
	HistoryPrev key.Binding
	HistoryNext key.Binding
	ScrollUp    key.Binding
	ScrollDown  key.Binding
	PageUp      key.Binding
	PageDown    key.Binding
	Complete    key.Binding
	Backspace   key.Binding
	ClearLine   key.Binding
	ClearScreen key.Binding
	Quit        key.Binding
}

func defaultKeys() keyMap {
	return keyMap{
		Submit:      key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "run")),
		HistoryPrev: key.NewBinding(key.WithKeys("up"), key.WithHelp("↑/↓", "history")),
		HistoryNext: key.NewBinding(key.WithKeys("down")),
		ScrollUp:    key.NewBinding(key.WithKeys("shift+up")),
		ScrollDown:  key.NewBinding(key.WithKeys("shift+down")),
		PageUp:      key.NewBinding(key.WithKeys("pgup"), key.WithHelp("pgup/pgdn", "scroll")),
		PageDown:    key.NewBinding(key.WithKeys("pgdown")),
		Complete:    key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "complete")),
		Backspace:   key.NewBinding(key.WithKeys("backspace")),
		ClearLine:   key.NewBinding(key.WithKeys("ctrl+u")),
		ClearScreen: key.NewBinding(key.WithKeys("ctrl+l"), key.WithHelp("ctrl+l", "clear")),
		Quit:        key.NewBinding(key.WithKeys("ctrl+c", "ctrl+d"), key.WithHelp("ctrl+c", "quit")),
	}
}

// ShortHelp lists the bindings shown in the status bar.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Submit, k.HistoryPrev, k.Complete, k.PageUp, k.ClearScreen, k.Quit}
}
