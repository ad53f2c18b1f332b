package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/javiermolinar/showcal/internal/calendar"
	"github.com/javiermolinar/showcal/internal/tui/commands"
)

// keyMap holds the TUI key bindings. It implements help.KeyMap.
type keyMap struct {
	Prev  key.Binding
	Next  key.Binding
	Today key.Binding
	Down  key.Binding
	Up    key.Binding
	Retry key.Binding
	Copy  key.Binding
	Init  key.Binding
	Help  key.Binding
	Quit  key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Prev: key.NewBinding(
			key.WithKeys("h", "left"),
			key.WithHelp("h/←", "prev week"),
		),
		Next: key.NewBinding(
			key.WithKeys("l", "right"),
			key.WithHelp("l/→", "next week"),
		),
		Today: key.NewBinding(
			key.WithKeys("t"),
			key.WithHelp("t", "this week"),
		),
		Down: key.NewBinding(
			key.WithKeys("j", "down"),
			key.WithHelp("j/↓", "scroll down"),
		),
		Up: key.NewBinding(
			key.WithKeys("k", "up"),
			key.WithHelp("k/↑", "scroll up"),
		),
		Retry: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "retry failed"),
		),
		Copy: key.NewBinding(
			key.WithKeys("y"),
			key.WithHelp("y", "copy week"),
		),
		Init: key.NewBinding(
			key.WithKeys("i"),
			key.WithHelp("i", "write config"),
			key.WithDisabled(),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// ShortHelp implements help.KeyMap.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Prev, k.Next, k.Today, k.Copy, k.Init, k.Help, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Prev, k.Next, k.Today},
		{k.Down, k.Up},
		{k.Retry, k.Copy, k.Init},
		{k.Help, k.Quit},
	}
}

// handleKeyMsg handles keyboard input.
func (m Model) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	m.events.keyPress(msg)

	// The help overlay swallows everything except its own toggles.
	if m.showHelp {
		switch {
		case key.Matches(msg, m.keys.Help), msg.String() == "esc":
			m.showHelp = false
			return m, nil
		case key.Matches(msg, m.keys.Quit):
			return m.quit()
		}
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m.quit()
	case key.Matches(msg, m.keys.Help):
		m.showHelp = true
		return m, nil
	case key.Matches(msg, m.keys.Prev):
		return m.moveWindow(m.window.Prev(), "prev")
	case key.Matches(msg, m.keys.Next):
		return m.moveWindow(m.window.Next(), "next")
	case key.Matches(msg, m.keys.Today):
		return m.moveWindow(calendar.WeekOf(m.now(), m.weekStart), "today")
	case key.Matches(msg, m.keys.Down):
		m.offset = min(m.offset+1, max(len(m.render.Rows)-1, 0))
		return m, nil
	case key.Matches(msg, m.keys.Up):
		m.offset = max(m.offset-1, 0)
		return m, nil
	case key.Matches(msg, m.keys.Retry):
		return m.retryFailed()
	case key.Matches(msg, m.keys.Copy):
		if !m.loaded {
			return m, nil
		}
		return m, commands.CopyText(weekSummaryText(m.render, m.now()))
	case key.Matches(msg, m.keys.Init):
		return m, commands.SaveDefaultConfig(m.config, m.initState.ConfigPath)
	}
	return m, nil
}

func (m Model) quit() (tea.Model, tea.Cmd) {
	m.ctrl.Unmount()
	m.cancel()
	return m, tea.Quit
}

// retryFailed re-arms every failed show and dispatches their fetches again.
func (m Model) retryFailed() (tea.Model, tea.Cmd) {
	if len(m.failures) == 0 {
		return m, m.setStatus("Nothing to retry")
	}
	for id := range m.failures {
		m.ctrl.Release(id)
	}
	intents, err := m.ctrl.Refresh(m.shows)
	if err != nil {
		return m, m.setError(err)
	}
	m.failures = make(map[string]error)
	m.events.fetchDispatch(intents, "retry")

	ids := make([]string, 0, len(intents))
	for _, in := range intents {
		ids = append(ids, in.ShowID)
	}
	status := m.setStatus("Retrying " + strings.Join(ids, ", "))
	return m, tea.Batch(status, m.spinner.Tick, commands.Dispatch(m.ctx, m.fetcher, intents))
}
