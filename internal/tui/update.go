package tui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/javiermolinar/showcal/internal/calendar"
	"github.com/javiermolinar/showcal/internal/show"
	"github.com/javiermolinar/showcal/internal/tui/commands"
)

// Update handles messages and updates the model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKeyMsg(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil

	case commands.ShowsLoadedMsg:
		m.loaded = true
		return m.storeChanged(msg.Shows)

	case commands.EpisodesLoadedMsg:
		delete(m.failures, msg.Show.ID)
		m.events.fetchResult(msg.Show.ID, nil)
		return m.storeChanged(replaceShow(m.shows, msg.Show))

	case commands.FetchFailedMsg:
		// Release first so a later reconcile may request the show again.
		m.ctrl.Release(msg.ShowID)
		m.failures[msg.ShowID] = msg.Err
		m.events.fetchResult(msg.ShowID, msg.Err)
		m.logger.Warn("episode fetch failed", "show", msg.ShowID, "err", msg.Err)
		return m, m.setWarning(fmt.Sprintf("Could not load show %s (r to retry)", msg.ShowID))

	case commands.ConfigSavedMsg:
		m.initState.ConfigMissing = false
		m.keys.Init.SetEnabled(false)
		return m, m.setStatus("Config written to " + msg.Path)

	case commands.ErrMsg:
		m.logger.Error("tui error", "err", msg.Err)
		if !m.loaded {
			m.err = msg.Err
			return m, nil
		}
		return m, m.setWarning(msg.Err.Error())

	case commands.StatusMsgCmd:
		return m, m.setStatus(msg.Msg)

	case commands.ClearStatusMsg:
		m.statusMsg = ""
		m.statusIsErr = false
		return m, nil

	case spinner.TickMsg:
		if len(m.ctrl.InFlight()) == 0 {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	return m, nil
}

// storeChanged feeds a new store snapshot to the controller and dispatches
// any fetch intents it returns.
func (m Model) storeChanged(shows []show.Show) (tea.Model, tea.Cmd) {
	m.shows = shows

	var (
		render  calendar.RenderModel
		intents []calendar.FetchIntent
		err     error
	)
	if m.ctrl.State() == calendar.StateIdle {
		render, intents, err = m.ctrl.Mount(shows, m.window)
	} else {
		render, intents, err = m.ctrl.Update(shows, m.window)
	}
	if err != nil {
		return m, m.setError(err)
	}
	m.render = render
	m.offset = min(m.offset, max(len(render.Rows)-1, 0))
	return m, m.dispatch(intents, "store")
}

// moveWindow re-evaluates the grid for a new window. Navigation alone never
// produces fetch intents.
func (m Model) moveWindow(to calendar.DateWindow, reason string) (tea.Model, tea.Cmd) {
	from := m.window
	m.window = to
	m.offset = 0
	m.events.windowMove(from, to, reason)
	if !m.loaded {
		return m, nil
	}

	render, intents, err := m.ctrl.Update(m.shows, m.window)
	if err != nil {
		return m, m.setError(err)
	}
	m.render = render
	return m, m.dispatch(intents, "navigate")
}

func (m Model) dispatch(intents []calendar.FetchIntent, reason string) tea.Cmd {
	if len(intents) == 0 {
		return nil
	}
	m.events.fetchDispatch(intents, reason)
	return tea.Batch(m.spinner.Tick, commands.Dispatch(m.ctx, m.fetcher, intents))
}

func (m *Model) setStatus(msg string) tea.Cmd {
	m.statusMsg = msg
	m.statusIsErr = false
	return commands.ClearStatusAfter(commands.StatusTimeout)
}

func (m *Model) setWarning(msg string) tea.Cmd {
	m.statusMsg = msg
	m.statusIsErr = true
	return commands.ClearStatusAfter(commands.StatusTimeout)
}

func (m *Model) setError(err error) tea.Cmd {
	m.logger.Error("calendar controller", "err", err)
	return m.setWarning(err.Error())
}

// replaceShow returns a copy of shows with the entry matching s.ID replaced.
// A show missing from the snapshot is ignored.
func replaceShow(shows []show.Show, s show.Show) []show.Show {
	out := make([]show.Show, len(shows))
	copy(out, shows)
	for i := range out {
		if out[i].ID == s.ID {
			out[i] = s
			return out
		}
	}
	return out
}
