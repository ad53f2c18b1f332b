package tui

import (
	"context"
	"log/slog"
	"sync"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/javiermolinar/showcal/internal/calendar"
)

// eventLog records TUI events (key presses, window moves, fetches) when
// debug mode is on. Entries go to the application logger under the "tui"
// group, each with a sequence number.
type eventLog struct {
	mu      sync.Mutex
	logger  *slog.Logger
	enabled bool
	seq     int
}

func newEventLog(logger *slog.Logger, enabled bool) *eventLog {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &eventLog{logger: logger.WithGroup("tui"), enabled: enabled}
}

func (e *eventLog) record(event string, args ...any) {
	if e == nil || !e.enabled {
		return
	}
	e.mu.Lock()
	e.seq++
	seq := e.seq
	e.mu.Unlock()

	e.logger.Log(context.Background(), slog.LevelDebug, event, append([]any{"seq", seq}, args...)...)
}

func (e *eventLog) keyPress(msg tea.KeyMsg) {
	e.record("key_press", "key", msg.String())
}

func (e *eventLog) windowMove(from, to calendar.DateWindow, reason string) {
	e.record("window_move", "from", from.String(), "to", to.String(), "reason", reason)
}

func (e *eventLog) fetchDispatch(intents []calendar.FetchIntent, reason string) {
	ids := make([]string, 0, len(intents))
	for _, in := range intents {
		ids = append(ids, in.ShowID)
	}
	e.record("fetch_dispatch", "shows", ids, "reason", reason)
}

func (e *eventLog) fetchResult(showID string, err error) {
	if err != nil {
		e.record("fetch_failed", "show", showID, "err", err.Error())
		return
	}
	e.record("fetch_done", "show", showID)
}
