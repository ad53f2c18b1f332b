// Package commands provides TUI command constructors and message types.
package commands

import (
	"context"
	"fmt"
	"time"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/javiermolinar/showcal/internal/calendar"
	"github.com/javiermolinar/showcal/internal/config"
	"github.com/javiermolinar/showcal/internal/show"
)

// StatusTimeout is how long a status message stays visible.
const StatusTimeout = 4 * time.Second

// Fetcher loads one show's episodes and writes them to the store.
type Fetcher interface {
	Load(ctx context.Context, id string) (*show.Show, error)
}

// ShowsLoadedMsg is sent when the tracked shows are read from the store.
type ShowsLoadedMsg struct {
	Shows []show.Show
}

// EpisodesLoadedMsg is sent when a show's episodes were fetched and stored.
type EpisodesLoadedMsg struct {
	Show show.Show
}

// FetchFailedMsg is sent when fetching a show's episodes failed.
type FetchFailedMsg struct {
	ShowID string
	Err    error
}

// ConfigSavedMsg is sent after a default config file was written.
type ConfigSavedMsg struct {
	Path string
}

// ErrMsg is sent when an error occurs.
type ErrMsg struct {
	Err error
}

// StatusMsgCmd is sent for temporary status messages.
type StatusMsgCmd struct {
	Msg string
}

// ClearStatusMsg is sent to clear the status message.
type ClearStatusMsg struct{}

var writeClipboard = clipboard.WriteAll

// LoadShows syncs the tracked list into the store and reads it back.
func LoadShows(ctx context.Context, repo show.Repository, tracked []string) tea.Cmd {
	return func() tea.Msg {
		if err := repo.SyncTracked(ctx, tracked); err != nil {
			return ErrMsg{Err: fmt.Errorf("syncing tracked shows: %w", err)}
		}
		shows, err := repo.ListShows(ctx)
		if err != nil {
			return ErrMsg{Err: fmt.Errorf("listing shows: %w", err)}
		}
		return ShowsLoadedMsg{Shows: shows}
	}
}

// FetchEpisodes loads one show. The result arrives as a message; the caller
// never waits on it.
func FetchEpisodes(ctx context.Context, f Fetcher, id string) tea.Cmd {
	return func() tea.Msg {
		s, err := f.Load(ctx, id)
		if err != nil {
			return FetchFailedMsg{ShowID: id, Err: err}
		}
		return EpisodesLoadedMsg{Show: *s}
	}
}

// Dispatch turns fetch intents into a batch of FetchEpisodes commands.
func Dispatch(ctx context.Context, f Fetcher, intents []calendar.FetchIntent) tea.Cmd {
	if len(intents) == 0 || f == nil {
		return nil
	}
	cmds := make([]tea.Cmd, 0, len(intents))
	for _, intent := range intents {
		cmds = append(cmds, FetchEpisodes(ctx, f, intent.ShowID))
	}
	return tea.Batch(cmds...)
}

// CopyText writes text to the system clipboard.
func CopyText(text string) tea.Cmd {
	return func() tea.Msg {
		if err := writeClipboard(text); err != nil {
			return ErrMsg{Err: fmt.Errorf("copying to clipboard: %w", err)}
		}
		return StatusMsgCmd{Msg: "Week copied to clipboard"}
	}
}

// SaveDefaultConfig writes cfg to path.
func SaveDefaultConfig(cfg *config.Config, path string) tea.Cmd {
	return func() tea.Msg {
		if err := cfg.SaveTo(path); err != nil {
			return ErrMsg{Err: fmt.Errorf("writing config: %w", err)}
		}
		return ConfigSavedMsg{Path: path}
	}
}

// ClearStatusAfter clears the status line after d.
func ClearStatusAfter(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(time.Time) tea.Msg {
		return ClearStatusMsg{}
	})
}
