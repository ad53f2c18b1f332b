package ui

import (
	"context"
	"fmt"
	"time"

	"github.com/javiermolinar/showcal/internal/calendar"
	"github.com/javiermolinar/showcal/internal/dateutil"
	"github.com/javiermolinar/showcal/internal/loader"
	"github.com/javiermolinar/showcal/internal/show"
)

// weekResult is a rendered week plus whatever could not be loaded for it.
type weekResult struct {
	Model    calendar.RenderModel
	Shows    []show.Show
	Failures []loader.Failure
}

// resolveWindow turns a --date value into the week containing it.
func (a *App) resolveWindow(date string) (calendar.DateWindow, error) {
	day, err := dateutil.ParseRelativeDate(date, a.now())
	if err != nil {
		return calendar.DateWindow{}, fmt.Errorf("parsing --date %q: %w", date, err)
	}
	return calendar.WeekOf(day, a.config.WeekStart()), nil
}

// loadWeek syncs the tracked list, mounts a controller on window and
// dispatches the fetch intents it asks for before evaluating again.
func (a *App) loadWeek(ctx context.Context, window calendar.DateWindow) (weekResult, error) {
	if err := a.repo.SyncTracked(ctx, a.config.Shows.Tracked); err != nil {
		return weekResult{}, fmt.Errorf("syncing tracked shows: %w", err)
	}

	shows, err := a.repo.ListShows(ctx)
	if err != nil {
		return weekResult{}, fmt.Errorf("listing shows: %w", err)
	}

	ctrl := calendar.NewController(calendar.WithLogger(a.log()))
	defer ctrl.Unmount()

	model, intents, err := ctrl.Mount(shows, window)
	if err != nil {
		return weekResult{}, err
	}
	if len(intents) == 0 {
		return weekResult{Model: model, Shows: shows}, nil
	}

	started := time.Now()
	res := a.loader().Dispatch(ctx, intents)
	a.log().Info("episode fetches completed",
		"requested", len(intents),
		"loaded", len(res.Loaded),
		"failed", len(res.Failures),
		"duration", time.Since(started),
	)
	for _, f := range res.Failures {
		ctrl.Release(f.ShowID)
	}

	shows, err = a.repo.ListShows(ctx)
	if err != nil {
		return weekResult{}, fmt.Errorf("listing shows: %w", err)
	}
	model, _, err = ctrl.Update(shows, window)
	if err != nil {
		return weekResult{}, err
	}

	return weekResult{Model: model, Shows: shows, Failures: res.Failures}, nil
}

// windowShows narrows shows to the episodes the store holds for window, so
// feeds are built from a date-range query rather than every stored episode.
func (a *App) windowShows(ctx context.Context, shows []show.Show, window calendar.DateWindow) ([]show.Show, error) {
	episodes, err := a.repo.ListEpisodesByDateRange(ctx, window.Start, window.End)
	if err != nil {
		return nil, fmt.Errorf("listing window episodes: %w", err)
	}

	narrowed := make([]show.Show, len(shows))
	for i, s := range shows {
		if s.EpisodesLoaded {
			s.Episodes = episodes[s.ID]
		}
		narrowed[i] = s
	}
	return narrowed, nil
}
