// Package loader dispatches episode fetch intents: it pulls show data from
// a source and writes it to the repository.
package loader

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/javiermolinar/showcal/internal/calendar"
	"github.com/javiermolinar/showcal/internal/show"
	"github.com/javiermolinar/showcal/internal/tvmaze"
)

// DefaultConcurrency bounds parallel fetches in Dispatch.
const DefaultConcurrency = 4

// Failure records a fetch that did not complete.
type Failure struct {
	ShowID string
	Err    error
}

func (f Failure) Error() string {
	return fmt.Sprintf("show %s: %v", f.ShowID, f.Err)
}

func (f Failure) Unwrap() error {
	return f.Err
}

// Result summarizes a Dispatch run.
type Result struct {
	Loaded   []string
	Failures []Failure
}

// Err joins the failures, or returns nil when every fetch succeeded.
func (r Result) Err() error {
	if len(r.Failures) == 0 {
		return nil
	}
	errs := make([]error, len(r.Failures))
	for i, f := range r.Failures {
		errs[i] = f
	}
	return errors.Join(errs...)
}

// Loader fetches episode data for shows and persists it.
type Loader struct {
	Source      tvmaze.Source
	Repo        show.Repository
	Logger      *slog.Logger
	Concurrency int
}

// Load fetches one show and stores its metadata and episodes.
func (l *Loader) Load(ctx context.Context, id string) (*show.Show, error) {
	logger := l.logger().With("show_id", id)
	started := time.Now()

	fetched, err := l.Source.FetchShow(ctx, id)
	if err != nil {
		logger.Warn("episode fetch failed", "error", err)
		return nil, fmt.Errorf("fetching show %s: %w", id, err)
	}
	fetched.ID = id

	if err := l.Repo.SaveShow(ctx, fetched); err != nil {
		return nil, fmt.Errorf("saving show %s: %w", id, err)
	}
	if err := l.Repo.SaveEpisodes(ctx, id, fetched.Episodes); err != nil {
		return nil, fmt.Errorf("saving episodes for %s: %w", id, err)
	}

	stored, err := l.Repo.GetShow(ctx, id)
	if err != nil {
		return nil, err
	}

	logger.Debug("episodes loaded",
		"episodes", len(stored.Episodes),
		"duration", time.Since(started),
	)
	return stored, nil
}

// Dispatch runs every intent with bounded concurrency. A failed fetch does
// not cancel its siblings; failures are collected in the result.
func (l *Loader) Dispatch(ctx context.Context, intents []calendar.FetchIntent) Result {
	var (
		mu  sync.Mutex
		res Result
	)

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(l.concurrency())

	for _, intent := range intents {
		g.Go(func() error {
			_, err := l.Load(ctx, intent.ShowID)

			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				res.Failures = append(res.Failures, Failure{ShowID: intent.ShowID, Err: err})
				return nil
			}
			res.Loaded = append(res.Loaded, intent.ShowID)
			return nil
		})
	}
	_ = g.Wait()

	return res
}

// Refresh clears stored episodes for ids and loads them again.
func (l *Loader) Refresh(ctx context.Context, ids []string) (Result, error) {
	intents := make([]calendar.FetchIntent, 0, len(ids))
	for _, id := range ids {
		if err := l.Repo.ClearEpisodes(ctx, id); err != nil {
			return Result{}, err
		}
		intents = append(intents, calendar.FetchIntent{ShowID: id})
	}
	return l.Dispatch(ctx, intents), nil
}

func (l *Loader) logger() *slog.Logger {
	if l.Logger == nil {
		return slog.New(slog.DiscardHandler)
	}
	return l.Logger
}

func (l *Loader) concurrency() int {
	if l.Concurrency <= 0 {
		return DefaultConcurrency
	}
	return l.Concurrency
}
