package show

import (
	"context"
	"time"
)

// Repository is the external store that owns show and episode data.
// The calendar core only reads from it; loaders write fetched data back.
type Repository interface {
	// ListShows returns all tracked shows in tracking order.
	// Shows whose episodes were never fetched have EpisodesLoaded=false.
	ListShows(ctx context.Context) ([]Show, error)

	// GetShow retrieves a show by ID. Returns ErrShowNotFound if missing.
	GetShow(ctx context.Context, id string) (*Show, error)

	// SyncTracked makes the tracked set equal ids, in that order.
	// New IDs are inserted unloaded; IDs not in the list are removed.
	SyncTracked(ctx context.Context, ids []string) error

	// SaveShow updates show metadata (name, network).
	SaveShow(ctx context.Context, s *Show) error

	// SaveEpisodes replaces the episode list and marks the show loaded.
	SaveEpisodes(ctx context.Context, id string, episodes []Episode) error

	// ClearEpisodes returns a show to the unloaded state.
	ClearEpisodes(ctx context.Context, id string) error

	// ListEpisodesByDateRange returns episodes airing within [start, end] (inclusive dates),
	// keyed by show ID.
	ListEpisodesByDateRange(ctx context.Context, start, end time.Time) (map[string][]Episode, error)

	// Close releases any resources held by the repository.
	Close() error
}
