// Package db provides SQLite storage implementation.
package db

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/javiermolinar/showcal/internal/dateutil"
	"github.com/javiermolinar/showcal/internal/show"
)

// airstampLayout stores airstamps in UTC so string comparison orders them.
const airstampLayout = "2006-01-02T15:04:05Z"

// SQLite implements show.Repository using SQLite.
type SQLite struct {
	db  *sql.DB
	now func() time.Time
}

// New creates a new SQLite repository and runs migrations.
func New(path string) (*SQLite, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}
	// Loader goroutines write concurrently; SQLite allows a single writer.
	db.SetMaxOpenConns(1)

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("connecting to database: %w", err)
	}

	s := &SQLite{db: db, now: time.Now}
	if err := s.migrate(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	return s, nil
}

// ListShows returns all tracked shows in tracking order, with their episodes.
func (s *SQLite) ListShows(ctx context.Context) ([]show.Show, error) {
	query := `
		SELECT id, name, network, episodes_loaded_at
		FROM shows
		ORDER BY position, id
	`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("querying shows: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var (
		shows []show.Show
		index = make(map[string]int)
	)
	for rows.Next() {
		sh, err := scanShow(rows)
		if err != nil {
			return nil, err
		}
		index[sh.ID] = len(shows)
		shows = append(shows, sh)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating shows: %w", err)
	}

	episodes, err := s.listEpisodes(ctx, "", nil)
	if err != nil {
		return nil, err
	}
	for id, eps := range episodes {
		if i, ok := index[id]; ok && shows[i].EpisodesLoaded {
			shows[i].Episodes = eps
		}
	}

	return shows, nil
}

// GetShow retrieves a show by ID with its episodes.
// Returns show.ErrShowNotFound if the show is not tracked.
func (s *SQLite) GetShow(ctx context.Context, id string) (*show.Show, error) {
	query := `
		SELECT id, name, network, episodes_loaded_at
		FROM shows
		WHERE id = ?
	`

	sh, err := scanShow(s.db.QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("%w: %s", show.ErrShowNotFound, id)
	}
	if err != nil {
		return nil, err
	}

	if sh.EpisodesLoaded {
		episodes, err := s.listEpisodes(ctx, "WHERE show_id = ?", []any{id})
		if err != nil {
			return nil, err
		}
		if eps := episodes[id]; eps != nil {
			sh.Episodes = eps
		}
	}

	return &sh, nil
}

// SyncTracked makes the tracked set equal ids, in that order.
// New shows are inserted unloaded; shows not in ids are removed with their episodes.
func (s *SQLite) SyncTracked(ctx context.Context, ids []string) error {
	normalized := make([]string, 0, len(ids))
	seen := make(map[string]bool)
	for _, raw := range ids {
		id, err := show.NormalizeID(raw)
		if err != nil {
			return err
		}
		if seen[id] {
			continue
		}
		seen[id] = true
		normalized = append(normalized, id)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	where, args := notInClause("show_id", normalized)
	if _, err := tx.ExecContext(ctx, `DELETE FROM episodes`+where, args...); err != nil {
		return fmt.Errorf("removing untracked episodes: %w", err)
	}
	where, args = notInClause("id", normalized)
	if _, err := tx.ExecContext(ctx, `DELETE FROM shows`+where, args...); err != nil {
		return fmt.Errorf("removing untracked shows: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO shows (id, position) VALUES (?, ?)
		ON CONFLICT(id) DO UPDATE SET position = excluded.position
	`)
	if err != nil {
		return fmt.Errorf("preparing statement: %w", err)
	}
	defer func() { _ = stmt.Close() }()

	for pos, id := range normalized {
		if _, err := stmt.ExecContext(ctx, id, pos); err != nil {
			return fmt.Errorf("tracking show %s: %w", id, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing transaction: %w", err)
	}

	return nil
}

// SaveShow updates show metadata.
func (s *SQLite) SaveShow(ctx context.Context, sh *show.Show) error {
	query := `UPDATE shows SET name = ?, network = ? WHERE id = ?`

	result, err := s.db.ExecContext(ctx, query, strings.TrimSpace(sh.Name), strings.TrimSpace(sh.Network), sh.ID)
	if err != nil {
		return fmt.Errorf("updating show: %w", err)
	}

	rows, _ := result.RowsAffected()
	if rows == 0 {
		return fmt.Errorf("%w: %s", show.ErrShowNotFound, sh.ID)
	}

	return nil
}

// SaveEpisodes replaces the show's episodes and marks it loaded, atomically.
func (s *SQLite) SaveEpisodes(ctx context.Context, id string, episodes []show.Episode) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	loadedAt := s.now().UTC().Format(time.RFC3339)
	result, err := tx.ExecContext(ctx, `UPDATE shows SET episodes_loaded_at = ? WHERE id = ?`, loadedAt, id)
	if err != nil {
		return fmt.Errorf("marking show loaded: %w", err)
	}
	if rows, _ := result.RowsAffected(); rows == 0 {
		return fmt.Errorf("%w: %s", show.ErrShowNotFound, id)
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM episodes WHERE show_id = ?`, id); err != nil {
		return fmt.Errorf("clearing episodes: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT OR REPLACE INTO episodes (show_id, episode_id, season, number, name, airstamp)
		VALUES (?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("preparing statement: %w", err)
	}
	defer func() { _ = stmt.Close() }()

	for _, ep := range episodes {
		_, err := stmt.ExecContext(ctx,
			id,
			ep.ID,
			ep.Season,
			ep.Number,
			ep.Name,
			ep.Airstamp.UTC().Format(airstampLayout),
		)
		if err != nil {
			return fmt.Errorf("inserting episode %s: %w", ep.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing transaction: %w", err)
	}

	return nil
}

// ClearEpisodes drops the show's episodes and returns it to the unloaded state.
func (s *SQLite) ClearEpisodes(ctx context.Context, id string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	result, err := tx.ExecContext(ctx, `UPDATE shows SET episodes_loaded_at = NULL WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("marking show unloaded: %w", err)
	}
	if rows, _ := result.RowsAffected(); rows == 0 {
		return fmt.Errorf("%w: %s", show.ErrShowNotFound, id)
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM episodes WHERE show_id = ?`, id); err != nil {
		return fmt.Errorf("clearing episodes: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing transaction: %w", err)
	}

	return nil
}

// ListEpisodesByDateRange returns episodes whose local air date lies in
// [start, end] (inclusive), keyed by show ID.
func (s *SQLite) ListEpisodesByDateRange(ctx context.Context, start, end time.Time) (map[string][]show.Episode, error) {
	from := dateutil.TruncateToDay(start).UTC().Format(airstampLayout)
	until := dateutil.TruncateToDay(end).AddDate(0, 0, 1).UTC().Format(airstampLayout)

	return s.listEpisodes(ctx, "WHERE airstamp >= ? AND airstamp < ?", []any{from, until})
}

// Close releases database resources.
func (s *SQLite) Close() error {
	return s.db.Close()
}

func (s *SQLite) listEpisodes(ctx context.Context, where string, args []any) (map[string][]show.Episode, error) {
	query := `
		SELECT show_id, episode_id, season, number, name, airstamp
		FROM episodes
		` + where + `
		ORDER BY show_id, airstamp, season, number
	`

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying episodes: %w", err)
	}
	defer func() { _ = rows.Close() }()

	episodes := make(map[string][]show.Episode)
	for rows.Next() {
		var (
			showID   string
			ep       show.Episode
			airstamp string
		)
		if err := rows.Scan(&showID, &ep.ID, &ep.Season, &ep.Number, &ep.Name, &airstamp); err != nil {
			return nil, fmt.Errorf("scanning episode: %w", err)
		}
		ep.Airstamp, err = time.Parse(time.RFC3339, airstamp)
		if err != nil {
			return nil, fmt.Errorf("parsing airstamp: %w", err)
		}
		episodes[showID] = append(episodes[showID], ep)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating episodes: %w", err)
	}

	return episodes, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanShow(r rowScanner) (show.Show, error) {
	var (
		sh       show.Show
		loadedAt sql.NullString
	)
	if err := r.Scan(&sh.ID, &sh.Name, &sh.Network, &loadedAt); err != nil {
		if err == sql.ErrNoRows {
			return sh, err
		}
		return sh, fmt.Errorf("scanning show: %w", err)
	}

	if loadedAt.Valid {
		t, err := parseTimestamp(loadedAt.String)
		if err != nil {
			return sh, fmt.Errorf("parsing loaded at: %w", err)
		}
		sh.EpisodesLoaded = true
		sh.LoadedAt = t
		sh.Episodes = []show.Episode{}
	}

	return sh, nil
}

// parseTimestamp parses a timestamp in the formats SQLite might return.
func parseTimestamp(s string) (time.Time, error) {
	formats := []string{
		time.RFC3339,
		"2006-01-02T15:04:05Z",
		"2006-01-02 15:04:05",
	}
	for _, f := range formats {
		if t, err := time.Parse(f, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized timestamp format: %s", s)
}

// notInClause builds " WHERE col NOT IN (?, ...)" for ids.
// An empty list yields no clause, so every row matches.
func notInClause(col string, ids []string) (string, []any) {
	if len(ids) == 0 {
		return "", nil
	}
	args := make([]any, len(ids))
	for i, id := range ids {
		args[i] = id
	}
	placeholders := strings.TrimSuffix(strings.Repeat("?, ", len(ids)), ", ")
	return " WHERE " + col + " NOT IN (" + placeholders + ")", args
}
