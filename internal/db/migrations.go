package db

import "fmt"

// migrate runs database migrations.
// A NULL episodes_loaded_at marks a show whose episodes were never fetched,
// which keeps "unloaded" distinct from "loaded with zero episodes".
func (s *SQLite) migrate() error {
	query := `
		CREATE TABLE IF NOT EXISTS shows (
			id                 TEXT PRIMARY KEY,
			name               TEXT NOT NULL DEFAULT '',
			network            TEXT NOT NULL DEFAULT '',
			position           INTEGER NOT NULL DEFAULT 0,
			episodes_loaded_at DATETIME
		);

		CREATE TABLE IF NOT EXISTS episodes (
			show_id    TEXT NOT NULL REFERENCES shows(id),
			episode_id TEXT NOT NULL,
			season     INTEGER NOT NULL DEFAULT 0,
			number     INTEGER NOT NULL DEFAULT 0,
			name       TEXT NOT NULL DEFAULT '',
			airstamp   TEXT NOT NULL,
			PRIMARY KEY (show_id, episode_id)
		);

		CREATE INDEX IF NOT EXISTS idx_shows_position ON shows(position);
		CREATE INDEX IF NOT EXISTS idx_episodes_airstamp ON episodes(airstamp);
	`

	if _, err := s.db.Exec(query); err != nil {
		return fmt.Errorf("creating shows tables: %w", err)
	}

	return nil
}
