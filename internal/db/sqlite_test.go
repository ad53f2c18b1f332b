package db

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/javiermolinar/showcal/internal/show"
)

func TestSyncTracked_InsertsUnloaded(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	if err := repo.SyncTracked(ctx, []string{"82", "169", "82"}); err != nil {
		t.Fatalf("SyncTracked failed: %v", err)
	}

	shows, err := repo.ListShows(ctx)
	if err != nil {
		t.Fatalf("ListShows failed: %v", err)
	}
	if got := show.IDs(shows); len(got) != 2 || got[0] != "82" || got[1] != "169" {
		t.Fatalf("ListShows ids = %v, want [82 169]", got)
	}
	for _, s := range shows {
		if s.EpisodeState() != show.Unloaded {
			t.Errorf("show %s state = %v, want unloaded", s.ID, s.EpisodeState())
		}
	}
}

func TestSyncTracked_ReordersAndRemoves(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	mustSync(t, repo, "1", "2", "3")
	mustSaveEpisodes(t, repo, "2", episode("e1", time.Date(2024, 1, 3, 20, 0, 0, 0, time.UTC)))

	mustSync(t, repo, "3", "2")

	shows, err := repo.ListShows(ctx)
	if err != nil {
		t.Fatalf("ListShows failed: %v", err)
	}
	if got := show.IDs(shows); len(got) != 2 || got[0] != "3" || got[1] != "2" {
		t.Fatalf("ListShows ids = %v, want [3 2]", got)
	}
	// Existing data survives a resync.
	if shows[1].EpisodeState() != show.LoadedNonEmpty {
		t.Errorf("show 2 state = %v, want loaded", shows[1].EpisodeState())
	}

	if _, err := repo.GetShow(ctx, "1"); !errors.Is(err, show.ErrShowNotFound) {
		t.Errorf("GetShow(1) error = %v, want ErrShowNotFound", err)
	}
}

func TestSyncTracked_EmptyListRemovesAll(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	mustSync(t, repo, "1", "2")
	mustSaveEpisodes(t, repo, "1", episode("e1", time.Date(2024, 1, 3, 20, 0, 0, 0, time.UTC)))
	mustSync(t, repo)

	shows, err := repo.ListShows(ctx)
	if err != nil {
		t.Fatalf("ListShows failed: %v", err)
	}
	if len(shows) != 0 {
		t.Errorf("ListShows = %v, want empty", show.IDs(shows))
	}

	eps, err := repo.ListEpisodesByDateRange(ctx, time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), time.Date(2024, 1, 7, 0, 0, 0, 0, time.UTC))
	if err != nil {
		t.Fatalf("ListEpisodesByDateRange failed: %v", err)
	}
	if len(eps) != 0 {
		t.Errorf("episodes left behind: %v", eps)
	}
}

func TestSyncTracked_RejectsBlankID(t *testing.T) {
	repo := newTestRepo(t)
	err := repo.SyncTracked(context.Background(), []string{"1", " "})
	if !errors.Is(err, show.ErrEmptyShowID) {
		t.Errorf("SyncTracked error = %v, want ErrEmptyShowID", err)
	}
}

func TestSaveEpisodes_TriState(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()
	mustSync(t, repo, "empty", "full", "never")

	mustSaveEpisodes(t, repo, "empty")
	mustSaveEpisodes(t, repo, "full",
		episode("e2", time.Date(2024, 1, 10, 1, 0, 0, 0, time.UTC)),
		episode("e1", time.Date(2024, 1, 3, 1, 0, 0, 0, time.UTC)),
	)

	shows, err := repo.ListShows(ctx)
	if err != nil {
		t.Fatalf("ListShows failed: %v", err)
	}

	want := map[string]show.EpisodeState{
		"empty": show.LoadedEmpty,
		"full":  show.LoadedNonEmpty,
		"never": show.Unloaded,
	}
	for _, s := range shows {
		if s.EpisodeState() != want[s.ID] {
			t.Errorf("show %s state = %v, want %v", s.ID, s.EpisodeState(), want[s.ID])
		}
	}

	full := shows[1]
	if len(full.Episodes) != 2 || full.Episodes[0].ID != "e1" {
		t.Errorf("episodes not ordered by airstamp: %+v", full.Episodes)
	}
	if full.LoadedAt.IsZero() {
		t.Error("expected LoadedAt to be set")
	}
}

func TestSaveEpisodes_ReplacesPrevious(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()
	mustSync(t, repo, "1")

	mustSaveEpisodes(t, repo, "1", episode("old", time.Date(2024, 1, 1, 1, 0, 0, 0, time.UTC)))
	mustSaveEpisodes(t, repo, "1", episode("new", time.Date(2024, 2, 1, 1, 0, 0, 0, time.UTC)))

	s, err := repo.GetShow(ctx, "1")
	if err != nil {
		t.Fatalf("GetShow failed: %v", err)
	}
	if len(s.Episodes) != 1 || s.Episodes[0].ID != "new" {
		t.Errorf("episodes = %+v, want only 'new'", s.Episodes)
	}
}

func TestSaveEpisodes_PreservesFields(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()
	mustSync(t, repo, "1")

	airstamp := time.Date(2024, 1, 3, 21, 0, 0, 0, time.FixedZone("EST", -5*60*60))
	mustSaveEpisodes(t, repo, "1", show.Episode{ID: "e1", Season: 2, Number: 5, Name: "Pilot", Airstamp: airstamp})

	s, err := repo.GetShow(ctx, "1")
	if err != nil {
		t.Fatalf("GetShow failed: %v", err)
	}
	got := s.Episodes[0]
	if got.Season != 2 || got.Number != 5 || got.Name != "Pilot" {
		t.Errorf("episode = %+v", got)
	}
	if !got.Airstamp.Equal(airstamp) {
		t.Errorf("airstamp = %v, want %v", got.Airstamp, airstamp)
	}
}

func TestSaveEpisodes_UnknownShow(t *testing.T) {
	repo := newTestRepo(t)
	err := repo.SaveEpisodes(context.Background(), "missing", nil)
	if !errors.Is(err, show.ErrShowNotFound) {
		t.Errorf("SaveEpisodes error = %v, want ErrShowNotFound", err)
	}
}

func TestClearEpisodes(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()
	mustSync(t, repo, "1")
	mustSaveEpisodes(t, repo, "1", episode("e1", time.Date(2024, 1, 3, 1, 0, 0, 0, time.UTC)))

	if err := repo.ClearEpisodes(ctx, "1"); err != nil {
		t.Fatalf("ClearEpisodes failed: %v", err)
	}

	s, err := repo.GetShow(ctx, "1")
	if err != nil {
		t.Fatalf("GetShow failed: %v", err)
	}
	if s.EpisodeState() != show.Unloaded {
		t.Errorf("state = %v, want unloaded", s.EpisodeState())
	}
	if !s.LoadedAt.IsZero() {
		t.Errorf("LoadedAt = %v, want zero", s.LoadedAt)
	}

	if err := repo.ClearEpisodes(ctx, "missing"); !errors.Is(err, show.ErrShowNotFound) {
		t.Errorf("ClearEpisodes(missing) error = %v, want ErrShowNotFound", err)
	}
}

func TestSaveShow(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()
	mustSync(t, repo, "82")

	if err := repo.SaveShow(ctx, &show.Show{ID: "82", Name: " Game of Thrones ", Network: "HBO"}); err != nil {
		t.Fatalf("SaveShow failed: %v", err)
	}

	s, err := repo.GetShow(ctx, "82")
	if err != nil {
		t.Fatalf("GetShow failed: %v", err)
	}
	if s.Name != "Game of Thrones" || s.Network != "HBO" {
		t.Errorf("show = %+v", s)
	}
	if s.EpisodeState() != show.Unloaded {
		t.Errorf("metadata update must not mark the show loaded, got %v", s.EpisodeState())
	}

	if err := repo.SaveShow(ctx, &show.Show{ID: "nope"}); !errors.Is(err, show.ErrShowNotFound) {
		t.Errorf("SaveShow(nope) error = %v, want ErrShowNotFound", err)
	}
}

func TestListEpisodesByDateRange(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()
	mustSync(t, repo, "a", "b")

	loc := time.UTC
	mustSaveEpisodes(t, repo, "a",
		episode("a0", time.Date(2023, 12, 31, 23, 59, 0, 0, loc)),
		episode("a1", time.Date(2024, 1, 1, 0, 0, 0, 0, loc)),
		episode("a2", time.Date(2024, 1, 7, 23, 59, 0, 0, loc)),
		episode("a3", time.Date(2024, 1, 8, 0, 0, 0, 0, loc)),
	)
	mustSaveEpisodes(t, repo, "b", episode("b1", time.Date(2024, 1, 4, 12, 0, 0, 0, loc)))

	got, err := repo.ListEpisodesByDateRange(ctx, time.Date(2024, 1, 1, 0, 0, 0, 0, loc), time.Date(2024, 1, 7, 0, 0, 0, 0, loc))
	if err != nil {
		t.Fatalf("ListEpisodesByDateRange failed: %v", err)
	}

	if ids := episodeIDs(got["a"]); len(ids) != 2 || ids[0] != "a1" || ids[1] != "a2" {
		t.Errorf("show a episodes = %v, want [a1 a2]", ids)
	}
	if ids := episodeIDs(got["b"]); len(ids) != 1 || ids[0] != "b1" {
		t.Errorf("show b episodes = %v, want [b1]", ids)
	}
}

func TestPersistsAcrossReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "shows.db")
	repo, err := New(path)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	mustSync(t, repo, "1")
	mustSaveEpisodes(t, repo, "1")
	_ = repo.Close()

	repo, err = New(path)
	if err != nil {
		t.Fatalf("reopen failed: %v", err)
	}
	defer func() { _ = repo.Close() }()

	s, err := repo.GetShow(context.Background(), "1")
	if err != nil {
		t.Fatalf("GetShow failed: %v", err)
	}
	if s.EpisodeState() != show.LoadedEmpty {
		t.Errorf("state after reopen = %v, want empty", s.EpisodeState())
	}
}

func TestNew_InvalidDatabase(t *testing.T) {
	path := filepath.Join(t.TempDir(), "garbage.db")
	if err := os.WriteFile(path, []byte(strings.Repeat("not a sqlite file\n", 64)), 0600); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}

	repo, err := New(path)
	if err == nil {
		_ = repo.Close()
		t.Fatal("New succeeded on a non-database file")
	}
	if repo != nil {
		t.Errorf("repo = %v, want nil on error", repo)
	}

	// The failed handle was released, so the path can be replaced and reopened.
	if err := os.Remove(path); err != nil {
		t.Fatalf("Remove failed: %v", err)
	}
	repo, err = New(path)
	if err != nil {
		t.Fatalf("New after replace failed: %v", err)
	}
	_ = repo.Close()
}

func TestParseTimestamp(t *testing.T) {
	for _, in := range []string{"2024-01-02T03:04:05Z", "2024-01-02 03:04:05", "2024-01-02T03:04:05+01:00"} {
		if _, err := parseTimestamp(in); err != nil {
			t.Errorf("parseTimestamp(%q) error: %v", in, err)
		}
	}
	if _, err := parseTimestamp("yesterday"); err == nil {
		t.Error("parseTimestamp(yesterday) expected error")
	}
}

func newTestRepo(t *testing.T) *SQLite {
	t.Helper()

	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "test.db")

	repo, err := New(dbPath)
	if err != nil {
		t.Fatalf("failed to create test repo: %v", err)
	}

	t.Cleanup(func() {
		_ = repo.Close()
	})

	return repo
}

func mustSync(t *testing.T, repo *SQLite, ids ...string) {
	t.Helper()
	if err := repo.SyncTracked(context.Background(), ids); err != nil {
		t.Fatalf("SyncTracked(%v) failed: %v", ids, err)
	}
}

func mustSaveEpisodes(t *testing.T, repo *SQLite, id string, eps ...show.Episode) {
	t.Helper()
	if err := repo.SaveEpisodes(context.Background(), id, eps); err != nil {
		t.Fatalf("SaveEpisodes(%s) failed: %v", id, err)
	}
}

func episode(id string, airstamp time.Time) show.Episode {
	return show.Episode{ID: id, Airstamp: airstamp}
}

func episodeIDs(eps []show.Episode) []string {
	ids := make([]string, len(eps))
	for i, ep := range eps {
		ids[i] = ep.ID
	}
	return ids
}
