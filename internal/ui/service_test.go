package ui

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/javiermolinar/showcal/internal/calendar"
	"github.com/javiermolinar/showcal/internal/show"
)

func TestWindowShows(t *testing.T) {
	app, _ := newTestApp(t, "1", "2")
	ctx := context.Background()

	if err := app.repo.SyncTracked(ctx, []string{"1", "2"}); err != nil {
		t.Fatalf("SyncTracked failed: %v", err)
	}
	err := app.repo.SaveEpisodes(ctx, "1", []show.Episode{
		{ID: "9", Season: 2, Number: 2, Airstamp: time.Date(2023, 12, 27, 2, 0, 0, 0, time.UTC)},
		{ID: "10", Season: 2, Number: 3, Airstamp: time.Date(2024, 1, 3, 2, 0, 0, 0, time.UTC)},
		{ID: "11", Season: 2, Number: 4, Airstamp: time.Date(2024, 1, 10, 2, 0, 0, 0, time.UTC)},
	})
	if err != nil {
		t.Fatalf("SaveEpisodes failed: %v", err)
	}

	shows, err := app.repo.ListShows(ctx)
	if err != nil {
		t.Fatalf("ListShows failed: %v", err)
	}
	window := calendar.WeekOf(time.Date(2024, 1, 3, 0, 0, 0, 0, time.UTC), time.Monday)

	got, err := app.windowShows(ctx, shows, window)
	if err != nil {
		t.Fatalf("windowShows failed: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("shows = %d, want 2", len(got))
	}

	if eps := got[0].Episodes; len(eps) != 1 || eps[0].ID != "10" {
		t.Errorf("show 1 episodes = %+v, want only episode 10", eps)
	}
	if got[1].EpisodesLoaded || got[1].Episodes != nil {
		t.Errorf("unloaded show changed: %+v", got[1])
	}
	if len(shows[0].Episodes) != 3 {
		t.Errorf("input snapshot was modified: %d episodes", len(shows[0].Episodes))
	}
}

func TestExportCmd_OnlyWindowEpisodes(t *testing.T) {
	app, _ := newTestApp(t, "1")

	out, _, err := run(t, app, "export", "--date", "2024-01-10")
	if err != nil {
		t.Fatalf("export failed: %v", err)
	}
	if !strings.Contains(out, "BEGIN:VCALENDAR") || strings.Contains(out, "BEGIN:VEVENT") {
		t.Errorf("expected an empty feed for the following week:\n%s", out)
	}
}
