package tui

import (
	"strings"
	"testing"
	"time"

	"github.com/javiermolinar/showcal/internal/calendar"
	"github.com/javiermolinar/showcal/internal/show"
)

func TestWeekSummaryText(t *testing.T) {
	window := calendar.WeekOf(testNow, time.Monday)
	andor := show.Show{
		ID:             "2",
		Name:           "Andor",
		EpisodesLoaded: true,
		Episodes: []show.Episode{
			{ID: "a1", Season: 1, Number: 1, Airstamp: time.Date(2024, 1, 5, 20, 0, 0, 0, time.UTC)},
			{ID: "a0", Airstamp: time.Date(2024, 1, 5, 21, 0, 0, 0, time.UTC)},
		},
	}
	model := calendar.Evaluate([]show.Show{severance(), andor}, window)

	got := weekSummaryText(model, testNow)
	want := strings.Join([]string{
		"Week of Mon Jan 1 - Sun Jan 7, 2024",
		"",
		"Wed Jan 3 (today)",
		`  01:00  Severance S02E03 "Who Is Alive?" (Apple TV+)`,
		"",
		"Fri Jan 5",
		"  20:00  Andor S01E01",
		"  21:00  Andor",
		"",
	}, "\n")
	if got != want {
		t.Errorf("weekSummaryText() =\n%s\nwant\n%s", got, want)
	}
}

func TestWeekSummaryText_Empty(t *testing.T) {
	model := calendar.Evaluate(nil, calendar.WeekOf(testNow, time.Monday))
	got := weekSummaryText(model, testNow)
	if !strings.HasSuffix(got, "No tracked show airs this week.\n") {
		t.Errorf("weekSummaryText() = %q", got)
	}
}
