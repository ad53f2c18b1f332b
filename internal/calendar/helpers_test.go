package calendar

import (
	"testing"
	"time"

	"github.com/javiermolinar/showcal/internal/show"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func airing(y int, m time.Month, d, hour int) show.Episode {
	return show.Episode{
		ID:       time.Date(y, m, d, hour, 0, 0, 0, time.UTC).Format("20060102T15"),
		Airstamp: time.Date(y, m, d, hour, 0, 0, 0, time.UTC),
	}
}

func unloaded(id string) show.Show {
	return show.Show{ID: id}
}

func loaded(id string, eps ...show.Episode) show.Show {
	return show.Show{ID: id, EpisodesLoaded: true, Episodes: eps}
}

func firstWeek2024() DateWindow {
	return NewDateWindow(date(2024, 1, 1), date(2024, 1, 7))
}

func showIDs(t *testing.T, shows []show.Show) []string {
	t.Helper()
	return show.IDs(shows)
}

func intentIDs(intents []FetchIntent) []string {
	ids := make([]string, len(intents))
	for i, in := range intents {
		ids[i] = in.ShowID
	}
	return ids
}

func equalStrings(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
