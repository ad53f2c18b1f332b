package calendar

import "github.com/javiermolinar/showcal/internal/show"

// RelevantShows returns the shows with at least one episode airing inside
// window, preserving input order. Unloaded and loaded-empty shows are never
// relevant.
func RelevantShows(shows []show.Show, window DateWindow) []show.Show {
	var relevant []show.Show
	for _, s := range shows {
		if AirsIn(s, window) {
			relevant = append(relevant, s)
		}
	}
	return relevant
}

// AirsIn reports whether s has loaded episodes and one of them airs in window.
func AirsIn(s show.Show, window DateWindow) bool {
	if s.EpisodeState() != show.LoadedNonEmpty {
		return false
	}
	for _, ep := range s.Episodes {
		if IsBetween(ep.Airstamp, window) {
			return true
		}
	}
	return false
}
