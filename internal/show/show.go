// Package show defines the core domain types for showcal.
package show

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// Domain errors.
var (
	ErrEmptyShowID  = errors.New("show id cannot be empty")
	ErrShowNotFound = errors.New("show not found")
)

// EpisodeState describes how much is known about a show's episodes.
type EpisodeState int

const (
	// Unloaded means the episode list has never been fetched.
	Unloaded EpisodeState = iota
	// LoadedEmpty means the list was fetched and has no episodes.
	LoadedEmpty
	// LoadedNonEmpty means the list was fetched and has episodes.
	LoadedNonEmpty
)

func (s EpisodeState) String() string {
	switch s {
	case Unloaded:
		return "unloaded"
	case LoadedEmpty:
		return "empty"
	case LoadedNonEmpty:
		return "loaded"
	default:
		return "unknown"
	}
}

// Episode is a single air-date event of a show.
type Episode struct {
	ID       string
	Season   int
	Number   int
	Name     string
	Airstamp time.Time
}

// Code returns the episode code, e.g. "S02E05".
// Specials without a number return an empty string.
func (e Episode) Code() string {
	if e.Season <= 0 || e.Number <= 0 {
		return ""
	}
	return fmt.Sprintf("S%02dE%02d", e.Season, e.Number)
}

// Show is a tracked television series.
type Show struct {
	ID      string
	Name    string
	Network string

	// Episodes is only meaningful when EpisodesLoaded is true.
	Episodes       []Episode
	EpisodesLoaded bool
	LoadedAt       time.Time // zero while unloaded
}

// EpisodeState returns the tri-state of the show's episode data.
func (s Show) EpisodeState() EpisodeState {
	switch {
	case !s.EpisodesLoaded:
		return Unloaded
	case len(s.Episodes) == 0:
		return LoadedEmpty
	default:
		return LoadedNonEmpty
	}
}

// Title returns the show name, falling back to its ID while metadata is missing.
func (s Show) Title() string {
	if name := strings.TrimSpace(s.Name); name != "" {
		return name
	}
	return "#" + s.ID
}

// IDs returns the show IDs in order.
func IDs(shows []Show) []string {
	ids := make([]string, len(shows))
	for i, s := range shows {
		ids[i] = s.ID
	}
	return ids
}

// NormalizeID trims a show ID and rejects empty values.
func NormalizeID(id string) (string, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return "", ErrEmptyShowID
	}
	return id, nil
}
