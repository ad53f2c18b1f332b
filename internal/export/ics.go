// Package export renders calendar windows as iCalendar feeds.
package export

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	ical "github.com/arran4/golang-ical"
	"github.com/google/uuid"

	"github.com/javiermolinar/showcal/internal/calendar"
	"github.com/javiermolinar/showcal/internal/show"
)

const (
	// ProductID identifies showcal as the producer of exported feeds.
	ProductID = "-//showcal//showcal//EN"

	// DefaultDuration is used for DTEND since TVmaze runtimes are not stored.
	DefaultDuration = time.Hour
)

// episodeNamespace scopes v5 UIDs so re-exports keep the same identifiers.
var episodeNamespace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("https://github.com/javiermolinar/showcal/episodes"))

// Exporter builds iCalendar feeds from shows.
type Exporter struct {
	Duration time.Duration
	Now      func() time.Time
}

// Calendar builds a feed holding every episode that airs inside window.
func (e Exporter) Calendar(shows []show.Show, window calendar.DateWindow) *ical.Calendar {
	cal := ical.NewCalendar()
	cal.SetMethod(ical.MethodPublish)
	cal.SetProductId(ProductID)

	stamp := e.now().UTC()
	for _, row := range calendar.AssignRows(calendar.RelevantShows(shows, window), window) {
		for _, cell := range row.Cells {
			for _, ep := range cell.Episodes {
				event := cal.AddEvent(EventUID(row.Show.ID, ep.ID))
				event.SetDtStampTime(stamp)
				event.SetStartAt(ep.Airstamp.UTC())
				event.SetEndAt(ep.Airstamp.Add(e.duration()).UTC())
				event.SetSummary(Summary(row.Show, ep))
				if row.Show.Network != "" {
					event.SetLocation(row.Show.Network)
				}
				if ep.Name != "" {
					event.SetDescription(ep.Name)
				}
			}
		}
	}

	return cal
}

// Write serializes the feed for window to w.
func (e Exporter) Write(w io.Writer, shows []show.Show, window calendar.DateWindow) error {
	if err := e.Calendar(shows, window).SerializeTo(w); err != nil {
		return fmt.Errorf("writing calendar: %w", err)
	}
	return nil
}

// WriteFile writes the feed to path, replacing any existing file atomically.
func (e Exporter) WriteFile(path string, shows []show.Show, window calendar.DateWindow) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("creating export directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".showcal-*.ics")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	defer func() { _ = os.Remove(tmp.Name()) }()

	if err := e.Write(tmp, shows, window); err != nil {
		_ = tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("closing temp file: %w", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("replacing %s: %w", path, err)
	}
	return nil
}

// EventUID derives a stable UID for an episode of a show.
func EventUID(showID, episodeID string) string {
	return uuid.NewSHA1(episodeNamespace, []byte(showID+"/"+episodeID)).String() + "@showcal"
}

// Summary is the event title, e.g. "Severance S02E03".
func Summary(s show.Show, ep show.Episode) string {
	if code := ep.Code(); code != "" {
		return s.Title() + " " + code
	}
	return s.Title()
}

func (e Exporter) duration() time.Duration {
	if e.Duration <= 0 {
		return DefaultDuration
	}
	return e.Duration
}

func (e Exporter) now() time.Time {
	if e.Now == nil {
		return time.Now()
	}
	return e.Now()
}
