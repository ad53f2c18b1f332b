// Package calendar computes the weekly air-date grid: which tracked shows
// are relevant for a date window, the row each one occupies, and which
// shows still need their episodes fetched.
package calendar

import (
	"math"
	"time"

	"github.com/javiermolinar/showcal/internal/dateutil"
)

// DaysPerWeek is the number of day columns in the grid.
const DaysPerWeek = 7

// DateWindow is an inclusive range of calendar dates.
// It is a value: navigation returns a new window.
type DateWindow struct {
	Start time.Time
	End   time.Time
}

// NewDateWindow creates a window from start to end, both truncated to midnight
// in start's location. start must not be after end. End is clamped to the
// last of the DaysPerWeek columns the grid renders.
func NewDateWindow(start, end time.Time) DateWindow {
	loc := start.Location()
	w := DateWindow{
		Start: dateutil.TruncateToDay(start),
		End:   dateutil.TruncateToDay(end.In(loc)),
	}
	if last := w.Start.AddDate(0, 0, DaysPerWeek-1); w.End.After(last) {
		w.End = last
	}
	return w
}

// WeekOf returns the 7-day window containing date, beginning on firstDay.
func WeekOf(date time.Time, firstDay time.Weekday) DateWindow {
	start, end := dateutil.WeekRange(date, firstDay)
	return DateWindow{Start: start, End: end}
}

// Len returns the number of calendar days in the window.
func (w DateWindow) Len() int {
	days := int(math.Round(w.End.Sub(w.Start).Hours()/24)) + 1
	if days < 0 {
		return 0
	}
	return days
}

// Next returns the window immediately after w, with the same length.
func (w DateWindow) Next() DateWindow {
	n := w.Len()
	return DateWindow{Start: w.Start.AddDate(0, 0, n), End: w.End.AddDate(0, 0, n)}
}

// Prev returns the window immediately before w, with the same length.
func (w DateWindow) Prev() DateWindow {
	n := w.Len()
	return DateWindow{Start: w.Start.AddDate(0, 0, -n), End: w.End.AddDate(0, 0, -n)}
}

// Days returns the 7 consecutive dates starting at Start.
func (w DateWindow) Days() []time.Time {
	days := make([]time.Time, DaysPerWeek)
	for i := range days {
		days[i] = w.Start.AddDate(0, 0, i)
	}
	return days
}

// Contains reports whether date falls inside the window.
func (w DateWindow) Contains(date time.Time) bool {
	return IsBetween(date, w)
}

// Equal reports whether two windows cover the same dates.
func (w DateWindow) Equal(other DateWindow) bool {
	return w.Start.Equal(other.Start) && w.End.Equal(other.End)
}

// String formats the window as "2006-01-02..2006-01-02".
func (w DateWindow) String() string {
	return w.Start.Format("2006-01-02") + ".." + w.End.Format("2006-01-02")
}

// IsBetween reports whether date's calendar day lies in [window.Start, window.End].
// Time of day is ignored: anything airing on a boundary date counts as inside.
// date is converted to the window's location before its day is taken.
func IsBetween(date time.Time, window DateWindow) bool {
	day := dateutil.TruncateToDay(date.In(window.Start.Location()))
	return !day.Before(window.Start) && !day.After(window.End)
}

// DayIndex returns the 0-based day offset of date from the window start,
// or -1 when date is outside the window.
func (w DateWindow) DayIndex(date time.Time) int {
	if !IsBetween(date, w) {
		return -1
	}
	day := dateutil.TruncateToDay(date.In(w.Start.Location()))
	return int(math.Round(day.Sub(w.Start).Hours() / 24))
}
