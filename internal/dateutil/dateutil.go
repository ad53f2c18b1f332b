// Package dateutil provides date parsing and calendar arithmetic utilities.
package dateutil

import (
	"errors"
	"strings"
	"time"
)

// Validation errors.
var (
	ErrInvalidDateFormat = errors.New("date must be in YYYY-MM-DD format")
	ErrInvalidWeekday    = errors.New("invalid weekday name")
)

// weekdayMap maps weekday names to time.Weekday values.
var weekdayMap = map[string]time.Weekday{
	"sunday":    time.Sunday,
	"monday":    time.Monday,
	"tuesday":   time.Tuesday,
	"wednesday": time.Wednesday,
	"thursday":  time.Thursday,
	"friday":    time.Friday,
	"saturday":  time.Saturday,
}

// ParseWeekday parses a weekday name ("monday", "Sunday", ...).
func ParseWeekday(s string) (time.Weekday, error) {
	day, ok := weekdayMap[strings.ToLower(strings.TrimSpace(s))]
	if !ok {
		return time.Sunday, ErrInvalidWeekday
	}
	return day, nil
}

// WeekRange returns the first and last day of the week containing t,
// where weeks begin on firstDay.
func WeekRange(t time.Time, firstDay time.Weekday) (start, end time.Time) {
	t = TruncateToDay(t)
	offset := (int(t.Weekday()) - int(firstDay) + 7) % 7
	start = t.AddDate(0, 0, -offset)
	end = start.AddDate(0, 0, 6)
	return start, end
}

// TruncateToDay returns t with time set to midnight.
func TruncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// SameDay reports whether a and b fall on the same calendar date,
// each in its own location.
func SameDay(a, b time.Time) bool {
	ya, ma, da := a.Date()
	yb, mb, db := b.Date()
	return ya == yb && ma == mb && da == db
}

// ParseRelativeDate parses a date string that can be:
//   - Empty string or "today": returns relativeTo date
//   - Absolute date: "2025-01-15" (YYYY-MM-DD)
//   - Keywords: "tomorrow", "yesterday", "next-week", "last-week"
//   - Weekday names: "monday" through "sunday" (next occurrence, always future)
//   - Prefixed: "next-monday" or "last-friday"
//
// All inputs are case-insensitive. Past dates are allowed since the
// calendar can browse back in time.
func ParseRelativeDate(s string, relativeTo time.Time) (time.Time, error) {
	today := TruncateToDay(relativeTo)
	input := strings.ToLower(strings.TrimSpace(s))

	switch input {
	case "", "today":
		return today, nil
	case "tomorrow":
		return today.AddDate(0, 0, 1), nil
	case "yesterday":
		return today.AddDate(0, 0, -1), nil
	case "next-week":
		return today.AddDate(0, 0, 7), nil
	case "last-week":
		return today.AddDate(0, 0, -7), nil
	}

	if strings.HasPrefix(input, "next-") {
		if targetDay, ok := weekdayMap[strings.TrimPrefix(input, "next-")]; ok {
			return nextWeekday(today, targetDay), nil
		}
		return time.Time{}, ErrInvalidDateFormat
	}

	if strings.HasPrefix(input, "last-") {
		if targetDay, ok := weekdayMap[strings.TrimPrefix(input, "last-")]; ok {
			return lastWeekday(today, targetDay), nil
		}
		return time.Time{}, ErrInvalidDateFormat
	}

	if targetDay, ok := weekdayMap[input]; ok {
		return nextWeekday(today, targetDay), nil
	}

	result, err := time.ParseInLocation("2006-01-02", input, relativeTo.Location())
	if err != nil {
		return time.Time{}, ErrInvalidDateFormat
	}
	return result, nil
}

// nextWeekday returns the next occurrence of the given weekday after today.
// If today is the target weekday, returns one week from today.
func nextWeekday(today time.Time, target time.Weekday) time.Time {
	daysUntil := int(target) - int(today.Weekday())
	if daysUntil <= 0 {
		daysUntil += 7
	}
	return today.AddDate(0, 0, daysUntil)
}

// lastWeekday returns the most recent occurrence of the weekday before today.
func lastWeekday(today time.Time, target time.Weekday) time.Time {
	daysSince := int(today.Weekday()) - int(target)
	if daysSince <= 0 {
		daysSince += 7
	}
	return today.AddDate(0, 0, -daysSince)
}
