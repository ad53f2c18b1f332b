package calendar

import (
	"testing"
	"time"

	"github.com/javiermolinar/showcal/internal/show"
)

func TestIsBetween(t *testing.T) {
	window := firstWeek2024()

	tests := []struct {
		name string
		date time.Time
		want bool
	}{
		{name: "start boundary", date: date(2024, 1, 1), want: true},
		{name: "end boundary", date: date(2024, 1, 7), want: true},
		{name: "late on end boundary", date: time.Date(2024, 1, 7, 23, 59, 59, 0, time.UTC), want: true},
		{name: "middle of window", date: time.Date(2024, 1, 3, 21, 0, 0, 0, time.UTC), want: true},
		{name: "day before", date: date(2023, 12, 31), want: false},
		{name: "last second before", date: time.Date(2023, 12, 31, 23, 59, 59, 0, time.UTC), want: false},
		{name: "day after", date: date(2024, 1, 8), want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsBetween(tt.date, window); got != tt.want {
				t.Errorf("IsBetween(%v) = %v, want %v", tt.date, got, tt.want)
			}
			if got := window.Contains(tt.date); got != tt.want {
				t.Errorf("Contains(%v) = %v, want %v", tt.date, got, tt.want)
			}
		})
	}
}

func TestIsBetween_ConvertsToWindowLocation(t *testing.T) {
	tokyo := time.FixedZone("JST", 9*60*60)
	window := NewDateWindow(time.Date(2024, 1, 1, 0, 0, 0, 0, tokyo), time.Date(2024, 1, 7, 0, 0, 0, 0, tokyo))

	// 2024-01-07 20:00 UTC is 2024-01-08 05:00 in Tokyo.
	if IsBetween(time.Date(2024, 1, 7, 20, 0, 0, 0, time.UTC), window) {
		t.Error("expected airing that lands on Jan 8 in the window location to be outside")
	}
	// 2023-12-31 16:00 UTC is 2024-01-01 01:00 in Tokyo.
	if !IsBetween(time.Date(2023, 12, 31, 16, 0, 0, 0, time.UTC), window) {
		t.Error("expected airing that lands on Jan 1 in the window location to be inside")
	}
}

func TestIsBetween_InvertedWindow(t *testing.T) {
	window := DateWindow{Start: date(2024, 1, 7), End: date(2024, 1, 1)}
	for d := 1; d <= 7; d++ {
		if IsBetween(date(2024, 1, d), window) {
			t.Errorf("inverted window contains 2024-01-%02d", d)
		}
	}
}

func TestNewDateWindow_Truncates(t *testing.T) {
	w := NewDateWindow(time.Date(2024, 1, 1, 15, 4, 5, 0, time.UTC), time.Date(2024, 1, 7, 22, 0, 0, 0, time.UTC))
	if !w.Start.Equal(date(2024, 1, 1)) {
		t.Errorf("Start = %v, want midnight", w.Start)
	}
	if !w.End.Equal(date(2024, 1, 7)) {
		t.Errorf("End = %v, want midnight", w.End)
	}
}

func TestNewDateWindow_ClampsToGridWidth(t *testing.T) {
	w := NewDateWindow(date(2024, 1, 1), date(2024, 1, 10))
	if !w.End.Equal(date(2024, 1, 7)) {
		t.Errorf("End = %v, want 2024-01-07", w.End)
	}
	if w.Len() != DaysPerWeek {
		t.Errorf("Len() = %d, want %d", w.Len(), DaysPerWeek)
	}

	short := NewDateWindow(date(2024, 1, 1), date(2024, 1, 3))
	if !short.End.Equal(date(2024, 1, 3)) {
		t.Errorf("short window End = %v, want 2024-01-03", short.End)
	}

	// Every relevant show must land in a rendered column.
	model := Evaluate([]show.Show{
		loaded("past-grid", airing(2024, 1, 9, 20)),
		loaded("in-grid", airing(2024, 1, 5, 20)),
	}, w)
	if len(model.Rows) != 1 || model.Rows[0].Show.ID != "in-grid" {
		t.Fatalf("rows = %+v, want only in-grid", model.Rows)
	}
	if cols := model.Rows[0].Columns(); len(cols) != 1 || cols[0] != 4 {
		t.Errorf("columns = %v, want [4]", cols)
	}
}

func TestWeekOf(t *testing.T) {
	// Wednesday 2024-01-03
	w := WeekOf(time.Date(2024, 1, 3, 12, 0, 0, 0, time.UTC), time.Monday)
	if !w.Equal(firstWeek2024()) {
		t.Errorf("WeekOf() = %s, want %s", w, firstWeek2024())
	}

	sunday := WeekOf(time.Date(2024, 1, 3, 12, 0, 0, 0, time.UTC), time.Sunday)
	if got := sunday.String(); got != "2023-12-31..2024-01-06" {
		t.Errorf("WeekOf(sunday) = %s", got)
	}
}

func TestDateWindow_Navigation(t *testing.T) {
	w := firstWeek2024()

	next := w.Next()
	if got := next.String(); got != "2024-01-08..2024-01-14" {
		t.Errorf("Next() = %s", got)
	}
	prev := w.Prev()
	if got := prev.String(); got != "2023-12-25..2023-12-31" {
		t.Errorf("Prev() = %s", got)
	}
	if !next.Prev().Equal(w) {
		t.Errorf("Next().Prev() = %s, want %s", next.Prev(), w)
	}
	// Navigation returns new values.
	if got := w.String(); got != "2024-01-01..2024-01-07" {
		t.Errorf("original window mutated: %s", got)
	}
}

func TestDateWindow_NavigationAcrossDST(t *testing.T) {
	ny, err := time.LoadLocation("America/New_York")
	if err != nil {
		t.Skipf("timezone data unavailable: %v", err)
	}
	// DST starts 2024-03-10 in New York.
	w := WeekOf(time.Date(2024, 3, 6, 12, 0, 0, 0, ny), time.Monday)
	if w.Len() != 7 {
		t.Fatalf("Len() = %d, want 7", w.Len())
	}
	next := w.Next()
	if got := next.String(); got != "2024-03-11..2024-03-17" {
		t.Errorf("Next() = %s", got)
	}
}

func TestDateWindow_Days(t *testing.T) {
	days := firstWeek2024().Days()
	if len(days) != DaysPerWeek {
		t.Fatalf("Days() len = %d, want %d", len(days), DaysPerWeek)
	}
	for i, d := range days {
		want := date(2024, 1, 1+i)
		if !d.Equal(want) {
			t.Errorf("Days()[%d] = %v, want %v", i, d, want)
		}
	}
}

func TestDateWindow_DayIndex(t *testing.T) {
	w := firstWeek2024()
	tests := []struct {
		date time.Time
		want int
	}{
		{time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), 0},
		{time.Date(2024, 1, 3, 21, 0, 0, 0, time.UTC), 2},
		{time.Date(2024, 1, 7, 23, 0, 0, 0, time.UTC), 6},
		{time.Date(2024, 1, 8, 0, 0, 0, 0, time.UTC), -1},
		{time.Date(2023, 12, 31, 0, 0, 0, 0, time.UTC), -1},
	}
	for _, tt := range tests {
		if got := w.DayIndex(tt.date); got != tt.want {
			t.Errorf("DayIndex(%v) = %d, want %d", tt.date, got, tt.want)
		}
	}
}
