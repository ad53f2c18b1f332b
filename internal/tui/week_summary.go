package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/javiermolinar/showcal/internal/calendar"
	"github.com/javiermolinar/showcal/internal/dateutil"
)

// weekSummaryText renders the week as plain text for the clipboard:
// one block per day with the episodes airing that day, in grid order.
func weekSummaryText(model calendar.RenderModel, today time.Time) string {
	var b strings.Builder
	w := model.Window
	fmt.Fprintf(&b, "Week of %s - %s\n", w.Start.Format("Mon Jan 2"), w.End.Format("Mon Jan 2, 2006"))

	if model.Empty() {
		b.WriteString("\nNo tracked show airs this week.\n")
		return b.String()
	}

	loc := w.Start.Location()
	for d, day := range model.Days {
		var lines []string
		for _, row := range model.Rows {
			for _, ep := range row.Cells[d].Episodes {
				line := fmt.Sprintf("  %s  %s", ep.Airstamp.In(loc).Format("15:04"), row.Show.Title())
				if code := ep.Code(); code != "" {
					line += " " + code
				}
				if ep.Name != "" {
					line += fmt.Sprintf(" %q", ep.Name)
				}
				if row.Show.Network != "" {
					line += " (" + row.Show.Network + ")"
				}
				lines = append(lines, line)
			}
		}
		if len(lines) == 0 {
			continue
		}

		heading := day.Format("Mon Jan 2")
		if dateutil.SameDay(day, today.In(loc)) {
			heading += " (today)"
		}
		b.WriteString("\n" + heading + "\n")
		b.WriteString(strings.Join(lines, "\n") + "\n")
	}
	return b.String()
}
