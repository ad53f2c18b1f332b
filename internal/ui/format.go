package ui

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/mattn/go-runewidth"

	"github.com/javiermolinar/showcal/internal/calendar"
	"github.com/javiermolinar/showcal/internal/dateutil"
	"github.com/javiermolinar/showcal/internal/loader"
	"github.com/javiermolinar/showcal/internal/show"
)

const (
	minNameWidth = 12
	maxNameWidth = 28
	minDayWidth  = 7
	cellGap      = 2
	emptyCell    = "·"
	rowSeparator = "┈"
)

// GridOpts configures the text grid.
type GridOpts struct {
	Width int       // total width; 0 uses the terminal width
	Today time.Time // highlighted column, zero for none
}

// columnWidths splits the available width between the name column and
// seven day columns.
func (o GridOpts) columnWidths(rows []calendar.Row) (name, day int) {
	width := o.Width
	if width <= 0 {
		width = termWidth()
	}

	name = minNameWidth
	for _, r := range rows {
		if w := runewidth.StringWidth(r.Show.Title()); w > name {
			name = w
		}
	}
	if name > maxNameWidth {
		name = maxNameWidth
	}

	day = (width - name - cellGap*(calendar.DaysPerWeek+1)) / calendar.DaysPerWeek
	if day < minDayWidth {
		day = minDayWidth
	}
	return name, day
}

// RenderWeek writes the grid for model to w.
func RenderWeek(w io.Writer, model calendar.RenderModel, opts GridOpts) {
	window := model.Window
	header := fmt.Sprintf("WEEK: %s - %s", window.Start.Format("Mon Jan 2"), window.End.Format("Mon Jan 2, 2006"))
	_, _ = fmt.Fprintf(w, "\n  %s\n", formatHeader(header))

	nameWidth, dayWidth := opts.columnWidths(model.Rows)
	ruleWidth := nameWidth + (dayWidth+cellGap)*calendar.DaysPerWeek
	_, _ = fmt.Fprintf(w, "  %s\n", strings.Repeat("─", ruleWidth))

	if model.Empty() {
		_, _ = fmt.Fprintln(w, "  No tracked show airs this week.")
		return
	}

	var b strings.Builder
	b.WriteString("  ")
	b.WriteString(runewidth.FillRight("Show", nameWidth))
	for _, day := range model.Days {
		label := runewidth.FillRight(day.Format("Mon 02"), dayWidth)
		if !opts.Today.IsZero() && dateutil.SameDay(day, opts.Today) {
			label = formatToday(label)
		} else {
			label = formatHeader(label)
		}
		b.WriteString(strings.Repeat(" ", cellGap))
		b.WriteString(label)
	}
	_, _ = fmt.Fprintln(w, b.String())

	for _, row := range model.Rows {
		_, _ = fmt.Fprintln(w, formatRow(row, nameWidth, dayWidth))
		// The closing rule follows the last row instead of a separator.
		if !row.IsLastRow {
			_, _ = fmt.Fprintf(w, "  %s\n", formatMuted(strings.Repeat(rowSeparator, ruleWidth)))
		}
	}
	_, _ = fmt.Fprintf(w, "  %s\n", strings.Repeat("─", ruleWidth))
}

func formatRow(row calendar.Row, nameWidth, dayWidth int) string {
	var b strings.Builder
	b.WriteString("  ")
	b.WriteString(runewidth.FillRight(runewidth.Truncate(row.Show.Title(), nameWidth, "…"), nameWidth))
	for _, cell := range row.Cells {
		b.WriteString(strings.Repeat(" ", cellGap))
		text := cell.Label()
		if text == "" {
			b.WriteString(formatMuted(runewidth.FillRight(emptyCell, dayWidth)))
			continue
		}
		b.WriteString(formatEpisode(runewidth.FillRight(runewidth.Truncate(text, dayWidth, "…"), dayWidth)))
	}
	return b.String()
}

// printFailures reports shows whose episode fetch failed.
func printFailures(w io.Writer, failures []loader.Failure) {
	if len(failures) == 0 {
		return
	}
	_, _ = fmt.Fprintf(w, "  %s\n", formatWarn(fmt.Sprintf("Could not load %d show(s):", len(failures))))
	for _, f := range failures {
		_, _ = fmt.Fprintf(w, "    %s %s\n", formatWarn("✗"), formatMuted(f.Error()))
	}
}

// stateLabel renders a show's episode state for the shows listing.
func stateLabel(s show.Show) string {
	switch s.EpisodeState() {
	case show.LoadedNonEmpty:
		return formatStats(fmt.Sprintf("%d episodes", len(s.Episodes)))
	case show.LoadedEmpty:
		return formatMuted("no episodes")
	default:
		return formatWarn("not loaded")
	}
}
