package calendar

import (
	"fmt"
	"sort"
	"time"

	"github.com/javiermolinar/showcal/internal/show"
)

// HeaderRows is the number of fixed rows above the first show row.
const HeaderRows = 1

// Cell holds the episodes of one show airing on one day of the window.
type Cell struct {
	Date     time.Time
	Episodes []show.Episode
}

// Row places a relevant show in the grid.
type Row struct {
	Show      show.Show
	RowIndex  int // 0-based grid row, header included
	IsLastRow bool
	Cells     [DaysPerWeek]Cell
}

// Columns returns the day offsets that have at least one episode.
func (r Row) Columns() []int {
	var cols []int
	for i, c := range r.Cells {
		if len(c.Episodes) > 0 {
			cols = append(cols, i)
		}
	}
	return cols
}

// AssignRows gives each relevant show its grid row. RowIndex is the
// position in relevant plus HeaderRows, and IsLastRow is judged against
// len(relevant), not the unfiltered show count.
func AssignRows(relevant []show.Show, window DateWindow) []Row {
	rows := make([]Row, len(relevant))
	days := window.Days()
	for i, s := range relevant {
		row := Row{
			Show:      s,
			RowIndex:  i + HeaderRows,
			IsLastRow: i == len(relevant)-1,
		}
		for d := range row.Cells {
			row.Cells[d].Date = days[d]
		}
		for _, ep := range s.Episodes {
			idx := window.DayIndex(ep.Airstamp)
			if idx < 0 || idx >= DaysPerWeek {
				continue
			}
			row.Cells[idx].Episodes = append(row.Cells[idx].Episodes, ep)
		}
		for d := range row.Cells {
			eps := row.Cells[d].Episodes
			sort.SliceStable(eps, func(a, b int) bool {
				return eps[a].Airstamp.Before(eps[b].Airstamp)
			})
		}
		rows[i] = row
	}
	return rows
}

// Label is the short text for a cell: the first episode code, with a "+N"
// suffix when several episodes air the same day. Empty cells return "".
func (c Cell) Label() string {
	if len(c.Episodes) == 0 {
		return ""
	}
	label := c.Episodes[0].Code()
	if label == "" {
		label = "new"
	}
	if extra := len(c.Episodes) - 1; extra > 0 {
		label += fmt.Sprintf("+%d", extra)
	}
	return label
}
