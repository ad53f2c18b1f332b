package view

import (
	"strconv"
	"time"

	"github.com/javiermolinar/showcal/internal/dateutil"
)

// HeaderLabels builds column labels for the grid and marks today's column.
// Column 0 holds the month of the first day; columns 1..n hold the days.
func HeaderLabels(days []time.Time, today time.Time) ([]string, map[int]bool) {
	labels := make([]string, 0, len(days)+1)
	todayCols := make(map[int]bool)

	if len(days) == 0 {
		return labels, todayCols
	}

	first := days[0]
	yearSuffix := first.Year() % 100
	labels = append(labels, first.Format("Jan")+" "+strconv.Itoa(yearSuffix/10)+strconv.Itoa(yearSuffix%10))

	for i, day := range days {
		label := day.Format("Mon") + " " + strconv.Itoa(day.Day())
		if dateutil.SameDay(day, today) {
			label = "*" + label + "*"
			todayCols[i+1] = true
		}
		labels = append(labels, label)
	}

	return labels, todayCols
}
