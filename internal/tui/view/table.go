package view

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
)

// GridContent contains grid rows and their per-cell styles.
type GridContent struct {
	Rows       [][]string
	CellStyles [][]lipgloss.Style
}

// GridViewState holds data needed to render the week grid.
type GridViewState struct {
	InnerW       int
	GridH        int
	Offset       int // first data row shown when the grid overflows
	Headers      []string
	HeaderStyles []lipgloss.Style
	Content      GridContent
	BorderStyle  lipgloss.Style
	VAlign       lipgloss.Position
	Bg           lipgloss.Color
}

// RenderGrid renders the week grid as a bordered lipgloss table.
func RenderGrid(state GridViewState) string {
	if state.GridH <= 0 || state.InnerW <= 0 {
		return ""
	}

	t := table.New().
		Headers(state.Headers...).
		Width(max(state.InnerW-2, 0)).
		Height(state.GridH).
		Offset(max(state.Offset, 0)).
		Border(lipgloss.RoundedBorder()).
		BorderHeader(true).
		BorderColumn(true).
		BorderRow(false).
		BorderStyle(state.BorderStyle).
		Rows(state.Content.Rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				if col >= 0 && col < len(state.HeaderStyles) {
					return state.HeaderStyles[col]
				}
				return lipgloss.NewStyle()
			}
			if row < 0 || row >= len(state.Content.CellStyles) || col < 0 || col >= len(state.Content.CellStyles[row]) {
				return lipgloss.NewStyle()
			}
			return state.Content.CellStyles[row][col]
		})

	return PlaceBox(state.InnerW, state.GridH, state.VAlign, t.Render(), state.Bg)
}
