package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/javiermolinar/showcal/internal/calendar"
	"github.com/javiermolinar/showcal/internal/tui/view"
)

const (
	titleHeight  = 1
	footerHeight = 2
	// Outer border plus one separator per column.
	gridChrome = calendar.DaysPerWeek + 2
	maxNameCol = 28
)

// View renders the model.
func (m Model) View() string {
	base := lipgloss.JoinVertical(lipgloss.Left,
		m.renderTitle(),
		m.renderBody(),
		m.renderFooter(),
	)
	help := m.help
	help.ShowAll = true
	return view.Render(view.ViewState{
		Width:          m.width,
		Height:         m.height,
		BaseContent:    m.styles.AppStyle.Render(base),
		OverlayContent: m.styles.OverlayStyle.Render("Keys\n\n" + help.View(m.keys)),
		ShowOverlay:    m.showHelp,
		Overlay:        overlay{bg: m.styles.colorOverlay},
	})
}

func (m Model) bodyHeight() int {
	return max(m.height-titleHeight-footerHeight, 0)
}

func (m Model) renderTitle() string {
	w := m.window
	title := m.styles.TitleStyle.Render("showcal") +
		m.styles.RangeStyle.Render(fmt.Sprintf("  %s - %s", w.Start.Format("Mon Jan 2"), w.End.Format("Mon Jan 2, 2006")))
	if n := len(m.ctrl.InFlight()); n > 0 {
		title += m.styles.RangeStyle.Render("  ") + m.spinner.View() +
			m.styles.StatusStyle.Render(fmt.Sprintf(" loading %d show(s)", n))
	}
	return view.PlaceBox(m.width, titleHeight, lipgloss.Top, title, m.styles.colorBg)
}

func (m Model) renderBody() string {
	h := m.bodyHeight()
	switch {
	case m.err != nil:
		return m.message(h, m.styles.WarningStyle.Render("Error: "+m.err.Error()))
	case !m.loaded:
		return m.message(h, m.styles.EmptyMessageStyle.Render("Loading shows..."))
	case len(m.shows) == 0:
		return m.message(h, m.onboarding())
	case m.render.Empty():
		return m.message(h, m.styles.EmptyMessageStyle.Render("No tracked show airs this week."))
	}

	return view.RenderGrid(m.gridState(h))
}

func (m Model) message(h int, content string) string {
	return view.PlaceBox(m.width, h, lipgloss.Center,
		lipgloss.PlaceHorizontal(m.width, lipgloss.Center, content, lipgloss.WithWhitespaceBackground(m.styles.colorBg)),
		m.styles.colorBg)
}

func (m Model) onboarding() string {
	lines := []string{
		m.styles.OnboardingTitleStyle.Render("No shows tracked yet"),
		"",
		m.styles.StatusStyle.Render("Add TVmaze show IDs to [shows] tracked in"),
		m.styles.StatusStyle.Render(m.initState.ConfigPath),
	}
	if m.initState.ConfigMissing {
		lines = append(lines, "", m.styles.HelpKeyStyle.Render("Press i to write a default config."))
	}
	return lipgloss.JoinVertical(lipgloss.Center, lines...)
}

// columnWidths splits the terminal width between the name and day columns.
func (m Model) columnWidths() (nameW, dayW int) {
	avail := m.width - gridChrome
	nameW = min(max(avail/5, minNameColWidth), maxNameCol)
	dayW = max((avail-nameW)/calendar.DaysPerWeek, minDayColWidth)
	return nameW, dayW
}

func (m Model) gridState(h int) view.GridViewState {
	nameW, dayW := m.columnWidths()
	today := m.now()

	labels, todayCols := view.HeaderLabels(m.render.Days, today)
	headerStyles := make([]lipgloss.Style, len(labels))
	for i := range labels {
		switch {
		case i == 0:
			headerStyles[i] = m.styles.CornerStyle.Width(nameW)
		case todayCols[i]:
			headerStyles[i] = m.styles.DayHeaderTodayStyle.Width(dayW)
		default:
			headerStyles[i] = m.styles.DayHeaderStyle.Width(dayW)
		}
	}

	content := view.GridContent{
		Rows:       make([][]string, 0, len(m.render.Rows)),
		CellStyles: make([][]lipgloss.Style, 0, len(m.render.Rows)),
	}
	for _, row := range m.render.Rows {
		cells := make([]string, 0, calendar.DaysPerWeek+1)
		styles := make([]lipgloss.Style, 0, calendar.DaysPerWeek+1)

		cells = append(cells, view.Truncate(row.Show.Title(), nameW-2))
		styles = append(styles, m.styles.ShowNameStyle.Width(nameW))

		for d, cell := range row.Cells {
			label := view.Truncate(cell.Label(), dayW)
			isToday := todayCols[d+1]
			switch {
			case label == "" && isToday:
				cells = append(cells, "·")
				styles = append(styles, m.styles.EmptyTodayCellStyle.Width(dayW))
			case label == "":
				cells = append(cells, "·")
				styles = append(styles, m.styles.EmptyCellStyle.Width(dayW))
			case isToday:
				cells = append(cells, label)
				styles = append(styles, m.styles.EpisodeTodayStyle.Width(dayW))
			default:
				cells = append(cells, label)
				styles = append(styles, m.episodeStyle(row).Width(dayW))
			}
		}
		content.Rows = append(content.Rows, cells)
		content.CellStyles = append(content.CellStyles, styles)
	}

	return view.GridViewState{
		InnerW:       m.width,
		GridH:        h,
		Offset:       m.offset,
		Headers:      labels,
		HeaderStyles: headerStyles,
		Content:      content,
		BorderStyle:  m.styles.BorderStyle,
		VAlign:       lipgloss.Top,
		Bg:           m.styles.colorBg,
	}
}

// episodeStyle alternates the cell shade between grid rows.
func (m Model) episodeStyle(row calendar.Row) lipgloss.Style {
	if row.RowIndex%2 == 0 {
		return m.styles.EpisodeAltStyle
	}
	return m.styles.EpisodeStyle
}

func (m Model) renderFooter() string {
	return view.RenderFooter(view.FooterViewState{
		InnerW:     m.width,
		FooterH:    footerHeight,
		StatusLine: m.statusLine(),
		HelpLine:   m.help.View(m.keys),
		VAlign:     lipgloss.Bottom,
		Bg:         m.styles.colorBg,
	})
}

func (m Model) statusLine() string {
	switch {
	case m.statusMsg != "" && m.statusIsErr:
		return m.styles.WarningStyle.Render(m.statusMsg)
	case m.statusMsg != "":
		return m.styles.StatusStyle.Render(m.statusMsg)
	case len(m.failures) > 0:
		ids := make([]string, 0, len(m.failures))
		for _, s := range m.shows {
			if _, ok := m.failures[s.ID]; ok {
				ids = append(ids, s.ID)
			}
		}
		return m.styles.WarningStyle.Render(fmt.Sprintf("%d show(s) failed to load: %s (r to retry)", len(ids), strings.Join(ids, ", ")))
	}
	return ""
}
