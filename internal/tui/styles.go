// Package tui provides the terminal user interface for showcal.
package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/javiermolinar/showcal/internal/tui/theme"
)

// Minimum widths; the grid stretches them to fill the terminal.
const (
	minNameColWidth = 12
	minDayColWidth  = 8
)

// Styles holds all lipgloss styles for the TUI, derived from a theme.
type Styles struct {
	colorBg      lipgloss.Color
	colorOverlay lipgloss.Color

	// Title bar
	TitleStyle lipgloss.Style
	RangeStyle lipgloss.Style

	// Grid header
	CornerStyle         lipgloss.Style
	DayHeaderStyle      lipgloss.Style
	DayHeaderTodayStyle lipgloss.Style

	// Grid body
	ShowNameStyle        lipgloss.Style
	EpisodeStyle         lipgloss.Style
	EpisodeAltStyle      lipgloss.Style // every other row
	EpisodeTodayStyle    lipgloss.Style
	EmptyCellStyle       lipgloss.Style
	EmptyTodayCellStyle  lipgloss.Style
	BorderStyle          lipgloss.Style
	EmptyMessageStyle    lipgloss.Style
	OnboardingTitleStyle lipgloss.Style

	// Footer
	StatusStyle   lipgloss.Style
	WarningStyle  lipgloss.Style
	SpinnerStyle  lipgloss.Style
	HelpKeyStyle  lipgloss.Style
	HelpDescStyle lipgloss.Style

	// Help overlay
	OverlayStyle lipgloss.Style

	AppStyle lipgloss.Style
}

// NewStyles creates a new Styles instance from a theme.
func NewStyles(t *theme.Theme) *Styles {
	p := theme.NewPalette(t)
	s := &Styles{
		colorBg:      p.Bg,
		colorOverlay: p.BgHighlight,
	}

	base := lipgloss.NewStyle().Background(p.Bg)

	s.TitleStyle = base.Bold(true).Foreground(p.Accent)
	s.RangeStyle = base.Foreground(p.Fg)

	s.CornerStyle = base.Bold(true).Foreground(p.Accent).Padding(0, 1)
	s.DayHeaderStyle = base.Bold(true).Align(lipgloss.Center).Foreground(p.Fg)
	s.DayHeaderTodayStyle = s.DayHeaderStyle.Foreground(p.TextOnToday).Background(p.TodayBg)

	s.ShowNameStyle = base.Foreground(p.Fg).Padding(0, 1)
	s.EpisodeStyle = lipgloss.NewStyle().
		Align(lipgloss.Center).
		Bold(true).
		Foreground(p.TextOnEpisode).
		Background(p.EpisodeBg)
	s.EpisodeAltStyle = s.EpisodeStyle.Background(p.EpisodeBgAlt)
	s.EpisodeTodayStyle = s.EpisodeStyle.Foreground(p.TextOnToday).Background(p.Today)
	s.EmptyCellStyle = base.Align(lipgloss.Center).Foreground(p.FgMuted)
	s.EmptyTodayCellStyle = s.EmptyCellStyle.Background(p.TodayBg)
	s.BorderStyle = base.Foreground(p.BgSelection)
	s.EmptyMessageStyle = base.Foreground(p.FgMuted).Italic(true)
	s.OnboardingTitleStyle = base.Bold(true).Foreground(p.Accent)

	s.StatusStyle = base.Foreground(p.Fg)
	s.WarningStyle = base.Foreground(p.Warning)
	s.SpinnerStyle = base.Foreground(p.Accent)
	s.HelpKeyStyle = base.Foreground(p.HelpText).Bold(true)
	s.HelpDescStyle = base.Foreground(p.FgMuted)

	s.OverlayStyle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(p.HelpBorder).
		BorderBackground(p.BgHighlight).
		Background(p.BgHighlight).
		Foreground(p.HelpText).
		Padding(0, 1)

	s.AppStyle = base.Foreground(p.Fg)

	return s
}
