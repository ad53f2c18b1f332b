package ui

import (
	"os"

	"github.com/fatih/color"
	"golang.org/x/term"
)

// Color definitions for consistent styling across the UI.
var (
	// Episodes: bold cyan so airings stand out in the grid
	colorEpisode = color.New(color.FgCyan, color.Bold)

	// Today: yellow to mark the current day column
	colorToday = color.New(color.FgYellow, color.Bold)

	// Warnings: red for failed fetches
	colorWarn = color.New(color.FgRed)

	// Headers: bold
	colorHeader = color.New(color.Bold)

	// Loaded state: green
	colorStats = color.New(color.FgGreen)

	// Muted: for secondary information
	colorMuted = color.New(color.FgWhite, color.Faint)
)

// termWidth returns the terminal width, or a default if detection fails.
func termWidth() int {
	width, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || width <= 0 {
		return 100 // sensible default
	}
	return width
}

// DisableColor disables all color output.
func DisableColor() {
	color.NoColor = true
}

func formatEpisode(s string) string {
	return colorEpisode.Sprint(s)
}

func formatToday(s string) string {
	return colorToday.Sprint(s)
}

func formatWarn(s string) string {
	return colorWarn.Sprint(s)
}

// formatHeader formats text as a header.
func formatHeader(s string) string {
	return colorHeader.Sprint(s)
}

// formatStats formats text for statistics.
func formatStats(s string) string {
	return colorStats.Sprint(s)
}

// formatMuted formats text as secondary/muted.
func formatMuted(s string) string {
	return colorMuted.Sprint(s)
}
