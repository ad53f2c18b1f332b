package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/javiermolinar/showcal/internal/tui/view"
)

// overlay splices a pre-rendered box over the centre of the base view.
type overlay struct {
	bg lipgloss.Color
}

// Render implements view.OverlayRenderer.
func (o overlay) Render(base string, width, height int, content string) string {
	if width <= 0 || height <= 0 {
		return base
	}
	boxLines := trimTrailingEmpty(strings.Split(content, "\n"))
	if len(boxLines) == 0 {
		return base
	}

	boxW := 0
	for _, line := range boxLines {
		boxW = max(boxW, lipgloss.Width(line))
	}
	boxW = min(boxW, width)
	if len(boxLines) > height {
		boxLines = boxLines[:height]
	}
	boxH := len(boxLines)

	top := (height - boxH) / 2
	left := (width - boxW) / 2

	baseLines := normalizeLines(base, width, height)
	for i, line := range boxLines {
		if lipgloss.Width(line) > boxW {
			line = ansi.Cut(line, 0, boxW)
		}
		if w := lipgloss.Width(line); w < boxW {
			line += lipgloss.NewStyle().Background(o.bg).Render(strings.Repeat(" ", boxW-w))
		}
		line = view.ApplyBackgroundResets(line, o.bg) + ansi.ResetStyle

		row := top + i
		baseLine := baseLines[row]
		baseLines[row] = ansi.Cut(baseLine, 0, left) + line + ansi.Cut(baseLine, left+boxW, width)
	}
	return strings.Join(baseLines, "\n")
}

func trimTrailingEmpty(lines []string) []string {
	for len(lines) > 0 && lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	return lines
}

// normalizeLines returns exactly height lines, each exactly width cells wide.
func normalizeLines(s string, width, height int) []string {
	lines := strings.Split(s, "\n")
	for len(lines) < height {
		lines = append(lines, "")
	}
	lines = lines[:height]
	for i, line := range lines {
		w := lipgloss.Width(line)
		switch {
		case w > width:
			lines[i] = ansi.Cut(line, 0, width)
		case w < width:
			lines[i] = line + strings.Repeat(" ", width-w)
		}
	}
	return lines
}
