package theme

import (
	"math"

	"github.com/charmbracelet/lipgloss"
)

// Palette holds precomputed colors derived from a Theme.
type Palette struct {
	Bg          lipgloss.Color
	BgHighlight lipgloss.Color
	BgSelection lipgloss.Color
	Fg          lipgloss.Color
	FgMuted     lipgloss.Color
	Accent      lipgloss.Color
	Episode     lipgloss.Color
	Today       lipgloss.Color
	Warning     lipgloss.Color

	// Cell backgrounds; Alt is used on every other row.
	EpisodeBg    lipgloss.Color
	EpisodeBgAlt lipgloss.Color
	TodayBg      lipgloss.Color

	TextOnAccent  lipgloss.Color
	TextOnEpisode lipgloss.Color
	TextOnToday   lipgloss.Color
	TextOnWarning lipgloss.Color

	HelpBorder lipgloss.Color
	HelpText   lipgloss.Color
}

// NewPalette derives a Palette from the provided Theme.
func NewPalette(t *Theme) *Palette {
	if t == nil {
		t, _ = Load("mocha")
	}

	isLight := t.IsLight()
	episodeBg := cellBg(t.Episode, t.Bg, isLight)
	todayBg := blendColors(t.Today, t.Bg, 0.85)

	return &Palette{
		Bg:          lipgloss.Color(t.Bg),
		BgHighlight: lipgloss.Color(t.BgHighlight),
		BgSelection: lipgloss.Color(t.BgSelection),
		Fg:          lipgloss.Color(t.Fg),
		FgMuted:     lipgloss.Color(t.FgMuted),
		Accent:      lipgloss.Color(t.Accent),
		Episode:     lipgloss.Color(t.Episode),
		Today:       lipgloss.Color(t.Today),
		Warning:     lipgloss.Color(t.Warning),

		EpisodeBg:    lipgloss.Color(episodeBg),
		EpisodeBgAlt: lipgloss.Color(alternateShade(episodeBg, isLight)),
		TodayBg:      lipgloss.Color(todayBg),

		TextOnAccent:  lipgloss.Color(chooseTextColor(t.Accent, t.Bg, t.Fg)),
		TextOnEpisode: lipgloss.Color(chooseTextColor(episodeBg, t.Bg, t.Fg)),
		TextOnToday:   lipgloss.Color(chooseTextColor(t.Today, t.Bg, t.Fg)),
		TextOnWarning: lipgloss.Color(chooseTextColor(t.Warning, t.Bg, t.Fg)),

		HelpBorder: lipgloss.Color(t.HelpBorder),
		HelpText:   lipgloss.Color(t.HelpText),
	}
}

// cellBg picks the background for an airing cell: a tint on light themes,
// a darkened accent on dark ones.
func cellBg(accent, bg string, isLight bool) string {
	if isLight {
		return blendColors(accent, bg, 0.75)
	}
	return darkenColor(accent, 0.50, 40)
}

// darkenColor scales each channel by factor, keeping it at least floor so
// the result stays visible on dark backgrounds.
func darkenColor(hex string, factor float64, floor int) string {
	r, g, b, ok := splitHex(hex)
	if !ok {
		return hex
	}
	scale := func(v int) int {
		return max(int(float64(v)*factor), floor)
	}
	return formatHexColor(scale(r), scale(g), scale(b))
}

// alternateShade creates a subtle alternate shade for adjacent rows.
func alternateShade(hex string, isLight bool) string {
	if isLight {
		return blendColors(hex, "#000000", 0.10)
	}
	return blendColors(hex, "#ffffff", 0.15)
}

func splitHex(hex string) (r, g, b int, ok bool) {
	if len(hex) != 7 || hex[0] != '#' {
		return 0, 0, 0, false
	}
	return parseHex(hex[1:3]), parseHex(hex[3:5]), parseHex(hex[5:7]), true
}

// parseHex parses a 2-character hex string into an integer.
func parseHex(s string) int {
	var val int
	for i := 0; i < len(s); i++ {
		val *= 16
		c := s[i]
		switch {
		case c >= '0' && c <= '9':
			val += int(c - '0')
		case c >= 'a' && c <= 'f':
			val += int(c - 'a' + 10)
		case c >= 'A' && c <= 'F':
			val += int(c - 'A' + 10)
		}
	}
	return val
}

// formatHexColor formats RGB values as a hex color string.
func formatHexColor(r, g, b int) string {
	const hex = "0123456789abcdef"
	clamp := func(v int) int { return min(max(v, 0), 255) }
	r, g, b = clamp(r), clamp(g), clamp(b)
	return string([]byte{
		'#',
		hex[r>>4], hex[r&0xf],
		hex[g>>4], hex[g&0xf],
		hex[b>>4], hex[b&0xf],
	})
}

func chooseTextColor(bg, lightText, darkText string) string {
	if contrastRatio(bg, lightText) >= contrastRatio(bg, darkText) {
		return lightText
	}
	return darkText
}

func contrastRatio(a, b string) float64 {
	l1 := relativeLuminance(a)
	l2 := relativeLuminance(b)
	if l1 < l2 {
		l1, l2 = l2, l1
	}
	return (l1 + 0.05) / (l2 + 0.05)
}

func relativeLuminance(hex string) float64 {
	r, g, b, ok := splitHex(hex)
	if !ok {
		return 0
	}
	return 0.2126*srgbToLinear(r) + 0.7152*srgbToLinear(g) + 0.0722*srgbToLinear(b)
}

func srgbToLinear(c int) float64 {
	v := float64(c) / 255.0
	if v <= 0.04045 {
		return v / 12.92
	}
	return math.Pow((v+0.055)/1.055, 2.4)
}

func blendColors(a, b string, ratio float64) string {
	ar, ag, ab, okA := splitHex(a)
	br, bg, bb, okB := splitHex(b)
	if !okA || !okB {
		return a
	}
	ratio = math.Min(math.Max(ratio, 0), 1)

	mix := func(x, y int) int {
		return int(float64(x)*(1-ratio) + float64(y)*ratio)
	}
	return formatHexColor(mix(ar, br), mix(ag, bg), mix(ab, bb))
}
