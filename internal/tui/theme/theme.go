// Package theme provides color themes for the TUI.
package theme

import (
	"embed"
	"fmt"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

//go:embed embedded/*.toml
var embeddedThemes embed.FS

// Theme holds all colors for a TUI theme.
type Theme struct {
	Name        string `toml:"name"`
	Bg          string `toml:"bg"`           // Base background
	BgHighlight string `toml:"bg_highlight"` // Header row, alternate rows
	BgSelection string `toml:"bg_selection"` // Help overlay panel
	Fg          string `toml:"fg"`           // Primary foreground
	FgMuted     string `toml:"fg_muted"`     // Empty cells, hints
	Accent      string `toml:"accent"`       // Title, borders
	Episode     string `toml:"episode"`      // Cells with an airing
	Today       string `toml:"today"`        // Current day column
	Warning     string `toml:"warning"`      // Failed fetches

	// Help overlay (falls back to base colors)
	HelpBorder string `toml:"help_border"`
	HelpText   string `toml:"help_text"`
}

// Load loads a theme by name from embedded files.
// Falls back to mocha if the theme is not found.
func Load(name string) (*Theme, error) {
	if name == "" {
		name = "mocha"
	}
	name = strings.ToLower(name)

	data, err := embeddedThemes.ReadFile("embedded/" + name + ".toml")
	if err != nil {
		if name != "mocha" {
			return Load("mocha")
		}
		return nil, fmt.Errorf("loading theme %q: %w", name, err)
	}

	var t Theme
	if err := toml.Unmarshal(data, &t); err != nil {
		return nil, fmt.Errorf("parsing theme %q: %w", name, err)
	}
	t.applyDefaults()

	return &t, nil
}

// IsLight reports whether the theme has a light background.
func (t *Theme) IsLight() bool {
	return relativeLuminance(t.Bg) > 0.55
}

func (t *Theme) applyDefaults() {
	if t.HelpBorder == "" {
		t.HelpBorder = t.Accent
	}
	if t.HelpText == "" {
		t.HelpText = t.Fg
	}
	if t.BgSelection == "" {
		t.BgSelection = coalesce(t.BgHighlight, t.Bg)
	}
}

func coalesce(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

// Available returns a list of available theme names.
func Available() []string {
	return []string{"mocha", "macchiato", "frappe", "latte", "light"}
}

// IsAvailable reports whether a theme name is available.
func IsAvailable(name string) bool {
	name = strings.ToLower(name)
	for _, themeName := range Available() {
		if themeName == name {
			return true
		}
	}
	return false
}
