// Package view provides view composition helpers for the TUI.
package view

// OverlayRenderer renders an overlay box on top of base content.
type OverlayRenderer interface {
	Render(base string, width, height int, content string) string
}

// ViewState contains pre-rendered content and overlay metadata.
type ViewState struct {
	Width          int
	Height         int
	BaseContent    string
	OverlayContent string
	ShowOverlay    bool
	Overlay        OverlayRenderer
}

// Render composes the final view output. Until the terminal size is known
// it returns a loading placeholder.
func Render(state ViewState) string {
	if state.Width == 0 || state.Height == 0 {
		return "Loading..."
	}
	if state.ShowOverlay && state.Overlay != nil {
		return state.Overlay.Render(state.BaseContent, state.Width, state.Height, state.OverlayContent)
	}
	return state.BaseContent
}
