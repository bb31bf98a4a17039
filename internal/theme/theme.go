package theme

import "github.com/charmbracelet/lipgloss"

// Theme defines the color palette used by all panes and overlays.
// Holders keep a *Theme pointer so palette swaps from config reload are
// visible on the next View() call.
type Theme struct {
	Bg       lipgloss.Color
	Accent   lipgloss.Color
	Subtle   lipgloss.Color
	Text     lipgloss.Color
	Dim      lipgloss.Color
	Border   lipgloss.Color
	StatusBg lipgloss.Color
	StatusFg lipgloss.Color
	Error    lipgloss.Color

	// Pane chrome.
	Focus  lipgloss.Color // focused pane border
	Armed  lipgloss.Color // leader-armed status indicator
	Zoomed lipgloss.Color // zoom badge
}

// Default returns the default palette (catppuccin-inspired).
func Default() Theme {
	return Theme{
		Bg:       lipgloss.Color("#1e1e2e"),
		Accent:   lipgloss.Color("#cba6f7"),
		Subtle:   lipgloss.Color("#6c7086"),
		Text:     lipgloss.Color("#cdd6f4"),
		Dim:      lipgloss.Color("#585b70"),
		Border:   lipgloss.Color("#45475a"),
		StatusBg: lipgloss.Color("#313244"),
		StatusFg: lipgloss.Color("#cdd6f4"),
		Error:    lipgloss.Color("#f38ba8"),
		Focus:    lipgloss.Color("#89b4fa"),
		Armed:    lipgloss.Color("#f9e2af"),
		Zoomed:   lipgloss.Color("#a6e3a1"),
	}
}

// Named returns a palette by config name, falling back to the default.
func Named(name string) Theme {
	switch name {
	case "plain":
		return Plain()
	default:
		return Default()
	}
}

// Plain is a muted palette for terminals without truecolor themes.
func Plain() Theme {
	return Theme{
		Bg:       lipgloss.Color("0"),
		Accent:   lipgloss.Color("13"),
		Subtle:   lipgloss.Color("8"),
		Text:     lipgloss.Color("15"),
		Dim:      lipgloss.Color("8"),
		Border:   lipgloss.Color("8"),
		StatusBg: lipgloss.Color("0"),
		StatusFg: lipgloss.Color("15"),
		Error:    lipgloss.Color("9"),
		Focus:    lipgloss.Color("12"),
		Armed:    lipgloss.Color("11"),
		Zoomed:   lipgloss.Color("10"),
	}
}
