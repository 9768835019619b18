// Package theme provides the fieldview dashboard design system.
// It defines color palettes, spacing presets and the shared lipgloss
// styles, adapting to terminal capabilities (dark/light, true color/256c).
//
// Usage:
//
//	t := theme.Current(cfg.Theme)
//	card := t.Styles.Card.Render("...")
//
// The mode comes from configuration and can be overridden via the
// FIELDVIEW_THEME environment variable (light|dark|auto).
package theme

import "github.com/charmbracelet/lipgloss"

// Palette holds all color tokens for the design system.
type Palette struct {
	// Base surfaces
	Background    lipgloss.AdaptiveColor
	Surface       lipgloss.AdaptiveColor
	SurfaceSubtle lipgloss.AdaptiveColor

	// Text hierarchy
	Text      lipgloss.AdaptiveColor
	TextDim   lipgloss.AdaptiveColor
	TextMuted lipgloss.AdaptiveColor

	// Accent colors
	Accent       lipgloss.AdaptiveColor
	AccentStrong lipgloss.AdaptiveColor

	// Semantic colors
	Success lipgloss.AdaptiveColor
	Warning lipgloss.AdaptiveColor
	Error   lipgloss.AdaptiveColor

	// Interactive states
	Focus    lipgloss.AdaptiveColor
	Pressed  lipgloss.AdaptiveColor
	Disabled lipgloss.AdaptiveColor

	// Chart series, cycled per crop.
	Series []lipgloss.AdaptiveColor
}

// Dark is the default palette for dark backgrounds.
var Dark = Palette{
	Background:    lipgloss.AdaptiveColor{Light: "#FFFFFF", Dark: "#12140F"},
	Surface:       lipgloss.AdaptiveColor{Light: "#F6F5EF", Dark: "#1A1D16"},
	SurfaceSubtle: lipgloss.AdaptiveColor{Light: "#ECEADF", Dark: "#23271E"},

	Text:      lipgloss.AdaptiveColor{Light: "#1F2119", Dark: "#E9ECE1"},
	TextDim:   lipgloss.AdaptiveColor{Light: "#5F6353", Dark: "#8E9582"},
	TextMuted: lipgloss.AdaptiveColor{Light: "#979B8A", Dark: "#545A4A"},

	// Leaf green
	Accent:       lipgloss.AdaptiveColor{Light: "#3E8E41", Dark: "#7BC67E"},
	AccentStrong: lipgloss.AdaptiveColor{Light: "#2C6B2F", Dark: "#4CAF50"},

	Success: lipgloss.AdaptiveColor{Light: "#2DA866", Dark: "#3DDC84"},
	Warning: lipgloss.AdaptiveColor{Light: "#B7791F", Dark: "#E8B04B"},
	Error:   lipgloss.AdaptiveColor{Light: "#C53030", Dark: "#F06D6D"},

	Focus:    lipgloss.AdaptiveColor{Light: "#3E8E41", Dark: "#7BC67E"},
	Pressed:  lipgloss.AdaptiveColor{Light: "#D9E8D0", Dark: "#2F4A2A"},
	Disabled: lipgloss.AdaptiveColor{Light: "#CCCCCC", Dark: "#3A3A3A"},

	Series: []lipgloss.AdaptiveColor{
		{Light: "#3E8E41", Dark: "#7BC67E"},
		{Light: "#8D6E63", Dark: "#C8A27A"},
		{Light: "#1E88E5", Dark: "#64B5F6"},
		{Light: "#F9A825", Dark: "#FFD54F"},
		{Light: "#6D4C41", Dark: "#A1887F"},
		{Light: "#00897B", Dark: "#4DB6AC"},
	},
}

// Light is the palette for light backgrounds.
var Light = Palette{
	Background:    lipgloss.AdaptiveColor{Light: "#FFFFFF", Dark: "#FFFFFF"},
	Surface:       lipgloss.AdaptiveColor{Light: "#F6F5EF", Dark: "#F6F5EF"},
	SurfaceSubtle: lipgloss.AdaptiveColor{Light: "#ECEADF", Dark: "#ECEADF"},

	Text:      lipgloss.AdaptiveColor{Light: "#1F2119", Dark: "#1F2119"},
	TextDim:   lipgloss.AdaptiveColor{Light: "#5F6353", Dark: "#5F6353"},
	TextMuted: lipgloss.AdaptiveColor{Light: "#979B8A", Dark: "#979B8A"},

	Accent:       lipgloss.AdaptiveColor{Light: "#3E8E41", Dark: "#3E8E41"},
	AccentStrong: lipgloss.AdaptiveColor{Light: "#2C6B2F", Dark: "#2C6B2F"},

	Success: lipgloss.AdaptiveColor{Light: "#2DA866", Dark: "#2DA866"},
	Warning: lipgloss.AdaptiveColor{Light: "#B7791F", Dark: "#B7791F"},
	Error:   lipgloss.AdaptiveColor{Light: "#C53030", Dark: "#C53030"},

	Focus:    lipgloss.AdaptiveColor{Light: "#3E8E41", Dark: "#3E8E41"},
	Pressed:  lipgloss.AdaptiveColor{Light: "#D9E8D0", Dark: "#D9E8D0"},
	Disabled: lipgloss.AdaptiveColor{Light: "#CCCCCC", Dark: "#CCCCCC"},

	Series: []lipgloss.AdaptiveColor{
		{Light: "#3E8E41", Dark: "#3E8E41"},
		{Light: "#8D6E63", Dark: "#8D6E63"},
		{Light: "#1E88E5", Dark: "#1E88E5"},
		{Light: "#F9A825", Dark: "#F9A825"},
		{Light: "#6D4C41", Dark: "#6D4C41"},
		{Light: "#00897B", Dark: "#00897B"},
	},
}

// Palette256 provides 256-color fallback for legacy terminals.
var Palette256 = Palette{
	Background:    lipgloss.AdaptiveColor{Light: "231", Dark: "233"},
	Surface:       lipgloss.AdaptiveColor{Light: "255", Dark: "234"},
	SurfaceSubtle: lipgloss.AdaptiveColor{Light: "254", Dark: "236"},

	Text:      lipgloss.AdaptiveColor{Light: "232", Dark: "255"},
	TextDim:   lipgloss.AdaptiveColor{Light: "242", Dark: "246"},
	TextMuted: lipgloss.AdaptiveColor{Light: "248", Dark: "240"},

	Accent:       lipgloss.AdaptiveColor{Light: "28", Dark: "114"}, // green
	AccentStrong: lipgloss.AdaptiveColor{Light: "22", Dark: "71"},

	Success: lipgloss.AdaptiveColor{Light: "34", Dark: "84"},
	Warning: lipgloss.AdaptiveColor{Light: "136", Dark: "179"},
	Error:   lipgloss.AdaptiveColor{Light: "160", Dark: "210"},

	Focus:    lipgloss.AdaptiveColor{Light: "28", Dark: "114"},
	Pressed:  lipgloss.AdaptiveColor{Light: "194", Dark: "22"},
	Disabled: lipgloss.AdaptiveColor{Light: "250", Dark: "240"},

	Series: []lipgloss.AdaptiveColor{
		{Light: "28", Dark: "114"},
		{Light: "95", Dark: "180"},
		{Light: "32", Dark: "75"},
		{Light: "178", Dark: "221"},
		{Light: "94", Dark: "138"},
		{Light: "30", Dark: "73"},
	},
}

// SeriesColor returns the chart color for the i-th series.
func (p Palette) SeriesColor(i int) lipgloss.AdaptiveColor {
	if len(p.Series) == 0 {
		return p.Accent
	}
	if i < 0 {
		i = -i
	}
	return p.Series[i%len(p.Series)]
}
