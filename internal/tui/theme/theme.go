package theme

import (
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// EnvVar overrides the configured theme mode.
const EnvVar = "FIELDVIEW_THEME"

// Theme holds the active palette and terminal capability flags.
type Theme struct {
	// Palette contains all color tokens
	Palette Palette

	// Is256 indicates if we're using 256-color fallback
	Is256 bool

	// IsDark indicates if the terminal has a dark background
	IsDark bool

	// Styles contains pre-defined lipgloss styles
	Styles Styles
}

// Styles holds common reusable styles.
type Styles struct {
	Title    lipgloss.Style
	Subtitle lipgloss.Style
	Body     lipgloss.Style
	Dim      lipgloss.Style
	Muted    lipgloss.Style
	Accent   lipgloss.Style
	Error    lipgloss.Style
	Warning  lipgloss.Style

	SidebarItem         lipgloss.Style
	SidebarItemSelected lipgloss.Style

	Card      lipgloss.Style
	CardTitle lipgloss.Style
	CardValue lipgloss.Style
	CardIcon  lipgloss.Style

	Panel  lipgloss.Style
	Header lipgloss.Style
	Status lipgloss.Style
	Badge  lipgloss.Style

	Button        lipgloss.Style
	ButtonPressed lipgloss.Style
}

// themeMode represents the user's theme preference
type themeMode int

const (
	themeModeAuto themeMode = iota
	themeModeDark
	themeModeLight
)

// Current returns the active theme for the configured mode:
// 1. FIELDVIEW_THEME environment variable (light|dark|auto), if set
// 2. the mode argument
// 3. terminal background detection (if auto)
// 4. 256-color fallback if true color is not available
func Current(mode string) Theme {
	if env := os.Getenv(EnvVar); env != "" {
		mode = env
	}
	m := parseThemeMode(mode)

	isDark := true
	switch m {
	case themeModeLight:
		isDark = false
	case themeModeAuto:
		isDark = lipgloss.HasDarkBackground()
	}
	return build(isDark, shouldUse256Colors())
}

// ForceMode returns a theme with the specified mode, ignoring environment.
func ForceMode(dark bool) Theme {
	return build(dark, shouldUse256Colors())
}

func build(isDark, is256 bool) Theme {
	var palette Palette
	switch {
	case is256:
		palette = Palette256
	case isDark:
		palette = Dark
	default:
		palette = Light
	}

	return Theme{
		Palette: palette,
		Is256:   is256,
		IsDark:  isDark,
		Styles:  newStyles(palette),
	}
}

// Hex resolves an adaptive color for the theme's background. Components
// that take plain color strings, such as progress gradients, use it.
func (t Theme) Hex(c lipgloss.AdaptiveColor) string {
	if t.IsDark {
		return c.Dark
	}
	return c.Light
}

func newStyles(p Palette) Styles {
	button := lipgloss.NewStyle().
		Foreground(p.Text).
		Background(p.SurfaceSubtle)

	return Styles{
		Title:    lipgloss.NewStyle().Foreground(p.AccentStrong).Bold(true),
		Subtitle: lipgloss.NewStyle().Foreground(p.Accent).Bold(true),
		Body:     lipgloss.NewStyle().Foreground(p.Text),
		Dim:      lipgloss.NewStyle().Foreground(p.TextDim),
		Muted:    lipgloss.NewStyle().Foreground(p.TextMuted),
		Accent:   lipgloss.NewStyle().Foreground(p.Accent),
		Error:    lipgloss.NewStyle().Foreground(p.Error).Bold(true),
		Warning:  lipgloss.NewStyle().Foreground(p.Warning),

		SidebarItem:         lipgloss.NewStyle().Foreground(p.TextDim),
		SidebarItemSelected: lipgloss.NewStyle().Foreground(p.Accent).Bold(true),

		Card: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(p.SurfaceSubtle),
		CardTitle: lipgloss.NewStyle().Foreground(p.TextDim),
		CardValue: lipgloss.NewStyle().Foreground(p.Text).Bold(true),
		CardIcon:  lipgloss.NewStyle().Foreground(p.Accent),

		Panel: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(p.TextMuted),
		Header: lipgloss.NewStyle().
			Foreground(p.Text).
			BorderStyle(lipgloss.NormalBorder()).
			BorderBottom(true).
			BorderForeground(p.SurfaceSubtle),
		Status: lipgloss.NewStyle().Foreground(p.TextDim),
		Badge: lipgloss.NewStyle().
			Foreground(p.Background).
			Background(p.Accent).
			Bold(true).
			Padding(0, 1),

		Button:        button,
		ButtonPressed: button.Background(p.Pressed).Foreground(p.AccentStrong).Bold(true),
	}
}

// parseThemeMode interprets a theme mode string.
func parseThemeMode(s string) themeMode {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "light":
		return themeModeLight
	case "dark":
		return themeModeDark
	default:
		return themeModeAuto
	}
}

// shouldUse256Colors checks if we should use 256-color fallback.
// This happens when COLORTERM is not set to truecolor/24bit.
func shouldUse256Colors() bool {
	colorterm := strings.ToLower(os.Getenv("COLORTERM"))
	if colorterm == "truecolor" || colorterm == "24bit" {
		return false
	}
	return strings.Contains(os.Getenv("TERM"), "256color")
}
