package theme

import "testing"

func TestParseThemeMode(t *testing.T) {
	cases := map[string]themeMode{
		"light":  themeModeLight,
		" Dark ": themeModeDark,
		"auto":   themeModeAuto,
		"":       themeModeAuto,
		"sepia":  themeModeAuto,
	}
	for in, want := range cases {
		if got := parseThemeMode(in); got != want {
			t.Errorf("parseThemeMode(%q) = %v, want %v", in, got, want)
		}
	}
}

func TestCurrentEnvOverride(t *testing.T) {
	t.Setenv("COLORTERM", "truecolor")
	t.Setenv(EnvVar, "light")
	th := Current("dark")
	if th.IsDark {
		t.Fatal("expected FIELDVIEW_THEME=light to win over configured dark")
	}
	if th.Palette.Text != Light.Text {
		t.Errorf("expected light palette, got text %v", th.Palette.Text)
	}
}

func TestCurrentConfiguredMode(t *testing.T) {
	t.Setenv("COLORTERM", "truecolor")
	t.Setenv(EnvVar, "")
	if th := Current("dark"); !th.IsDark {
		t.Fatal("expected dark theme")
	}
	if th := Current("light"); th.IsDark {
		t.Fatal("expected light theme")
	}
}

func TestShouldUse256Colors(t *testing.T) {
	t.Setenv("COLORTERM", "")
	t.Setenv("TERM", "xterm-256color")
	if !shouldUse256Colors() {
		t.Error("expected 256-color fallback for xterm-256color without COLORTERM")
	}
	t.Setenv("COLORTERM", "24bit")
	if shouldUse256Colors() {
		t.Error("expected true color when COLORTERM=24bit")
	}
}

func TestSeriesColorCycles(t *testing.T) {
	p := Dark
	n := len(p.Series)
	if p.SeriesColor(0) != p.SeriesColor(n) {
		t.Error("series colors should cycle")
	}
	if (Palette{Accent: Dark.Accent}).SeriesColor(3) != Dark.Accent {
		t.Error("empty series should fall back to accent")
	}
}

func TestHexFollowsBackground(t *testing.T) {
	c := Dark.Accent
	if got := build(true, false).Hex(c); got != c.Dark {
		t.Errorf("dark Hex = %q, want %q", got, c.Dark)
	}
	if got := build(false, false).Hex(c); got != c.Light {
		t.Errorf("light Hex = %q, want %q", got, c.Light)
	}
}
