package config

import (
	"strings"
	"testing"

	"github.com/muesli/termenv"
)

func resolve(t *testing.T, opts Options, termWidth int) *Config {
	t.Helper()
	cfg, err := Resolve(opts, termWidth)
	if err != nil {
		t.Fatal(err)
	}
	return cfg
}

// ---------------------------------------------------------------------------
// Defaults
// ---------------------------------------------------------------------------

func TestResolve_Defaults(t *testing.T) {
	cfg := resolve(t, DefaultOptions(), 81)

	if cfg.Width.Mode != WidthFixed || cfg.Width.Columns != 80 {
		t.Errorf("width = %+v, want fixed 80", cfg.Width)
	}
	if !cfg.BackgroundColorExtendsToTerminalWidth {
		t.Error("background extension disabled by default")
	}
	if cfg.TrueColor {
		t.Error("true color enabled without terminal support")
	}
	if cfg.SyntaxTheme != "monokai" {
		t.Errorf("syntax theme = %q, want monokai", cfg.SyntaxTheme)
	}
	if cfg.TabWidth != 4 {
		t.Errorf("tab width = %d, want 4", cfg.TabWidth)
	}
	if cfg.MinusLineMarker != " " || cfg.PlusLineMarker != " " {
		t.Errorf("markers = %q/%q, want blanks", cfg.MinusLineMarker, cfg.PlusLineMarker)
	}
	if cfg.MaxLineDistance != 0.6 {
		t.Errorf("max line distance = %v, want 0.6", cfg.MaxLineDistance)
	}
	if cfg.MaxLineDistanceForNaivelyPairedLines != 0 {
		t.Error("naive pairing shortcut enabled by default")
	}

	// Dark palette on a reduced-color terminal.
	if cfg.MinusStyle.Background != termenv.ANSI256Color(52) {
		t.Errorf("minus background = %v, want palette 52", cfg.MinusStyle.Background)
	}
	if cfg.MinusStyle.Foreground != nil {
		t.Errorf("minus foreground = %v, want terminal default", cfg.MinusStyle.Foreground)
	}
	if cfg.MinusEmphStyle.Background != termenv.ANSI256Color(88) || !cfg.MinusEmphStyle.IsEmph {
		t.Errorf("minus emph style = %+v", cfg.MinusEmphStyle)
	}
	if !cfg.PlusStyle.IsSyntaxHighlighted {
		t.Error("plus style not syntax highlighted by default")
	}
	if cfg.PlusStyle.Background != termenv.ANSI256Color(22) {
		t.Errorf("plus background = %v, want palette 22", cfg.PlusStyle.Background)
	}
	if !cfg.ZeroStyle.IsSyntaxHighlighted || cfg.ZeroStyle.Background != nil {
		t.Errorf("zero style = %+v", cfg.ZeroStyle)
	}

	// Non-emph styles inherit the base background by default.
	if cfg.MinusNonEmphStyle.Background != cfg.MinusStyle.Background {
		t.Errorf("minus non-emph background = %v", cfg.MinusNonEmphStyle.Background)
	}

	if !cfg.CommitStyle.IsRaw {
		t.Error("commit style not raw by default")
	}
	if cfg.FileStyle.Foreground != termenv.ANSIColor(4) {
		t.Errorf("file style foreground = %v, want blue", cfg.FileStyle.Foreground)
	}
	if cfg.HunkHeaderStyle.Decoration == 0 {
		t.Error("hunk header has no decoration")
	}
}

func TestResolve_TrueColorPalette(t *testing.T) {
	opts := DefaultOptions()
	opts.TerminalTrueColor = true
	cfg := resolve(t, opts, 81)

	if !cfg.TrueColor {
		t.Fatal("terminal capability not honored in auto mode")
	}
	if cfg.MinusStyle.Background != termenv.RGBColor("#3f0001") {
		t.Errorf("minus background = %v, want #3f0001", cfg.MinusStyle.Background)
	}
}

func TestResolve_TrueColorMode(t *testing.T) {
	opts := DefaultOptions()
	opts.TrueColorMode = "always"
	if cfg := resolve(t, opts, 81); !cfg.TrueColor {
		t.Error("always mode did not force true color")
	}

	opts.TrueColorMode = "never"
	opts.TerminalTrueColor = true
	if cfg := resolve(t, opts, 81); cfg.TrueColor {
		t.Error("never mode did not suppress true color")
	}

	opts.TrueColorMode = "sometimes"
	if _, err := Resolve(opts, 81); err == nil {
		t.Error("invalid mode accepted")
	}
}

// ---------------------------------------------------------------------------
// Width
// ---------------------------------------------------------------------------

func TestResolve_Width(t *testing.T) {
	opts := DefaultOptions()

	opts.Width = "variable"
	cfg := resolve(t, opts, 81)
	if cfg.Width.Mode != WidthVariable {
		t.Errorf("width mode = %v, want variable", cfg.Width.Mode)
	}
	if cfg.BackgroundColorExtendsToTerminalWidth {
		t.Error("variable width still extends the background")
	}

	opts.Width = "40"
	cfg = resolve(t, opts, 81)
	if cfg.Width != (Width{Mode: WidthFixed, Columns: 40}) {
		t.Errorf("width = %+v, want fixed 40", cfg.Width)
	}

	// Requested widths are clamped to the terminal.
	opts.Width = "200"
	cfg = resolve(t, opts, 81)
	if cfg.Width.Columns != 80 {
		t.Errorf("width = %d, want clamp to 80", cfg.Width.Columns)
	}

	opts.Width = "bogus"
	if _, err := Resolve(opts, 81); err == nil {
		t.Error("invalid width accepted")
	}
}

// ---------------------------------------------------------------------------
// Theme selection
// ---------------------------------------------------------------------------

func TestResolve_LightMode(t *testing.T) {
	opts := DefaultOptions()
	opts.Light = true
	cfg := resolve(t, opts, 81)

	if cfg.SyntaxTheme != "github" {
		t.Errorf("light syntax theme = %q, want github", cfg.SyntaxTheme)
	}
	if cfg.MinusStyle.Background != termenv.ANSI256Color(224) {
		t.Errorf("light minus background = %v, want palette 224", cfg.MinusStyle.Background)
	}
}

func TestResolve_LightDarkConflict(t *testing.T) {
	opts := DefaultOptions()
	opts.Light = true
	opts.Dark = true
	if _, err := Resolve(opts, 81); err == nil {
		t.Error("conflicting background modes accepted")
	}
}

func TestResolve_ThemeNone(t *testing.T) {
	opts := DefaultOptions()
	opts.Theme = "none"
	cfg := resolve(t, opts, 81)
	if cfg.SyntaxTheme != "" {
		t.Errorf("syntax theme = %q, want disabled", cfg.SyntaxTheme)
	}
}

func TestResolve_LightThemeImpliesLightPalette(t *testing.T) {
	opts := DefaultOptions()
	opts.Theme = "github"
	cfg := resolve(t, opts, 81)
	if cfg.MinusStyle.Background != termenv.ANSI256Color(224) {
		t.Errorf("minus background = %v, want light palette", cfg.MinusStyle.Background)
	}
}

func TestResolve_UnknownTheme(t *testing.T) {
	opts := DefaultOptions()
	opts.Theme = "no-such-theme"
	_, err := Resolve(opts, 81)
	if err == nil {
		t.Fatal("unknown theme accepted")
	}
	if !strings.Contains(err.Error(), "no-such-theme") {
		t.Errorf("error %q does not name the theme", err)
	}
}

// ---------------------------------------------------------------------------
// Presets
// ---------------------------------------------------------------------------

func TestResolve_Preset(t *testing.T) {
	opts := DefaultOptions()
	opts.Presets = "diff-highlight"
	cfg := resolve(t, opts, 81)

	if cfg.MinusStyle.Foreground != termenv.ANSIColor(1) {
		t.Errorf("preset minus foreground = %v, want red", cfg.MinusStyle.Foreground)
	}
	if !cfg.MinusEmphStyle.Reverse {
		t.Error("preset emphasis not reversed")
	}
	if cfg.SyntaxTheme != "" {
		t.Errorf("preset syntax theme = %q, want disabled", cfg.SyntaxTheme)
	}
}

func TestResolve_PresetLineNumbers(t *testing.T) {
	opts := DefaultOptions()
	opts.Presets = "line-numbers"
	cfg := resolve(t, opts, 81)

	if !cfg.ShowLineNumbers {
		t.Error("preset did not enable line numbers")
	}
	if cfg.NumberMinusStyle.Foreground != termenv.ANSI256Color(88) {
		t.Errorf("number minus style = %+v", cfg.NumberMinusStyle)
	}
}

func TestResolve_FlagBeatsPreset(t *testing.T) {
	opts := DefaultOptions()
	opts.Presets = "diff-highlight"
	opts.MinusStyle = "green"
	opts.Explicit = map[string]bool{"minus-style": true}
	cfg := resolve(t, opts, 81)

	if cfg.MinusStyle.Foreground != termenv.ANSIColor(2) {
		t.Errorf("explicit flag lost to preset: %v", cfg.MinusStyle.Foreground)
	}
}

func TestResolve_UnknownPreset(t *testing.T) {
	opts := DefaultOptions()
	opts.Presets = "no-such-preset"
	if _, err := Resolve(opts, 81); err == nil {
		t.Error("unknown preset accepted")
	}
}

// ---------------------------------------------------------------------------
// Line number styles
// ---------------------------------------------------------------------------

func TestResolve_NumberStylesFallBackToHunkHeader(t *testing.T) {
	opts := DefaultOptions()
	opts.HunkHeaderStyle = "blue"
	opts.Explicit = map[string]bool{"hunk-header-style": true}
	cfg := resolve(t, opts, 81)

	if cfg.NumberMinusStyle.Foreground != termenv.ANSIColor(4) {
		t.Errorf("number style = %+v, want hunk header fallback", cfg.NumberMinusStyle)
	}
}
