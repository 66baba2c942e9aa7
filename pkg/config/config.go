// Package config builds the fully-resolved rendering policy consumed by the
// painter. Resolution follows a fixed precedence: explicit command-line
// flags, then named presets (rightmost wins), then hard defaults. The core
// never reads the environment or any configuration source itself; every
// tunable is an explicit field here.
package config

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/muesli/termenv"

	"github.com/odvcencio/tint/pkg/style"
	"github.com/odvcencio/tint/pkg/theme"
)

// WidthMode selects how decorations and background fill relate to the
// terminal width.
type WidthMode int

const (
	// WidthFixed pads backgrounds and decorations to a fixed column count.
	WidthFixed WidthMode = iota
	// WidthVariable ends decorations at the text; no width-based padding.
	WidthVariable
)

// Width is the resolved terminal width policy.
type Width struct {
	Mode    WidthMode
	Columns int // meaningful only for WidthFixed
}

// Config is the resolved style/policy object. It is read-only after
// Resolve returns; the painter applies it without re-validating.
type Config struct {
	BackgroundColorExtendsToTerminalWidth bool
	Width                                 Width
	TrueColor                             bool
	TabWidth                              int

	MinusStyle        style.Style
	MinusEmphStyle    style.Style
	MinusNonEmphStyle style.Style
	ZeroStyle         style.Style
	PlusStyle         style.Style
	PlusEmphStyle     style.Style
	PlusNonEmphStyle  style.Style

	CommitStyle     style.Style
	FileStyle       style.Style
	HunkHeaderStyle style.Style

	MinusLineMarker string
	PlusLineMarker  string

	ShowLineNumbers        bool
	NumberMinusFormat      string
	NumberPlusFormat       string
	NumberMinusStyle       style.Style
	NumberPlusStyle        style.Style
	NumberMinusFormatStyle style.Style
	NumberPlusFormatStyle  style.Style

	// SyntaxTheme is the chroma style name, or "" when syntax
	// highlighting is disabled.
	SyntaxTheme string

	MaxLineDistance                      float64
	MaxLineDistanceForNaivelyPairedLines float64
	MaxBufferedLines                     int

	FileAddedLabel    string
	FileModifiedLabel string
	FileRemovedLabel  string
	FileRenamedLabel  string
}

// Options carries raw option values as supplied on the command line, with
// flag defaults already filled in. Explicit records which options the user
// actually set, so that presets slot in below flags but above defaults.
type Options struct {
	Theme string
	Light bool
	Dark  bool

	MinusStyle        string
	MinusEmphStyle    string
	MinusNonEmphStyle string
	ZeroStyle         string
	PlusStyle         string
	PlusEmphStyle     string
	PlusNonEmphStyle  string

	CommitStyle               string
	CommitDecorationStyle     string
	FileStyle                 string
	FileDecorationStyle       string
	HunkHeaderStyle           string
	HunkHeaderDecorationStyle string

	FileAddedLabel    string
	FileModifiedLabel string
	FileRemovedLabel  string
	FileRenamedLabel  string

	ShowLineNumbers        bool
	NumberMinusFormat      string
	NumberPlusFormat       string
	NumberMinusStyle       string
	NumberPlusStyle        string
	NumberMinusFormatStyle string
	NumberPlusFormatStyle  string

	KeepPlusMinusMarkers bool
	Width                string
	TabWidth             int

	MaxLineDistance                      float64
	MaxLineDistanceForNaivelyPairedLines float64

	Presets string

	// TrueColorMode is "always", "never", or "auto"; TerminalTrueColor is
	// the capability the caller detected for "auto".
	TrueColorMode     string
	TerminalTrueColor bool

	Explicit map[string]bool
}

// DefaultOptions returns Options populated with the hard defaults. The CLI
// uses these as flag default values; tests use them directly.
func DefaultOptions() Options {
	return Options{
		MinusStyle:                "normal auto",
		MinusEmphStyle:            "normal auto",
		MinusNonEmphStyle:         "auto auto",
		ZeroStyle:                 "syntax normal",
		PlusStyle:                 "syntax auto",
		PlusEmphStyle:             "syntax auto",
		PlusNonEmphStyle:          "auto auto",
		CommitStyle:               "raw",
		CommitDecorationStyle:     "",
		FileStyle:                 "blue",
		FileDecorationStyle:       "blue ul",
		HunkHeaderStyle:           "syntax",
		HunkHeaderDecorationStyle: "blue box",
		FileAddedLabel:            "added:",
		FileModifiedLabel:         "",
		FileRemovedLabel:          "removed:",
		FileRenamedLabel:          "renamed:",
		NumberMinusFormat:         "%ln⋮",
		NumberPlusFormat:          "%ln│ ",
		TabWidth:                  4,
		MaxLineDistance:           0.6,
		TrueColorMode:             "auto",
	}
}

// Resolve applies the flags > presets > defaults cascade and builds the
// policy. termWidth is the detected terminal width in columns; one column
// is held back so that a pager's status column does not wrap output.
func Resolve(opts Options, termWidth int) (*Config, error) {
	builtin, err := theme.BuiltinPresets()
	if err != nil {
		return nil, err
	}
	var active []theme.Preset
	for _, name := range strings.Fields(opts.Presets) {
		p, ok := builtin[strings.ToLower(name)]
		if !ok {
			return nil, fmt.Errorf("unknown preset %q", name)
		}
		active = append(active, p)
	}
	r := resolver{opts: opts, presets: active}

	trueColor, err := resolveTrueColor(opts)
	if err != nil {
		return nil, err
	}

	width, bgExtends, err := resolveWidth(r.str("width", opts.Width), termWidth)
	if err != nil {
		return nil, err
	}

	themeName, light, err := resolveTheme(&r)
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		BackgroundColorExtendsToTerminalWidth: bgExtends,
		Width:                                 width,
		TrueColor:                             trueColor,
		TabWidth:                              r.num("tab-width", opts.TabWidth),
		ShowLineNumbers:                       r.flag("line-numbers", opts.ShowLineNumbers),
		NumberMinusFormat:                     r.str("number-minus-format", opts.NumberMinusFormat),
		NumberPlusFormat:                      r.str("number-plus-format", opts.NumberPlusFormat),
		SyntaxTheme:                           themeName,
		MaxLineDistance:                       r.float("max-line-distance", opts.MaxLineDistance),
		MaxLineDistanceForNaivelyPairedLines:  opts.MaxLineDistanceForNaivelyPairedLines,
		MaxBufferedLines:                      32,
		FileAddedLabel:                        r.str("file-added-label", opts.FileAddedLabel),
		FileModifiedLabel:                     r.str("file-modified-label", opts.FileModifiedLabel),
		FileRemovedLabel:                      r.str("file-removed-label", opts.FileRemovedLabel),
		FileRenamedLabel:                      r.str("file-renamed-label", opts.FileRenamedLabel),
	}

	if r.flag("keep-plus-minus-markers", opts.KeepPlusMinusMarkers) {
		cfg.MinusLineMarker, cfg.PlusLineMarker = "-", "+"
	} else {
		cfg.MinusLineMarker, cfg.PlusLineMarker = " ", " "
	}

	if err := resolveHunkStyles(cfg, &r, light, trueColor); err != nil {
		return nil, err
	}
	if err := resolveHeaderStyles(cfg, &r, trueColor); err != nil {
		return nil, err
	}
	if err := resolveLineNumberStyles(cfg, &r, trueColor); err != nil {
		return nil, err
	}
	return cfg, nil
}

func resolveTrueColor(opts Options) (bool, error) {
	switch opts.TrueColorMode {
	case "always":
		return true, nil
	case "never":
		return false, nil
	case "", "auto":
		return opts.TerminalTrueColor, nil
	default:
		return false, fmt.Errorf("invalid value for --24-bit-color: %q (expected always, never, or auto)", opts.TrueColorMode)
	}
}

func resolveWidth(spec string, termWidth int) (Width, bool, error) {
	// Allow one column for a pager's status column.
	available := termWidth - 1
	if available < 1 {
		available = 1
	}
	switch spec {
	case "":
		return Width{Mode: WidthFixed, Columns: available}, true, nil
	case "variable":
		return Width{Mode: WidthVariable}, false, nil
	default:
		n, err := strconv.Atoi(spec)
		if err != nil || n <= 0 {
			return Width{}, false, fmt.Errorf("could not parse width %q as a positive integer", spec)
		}
		if n > available {
			n = available
		}
		return Width{Mode: WidthFixed, Columns: n}, true, nil
	}
}

func resolveTheme(r *resolver) (name string, light bool, err error) {
	opts := r.opts
	if opts.Light && opts.Dark {
		return "", false, fmt.Errorf("--light and --dark are mutually exclusive")
	}
	name = r.str("theme", opts.Theme)
	if name == "" {
		if opts.Light {
			return theme.DefaultLightTheme, true, nil
		}
		return theme.DefaultDarkTheme, false, nil
	}
	if theme.IsNoSyntaxHighlightingName(name) {
		return "", opts.Light, nil
	}
	if !theme.IsSyntaxTheme(name) {
		return "", false, fmt.Errorf("unknown syntax theme %q (run `tint themes` for the available names)", name)
	}
	light = opts.Light || (!opts.Dark && theme.IsLightSyntaxTheme(name))
	return name, light, nil
}

func resolveHunkStyles(cfg *Config, r *resolver, light, trueColor bool) error {
	var err error
	cfg.MinusStyle, err = style.Parse(r.str("minus-style", r.opts.MinusStyle),
		nil, minusBackground(light, trueColor), trueColor, false)
	if err != nil {
		return err
	}
	cfg.MinusEmphStyle, err = style.Parse(r.str("minus-emph-style", r.opts.MinusEmphStyle),
		nil, minusEmphBackground(light, trueColor), trueColor, true)
	if err != nil {
		return err
	}
	cfg.MinusNonEmphStyle, err = style.Parse(r.str("minus-non-emph-style", r.opts.MinusNonEmphStyle),
		cfg.MinusStyle.Foreground, cfg.MinusStyle.Background, trueColor, false)
	if err != nil {
		return err
	}
	cfg.ZeroStyle, err = style.Parse(r.str("zero-style", r.opts.ZeroStyle), nil, nil, trueColor, false)
	if err != nil {
		return err
	}
	cfg.PlusStyle, err = style.Parse(r.str("plus-style", r.opts.PlusStyle),
		nil, plusBackground(light, trueColor), trueColor, false)
	if err != nil {
		return err
	}
	cfg.PlusEmphStyle, err = style.Parse(r.str("plus-emph-style", r.opts.PlusEmphStyle),
		nil, plusEmphBackground(light, trueColor), trueColor, true)
	if err != nil {
		return err
	}
	cfg.PlusNonEmphStyle, err = style.Parse(r.str("plus-non-emph-style", r.opts.PlusNonEmphStyle),
		cfg.PlusStyle.Foreground, cfg.PlusStyle.Background, trueColor, false)
	return err
}

func resolveHeaderStyles(cfg *Config, r *resolver, trueColor bool) error {
	var err error
	cfg.CommitStyle, err = headerStyle(
		r.str("commit-style", r.opts.CommitStyle),
		r.str("commit-decoration-style", r.opts.CommitDecorationStyle), trueColor)
	if err != nil {
		return err
	}
	cfg.FileStyle, err = headerStyle(
		r.str("file-style", r.opts.FileStyle),
		r.str("file-decoration-style", r.opts.FileDecorationStyle), trueColor)
	if err != nil {
		return err
	}
	cfg.HunkHeaderStyle, err = headerStyle(
		r.str("hunk-header-style", r.opts.HunkHeaderStyle),
		r.str("hunk-header-decoration-style", r.opts.HunkHeaderDecorationStyle), trueColor)
	return err
}

func headerStyle(spec, decorationSpec string, trueColor bool) (style.Style, error) {
	s, err := style.Parse(spec, nil, nil, trueColor, false)
	if err != nil {
		return style.Style{}, err
	}
	return style.ParseDecoration(s, decorationSpec, trueColor)
}

// resolveLineNumberStyles builds the four gutter styles. Unset number
// styles fall back to the hunk-header style, keeping the gutter visually
// consistent with the hunk header by default.
func resolveLineNumberStyles(cfg *Config, r *resolver, trueColor bool) error {
	fallback := r.str("hunk-header-style", r.opts.HunkHeaderStyle)
	parse := func(name, flagVal string) (style.Style, error) {
		spec := r.str(name, flagVal)
		if spec == "" {
			spec = fallback
		}
		return style.Parse(spec, nil, nil, trueColor, false)
	}
	var err error
	if cfg.NumberMinusStyle, err = parse("number-minus-style", r.opts.NumberMinusStyle); err != nil {
		return err
	}
	if cfg.NumberPlusStyle, err = parse("number-plus-style", r.opts.NumberPlusStyle); err != nil {
		return err
	}
	if cfg.NumberMinusFormatStyle, err = parse("number-minus-format-style", r.opts.NumberMinusFormatStyle); err != nil {
		return err
	}
	cfg.NumberPlusFormatStyle, err = parse("number-plus-format-style", r.opts.NumberPlusFormatStyle)
	return err
}

// resolver implements the flags > presets > defaults precedence for one
// option at a time. flagVal carries the flag's current value, which is the
// hard default unless the user set it explicitly.
type resolver struct {
	opts    Options
	presets []theme.Preset
}

func (r *resolver) str(name, flagVal string) string {
	if r.opts.Explicit[name] {
		return flagVal
	}
	for i := len(r.presets) - 1; i >= 0; i-- {
		if v, ok := r.presets[i].String(name); ok {
			return v
		}
	}
	return flagVal
}

func (r *resolver) flag(name string, flagVal bool) bool {
	if r.opts.Explicit[name] {
		return flagVal
	}
	for i := len(r.presets) - 1; i >= 0; i-- {
		if v, ok := r.presets[i].Bool(name); ok {
			return v
		}
	}
	return flagVal
}

func (r *resolver) num(name string, flagVal int) int {
	if r.opts.Explicit[name] {
		return flagVal
	}
	for i := len(r.presets) - 1; i >= 0; i-- {
		if v, ok := r.presets[i].Int(name); ok {
			return v
		}
	}
	return flagVal
}

func (r *resolver) float(name string, flagVal float64) float64 {
	if r.opts.Explicit[name] {
		return flagVal
	}
	for i := len(r.presets) - 1; i >= 0; i-- {
		if v, ok := r.presets[i].Float(name); ok {
			return v
		}
	}
	return flagVal
}

// Default background palettes for the four hunk area styles, matching the
// conventional light and dark diff looks. Reduced-palette terminals get
// the nearest ANSI-256 entries.
func minusBackground(light, trueColor bool) termenv.Color {
	switch {
	case light && trueColor:
		return termenv.RGBColor("#ffe0e0")
	case light:
		return termenv.ANSI256Color(224)
	case trueColor:
		return termenv.RGBColor("#3f0001")
	default:
		return termenv.ANSI256Color(52)
	}
}

func minusEmphBackground(light, trueColor bool) termenv.Color {
	switch {
	case light && trueColor:
		return termenv.RGBColor("#ffc0c0")
	case light:
		return termenv.ANSI256Color(217)
	case trueColor:
		return termenv.RGBColor("#901011")
	default:
		return termenv.ANSI256Color(88)
	}
}

func plusBackground(light, trueColor bool) termenv.Color {
	switch {
	case light && trueColor:
		return termenv.RGBColor("#d0ffd0")
	case light:
		return termenv.ANSI256Color(194)
	case trueColor:
		return termenv.RGBColor("#002800")
	default:
		return termenv.ANSI256Color(22)
	}
}

func plusEmphBackground(light, trueColor bool) termenv.Color {
	switch {
	case light && trueColor:
		return termenv.RGBColor("#a0efa0")
	case light:
		return termenv.ANSI256Color(157)
	case trueColor:
		return termenv.RGBColor("#006000")
	default:
		return termenv.ANSI256Color(28)
	}
}
