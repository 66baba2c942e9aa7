// Package style models terminal text styles for diff output: a foreground
// and background color, font attributes, and the handful of flags the
// painter uses to decide how a styled run participates in rendering.
package style

import (
	"strings"

	"github.com/muesli/termenv"
)

const (
	csi      = "\x1b["
	sgrReset = "\x1b[0m"
)

// DecorationKind selects the decoration drawn around a header line.
type DecorationKind int

const (
	NoDecoration DecorationKind = iota
	DecorationBox
	DecorationUnderline
)

// Style is a terminal text style. A nil Foreground or Background means the
// terminal default for that plane. Style is a value type: two styles compare
// equal iff all fields are equal.
type Style struct {
	Foreground termenv.Color
	Background termenv.Color

	Bold      bool
	Dim       bool
	Italic    bool
	Underline bool
	Reverse   bool
	Strike    bool

	// IsEmph marks the emphasized sub-range style produced by edit
	// inference (the substring that actually changed within a line).
	IsEmph bool

	// IsSyntaxHighlighted requests that the foreground be taken from the
	// syntax highlighter when a style is superimposed onto syntax spans.
	IsSyntaxHighlighted bool

	// IsRaw passes text through without any escape sequences.
	IsRaw bool

	// IsOmitted suppresses the styled element entirely.
	IsOmitted bool

	Decoration DecorationKind
}

// HasAttributes reports whether painting with s would emit any SGR codes.
func (s Style) HasAttributes() bool {
	return s.Foreground != nil || s.Background != nil ||
		s.Bold || s.Dim || s.Italic || s.Underline || s.Reverse || s.Strike
}

// Paint wraps text in the minimal SGR sequence for s, followed by a reset.
// A style with no attributes returns text unchanged; a raw style always
// returns text unchanged; an omitted style renders nothing. Painting an
// empty string with a non-empty style still emits the escape sequences, so
// that a zero-length span can seed the background for a subsequent
// erase-to-end-of-line.
func (s Style) Paint(text string) string {
	if s.IsOmitted {
		return ""
	}
	if s.IsRaw || !s.HasAttributes() {
		return text
	}
	var b strings.Builder
	b.WriteString(csi)
	b.WriteString(s.sequence())
	b.WriteByte('m')
	b.WriteString(text)
	b.WriteString(sgrReset)
	return b.String()
}

func (s Style) sequence() string {
	var parts []string
	if s.Bold {
		parts = append(parts, "1")
	}
	if s.Dim {
		parts = append(parts, "2")
	}
	if s.Italic {
		parts = append(parts, "3")
	}
	if s.Underline {
		parts = append(parts, "4")
	}
	if s.Reverse {
		parts = append(parts, "7")
	}
	if s.Strike {
		parts = append(parts, "9")
	}
	if s.Foreground != nil {
		parts = append(parts, s.Foreground.Sequence(false))
	}
	if s.Background != nil {
		parts = append(parts, s.Background.Sequence(true))
	}
	return strings.Join(parts, ";")
}

// ToTerminal maps a source-annotation color (typically a 24-bit color from
// the syntax theme) to a terminal-renderable color under the active
// capability: true-color terminals receive the color unchanged, others
// receive the nearest ANSI-256 palette entry. A nil color stays nil.
func ToTerminal(c termenv.Color, trueColor bool) termenv.Color {
	if c == nil {
		return nil
	}
	if trueColor {
		return termenv.TrueColor.Convert(c)
	}
	return termenv.ANSI256.Convert(c)
}
