package paint

import (
	"fmt"
	"strconv"
	"strings"
)

// lineNumberPlaceholder marks where the number goes in a gutter template.
const lineNumberPlaceholder = "%ln"

// lineNumberWidth is the fixed column width the number is centered in, so
// that gutters stay aligned when a line exists on only one side.
const lineNumberWidth = 4

// LineNumberFormat is a parsed per-side gutter template: the literal text
// before and after the number placeholder.
type LineNumberFormat struct {
	Before string
	After  string
}

// ParseLineNumberFormat parses a gutter template containing exactly one
// %ln placeholder. A missing or duplicated placeholder is a configuration
// error; it is surfaced to the caller building the policy, never patched.
func ParseLineNumberFormat(tmpl string) (LineNumberFormat, error) {
	i := strings.Index(tmpl, lineNumberPlaceholder)
	if i < 0 {
		return LineNumberFormat{}, fmt.Errorf("line number format %q: missing %s placeholder", tmpl, lineNumberPlaceholder)
	}
	rest := tmpl[i+len(lineNumberPlaceholder):]
	if strings.Contains(rest, lineNumberPlaceholder) {
		return LineNumberFormat{}, fmt.Errorf("line number format %q: %s placeholder appears more than once", tmpl, lineNumberPlaceholder)
	}
	return LineNumberFormat{Before: tmpl[:i], After: rest}, nil
}

// Components renders the three gutter pieces for an optional line number.
// The number is centered in a fixed-width column; a nil number yields a
// blank column of the same width.
func (f LineNumberFormat) Components(n *int) (before, number, after string) {
	return f.Before, formatLineNumber(n), f.After
}

func formatLineNumber(n *int) string {
	if n == nil {
		return strings.Repeat(" ", lineNumberWidth)
	}
	return center(strconv.Itoa(*n), lineNumberWidth)
}

// center pads s with spaces to width, biasing the extra space rightwards.
func center(s string, width int) string {
	pad := width - len(s)
	if pad <= 0 {
		return s
	}
	left := pad / 2
	return strings.Repeat(" ", left) + s + strings.Repeat(" ", pad-left)
}
