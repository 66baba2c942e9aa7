package paint

import (
	"strings"
	"unicode/utf8"

	"github.com/charmbracelet/x/ansi"

	"github.com/odvcencio/tint/pkg/config"
	"github.com/odvcencio/tint/pkg/highlight"
	"github.com/odvcencio/tint/pkg/style"
)

const (
	ansiEraseInLine = "\x1b[K"
	ansiSGRReset    = "\x1b[0m"
)

// paintLines renders one side of a flushed hunk run into the output
// buffer. syntaxSections, diffSections and numbers are parallel, one
// entry per buffered line.
func (p *Painter) paintLines(
	syntaxSections [][]highlight.Span,
	diffSections [][]style.Span,
	numbers []LineNumbers,
	marker string,
	baseStyle, nonEmphStyle style.Style,
) error {
	for i := range diffSections {
		spans, err := Superimpose(syntaxSections[i], diffSections[i], p.cfg.TrueColor)
		if err != nil {
			return err
		}
		p.output.WriteString(p.renderLine(spans, numbers[i], marker, diffSections[i], baseStyle, nonEmphStyle))
		p.output.WriteByte('\n')
	}
	return nil
}

// renderLine assembles a single output line, without its trailing
// newline: gutter, marker, styled content, and the optional background
// extension to the terminal edge.
func (p *Painter) renderLine(
	spans []OwnedSpan,
	numbers LineNumbers,
	marker string,
	diffSpans []style.Span,
	baseStyle, nonEmphStyle style.Style,
) string {
	var b strings.Builder

	if p.cfg.ShowLineNumbers && (numbers.Minus != nil || numbers.Plus != nil) {
		before, number, after := p.minusFormat.Components(numbers.Minus)
		b.WriteString(p.cfg.NumberMinusFormatStyle.Paint(before))
		b.WriteString(p.cfg.NumberMinusStyle.Paint(number))
		b.WriteString(p.cfg.NumberMinusFormatStyle.Paint(after))
		before, number, after = p.plusFormat.Components(numbers.Plus)
		b.WriteString(p.cfg.NumberPlusFormatStyle.Paint(before))
		b.WriteString(p.cfg.NumberPlusStyle.Paint(number))
		b.WriteString(p.cfg.NumberPlusFormatStyle.Paint(after))
	}

	// Buffered hunk lines retain their diff marker as the first content
	// character. Paint the configured marker in its place, in the first
	// span's style.
	if marker != "" && len(spans) > 0 && spans[0].Text != "" {
		b.WriteString(spans[0].Style.Paint(marker))
		_, size := utf8.DecodeRuneInString(spans[0].Text)
		spans[0].Text = spans[0].Text[size:]
	}
	for _, s := range spans {
		if s.Text == "" {
			continue
		}
		b.WriteString(s.Style.Paint(s.Text))
	}

	line := b.String()
	fill := baseStyle
	if style.SpansContainMultipleStyles(diffSpans) {
		fill = nonEmphStyle
	}
	if fill.Background != nil {
		// Zero-length span seeds the fill background; the erase sequence
		// that spreads it to the terminal edge only applies at fixed width.
		line += fill.Paint("")
		if p.cfg.BackgroundColorExtendsToTerminalWidth && p.cfg.Width.Mode == config.WidthFixed {
			line = extendBackground(line)
		}
	}
	return line
}

// extendBackground makes the line's current background run to the right
// edge of the terminal. The trailing SGR reset is lifted over the erase
// sequence so the erase still sees the background attributes; a line that
// already carries the erase sequence is left with a single one.
func extendBackground(line string) string {
	line = strings.TrimSuffix(line, ansiSGRReset)
	if strings.HasSuffix(line, ansiEraseInLine) {
		return line + ansiSGRReset
	}
	return line + ansiEraseInLine + ansiSGRReset
}

// writeDecorated emits a rendered header line together with its
// decoration. plain is the line's text with styling and newline removed,
// used for width measurement.
func (p *Painter) writeDecorated(rendered, plain string, st style.Style) {
	width := ansi.StringWidth(plain)
	border := style.Style{Foreground: st.Foreground}

	switch st.Decoration {
	case style.DecorationBox:
		// Corner column sits one past the text, so the text row gets a
		// single space of padding before its edge.
		horizontal := strings.Repeat("─", width+1)
		p.output.WriteString(border.Paint(horizontal + "┐"))
		p.output.WriteByte('\n')
		p.output.WriteString(rendered)
		p.output.WriteString(border.Paint(" │"))
		p.output.WriteByte('\n')
		p.output.WriteString(border.Paint(horizontal + "┘"))
		p.output.WriteByte('\n')
	case style.DecorationUnderline:
		p.output.WriteString(rendered)
		p.output.WriteByte('\n')
		p.output.WriteString(border.Paint(strings.Repeat("─", width)))
		p.output.WriteByte('\n')
	default:
		p.output.WriteString(rendered)
		p.output.WriteByte('\n')
	}
}
