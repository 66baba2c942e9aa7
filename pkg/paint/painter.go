// Package paint renders classified diff lines to styled terminal text. It
// owns the two per-side line buffers for the current hunk run, superimposes
// syntax-highlighting and edit-inference annotations, and accumulates the
// rendered output in an explicit buffer that the caller drains.
package paint

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/odvcencio/tint/pkg/config"
	"github.com/odvcencio/tint/pkg/highlight"
	"github.com/odvcencio/tint/pkg/infer"
	"github.com/odvcencio/tint/pkg/style"
)

// Highlighter is the syntax-annotation collaborator. Highlight must return
// an ordered partition covering the full line including its trailing
// newline, deterministically for a given line.
type Highlighter interface {
	Highlight(line string) []highlight.Span
}

// LineNumbers carries the optional per-side line numbers for one rendered
// line. A nil side means the line does not exist on that side.
type LineNumbers struct {
	Minus *int
	Plus  *int
}

// Painter buffers classified hunk lines per side and renders them on
// flush. Buffered line texts include their leading marker character and
// their trailing newline.
type Painter struct {
	MinusLines []string
	PlusLines  []string

	// Per-side line-number counters. Advanced by one for every line
	// rendered on that side; reset externally per hunk from the hunk
	// header.
	MinusLineNumber int
	PlusLineNumber  int

	writer      io.Writer
	cfg         *config.Config
	highlighter Highlighter
	output      bytes.Buffer

	minusFormat LineNumberFormat
	plusFormat  LineNumberFormat
}

// New builds a Painter writing drained output to w under the given policy.
// The gutter templates are parsed here once; an unparseable template is a
// configuration error.
func New(w io.Writer, cfg *config.Config) (*Painter, error) {
	minusFormat, err := ParseLineNumberFormat(cfg.NumberMinusFormat)
	if err != nil {
		return nil, err
	}
	plusFormat, err := ParseLineNumberFormat(cfg.NumberPlusFormat)
	if err != nil {
		return nil, err
	}
	return &Painter{
		writer:      w,
		cfg:         cfg,
		minusFormat: minusFormat,
		plusFormat:  plusFormat,
	}, nil
}

// SetSyntaxFile points the painter's highlighter at a new source file.
// With syntax highlighting disabled by policy the highlighter stays nil
// and every line takes the fake single-span path.
func (p *Painter) SetSyntaxFile(path string) {
	if p.cfg.SyntaxTheme == "" {
		p.highlighter = nil
		return
	}
	p.highlighter = highlight.New(path, p.cfg.SyntaxTheme)
}

// ShouldComputeSyntax reports whether the policy requests syntax coloring
// for lines in the given state: a theme must be selected and some style
// for the state must take its foreground from the syntax annotation.
func (p *Painter) ShouldComputeSyntax(state State) bool {
	if p.cfg.SyntaxTheme == "" {
		return false
	}
	switch state {
	case HunkMinus:
		return p.cfg.MinusStyle.IsSyntaxHighlighted || p.cfg.MinusEmphStyle.IsSyntaxHighlighted
	case HunkZero:
		return p.cfg.ZeroStyle.IsSyntaxHighlighted
	case HunkPlus:
		return p.cfg.PlusStyle.IsSyntaxHighlighted || p.cfg.PlusEmphStyle.IsSyntaxHighlighted
	case HunkHeader:
		return p.cfg.HunkHeaderStyle.IsSyntaxHighlighted
	default:
		return false
	}
}

// syntaxSpans returns per-line syntax partitions for lines in the given
// state, substituting a single sentinel span per line when the policy does
// not request syntax coloring for that state. The substitution both fails
// safe and avoids tokenizing lines whose coloring would be discarded.
func (p *Painter) syntaxSpans(lines []string, state State) [][]highlight.Span {
	fake := p.highlighter == nil || !p.ShouldComputeSyntax(state)
	sections := make([][]highlight.Span, len(lines))
	for i, line := range lines {
		if fake {
			sections[i] = highlight.PlainLine(line)
		} else {
			sections[i] = p.highlighter.Highlight(line)
		}
	}
	return sections
}

// PaintBufferedLines renders every buffered minus line, then every
// buffered plus line, into the output buffer, and clears both input
// buffers. A content mismatch between the two annotation sources aborts
// the flush with the error; nothing partial is recoverable in that case.
func (p *Painter) PaintBufferedLines() error {
	minusSyntax := p.syntaxSpans(p.MinusLines, HunkMinus)
	plusSyntax := p.syntaxSpans(p.PlusLines, HunkPlus)

	minusDiff, plusDiff := infer.Edits(
		p.MinusLines, p.PlusLines,
		p.cfg.MinusStyle, p.cfg.MinusEmphStyle,
		p.cfg.PlusStyle, p.cfg.PlusEmphStyle,
		p.cfg.MaxLineDistance, p.cfg.MaxLineDistanceForNaivelyPairedLines,
	)
	if p.cfg.MinusNonEmphStyle != p.cfg.MinusEmphStyle {
		setNonEmphStyles(minusDiff, p.cfg.MinusNonEmphStyle)
	}
	if p.cfg.PlusNonEmphStyle != p.cfg.PlusEmphStyle {
		setNonEmphStyles(plusDiff, p.cfg.PlusNonEmphStyle)
	}

	minusNumbers := make([]LineNumbers, len(p.MinusLines))
	for i := range p.MinusLines {
		n := p.MinusLineNumber
		minusNumbers[i] = LineNumbers{Minus: &n}
		p.MinusLineNumber++
	}
	plusNumbers := make([]LineNumbers, len(p.PlusLines))
	for i := range p.PlusLines {
		n := p.PlusLineNumber
		plusNumbers[i] = LineNumbers{Plus: &n}
		p.PlusLineNumber++
	}

	if len(p.MinusLines) > 0 {
		err := p.paintLines(minusSyntax, minusDiff, minusNumbers,
			p.cfg.MinusLineMarker, p.cfg.MinusStyle, p.cfg.MinusNonEmphStyle)
		if err != nil {
			return err
		}
	}
	if len(p.PlusLines) > 0 {
		err := p.paintLines(plusSyntax, plusDiff, plusNumbers,
			p.cfg.PlusLineMarker, p.cfg.PlusStyle, p.cfg.PlusNonEmphStyle)
		if err != nil {
			return err
		}
	}

	p.MinusLines = p.MinusLines[:0]
	p.PlusLines = p.PlusLines[:0]
	return nil
}

// PaintZeroLine renders one unchanged context line immediately, advancing
// both side counters.
func (p *Painter) PaintZeroLine(line string) error {
	syntaxSections := p.syntaxSpans([]string{line}, HunkZero)
	diffSections := [][]style.Span{{{Style: p.cfg.ZeroStyle, Text: line}}}

	minusNumber := p.MinusLineNumber
	plusNumber := p.PlusLineNumber
	p.MinusLineNumber++
	p.PlusLineNumber++
	numbers := []LineNumbers{{Minus: &minusNumber, Plus: &plusNumber}}

	return p.paintLines(syntaxSections, diffSections, numbers,
		" ", p.cfg.ZeroStyle, p.cfg.ZeroStyle)
}

// PaintHunkHeaderLine renders a hunk header line through the same
// superimposition path as hunk content, so a "syntax" hunk-header style
// picks up highlighter colors. The decoration is drawn around the result.
func (p *Painter) PaintHunkHeaderLine(line string) error {
	st := p.cfg.HunkHeaderStyle
	if st.IsOmitted {
		return nil
	}
	syntax := p.syntaxSpans([]string{line}, HunkHeader)[0]
	diff := []style.Span{{Style: st, Text: line}}
	spans, err := Superimpose(syntax, diff, p.cfg.TrueColor)
	if err != nil {
		return err
	}
	var b strings.Builder
	for _, s := range spans {
		if s.Text != "" {
			b.WriteString(s.Style.Paint(s.Text))
		}
	}
	p.writeDecorated(b.String(), stripNewline(line), st)
	return nil
}

// PaintHeaderLine renders a commit or file metadata line in the given
// style, with its decoration.
func (p *Painter) PaintHeaderLine(text string, st style.Style) {
	if st.IsOmitted {
		return
	}
	p.writeDecorated(st.Paint(text), text, st)
}

// PaintRawLine appends a line to the output untouched.
func (p *Painter) PaintRawLine(text string) {
	p.output.WriteString(text)
	p.output.WriteByte('\n')
}

// Emit writes the output buffer to the sink and clears it.
func (p *Painter) Emit() error {
	if _, err := p.writer.Write(p.output.Bytes()); err != nil {
		return fmt.Errorf("emit: %w", err)
	}
	p.output.Reset()
	return nil
}

// Output exposes the accumulated rendered text without draining it.
func (p *Painter) Output() string {
	return p.output.String()
}

// setNonEmphStyles rewrites the non-emphasized spans of every line that
// contains an emphasized section to the non-emph style, preserving the
// visual distinction between "changed here" and "context within a changed
// line". Lines with a single style throughout are left alone.
func setNonEmphStyles(sections [][]style.Span, nonEmph style.Style) {
	for _, spans := range sections {
		if !style.SpansContainMultipleStyles(spans) {
			continue
		}
		for i := range spans {
			if !spans[i].Style.IsEmph {
				spans[i].Style = nonEmph
			}
		}
	}
}

func stripNewline(line string) string {
	if n := len(line); n > 0 && line[n-1] == '\n' {
		return line[:n-1]
	}
	return line
}
