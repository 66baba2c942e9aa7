// Package highlight produces per-line syntax-highlighting span partitions
// using chroma lexers and styles. It is one of the two annotation sources
// consumed by the painter; the other is edit inference.
package highlight

import (
	"path/filepath"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"
	"github.com/muesli/termenv"
)

// Style is the subset of a chroma token style that the painter consumes
// when superimposing syntax onto diff styles. The zero value is the "no
// annotation" sentinel: it is what unhighlighted lines carry, and the
// painter treats it as "leave the diff style's foreground alone".
type Style struct {
	Foreground termenv.Color

	Bold      bool
	Italic    bool
	Underline bool
}

// Null is the no-annotation sentinel style.
var Null = Style{}

// Span is a syntax-styled run borrowed from a source line.
type Span struct {
	Style Style
	Text  string
}

// PlainLine wraps line in a single sentinel-styled span. It is the partition
// used when syntax highlighting is disabled for a line's classification.
func PlainLine(line string) []Span {
	return []Span{{Style: Null, Text: line}}
}

// Highlighter tokenizes lines of one file with a fixed lexer and theme.
// Lines are highlighted independently; each call is deterministic for a
// given line.
type Highlighter struct {
	lexer chroma.Lexer
	style *chroma.Style
}

// New builds a Highlighter for the file at path using the named chroma
// style. An unrecognized path falls back to the plaintext lexer, and an
// unknown style name falls back to chroma's default style.
func New(path, styleName string) *Highlighter {
	lexer := lexers.Match(filepath.Base(path))
	if lexer == nil {
		lexer = lexers.Fallback
	}
	st := styles.Get(styleName)
	if st == nil {
		st = styles.Fallback
	}
	return &Highlighter{lexer: chroma.Coalesce(lexer), style: st}
}

// Highlight partitions line (which must include its trailing newline) into
// syntax-styled spans covering the line exactly. If tokenization cannot
// reproduce the line text verbatim the whole line is returned as a single
// sentinel-styled span rather than handing the painter a partition that
// disagrees with the diff annotation about the underlying text.
func (h *Highlighter) Highlight(line string) []Span {
	iterator, err := h.lexer.Tokenise(nil, line)
	if err != nil {
		return PlainLine(line)
	}

	var spans []Span
	total := 0
	for _, token := range iterator.Tokens() {
		if token.Value == "" {
			continue
		}
		spans = append(spans, Span{
			Style: h.styleFor(token.Type),
			Text:  token.Value,
		})
		total += len(token.Value)
	}

	if total != len(line) || !covers(spans, line) {
		return PlainLine(line)
	}
	return spans
}

// covers verifies that the span texts concatenate to line.
func covers(spans []Span, line string) bool {
	pos := 0
	for _, sp := range spans {
		if line[pos:pos+len(sp.Text)] != sp.Text {
			return false
		}
		pos += len(sp.Text)
	}
	return pos == len(line)
}

func (h *Highlighter) styleFor(tt chroma.TokenType) Style {
	entry := h.style.Get(tt)
	s := Style{
		Bold:      entry.Bold == chroma.Yes,
		Italic:    entry.Italic == chroma.Yes,
		Underline: entry.Underline == chroma.Yes,
	}
	if entry.Colour.IsSet() {
		s.Foreground = termenv.RGBColor(entry.Colour.String())
	}
	return s
}
