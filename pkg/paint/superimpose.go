package paint

import (
	"fmt"
	"strings"

	"github.com/odvcencio/tint/pkg/highlight"
	"github.com/odvcencio/tint/pkg/style"
)

// ContentMismatchError reports that the syntax and diff annotation sources
// disagree about the text of the line they both claim to partition. This is
// an internal-consistency violation in an upstream collaborator, not bad
// input: the caller must treat it as fatal rather than render anything.
type ContentMismatchError struct {
	Pos        int // rune position of the first disagreement
	SyntaxRune rune
	DiffRune   rune
}

func (e *ContentMismatchError) Error() string {
	if e.SyntaxRune == 0 || e.DiffRune == 0 {
		return fmt.Sprintf("superimpose: annotation partitions cover different lengths (diverge at position %d)", e.Pos)
	}
	return fmt.Sprintf("superimpose: annotation partitions disagree at position %d: %q vs %q",
		e.Pos, e.SyntaxRune, e.DiffRune)
}

// stylePair is the (syntax, diff) style combination carried by one
// character position. Runs are coalesced on pair equality, so that the
// final style of a run depends only on the pair and never on position.
type stylePair struct {
	syntax highlight.Style
	diff   style.Style
}

// Superimpose merges a line's syntax-highlighting partition and its
// diff-emphasis partition into a single partition with one coherent style
// per run. The two inputs must cover identical text; any disagreement
// returns a ContentMismatchError. The trailing newline retained for
// highlighter context is stripped from the final run.
func Superimpose(syntaxSpans []highlight.Span, diffSpans []style.Span, trueColor bool) ([]OwnedSpan, error) {
	syntaxChars := explodeSyntax(syntaxSpans)
	diffChars := explodeDiff(diffSpans)

	n := len(syntaxChars)
	if len(diffChars) < n {
		n = len(diffChars)
	}
	for i := 0; i < n; i++ {
		if syntaxChars[i].r != diffChars[i].r {
			return nil, &ContentMismatchError{Pos: i, SyntaxRune: syntaxChars[i].r, DiffRune: diffChars[i].r}
		}
	}
	if len(syntaxChars) != len(diffChars) {
		return nil, &ContentMismatchError{Pos: n}
	}

	return coalesce(syntaxChars, diffChars, trueColor), nil
}

type syntaxChar struct {
	style highlight.Style
	r     rune
}

type diffChar struct {
	style style.Style
	r     rune
}

func explodeSyntax(spans []highlight.Span) []syntaxChar {
	var out []syntaxChar
	for _, sp := range spans {
		for _, r := range sp.Text {
			out = append(out, syntaxChar{style: sp.Style, r: r})
		}
	}
	return out
}

func explodeDiff(spans []style.Span) []diffChar {
	var out []diffChar
	for _, sp := range spans {
		for _, r := range sp.Text {
			out = append(out, diffChar{style: sp.Style, r: r})
		}
	}
	return out
}

// coalesce merges consecutive positions sharing an identical style pair
// into owned runs and resolves each run's final style once.
func coalesce(syntaxChars []syntaxChar, diffChars []diffChar, trueColor bool) []OwnedSpan {
	if len(syntaxChars) == 0 {
		return nil
	}

	var spans []OwnedSpan
	var run strings.Builder
	current := stylePair{syntax: syntaxChars[0].style, diff: diffChars[0].style}

	flush := func(pair stylePair) {
		spans = append(spans, OwnedSpan{
			Style: resolveStyle(pair, trueColor),
			Text:  run.String(),
		})
		run.Reset()
	}

	for i := range syntaxChars {
		pair := stylePair{syntax: syntaxChars[i].style, diff: diffChars[i].style}
		if pair != current {
			flush(current)
			current = pair
		}
		run.WriteRune(syntaxChars[i].r)
	}

	// Remove the terminating newline whose presence was necessary for the
	// highlighter to annotate the full line.
	last := strings.TrimSuffix(run.String(), "\n")
	spans = append(spans, OwnedSpan{Style: resolveStyle(current, trueColor), Text: last})
	return spans
}

// resolveStyle decides the final style for a run: the diff style wins
// outright, except that a syntax-highlighted diff style takes its
// foreground from the syntax annotation (translated for the terminal's
// color capability) whenever the syntax source actually annotated the run.
// Pure in the style pair.
func resolveStyle(pair stylePair, trueColor bool) style.Style {
	resolved := pair.diff
	if resolved.IsSyntaxHighlighted && pair.syntax != highlight.Null {
		resolved.Foreground = style.ToTerminal(pair.syntax.Foreground, trueColor)
	}
	return resolved
}
