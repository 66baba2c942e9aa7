// Package infer decides, for each removed/added line pair in a hunk,
// whether the pair is one logical line that was edited, and if so which
// substrings changed. It produces one diff-style span partition per input
// line; each partition covers that line's full text including the trailing
// newline, with the changed substrings carrying the emphasis style.
package infer

import (
	"unicode"
	"unicode/utf8"

	"github.com/odvcencio/tint/pkg/style"
)

// Edits pairs the k-th removed line with the k-th added line and infers
// within-line edits for each pair whose normalized dissimilarity does not
// exceed maxLineDistance. Rejected pairs and unpaired lines come back as a
// single whole-line span in the side's base style.
//
// When the two sides buffer the same number of lines the positional pairing
// is "naive": if maxNaiveDistance is positive, a cheap length-based lower
// bound at or below it accepts the pair without the full token comparison.
// The default of 0 disables the shortcut.
//
// The returned partitions are parallel to the inputs: one []style.Span per
// minus line and one per plus line.
func Edits(
	minusLines, plusLines []string,
	minusStyle, minusEmphStyle, plusStyle, plusEmphStyle style.Style,
	maxLineDistance, maxNaiveDistance float64,
) ([][]style.Span, [][]style.Span) {
	minusSpans := make([][]style.Span, len(minusLines))
	plusSpans := make([][]style.Span, len(plusLines))
	for i, line := range minusLines {
		minusSpans[i] = []style.Span{{Style: minusStyle, Text: line}}
	}
	for i, line := range plusLines {
		plusSpans[i] = []style.Span{{Style: plusStyle, Text: line}}
	}

	naive := len(minusLines) == len(plusLines)
	paired := min(len(minusLines), len(plusLines))

	for i := 0; i < paired; i++ {
		minusLine := minusLines[i]
		plusLine := plusLines[i]

		if naive && maxNaiveDistance > 0 && lengthDistance(minusLine, plusLine) <= maxNaiveDistance {
			ops := myersTokens(tokenize(minusLine), tokenize(plusLine))
			minusSpans[i], plusSpans[i] = annotate(ops, minusStyle, minusEmphStyle, plusStyle, plusEmphStyle)
			continue
		}

		ops := myersTokens(tokenize(minusLine), tokenize(plusLine))
		if distance(ops) > maxLineDistance {
			continue // unrelated delete + insert
		}
		minusSpans[i], plusSpans[i] = annotate(ops, minusStyle, minusEmphStyle, plusStyle, plusEmphStyle)
	}

	return minusSpans, plusSpans
}

// annotate converts an edit script into per-side span partitions: deleted
// tokens carry the minus emphasis style, inserted tokens the plus emphasis
// style, and equal tokens the respective base style. Partitions are not
// coalesced; the painter handles adjacent same-style spans.
func annotate(ops []editOp, minusStyle, minusEmphStyle, plusStyle, plusEmphStyle style.Style) ([]style.Span, []style.Span) {
	var minus, plus []style.Span
	for _, op := range ops {
		switch op.kind {
		case opEqual:
			minus = append(minus, style.Span{Style: minusStyle, Text: op.token})
			plus = append(plus, style.Span{Style: plusStyle, Text: op.token})
		case opDelete:
			minus = append(minus, style.Span{Style: minusEmphStyle, Text: op.token})
		case opInsert:
			plus = append(plus, style.Span{Style: plusEmphStyle, Text: op.token})
		}
	}
	return minus, plus
}

// distance is the normalized dissimilarity of an edit script: the number of
// bytes in deleted and inserted tokens over the total bytes on both sides.
// 0 means identical lines, 1 means no shared tokens.
func distance(ops []editOp) float64 {
	var changed, total int
	for _, op := range ops {
		n := len(op.token)
		switch op.kind {
		case opEqual:
			total += 2 * n
		default:
			changed += n
			total += n
		}
	}
	if total == 0 {
		return 0
	}
	return float64(changed) / float64(total)
}

// lengthDistance is a cheap lower bound on distance computed from line
// lengths alone.
func lengthDistance(a, b string) float64 {
	if len(a)+len(b) == 0 {
		return 0
	}
	d := len(a) - len(b)
	if d < 0 {
		d = -d
	}
	return float64(d) / float64(len(a)+len(b))
}

// tokenize splits a line into word and non-word tokens. Runs of letters,
// digits, and underscores form one token; every other rune is its own
// token, so concatenating the tokens reproduces the line exactly. Bytes
// that are not valid UTF-8 become one-byte tokens; decoding width is taken
// from the input, never from the replacement rune.
func tokenize(line string) []string {
	var tokens []string
	start := -1
	for i := 0; i < len(line); {
		r, size := utf8.DecodeRuneInString(line[i:])
		if isWordRune(r) {
			if start < 0 {
				start = i
			}
			i += size
			continue
		}
		if start >= 0 {
			tokens = append(tokens, line[start:i])
			start = -1
		}
		tokens = append(tokens, line[i:i+size])
		i += size
	}
	if start >= 0 {
		tokens = append(tokens, line[start:])
	}
	return tokens
}

func isWordRune(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r)
}
