package style

// Span pairs a Style with a run of text borrowed from a source line. For a
// given line, the Text fields of an ordered span partition concatenate to
// the line's full text, including its trailing newline.
type Span struct {
	Style Style
	Text  string
}

// SpansContainMultipleStyles reports whether spans carry more than one
// distinct style. Span partitions are not necessarily coalesced, so a
// partition longer than one span may still be single-styled.
func SpansContainMultipleStyles(spans []Span) bool {
	if len(spans) < 2 {
		return false
	}
	first := spans[0].Style
	for _, sp := range spans[1:] {
		if sp.Style != first {
			return true
		}
	}
	return false
}
