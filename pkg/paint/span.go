package paint

import "github.com/odvcencio/tint/pkg/style"

// OwnedSpan is one run of the superimposed output partition. Unlike the
// input spans, whose text borrows from the line being painted, an OwnedSpan
// carries its own text: it is created per render call and consumed
// immediately by the line renderer.
type OwnedSpan struct {
	Style style.Style
	Text  string
}

// State classifies the line currently being processed, following the
// conventional unified-diff display states. The painter itself only deals
// in hunk states; the stream machine walks the full space.
type State int

const (
	Unknown State = iota
	CommitMeta
	FileMeta
	HunkHeader
	HunkMinus
	HunkZero
	HunkPlus
)
