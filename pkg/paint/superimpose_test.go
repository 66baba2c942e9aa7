package paint

import (
	"errors"
	"reflect"
	"testing"

	"github.com/muesli/termenv"

	"github.com/odvcencio/tint/pkg/highlight"
	"github.com/odvcencio/tint/pkg/style"
)

var (
	keyword = highlight.Style{Foreground: termenv.RGBColor("#ff0000")}

	minus = style.Style{
		Background:          termenv.ANSIColor(1),
		IsSyntaxHighlighted: true,
	}
	minusEmphasis = style.Style{
		Background:          termenv.ANSIColor(9),
		IsSyntaxHighlighted: true,
		IsEmph:              true,
	}
)

func TestSuperimpose_ResolvesRuns(t *testing.T) {
	syntax := []highlight.Span{
		{Style: keyword, Text: "foo"},
		{Style: highlight.Null, Text: "(1)\n"},
	}
	diff := []style.Span{
		{Style: minus, Text: "foo("},
		{Style: minusEmphasis, Text: "1"},
		{Style: minus, Text: ")\n"},
	}

	spans, err := Superimpose(syntax, diff, true)
	if err != nil {
		t.Fatal(err)
	}

	wantTexts := []string{"foo", "(", "1", ")"}
	if len(spans) != len(wantTexts) {
		t.Fatalf("got %d spans %v, want %d", len(spans), spans, len(wantTexts))
	}
	for i, want := range wantTexts {
		if spans[i].Text != want {
			t.Errorf("span[%d].Text = %q, want %q", i, spans[i].Text, want)
		}
	}

	// The keyword run keeps the diff background but takes the syntax
	// foreground.
	if spans[0].Style.Foreground != termenv.RGBColor("#ff0000") {
		t.Errorf("keyword run foreground = %v", spans[0].Style.Foreground)
	}
	if spans[0].Style.Background != termenv.ANSIColor(1) {
		t.Errorf("keyword run background = %v", spans[0].Style.Background)
	}

	// The unannotated "(" run keeps the diff style's own (nil) foreground.
	if spans[1].Style.Foreground != nil {
		t.Errorf("plain run foreground = %v, want nil", spans[1].Style.Foreground)
	}

	// The emphasized run resolves to the emphasis style.
	if !spans[2].Style.IsEmph || spans[2].Style.Background != termenv.ANSIColor(9) {
		t.Errorf("emphasis run style = %+v", spans[2].Style)
	}
}

func TestSuperimpose_ReducedPaletteForeground(t *testing.T) {
	syntax := []highlight.Span{{Style: keyword, Text: "x\n"}}
	diff := []style.Span{{Style: minus, Text: "x\n"}}

	spans, err := Superimpose(syntax, diff, false)
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := spans[0].Style.Foreground.(termenv.RGBColor); ok {
		t.Errorf("24-bit foreground %v survived palette reduction", spans[0].Style.Foreground)
	}
	if spans[0].Style.Foreground == nil {
		t.Error("syntax foreground dropped entirely")
	}
}

func TestSuperimpose_TrailingNewlineTrimmed(t *testing.T) {
	spans, err := Superimpose(
		[]highlight.Span{{Style: highlight.Null, Text: "x\n"}},
		[]style.Span{{Style: minus, Text: "x\n"}},
		true,
	)
	if err != nil {
		t.Fatal(err)
	}
	if len(spans) != 1 || spans[0].Text != "x" {
		t.Errorf("spans = %v, want one span %q", spans, "x")
	}
}

func TestSuperimpose_ContentMismatch(t *testing.T) {
	_, err := Superimpose(
		[]highlight.Span{{Style: highlight.Null, Text: "abc\n"}},
		[]style.Span{{Style: minus, Text: "abd\n"}},
		true,
	)
	var mismatch *ContentMismatchError
	if !errors.As(err, &mismatch) {
		t.Fatalf("err = %v, want ContentMismatchError", err)
	}
	if mismatch.Pos != 2 {
		t.Errorf("mismatch position = %d, want 2", mismatch.Pos)
	}
}

func TestSuperimpose_LengthMismatch(t *testing.T) {
	_, err := Superimpose(
		[]highlight.Span{{Style: highlight.Null, Text: "ab"}},
		[]style.Span{{Style: minus, Text: "abc"}},
		true,
	)
	var mismatch *ContentMismatchError
	if !errors.As(err, &mismatch) {
		t.Fatalf("err = %v, want ContentMismatchError", err)
	}
}

func TestSuperimpose_Deterministic(t *testing.T) {
	syntax := []highlight.Span{
		{Style: keyword, Text: "if "},
		{Style: highlight.Null, Text: "ok {\n"},
	}
	diff := []style.Span{
		{Style: minus, Text: "if ok"},
		{Style: minusEmphasis, Text: " {"},
		{Style: minus, Text: "\n"},
	}
	a, errA := Superimpose(syntax, diff, true)
	b, errB := Superimpose(syntax, diff, true)
	if errA != nil || errB != nil {
		t.Fatal(errA, errB)
	}
	if !reflect.DeepEqual(a, b) {
		t.Errorf("repeated superimposition differs: %v vs %v", a, b)
	}
}

func TestSuperimpose_Empty(t *testing.T) {
	spans, err := Superimpose(nil, nil, true)
	if err != nil {
		t.Fatal(err)
	}
	if len(spans) != 0 {
		t.Errorf("spans = %v, want none", spans)
	}
}
