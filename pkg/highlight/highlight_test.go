package highlight

import (
	"strings"
	"testing"
)

func concatSpans(spans []Span) string {
	var b strings.Builder
	for _, sp := range spans {
		b.WriteString(sp.Text)
	}
	return b.String()
}

func TestPlainLine(t *testing.T) {
	spans := PlainLine("hello\n")
	if len(spans) != 1 {
		t.Fatalf("got %d spans, want 1", len(spans))
	}
	if spans[0].Text != "hello\n" {
		t.Errorf("text = %q", spans[0].Text)
	}
	if spans[0].Style != Null {
		t.Errorf("style = %v, want sentinel", spans[0].Style)
	}
}

func TestNullSentinel(t *testing.T) {
	var zero Style
	if zero != Null {
		t.Error("zero value Style is not the sentinel")
	}
	colored := Style{Bold: true}
	if colored == Null {
		t.Error("non-zero Style compares equal to the sentinel")
	}
}

func TestHighlight_PartitionCoversLine(t *testing.T) {
	h := New("main.go", "monokai")
	line := "func main() { return }\n"

	spans := h.Highlight(line)

	if got := concatSpans(spans); got != line {
		t.Fatalf("span concatenation = %q, want %q", got, line)
	}
	if len(spans) < 2 {
		t.Errorf("expected a multi-span partition for Go source, got %d spans", len(spans))
	}
	annotated := false
	for _, sp := range spans {
		if sp.Style != Null {
			annotated = true
		}
	}
	if !annotated {
		t.Error("no span carries a syntax annotation")
	}
}

func TestHighlight_Deterministic(t *testing.T) {
	h := New("main.go", "monokai")
	line := "var x = 1\n"
	a := h.Highlight(line)
	b := h.Highlight(line)
	if len(a) != len(b) {
		t.Fatalf("span counts differ: %d vs %d", len(a), len(b))
	}
	for i := range a {
		if a[i] != b[i] {
			t.Errorf("span %d differs: %v vs %v", i, a[i], b[i])
		}
	}
}

func TestHighlight_UnknownFileFallsBack(t *testing.T) {
	h := New("data.zzz-no-such-ext", "monokai")
	line := "some opaque text\n"
	spans := h.Highlight(line)
	if got := concatSpans(spans); got != line {
		t.Fatalf("span concatenation = %q, want %q", got, line)
	}
}

func TestNew_BadStyleNameFallsBack(t *testing.T) {
	h := New("main.go", "no-such-style")
	if h == nil {
		t.Fatal("New returned nil")
	}
	line := "x := 1\n"
	if got := concatSpans(h.Highlight(line)); got != line {
		t.Errorf("span concatenation = %q, want %q", got, line)
	}
}
