package utils

import (
	"fmt"
	"strings"
	"testing"
)

func TestSplitTextShortInput(t *testing.T) {
	chunks := SplitText("short text", 100, 10)
	if len(chunks) != 1 || chunks[0] != "short text" {
		t.Errorf("got %v, want single unchanged chunk", chunks)
	}
}

func TestSplitTextChunkSizes(t *testing.T) {
	text := strings.Repeat("abcdefghi ", 50) // 500 runes
	chunks := SplitText(text, 100, 20)

	if len(chunks) < 5 {
		t.Fatalf("got %d chunks, want at least 5", len(chunks))
	}
	for i, c := range chunks {
		if n := len([]rune(c)); n > 100 {
			t.Errorf("chunk %d has %d runes, want <= 100", i, n)
		}
	}
}

func TestSplitTextOverlapPreservesContent(t *testing.T) {
	text := strings.Repeat("word ", 200)
	chunks := SplitText(text, 80, 10)

	// Every source word must appear in at least one chunk; joined chunks must
	// cover the full text.
	joined := strings.Join(chunks, "")
	if !strings.Contains(joined, "word") {
		t.Fatal("content lost during split")
	}
	last := chunks[len(chunks)-1]
	if !strings.HasSuffix(strings.TrimRight(text, " "), strings.TrimRight(last, " ")) {
		t.Errorf("last chunk %q does not end the original text", last)
	}
}

func TestSplitTextWordBoundary(t *testing.T) {
	text := strings.Repeat("hello world ", 30)
	chunks := SplitText(text, 50, 5)

	for i, c := range chunks[:len(chunks)-1] {
		trimmed := strings.TrimRight(c, " ")
		if strings.HasSuffix(trimmed, "hel") || strings.HasSuffix(trimmed, "wor") {
			t.Errorf("chunk %d cut a word in half: %q", i, c)
		}
	}
}

func TestSplitTextBoundaryBackOffLeavesNoGap(t *testing.T) {
	// Unique words so every chunk locates unambiguously in the source.
	var b strings.Builder
	for i := 0; i < 120; i++ {
		fmt.Fprintf(&b, "w%03d ", i)
	}
	text := b.String()

	// Overlap smaller than the boundary window: the next chunk must still
	// start at or before the previous cut.
	chunks := SplitText(text, 50, 5)

	covered := 0
	for i, c := range chunks {
		idx := strings.Index(text, c)
		if idx < 0 {
			t.Fatalf("chunk %d not found in source: %q", i, c)
		}
		if idx > covered {
			t.Fatalf("chunk %d starts at %d, leaving %d..%d uncovered", i, idx, covered, idx)
		}
		if end := idx + len(c); end > covered {
			covered = end
		}
	}
	if covered != len(text) {
		t.Fatalf("chunks cover %d of %d bytes", covered, len(text))
	}
}

func TestSplitTextOverlapLargerThanChunk(t *testing.T) {
	// Degenerate config must still terminate and cover the text.
	text := strings.Repeat("x", 250)
	chunks := SplitText(text, 100, 100)
	if len(chunks) == 0 {
		t.Fatal("no chunks produced")
	}
}
