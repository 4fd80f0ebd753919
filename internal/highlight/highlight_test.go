package highlight

import (
	"strings"
	"testing"
)

func TestExcerptShortTextUnchanged(t *testing.T) {
	text := "A complete short summary."
	if got := Excerpt(text, DefaultMaxLen); got != text {
		t.Fatalf("got %q, want unchanged", got)
	}
}

func TestExcerptPrefersSentenceBoundary(t *testing.T) {
	head := strings.Repeat("a", 150)
	text := head + ". And then the story continued for a long while after that point."
	got := Excerpt(text, DefaultMaxLen)
	if got != head+"." {
		t.Fatalf("expected sentence cut, got %q", got)
	}
}

func TestExcerptWordBoundaryGetsMarker(t *testing.T) {
	words := strings.Repeat("lorem ipsum dolor sit amet ", 20)
	got := Excerpt(words, DefaultMaxLen)
	if !strings.HasSuffix(got, "...") {
		t.Fatalf("expected ellipsis marker, got %q", got)
	}
	if len([]rune(got)) > DefaultMaxLen+len("...") {
		t.Fatalf("excerpt too long: %d runes", len([]rune(got)))
	}
	trimmed := strings.TrimSuffix(got, "...")
	if strings.HasSuffix(trimmed, " ") {
		t.Fatalf("excerpt should not end with a space before marker: %q", got)
	}
}

func TestExcerptHardCutWithoutSpaces(t *testing.T) {
	text := strings.Repeat("x", 400)
	got := Excerpt(text, DefaultMaxLen)
	if got != strings.Repeat("x", DefaultMaxLen)+"..." {
		t.Fatalf("expected hard cut with marker, got %q", got)
	}
	if len([]rune(got)) != DefaultMaxLen+len("...") {
		t.Fatalf("hard cut length = %d", len([]rune(got)))
	}
}

func TestExcerptIdempotentOnInBoundOutput(t *testing.T) {
	inputs := []string{
		strings.Repeat("The quick brown fox jumps over the lazy dog. ", 10),
		"short",
	}
	for _, input := range inputs {
		once := Excerpt(input, DefaultMaxLen)
		if len([]rune(once)) > DefaultMaxLen {
			t.Fatalf("expected in-bound output for %q", input)
		}
		twice := Excerpt(once, DefaultMaxLen)
		if once != twice {
			t.Fatalf("Excerpt not idempotent: %q vs %q", once, twice)
		}
	}
}
