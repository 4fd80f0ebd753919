// Package highlight derives short display excerpts from summaries.
package highlight

import "strings"

const (
	// DefaultMaxLen is the standard excerpt length for list views.
	DefaultMaxLen = 180

	ellipsis = "..."

	// How far back from the cut we look for a clean break.
	sentenceLookback = 50
	wordLookback     = 20
)

// Excerpt shortens text to roughly maxLen runes, preferring sentence
// boundaries, then word boundaries, before hard-cutting. Word and hard
// cuts carry an appended ellipsis marker, so results may exceed maxLen
// by the marker length. Texts already within the limit are returned
// unchanged.
func Excerpt(text string, maxLen int) string {
	text = strings.TrimSpace(text)
	if maxLen <= 0 {
		maxLen = DefaultMaxLen
	}
	runes := []rune(text)
	if len(runes) <= maxLen {
		return text
	}

	window := runes[:maxLen]

	// Prefer ending on a sentence near the cut point.
	if idx := lastSentenceEnd(window, sentenceLookback); idx >= 0 {
		return strings.TrimSpace(string(window[:idx+1]))
	}

	// Otherwise break on a word near the cut point.
	if idx := lastSpace(window, wordLookback); idx >= 0 {
		return strings.TrimSpace(string(window[:idx])) + ellipsis
	}

	return strings.TrimSpace(string(window)) + ellipsis
}

func lastSentenceEnd(runes []rune, lookback int) int {
	limit := len(runes) - lookback
	if limit < 0 {
		limit = 0
	}
	for i := len(runes) - 1; i >= limit; i-- {
		switch runes[i] {
		case '.', '!', '?':
			return i
		}
	}
	return -1
}

func lastSpace(runes []rune, lookback int) int {
	limit := len(runes) - lookback
	if limit < 0 {
		limit = 0
	}
	for i := len(runes) - 1; i >= limit; i-- {
		if runes[i] == ' ' {
			return i
		}
	}
	return -1
}
