// Package textbounds normalizes and bounds submitted text before analysis.
package textbounds

import (
	"strings"
	"unicode/utf8"
)

// MaxChars is the maximum number of characters sent to the NLU provider.
const MaxChars = 10000

// DefaultMinChars is the default minimum length worth scoring.
const DefaultMinChars = 8

// Normalize trims surrounding whitespace.
func Normalize(text string) string {
	return strings.TrimSpace(text)
}

// Len returns the length of text in characters (runes).
func Len(text string) int {
	return utf8.RuneCountInString(text)
}

// Truncate cuts text to at most max characters, never splitting a rune.
// A non-positive max uses MaxChars.
func Truncate(text string, max int) string {
	if max <= 0 {
		max = MaxChars
	}
	if len(text) <= max {
		return text
	}

	count := 0
	for i := range text {
		if count == max {
			return text[:i]
		}
		count++
	}
	return text
}

// EstimateTokens estimates the token count for a text.
// Uses a simple heuristic: ~4 characters per token for Latin languages.
func EstimateTokens(text string) int {
	n := Len(text)
	if n == 0 {
		return 0
	}
	tokens := n / 4
	if tokens == 0 {
		tokens = 1
	}
	return tokens
}

// TooShort reports whether text is below the minimum length worth scoring.
// A non-positive min uses DefaultMinChars.
func TooShort(text string, min int) bool {
	if min <= 0 {
		min = DefaultMinChars
	}
	return Len(text) < min
}
