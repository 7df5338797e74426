package main

import (
	"strings"

	"github.com/mattn/go-runewidth"
)

// truncate shortens s to maxWidth display cells, ending in an ellipsis when cut
func truncate(s string, maxWidth int) string {
	if maxWidth <= 0 {
		return ""
	}
	return runewidth.Truncate(s, maxWidth, "…")
}

// revealPrefix returns the first n runes of s.
func revealPrefix(s string, n int) string {
	if n <= 0 {
		return ""
	}
	i := 0
	for pos := range s {
		if i == n {
			return s[:pos]
		}
		i++
	}
	return s
}

// runeLen counts the runes in s.
func runeLen(s string) int {
	return len([]rune(s))
}

// joinDots joins help fragments with a bullet separator.
func joinDots(parts []string) string {
	return strings.Join(parts, " • ")
}
