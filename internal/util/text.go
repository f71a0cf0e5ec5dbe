package util

import "strings"

// Truncate shortens s to max runes, appending an ellipsis when cut.
func Truncate(s string, max int) string {
	if max <= 0 {
		return ""
	}
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	if max == 1 {
		return "…"
	}
	return string(runes[:max-1]) + "…"
}

// Preview collapses whitespace and truncates, for single-line listings.
func Preview(s string, max int) string {
	s = strings.Join(strings.Fields(s), " ")
	return Truncate(s, max)
}
