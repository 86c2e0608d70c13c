package helpers

import (
	"strings"
	"unicode/utf8"
)

// CollapseWhitespace squeezes all runs of whitespace (including newlines from
// extracted markup) into single spaces and trims the ends.
func CollapseWhitespace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// Truncate hard-caps s at max runes. The second return reports whether
// anything was cut.
func Truncate(s string, max int) (string, bool) {
	if max <= 0 || utf8.RuneCountInString(s) <= max {
		return s, false
	}
	return string([]rune(s)[:max]), true
}
