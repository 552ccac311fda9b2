package ui

import (
	"github.com/mattn/go-runewidth"
)

// RuneWidth returns the number of columns r occupies. Control and
// combining runes take none.
func RuneWidth(r rune) int {
	return max(runewidth.RuneWidth(r), 0)
}

// StringWidth returns the number of columns s occupies
func StringWidth(s string) int {
	return runewidth.StringWidth(s)
}

// Clip cuts s to at most width columns without splitting a wide rune
func Clip(s string, width int) string {
	if width <= 0 {
		return ""
	}
	return runewidth.Truncate(s, width, "")
}

// Ellipsize clips s to width columns and marks the cut with "...". Widths
// too narrow for the marker clip without it.
func Ellipsize(s string, width int) string {
	const marker = "..."
	if width <= len(marker) {
		return Clip(s, width)
	}
	return runewidth.Truncate(s, width, marker)
}

func isBlank(r rune) bool {
	return r == ' ' || r == '\t' || r == '\n'
}

// prevWord returns the index where the word before pos starts, skipping
// any blanks directly before pos
func prevWord(rs []rune, pos int) int {
	i := min(max(pos, 0), len(rs))
	for i > 0 && isBlank(rs[i-1]) {
		i--
	}
	for i > 0 && !isBlank(rs[i-1]) {
		i--
	}
	return i
}

// nextWord returns the index where the word after pos starts, or len(rs)
func nextWord(rs []rune, pos int) int {
	i := min(max(pos, 0), len(rs))
	for i < len(rs) && !isBlank(rs[i]) {
		i++
	}
	for i < len(rs) && isBlank(rs[i]) {
		i++
	}
	return i
}
