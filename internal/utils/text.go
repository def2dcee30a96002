package utils

import (
	"strings"
	"unicode/utf8"
)

// Truncate cuts s to at most max runes.
func Truncate(s string, max int) string {
	if max <= 0 || utf8.RuneCountInString(s) <= max {
		return s
	}
	i := 0
	for pos := range s {
		if i == max {
			return s[:pos]
		}
		i++
	}
	return s
}

func WordCount(s string) int {
	return len(strings.Fields(s))
}

// ReadTime is the reading time in whole minutes, rounded up.
func ReadTime(words, wordsPerMinute int) int {
	if words <= 0 {
		return 0
	}
	if wordsPerMinute <= 0 {
		wordsPerMinute = 225
	}
	return (words + wordsPerMinute - 1) / wordsPerMinute
}
