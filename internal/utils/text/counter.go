// Package text provides character and word counting shared by the summary
// statistics and the summarizer instrumentation.
package text

import (
	"math"
	"strings"
	"unicode/utf8"
)

// CountRunes counts the number of Unicode characters (runes) in the given text.
// Multi-byte characters such as Japanese, Chinese or emoji count as one each.
//
// Examples:
//
//	CountRunes("hello")     // returns 5
//	CountRunes("こんにちは") // returns 5
//	CountRunes("hello世界")  // returns 7
//	CountRunes("")          // returns 0
func CountRunes(text string) int {
	return utf8.RuneCountInString(text)
}

// CountWords counts whitespace separated tokens.
//
//	CountWords("  one two\tthree\n") // returns 3
func CountWords(text string) int {
	return len(strings.Fields(text))
}

// ReductionPercent reports summaryWords as a percentage of originalWords,
// rounded to one decimal place. It returns 0 when originalWords is zero.
//
//	ReductionPercent(100, 25) // returns 25.0
//	ReductionPercent(3, 1)    // returns 33.3
func ReductionPercent(originalWords, summaryWords int) float64 {
	if originalWords <= 0 {
		return 0
	}
	pct := float64(summaryWords) / float64(originalWords) * 100
	return math.Round(pct*10) / 10
}
