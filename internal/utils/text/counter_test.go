package text_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"textdigest/internal/utils/text"
)

/* ───────── Character and word counting ───────── */

func TestCountRunes(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected int
	}{
		{name: "empty", input: "", expected: 0},
		{name: "ASCII text", input: "hello", expected: 5},
		{name: "ASCII with spaces", input: "hello world", expected: 11},
		{name: "Japanese hiragana", input: "こんにちは", expected: 5},
		{name: "Japanese kanji", input: "日本語", expected: 3},
		{name: "English and Japanese", input: "hello世界", expected: 7},
		{name: "accented", input: "café", expected: 4},
		{name: "emoji", input: "Hello👋", expected: 6},
		{name: "newlines and tabs", input: "a\nb\tc", expected: 5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, text.CountRunes(tt.input))
		})
	}
}

func TestCountWords(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected int
	}{
		{name: "empty", input: "", expected: 0},
		{name: "whitespace only", input: " \t\n ", expected: 0},
		{name: "single word", input: "summary", expected: 1},
		{name: "mixed whitespace", input: "  one two\tthree\nfour  ", expected: 4},
		{name: "punctuation stays attached", input: "Cats are small.", expected: 3},
		{name: "ideographic space", input: "日本　語", expected: 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, text.CountWords(tt.input))
		})
	}
}

func TestReductionPercent(t *testing.T) {
	tests := []struct {
		name     string
		original int
		summary  int
		expected float64
	}{
		{name: "no original words", original: 0, summary: 3, expected: 0},
		{name: "negative original", original: -1, summary: 0, expected: 0},
		{name: "quarter", original: 100, summary: 25, expected: 25.0},
		{name: "one third rounds down", original: 3, summary: 1, expected: 33.3},
		{name: "two thirds rounds up", original: 3, summary: 2, expected: 66.7},
		{name: "identical", original: 12, summary: 12, expected: 100.0},
		{name: "summary longer than original", original: 2, summary: 3, expected: 150.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.expected, text.ReductionPercent(tt.original, tt.summary), 1e-9)
		})
	}
}
