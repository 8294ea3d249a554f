// Package summarizer provides model-free extractive text summarization.
// Sentences are scored by the aggregate document frequency of their significant
// words and the best ones are assembled greedily into a summary that fits a
// character budget.
//
// Every function in this file is pure: all intermediate state (frequency table,
// sentence lists) is allocated per call, so the package is safe for concurrent use.
package summarizer

import (
	"cmp"
	"slices"
	"strings"
	"unicode"
	"unicode/utf8"
)

const (
	// DefaultMaxLength is the character budget used when none is supplied.
	DefaultMaxLength = 150

	// NoTextMessage is returned when the input contains no sentences at all.
	NoTextMessage = "No text to summarize."

	// minSignificantLength is the exclusive lower bound on the length of a
	// significant word. Words of three characters or fewer are ignored.
	minSignificantLength = 3

	sentenceSeparator = ". "
)

// FrequencyTable maps a significant, lower-cased word to the number of times it
// occurs in the whole document.
type FrequencyTable map[string]int

// ScoredSentence is a sentence together with its position in the document and
// its frequency score.
type ScoredSentence struct {
	Index int
	Text  string
	Score int
}

// Summarize returns an extractive summary of text that fits within maxLength
// characters (Unicode code points).
//
// Sentences are taken in descending score order while they fit; the first
// sentence that does not fit ends the selection. If not even the best sentence
// fits, the first sentence of the document is returned with a trailing period,
// which may exceed maxLength. A non-positive maxLength means DefaultMaxLength.
//
// Example:
//
//	Summarize("Elephants are large. Elephants are herbivores. Cats are small.", 50)
//	// "Elephants are large. Elephants are herbivores."
func Summarize(text string, maxLength int) string {
	summary, _ := summarize(text, maxLength)
	return summary
}

// outcome describes which path produced a summary. It is used for metrics only.
type outcome int

const (
	outcomeSelected outcome = iota
	outcomeNoText
	outcomeFallback
)

func summarize(text string, maxLength int) (string, outcome) {
	if maxLength <= 0 {
		maxLength = DefaultMaxLength
	}

	sentences := SplitSentences(Normalize(text))
	if len(sentences) == 0 {
		return NoTextMessage, outcomeNoText
	}

	freq := BuildFrequencyTable(sentences)
	ranked := Rank(ScoreSentences(sentences, freq))

	var b strings.Builder
	length := 0
	for _, s := range ranked {
		n := utf8.RuneCountInString(s.Text)
		if length+n > maxLength {
			break
		}
		b.WriteString(s.Text)
		b.WriteString(sentenceSeparator)
		length += n + utf8.RuneCountInString(sentenceSeparator)
	}

	summary := strings.TrimRightFunc(b.String(), unicode.IsSpace)
	if summary == "" {
		return sentences[0] + ".", outcomeFallback
	}
	return summary, outcomeSelected
}

// Normalize collapses every run of whitespace (spaces, tabs, newlines and the
// ASCII file, group, record and unit separators) into a single space and trims
// both ends.
func Normalize(text string) string {
	return strings.Join(strings.FieldsFunc(text, isSpace), " ")
}

func isSpace(r rune) bool {
	return unicode.IsSpace(r) || ('\x1c' <= r && r <= '\x1f')
}

// SplitSentences splits text on runs of '.', '!' and '?'. The delimiters are
// removed, each piece is trimmed and empty pieces are dropped. Document order
// is preserved.
func SplitSentences(text string) []string {
	pieces := strings.FieldsFunc(text, isSentenceDelimiter)

	sentences := make([]string, 0, len(pieces))
	for _, p := range pieces {
		if p = strings.TrimSpace(p); p != "" {
			sentences = append(sentences, p)
		}
	}
	return sentences
}

func isSentenceDelimiter(r rune) bool {
	return r == '.' || r == '!' || r == '?'
}

// Words extracts the lower-cased word tokens of s. A word is a maximal run of
// letters, digits and underscores.
func Words(s string) []string {
	fields := strings.FieldsFunc(s, func(r rune) bool { return !isWordRune(r) })
	for i, f := range fields {
		fields[i] = strings.ToLower(f)
	}
	return fields
}

func isWordRune(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsNumber(r)
}

// SignificantWords returns the words of s longer than three characters.
func SignificantWords(s string) []string {
	words := Words(s)
	significant := words[:0]
	for _, w := range words {
		if IsSignificant(w) {
			significant = append(significant, w)
		}
	}
	return significant
}

// IsSignificant reports whether word takes part in frequency counting.
func IsSignificant(word string) bool {
	return utf8.RuneCountInString(word) > minSignificantLength
}

// BuildFrequencyTable counts every significant word occurrence across all
// sentences.
func BuildFrequencyTable(sentences []string) FrequencyTable {
	freq := make(FrequencyTable)
	for _, s := range sentences {
		for _, w := range SignificantWords(s) {
			freq[w]++
		}
	}
	return freq
}

// ScoreSentences scores each sentence as the sum of the table counts of its
// significant words. A word repeated within a sentence contributes once per
// occurrence. The result is in document order.
func ScoreSentences(sentences []string, freq FrequencyTable) []ScoredSentence {
	scored := make([]ScoredSentence, len(sentences))
	for i, s := range sentences {
		score := 0
		for _, w := range SignificantWords(s) {
			score += freq[w]
		}
		scored[i] = ScoredSentence{Index: i, Text: s, Score: score}
	}
	return scored
}

// Rank returns a copy of scored ordered by score descending. Equal scores keep
// document order.
func Rank(scored []ScoredSentence) []ScoredSentence {
	ranked := slices.Clone(scored)
	slices.SortFunc(ranked, func(a, b ScoredSentence) int {
		if c := cmp.Compare(b.Score, a.Score); c != 0 {
			return c
		}
		return cmp.Compare(a.Index, b.Index)
	})
	return ranked
}
