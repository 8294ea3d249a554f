// Package summary provides the summarization use case: input validation,
// panic isolation around the summarizer and the statistics reported to
// API and CLI clients.
package summary

import "errors"

// Sentinel errors for summary use case operations.
var (
	// ErrEmptyText indicates that no text, or only whitespace, was supplied.
	ErrEmptyText = errors.New("no text provided")

	// ErrInvalidMaxLength indicates that the requested character budget is
	// negative or above the configured limit.
	ErrInvalidMaxLength = errors.New("invalid max length")

	// ErrTextTooLong indicates that the input exceeds the configured maximum
	// number of characters.
	ErrTextTooLong = errors.New("text too long")

	// ErrSummarizationFailed indicates that the summarizer faulted unexpectedly.
	ErrSummarizationFailed = errors.New("failed to summarize text")
)
