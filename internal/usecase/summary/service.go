package summary

import (
	"context"
	"fmt"
	"strings"

	"golang.org/x/sync/errgroup"

	"textdigest/internal/summarizer"
	"textdigest/internal/utils/text"
)

// Summarizer produces an extractive summary within maxLength characters.
// *summarizer.Frequency satisfies it.
type Summarizer interface {
	Summarize(ctx context.Context, text string, maxLength int) string
}

// SummarizerFunc adapts a plain function to the Summarizer interface.
type SummarizerFunc func(ctx context.Context, text string, maxLength int) string

// Summarize calls f(ctx, text, maxLength).
func (f SummarizerFunc) Summarize(ctx context.Context, text string, maxLength int) string {
	return f(ctx, text, maxLength)
}

// Config bounds the requests the service accepts.
type Config struct {
	// DefaultMaxLength is used when Input.MaxLength is zero.
	DefaultMaxLength int
	// MaxLengthLimit is the largest accepted Input.MaxLength. A non-positive value disables the check.
	MaxLengthLimit int
	// MaxInputChars is the largest accepted input in characters. A non-positive value disables the check.
	MaxInputChars int
}

// DefaultConfig returns the limits used when none are configured.
func DefaultConfig() Config {
	return Config{
		DefaultMaxLength: summarizer.DefaultMaxLength,
		MaxLengthLimit:   5000,
		MaxInputChars:    100000,
	}
}

// Input is a single summarization request.
type Input struct {
	Text string
	// MaxLength is the character budget. Zero selects Config.DefaultMaxLength.
	MaxLength int
}

// Result is a summary together with size statistics of the input and output.
// Lengths are in characters (Unicode code points), word counts split on whitespace.
type Result struct {
	Summary          string
	OriginalLength   int
	SummaryLength    int
	OriginalWords    int
	SummaryWords     int
	ReductionPercent float64
}

// Service provides the summarization use case.
type Service struct {
	Summarizer Summarizer
	Config     Config
}

// NewService creates a Service. Zero valued limits in cfg are replaced by
// DefaultConfig values, except that MaxLengthLimit and MaxInputChars stay
// disabled when negative.
func NewService(s Summarizer, cfg Config) *Service {
	def := DefaultConfig()
	if cfg.DefaultMaxLength <= 0 {
		cfg.DefaultMaxLength = def.DefaultMaxLength
	}
	if cfg.MaxLengthLimit == 0 {
		cfg.MaxLengthLimit = def.MaxLengthLimit
	}
	if cfg.MaxInputChars == 0 {
		cfg.MaxInputChars = def.MaxInputChars
	}
	return &Service{Summarizer: s, Config: cfg}
}

// Summarize validates in, runs the summarizer and computes the statistics.
//
// Errors:
//   - ErrEmptyText when in.Text is empty or whitespace only
//   - ErrInvalidMaxLength when in.MaxLength is negative or above the limit
//   - ErrTextTooLong when in.Text exceeds the input limit
//   - ErrSummarizationFailed when the summarizer panics
//   - ctx.Err() when ctx is already done
func (s *Service) Summarize(ctx context.Context, in Input) (*Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if strings.TrimSpace(in.Text) == "" {
		return nil, ErrEmptyText
	}

	maxLength, err := s.resolveMaxLength(in.MaxLength)
	if err != nil {
		return nil, err
	}

	originalLength := text.CountRunes(in.Text)
	if limit := s.Config.MaxInputChars; limit > 0 && originalLength > limit {
		return nil, fmt.Errorf("%w: %d characters exceeds limit of %d", ErrTextTooLong, originalLength, limit)
	}

	summary, err := s.run(ctx, in.Text, maxLength)
	if err != nil {
		return nil, err
	}

	originalWords := text.CountWords(in.Text)
	summaryWords := text.CountWords(summary)
	return &Result{
		Summary:          summary,
		OriginalLength:   originalLength,
		SummaryLength:    text.CountRunes(summary),
		OriginalWords:    originalWords,
		SummaryWords:     summaryWords,
		ReductionPercent: text.ReductionPercent(originalWords, summaryWords),
	}, nil
}

// SummarizeAll summarizes every input with at most concurrency goroutines
// (concurrency <= 0 means unbounded). Results keep the order of inputs. The
// first failure cancels the remaining work and is returned wrapped with the
// index of the offending input.
func (s *Service) SummarizeAll(ctx context.Context, inputs []Input, concurrency int) ([]*Result, error) {
	results := make([]*Result, len(inputs))

	eg, egCtx := errgroup.WithContext(ctx)
	if concurrency > 0 {
		eg.SetLimit(concurrency)
	}

	for i, in := range inputs {
		eg.Go(func() error {
			res, err := s.Summarize(egCtx, in)
			if err != nil {
				return fmt.Errorf("input %d: %w", i, err)
			}
			results[i] = res
			return nil
		})
	}

	if err := eg.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

func (s *Service) resolveMaxLength(maxLength int) (int, error) {
	switch {
	case maxLength == 0:
		return s.Config.DefaultMaxLength, nil
	case maxLength < 0:
		return 0, fmt.Errorf("%w: must be positive, got %d", ErrInvalidMaxLength, maxLength)
	case s.Config.MaxLengthLimit > 0 && maxLength > s.Config.MaxLengthLimit:
		return 0, fmt.Errorf("%w: must be at most %d, got %d", ErrInvalidMaxLength, s.Config.MaxLengthLimit, maxLength)
	}
	return maxLength, nil
}

// run converts a summarizer panic into ErrSummarizationFailed.
func (s *Service) run(ctx context.Context, input string, maxLength int) (summary string, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%w: %v", ErrSummarizationFailed, r)
		}
	}()
	return s.Summarizer.Summarize(ctx, input, maxLength), nil
}
