package summarizer

import (
	"context"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"textdigest/internal/observability/tracing"
	"textdigest/internal/utils/text"
)

// Frequency is the instrumented form of Summarize. It adds a tracing span,
// structured logs and Prometheus metrics around the pure algorithm and always
// returns exactly what Summarize would.
type Frequency struct {
	logger          *slog.Logger
	metricsRecorder SummaryMetricsRecorder
	tracer          trace.Tracer
}

// NewFrequency creates a Frequency summarizer.
// A nil logger falls back to slog.Default and a nil recorder disables metrics.
func NewFrequency(logger *slog.Logger, recorder SummaryMetricsRecorder) *Frequency {
	if logger == nil {
		logger = slog.Default()
	}
	if recorder == nil {
		recorder = noopMetrics{}
	}
	return &Frequency{
		logger:          logger,
		metricsRecorder: recorder,
		tracer:          tracing.GetTracer(),
	}
}

// Summarize summarizes text within maxLength characters.
// See the package level Summarize for the selection rules.
func (f *Frequency) Summarize(ctx context.Context, input string, maxLength int) string {
	if maxLength <= 0 {
		maxLength = DefaultMaxLength
	}

	ctx, span := f.tracer.Start(ctx, "summarizer.Summarize")
	defer span.End()

	inputLength := text.CountRunes(input)
	f.logger.DebugContext(ctx, "starting summarization",
		slog.Int("input_length", inputLength),
		slog.Int("max_length", maxLength))

	start := time.Now()
	summary, result := summarize(input, maxLength)
	duration := time.Since(start)

	summaryLength := text.CountRunes(summary)
	// the closing period of the last selected sentence is not charged
	withinLimit := result != outcomeFallback || summaryLength <= maxLength

	span.SetAttributes(
		attribute.Int("summary.input_length", inputLength),
		attribute.Int("summary.max_length", maxLength),
		attribute.Int("summary.length", summaryLength),
		attribute.String("summary.outcome", result.String()),
	)

	f.logger.InfoContext(ctx, "summarization completed",
		slog.Int("input_length", inputLength),
		slog.Int("summary_length", summaryLength),
		slog.Int("max_length", maxLength),
		slog.String("outcome", result.String()),
		slog.Bool("within_limit", withinLimit),
		slog.Duration("duration", duration))

	if !withinLimit {
		f.logger.WarnContext(ctx, "summary exceeds character limit",
			slog.Int("summary_length", summaryLength),
			slog.Int("limit", maxLength),
			slog.Int("excess", summaryLength-maxLength))
		f.metricsRecorder.RecordLimitExceeded()
	}

	f.metricsRecorder.RecordLength(summaryLength)
	f.metricsRecorder.RecordDuration(duration)
	f.metricsRecorder.RecordCompliance(withinLimit)
	f.metricsRecorder.RecordOutcome(result.String())

	return summary
}

func (o outcome) String() string {
	switch o {
	case outcomeNoText:
		return "no_text"
	case outcomeFallback:
		return "fallback"
	default:
		return "selected"
	}
}
