package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"

	urfave "github.com/urfave/cli/v2"

	"textdigest/internal/infra/extract"
	"textdigest/internal/summarizer"
	summaryUC "textdigest/internal/usecase/summary"
)

const (
	formatText = "text"
	formatJSON = "json"

	stdinName = "-"
)

var (
	version = "dev"

	maxLengthFlag = &urfave.IntFlag{
		Name:    "max-length",
		Aliases: []string{"n"},
		Usage:   "Character budget of each summary",
		Value:   summarizer.DefaultMaxLength,
	}

	formatFlag = &urfave.StringFlag{
		Name:  "format",
		Usage: "Output format [text, json]",
		Value: formatText,
	}

	htmlFlag = &urfave.BoolFlag{
		Name:  "html",
		Usage: "Treat input as HTML and summarize its visible text",
	}

	concurrencyFlag = &urfave.IntFlag{
		Name:  "concurrency",
		Usage: "Maximum number of files summarized at once",
		Value: 4,
	}
)

// fileSummary is one line of JSON output.
type fileSummary struct {
	Source           string  `json:"source"`
	Summary          string  `json:"summary"`
	OriginalLength   int     `json:"original_length"`
	SummaryLength    int     `json:"summary_length"`
	OriginalWords    int     `json:"original_words"`
	SummaryWords     int     `json:"summary_words"`
	ReductionPercent float64 `json:"reduction_percent"`
}

func newApp(logger *slog.Logger) *urfave.App {
	return &urfave.App{
		Name:            "textdigest-summarize",
		Version:         version,
		Usage:           "Extractive summaries of text files or stdin",
		ArgsUsage:       "[FILE...]",
		HideHelpCommand: true,
		Flags: []urfave.Flag{
			maxLengthFlag,
			formatFlag,
			htmlFlag,
			concurrencyFlag,
		},
		Action: func(c *urfave.Context) error {
			return runSummarize(c, logger)
		},
	}
}

func runSummarize(c *urfave.Context, logger *slog.Logger) error {
	format := c.String(formatFlag.Name)
	if format != formatText && format != formatJSON {
		return fmt.Errorf("unsupported format %q (must be %q or %q)", format, formatText, formatJSON)
	}

	maxLength := c.Int(maxLengthFlag.Name)
	if maxLength <= 0 {
		return fmt.Errorf("max-length must be positive, got %d", maxLength)
	}

	sources := c.Args().Slice()
	if len(sources) == 0 {
		sources = []string{stdinName}
	}

	inputs := make([]summaryUC.Input, len(sources))
	for i, src := range sources {
		text, err := readSource(c.App.Reader, src, c.Bool(htmlFlag.Name))
		if err != nil {
			return err
		}
		inputs[i] = summaryUC.Input{Text: text, MaxLength: maxLength}
	}

	cfg := summaryUC.DefaultConfig()
	cfg.MaxLengthLimit = -1
	cfg.MaxInputChars = -1
	svc := summaryUC.NewService(summarizer.NewFrequency(logger, nil), cfg)

	logger.Debug("summarizing",
		slog.Int("inputs", len(inputs)),
		slog.Int("max_length", maxLength),
		slog.Int("concurrency", c.Int(concurrencyFlag.Name)))

	results, err := svc.SummarizeAll(c.Context, inputs, c.Int(concurrencyFlag.Name))
	if err != nil {
		return err
	}

	if format == formatJSON {
		return writeJSON(c.App.Writer, sources, results)
	}
	return writeText(c.App.Writer, sources, results)
}

// readSource reads a file, or r when name is "-".
func readSource(r io.Reader, name string, html bool) (string, error) {
	var data []byte
	var err error
	if name == stdinName {
		data, err = io.ReadAll(r)
	} else {
		data, err = os.ReadFile(name)
	}
	if err != nil {
		return "", fmt.Errorf("read %s: %w", name, err)
	}

	if !html {
		return string(data), nil
	}
	text, err := extract.FromHTML(bytes.NewReader(data))
	if err != nil {
		return "", fmt.Errorf("extract %s: %w", name, err)
	}
	return text, nil
}

func writeText(w io.Writer, sources []string, results []*summaryUC.Result) error {
	for i, res := range results {
		if len(results) > 1 {
			if i > 0 {
				if _, err := fmt.Fprintln(w); err != nil {
					return err
				}
			}
			if _, err := fmt.Fprintf(w, "==> %s <==\n", sources[i]); err != nil {
				return err
			}
		}
		if _, err := fmt.Fprintln(w, res.Summary); err != nil {
			return err
		}
	}
	return nil
}

func writeJSON(w io.Writer, sources []string, results []*summaryUC.Result) error {
	out := make([]fileSummary, len(results))
	for i, res := range results {
		out[i] = fileSummary{
			Source:           sources[i],
			Summary:          res.Summary,
			OriginalLength:   res.OriginalLength,
			SummaryLength:    res.SummaryLength,
			OriginalWords:    res.OriginalWords,
			SummaryWords:     res.SummaryWords,
			ReductionPercent: res.ReductionPercent,
		}
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}
