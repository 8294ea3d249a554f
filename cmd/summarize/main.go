// Package main provides a CLI command for summarizing text files.
// Usage: textdigest-summarize [--max-length N] [--format text|json] [--html] [--concurrency N] [FILE...]
package main

import (
	"os"

	"textdigest/internal/observability/logging"
)

func main() {
	logger := logging.NewTextLogger(os.Stderr)

	app := newApp(logger)
	if err := app.Run(os.Args); err != nil {
		logger.Error("summarize failed", "error", err)
		os.Exit(1)
	}
}
