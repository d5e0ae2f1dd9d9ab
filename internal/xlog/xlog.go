// Package xlog configures the process-wide zerolog logger used by the
// CLIs, grounded on freeeve-polite-betrayal's internal/logger package:
// same console-writer-plus-optional-file-writer shape, simplified to the
// CLI's `--log` flag instead of environment variables (spec §6).
package xlog

import (
	"io"
	"os"

	"github.com/rs/zerolog"
)

const timeFormat = "2006-01-02T15:04:05.000Z07:00"

// Init configures and returns a logger writing to stdout and, if path is
// non-empty, also appending to the file at path (spec §6 `--log`).
// Resolver/library code never reads this logger directly — it is passed in
// via constructor injection (SPEC_FULL.md §1.1) so concurrent query workers
// and tests can supply an isolated logger instead.
func Init(path string, verbose bool) (zerolog.Logger, error) {
	zerolog.TimeFieldFormat = timeFormat

	level := zerolog.InfoLevel
	if verbose {
		level = zerolog.DebugLevel
	}

	var output io.Writer = zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: timeFormat}

	if path != "" {
		f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return zerolog.Logger{}, err
		}
		output = io.MultiWriter(output, f)
	}

	return zerolog.New(output).Level(level).With().Timestamp().Logger(), nil
}
