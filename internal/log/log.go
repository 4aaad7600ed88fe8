// Package log configures structured logging for wsinfo using log/slog.
package log

import (
	"io"
	"log/slog"
	"os"
)

// Level maps the CLI verbosity flags to a slog level.
//
//   - quiet mode:   only WARN and ERROR messages
//   - normal mode:  INFO and above
//   - verbose mode: DEBUG and above
//
// Quiet wins when both flags are set.
func Level(verbose, quiet bool) slog.Level {
	switch {
	case quiet:
		return slog.LevelWarn
	case verbose:
		return slog.LevelDebug
	default:
		return slog.LevelInfo
	}
}

// New returns a text logger writing to w at the level selected by the
// verbosity flags.
func New(w io.Writer, verbose, quiet bool) *slog.Logger {
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{
		Level: Level(verbose, quiet),
	}))
}

// Setup installs a stderr logger as the slog default and returns it.
func Setup(verbose, quiet bool) *slog.Logger {
	logger := New(os.Stderr, verbose, quiet)
	slog.SetDefault(logger)
	return logger
}

// Discard returns a logger that drops every record.
func Discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
