// Package debug carries the verbose flag through a context and installs the
// process logger.
package debug

import (
	"context"
	"io"
	"log/slog"
	"os"
)

type contextKey string

const verboseKey contextKey = "verbose_enabled"

// WithVerbose returns a context with verbose mode enabled/disabled.
func WithVerbose(ctx context.Context, enabled bool) context.Context {
	return context.WithValue(ctx, verboseKey, enabled)
}

// IsVerbose returns true if verbose mode is enabled in the context.
func IsVerbose(ctx context.Context) bool {
	if v, ok := ctx.Value(verboseKey).(bool); ok {
		return v
	}
	return false
}

// NewLogger returns a text logger writing to w. Verbose loggers emit
// everything from Debug up; quiet ones only warnings and errors.
func NewLogger(w io.Writer, verbose bool) *slog.Logger {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

// SetupLogger installs a stderr logger as the slog default and returns it.
func SetupLogger(verbose bool) *slog.Logger {
	logger := NewLogger(os.Stderr, verbose)
	slog.SetDefault(logger)
	return logger
}
