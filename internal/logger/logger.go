// Package logger builds the structured logger shared by the commands.
// Diagnostics go to stderr so that reports on stdout stay clean.
package logger

import (
	"io"
	"log/slog"

	"github.com/google/uuid"
)

// New returns a text logger writing to w, tagged with a fresh run id.
// Debug enables debug level and source locations.
func New(w io.Writer, debug bool) *slog.Logger {
	level := slog.LevelInfo
	if debug {
		level = slog.LevelDebug
	}
	h := slog.NewTextHandler(w, &slog.HandlerOptions{
		Level:     level,
		AddSource: debug,
	})
	return slog.New(h).With("run_id", uuid.NewString())
}

// Discard returns a logger that drops everything.
func Discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
