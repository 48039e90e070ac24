// README: Structured logger construction shared by the binary and tests.
package logging

import (
	"io"
	"log/slog"
	"os"
)

// New creates the application logger. Degraded-path failures (lookups,
// persistence, outbound sends) are logged here instead of being surfaced
// to the chat transport.
func New(level slog.Level) *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

// NewNop returns a logger that discards everything.
func NewNop() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
