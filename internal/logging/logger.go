// Package logging holds the process-wide structured logger.
package logging

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"sync"
)

type ctxKey string

const ctxKeyCommand ctxKey = "command"

var (
	mu     sync.RWMutex
	logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelInfo}))
)

// Logger returns the process logger.
func Logger() *slog.Logger {
	mu.RLock()
	defer mu.RUnlock()
	return logger
}

// Setup replaces the process logger with a text handler writing to w at
// the given level. verbose forces debug.
func Setup(level string, verbose bool, w io.Writer) error {
	lvl, err := ParseLevel(level)
	if err != nil {
		return err
	}
	if verbose {
		lvl = slog.LevelDebug
	}
	l := slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: lvl}))

	mu.Lock()
	logger = l
	mu.Unlock()
	return nil
}

// ParseLevel maps debug, info, warn and error to slog levels.
func ParseLevel(s string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug, nil
	case "", "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	}
	return 0, fmt.Errorf("unknown log level %q", s)
}

// WithFields returns a logger with additional fields.
func WithFields(kv ...any) *slog.Logger {
	return Logger().With(kv...)
}

// WithCommand stores the running command name in the context.
func WithCommand(ctx context.Context, name string) context.Context {
	return context.WithValue(ctx, ctxKeyCommand, name)
}

// FromContext adds the command name if present.
func FromContext(ctx context.Context) *slog.Logger {
	name, _ := ctx.Value(ctxKeyCommand).(string)
	if name == "" {
		return Logger()
	}
	return Logger().With("command", name)
}
