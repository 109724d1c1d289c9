package recocheck

import (
	"context"
	"log/slog"
	"os"
)

// Logger wraps slog.Logger with recocheck-specific context.
// This provides structured logging with consistent field names.
type Logger struct {
	*slog.Logger
}

// NewLogger creates a new Logger with the given handler.
// If handler is nil, uses default text handler to stderr.
func NewLogger(handler slog.Handler) *Logger {
	if handler == nil {
		handler = slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelInfo,
		})
	}
	return &Logger{
		Logger: slog.New(handler),
	}
}

// NewJSONLogger creates a Logger that outputs JSON-formatted logs.
// level sets the minimum log level (e.g., slog.LevelDebug, slog.LevelInfo).
func NewJSONLogger(level slog.Level) *Logger {
	handler := slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	})
	return &Logger{
		Logger: slog.New(handler),
	}
}

// NewTextLogger creates a Logger that outputs human-readable text logs.
func NewTextLogger(level slog.Level) *Logger {
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	})
	return &Logger{
		Logger: slog.New(handler),
	}
}

// NoopLogger creates a Logger that discards all log output.
// Use this to disable logging entirely.
func NoopLogger() *Logger {
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.Level(1000), // Unreachable level
	})
	return &Logger{
		Logger: slog.New(handler),
	}
}

// WithEvent adds an event name field to the logger (useful for tagging
// everything belonging to one snapshot).
func (l *Logger) WithEvent(name string) *Logger {
	return &Logger{
		Logger: l.Logger.With("event", name),
	}
}

// LogHitAssociations logs the per-hit diagnostic record.
func (l *Logger) LogHitAssociations(ctx context.Context, hit uint32, particles int) {
	l.DebugContext(ctx, "hit associations",
		"hit", hit,
		"particles", particles,
	)
}

// LogCheck logs the outcome of one check invocation.
func (l *Logger) LogCheck(ctx context.Context, totalHits, multiAssociated int, err error) {
	if err != nil {
		l.ErrorContext(ctx, "double count check failed",
			"total_hits", totalHits,
			"multi_associated", multiAssociated,
			"error", err,
		)
	} else {
		l.InfoContext(ctx, "double count check passed",
			"total_hits", totalHits,
		)
	}
}

// LogSnapshotRead logs a snapshot read operation.
func (l *Logger) LogSnapshotRead(ctx context.Context, name string, err error) {
	if err != nil {
		l.ErrorContext(ctx, "snapshot read failed",
			"name", name,
			"error", err,
		)
	} else {
		l.DebugContext(ctx, "snapshot read completed",
			"name", name,
		)
	}
}
