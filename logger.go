package predgo

import (
	"log/slog"
	"os"
	"time"
)

// Logger wraps slog.Logger with predgo-specific helpers.
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
func NoopLogger() *Logger {
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.Level(1000), // Unreachable level
	})
	return &Logger{
		Logger: slog.New(handler),
	}
}

// LogBuild logs a construction run.
func (l *Logger) LogBuild(count, depth int, duration time.Duration, err error) {
	if err != nil {
		l.Error("build failed",
			"count", count,
			"error", err,
		)
	} else {
		l.Debug("build completed",
			"count", count,
			"depth", depth,
			"duration", duration,
		)
	}
}

// LogQuery logs a predecessor query.
func (l *Logger) LogQuery(limit, result uint64, err error) {
	if err != nil {
		l.Debug("query failed",
			"limit", limit,
			"error", err,
		)
	} else {
		l.Debug("query completed",
			"limit", limit,
			"result", result,
		)
	}
}

// LogBatch logs a batch query.
func (l *Logger) LogBatch(count int, duration time.Duration, err error) {
	if err != nil {
		l.Error("batch query failed",
			"count", count,
			"error", err,
		)
	} else {
		l.Debug("batch query completed",
			"count", count,
			"duration", duration,
		)
	}
}

// LogSnapshot logs a snapshot save or load.
func (l *Logger) LogSnapshot(op, name string, err error) {
	if err != nil {
		l.Error("snapshot "+op+" failed",
			"name", name,
			"error", err,
		)
	} else {
		l.Info("snapshot "+op+" completed",
			"name", name,
		)
	}
}
