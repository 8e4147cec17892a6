package kmeanspp

import (
	"context"
	"io"
	"log/slog"
	"os"
	"time"
)

// Logger wraps slog.Logger with kmeanspp-specific context.
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
func NoopLogger() *Logger {
	return &Logger{
		Logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
}

// WithK adds a k (cluster count) field to the logger.
func (l *Logger) WithK(k int) *Logger {
	return &Logger{
		Logger: l.Logger.With("k", k),
	}
}

// WithDimension adds a dimension field to the logger.
func (l *Logger) WithDimension(dim int) *Logger {
	return &Logger{
		Logger: l.Logger.With("dimension", dim),
	}
}

// WithCount adds a count field to the logger.
func (l *Logger) WithCount(count int) *Logger {
	return &Logger{
		Logger: l.Logger.With("count", count),
	}
}

// LogLoad logs loading of an input table.
func (l *Logger) LogLoad(ctx context.Context, name string, rows int, err error) {
	if err != nil {
		l.ErrorContext(ctx, "load failed",
			"name", name,
			"error", err,
		)
	} else {
		l.DebugContext(ctx, "table loaded",
			"name", name,
			"rows", rows,
		)
	}
}

// LogSeed logs the outcome of k-means++ seeding.
func (l *Logger) LogSeed(ctx context.Context, indices []int, err error) {
	if err != nil {
		l.ErrorContext(ctx, "seeding failed",
			"error", err,
		)
	} else {
		l.DebugContext(ctx, "seeding completed",
			"indices", indices,
		)
	}
}

// LogIteration logs one refinement iteration.
func (l *Logger) LogIteration(ctx context.Context, s IterationStats) {
	l.DebugContext(ctx, "iteration completed",
		"iteration", s.Iteration,
		"inertia", s.Inertia,
		"max_shift", s.MaxShift,
		"empty", s.Empty,
	)
}

// LogRun logs a complete run.
func (l *Logger) LogRun(ctx context.Context, res *Result, duration time.Duration, err error) {
	if err != nil {
		l.ErrorContext(ctx, "run failed",
			"duration", duration,
			"error", err,
		)
		return
	}
	if !res.Converged {
		l.WarnContext(ctx, "run stopped without converging",
			"iterations", res.Iterations,
			"inertia", res.Inertia,
			"duration", duration,
		)
		return
	}
	l.InfoContext(ctx, "run converged",
		"iterations", res.Iterations,
		"inertia", res.Inertia,
		"duration", duration,
	)
}
