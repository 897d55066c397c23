package clustergo

import (
	"context"
	"log/slog"
	"os"
	"time"
)

// Logger wraps slog.Logger with clustergo-specific context.
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

// WithK adds a k (cluster count) field to the logger.
func (l *Logger) WithK(k int) *Logger {
	return &Logger{
		Logger: l.Logger.With("k", k),
	}
}

// WithMethod adds an initialization method field to the logger.
func (l *Logger) WithMethod(method Method) *Logger {
	return &Logger{
		Logger: l.Logger.With("method", string(method)),
	}
}

// LogFit logs a fit operation.
func (l *Logger) LogFit(ctx context.Context, k, n, iterations int, converged bool, duration time.Duration, err error) {
	if err != nil {
		l.ErrorContext(ctx, "fit failed",
			"k", k,
			"points", n,
			"error", err,
		)
	} else {
		l.DebugContext(ctx, "fit completed",
			"k", k,
			"points", n,
			"iterations", iterations,
			"converged", converged,
			"duration", duration,
		)
	}
}

// LogPredict logs a predict operation.
func (l *Logger) LogPredict(ctx context.Context, k, n int, duration time.Duration, err error) {
	if err != nil {
		l.ErrorContext(ctx, "predict failed",
			"k", k,
			"points", n,
			"error", err,
		)
	} else {
		l.DebugContext(ctx, "predict completed",
			"k", k,
			"points", n,
			"duration", duration,
		)
	}
}

// LogSave logs a model save operation.
func (l *Logger) LogSave(ctx context.Context, name string, size int, duration time.Duration, err error) {
	if err != nil {
		l.ErrorContext(ctx, "save failed",
			"name", name,
			"error", err,
		)
	} else {
		l.DebugContext(ctx, "save completed",
			"name", name,
			"bytes", size,
			"duration", duration,
		)
	}
}

// LogLoad logs a model load operation.
func (l *Logger) LogLoad(ctx context.Context, name string, duration time.Duration, err error) {
	if err != nil {
		l.ErrorContext(ctx, "load failed",
			"name", name,
			"error", err,
		)
	} else {
		l.DebugContext(ctx, "load completed",
			"name", name,
			"duration", duration,
		)
	}
}

// LogMethodFallback logs the fallback to random initialization for an
// unrecognized method name.
func (l *Logger) LogMethodFallback(ctx context.Context, requested Method) {
	l.WarnContext(ctx, "unrecognized initialization method, falling back to random",
		"requested", string(requested),
		"fallback", string(MethodRandom),
	)
}
