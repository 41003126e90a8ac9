package lstar

import (
	"context"
	"log/slog"
	"os"
)

// Logger wraps slog.Logger with learner-specific context.
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

// WithRound adds a round field to the logger.
func (l *Logger) WithRound(round int) *Logger {
	return &Logger{
		Logger: l.Logger.With("round", round),
	}
}

// WithCount adds a count field to the logger.
func (l *Logger) WithCount(count int) *Logger {
	return &Logger{
		Logger: l.Logger.With("count", count),
	}
}

// LogStart logs the initialization of the observation table.
func (l *Logger) LogStart(ctx context.Context, suffixes, unclosed int, err error) {
	if err != nil {
		l.ErrorContext(ctx, "start failed",
			"suffixes", suffixes,
			"error", err,
		)
	} else {
		l.InfoContext(ctx, "learner started",
			"suffixes", suffixes,
			"unclosed_classes", unclosed,
		)
	}
}

// LogClose logs a closing step.
func (l *Logger) LogClose(ctx context.Context, round, promoted int, err error) {
	if err != nil {
		l.ErrorContext(ctx, "closing failed",
			"round", round,
			"promoted", promoted,
			"error", err,
		)
	} else {
		l.DebugContext(ctx, "unclosed rows promoted",
			"round", round,
			"promoted", promoted,
		)
	}
}

// LogInconsistency logs a consistency step.
func (l *Logger) LogInconsistency(ctx context.Context, round int, first, second, suffix string, err error) {
	if err != nil {
		l.ErrorContext(ctx, "consistency repair failed",
			"round", round,
			"first", first,
			"second", second,
			"error", err,
		)
	} else {
		l.DebugContext(ctx, "inconsistency resolved",
			"round", round,
			"first", first,
			"second", second,
			"suffix", suffix,
		)
	}
}

// LogRefine logs the outcome of a refinement.
func (l *Logger) LogRefine(ctx context.Context, rounds, shortRows, suffixes int, err error) {
	if err != nil {
		l.WarnContext(ctx, "refinement stopped",
			"rounds", rounds,
			"short_rows", shortRows,
			"suffixes", suffixes,
			"error", err,
		)
	} else {
		l.InfoContext(ctx, "table closed and consistent",
			"rounds", rounds,
			"short_rows", shortRows,
			"suffixes", suffixes,
		)
	}
}

// LogAddSuffixes logs a caller-driven suffix addition.
func (l *Logger) LogAddSuffixes(ctx context.Context, count int, err error) {
	if err != nil {
		l.ErrorContext(ctx, "adding suffixes failed",
			"count", count,
			"error", err,
		)
	} else {
		l.DebugContext(ctx, "suffixes added",
			"count", count,
		)
	}
}

// LogAddSymbol logs an alphabet extension.
func (l *Logger) LogAddSymbol(ctx context.Context, symbol any, err error) {
	if err != nil {
		l.ErrorContext(ctx, "adding alphabet symbol failed",
			"symbol", symbol,
			"error", err,
		)
	} else {
		l.InfoContext(ctx, "alphabet symbol added",
			"symbol", symbol,
		)
	}
}
