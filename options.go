package lstar

import (
	"log/slog"
)

type options struct {
	config           Config
	metricsCollector MetricsCollector
	logger           *Logger
}

// Option configures a Learner.
type Option func(*options)

// WithConfig replaces the whole configuration.
func WithConfig(c Config) Option {
	return func(o *options) {
		o.config = c
	}
}

// WithClosingStrategy sets how unclosed classes are closed.
func WithClosingStrategy(s ClosingStrategy) Option {
	return func(o *options) {
		o.config.ClosingStrategy = s
	}
}

// WithMaxRounds bounds the steps of a single refinement. 0 disables the
// limit.
func WithMaxRounds(n int) Option {
	return func(o *options) {
		o.config.MaxRounds = n
	}
}

// WithMetricsCollector configures a metrics collector for monitoring the learner.
// Pass nil to disable metrics collection.
//
// Example with BasicMetricsCollector:
//
//	metrics := &lstar.BasicMetricsCollector{}
//	l, _ := lstar.New(alphabet, mo, lstar.WithMetricsCollector(metrics))
//	// ... use l ...
//	stats := metrics.GetStats()
//	fmt.Printf("Queries: %d, Rounds: %d\n", stats.QueryCount, stats.RoundCount)
func WithMetricsCollector(mc MetricsCollector) Option {
	return func(o *options) {
		if mc == nil {
			mc = NoopMetricsCollector{}
		}
		o.metricsCollector = mc
	}
}

// WithLogger configures structured logging.
// Pass nil to disable logging.
//
// Example with JSON logging:
//
//	logger := lstar.NewJSONLogger(slog.LevelInfo)
//	l, _ := lstar.New(alphabet, mo, lstar.WithLogger(logger))
func WithLogger(logger *Logger) Option {
	return func(o *options) {
		if logger == nil {
			logger = NoopLogger()
		}
		o.logger = logger
	}
}

// WithLogLevel creates a text logger with the specified level and sets it.
// Convenience wrapper for WithLogger(NewTextLogger(level)).
func WithLogLevel(level slog.Level) Option {
	return func(o *options) {
		o.logger = NewTextLogger(level)
	}
}

func applyOptions(optFns []Option) options {
	o := options{
		config:           DefaultConfig(),
		metricsCollector: NoopMetricsCollector{},
		logger:           NoopLogger(),
	}
	for _, fn := range optFns {
		if fn != nil {
			fn(&o)
		}
	}
	return o
}
