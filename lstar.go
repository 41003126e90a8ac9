package lstar

import (
	"context"
	"fmt"
	"time"

	"github.com/hupe1980/lstar/oracle"
	"github.com/hupe1980/lstar/table"
	"github.com/hupe1980/lstar/word"
)

// Learner drives an observation table to a closed and consistent state.
//
// It owns the table and sends every membership query through a counting
// wrapper around the configured oracle. Deciding which counterexample
// suffixes or prefixes to add, and building a hypothesis, is up to the
// caller.
//
// A Learner is not safe for concurrent use.
type Learner[I comparable, O comparable] struct {
	table   *table.Table[I, O]
	oracle  *oracle.Counter[I, O]
	config  Config
	metrics MetricsCollector
	logger  *Logger

	// Unclosed classes reported by the last growth operation, if they cover
	// the whole table. nil means recompute.
	unclosed [][]*table.Row[I]
	rounds   int
}

// New creates a learner over alphabet that asks mo.
func New[I comparable, O comparable](alphabet *word.Alphabet[I], mo oracle.MembershipOracle[I, O], optFns ...Option) (*Learner[I, O], error) {
	if alphabet == nil {
		return nil, fmt.Errorf("%w: alphabet must not be nil", ErrInvalidArgument)
	}
	if mo == nil {
		return nil, fmt.Errorf("%w: membership oracle must not be nil", ErrInvalidArgument)
	}

	opts := applyOptions(optFns)
	if err := opts.config.validate(); err != nil {
		return nil, err
	}

	l := &Learner[I, O]{
		config:  opts.config,
		metrics: opts.metricsCollector,
		logger:  opts.logger,
	}
	l.oracle = oracle.NewCounter(mo, func(queries int, duration time.Duration, err error) {
		l.metrics.RecordQueries(queries, duration, err)
	})
	l.table = table.New[I, O](alphabet, table.WithLogger(opts.logger.Logger))

	return l, nil
}

// Start initializes the table with the empty short prefix and the given
// suffixes, [ε] if none are given, and refines it.
func (l *Learner[I, O]) Start(ctx context.Context, initialSuffixes ...word.Word[I]) error {
	if len(initialSuffixes) == 0 {
		initialSuffixes = []word.Word[I]{word.Empty[I]()}
	}

	unclosed, err := l.table.Initialize(ctx, []word.Word[I]{word.Empty[I]()}, initialSuffixes, l.oracle)
	err = translateError(err)
	l.logger.LogStart(ctx, len(initialSuffixes), len(unclosed), err)
	if err != nil {
		return err
	}

	l.metrics.RecordSuffixes(l.table.NumSuffixes())
	l.unclosed = unclosed

	return l.Refine(ctx)
}

// Refine closes the table and, if enabled, makes it consistent, until both
// hold. Each step either promotes one row per unclosed class or adds the
// suffix that separates an inconsistent pair of rows.
//
// It stops with an ErrRoundLimitExceeded after Config.MaxRounds steps.
func (l *Learner[I, O]) Refine(ctx context.Context) error {
	if !l.table.IsInitialized() {
		return fmt.Errorf("%w: learner has not been started", ErrInvalidState)
	}

	steps := 0
	for {
		if err := ctx.Err(); err != nil {
			l.logger.LogRefine(ctx, steps, l.table.NumShortRows(), l.table.NumSuffixes(), err)
			return err
		}

		classes := l.unclosed
		if classes == nil {
			classes = l.table.UnclosedClasses()
		}

		var (
			inc          table.Inconsistency[I]
			inconsistent bool
		)
		if len(classes) == 0 && l.config.CheckConsistency {
			inc, inconsistent = l.table.FindInconsistency()
		}

		if len(classes) == 0 && !inconsistent {
			l.unclosed = nil
			l.logger.LogRefine(ctx, steps, l.table.NumShortRows(), l.table.NumSuffixes(), nil)
			return nil
		}

		if l.config.MaxRounds > 0 && steps >= l.config.MaxRounds {
			err := &ErrRoundLimitExceeded{Limit: l.config.MaxRounds}
			l.logger.LogRefine(ctx, steps, l.table.NumShortRows(), l.table.NumSuffixes(), err)
			return err
		}

		steps++
		l.rounds++

		start := time.Now()
		var err error
		if len(classes) > 0 {
			err = l.close(ctx, classes)
		} else {
			err = l.resolve(ctx, inc)
		}
		l.metrics.RecordRound(time.Since(start), err)

		if err != nil {
			l.logger.LogRefine(ctx, steps, l.table.NumShortRows(), l.table.NumSuffixes(), err)
			return err
		}
	}
}

func (l *Learner[I, O]) close(ctx context.Context, classes [][]*table.Row[I]) error {
	rows := selectRows(l.config.ClosingStrategy, classes)

	unclosed, err := l.table.ToShortPrefixes(ctx, rows, l.oracle)
	err = translateError(err)
	l.logger.LogClose(ctx, l.rounds, len(rows), err)
	if err != nil {
		return err
	}

	l.metrics.RecordPromotion(len(rows))
	l.unclosed = unclosed
	return nil
}

func (l *Learner[I, O]) resolve(ctx context.Context, inc table.Inconsistency[I]) error {
	suffix, err := l.table.DistinguishingSuffix(inc)

	var unclosed [][]*table.Row[I]
	if err == nil {
		unclosed, err = l.table.AddSuffix(ctx, suffix, l.oracle)
	}
	err = translateError(err)
	l.logger.LogInconsistency(ctx, l.rounds, inc.First.Label().String(), inc.Second.Label().String(), suffix.String(), err)
	if err != nil {
		return err
	}

	l.metrics.RecordSuffixes(1)
	l.unclosed = unclosed
	return nil
}

// AddSuffixes adds columns to the table, typically suffixes of a
// counterexample, and refines it.
func (l *Learner[I, O]) AddSuffixes(ctx context.Context, suffixes ...word.Word[I]) error {
	before := l.table.NumSuffixes()

	unclosed, err := l.table.AddSuffixes(ctx, suffixes, l.oracle)
	err = translateError(err)
	l.logger.LogAddSuffixes(ctx, l.table.NumSuffixes()-before, err)
	if err != nil {
		return err
	}

	l.metrics.RecordSuffixes(l.table.NumSuffixes() - before)
	l.unclosed = unclosed

	return l.Refine(ctx)
}

// AddShortPrefixes makes the given prefixes short, typically prefixes of a
// counterexample, and refines the table.
func (l *Learner[I, O]) AddShortPrefixes(ctx context.Context, prefixes ...word.Word[I]) error {
	before := l.table.NumShortRows()

	_, err := l.table.AddShortPrefixes(ctx, prefixes, l.oracle)
	if err != nil {
		return translateError(err)
	}

	l.metrics.RecordPromotion(l.table.NumShortRows() - before)
	l.unclosed = nil

	return l.Refine(ctx)
}

// AddAlphabetSymbol extends the alphabet by sym and refines the table.
// Adding a known symbol is a no-op.
func (l *Learner[I, O]) AddAlphabetSymbol(ctx context.Context, sym I) error {
	if !l.table.IsInitialized() {
		return fmt.Errorf("%w: learner has not been started", ErrInvalidState)
	}
	if l.table.Alphabet().Contains(sym) {
		return nil
	}

	_, err := l.table.AddAlphabetSymbol(ctx, sym, l.oracle)
	err = translateError(err)
	l.logger.LogAddSymbol(ctx, sym, err)
	if err != nil {
		return err
	}

	l.unclosed = nil

	return l.Refine(ctx)
}

// Table returns the observation table. Callers must not grow it directly
// while the learner is in use.
func (l *Learner[I, O]) Table() *table.Table[I, O] { return l.table }

// Rounds returns the number of closing and consistency steps taken so far.
func (l *Learner[I, O]) Rounds() int { return l.rounds }

// Queries returns the number of membership queries asked so far.
func (l *Learner[I, O]) Queries() int64 { return l.oracle.Queries() }

// Batches returns the number of oracle batches asked so far.
func (l *Learner[I, O]) Batches() int64 { return l.oracle.Batches() }
