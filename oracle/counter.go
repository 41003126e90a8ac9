package oracle

import (
	"context"
	"sync/atomic"
	"time"
)

// ObserveFunc is called after every batch with the batch size, the time the
// inner oracle took and its error.
type ObserveFunc func(queries int, duration time.Duration, err error)

// Counter counts the batches and queries passed to the inner oracle.
type Counter[I comparable, O any] struct {
	inner   MembershipOracle[I, O]
	observe ObserveFunc

	batches atomic.Int64
	queries atomic.Int64
	errors  atomic.Int64
}

// NewCounter wraps inner. observe may be nil.
func NewCounter[I comparable, O any](inner MembershipOracle[I, O], observe ObserveFunc) *Counter[I, O] {
	return &Counter[I, O]{inner: inner, observe: observe}
}

// AnswerQueries implements MembershipOracle.
func (c *Counter[I, O]) AnswerQueries(ctx context.Context, queries []Query[I]) ([]O, error) {
	start := time.Now()
	answers, err := c.inner.AnswerQueries(ctx, queries)

	c.batches.Add(1)
	c.queries.Add(int64(len(queries)))
	if err != nil {
		c.errors.Add(1)
	}
	if c.observe != nil {
		c.observe(len(queries), time.Since(start), err)
	}
	return answers, err
}

// Batches returns the number of batches asked so far.
func (c *Counter[I, O]) Batches() int64 { return c.batches.Load() }

// Queries returns the number of queries asked so far.
func (c *Counter[I, O]) Queries() int64 { return c.queries.Load() }

// Errors returns the number of failed batches.
func (c *Counter[I, O]) Errors() int64 { return c.errors.Load() }

// Reset zeroes all counters.
func (c *Counter[I, O]) Reset() {
	c.batches.Store(0)
	c.queries.Store(0)
	c.errors.Store(0)
}
