package oracle

import (
	"context"
	"runtime"

	"golang.org/x/sync/errgroup"
)

// ParallelOptions configures a Parallel oracle.
type ParallelOptions struct {
	// Workers is the maximum number of chunks answered concurrently.
	// If <= 0, defaults to runtime.GOMAXPROCS(0).
	Workers int

	// ChunkSize is the number of queries handed to the inner oracle per call.
	// Batches not larger than ChunkSize are passed through unchanged.
	// If <= 0, defaults to 64.
	ChunkSize int
}

// Parallel answers a batch by splitting it into chunks that are answered
// concurrently by the inner oracle. Answer order is preserved.
//
// The inner oracle must be safe for concurrent use.
type Parallel[I comparable, O any] struct {
	inner MembershipOracle[I, O]
	opts  ParallelOptions
}

// NewParallel wraps inner.
func NewParallel[I comparable, O any](inner MembershipOracle[I, O], optFns ...func(o *ParallelOptions)) *Parallel[I, O] {
	opts := ParallelOptions{}
	for _, fn := range optFns {
		fn(&opts)
	}
	if opts.Workers <= 0 {
		opts.Workers = runtime.GOMAXPROCS(0)
	}
	if opts.ChunkSize <= 0 {
		opts.ChunkSize = 64
	}
	return &Parallel[I, O]{inner: inner, opts: opts}
}

// AnswerQueries implements MembershipOracle. The first failing chunk cancels
// the remaining ones and its error is returned.
func (p *Parallel[I, O]) AnswerQueries(ctx context.Context, queries []Query[I]) ([]O, error) {
	if len(queries) <= p.opts.ChunkSize {
		return p.inner.AnswerQueries(ctx, queries)
	}

	out := make([]O, len(queries))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(p.opts.Workers)

	for start := 0; start < len(queries); start += p.opts.ChunkSize {
		end := min(start+p.opts.ChunkSize, len(queries))
		chunk := queries[start:end]

		g.Go(func() error {
			answers, err := p.inner.AnswerQueries(gctx, chunk)
			if err != nil {
				return err
			}
			if err := CheckAnswers(chunk, answers); err != nil {
				return err
			}
			// Chunks write disjoint ranges of out.
			copy(out[start:end], answers)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}
