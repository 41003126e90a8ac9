package oracle

import (
	"context"

	"golang.org/x/time/rate"
)

// RateLimited throttles the number of queries per second forwarded to the
// inner oracle. A batch waits until the limiter grants a token per query.
type RateLimited[I comparable, O any] struct {
	inner   MembershipOracle[I, O]
	limiter *rate.Limiter
}

// NewRateLimited wraps inner with a limiter allowing qps queries per second
// and bursts of up to burst queries. If burst <= 0 it defaults to 1.
func NewRateLimited[I comparable, O any](inner MembershipOracle[I, O], qps float64, burst int) *RateLimited[I, O] {
	if burst <= 0 {
		burst = 1
	}
	return &RateLimited[I, O]{
		inner:   inner,
		limiter: rate.NewLimiter(rate.Limit(qps), burst),
	}
}

// AnswerQueries implements MembershipOracle. It returns ctx's error if ctx is
// done before the batch has been admitted.
func (r *RateLimited[I, O]) AnswerQueries(ctx context.Context, queries []Query[I]) ([]O, error) {
	burst := r.limiter.Burst()
	for remaining := len(queries); remaining > 0; {
		n := min(remaining, burst)
		if err := r.limiter.WaitN(ctx, n); err != nil {
			return nil, err
		}
		remaining -= n
	}
	return r.inner.AnswerQueries(ctx, queries)
}
