package oracle

import (
	"context"
	"fmt"

	"github.com/hupe1980/lstar/word"
)

// Query is a membership query: the system is run on Prefix followed by
// Suffix, and the answer describes its reaction to Suffix.
type Query[I comparable] struct {
	Prefix word.Word[I]
	Suffix word.Word[I]
}

// NewQuery creates a query for (prefix, suffix).
func NewQuery[I comparable](prefix, suffix word.Word[I]) Query[I] {
	return Query[I]{Prefix: prefix, Suffix: suffix}
}

// Input returns the full input word prefix·suffix.
func (q Query[I]) Input() word.Word[I] {
	return q.Prefix.Concat(q.Suffix)
}

// Equal reports whether q and other ask the same (prefix, suffix) pair.
func (q Query[I]) Equal(other Query[I]) bool {
	return q.Prefix.Equal(other.Prefix) && q.Suffix.Equal(other.Suffix)
}

func (q Query[I]) String() string {
	return fmt.Sprintf("(%s | %s)", q.Prefix, q.Suffix)
}

// MembershipOracle answers batches of membership queries.
//
// Answers are positional: the i-th answer belongs to the i-th query. An
// implementation may answer the batch concurrently but must return only once
// every answer is known.
type MembershipOracle[I comparable, O any] interface {
	AnswerQueries(ctx context.Context, queries []Query[I]) ([]O, error)
}

// Func adapts a function to the MembershipOracle interface.
type Func[I comparable, O any] func(ctx context.Context, queries []Query[I]) ([]O, error)

// AnswerQueries implements MembershipOracle.
func (f Func[I, O]) AnswerQueries(ctx context.Context, queries []Query[I]) ([]O, error) {
	return f(ctx, queries)
}

// Answerer answers a single query.
type Answerer[I comparable, O any] interface {
	Answer(ctx context.Context, prefix, suffix word.Word[I]) (O, error)
}

// AnswererFunc adapts a function to the Answerer interface.
type AnswererFunc[I comparable, O any] func(ctx context.Context, prefix, suffix word.Word[I]) (O, error)

// Answer implements Answerer.
func (f AnswererFunc[I, O]) Answer(ctx context.Context, prefix, suffix word.Word[I]) (O, error) {
	return f(ctx, prefix, suffix)
}

// AnswererOracle turns an Answerer into a MembershipOracle that answers a
// batch sequentially, in order.
type AnswererOracle[I comparable, O any] struct {
	answerer Answerer[I, O]
}

// NewAnswererOracle creates a sequential batch oracle from a.
func NewAnswererOracle[I comparable, O any](a Answerer[I, O]) *AnswererOracle[I, O] {
	return &AnswererOracle[I, O]{answerer: a}
}

// AnswerQueries implements MembershipOracle.
func (o *AnswererOracle[I, O]) AnswerQueries(ctx context.Context, queries []Query[I]) ([]O, error) {
	out := make([]O, len(queries))
	for i, q := range queries {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		a, err := o.answerer.Answer(ctx, q.Prefix, q.Suffix)
		if err != nil {
			return nil, fmt.Errorf("query %s: %w", q, err)
		}
		out[i] = a
	}
	return out, nil
}

// CheckAnswers verifies that answers matches queries one to one.
func CheckAnswers[I comparable, O any](queries []Query[I], answers []O) error {
	if len(answers) != len(queries) {
		return &AnswerCountError{Want: len(queries), Got: len(answers)}
	}
	return nil
}
