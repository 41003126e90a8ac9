package oracle

import (
	"context"
	"hash/maphash"
	"sync"

	"github.com/hupe1980/lstar/internal/hashindex"
)

// CacheOptions configures a Cache.
type CacheOptions struct {
	// VerifyEvery re-asks the inner oracle for every n-th cache hit and fails
	// the batch with an *AnswerConflictError if the fresh answer differs from
	// the cached one. 0 disables verification.
	VerifyEvery int
}

type cacheEntry[I comparable, O comparable] struct {
	query  Query[I]
	answer O
}

// Cache memoizes answers per (prefix, suffix) pair. Only queries without a
// cached answer reach the inner oracle, and a query repeated within one batch
// is asked once.
//
// Cache is safe for concurrent use.
type Cache[I comparable, O comparable] struct {
	inner MembershipOracle[I, O]
	opts  CacheOptions
	seed  maphash.Seed

	mu      sync.Mutex
	entries []cacheEntry[I, O]
	index   *hashindex.Index[Query[I]]
	hits    int
}

// NewCache wraps inner.
func NewCache[I comparable, O comparable](inner MembershipOracle[I, O], optFns ...func(o *CacheOptions)) *Cache[I, O] {
	opts := CacheOptions{}
	for _, fn := range optFns {
		fn(&opts)
	}
	c := &Cache[I, O]{
		inner: inner,
		opts:  opts,
		seed:  maphash.MakeSeed(),
	}
	c.index = hashindex.New(c.hashQuery, Query[I].Equal, func(id int) Query[I] {
		return c.entries[id].query
	})
	return c
}

func (c *Cache[I, O]) hashQuery(q Query[I]) uint64 {
	return hashQuery(c.seed, q)
}

func hashQuery[I comparable](seed maphash.Seed, q Query[I]) uint64 {
	var h maphash.Hash
	h.SetSeed(seed)
	q.Prefix.WriteHash(&h)
	q.Suffix.WriteHash(&h)
	return h.Sum64()
}

// Len returns the number of cached answers.
func (c *Cache[I, O]) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

// Lookup returns the cached answer for q.
func (c *Cache[I, O]) Lookup(q Query[I]) (O, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if id, ok := c.index.Lookup(q); ok {
		return c.entries[id].answer, true
	}
	var zero O
	return zero, false
}

// Insert records answer for q. It fails with an *AnswerConflictError if a
// different answer is already cached.
func (c *Cache[I, O]) Insert(q Query[I], answer O) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.insertLocked(q, answer)
}

func (c *Cache[I, O]) insertLocked(q Query[I], answer O) error {
	if id, ok := c.index.Lookup(q); ok {
		if recorded := c.entries[id].answer; recorded != answer {
			return &AnswerConflictError{Query: q.String(), Recorded: recorded, Got: answer}
		}
		return nil
	}
	c.entries = append(c.entries, cacheEntry[I, O]{query: q, answer: answer})
	c.index.Insert(q, len(c.entries)-1)
	return nil
}

// AnswerQueries implements MembershipOracle.
func (c *Cache[I, O]) AnswerQueries(ctx context.Context, queries []Query[I]) ([]O, error) {
	out := make([]O, len(queries))

	// Unique misses and the batch positions waiting for each of them.
	var (
		misses    []Query[I]
		waiting   [][]int
		verifyPos []int
	)
	pending := hashindex.New(c.hashQuery, Query[I].Equal, func(id int) Query[I] {
		return misses[id]
	})

	c.mu.Lock()
	for i, q := range queries {
		if id, ok := c.index.Lookup(q); ok {
			out[i] = c.entries[id].answer
			c.hits++
			if c.opts.VerifyEvery > 0 && c.hits%c.opts.VerifyEvery == 0 {
				verifyPos = append(verifyPos, i)
			}
			continue
		}
		if id, ok := pending.Lookup(q); ok {
			waiting[id] = append(waiting[id], i)
			continue
		}
		misses = append(misses, q)
		waiting = append(waiting, []int{i})
		pending.Insert(q, len(misses)-1)
	}
	c.mu.Unlock()

	if len(misses) == 0 && len(verifyPos) == 0 {
		return out, nil
	}

	asked := make([]Query[I], 0, len(misses)+len(verifyPos))
	asked = append(asked, misses...)
	for _, pos := range verifyPos {
		asked = append(asked, queries[pos])
	}

	answers, err := c.inner.AnswerQueries(ctx, asked)
	if err != nil {
		return nil, err
	}
	if err := CheckAnswers(asked, answers); err != nil {
		return nil, err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	for id, q := range misses {
		a := answers[id]
		// A concurrent batch may have cached q in the meantime.
		if err := c.insertLocked(q, a); err != nil {
			return nil, err
		}
		for _, pos := range waiting[id] {
			out[pos] = a
		}
	}
	for k, pos := range verifyPos {
		if fresh := answers[len(misses)+k]; fresh != out[pos] {
			return nil, &AnswerConflictError{Query: queries[pos].String(), Recorded: out[pos], Got: fresh}
		}
	}
	return out, nil
}
