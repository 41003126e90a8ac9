package lstar_test

import (
	"context"
	"fmt"
	"log"

	"github.com/hupe1980/lstar"
	"github.com/hupe1980/lstar/oracle"
	"github.com/hupe1980/lstar/testutil"
	"github.com/hupe1980/lstar/word"
)

func turnstile() *testutil.Mealy {
	m := testutil.NewMealy(word.NewAlphabet("coin", "push"), 2)
	m.SetTransition(0, "coin", 1, "unlock")
	m.SetTransition(0, "push", 0, "blocked")
	m.SetTransition(1, "coin", 1, "thanks")
	m.SetTransition(1, "push", 0, "lock")
	return m
}

// Example demonstrates learning the states of a turnstile.
func Example() {
	m := turnstile()

	l, err := lstar.New(m.Alphabet(), m.Oracle())
	if err != nil {
		log.Fatal(err)
	}

	// One column per input symbol yields the outputs of every transition.
	if err := l.Start(context.Background(), word.Of("coin"), word.Of("push")); err != nil {
		log.Fatal(err)
	}

	for _, r := range l.Table().ShortRows() {
		fmt.Println(r.Label())
	}
	// Output:
	// ε
	// coin
}

// Example_oracleStack demonstrates composing oracle adapters.
func Example_oracleStack() {
	m := turnstile()

	cache := oracle.NewCache(oracle.NewParallel(m.Oracle(), func(o *oracle.ParallelOptions) {
		o.Workers = 4
	}))
	metrics := &lstar.BasicMetricsCollector{}

	l, err := lstar.New(m.Alphabet(), cache, lstar.WithMetricsCollector(metrics))
	if err != nil {
		log.Fatal(err)
	}
	if err := l.Start(context.Background(), word.Of("coin"), word.Of("push")); err != nil {
		log.Fatal(err)
	}

	stats := metrics.GetStats()
	fmt.Println("states:", l.Table().NumShortRows())
	fmt.Println("queries:", stats.QueryCount)
	fmt.Println("cached:", cache.Len())
	// Output:
	// states: 2
	// queries: 10
	// cached: 10
}

// Example_counterexample demonstrates feeding a counterexample back.
func Example_counterexample() {
	// Outputs the number of inputs seen so far, modulo 3, but only on "b".
	alphabet := word.NewAlphabet("a", "b")
	m := testutil.NewMealy(alphabet, 3)
	for s := range 3 {
		m.SetTransition(s, "a", (s+1)%3, "-")
		m.SetTransition(s, "b", (s+1)%3, fmt.Sprint(s))
	}

	l, err := lstar.New(alphabet, m.Oracle())
	if err != nil {
		log.Fatal(err)
	}
	ctx := context.Background()
	if err := l.Start(ctx, word.Of("a")); err != nil {
		log.Fatal(err)
	}
	fmt.Println("before:", l.Table().NumShortRows())

	// "a b" is answered wrongly by the one-state hypothesis.
	if err := l.AddSuffixes(ctx, word.Of("b"), word.Of("a", "b")); err != nil {
		log.Fatal(err)
	}
	fmt.Println("after:", l.Table().NumShortRows())
	// Output:
	// before: 1
	// after: 3
}
