// Package lstar provides observation-table based active automata learning
// in the style of Angluin's L* algorithm.
//
// The observation table lives in package table; package oracle defines the
// batched membership-oracle contract and composable adapters. This package
// ties them together with a Learner that keeps the table closed and
// consistent.
//
// # Quick Start
//
//	alphabet := word.NewAlphabet("a", "b")
//	mo := oracle.NewAnswererOracle(system) // system implements oracle.Answerer
//
//	l, _ := lstar.New(alphabet, mo)
//	if err := l.Start(ctx); err != nil {
//	    return err
//	}
//
//	t := l.Table()
//	for _, r := range t.ShortRows() {
//	    fmt.Println(r.Label()) // one state of the hypothesis
//	}
//
// # Counterexamples
//
// The learner leaves counterexample analysis to the caller. Feed the
// resulting suffixes or prefixes back and the table is refined again:
//
//	err := l.AddSuffixes(ctx, suffix)
//	err := l.AddShortPrefixes(ctx, prefix)
//
// # Oracles
//
// Oracle adapters compose:
//
//	mo := oracle.NewCache(
//	    oracle.NewParallel(oracle.NewRateLimited(inner, 100, 10)),
//	    func(o *oracle.CacheOptions) { o.VerifyEvery = 50 },
//	)
//
// # Observability
//
//	metrics := &lstar.BasicMetricsCollector{}
//	l, _ := lstar.New(alphabet, mo,
//	    lstar.WithMetricsCollector(metrics),
//	    lstar.WithLogLevel(slog.LevelDebug),
//	)
package lstar
