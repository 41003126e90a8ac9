// Package testutil provides testing utilities for lstar.
//
// This package is intended for use in tests and benchmarks only.
// It provides reference systems to learn and helpers for building words.
//
// # Random Systems
//
//	rng := testutil.NewRNG(seed)
//	m := rng.RandomMealy(alphabet, 8, []string{"0", "1"})
//	mo := m.Oracle()
//
// # Languages
//
//	mo := testutil.LanguageOracle(func(w word.Word[string]) bool {
//		return w.Len()%2 == 0
//	})
//
// # Words
//
//	testutil.W("a b a") // the word a·b·a
package testutil
