// Package word provides the input model shared by the observation table and
// membership oracles: immutable words over a symbol type and a growable,
// index-stable alphabet.
//
//	ab := word.NewAlphabet("a", "b")
//	w := word.Of("a").Append("b") // a b
//	w.Prefix(1).IsPrefixOf(w)     // true
package word
