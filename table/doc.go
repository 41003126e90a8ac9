// Package table implements the observation table of Angluin's L* algorithm.
//
// Rows are labeled by prefixes and split into short rows, the states of the
// hypothesis, and long rows, their one-symbol extensions. Columns are labeled
// by suffixes. The cell (u, v) holds the membership oracle's answer for the
// query (u, v).
//
// # Contents
//
// Row content vectors are interned into content ids. Two rows are equivalent
// iff their content ids are equal. Every content id held by a short row has a
// canonical short row that represents it in the hypothesis.
//
// # Growth
//
// A table grows through Initialize, AddSuffixes, AddShortPrefixes,
// ToShortPrefixes and AddAlphabetSymbol. Each operation asks exactly the
// missing cells in one oracle batch and mutates the table only after the
// batch was answered:
//
//	t := table.New[string, bool](word.NewAlphabet("a", "b"))
//	unclosed, err := t.Initialize(ctx, []word.Word[string]{word.Empty[string]()},
//		[]word.Word[string]{word.Empty[string]()}, mo)
//
// The returned unclosed classes group long rows whose contents no short row
// holds. Promoting one row of each class makes the table closed.
//
// # Consistency
//
// FindInconsistency reports two short rows with equal contents whose
// successors for some symbol differ; DistinguishingSuffix yields the column
// that separates them.
package table
