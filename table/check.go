package table

import (
	"fmt"

	"github.com/hupe1980/lstar/word"
)

// Inconsistency describes two short rows with equal contents whose
// successors for the symbol at SymbolIndex have different contents.
// First is the canonical row of the shared contents.
type Inconsistency[I comparable] struct {
	First       *Row[I]
	Second      *Row[I]
	SymbolIndex int
}

// FindUnclosedRow returns the first long row, in long-collection order,
// whose contents no short row holds.
func (t *Table[I, O]) FindUnclosedRow() (*Row[I], bool) {
	for _, id := range t.longRows {
		row := t.rows[id]
		if !t.shortContents.Contains(int(row.contentID)) {
			return row, true
		}
	}
	return nil, false
}

// IsClosed reports whether every long row's contents are held by a short row.
func (t *Table[I, O]) IsClosed() bool {
	_, ok := t.FindUnclosedRow()
	return !ok
}

// FindInconsistency compares every short row with the canonical row of its
// contents. Rows are visited in the order they became short and symbols in
// alphabet order, so the result is stable while the table is unchanged.
func (t *Table[I, O]) FindInconsistency() (Inconsistency[I], bool) {
	for _, id := range t.shortRows {
		row := t.rows[id]
		canonID, ok := t.store.canonicalRowOf(row.contentID)
		if !ok || canonID == id {
			continue
		}
		canon := t.rows[canonID]
		for i := range t.alphabet.Size() {
			a := t.rows[canon.successors[i]].contentID
			b := t.rows[row.successors[i]].contentID
			if a != b {
				return Inconsistency[I]{First: canon, Second: row, SymbolIndex: i}, true
			}
		}
	}
	return Inconsistency[I]{}, false
}

// IsConsistent reports whether short rows with equal contents have
// successors with equal contents for every symbol.
func (t *Table[I, O]) IsConsistent() bool {
	_, ok := t.FindInconsistency()
	return !ok
}

// WitnessForInconsistency returns the first suffix, and its column, on which
// the successors of inc's rows disagree. The distinguishing suffix of the two
// rows is then alphabet[inc.SymbolIndex] followed by the returned suffix.
func (t *Table[I, O]) WitnessForInconsistency(inc Inconsistency[I]) (word.Word[I], int, error) {
	if !t.owns(inc.First) || !t.owns(inc.Second) {
		return word.Word[I]{}, -1, fmt.Errorf("%w: inconsistency refers to rows of another table", ErrInvalidArgument)
	}
	s1, ok1 := inc.First.Successor(inc.SymbolIndex)
	s2, ok2 := inc.Second.Successor(inc.SymbolIndex)
	if !ok1 || !ok2 {
		return word.Word[I]{}, -1, fmt.Errorf("%w: inconsistency needs two short rows and a valid symbol index", ErrInvalidArgument)
	}

	c1 := t.store.contentOf(t.rows[s1].contentID)
	c2 := t.store.contentOf(t.rows[s2].contentID)
	for i := range t.suffixes {
		if c1[i] != c2[i] {
			return t.suffixes[i], i, nil
		}
	}

	return word.Word[I]{}, -1, fmt.Errorf("%w: successors of %s and %s agree on every suffix",
		ErrInternalInvariant, inc.First.label, inc.Second.label)
}

// DistinguishingSuffix returns alphabet[inc.SymbolIndex] followed by the
// witness of inc. Adding it as a column separates inc's rows.
func (t *Table[I, O]) DistinguishingSuffix(inc Inconsistency[I]) (word.Word[I], error) {
	witness, _, err := t.WitnessForInconsistency(inc)
	if err != nil {
		return word.Word[I]{}, err
	}
	return witness.Prepend(t.alphabet.Symbol(inc.SymbolIndex)), nil
}

// UnclosedClasses groups all unclosed long rows by contents. Classes are
// ordered by first occurrence in the long-row collection.
func (t *Table[I, O]) UnclosedClasses() [][]*Row[I] {
	unclosed := newUnclosedCollector[I](t.shortContents)
	for _, id := range t.longRows {
		unclosed.observe(t.rows[id])
	}
	return unclosed.result()
}
