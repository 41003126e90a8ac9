package table

import "github.com/hupe1980/lstar/word"

// CanonicalPrefixFor runs w through the hypothesis the table describes and
// returns the label of the canonical row it ends in. Starting at the root,
// each step follows the successor for the next symbol and moves to the
// canonical row of that successor's contents.
//
// The table must be initialized and closed. ok is false if w contains a
// symbol outside the alphabet or the traversal leaves the short rows.
func (t *Table[I, O]) CanonicalPrefixFor(w word.Word[I]) (word.Word[I], bool) {
	if !t.IsInitialized() {
		return word.Word[I]{}, false
	}
	cur := t.root()
	for _, sym := range w.All() {
		next, ok := t.step(cur, sym)
		if !ok {
			return word.Word[I]{}, false
		}
		canon, ok := t.store.canonicalRowOf(next.contentID)
		if !ok {
			return word.Word[I]{}, false
		}
		cur = t.rows[canon]
	}
	return cur.label, true
}

// IsAccessSequence reports whether every row visited while following w from
// the root is the canonical row of its contents. The root itself is not
// checked.
func (t *Table[I, O]) IsAccessSequence(w word.Word[I]) bool {
	if !t.IsInitialized() {
		return false
	}
	cur := t.root()
	for _, sym := range w.All() {
		next, ok := t.step(cur, sym)
		if !ok {
			return false
		}
		if canon, ok := t.store.canonicalRowOf(next.contentID); !ok || canon != next.id {
			return false
		}
		cur = next
	}
	return true
}

func (t *Table[I, O]) step(row *Row[I], sym I) (*Row[I], bool) {
	idx, ok := t.alphabet.Index(sym)
	if !ok {
		return nil, false
	}
	succ, ok := row.Successor(idx)
	if !ok || succ == NoRow {
		return nil, false
	}
	return t.rows[succ], true
}
