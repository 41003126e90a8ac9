package word

import "slices"

// Alphabet is an ordered, append-only set of input symbols.
//
// Every symbol keeps the index it was assigned when added; growing the
// alphabet never renumbers existing symbols.
type Alphabet[I comparable] struct {
	syms  []I
	index map[I]int
}

// NewAlphabet creates an alphabet from syms. Repeated symbols collapse onto
// their first occurrence.
func NewAlphabet[I comparable](syms ...I) *Alphabet[I] {
	a := &Alphabet[I]{
		syms:  make([]I, 0, len(syms)),
		index: make(map[I]int, len(syms)),
	}
	for _, s := range syms {
		a.Add(s)
	}
	return a
}

// Size returns the number of symbols.
func (a *Alphabet[I]) Size() int { return len(a.syms) }

// Symbol returns the symbol with index i.
func (a *Alphabet[I]) Symbol(i int) I { return a.syms[i] }

// Index returns the index of sym.
func (a *Alphabet[I]) Index(sym I) (int, bool) {
	i, ok := a.index[sym]
	return i, ok
}

// Contains reports whether sym is part of the alphabet.
func (a *Alphabet[I]) Contains(sym I) bool {
	_, ok := a.index[sym]
	return ok
}

// Add appends sym and returns its index. added is false if sym was already
// present, in which case its existing index is returned.
func (a *Alphabet[I]) Add(sym I) (idx int, added bool) {
	if i, ok := a.index[sym]; ok {
		return i, false
	}
	idx = len(a.syms)
	a.syms = append(a.syms, sym)
	a.index[sym] = idx
	return idx, true
}

// Symbols returns a copy of the symbols in index order.
func (a *Alphabet[I]) Symbols() []I { return slices.Clone(a.syms) }

// ContainsWord reports whether every symbol of w is part of the alphabet.
func (a *Alphabet[I]) ContainsWord(w Word[I]) bool {
	for _, s := range w.syms {
		if _, ok := a.index[s]; !ok {
			return false
		}
	}
	return true
}

// Clone returns an independent copy of a.
func (a *Alphabet[I]) Clone() *Alphabet[I] {
	return NewAlphabet(a.syms...)
}
