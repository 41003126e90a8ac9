package word

import (
	"fmt"
	"hash/maphash"
	"iter"
	"slices"
	"strings"
)

// Word is an immutable finite sequence of input symbols.
//
// The zero value is the empty word. Words never share mutable state with
// their callers: constructors copy their input and Symbols returns a copy.
type Word[I comparable] struct {
	syms []I
}

// Empty returns the empty word ε.
func Empty[I comparable]() Word[I] {
	return Word[I]{}
}

// Of creates a word from the given symbols.
func Of[I comparable](syms ...I) Word[I] {
	if len(syms) == 0 {
		return Word[I]{}
	}
	return Word[I]{syms: slices.Clone(syms)}
}

// Len returns the number of symbols in w.
func (w Word[I]) Len() int { return len(w.syms) }

// IsEmpty reports whether w is the empty word.
func (w Word[I]) IsEmpty() bool { return len(w.syms) == 0 }

// At returns the symbol at position i.
func (w Word[I]) At(i int) I { return w.syms[i] }

// Symbols returns a copy of the symbols of w.
func (w Word[I]) Symbols() []I { return slices.Clone(w.syms) }

// All iterates over the symbols of w in order.
func (w Word[I]) All() iter.Seq2[int, I] {
	return func(yield func(int, I) bool) {
		for i, s := range w.syms {
			if !yield(i, s) {
				return
			}
		}
	}
}

// Append returns w extended by sym.
func (w Word[I]) Append(sym I) Word[I] {
	out := make([]I, len(w.syms)+1)
	copy(out, w.syms)
	out[len(w.syms)] = sym
	return Word[I]{syms: out}
}

// Prepend returns sym followed by w.
func (w Word[I]) Prepend(sym I) Word[I] {
	out := make([]I, len(w.syms)+1)
	out[0] = sym
	copy(out[1:], w.syms)
	return Word[I]{syms: out}
}

// Concat returns w followed by other.
func (w Word[I]) Concat(other Word[I]) Word[I] {
	switch {
	case other.IsEmpty():
		return w
	case w.IsEmpty():
		return other
	}
	out := make([]I, 0, len(w.syms)+len(other.syms))
	out = append(out, w.syms...)
	out = append(out, other.syms...)
	return Word[I]{syms: out}
}

// Prefix returns the first n symbols of w. n is clamped to [0, Len()].
func (w Word[I]) Prefix(n int) Word[I] {
	n = min(max(n, 0), len(w.syms))
	if n == 0 {
		return Word[I]{}
	}
	// Words are immutable, so sharing the backing array is safe.
	return Word[I]{syms: w.syms[:n:n]}
}

// Suffix returns the last n symbols of w. n is clamped to [0, Len()].
func (w Word[I]) Suffix(n int) Word[I] {
	n = min(max(n, 0), len(w.syms))
	if n == 0 {
		return Word[I]{}
	}
	return Word[I]{syms: w.syms[len(w.syms)-n:]}
}

// IsPrefixOf reports whether w is a prefix of other.
func (w Word[I]) IsPrefixOf(other Word[I]) bool {
	if len(w.syms) > len(other.syms) {
		return false
	}
	return slices.Equal(w.syms, other.syms[:len(w.syms)])
}

// Equal reports whether w and other contain the same symbols.
func (w Word[I]) Equal(other Word[I]) bool {
	return slices.Equal(w.syms, other.syms)
}

// String renders w as its space-separated symbols, or "ε" when empty.
func (w Word[I]) String() string {
	if len(w.syms) == 0 {
		return "ε"
	}
	var sb strings.Builder
	for i, s := range w.syms {
		if i > 0 {
			sb.WriteByte(' ')
		}
		fmt.Fprint(&sb, s)
	}
	return sb.String()
}

// WriteHash feeds the length and symbols of w into h. Equal words write
// identical input, so the result can key value-based lookups.
func (w Word[I]) WriteHash(h *maphash.Hash) {
	maphash.WriteComparable(h, len(w.syms))
	for _, s := range w.syms {
		maphash.WriteComparable(h, s)
	}
}
