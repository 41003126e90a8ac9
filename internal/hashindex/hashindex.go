// Package hashindex maps values that are not valid Go map keys (slices,
// words, query pairs) to dense integer ids.
//
// The index stores only ids. Keys are resolved through a caller-supplied
// function, so the backing values stay owned by the caller and are never
// copied. A key must not be mutated while it is registered: Remove it,
// mutate, then Insert it again.
package hashindex

import (
	"hash/maphash"
	"slices"
)

// Index is a value-keyed hash index from K to int ids.
type Index[K any] struct {
	hash    func(K) uint64
	equal   func(a, b K) bool
	key     func(id int) K
	buckets map[uint64][]int
	n       int
}

// New creates an index. key resolves a registered id back to its key; it is
// called only for ids that were inserted and not removed.
func New[K any](hash func(K) uint64, equal func(a, b K) bool, key func(id int) K) *Index[K] {
	return &Index[K]{
		hash:    hash,
		equal:   equal,
		key:     key,
		buckets: make(map[uint64][]int),
	}
}

// Len returns the number of registered ids.
func (ix *Index[K]) Len() int { return ix.n }

// Lookup returns the id registered for k.
func (ix *Index[K]) Lookup(k K) (int, bool) {
	for _, id := range ix.buckets[ix.hash(k)] {
		if ix.equal(ix.key(id), k) {
			return id, true
		}
	}
	return 0, false
}

// Insert registers id under k. The caller guarantees that no equal key is
// registered already.
func (ix *Index[K]) Insert(k K, id int) {
	h := ix.hash(k)
	ix.buckets[h] = append(ix.buckets[h], id)
	ix.n++
}

// Remove unregisters id, which must currently be registered under k.
func (ix *Index[K]) Remove(k K, id int) bool {
	h := ix.hash(k)
	b := ix.buckets[h]
	i := slices.Index(b, id)
	if i < 0 {
		return false
	}
	b = slices.Delete(b, i, i+1)
	if len(b) == 0 {
		delete(ix.buckets, h)
	} else {
		ix.buckets[h] = b
	}
	ix.n--
	return true
}

// SliceHasher returns a hash function over slices of comparable elements.
// Slices with equal elements hash equally.
func SliceHasher[T comparable](seed maphash.Seed) func([]T) uint64 {
	return func(s []T) uint64 {
		var h maphash.Hash
		h.SetSeed(seed)
		maphash.WriteComparable(&h, len(s))
		for _, v := range s {
			maphash.WriteComparable(&h, v)
		}
		return h.Sum64()
	}
}
