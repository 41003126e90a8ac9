package table

import (
	"fmt"
	"hash/maphash"
	"slices"

	"github.com/hupe1980/lstar/internal/hashindex"
)

// contentStore interns row content vectors into dense content ids and tracks
// the canonical short row of every id.
//
// Content ids are permanent. Vectors only grow, and only through extend,
// which rehooks the vector in the value index around the mutation.
type contentStore[O comparable] struct {
	contents  [][]O
	canonical []RowID
	index     *hashindex.Index[[]O]
}

func newContentStore[O comparable](seed maphash.Seed) *contentStore[O] {
	s := &contentStore[O]{}
	s.index = hashindex.New(
		hashindex.SliceHasher[O](seed),
		func(a, b []O) bool { return slices.Equal(a, b) },
		func(id int) []O { return s.contents[id] },
	)
	return s
}

// size returns the number of distinct contents.
func (s *contentStore[O]) size() int { return len(s.contents) }

// intern returns the id of vec, allocating the next id if vec is new. The
// store takes ownership of vec. If asCanonical is set and the id has no
// canonical row yet, row becomes canonical for it.
func (s *contentStore[O]) intern(vec []O, row RowID, asCanonical bool) (ContentID, bool) {
	id, found := s.index.Lookup(vec)
	if !found {
		id = len(s.contents)
		s.contents = append(s.contents, vec)
		s.canonical = append(s.canonical, NoRow)
		s.index.Insert(vec, id)
	}
	if asCanonical && s.canonical[id] == NoRow {
		s.canonical[id] = row
	}
	return ContentID(id), !found
}

// contentOf returns the registered vector of id. Callers must not modify it.
func (s *contentStore[O]) contentOf(id ContentID) []O {
	return s.contents[id]
}

func (s *contentStore[O]) canonicalRowOf(id ContentID) (RowID, bool) {
	r := s.canonical[id]
	return r, r != NoRow
}

func (s *contentStore[O]) setCanonical(id ContentID, row RowID) {
	s.canonical[id] = row
}

func (s *contentStore[O]) clearCanonical(id ContentID) {
	s.canonical[id] = NoRow
}

// extend appends vals to the vector registered under id in place. The
// vector is unhooked from the index before the mutation and rehooked after,
// so the index never holds a stale key. It fails if the extended vector is
// already registered under another id.
func (s *contentStore[O]) extend(id ContentID, vals []O) error {
	vec := s.contents[id]
	s.index.Remove(vec, int(id))
	vec = append(vec, vals...)
	if other, ok := s.index.Lookup(vec); ok {
		return fmt.Errorf("%w: extending content %d collides with content %d", ErrInternalInvariant, id, other)
	}
	s.contents[id] = vec
	s.index.Insert(vec, int(id))
	return nil
}
