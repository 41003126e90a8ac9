package bitmap

import (
	"iter"

	"github.com/RoaringBitmap/roaring/v2"
)

// IDSet implements a 32-bit Roaring Bitmap over dense ids such as content ids.
// It wraps the official roaring implementation.
type IDSet struct {
	rb *roaring.Bitmap
}

// New creates a new empty set.
func New() *IDSet {
	return &IDSet{
		rb: roaring.New(),
	}
}

// Add adds id to the set.
func (s *IDSet) Add(id int) {
	s.rb.Add(uint32(id))
}

// Contains checks if id is in the set. Negative ids are never contained.
func (s *IDSet) Contains(id int) bool {
	if id < 0 {
		return false
	}
	return s.rb.Contains(uint32(id))
}

// IsEmpty returns true if the set is empty.
func (s *IDSet) IsEmpty() bool {
	return s.rb.IsEmpty()
}

// Cardinality returns the number of ids in the set.
func (s *IDSet) Cardinality() int {
	return int(s.rb.GetCardinality())
}

// Clear removes all ids.
func (s *IDSet) Clear() {
	s.rb.Clear()
}

// Clone returns a deep copy of the set.
func (s *IDSet) Clone() *IDSet {
	return &IDSet{
		rb: s.rb.Clone(),
	}
}

// All iterates the ids in ascending order.
func (s *IDSet) All() iter.Seq[int] {
	return func(yield func(int) bool) {
		it := s.rb.Iterator()
		for it.HasNext() {
			if !yield(int(it.Next())) {
				return
			}
		}
	}
}
