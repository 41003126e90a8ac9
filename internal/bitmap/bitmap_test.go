package bitmap

import (
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIDSet(t *testing.T) {
	s := New()
	assert.True(t, s.IsEmpty())

	s.Add(3)
	s.Add(0)
	s.Add(3)

	assert.Equal(t, 2, s.Cardinality())
	assert.True(t, s.Contains(0))
	assert.True(t, s.Contains(3))
	assert.False(t, s.Contains(1))
	assert.False(t, s.Contains(-1))
	assert.Equal(t, []int{0, 3}, slices.Collect(s.All()))

	c := s.Clone()
	s.Clear()
	assert.True(t, s.IsEmpty())
	assert.Equal(t, 2, c.Cardinality(), "clone must be independent")
}
