// Package bucket defines the bounded search structure backing each
// representative of a predecessor trie.
//
// A bucket holds one contiguous group of at most depth consecutive input
// values. The trie only needs a single operation from it: the largest stored
// value that does not exceed a limit. The implementation is pluggable; the
// default is a binary search over the sorted group.
package bucket

import "sort"

// Search answers bounded predecessor queries over one sorted group of values.
type Search interface {
	// Predecessor returns the largest stored value <= limit.
	// If no stored value qualifies, fallback is returned. The caller passes
	// the value of the previous representative (or 0 at the front of the
	// chain), which by construction is the correct answer when the whole
	// group lies above limit.
	Predecessor(fallback, limit uint64) uint64

	// Len returns the number of values in the group.
	Len() int
}

// Builder constructs a Search from one sorted group of values.
// The group slice is owned by the caller; implementations must copy it if
// they retain it.
type Builder func(group []uint64) Search

// NewSortedSlice is the default Builder.
func NewSortedSlice(group []uint64) Search {
	values := make([]uint64, len(group))
	copy(values, group)
	return &sortedSlice{values: values}
}

// sortedSlice is the default Search: a copied group plus binary search.
type sortedSlice struct {
	values []uint64
}

func (s *sortedSlice) Predecessor(fallback, limit uint64) uint64 {
	i := sort.Search(len(s.values), func(i int) bool { return s.values[i] > limit })
	if i == 0 {
		return fallback
	}
	return s.values[i-1]
}

func (s *sortedSlice) Len() int {
	return len(s.values)
}
