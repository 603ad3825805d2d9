package predgo

import (
	"errors"
	"fmt"
)

var (
	// ErrEmptyInput is returned when constructing from zero values.
	ErrEmptyInput = errors.New("input must not be empty")

	// ErrNoPredecessor is returned when the limit lies below the smallest
	// stored value, so no predecessor exists.
	ErrNoPredecessor = errors.New("no predecessor exists")

	// ErrInternalInconsistency is returned when a query reaches a trie node
	// that carries no representative on either side. It indicates a
	// construction bug, not a caller mistake.
	ErrInternalInconsistency = errors.New("internal inconsistency")
)

// ErrNotSorted indicates input that is not strictly increasing. Duplicate
// values are rejected through this error as well.
type ErrNotSorted struct {
	// Index is the position of the offending value.
	Index int
	// Prev and Value are the out-of-order pair.
	Prev, Value uint64
}

func (e *ErrNotSorted) Error() string {
	return fmt.Sprintf("input not strictly increasing at index %d: %d after %d", e.Index, e.Value, e.Prev)
}
