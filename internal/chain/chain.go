// Package chain builds the representative chain of a predecessor trie.
//
// The input values are partitioned into contiguous buckets of exactly depth
// values; the last value of every bucket becomes a representative. When the
// input length is not a multiple of depth, one trailing irregular bucket of
// size len mod depth remains and its last value becomes the final
// representative. Representatives are stored in an arena and linked by index,
// never by pointer, so the chain and the trie built on top of it can share
// them without ownership questions.
package chain

import "github.com/hupe1980/predgo/bucket"

// None marks an absent prev/next link.
const None int32 = -1

// Representative is one sampled value together with its bucket and its
// neighbors in sorted order.
type Representative struct {
	// Value is the last (largest) value of the bucket.
	Value uint64

	// Prev and Next are arena indices of the sorted-order neighbors,
	// or None at the ends of the chain.
	Prev, Next int32

	// Bucket answers predecessor queries inside this representative's group.
	Bucket bucket.Search
}

// Chain is the ordered arena of representatives.
type Chain struct {
	Reps  []Representative
	Depth int
}

// Build samples representatives from the strictly increasing values.
// depth must be >= 1; the caller validates the input.
func Build(values []uint64, depth int, build bucket.Builder) *Chain {
	n := len(values)
	c := &Chain{
		Reps:  make([]Representative, 0, n/depth+1),
		Depth: depth,
	}

	for i := depth - 1; i < n; i += depth {
		c.append(values[i], build(values[i-(depth-1):i+1]))
	}
	if rest := n % depth; rest != 0 {
		// Trailing values without a regular representative. The last value
		// stands in, backed by a bucket of just those rest values. For inputs
		// shorter than depth this is the only representative.
		c.append(values[n-1], build(values[n-rest:]))
	}

	return c
}

func (c *Chain) append(value uint64, b bucket.Search) {
	idx := int32(len(c.Reps))
	rep := Representative{Value: value, Prev: None, Next: None, Bucket: b}
	if idx > 0 {
		rep.Prev = idx - 1
		c.Reps[idx-1].Next = idx
	}
	c.Reps = append(c.Reps, rep)
}

// Len returns the number of representatives.
func (c *Chain) Len() int {
	return len(c.Reps)
}

// Values returns a fresh slice of the representative values in chain order.
// The trie build mutates this copy in place while stripping bits, so it must
// not alias the arena.
func (c *Chain) Values() []uint64 {
	values := make([]uint64, len(c.Reps))
	for i, rep := range c.Reps {
		values[i] = rep.Value
	}
	return values
}
