// Package trie implements the compressed bit trie over the representative
// chain of a predecessor structure.
//
// The trie has one level per bit of the representative values, depth+1 in
// total since the largest value occupies depth+1 bits. It is stored as a node
// arena with explicit child indices rather than a prefix-string map: a query
// descends from the root consuming the limit's bits most-significant-first
// and stops at the deepest existing node, which is exactly the longest stored
// prefix of the limit's bit string.
package trie

import (
	"errors"

	"github.com/hupe1980/predgo/internal/chain"
)

// ErrInconsistent reports an inner node carrying neither a left-side nor a
// right-side representative. It indicates a construction bug and is mapped to
// a public error by the caller.
var ErrInconsistent = errors.New("trie: inner node without representatives")

const none int32 = -1

// node is one trie node. Exactly one of leaf or {leftMax, rightMin} is
// meaningful: leaves wrap a single representative, inner nodes carry the
// rightmost representative below the split boundary and the leftmost at or
// above it. All fields are arena indices.
type node struct {
	children [2]int32
	leaf     int32
	leftMax  int32
	rightMin int32
}

// Index is the immutable trie. It shares the representative arena with the
// chain that built it.
type Index struct {
	nodes []node
	chain *chain.Chain
	depth int
}

// Build constructs the trie for the given chain.
//
// The recursion partitions the representatives by the value of the current
// bit. A single mutable copy of the representative values is threaded through
// the whole descent: whenever a value is confirmed to lie at or above the
// split boundary, that boundary is subtracted in place so that deeper levels
// compare only the remaining low bits. The subtraction applies at most once
// per level per value and never underflows.
func Build(c *chain.Chain) *Index {
	t := &Index{
		nodes: make([]node, 0, c.Len()*(c.Depth+2)),
		chain: c,
		depth: c.Depth,
	}
	vals := c.Values()
	t.build(vals, c.Depth, 0, int32(c.Len()-1), 0)
	return t
}

// build adds the subtree covering chain[left..right] and returns its arena
// index. bit is the last bit of the path leading here; it selects the
// surviving end of the range once the recursion bottoms out.
func (t *Index) build(vals []uint64, exponent int, left, right int32, bit int) int32 {
	if exponent == -1 {
		// Leaf level. The range has collapsed to a single representative;
		// the path's last bit tells which end survived the final split.
		rep := left
		if bit == 1 {
			rep = right
		}
		return t.push(node{children: [2]int32{none, none}, leaf: rep, leftMax: none, rightMin: none})
	}

	split := uint64(1) << exponent
	splitIndex := right + 1
	leftMax, rightMin := none, none
	found := false
	for i := left; i <= right; i++ {
		if vals[i] >= split {
			if !found {
				splitIndex = i
				found = true
				if i != left {
					leftMax = i - 1
				}
				rightMin = i
			}
			vals[i] -= split
		}
	}
	if !found {
		// Everything stays on the left of this boundary.
		leftMax = right
	}

	idx := t.push(node{children: [2]int32{none, none}, leaf: none, leftMax: leftMax, rightMin: rightMin})
	if splitIndex > left {
		child := t.build(vals, exponent-1, left, splitIndex-1, 0)
		t.nodes[idx].children[0] = child
	}
	if splitIndex <= right {
		child := t.build(vals, exponent-1, splitIndex, right, 1)
		t.nodes[idx].children[1] = child
	}
	return idx
}

func (t *Index) push(n node) int32 {
	t.nodes = append(t.nodes, n)
	return int32(len(t.nodes) - 1)
}

// descend follows limit's low depth+1 bits from the root and returns the
// deepest existing node on that path.
func (t *Index) descend(limit uint64) node {
	cur := int32(0)
	for k := t.depth; k >= 0; k-- {
		next := t.nodes[cur].children[(limit>>uint(k))&1]
		if next == none {
			break
		}
		cur = next
	}
	return t.nodes[cur]
}

// Predecessor returns the largest stored value <= limit.
//
// The caller guarantees min <= limit < max over the original input; both ends
// are short-circuited by the facade before the trie is consulted.
func (t *Index) Predecessor(limit uint64) (uint64, error) {
	n := t.descend(limit)
	reps := t.chain.Reps

	if n.leaf != none {
		// Exact hit on a representative's full bit path.
		return reps[n.leaf].Value, nil
	}
	if n.leftMax != none {
		lm := reps[n.leftMax]
		if lm.Next == chain.None {
			return lm.Value, nil
		}
		// The answer lies in the successor's bucket, which spans
		// (leftMax, next]; leftMax itself is the fallback.
		return reps[lm.Next].Bucket.Predecessor(lm.Value, limit), nil
	}
	if n.rightMin != none {
		rm := reps[n.rightMin]
		var fallback uint64
		if rm.Prev != chain.None {
			fallback = reps[rm.Prev].Value
		}
		return rm.Bucket.Predecessor(fallback, limit), nil
	}
	return 0, ErrInconsistent
}

// Len returns the number of trie nodes.
func (t *Index) Len() int {
	return len(t.nodes)
}
