package trie

import (
	"math/bits"
	"testing"

	"github.com/hupe1980/predgo/bucket"
	"github.com/hupe1980/predgo/internal/chain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func depthFor(values []uint64) int {
	d := bits.Len64(values[len(values)-1]) - 1
	if d < 1 {
		d = 1
	}
	return d
}

func buildIndex(t *testing.T, values []uint64) *Index {
	t.Helper()
	c := chain.Build(values, depthFor(values), bucket.NewSortedSlice)
	return Build(c)
}

// bruteForce is the reference predecessor.
func bruteForce(values []uint64, limit uint64) uint64 {
	best := values[0]
	for _, v := range values {
		if v <= limit {
			best = v
		}
	}
	return best
}

func TestPredecessor(t *testing.T) {
	t.Run("OddValues", func(t *testing.T) {
		values := []uint64{1, 3, 5, 7, 9, 11, 13, 15}
		idx := buildIndex(t, values)

		got, err := idx.Predecessor(10)
		require.NoError(t, err)
		assert.Equal(t, uint64(9), got)
	})

	t.Run("SmallDepth", func(t *testing.T) {
		idx := buildIndex(t, []uint64{2, 4, 6})

		got, err := idx.Predecessor(5)
		require.NoError(t, err)
		assert.Equal(t, uint64(4), got)
	})

	t.Run("IrregularTail", func(t *testing.T) {
		values := make([]uint64, 17)
		for i := range values {
			values[i] = uint64(i + 1)
		}
		idx := buildIndex(t, values)

		for limit := uint64(1); limit <= 17; limit++ {
			got, err := idx.Predecessor(limit)
			require.NoError(t, err)
			assert.Equal(t, limit, got, "limit=%d", limit)
		}
	})

	t.Run("AllLimitsInRange", func(t *testing.T) {
		values := []uint64{3, 7, 12, 19, 20, 31, 44, 45, 60, 61, 62, 90, 121}
		idx := buildIndex(t, values)

		for limit := values[0]; limit < values[len(values)-1]; limit++ {
			got, err := idx.Predecessor(limit)
			require.NoError(t, err)
			assert.Equal(t, bruteForce(values, limit), got, "limit=%d", limit)
		}
	})
}

func TestLeafPaths(t *testing.T) {
	// Every representative value, read as a depth+1 bit string, must lead to
	// a leaf wrapping exactly that representative.
	for _, values := range [][]uint64{
		{1, 3, 5, 7, 9, 11, 13, 15},
		{2, 4, 6},
		{100},
		{3, 7, 12, 19, 20, 31, 44, 45, 60, 61, 62, 90, 121},
	} {
		c := chain.Build(values, depthFor(values), bucket.NewSortedSlice)
		idx := Build(c)

		for ri, rep := range c.Reps {
			cur := int32(0)
			for k := idx.depth; k >= 0; k-- {
				next := idx.nodes[cur].children[(rep.Value>>uint(k))&1]
				require.NotEqual(t, none, next, "rep %d: path truncated at bit %d", ri, k)
				cur = next
			}
			leaf := idx.nodes[cur]
			require.Equal(t, int32(ri), leaf.leaf, "rep %d: wrong leaf", ri)
		}
	}
}

func TestBuildDeterministic(t *testing.T) {
	values := []uint64{3, 7, 12, 19, 20, 31, 44, 45, 60, 61, 62, 90, 121}

	a := buildIndex(t, values)
	b := buildIndex(t, values)

	require.Equal(t, a.Len(), b.Len())
	assert.Equal(t, a.nodes, b.nodes)
}

func TestSharedValueBuffer(t *testing.T) {
	// The build strips bits from its own copy of the representative values;
	// the chain arena must stay untouched.
	values := []uint64{1, 3, 5, 7, 9, 11, 13, 15}
	c := chain.Build(values, depthFor(values), bucket.NewSortedSlice)
	Build(c)

	assert.Equal(t, []uint64{5, 11, 15}, c.Values())
}
