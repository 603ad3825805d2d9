package predgo

import (
	"errors"
	"math/bits"
	"time"

	"github.com/RoaringBitmap/roaring/v2/roaring64"
	"github.com/hupe1980/predgo/internal/chain"
	"github.com/hupe1980/predgo/internal/trie"
)

// YTrie is a static predecessor structure over a set of uint64 values.
//
// It is built once by New and immutable afterwards; all query methods are
// safe for concurrent use.
type YTrie struct {
	chain   *chain.Chain
	index   *trie.Index
	members *roaring64.Bitmap

	min, max uint64
	size     int
	depth    int

	logger      *Logger
	metrics     MetricsCollector
	compression Compression
}

// Stats describes a built structure.
type Stats struct {
	// NumValues is the number of stored values.
	NumValues int
	// NumRepresentatives is the length of the representative chain,
	// ceil(NumValues / Depth).
	NumRepresentatives int
	// NumTrieNodes is the size of the trie node arena.
	NumTrieNodes int
	// Depth is the number of bucket positions per representative and the
	// bit depth of the trie.
	Depth int
}

// New builds a predecessor structure from strictly increasing values.
//
// The input must be non-empty and strictly increasing; duplicates are
// rejected with *ErrNotSorted. The slice is not retained.
func New(values []uint64, optFns ...Option) (*YTrie, error) {
	o := applyOptions(optFns)
	start := time.Now()

	t, err := build(values, o)
	o.metrics.RecordBuild(time.Since(start), err)
	o.logger.LogBuild(len(values), depthOf(values), time.Since(start), err)
	if err != nil {
		return nil, err
	}
	return t, nil
}

func build(values []uint64, o options) (*YTrie, error) {
	if len(values) == 0 {
		return nil, ErrEmptyInput
	}
	for i := 1; i < len(values); i++ {
		if values[i] <= values[i-1] {
			return nil, &ErrNotSorted{Index: i, Prev: values[i-1], Value: values[i]}
		}
	}

	depth := depthOf(values)
	c := chain.Build(values, depth, o.bucketBuilder)

	members := roaring64.New()
	members.AddMany(values)

	return &YTrie{
		chain:       c,
		index:       trie.Build(c),
		members:     members,
		min:         values[0],
		max:         values[len(values)-1],
		size:        len(values),
		depth:       depth,
		logger:      o.logger,
		metrics:     o.metrics,
		compression: o.compression,
	}, nil
}

// depthOf returns floor(log2(max)), the number of significant bits of the
// largest value. Universes below 2 are clamped to depth 1 so that bucket
// sampling and the trie stay well formed.
func depthOf(values []uint64) int {
	if len(values) == 0 {
		return 1
	}
	d := bits.Len64(values[len(values)-1]) - 1
	if d < 1 {
		d = 1
	}
	return d
}

// Predecessor returns the largest stored value <= limit.
//
// If limit lies below the smallest stored value, ErrNoPredecessor is
// returned.
func (t *YTrie) Predecessor(limit uint64) (uint64, error) {
	start := time.Now()
	v, err := t.predecessor(limit)
	t.metrics.RecordQuery(time.Since(start), err)
	t.logger.LogQuery(limit, v, err)
	return v, err
}

func (t *YTrie) predecessor(limit uint64) (uint64, error) {
	if limit < t.min {
		return 0, ErrNoPredecessor
	}
	// The trie compares only the low depth+1 bits of the limit; clamping at
	// max keeps wider limits exact.
	if limit >= t.max {
		return t.max, nil
	}
	v, err := t.index.Predecessor(limit)
	if err != nil {
		if errors.Is(err, trie.ErrInconsistent) {
			return 0, ErrInternalInconsistency
		}
		return 0, err
	}
	return v, nil
}

// Contains reports whether v is one of the stored values.
func (t *YTrie) Contains(v uint64) bool {
	return t.members.Contains(v)
}

// Rank returns the number of stored values <= v.
func (t *YTrie) Rank(v uint64) uint64 {
	return t.members.Rank(v)
}

// Min returns the smallest stored value.
func (t *YTrie) Min() uint64 { return t.min }

// Max returns the largest stored value.
func (t *YTrie) Max() uint64 { return t.max }

// Len returns the number of stored values.
func (t *YTrie) Len() int { return t.size }

// Depth returns the bit depth of the trie, floor(log2(Max())) clamped to a
// minimum of 1.
func (t *YTrie) Depth() int { return t.depth }

// Stats returns structural statistics.
func (t *YTrie) Stats() Stats {
	return Stats{
		NumValues:          t.size,
		NumRepresentatives: t.chain.Len(),
		NumTrieNodes:       t.index.Len(),
		Depth:              t.depth,
	}
}
