package testutil

import (
	"math/rand"
	"sync"
)

// RNG struct encapsulates the random number generator and seed.
// It is thread-safe.
type RNG struct {
	rand *rand.Rand
	seed int64
	mu   sync.Mutex
}

// NewRNG creates a new RNG instance with the specified seed.
func NewRNG(seed int64) *RNG {
	return &RNG{
		rand: rand.New(rand.NewSource(seed)),
		seed: seed,
	}
}

// Reset resets the RNG to its initial seed.
func (r *RNG) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rand.Seed(r.seed)
}

// Seed returns the initial seed.
func (r *RNG) Seed() int64 {
	return r.seed
}

// Intn returns a non-negative pseudo-random number in [0,n).
func (r *RNG) Intn(n int) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rand.Intn(n)
}

// Uint64 returns a pseudo-random uint64.
func (r *RNG) Uint64() uint64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rand.Uint64()
}

// SortedSet generates n strictly increasing uint64 values with gaps in
// [1, maxGap]. Locks only once per call.
func (r *RNG) SortedSet(n int, maxGap uint64) []uint64 {
	r.mu.Lock()
	defer r.mu.Unlock()

	values := make([]uint64, n)
	cur := uint64(0)
	for i := range values {
		cur += 1 + uint64(r.rand.Int63n(int64(maxGap)))
		values[i] = cur
	}
	return values
}

// BruteForcePredecessor is the reference answer for predecessor queries:
// the largest value <= limit, linearly scanned.
func BruteForcePredecessor(values []uint64, limit uint64) (uint64, bool) {
	var best uint64
	found := false
	for _, v := range values {
		if v <= limit {
			best = v
			found = true
		}
	}
	return best, found
}
