// Package predgo provides a static predecessor search structure for Go.
//
// Predgo answers "largest stored key <= limit" queries over a fixed set of
// strictly increasing uint64 values in O(log u) time, where u is the size of
// the key universe. It combines an x-fast-trie style bit trie over sampled
// representative values with a bounded search structure per bucket of
// consecutive values (the classic y-fast micro/macro decomposition).
//
// The structure is built once and never mutated; after construction it may be
// queried from any number of goroutines without synchronization.
//
// # Quick Start
//
//	yt, err := predgo.New([]uint64{1, 3, 5, 7, 9, 11, 13, 15})
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	v, err := yt.Predecessor(10) // v == 9
//
// # Snapshots
//
// A built structure can be persisted as a self-describing compressed snapshot
// and rebuilt deterministically:
//
//	store, _ := blobstore.NewLocalStore("./data")
//	_ = yt.SaveSnapshot(ctx, store, "keys.snap")
//	yt2, _ := predgo.LoadSnapshot(ctx, store, "keys.snap")
//
// Snapshots can live in memory, on the local filesystem, or in any
// S3-compatible object store via the blobstore/minio subpackage.
//
// # Key Features
//
//   - O(log u) predecessor queries over static uint64 sets
//   - Membership and rank queries backed by a Roaring bitmap
//   - Parallel batch queries with context cancellation
//   - Compressed snapshots (LZ4/ZSTD) with CRC32 integrity checks
//   - Pluggable per-bucket search structures
package predgo
