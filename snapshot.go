package predgo

import (
	"bytes"
	"context"
	"encoding/binary"
	"errors"
	"fmt"
	"hash/crc32"
	"io"
	"time"

	"github.com/RoaringBitmap/roaring/v2/roaring64"
	"github.com/hupe1980/predgo/blobstore"
	"github.com/hupe1980/predgo/internal/block"
)

const (
	// snapshotMagic identifies predgo snapshot files (ASCII: "PRED").
	snapshotMagic = 0x50524544
	// snapshotVersion is the current snapshot format version (v1.0.0).
	snapshotVersion = 0x00010000
)

var (
	// ErrInvalidMagic is returned when a snapshot does not start with the
	// predgo magic number.
	ErrInvalidMagic = errors.New("invalid magic number")
	// ErrInvalidVersion is returned for snapshot versions this build cannot
	// read.
	ErrInvalidVersion = errors.New("unsupported snapshot version")
)

// ChecksumMismatchError is returned when snapshot integrity verification
// fails.
type ChecksumMismatchError struct {
	Expected uint32
	Actual   uint32
}

func (e *ChecksumMismatchError) Error() string {
	return fmt.Sprintf("checksum mismatch: expected 0x%08x, got 0x%08x", e.Expected, e.Actual)
}

// snapshotHeader is the fixed-size header at the start of every snapshot.
type snapshotHeader struct {
	Magic       uint32
	Version     uint32
	Compression uint8
	Padding     [3]byte
	Count       uint64
	PayloadLen  uint64
	Checksum    uint32 // CRC32 (IEEE) of the payload block
}

// WriteSnapshot writes a self-describing snapshot of the value set.
//
// The payload is the portable Roaring serialization of the values, block
// compressed per the WithCompression option. Loading rebuilds the structure
// deterministically, so nothing beyond the value set is persisted.
func (t *YTrie) WriteSnapshot(w io.Writer) error {
	var raw bytes.Buffer
	if _, err := t.members.WriteTo(&raw); err != nil {
		return fmt.Errorf("serialize values: %w", err)
	}

	payload, err := block.Compress(raw.Bytes(), block.Type(t.compression))
	if err != nil {
		return fmt.Errorf("compress payload: %w", err)
	}

	header := snapshotHeader{
		Magic:       snapshotMagic,
		Version:     snapshotVersion,
		Compression: uint8(t.compression),
		Count:       uint64(t.size),
		PayloadLen:  uint64(len(payload)),
		Checksum:    crc32.ChecksumIEEE(payload),
	}
	if err := binary.Write(w, binary.LittleEndian, header); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	if _, err := w.Write(payload); err != nil {
		return fmt.Errorf("write payload: %w", err)
	}
	return nil
}

// ReadSnapshot rebuilds a structure from a snapshot written by WriteSnapshot.
// Options apply to the rebuilt structure.
func ReadSnapshot(r io.Reader, optFns ...Option) (*YTrie, error) {
	var header snapshotHeader
	if err := binary.Read(r, binary.LittleEndian, &header); err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}
	if header.Magic != snapshotMagic {
		return nil, ErrInvalidMagic
	}
	if header.Version != snapshotVersion {
		return nil, ErrInvalidVersion
	}

	payload := make([]byte, header.PayloadLen)
	if _, err := io.ReadFull(r, payload); err != nil {
		return nil, fmt.Errorf("read payload: %w", err)
	}
	if actual := crc32.ChecksumIEEE(payload); actual != header.Checksum {
		return nil, &ChecksumMismatchError{Expected: header.Checksum, Actual: actual}
	}

	raw, err := block.Decompress(payload, block.Type(header.Compression))
	if err != nil {
		return nil, fmt.Errorf("decompress payload: %w", err)
	}

	members := roaring64.New()
	if _, err := members.ReadFrom(bytes.NewReader(raw)); err != nil {
		return nil, fmt.Errorf("deserialize values: %w", err)
	}
	if members.GetCardinality() != header.Count {
		return nil, fmt.Errorf("value count mismatch: header says %d, payload has %d",
			header.Count, members.GetCardinality())
	}

	return New(members.ToArray(), optFns...)
}

// SaveSnapshot writes a snapshot to a blob store.
func (t *YTrie) SaveSnapshot(ctx context.Context, store blobstore.Store, name string) error {
	start := time.Now()
	err := t.saveSnapshot(ctx, store, name)
	t.metrics.RecordSnapshotSave(time.Since(start), err)
	t.logger.LogSnapshot("save", name, err)
	return err
}

func (t *YTrie) saveSnapshot(ctx context.Context, store blobstore.Store, name string) error {
	var buf bytes.Buffer
	if err := t.WriteSnapshot(&buf); err != nil {
		return err
	}
	return store.Put(ctx, name, buf.Bytes())
}

// LoadSnapshot reads a snapshot from a blob store and rebuilds the
// structure. Options apply to the rebuilt structure.
func LoadSnapshot(ctx context.Context, store blobstore.Store, name string, optFns ...Option) (*YTrie, error) {
	start := time.Now()

	data, err := store.Get(ctx, name)
	if err != nil {
		return nil, err
	}
	t, err := ReadSnapshot(bytes.NewReader(data), optFns...)
	if err != nil {
		return nil, err
	}

	t.metrics.RecordSnapshotLoad(time.Since(start), nil)
	t.logger.LogSnapshot("load", name, nil)
	return t, nil
}
