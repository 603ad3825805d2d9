// Package block compresses snapshot payloads as self-describing blocks.
//
// Block layout: [UncompressedSize uint32][CompressedSize uint32][Data...].
// CompressedSize == 0 marks an uncompressed block; this is also the stored
// form whenever compression does not shrink the payload.
package block

import (
	"encoding/binary"
	"errors"
	"fmt"
	"sync"

	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"
)

// Type selects the compression algorithm.
type Type uint8

const (
	// TypeNone stores payloads uncompressed.
	TypeNone Type = 0
	// TypeLZ4 uses LZ4 block compression (fast).
	TypeLZ4 Type = 1
	// TypeZSTD uses ZSTD block compression (better ratio).
	TypeZSTD Type = 2
)

// String returns the stable name of the compression type.
func (t Type) String() string {
	switch t {
	case TypeNone:
		return "none"
	case TypeLZ4:
		return "lz4"
	case TypeZSTD:
		return "zstd"
	default:
		return "unknown"
	}
}

// ErrUnknownType is returned for compression types this build cannot handle.
var ErrUnknownType = errors.New("block: unknown compression type")

const headerSize = 8

var (
	zstdEncoderPool = sync.Pool{
		New: func() any {
			enc, _ := zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedDefault))
			return enc
		},
	}
	zstdDecoderPool = sync.Pool{
		New: func() any {
			dec, _ := zstd.NewReader(nil)
			return dec
		},
	}
)

// Compress encodes data as one block of the given type.
func Compress(data []byte, typ Type) ([]byte, error) {
	switch typ {
	case TypeNone:
		return raw(data), nil
	case TypeLZ4:
		buf := make([]byte, headerSize+lz4.CompressBlockBound(len(data)))
		n, err := lz4.CompressBlock(data, buf[headerSize:], nil)
		if err != nil {
			return nil, fmt.Errorf("block: lz4 compress: %w", err)
		}
		if n == 0 || n >= len(data) {
			// Incompressible, store as-is.
			return raw(data), nil
		}
		writeHeader(buf, uint32(len(data)), uint32(n))
		return buf[:headerSize+n], nil
	case TypeZSTD:
		enc := zstdEncoderPool.Get().(*zstd.Encoder)
		defer zstdEncoderPool.Put(enc)

		compressed := enc.EncodeAll(data, nil)
		if len(compressed) >= len(data) {
			return raw(data), nil
		}
		buf := make([]byte, headerSize+len(compressed))
		writeHeader(buf, uint32(len(data)), uint32(len(compressed)))
		copy(buf[headerSize:], compressed)
		return buf, nil
	default:
		return nil, ErrUnknownType
	}
}

// Decompress decodes one block produced by Compress.
func Decompress(data []byte, typ Type) ([]byte, error) {
	if len(data) < headerSize {
		return nil, errors.New("block: truncated header")
	}
	uncompressedSize := binary.LittleEndian.Uint32(data[0:4])
	compressedSize := binary.LittleEndian.Uint32(data[4:8])
	payload := data[headerSize:]

	if compressedSize == 0 {
		if uint32(len(payload)) != uncompressedSize {
			return nil, errors.New("block: size mismatch")
		}
		out := make([]byte, len(payload))
		copy(out, payload)
		return out, nil
	}
	if uint32(len(payload)) != compressedSize {
		return nil, errors.New("block: size mismatch")
	}

	switch typ {
	case TypeLZ4:
		out := make([]byte, uncompressedSize)
		n, err := lz4.UncompressBlock(payload, out)
		if err != nil {
			return nil, fmt.Errorf("block: lz4 decompress: %w", err)
		}
		return out[:n], nil
	case TypeZSTD:
		dec := zstdDecoderPool.Get().(*zstd.Decoder)
		defer zstdDecoderPool.Put(dec)

		out, err := dec.DecodeAll(payload, make([]byte, 0, uncompressedSize))
		if err != nil {
			return nil, fmt.Errorf("block: zstd decompress: %w", err)
		}
		return out, nil
	case TypeNone:
		return nil, errors.New("block: compressed payload with type none")
	default:
		return nil, ErrUnknownType
	}
}

func raw(data []byte) []byte {
	buf := make([]byte, headerSize+len(data))
	writeHeader(buf, uint32(len(data)), 0)
	copy(buf[headerSize:], data)
	return buf
}

func writeHeader(buf []byte, uncompressedSize, compressedSize uint32) {
	binary.LittleEndian.PutUint32(buf[0:4], uncompressedSize)
	binary.LittleEndian.PutUint32(buf[4:8], compressedSize)
}
