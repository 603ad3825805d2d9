package predgo_test

import (
	"bytes"
	"context"
	"testing"

	"github.com/hupe1980/predgo"
	"github.com/hupe1980/predgo/blobstore"
	"github.com/hupe1980/predgo/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSnapshotRoundTrip(t *testing.T) {
	values := testutil.NewRNG(11).SortedSet(1000, 500)

	for _, compression := range []predgo.Compression{
		predgo.CompressionNone,
		predgo.CompressionLZ4,
		predgo.CompressionZSTD,
	} {
		yt, err := predgo.New(values, predgo.WithCompression(compression))
		require.NoError(t, err)

		var buf bytes.Buffer
		require.NoError(t, yt.WriteSnapshot(&buf))

		loaded, err := predgo.ReadSnapshot(bytes.NewReader(buf.Bytes()))
		require.NoError(t, err)

		assert.Equal(t, yt.Stats(), loaded.Stats())
		for limit := values[0]; limit < values[len(values)-1]; limit += 97 {
			want, err := yt.Predecessor(limit)
			require.NoError(t, err)
			got, err := loaded.Predecessor(limit)
			require.NoError(t, err)
			require.Equal(t, want, got, "limit=%d", limit)
		}
	}
}

func TestSnapshotCorruption(t *testing.T) {
	yt, err := predgo.New([]uint64{1, 2, 3, 4, 5})
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, yt.WriteSnapshot(&buf))
	data := buf.Bytes()

	t.Run("BadMagic", func(t *testing.T) {
		bad := append([]byte(nil), data...)
		bad[0] ^= 0xff
		_, err := predgo.ReadSnapshot(bytes.NewReader(bad))
		assert.ErrorIs(t, err, predgo.ErrInvalidMagic)
	})

	t.Run("BadVersion", func(t *testing.T) {
		bad := append([]byte(nil), data...)
		bad[4] ^= 0xff
		_, err := predgo.ReadSnapshot(bytes.NewReader(bad))
		assert.ErrorIs(t, err, predgo.ErrInvalidVersion)
	})

	t.Run("FlippedPayloadBit", func(t *testing.T) {
		bad := append([]byte(nil), data...)
		bad[len(bad)-1] ^= 0xff
		_, err := predgo.ReadSnapshot(bytes.NewReader(bad))

		var mismatch *predgo.ChecksumMismatchError
		assert.ErrorAs(t, err, &mismatch)
	})

	t.Run("Truncated", func(t *testing.T) {
		_, err := predgo.ReadSnapshot(bytes.NewReader(data[:len(data)-4]))
		assert.Error(t, err)
	})
}

func TestSaveLoadStore(t *testing.T) {
	ctx := context.Background()
	values := testutil.NewRNG(3).SortedSet(200, 100)

	yt, err := predgo.New(values)
	require.NoError(t, err)

	t.Run("Memory", func(t *testing.T) {
		store := blobstore.NewMemoryStore()
		require.NoError(t, yt.SaveSnapshot(ctx, store, "keys.snap"))

		loaded, err := predgo.LoadSnapshot(ctx, store, "keys.snap")
		require.NoError(t, err)
		assert.Equal(t, yt.Stats(), loaded.Stats())
	})

	t.Run("Local", func(t *testing.T) {
		store, err := blobstore.NewLocalStore(t.TempDir())
		require.NoError(t, err)
		require.NoError(t, yt.SaveSnapshot(ctx, store, "keys.snap"))

		loaded, err := predgo.LoadSnapshot(ctx, store, "keys.snap")
		require.NoError(t, err)
		assert.Equal(t, yt.Stats(), loaded.Stats())
	})

	t.Run("Missing", func(t *testing.T) {
		store := blobstore.NewMemoryStore()
		_, err := predgo.LoadSnapshot(ctx, store, "nope.snap")
		assert.ErrorIs(t, err, blobstore.ErrNotFound)
	})
}
