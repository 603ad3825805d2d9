package blobstore

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testStore(t *testing.T, store Store) {
	t.Helper()
	ctx := context.Background()

	t.Run("PutGet", func(t *testing.T) {
		require.NoError(t, store.Put(ctx, "a/one.snap", []byte("one")))
		require.NoError(t, store.Put(ctx, "a/two.snap", []byte("two")))

		data, err := store.Get(ctx, "a/one.snap")
		require.NoError(t, err)
		assert.Equal(t, []byte("one"), data)
	})

	t.Run("Overwrite", func(t *testing.T) {
		require.NoError(t, store.Put(ctx, "a/one.snap", []byte("replaced")))

		data, err := store.Get(ctx, "a/one.snap")
		require.NoError(t, err)
		assert.Equal(t, []byte("replaced"), data)
	})

	t.Run("GetMissing", func(t *testing.T) {
		_, err := store.Get(ctx, "missing.snap")
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("List", func(t *testing.T) {
		names, err := store.List(ctx, "a/")
		require.NoError(t, err)
		assert.ElementsMatch(t, []string{"a/one.snap", "a/two.snap"}, names)
	})

	t.Run("Delete", func(t *testing.T) {
		require.NoError(t, store.Delete(ctx, "a/two.snap"))
		require.NoError(t, store.Delete(ctx, "a/two.snap")) // idempotent

		_, err := store.Get(ctx, "a/two.snap")
		assert.ErrorIs(t, err, ErrNotFound)
	})
}

func TestMemoryStore(t *testing.T) {
	testStore(t, NewMemoryStore())
}

func TestLocalStore(t *testing.T) {
	store, err := NewLocalStore(t.TempDir())
	require.NoError(t, err)

	testStore(t, store)
}

func TestMemoryStoreIsolation(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	data := []byte{1, 2, 3}
	require.NoError(t, store.Put(ctx, "x", data))
	data[0] = 99

	got, err := store.Get(ctx, "x")
	require.NoError(t, err)
	assert.Equal(t, []byte{1, 2, 3}, got)

	got[1] = 99
	again, err := store.Get(ctx, "x")
	require.NoError(t, err)
	assert.Equal(t, []byte{1, 2, 3}, again)
}
