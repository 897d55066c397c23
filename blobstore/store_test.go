package blobstore

import (
	"context"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func roundTrip(t *testing.T, store BlobStore) {
	t.Helper()
	ctx := context.Background()

	require.NoError(t, store.Put(ctx, "models/a.model", []byte("alpha")))
	require.NoError(t, store.Put(ctx, "models/b.model", []byte("beta")))
	require.NoError(t, store.Put(ctx, "other/c.model", []byte("gamma")))

	b, err := store.Open(ctx, "models/a.model")
	require.NoError(t, err)
	assert.Equal(t, int64(5), b.Size())

	data, err := ReadAll(ctx, b)
	require.NoError(t, err)
	assert.Equal(t, []byte("alpha"), data)
	require.NoError(t, b.Close())

	names, err := store.List(ctx, "models/")
	require.NoError(t, err)
	assert.Equal(t, []string{"models/a.model", "models/b.model"}, names)

	require.NoError(t, store.Delete(ctx, "models/a.model"))
	_, err = store.Open(ctx, "models/a.model")
	assert.ErrorIs(t, err, ErrNotFound)

	// Deleting a missing blob is not an error.
	assert.NoError(t, store.Delete(ctx, "models/a.model"))
}

func TestMemoryStore(t *testing.T) {
	roundTrip(t, NewMemoryStore())
}

func TestLocalStore(t *testing.T) {
	roundTrip(t, NewLocalStore(t.TempDir()))
}

func TestWritableBlob(t *testing.T) {
	ctx := context.Background()

	for _, tt := range []struct {
		name  string
		store BlobStore
	}{
		{"Memory", NewMemoryStore()},
		{"Local", NewLocalStore(t.TempDir())},
	} {
		t.Run(tt.name, func(t *testing.T) {
			w, err := tt.store.Create(ctx, "streamed.model")
			require.NoError(t, err)
			_, err = w.Write([]byte("part1"))
			require.NoError(t, err)
			_, err = w.Write([]byte("part2"))
			require.NoError(t, err)
			require.NoError(t, w.Close())

			b, err := tt.store.Open(ctx, "streamed.model")
			require.NoError(t, err)
			data, err := ReadAll(ctx, b)
			require.NoError(t, err)
			assert.Equal(t, []byte("part1part2"), data)
			require.NoError(t, b.Close())
		})
	}
}

// countingStore counts Open calls against the backing store.
type countingStore struct {
	BlobStore
	opens atomic.Int64
}

func (c *countingStore) Open(ctx context.Context, name string) (Blob, error) {
	c.opens.Add(1)
	return c.BlobStore.Open(ctx, name)
}

func TestCachingStore(t *testing.T) {
	ctx := context.Background()

	inner := &countingStore{BlobStore: NewMemoryStore()}
	store := NewCachingStore(inner)

	require.NoError(t, store.Put(ctx, "m.model", []byte("v1")))

	for i := 0; i < 5; i++ {
		b, err := store.Open(ctx, "m.model")
		require.NoError(t, err)
		data, err := ReadAll(ctx, b)
		require.NoError(t, err)
		assert.Equal(t, []byte("v1"), data)
		require.NoError(t, b.Close())
	}
	assert.Equal(t, int64(1), inner.opens.Load())

	// Overwriting invalidates the cached copy.
	require.NoError(t, store.Put(ctx, "m.model", []byte("v2")))
	b, err := store.Open(ctx, "m.model")
	require.NoError(t, err)
	data, err := ReadAll(ctx, b)
	require.NoError(t, err)
	assert.Equal(t, []byte("v2"), data)
	require.NoError(t, b.Close())
	assert.Equal(t, int64(2), inner.opens.Load())
}

func TestCachingStorePrefetch(t *testing.T) {
	ctx := context.Background()

	inner := &countingStore{BlobStore: NewMemoryStore()}
	store := NewCachingStore(inner)

	require.NoError(t, store.Put(ctx, "a", []byte("1")))
	require.NoError(t, store.Put(ctx, "b", []byte("2")))

	require.NoError(t, store.Prefetch(ctx, "a", "b"))
	opens := inner.opens.Load()

	// Subsequent opens are served from cache.
	for _, name := range []string{"a", "b"} {
		b, err := store.Open(ctx, name)
		require.NoError(t, err)
		require.NoError(t, b.Close())
	}
	assert.Equal(t, opens, inner.opens.Load())
}

func TestCachingStoreMiss(t *testing.T) {
	ctx := context.Background()
	store := NewCachingStore(NewMemoryStore())

	_, err := store.Open(ctx, "missing")
	assert.ErrorIs(t, err, ErrNotFound)
}
