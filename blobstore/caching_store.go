package blobstore

import (
	"context"
	"sync"

	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/singleflight"
)

// CachingStore wraps a BlobStore and caches whole artifacts in memory.
// Model artifacts are small and immutable once written, so caching whole
// blobs is cheaper than block-level bookkeeping. Concurrent opens of the
// same artifact are deduplicated, hitting the backing store once.
type CachingStore struct {
	inner BlobStore

	mu      sync.RWMutex
	entries map[string][]byte
	group   singleflight.Group
}

// NewCachingStore creates a new CachingStore around inner.
func NewCachingStore(inner BlobStore) *CachingStore {
	return &CachingStore{
		inner:   inner,
		entries: make(map[string][]byte),
	}
}

// Open returns a read handle served from cache, fetching the artifact
// from the backing store on first access.
func (s *CachingStore) Open(ctx context.Context, name string) (Blob, error) {
	s.mu.RLock()
	data, ok := s.entries[name]
	s.mu.RUnlock()
	if ok {
		return &memoryBlob{data: data}, nil
	}

	v, err, _ := s.group.Do(name, func() (any, error) {
		b, err := s.inner.Open(ctx, name)
		if err != nil {
			return nil, err
		}
		defer func() { _ = b.Close() }()

		data, err := ReadAll(ctx, b)
		if err != nil {
			return nil, err
		}

		s.mu.Lock()
		s.entries[name] = data
		s.mu.Unlock()
		return data, nil
	})
	if err != nil {
		return nil, err
	}
	return &memoryBlob{data: v.([]byte)}, nil
}

// Create passes through to the backing store and drops the cache entry
// when the new artifact becomes visible.
func (s *CachingStore) Create(ctx context.Context, name string) (WritableBlob, error) {
	w, err := s.inner.Create(ctx, name)
	if err != nil {
		return nil, err
	}
	return &invalidatingBlob{WritableBlob: w, store: s, name: name}, nil
}

// Put writes through and invalidates.
func (s *CachingStore) Put(ctx context.Context, name string, data []byte) error {
	s.invalidate(name)
	return s.inner.Put(ctx, name, data)
}

// Delete removes the blob and invalidates.
func (s *CachingStore) Delete(ctx context.Context, name string) error {
	s.invalidate(name)
	return s.inner.Delete(ctx, name)
}

// List passes through to the backing store.
func (s *CachingStore) List(ctx context.Context, prefix string) ([]string, error) {
	return s.inner.List(ctx, prefix)
}

// Prefetch warms the cache for the given artifacts concurrently.
func (s *CachingStore) Prefetch(ctx context.Context, names ...string) error {
	g, ctx := errgroup.WithContext(ctx)
	for _, name := range names {
		g.Go(func() error {
			b, err := s.Open(ctx, name)
			if err != nil {
				return err
			}
			return b.Close()
		})
	}
	return g.Wait()
}

func (s *CachingStore) invalidate(name string) {
	s.mu.Lock()
	delete(s.entries, name)
	s.mu.Unlock()
}

type invalidatingBlob struct {
	WritableBlob
	store *CachingStore
	name  string
}

func (b *invalidatingBlob) Close() error {
	b.store.invalidate(b.name)
	return b.WritableBlob.Close()
}
