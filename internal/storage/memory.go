package storage

import (
	"context"
	"sync"
)

// MemoryStore is an in-process ArtifactStore used by tests and local runs
// without object storage.
type MemoryStore struct {
	mu             sync.RWMutex
	objects        map[string][]byte
	bucket         string
	publicEndpoint string
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore(publicEndpoint, bucket string) *MemoryStore {
	return &MemoryStore{
		objects:        make(map[string][]byte),
		bucket:         bucket,
		publicEndpoint: publicEndpoint,
	}
}

func (s *MemoryStore) Put(_ context.Context, key string, body []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	b := make([]byte, len(body))
	copy(b, body)
	s.objects[key] = b
	return nil
}

func (s *MemoryStore) ObjectURL(key string) string {
	return s.publicEndpoint + "/" + s.bucket + "/" + key
}

// Get returns a stored object and whether it exists.
func (s *MemoryStore) Get(key string) ([]byte, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	b, ok := s.objects[key]
	return b, ok
}

// Len reports how many objects have been stored.
func (s *MemoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.objects)
}
