// Package storage puts files (client avatars, CSV archives) in an object
// store and returns their public URL.
package storage

import (
	"context"
	"fmt"
	"strings"
	"sync"
)

type Store interface {
	Put(ctx context.Context, key, contentType string, data []byte) (string, error)
}

// MemoryStore keeps objects in memory. Used when S3 is not configured and
// in tests.
type MemoryStore struct {
	mu      sync.RWMutex
	baseURL string
	objects map[string][]byte
}

func NewMemoryStore(baseURL string) *MemoryStore {
	return &MemoryStore{
		baseURL: strings.TrimRight(baseURL, "/"),
		objects: make(map[string][]byte),
	}
}

func (s *MemoryStore) Put(_ context.Context, key, _ string, data []byte) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.objects[key] = append([]byte(nil), data...)
	return fmt.Sprintf("%s/%s", s.baseURL, key), nil
}

func (s *MemoryStore) Get(key string) ([]byte, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	b, ok := s.objects[key]
	return b, ok
}

var _ Store = (*MemoryStore)(nil)
