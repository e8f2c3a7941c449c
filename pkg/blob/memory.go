package blob

import (
	"context"
	"sync"
)

// MemoryStore is an in-process blob store for tests and ephemeral runs.
// FailLoads and FailSaves inject backend failures.
type MemoryStore struct {
	mu        sync.RWMutex
	data      map[string][]byte
	FailLoads error
	FailSaves error
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{data: make(map[string][]byte)}
}

func (s *MemoryStore) Load(ctx context.Context, collection string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.FailLoads != nil {
		return nil, s.FailLoads
	}
	data, ok := s.data[collection]
	if !ok {
		return nil, ErrNotFound
	}
	out := make([]byte, len(data))
	copy(out, data)
	return out, nil
}

func (s *MemoryStore) Save(ctx context.Context, collection string, data []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.FailSaves != nil {
		return s.FailSaves
	}
	stored := make([]byte, len(data))
	copy(stored, data)
	s.data[collection] = stored
	return nil
}

// Put seeds raw collection bytes, bypassing failure injection.
func (s *MemoryStore) Put(collection string, data []byte) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[collection] = data
}
