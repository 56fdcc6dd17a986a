package storage

import (
	"context"
	"maps"
	"sync"
)

// MemoryStore keeps slots in process memory. Nothing survives Close.
type MemoryStore struct {
	mu    sync.Mutex
	items map[string][]byte
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{items: make(map[string][]byte)}
}

func (s *MemoryStore) Get(ctx context.Context, key string) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return memoryRepository(s.items).Get(ctx, key)
}

func (s *MemoryStore) Set(ctx context.Context, key string, value []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return memoryRepository(s.items).Set(ctx, key, value)
}

func (s *MemoryStore) Delete(ctx context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return memoryRepository(s.items).Delete(ctx, key)
}

func (s *MemoryStore) List(ctx context.Context) (map[string][]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return memoryRepository(s.items).List(ctx)
}

func (s *MemoryStore) Clear(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return memoryRepository(s.items).Clear(ctx)
}

// Update stages writes on a copy and swaps it in only when fn succeeds.
func (s *MemoryStore) Update(ctx context.Context, fn UpdateFunc) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	staged := maps.Clone(s.items)
	if err := fn(ctx, memoryRepository(staged)); err != nil {
		return err
	}
	s.items = staged
	return nil
}

func (s *MemoryStore) Close() error {
	return nil
}

// memoryRepository is an unlocked view; callers hold MemoryStore.mu.
type memoryRepository map[string][]byte

func (m memoryRepository) Get(_ context.Context, key string) ([]byte, error) {
	v, ok := m[key]
	if !ok {
		return nil, nil
	}
	return clone(v), nil
}

func (m memoryRepository) Set(_ context.Context, key string, value []byte) error {
	m[key] = clone(value)
	return nil
}

func (m memoryRepository) Delete(_ context.Context, key string) error {
	delete(m, key)
	return nil
}

func (m memoryRepository) List(_ context.Context) (map[string][]byte, error) {
	out := make(map[string][]byte, len(m))
	for k, v := range m {
		out[k] = clone(v)
	}
	return out, nil
}

func (m memoryRepository) Clear(_ context.Context) error {
	clear(m)
	return nil
}

func clone(b []byte) []byte {
	if b == nil {
		return []byte{}
	}
	out := make([]byte, len(b))
	copy(out, b)
	return out
}
