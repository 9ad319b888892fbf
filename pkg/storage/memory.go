package storage

import (
	"context"
	"sync"
)

type MemoryBackend struct {
	mu     sync.RWMutex
	values map[string]string
}

func NewMemoryBackend() *MemoryBackend {
	return &MemoryBackend{
		values: map[string]string{},
	}
}

func (m *MemoryBackend) Put(ctx context.Context, key string, data string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.values[key] = data
	return nil
}

func (m *MemoryBackend) Get(ctx context.Context, key string) (string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	value, exists := m.values[key]
	if !exists {
		return "", &NotFoundError{Key: key}
	}

	return value, nil
}

func (m *MemoryBackend) Delete(ctx context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.values, key)
	return nil
}

func (m *MemoryBackend) Close() error {
	return nil
}

// Keys returns the number of stored keys
func (m *MemoryBackend) Keys() int {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return len(m.values)
}
