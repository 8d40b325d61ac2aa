package store

import (
	"context"
	"sync"
)

type inMemory struct {
	mu      sync.RWMutex
	storage map[string]string
}

// NewMemoryStore returns process-lifetime cache
func NewMemoryStore() Cache {
	return &inMemory{}
}

func (m *inMemory) Get(_ context.Context, key string) (string, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.storage == nil {
		return "", false, nil
	}
	val, ok := m.storage[key]
	return val, ok, nil
}

func (m *inMemory) Set(_ context.Context, key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.storage == nil {
		// create on first use
		m.storage = make(map[string]string)
	}
	m.storage[key] = value
	return nil
}
