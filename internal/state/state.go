package state

import (
	"context"
	"sync"
)

// Keys of the two persisted entries
const (
	KeyCart     = "cart"
	KeyCartView = "myCartPage"
)

// Store is a durable string key/value store holding the shop's client state
type Store interface {
	// Get returns the stored value and whether the key exists
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string) error
}

type memoryStore struct {
	mutex  sync.Mutex
	values map[string]string
}

// NewMemoryStore returns a Store that lives for the process only
func NewMemoryStore() Store {
	return &memoryStore{values: make(map[string]string)}
}

func (m *memoryStore) Get(_ context.Context, key string) (string, bool, error) {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	v, ok := m.values[key]
	return v, ok, nil
}

func (m *memoryStore) Set(_ context.Context, key, value string) error {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	m.values[key] = value
	return nil
}
