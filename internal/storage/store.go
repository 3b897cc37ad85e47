// Package storage persists small string values under fixed keys.
package storage

import "sync"

// Store is a durable key/value collaborator. Get reports ok=false for a key
// that was never written.
type Store interface {
	Get(key string) (value string, ok bool, err error)
	Set(key, value string) error
}

// Updater is implemented by stores that can read-modify-write a key
// atomically. fn receives the current value and returns the value to store;
// returning write=false leaves the key untouched.
type Updater interface {
	Update(key string, fn func(current string, ok bool) (next string, write bool)) error
}

// Memory is an in-process Store. It is safe for concurrent use.
type Memory struct {
	mu     sync.RWMutex
	values map[string]string
}

// NewMemory creates an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{values: make(map[string]string)}
}

// Get implements Store.
func (m *Memory) Get(key string) (string, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.values[key]
	return v, ok, nil
}

// Set implements Store.
func (m *Memory) Set(key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.values[key] = value
	return nil
}

// Update implements Updater.
func (m *Memory) Update(key string, fn func(string, bool) (string, bool)) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	cur, ok := m.values[key]
	if next, write := fn(cur, ok); write {
		m.values[key] = next
	}
	return nil
}
