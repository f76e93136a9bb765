package session

import (
	"errors"
	"fmt"
	"sync"
)

// ErrKeyNotFound is returned by Store.Get when no value exists for a key.
var ErrKeyNotFound = errors.New("key not found")

// Store is the persistence port for all durable client-side state: the
// session record and the one-time oauth state. Implementations must be safe
// for concurrent use.
type Store interface {
	Get(key string) (string, error)
	Set(key, value string) error
	Remove(key string) error
}

// MemoryStore implements Store with an in-memory map. It is the substitute
// used in tests and in hosts that do not want anything written to disk.
type MemoryStore struct {
	values map[string]string
	mutex  sync.RWMutex
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		values: make(map[string]string),
	}
}

// Get retrieves a value by key.
func (s *MemoryStore) Get(key string) (string, error) {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	value, exists := s.values[key]
	if !exists {
		return "", fmt.Errorf("%w: %s", ErrKeyNotFound, key)
	}
	return value, nil
}

// Set stores a value under a key, overwriting any previous value.
func (s *MemoryStore) Set(key, value string) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	s.values[key] = value
	return nil
}

// Remove deletes a key. Removing an absent key is a no-op.
func (s *MemoryStore) Remove(key string) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	delete(s.values, key)
	return nil
}
