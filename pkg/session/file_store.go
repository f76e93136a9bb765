package session

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
)

const storeFileName = "authkit.json"

// FileStore implements Store using a single JSON document under a data
// directory. Every mutation is persisted immediately. A file that cannot be
// parsed at load time is discarded with a warning rather than failing the
// host application.
type FileStore struct {
	path   string
	values map[string]string
	mutex  sync.RWMutex
}

// NewFileStore creates a file-backed store rooted at dataDir, creating the
// directory if needed and loading any previously persisted values.
func NewFileStore(dataDir string) (*FileStore, error) {
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}

	store := &FileStore{
		path:   filepath.Join(dataDir, storeFileName),
		values: make(map[string]string),
	}
	store.load()
	return store, nil
}

// Get retrieves a value by key.
func (s *FileStore) Get(key string) (string, error) {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	value, exists := s.values[key]
	if !exists {
		return "", fmt.Errorf("%w: %s", ErrKeyNotFound, key)
	}
	return value, nil
}

// Set stores a value under a key and persists to disk.
func (s *FileStore) Set(key, value string) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	s.values[key] = value
	return s.save()
}

// Remove deletes a key and persists to disk. Removing an absent key is a
// no-op.
func (s *FileStore) Remove(key string) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	if _, exists := s.values[key]; !exists {
		return nil
	}
	delete(s.values, key)
	return s.save()
}

// load reads the backing file. Missing or corrupt files leave the store
// empty; corruption is recovered locally, never surfaced.
func (s *FileStore) load() {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if !os.IsNotExist(err) {
			slog.Warn("Failed to read store file, starting empty", "path", s.path, "error", err)
		}
		return
	}

	var values map[string]string
	if err := json.Unmarshal(data, &values); err != nil {
		slog.Warn("Discarding corrupt store file", "path", s.path, "error", err)
		return
	}
	s.values = values
}

// save writes all values to the backing file. Caller must hold the lock.
func (s *FileStore) save() error {
	data, err := json.MarshalIndent(s.values, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal store data: %w", err)
	}
	if err := os.WriteFile(s.path, data, 0600); err != nil {
		return fmt.Errorf("failed to write store file: %w", err)
	}
	return nil
}
