package progress

import (
	"errors"
	"os"
	"path/filepath"
	"sync"
)

// Storage is the injected key/value backend for locally persisted blobs.
// Keys are opaque file-safe names; values are whole JSON documents written
// and read wholesale. The file backend is used in production, the memory
// backend in tests.
type Storage interface {
	Read(key string) ([]byte, bool, error)
	Write(key string, data []byte) error
}

// FileStorage persists each key as a file under dir, using an atomic temp
// file + rename so a crash mid-write never corrupts an existing blob.
type FileStorage struct {
	dir string
}

// NewFileStorage creates a file-backed storage rooted at dir.
func NewFileStorage(dir string) *FileStorage {
	return &FileStorage{dir: dir}
}

// Read returns the blob for key; the bool is false when the key has never
// been written.
func (f *FileStorage) Read(key string) ([]byte, bool, error) {
	data, err := os.ReadFile(filepath.Join(f.dir, key))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, false, nil
		}
		return nil, false, err
	}
	return data, true, nil
}

// Write stores the blob for key atomically.
func (f *FileStorage) Write(key string, data []byte) error {
	if err := os.MkdirAll(f.dir, 0o750); err != nil {
		return err
	}
	path := filepath.Join(f.dir, key)

	tmp, err := os.CreateTemp(f.dir, key+".tmp-*")
	if err != nil {
		return err
	}
	tmpPath := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpPath)
		return err
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpPath)
		return err
	}
	return os.Rename(tmpPath, path)
}

// MemoryStorage is an in-memory Storage for tests.
type MemoryStorage struct {
	mu    sync.RWMutex
	blobs map[string][]byte
}

// NewMemoryStorage creates an empty in-memory storage.
func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{blobs: make(map[string][]byte)}
}

// Read returns the blob for key.
func (m *MemoryStorage) Read(key string) ([]byte, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	data, ok := m.blobs[key]
	return data, ok, nil
}

// Write stores the blob for key.
func (m *MemoryStorage) Write(key string, data []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := make([]byte, len(data))
	copy(cp, data)
	m.blobs[key] = cp
	return nil
}
