package storage

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

var ErrNotFound = errors.New("state not found")

// StateStore defines persistence for driver session data (cookies, local
// state). Concrete implementations can plug in file, Redis, or cloud stores.
type StateStore interface {
	Save(ctx context.Context, key string, data []byte) error
	Load(ctx context.Context, key string) ([]byte, error)
	Delete(ctx context.Context, key string) error
}

// MemStore keeps session blobs in memory. Handy for tests and for callers
// that want cookie restore within a single process only.
type MemStore struct {
	mu    sync.RWMutex
	blobs map[string][]byte
}

func NewMemStore() *MemStore {
	return &MemStore{blobs: make(map[string][]byte)}
}

func (m *MemStore) Save(_ context.Context, key string, data []byte) error {
	if key == "" {
		return errors.New("empty key")
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := make([]byte, len(data))
	copy(cp, data)
	m.blobs[key] = cp
	return nil
}

func (m *MemStore) Load(_ context.Context, key string) ([]byte, error) {
	if key == "" {
		return nil, errors.New("empty key")
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	b, ok := m.blobs[key]
	if !ok {
		return nil, ErrNotFound
	}
	cp := make([]byte, len(b))
	copy(cp, b)
	return cp, nil
}

func (m *MemStore) Delete(_ context.Context, key string) error {
	if key == "" {
		return errors.New("empty key")
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.blobs, key)
	return nil
}

// FileStore persists state as JSON blobs on disk under BaseDir, one file per key.
type FileStore struct {
	BaseDir string
}

func (f *FileStore) pathFor(key string) string {
	safe := filepath.Base(key)
	return filepath.Join(f.BaseDir, safe+".json")
}

func (f *FileStore) ensureDir() error {
	if f.BaseDir == "" {
		f.BaseDir = "data"
	}
	return os.MkdirAll(f.BaseDir, 0o755)
}

func (f *FileStore) Save(_ context.Context, key string, data []byte) error {
	if err := f.ensureDir(); err != nil {
		return fmt.Errorf("ensure dir: %w", err)
	}
	if key == "" {
		return errors.New("empty key")
	}
	return os.WriteFile(f.pathFor(key), data, 0o600)
}

func (f *FileStore) Load(_ context.Context, key string) ([]byte, error) {
	if err := f.ensureDir(); err != nil {
		return nil, fmt.Errorf("ensure dir: %w", err)
	}
	if key == "" {
		return nil, errors.New("empty key")
	}
	b, err := os.ReadFile(f.pathFor(key))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return b, nil
}

func (f *FileStore) Delete(_ context.Context, key string) error {
	if key == "" {
		return errors.New("empty key")
	}
	if err := os.Remove(f.pathFor(key)); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return err
	}
	return nil
}
