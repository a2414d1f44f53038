// Package filestore keeps each collection as a pretty-printed JSON array in
// its own file under a data directory.
package filestore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"github.com/facebookgo/atomicfile"
)

// DocumentStore is a file-backed app.DocumentStore.
type DocumentStore struct {
	dir string

	mu    sync.Mutex
	locks map[string]*sync.RWMutex
}

// New creates dir if needed.
func New(dir string) (*DocumentStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create data dir: %w", err)
	}
	return &DocumentStore{dir: dir, locks: make(map[string]*sync.RWMutex)}, nil
}

func (s *DocumentStore) Load(_ context.Context, collection string, dst any) error {
	lock := s.lock(collection)
	lock.RLock()
	defer lock.RUnlock()

	data, err := os.ReadFile(s.path(collection))
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("read %s: %w", collection, err)
	}
	if err := json.Unmarshal(data, dst); err != nil {
		return fmt.Errorf("decode %s: %w", collection, err)
	}
	return nil
}

// Save replaces the collection file atomically; readers never see a partial
// write.
func (s *DocumentStore) Save(_ context.Context, collection string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("encode %s: %w", collection, err)
	}

	lock := s.lock(collection)
	lock.Lock()
	defer lock.Unlock()

	path := s.path(collection)
	f, err := atomicfile.New(path, 0o644)
	if err != nil {
		return writeError(path, err)
	}
	if _, err := f.Write(data); err != nil {
		_ = f.Abort()
		return writeError(path, err)
	}
	if err := f.Close(); err != nil {
		return writeError(path, err)
	}
	return nil
}

func (s *DocumentStore) path(collection string) string {
	return filepath.Join(s.dir, collection+".json")
}

func (s *DocumentStore) lock(collection string) *sync.RWMutex {
	s.mu.Lock()
	defer s.mu.Unlock()
	l, ok := s.locks[collection]
	if !ok {
		l = &sync.RWMutex{}
		s.locks[collection] = l
	}
	return l
}

func writeError(path string, err error) error {
	if errors.Is(err, fs.ErrPermission) {
		return fmt.Errorf("permission denied: cannot write to %s, check directory permissions: %w", path, err)
	}
	return fmt.Errorf("write %s: %w", path, err)
}
