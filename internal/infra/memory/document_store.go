package memory

import (
	"context"
	"encoding/json"
	"sync"
)

// DocumentStore keeps collections as JSON in memory (useful for tests/demos).
type DocumentStore struct {
	mu   sync.RWMutex
	docs map[string][]byte
}

func NewDocumentStore() *DocumentStore {
	return &DocumentStore{docs: make(map[string][]byte)}
}

func (s *DocumentStore) Load(_ context.Context, collection string, dst any) error {
	s.mu.RLock()
	data, ok := s.docs[collection]
	s.mu.RUnlock()
	if !ok {
		return nil
	}
	return json.Unmarshal(data, dst)
}

func (s *DocumentStore) Save(_ context.Context, collection string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	s.mu.Lock()
	s.docs[collection] = data
	s.mu.Unlock()
	return nil
}
