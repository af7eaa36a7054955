package database

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
)

// MemoryStore is an in-memory Store with the same semantics as the
// file store. Used by tests and available as a throwaway backend.
type MemoryStore struct {
	mu   sync.Mutex
	data map[Collection]json.RawMessage
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{data: map[Collection]json.RawMessage{}}
}

func (s *MemoryStore) Get(ctx context.Context, col Collection, out interface{}) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return decodeRecords(s.data[col], out)
}

func (s *MemoryStore) Put(ctx context.Context, col Collection, records interface{}) error {
	raw, err := json.Marshal(records)
	if err != nil {
		return fmt.Errorf("encode %s records: %w", col, err)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[col] = raw
	return nil
}

func (s *MemoryStore) Update(ctx context.Context, col Collection, fn UpdateFunc) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	current := s.data[col]
	if len(current) == 0 {
		current = json.RawMessage("[]")
	}
	next, err := fn(current)
	if err != nil {
		return err
	}
	s.data[col] = next
	return nil
}
