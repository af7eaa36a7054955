package database

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// document is the on-disk shape of the store: one JSON object keyed by
// collection name, each value an array of records.
type document map[Collection]json.RawMessage

// FileStore persists every collection in a single JSON file, written
// whole on each mutation. One mutex serializes all access, so the
// store behaves as a single-writer actor within the process. Safe only
// for a single process; this is the documented operating model.
type FileStore struct {
	path string
	mu   sync.Mutex
}

// NewFileStore opens (or creates) the store file at path.
func NewFileStore(path string) (*FileStore, error) {
	s := &FileStore{path: path}

	if _, err := os.Stat(path); os.IsNotExist(err) {
		if dir := filepath.Dir(path); dir != "." {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return nil, fmt.Errorf("create store directory: %w", err)
			}
		}
		if err := s.save(document{
			Users:    json.RawMessage("[]"),
			Products: json.RawMessage("[]"),
			Orders:   json.RawMessage("[]"),
		}); err != nil {
			return nil, fmt.Errorf("initialize store file: %w", err)
		}
	} else if err != nil {
		return nil, fmt.Errorf("stat store file: %w", err)
	}

	return s, nil
}

func (s *FileStore) Get(ctx context.Context, col Collection, out interface{}) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.load()
	if err != nil {
		return err
	}
	return decodeRecords(doc[col], out)
}

func (s *FileStore) Put(ctx context.Context, col Collection, records interface{}) error {
	raw, err := json.Marshal(records)
	if err != nil {
		return fmt.Errorf("encode %s records: %w", col, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.load()
	if err != nil {
		return err
	}
	doc[col] = raw
	return s.save(doc)
}

func (s *FileStore) Update(ctx context.Context, col Collection, fn UpdateFunc) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.load()
	if err != nil {
		return err
	}

	current := doc[col]
	if len(current) == 0 {
		current = json.RawMessage("[]")
	}
	next, err := fn(current)
	if err != nil {
		return err
	}
	doc[col] = next
	return s.save(doc)
}

// load reads and decodes the whole store file. Callers hold s.mu.
func (s *FileStore) load() (document, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return nil, fmt.Errorf("read store file: %w", err)
	}
	var doc document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("decode store file: %w", err)
	}
	if doc == nil {
		doc = document{}
	}
	return doc, nil
}

// save writes the whole store file. A temp-file rename keeps a crash
// mid-write from truncating the store. Callers hold s.mu.
func (s *FileStore) save(doc document) error {
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("encode store file: %w", err)
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("write store file: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("replace store file: %w", err)
	}
	return nil
}

func decodeRecords(raw json.RawMessage, out interface{}) error {
	if len(raw) == 0 {
		raw = json.RawMessage("[]")
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("decode records: %w", err)
	}
	return nil
}
