// Package storage provides a small thread-safe JSON file store used by the
// in-memory item service to survive restarts during local development.
package storage

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sync"
)

type JSONStore struct {
	mu   sync.Mutex
	path string
}

// NewJSONStore returns a store writing to dataDir/filename, creating the
// directory if needed.
func NewJSONStore(dataDir, filename string) (*JSONStore, error) {
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return nil, err
	}
	return &JSONStore{path: filepath.Join(dataDir, filename)}, nil
}

// Load decodes the file into v. A missing file is not an error; v is left
// untouched.
func (s *JSONStore) Load(v any) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	b, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}
	return json.Unmarshal(b, v)
}

// Save writes v to a temp file and renames it over the target, so readers
// never observe a partial write.
func (s *JSONStore) Save(v any) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, b, 0o644); err != nil {
		return err
	}
	if err := os.Rename(tmp, s.path); err != nil {
		os.Remove(tmp)
		return err
	}
	return nil
}
