// Package localstore is the durable key-value layer backing offline use.
// Each key maps to one JSON file under the state directory. Failures are
// logged and swallowed: a broken disk must never crash a prayer action,
// even if it means the save silently does not stick.
package localstore

import (
	"encoding/json"
	"errors"
	"io/fs"
	"log"
	"os"
	"path/filepath"
	"sync"
)

type Store struct {
	dir string
	mu  sync.Mutex
}

// Open creates the state directory if needed and returns a store over it.
func Open(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &Store{dir: dir}, nil
}

// Load decodes the blob stored under key into v. When the key is absent or
// the blob unreadable, v is left untouched, so callers prime v with the
// domain default and never need a nil check afterwards. The returned bool
// reports whether a stored value was applied.
func (s *Store) Load(key string, v any) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(s.path(key))
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			log.Println("localstore: read", key, "failed:", err)
		}
		return false
	}
	if err := json.Unmarshal(data, v); err != nil {
		log.Println("localstore: decode", key, "failed:", err)
		return false
	}
	return true
}

// Save writes v under key as JSON. Save(key, nil) removes the key entirely
// rather than storing a null sentinel.
func (s *Store) Save(key string, v any) {
	if v == nil {
		s.Remove(key)
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := json.Marshal(v)
	if err != nil {
		log.Println("localstore: encode", key, "failed:", err)
		return
	}
	if err := os.WriteFile(s.path(key), data, 0o644); err != nil {
		log.Println("localstore: write", key, "failed:", err)
	}
}

// Remove deletes the key. Removing an absent key is not an error.
func (s *Store) Remove(key string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.Remove(s.path(key)); err != nil && !errors.Is(err, fs.ErrNotExist) {
		log.Println("localstore: remove", key, "failed:", err)
	}
}

func (s *Store) path(key string) string {
	return filepath.Join(s.dir, key+".json")
}
