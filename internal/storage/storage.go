// Package storage provides the durable client-side key-value store the
// session mirrors itself into. Values are plain strings kept in a single
// JSON file with restricted permissions, read once at startup and written
// on every change.
package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// Namespaced keys for the persisted session entries
const (
	KeyToken        = "habitta_token"
	KeyUser         = "habitta_user"
	KeyActiveTenant = "habitta_active_tenant"
	KeyActiveRole   = "habitta_active_role"
)

// Store is a file-backed string key-value store.
//
// Every mutation writes through to disk before it is visible in memory,
// so the file never diverges from the in-memory state.
type Store struct {
	mu sync.RWMutex

	// path is the file the entries are persisted to
	path string

	// entries maps namespaced keys to their stored values
	entries map[string]string
}

// Open loads the store at path, creating an empty one if the file does
// not exist. An unreadable or unparseable file is treated as corruption:
// the store starts empty and the file is overwritten on the next write.
func Open(path string) (*Store, error) {
	s := &Store{
		path:    path,
		entries: make(map[string]string),
	}

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return s, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read session storage: %w", err)
	}

	if err := json.Unmarshal(data, &s.entries); err != nil {
		// Corrupt file: drop everything rather than guess.
		s.entries = make(map[string]string)
		if err := s.save(); err != nil {
			return nil, err
		}
	}

	return s, nil
}

// Get returns the value stored under key.
func (s *Store) Get(key string) (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	value, ok := s.entries[key]
	return value, ok
}

// Set stores value under key and persists immediately.
func (s *Store) Set(key, value string) error {
	return s.Apply(map[string]*string{key: &value})
}

// Delete removes key and persists immediately. Deleting an absent key is
// a no-op that still rewrites the file.
func (s *Store) Delete(key string) error {
	return s.Apply(map[string]*string{key: nil})
}

// Apply performs a batch of writes and deletes as one persisted update.
// A nil value deletes the key. Either the whole batch lands on disk and
// in memory, or neither does.
func (s *Store) Apply(changes map[string]*string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	// Stage on a copy so a failed save leaves memory untouched.
	staged := make(map[string]string, len(s.entries))
	for k, v := range s.entries {
		staged[k] = v
	}
	for key, value := range changes {
		if value == nil {
			delete(staged, key)
		} else {
			staged[key] = *value
		}
	}

	previous := s.entries
	s.entries = staged
	if err := s.save(); err != nil {
		s.entries = previous
		return err
	}

	return nil
}

// Clear removes every entry and persists the empty store.
func (s *Store) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	previous := s.entries
	s.entries = make(map[string]string)
	if err := s.save(); err != nil {
		s.entries = previous
		return err
	}

	return nil
}

// Len returns the number of stored entries.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return len(s.entries)
}

// save writes the entries to disk. Callers must hold the lock.
func (s *Store) save() error {
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("failed to create storage directory: %w", err)
	}

	data, err := json.MarshalIndent(s.entries, "", "  ")
	if err != nil {
		return err
	}

	// The file holds a session token, so keep permissions tight.
	if err := os.WriteFile(s.path, data, 0600); err != nil {
		return fmt.Errorf("failed to write session storage: %w", err)
	}

	return nil
}
