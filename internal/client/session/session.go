// Package session implements the durable local record store for the
// authenticated user. Records are written as a side effect of successful
// login or registration and cleared in bulk on logout.
package session

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/ilyakh/ShopKeeper/internal/models"
)

const sessionFile = "session.json"

// Store persists SessionUser records to a file. All operations commit
// before returning.
type Store struct {
	path string

	mu    sync.Mutex
	users []models.SessionUser
}

// Open loads (or creates) the session store under dir.
func Open(dir string) (*Store, error) {
	s := &Store{path: filepath.Join(dir, sessionFile)}

	f, err := os.Open(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return s, nil
		}
		return nil, fmt.Errorf("open session store: %w", err)
	}
	defer f.Close()

	if err := json.NewDecoder(f).Decode(&s.users); err != nil {
		return nil, fmt.Errorf("decode session store: %w", err)
	}
	return s, nil
}

// Record inserts a new SessionUser. Each call appends a record; repeated
// logins accumulate rows, matching the create-on-auth lifecycle.
func (s *Store) Record(id int64, name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.users = append(s.users, models.SessionUser{ID: id, Name: name})
	return s.save()
}

// Current returns the first stored record, or nil if none exists.
func (s *Store) Current() (*models.SessionUser, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.users) == 0 {
		return nil, nil
	}
	u := s.users[0]
	return &u, nil
}

// Clear deletes all records.
func (s *Store) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.users = nil
	return s.save()
}

// save persists the records. Callers must hold s.mu.
func (s *Store) save() error {
	f, err := os.Create(s.path)
	if err != nil {
		return fmt.Errorf("write session store: %w", err)
	}
	defer f.Close()
	if err := json.NewEncoder(f).Encode(s.users); err != nil {
		return fmt.Errorf("encode session store: %w", err)
	}
	return f.Sync()
}
