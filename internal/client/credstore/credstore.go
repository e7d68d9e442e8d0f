// Package credstore implements a namespaced, encrypted key-value store for
// opaque credentials such as bearer tokens. It stands in for an OS keychain:
// values are sealed with an AEAD cipher and persisted to a file scoped to a
// service namespace.
package credstore

import (
	"crypto/cipher"
	"crypto/rand"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// Store is a durable key-value store for a single service namespace.
// Every mutation is written to disk before returning.
type Store struct {
	path string
	aead cipher.AEAD

	mu      sync.Mutex
	entries map[string]string // key -> base64(nonce || ciphertext)
}

// Open loads (or creates) the credential store for the given service
// namespace under dir. The AEAD seals values at rest.
func Open(dir, service string, aead cipher.AEAD) (*Store, error) {
	s := &Store{
		path:    filepath.Join(dir, service+".json"),
		aead:    aead,
		entries: make(map[string]string),
	}

	f, err := os.Open(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return s, nil
		}
		return nil, fmt.Errorf("open credential store: %w", err)
	}
	defer f.Close()

	if err := json.NewDecoder(f).Decode(&s.entries); err != nil {
		return nil, fmt.Errorf("decode credential store: %w", err)
	}
	return s, nil
}

// Set stores value under key, overwriting any existing entry. Exactly one
// entry per key exists after Set returns.
func (s *Store) Set(key string, value []byte) error {
	nonce := make([]byte, s.aead.NonceSize())
	if _, err := rand.Read(nonce); err != nil {
		return fmt.Errorf("generate nonce: %w", err)
	}
	sealed := s.aead.Seal(nonce, nonce, value, nil)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[key] = base64.StdEncoding.EncodeToString(sealed)
	return s.save()
}

// Get returns the value stored under key. An absent key is reported via the
// boolean, not as an error.
func (s *Store) Get(key string) ([]byte, bool, error) {
	s.mu.Lock()
	encoded, ok := s.entries[key]
	s.mu.Unlock()
	if !ok {
		return nil, false, nil
	}

	sealed, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return nil, false, fmt.Errorf("decode entry %q: %w", key, err)
	}
	if len(sealed) < s.aead.NonceSize() {
		return nil, false, fmt.Errorf("entry %q is truncated", key)
	}
	nonce, ciphertext := sealed[:s.aead.NonceSize()], sealed[s.aead.NonceSize():]
	value, err := s.aead.Open(nil, nonce, ciphertext, nil)
	if err != nil {
		return nil, false, fmt.Errorf("decrypt entry %q: %w", key, err)
	}
	return value, true, nil
}

// Remove deletes the entry for key. Removing an absent key is not an error.
func (s *Store) Remove(key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.entries[key]; !ok {
		return nil
	}
	delete(s.entries, key)
	return s.save()
}

// ClearAll deletes every entry in this store's namespace.
func (s *Store) ClearAll() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries = make(map[string]string)
	return s.save()
}

// save persists the entries map. Callers must hold s.mu.
func (s *Store) save() error {
	f, err := os.Create(s.path)
	if err != nil {
		return fmt.Errorf("write credential store: %w", err)
	}
	defer f.Close()
	if err := json.NewEncoder(f).Encode(s.entries); err != nil {
		return fmt.Errorf("encode credential store: %w", err)
	}
	return f.Sync()
}
