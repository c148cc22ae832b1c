package client

import (
	"os"
	"path/filepath"
	"sync"
)

// TokenStore is the durable client-side slot holding the session token.
// SessionStore transitions are the only writers.
type TokenStore interface {
	// Load returns the persisted token, or "" when none is stored
	Load() (string, error)
	// Save persists the token, replacing any previous value
	Save(token string) error
	// Clear erases the persisted token. Clearing an empty slot is fine.
	Clear() error
}

// FileTokenStore persists the token in a file
type FileTokenStore struct {
	path string
}

// NewFileTokenStore creates a token store backed by the given file path
func NewFileTokenStore(path string) *FileTokenStore {
	return &FileTokenStore{path: path}
}

// DefaultTokenPath returns the default token file location
func DefaultTokenPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".bgcat/token"
	}
	return filepath.Join(home, ".bgcat", "token")
}

func (s *FileTokenStore) Load() (string, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", nil
		}
		return "", err
	}
	return string(data), nil
}

func (s *FileTokenStore) Save(token string) error {
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return err
	}
	return os.WriteFile(s.path, []byte(token), 0600)
}

func (s *FileTokenStore) Clear() error {
	err := os.Remove(s.path)
	if err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

// MemoryTokenStore holds the token in memory, for tests
type MemoryTokenStore struct {
	mu    sync.Mutex
	token string
}

// NewMemoryTokenStore creates an empty in-memory token store
func NewMemoryTokenStore() *MemoryTokenStore {
	return &MemoryTokenStore{}
}

func (s *MemoryTokenStore) Load() (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.token, nil
}

func (s *MemoryTokenStore) Save(token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = token
	return nil
}

func (s *MemoryTokenStore) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = ""
	return nil
}
