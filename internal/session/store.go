package session

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
)

// Credentials is the persisted slice of a session: three strings, exactly
// what the browser build kept in localStorage.
type Credentials struct {
	Token  string `json:"token,omitempty"`
	Role   string `json:"role,omitempty"`
	UserID string `json:"userId,omitempty"`
}

func (c Credentials) Empty() bool { return c == Credentials{} }

// Store is the narrow persistence port the session manager writes through.
// Keeping it this small means the state transitions stay testable without a
// real backing file.
type Store interface {
	Load() (Credentials, error)
	Save(Credentials) error
	Clear() error
}

// FileStore keeps credentials in a JSON file with owner-only permissions.
type FileStore struct {
	Path string
}

func NewFileStore(path string) *FileStore { return &FileStore{Path: path} }

func (s *FileStore) Load() (Credentials, error) {
	raw, err := os.ReadFile(s.Path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return Credentials{}, nil
		}
		return Credentials{}, fmt.Errorf("read credentials file: %w", err)
	}
	var creds Credentials
	if err := json.Unmarshal(raw, &creds); err != nil {
		// A corrupt file means no identity, not a fatal error.
		return Credentials{}, nil
	}
	return creds, nil
}

func (s *FileStore) Save(creds Credentials) error {
	if err := os.MkdirAll(filepath.Dir(s.Path), 0o700); err != nil {
		return fmt.Errorf("create credentials dir: %w", err)
	}
	raw, err := json.Marshal(creds)
	if err != nil {
		return fmt.Errorf("encode credentials: %w", err)
	}
	if err := os.WriteFile(s.Path, raw, 0o600); err != nil {
		return fmt.Errorf("write credentials file: %w", err)
	}
	return nil
}

func (s *FileStore) Clear() error {
	err := os.Remove(s.Path)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("remove credentials file: %w", err)
	}
	return nil
}

// MemStore is an in-process Store for tests and ephemeral runs.
type MemStore struct {
	mu    sync.Mutex
	creds Credentials
}

func NewMemStore() *MemStore { return &MemStore{} }

func (s *MemStore) Load() (Credentials, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.creds, nil
}

func (s *MemStore) Save(creds Credentials) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.creds = creds
	return nil
}

func (s *MemStore) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.creds = Credentials{}
	return nil
}
