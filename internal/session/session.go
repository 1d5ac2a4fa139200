// Package session persists the CLI's current participant between runs.
//
// The file lives at ~/.tripsplit/session.json by default and holds the
// selected participant, the session token the server issued for them, and
// any ad hoc participants added on this device.
package session

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

const fileName = "session.json"

// CurrentUser is the participant this device acts as.
type CurrentUser struct {
	Name string `json:"name"`
}

// Session is the on-disk state.
type Session struct {
	CurrentUser *CurrentUser `json:"currentUser,omitempty"`
	Token       string       `json:"token,omitempty"`
	Server      string       `json:"server,omitempty"`
	Extra       []string     `json:"extraParticipants,omitempty"`
}

// SignedIn reports whether a participant has been selected.
func (s *Session) SignedIn() bool {
	return s != nil && s.CurrentUser != nil && s.CurrentUser.Name != "" && s.Token != ""
}

// FileStore reads and writes the session file in dir.
type FileStore struct {
	dir string
	mu  sync.Mutex
}

// NewFileStore returns a FileStore rooted at dir.
func NewFileStore(dir string) *FileStore {
	return &FileStore{dir: dir}
}

// DefaultDir returns ~/.tripsplit.
func DefaultDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".tripsplit"), nil
}

func (s *FileStore) path() string {
	return filepath.Join(s.dir, fileName)
}

// Load returns the stored session. A missing file is an empty session.
func (s *FileStore) Load() (*Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var sess Session
	b, err := os.ReadFile(s.path())
	if errors.Is(err, os.ErrNotExist) {
		return &sess, nil
	}
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal(b, &sess); err != nil {
		return nil, fmt.Errorf("corrupt session file %s: %w", s.path(), err)
	}
	return &sess, nil
}

// Save writes sess via a temp file then rename.
func (s *FileStore) Save(sess *Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.MkdirAll(s.dir, 0o700); err != nil {
		return err
	}
	b, err := json.MarshalIndent(sess, "", "  ")
	if err != nil {
		return err
	}
	tmp := s.path() + ".tmp"
	if err := os.WriteFile(tmp, b, 0o600); err != nil {
		return err
	}
	return os.Rename(tmp, s.path())
}

// Clear removes the session file.
func (s *FileStore) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.Remove(s.path()); err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	return nil
}
