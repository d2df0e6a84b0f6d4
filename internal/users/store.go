package users

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"golang.org/x/crypto/bcrypt"
	"gopkg.in/yaml.v3"
)

var (
	// ErrUsernameTaken is returned when signing up with an existing username.
	ErrUsernameTaken = errors.New("username already exists")
	// ErrStoreCorrupt is returned when the credentials file cannot be read
	// or parsed. Callers must treat this as fatal for the request, never as
	// "no users".
	ErrStoreCorrupt = errors.New("credential store corrupt")
)

// FileStore persists the username -> bcrypt-hash mapping as a single YAML
// file. Create is a load-modify-save against that shared file, so all
// writes go through one mutex and land via an atomic rename.
type FileStore struct {
	path string
	mu   sync.Mutex
}

// NewFileStore returns a store backed by the given YAML file. The file is
// created lazily on first Create.
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// Load deserializes the credentials file. A missing file yields an empty
// mapping; anything else unreadable or malformed yields ErrStoreCorrupt.
func (s *FileStore) Load() (map[string]string, error) {
	b, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return map[string]string{}, nil
		}
		return nil, fmt.Errorf("%w: %v", ErrStoreCorrupt, err)
	}
	creds := map[string]string{}
	if err := yaml.Unmarshal(b, &creds); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStoreCorrupt, err)
	}
	if creds == nil {
		creds = map[string]string{}
	}
	return creds, nil
}

// Validate reports whether username exists and plaintext matches its stored
// hash. The bcrypt comparison is constant-time inside the library.
func (s *FileStore) Validate(username, plaintext string) (bool, error) {
	creds, err := s.Load()
	if err != nil {
		return false, err
	}
	hash, ok := creds[username]
	if !ok {
		return false, nil
	}
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plaintext)) == nil, nil
}

// Exists reports whether the username is present in the store. Load errors
// count as absent; Create re-checks under the lock.
func (s *FileStore) Exists(username string) bool {
	creds, err := s.Load()
	if err != nil {
		return false
	}
	_, ok := creds[username]
	return ok
}

// Create hashes the password and persists the updated mapping. The whole
// read-modify-write runs under the store mutex and the new file replaces
// the old one by rename, so concurrent signups cannot drop a record.
func (s *FileStore) Create(username, plaintext string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	creds, err := s.Load()
	if err != nil {
		return err
	}
	if _, ok := creds[username]; ok {
		return ErrUsernameTaken
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(plaintext), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	creds[username] = string(hash)
	return s.save(creds)
}

func (s *FileStore) save(creds map[string]string) error {
	out, err := yaml.Marshal(creds)
	if err != nil {
		return fmt.Errorf("encode credentials: %w", err)
	}
	dir := filepath.Dir(s.path)
	tmp, err := os.CreateTemp(dir, ".users-*.yml")
	if err != nil {
		return fmt.Errorf("write credentials: %w", err)
	}
	defer os.Remove(tmp.Name())
	if _, err := tmp.Write(out); err != nil {
		tmp.Close()
		return fmt.Errorf("write credentials: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("write credentials: %w", err)
	}
	if err := os.Rename(tmp.Name(), s.path); err != nil {
		return fmt.Errorf("replace credentials: %w", err)
	}
	return nil
}
