package repository

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/quilldocs/quill/internal/document"
)

var (
	ErrNotFound    = errors.New("document not found")
	ErrInvalidName = errors.New("invalid document name")
)

// FileRepo stores each document as a flat file under a single directory.
// Writes are serialized by a mutex; reads go straight to the filesystem so
// concurrent edits are last-writer-wins, which is an accepted trade-off for
// this class of tool.
type FileRepo struct {
	dir string
	mu  sync.Mutex
}

// NewFileRepo creates the data directory if needed and returns a repo
// rooted there.
func NewFileRepo(dir string) (*FileRepo, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create data dir: %w", err)
	}
	return &FileRepo{dir: dir}, nil
}

// path canonicalizes name to its base name before joining, so a crafted
// name can never address a file outside the data directory.
func (r *FileRepo) path(name string) (string, error) {
	base := document.CanonicalName(name)
	if base == "" {
		return "", ErrInvalidName
	}
	return filepath.Join(r.dir, base), nil
}

// List returns the base names of all stored documents, sorted.
func (r *FileRepo) List() ([]string, error) {
	entries, err := os.ReadDir(r.dir)
	if err != nil {
		return nil, fmt.Errorf("list documents: %w", err)
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		names = append(names, e.Name())
	}
	sort.Strings(names)
	return names, nil
}

// Read returns the raw content of the named document.
func (r *FileRepo) Read(name string) ([]byte, error) {
	p, err := r.path(name)
	if err != nil {
		return nil, ErrNotFound
	}
	b, err := os.ReadFile(p)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("read %s: %w", name, err)
	}
	return b, nil
}

// Write creates or overwrites the named document.
func (r *FileRepo) Write(name string, content []byte) error {
	p, err := r.path(name)
	if err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := os.WriteFile(p, content, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", name, err)
	}
	return nil
}

// Delete removes the named document. Missing files report ErrNotFound;
// callers decide whether that matters.
func (r *FileRepo) Delete(name string) error {
	p, err := r.path(name)
	if err != nil {
		return ErrNotFound
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := os.Remove(p); err != nil {
		if os.IsNotExist(err) {
			return ErrNotFound
		}
		return fmt.Errorf("delete %s: %w", name, err)
	}
	return nil
}

// Exists reports whether a document with the given name is stored,
// compared case-insensitively.
func (r *FileRepo) Exists(name string) bool {
	base := document.CanonicalName(name)
	if base == "" {
		return false
	}
	return r.ExistsLiteral(base)
}

// ExistsLiteral compares the name exactly as submitted against the stored
// list, case-insensitively but without reducing it to a base name. A name
// carrying a path separator therefore never matches, which lets name
// validation report the character error rather than a false collision.
func (r *FileRepo) ExistsLiteral(name string) bool {
	names, err := r.List()
	if err != nil {
		return false
	}
	for _, n := range names {
		if strings.EqualFold(n, name) {
			return true
		}
	}
	return false
}
