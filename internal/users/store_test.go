package users

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *FileStore {
	t.Helper()
	return NewFileStore(filepath.Join(t.TempDir(), "users.yml"))
}

func TestFileStoreCreateAndValidate(t *testing.T) {
	s := newTestStore(t)

	require.NoError(t, s.Create("admin", "secret"))

	ok, err := s.Validate("admin", "secret")
	require.NoError(t, err)
	require.True(t, ok)

	ok, err = s.Validate("admin", "wrong")
	require.NoError(t, err)
	require.False(t, ok)

	ok, err = s.Validate("nobody", "secret")
	require.NoError(t, err)
	require.False(t, ok)
}

func TestFileStoreNeverStoresPlaintext(t *testing.T) {
	s := newTestStore(t)
	require.NoError(t, s.Create("admin", "secret"))

	b, err := os.ReadFile(s.path)
	require.NoError(t, err)
	require.NotContains(t, string(b), "secret")
	require.Contains(t, string(b), "admin")
}

func TestFileStoreDuplicateUsername(t *testing.T) {
	s := newTestStore(t)
	require.NoError(t, s.Create("admin", "secret"))
	require.ErrorIs(t, s.Create("admin", "other"), ErrUsernameTaken)
}

func TestFileStoreMissingFileIsEmpty(t *testing.T) {
	s := newTestStore(t)
	creds, err := s.Load()
	require.NoError(t, err)
	require.Empty(t, creds)
}

func TestFileStoreCorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "users.yml")
	require.NoError(t, os.WriteFile(path, []byte("{not yaml: ["), 0o644))
	s := NewFileStore(path)

	_, err := s.Load()
	require.ErrorIs(t, err, ErrStoreCorrupt)

	_, err = s.Validate("admin", "secret")
	require.ErrorIs(t, err, ErrStoreCorrupt)
}

func TestFileStoreConcurrentCreates(t *testing.T) {
	s := newTestStore(t)

	done := make(chan error, 2)
	go func() { done <- s.Create("alice", "pw1") }()
	go func() { done <- s.Create("bob", "pw2") }()
	require.NoError(t, <-done)
	require.NoError(t, <-done)

	creds, err := s.Load()
	require.NoError(t, err)
	require.Len(t, creds, 2)
}
