package repository

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFileRepoCRUD(t *testing.T) {
	r, err := NewFileRepo(t.TempDir())
	require.NoError(t, err)

	require.NoError(t, r.Write("changes.txt", []byte("hello")))

	got, err := r.Read("changes.txt")
	require.NoError(t, err)
	require.Equal(t, "hello", string(got))

	list, err := r.List()
	require.NoError(t, err)
	require.Equal(t, []string{"changes.txt"}, list)

	require.NoError(t, r.Write("changes.txt", []byte("new")))
	got2, err := r.Read("changes.txt")
	require.NoError(t, err)
	require.Equal(t, "new", string(got2))

	require.NoError(t, r.Delete("changes.txt"))
	_, err = r.Read("changes.txt")
	require.ErrorIs(t, err, ErrNotFound)

	list, err = r.List()
	require.NoError(t, err)
	require.Empty(t, list)
}

func TestFileRepoReadMissing(t *testing.T) {
	r, err := NewFileRepo(t.TempDir())
	require.NoError(t, err)

	_, err = r.Read("nofile.txt")
	require.ErrorIs(t, err, ErrNotFound)

	require.ErrorIs(t, r.Delete("nofile.txt"), ErrNotFound)
}

func TestFileRepoStripsTraversal(t *testing.T) {
	dir := t.TempDir()
	r, err := NewFileRepo(dir)
	require.NoError(t, err)

	require.NoError(t, r.Write("../escape.txt", []byte("x")))

	// the write must land inside the data directory
	_, statErr := os.Stat(filepath.Join(dir, "escape.txt"))
	require.NoError(t, statErr)
	_, statErr = os.Stat(filepath.Join(filepath.Dir(dir), "escape.txt"))
	require.True(t, os.IsNotExist(statErr))

	// a name that reduces to nothing is rejected outright
	require.ErrorIs(t, r.Write("..", []byte("x")), ErrInvalidName)
	_, err = r.Read("../..")
	require.ErrorIs(t, err, ErrNotFound)
}

func TestFileRepoExistsCaseInsensitive(t *testing.T) {
	r, err := NewFileRepo(t.TempDir())
	require.NoError(t, err)

	require.NoError(t, r.Write("About.md", []byte("")))
	require.True(t, r.Exists("About.md"))
	require.True(t, r.Exists("about.MD"))
	require.False(t, r.Exists("other.md"))
}

func TestFileRepoExistsLiteral(t *testing.T) {
	r, err := NewFileRepo(t.TempDir())
	require.NoError(t, err)

	require.NoError(t, r.Write("test.txt", []byte("")))

	require.True(t, r.ExistsLiteral("test.txt"))
	require.True(t, r.ExistsLiteral("TEST.txt"))

	// Exists reduces to the base name, ExistsLiteral does not
	require.True(t, r.Exists("sub/test.txt"))
	require.False(t, r.ExistsLiteral("sub/test.txt"))
}
