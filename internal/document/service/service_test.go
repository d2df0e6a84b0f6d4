package service

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/quilldocs/quill/internal/document"
	"github.com/quilldocs/quill/internal/document/repository"
	"github.com/quilldocs/quill/internal/markdown"
)

func newTestService(t *testing.T) Service {
	t.Helper()
	repo, err := repository.NewFileRepo(t.TempDir())
	require.NoError(t, err)
	return NewFileService(repo, markdown.New())
}

func TestServiceRoundTripText(t *testing.T) {
	svc := newTestService(t)

	require.NoError(t, svc.Create("history.txt", "2001: 20th Anniversary"))

	v, err := svc.View("history.txt")
	require.NoError(t, err)
	require.Equal(t, document.KindText, v.Kind)
	require.Equal(t, "2001: 20th Anniversary", string(v.Content))
	require.Nil(t, v.HTML)
}

func TestServiceRendersMarkdown(t *testing.T) {
	svc := newTestService(t)

	require.NoError(t, svc.Create("about.md", "**Bold Text**\n\n## Header"))

	v, err := svc.View("about.md")
	require.NoError(t, err)
	require.Equal(t, document.KindMarkdown, v.Kind)
	require.Contains(t, string(v.HTML), "<strong>Bold Text</strong>")
	require.Contains(t, string(v.HTML), "Header</h2>")
}

func TestServiceCreateValidates(t *testing.T) {
	svc := newTestService(t)

	err := svc.Create("bad name.txt", "")
	require.Error(t, err)
	require.Equal(t, "Document name may contain letters, numbers and . _ or - only.", err.Error())
	require.False(t, svc.Exists("bad name.txt"))

	require.NoError(t, svc.Create("test.txt", ""))
	err = svc.Create("TEST.txt", "")
	require.Error(t, err)
	require.Equal(t, "TEST.txt already exists.", err.Error())
}

func TestValidateNameChecksLiteralName(t *testing.T) {
	svc := newTestService(t)

	require.NoError(t, svc.Create("test.txt", ""))

	// a path-bearing name never collides with the stored file it reduces
	// to; the character rule must fire instead
	err := svc.ValidateName("t3&t/test.txt")
	require.Error(t, err)
	require.Equal(t, "Document name may contain letters, numbers and . _ or - only.", err.Error())

	err = svc.ValidateName("TEST.txt")
	require.Error(t, err)
	require.Equal(t, "TEST.txt already exists.", err.Error())
}

func TestServiceDeleteThenList(t *testing.T) {
	svc := newTestService(t)

	require.NoError(t, svc.Create("test.txt", ""))
	require.NoError(t, svc.Delete("test.txt"))

	list, err := svc.List()
	require.NoError(t, err)
	require.NotContains(t, list, "test.txt")

	require.ErrorIs(t, svc.Delete("test.txt"), ErrNotFound)
}
