package service

import (
	"errors"

	"github.com/quilldocs/quill/internal/document"
	"github.com/quilldocs/quill/internal/document/repository"
	"github.com/quilldocs/quill/internal/markdown"
)

var ErrNotFound = errors.New("not found")

// View is a document prepared for display: raw content plus rendered HTML
// when the document is Markdown.
type View struct {
	Name    string
	Kind    document.Kind
	Content []byte
	HTML    []byte
}

// Service defines the document business operations used by the handler layer.
type Service interface {
	List() ([]string, error)
	View(name string) (*View, error)
	Raw(name string) ([]byte, error)
	Create(name, content string) error
	Update(name, content string) error
	Delete(name string) error
	Exists(name string) bool
	ValidateName(name string) error
}

// NewFileService returns a Service backed by the file repository.
func NewFileService(repo *repository.FileRepo, md *markdown.Renderer) Service {
	return &fileService{repo: repo, md: md}
}

type fileService struct {
	repo *repository.FileRepo
	md   *markdown.Renderer
}

func (s *fileService) List() ([]string, error) {
	return s.repo.List()
}

// View loads a document and, for Markdown, renders it to HTML.
func (s *fileService) View(name string) (*View, error) {
	content, err := s.repo.Read(name)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	v := &View{
		Name:    document.CanonicalName(name),
		Kind:    document.KindFor(name),
		Content: content,
	}
	if v.Kind == document.KindMarkdown {
		html, err := s.md.Render(content)
		if err != nil {
			return nil, err
		}
		v.HTML = html
	}
	return v, nil
}

func (s *fileService) Raw(name string) ([]byte, error) {
	b, err := s.repo.Read(name)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrNotFound
	}
	return b, err
}

func (s *fileService) Create(name, content string) error {
	if err := s.ValidateName(name); err != nil {
		return err
	}
	return s.repo.Write(name, []byte(content))
}

func (s *fileService) Update(name, content string) error {
	return s.repo.Write(name, []byte(content))
}

func (s *fileService) Delete(name string) error {
	err := s.repo.Delete(name)
	if errors.Is(err, repository.ErrNotFound) {
		return ErrNotFound
	}
	return err
}

func (s *fileService) Exists(name string) bool {
	return s.repo.Exists(name)
}

// ValidateName checks the submitted name against the literal stored list:
// collision detection must see the name as typed, while filesystem access
// reduces it to a base name.
func (s *fileService) ValidateName(name string) error {
	return document.ValidateName(name, s.repo.ExistsLiteral)
}
