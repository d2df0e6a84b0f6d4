package markdown

import (
	"bytes"
	"fmt"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
)

// Renderer converts Markdown source into HTML using the goldmark engine.
// The engine is stateless, so a single Renderer can be shared across
// requests without locking.
//
// Raw HTML embedded in the source is escaped by the renderer (goldmark's
// default), so documents written by one user cannot inject markup into
// pages viewed by another.
type Renderer struct {
	engine goldmark.Markdown
}

// New builds a Renderer with GFM extensions and auto heading IDs.
func New() *Renderer {
	return &Renderer{
		engine: goldmark.New(
			goldmark.WithExtensions(
				extension.GFM,
				extension.Linkify,
				extension.TaskList,
			),
			goldmark.WithParserOptions(
				parser.WithAutoHeadingID(),
			),
		),
	}
}

// Render converts src to HTML.
func (r *Renderer) Render(src []byte) ([]byte, error) {
	var buf bytes.Buffer
	if err := r.engine.Convert(src, &buf); err != nil {
		return nil, fmt.Errorf("markdown render: %w", err)
	}
	return buf.Bytes(), nil
}
