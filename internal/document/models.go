package document

import (
	"path"
	"path/filepath"
	"strings"
)

// Kind describes how a document's content is presented.
type Kind string

const (
	KindText     Kind = "text"
	KindMarkdown Kind = "markdown"
)

// ValidExtensions is the extension allow-list for stored documents.
var ValidExtensions = []string{".txt", ".md"}

// Document is a named text resource backed by a file in the data directory.
type Document struct {
	Name    string `json:"name"`
	Content []byte `json:"content,omitempty"`
}

// KindFor maps a document name to its presentation kind by extension.
func KindFor(name string) Kind {
	if strings.EqualFold(filepath.Ext(name), ".md") {
		return KindMarkdown
	}
	return KindText
}

// CanonicalName reduces a user-supplied name to its base name so a crafted
// name can never escape the data directory. Returns "" when nothing usable
// remains.
func CanonicalName(raw string) string {
	raw = strings.ReplaceAll(raw, `\`, "/")
	base := path.Base(strings.TrimSpace(raw))
	if base == "." || base == ".." || base == "/" {
		return ""
	}
	return base
}
