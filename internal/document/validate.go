package document

import (
	"fmt"
	"path/filepath"
	"regexp"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// Validation messages surfaced verbatim on the new-document form.
const (
	msgNameRequired  = "A name is required"
	msgBadExtension  = "Document must be either a '.txt' or '.md' file."
	msgBadCharacters = "Document name may contain letters, numbers and . _ or - only."
)

var namePattern = regexp.MustCompile(`^[A-Za-z0-9._-]+$`)

// ValidateName runs the ordered document-name rules and returns the first
// failure. exists reports whether a document with that name is already
// stored (case-insensitive).
func ValidateName(name string, exists func(string) bool) error {
	if err := validation.Validate(name,
		validation.Required.Error(msgNameRequired),
	); err != nil {
		return err
	}
	if exists != nil && exists(name) {
		return fmt.Errorf("%s already exists.", name)
	}
	ext := filepath.Ext(name)
	if err := validation.Validate(ext,
		validation.Required.Error(msgBadExtension),
		validation.In(".txt", ".md").Error(msgBadExtension),
	); err != nil {
		return err
	}
	return validation.Validate(name,
		validation.Match(namePattern).Error(msgBadCharacters),
	)
}
