package users

import (
	"fmt"
	"regexp"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

const (
	msgUsernameBlank = "Username cannot be blank"
	// usernames share the document-name character class and its message
	msgBadCharacters = "Document name may contain letters, numbers and . _ or - only."
)

var usernamePattern = regexp.MustCompile(`^[A-Za-z0-9._-]+$`)

// Service encapsulates signup and sign-in logic over the credential store.
type Service struct {
	store *FileStore
}

func NewService(store *FileStore) *Service {
	return &Service{store: store}
}

// ValidateSignup runs the ordered username rules and returns the first
// failure.
func (s *Service) ValidateSignup(username string) error {
	if err := validation.Validate(username,
		validation.Required.Error(msgUsernameBlank),
	); err != nil {
		return err
	}
	if s.store.Exists(username) {
		return fmt.Errorf("Username '%s' already exists.", username)
	}
	return validation.Validate(username,
		validation.Match(usernamePattern).Error(msgBadCharacters),
	)
}

// SignUp validates the username and persists a new credential record.
func (s *Service) SignUp(username, password string) error {
	if err := s.ValidateSignup(username); err != nil {
		return err
	}
	return s.store.Create(username, password)
}

// Authenticate reports whether the submitted credentials are valid. The
// error return is reserved for store failures, which callers surface as a
// server error rather than bad credentials.
func (s *Service) Authenticate(username, password string) (bool, error) {
	return s.store.Validate(username, password)
}

// Check reports whether the credential store is readable, for readiness
// probes.
func (s *Service) Check() error {
	_, err := s.store.Load()
	return err
}
