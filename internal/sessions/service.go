package sessions

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Service wraps repository operations with business logic
type Service struct {
	repo Repository
	ttl  time.Duration
}

func NewService(r Repository, ttl time.Duration) *Service {
	return &Service{repo: r, ttl: ttl}
}

// Create stores a fresh anonymous session and returns it.
func (s *Service) Create(ctx context.Context) (*Session, error) {
	now := time.Now().UTC()
	sess := &Session{
		ID:        uuid.NewString(),
		CreatedAt: now,
		ExpiresAt: now.Add(s.ttl),
	}
	if err := s.repo.Save(ctx, sess); err != nil {
		return nil, err
	}
	return sess, nil
}

// Get returns the session for id, or nil when missing or expired.
func (s *Service) Get(ctx context.Context, id string) (*Session, error) {
	return s.repo.Get(ctx, id)
}

// Save persists session mutations (sign-in, sign-out, flash changes).
func (s *Service) Save(ctx context.Context, sess *Session) error {
	return s.repo.Save(ctx, sess)
}

// SignIn binds the username to the session and persists it.
func (s *Service) SignIn(ctx context.Context, sess *Session, username string) error {
	sess.Username = username
	return s.repo.Save(ctx, sess)
}

// SignOut clears the username and persists the session.
func (s *Service) SignOut(ctx context.Context, sess *Session) error {
	sess.Username = ""
	return s.repo.Save(ctx, sess)
}
