package sessions

import (
	"context"
	"sync"
	"time"
)

// Repository provides session persistence operations. Get returns nil for
// a missing or expired session.
type Repository interface {
	Save(ctx context.Context, s *Session) error
	Get(ctx context.Context, id string) (*Session, error)
	Delete(ctx context.Context, id string) error
}

// MemoryRepository keeps sessions in process memory. It is the default
// when no Redis is configured; sessions do not survive a restart.
type MemoryRepository struct {
	mu    sync.RWMutex
	store map[string]*Session
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{store: make(map[string]*Session)}
}

func (m *MemoryRepository) Save(_ context.Context, s *Session) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *s
	m.store[s.ID] = &cp
	return nil
}

func (m *MemoryRepository) Get(_ context.Context, id string) (*Session, error) {
	m.mu.RLock()
	s, ok := m.store[id]
	m.mu.RUnlock()
	if !ok {
		return nil, nil
	}
	if time.Now().UTC().After(s.ExpiresAt) {
		m.mu.Lock()
		delete(m.store, id)
		m.mu.Unlock()
		return nil, nil
	}
	cp := *s
	return &cp, nil
}

func (m *MemoryRepository) Delete(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.store, id)
	return nil
}
