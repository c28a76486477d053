package session

import (
	"context"
	"sync"

	"github.com/google/uuid"
)

// MemoryManager is a map-backed Manager for tests and database-free runs.
// It does not expire sessions.
type MemoryManager struct {
	mu       sync.Mutex
	sessions map[string]Session
	flashes  map[string][]Flash
}

var _ Manager = (*MemoryManager)(nil)

// NewMemoryManager returns an empty in-memory session manager.
func NewMemoryManager() *MemoryManager {
	return &MemoryManager{
		sessions: make(map[string]Session),
		flashes:  make(map[string][]Flash),
	}
}

// Create stores a new session under a random opaque token.
func (m *MemoryManager) Create(ctx context.Context, sess Session) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	token := uuid.NewString()
	m.sessions[token] = sess
	return token, nil
}

// Get returns the session for a token, or ErrNotFound.
func (m *MemoryManager) Get(ctx context.Context, token string) (*Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	sess, ok := m.sessions[token]
	if !ok {
		return nil, ErrNotFound
	}
	return &sess, nil
}

// Delete removes a session and its pending flashes.
func (m *MemoryManager) Delete(ctx context.Context, token string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.sessions, token)
	delete(m.flashes, token)
	return nil
}

// PushFlash queues a flash message on the session.
func (m *MemoryManager) PushFlash(ctx context.Context, token string, flash Flash) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.flashes[token] = append(m.flashes[token], flash)
	return nil
}

// PopFlashes returns and clears the session's queued flash messages.
func (m *MemoryManager) PopFlashes(ctx context.Context, token string) ([]Flash, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	flashes := m.flashes[token]
	delete(m.flashes, token)
	return flashes, nil
}
