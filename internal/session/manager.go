package session

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/flashy-app/moderation-console/internal/domain"
)

// Manager owns all live sessions, keyed by session ID.
type Manager struct {
	mu       sync.RWMutex
	sessions map[string]*Session
	ttl      time.Duration
}

// NewManager creates a session manager. ttl bounds session lifetime.
func NewManager(ttl time.Duration) *Manager {
	if ttl <= 0 {
		ttl = 8 * time.Hour
	}
	return &Manager{
		sessions: make(map[string]*Session),
		ttl:      ttl,
	}
}

// Create registers a new session for the user and their upstream token.
func (m *Manager) Create(user domain.User, token string) *Session {
	sess := &Session{
		ID:        uuid.NewString(),
		Token:     token,
		User:      user,
		ExpiresAt: time.Now().Add(m.ttl),
	}
	m.mu.Lock()
	m.sessions[sess.ID] = sess
	m.mu.Unlock()
	return sess
}

// Get returns the session when it exists and has not expired. Expired
// sessions are removed on access.
func (m *Manager) Get(id string) (*Session, bool) {
	m.mu.RLock()
	sess, ok := m.sessions[id]
	m.mu.RUnlock()
	if !ok {
		return nil, false
	}
	if time.Now().After(sess.ExpiresAt) {
		m.Delete(id)
		return nil, false
	}
	return sess, true
}

// Delete removes a session.
func (m *Manager) Delete(id string) {
	m.mu.Lock()
	delete(m.sessions, id)
	m.mu.Unlock()
}
