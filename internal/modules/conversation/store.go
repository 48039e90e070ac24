// README: Session store: keyed creation, mutation and destruction.
package conversation

import (
	"errors"
	"sync"
	"time"
)

var ErrNoSession = errors.New("no session for user")

// Store holds one session per user id. Callers serialize access per user
// through the engine's lock; the store only guards its own map.
type Store interface {
	Get(userID string) (*Session, bool)
	Create(userID string, step Step) *Session
	Update(userID string, mutate func(*Session)) error
	Destroy(userID string)
	Count() int
}

type memoryStore struct {
	mu       sync.RWMutex
	sessions map[string]*Session
}

func NewMemoryStore() Store {
	return &memoryStore{sessions: make(map[string]*Session)}
}

func (m *memoryStore) Get(userID string) (*Session, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	s, ok := m.sessions[userID]
	return s, ok
}

// Create replaces any existing session for the user, mirroring a wizard
// restart from the menu.
func (m *memoryStore) Create(userID string, step Step) *Session {
	now := time.Now()
	s := &Session{
		UserID:         userID,
		Step:           step,
		CreatedAt:      now,
		LastActivityAt: now,
	}
	m.mu.Lock()
	m.sessions[userID] = s
	m.mu.Unlock()
	return s
}

func (m *memoryStore) Update(userID string, mutate func(*Session)) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.sessions[userID]
	if !ok {
		return ErrNoSession
	}
	mutate(s)
	return nil
}

func (m *memoryStore) Destroy(userID string) {
	m.mu.Lock()
	delete(m.sessions, userID)
	m.mu.Unlock()
}

func (m *memoryStore) Count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}
