package state

import (
	"sync"
	"time"
)

// Option configures a MemoryStore.
type Option func(*MemoryStore)

// WithClock replaces time.Now, mainly for tests.
func WithClock(now func() time.Time) Option {
	return func(m *MemoryStore) {
		if now != nil {
			m.now = now
		}
	}
}

type keyLock struct {
	mu   sync.Mutex
	refs int
}

// MemoryStore is an in-process Store. Sessions do not survive a restart.
type MemoryStore struct {
	mu       sync.Mutex
	sessions map[string]*Session
	timeout  time.Duration
	now      func() time.Time

	locksMu sync.Mutex
	locks   map[string]*keyLock
}

var _ Store = (*MemoryStore)(nil)

// NewMemoryStore constructs a store whose sessions live for timeout after their last write.
func NewMemoryStore(timeout time.Duration, opts ...Option) *MemoryStore {
	m := &MemoryStore{
		sessions: make(map[string]*Session),
		timeout:  timeout,
		now:      time.Now,
		locks:    make(map[string]*keyLock),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Get returns a copy of the live session for chatID.
func (m *MemoryStore) Get(chatID string) (*Session, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	s, ok := m.sessions[chatID]
	if !ok {
		return nil, false
	}
	if m.now().After(s.ExpiresAt) {
		delete(m.sessions, chatID)
		return nil, false
	}
	return s.Clone(), true
}

// Set stores a copy of s and refreshes UpdatedAt and ExpiresAt.
func (m *MemoryStore) Set(chatID string, s *Session) {
	if s == nil {
		return
	}
	now := m.now()
	stored := s.Clone()
	stored.ChatID = chatID
	stored.UpdatedAt = now
	stored.ExpiresAt = now.Add(m.timeout)

	m.mu.Lock()
	m.sessions[chatID] = stored
	m.mu.Unlock()
}

// Delete removes the session for chatID.
func (m *MemoryStore) Delete(chatID string) {
	m.mu.Lock()
	delete(m.sessions, chatID)
	m.mu.Unlock()
}

// Cleanup removes expired sessions.
func (m *MemoryStore) Cleanup() int {
	now := m.now()
	m.mu.Lock()
	defer m.mu.Unlock()
	removed := 0
	for id, s := range m.sessions {
		if s.ExpiresAt.Before(now) {
			delete(m.sessions, id)
			removed++
		}
	}
	return removed
}

// Len reports the number of stored sessions, expired ones included.
func (m *MemoryStore) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.sessions)
}

// CreateSession returns a new add-product session at the name step.
func (m *MemoryStore) CreateSession(chatID string) *Session {
	now := m.now()
	return &Session{
		ChatID:    chatID,
		Flow:      FlowAddProduct,
		Step:      StepName,
		CreatedAt: now,
		UpdatedAt: now,
		ExpiresAt: now.Add(m.timeout),
	}
}

// Lock acquires the per-chat mutex. Lock entries are dropped once no caller holds or waits on them.
func (m *MemoryStore) Lock(chatID string) func() {
	m.locksMu.Lock()
	kl, ok := m.locks[chatID]
	if !ok {
		kl = &keyLock{}
		m.locks[chatID] = kl
	}
	kl.refs++
	m.locksMu.Unlock()

	kl.mu.Lock()

	var once sync.Once
	return func() {
		once.Do(func() {
			kl.mu.Unlock()
			m.locksMu.Lock()
			kl.refs--
			if kl.refs == 0 {
				delete(m.locks, chatID)
			}
			m.locksMu.Unlock()
		})
	}
}
