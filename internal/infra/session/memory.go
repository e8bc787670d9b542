package session

import (
	"context"
	"sync"
	"time"
)

type memSession struct {
	values    map[string][]byte
	expiresAt time.Time
}

// MemoryStore keeps sessions in process. Each access slides the expiry.
type MemoryStore struct {
	mu       sync.Mutex
	sessions map[string]*memSession
	ttl      time.Duration
	now      func() time.Time
}

func NewMemoryStore(ttl time.Duration) *MemoryStore {
	if ttl <= 0 {
		ttl = 8 * time.Hour
	}
	return &MemoryStore{
		sessions: make(map[string]*memSession),
		ttl:      ttl,
		now:      time.Now,
	}
}

func (m *MemoryStore) Get(_ context.Context, sid, key string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	s := m.liveLocked(sid)
	if s == nil {
		return nil, ErrNotFound
	}
	v, ok := s.values[key]
	if !ok {
		return nil, ErrNotFound
	}
	out := make([]byte, len(v))
	copy(out, v)
	return out, nil
}

func (m *MemoryStore) Set(_ context.Context, sid, key string, value []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	s := m.liveLocked(sid)
	if s == nil {
		s = &memSession{values: make(map[string][]byte)}
		m.sessions[sid] = s
	}
	v := make([]byte, len(value))
	copy(v, value)
	s.values[key] = v
	s.expiresAt = m.now().Add(m.ttl)
	return nil
}

func (m *MemoryStore) Delete(_ context.Context, sid, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if s := m.liveLocked(sid); s != nil {
		delete(s.values, key)
	}
	return nil
}

func (m *MemoryStore) Clear(_ context.Context, sid string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, sid)
	return nil
}

// PurgeExpired drops expired sessions and returns how many were removed.
func (m *MemoryStore) PurgeExpired() int {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.now()
	n := 0
	for sid, s := range m.sessions {
		if now.After(s.expiresAt) {
			delete(m.sessions, sid)
			n++
		}
	}
	return n
}

func (m *MemoryStore) liveLocked(sid string) *memSession {
	s, ok := m.sessions[sid]
	if !ok {
		return nil
	}
	now := m.now()
	if now.After(s.expiresAt) {
		delete(m.sessions, sid)
		return nil
	}
	s.expiresAt = now.Add(m.ttl)
	return s
}
