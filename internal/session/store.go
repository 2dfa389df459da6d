package session

import (
	"context"
	"errors"
	"sync"
	"time"
)

// ErrNoSession is returned when an ID has no live session.
var ErrNoSession = errors.New("session: not found")

// Store keeps sessions by ID. Records are written and replaced
// wholesale; there is no partial update.
type Store interface {
	Get(ctx context.Context, id string) (*Session, error)
	Put(ctx context.Context, id string, sess *Session, ttl time.Duration) error
	Delete(ctx context.Context, id string) error
}

// MemoryStore is the default in-process Store.
type MemoryStore struct {
	mu      sync.RWMutex
	entries map[string]memoryEntry
}

type memoryEntry struct {
	sess      Session
	expiresAt time.Time
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{entries: make(map[string]memoryEntry)}
}

func (m *MemoryStore) Get(ctx context.Context, id string) (*Session, error) {
	m.mu.RLock()
	entry, ok := m.entries[id]
	m.mu.RUnlock()
	if !ok {
		return nil, ErrNoSession
	}
	if time.Now().After(entry.expiresAt) {
		m.Delete(ctx, id)
		return nil, ErrNoSession
	}
	sess := entry.sess
	return &sess, nil
}

func (m *MemoryStore) Put(ctx context.Context, id string, sess *Session, ttl time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries[id] = memoryEntry{sess: *sess, expiresAt: time.Now().Add(ttl)}
	return nil
}

func (m *MemoryStore) Delete(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.entries, id)
	return nil
}
