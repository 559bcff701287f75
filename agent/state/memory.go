package state

import (
	"context"
	"fmt"
	"sync"
	"time"
)

// MemoryStore is the in-process fallback used when Redis is not configured,
// and the store of choice in tests. Expiry is evaluated lazily on Load.
type MemoryStore struct {
	mu      sync.Mutex
	entries map[string]memoryEntry
	opts    storeOptions
	now     func() time.Time
}

type memoryEntry struct {
	session   Session
	expiresAt time.Time
}

func NewMemoryStore(opts ...StoreOption) *MemoryStore {
	return &MemoryStore{
		entries: make(map[string]memoryEntry),
		opts:    applyStoreOptions(opts),
		now:     time.Now,
	}
}

func (s *MemoryStore) Load(ctx context.Context, sessionID string) (*Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry, ok := s.entries[sessionID]
	if !ok || s.now().After(entry.expiresAt) {
		delete(s.entries, sessionID)
		return nil, fmt.Errorf("%w: %s", ErrSessionNotFound, sessionID)
	}

	session := entry.session
	return &session, nil
}

func (s *MemoryStore) Save(ctx context.Context, session *Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.entries[session.SessionID] = memoryEntry{
		session:   *session,
		expiresAt: s.now().Add(s.opts.ttl),
	}
	return nil
}

func (s *MemoryStore) Delete(ctx context.Context, sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.entries, sessionID)
	return nil
}
