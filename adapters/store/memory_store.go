package store

import (
	"context"
	"sync"

	"github.com/dictgate/dictgate/core"
	"github.com/dictgate/dictgate/ports"
)

// MemoryStore is the reference SessionStore: a plain map guarded by a
// single exclusive lock. Sessions live until explicitly removed.
type MemoryStore struct {
	sessions map[string]core.Session
	mu       sync.Mutex
}

// NewMemoryStore creates an empty in-memory session store.
func NewMemoryStore() ports.SessionStore {
	return &MemoryStore{
		sessions: make(map[string]core.Session),
	}
}

// Get returns the session for clientID, reporting whether one exists.
func (s *MemoryStore) Get(ctx context.Context, clientID string) (core.Session, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	session, ok := s.sessions[clientID]
	return session, ok, nil
}

// Insert stores a new session for clientID.
func (s *MemoryStore) Insert(ctx context.Context, clientID string, session core.Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.sessions[clientID] = session
	return nil
}

// Update applies fn to the session for clientID under the store lock.
func (s *MemoryStore) Update(ctx context.Context, clientID string, fn func(*core.Session)) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	session, ok := s.sessions[clientID]
	if !ok {
		return core.ErrSessionNotFound
	}
	fn(&session)
	s.sessions[clientID] = session
	return nil
}

// Remove deletes the session for clientID.
func (s *MemoryStore) Remove(ctx context.Context, clientID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.sessions, clientID)
	return nil
}
