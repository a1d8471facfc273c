package memory

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/custodia-labs/folio-cli/internal/core/domain"
	"github.com/custodia-labs/folio-cli/internal/core/ports/driven"
)

// Ensure SessionStore implements the interface.
var _ driven.SessionStore = (*SessionStore)(nil)

// SessionStore is an in-memory implementation of driven.SessionStore.
type SessionStore struct {
	mu       sync.RWMutex
	sessions map[string][]byte

	// saves counts successful SaveSession calls.
	saves int
}

// NewSessionStore creates a new in-memory session store.
func NewSessionStore() *SessionStore {
	return &SessionStore{
		sessions: make(map[string][]byte),
	}
}

// SaveSession replaces the stored session under key.
func (s *SessionStore) SaveSession(_ context.Context, key string, session domain.Session) error {
	data, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("marshalling session: %w", err)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[key] = data
	s.saves++
	return nil
}

// LoadSession retrieves the session under key.
func (s *SessionStore) LoadSession(_ context.Context, key string) (*domain.Session, error) {
	s.mu.RLock()
	data, ok := s.sessions[key]
	s.mu.RUnlock()
	if !ok {
		return nil, domain.ErrNotFound
	}
	var session domain.Session
	if err := json.Unmarshal(data, &session); err != nil {
		return nil, fmt.Errorf("unmarshalling session: %w", err)
	}
	return &session, nil
}

// ClearSession removes the session under key.
func (s *SessionStore) ClearSession(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, key)
	return nil
}

// Saves returns how many times a session was written.
func (s *SessionStore) Saves() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.saves
}
