package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/custodia-labs/docqa-cli/internal/core/domain"
	"github.com/custodia-labs/docqa-cli/internal/core/ports/driven"
)

// Ensure SessionStore implements the interface.
var _ driven.SessionStore = (*SessionStore)(nil)

// SessionStore is an in-memory session store. Data is lost when the
// process exits; intended for tests and ephemeral runs.
type SessionStore struct {
	mu       sync.RWMutex
	sessions map[string][]domain.ChatTurn
}

// NewSessionStore creates an empty in-memory session store.
func NewSessionStore() *SessionStore {
	return &SessionStore{sessions: make(map[string][]domain.ChatTurn)}
}

// Load returns the turn log for id, empty when missing.
func (s *SessionStore) Load(_ context.Context, id string) []domain.ChatTurn {
	s.mu.RLock()
	defer s.mu.RUnlock()

	turns, ok := s.sessions[id]
	if !ok {
		return []domain.ChatTurn{}
	}
	out := make([]domain.ChatTurn, len(turns))
	copy(out, turns)
	return out
}

// Save replaces the turn log stored under id.
func (s *SessionStore) Save(_ context.Context, id string, turns []domain.ChatTurn) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	stored := make([]domain.ChatTurn, len(turns))
	copy(stored, turns)
	s.sessions[id] = stored
	return nil
}

// Clear removes the session. Idempotent.
func (s *SessionStore) Clear(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.sessions, id)
	return nil
}

// Rename moves the turn log from oldID to newID. A missing oldID is a
// no-op; an existing newID is overwritten.
func (s *SessionStore) Rename(_ context.Context, oldID, newID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	turns, ok := s.sessions[oldID]
	if !ok || oldID == newID {
		return nil
	}
	s.sessions[newID] = turns
	delete(s.sessions, oldID)
	return nil
}

// List returns all session ids, sorted.
func (s *SessionStore) List(_ context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ids := make([]string, 0, len(s.sessions))
	for id := range s.sessions {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids, nil
}
