package memory

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/custodia-labs/docqa-cli/internal/core/domain"
	"github.com/custodia-labs/docqa-cli/internal/core/ports/driven"
)

// Ensure ShareStore implements the interface.
var _ driven.ShareStore = (*ShareStore)(nil)

// ShareStore is an in-memory share snapshot store for tests and
// ephemeral runs.
type ShareStore struct {
	mu        sync.RWMutex
	snapshots map[string]domain.ShareSnapshot
}

// NewShareStore creates an empty in-memory share store.
func NewShareStore() *ShareStore {
	return &ShareStore{snapshots: make(map[string]domain.ShareSnapshot)}
}

// Mint stores a snapshot of turns for chatID under a fresh UUID token.
func (s *ShareStore) Mint(_ context.Context, chatID string, turns []domain.ChatTurn) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	token := uuid.New().String()
	stored := make([]domain.ChatTurn, len(turns))
	copy(stored, turns)
	s.snapshots[token] = domain.ShareSnapshot{
		Token:  token,
		ChatID: chatID,
		Turns:  stored,
	}
	return token, nil
}

// Resolve returns the snapshot for token, or nil when unknown.
func (s *ShareStore) Resolve(_ context.Context, token string) (*domain.ShareSnapshot, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snapshot, ok := s.snapshots[token]
	if !ok {
		return nil, nil
	}
	return &snapshot, nil
}
