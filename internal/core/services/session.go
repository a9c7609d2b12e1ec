package services

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/custodia-labs/docqa-cli/internal/core/domain"
	"github.com/custodia-labs/docqa-cli/internal/core/ports/driven"
	"github.com/custodia-labs/docqa-cli/internal/core/ports/driving"
	"github.com/custodia-labs/docqa-cli/internal/logger"
)

// Ensure SessionService implements the interface.
var _ driving.SessionManager = (*SessionService)(nil)

// SessionService is a thin facade composing the session store and the
// share store for consumption by the outer layers.
type SessionService struct {
	sessions driven.SessionStore
	shares   driven.ShareStore
}

// NewSessionService creates a session manager.
func NewSessionService(sessions driven.SessionStore, shares driven.ShareStore) *SessionService {
	return &SessionService{sessions: sessions, shares: shares}
}

// ListSessions returns all persisted session ids.
func (s *SessionService) ListSessions(ctx context.Context) ([]string, error) {
	return s.sessions.List(ctx)
}

// LoadSession returns the session stored under id. A missing session
// loads with an empty turn log.
func (s *SessionService) LoadSession(ctx context.Context, id string) *domain.Session {
	return &domain.Session{ID: id, Turns: s.sessions.Load(ctx, id)}
}

// RecordTurn prepends the turn to the session's log and persists it.
// The in-memory session is updated even when the save fails, so the
// ongoing chat keeps working; the error tells the caller durability
// was lost.
func (s *SessionService) RecordTurn(ctx context.Context, session *domain.Session, turn domain.ChatTurn) error {
	session.Prepend(turn)
	if err := s.sessions.Save(ctx, session.ID, session.Turns); err != nil {
		logger.Error("Saving session %q: %v", session.ID, err)
		return fmt.Errorf("saving session %q: %w", session.ID, err)
	}
	return nil
}

// ClearSession removes the session's persisted turn log. Clearing an
// absent session is not an error.
func (s *SessionService) ClearSession(ctx context.Context, id string) error {
	return s.sessions.Clear(ctx, id)
}

// RenameSession moves the turn log from oldID to newID. A missing
// oldID is a no-op; an existing newID is overwritten.
func (s *SessionService) RenameSession(ctx context.Context, oldID, newID string) error {
	return s.sessions.Rename(ctx, oldID, newID)
}

// DeleteSession removes the session. Idempotent.
func (s *SessionService) DeleteSession(ctx context.Context, id string) error {
	return s.sessions.Clear(ctx, id)
}

// ExportSession serialises the session's persisted turns to indented
// JSON for download.
func (s *SessionService) ExportSession(ctx context.Context, id string) (string, error) {
	turns := s.sessions.Load(ctx, id)
	data, err := json.MarshalIndent(turns, "", "  ")
	if err != nil {
		return "", fmt.Errorf("exporting session %q: %w", id, err)
	}
	return string(data), nil
}

// Share mints an unguessable token for a frozen snapshot of the
// session's persisted turns.
func (s *SessionService) Share(ctx context.Context, id string) (string, error) {
	turns := s.sessions.Load(ctx, id)
	token, err := s.shares.Mint(ctx, id, turns)
	if err != nil {
		return "", fmt.Errorf("sharing session %q: %w", id, err)
	}
	logger.Info("Shared session %q as token %s", id, token)
	return token, nil
}

// ResolveShare returns the snapshot for token, or nil when the token
// is unknown.
func (s *SessionService) ResolveShare(ctx context.Context, token string) (*domain.ShareSnapshot, error) {
	return s.shares.Resolve(ctx, token)
}
