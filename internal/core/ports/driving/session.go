package driving

import (
	"context"

	"github.com/custodia-labs/docqa-cli/internal/core/domain"
)

// SessionManager exposes chat session and share-link operations.
type SessionManager interface {
	// ListSessions returns all persisted session ids.
	ListSessions(ctx context.Context) ([]string, error)

	// LoadSession returns the session stored under id. Missing
	// sessions load with an empty turn log.
	LoadSession(ctx context.Context, id string) *domain.Session

	// RecordTurn prepends a turn to the session's log and persists it.
	// The returned error reports persistence failure; the in-memory
	// session is updated regardless.
	RecordTurn(ctx context.Context, session *domain.Session, turn domain.ChatTurn) error

	// ClearSession removes the session's persisted log. Idempotent.
	ClearSession(ctx context.Context, id string) error

	// RenameSession moves a session to a new id. A missing old id is a
	// no-op; an existing new id is overwritten.
	RenameSession(ctx context.Context, oldID, newID string) error

	// DeleteSession removes the session. Idempotent.
	DeleteSession(ctx context.Context, id string) error

	// ExportSession serialises the session's turns to indented JSON.
	ExportSession(ctx context.Context, id string) (string, error)

	// Share mints a share token for a frozen snapshot of the session's
	// persisted turns.
	Share(ctx context.Context, id string) (string, error)

	// ResolveShare returns the snapshot for token, or nil when the
	// token is unknown.
	ResolveShare(ctx context.Context, token string) (*domain.ShareSnapshot, error)
}
