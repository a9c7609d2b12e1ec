package driven

import (
	"context"

	"github.com/custodia-labs/docqa-cli/internal/core/domain"
)

// SessionStore persists per-session chat logs keyed by session id.
//
// Reads never fail: a missing or unreadable session loads as an empty
// turn log. Writes report their error so the caller can decide whether
// durability matters for the interaction at hand.
type SessionStore interface {
	// Load returns the turn log for id, newest-first. Missing or
	// unreadable sessions yield an empty log, never an error.
	Load(ctx context.Context, id string) []domain.ChatTurn

	// Save replaces the turn log stored under id.
	Save(ctx context.Context, id string, turns []domain.ChatTurn) error

	// Clear removes the session. Clearing an absent session is a no-op.
	Clear(ctx context.Context, id string) error

	// Rename moves the turn log from oldID to newID. A missing oldID
	// is a no-op; an existing newID is overwritten (last write wins).
	Rename(ctx context.Context, oldID, newID string) error

	// List returns all persisted session ids in a stable order.
	List(ctx context.Context) ([]string, error)
}

// ShareStore persists immutable session snapshots keyed by opaque,
// unguessable tokens. Snapshots never expire and cannot be revoked.
type ShareStore interface {
	// Mint persists a snapshot of turns for chatID under a fresh
	// token and returns the token.
	Mint(ctx context.Context, chatID string, turns []domain.ChatTurn) (string, error)

	// Resolve returns the snapshot for token, or nil when the token is
	// unknown or the record unreadable. Never returns an error for
	// unknown tokens.
	Resolve(ctx context.Context, token string) (*domain.ShareSnapshot, error)
}
