package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/custodia-labs/docqa-cli/internal/core/domain"
	"github.com/custodia-labs/docqa-cli/internal/core/ports/driven"
	"github.com/custodia-labs/docqa-cli/internal/logger"
)

// sessionStore implements driven.SessionStore.
type sessionStore struct {
	store *Store
}

var _ driven.SessionStore = (*sessionStore)(nil)

// Load returns the turn log for id. Missing or unreadable sessions
// yield an empty log, never an error.
func (s *sessionStore) Load(ctx context.Context, id string) []domain.ChatTurn {
	row := s.store.db.QueryRowContext(ctx,
		"SELECT turns FROM sessions WHERE id = ?", id)

	var turnsJSON string
	if err := row.Scan(&turnsJSON); err != nil {
		if !errors.Is(err, sql.ErrNoRows) {
			logger.Warn("Loading session %q: %v", id, err)
		}
		return []domain.ChatTurn{}
	}

	var turns []domain.ChatTurn
	if err := json.Unmarshal([]byte(turnsJSON), &turns); err != nil {
		logger.Warn("Decoding session %q: %v", id, err)
		return []domain.ChatTurn{}
	}
	if turns == nil {
		turns = []domain.ChatTurn{}
	}
	return turns
}

// Save replaces the turn log stored under id.
func (s *sessionStore) Save(ctx context.Context, id string, turns []domain.ChatTurn) error {
	if turns == nil {
		turns = []domain.ChatTurn{}
	}
	turnsJSON, err := json.Marshal(turns)
	if err != nil {
		return fmt.Errorf("marshalling turns: %w", err)
	}

	_, err = s.store.db.ExecContext(ctx, `
		INSERT INTO sessions (id, turns, updated_at)
		VALUES (?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			turns = excluded.turns,
			updated_at = excluded.updated_at
	`, id, string(turnsJSON), time.Now().UTC())

	if err != nil {
		return fmt.Errorf("saving session: %w", err)
	}
	return nil
}

// Clear removes the session. Clearing an absent session is a no-op.
func (s *sessionStore) Clear(ctx context.Context, id string) error {
	_, err := s.store.db.ExecContext(ctx, "DELETE FROM sessions WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("clearing session: %w", err)
	}
	return nil
}

// Rename moves the turn log from oldID to newID within one
// transaction. A missing oldID is a no-op; an existing newID is
// overwritten (last write wins).
func (s *sessionStore) Rename(ctx context.Context, oldID, newID string) error {
	if oldID == newID {
		return nil
	}

	tx, err := s.store.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	var exists int
	row := tx.QueryRowContext(ctx, "SELECT COUNT(*) FROM sessions WHERE id = ?", oldID)
	if err := row.Scan(&exists); err != nil {
		return fmt.Errorf("checking session: %w", err)
	}
	if exists == 0 {
		return nil
	}

	if _, err := tx.ExecContext(ctx, "DELETE FROM sessions WHERE id = ?", newID); err != nil {
		return fmt.Errorf("replacing session: %w", err)
	}
	if _, err := tx.ExecContext(ctx,
		"UPDATE sessions SET id = ?, updated_at = ? WHERE id = ?",
		newID, time.Now().UTC(), oldID); err != nil {
		return fmt.Errorf("renaming session: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing rename: %w", err)
	}
	return nil
}

// List returns all persisted session ids, sorted.
func (s *sessionStore) List(ctx context.Context) ([]string, error) {
	rows, err := s.store.db.QueryContext(ctx, "SELECT id FROM sessions ORDER BY id")
	if err != nil {
		return nil, fmt.Errorf("querying sessions: %w", err)
	}
	defer rows.Close()

	var ids []string //nolint:prealloc // size unknown from query
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scanning session id: %w", err)
		}
		ids = append(ids, id)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating sessions: %w", err)
	}
	return ids, nil
}
