package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/custodia-labs/docqa-cli/internal/core/domain"
	"github.com/custodia-labs/docqa-cli/internal/core/ports/driven"
	"github.com/custodia-labs/docqa-cli/internal/logger"
)

// shareStore implements driven.ShareStore.
type shareStore struct {
	store *Store
}

var _ driven.ShareStore = (*shareStore)(nil)

// Mint persists an immutable snapshot of turns for chatID under a
// fresh UUID token and returns the token.
func (s *shareStore) Mint(ctx context.Context, chatID string, turns []domain.ChatTurn) (string, error) {
	if turns == nil {
		turns = []domain.ChatTurn{}
	}
	turnsJSON, err := json.Marshal(turns)
	if err != nil {
		return "", fmt.Errorf("marshalling snapshot: %w", err)
	}

	token := uuid.New().String()
	_, err = s.store.db.ExecContext(ctx, `
		INSERT INTO shares (token, chat_id, turns, created_at)
		VALUES (?, ?, ?, ?)
	`, token, chatID, string(turnsJSON), time.Now().UTC())

	if err != nil {
		return "", fmt.Errorf("saving snapshot: %w", err)
	}
	return token, nil
}

// Resolve returns the snapshot for token, or nil when the token is
// unknown or the record unreadable.
func (s *shareStore) Resolve(ctx context.Context, token string) (*domain.ShareSnapshot, error) {
	row := s.store.db.QueryRowContext(ctx,
		"SELECT chat_id, turns FROM shares WHERE token = ?", token)

	var chatID, turnsJSON string
	if err := row.Scan(&chatID, &turnsJSON); err != nil {
		if !errors.Is(err, sql.ErrNoRows) {
			logger.Warn("Resolving share token %s: %v", token, err)
		}
		return nil, nil
	}

	var turns []domain.ChatTurn
	if err := json.Unmarshal([]byte(turnsJSON), &turns); err != nil {
		logger.Warn("Decoding share token %s: %v", token, err)
		return nil, nil
	}

	return &domain.ShareSnapshot{
		Token:  token,
		ChatID: chatID,
		Turns:  turns,
	}, nil
}
