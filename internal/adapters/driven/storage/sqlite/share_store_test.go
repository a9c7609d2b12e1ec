package sqlite

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/docqa-cli/internal/core/domain"
)

func TestShareMintAndResolve(t *testing.T) {
	store := newTestStore(t)
	shares := store.ShareStore()
	ctx := context.Background()

	turns := sampleTurns()
	token, err := shares.Mint(ctx, "s1", turns)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	snapshot, err := shares.Resolve(ctx, token)
	require.NoError(t, err)
	require.NotNil(t, snapshot)
	assert.Equal(t, token, snapshot.Token)
	assert.Equal(t, "s1", snapshot.ChatID)
	assert.Equal(t, turns, snapshot.Turns)
}

func TestShareResolveUnknownToken(t *testing.T) {
	store := newTestStore(t)
	shares := store.ShareStore()

	snapshot, err := shares.Resolve(context.Background(), "no-such-token")
	require.NoError(t, err)
	assert.Nil(t, snapshot)
}

func TestShareSnapshotSurvivesSessionChanges(t *testing.T) {
	store := newTestStore(t)
	sessions := store.SessionStore()
	shares := store.ShareStore()
	ctx := context.Background()

	turns := sampleTurns()
	require.NoError(t, sessions.Save(ctx, "s1", turns))

	token, err := shares.Mint(ctx, "s1", turns)
	require.NoError(t, err)

	// Clearing the source session must not touch the snapshot.
	require.NoError(t, sessions.Clear(ctx, "s1"))

	snapshot, err := shares.Resolve(ctx, token)
	require.NoError(t, err)
	require.NotNil(t, snapshot)
	assert.Equal(t, turns, snapshot.Turns)
}

func TestShareMintEmptyHistory(t *testing.T) {
	store := newTestStore(t)
	shares := store.ShareStore()
	ctx := context.Background()

	token, err := shares.Mint(ctx, "s1", nil)
	require.NoError(t, err)

	snapshot, err := shares.Resolve(ctx, token)
	require.NoError(t, err)
	require.NotNil(t, snapshot)
	assert.Empty(t, snapshot.Turns)
}

func TestShareTokensDiffer(t *testing.T) {
	store := newTestStore(t)
	shares := store.ShareStore()
	ctx := context.Background()

	first, err := shares.Mint(ctx, "s1", sampleTurns())
	require.NoError(t, err)
	second, err := shares.Mint(ctx, "s1", sampleTurns())
	require.NoError(t, err)
	assert.NotEqual(t, first, second)
}

func TestShareCorruptSnapshotResolvesNil(t *testing.T) {
	store := newTestStore(t)
	shares := store.ShareStore()
	ctx := context.Background()

	_, err := store.db.ExecContext(ctx,
		"INSERT INTO shares (token, chat_id, turns, created_at) VALUES (?, ?, ?, ?)",
		"broken-token", "s1", "{not json", time.Now().UTC())
	require.NoError(t, err)

	snapshot, err := shares.Resolve(ctx, "broken-token")
	require.NoError(t, err)
	assert.Nil(t, snapshot)
}
