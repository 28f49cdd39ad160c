package repository

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/grapplehq/ringside/internal/utils"
)

func TestCreateUserNormalizesAndHashes(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	users := NewUserRepo(db)

	id, err := users.Create(ctx, "  Booker  ", "strong-password", 4)
	require.NoError(t, err)

	u, err := users.GetByUsername(ctx, "booker")
	require.NoError(t, err)
	assert.Equal(t, id, u.ID)
	assert.Equal(t, "booker", u.Username)
	assert.NotEqual(t, "strong-password", u.Password)
	assert.True(t, utils.VerifyPassword(u.Password, "strong-password"))

	// Same name with different casing collides.
	_, err = users.Create(ctx, "BOOKER", "another-password", 4)
	assert.ErrorIs(t, err, ErrUsernameExists)
}

func TestRefreshTokenLifecycle(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	users := NewUserRepo(db)
	tokens := NewTokenRepo(db)

	userID, err := users.Create(ctx, "booker", "strong-password", 4)
	require.NoError(t, err)

	hash := utils.HashRefreshRaw("raw-refresh-token")
	require.NoError(t, tokens.StoreRefresh(ctx, userID, hash, time.Now().UTC().Add(time.Hour)))

	got, err := tokens.ValidateRefresh(ctx, hash)
	require.NoError(t, err)
	assert.Equal(t, userID, got)

	require.NoError(t, tokens.RevokeByHash(ctx, hash))
	_, err = tokens.ValidateRefresh(ctx, hash)
	assert.ErrorIs(t, err, sql.ErrNoRows)

	// Unknown hashes are indistinguishable from revoked ones.
	_, err = tokens.ValidateRefresh(ctx, utils.HashRefreshRaw("never stored"))
	assert.ErrorIs(t, err, sql.ErrNoRows)
}

func TestExpiredRefreshTokenRejected(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	users := NewUserRepo(db)
	tokens := NewTokenRepo(db)

	userID, err := users.Create(ctx, "booker", "strong-password", 4)
	require.NoError(t, err)

	hash := utils.HashRefreshRaw("stale-token")
	require.NoError(t, tokens.StoreRefresh(ctx, userID, hash, time.Now().UTC().Add(-time.Minute)))

	_, err = tokens.ValidateRefresh(ctx, hash)
	assert.ErrorIs(t, err, sql.ErrNoRows)
}
