package repository

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupCodeRepo(t *testing.T) (CodeRepository, *miniredis.Miniredis) {
	t.Helper()

	server := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: server.Addr()})
	t.Cleanup(func() { client.Close() })
	return NewCodeRepository(client), server
}

func TestCodeRepository_SaveVerifyDelete(t *testing.T) {
	repo, _ := setupCodeRepo(t)
	ctx := context.Background()

	require.NoError(t, repo.Save(ctx, "alice", "secret-code", time.Hour))

	assert.NoError(t, repo.Verify(ctx, "alice", "secret-code"))
	assert.ErrorIs(t, repo.Verify(ctx, "alice", "wrong-code"), ErrCodeMismatch)
	assert.ErrorIs(t, repo.Verify(ctx, "bob", "secret-code"), ErrCodeNotFound)

	require.NoError(t, repo.Delete(ctx, "alice"))
	assert.ErrorIs(t, repo.Verify(ctx, "alice", "secret-code"), ErrCodeNotFound)
}

func TestCodeRepository_Expiry(t *testing.T) {
	repo, server := setupCodeRepo(t)
	ctx := context.Background()

	require.NoError(t, repo.Save(ctx, "carol", "short-lived", time.Minute))
	assert.NoError(t, repo.Verify(ctx, "carol", "short-lived"))

	server.FastForward(2 * time.Minute)
	assert.ErrorIs(t, repo.Verify(ctx, "carol", "short-lived"), ErrCodeNotFound)
}

func TestCodeRepository_OnlyHashStored(t *testing.T) {
	repo, server := setupCodeRepo(t)
	ctx := context.Background()

	require.NoError(t, repo.Save(ctx, "dave", "plaintext-code", time.Hour))

	stored, err := server.Get("confirm:dave")
	require.NoError(t, err)
	assert.NotContains(t, stored, "plaintext-code")
}
