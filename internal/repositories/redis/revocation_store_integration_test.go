//go:build integration

package redis_test

import (
	"context"
	"testing"
	"time"

	redisstore "github.com/SscSPs/kontrollavgift/internal/repositories/redis"
	"github.com/SscSPs/kontrollavgift/internal/testutil/containers"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRevocationStoreAgainstRedis(t *testing.T) {
	rc := containers.NewRedisContainer(t)
	ctx := context.Background()

	client, err := redisstore.NewClient(ctx, rc.Addr)
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Close() })
	store := redisstore.NewRevocationStore(client)

	revoked, err := store.IsSessionRevoked(ctx, "jti-1")
	require.NoError(t, err)
	assert.False(t, revoked)

	require.NoError(t, store.RevokeSession(ctx, "jti-1", time.Now().Add(time.Hour)))
	revoked, err = store.IsSessionRevoked(ctx, "jti-1")
	require.NoError(t, err)
	assert.True(t, revoked)

	ttl, err := rc.Client.TTL(ctx, "kontrollavgift:revoked:jti-1").Result()
	require.NoError(t, err)
	assert.Greater(t, ttl, 59*time.Minute)

	require.NoError(t, rc.FlushAll(ctx))
	revoked, err = store.IsSessionRevoked(ctx, "jti-1")
	require.NoError(t, err)
	assert.False(t, revoked)
}
