package auth

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"threadai/internal/cache"
)

func TestTokenStore_Blacklist(t *testing.T) {
	ctx := context.Background()
	mr := miniredis.RunT(t)
	store := NewTokenStore(cache.New(mr.Addr(), "", 0))

	revoked, err := store.IsAccessTokenBlacklisted(ctx, "jti-1")
	require.NoError(t, err)
	assert.False(t, revoked)

	require.NoError(t, store.BlacklistAccessToken(ctx, "jti-1", time.Minute))
	revoked, err = store.IsAccessTokenBlacklisted(ctx, "jti-1")
	require.NoError(t, err)
	assert.True(t, revoked)

	mr.FastForward(time.Minute + time.Second)
	revoked, err = store.IsAccessTokenBlacklisted(ctx, "jti-1")
	require.NoError(t, err)
	assert.False(t, revoked)
}

func TestTokenStore_SkipsExpiredTokens(t *testing.T) {
	ctx := context.Background()
	mr := miniredis.RunT(t)
	store := NewTokenStore(cache.New(mr.Addr(), "", 0))

	require.NoError(t, store.BlacklistAccessToken(ctx, "jti-2", -time.Second))
	assert.False(t, mr.Exists(cache.RevokedTokenKey("jti-2")))
}
