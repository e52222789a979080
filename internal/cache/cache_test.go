package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"threadai/internal/metrics"
)

type cachedUser struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

func newTestClient(t *testing.T) (*Client, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	c := New(mr.Addr(), "", 0)
	t.Cleanup(func() { _ = c.Close() })
	return c, mr
}

func TestClient_JSONRoundTripAndExpiry(t *testing.T) {
	ctx := context.Background()
	c, mr := newTestClient(t)

	require.NoError(t, c.Ping(ctx))
	require.NoError(t, c.SetJSON(ctx, UserKey("1"), cachedUser{ID: "1", Name: "Ada"}, time.Minute))
	assert.True(t, mr.Exists("user:1"))

	var got cachedUser
	require.True(t, c.GetJSON(ctx, UserKey("1"), &got))
	assert.Equal(t, "Ada", got.Name)

	mr.FastForward(2 * time.Minute)
	assert.False(t, c.GetJSON(ctx, UserKey("1"), &got))

	require.NoError(t, c.SetJSON(ctx, UserKey("2"), cachedUser{ID: "2"}, time.Minute))
	c.Delete(ctx, UserKey("2"))
	assert.False(t, c.GetJSON(ctx, UserKey("2"), &got))
}

func TestClient_GetJSONIgnoresUndecodableValue(t *testing.T) {
	ctx := context.Background()
	c, mr := newTestClient(t)
	require.NoError(t, mr.Set(UserKey("1"), "not json"))

	var got cachedUser
	assert.False(t, c.GetJSON(ctx, UserKey("1"), &got))
}

func TestClient_SetJSONRejectsUnencodable(t *testing.T) {
	c, _ := newTestClient(t)
	assert.Error(t, c.SetJSON(context.Background(), "k", make(chan int), time.Minute))
}

func TestClient_MarkAndExists(t *testing.T) {
	ctx := context.Background()
	c, mr := newTestClient(t)

	assert.False(t, c.Exists(ctx, RevokedTokenKey("jti-1")))
	c.Mark(ctx, RevokedTokenKey("jti-1"), time.Minute)
	assert.True(t, c.Exists(ctx, RevokedTokenKey("jti-1")))
	assert.True(t, mr.Exists("blacklist:access_token:jti-1"))

	c.Mark(ctx, RevokedTokenKey("jti-2"), 0)
	assert.False(t, mr.Exists(RevokedTokenKey("jti-2")))

	mr.FastForward(time.Minute + time.Second)
	assert.False(t, c.Exists(ctx, RevokedTokenKey("jti-1")))
}

func TestClient_FailsSafeWhenRedisIsDown(t *testing.T) {
	ctx := context.Background()
	c, mr := newTestClient(t)
	mr.Close()
	before := testutil.ToFloat64(metrics.RedisErrors.WithLabelValues("exists"))

	var got cachedUser
	assert.False(t, c.GetJSON(ctx, "k", &got))
	assert.NoError(t, c.SetJSON(ctx, "k", cachedUser{}, time.Minute))
	c.Mark(ctx, "k", time.Minute)
	assert.False(t, c.Exists(ctx, "k"))
	c.Delete(ctx, "k")
	assert.Error(t, c.Ping(ctx))

	assert.Equal(t, before+1, testutil.ToFloat64(metrics.RedisErrors.WithLabelValues("exists")))
}

func TestClient_NilIsEmptyCache(t *testing.T) {
	var c *Client
	ctx := context.Background()

	var got cachedUser
	assert.False(t, c.GetJSON(ctx, "k", &got))
	assert.NoError(t, c.SetJSON(ctx, "k", cachedUser{}, time.Minute))
	c.Mark(ctx, "k", time.Minute)
	assert.False(t, c.Exists(ctx, "k"))
	c.Delete(ctx, "k")
	assert.NoError(t, c.Close())
	assert.Error(t, c.Ping(ctx))
}
