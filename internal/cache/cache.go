// Package cache is the redis layer behind the user lookup cache and the
// access-token revocation list. Redis is optional: when it is unreachable
// every read is a miss and every write is dropped, and the failure is counted
// in threadai_redis_errors_total.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"threadai/internal/metrics"
)

// UserKey is where a user record is cached by id.
func UserKey(id string) string {
	return "user:" + id
}

// RevokedTokenKey flags a revoked access token by its jti.
func RevokedTokenKey(jti string) string {
	return "blacklist:access_token:" + jti
}

// Client is a fail-safe redis client. A nil *Client is an always-empty cache.
type Client struct {
	client *redis.Client
}

// New connects lazily; nothing is dialed until the first command.
func New(addr, password string, db int) *Client {
	return &Client{client: redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})}
}

func (c *Client) disabled() bool {
	return c == nil || c.client == nil
}

func failed(op string, err error) bool {
	if err == nil || errors.Is(err, redis.Nil) {
		return false
	}
	metrics.RedisErrors.WithLabelValues(op).Inc()
	return true
}

// Ping reports whether redis is reachable. Startup only logs the result.
func (c *Client) Ping(ctx context.Context) error {
	if c.disabled() {
		return errors.New("cache disabled")
	}
	return c.client.Ping(ctx).Err()
}

// GetJSON decodes the cached value into dst. It reports false on a miss, when
// redis is down, or when the stored bytes no longer decode.
func (c *Client) GetJSON(ctx context.Context, key string, dst any) bool {
	if c.disabled() {
		return false
	}
	data, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		failed("get", err)
		return false
	}
	return json.Unmarshal(data, dst) == nil
}

// SetJSON caches v as JSON for ttl. Only an unencodable value is an error.
func (c *Client) SetJSON(ctx context.Context, key string, v any, ttl time.Duration) error {
	payload, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}
	if c.disabled() {
		return nil
	}
	failed("set", c.client.Set(ctx, key, payload, ttl).Err())
	return nil
}

// Mark sets a presence flag that expires after ttl.
func (c *Client) Mark(ctx context.Context, key string, ttl time.Duration) {
	if c.disabled() || ttl <= 0 {
		return
	}
	failed("set", c.client.Set(ctx, key, "1", ttl).Err())
}

// Exists reports whether key is present. Unreachable redis reads as absent.
func (c *Client) Exists(ctx context.Context, key string) bool {
	if c.disabled() {
		return false
	}
	n, err := c.client.Exists(ctx, key).Result()
	if failed("exists", err) {
		return false
	}
	return n > 0
}

// Delete drops key, typically after the record behind it changed.
func (c *Client) Delete(ctx context.Context, key string) {
	if c.disabled() {
		return
	}
	failed("delete", c.client.Del(ctx, key).Err())
}

// Close releases the connection pool.
func (c *Client) Close() error {
	if c.disabled() {
		return nil
	}
	return c.client.Close()
}
