package auth

import (
	"context"
	"time"

	"threadai/internal/cache"
)

// TokenStoreInterface defines the interface for token revocation.
type TokenStoreInterface interface {
	BlacklistAccessToken(ctx context.Context, tokenID string, ttl time.Duration) error
	IsAccessTokenBlacklisted(ctx context.Context, tokenID string) (bool, error)
}

// TokenStore keeps revoked access token ids in Redis until they expire.
type TokenStore struct {
	cache *cache.Client
}

// Ensure TokenStore implements TokenStoreInterface
var _ TokenStoreInterface = (*TokenStore)(nil)

// NewTokenStore creates a new token store.
func NewTokenStore(cache *cache.Client) *TokenStore {
	return &TokenStore{cache: cache}
}

// BlacklistAccessToken revokes an access token for ttl, its remaining lifetime.
// A token that already expired is not stored.
func (s *TokenStore) BlacklistAccessToken(ctx context.Context, tokenID string, ttl time.Duration) error {
	s.cache.Mark(ctx, cache.RevokedTokenKey(tokenID), ttl)
	return nil
}

// IsAccessTokenBlacklisted checks if an access token is blacklisted. With
// redis down every token reads as not revoked.
func (s *TokenStore) IsAccessTokenBlacklisted(ctx context.Context, tokenID string) (bool, error) {
	return s.cache.Exists(ctx, cache.RevokedTokenKey(tokenID)), nil
}
