package auth

import (
	"context"
	"time"

	"eldenbuilds/internal/cache"
)

const revokedSessionKeyPrefix = "revoked_session:"

// SessionStoreInterface defines the interface for session revocation.
// Tokens are self-contained; the store only tracks the jti of sessions
// revoked before their natural expiry.
type SessionStoreInterface interface {
	RevokeSession(ctx context.Context, tokenID string, ttl time.Duration) error
	IsSessionRevoked(ctx context.Context, tokenID string) bool
}

// SessionStore tracks revoked session tokens in Redis.
type SessionStore struct {
	cache *cache.Client
}

// Ensure SessionStore implements SessionStoreInterface
var _ SessionStoreInterface = (*SessionStore)(nil)

// NewSessionStore creates a new session store.
func NewSessionStore(cache *cache.Client) *SessionStore {
	return &SessionStore{cache: cache}
}

// RevokeSession marks a session token as revoked until it would have
// expired anyway.
func (s *SessionStore) RevokeSession(ctx context.Context, tokenID string, ttl time.Duration) error {
	key := revokedSessionKeyPrefix + tokenID
	return s.cache.Set(ctx, key, []byte("1"), ttl)
}

// IsSessionRevoked reports whether a session token has been revoked.
// When Redis is unavailable the token is treated as live.
func (s *SessionStore) IsSessionRevoked(ctx context.Context, tokenID string) bool {
	key := revokedSessionKeyPrefix + tokenID
	data, err := s.cache.Get(ctx, key)
	if err != nil {
		return false
	}
	return data != nil
}
