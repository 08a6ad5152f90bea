package repository

import (
	"context"
	"time"
)

// SessionStore remembers revoked session token ids until the tokens would have expired.
// Implementations: Redis (multi-instance) or in-memory (local dev / single instance).
type SessionStore interface {
	Revoke(ctx context.Context, tokenID string, ttl time.Duration) error
	IsRevoked(ctx context.Context, tokenID string) (bool, error)
}

const revokedSessionPrefix = "portal:session:revoked:"

func revokedSessionKey(tokenID string) string {
	return revokedSessionPrefix + tokenID
}
