package redis

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// SessionRevoker is the logout denylist. Revoked tokens are keyed by a hash of
// the token string (raw JWTs stay out of Redis) and expire when the token
// itself would have expired.
type SessionRevoker struct {
	client *redis.Client
}

func NewSessionRevoker(client *redis.Client) *SessionRevoker {
	return &SessionRevoker{client: client}
}

// Revoke marks the token as logged out for ttl.
func (s *SessionRevoker) Revoke(ctx context.Context, token string, ttl time.Duration) error {
	if err := s.client.Set(ctx, s.key(token), "1", ttl).Err(); err != nil {
		return fmt.Errorf("revoke session: %w", err)
	}
	return nil
}

// IsRevoked reports whether the token has been logged out.
func (s *SessionRevoker) IsRevoked(ctx context.Context, token string) (bool, error) {
	n, err := s.client.Exists(ctx, s.key(token)).Result()
	if err != nil {
		return false, fmt.Errorf("check session: %w", err)
	}
	return n > 0, nil
}

func (s *SessionRevoker) key(token string) string {
	sum := sha256.Sum256([]byte(token))
	return "revoked:" + hex.EncodeToString(sum[:])
}
