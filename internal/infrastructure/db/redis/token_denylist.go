package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// TokenDenylist stores revoked token IDs in Redis until the token would have
// expired on its own.
// Key format: revoked:<jti>
type TokenDenylist struct {
	client *redis.Client
}

func NewTokenDenylist(client *redis.Client) *TokenDenylist {
	return &TokenDenylist{client: client}
}

// Revoke records tokenID for ttl. Tokens that are already expired need no
// entry.
func (d *TokenDenylist) Revoke(ctx context.Context, tokenID string, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}
	if err := d.client.Set(ctx, d.key(tokenID), "1", ttl).Err(); err != nil {
		return fmt.Errorf("revoke token: %w", err)
	}
	return nil
}

func (d *TokenDenylist) IsRevoked(ctx context.Context, tokenID string) (bool, error) {
	n, err := d.client.Exists(ctx, d.key(tokenID)).Result()
	if err != nil {
		return false, fmt.Errorf("denylist check: %w", err)
	}
	return n > 0, nil
}

func (d *TokenDenylist) key(tokenID string) string {
	return "revoked:" + tokenID
}
