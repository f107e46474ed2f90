package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const sessionTTL = time.Hour

// SessionCache caches session-token validity so authenticated requests skip
// the session store on the hot path. Entries expire after sessionTTL, which
// matches the session cookie lifetime.
// Key format: session:<token>
type SessionCache struct {
	client *redis.Client
}

// NewSessionCache creates a SessionCache wrapping the given Redis client.
func NewSessionCache(client *redis.Client) *SessionCache {
	return &SessionCache{client: client}
}

// IsValid reports whether token is known to be a live session.
func (c *SessionCache) IsValid(ctx context.Context, token string) (bool, error) {
	n, err := c.client.Exists(ctx, c.key(token)).Result()
	if err != nil {
		return false, fmt.Errorf("session cache check: %w", err)
	}
	return n > 0, nil
}

// MarkValid records token as a live session (expires after sessionTTL).
func (c *SessionCache) MarkValid(ctx context.Context, token string) error {
	return c.client.Set(ctx, c.key(token), "1", sessionTTL).Err()
}

// Invalidate drops the cache entry so the next check falls through to the
// session store.
func (c *SessionCache) Invalidate(ctx context.Context, token string) error {
	return c.client.Del(ctx, c.key(token)).Err()
}

func (c *SessionCache) key(token string) string {
	return "session:" + token
}
