package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"time"
)

// signinLimitPrefix is the Redis key prefix for sign-in attempt counters.
const signinLimitPrefix = "ratelimit:signin:"

// CheckSigninLimit counts a sign-in attempt for the given client key and
// reports whether it is still within limit attempts per window.
// A fixed window is enough here: the only goal is slowing down credential
// stuffing against POST /signin.
func (c *Cache) CheckSigninLimit(ctx context.Context, clientKey string, limit int, window time.Duration) (bool, error) {
	key := signinLimitPrefix + hashClientKey(clientKey)

	count, err := c.client.Incr(ctx, key).Result()
	if err != nil {
		return false, fmt.Errorf("increment signin counter: %w", err)
	}

	// First attempt in the window starts the clock.
	if count == 1 {
		if err := c.client.Expire(ctx, key, window).Err(); err != nil {
			return false, fmt.Errorf("set signin counter expiry: %w", err)
		}
	}

	return count <= int64(limit), nil
}

// hashClientKey hashes the client key so raw IP addresses are not stored.
func hashClientKey(clientKey string) string {
	sum := sha256.Sum256([]byte(clientKey))
	return hex.EncodeToString(sum[:16])
}
