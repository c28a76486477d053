package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/glowtrack/glowtrack/internal/cache"
)

const (
	sessionPrefix = "session:"
	flashPrefix   = "session:flash:"
)

// RedisManager stores sessions in Redis with a TTL.
type RedisManager struct {
	cache *cache.Cache
	ttl   time.Duration
}

var _ Manager = (*RedisManager)(nil)

// NewRedisManager creates a session manager over the given cache.
func NewRedisManager(c *cache.Cache, ttl time.Duration) *RedisManager {
	return &RedisManager{cache: c, ttl: ttl}
}

// Create stores a new session under a random opaque token.
func (m *RedisManager) Create(ctx context.Context, sess Session) (string, error) {
	token := uuid.NewString()

	data, err := json.Marshal(sess)
	if err != nil {
		return "", fmt.Errorf("marshal session: %w", err)
	}

	if err := m.cache.Client().Set(ctx, sessionPrefix+token, data, m.ttl).Err(); err != nil {
		return "", fmt.Errorf("store session: %w", err)
	}

	return token, nil
}

// Get returns the session for a token. Expired and unknown tokens both
// yield ErrNotFound; transport failures are reported as-is so callers can
// tell an outage apart from a stale cookie.
func (m *RedisManager) Get(ctx context.Context, token string) (*Session, error) {
	data, err := m.cache.Client().Get(ctx, sessionPrefix+token).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("read session: %w", err)
	}

	var sess Session
	if err := json.Unmarshal(data, &sess); err != nil {
		// Corrupted entry - treat as missing.
		return nil, ErrNotFound
	}

	return &sess, nil
}

// Delete removes a session and its pending flashes.
func (m *RedisManager) Delete(ctx context.Context, token string) error {
	if err := m.cache.Client().Del(ctx, sessionPrefix+token, flashPrefix+token).Err(); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	return nil
}

// PushFlash queues a flash message on the session.
func (m *RedisManager) PushFlash(ctx context.Context, token string, flash Flash) error {
	data, err := json.Marshal(flash)
	if err != nil {
		return fmt.Errorf("marshal flash: %w", err)
	}

	key := flashPrefix + token
	if err := m.cache.Client().RPush(ctx, key, data).Err(); err != nil {
		return fmt.Errorf("push flash: %w", err)
	}
	// Flashes never outlive the session.
	if err := m.cache.Client().Expire(ctx, key, m.ttl).Err(); err != nil {
		return fmt.Errorf("set flash expiry: %w", err)
	}
	return nil
}

// PopFlashes returns and clears the session's queued flash messages.
func (m *RedisManager) PopFlashes(ctx context.Context, token string) ([]Flash, error) {
	key := flashPrefix + token

	items, err := m.cache.Client().LRange(ctx, key, 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("read flashes: %w", err)
	}
	if len(items) == 0 {
		return nil, nil
	}

	if err := m.cache.Client().Del(ctx, key).Err(); err != nil {
		return nil, fmt.Errorf("clear flashes: %w", err)
	}

	flashes := make([]Flash, 0, len(items))
	for _, item := range items {
		var flash Flash
		if err := json.Unmarshal([]byte(item), &flash); err != nil {
			continue
		}
		flashes = append(flashes, flash)
	}
	return flashes, nil
}
