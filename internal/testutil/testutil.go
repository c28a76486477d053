// Package testutil provides helpers for integration tests that run against
// real Postgres and Redis instances. Tests gate themselves on the
// TEST_DATABASE_URL / TEST_REDIS_URL environment variables and skip when
// those are unset.
package testutil

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"

	"github.com/glowtrack/glowtrack/internal/model"
)

// RequireEnv returns an environment variable or skips the test if missing.
func RequireEnv(t testing.TB, key string) string {
	t.Helper()
	value := os.Getenv(key)
	if value == "" {
		t.Skipf("%s not set", key)
	}
	return value
}

const advisoryLockID int64 = 774401

// AcquireDBLock grabs a global advisory lock to serialize DB tests.
func AcquireDBLock(ctx context.Context, pool *pgxpool.Pool) (func() error, error) {
	conn, err := pool.Acquire(ctx)
	if err != nil {
		return nil, fmt.Errorf("acquire connection: %w", err)
	}

	if _, err := conn.Exec(ctx, "SELECT pg_advisory_lock($1)", advisoryLockID); err != nil {
		conn.Release()
		return nil, fmt.Errorf("acquire advisory lock: %w", err)
	}

	unlock := func() error {
		defer conn.Release()
		if _, err := conn.Exec(ctx, "SELECT pg_advisory_unlock($1)", advisoryLockID); err != nil {
			return fmt.Errorf("release advisory lock: %w", err)
		}
		return nil
	}

	return unlock, nil
}

// TruncateAll clears every application table. Migrations must have run first.
func TruncateAll(ctx context.Context, pool *pgxpool.Pool) error {
	const stmt = "TRUNCATE users, routine_steps, daily_completions, reminders, selfies CASCADE"
	if _, err := pool.Exec(ctx, stmt); err != nil {
		return fmt.Errorf("truncate tables: %w", err)
	}
	return nil
}

// FlushRedis clears the current Redis database.
func FlushRedis(ctx context.Context, client *redis.Client) error {
	return client.FlushDB(ctx).Err()
}

// ============================================================================
// Test Data Factories
// ============================================================================

// NewTestUser creates a user row with sensible defaults. The password hash
// is a placeholder; use the auth package when sign-in must actually succeed.
func NewTestUser(t testing.TB, username string) *model.User {
	t.Helper()
	now := time.Now().UTC()
	return &model.User{
		ID:           model.NewID(),
		Username:     username,
		Email:        fmt.Sprintf("%s-%d@example.com", username, now.UnixNano()),
		PasswordHash: "$argon2id$v=19$m=65536,t=1,p=4$dGVzdHNhbHQ$dGVzdGhhc2g",
		CreatedAt:    now,
	}
}

// NewTestStep creates a routine step for the given owner.
func NewTestStep(t testing.TB, userID, name string, order int) *model.RoutineStep {
	t.Helper()
	return &model.RoutineStep{
		ID:        model.NewID(),
		UserID:    userID,
		StepName:  name,
		StepOrder: order,
	}
}

// NewTestCompletion creates a completion for the given owner and day.
func NewTestCompletion(t testing.TB, userID string, day time.Time) *model.Completion {
	t.Helper()
	return &model.Completion{
		ID:            model.NewID(),
		UserID:        userID,
		CompletedDate: day,
	}
}

// UniqueEmail generates a unique email address for tests.
func UniqueEmail(prefix string) string {
	return fmt.Sprintf("%s-%d@example.com", prefix, time.Now().UnixNano())
}
