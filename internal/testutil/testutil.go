// Package testutil holds helpers shared by package tests.
package testutil

import (
	"context"
	"fmt"
	"os"
	"sync/atomic"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/redis/go-redis/v9"

	"github.com/textshare/textshare/internal/auth"
	"github.com/textshare/textshare/internal/migrations"
	"github.com/textshare/textshare/internal/model"
)

// TestSecret signs session tokens in tests.
const TestSecret = "test-secret-at-least-32-bytes-long!!"

// RequireEnv returns an environment variable or skips the test if missing.
func RequireEnv(t testing.TB, key string) string {
	t.Helper()
	value := os.Getenv(key)
	if value == "" {
		t.Skipf("%s not set", key)
	}
	return value
}

const advisoryLockID int64 = 420420

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

// ResetSchema drops every application table and reapplies the migrations.
func ResetSchema(ctx context.Context, pool *pgxpool.Pool) error {
	if _, err := pool.Exec(ctx, `DROP TABLE IF EXISTS pastes, users, goose_db_version`); err != nil {
		return fmt.Errorf("drop tables: %w", err)
	}

	db := stdlib.OpenDB(*pool.Config().ConnConfig)
	defer db.Close()

	if _, err := migrations.Up(ctx, db, migrations.Postgres); err != nil {
		return fmt.Errorf("apply migrations: %w", err)
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

var seq atomic.Int64

// UniqueEmail returns an email address no other call in this process returns.
func UniqueEmail(prefix string) string {
	return fmt.Sprintf("%s-%d-%d@example.com", prefix, time.Now().UnixNano(), seq.Add(1))
}

// NewHasher returns a password hasher with cheap cost parameters.
func NewHasher() *auth.Hasher {
	return auth.NewHasher(auth.Params{Time: 1, Memory: 1024, Threads: 1, KeyLen: 32, SaltLen: 16})
}

// NewIssuer returns a session issuer signed with TestSecret.
func NewIssuer() *auth.Issuer {
	return auth.NewIssuer(TestSecret, 7*24*time.Hour)
}

// NewTestUser creates an unsaved user with a placeholder hash.
func NewTestUser(t testing.TB, prefix string) *model.User {
	t.Helper()
	return &model.User{
		Email:        UniqueEmail(prefix),
		PasswordHash: "$argon2id$v=19$m=1024,t=1,p=1$c29tZXNhbHQ$aGFzaA",
	}
}

// NewTestPaste creates an unsaved paste. owner may be nil for anonymous pastes.
func NewTestPaste(t testing.TB, uuid, content string, owner *int64) *model.Paste {
	t.Helper()
	return &model.Paste{
		UUID:    uuid,
		Content: content,
		OwnerID: owner,
	}
}
