package migrations

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"
)

func openMemory(t *testing.T) *sql.DB {
	t.Helper()

	db, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { db.Close() })
	return db
}

func TestUp_SQLite(t *testing.T) {
	ctx := context.Background()
	db := openMemory(t)

	applied, err := Up(ctx, db, SQLite)
	require.NoError(t, err)
	assert.Equal(t, 2, applied)

	version, err := Version(ctx, db, SQLite)
	require.NoError(t, err)
	assert.Equal(t, int64(2), version)

	for _, table := range []string{"users", "pastes"} {
		var name string
		err := db.QueryRowContext(ctx,
			`SELECT name FROM sqlite_master WHERE type = 'table' AND name = ?`, table,
		).Scan(&name)
		require.NoError(t, err, "table %s should exist", table)
	}
}

func TestUp_Idempotent(t *testing.T) {
	ctx := context.Background()
	db := openMemory(t)

	_, err := Up(ctx, db, SQLite)
	require.NoError(t, err)

	applied, err := Up(ctx, db, SQLite)
	require.NoError(t, err)
	assert.Zero(t, applied)
}

func TestUp_UnknownDialect(t *testing.T) {
	_, err := Up(context.Background(), openMemory(t), Dialect("oracle"))
	assert.Error(t, err)
}
