package db_test

import (
	"context"
	"database/sql"
	"fmt"
	"testing"

	"github.com/alexanderramin/roadmap/internal/db"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestUoW(t *testing.T) (*db.SQLiteUnitOfWork, *sql.DB) {
	t.Helper()
	database, err := db.OpenDB(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { database.Close() })
	return db.NewSQLiteUnitOfWork(database), database
}

func putState(ctx context.Context, tx db.DBTX, key, value string) error {
	_, err := tx.ExecContext(ctx,
		`INSERT INTO client_state (key, value, updated_at) VALUES (?, ?, 'now')
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value`, key, value)
	return err
}

func readState(conn db.DBTX, key string) (string, bool) {
	var val string
	err := conn.QueryRowContext(context.Background(), `SELECT value FROM client_state WHERE key = ?`, key).Scan(&val)
	return val, err == nil
}

func TestWithinTx_CommitsOnSuccess(t *testing.T) {
	uow, database := openTestUoW(t)

	err := uow.WithinTx(context.Background(), func(ctx context.Context, tx db.DBTX) error {
		return putState(ctx, tx, "k1", `{"a":{"x":1,"y":2}}`)
	})
	require.NoError(t, err)

	val, found := readState(database, "k1")
	assert.True(t, found)
	assert.Equal(t, `{"a":{"x":1,"y":2}}`, val)
}

func TestWithinTx_RollsBackOnError(t *testing.T) {
	uow, database := openTestUoW(t)

	err := uow.WithinTx(context.Background(), func(ctx context.Context, tx db.DBTX) error {
		if err := putState(ctx, tx, "k2", "{}"); err != nil {
			return err
		}
		return fmt.Errorf("something went wrong")
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "something went wrong")

	_, found := readState(database, "k2")
	assert.False(t, found, "row should not exist after rollback")
}

func TestWithinTx_RollsBackOnPanic(t *testing.T) {
	uow, database := openTestUoW(t)

	assert.Panics(t, func() {
		_ = uow.WithinTx(context.Background(), func(ctx context.Context, tx db.DBTX) error {
			_ = putState(ctx, tx, "k3", "{}")
			panic("boom")
		})
	})

	_, found := readState(database, "k3")
	assert.False(t, found, "row should not exist after panic rollback")
}
