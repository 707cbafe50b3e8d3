package db

import (
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := OpenDB(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func TestMigrate_Idempotent(t *testing.T) {
	db := openTestDB(t)

	require.NoError(t, Migrate(db))
	require.NoError(t, Migrate(db))
}

func TestMigrate_CreatesClientState(t *testing.T) {
	db := openTestDB(t)

	var name string
	err := db.QueryRow(`SELECT name FROM sqlite_master WHERE type='table' AND name='client_state'`).Scan(&name)
	require.NoError(t, err)
	assert.Equal(t, "client_state", name)

	cols := map[string]bool{}
	rows, err := db.Query(`PRAGMA table_info(client_state)`)
	require.NoError(t, err)
	defer rows.Close()
	for rows.Next() {
		var (
			cid     int
			col     string
			typ     string
			notNull int
			dflt    sql.NullString
			pk      int
		)
		require.NoError(t, rows.Scan(&cid, &col, &typ, &notNull, &dflt, &pk))
		cols[col] = true
	}
	require.NoError(t, rows.Err())
	assert.Equal(t, map[string]bool{"key": true, "value": true, "updated_at": true}, cols)
}

func TestMigrate_KeepsExistingRows(t *testing.T) {
	path := filepath.Join(t.TempDir(), "roadmap.db")
	db, err := OpenDB(path)
	require.NoError(t, err)
	_, err = db.Exec(`INSERT INTO client_state (key, value, updated_at) VALUES ('roadmap-node-positions', '{}', '2026-01-01T00:00:00Z')`)
	require.NoError(t, err)
	require.NoError(t, db.Close())

	db, err = OpenDB(path)
	require.NoError(t, err)
	defer db.Close()

	var value, updated string
	require.NoError(t, db.QueryRow(`SELECT value, updated_at FROM client_state WHERE key = 'roadmap-node-positions'`).Scan(&value, &updated))
	assert.Equal(t, "{}", value)
	assert.Equal(t, "2026-01-01T00:00:00Z", updated)
}

func TestOpenDB_CreatesDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "dir", "roadmap.db")
	db, err := OpenDB(path)
	require.NoError(t, err)
	defer db.Close()
	assert.FileExists(t, path)
}
