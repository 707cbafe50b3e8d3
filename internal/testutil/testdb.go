package testutil

import (
	"database/sql"
	"testing"

	"github.com/alexanderramin/roadmap/internal/db"
)

// NewTestDB creates an in-memory SQLite database with all migrations applied.
// The database is closed when the test completes.
func NewTestDB(t *testing.T) *sql.DB {
	t.Helper()
	database, err := db.OpenDB(":memory:")
	if err != nil {
		t.Fatalf("failed to create test database: %v", err)
	}
	t.Cleanup(func() {
		database.Close()
	})
	return database
}

// NewTestUoW creates a UnitOfWork backed by the given test database.
func NewTestUoW(database *sql.DB) db.UnitOfWork {
	return db.NewSQLiteUnitOfWork(database)
}

// SeedState writes a raw client_state value, bypassing any repository
// validation. Used to plant malformed documents.
func SeedState(t *testing.T, database *sql.DB, key, value string) {
	t.Helper()
	_, err := database.Exec(
		`INSERT INTO client_state (key, value, updated_at) VALUES (?, ?, '2026-01-01T00:00:00Z')
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value`, key, value)
	if err != nil {
		t.Fatalf("seeding client_state %q: %v", key, err)
	}
}
