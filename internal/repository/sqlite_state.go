package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/alexanderramin/roadmap/internal/db"
)

// SQLiteStateRepo implements StateRepo on the client_state table.
type SQLiteStateRepo struct {
	db  db.DBTX
	uow db.UnitOfWork
	now func() time.Time
}

// NewSQLiteStateRepo creates a SQLiteStateRepo. Reads go through conn,
// read-modify-write cycles through uow.
func NewSQLiteStateRepo(conn db.DBTX, uow db.UnitOfWork) *SQLiteStateRepo {
	return &SQLiteStateRepo{db: conn, uow: uow, now: time.Now}
}

func (r *SQLiteStateRepo) Get(ctx context.Context, key string) ([]byte, error) {
	return getState(ctx, r.db, key)
}

func (r *SQLiteStateRepo) Update(ctx context.Context, key string, fn UpdateFunc) error {
	return r.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		current, err := getState(ctx, tx, key)
		found := err == nil
		if err != nil && !errors.Is(err, ErrNotFound) {
			return err
		}

		next, err := fn(current, found)
		if err != nil {
			return err
		}

		query := `INSERT INTO client_state (key, value, updated_at) VALUES (?, ?, ?)
			ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`
		if _, err := tx.ExecContext(ctx, query, key, string(next), r.now().UTC().Format(time.RFC3339)); err != nil {
			return fmt.Errorf("writing client state %q: %w", key, err)
		}
		return nil
	})
}

func (r *SQLiteStateRepo) Delete(ctx context.Context, key string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM client_state WHERE key = ?`, key); err != nil {
		return fmt.Errorf("deleting client state %q: %w", key, err)
	}
	return nil
}

func getState(ctx context.Context, conn db.DBTX, key string) ([]byte, error) {
	var value string
	err := conn.QueryRowContext(ctx, `SELECT value FROM client_state WHERE key = ?`, key).Scan(&value)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("client state %q: %w", key, ErrNotFound)
		}
		return nil, fmt.Errorf("reading client state %q: %w", key, err)
	}
	return []byte(value), nil
}
