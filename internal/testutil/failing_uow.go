package testutil

import (
	"context"
	"database/sql"
	"sync/atomic"

	"github.com/alexanderramin/roadmap/internal/db"
)

// FailOnNthExecUoW wraps a real UnitOfWork and injects Err on the Nth
// ExecContext call inside a transaction, so the transaction rolls back.
//
// ExecContext calls are counted per transaction starting at 1. Reads pass
// through untouched.
type FailOnNthExecUoW struct {
	Inner  db.UnitOfWork
	FailOn int32
	Err    error
}

// NewFailOnNthExecUoW wraps a SQLite unit of work over database.
func NewFailOnNthExecUoW(database *sql.DB, failOn int32, err error) *FailOnNthExecUoW {
	return &FailOnNthExecUoW{Inner: db.NewSQLiteUnitOfWork(database), FailOn: failOn, Err: err}
}

func (u *FailOnNthExecUoW) WithinTx(ctx context.Context, fn func(ctx context.Context, tx db.DBTX) error) error {
	return u.Inner.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		return fn(ctx, &failOnNthExec{DBTX: tx, failOn: u.FailOn, err: u.Err})
	})
}

type failOnNthExec struct {
	db.DBTX
	count  atomic.Int32
	failOn int32
	err    error
}

func (f *failOnNthExec) ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error) {
	if f.count.Add(1) == f.failOn {
		return nil, f.err
	}
	return f.DBTX.ExecContext(ctx, query, args...)
}
