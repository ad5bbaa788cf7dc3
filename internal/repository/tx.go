package repository

import (
	"context"

	"github.com/jmoiron/sqlx"
)

// getter is satisfied by both *sqlx.DB and *sqlx.Tx.
type getter interface {
	GetContext(ctx context.Context, dest any, query string, args ...any) error
}

func pick(db *sqlx.DB, tx *sqlx.Tx) getter {
	if tx != nil {
		return tx
	}
	return db
}

// withTx runs fn in the provided tx, or starts a new transaction when tx is nil.
func withTx(ctx context.Context, db *sqlx.DB, tx *sqlx.Tx, fn func(*sqlx.Tx) error) error {
	if tx != nil {
		return fn(tx)
	}

	t, err := db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = t.Rollback() }()

	if err := fn(t); err != nil {
		return err
	}
	return t.Commit()
}
