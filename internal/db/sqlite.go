package db

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"time"

	"github.com/ammichelon/dashboard-dinetec/internal/config"
	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite" // pure-Go SQLite driver, registers "sqlite"
)

const driverName = "sqlite"

type SQLiteOpts struct {
	Path         string
	BusyTimeout  time.Duration // default 5s
	PingTimeout  time.Duration // default 5s
	MaxOpenConns int           // default 1 (single writer)
}

// OptsFromConfig maps the sqlite config section onto SQLiteOpts.
func OptsFromConfig(c config.SQLiteConfig) SQLiteOpts {
	return SQLiteOpts{
		Path:         c.Path,
		BusyTimeout:  c.BusyTimeout,
		PingTimeout:  c.PingTimeout,
		MaxOpenConns: c.MaxOpenConns,
	}
}

// sqliteDSN appends _pragma params, which the driver applies on every new connection.
// _txlock=immediate makes BEGIN take the write lock, so a read-then-insert
// transaction cannot be overtaken by another writer.
func sqliteDSN(opts SQLiteOpts) string {
	busy := opts.BusyTimeout
	if busy <= 0 {
		busy = 5 * time.Second
	}
	q := url.Values{}
	q.Add("_pragma", "busy_timeout("+strconv.FormatInt(busy.Milliseconds(), 10)+")")
	q.Add("_pragma", "foreign_keys(1)")
	q.Add("_pragma", "journal_mode(WAL)")
	q.Add("_txlock", "immediate")

	return opts.Path + "?" + q.Encode()
}

// NewSQLiteConnection opens (creating if absent) the database file and pings it.
// Failures come back as *StorageOpenError.
func NewSQLiteConnection(ctx context.Context, opts SQLiteOpts) (*sqlx.DB, error) {
	if opts.Path == "" {
		return nil, &StorageOpenError{Path: opts.Path, Err: fmt.Errorf("empty SQLite path")}
	}

	db, err := sqlx.Open(driverName, sqliteDSN(opts))
	if err != nil {
		return nil, &StorageOpenError{Path: opts.Path, Err: err}
	}

	maxOpen := opts.MaxOpenConns
	if maxOpen <= 0 {
		maxOpen = 1
	}
	db.SetMaxOpenConns(maxOpen)
	db.SetMaxIdleConns(maxOpen)
	db.SetConnMaxLifetime(0)

	timeout := opts.PingTimeout
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	pingCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		_ = db.Close()
		return nil, &StorageOpenError{Path: opts.Path, Err: err}
	}

	return db, nil
}

// Initialize opens the database and guarantees the leads/checkins schema.
// The caller owns the returned handle.
func Initialize(ctx context.Context, opts SQLiteOpts) (*sqlx.DB, error) {
	db, err := NewSQLiteConnection(ctx, opts)
	if err != nil {
		return nil, err
	}
	if err := EnsureSchema(ctx, db); err != nil {
		_ = db.Close()
		return nil, err
	}
	return db, nil
}
