package db

import (
	"context"
	"errors"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/ammichelon/dashboard-dinetec/internal/config"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTemp(t *testing.T) (*sqlx.DB, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "data.sqlite")
	db, err := Initialize(context.Background(), SQLiteOpts{Path: path})
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db, path
}

func sqliteObjects(t *testing.T, db *sqlx.DB, kind string) []string {
	t.Helper()
	var names []string
	err := db.Select(&names,
		`SELECT name FROM sqlite_master WHERE type = ? AND name NOT LIKE 'sqlite_%' ORDER BY name`, kind)
	require.NoError(t, err)
	return names
}

func TestInitialize_CreatesSchema(t *testing.T) {
	db, _ := openTemp(t)

	assert.ElementsMatch(t, Tables, sqliteObjects(t, db, "table"))
	assert.ElementsMatch(t, Indexes, sqliteObjects(t, db, "index"))
}

func TestInitialize_Idempotent(t *testing.T) {
	db, path := openTemp(t)
	require.NoError(t, EnsureSchema(context.Background(), db))

	again, err := Initialize(context.Background(), SQLiteOpts{Path: path})
	require.NoError(t, err)
	defer again.Close()

	assert.ElementsMatch(t, Tables, sqliteObjects(t, again, "table"))
	assert.ElementsMatch(t, Indexes, sqliteObjects(t, again, "index"))
}

func TestSchema_UniqueNormalizedPhone(t *testing.T) {
	db, _ := openTemp(t)

	const q = `INSERT INTO leads (nome, telefone_raw, telefone_norm, perfil, origem, created_at, day_key, hour)
	           VALUES (?, ?, ?, 'produtor', 'stand', '2025-03-02T10:00:00.000Z', '2025-03-02', 7)`
	_, err := db.Exec(q, "Ana", "(11) 91234-5678", "5511912345678")
	require.NoError(t, err)

	_, err = db.Exec(q, "Ana B", "11912345678", "5511912345678")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "UNIQUE")
}

func TestSchema_ConsentDefaultsToTrue(t *testing.T) {
	db, _ := openTemp(t)

	_, err := db.Exec(`INSERT INTO leads (nome, telefone_raw, telefone_norm, perfil, origem, created_at, day_key, hour)
	                   VALUES ('Ana', '1', '1', 'p', 'o', 'c', 'd', 1)`)
	require.NoError(t, err)

	var consent int
	require.NoError(t, db.Get(&consent, `SELECT consentimento FROM leads`))
	assert.Equal(t, 1, consent)
}

func TestSchema_CheckinRequiresLead(t *testing.T) {
	db, _ := openTemp(t)

	_, err := db.Exec(`INSERT INTO checkins (lead_id, origem, created_at, day_key, hour)
	                   VALUES (42, 'stand', '2025-03-02T10:00:00.000Z', '2025-03-02', 7)`)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "FOREIGN KEY")
}

func TestInitialize_OpenFailure(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing", "dir", "data.sqlite")

	db, err := Initialize(context.Background(), SQLiteOpts{Path: path})
	require.Error(t, err)
	assert.Nil(t, db)

	var openErr *StorageOpenError
	require.True(t, errors.As(err, &openErr))
	assert.Equal(t, path, openErr.Path)
	assert.ErrorIs(t, err, ErrStorage)
}

func TestNewSQLiteConnection_EmptyPath(t *testing.T) {
	_, err := NewSQLiteConnection(context.Background(), SQLiteOpts{})

	var openErr *StorageOpenError
	assert.True(t, errors.As(err, &openErr))
}

func TestEnsureSchema_ExecutionError(t *testing.T) {
	raw, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer raw.Close()

	boom := errors.New("disk I/O error")
	mock.ExpectExec(`CREATE TABLE IF NOT EXISTS leads`).WillReturnError(boom)

	err = EnsureSchema(context.Background(), sqlx.NewDb(raw, "sqlmock"))
	require.Error(t, err)

	var schemaErr *SchemaExecutionError
	require.True(t, errors.As(err, &schemaErr))
	assert.ErrorIs(t, err, boom)
	assert.ErrorIs(t, err, ErrStorage)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSQLiteDSN(t *testing.T) {
	dsn := sqliteDSN(SQLiteOpts{Path: "/tmp/x.sqlite"})

	assert.True(t, strings.HasPrefix(dsn, "/tmp/x.sqlite?"))
	assert.Contains(t, dsn, "busy_timeout%285000%29")
	assert.Contains(t, dsn, "foreign_keys%281%29")
	assert.Contains(t, dsn, "_txlock=immediate")
}

func TestOptsFromConfig(t *testing.T) {
	opts := OptsFromConfig(config.SQLiteConfig{
		Path:         "/var/lib/leads/data.sqlite",
		BusyTimeout:  2 * time.Second,
		PingTimeout:  3 * time.Second,
		MaxOpenConns: 4,
	})

	assert.Equal(t, SQLiteOpts{
		Path:         "/var/lib/leads/data.sqlite",
		BusyTimeout:  2 * time.Second,
		PingTimeout:  3 * time.Second,
		MaxOpenConns: 4,
	}, opts)
}
