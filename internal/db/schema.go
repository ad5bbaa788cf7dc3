package db

import (
	"context"

	"github.com/jmoiron/sqlx"
)

// Tables and indexes created by EnsureSchema.
var (
	Tables  = []string{"leads", "checkins"}
	Indexes = []string{"idx_checkins_lead_time", "idx_leads_day", "idx_checkins_day"}
)

const schemaSQL = `
CREATE TABLE IF NOT EXISTS leads (
  id                INTEGER PRIMARY KEY AUTOINCREMENT,
  nome              TEXT    NOT NULL,
  telefone_raw      TEXT    NOT NULL,
  telefone_norm     TEXT    NOT NULL UNIQUE,
  email             TEXT,
  perfil            TEXT    NOT NULL,
  origem            TEXT    NOT NULL,
  consentimento     INTEGER NOT NULL DEFAULT 1,
  created_at        TEXT    NOT NULL,
  day_key           TEXT    NOT NULL,
  hour              INTEGER NOT NULL,

  area_soja         TEXT,
  cliente_boasafra  INTEGER,
  comprou_ultima    INTEGER,
  sementes_atuais   TEXT,
  sementes_outras   TEXT,
  culturas          TEXT,
  culturas_outras   TEXT,
  comercial_empresa TEXT,
  comercial_regiao  TEXT,
  comercial_cargo   TEXT
);

CREATE TABLE IF NOT EXISTS checkins (
  id         INTEGER PRIMARY KEY AUTOINCREMENT,
  lead_id    INTEGER NOT NULL,
  origem     TEXT    NOT NULL,
  created_at TEXT    NOT NULL,
  day_key    TEXT    NOT NULL,
  hour       INTEGER NOT NULL,
  FOREIGN KEY (lead_id) REFERENCES leads(id)
);

CREATE INDEX IF NOT EXISTS idx_checkins_lead_time ON checkins(lead_id, created_at);
CREATE INDEX IF NOT EXISTS idx_leads_day ON leads(day_key);
CREATE INDEX IF NOT EXISTS idx_checkins_day ON checkins(day_key);
`

// EnsureSchema applies the guarded DDL batch. Safe to call on every start.
func EnsureSchema(ctx context.Context, db *sqlx.DB) error {
	if _, err := db.ExecContext(ctx, schemaSQL); err != nil {
		return &SchemaExecutionError{Err: err}
	}
	return nil
}
