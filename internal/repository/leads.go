package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/ammichelon/dashboard-dinetec/internal/model"
	"github.com/jmoiron/sqlx"
)

const leadColumns = `
	id, nome, telefone_raw, telefone_norm, email, perfil, origem, consentimento,
	created_at, day_key, hour,
	area_soja, cliente_boasafra, comprou_ultima, sementes_atuais, sementes_outras,
	culturas, culturas_outras, comercial_empresa, comercial_regiao, comercial_cargo`

// LeadsRepository defines persistence for the leads table (append-only).
type LeadsRepository interface {
	Insert(ctx context.Context, tx *sqlx.Tx, l *model.Lead) (int64, error)
	GetByPhone(ctx context.Context, tx *sqlx.Tx, telefoneNorm string) (*model.Lead, error)
	GetByID(ctx context.Context, tx *sqlx.Tx, id int64) (*model.Lead, error)
}

type LeadsRepositoryImpl struct {
	db *sqlx.DB
}

func NewLeadsRepository(db *sqlx.DB) *LeadsRepositoryImpl {
	return &LeadsRepositoryImpl{db: db}
}

var _ LeadsRepository = (*LeadsRepositoryImpl)(nil)

// Insert stores a new lead and returns its id. A collision on telefone_norm
// yields ErrDuplicatePhone.
func (r *LeadsRepositoryImpl) Insert(ctx context.Context, tx *sqlx.Tx, l *model.Lead) (int64, error) {
	const q = `
		INSERT INTO leads (
		    nome, telefone_raw, telefone_norm, email, perfil, origem, consentimento,
		    created_at, day_key, hour,
		    area_soja, cliente_boasafra, comprou_ultima, sementes_atuais, sementes_outras,
		    culturas, culturas_outras, comercial_empresa, comercial_regiao, comercial_cargo
		) VALUES (
		    :nome, :telefone_raw, :telefone_norm, :email, :perfil, :origem, :consentimento,
		    :created_at, :day_key, :hour,
		    :area_soja, :cliente_boasafra, :comprou_ultima, :sementes_atuais, :sementes_outras,
		    :culturas, :culturas_outras, :comercial_empresa, :comercial_regiao, :comercial_cargo
		)
	`
	var id int64
	err := withTx(ctx, r.db, tx, func(tx *sqlx.Tx) error {
		query, args, err := sqlx.Named(q, l)
		if err != nil {
			return err
		}
		res, err := tx.ExecContext(ctx, query, args...)
		if err != nil {
			if isUniqueViolation(err) {
				return ErrDuplicatePhone
			}
			return err
		}
		id, err = res.LastInsertId()
		return err
	})
	if err != nil {
		return 0, err
	}
	l.ID = id
	return id, nil
}

// GetByPhone returns (nil, nil) when no lead owns the normalized phone.
func (r *LeadsRepositoryImpl) GetByPhone(ctx context.Context, tx *sqlx.Tx, telefoneNorm string) (*model.Lead, error) {
	return r.getOne(ctx, tx, `SELECT `+leadColumns+` FROM leads WHERE telefone_norm = ? LIMIT 1`, telefoneNorm)
}

// GetByID returns (nil, nil) when the lead does not exist.
func (r *LeadsRepositoryImpl) GetByID(ctx context.Context, tx *sqlx.Tx, id int64) (*model.Lead, error) {
	return r.getOne(ctx, tx, `SELECT `+leadColumns+` FROM leads WHERE id = ? LIMIT 1`, id)
}

func (r *LeadsRepositoryImpl) getOne(ctx context.Context, tx *sqlx.Tx, q string, arg any) (*model.Lead, error) {
	var l model.Lead
	err := pick(r.db, tx).GetContext(ctx, &l, q, arg)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &l, nil
}
