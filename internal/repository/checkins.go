package repository

import (
	"context"

	"github.com/ammichelon/dashboard-dinetec/internal/model"
	"github.com/jmoiron/sqlx"
)

// CheckinsRepository defines persistence for the checkins table (append-only).
type CheckinsRepository interface {
	Insert(ctx context.Context, tx *sqlx.Tx, c *model.Checkin) (int64, error)
	ListByLead(ctx context.Context, leadID int64, limit int) ([]model.Checkin, error)
}

type CheckinsRepositoryImpl struct {
	db *sqlx.DB
}

func NewCheckinsRepository(db *sqlx.DB) *CheckinsRepositoryImpl {
	return &CheckinsRepositoryImpl{db: db}
}

var _ CheckinsRepository = (*CheckinsRepositoryImpl)(nil)

func (r *CheckinsRepositoryImpl) Insert(ctx context.Context, tx *sqlx.Tx, c *model.Checkin) (int64, error) {
	const q = `
		INSERT INTO checkins (lead_id, origem, created_at, day_key, hour)
		VALUES (?, ?, ?, ?, ?)
	`
	var id int64
	err := withTx(ctx, r.db, tx, func(tx *sqlx.Tx) error {
		res, err := tx.ExecContext(ctx, q, c.LeadID, c.Origem, c.CreatedAt, c.DayKey, c.Hour)
		if err != nil {
			return err
		}
		id, err = res.LastInsertId()
		return err
	})
	if err != nil {
		return 0, err
	}
	c.ID = id
	return id, nil
}

// ListByLead returns the most recent check-ins first (idx_checkins_lead_time).
func (r *CheckinsRepositoryImpl) ListByLead(ctx context.Context, leadID int64, limit int) ([]model.Checkin, error) {
	if limit <= 0 || limit > 500 {
		limit = 50
	}

	var rows []model.Checkin
	err := r.db.SelectContext(ctx, &rows, `
		SELECT id, lead_id, origem, created_at, day_key, hour
		  FROM checkins
		 WHERE lead_id = ?
		 ORDER BY created_at DESC, id DESC
		 LIMIT ?
	`, leadID, limit)
	if err != nil {
		return nil, err
	}
	return rows, nil
}
