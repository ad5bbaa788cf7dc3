package repository

import (
	"context"

	"github.com/ammichelon/dashboard-dinetec/internal/model"
	"github.com/jmoiron/sqlx"
)

// ReportsRepository aggregates leads and check-ins by day_key / hour.
type ReportsRepository interface {
	LeadsPerDay(ctx context.Context, from, to string) ([]model.DayCount, error)
	CheckinsPerDay(ctx context.Context, from, to string) ([]model.DayCount, error)
	CheckinsPerHour(ctx context.Context, dayKey string) ([]model.HourCount, error)
}

type reportsRepo struct {
	db *sqlx.DB
}

func NewReportsRepository(db *sqlx.DB) ReportsRepository { return &reportsRepo{db: db} }

func (r *reportsRepo) LeadsPerDay(ctx context.Context, from, to string) ([]model.DayCount, error) {
	return r.perDay(ctx, "leads", from, to)
}

func (r *reportsRepo) CheckinsPerDay(ctx context.Context, from, to string) ([]model.DayCount, error) {
	return r.perDay(ctx, "checkins", from, to)
}

// perDay: table is one of the two fixed names above, never user input.
func (r *reportsRepo) perDay(ctx context.Context, table, from, to string) ([]model.DayCount, error) {
	q := `
		SELECT day_key, COUNT(*) AS total
		  FROM ` + table + `
		 WHERE day_key BETWEEN ? AND ?
		 GROUP BY day_key
		 ORDER BY day_key
	`
	rows := []model.DayCount{}
	if err := r.db.SelectContext(ctx, &rows, q, from, to); err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *reportsRepo) CheckinsPerHour(ctx context.Context, dayKey string) ([]model.HourCount, error) {
	rows := []model.HourCount{}
	err := r.db.SelectContext(ctx, &rows, `
		SELECT hour, COUNT(*) AS total
		  FROM checkins
		 WHERE day_key = ?
		 GROUP BY hour
		 ORDER BY hour
	`, dayKey)
	if err != nil {
		return nil, err
	}
	return rows, nil
}
