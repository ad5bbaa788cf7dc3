package model

type DayCount struct {
	DayKey string `db:"day_key" json:"day_key"`
	Count  int64  `db:"total"   json:"total"`
}

type HourCount struct {
	Hour  int   `db:"hour"  json:"hour"`
	Count int64 `db:"total" json:"total"`
}
