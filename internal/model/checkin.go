package model

// Checkin is one visit/event of a lead, persisted in the checkins table.
type Checkin struct {
	ID        int64  `db:"id"         json:"id"`
	LeadID    int64  `db:"lead_id"    json:"lead_id"`
	Origem    string `db:"origem"     json:"origem"`
	CreatedAt string `db:"created_at" json:"created_at"`
	DayKey    string `db:"day_key"    json:"day_key"`
	Hour      int    `db:"hour"       json:"hour"`
}

// ScanEvent is the payload published to Kafka by badge scanners.
type ScanEvent struct {
	ID     string `json:"id"`
	Phone  string `json:"phone"`
	Origem string `json:"origem"`
}
