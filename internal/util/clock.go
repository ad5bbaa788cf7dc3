package util

import "time"

// isoMillis matches JavaScript's Date.toISOString output.
const isoMillis = "2006-01-02T15:04:05.000Z"

// TimeParts is a single instant split the way leads and check-ins store it.
type TimeParts struct {
	ISO    string `json:"iso"`
	DayKey string `json:"day_key"`
	Hour   int    `json:"hour"`
}

// NowParts captures the current instant once and splits it.
func NowParts() TimeParts {
	return PartsAt(time.Now())
}

// PartsAt splits t into a UTC ISO string, its UTC day key and the local hour.
// DayKey and Hour use different time bases: days stay UTC-stable while the hour
// follows the wall clock of the device running the kiosk.
func PartsAt(t time.Time) TimeParts {
	iso := t.UTC().Format(isoMillis)
	return TimeParts{
		ISO:    iso,
		DayKey: iso[:10],
		Hour:   t.In(time.Local).Hour(),
	}
}

// ValidDayKey reports whether s is a YYYY-MM-DD calendar date.
func ValidDayKey(s string) bool {
	if len(s) != 10 {
		return false
	}
	_, err := time.Parse(time.DateOnly, s)
	return err == nil
}
