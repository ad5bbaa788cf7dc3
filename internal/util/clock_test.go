package util

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPartsAt_SplitsUTCDayAndLocalHour(t *testing.T) {
	saved := time.Local
	t.Cleanup(func() { time.Local = saved })

	time.Local = time.FixedZone("BRT", -3*3600)

	// 01:30 UTC on the 2nd is still 22:30 on the 1st in BRT.
	at := time.Date(2025, 3, 2, 1, 30, 15, 250*int(time.Millisecond), time.UTC)
	p := PartsAt(at)

	assert.Equal(t, "2025-03-02T01:30:15.250Z", p.ISO)
	assert.Equal(t, "2025-03-02", p.DayKey)
	assert.Equal(t, 22, p.Hour)
}

func TestPartsAt_NonUTCInput(t *testing.T) {
	saved := time.Local
	t.Cleanup(func() { time.Local = saved })
	time.Local = time.UTC

	at := time.Date(2025, 3, 2, 10, 0, 0, 0, time.FixedZone("X", 2*3600))
	p := PartsAt(at)

	assert.Equal(t, "2025-03-02T08:00:00.000Z", p.ISO)
	assert.Equal(t, 8, p.Hour)
}

func TestNowParts(t *testing.T) {
	p := NowParts()

	require.Len(t, p.ISO, len(isoMillis))
	assert.Equal(t, p.ISO[:10], p.DayKey)
	assert.GreaterOrEqual(t, p.Hour, 0)
	assert.LessOrEqual(t, p.Hour, 23)
	assert.True(t, ValidDayKey(p.DayKey))
}

func TestValidDayKey(t *testing.T) {
	assert.True(t, ValidDayKey("2025-12-31"))
	assert.False(t, ValidDayKey("2025-13-01"))
	assert.False(t, ValidDayKey("2025-1-01"))
	assert.False(t, ValidDayKey(""))
}
