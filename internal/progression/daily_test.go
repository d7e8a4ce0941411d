package progression

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDaysSinceUTC(t *testing.T) {
	utc := func(y int, m time.Month, d, h, min int) time.Time {
		return time.Date(y, m, d, h, min, 0, 0, time.UTC)
	}
	newYork := time.FixedZone("EDT", -4*60*60)

	tests := []struct {
		name      string
		last, now time.Time
		want      int
	}{
		{"same instant", utc(2026, 10, 18, 12, 0), utc(2026, 10, 18, 12, 0), 0},
		{"same day, hours apart", utc(2026, 10, 18, 0, 0), utc(2026, 10, 18, 23, 59), 0},
		{"across midnight by two minutes", utc(2026, 10, 18, 23, 59), utc(2026, 10, 19, 0, 1), 1},
		{"almost two days but one boundary", utc(2026, 10, 18, 0, 1), utc(2026, 10, 19, 23, 59), 1},
		{"week", utc(2026, 10, 11, 8, 0), utc(2026, 10, 18, 7, 0), 7},
		{"month boundary", utc(2026, 9, 30, 22, 0), utc(2026, 10, 1, 1, 0), 1},
		{"leap day", utc(2028, 2, 28, 12, 0), utc(2028, 3, 1, 12, 0), 2},
		{"clock moved backwards", utc(2026, 10, 19, 1, 0), utc(2026, 10, 18, 23, 0), -1},
		{
			"offset zone same local date, different UTC dates",
			time.Date(2026, 10, 18, 19, 0, 0, 0, newYork), // 23:00 UTC
			time.Date(2026, 10, 18, 21, 0, 0, 0, newYork), // 01:00 UTC next day
			1,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DaysSinceUTC(tt.last, tt.now))
		})
	}
}

func TestParseAndFormatDay(t *testing.T) {
	d, err := ParseDay("2026-10-18")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, 10, 18, 0, 0, 0, 0, time.UTC), d)

	d, err = ParseDay("2026-10-18T23:30:00-03:00")
	require.NoError(t, err)
	assert.Equal(t, "2026-10-19", FormatDay(d))

	_, err = ParseDay("18/10/2026")
	assert.Error(t, err)

	tokyo := time.FixedZone("JST", 9*60*60)
	assert.Equal(t, "2026-10-17", FormatDay(time.Date(2026, 10, 18, 3, 0, 0, 0, tokyo)))
}
