package progression

import (
	"fmt"
	"time"
)

// DailyReward is the coin grant for one daily claim.
const DailyReward = 50

const dayLayout = "2006-01-02"

// DaysSinceUTC counts UTC calendar-day boundaries between last and now.
// 23:59 and 00:01 of the next UTC day are one day apart; two instants on the
// same UTC date are zero days apart whatever the hours between them.
func DaysSinceUTC(last, now time.Time) int {
	return int(utcMidnight(now).Sub(utcMidnight(last)).Hours() / 24)
}

func utcMidnight(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// FormatDay renders the UTC calendar date of t.
func FormatDay(t time.Time) string {
	return t.UTC().Format(dayLayout)
}

// ParseDay accepts a bare date or a full RFC 3339 timestamp, which is what
// older remote records carry.
func ParseDay(s string) (time.Time, error) {
	if t, err := time.Parse(dayLayout, s); err == nil {
		return t, nil
	}
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse day %q: %w", s, err)
	}
	return utcMidnight(t), nil
}
