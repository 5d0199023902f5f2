package store

import (
	"fmt"
	"time"
)

// DayKey reduces a raw date string to its day-granularity key: the
// year/month/day as written are reassembled at UTC midnight, discarding
// any time-of-day and any timezone offset carried by the input.
// Accepts RFC3339 or plain "2006-01-02".
func DayKey(raw string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		t, err = time.Parse("2006-01-02", raw)
		if err != nil {
			return time.Time{}, fmt.Errorf("unable to parse date %q: %w", raw, err)
		}
	}
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC), nil
}
