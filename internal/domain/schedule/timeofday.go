package schedule

import (
	"fmt"
	"time"
)

const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// MinuteOfDay converts an "HH:MM" time-of-day string into minutes since
// midnight.
func MinuteOfDay(hhmm string) (int, error) {
	t, err := time.Parse(TimeFormat, hhmm)
	if err != nil {
		return 0, fmt.Errorf("invalid time of day %q: %w", hhmm, err)
	}
	return t.Hour()*60 + t.Minute(), nil
}

// FormatMinute renders minutes since midnight back into "HH:MM".
func FormatMinute(m int) string {
	return fmt.Sprintf("%02d:%02d", m/60, m%60)
}

// InstantUTC composes a calendar date and a minute-of-day into a UTC
// timestamp. Shift times are already UTC-normalized, so display time and
// instant differ only in representation.
func InstantUTC(date time.Time, minute int) time.Time {
	return time.Date(
		date.Year(), date.Month(), date.Day(),
		minute/60, minute%60, 0, 0,
		time.UTC,
	)
}
