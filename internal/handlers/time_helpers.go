package handlers

import (
	"time"

	"github.com/bookati/booking-api/internal/domain/schedule"
)

// Calendar dates in requests are plain YYYY-MM-DD values; shift and slot
// times are UTC-normalized, so dates parse in UTC.

func parseDateUTC(dateStr string) (time.Time, error) {
	return time.ParseInLocation(schedule.DateFormat, dateStr, time.UTC)
}

func parseTimeOfDay(timeStr string) (int, error) {
	return schedule.MinuteOfDay(timeStr)
}
