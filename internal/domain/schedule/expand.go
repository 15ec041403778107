package schedule

import "time"

// Window is one slot-sized interval inside a shift, in minutes since
// midnight.
type Window struct {
	StartMinute int
	EndMinute   int
}

// CarveWindows cuts consecutive duration-sized windows out of
// [startMinute, endMinute). Windows are back to back; a trailing
// remainder shorter than duration is dropped.
func CarveWindows(startMinute, endMinute, duration int) []Window {
	if duration <= 0 {
		return nil
	}

	var windows []Window
	for cur := startMinute; cur+duration <= endMinute; cur += duration {
		windows = append(windows, Window{
			StartMinute: cur,
			EndMinute:   cur + duration,
		})
	}
	return windows
}

// DatesInRange walks the inclusive [start, end] calendar range and keeps
// the dates whose weekday number is in the shift's weekday set.
func DatesInRange(start, end time.Time, weekdays map[int]bool) []time.Time {
	start = DateOnly(start)
	end = DateOnly(end)

	var dates []time.Time
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		if weekdays[int(d.Weekday())] {
			dates = append(dates, d)
		}
	}
	return dates
}

// DateOnly truncates a timestamp to midnight UTC of its calendar date.
func DateOnly(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
