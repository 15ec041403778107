package schedule

import (
	"testing"
	"time"
)

func mustDate(t *testing.T, year int, month time.Month, day int) time.Time {
	t.Helper()
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

func TestCarveWindows_EvenDivision(t *testing.T) {
	// 09:00 to 17:00 with 60-minute slots: eight back-to-back windows.
	windows := CarveWindows(9*60, 17*60, 60)

	if len(windows) != 8 {
		t.Fatalf("expected 8 windows, got %d", len(windows))
	}
	if windows[0].StartMinute != 9*60 || windows[0].EndMinute != 10*60 {
		t.Fatalf("unexpected first window: %+v", windows[0])
	}
	last := windows[len(windows)-1]
	if last.StartMinute != 16*60 || last.EndMinute != 17*60 {
		t.Fatalf("unexpected last window: %+v", last)
	}
	for i := 1; i < len(windows); i++ {
		if windows[i].StartMinute != windows[i-1].EndMinute {
			t.Fatalf("windows not back to back at index %d: %+v", i, windows)
		}
	}
}

func TestCarveWindows_RemainderDropped(t *testing.T) {
	// A 100-minute window with 90-minute slots leaves a 10-minute tail
	// that must not become a short slot.
	windows := CarveWindows(10*60, 11*60+40, 90)

	if len(windows) != 1 {
		t.Fatalf("expected 1 window, got %d", len(windows))
	}
	if windows[0].StartMinute != 10*60 || windows[0].EndMinute != 11*60+30 {
		t.Fatalf("unexpected window: %+v", windows[0])
	}
}

func TestCarveWindows_DurationLargerThanWindow(t *testing.T) {
	windows := CarveWindows(9*60, 9*60+30, 60)
	if len(windows) != 0 {
		t.Fatalf("expected no windows, got %d", len(windows))
	}
}

func TestCarveWindows_NonPositiveDuration(t *testing.T) {
	if got := CarveWindows(9*60, 17*60, 0); got != nil {
		t.Fatalf("expected nil for zero duration, got %v", got)
	}
	if got := CarveWindows(9*60, 17*60, -30); got != nil {
		t.Fatalf("expected nil for negative duration, got %v", got)
	}
}

func TestDatesInRange_WeekdayFilter(t *testing.T) {
	// 2025-01-06 is a Monday. The full week Mon..Sun filtered to
	// weekdays 1..5 keeps exactly Mon..Fri.
	start := mustDate(t, 2025, time.January, 6)
	end := mustDate(t, 2025, time.January, 12)

	weekdays := map[int]bool{1: true, 2: true, 3: true, 4: true, 5: true}

	dates := DatesInRange(start, end, weekdays)
	if len(dates) != 5 {
		t.Fatalf("expected 5 dates, got %d: %v", len(dates), dates)
	}
	for i, d := range dates {
		want := start.AddDate(0, 0, i)
		if !d.Equal(want) {
			t.Fatalf("date %d: expected %v, got %v", i, want, d)
		}
	}
}

func TestDatesInRange_EmptyWeekdaySet(t *testing.T) {
	start := mustDate(t, 2025, time.January, 6)
	end := mustDate(t, 2025, time.January, 12)

	if dates := DatesInRange(start, end, map[int]bool{}); len(dates) != 0 {
		t.Fatalf("expected no dates, got %v", dates)
	}
}

func TestDatesInRange_SingleDay(t *testing.T) {
	day := mustDate(t, 2025, time.January, 8) // Wednesday

	dates := DatesInRange(day, day, map[int]bool{3: true})
	if len(dates) != 1 || !dates[0].Equal(day) {
		t.Fatalf("expected only %v, got %v", day, dates)
	}

	if dates := DatesInRange(day, day, map[int]bool{1: true}); len(dates) != 0 {
		t.Fatalf("expected no dates, got %v", dates)
	}
}

func TestMinuteOfDay_RoundTrip(t *testing.T) {
	cases := []struct {
		hhmm   string
		minute int
	}{
		{"00:00", 0},
		{"09:00", 540},
		{"13:30", 810},
		{"23:59", 1439},
	}
	for _, c := range cases {
		got, err := MinuteOfDay(c.hhmm)
		if err != nil {
			t.Fatalf("MinuteOfDay(%q): %v", c.hhmm, err)
		}
		if got != c.minute {
			t.Fatalf("MinuteOfDay(%q): expected %d, got %d", c.hhmm, c.minute, got)
		}
		if back := FormatMinute(got); back != c.hhmm {
			t.Fatalf("FormatMinute(%d): expected %q, got %q", got, c.hhmm, back)
		}
	}
}

func TestMinuteOfDay_Invalid(t *testing.T) {
	for _, bad := range []string{"", "9am", "25:00", "12:61"} {
		if _, err := MinuteOfDay(bad); err == nil {
			t.Fatalf("MinuteOfDay(%q): expected error", bad)
		}
	}
}

func TestInstantUTC(t *testing.T) {
	date := mustDate(t, 2025, time.January, 6)

	got := InstantUTC(date, 9*60+30)
	want := time.Date(2025, time.January, 6, 9, 30, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
}
