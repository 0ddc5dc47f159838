package timeutil

import (
	"fmt"
	"math"
	"time"
)

// DefaultUTCOffsetMinutes is the reference offset used to bucket attendance
// into calendar days (+05:30). Day boundaries never follow the host timezone.
const DefaultUTCOffsetMinutes = 330

// Location builds a fixed-offset location from an offset in minutes.
func Location(offsetMinutes int) *time.Location {
	name := fmt.Sprintf("UTC%+03d:%02d", offsetMinutes/60, abs(offsetMinutes)%60)
	return time.FixedZone(name, offsetMinutes*60)
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}

// DayStart returns the first instant of t's calendar day in loc.
func DayStart(t time.Time, loc *time.Location) time.Time {
	local := t.In(loc)
	return time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, loc)
}

// DayEnd returns the last instant of t's calendar day in loc.
func DayEnd(t time.Time, loc *time.Location) time.Time {
	return DayStart(t, loc).AddDate(0, 0, 1).Add(-time.Nanosecond)
}

// SameDay reports whether a and b fall on the same calendar day in loc.
func SameDay(a, b time.Time, loc *time.Location) bool {
	return DayStart(a, loc).Equal(DayStart(b, loc))
}

// FormatDay renders t's calendar day in loc as YYYY-MM-DD.
func FormatDay(t time.Time, loc *time.Location) string {
	return t.In(loc).Format("2006-01-02")
}

// ElapsedHours returns the non-negative duration between in and out in hours,
// rounded to two decimals.
func ElapsedHours(in, out time.Time) float64 {
	hours := out.Sub(in).Hours()
	if hours < 0 {
		hours = 0
	}
	return Round2(hours)
}

// Round2 rounds to two decimal places.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// FormatHours renders an hour total with two decimals, e.g. "8.50".
func FormatHours(v float64) string {
	return fmt.Sprintf("%.2f", v)
}

// MonthRange returns the start of t's calendar month and the end of its last
// day in loc.
func MonthRange(t time.Time, loc *time.Location) (time.Time, time.Time) {
	local := t.In(loc)
	start := time.Date(local.Year(), local.Month(), 1, 0, 0, 0, 0, loc)
	end := start.AddDate(0, 1, 0).Add(-time.Nanosecond)
	return start, end
}

// ShiftMonths moves t by the given number of calendar months, clamping the
// day of month to the target month's last day. AddDate alone would roll
// "February 31" into March.
func ShiftMonths(t time.Time, months int) time.Time {
	year, month, day := t.Date()
	target := time.Date(year, month+time.Month(months), 1, 0, 0, 0, 0, t.Location())
	lastDay := time.Date(target.Year(), target.Month()+1, 0, 0, 0, 0, 0, t.Location()).Day()
	if day > lastDay {
		day = lastDay
	}
	return time.Date(target.Year(), target.Month(), day,
		t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), t.Location())
}
