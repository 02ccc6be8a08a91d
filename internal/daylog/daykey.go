package daylog

import (
	"fmt"
	"time"
)

// DayKeyLayout is the time layout of a day key.
const DayKeyLayout = "2006-01-02"

const nanosPerMilli = int64(time.Millisecond)

// TimeOf converts a nanosecond timestamp to a time.Time at millisecond
// precision. Division floors toward negative infinity so pre-epoch timestamps
// land on the day that actually contains the instant.
func TimeOf(nanos int64) time.Time {
	ms := nanos / nanosPerMilli
	if nanos%nanosPerMilli < 0 {
		ms--
	}
	return time.UnixMilli(ms)
}

// Nanos is the inverse of TimeOf for times inside the int64 nanosecond range.
func Nanos(t time.Time) int64 {
	return t.UnixNano()
}

// DayKey returns the YYYY-MM-DD key of the timestamp in the process's local zone.
func DayKey(nanos int64) string {
	return DayKeyIn(nanos, time.Local)
}

// DayKeyIn returns the YYYY-MM-DD key of the timestamp in loc.
func DayKeyIn(nanos int64, loc *time.Location) string {
	if loc == nil {
		loc = time.Local
	}
	return TimeOf(nanos).In(loc).Format(DayKeyLayout)
}

// TodayKey returns the key of the current local day.
func TodayKey() string {
	return TodayKeyAt(time.Now())
}

// TodayKeyAt returns the key of the day containing now, in now's location.
func TodayKeyAt(now time.Time) string {
	return DayKeyIn(Nanos(now), now.Location())
}

// IsToday reports whether the timestamp falls on the same calendar day as now.
func IsToday(nanos int64, now time.Time) bool {
	return DayKeyIn(nanos, now.Location()) == TodayKeyAt(now)
}

// FormatDate renders a timestamp as e.g. "Mon, Oct 19, 2026".
func FormatDate(nanos int64, loc *time.Location) string {
	if loc == nil {
		loc = time.Local
	}
	return TimeOf(nanos).In(loc).Format("Mon, Jan 2, 2006")
}

// FormatDateShort renders a timestamp as e.g. "Oct 19".
func FormatDateShort(nanos int64, loc *time.Location) string {
	if loc == nil {
		loc = time.Local
	}
	return TimeOf(nanos).In(loc).Format("Jan 2")
}

// ParseDayKey parses a YYYY-MM-DD key as local midnight in loc.
func ParseDayKey(key string, loc *time.Location) (time.Time, error) {
	if loc == nil {
		loc = time.Local
	}
	t, err := time.ParseInLocation(DayKeyLayout, key, loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid day %q (want YYYY-MM-DD): %w", key, err)
	}
	return t, nil
}

// DayBounds returns the half-open window [start, end) covering the local day
// named by key. end is the next local midnight, so DST days are 23 or 25 hours.
func DayBounds(key string, loc *time.Location) (time.Time, time.Time, error) {
	start, err := ParseDayKey(key, loc)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	return start, start.AddDate(0, 0, 1), nil
}

// startOfDay truncates t to local midnight in t's location.
func startOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}
