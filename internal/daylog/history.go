package daylog

import (
	"sort"
	"time"
)

// SortNewestFirst returns a copy of logs ordered by timestamp, newest first.
// Logs with equal timestamps keep their relative order.
func SortNewestFirst(logs []DayLog) []DayLog {
	out := make([]DayLog, len(logs))
	copy(out, logs)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Timestamp > out[j].Timestamp
	})
	return out
}

// Partition splits logs into the log for now's day and everything else.
// When several logs share today's key the newest one is today's log and the
// rest are returned with the past days. past is ordered newest first.
func Partition(logs []DayLog, now time.Time) (*DayLog, []DayLog) {
	todayKey := TodayKeyAt(now)
	var today *DayLog
	past := make([]DayLog, 0, len(logs))
	for _, l := range SortNewestFirst(logs) {
		if today == nil && DayKeyIn(l.Timestamp, now.Location()) == todayKey {
			l := l
			today = &l
			continue
		}
		past = append(past, l)
	}
	return today, past
}

// FindByKey returns the newest log whose day key in loc equals key.
func FindByKey(logs []DayLog, key string, loc *time.Location) *DayLog {
	for _, l := range SortNewestFirst(logs) {
		if DayKeyIn(l.Timestamp, loc) == key {
			l := l
			return &l
		}
	}
	return nil
}

// FindByID returns the log with the given id.
func FindByID(logs []DayLog, id string) *DayLog {
	for i := range logs {
		if logs[i].ID == id {
			l := logs[i]
			return &l
		}
	}
	return nil
}
