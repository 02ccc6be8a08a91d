// Package daylog holds the day-log data model and the pure computations over
// it: calendar-day keys, carrying unfinished items forward, and progress
// analytics. Nothing in this package performs I/O or keeps state.
package daylog

import "time"

// StudyItem is a single study task for a day.
type StudyItem struct {
	Title     string `json:"title"`
	Notes     string `json:"notes"`
	Completed bool   `json:"completed"`
}

// ExerciseItem is a single exercise task for a day.
type ExerciseItem struct {
	Description string `json:"description"`
	Reps        int    `json:"reps"`
	Completed   bool   `json:"completed"`
}

// DayLog is everything recorded for one calendar day. Timestamp is assigned by
// the store when the log is first written and never changes afterwards.
type DayLog struct {
	ID            string         `json:"id"`
	Timestamp     int64          `json:"timestamp"` // nanoseconds since the Unix epoch
	StudyItems    []StudyItem    `json:"studyItems"`
	ExerciseItems []ExerciseItem `json:"exerciseItems"`
}

// DailyLogInput is the write-side projection of a DayLog. Stores replace a
// day's item sequences with it wholesale.
type DailyLogInput struct {
	StudyItems    []StudyItem    `json:"studyItems"`
	ExerciseItems []ExerciseItem `json:"exerciseItems"`
}

// Input returns a copy of the log's items as a write payload.
func (l DayLog) Input() DailyLogInput {
	return DailyLogInput{
		StudyItems:    cloneStudy(l.StudyItems),
		ExerciseItems: cloneExercise(l.ExerciseItems),
	}
}

// Time returns the log's timestamp as a time.Time in the local zone.
func (l DayLog) Time() time.Time {
	return TimeOf(l.Timestamp).Local()
}

// HasCompleted reports whether at least one item of either kind is done.
func (l DayLog) HasCompleted() bool {
	for _, it := range l.StudyItems {
		if it.Completed {
			return true
		}
	}
	for _, it := range l.ExerciseItems {
		if it.Completed {
			return true
		}
	}
	return false
}

// Empty reports whether the input carries no items at all.
func (in DailyLogInput) Empty() bool {
	return len(in.StudyItems) == 0 && len(in.ExerciseItems) == 0
}

func cloneStudy(items []StudyItem) []StudyItem {
	out := make([]StudyItem, len(items))
	copy(out, items)
	return out
}

func cloneExercise(items []ExerciseItem) []ExerciseItem {
	out := make([]ExerciseItem, len(items))
	copy(out, items)
	return out
}
