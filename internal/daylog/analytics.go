package daylog

import "time"

// CompletionStat counts total and completed items per category.
type CompletionStat struct {
	TotalStudyItems        int `json:"totalStudyItems"`
	CompletedStudyItems    int `json:"completedStudyItems"`
	TotalExerciseItems     int `json:"totalExerciseItems"`
	CompletedExerciseItems int `json:"completedExerciseItems"`
}

// StatOf derives the completion counts of a single log.
func StatOf(l DayLog) CompletionStat {
	s := CompletionStat{
		TotalStudyItems:    len(l.StudyItems),
		TotalExerciseItems: len(l.ExerciseItems),
	}
	for _, it := range l.StudyItems {
		if it.Completed {
			s.CompletedStudyItems++
		}
	}
	for _, it := range l.ExerciseItems {
		if it.Completed {
			s.CompletedExerciseItems++
		}
	}
	return s
}

// StatsByLog returns one CompletionStat per log, in input order.
func StatsByLog(logs []DayLog) []CompletionStat {
	out := make([]CompletionStat, 0, len(logs))
	for _, l := range logs {
		out = append(out, StatOf(l))
	}
	return out
}

// CompletionStats sums the completion counts of every log. No date filtering
// is applied; see Window.
func CompletionStats(logs []DayLog) CompletionStat {
	var total CompletionStat
	for _, l := range logs {
		total = total.Add(StatOf(l))
	}
	return total
}

// Add returns the field-wise sum of s and o.
func (s CompletionStat) Add(o CompletionStat) CompletionStat {
	return CompletionStat{
		TotalStudyItems:        s.TotalStudyItems + o.TotalStudyItems,
		CompletedStudyItems:    s.CompletedStudyItems + o.CompletedStudyItems,
		TotalExerciseItems:     s.TotalExerciseItems + o.TotalExerciseItems,
		CompletedExerciseItems: s.CompletedExerciseItems + o.CompletedExerciseItems,
	}
}

// Total is the number of items of both kinds.
func (s CompletionStat) Total() int {
	return s.TotalStudyItems + s.TotalExerciseItems
}

// Completed is the number of completed items of both kinds.
func (s CompletionStat) Completed() int {
	return s.CompletedStudyItems + s.CompletedExerciseItems
}

// StudyPercent is the rounded share of completed study items.
func (s CompletionStat) StudyPercent() int {
	return Percent(s.CompletedStudyItems, s.TotalStudyItems)
}

// ExercisePercent is the rounded share of completed exercise items.
func (s CompletionStat) ExercisePercent() int {
	return Percent(s.CompletedExerciseItems, s.TotalExerciseItems)
}

// Percent returns completed/total as a whole percentage rounded half up.
// A zero or negative total yields 0.
func Percent(completed, total int) int {
	if total <= 0 || completed <= 0 {
		return 0
	}
	return (200*completed + total) / (2 * total)
}

// Streak counts consecutive calendar days, walking backward from asOf's day,
// on which at least one log has a completed item. Day keys are resolved in
// asOf's location. Logs dated after asOf never contribute.
func Streak(logs []DayLog, asOf time.Time) int {
	if len(logs) == 0 {
		return 0
	}
	loc := asOf.Location()
	done := make(map[string]bool, len(logs))
	for _, l := range SortNewestFirst(logs) {
		if l.HasCompleted() {
			done[DayKeyIn(l.Timestamp, loc)] = true
		}
	}

	streak := 0
	day := startOfDay(asOf)
	for done[day.Format(DayKeyLayout)] {
		streak++
		day = day.AddDate(0, 0, -1)
	}
	return streak
}

// StreakMessage is the encouragement shown next to a streak count.
func StreakMessage(streak int) string {
	switch {
	case streak <= 0:
		return "Complete an item to start your streak!"
	case streak == 1:
		return "Great start! Keep it going!"
	default:
		return "Amazing consistency!"
	}
}

// Window keeps the logs whose timestamp lies in [since, until). A zero bound
// leaves that side open.
func Window(logs []DayLog, since, until time.Time) []DayLog {
	out := make([]DayLog, 0, len(logs))
	for _, l := range logs {
		t := TimeOf(l.Timestamp)
		if !since.IsZero() && t.Before(since) {
			continue
		}
		if !until.IsZero() && !t.Before(until) {
			continue
		}
		out = append(out, l)
	}
	return out
}
