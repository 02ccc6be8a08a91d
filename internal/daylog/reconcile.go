package daylog

import "strings"

func normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// SameStudyItem reports whether two study items are the same task: title and
// notes compared case-insensitively after trimming. Completion is ignored.
func SameStudyItem(a, b StudyItem) bool {
	return normalize(a.Title) == normalize(b.Title) &&
		normalize(a.Notes) == normalize(b.Notes)
}

// SameExerciseItem reports whether two exercise items are the same task: the
// trimmed, case-folded description and the exact rep count must match.
func SameExerciseItem(a, b ExerciseItem) bool {
	return a.Reps == b.Reps && normalize(a.Description) == normalize(b.Description)
}

// Reconcile carries the unfinished source items into the destination day.
// Destination items come first, untouched and in order; then every unfinished
// source item not already present in the destination, reset to not completed.
func Reconcile(srcStudy []StudyItem, srcExercise []ExerciseItem, dstStudy []StudyItem, dstExercise []ExerciseItem) DailyLogInput {
	study := cloneStudy(dstStudy)
	for _, it := range srcStudy {
		if it.Completed || containsStudy(dstStudy, it) {
			continue
		}
		it.Completed = false
		study = append(study, it)
	}

	exercise := cloneExercise(dstExercise)
	for _, it := range srcExercise {
		if it.Completed || containsExercise(dstExercise, it) {
			continue
		}
		it.Completed = false
		exercise = append(exercise, it)
	}

	return DailyLogInput{StudyItems: study, ExerciseItems: exercise}
}

// CopyUnfinished reconciles source into today's log. A nil today means no log
// exists yet for the current day, so the unfinished items start a fresh one.
func CopyUnfinished(source DayLog, today *DayLog) DailyLogInput {
	if today == nil {
		return Reconcile(source.StudyItems, source.ExerciseItems, nil, nil)
	}
	return Reconcile(source.StudyItems, source.ExerciseItems, today.StudyItems, today.ExerciseItems)
}

func containsStudy(items []StudyItem, it StudyItem) bool {
	for _, existing := range items {
		if SameStudyItem(existing, it) {
			return true
		}
	}
	return false
}

func containsExercise(items []ExerciseItem, it ExerciseItem) bool {
	for _, existing := range items {
		if SameExerciseItem(existing, it) {
			return true
		}
	}
	return false
}
