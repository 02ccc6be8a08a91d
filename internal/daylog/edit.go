package daylog

import (
	"errors"
	"fmt"
)

// ErrItemIndex is returned when an edit names an item that does not exist.
var ErrItemIndex = errors.New("item index out of range")

// Edits never mutate the receiver: each returns a fresh input ready to be
// persisted as a full replacement of the day.

// AddStudy appends a study item.
func (in DailyLogInput) AddStudy(it StudyItem) DailyLogInput {
	out := in.clone()
	out.StudyItems = append(out.StudyItems, it)
	return out
}

// AddExercise appends an exercise item.
func (in DailyLogInput) AddExercise(it ExerciseItem) DailyLogInput {
	out := in.clone()
	out.ExerciseItems = append(out.ExerciseItems, it)
	return out
}

// ToggleStudy flips the completion flag of study item i (0-based).
func (in DailyLogInput) ToggleStudy(i int) (DailyLogInput, error) {
	if err := checkIndex(i, len(in.StudyItems)); err != nil {
		return in, err
	}
	out := in.clone()
	out.StudyItems[i].Completed = !out.StudyItems[i].Completed
	return out, nil
}

// ToggleExercise flips the completion flag of exercise item i (0-based).
func (in DailyLogInput) ToggleExercise(i int) (DailyLogInput, error) {
	if err := checkIndex(i, len(in.ExerciseItems)); err != nil {
		return in, err
	}
	out := in.clone()
	out.ExerciseItems[i].Completed = !out.ExerciseItems[i].Completed
	return out, nil
}

// ReplaceStudy swaps study item i for it.
func (in DailyLogInput) ReplaceStudy(i int, it StudyItem) (DailyLogInput, error) {
	if err := checkIndex(i, len(in.StudyItems)); err != nil {
		return in, err
	}
	out := in.clone()
	out.StudyItems[i] = it
	return out, nil
}

// ReplaceExercise swaps exercise item i for it.
func (in DailyLogInput) ReplaceExercise(i int, it ExerciseItem) (DailyLogInput, error) {
	if err := checkIndex(i, len(in.ExerciseItems)); err != nil {
		return in, err
	}
	out := in.clone()
	out.ExerciseItems[i] = it
	return out, nil
}

// RemoveStudy deletes study item i.
func (in DailyLogInput) RemoveStudy(i int) (DailyLogInput, error) {
	if err := checkIndex(i, len(in.StudyItems)); err != nil {
		return in, err
	}
	out := in.clone()
	out.StudyItems = append(out.StudyItems[:i], out.StudyItems[i+1:]...)
	return out, nil
}

// RemoveExercise deletes exercise item i.
func (in DailyLogInput) RemoveExercise(i int) (DailyLogInput, error) {
	if err := checkIndex(i, len(in.ExerciseItems)); err != nil {
		return in, err
	}
	out := in.clone()
	out.ExerciseItems = append(out.ExerciseItems[:i], out.ExerciseItems[i+1:]...)
	return out, nil
}

func (in DailyLogInput) clone() DailyLogInput {
	return DailyLogInput{
		StudyItems:    cloneStudy(in.StudyItems),
		ExerciseItems: cloneExercise(in.ExerciseItems),
	}
}

func checkIndex(i, n int) error {
	if i < 0 || i >= n {
		return fmt.Errorf("%w: %d (have %d)", ErrItemIndex, i+1, n)
	}
	return nil
}
