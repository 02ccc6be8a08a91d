package daylog

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrEmptyTitle is returned for a study item without a title.
	ErrEmptyTitle = errors.New("study item title must not be empty")
	// ErrEmptyDescription is returned for an exercise item without a description.
	ErrEmptyDescription = errors.New("exercise item description must not be empty")
	// ErrNonPositiveReps is returned for an exercise item with reps < 1.
	ErrNonPositiveReps = errors.New("exercise item reps must be positive")
)

// Validate checks a study item before it is written.
func (it StudyItem) Validate() error {
	if strings.TrimSpace(it.Title) == "" {
		return ErrEmptyTitle
	}
	return nil
}

// Validate checks an exercise item before it is written.
func (it ExerciseItem) Validate() error {
	if strings.TrimSpace(it.Description) == "" {
		return ErrEmptyDescription
	}
	if it.Reps <= 0 {
		return ErrNonPositiveReps
	}
	return nil
}

// Validate reports the first invalid item, numbered from 1.
func (in DailyLogInput) Validate() error {
	for i, it := range in.StudyItems {
		if err := it.Validate(); err != nil {
			return fmt.Errorf("study item %d: %w", i+1, err)
		}
	}
	for i, it := range in.ExerciseItems {
		if err := it.Validate(); err != nil {
			return fmt.Errorf("exercise item %d: %w", i+1, err)
		}
	}
	return nil
}
