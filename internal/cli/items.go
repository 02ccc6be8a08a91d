package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/runnerr0/studylog/internal/daylog"
)

// target resolves the selector into a category and a 0-based index.
func (sel ItemSelector) target() (study bool, index int, err error) {
	switch {
	case sel.Study != 0 && sel.Exercise != 0:
		return false, 0, errors.New("use either --study N or --exercise N, not both")
	case sel.Study > 0:
		return true, sel.Study - 1, nil
	case sel.Exercise > 0:
		return false, sel.Exercise - 1, nil
	case sel.Study < 0 || sel.Exercise < 0:
		return false, 0, errors.New("item numbers start at 1")
	default:
		return false, 0, errors.New("--study N or --exercise N is required")
	}
}

// editToday applies fn to today's items and saves the result.
func editToday(s *session, fn func(daylog.DailyLogInput) (daylog.DailyLogInput, error)) (*daylog.DayLog, error) {
	today, _, err := s.today()
	if err != nil {
		return nil, err
	}
	if today == nil {
		return nil, errors.New("nothing logged today")
	}
	in, err := fn(today.Input())
	if err != nil {
		return nil, err
	}
	return s.persist(in)
}

// Execute implements the go-flags Commander interface for DoneCommand.
func (c *DoneCommand) Execute(args []string) error {
	if _, _, err := c.target(); err != nil {
		return err
	}
	s, done, err := c.app.open()
	if err != nil {
		return err
	}
	defer done()

	return c.executeWithSession(s)
}

func (c *DoneCommand) executeWithSession(s *session) error {
	study, i, err := c.target()
	if err != nil {
		return err
	}

	saved, err := editToday(s, func(in daylog.DailyLogInput) (daylog.DailyLogInput, error) {
		if study {
			return in.ToggleStudy(i)
		}
		return in.ToggleExercise(i)
	})
	if err != nil {
		return err
	}

	if c.app.globals.JSON {
		return printJSON(toDayJSON(*saved, s.loc))
	}

	var name string
	var completed bool
	if study {
		it := saved.StudyItems[i]
		name, completed = it.Title, it.Completed
	} else {
		it := saved.ExerciseItems[i]
		name, completed = exerciseLine(it), it.Completed
	}
	state := "not done"
	if completed {
		state = "done"
	}
	fmt.Printf("%s %s marked %s\n", checkbox(completed), name, state)

	stat := daylog.StatOf(*saved)
	fmt.Printf("%d of %d completed today\n", stat.Completed(), stat.Total())
	return nil
}

// Execute implements the go-flags Commander interface for EditCommand.
func (c *EditCommand) Execute(args []string) error {
	if _, _, err := c.target(); err != nil {
		return err
	}
	s, done, err := c.app.open()
	if err != nil {
		return err
	}
	defer done()

	return c.executeWithSession(s)
}

func (c *EditCommand) executeWithSession(s *session) error {
	study, i, err := c.target()
	if err != nil {
		return err
	}

	if study && (c.Description != "" || c.Reps != 0) {
		return errors.New("--description and --reps apply to exercise items")
	}
	if !study && (c.Title != "" || c.Notes != "" || c.ClearNotes) {
		return errors.New("--title, --notes and --clear-notes apply to study items")
	}

	saved, err := editToday(s, func(in daylog.DailyLogInput) (daylog.DailyLogInput, error) {
		if study {
			if i < 0 || i >= len(in.StudyItems) {
				return in.ReplaceStudy(i, daylog.StudyItem{})
			}
			it := in.StudyItems[i]
			if title := strings.TrimSpace(c.Title); title != "" {
				it.Title = title
			}
			if c.ClearNotes {
				it.Notes = ""
			} else if c.Notes != "" {
				it.Notes = strings.TrimSpace(c.Notes)
			}
			return in.ReplaceStudy(i, it)
		}

		if i < 0 || i >= len(in.ExerciseItems) {
			return in.ReplaceExercise(i, daylog.ExerciseItem{})
		}
		it := in.ExerciseItems[i]
		if desc := strings.TrimSpace(c.Description); desc != "" {
			it.Description = desc
		}
		if c.Reps != 0 {
			it.Reps = c.Reps
		}
		return in.ReplaceExercise(i, it)
	})
	if err != nil {
		return err
	}

	if c.app.globals.JSON {
		return printJSON(toDayJSON(*saved, s.loc))
	}
	if study {
		fmt.Printf("Updated study item %d: %s\n", i+1, studyLine(saved.StudyItems[i]))
	} else {
		fmt.Printf("Updated exercise item %d: %s\n", i+1, exerciseLine(saved.ExerciseItems[i]))
	}
	return nil
}

// Execute implements the go-flags Commander interface for RemoveCommand.
func (c *RemoveCommand) Execute(args []string) error {
	if _, _, err := c.target(); err != nil {
		return err
	}
	s, done, err := c.app.open()
	if err != nil {
		return err
	}
	defer done()

	return c.executeWithSession(s)
}

func (c *RemoveCommand) executeWithSession(s *session) error {
	study, i, err := c.target()
	if err != nil {
		return err
	}

	var removed string
	saved, err := editToday(s, func(in daylog.DailyLogInput) (daylog.DailyLogInput, error) {
		if study {
			if i >= 0 && i < len(in.StudyItems) {
				removed = in.StudyItems[i].Title
			}
			return in.RemoveStudy(i)
		}
		if i >= 0 && i < len(in.ExerciseItems) {
			removed = exerciseLine(in.ExerciseItems[i])
		}
		return in.RemoveExercise(i)
	})
	if err != nil {
		return err
	}

	if c.app.globals.JSON {
		return printJSON(toDayJSON(*saved, s.loc))
	}
	fmt.Printf("Removed %s\n", removed)
	return nil
}
