package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/runnerr0/studylog/internal/daylog"
)

// Execute implements the go-flags Commander interface for AddCommand.
func (c *AddCommand) Execute(args []string) error {
	// Validate before touching config or the store.
	if err := c.validate(); err != nil {
		return err
	}

	s, done, err := c.app.open()
	if err != nil {
		return err
	}
	defer done()

	return c.executeWithSession(s)
}

func (c *AddCommand) validate() error {
	study := strings.TrimSpace(c.Study)
	exercise := strings.TrimSpace(c.Exercise)
	switch {
	case study != "" && exercise != "":
		return errors.New("use either --study or --exercise, not both")
	case study == "" && exercise == "":
		return errors.New("--study TITLE or --exercise DESCRIPTION is required")
	case exercise != "" && c.Notes != "":
		return errors.New("--notes applies to study items")
	case exercise != "":
		return daylog.ExerciseItem{Description: exercise, Reps: c.Reps}.Validate()
	case c.Reps != 0:
		return errors.New("--reps applies to exercise items")
	default:
		return nil
	}
}

func (c *AddCommand) executeWithSession(s *session) error {
	in, err := s.todayInput()
	if err != nil {
		return err
	}

	var added string
	if study := strings.TrimSpace(c.Study); study != "" {
		in = in.AddStudy(daylog.StudyItem{
			Title:     study,
			Notes:     strings.TrimSpace(c.Notes),
			Completed: c.Done,
		})
		added = fmt.Sprintf("study item %d: %s", len(in.StudyItems), study)
	} else {
		desc := strings.TrimSpace(c.Exercise)
		in = in.AddExercise(daylog.ExerciseItem{
			Description: desc,
			Reps:        c.Reps,
			Completed:   c.Done,
		})
		added = fmt.Sprintf("exercise item %d: %s x%d", len(in.ExerciseItems), desc, c.Reps)
	}

	saved, err := s.persist(in)
	if err != nil {
		return err
	}

	if c.app.globals.JSON {
		return printJSON(toDayJSON(*saved, s.loc))
	}
	fmt.Printf("Added %s\n", added)
	return nil
}
