package cli

import (
	"errors"
	"fmt"

	"github.com/runnerr0/studylog/internal/daylog"
)

// copyJSON is the JSON output structure for the copy command.
type copyJSON struct {
	From          string   `json:"from"`
	StudyAdded    int      `json:"studyAdded"`
	ExerciseAdded int      `json:"exerciseAdded"`
	Today         *dayJSON `json:"today"`
}

// Execute implements the go-flags Commander interface for CopyCommand.
func (c *CopyCommand) Execute(args []string) error {
	if c.From == "" && c.ID == "" {
		return fmt.Errorf("--from or --id is required for copy command")
	}

	s, done, err := c.app.open()
	if err != nil {
		return err
	}
	defer done()

	return c.executeWithSession(s)
}

func (c *CopyCommand) executeWithSession(s *session) error {
	source, err := resolveLog(s, c.From, c.ID)
	if err != nil {
		return err
	}
	if daylog.IsToday(source.Timestamp, s.now) {
		return errors.New("cannot copy today's log into itself")
	}

	today, _, err := s.today()
	if err != nil {
		return err
	}
	before := daylog.DailyLogInput{}
	if today != nil {
		before = today.Input()
	}

	merged := daylog.CopyUnfinished(*source, today)
	studyAdded := len(merged.StudyItems) - len(before.StudyItems)
	exerciseAdded := len(merged.ExerciseItems) - len(before.ExerciseItems)

	saved := today
	if studyAdded+exerciseAdded > 0 {
		saved, err = s.persist(merged)
		if err != nil {
			return err
		}
	}

	from := daylog.DayKeyIn(source.Timestamp, s.loc)
	if c.app.globals.JSON {
		out := copyJSON{From: from, StudyAdded: studyAdded, ExerciseAdded: exerciseAdded}
		if saved != nil {
			d := toDayJSON(*saved, s.loc)
			out.Today = &d
		}
		return printJSON(out)
	}

	if studyAdded+exerciseAdded == 0 {
		fmt.Printf("Nothing to copy from %s: every unfinished item is already on today's list.\n", from)
		return nil
	}
	fmt.Printf("Copied %s and %s from %s\n",
		plural(studyAdded, "study item"), plural(exerciseAdded, "exercise item"), from)
	return nil
}
