package cli

import (
	"fmt"

	"github.com/gosuri/uitable"

	"github.com/runnerr0/studylog/internal/daylog"
)

// historyJSON is the JSON output structure for the history command.
type historyJSON struct {
	Count int       `json:"count"`
	Days  []dayJSON `json:"days"`
}

// Execute implements the go-flags Commander interface for HistoryCommand.
func (c *HistoryCommand) Execute(args []string) error {
	s, done, err := c.app.open()
	if err != nil {
		return err
	}
	defer done()

	return c.executeWithSession(s)
}

func (c *HistoryCommand) executeWithSession(s *session) error {
	_, past, err := s.today()
	if err != nil {
		return err
	}
	if c.Limit > 0 && len(past) > c.Limit {
		past = past[:c.Limit]
	}

	if c.app.globals.JSON {
		out := historyJSON{Count: len(past), Days: make([]dayJSON, len(past))}
		for i, l := range past {
			out.Days[i] = toDayJSON(l, s.loc)
		}
		return printJSON(out)
	}

	if len(past) == 0 {
		fmt.Println("No past days logged yet.")
		return nil
	}

	tbl := uitable.New()
	tbl.Separator = "  "
	tbl.AddRow(heading("DATE"), heading("STUDY"), heading("EXERCISE"), heading("COMPLETED"), heading("ID"))
	for _, l := range past {
		stat := daylog.StatOf(l)
		tbl.AddRow(
			daylog.FormatDate(l.Timestamp, s.loc),
			fmt.Sprintf("%d/%d", stat.CompletedStudyItems, stat.TotalStudyItems),
			fmt.Sprintf("%d/%d", stat.CompletedExerciseItems, stat.TotalExerciseItems),
			fmt.Sprintf("%d of %d", stat.Completed(), stat.Total()),
			shortID(l.ID),
		)
	}
	fmt.Println(tbl)
	return nil
}

// shortID abbreviates a log id for tables; show --id accepts the full id.
func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
