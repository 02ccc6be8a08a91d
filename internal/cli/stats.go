package cli

import (
	"fmt"
	"time"

	"github.com/runnerr0/studylog/internal/daylog"
)

// statsJSON is the JSON output structure for the stats command.
type statsJSON struct {
	Since           string                `json:"since,omitempty"`
	Days            int                   `json:"days"`
	Streak          int                   `json:"streak"`
	StreakMessage   string                `json:"streakMessage"`
	StudyPercent    int                   `json:"studyPercent"`
	ExercisePercent int                   `json:"exercisePercent"`
	Totals          daylog.CompletionStat `json:"totals"`
}

// Execute implements the go-flags Commander interface for StatsCommand.
func (c *StatsCommand) Execute(args []string) error {
	s, done, err := c.app.open()
	if err != nil {
		return err
	}
	defer done()

	return c.executeWithSession(s)
}

func (c *StatsCommand) executeWithSession(s *session) error {
	var since time.Time
	switch {
	case c.Since != "":
		dur, err := parseDuration(c.Since)
		if err != nil {
			return fmt.Errorf("invalid --since value %q: %w", c.Since, err)
		}
		since = s.now.Add(-dur)
	case s.cfg.Insights.WindowDays > 0:
		since = s.now.AddDate(0, 0, -s.cfg.Insights.WindowDays)
	}

	logs, err := s.store.FetchAllLogs(s.ctx)
	if err != nil {
		return fmt.Errorf("fetch logs: %w", err)
	}

	// The streak always looks at every log; the window only bounds the rates.
	streak := daylog.Streak(logs, s.now)
	windowed := daylog.Window(logs, since, time.Time{})
	totals := daylog.CompletionStats(windowed)

	if c.app.globals.JSON {
		out := statsJSON{
			Days:            len(windowed),
			Streak:          streak,
			StreakMessage:   daylog.StreakMessage(streak),
			StudyPercent:    totals.StudyPercent(),
			ExercisePercent: totals.ExercisePercent(),
			Totals:          totals,
		}
		if !since.IsZero() {
			out.Since = since.Format(time.RFC3339)
		}
		return printJSON(out)
	}

	if since.IsZero() {
		fmt.Printf("Progress across all %s\n", plural(len(windowed), "day"))
	} else {
		fmt.Printf("Progress since %s (%s)\n", since.Format("Jan 2, 2006"), plural(len(windowed), "day"))
	}
	fmt.Println()
	printStreak(streak)
	fmt.Printf("Study:     %d%% (%d of %d)\n", totals.StudyPercent(), totals.CompletedStudyItems, totals.TotalStudyItems)
	fmt.Printf("Exercise:  %d%% (%d of %d)\n", totals.ExercisePercent(), totals.CompletedExerciseItems, totals.TotalExerciseItems)
	return nil
}
