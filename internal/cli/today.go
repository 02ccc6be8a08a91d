package cli

import (
	"fmt"
	"time"

	"github.com/runnerr0/studylog/internal/daylog"
)

// todayJSON is the JSON output structure for the today command.
type todayJSON struct {
	Date            string   `json:"date"`
	Log             *dayJSON `json:"log"`
	Streak          int      `json:"streak"`
	StreakMessage   string   `json:"streakMessage"`
	StudyPercent    int      `json:"studyPercent"`
	ExercisePercent int      `json:"exercisePercent"`
}

// Execute implements the go-flags Commander interface for TodayCommand.
func (c *TodayCommand) Execute(args []string) error {
	s, done, err := c.app.open()
	if err != nil {
		return err
	}
	defer done()

	return c.executeWithSession(s)
}

func (c *TodayCommand) executeWithSession(s *session) error {
	logs, err := s.store.FetchAllLogs(s.ctx)
	if err != nil {
		return fmt.Errorf("fetch logs: %w", err)
	}
	today, _ := daylog.Partition(logs, s.now)
	streak := daylog.Streak(logs, s.now)
	overall := daylog.CompletionStats(insightWindow(logs, s))

	if c.app.globals.JSON {
		out := todayJSON{
			Date:            daylog.TodayKeyAt(s.now),
			Streak:          streak,
			StreakMessage:   daylog.StreakMessage(streak),
			StudyPercent:    overall.StudyPercent(),
			ExercisePercent: overall.ExercisePercent(),
		}
		if today != nil {
			d := toDayJSON(*today, s.loc)
			out.Log = &d
		}
		return printJSON(out)
	}

	if today == nil {
		fmt.Println(heading(s.now.Format("Mon, Jan 2, 2006")))
		fmt.Println()
		fmt.Println("Nothing planned yet. Add items with `studylog add --study TITLE` or `studylog add --exercise DESC --reps N`.")
	} else {
		printDay(*today, s.loc)
		stat := daylog.StatOf(*today)
		fmt.Println()
		fmt.Printf("%d of %d completed today\n", stat.Completed(), stat.Total())
	}

	fmt.Println()
	printStreak(streak)
	fmt.Printf("Study:     %d%%\n", overall.StudyPercent())
	fmt.Printf("Exercise:  %d%%\n", overall.ExercisePercent())
	return nil
}

// insightWindow keeps the logs inside the configured insights window; a zero
// window keeps everything.
func insightWindow(logs []daylog.DayLog, s *session) []daylog.DayLog {
	days := s.cfg.Insights.WindowDays
	if days <= 0 {
		return logs
	}
	return daylog.Window(logs, s.now.AddDate(0, 0, -days), time.Time{})
}
