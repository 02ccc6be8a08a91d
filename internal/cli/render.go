package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/fatih/color"

	"github.com/runnerr0/studylog/internal/daylog"
)

var (
	doneMark  = color.New(color.FgGreen).SprintFunc()
	openMark  = color.New(color.FgYellow).SprintFunc()
	heading   = color.New(color.Bold).SprintFunc()
	faint     = color.New(color.Faint).SprintFunc()
	streakHot = color.New(color.FgRed, color.Bold).SprintFunc()
)

// dayJSON is the JSON shape of one day log.
type dayJSON struct {
	ID            string                `json:"id"`
	Date          string                `json:"date"`
	Timestamp     int64                 `json:"timestamp"`
	StudyItems    []daylog.StudyItem    `json:"studyItems"`
	ExerciseItems []daylog.ExerciseItem `json:"exerciseItems"`
	Stats         daylog.CompletionStat `json:"stats"`
}

func toDayJSON(l daylog.DayLog, loc *time.Location) dayJSON {
	in := l.Input()
	return dayJSON{
		ID:            l.ID,
		Date:          daylog.DayKeyIn(l.Timestamp, loc),
		Timestamp:     l.Timestamp,
		StudyItems:    in.StudyItems,
		ExerciseItems: in.ExerciseItems,
		Stats:         daylog.StatOf(l),
	}
}

func checkbox(done bool) string {
	if done {
		return doneMark("[x]")
	}
	return openMark("[ ]")
}

func studyLine(it daylog.StudyItem) string {
	if it.Notes == "" {
		return it.Title
	}
	return fmt.Sprintf("%s %s", it.Title, faint("("+it.Notes+")"))
}

func exerciseLine(it daylog.ExerciseItem) string {
	return fmt.Sprintf("%s x%d", it.Description, it.Reps)
}

// printDay prints a day log as numbered study and exercise sections.
func printDay(l daylog.DayLog, loc *time.Location) {
	stat := daylog.StatOf(l)

	fmt.Println(heading(daylog.FormatDate(l.Timestamp, loc)))
	fmt.Println()

	fmt.Printf("Study (%d of %d completed)\n", stat.CompletedStudyItems, stat.TotalStudyItems)
	if len(l.StudyItems) == 0 {
		fmt.Println("  No study items.")
	}
	for i, it := range l.StudyItems {
		fmt.Printf("  %d. %s %s\n", i+1, checkbox(it.Completed), studyLine(it))
	}
	fmt.Println()

	fmt.Printf("Exercise (%d of %d completed)\n", stat.CompletedExerciseItems, stat.TotalExerciseItems)
	if len(l.ExerciseItems) == 0 {
		fmt.Println("  No exercise items.")
	}
	for i, it := range l.ExerciseItems {
		fmt.Printf("  %d. %s %s\n", i+1, checkbox(it.Completed), exerciseLine(it))
	}
}

// markdownDay renders a day log as a Markdown checklist.
func markdownDay(l daylog.DayLog, loc *time.Location) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n", daylog.FormatDate(l.Timestamp, loc))

	b.WriteString("## Study\n\n")
	for _, it := range l.StudyItems {
		fmt.Fprintf(&b, "- %s %s", mdBox(it.Completed), it.Title)
		if it.Notes != "" {
			fmt.Fprintf(&b, ": %s", it.Notes)
		}
		b.WriteString("\n")
	}

	b.WriteString("\n## Exercise\n\n")
	for _, it := range l.ExerciseItems {
		fmt.Fprintf(&b, "- %s %s (%d reps)\n", mdBox(it.Completed), it.Description, it.Reps)
	}
	return b.String()
}

func mdBox(done bool) string {
	if done {
		return "[x]"
	}
	return "[ ]"
}

// printStreak prints the streak line with its encouragement.
func printStreak(streak int) {
	count := plural(streak, "day")
	if streak > 1 {
		count = streakHot(count)
	}
	fmt.Printf("Streak:    %s  %s\n", count, daylog.StreakMessage(streak))
}
