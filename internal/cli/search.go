package cli

import (
	"fmt"
	"strings"

	"github.com/gosuri/uitable"

	"github.com/runnerr0/studylog/internal/daylog"
)

// searchHit is one matching item.
type searchHit struct {
	ID        string `json:"id"`
	Date      string `json:"date"`
	Timestamp int64  `json:"timestamp"`
	Kind      string `json:"kind"`
	Number    int    `json:"number"`
	Text      string `json:"text"`
	Completed bool   `json:"completed"`
}

type jsonSearchOutput struct {
	Count   int         `json:"count"`
	Query   string      `json:"query"`
	Results []searchHit `json:"results"`
}

// Execute implements the go-flags Commander interface for SearchCommand.
func (c *SearchCommand) Execute(args []string) error {
	if c.query(args) == "" {
		return fmt.Errorf("a search query is required")
	}

	s, done, err := c.app.open()
	if err != nil {
		return err
	}
	defer done()

	return c.executeWithSession(s, args)
}

func (c *SearchCommand) query(args []string) string {
	query := c.Query
	if query == "" && len(args) > 0 {
		query = strings.Join(args, " ")
	}
	return strings.TrimSpace(query)
}

func (c *SearchCommand) executeWithSession(s *session, args []string) error {
	query := c.query(args)
	if query == "" {
		return fmt.Errorf("a search query is required")
	}

	logs, err := s.store.FetchAllLogs(s.ctx)
	if err != nil {
		return fmt.Errorf("fetch logs: %w", err)
	}

	results := searchLogs(logs, query, s)
	if c.Limit > 0 && len(results) > c.Limit {
		results = results[:c.Limit]
	}

	if c.app.globals.JSON {
		return printJSON(jsonSearchOutput{Count: len(results), Query: query, Results: results})
	}
	return c.printHuman(query, results)
}

// searchLogs matches query case-insensitively against study titles and notes
// and exercise descriptions. Results follow log order, then item order.
func searchLogs(logs []daylog.DayLog, query string, s *session) []searchHit {
	needle := strings.ToLower(query)
	contains := func(fields ...string) bool {
		for _, f := range fields {
			if strings.Contains(strings.ToLower(f), needle) {
				return true
			}
		}
		return false
	}

	results := []searchHit{}
	for _, l := range logs {
		date := daylog.DayKeyIn(l.Timestamp, s.loc)
		for i, it := range l.StudyItems {
			if contains(it.Title, it.Notes) {
				results = append(results, searchHit{
					ID: l.ID, Date: date, Timestamp: l.Timestamp,
					Kind: "study", Number: i + 1, Text: it.Title, Completed: it.Completed,
				})
			}
		}
		for i, it := range l.ExerciseItems {
			if contains(it.Description) {
				results = append(results, searchHit{
					ID: l.ID, Date: date, Timestamp: l.Timestamp,
					Kind: "exercise", Number: i + 1, Text: exerciseLine(it), Completed: it.Completed,
				})
			}
		}
	}
	return results
}

func (c *SearchCommand) printHuman(query string, results []searchHit) error {
	if len(results) == 0 {
		fmt.Printf("No results found for %q\n", query)
		return nil
	}

	resultWord := "results"
	if len(results) == 1 {
		resultWord = "result"
	}
	fmt.Printf("Found %d %s for %q\n\n", len(results), resultWord, query)

	tbl := uitable.New()
	tbl.Separator = "  "
	tbl.MaxColWidth = 60
	tbl.AddRow(heading("DATE"), heading("KIND"), heading("#"), "", heading("ITEM"))
	for _, r := range results {
		tbl.AddRow(r.Date, r.Kind, r.Number, checkbox(r.Completed), r.Text)
	}
	fmt.Println(tbl)
	return nil
}
