package cli

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/runnerr0/studylog/internal/daylog"
	"github.com/runnerr0/studylog/internal/storage"
)

// Execute implements the go-flags Commander interface for ShowCommand.
func (c *ShowCommand) Execute(args []string) error {
	if c.Day == "" && c.ID == "" {
		return fmt.Errorf("--day or --id is required for show command")
	}

	s, done, err := c.app.open()
	if err != nil {
		return err
	}
	defer done()

	return c.executeWithSession(s)
}

func (c *ShowCommand) executeWithSession(s *session) error {
	l, err := resolveLog(s, c.Day, c.ID)
	if err != nil {
		return err
	}

	// JSON output (--json global flag)
	if c.app.globals.JSON {
		return printJSON(toDayJSON(*l, s.loc))
	}

	switch c.Format {
	case "json":
		return printJSON(toDayJSON(*l, s.loc))
	case "md":
		fmt.Print(markdownDay(*l, s.loc))
	case "full", "":
		c.outputFull(*l, s.loc)
	default:
		return fmt.Errorf("unknown format %q (use full, md or json)", c.Format)
	}
	return nil
}

func (c *ShowCommand) outputFull(l daylog.DayLog, loc *time.Location) {
	fmt.Println(faint(l.ID))
	fmt.Printf("Created:   %s\n", daylog.TimeOf(l.Timestamp).In(loc).Format("2006-01-02 15:04:05"))
	fmt.Println()
	printDay(l, loc)
}

// resolveLog finds a log by day key or by id. An id may be abbreviated to
// any unique prefix, as printed by history.
func resolveLog(s *session, day, id string) (*daylog.DayLog, error) {
	if day != "" && id != "" {
		return nil, errors.New("use either --day or --id, not both")
	}

	if id != "" {
		l, err := s.store.GetLog(s.ctx, id)
		if err == nil {
			return l, nil
		}
		if !errors.Is(err, storage.ErrNotFound) {
			return nil, fmt.Errorf("get log: %w", err)
		}

		logs, err := s.store.FetchAllLogs(s.ctx)
		if err != nil {
			return nil, fmt.Errorf("fetch logs: %w", err)
		}
		var match *daylog.DayLog
		for i := range logs {
			if strings.HasPrefix(logs[i].ID, id) {
				if match != nil {
					return nil, fmt.Errorf("id prefix %q is ambiguous", id)
				}
				match = &logs[i]
			}
		}
		if match == nil {
			return nil, fmt.Errorf("day log not found: %s", id)
		}
		return match, nil
	}

	if _, err := daylog.ParseDayKey(day, s.loc); err != nil {
		return nil, err
	}
	logs, err := s.store.FetchAllLogs(s.ctx)
	if err != nil {
		return nil, fmt.Errorf("fetch logs: %w", err)
	}
	l := daylog.FindByKey(logs, day, s.loc)
	if l == nil {
		return nil, fmt.Errorf("no day log for %s", day)
	}
	return l, nil
}
