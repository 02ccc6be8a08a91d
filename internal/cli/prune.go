package cli

import (
	"errors"
	"fmt"
	"time"

	"github.com/runnerr0/studylog/internal/daylog"
)

// pruneJSON is the JSON output structure for the prune command.
type pruneJSON struct {
	Cutoff string `json:"cutoff"`
	Pruned int64  `json:"pruned"`
	DryRun bool   `json:"dry_run"`
}

// Execute implements the go-flags Commander interface for PruneCommand.
func (c *PruneCommand) Execute(args []string) error {
	if c.OlderThan != "" {
		if _, err := parseDuration(c.OlderThan); err != nil {
			return fmt.Errorf("invalid --older-than value %q: %w", c.OlderThan, err)
		}
	}

	s, done, err := c.app.open()
	if err != nil {
		return err
	}
	defer done()

	return c.executeWithSession(s)
}

// retention resolves the pruning period from --older-than or retention.days.
func (c *PruneCommand) retention(s *session) (time.Duration, error) {
	if c.OlderThan != "" {
		dur, err := parseDuration(c.OlderThan)
		if err != nil {
			return 0, fmt.Errorf("invalid --older-than value %q: %w", c.OlderThan, err)
		}
		return dur, nil
	}
	if s.cfg.Retention.Days > 0 {
		return time.Duration(s.cfg.Retention.Days) * 24 * time.Hour, nil
	}
	return 0, errors.New("no retention configured: pass --older-than or set retention.days")
}

func (c *PruneCommand) executeWithSession(s *session) error {
	dur, err := c.retention(s)
	if err != nil {
		return err
	}
	cutoff := s.now.Add(-dur)

	var n int64
	if c.DryRun {
		logs, err := s.store.FetchAllLogs(s.ctx)
		if err != nil {
			return fmt.Errorf("fetch logs: %w", err)
		}
		for _, l := range logs {
			if l.Timestamp < daylog.Nanos(cutoff) {
				n++
			}
		}
	} else {
		n, err = s.store.PruneBefore(s.ctx, cutoff)
		if err != nil {
			return fmt.Errorf("prune failed: %w", err)
		}
		s.logger.Info("pruned day logs", "cutoff", cutoff, "count", n)
	}

	if c.app.globals.JSON {
		return printJSON(pruneJSON{
			Cutoff: cutoff.UTC().Format(time.RFC3339),
			Pruned: n,
			DryRun: c.DryRun,
		})
	}

	logs := plural(int(n), "day log")
	if c.DryRun {
		fmt.Printf("Would prune %s older than %s (dry run)\n", logs, cutoff.Format("2006-01-02"))
		return nil
	}
	fmt.Printf("Pruned %s older than %s\n", logs, cutoff.Format("2006-01-02"))
	return nil
}
