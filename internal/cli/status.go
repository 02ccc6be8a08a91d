package cli

import (
	"fmt"
	"os"
	"time"

	"github.com/gosuri/uitable"

	"github.com/runnerr0/studylog/internal/config"
)

// statusJSON is the JSON output structure for the status command.
type statusJSON struct {
	Version            string `json:"version"`
	ConfigPath         string `json:"config_path,omitempty"`
	Backend            string `json:"backend"`
	Location           string `json:"location,omitempty"`
	SizeBytes          int64  `json:"size_bytes,omitempty"`
	TotalLogs          int64  `json:"total_logs"`
	TotalStudyItems    int64  `json:"total_study_items"`
	TotalExerciseItems int64  `json:"total_exercise_items"`
	OldestLog          string `json:"oldest_log,omitempty"`
	NewestLog          string `json:"newest_log,omitempty"`
	Timezone           string `json:"timezone"`
	RetentionDays      int    `json:"retention_days"`
	InsightsWindowDays int    `json:"insights_window_days"`
}

// Execute implements the go-flags Commander interface for StatusCommand.
func (c *StatusCommand) Execute(args []string) error {
	s, done, err := c.app.open()
	if err != nil {
		return err
	}
	defer done()

	return c.executeWithSession(s)
}

func (c *StatusCommand) executeWithSession(s *session) error {
	stats, err := s.store.GetStats(s.ctx)
	if err != nil {
		return fmt.Errorf("get stats: %w", err)
	}

	location, size := storeLocation(s.cfg)

	if c.app.globals.JSON {
		out := statusJSON{
			Version:            c.app.version,
			ConfigPath:         s.configPath,
			Backend:            stats.Backend,
			Location:           location,
			SizeBytes:          size,
			TotalLogs:          stats.TotalLogs,
			TotalStudyItems:    stats.TotalStudyItems,
			TotalExerciseItems: stats.TotalExerciseItems,
			Timezone:           s.loc.String(),
			RetentionDays:      s.cfg.Retention.Days,
			InsightsWindowDays: s.cfg.Insights.WindowDays,
		}
		if stats.TotalLogs > 0 {
			out.OldestLog = stats.OldestLog.UTC().Format(time.RFC3339)
			out.NewestLog = stats.NewestLog.UTC().Format(time.RFC3339)
		}
		return printJSON(out)
	}

	fmt.Println(heading("studylog status"))
	fmt.Println()

	tbl := uitable.New()
	tbl.AddRow("Version:", c.app.version)
	if s.configPath != "" {
		tbl.AddRow("Config:", s.configPath)
	}
	tbl.AddRow("Backend:", stats.Backend)
	if location != "" {
		if size > 0 {
			tbl.AddRow("Location:", fmt.Sprintf("%s (%s)", location, formatBytes(size)))
		} else {
			tbl.AddRow("Location:", location)
		}
	}
	tbl.AddRow("Day logs:", formatNumber(stats.TotalLogs))
	tbl.AddRow("Study items:", formatNumber(stats.TotalStudyItems))
	tbl.AddRow("Exercise items:", formatNumber(stats.TotalExerciseItems))
	if stats.TotalLogs > 0 {
		tbl.AddRow("Oldest:", stats.OldestLog.In(s.loc).Format("2006-01-02"))
		tbl.AddRow("Newest:", stats.NewestLog.In(s.loc).Format("2006-01-02"))
	}
	tbl.AddRow("Timezone:", s.loc.String())
	if s.cfg.Retention.Days > 0 {
		tbl.AddRow("Retention:", plural(s.cfg.Retention.Days, "day"))
	} else {
		tbl.AddRow("Retention:", "keep forever")
	}
	if s.cfg.Insights.WindowDays > 0 {
		tbl.AddRow("Insights:", "last "+plural(s.cfg.Insights.WindowDays, "day"))
	} else {
		tbl.AddRow("Insights:", "all days")
	}
	fmt.Println(tbl)
	return nil
}

// storeLocation describes where the configured backend keeps its data and,
// for the SQLite file, its size on disk. The postgres DSN is not shown since
// it may carry credentials.
func storeLocation(cfg *config.Config) (string, int64) {
	switch cfg.Storage.Driver {
	case config.DriverSQLite, "":
		path, err := cfg.SQLitePath()
		if err != nil {
			return "", 0
		}
		if info, err := os.Stat(path); err == nil {
			return path, info.Size()
		}
		return path, 0
	case config.DriverDiskv:
		path, err := cfg.DiskvPath()
		if err != nil {
			return "", 0
		}
		return path, 0
	default:
		return "", 0
	}
}

// formatBytes formats a byte count into a human-readable string.
func formatBytes(b int64) string {
	switch {
	case b >= 1<<30:
		return fmt.Sprintf("%.1f GB", float64(b)/float64(1<<30))
	case b >= 1<<20:
		return fmt.Sprintf("%.1f MB", float64(b)/float64(1<<20))
	case b >= 1<<10:
		return fmt.Sprintf("%.1f KB", float64(b)/float64(1<<10))
	default:
		return fmt.Sprintf("%d B", b)
	}
}
