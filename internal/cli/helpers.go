package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/fatih/color"

	"github.com/runnerr0/studylog/internal/config"
	"github.com/runnerr0/studylog/internal/daylog"
	"github.com/runnerr0/studylog/internal/logging"
	"github.com/runnerr0/studylog/internal/storage"
)

// app is shared by every command. The store, config, clock, logger and stdin
// fields are injectable for testing; nil means resolve them at run time.
type app struct {
	globals *GlobalFlags
	version string

	store  storage.Store
	cfg    *config.Config
	now    func() time.Time
	logger *slog.Logger
	stdin  io.Reader
}

func newApp(version string) *app {
	return &app{globals: &GlobalFlags{}, version: version}
}

// session is the resolved environment a command runs against.
type session struct {
	ctx        context.Context
	cfg        *config.Config
	configPath string
	store      storage.Store
	loc        *time.Location
	now        time.Time
	logger     *slog.Logger
}

// open resolves config, logger, calendar zone and store. The returned func
// releases whatever open created.
func (a *app) open() (*session, func(), error) {
	if a.globals.NoColor {
		color.NoColor = true
	}

	s := &session{ctx: context.Background(), cfg: a.cfg}
	var closers []func() error
	cleanup := func() {
		for i := len(closers) - 1; i >= 0; i-- {
			closers[i]()
		}
	}

	if s.cfg == nil {
		path, err := config.ResolvePath(a.globals.Config)
		if err != nil {
			return nil, nil, err
		}
		cfg, err := config.LoadOrCreateAt(path)
		if err != nil {
			return nil, nil, fmt.Errorf("load config: %w", err)
		}
		s.cfg, s.configPath = cfg, path
	}

	s.logger = a.logger
	if s.logger == nil {
		level := s.cfg.Logging.Level
		if a.globals.Verbose {
			level = "debug"
		}
		logPath, err := s.cfg.LogPath()
		if err != nil {
			return nil, nil, err
		}
		logger, closeLog, err := logging.New(level, logPath)
		if err != nil {
			return nil, nil, fmt.Errorf("init logging: %w", err)
		}
		s.logger = logger
		closers = append(closers, closeLog)
	}

	loc, err := s.cfg.Location()
	if err != nil {
		cleanup()
		return nil, nil, err
	}
	s.loc = loc

	clock := a.now
	if clock == nil {
		clock = time.Now
	}
	s.now = clock().In(loc)

	s.store = a.store
	if s.store == nil {
		store, err := storage.Open(s.ctx, s.cfg, storage.Options{
			Now:      clock,
			Location: loc,
			Logger:   s.logger,
		})
		if err != nil {
			cleanup()
			return nil, nil, fmt.Errorf("open store: %w", err)
		}
		s.store = store
		closers = append(closers, store.Close)
	}

	s.logger.Debug("session ready", "driver", s.cfg.Storage.Driver, "timezone", loc.String())
	return s, cleanup, nil
}

// today returns today's log (nil if nothing has been written yet) and every
// other log, newest first.
func (s *session) today() (*daylog.DayLog, []daylog.DayLog, error) {
	logs, err := s.store.FetchAllLogs(s.ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("fetch logs: %w", err)
	}
	today, past := daylog.Partition(logs, s.now)
	return today, past, nil
}

// todayInput is the current write payload for today's log.
func (s *session) todayInput() (daylog.DailyLogInput, error) {
	today, _, err := s.today()
	if err != nil {
		return daylog.DailyLogInput{}, err
	}
	if today == nil {
		return daylog.DailyLogInput{
			StudyItems:    []daylog.StudyItem{},
			ExerciseItems: []daylog.ExerciseItem{},
		}, nil
	}
	return today.Input(), nil
}

// persist writes in as today's log.
func (s *session) persist(in daylog.DailyLogInput) (*daylog.DayLog, error) {
	saved, err := s.store.PersistLog(s.ctx, in)
	if err != nil {
		return nil, fmt.Errorf("save today's log: %w", err)
	}
	s.logger.Info("saved today's log", "id", saved.ID,
		"study", len(saved.StudyItems), "exercise", len(saved.ExerciseItems))
	return saved, nil
}

// printJSON writes v to stdout as indented JSON.
func printJSON(v interface{}) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// parseDuration parses a human-friendly duration string like "30d", "7d", "24h", "2w".
func parseDuration(s string) (time.Duration, error) {
	if s == "" {
		return 0, fmt.Errorf("invalid duration: empty string")
	}

	if len(s) < 2 {
		return 0, fmt.Errorf("invalid duration: %q", s)
	}

	suffix := s[len(s)-1]
	numStr := s[:len(s)-1]

	n, err := strconv.Atoi(numStr)
	if err != nil || n < 0 {
		return 0, fmt.Errorf("invalid duration: %q", s)
	}

	switch suffix {
	case 'd':
		return time.Duration(n) * 24 * time.Hour, nil
	case 'h':
		return time.Duration(n) * time.Hour, nil
	case 'w':
		return time.Duration(n) * 7 * 24 * time.Hour, nil
	case 'm':
		return time.Duration(n) * time.Minute, nil
	default:
		return 0, fmt.Errorf("invalid duration: %q (use d, h, w, or m suffix)", s)
	}
}

// formatNumber formats an int64 with comma separators.
func formatNumber(n int64) string {
	s := strconv.FormatInt(n, 10)
	if len(s) <= 3 {
		return s
	}

	var result strings.Builder
	remainder := len(s) % 3
	if remainder > 0 {
		result.WriteString(s[:remainder])
	}
	for i := remainder; i < len(s); i += 3 {
		if i > 0 {
			result.WriteString(",")
		}
		result.WriteString(s[i : i+3])
	}
	return result.String()
}

// plural returns word with an "s" unless n is 1.
func plural(n int, word string) string {
	if n == 1 {
		return fmt.Sprintf("%d %s", n, word)
	}
	return fmt.Sprintf("%d %ss", n, word)
}
