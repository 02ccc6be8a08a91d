package cli

import (
	"bytes"
	"context"
	"io"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/fatih/color"
	"github.com/stretchr/testify/require"

	"github.com/runnerr0/studylog/internal/config"
	"github.com/runnerr0/studylog/internal/logging"
	"github.com/runnerr0/studylog/internal/storage"
)

// captureOutput captures stdout during fn execution and returns it as a string.
func captureOutput(t *testing.T, fn func()) string {
	t.Helper()
	old := os.Stdout
	r, w, err := os.Pipe()
	require.NoError(t, err)
	os.Stdout = w

	fn()

	w.Close()
	os.Stdout = old

	var buf bytes.Buffer
	_, _ = io.Copy(&buf, r)
	return buf.String()
}

// testClock is a settable clock shared by the app and its store.
type testClock struct {
	now time.Time
}

func (c *testClock) Now() time.Time { return c.now }

func (c *testClock) Add(d time.Duration) { c.now = c.now.Add(d) }

// testEnv is an app wired to an in-memory SQLite store and a fixed clock.
type testEnv struct {
	app   *app
	clock *testClock
	store storage.Store
}

// newTestEnv starts the clock on Mon, Oct 19 2026, 09:00 UTC.
func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	color.NoColor = true

	clock := &testClock{now: time.Date(2026, 10, 19, 9, 0, 0, 0, time.UTC)}
	store, err := storage.OpenSQLite(context.Background(), storage.MemoryDSN, "", storage.Options{
		Now:      clock.Now,
		Location: time.UTC,
	})
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	cfg := config.DefaultConfig()
	cfg.Calendar.Timezone = "UTC"

	a := newApp("test")
	a.store = store
	a.cfg = cfg
	a.now = clock.Now
	a.logger = logging.Discard()
	a.stdin = strings.NewReader("")

	return &testEnv{app: a, clock: clock, store: store}
}

// run executes args through the full parser and returns captured stdout.
func (e *testEnv) run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	require.NotEmpty(t, args)
	// Each invocation starts with fresh global flags, as a new process would.
	*e.app.globals = GlobalFlags{}

	var err error
	out := captureOutput(t, func() { err = run(e.app, args) })
	return out, err
}

func (e *testEnv) mustRun(t *testing.T, args ...string) string {
	t.Helper()
	out, err := e.run(t, args...)
	require.NoError(t, err, out)
	return out
}

// seedYesterday records a day with one finished and one unfinished item of
// each kind, then moves the clock to today.
func (e *testEnv) seedYesterday(t *testing.T) {
	t.Helper()
	e.clock.Add(-24 * time.Hour)
	e.mustRun(t, "add", "--study", "Read Ch.5", "--notes", "pages 80-112")
	e.mustRun(t, "add", "--study", "Flashcards", "--done")
	e.mustRun(t, "add", "--exercise", "Push-ups", "--reps", "20")
	e.mustRun(t, "add", "--exercise", "Plank", "--reps", "3", "--done")
	e.clock.Add(24 * time.Hour)
}
