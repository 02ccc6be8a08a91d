package cli

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestShowCommand_RequiresSelector(t *testing.T) {
	env := newTestEnv(t)
	_, err := env.run(t, "show")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "--day or --id is required")
}

func TestShowCommand_ByDay(t *testing.T) {
	env := newTestEnv(t)
	env.seedYesterday(t)

	out := env.mustRun(t, "show", "--day", "2026-10-18")
	assert.Contains(t, out, "Sun, Oct 18, 2026")
	assert.Contains(t, out, "Created:   2026-10-18 09:00:00")
	assert.Contains(t, out, "1. [ ] Read Ch.5 (pages 80-112)")
	assert.Contains(t, out, "2. [x] Flashcards")
	assert.Contains(t, out, "2. [x] Plank x3")
}

func TestShowCommand_Markdown(t *testing.T) {
	env := newTestEnv(t)
	env.seedYesterday(t)

	out := env.mustRun(t, "show", "--day", "2026-10-18", "--format", "md")
	assert.Contains(t, out, "# Sun, Oct 18, 2026")
	assert.Contains(t, out, "- [ ] Read Ch.5: pages 80-112")
	assert.Contains(t, out, "- [x] Flashcards\n")
	assert.Contains(t, out, "- [ ] Push-ups (20 reps)")
}

func TestShowCommand_ByIDPrefix(t *testing.T) {
	env := newTestEnv(t)
	env.mustRun(t, "add", "--study", "Read Ch.5")
	l := todayLog(t, env)

	out := env.mustRun(t, "show", "--id", l.ID[:8], "--format", "json")
	var got dayJSON
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.Equal(t, l.ID, got.ID)

	out = env.mustRun(t, "--json", "show", "--id", l.ID)
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.Equal(t, "2026-10-19", got.Date)
}

func TestShowCommand_Errors(t *testing.T) {
	env := newTestEnv(t)
	env.mustRun(t, "add", "--study", "Read Ch.5")

	tests := []struct {
		args []string
		want string
	}{
		{[]string{"show", "--day", "2026-10-01"}, "no day log for 2026-10-01"},
		{[]string{"show", "--day", "10/01/2026"}, "YYYY-MM-DD"},
		{[]string{"show", "--id", "zzzz"}, "day log not found"},
		{[]string{"show", "--day", "2026-10-19", "--id", "x"}, "not both"},
		{[]string{"show", "--day", "2026-10-19", "--format", "pdf"}, "unknown format"},
	}
	for _, tc := range tests {
		_, err := env.run(t, tc.args...)
		require.Error(t, err, tc.args)
		assert.Contains(t, err.Error(), tc.want)
	}
}
