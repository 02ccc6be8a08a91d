package cli

import (
	"strings"
	"testing"

	goflags "github.com/jessevdk/go-flags"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVersionFlag(t *testing.T) {
	var err error
	output := captureOutput(t, func() {
		err = RunWithArgs("0.1.0-test", []string{"--version"})
	})

	assert.NoError(t, err)
	assert.Equal(t, "studylog 0.1.0-test", strings.TrimSpace(output))
}

func TestSubcommandsRecognized(t *testing.T) {
	tests := [][]string{
		{"today"},
		{"add", "--study", "Read"},
		{"add", "--exercise", "Squats", "--reps", "10"},
		{"done", "--study", "1"},
		{"edit", "--exercise", "1", "--reps", "5"},
		{"remove", "--study", "2"},
		{"history", "--limit", "5"},
		{"show", "--day", "2026-10-19", "--format", "md"},
		{"copy", "--from", "2026-10-18"},
		{"stats", "--since", "7d"},
		{"search", "ch.5"},
		{"status"},
		{"prune", "--older-than", "90d", "--dry-run"},
		{"purge", "--all", "--force"},
	}
	for _, args := range tests {
		a := newApp("test")
		parser, _ := buildParser(a)
		// Stop before Execute so no store is opened.
		parser.CommandHandler = func(goflags.Commander, []string) error { return nil }
		_, err := parser.ParseArgs(args)
		assert.NoError(t, err, strings.Join(args, " "))
	}
}

func TestGlobalFlagsParsed(t *testing.T) {
	a := newApp("test")
	parser, _ := buildParser(a)
	parser.CommandHandler = func(goflags.Commander, []string) error { return nil }

	_, err := parser.ParseArgs([]string{"--json", "--verbose", "--no-color", "--config", "/tmp/x.yaml", "today"})
	require.NoError(t, err)
	assert.True(t, a.globals.JSON)
	assert.True(t, a.globals.Verbose)
	assert.True(t, a.globals.NoColor)
	assert.Equal(t, "/tmp/x.yaml", a.globals.Config)
}

func TestUnknownCommand(t *testing.T) {
	env := newTestEnv(t)
	_, err := env.run(t, "frobnicate")
	assert.Error(t, err)
}

func TestHelpIsNotAnError(t *testing.T) {
	env := newTestEnv(t)
	_, err := env.run(t, "--help")
	assert.NoError(t, err)
}

func TestParseDuration(t *testing.T) {
	tests := []struct {
		in    string
		hours float64
		ok    bool
	}{
		{"7d", 168, true},
		{"2w", 336, true},
		{"24h", 24, true},
		{"90m", 1.5, true},
		{"", 0, false},
		{"d", 0, false},
		{"-3d", 0, false},
		{"3y", 0, false},
	}
	for _, tc := range tests {
		d, err := parseDuration(tc.in)
		if !tc.ok {
			assert.Error(t, err, tc.in)
			continue
		}
		require.NoError(t, err, tc.in)
		assert.Equal(t, tc.hours, d.Hours(), tc.in)
	}
}

func TestFormatNumber(t *testing.T) {
	assert.Equal(t, "7", formatNumber(7))
	assert.Equal(t, "999", formatNumber(999))
	assert.Equal(t, "1,000", formatNumber(1000))
	assert.Equal(t, "123,456", formatNumber(123456))
	assert.Equal(t, "1,234,567", formatNumber(1234567))
}
