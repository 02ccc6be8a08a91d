package cli

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTodayCommand_Empty(t *testing.T) {
	env := newTestEnv(t)

	out := env.mustRun(t, "today")
	assert.Contains(t, out, "Mon, Oct 19, 2026")
	assert.Contains(t, out, "Nothing planned yet")
	assert.Contains(t, out, "Streak:    0 days  Complete an item to start your streak!")
	assert.Contains(t, out, "Study:     0%")
	assert.Contains(t, out, "Exercise:  0%")
}

func TestTodayCommand_ShowsItemsAndInsights(t *testing.T) {
	env := newTestEnv(t)
	env.seedYesterday(t)
	env.mustRun(t, "add", "--study", "Essay draft", "--done")
	env.mustRun(t, "add", "--exercise", "Squats", "--reps", "15")

	out := env.mustRun(t, "today")
	assert.Contains(t, out, "Mon, Oct 19, 2026")
	assert.Contains(t, out, "Study (1 of 1 completed)")
	assert.Contains(t, out, "1. [x] Essay draft")
	assert.Contains(t, out, "Exercise (0 of 1 completed)")
	assert.Contains(t, out, "1. [ ] Squats x15")
	assert.Contains(t, out, "1 of 2 completed today")
	assert.NotContains(t, out, "Read Ch.5", "yesterday's items stay on yesterday")

	// Yesterday and today both have completions.
	assert.Contains(t, out, "Streak:    2 days  Amazing consistency!")
	// Study: 2 of 3 = 67%; exercise: 1 of 3 = 33%.
	assert.Contains(t, out, "Study:     67%")
	assert.Contains(t, out, "Exercise:  33%")
}

func TestTodayCommand_JSON(t *testing.T) {
	env := newTestEnv(t)
	env.mustRun(t, "add", "--study", "Read Ch.5", "--done")

	out := env.mustRun(t, "--json", "today")

	var got todayJSON
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.Equal(t, "2026-10-19", got.Date)
	require.NotNil(t, got.Log)
	assert.Equal(t, "Read Ch.5", got.Log.StudyItems[0].Title)
	assert.Equal(t, 1, got.Streak)
	assert.Equal(t, "Great start! Keep it going!", got.StreakMessage)
	assert.Equal(t, 100, got.StudyPercent)
	assert.Equal(t, 0, got.ExercisePercent)
}

func TestTodayCommand_InsightsWindow(t *testing.T) {
	env := newTestEnv(t)
	env.seedYesterday(t)
	env.app.cfg.Insights.WindowDays = 0

	out := env.mustRun(t, "--json", "today")
	var all todayJSON
	require.NoError(t, json.Unmarshal([]byte(out), &all))
	assert.Equal(t, 50, all.StudyPercent)

	// A window ending before yesterday's log leaves nothing to rate.
	env.clock.Add(5 * 24 * time.Hour)
	env.app.cfg.Insights.WindowDays = 2
	out = env.mustRun(t, "--json", "today")
	var windowed todayJSON
	require.NoError(t, json.Unmarshal([]byte(out), &windowed))
	assert.Equal(t, 0, windowed.StudyPercent)
	assert.Nil(t, windowed.Log)
	assert.Equal(t, 0, windowed.Streak)
}
