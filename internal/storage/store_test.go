package storage

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"
	_ "time/tzdata"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/runnerr0/studylog/internal/daylog"
)

// fakeClock is a settable clock for Options.Now.
type fakeClock struct {
	now time.Time
}

func (c *fakeClock) Now() time.Time { return c.now }

func (c *fakeClock) Add(d time.Duration) { c.now = c.now.Add(d) }

type openFunc func(t *testing.T, opts Options) Store

// backends lists every Store implementation exercised by the shared tests.
// PostgreSQL runs only when STUDYLOG_TEST_DATABASE_URL is set.
func backends(t *testing.T) map[string]openFunc {
	t.Helper()
	m := map[string]openFunc{
		"sqlite-memory": func(t *testing.T, opts Options) Store {
			s, err := OpenSQLite(context.Background(), MemoryDSN, "", opts)
			require.NoError(t, err)
			t.Cleanup(func() { s.Close() })
			return s
		},
		"sqlite-file": func(t *testing.T, opts Options) Store {
			path := filepath.Join(t.TempDir(), "db", "studylog.db")
			s, err := OpenSQLite(context.Background(), path, "wal", opts)
			require.NoError(t, err)
			t.Cleanup(func() { s.Close() })
			return s
		},
		"diskv": func(t *testing.T, opts Options) Store {
			s, err := OpenDiskv(filepath.Join(t.TempDir(), "logs"), opts)
			require.NoError(t, err)
			t.Cleanup(func() { s.Close() })
			return s
		},
	}
	if dsn := os.Getenv("STUDYLOG_TEST_DATABASE_URL"); dsn != "" {
		m["postgres"] = func(t *testing.T, opts Options) Store {
			s, err := OpenPostgres(context.Background(), dsn, opts)
			require.NoError(t, err)
			require.NoError(t, s.PurgeAll(context.Background()))
			t.Cleanup(func() {
				s.PurgeAll(context.Background())
				s.Close()
			})
			return s
		}
	}
	return m
}

func forEachBackend(t *testing.T, fn func(t *testing.T, open openFunc)) {
	for name, open := range backends(t) {
		t.Run(name, func(t *testing.T) { fn(t, open) })
	}
}

func sampleInput() daylog.DailyLogInput {
	return daylog.DailyLogInput{
		StudyItems: []daylog.StudyItem{
			{Title: "Read Ch.5", Notes: "pages 80-112"},
			{Title: "Flashcards", Completed: true},
		},
		ExerciseItems: []daylog.ExerciseItem{
			{Description: "Push-ups", Reps: 20},
		},
	}
}

func TestStore_EmptyFetch(t *testing.T) {
	forEachBackend(t, func(t *testing.T, open openFunc) {
		store := open(t, Options{})
		logs, err := store.FetchAllLogs(context.Background())
		require.NoError(t, err)
		assert.NotNil(t, logs)
		assert.Empty(t, logs)
	})
}

func TestStore_PersistCreatesTodaysLog(t *testing.T) {
	forEachBackend(t, func(t *testing.T, open openFunc) {
		clock := &fakeClock{now: time.Date(2026, 10, 19, 9, 30, 0, 0, time.UTC)}
		store := open(t, Options{Now: clock.Now, Location: time.UTC})
		ctx := context.Background()

		saved, err := store.PersistLog(ctx, sampleInput())
		require.NoError(t, err)

		_, err = uuid.Parse(saved.ID)
		assert.NoError(t, err, "id should be a uuid")
		assert.Equal(t, clock.now.UnixNano(), saved.Timestamp)
		assert.Equal(t, sampleInput().StudyItems, saved.StudyItems)

		got, err := store.GetLog(ctx, saved.ID)
		require.NoError(t, err)
		assert.Equal(t, *saved, *got)
	})
}

func TestStore_PersistReplacesSameDay(t *testing.T) {
	forEachBackend(t, func(t *testing.T, open openFunc) {
		clock := &fakeClock{now: time.Date(2026, 10, 19, 9, 30, 0, 0, time.UTC)}
		store := open(t, Options{Now: clock.Now, Location: time.UTC})
		ctx := context.Background()

		first, err := store.PersistLog(ctx, sampleInput())
		require.NoError(t, err)

		clock.Add(10 * time.Hour)
		next := daylog.DailyLogInput{
			StudyItems: []daylog.StudyItem{{Title: "Essay draft", Completed: true}},
		}
		second, err := store.PersistLog(ctx, next)
		require.NoError(t, err)

		assert.Equal(t, first.ID, second.ID)
		assert.Equal(t, first.Timestamp, second.Timestamp, "timestamp is fixed at creation")

		logs, err := store.FetchAllLogs(ctx)
		require.NoError(t, err)
		require.Len(t, logs, 1)
		assert.Equal(t, next.StudyItems, logs[0].StudyItems)
		assert.Empty(t, logs[0].ExerciseItems)
	})
}

func TestStore_NewDayCreatesNewLog(t *testing.T) {
	forEachBackend(t, func(t *testing.T, open openFunc) {
		clock := &fakeClock{now: time.Date(2026, 10, 18, 21, 0, 0, 0, time.UTC)}
		store := open(t, Options{Now: clock.Now, Location: time.UTC})
		ctx := context.Background()

		yesterday, err := store.PersistLog(ctx, sampleInput())
		require.NoError(t, err)

		clock.Add(4 * time.Hour)
		today, err := store.PersistLog(ctx, daylog.DailyLogInput{
			ExerciseItems: []daylog.ExerciseItem{{Description: "Squats", Reps: 15}},
		})
		require.NoError(t, err)
		assert.NotEqual(t, yesterday.ID, today.ID)

		logs, err := store.FetchAllLogs(ctx)
		require.NoError(t, err)
		require.Len(t, logs, 2)
		assert.Equal(t, today.ID, logs[0].ID, "newest first")
		assert.Equal(t, yesterday.ID, logs[1].ID)
		assert.Equal(t, sampleInput().StudyItems, logs[1].StudyItems, "yesterday untouched")
	})
}

func TestStore_DayWindowFollowsLocation(t *testing.T) {
	ny, err := time.LoadLocation("America/New_York")
	require.NoError(t, err)

	forEachBackend(t, func(t *testing.T, open openFunc) {
		// 23:00 in New York is already the next day in UTC.
		clock := &fakeClock{now: time.Date(2026, 10, 19, 23, 0, 0, 0, ny)}
		store := open(t, Options{Now: clock.Now, Location: ny})
		ctx := context.Background()

		late, err := store.PersistLog(ctx, sampleInput())
		require.NoError(t, err)

		clock.Add(59 * time.Minute)
		same, err := store.PersistLog(ctx, sampleInput())
		require.NoError(t, err)
		assert.Equal(t, late.ID, same.ID)

		clock.Add(2 * time.Minute)
		next, err := store.PersistLog(ctx, sampleInput())
		require.NoError(t, err)
		assert.NotEqual(t, late.ID, next.ID)
		assert.Equal(t, "2026-10-20", daylog.DayKeyIn(next.Timestamp, ny))
	})
}

func TestStore_PreservesItemOrder(t *testing.T) {
	forEachBackend(t, func(t *testing.T, open openFunc) {
		store := open(t, Options{})
		in := daylog.DailyLogInput{}
		for _, title := range []string{"c", "a", "b", "e", "d", "f", "h", "g", "j", "i", "k"} {
			in = in.AddStudy(daylog.StudyItem{Title: title})
		}

		_, err := store.PersistLog(context.Background(), in)
		require.NoError(t, err)

		logs, err := store.FetchAllLogs(context.Background())
		require.NoError(t, err)
		require.Len(t, logs, 1)
		assert.Equal(t, in.StudyItems, logs[0].StudyItems)
	})
}

func TestStore_PersistRejectsInvalidInput(t *testing.T) {
	forEachBackend(t, func(t *testing.T, open openFunc) {
		store := open(t, Options{})
		ctx := context.Background()

		_, err := store.PersistLog(ctx, daylog.DailyLogInput{
			ExerciseItems: []daylog.ExerciseItem{{Description: "Push-ups", Reps: 0}},
		})
		require.Error(t, err)
		assert.ErrorIs(t, err, daylog.ErrNonPositiveReps)

		logs, err := store.FetchAllLogs(ctx)
		require.NoError(t, err)
		assert.Empty(t, logs)
	})
}

func TestStore_PersistEmptyInput(t *testing.T) {
	forEachBackend(t, func(t *testing.T, open openFunc) {
		store := open(t, Options{})
		saved, err := store.PersistLog(context.Background(), daylog.DailyLogInput{})
		require.NoError(t, err)
		assert.NotNil(t, saved.StudyItems)
		assert.NotNil(t, saved.ExerciseItems)

		got, err := store.GetLog(context.Background(), saved.ID)
		require.NoError(t, err)
		assert.Empty(t, got.StudyItems)
		assert.Empty(t, got.ExerciseItems)
	})
}

func TestStore_GetLogNotFound(t *testing.T) {
	forEachBackend(t, func(t *testing.T, open openFunc) {
		store := open(t, Options{})
		_, err := store.GetLog(context.Background(), uuid.NewString())
		assert.ErrorIs(t, err, ErrNotFound)
	})
}

func TestStore_PruneBefore(t *testing.T) {
	forEachBackend(t, func(t *testing.T, open openFunc) {
		clock := &fakeClock{now: time.Date(2026, 10, 1, 12, 0, 0, 0, time.UTC)}
		store := open(t, Options{Now: clock.Now, Location: time.UTC})
		ctx := context.Background()

		for i := 0; i < 3; i++ {
			_, err := store.PersistLog(ctx, sampleInput())
			require.NoError(t, err)
			clock.Add(24 * time.Hour)
		}

		n, err := store.PruneBefore(ctx, time.Date(2026, 10, 3, 0, 0, 0, 0, time.UTC))
		require.NoError(t, err)
		assert.Equal(t, int64(2), n)

		logs, err := store.FetchAllLogs(ctx)
		require.NoError(t, err)
		require.Len(t, logs, 1)
		assert.Equal(t, "2026-10-03", daylog.DayKeyIn(logs[0].Timestamp, time.UTC))

		stats, err := store.GetStats(ctx)
		require.NoError(t, err)
		assert.Equal(t, int64(2), stats.TotalStudyItems, "items of pruned logs are gone")
	})
}

func TestStore_PurgeAll(t *testing.T) {
	forEachBackend(t, func(t *testing.T, open openFunc) {
		store := open(t, Options{})
		ctx := context.Background()

		_, err := store.PersistLog(ctx, sampleInput())
		require.NoError(t, err)
		require.NoError(t, store.PurgeAll(ctx))

		logs, err := store.FetchAllLogs(ctx)
		require.NoError(t, err)
		assert.Empty(t, logs)

		_, err = store.PersistLog(ctx, sampleInput())
		require.NoError(t, err, "store stays usable after purge")
	})
}

func TestStore_GetStats(t *testing.T) {
	forEachBackend(t, func(t *testing.T, open openFunc) {
		clock := &fakeClock{now: time.Date(2026, 10, 17, 8, 0, 0, 0, time.UTC)}
		store := open(t, Options{Now: clock.Now, Location: time.UTC})
		ctx := context.Background()

		stats, err := store.GetStats(ctx)
		require.NoError(t, err)
		assert.Zero(t, stats.TotalLogs)
		assert.True(t, stats.OldestLog.IsZero())

		first := clock.now
		_, err = store.PersistLog(ctx, sampleInput())
		require.NoError(t, err)
		clock.Add(48 * time.Hour)
		_, err = store.PersistLog(ctx, sampleInput())
		require.NoError(t, err)

		stats, err = store.GetStats(ctx)
		require.NoError(t, err)
		assert.NotEmpty(t, stats.Backend)
		assert.Equal(t, int64(2), stats.TotalLogs)
		assert.Equal(t, int64(4), stats.TotalStudyItems)
		assert.Equal(t, int64(2), stats.TotalExerciseItems)
		assert.True(t, first.Equal(stats.OldestLog))
		assert.True(t, clock.now.Equal(stats.NewestLog))
	})
}

func TestOpenSQLite_ReopenKeepsData(t *testing.T) {
	path := filepath.Join(t.TempDir(), "studylog.db")
	ctx := context.Background()

	s, err := OpenSQLite(ctx, path, "", Options{})
	require.NoError(t, err)
	saved, err := s.PersistLog(ctx, sampleInput())
	require.NoError(t, err)
	require.NoError(t, s.Close())

	s, err = OpenSQLite(ctx, path, "", Options{})
	require.NoError(t, err)
	defer s.Close()

	got, err := s.GetLog(ctx, saved.ID)
	require.NoError(t, err)
	assert.Equal(t, saved.StudyItems, got.StudyItems)
}

func TestOpenDiskv_FileLayout(t *testing.T) {
	base := t.TempDir()
	s, err := OpenDiskv(base, Options{})
	require.NoError(t, err)

	saved, err := s.PersistLog(context.Background(), sampleInput())
	require.NoError(t, err)

	_, err = os.Stat(filepath.Join(base, saved.ID[:2], saved.ID+".json"))
	assert.NoError(t, err)
}

func TestOpenPostgres_EmptyDSN(t *testing.T) {
	_, err := OpenPostgres(context.Background(), "", Options{})
	assert.Error(t, err)
}

// seedLog writes l directly into the backend, bypassing PersistLog's
// today-log resolution.
func seedLog(t *testing.T, store Store, l daylog.DayLog) {
	t.Helper()
	ctx := context.Background()
	switch s := store.(type) {
	case *SQLStore:
		_, err := s.db.ExecContext(ctx, s.dialect.rebind("INSERT INTO day_logs (id, ts) VALUES (?, ?)"), l.ID, l.Timestamp)
		require.NoError(t, err)
		for i, it := range l.StudyItems {
			_, err := s.insertStudy.ExecContext(ctx, l.ID, i, it.Title, it.Notes, it.Completed)
			require.NoError(t, err)
		}
		for i, it := range l.ExerciseItems {
			_, err := s.insertExercise.ExecContext(ctx, l.ID, i, it.Description, it.Reps, it.Completed)
			require.NoError(t, err)
		}
	case *DiskvStore:
		if l.ExerciseItems == nil {
			l.ExerciseItems = []daylog.ExerciseItem{}
		}
		require.NoError(t, s.write(l))
	default:
		t.Fatalf("unsupported store %T", store)
	}
}

func TestStore_PersistTargetsLogChosenByPartition(t *testing.T) {
	forEachBackend(t, func(t *testing.T, open openFunc) {
		clock := &fakeClock{now: time.Date(2026, 10, 19, 18, 0, 0, 0, time.UTC)}
		store := open(t, Options{Now: clock.Now, Location: time.UTC})
		ctx := context.Background()

		ts := time.Date(2026, 10, 19, 9, 0, 0, 0, time.UTC).UnixNano()
		seedLog(t, store, daylog.DayLog{ID: "bbbb", Timestamp: ts,
			StudyItems: []daylog.StudyItem{{Title: "Flashcards"}}})
		seedLog(t, store, daylog.DayLog{ID: "aaaa", Timestamp: ts,
			StudyItems: []daylog.StudyItem{{Title: "Read Ch.5"}}})

		logs, err := store.FetchAllLogs(ctx)
		require.NoError(t, err)
		require.Len(t, logs, 2)

		today, past := daylog.Partition(logs, clock.now)
		require.NotNil(t, today)
		require.Len(t, past, 1)
		assert.Equal(t, "aaaa", today.ID, "equal timestamps break ties by id")

		edited, err := today.Input().ToggleStudy(0)
		require.NoError(t, err)
		saved, err := store.PersistLog(ctx, edited)
		require.NoError(t, err)
		assert.Equal(t, today.ID, saved.ID)

		got, err := store.GetLog(ctx, "aaaa")
		require.NoError(t, err)
		assert.Equal(t, []daylog.StudyItem{{Title: "Read Ch.5", Completed: true}}, got.StudyItems)

		other, err := store.GetLog(ctx, "bbbb")
		require.NoError(t, err)
		assert.Equal(t, []daylog.StudyItem{{Title: "Flashcards"}}, other.StudyItems, "the other same-day log is untouched")
	})
}
