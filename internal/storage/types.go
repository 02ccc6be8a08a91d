package storage

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/runnerr0/studylog/internal/daylog"
	"github.com/runnerr0/studylog/internal/logging"
)

// ErrNotFound is returned when a day log id does not exist.
var ErrNotFound = errors.New("day log not found")

// Store defines the day-log persistence contract. Implementations must be
// safe for concurrent use.
type Store interface {
	// FetchAllLogs returns every log, newest first, as one consistent snapshot.
	FetchAllLogs(ctx context.Context) ([]daylog.DayLog, error)
	GetLog(ctx context.Context, id string) (*daylog.DayLog, error)
	// PersistLog replaces the item sequences of today's log, creating the log
	// on the first write of the day. The log's timestamp is fixed at creation.
	PersistLog(ctx context.Context, input daylog.DailyLogInput) (*daylog.DayLog, error)
	PruneBefore(ctx context.Context, cutoff time.Time) (int64, error)
	PurgeAll(ctx context.Context) error
	GetStats(ctx context.Context) (*Stats, error)
	Close() error
}

// Stats holds aggregate statistics about the store.
type Stats struct {
	Backend            string
	TotalLogs          int64
	TotalStudyItems    int64
	TotalExerciseItems int64
	OldestLog          time.Time
	NewestLog          time.Time
}

// Options configures the clock, calendar zone and logger a store uses to
// decide which log is "today's".
type Options struct {
	Now      func() time.Time
	Location *time.Location
	Logger   *slog.Logger
}

func (o Options) withDefaults() Options {
	if o.Now == nil {
		o.Now = time.Now
	}
	if o.Location == nil {
		o.Location = time.Local
	}
	if o.Logger == nil {
		o.Logger = logging.Discard()
	}
	return o
}

// today returns the current instant and the [start, end) window of the
// current calendar day in the configured zone.
func (o Options) today() (time.Time, time.Time, time.Time) {
	now := o.Now().In(o.Location)
	start, end, err := daylog.DayBounds(daylog.TodayKeyAt(now), o.Location)
	if err != nil {
		// TodayKeyAt always yields a parseable key.
		panic(err)
	}
	return now, start, end
}

// newID generates a day log id.
func newID() string {
	return uuid.NewString()
}

func cloneInput(in daylog.DailyLogInput) daylog.DailyLogInput {
	out := daylog.DailyLogInput{
		StudyItems:    make([]daylog.StudyItem, len(in.StudyItems)),
		ExerciseItems: make([]daylog.ExerciseItem, len(in.ExerciseItems)),
	}
	copy(out.StudyItems, in.StudyItems)
	copy(out.ExerciseItems, in.ExerciseItems)
	return out
}
