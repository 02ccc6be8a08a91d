package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/peterbourgon/diskv/v3"

	"github.com/runnerr0/studylog/internal/daylog"
)

const diskvExt = ".json"

// DiskvStore implements Store as one JSON document per day log on disk.
type DiskvStore struct {
	mu       sync.Mutex
	d        *diskv.Diskv
	basePath string
	opts     Options
}

// OpenDiskv creates a DiskvStore rooted at basePath.
func OpenDiskv(basePath string, opts Options) (*DiskvStore, error) {
	if err := os.MkdirAll(basePath, 0o700); err != nil {
		return nil, fmt.Errorf("creating store directory: %w", err)
	}
	return &DiskvStore{
		d: diskv.New(diskv.Options{
			BasePath:          basePath,
			AdvancedTransform: keyToPathTransform,
			InverseTransform:  pathToKeyTransform,
			CacheSizeMax:      1024 * 1024, // 1MB
		}),
		basePath: basePath,
		opts:     opts.withDefaults(),
	}, nil
}

// keyToPathTransform shards logs by the first two characters of their id.
func keyToPathTransform(key string) *diskv.PathKey {
	shard := key
	if len(shard) > 2 {
		shard = shard[:2]
	}
	return &diskv.PathKey{
		Path:     []string{shard},
		FileName: key + diskvExt,
	}
}

func pathToKeyTransform(pathKey *diskv.PathKey) string {
	return strings.TrimSuffix(pathKey.FileName, diskvExt)
}

func (s *DiskvStore) read(key string) (*daylog.DayLog, error) {
	val, err := s.d.Read(key)
	if err != nil {
		return nil, err
	}
	var l daylog.DayLog
	if err := json.Unmarshal(val, &l); err != nil {
		return nil, fmt.Errorf("decode %s: %w", key, err)
	}
	l.ID = key
	if l.StudyItems == nil {
		l.StudyItems = []daylog.StudyItem{}
	}
	if l.ExerciseItems == nil {
		l.ExerciseItems = []daylog.ExerciseItem{}
	}
	return &l, nil
}

func (s *DiskvStore) write(l daylog.DayLog) error {
	b, err := json.Marshal(l)
	if err != nil {
		return err
	}
	return s.d.Write(l.ID, b)
}

// listAll reads every log. Callers hold s.mu.
func (s *DiskvStore) listAll(ctx context.Context) ([]daylog.DayLog, error) {
	// Cancelling stops the key walker if we return early.
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	logs := []daylog.DayLog{}
	for key := range s.d.Keys(ctx.Done()) {
		l, err := s.read(key)
		if err != nil {
			return nil, err
		}
		logs = append(logs, *l)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	sort.SliceStable(logs, func(i, j int) bool {
		if logs[i].Timestamp == logs[j].Timestamp {
			return logs[i].ID < logs[j].ID
		}
		return logs[i].Timestamp > logs[j].Timestamp
	})
	return logs, nil
}

// FetchAllLogs returns every log, newest first.
func (s *DiskvStore) FetchAllLogs(ctx context.Context) ([]daylog.DayLog, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.listAll(ctx)
}

// GetLog retrieves a single log by id.
func (s *DiskvStore) GetLog(ctx context.Context, id string) (*daylog.DayLog, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if id == "" || !s.d.Has(id) {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return s.read(id)
}

// PersistLog writes input as today's log, creating it on the first write of
// the day.
func (s *DiskvStore) PersistLog(ctx context.Context, input daylog.DailyLogInput) (*daylog.DayLog, error) {
	if err := input.Validate(); err != nil {
		return nil, fmt.Errorf("invalid day log: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	now, start, end := s.opts.today()
	logs, err := s.listAll(ctx)
	if err != nil {
		return nil, err
	}

	var target *daylog.DayLog
	lo, hi := daylog.Nanos(start), daylog.Nanos(end)
	for i := range logs {
		// logs are newest first, so the first hit is the newest same-day log.
		if logs[i].Timestamp >= lo && logs[i].Timestamp < hi {
			target = &logs[i]
			break
		}
	}

	created := target == nil
	if created {
		target = &daylog.DayLog{ID: newID(), Timestamp: daylog.Nanos(now)}
	}
	in := cloneInput(input)
	target.StudyItems, target.ExerciseItems = in.StudyItems, in.ExerciseItems

	if err := s.write(*target); err != nil {
		return nil, fmt.Errorf("write day log: %w", err)
	}

	s.opts.Logger.Debug("persisted day log",
		"id", target.ID, "created", created, "backend", "diskv",
		"study", len(in.StudyItems), "exercise", len(in.ExerciseItems))

	out := *target
	return &out, nil
}

// PruneBefore erases logs whose timestamp is before cutoff.
func (s *DiskvStore) PruneBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	logs, err := s.listAll(ctx)
	if err != nil {
		return 0, err
	}
	ts := daylog.Nanos(cutoff)
	var n int64
	for _, l := range logs {
		if l.Timestamp >= ts {
			continue
		}
		if err := s.d.Erase(l.ID); err != nil {
			return n, fmt.Errorf("erase %s: %w", l.ID, err)
		}
		n++
	}
	return n, nil
}

// PurgeAll erases every log.
func (s *DiskvStore) PurgeAll(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.d.EraseAll(); err != nil {
		return fmt.Errorf("purge: %w", err)
	}
	return os.MkdirAll(s.basePath, 0o700)
}

// GetStats returns aggregate statistics computed from every log.
func (s *DiskvStore) GetStats(ctx context.Context) (*Stats, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	logs, err := s.listAll(ctx)
	if err != nil {
		return nil, err
	}
	stats := &Stats{Backend: "diskv", TotalLogs: int64(len(logs))}
	for _, l := range logs {
		stats.TotalStudyItems += int64(len(l.StudyItems))
		stats.TotalExerciseItems += int64(len(l.ExerciseItems))
	}
	if len(logs) > 0 {
		stats.NewestLog = daylog.TimeOf(logs[0].Timestamp)
		stats.OldestLog = daylog.TimeOf(logs[len(logs)-1].Timestamp)
	}
	return stats, nil
}

// Close is a no-op; every write is already on disk.
func (s *DiskvStore) Close() error { return nil }
