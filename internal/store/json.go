package store

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/lyphol/funnytime/internal/attendance"
	"github.com/lyphol/funnytime/internal/transfer"
	"github.com/lyphol/funnytime/internal/workday"
)

// JSONStore keeps all data in a single data.json in the transfer document
// shape. Every write rewrites the file through a temp file and a rename.
type JSONStore struct {
	path   string
	loc    *time.Location
	logger *slog.Logger
	mu     sync.Mutex
}

// NewJSON returns a store backed by dir/data.json.
func NewJSON(dir string, loc *time.Location, logger *slog.Logger) *JSONStore {
	return &JSONStore{
		path:   filepath.Join(dir, "data.json"),
		loc:    loc,
		logger: logger,
	}
}

// Path returns the data file location.
func (s *JSONStore) Path() string { return s.path }

func (s *JSONStore) load() (transfer.Snapshot, error) {
	data, err := os.ReadFile(s.path)
	if os.IsNotExist(err) {
		return transfer.Snapshot{Overrides: workday.Overrides{}}, nil
	}
	if err != nil {
		return transfer.Snapshot{}, err
	}
	snap, err := transfer.Decode(bytes.NewReader(data), s.loc)
	if err != nil {
		return transfer.Snapshot{}, fmt.Errorf("reading %s: %w", s.path, err)
	}
	return snap, nil
}

func (s *JSONStore) save(records []attendance.Record, overrides workday.Overrides) error {
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	var buf bytes.Buffer
	if err := transfer.Encode(&buf, transfer.Serialize(records, overrides)); err != nil {
		return err
	}

	tmp, err := os.CreateTemp(dir, ".data-*.json")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(buf.Bytes()); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
		return err
	}
	if err := tmp.Sync(); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
		return err
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpName)
		return err
	}
	if err := os.Rename(tmpName, s.path); err != nil {
		_ = os.Remove(tmpName)
		return err
	}

	s.logger.Debug("data file written", "path", s.path, "records", len(records), "overrides", len(overrides))
	return nil
}

func (s *JSONStore) Records(_ context.Context) ([]attendance.Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	snap, err := s.load()
	if err != nil {
		return nil, err
	}
	attendance.SortNewestFirst(snap.Records)
	return snap.Records, nil
}

func (s *JSONStore) Record(_ context.Context, day time.Time) (attendance.Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	snap, err := s.load()
	if err != nil {
		return attendance.Record{}, err
	}
	i := attendance.Find(snap.Records, day.In(s.loc))
	if i < 0 {
		return attendance.Record{}, ErrNotFound
	}
	return snap.Records[i], nil
}

func (s *JSONStore) Overrides(_ context.Context) (workday.Overrides, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	snap, err := s.load()
	if err != nil {
		return nil, err
	}
	return snap.Overrides, nil
}

func (s *JSONStore) UpsertRecord(_ context.Context, r attendance.Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	snap, err := s.load()
	if err != nil {
		return err
	}
	r.Date = attendance.New(r.Date, s.loc).Date
	return s.save(attendance.Upsert(snap.Records, r), snap.Overrides)
}

func (s *JSONStore) DeleteRecord(_ context.Context, day time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	snap, err := s.load()
	if err != nil {
		return err
	}
	records, ok := attendance.Remove(snap.Records, day.In(s.loc))
	if !ok {
		return ErrNotFound
	}
	return s.save(records, snap.Overrides)
}

func (s *JSONStore) UpsertOverride(_ context.Context, o workday.Override) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	snap, err := s.load()
	if err != nil {
		return err
	}
	snap.Overrides[o.Key()] = o.Workdays
	return s.save(snap.Records, snap.Overrides)
}

func (s *JSONStore) ReplaceAll(_ context.Context, records []attendance.Record, overrides workday.Overrides) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.save(records, overrides)
}

func (s *JSONStore) Close() error { return nil }
