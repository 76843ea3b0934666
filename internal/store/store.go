// Package store persists attendance records and workday overrides.
package store

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/lyphol/funnytime/internal/attendance"
	"github.com/lyphol/funnytime/internal/config"
	"github.com/lyphol/funnytime/internal/workday"
)

// ErrNotFound is returned when no record exists for a day.
var ErrNotFound = errors.New("record not found")

// Store is the persistence collaborator. Every write is durable once it
// returns.
type Store interface {
	Records(ctx context.Context) ([]attendance.Record, error)
	Record(ctx context.Context, day time.Time) (attendance.Record, error)
	Overrides(ctx context.Context) (workday.Overrides, error)
	UpsertRecord(ctx context.Context, r attendance.Record) error
	DeleteRecord(ctx context.Context, day time.Time) error
	UpsertOverride(ctx context.Context, o workday.Override) error
	ReplaceAll(ctx context.Context, records []attendance.Record, overrides workday.Overrides) error
	Close() error
}

// Open returns the backend selected by cfg.
func Open(ctx context.Context, cfg *config.Config, logger *slog.Logger) (Store, error) {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	loc, err := cfg.Location()
	if err != nil {
		return nil, err
	}

	switch cfg.Backend {
	case config.BackendJSON, "":
		return NewJSON(cfg.DataDir, loc, logger), nil
	case config.BackendSQLite:
		return NewSQLite(cfg.SQLitePath(), loc, logger)
	case config.BackendPostgres:
		return NewPostgres(ctx, cfg.DatabaseURL, loc, logger)
	}
	return nil, fmt.Errorf("unknown backend %q", cfg.Backend)
}

// dayKey is the storage identity of a record.
func dayKey(t time.Time) string {
	return t.Format("2006-01-02")
}

func parseDayKey(s string, loc *time.Location) (time.Time, error) {
	return time.ParseInLocation("2006-01-02", s, loc)
}
