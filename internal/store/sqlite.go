package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/lyphol/funnytime/internal/attendance"
	"github.com/lyphol/funnytime/internal/workday"
)

const sqliteSchema = `
CREATE TABLE IF NOT EXISTS records (
	day       TEXT PRIMARY KEY,
	check_in  TEXT,
	check_out TEXT
);

CREATE TABLE IF NOT EXISTS workdays (
	year     INTEGER NOT NULL,
	week     INTEGER NOT NULL CHECK (week BETWEEN 1 AND 53),
	weekdays INTEGER NOT NULL,
	PRIMARY KEY (year, week)
);
`

// SQLiteStore keeps data in a SQLite database opened in WAL mode.
// Instants are stored as RFC 3339 UTC text, days as YYYY-MM-DD.
type SQLiteStore struct {
	db     *sql.DB
	loc    *time.Location
	logger *slog.Logger
}

// NewSQLite opens (and migrates) the database at path.
func NewSQLite(path string, loc *time.Location, logger *slog.Logger) (*SQLiteStore, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, err
	}
	db, err := sql.Open("sqlite3", path+"?_foreign_keys=on&_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(sqliteSchema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	logger.Debug("sqlite store opened", "path", path)
	return &SQLiteStore{db: db, loc: loc, logger: logger}, nil
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func formatInstant(t *time.Time) sql.NullString {
	if t == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: t.UTC().Format(time.RFC3339Nano), Valid: true}
}

func (s *SQLiteStore) parseInstant(ns sql.NullString) (*time.Time, error) {
	if !ns.Valid {
		return nil, nil
	}
	t, err := time.Parse(time.RFC3339Nano, ns.String)
	if err != nil {
		return nil, err
	}
	t = t.In(s.loc)
	return &t, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func (s *SQLiteStore) scanRecord(row rowScanner) (attendance.Record, error) {
	var (
		day     string
		in, out sql.NullString
	)
	if err := row.Scan(&day, &in, &out); err != nil {
		return attendance.Record{}, err
	}

	date, err := parseDayKey(day, s.loc)
	if err != nil {
		return attendance.Record{}, fmt.Errorf("invalid day %q: %w", day, err)
	}
	r := attendance.Record{Date: date}
	if r.CheckInAt, err = s.parseInstant(in); err != nil {
		return attendance.Record{}, err
	}
	if r.CheckOutAt, err = s.parseInstant(out); err != nil {
		return attendance.Record{}, err
	}
	return r, nil
}

func (s *SQLiteStore) Records(ctx context.Context) ([]attendance.Record, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT day, check_in, check_out FROM records ORDER BY day DESC`)
	if err != nil {
		return nil, fmt.Errorf("failed to list records: %w", err)
	}
	defer rows.Close()

	var out []attendance.Record
	for rows.Next() {
		r, err := s.scanRecord(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

func (s *SQLiteStore) Record(ctx context.Context, day time.Time) (attendance.Record, error) {
	row := s.db.QueryRowContext(ctx, `SELECT day, check_in, check_out FROM records WHERE day = ?`, dayKey(day.In(s.loc)))
	r, err := s.scanRecord(row)
	if errors.Is(err, sql.ErrNoRows) {
		return attendance.Record{}, ErrNotFound
	}
	return r, err
}

func (s *SQLiteStore) Overrides(ctx context.Context) (workday.Overrides, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT year, week, weekdays FROM workdays`)
	if err != nil {
		return nil, fmt.Errorf("failed to list workdays: %w", err)
	}
	defer rows.Close()

	out := workday.Overrides{}
	for rows.Next() {
		var k workday.Key
		var days int
		if err := rows.Scan(&k.Year, &k.Week, &days); err != nil {
			return nil, err
		}
		out[k] = workday.Weekdays(days)
	}
	return out, rows.Err()
}

type sqlExecer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

func (s *SQLiteStore) upsertRecord(ctx context.Context, q sqlExecer, r attendance.Record) error {
	_, err := q.ExecContext(ctx, `
		INSERT INTO records (day, check_in, check_out) VALUES (?, ?, ?)
		ON CONFLICT(day) DO UPDATE SET check_in = excluded.check_in, check_out = excluded.check_out`,
		dayKey(r.Date.In(s.loc)), formatInstant(r.CheckInAt), formatInstant(r.CheckOutAt))
	if err != nil {
		return fmt.Errorf("failed to upsert record: %w", err)
	}
	return nil
}

func upsertOverride(ctx context.Context, q sqlExecer, k workday.Key, w workday.Weekdays) error {
	_, err := q.ExecContext(ctx, `
		INSERT INTO workdays (year, week, weekdays) VALUES (?, ?, ?)
		ON CONFLICT(year, week) DO UPDATE SET weekdays = excluded.weekdays`,
		k.Year, k.Week, int(w))
	if err != nil {
		return fmt.Errorf("failed to upsert workdays: %w", err)
	}
	return nil
}

func (s *SQLiteStore) UpsertRecord(ctx context.Context, r attendance.Record) error {
	if err := s.upsertRecord(ctx, s.db, r); err != nil {
		return err
	}
	s.logger.Debug("record upserted", "day", dayKey(r.Date.In(s.loc)))
	return nil
}

func (s *SQLiteStore) DeleteRecord(ctx context.Context, day time.Time) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM records WHERE day = ?`, dayKey(day.In(s.loc)))
	if err != nil {
		return fmt.Errorf("failed to delete record: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *SQLiteStore) UpsertOverride(ctx context.Context, o workday.Override) error {
	return upsertOverride(ctx, s.db, o.Key(), o.Workdays)
}

// ReplaceAll swaps both tables inside one transaction.
func (s *SQLiteStore) ReplaceAll(ctx context.Context, records []attendance.Record, overrides workday.Overrides) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `DELETE FROM records`); err != nil {
		return fmt.Errorf("failed to clear records: %w", err)
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM workdays`); err != nil {
		return fmt.Errorf("failed to clear workdays: %w", err)
	}
	for _, r := range records {
		if err := s.upsertRecord(ctx, tx, r); err != nil {
			return err
		}
	}
	for k, w := range overrides {
		if err := upsertOverride(ctx, tx, k, w); err != nil {
			return err
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	s.logger.Debug("data replaced", "records", len(records), "overrides", len(overrides))
	return nil
}
