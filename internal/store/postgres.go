package store

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/lyphol/funnytime/internal/attendance"
	"github.com/lyphol/funnytime/internal/workday"
)

const postgresSchema = `
CREATE TABLE IF NOT EXISTS records (
	day       DATE PRIMARY KEY,
	check_in  TIMESTAMPTZ,
	check_out TIMESTAMPTZ
);

CREATE TABLE IF NOT EXISTS workdays (
	year     INTEGER NOT NULL,
	week     INTEGER NOT NULL CHECK (week BETWEEN 1 AND 53),
	weekdays INTEGER[] NOT NULL,
	PRIMARY KEY (year, week)
);
`

// Querier is satisfied by both the pool and a transaction.
type Querier interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, arguments ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// PostgresStore keeps data in PostgreSQL through a pgx pool.
type PostgresStore struct {
	pool   *pgxpool.Pool
	loc    *time.Location
	logger *slog.Logger
}

// NewPostgres connects to dsn and migrates the schema.
func NewPostgres(ctx context.Context, dsn string, loc *time.Location, logger *slog.Logger) (*PostgresStore, error) {
	cfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, err
	}
	cfg.MaxConns = 5

	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, err
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, err
	}
	if _, err := pool.Exec(ctx, postgresSchema); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	logger.Debug("postgres store opened", "host", cfg.ConnConfig.Host, "database", cfg.ConnConfig.Database)
	return &PostgresStore{pool: pool, loc: loc, logger: logger}, nil
}

func (s *PostgresStore) Close() error {
	s.pool.Close()
	return nil
}

// WithTransaction runs fn inside a transaction, rolling back when fn fails
// or panics.
func WithTransaction(ctx context.Context, pool *pgxpool.Pool, fn func(tx pgx.Tx) error) error {
	tx, err := pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback(ctx)
			panic(p)
		}
	}()

	if err := fn(tx); err != nil {
		if rbErr := tx.Rollback(ctx); rbErr != nil {
			return fmt.Errorf("rollback error: %v (original error: %w)", rbErr, err)
		}
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// pgDay encodes a record's calendar day for a DATE column.
func (s *PostgresStore) pgDay(t time.Time) time.Time {
	y, m, d := t.In(s.loc).Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func (s *PostgresStore) scanRecord(row pgx.Row) (attendance.Record, error) {
	var (
		day     time.Time
		in, out *time.Time
	)
	if err := row.Scan(&day, &in, &out); err != nil {
		return attendance.Record{}, err
	}

	y, m, d := day.Date()
	r := attendance.Record{Date: time.Date(y, m, d, 0, 0, 0, 0, s.loc)}
	if in != nil {
		v := in.In(s.loc)
		r.CheckInAt = &v
	}
	if out != nil {
		v := out.In(s.loc)
		r.CheckOutAt = &v
	}
	return r, nil
}

func (s *PostgresStore) Records(ctx context.Context) ([]attendance.Record, error) {
	rows, err := s.pool.Query(ctx, `SELECT day, check_in, check_out FROM records ORDER BY day DESC`)
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

func (s *PostgresStore) Record(ctx context.Context, day time.Time) (attendance.Record, error) {
	row := s.pool.QueryRow(ctx, `SELECT day, check_in, check_out FROM records WHERE day = $1`, s.pgDay(day))
	r, err := s.scanRecord(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return attendance.Record{}, ErrNotFound
	}
	return r, err
}

func (s *PostgresStore) Overrides(ctx context.Context) (workday.Overrides, error) {
	rows, err := s.pool.Query(ctx, `SELECT year, week, weekdays FROM workdays`)
	if err != nil {
		return nil, fmt.Errorf("failed to list workdays: %w", err)
	}
	defer rows.Close()

	out := workday.Overrides{}
	for rows.Next() {
		var (
			k    workday.Key
			days []int32
		)
		if err := rows.Scan(&k.Year, &k.Week, &days); err != nil {
			return nil, err
		}
		ints := make([]int, len(days))
		for i, d := range days {
			ints[i] = int(d)
		}
		set, err := workday.FromList(ints)
		if err != nil {
			return nil, fmt.Errorf("workdays %s: %w", k, err)
		}
		out[k] = set
	}
	return out, rows.Err()
}

func (s *PostgresStore) upsertRecord(ctx context.Context, q Querier, r attendance.Record) error {
	_, err := q.Exec(ctx, `
		INSERT INTO records (day, check_in, check_out) VALUES ($1, $2, $3)
		ON CONFLICT (day) DO UPDATE SET check_in = EXCLUDED.check_in, check_out = EXCLUDED.check_out`,
		s.pgDay(r.Date), r.CheckInAt, r.CheckOutAt)
	if err != nil {
		return fmt.Errorf("failed to upsert record: %w", err)
	}
	return nil
}

func upsertPgOverride(ctx context.Context, q Querier, k workday.Key, w workday.Weekdays) error {
	list := w.List()
	days := make([]int32, len(list))
	for i, d := range list {
		days[i] = int32(d)
	}
	_, err := q.Exec(ctx, `
		INSERT INTO workdays (year, week, weekdays) VALUES ($1, $2, $3)
		ON CONFLICT (year, week) DO UPDATE SET weekdays = EXCLUDED.weekdays`,
		k.Year, k.Week, days)
	if err != nil {
		return fmt.Errorf("failed to upsert workdays: %w", err)
	}
	return nil
}

func (s *PostgresStore) UpsertRecord(ctx context.Context, r attendance.Record) error {
	if err := s.upsertRecord(ctx, s.pool, r); err != nil {
		return err
	}
	s.logger.Debug("record upserted", "day", dayKey(r.Date.In(s.loc)))
	return nil
}

func (s *PostgresStore) DeleteRecord(ctx context.Context, day time.Time) error {
	tag, err := s.pool.Exec(ctx, `DELETE FROM records WHERE day = $1`, s.pgDay(day))
	if err != nil {
		return fmt.Errorf("failed to delete record: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *PostgresStore) UpsertOverride(ctx context.Context, o workday.Override) error {
	return upsertPgOverride(ctx, s.pool, o.Key(), o.Workdays)
}

// ReplaceAll swaps both tables inside one transaction.
func (s *PostgresStore) ReplaceAll(ctx context.Context, records []attendance.Record, overrides workday.Overrides) error {
	err := WithTransaction(ctx, s.pool, func(tx pgx.Tx) error {
		if _, err := tx.Exec(ctx, `DELETE FROM records`); err != nil {
			return fmt.Errorf("failed to clear records: %w", err)
		}
		if _, err := tx.Exec(ctx, `DELETE FROM workdays`); err != nil {
			return fmt.Errorf("failed to clear workdays: %w", err)
		}
		for _, r := range records {
			if err := s.upsertRecord(ctx, tx, r); err != nil {
				return err
			}
		}
		for k, w := range overrides {
			if err := upsertPgOverride(ctx, tx, k, w); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return err
	}
	s.logger.Debug("data replaced", "records", len(records), "overrides", len(overrides))
	return nil
}
