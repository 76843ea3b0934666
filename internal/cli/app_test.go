package cli

import (
	"bytes"
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/lyphol/funnytime/internal/attendance"
	"github.com/lyphol/funnytime/internal/config"
	"github.com/lyphol/funnytime/internal/store"
	"github.com/lyphol/funnytime/internal/workday"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Wednesday of ISO week 25.
var fixedNow = func() time.Time { return time.Date(2025, 6, 18, 14, 30, 0, 0, time.UTC) }

func newTestApp(t *testing.T) *app {
	t.Helper()
	dir := t.TempDir()
	cfg := config.Default(dir)
	cfg.DataDir = dir
	cfg.Timezone = "UTC"
	logger := slog.New(slog.DiscardHandler)
	return &app{
		cfg:    cfg,
		store:  store.NewJSON(dir, time.UTC, logger),
		loc:    time.UTC,
		logger: logger,
	}
}

// newTestCmd returns a bare command writing to a buffer.
func newTestCmd() (*cobra.Command, *bytes.Buffer) {
	buf := new(bytes.Buffer)
	cmd := &cobra.Command{}
	cmd.SetOut(buf)
	cmd.SetErr(buf)
	cmd.SetContext(context.Background())
	return cmd, buf
}

func utcDay(m time.Month, d int) time.Time {
	return time.Date(2025, m, d, 0, 0, 0, 0, time.UTC)
}

func seedRecord(t *testing.T, a *app, day time.Time, inH, inM, outH, outM int) attendance.Record {
	t.Helper()
	r := attendance.New(day, a.loc)
	in := day.Add(time.Duration(inH)*time.Hour + time.Duration(inM)*time.Minute)
	r.CheckInAt = &in
	if outH >= 0 {
		out := day.Add(time.Duration(outH)*time.Hour + time.Duration(outM)*time.Minute)
		r.CheckOutAt = &out
	}
	require.NoError(t, a.store.UpsertRecord(context.Background(), r))
	return r
}

func seedOverride(t *testing.T, a *app, year, week int, days ...int) {
	t.Helper()
	set, err := workday.FromList(days)
	require.NoError(t, err)
	require.NoError(t, a.store.UpsertOverride(context.Background(), workday.Override{Year: year, Week: week, Workdays: set}))
}

func TestRecordForReturnsFreshRecord(t *testing.T) {
	a := newTestApp(t)
	r, err := a.recordFor(context.Background(), utcDay(6, 18))
	require.NoError(t, err)
	assert.Equal(t, attendance.NotStarted, r.State())
	assert.Equal(t, utcDay(6, 18), r.Date)

	seedRecord(t, a, utcDay(6, 18), 9, 0, -1, 0)
	r, err = a.recordFor(context.Background(), utcDay(6, 18))
	require.NoError(t, err)
	assert.Equal(t, attendance.CheckedIn, r.State())
}

func TestNewLoggerVerboseForcesDebug(t *testing.T) {
	buf := new(bytes.Buffer)
	cfg := config.Default(t.TempDir())

	logger, err := newLogger(buf, cfg, false)
	require.NoError(t, err)
	logger.Debug("hidden")
	assert.Empty(t, buf.String())

	logger, err = newLogger(buf, cfg, true)
	require.NoError(t, err)
	logger.Debug("shown", "k", "v")
	assert.Contains(t, buf.String(), "msg=shown")
	assert.Contains(t, buf.String(), "k=v")
}

func TestNewLoggerRejectsBadLevel(t *testing.T) {
	cfg := config.Default(t.TempDir())
	cfg.LogLevel = "chatty"
	_, err := newLogger(new(bytes.Buffer), cfg, false)
	assert.Error(t, err)
}

func TestClockUsesConfiguredZone(t *testing.T) {
	a := newTestApp(t)
	shanghai := time.FixedZone("CST", 8*3600)
	a.loc = shanghai
	now := a.clock(fixedNow)()
	assert.Equal(t, shanghai, now.Location())
	assert.True(t, now.Equal(fixedNow()))
}
