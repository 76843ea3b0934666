package cli

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/lyphol/funnytime/internal/attendance"
	"github.com/lyphol/funnytime/internal/config"
	"github.com/lyphol/funnytime/internal/stats"
	"github.com/lyphol/funnytime/internal/store"
	"github.com/spf13/cobra"
)

// app carries what a command needs once configuration is resolved.
type app struct {
	cfg    *config.Config
	store  store.Store
	loc    *time.Location
	logger *slog.Logger
}

// openApp loads configuration for the invoking command and opens the store.
// Callers must Close the returned app.
func openApp(cmd *cobra.Command) (*app, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return nil, err
	}
	envFile, _ := cmd.Flags().GetString("env-file")
	verbose, _ := cmd.Flags().GetBool("verbose")

	cfg, err := config.Load(homeDir, envFile)
	if err != nil {
		return nil, err
	}
	logger, err := newLogger(cmd.ErrOrStderr(), cfg, verbose)
	if err != nil {
		return nil, err
	}
	loc, err := cfg.Location()
	if err != nil {
		return nil, err
	}

	st, err := store.Open(commandContext(cmd), cfg, logger)
	if err != nil {
		return nil, err
	}
	logger.Debug("store opened", "backend", cfg.Backend, "timezone", loc.String())
	return &app{cfg: cfg, store: st, loc: loc, logger: logger}, nil
}

func (a *app) Close() error {
	return a.store.Close()
}

// newLogger builds the stderr text logger. --verbose forces debug.
func newLogger(w io.Writer, cfg *config.Config, verbose bool) (*slog.Logger, error) {
	level, err := cfg.SlogLevel()
	if err != nil {
		return nil, err
	}
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level})), nil
}

// clock returns nowFn pinned to the configured zone.
func (a *app) clock(nowFn func() time.Time) func() time.Time {
	return func() time.Time { return nowFn().In(a.loc) }
}

func (a *app) navigator(nowFn func() time.Time) stats.Navigator {
	return stats.Navigator{Clock: a.clock(nowFn), Limit: a.cfg.HistoryLimit}
}

// recordFor returns the stored record for day or a fresh one.
func (a *app) recordFor(ctx context.Context, day time.Time) (attendance.Record, error) {
	r, err := a.store.Record(ctx, day)
	if errors.Is(err, store.ErrNotFound) {
		return attendance.New(day, a.loc), nil
	}
	return r, err
}

// withApp adapts a handler that needs an app into a cobra RunE.
func withApp(fn func(cmd *cobra.Command, args []string, a *app) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		a, err := openApp(cmd)
		if err != nil {
			return err
		}
		defer func() { _ = a.Close() }()
		return fn(cmd, args, a)
	}
}

func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}
