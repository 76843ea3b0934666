package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func noEnvFile(t *testing.T) string {
	return filepath.Join(t.TempDir(), "missing.env")
}

func TestLoadDefaults(t *testing.T) {
	home := t.TempDir()

	cfg, err := Load(home, noEnvFile(t))
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, ".funnytime"), cfg.DataDir)
	assert.Equal(t, BackendJSON, cfg.Backend)
	assert.Equal(t, DefaultHistoryLimit, cfg.HistoryLimit)
	assert.Equal(t, DefaultListen, cfg.Listen)

	loc, err := cfg.Location()
	require.NoError(t, err)
	assert.Equal(t, time.Local, loc)
}

func TestWriteAndRead(t *testing.T) {
	home := t.TempDir()
	cfg := Default(home)
	cfg.Backend = BackendSQLite
	cfg.Timezone = "Asia/Shanghai"
	cfg.HistoryLimit = 12

	require.NoError(t, Write(home, cfg))

	got, err := Read(home)
	require.NoError(t, err)
	assert.Equal(t, cfg, got)
	assert.Equal(t, filepath.Join(home, ".funnytime", "funnytime.db"), got.SQLitePath())
}

func TestReadRejectsBrokenFile(t *testing.T) {
	home := t.TempDir()
	require.NoError(t, os.MkdirAll(Dir(home), 0755))
	require.NoError(t, os.WriteFile(Path(home), []byte("{nope"), 0644))

	_, err := Read(home)
	assert.Error(t, err)
}

func TestLoadPrecedence(t *testing.T) {
	home := t.TempDir()
	cfg := Default(home)
	cfg.Timezone = "UTC"
	cfg.Listen = ":9000"
	require.NoError(t, Write(home, cfg))

	envFile := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(envFile, []byte("FUNNYTIME_LISTEN=:9100\nFUNNYTIME_HISTORY_LIMIT=20\nFUNNYTIME_LOG_LEVEL=debug\n"), 0644))

	t.Setenv("FUNNYTIME_HISTORY_LIMIT", "30")

	got, err := Load(home, envFile)
	require.NoError(t, err)
	assert.Equal(t, "UTC", got.Timezone, "file value kept")
	assert.Equal(t, ":9100", got.Listen, ".env overrides file")
	assert.Equal(t, 30, got.HistoryLimit, "environment overrides .env")

	lvl, err := got.SlogLevel()
	require.NoError(t, err)
	assert.Equal(t, slog.LevelDebug, lvl)
}

func TestApplyEnvCORSOrigins(t *testing.T) {
	cfg := Default(t.TempDir())
	env := map[string]string{"FUNNYTIME_CORS_ORIGINS": " http://localhost:3000, ,https://time.example.com "}
	require.NoError(t, cfg.applyEnv(func(k string) (string, bool) {
		v, ok := env[k]
		return v, ok
	}))
	assert.Equal(t, []string{"http://localhost:3000", "https://time.example.com"}, cfg.CORSOrigins)
}

func TestLoadRejectsBadHistoryLimit(t *testing.T) {
	t.Setenv("FUNNYTIME_HISTORY_LIMIT", "lots")
	_, err := Load(t.TempDir(), noEnvFile(t))
	assert.ErrorContains(t, err, "FUNNYTIME_HISTORY_LIMIT")
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		errMsg string
	}{
		{"unknown backend", func(c *Config) { c.Backend = "mongo" }, "unknown backend"},
		{"postgres without url", func(c *Config) { c.Backend = BackendPostgres }, "DATABASE_URL"},
		{"zero history", func(c *Config) { c.HistoryLimit = 0 }, "history_limit"},
		{"bad timezone", func(c *Config) { c.Timezone = "Mars/Olympus" }, "invalid timezone"},
		{"bad log level", func(c *Config) { c.LogLevel = "chatty" }, "invalid log level"},
		{"empty data dir", func(c *Config) { c.DataDir = "" }, "data_dir"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default(t.TempDir())
			tt.mutate(cfg)
			assert.ErrorContains(t, cfg.Validate(), tt.errMsg)
		})
	}

	cfg := Default(t.TempDir())
	cfg.Backend = BackendPostgres
	cfg.DatabaseURL = "postgres://localhost/funnytime"
	assert.NoError(t, cfg.Validate())
}
