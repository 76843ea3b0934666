package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	BackendJSON     = "json"
	BackendSQLite   = "sqlite"
	BackendPostgres = "postgres"

	DefaultListen       = "127.0.0.1:8080"
	DefaultHistoryLimit = 50
)

// Config holds the settings shared by the CLI and the API server.
type Config struct {
	DataDir      string   `json:"data_dir,omitempty"`
	Backend      string   `json:"backend,omitempty"`
	DatabaseURL  string   `json:"database_url,omitempty"`
	Timezone     string   `json:"timezone,omitempty"`
	HistoryLimit int      `json:"history_limit,omitempty"`
	Listen       string   `json:"listen,omitempty"`
	APISecret    string   `json:"api_secret,omitempty"`
	CORSOrigins  []string `json:"cors_origins,omitempty"`
	LogLevel     string   `json:"log_level,omitempty"`
}

// Dir returns the global funnytime directory.
func Dir(homeDir string) string {
	return filepath.Join(homeDir, ".funnytime")
}

// Path returns the path of config.json.
func Path(homeDir string) string {
	return filepath.Join(Dir(homeDir), "config.json")
}

// Default returns the configuration used when nothing is set.
func Default(homeDir string) *Config {
	return &Config{
		DataDir:      Dir(homeDir),
		Backend:      BackendJSON,
		HistoryLimit: DefaultHistoryLimit,
		Listen:       DefaultListen,
		LogLevel:     "info",
	}
}

// Read loads config.json over the defaults. A missing file is not an error.
func Read(homeDir string) (*Config, error) {
	cfg := Default(homeDir)

	data, err := os.ReadFile(Path(homeDir))
	if os.IsNotExist(err) {
		return cfg, nil
	}
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", Path(homeDir), err)
	}
	return cfg, nil
}

// Write persists cfg as config.json.
func Write(homeDir string, cfg *Config) error {
	if err := os.MkdirAll(Dir(homeDir), 0755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(Path(homeDir), data, 0600)
}

// Load reads config.json, then envFile (".env" when empty, missing is
// fine), then FUNNYTIME_* environment variables, and validates the result.
func Load(homeDir, envFile string) (*Config, error) {
	cfg, err := Read(homeDir)
	if err != nil {
		return nil, err
	}

	if envFile == "" {
		envFile = ".env"
	}
	dotenv, err := godotenv.Read(envFile)
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("reading %s: %w", envFile, err)
	}

	if err := cfg.applyEnv(func(key string) (string, bool) {
		if v, ok := os.LookupEnv(key); ok {
			return v, true
		}
		v, ok := dotenv[key]
		return v, ok
	}); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}
	return cfg, nil
}

func (c *Config) applyEnv(lookup func(string) (string, bool)) error {
	getEnv := func(key string, target *string) {
		if v, ok := lookup(key); ok && v != "" {
			*target = v
		}
	}

	getEnv("FUNNYTIME_DATA_DIR", &c.DataDir)
	getEnv("FUNNYTIME_BACKEND", &c.Backend)
	getEnv("FUNNYTIME_DATABASE_URL", &c.DatabaseURL)
	getEnv("FUNNYTIME_TZ", &c.Timezone)
	getEnv("FUNNYTIME_LISTEN", &c.Listen)
	getEnv("FUNNYTIME_API_SECRET", &c.APISecret)
	getEnv("FUNNYTIME_LOG_LEVEL", &c.LogLevel)

	if v, ok := lookup("FUNNYTIME_CORS_ORIGINS"); ok && v != "" {
		c.CORSOrigins = nil
		for _, o := range strings.Split(v, ",") {
			if o = strings.TrimSpace(o); o != "" {
				c.CORSOrigins = append(c.CORSOrigins, o)
			}
		}
	}

	if v, ok := lookup("FUNNYTIME_HISTORY_LIMIT"); ok && v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid FUNNYTIME_HISTORY_LIMIT: %w", err)
		}
		c.HistoryLimit = n
	}
	return nil
}

// Validate checks the configuration for unusable values.
func (c *Config) Validate() error {
	switch c.Backend {
	case BackendJSON, BackendSQLite:
		if c.DataDir == "" {
			return fmt.Errorf("data_dir is required for the %s backend", c.Backend)
		}
	case BackendPostgres:
		if c.DatabaseURL == "" {
			return fmt.Errorf("FUNNYTIME_DATABASE_URL is required for the postgres backend")
		}
	default:
		return fmt.Errorf("unknown backend %q (expected json, sqlite or postgres)", c.Backend)
	}
	if c.HistoryLimit <= 0 {
		return fmt.Errorf("history_limit must be positive, got %d", c.HistoryLimit)
	}
	if _, err := c.Location(); err != nil {
		return err
	}
	if _, err := c.SlogLevel(); err != nil {
		return err
	}
	return nil
}

// Location resolves Timezone. Empty or "Local" means the system zone.
func (c *Config) Location() (*time.Location, error) {
	if c.Timezone == "" || c.Timezone == "Local" {
		return time.Local, nil
	}
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return nil, fmt.Errorf("invalid timezone %q: %w", c.Timezone, err)
	}
	return loc, nil
}

// SlogLevel parses LogLevel.
func (c *Config) SlogLevel() (slog.Level, error) {
	var lvl slog.Level
	if c.LogLevel == "" {
		return slog.LevelInfo, nil
	}
	if err := lvl.UnmarshalText([]byte(strings.ToUpper(c.LogLevel))); err != nil {
		return slog.LevelInfo, fmt.Errorf("invalid log level %q", c.LogLevel)
	}
	return lvl, nil
}

// SQLitePath is the database file used by the sqlite backend.
func (c *Config) SQLitePath() string {
	return filepath.Join(c.DataDir, "funnytime.db")
}
