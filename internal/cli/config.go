package cli

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/lyphol/funnytime/internal/config"
	"github.com/spf13/cobra"
)

var configCmd = GroupCommand{
	Use:   "config",
	Short: "Show or change settings",
	Subcommands: []*cobra.Command{
		configShowCmd,
		configSetCmd,
		configResetCmd,
		configPathCmd,
	},
}.Build()

var configShowCmd = LeafCommand{
	Use:   "show",
	Short: "Print the effective configuration",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return err
		}
		envFile, _ := cmd.Flags().GetString("env-file")
		return runConfigShow(cmd, homeDir, envFile)
	},
}.Build()

var configSetCmd = LeafCommand{
	Use:   "set KEY VALUE",
	Short: "Store a setting in config.json",
	Long:  "Keys: " + strings.Join(configKeys, ", ") + ".",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return err
		}
		return runConfigSet(cmd, homeDir, args[0], args[1])
	},
}.Build()

var configResetCmd = LeafCommand{
	Use:   "reset",
	Short: "Restore the default configuration",
	Args:  cobra.NoArgs,
	BoolFlags: []BoolFlag{
		{Name: "yes", Usage: "skip confirmation prompt"},
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return err
		}
		yes, _ := cmd.Flags().GetBool("yes")
		return runConfigReset(cmd, homeDir, confirmFor(yes))
	},
}.Build()

var configPathCmd = LeafCommand{
	Use:   "path",
	Short: "Print the location of config.json",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return err
		}
		_, _ = fmt.Fprintln(cmd.OutOrStdout(), config.Path(homeDir))
		return nil
	},
}.Build()

var configKeys = []string{
	"data_dir", "backend", "database_url", "timezone", "history_limit",
	"listen", "api_secret", "cors_origins", "log_level",
}

func configValues(cfg *config.Config) map[string]string {
	secret := ""
	if cfg.APISecret != "" {
		secret = "********"
	}
	return map[string]string{
		"data_dir":      cfg.DataDir,
		"backend":       cfg.Backend,
		"database_url":  cfg.DatabaseURL,
		"timezone":      cfg.Timezone,
		"history_limit": strconv.Itoa(cfg.HistoryLimit),
		"listen":        cfg.Listen,
		"api_secret":    secret,
		"cors_origins":  strings.Join(cfg.CORSOrigins, ","),
		"log_level":     cfg.LogLevel,
	}
}

func runConfigShow(cmd *cobra.Command, homeDir, envFile string) error {
	cfg, err := config.Load(homeDir, envFile)
	if err != nil {
		return err
	}

	w := cmd.OutOrStdout()
	values := configValues(cfg)
	for _, k := range configKeys {
		v := values[k]
		if v == "" {
			v = Silent("(unset)")
		}
		_, _ = fmt.Fprintf(w, "%-14s %s\n", Primary(k), v)
	}
	return nil
}

// setConfigValue applies one key to cfg, checking the value in isolation.
func setConfigValue(cfg *config.Config, key, value string) error {
	switch key {
	case "data_dir":
		cfg.DataDir = value
	case "backend":
		switch value {
		case config.BackendJSON, config.BackendSQLite, config.BackendPostgres:
			cfg.Backend = value
		default:
			return fmt.Errorf("unknown backend %q (expected json, sqlite or postgres)", value)
		}
	case "database_url":
		cfg.DatabaseURL = value
	case "timezone":
		prev := cfg.Timezone
		cfg.Timezone = value
		if _, err := cfg.Location(); err != nil {
			cfg.Timezone = prev
			return err
		}
	case "history_limit":
		n, err := strconv.Atoi(value)
		if err != nil || n <= 0 {
			return fmt.Errorf("history_limit must be a positive integer, got %q", value)
		}
		cfg.HistoryLimit = n
	case "listen":
		cfg.Listen = value
	case "api_secret":
		cfg.APISecret = value
	case "cors_origins":
		cfg.CORSOrigins = nil
		for _, o := range strings.Split(value, ",") {
			if o = strings.TrimSpace(o); o != "" {
				cfg.CORSOrigins = append(cfg.CORSOrigins, o)
			}
		}
	case "log_level":
		prev := cfg.LogLevel
		cfg.LogLevel = value
		if _, err := cfg.SlogLevel(); err != nil {
			cfg.LogLevel = prev
			return err
		}
	default:
		return fmt.Errorf("unknown key %q (valid: %s)", key, strings.Join(configKeys, ", "))
	}
	return nil
}

func runConfigSet(cmd *cobra.Command, homeDir, key, value string) error {
	cfg, err := config.Read(homeDir)
	if err != nil {
		return err
	}
	if err := setConfigValue(cfg, key, value); err != nil {
		return err
	}
	if err := config.Write(homeDir, cfg); err != nil {
		return err
	}

	shown := configValues(cfg)[key]
	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s set to %s\n", Primary(key), shown)
	return nil
}

func runConfigReset(cmd *cobra.Command, homeDir string, confirm ConfirmFunc) error {
	ok, err := askConfirm(confirm, "Reset config.json to defaults?")
	if err != nil {
		return err
	}
	if !ok {
		_, _ = fmt.Fprintln(cmd.OutOrStdout(), "cancelled")
		return nil
	}
	if err := config.Write(homeDir, config.Default(homeDir)); err != nil {
		return err
	}
	_, _ = fmt.Fprintln(cmd.OutOrStdout(), Success("config reset to defaults"))
	return nil
}
