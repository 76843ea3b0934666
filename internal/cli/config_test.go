package cli

import (
	"testing"

	"github.com/lyphol/funnytime/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfigSet(t *testing.T) {
	home := t.TempDir()
	cmd, buf := newTestCmd()

	require.NoError(t, runConfigSet(cmd, home, "backend", "sqlite"))
	require.NoError(t, runConfigSet(cmd, home, "timezone", "Asia/Shanghai"))
	require.NoError(t, runConfigSet(cmd, home, "cors_origins", "http://a.test, ,http://b.test"))
	require.NoError(t, runConfigSet(cmd, home, "history_limit", "12"))
	require.NoError(t, runConfigSet(cmd, home, "api_secret", "hunter2"))
	assert.Contains(t, buf.String(), "backend set to sqlite")
	assert.Contains(t, buf.String(), "api_secret set to ********")
	assert.NotContains(t, buf.String(), "hunter2")

	cfg, err := config.Read(home)
	require.NoError(t, err)
	assert.Equal(t, config.BackendSQLite, cfg.Backend)
	assert.Equal(t, "Asia/Shanghai", cfg.Timezone)
	assert.Equal(t, []string{"http://a.test", "http://b.test"}, cfg.CORSOrigins)
	assert.Equal(t, 12, cfg.HistoryLimit)
	assert.Equal(t, "hunter2", cfg.APISecret)
}

func TestConfigSetRejectsBadValues(t *testing.T) {
	home := t.TempDir()
	cmd, _ := newTestCmd()

	tests := []struct{ key, value string }{
		{"backend", "mongo"},
		{"timezone", "Mars/Olympus"},
		{"history_limit", "0"},
		{"history_limit", "many"},
		{"log_level", "loud"},
		{"colour", "red"},
	}
	for _, tt := range tests {
		t.Run(tt.key+"="+tt.value, func(t *testing.T) {
			assert.Error(t, runConfigSet(cmd, home, tt.key, tt.value))
		})
	}
	assert.NoFileExists(t, config.Path(home))
}

func TestConfigShow(t *testing.T) {
	home := t.TempDir()
	cmd, buf := newTestCmd()
	require.NoError(t, runConfigSet(cmd, home, "api_secret", "hunter2"))
	buf.Reset()

	t.Setenv("FUNNYTIME_LISTEN", "0.0.0.0:9000")
	require.NoError(t, runConfigShow(cmd, home, ""))

	out := buf.String()
	assert.Contains(t, out, "0.0.0.0:9000")
	assert.Contains(t, out, "json")
	assert.Contains(t, out, "********")
	assert.NotContains(t, out, "hunter2")
	assert.Contains(t, out, "(unset)")
}

func TestConfigReset(t *testing.T) {
	home := t.TempDir()
	cmd, buf := newTestCmd()
	require.NoError(t, runConfigSet(cmd, home, "backend", "sqlite"))

	require.NoError(t, runConfigReset(cmd, home, func(string) (bool, error) { return false, nil }))
	assert.Contains(t, buf.String(), "cancelled")
	cfg, err := config.Read(home)
	require.NoError(t, err)
	assert.Equal(t, config.BackendSQLite, cfg.Backend)

	require.NoError(t, runConfigReset(cmd, home, AlwaysYes()))
	cfg, err = config.Read(home)
	require.NoError(t, err)
	assert.Equal(t, config.Default(home), cfg)
}
