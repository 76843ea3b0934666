package cli

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestServeTokenAuthorizesRequests(t *testing.T) {
	a := newTestApp(t)
	a.cfg.APISecret = "s3cret"
	cmd, buf := newTestCmd()

	require.NoError(t, runServeToken(cmd, a, "me", "1h", time.Now))
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	token := lines[0]
	assert.Contains(t, buf.String(), "expires ")

	srv, err := newServer(cmd, a, fixedNow)
	require.NoError(t, err)
	h := srv.Router()

	req := httptest.NewRequest(http.MethodGet, "/api/v1/stats", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	req = httptest.NewRequest(http.MethodGet, "/api/v1/stats", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestServeTokenErrors(t *testing.T) {
	a := newTestApp(t)
	cmd, _ := newTestCmd()

	err := runServeToken(cmd, a, "me", "1h", time.Now)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no api_secret configured")

	a.cfg.APISecret = "s3cret"
	assert.Error(t, runServeToken(cmd, a, "me", "soon", time.Now))
	assert.Error(t, runServeToken(cmd, a, "me", "-1h", time.Now))
}

func TestServeWithoutSecretIsOpen(t *testing.T) {
	a := newTestApp(t)
	cmd, _ := newTestCmd()

	srv, err := newServer(cmd, a, fixedNow)
	require.NoError(t, err)
	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/records", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRunServeStopsWithContext(t *testing.T) {
	a := newTestApp(t)
	cmd, buf := newTestCmd()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	require.NoError(t, runServe(ctx, cmd, a, "127.0.0.1:0", fixedNow))
	assert.Contains(t, buf.String(), "serving on http://127.0.0.1:0")
}

func TestServeRegistersTokenSubcommand(t *testing.T) {
	names := make([]string, 0)
	for _, sub := range serveCmd.Commands() {
		names = append(names, sub.Name())
	}
	assert.Equal(t, []string{"token"}, names)
	assert.NotNil(t, serveCmd.Flags().Lookup("listen"))
}
