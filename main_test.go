package main

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/event-announcer/common/config"
	"github.com/event-announcer/common/logger"
	"github.com/event-announcer/common/metrics"
	"github.com/event-announcer/services/announcement-lambda/app"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	reg := prometheus.NewRegistry()
	cfg := &config.Config{TopicARN: "arn:aws:sns:us-east-1:123456789012:local", TopicFromEnv: true, Backend: config.BackendMemory}

	h, cleanup, err := app.Build(context.Background(), cfg, logger.New(&logger.Config{Output: io.Discard}), metrics.NewRecorder(reg))
	require.NoError(t, err)
	t.Cleanup(cleanup)

	srv := httptest.NewServer(newRouter(h, reg))
	t.Cleanup(srv.Close)
	return srv
}

func TestRouter_ProxiesToHandler(t *testing.T) {
	srv := newTestServer(t)

	resp, err := http.Post(srv.URL+"/events", "application/json",
		strings.NewReader(`{"title":"Launch","description":"v2 ships","date":"2025-06-01"}`))
	require.NoError(t, err)
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "GET,POST,OPTIONS", resp.Header.Get("Access-Control-Allow-Methods"))
	assert.Contains(t, string(body), `"eventTitle":"Launch"`)
}

func TestRouter_HealthAndMetrics(t *testing.T) {
	srv := newTestServer(t)

	resp, err := http.Get(srv.URL + "/events")
	require.NoError(t, err)
	resp.Body.Close()

	resp, err = http.Get(srv.URL + "/health")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp, err = http.Get(srv.URL + "/metrics")
	require.NoError(t, err)
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(body), `announcer_requests_total{route="list-events",status="200"} 1`)
}

func TestServeCmd_Flags(t *testing.T) {
	cmd := newServeCmd()
	for _, name := range []string{"env-file", "port", "backend"} {
		assert.NotNil(t, cmd.Flags().Lookup(name), "missing flag %s", name)
	}
}

func TestResolveConfig_BackendFlag(t *testing.T) {
	t.Setenv("NOTIFY_BACKEND", "")
	t.Setenv("PORT", "")

	cfg, err := resolveConfig("9000", "MEMORY")
	require.NoError(t, err)
	assert.Equal(t, config.BackendMemory, cfg.Backend)
	assert.Equal(t, "9000", cfg.Port)

	cfg, err = resolveConfig("", " Sns ")
	require.NoError(t, err)
	assert.Equal(t, config.BackendSNS, cfg.Backend)
	assert.Equal(t, "8080", cfg.Port)

	_, err = resolveConfig("", "kafka")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `invalid --backend "kafka"`)
}

func TestServeCmd_RejectsUnknownBackend(t *testing.T) {
	cmd := newServeCmd()
	cmd.SetArgs([]string{"--env-file", t.TempDir() + "/missing.env", "--backend", "carrier-pigeon"})
	cmd.SetOut(io.Discard)
	cmd.SetErr(io.Discard)

	err := cmd.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid --backend")
}
