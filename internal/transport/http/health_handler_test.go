package http

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sgpulse/internal/dataprocessing"
	"sgpulse/internal/services"
)

func newHealthServer(t *testing.T, data *services.JobDataService) *httptest.Server {
	t.Helper()
	logger := testLogger()
	handler := NewHealthHandler(services.NewHealthService("v1.0.0-test", "", "", data, logger), logger)
	return httptest.NewServer(handler.Routes())
}

func TestHealthCheck(t *testing.T) {
	srv := newHealthServer(t, nil)
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/")
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)
	var body services.HealthStatus
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "healthy", body.Status)
	assert.Equal(t, "v1.0.0-test", body.Version)
}

func TestLivenessCheck(t *testing.T) {
	srv := newHealthServer(t, nil)
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/live")
	require.NoError(t, err)
	resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestReadinessCheck_NotReady(t *testing.T) {
	logger := testLogger()
	store := dataprocessing.NewStore(dataprocessing.NewPipeline(logger), logger)
	data := services.NewJobDataService(store, "never-loaded.csv", nil, logger)

	srv := newHealthServer(t, data)
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/ready")
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
	var body services.HealthStatus
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "not_ready", body.Status)
}

func TestVersion(t *testing.T) {
	logger := testLogger()
	handler := NewHealthHandler(services.NewHealthService("v1.0.0-test", "2026-01-01", "abc123", nil, logger), logger)

	req := httptest.NewRequest(http.MethodGet, "/version", nil).WithContext(context.Background())
	rec := httptest.NewRecorder()
	handler.Version(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var body services.VersionInfo
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "v1.0.0-test", body.Version)
	assert.Equal(t, "abc123", body.BuildID)
}
