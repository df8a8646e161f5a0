package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHealthChecker_Liveness(t *testing.T) {
	h := NewHealthChecker(nil, "1.2.3")
	h.SetReady(false)

	rec := httptest.NewRecorder()
	h.LivenessHandler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))

	// Liveness ignores readiness
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var resp HealthResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, healthStatusOK, resp.Status)
}

func TestHealthChecker_Readiness(t *testing.T) {
	tests := []struct {
		name       string
		ready      bool
		shutdown   bool
		wantCode   int
		wantStatus string
		wantChecks map[string]string
	}{
		{
			name:       "ready",
			ready:      true,
			wantCode:   http.StatusOK,
			wantStatus: healthStatusOK,
			wantChecks: map[string]string{"ready": "ok", "shutdown": "ok", "docs": "ok", "sheets": "ok", "drive": "ok", "gmail": "ok"},
		},
		{
			name:       "not ready",
			ready:      false,
			wantCode:   http.StatusServiceUnavailable,
			wantStatus: healthStatusNotReady,
			wantChecks: map[string]string{"ready": "not ready", "shutdown": "ok", "docs": "ok", "sheets": "ok", "drive": "ok", "gmail": "ok"},
		},
		{
			name:       "shutting down",
			ready:      true,
			shutdown:   true,
			wantCode:   http.StatusServiceUnavailable,
			wantStatus: healthStatusNotReady,
			wantChecks: map[string]string{"ready": "ok", "shutdown": "shutting down", "docs": "ok", "sheets": "ok", "drive": "ok", "gmail": "ok"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sc := newTestServerContext(t, func(w http.ResponseWriter, r *http.Request) {})
			h := NewHealthChecker(sc, "1.2.3")
			h.SetReady(tt.ready)
			if tt.shutdown {
				require.NoError(t, sc.Shutdown())
			}

			rec := httptest.NewRecorder()
			h.ReadinessHandler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/readyz", nil))

			assert.Equal(t, tt.wantCode, rec.Code)
			var resp HealthResponse
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
			assert.Equal(t, tt.wantStatus, resp.Status)
			assert.Equal(t, tt.wantChecks, resp.Checks)
		})
	}
}

func TestHealthChecker_Detailed(t *testing.T) {
	sc := newTestServerContext(t, func(w http.ResponseWriter, r *http.Request) {})
	h := NewHealthChecker(sc, "1.2.3")

	rec := httptest.NewRecorder()
	h.DetailedHealthHandler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz/detailed", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	var resp DetailedHealthResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, healthStatusOK, resp.Status)
	assert.Equal(t, "1.2.3", resp.Version)
	assert.NotEmpty(t, resp.Uptime)
	assert.Len(t, resp.Services, 4)

	require.NoError(t, sc.Shutdown())
	rec = httptest.NewRecorder()
	h.DetailedHealthHandler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz/detailed", nil))
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, healthStatusShuttingDown, resp.Status)
}

func TestHealthChecker_RegisterHealthEndpoints(t *testing.T) {
	mux := http.NewServeMux()
	NewHealthChecker(nil, "").RegisterHealthEndpoints(mux)

	for _, path := range []string{"/healthz", "/readyz", "/healthz/detailed"} {
		rec := httptest.NewRecorder()
		mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
		assert.Equal(t, http.StatusOK, rec.Code, path)
	}
}
