package worker

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHealthServer_Liveness(t *testing.T) {
	h := NewHealthServer(":0", testLogger)

	rr := httptest.NewRecorder()
	h.handleLiveness(rr, httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.Equal(t, http.StatusOK, rr.Code)

	var resp healthResponse
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&resp))
	assert.Equal(t, "ok", resp.Status)
}

func TestHealthServer_ReadinessFollowsSetReady(t *testing.T) {
	h := NewHealthServer(":0", testLogger)

	// 初期状態はnot ready
	rr := httptest.NewRecorder()
	h.handleReadiness(rr, httptest.NewRequest(http.MethodGet, "/health/ready", nil))
	assert.Equal(t, http.StatusServiceUnavailable, rr.Code)

	h.SetReady(true)
	rr = httptest.NewRecorder()
	h.handleReadiness(rr, httptest.NewRequest(http.MethodGet, "/health/ready", nil))
	assert.Equal(t, http.StatusOK, rr.Code)

	h.SetReady(false)
	rr = httptest.NewRecorder()
	h.handleReadiness(rr, httptest.NewRequest(http.MethodGet, "/health/ready", nil))
	assert.Equal(t, http.StatusServiceUnavailable, rr.Code)
}
