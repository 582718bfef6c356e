package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_IndependentRegistries(t *testing.T) {
	first := New("dashboard")
	second := New("dashboard")

	first.ObserveRefresh("success")

	assert.Equal(t, 1.0, testutil.ToFloat64(first.TokenRefreshTotal.WithLabelValues("success")))
	assert.Equal(t, 0.0, testutil.ToFloat64(second.TokenRefreshTotal.WithLabelValues("success")))
}

func TestObserve_NilSafe(t *testing.T) {
	var m *Metrics

	assert.NotPanics(t, func() {
		m.ObserveHTTP(http.MethodGet, "/api/v1/dashboard", http.StatusOK, time.Millisecond)
		m.ObserveUpstream(http.MethodGet, "/tests/", "200", time.Millisecond)
		m.ObserveRefresh("failure")
		m.ObserveCountdownRefetch("success")
		m.ObserveSessionStore("get", "ok")
		m.SetBackendUp(true)
	})
}

func TestHandler_ExposesCollectors(t *testing.T) {
	m := New("dashboard")
	m.ObserveUpstream(http.MethodPost, "/bookings/create/", "201", 120*time.Millisecond)
	m.SetBackendUp(true)

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, `upstream_requests_total{endpoint="/bookings/create/",method="POST",service="dashboard",status="201"} 1`)
	assert.Contains(t, body, `backend_up{service="dashboard"} 1`)
}
