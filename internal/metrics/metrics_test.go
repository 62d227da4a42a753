package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func scrape(t *testing.T, m *Metrics) string {
	t.Helper()
	w := httptest.NewRecorder()
	m.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, w.Code)
	return w.Body.String()
}

func TestCountWrite(t *testing.T) {
	m := New()

	m.CountWrite(OpCreate, OutcomeCommitted)
	m.CountWrite(OpCreate, OutcomeCommitted)
	m.CountWrite(OpCreate, OutcomeInvalid)

	body := scrape(t, m)
	assert.Contains(t, body, `isdalog_catch_writes_total{op="create",outcome="committed"} 2`)
	assert.Contains(t, body, `isdalog_catch_writes_total{op="create",outcome="invalid"} 1`)
	assert.NotContains(t, body, `op="delete"`)
}

func TestNilMetricsIsNoop(t *testing.T) {
	var m *Metrics

	assert.NotPanics(t, func() {
		m.CountWrite(OpUpdate, OutcomeFailed)
		m.ObserveRequest(http.MethodGet, "/", http.StatusOK, time.Millisecond)
	})
}

func TestHandler_ExposesMetrics(t *testing.T) {
	m := New()
	m.CountWrite(OpDelete, OutcomeNotFound)
	m.ObserveRequest(http.MethodGet, "/", http.StatusOK, 5*time.Millisecond)
	m.ObserveRequest(http.MethodGet, "", http.StatusNotFound, time.Millisecond)

	body := scrape(t, m)
	assert.Contains(t, body, `isdalog_catch_writes_total{op="delete",outcome="not_found"} 1`)
	assert.Contains(t, body, `isdalog_http_request_duration_seconds_count{method="GET",route="/",status="200"} 1`)
	assert.Contains(t, body, `route="unmatched"`)
	assert.Contains(t, body, "go_goroutines")
}
