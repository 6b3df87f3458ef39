package metrics

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"identity/internal/domain/service"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetrics_RecordAuthentication(t *testing.T) {
	m := New()

	m.RecordAuthentication(service.OutcomeCreated, 10*time.Millisecond)
	m.RecordAuthentication(service.OutcomeFound, 5*time.Millisecond)
	m.RecordAuthentication(service.OutcomeFound, 5*time.Millisecond)

	assert.InDelta(t, 1, testutil.ToFloat64(m.AuthAttempts.WithLabelValues(service.OutcomeCreated)), 0)
	assert.InDelta(t, 2, testutil.ToFloat64(m.AuthAttempts.WithLabelValues(service.OutcomeFound)), 0)
	assert.Equal(t, 2, testutil.CollectAndCount(m.AuthDuration))
}

func TestMetrics_Handler(t *testing.T) {
	m := New()
	m.RecordTokenCheck(service.TokenOutcomeValid)

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	body, err := io.ReadAll(rec.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), `identity_token_checks_total{outcome="valid"} 1`)
	assert.Contains(t, string(body), "go_goroutines")
}
