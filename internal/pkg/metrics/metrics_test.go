package metrics

import (
	"errors"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCollector_ObservePipelineRun(t *testing.T) {
	c := NewCollector("test")

	c.ObservePipelineRun("ok", 2*time.Millisecond, 4)
	c.ObservePipelineRun("ok", time.Millisecond, 0)
	c.ObservePipelineRun("error", time.Millisecond, 0)

	assert.Equal(t, 2.0, testutil.ToFloat64(c.PipelineRunsTotal.WithLabelValues("ok")))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.PipelineRunsTotal.WithLabelValues("error")))
}

func TestCollector_SourceLoadsAndSessions(t *testing.T) {
	c := NewCollector("test")

	c.RecordSourceLoad("cache", nil)
	c.RecordSourceLoad("source", errors.New("boom"))
	c.SetActiveSessions(3)

	assert.Equal(t, 1.0, testutil.ToFloat64(c.SourceLoadsTotal.WithLabelValues("cache", "ok")))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.SourceLoadsTotal.WithLabelValues("source", "error")))
	assert.Equal(t, 3.0, testutil.ToFloat64(c.ActiveSessions))
}

func TestCollector_IndependentRegistries(t *testing.T) {
	a := NewCollector("test")
	b := NewCollector("test")

	a.RecordRegistrationPublished()

	assert.Equal(t, 1.0, testutil.ToFloat64(a.RegistrationsPublished))
	assert.Equal(t, 0.0, testutil.ToFloat64(b.RegistrationsPublished))
}

func TestCollector_Handler(t *testing.T) {
	c := NewCollector("test")
	c.RecordAPIRequest("/api/v1/water-points", "GET", 200, 5*time.Millisecond)

	rec := httptest.NewRecorder()
	c.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))

	require.Equal(t, 200, rec.Code)
	assert.True(t, strings.Contains(rec.Body.String(), `test_api_requests_total{method="GET",route="/api/v1/water-points",status="200"} 1`))
}
