package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCountsExposed(t *testing.T) {
	m := NewMetrics("inversion-test")
	m.CountsTotal.WithLabelValues("tree", "OK").Inc()
	m.CountsTotal.WithLabelValues("tree", "OK").Inc()
	m.SequenceLength.Observe(8)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.CountsTotal.WithLabelValues("tree", "OK")))

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `inversion_counts_total{result="OK",strategy="tree"} 2`)
	assert.Contains(t, rec.Body.String(), "inversion_sequence_length_count 1")
}

func TestRegisterOptionalMetricsIsIdempotent(t *testing.T) {
	m := NewMetrics("inversion-test")

	m.RegisterBuildInfo("", "v1")
	m.RegisterBuildInfo("other", "v2")
	assert.Equal(t, 1.0, testutil.ToFloat64(m.BuildInfo.WithLabelValues("unknown", "v1")))

	m.RegisterRequestSizeMetrics()
	first := m.HTTPRequestSizeBytes
	m.RegisterRequestSizeMetrics()
	assert.Same(t, first, m.HTTPRequestSizeBytes)

	var nilMetrics *Metrics
	assert.NotPanics(t, func() { nilMetrics.RegisterBuildInfo("x", "y") })
}

func TestRegisterCacheEntries(t *testing.T) {
	m := NewMetrics("inversion-test")
	entries := 0
	m.RegisterCacheEntries(func() int { return entries })
	entries = 3

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "inversion_cache_entries 3")

	var nilMetrics *Metrics
	nilMetrics.RegisterCacheEntries(func() int { return 1 })
}
