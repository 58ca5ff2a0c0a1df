package health

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/wyfcoding/inversion/algorithm/inversion"
	"github.com/wyfcoding/inversion/metrics"
	"github.com/wyfcoding/inversion/service"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func serve(t *testing.T, h gin.HandlerFunc) (int, map[string]any) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/healthz", h)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/healthz", nil))

	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return w.Code, body
}

func TestHandlerUp(t *testing.T) {
	m := metrics.NewMetrics("health-test")
	svc := service.New(service.Options{}, nil, m, nil)
	h := Handler("inversion", map[string]Checker{"counter": CounterChecker(svc)})

	for range 3 {
		code, body := serve(t, h)
		assert.Equal(t, http.StatusOK, code)
		assert.Equal(t, "UP", body["status"])
		assert.Equal(t, "inversion", body["service"])
	}

	// 自检不应出现在业务指标中。
	assert.Equal(t, 0, testutil.CollectAndCount(m.CountsTotal))
	assert.Equal(t, 0.0, testutil.ToFloat64(m.CountsTotal.WithLabelValues("tree", "OK")))
}

func TestCounterCheckerFenwick(t *testing.T) {
	svc := service.New(service.Options{Strategy: inversion.StrategyFenwick}, nil, nil, nil)
	assert.NoError(t, CounterChecker(svc)())
}

func TestHandlerDown(t *testing.T) {
	code, body := serve(t, Handler("inversion", map[string]Checker{
		"ok":     func() error { return nil },
		"broken": func() error { return errors.New("boom") },
	}))

	assert.Equal(t, http.StatusServiceUnavailable, code)
	assert.Equal(t, "DOWN", body["status"])
	assert.Equal(t, map[string]any{"broken": "boom"}, body["failures"])
}

func TestCounterCheckerNilService(t *testing.T) {
	assert.Error(t, CounterChecker(nil)())
}
