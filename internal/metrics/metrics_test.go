package metrics_test

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"routeview/internal/metrics"
)

func TestNewMetrics_RegistersOnGivenRegistry(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := metrics.NewMetrics(reg)

	m.Passes.Inc()
	m.ViewEvents.WithLabelValues("move").Add(3)

	assert.InDelta(t, 1, testutil.ToFloat64(m.Passes), 0)
	assert.InDelta(t, 3, testutil.ToFloat64(m.ViewEvents.WithLabelValues("move")), 0)

	assert.Panics(t, func() { metrics.NewMetrics(reg) }, "names are registered once per registry")
	assert.NotPanics(t, func() { metrics.Nop(); metrics.Nop() })
}

func TestServer_ExposesMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := metrics.NewMetrics(reg)
	m.ActiveBindings.Set(3)

	srv := httptest.NewServer(metrics.NewServer(":0", reg).Handler)
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/metrics")
	require.NoError(t, err)
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(body), "routeview_active_bindings 3")
}
