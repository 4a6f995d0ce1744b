package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMetricsApp(t *testing.T) (*fiber.App, *PrometheusMiddleware, *prometheus.Registry) {
	t.Helper()
	reg := prometheus.NewRegistry()
	m, err := NewPrometheusMiddleware(reg)
	require.NoError(t, err)

	app := fiber.New()
	app.Use(m.Handler())
	app.Get("/metrics", func(c *fiber.Ctx) error { return c.SendStatus(fiber.StatusOK) })
	app.Get("/api/v1/documents/:id", func(c *fiber.Ctx) error { return c.SendStatus(fiber.StatusOK) })
	app.Post("/api/v1/documents/:id/approve", func(c *fiber.Ctx) error {
		if c.Params("id") == "a1" {
			return fiber.NewError(fiber.StatusConflict, "already approved")
		}
		return c.SendStatus(fiber.StatusOK)
	})
	app.Get("/api/v1/activity/export", func(c *fiber.Ctx) error { return errors.New("disk full") })
	return app, m, reg
}

// durationSamples returns how many requests the latency histogram observed
// for one method and route.
func durationSamples(t *testing.T, reg *prometheus.Registry, method, path string) uint64 {
	t.Helper()
	mfs, err := reg.Gather()
	require.NoError(t, err)
	for _, mf := range mfs {
		if mf.GetName() != "http_request_duration_seconds" {
			continue
		}
		for _, metric := range mf.GetMetric() {
			labels := map[string]string{}
			for _, lp := range metric.GetLabel() {
				labels[lp.GetName()] = lp.GetValue()
			}
			if labels["method"] == method && labels["path"] == path {
				return metric.GetHistogram().GetSampleCount()
			}
		}
	}
	return 0
}

func TestPrometheusMiddleware_RoutePatterns(t *testing.T) {
	app, m, reg := newMetricsApp(t)

	for _, target := range []string{"/api/v1/documents/p1", "/api/v1/documents/r1", "/api/v1/documents/a1"} {
		_, err := app.Test(httptest.NewRequest(http.MethodGet, target, nil))
		require.NoError(t, err)
	}
	for _, id := range []string{"p1", "a1"} {
		_, err := app.Test(httptest.NewRequest(http.MethodPost, "/api/v1/documents/"+id+"/approve", nil))
		require.NoError(t, err)
	}

	assert.Equal(t, 3.0, testutil.ToFloat64(m.requestCount.WithLabelValues(http.MethodGet, "/api/v1/documents/:id", "200")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.requestCount.WithLabelValues(http.MethodPost, "/api/v1/documents/:id/approve", "200")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.requestCount.WithLabelValues(http.MethodPost, "/api/v1/documents/:id/approve", "409")))

	// One latency series per method and route, whatever the status.
	assert.Equal(t, 2, testutil.CollectAndCount(m.requestDuration))
	assert.Equal(t, uint64(3), durationSamples(t, reg, http.MethodGet, "/api/v1/documents/:id"))
	assert.Equal(t, uint64(2), durationSamples(t, reg, http.MethodPost, "/api/v1/documents/:id/approve"))
	assert.Zero(t, durationSamples(t, reg, http.MethodGet, "/api/v1/documents/p1"))
}

func TestPrometheusMiddleware_UnhandledErrorCountsAs500(t *testing.T) {
	app, m, reg := newMetricsApp(t)

	_, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/v1/activity/export", nil))
	require.NoError(t, err)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.requestCount.WithLabelValues(http.MethodGet, "/api/v1/activity/export", "500")))
	assert.Equal(t, uint64(1), durationSamples(t, reg, http.MethodGet, "/api/v1/activity/export"))
}

func TestPrometheusMiddleware_SkipsMetricsEndpoint(t *testing.T) {
	app, m, _ := newMetricsApp(t)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	assert.Zero(t, testutil.CollectAndCount(m.requestCount))
	assert.Zero(t, testutil.CollectAndCount(m.requestDuration))
}

func TestNewPrometheusMiddleware_DuplicateRegistration(t *testing.T) {
	reg := prometheus.NewRegistry()
	_, err := NewPrometheusMiddleware(reg)
	require.NoError(t, err)

	_, err = NewPrometheusMiddleware(reg)
	var already prometheus.AlreadyRegisteredError
	assert.ErrorAs(t, err, &already)
}
