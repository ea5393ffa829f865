package middleware

import (
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus"
)

// PrometheusMiddleware records request counts, latencies and in-flight requests.
type PrometheusMiddleware struct {
	requestCount    *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
	inFlight        prometheus.Gauge
	skip            map[string]struct{}
}

// NewPrometheusMiddleware registers the HTTP collectors on reg. Requests to
// skipPaths are not recorded; /metrics is always skipped.
func NewPrometheusMiddleware(reg prometheus.Registerer, skipPaths ...string) (*PrometheusMiddleware, error) {
	m := &PrometheusMiddleware{
		requestCount: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "http_requests_total",
				Help: "Total number of HTTP requests processed.",
			},
			[]string{"method", "path", "status"},
		),
		requestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name: "http_request_duration_seconds",
				Help: "HTTP request latency. Summarize and generate calls wait on remote functions.",
				// Remote function calls dominate; the default buckets stop at 10s.
				Buckets: []float64{0.005, 0.025, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30, 60},
			},
			[]string{"method", "path"},
		),
		inFlight: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "http_requests_in_flight",
			Help: "HTTP requests currently being served.",
		}),
		skip: map[string]struct{}{"/metrics": {}},
	}
	for _, p := range skipPaths {
		m.skip[p] = struct{}{}
	}

	for _, c := range []prometheus.Collector{m.requestCount, m.requestDuration, m.inFlight} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	return m, nil
}

// Handler returns the fiber middleware handler.
func (m *PrometheusMiddleware) Handler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if _, ok := m.skip[c.Path()]; ok {
			return c.Next()
		}

		m.inFlight.Inc()
		defer m.inFlight.Dec()

		start := time.Now()
		err := c.Next()

		// Route pattern (e.g. /api/v1/claims/:id) keeps label cardinality bounded.
		path := c.Route().Path
		if path == "" {
			path = c.Path()
		}

		status := c.Response().StatusCode()
		if err != nil {
			status = fiber.StatusInternalServerError
			if fiberErr, ok := err.(*fiber.Error); ok {
				status = fiberErr.Code
			}
		}

		m.requestCount.WithLabelValues(c.Method(), path, strconv.Itoa(status)).Inc()
		m.requestDuration.WithLabelValues(c.Method(), path).Observe(time.Since(start).Seconds())

		return err
	}
}
