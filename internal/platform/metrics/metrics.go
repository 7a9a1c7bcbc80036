// Package metrics exposes Prometheus instrumentation for the HTTP layer
// and the query pipeline.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// HTTP metrics
	httpRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	httpRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10},
		},
		[]string{"method", "path"},
	)

	httpRequestsInFlight = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "http_requests_in_flight",
			Help: "Number of HTTP requests currently being processed",
		},
	)

	// Pipeline metrics
	queriesProcessed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "queries_processed_total",
			Help: "Total number of natural language queries processed",
		},
		[]string{"query_type"},
	)

	patientsSynthesized = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "patients_synthesized_total",
			Help: "Total number of synthetic patients generated",
		},
	)

	suggestionLookups = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "suggestion_lookups_total",
			Help: "Total number of suggestion prefix lookups",
		},
	)
)

// Handler returns the Prometheus metrics HTTP handler.
func Handler() http.Handler {
	return promhttp.Handler()
}

// Middleware instruments every request with count, duration and
// in-flight gauges. Uses the matched route template as the path label
// to keep cardinality bounded.
func Middleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			httpRequestsInFlight.Inc()
			defer httpRequestsInFlight.Dec()

			err := next(c)

			status := c.Response().Status
			if err != nil {
				if he, ok := err.(*echo.HTTPError); ok {
					status = he.Code
				}
			}

			path := c.Path()
			if path == "" {
				path = "unmatched"
			}

			httpRequestsTotal.WithLabelValues(c.Request().Method, path, strconv.Itoa(status)).Inc()
			httpRequestDuration.WithLabelValues(c.Request().Method, path).Observe(time.Since(start).Seconds())
			return err
		}
	}
}

// RecordQuery records one processed query and the size of the
// population synthesized for it.
func RecordQuery(queryType string, patients int) {
	queriesProcessed.WithLabelValues(queryType).Inc()
	patientsSynthesized.Add(float64(patients))
}

// RecordSuggestionLookup records one suggestion prefix lookup.
func RecordSuggestionLookup() {
	suggestionLookups.Inc()
}
