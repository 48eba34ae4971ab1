package telemetry

import (
	"sync"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"
)

var (
	registry     *prometheus.Registry
	registryOnce sync.Once

	// Snapshot refresh metrics
	RefreshTotal    *prometheus.CounterVec
	RowsNormalized  prometheus.Counter
	SnapshotRecords prometheus.Gauge

	// HTTP metrics
	HTTPRequestsTotal *prometheus.CounterVec
)

// Init initializes all metrics and registers them with Prometheus.
func Init(log *logrus.Entry) {
	registryOnce.Do(func() {
		registry = prometheus.NewRegistry()

		RefreshTotal = prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "callmetrics_refresh_total",
				Help: "Total number of snapshot refresh attempts",
			},
			[]string{"source", "status"},
		)

		RowsNormalized = prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "callmetrics_rows_normalized_total",
				Help: "Total number of raw rows normalized",
			},
		)

		SnapshotRecords = prometheus.NewGauge(
			prometheus.GaugeOpts{
				Name: "callmetrics_snapshot_records",
				Help: "Number of call records in the current snapshot",
			},
		)

		HTTPRequestsTotal = prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "callmetrics_http_requests_total",
				Help: "Total number of HTTP requests served",
			},
			[]string{"path", "status"},
		)

		registry.MustRegister(
			RefreshTotal,
			RowsNormalized,
			SnapshotRecords,
			HTTPRequestsTotal,
		)

		log.Info("prometheus metrics initialized")
	})
}

// RecordRefresh records one refresh attempt.
func RecordRefresh(source, status string) {
	if RefreshTotal != nil {
		RefreshTotal.WithLabelValues(source, status).Inc()
	}
}

// RecordSnapshot records the result of a successful refresh.
func RecordSnapshot(rows int) {
	if RowsNormalized != nil {
		RowsNormalized.Add(float64(rows))
	}
	if SnapshotRecords != nil {
		SnapshotRecords.Set(float64(rows))
	}
}

// RecordHTTPRequest records one served HTTP request.
func RecordHTTPRequest(path, status string) {
	if HTTPRequestsTotal != nil {
		HTTPRequestsTotal.WithLabelValues(path, status).Inc()
	}
}

// Handler returns the scrape endpoint as a fiber handler.
func Handler() fiber.Handler {
	return adaptor.HTTPHandler(promhttp.HandlerFor(
		registry,
		promhttp.HandlerOpts{Registry: registry},
	))
}
