// Package observability provides Prometheus metrics for the application.
package observability

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "vidpeek"

// Resolve results used as metric labels.
const (
	ResolveResultOK         = "ok"
	ResolveResultEmptyURL   = "empty_url"
	ResolveResultInvalidURL = "invalid_url"
	ResolveResultFailed     = "failed"
)

// Metrics holds all application metrics. A nil *Metrics records nothing.
type Metrics struct {
	gatherer prometheus.Gatherer

	// Resolver metrics
	ResolvesTotal   *prometheus.CounterVec
	ResolveDuration prometheus.Histogram

	// Transfer metrics
	TransfersStarted   prometheus.Counter
	TransfersCompleted prometheus.Counter
	TransfersFailed    prometheus.Counter
	TransfersInFlight  prometheus.Gauge
	TransferDuration   prometheus.Histogram

	// Registry metrics
	TrackedTransfers      prometheus.Gauge
	CleanupTransfersTotal prometheus.Counter

	// HTTP metrics
	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec
	HTTPResponseSize    *prometheus.HistogramVec

	// Downloader metrics
	DownloaderErrors *prometheus.CounterVec
}

// New creates all application metrics and registers them with reg.
// A nil reg uses a fresh registry.
func New(reg *prometheus.Registry) *Metrics {
	if reg == nil {
		reg = prometheus.NewRegistry()
	}

	factory := promauto.With(reg)

	metrics := &Metrics{
		gatherer: reg,

		// Resolver metrics
		ResolvesTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "resolver",
			Name:      "resolves_total",
			Help:      "Total number of resolve calls by result",
		}, []string{"result"}),
		ResolveDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "resolver",
			Name:      "duration_seconds",
			Help:      "Histogram of resolve duration in seconds",
			Buckets:   []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
		}),

		// Transfer metrics
		TransfersStarted: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "transfers",
			Name:      "started_total",
			Help:      "Total number of transfers started",
		}),
		TransfersCompleted: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "transfers",
			Name:      "completed_total",
			Help:      "Total number of transfers completed successfully",
		}),
		TransfersFailed: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "transfers",
			Name:      "failed_total",
			Help:      "Total number of transfers that failed",
		}),
		TransfersInFlight: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "transfers",
			Name:      "in_flight",
			Help:      "Number of transfers currently in flight",
		}),
		TransferDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "transfers",
			Name:      "duration_seconds",
			Help:      "Histogram of transfer duration in seconds",
			Buckets:   []float64{0.5, 1, 2, 3, 5, 10},
		}),

		// Registry metrics
		TrackedTransfers: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "registry",
			Name:      "transfers_current",
			Help:      "Current number of tracked transfers",
		}),
		CleanupTransfersTotal: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "registry",
			Name:      "cleanup_transfers_total",
			Help:      "Total number of expired transfers dropped",
		}),

		// HTTP metrics
		HTTPRequestsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total number of HTTP requests",
		}, []string{"method", "path", "status"}),
		HTTPRequestDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "Histogram of HTTP request duration in seconds",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "path"}),
		HTTPResponseSize: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "response_size_bytes",
			Help:      "Histogram of HTTP response sizes in bytes",
			Buckets:   []float64{100, 1000, 10000, 100000},
		}, []string{"method", "path"}),

		// Downloader metrics
		DownloaderErrors: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "downloader",
			Name:      "errors_total",
			Help:      "Total number of transfer errors",
		}, []string{"downloader", "error_type"}),
	}

	return metrics
}

// Handler returns the Prometheus HTTP handler for the metrics registry.
func (m *Metrics) Handler() http.Handler {
	if m == nil {
		return promhttp.Handler()
	}

	return promhttp.HandlerFor(m.gatherer, promhttp.HandlerOpts{})
}

// ResolveTimer returns a function to record resolve duration.
func (m *Metrics) ResolveTimer() func() {
	start := time.Now()

	return func() {
		if m == nil {
			return
		}

		m.ResolveDuration.Observe(time.Since(start).Seconds())
	}
}

// TransferTimer returns a function to record transfer duration.
func (m *Metrics) TransferTimer() func() {
	start := time.Now()

	return func() {
		if m == nil {
			return
		}

		m.TransferDuration.Observe(time.Since(start).Seconds())
	}
}

// RecordHTTPRequest records HTTP request metrics.
func (m *Metrics) RecordHTTPRequest(method, path string, status int, duration time.Duration, size int) {
	if m == nil {
		return
	}

	statusStr := strconv.Itoa(status)
	m.HTTPRequestsTotal.WithLabelValues(method, path, statusStr).Inc()
	m.HTTPRequestDuration.WithLabelValues(method, path).Observe(duration.Seconds())
	m.HTTPResponseSize.WithLabelValues(method, path).Observe(float64(size))
}

// RecordResolve increments the resolve counter for result.
func (m *Metrics) RecordResolve(result string) {
	if m == nil {
		return
	}

	m.ResolvesTotal.WithLabelValues(result).Inc()
}

// RecordTransferStarted increments the transfers started counter.
func (m *Metrics) RecordTransferStarted() {
	if m == nil {
		return
	}

	m.TransfersStarted.Inc()
	m.TransfersInFlight.Inc()
}

// RecordTransferCompleted records a completed transfer.
func (m *Metrics) RecordTransferCompleted() {
	if m == nil {
		return
	}

	m.TransfersCompleted.Inc()
	m.TransfersInFlight.Dec()
}

// RecordTransferFailed records a failed transfer.
func (m *Metrics) RecordTransferFailed() {
	if m == nil {
		return
	}

	m.TransfersFailed.Inc()
	m.TransfersInFlight.Dec()
}

// RecordDownloaderError records a transfer error by kind.
func (m *Metrics) RecordDownloaderError(downloader, errorType string) {
	if m == nil {
		return
	}

	m.DownloaderErrors.WithLabelValues(downloader, errorType).Inc()
}

// RecordCleanup records how many expired transfers were dropped.
func (m *Metrics) RecordCleanup(transfers int) {
	if m == nil {
		return
	}

	m.CleanupTransfersTotal.Add(float64(transfers))
}

// SetTrackedTransfers sets the number of tracked transfers.
func (m *Metrics) SetTrackedTransfers(count int) {
	if m == nil {
		return
	}

	m.TrackedTransfers.Set(float64(count))
}
