// Package monitoring exposes Prometheus instrumentation for the
// quantitative engines.
package monitoring

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// Backtest metrics
	backtestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "quantlab_backtests_total",
			Help: "Total number of backtests run",
		},
		[]string{"symbol"},
	)

	backtestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "quantlab_backtest_duration_seconds",
			Help:    "Distribution of backtest run durations",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"kind"},
	)

	// Walk-forward metrics
	walkForwardWindowsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "quantlab_walkforward_windows_total",
			Help: "Total number of walk-forward windows evaluated",
		},
		[]string{"symbol"},
	)

	// Portfolio metrics
	optimizationsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "quantlab_optimizations_total",
			Help: "Total number of portfolio optimizations run",
		},
		[]string{"scheme"},
	)

	optimizationFailuresTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "quantlab_optimization_failures_total",
			Help: "Total number of portfolio optimizations that failed to converge",
		},
		[]string{"scheme"},
	)
)

func init() {
	prometheus.MustRegister(backtestsTotal)
	prometheus.MustRegister(backtestDuration)
	prometheus.MustRegister(walkForwardWindowsTotal)
	prometheus.MustRegister(optimizationsTotal)
	prometheus.MustRegister(optimizationFailuresTotal)
}

// MetricsHandler serves the Prometheus metrics endpoint.
type MetricsHandler struct{}

// NewMetricsHandler creates a new metrics handler.
func NewMetricsHandler() *MetricsHandler {
	return &MetricsHandler{}
}

// ServeHTTP serves the Prometheus metrics endpoint.
func (m *MetricsHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	promhttp.Handler().ServeHTTP(w, r)
}

// RecordBacktest records a completed backtest run.
func RecordBacktest(symbol string, duration time.Duration) {
	backtestsTotal.WithLabelValues(symbol).Inc()
	backtestDuration.WithLabelValues("single").Observe(duration.Seconds())
}

// RecordWalkForward records a completed walk-forward run.
func RecordWalkForward(symbol string, windows int, duration time.Duration) {
	walkForwardWindowsTotal.WithLabelValues(symbol).Add(float64(windows))
	backtestDuration.WithLabelValues("walkforward").Observe(duration.Seconds())
}

// RecordOptimization records a portfolio optimization attempt.
func RecordOptimization(scheme string, failed bool) {
	optimizationsTotal.WithLabelValues(scheme).Inc()
	if failed {
		optimizationFailuresTotal.WithLabelValues(scheme).Inc()
	}
}
