package metrics

import (
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "fee_tracker"

// Fee estimation outcomes.
const (
	OutcomeLive    = "live"
	OutcomeDefault = "default"
	OutcomeError   = "error"
)

var (
	FeeEstimations = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "fee_estimations_total",
		Help:      "Fee estimations by chain and outcome (live, default, error).",
	}, []string{"chain", "outcome"})

	FeeEstimationDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "fee_estimation_duration_seconds",
		Help:      "Latency of live fee estimation per chain.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"chain"})

	StatusChecks = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "tx_status_checks_total",
		Help:      "Status checks by chain and verdict.",
	}, []string{"chain", "status"})

	StatusCheckErrors = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "tx_status_check_errors_total",
		Help:      "Swallowed status check errors by chain.",
	}, []string{"chain"})

	ActiveWatches = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "tx_status_active_watches",
		Help:      "Watch sessions currently running.",
	})
)

var registerOnce sync.Once

// MustRegisterMetrics registers all collectors with the default registerer. Safe to call more than once.
func MustRegisterMetrics() {
	registerOnce.Do(func() {
		prometheus.MustRegister(FeeEstimations, FeeEstimationDuration, StatusChecks, StatusCheckErrors, ActiveWatches)
	})
}

// ObserveFeeEstimation records the outcome and latency of a fee estimation.
func ObserveFeeEstimation(chain, outcome string, started time.Time) {
	FeeEstimations.WithLabelValues(chain, outcome).Inc()
	if outcome == OutcomeLive {
		FeeEstimationDuration.WithLabelValues(chain).Observe(time.Since(started).Seconds())
	}
}
