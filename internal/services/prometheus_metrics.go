package services

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// PrometheusMetrics records operational metrics to the default prometheus
// registry, exposed via /metrics
type PrometheusMetrics struct {
	transactionOperations *prometheus.CounterVec
	statisticsRequests    *prometheus.CounterVec
	statisticsDuration    prometheus.Histogram
}

func NewPrometheusMetrics() MetricsRecorderInterface {
	return &PrometheusMetrics{
		transactionOperations: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "transaction_operations_total",
				Help: "Total number of transaction mutations by operation and status",
			},
			[]string{"operation", "status"},
		),
		statisticsRequests: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "statistics_requests_total",
				Help: "Total number of statistics computations by status",
			},
			[]string{"status"},
		),
		statisticsDuration: promauto.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "statistics_computation_duration_milliseconds",
				Help:    "Statistics computation duration in milliseconds",
				Buckets: prometheus.ExponentialBuckets(1, 2, 12),
			},
		),
	}
}

func (m *PrometheusMetrics) RecordTransactionOperation(operation, status string) {
	m.transactionOperations.WithLabelValues(operation, status).Inc()
}

func (m *PrometheusMetrics) RecordStatisticsRequest(status string) {
	m.statisticsRequests.WithLabelValues(status).Inc()
}

func (m *PrometheusMetrics) RecordStatisticsDuration(duration time.Duration) {
	m.statisticsDuration.Observe(float64(duration.Milliseconds()))
}

// NoopMetrics is a metrics recorder that discards everything. Used in
// tests where the default prometheus registry would reject duplicate
// collector registration.
type NoopMetrics struct{}

func NewNoopMetrics() MetricsRecorderInterface { return &NoopMetrics{} }

func (m *NoopMetrics) RecordTransactionOperation(operation, status string) {}
func (m *NoopMetrics) RecordStatisticsRequest(status string)               {}
func (m *NoopMetrics) RecordStatisticsDuration(duration time.Duration)     {}
