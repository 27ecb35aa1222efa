package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// MetricsRegistry holds all Prometheus metrics for Techlog
type MetricsRegistry struct {
	// HTTP Metrics
	HTTPRequestsTotal    prometheus.CounterVec
	HTTPRequestDuration  prometheus.HistogramVec
	HTTPRequestsInFlight prometheus.GaugeVec

	// Database Metrics
	DBQueriesTotal  prometheus.CounterVec
	DBQueryDuration prometheus.HistogramVec

	// Cache Metrics
	CacheHitsTotal   prometheus.CounterVec
	CacheMissesTotal prometheus.CounterVec

	// Business Metrics
	DailyLogsCreatedTotal   prometheus.Counter
	LedgerSweepsTotal       prometheus.CounterVec
	LedgerSweepDuration     prometheus.Histogram
	LedgerRecordsRecomputed prometheus.Counter
	ReconcileQueueDepth     prometheus.GaugeVec
}

// NewMetricsRegistry initializes and returns a new MetricsRegistry with all metrics
func NewMetricsRegistry() *MetricsRegistry {
	return &MetricsRegistry{
		// HTTP Metrics
		HTTPRequestsTotal: *promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "techlog_http_requests_total",
				Help: "Total HTTP requests processed by endpoint, method, and status code",
			},
			[]string{"endpoint", "method", "status_code"},
		),
		HTTPRequestDuration: *promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "techlog_http_request_duration_seconds",
				Help:    "HTTP request latency distribution in seconds",
				Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
			},
			[]string{"endpoint", "method"},
		),
		HTTPRequestsInFlight: *promauto.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "techlog_http_requests_in_flight",
				Help: "Number of HTTP requests currently being processed",
			},
			[]string{"endpoint"},
		),

		// Database Metrics
		DBQueriesTotal: *promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "techlog_db_queries_total",
				Help: "Total database queries by operation type",
			},
			[]string{"query_type"},
		),
		DBQueryDuration: *promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "techlog_db_query_duration_seconds",
				Help:    "Database query execution time in seconds",
				Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
			},
			[]string{"query_type"},
		),

		// Cache Metrics
		CacheHitsTotal: *promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "techlog_cache_hits_total",
				Help: "Total cache hits by cache key pattern",
			},
			[]string{"cache_key_pattern"},
		),
		CacheMissesTotal: *promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "techlog_cache_misses_total",
				Help: "Total cache misses by cache key pattern",
			},
			[]string{"cache_key_pattern"},
		),

		// Business Metrics
		DailyLogsCreatedTotal: promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "techlog_daily_logs_created_total",
				Help: "Total daily log records created",
			},
		),
		LedgerSweepsTotal: *promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "techlog_ledger_sweeps_total",
				Help: "Total ledger recompute sweeps by trigger",
			},
			[]string{"trigger"},
		),
		LedgerSweepDuration: promauto.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "techlog_ledger_sweep_duration_seconds",
				Help:    "Ledger recompute sweep execution time in seconds",
				Buckets: []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 5, 10, 30},
			},
		),
		LedgerRecordsRecomputed: promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "techlog_ledger_records_recomputed_total",
				Help: "Total daily log rows rewritten by recompute sweeps",
			},
		),
		ReconcileQueueDepth: *promauto.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "techlog_reconcile_queue_depth",
				Help: "Pending dirty ranges per organization stream",
			},
			[]string{"organization_id"},
		),
	}
}
