package worker

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// IngestMetrics tracks scheduled ingest runs.
type IngestMetrics struct {
	runsTotal            *prometheus.CounterVec
	runDurationSeconds   prometheus.Histogram
	itemsIngestedTotal   prometheus.Counter
	lastSuccessTimestamp prometheus.Gauge
	configFallbacksTotal *prometheus.CounterVec
}

var (
	ingestMetricsOnce sync.Once
	ingestMetrics     *IngestMetrics
)

// NewIngestMetrics returns the process-wide ingest metrics.
// シングルトンにして二重登録のpanicを避ける
func NewIngestMetrics() *IngestMetrics {
	ingestMetricsOnce.Do(func() {
		ingestMetrics = &IngestMetrics{
			runsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
				Name: "worker_ingest_runs_total",
				Help: "Total scheduled ingest runs by status (success/failure)",
			}, []string{"status"}),

			runDurationSeconds: promauto.NewHistogram(prometheus.HistogramOpts{
				Name:    "worker_ingest_run_duration_seconds",
				Help:    "Duration of a scheduled ingest run in seconds",
				Buckets: []float64{1, 5, 15, 30, 60, 120, 300},
			}),

			itemsIngestedTotal: promauto.NewCounter(prometheus.CounterOpts{
				Name: "worker_ingest_items_total",
				Help: "Total news items stored by scheduled ingest runs",
			}),

			lastSuccessTimestamp: promauto.NewGauge(prometheus.GaugeOpts{
				Name: "worker_ingest_last_success_timestamp",
				Help: "Unix timestamp of the last successful ingest run",
			}),

			configFallbacksTotal: promauto.NewCounterVec(prometheus.CounterOpts{
				Name: "worker_config_fallbacks_total",
				Help: "Total configuration values replaced by defaults, by field",
			}, []string{"field"}),
		}
	})
	return ingestMetrics
}

// RecordRun counts a finished run; status is "success" or "failure".
func (m *IngestMetrics) RecordRun(status string) {
	m.runsTotal.WithLabelValues(status).Inc()
}

// RecordRunDuration observes how long a run took.
func (m *IngestMetrics) RecordRunDuration(seconds float64) {
	m.runDurationSeconds.Observe(seconds)
}

// RecordItems adds the number of items stored by a successful run.
func (m *IngestMetrics) RecordItems(count int) {
	m.itemsIngestedTotal.Add(float64(count))
}

// RecordLastSuccess stamps the last successful run at the current time.
func (m *IngestMetrics) RecordLastSuccess() {
	m.lastSuccessTimestamp.SetToCurrentTime()
}

// RecordConfigFallback counts a configuration value replaced by its default.
func (m *IngestMetrics) RecordConfigFallback(field string) {
	m.configFallbacksTotal.WithLabelValues(field).Inc()
}
