package collaborator

import (
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// ItemMetricsRecorder abstracts metrics recording for collaborator providers,
// so unit tests can inject a mock instead of Prometheus.
type ItemMetricsRecorder interface {
	// RecordItems records how many items a provider produced in one call.
	RecordItems(provider string, count int)

	// RecordFailure increments the failure counter for a provider.
	RecordFailure(provider string)

	// RecordSummaryLength records the length of one item summary in runes.
	RecordSummaryLength(length int)

	// RecordDuration records the time of one upstream API request.
	RecordDuration(provider string, duration time.Duration)
}

// PrometheusItemMetrics is the production ItemMetricsRecorder.
type PrometheusItemMetrics struct {
	itemsCounter    *prometheus.CounterVec
	failureCounter  *prometheus.CounterVec
	lengthHistogram prometheus.Histogram
	durationVec     *prometheus.HistogramVec
}

var (
	itemMetricsInstance *PrometheusItemMetrics
	itemMetricsOnce     sync.Once
)

// NewPrometheusItemMetrics returns the shared Prometheus recorder.
// シングルトンにして二重登録のpanicを避ける
func NewPrometheusItemMetrics() *PrometheusItemMetrics {
	itemMetricsOnce.Do(func() {
		itemMetricsInstance = &PrometheusItemMetrics{
			itemsCounter: promauto.NewCounterVec(prometheus.CounterOpts{
				Name: "collaborator_items_produced_total",
				Help: "Total candidate news items produced, by provider",
			}, []string{"provider"}),
			failureCounter: promauto.NewCounterVec(prometheus.CounterOpts{
				Name: "collaborator_failures_total",
				Help: "Total failed collaborator calls, by provider",
			}, []string{"provider"}),
			lengthHistogram: promauto.NewHistogram(prometheus.HistogramOpts{
				Name:    "collaborator_summary_length_characters",
				Help:    "Distribution of item summary lengths in characters (Unicode runes)",
				Buckets: []float64{50, 100, 200, 300, 400, 600, 1000, 2000},
			}),
			durationVec: promauto.NewHistogramVec(prometheus.HistogramOpts{
				Name:    "collaborator_upstream_request_duration_seconds",
				Help:    "Time taken by one upstream provider request",
				Buckets: prometheus.ExponentialBuckets(0.5, 2, 10),
			}, []string{"provider"}),
		}
	})
	return itemMetricsInstance
}

// RecordItems implements ItemMetricsRecorder.
func (p *PrometheusItemMetrics) RecordItems(provider string, count int) {
	p.itemsCounter.WithLabelValues(provider).Add(float64(count))
}

// RecordFailure implements ItemMetricsRecorder.
func (p *PrometheusItemMetrics) RecordFailure(provider string) {
	p.failureCounter.WithLabelValues(provider).Inc()
}

// RecordSummaryLength implements ItemMetricsRecorder.
func (p *PrometheusItemMetrics) RecordSummaryLength(length int) {
	p.lengthHistogram.Observe(float64(length))
}

// RecordDuration implements ItemMetricsRecorder.
func (p *PrometheusItemMetrics) RecordDuration(provider string, duration time.Duration) {
	p.durationVec.WithLabelValues(provider).Observe(duration.Seconds())
}
