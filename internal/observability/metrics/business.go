// Package metrics exposes Prometheus business metrics for the news feed.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	newsItemsTotal = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "news_items_total",
			Help: "Number of news summaries currently stored, by category",
		},
		[]string{"category"},
	)

	newsIngestedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "news_ingested_total",
			Help: "Total number of news summaries written to the store",
		},
		[]string{"operation"}, // seed | ingest
	)

	ingestFailuresTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "news_ingest_failures_total",
			Help: "Total number of failed ingest operations",
		},
		[]string{"reason"}, // collaborator | store | validation
	)

	collaboratorDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "collaborator_request_duration_seconds",
			Help:    "Time taken by a summarization collaborator call",
			Buckets: prometheus.ExponentialBuckets(0.5, 2, 10),
		},
	)
)

// RecordIngested records news summaries written by an operation ("seed" or "ingest").
func RecordIngested(operation string, count int) {
	newsIngestedTotal.WithLabelValues(operation).Add(float64(count))
}

// RecordIngestFailure records a failed ingest with its failure reason.
func RecordIngestFailure(reason string) {
	ingestFailuresTotal.WithLabelValues(reason).Inc()
}

// RecordCollaboratorDuration records the duration of a collaborator call.
func RecordCollaboratorDuration(d time.Duration) {
	collaboratorDuration.Observe(d.Seconds())
}

// UpdateNewsTotals updates the per-category stored-record gauges.
func UpdateNewsTotals(counts map[string]int64) {
	for category, count := range counts {
		newsItemsTotal.WithLabelValues(category).Set(float64(count))
	}
}
