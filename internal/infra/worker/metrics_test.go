package worker

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestNewIngestMetrics_Singleton(t *testing.T) {
	a := NewIngestMetrics()
	b := NewIngestMetrics()
	assert.Same(t, a, b)
}

func TestIngestMetrics_Record(t *testing.T) {
	m := NewIngestMetrics()

	before := testutil.ToFloat64(m.runsTotal.WithLabelValues("success"))
	m.RecordRun("success")
	assert.Equal(t, before+1, testutil.ToFloat64(m.runsTotal.WithLabelValues("success")))

	itemsBefore := testutil.ToFloat64(m.itemsIngestedTotal)
	m.RecordItems(5)
	assert.Equal(t, itemsBefore+5, testutil.ToFloat64(m.itemsIngestedTotal))

	m.RecordRunDuration(1.5)
	m.RecordLastSuccess()
	assert.Greater(t, testutil.ToFloat64(m.lastSuccessTimestamp), float64(0))

	fallbacksBefore := testutil.ToFloat64(m.configFallbacksTotal.WithLabelValues("count"))
	m.RecordConfigFallback("count")
	assert.Equal(t, fallbacksBefore+1, testutil.ToFloat64(m.configFallbacksTotal.WithLabelValues("count")))
}
