package metrics_test

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"

	"newsbrief/internal/observability/metrics"
)

// gather returns the metric family with the given name, or nil.
func gather(t *testing.T, name string) *dto.MetricFamily {
	t.Helper()
	families, err := prometheus.DefaultGatherer.Gather()
	if err != nil {
		t.Fatalf("gather: %v", err)
	}
	for _, mf := range families {
		if mf.GetName() == name {
			return mf
		}
	}
	return nil
}

func TestRecordIngested(t *testing.T) {
	metrics.RecordIngested("seed", 5)

	mf := gather(t, "news_ingested_total")
	if mf == nil {
		t.Fatal("news_ingested_total not registered")
	}

	var found bool
	for _, m := range mf.GetMetric() {
		for _, l := range m.GetLabel() {
			if l.GetName() == "operation" && l.GetValue() == "seed" {
				found = true
				if m.GetCounter().GetValue() < 5 {
					t.Errorf("seed counter = %v, want >= 5", m.GetCounter().GetValue())
				}
			}
		}
	}
	if !found {
		t.Fatal("no seed-labeled counter found")
	}
}

func TestUpdateNewsTotals(t *testing.T) {
	metrics.UpdateNewsTotals(map[string]int64{"technology": 3})

	mf := gather(t, "news_items_total")
	if mf == nil {
		t.Fatal("news_items_total not registered")
	}

	for _, m := range mf.GetMetric() {
		for _, l := range m.GetLabel() {
			if l.GetName() == "category" && l.GetValue() == "technology" {
				if got := m.GetGauge().GetValue(); got != 3 {
					t.Fatalf("technology gauge = %v, want 3", got)
				}
				return
			}
		}
	}
	t.Fatal("no technology-labeled gauge found")
}
