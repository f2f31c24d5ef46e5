package metrics

import (
	"fmt"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
)

func TestPricingMetricsExportsCounters(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewPricingMetrics(reg)

	m.IncCalculation("standard", "tier2")
	m.IncCalculation("standard", "tier2")
	m.IncCalculation("", "tier1")
	m.ObserveQuote("tier3", 3)
	m.ObserveConfigSave(true, 20*time.Millisecond)
	m.ObserveConfigSave(false, 5*time.Millisecond)

	mfs, err := reg.Gather()
	if err != nil {
		t.Fatalf("gather metrics: %v", err)
	}

	if got, err := fetchCounterValue(mfs, "pricing_calculations_total", "tier", "tier2"); err != nil {
		t.Fatalf("fetch calculations: %v", err)
	} else if got != 2 {
		t.Fatalf("expected calculations=2, got %f", got)
	}

	if got, err := fetchCounterValue(mfs, "pricing_calculations_total", "package", "unknown"); err != nil {
		t.Fatalf("fetch unknown package: %v", err)
	} else if got != 1 {
		t.Fatalf("expected unknown package=1, got %f", got)
	}

	if got, err := fetchCounterValue(mfs, "pricing_quotes_total", "tier", "tier3"); err != nil {
		t.Fatalf("fetch quotes: %v", err)
	} else if got != 1 {
		t.Fatalf("expected quotes=1, got %f", got)
	}

	for _, outcome := range []string{OutcomeSuccess, OutcomeFailure} {
		if got, err := fetchCounterValue(mfs, "pricing_configuration_saves_total", "outcome", outcome); err != nil {
			t.Fatalf("fetch saves %s: %v", outcome, err)
		} else if got != 1 {
			t.Fatalf("expected %s=1, got %f", outcome, got)
		}
	}

	mf := findMetricFamily(mfs, "pricing_configuration_save_duration_seconds")
	if mf == nil || mf.GetMetric()[0].GetHistogram().GetSampleCount() != 2 {
		t.Fatalf("expected two save duration samples")
	}
}

func TestNilPricingMetricsIsNoop(t *testing.T) {
	var m *PricingMetrics
	m.IncCalculation("basic", "tier1")
	m.ObserveQuote("tier1", 1)
	m.ObserveConfigSave(true, time.Second)

	NewPricingMetrics(nil).IncCalculation("basic", "tier1")
}

func fetchCounterValue(mfs []*dto.MetricFamily, name, label, value string) (float64, error) {
	mf := findMetricFamily(mfs, name)
	if mf == nil {
		return 0, fmt.Errorf("metric %q not found", name)
	}
	for _, metric := range mf.GetMetric() {
		if matchesLabel(metric.GetLabel(), label, value) {
			return metric.GetCounter().GetValue(), nil
		}
	}
	return 0, fmt.Errorf("metric %q missing label %s=%s", name, label, value)
}

func findMetricFamily(mfs []*dto.MetricFamily, name string) *dto.MetricFamily {
	for _, mf := range mfs {
		if mf.GetName() == name {
			return mf
		}
	}
	return nil
}

func matchesLabel(labels []*dto.LabelPair, name, value string) bool {
	for _, label := range labels {
		if label.GetName() == name && label.GetValue() == value {
			return true
		}
	}
	return false
}
