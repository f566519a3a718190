package metrics

import (
	"fmt"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
)

func TestEntitlementMetricsExportsCountersAndHistogram(t *testing.T) {
	reg := prometheus.NewRegistry()
	metrics := NewEntitlementMetrics(reg)

	metrics.ObserveValidation("pro", true)
	metrics.ObserveValidation("pro", true)
	metrics.IncDenial("project_limit_exceeded")
	metrics.ObserveResolveDuration("ok", 120*time.Millisecond)
	metrics.IncAuditDropped()

	mfs, err := reg.Gather()
	if err != nil {
		t.Fatalf("gather metrics: %v", err)
	}

	if got, err := fetchCounterValue(mfs, "license_validations_total", "license_type", "pro"); err != nil {
		t.Fatalf("fetch validations: %v", err)
	} else if got != 2 {
		t.Fatalf("expected validations=2, got %f", got)
	}

	if got, err := fetchCounterValue(mfs, "entitlement_denials_total", "violation", "project_limit_exceeded"); err != nil {
		t.Fatalf("fetch denials: %v", err)
	} else if got != 1 {
		t.Fatalf("expected denials=1, got %f", got)
	}

	if got, err := fetchHistogramSum(mfs, "license_resolve_duration_seconds", "outcome", "ok"); err != nil {
		t.Fatalf("fetch resolve duration: %v", err)
	} else if got <= 0 {
		t.Fatalf("expected duration sum > 0, got %f", got)
	}

	mf := findMetricFamily(mfs, "audit_events_dropped_total")
	if mf == nil {
		t.Fatalf("audit_events_dropped_total not exported")
	}
	if got := mf.GetMetric()[0].GetCounter().GetValue(); got != 1 {
		t.Fatalf("expected dropped=1, got %f", got)
	}
}

func TestEntitlementMetricsNilRegistererIsNoop(t *testing.T) {
	metrics := NewEntitlementMetrics(nil)
	metrics.ObserveValidation("demo", false)
	metrics.IncDenial("invalid_license")
	metrics.ObserveResolveDuration("error", time.Second)
	metrics.IncAuditDropped()
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

func fetchHistogramSum(mfs []*dto.MetricFamily, name, label, value string) (float64, error) {
	mf := findMetricFamily(mfs, name)
	if mf == nil {
		return 0, fmt.Errorf("metric %q not found", name)
	}
	for _, metric := range mf.GetMetric() {
		if matchesLabel(metric.GetLabel(), label, value) {
			return metric.GetHistogram().GetSampleSum(), nil
		}
	}
	return 0, fmt.Errorf("histogram %q missing label %s=%s", name, label, value)
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
