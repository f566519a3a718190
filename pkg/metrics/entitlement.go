package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// EntitlementMetrics records license validation outcomes and denial reasons.
type EntitlementMetrics struct {
	validations    *prometheus.CounterVec
	denials        *prometheus.CounterVec
	resolveLatency *prometheus.HistogramVec
	auditDropped   prometheus.Counter
}

// NewEntitlementMetrics registers the entitlement metrics on the provided registerer.
func NewEntitlementMetrics(reg prometheus.Registerer) *EntitlementMetrics {
	if reg == nil {
		return &EntitlementMetrics{}
	}
	validations := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "license_validations_total",
		Help: "License validations by resolved license type and validity.",
	}, []string{"license_type", "valid"})
	denials := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "entitlement_denials_total",
		Help: "Denied operations by violation kind.",
	}, []string{"violation"})
	resolveLatency := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "license_resolve_duration_seconds",
		Help:    "Duration of license lookups in seconds.",
		Buckets: prometheus.DefBuckets,
	}, []string{"outcome"})
	auditDropped := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "audit_events_dropped_total",
		Help: "Audit events dropped because the async queue was full.",
	})
	reg.MustRegister(validations, denials, resolveLatency, auditDropped)
	return &EntitlementMetrics{
		validations:    validations,
		denials:        denials,
		resolveLatency: resolveLatency,
		auditDropped:   auditDropped,
	}
}

// ObserveValidation records a completed license resolution.
func (m *EntitlementMetrics) ObserveValidation(licenseType string, valid bool) {
	if m == nil || m.validations == nil {
		return
	}
	m.validations.WithLabelValues(normalizeLabel(licenseType), boolLabel(valid)).Inc()
}

// IncDenial increments the denial counter for the given violation kind.
func (m *EntitlementMetrics) IncDenial(violation string) {
	if m == nil || m.denials == nil {
		return
	}
	m.denials.WithLabelValues(normalizeLabel(violation)).Inc()
}

// ObserveResolveDuration records how long a license lookup took.
func (m *EntitlementMetrics) ObserveResolveDuration(outcome string, duration time.Duration) {
	if m == nil || m.resolveLatency == nil {
		return
	}
	m.resolveLatency.WithLabelValues(normalizeLabel(outcome)).Observe(duration.Seconds())
}

// IncAuditDropped counts an audit event lost to queue overflow.
func (m *EntitlementMetrics) IncAuditDropped() {
	if m == nil || m.auditDropped == nil {
		return
	}
	m.auditDropped.Inc()
}

func boolLabel(v bool) string {
	if v {
		return "true"
	}
	return "false"
}
