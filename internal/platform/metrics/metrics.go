package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics for the service.
type Metrics struct {
	EventsAppended      *prometheus.CounterVec
	TransitionsRejected *prometheus.CounterVec
	AccessDecisions     *prometheus.CounterVec
	AuditEntries        prometheus.Counter
	AuditWriteFailures  prometheus.Counter
}

// New creates and registers all Prometheus metrics on the default registry.
func New() *Metrics {
	return &Metrics{
		EventsAppended: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "entryledger_events_appended_total",
			Help: "Events appended to the event store, by event type.",
		}, []string{"event_type"}),
		TransitionsRejected: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "entryledger_transitions_rejected_total",
			Help: "Workflow transitions rejected, by error kind.",
		}, []string{"kind"}),
		AccessDecisions: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "entryledger_access_decisions_total",
			Help: "Policy engine decisions, by outcome.",
		}, []string{"outcome"}),
		AuditEntries: promauto.NewCounter(prometheus.CounterOpts{
			Name: "entryledger_audit_entries_total",
			Help: "Audit log entries written.",
		}),
		AuditWriteFailures: promauto.NewCounter(prometheus.CounterOpts{
			Name: "entryledger_audit_write_failures_total",
			Help: "Audit log writes that failed.",
		}),
	}
}

// ObserveAppend records a successful event append.
func (m *Metrics) ObserveAppend(eventType string) {
	if m == nil {
		return
	}
	m.EventsAppended.WithLabelValues(eventType).Inc()
}

// ObserveRejection records a rejected workflow transition.
func (m *Metrics) ObserveRejection(kind string) {
	if m == nil {
		return
	}
	m.TransitionsRejected.WithLabelValues(kind).Inc()
}

// ObserveDecision records a policy engine outcome.
func (m *Metrics) ObserveDecision(allowed bool) {
	if m == nil {
		return
	}
	outcome := "denied"
	if allowed {
		outcome = "allowed"
	}
	m.AccessDecisions.WithLabelValues(outcome).Inc()
}

// ObserveAuditWrite records an audit log append attempt.
func (m *Metrics) ObserveAuditWrite(err error) {
	if m == nil {
		return
	}
	if err != nil {
		m.AuditWriteFailures.Inc()
		return
	}
	m.AuditEntries.Inc()
}
