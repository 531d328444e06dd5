package audit

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"entryledger/internal/platform/metrics"
)

// Publisher fans an entry out to an external sink (Kafka). Fan-out failures
// are logged, not propagated: the store append is the source of truth.
type Publisher interface {
	Publish(ctx context.Context, entry Entry) error
}

// Logger writes immutable audit records for every authorization decision and
// action outcome.
type Logger struct {
	store     Store
	publisher Publisher
	logger    *slog.Logger
	metrics   *metrics.Metrics
}

// NewLogger wires the audit logger. publisher and m may be nil.
func NewLogger(store Store, publisher Publisher, logger *slog.Logger, m *metrics.Metrics) *Logger {
	return &Logger{store: store, publisher: publisher, logger: logger, metrics: m}
}

// Log appends one entry, assigning its id and timestamp when absent, and
// returns the audit id. A store failure is returned to the caller, who
// decides whether it is fatal to the triggering request.
func (l *Logger) Log(ctx context.Context, entry Entry) (uuid.UUID, error) {
	if entry.AuditID == uuid.Nil {
		entry.AuditID = uuid.New()
	}
	if entry.Timestamp.IsZero() {
		entry.Timestamp = time.Now().UTC()
	}

	err := l.store.Append(ctx, entry)
	l.metrics.ObserveAuditWrite(err)
	if err != nil {
		l.logger.ErrorContext(ctx, "audit append failed",
			"action", entry.Action,
			"actor", entry.ActorUsername,
			"error", err,
		)
		return uuid.Nil, err
	}

	if l.publisher != nil {
		if err := l.publisher.Publish(ctx, entry); err != nil {
			l.logger.WarnContext(ctx, "audit fan-out failed",
				"audit_id", entry.AuditID,
				"error", err,
			)
		}
	}

	l.logger.InfoContext(ctx, "audit entry created",
		"audit_id", entry.AuditID,
		"action", entry.Action,
		"actor", entry.ActorUsername,
		"success", entry.Success,
	)
	return entry.AuditID, nil
}

// ActorHistory returns the actor's most recent entries.
func (l *Logger) ActorHistory(ctx context.Context, actorID uuid.UUID, limit int) ([]Entry, error) {
	return l.store.ListByActor(ctx, actorID, limit)
}

// ResourceHistory returns the most recent entries touching one resource.
func (l *Logger) ResourceHistory(ctx context.Context, resourceType string, resourceID uuid.UUID, limit int) ([]Entry, error) {
	return l.store.ListByResource(ctx, resourceType, resourceID, limit)
}

// Failures returns the most recent failed actions.
func (l *Logger) Failures(ctx context.Context, limit int) ([]Entry, error) {
	return l.store.ListFailures(ctx, limit)
}

// ComplianceReport aggregates activity between from and to.
func (l *Logger) ComplianceReport(ctx context.Context, from, to time.Time) (ComplianceReport, error) {
	entries, err := l.store.ListBetween(ctx, from, to)
	if err != nil {
		return ComplianceReport{}, err
	}

	report := ComplianceReport{
		From:          from,
		To:            to,
		TotalActions:  len(entries),
		ActionsByType: make(map[string]int),
		ActionsByRole: make(map[string]int),
		GeneratedAt:   time.Now().UTC(),
	}
	for _, entry := range entries {
		if entry.Success {
			report.SuccessfulActions++
		}
		report.ActionsByType[entry.Action]++
		report.ActionsByRole[entry.ActorRole]++
	}
	report.FailedActions = report.TotalActions - report.SuccessfulActions
	if report.TotalActions > 0 {
		report.SuccessRate = float64(report.SuccessfulActions) / float64(report.TotalActions)
	}
	return report, nil
}
