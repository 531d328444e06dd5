package audit

import (
	"time"

	"github.com/google/uuid"
)

// RequestContext carries request metadata into an audit entry.
type RequestContext struct {
	RequestID     uuid.UUID
	RequestPath   string
	RequestMethod string
	UserAgent     string
	IPAddress     string
}

// Entry is one immutable audit record: who did what to which resource, under
// which scope, with what outcome. Entries are append-only and never mutated.
type Entry struct {
	AuditID uuid.UUID

	ActorID       uuid.UUID
	ActorRole     string
	ActorUsername string

	Action       string
	ResourceType string
	ResourceID   uuid.UUID

	// ScopeGranted is the scope that authorized the action, when one did.
	ScopeGranted string

	RequestID     uuid.UUID
	RequestPath   string
	RequestMethod string
	UserAgent     string
	IPAddress     string

	Success      bool
	ErrorMessage string
	StatusCode   int

	Timestamp time.Time
	Context   map[string]any
}

// ComplianceReport aggregates audit activity over a reporting period.
type ComplianceReport struct {
	From time.Time
	To   time.Time

	TotalActions      int
	SuccessfulActions int
	FailedActions     int
	SuccessRate       float64

	ActionsByType map[string]int
	ActionsByRole map[string]int

	GeneratedAt time.Time
}
