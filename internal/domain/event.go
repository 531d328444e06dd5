package domain

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// EntityTypeDataEntry is the entity type for data entry lifecycle events.
const EntityTypeDataEntry = "data_entry"

// EventCategory classifies events by how they were produced.
type EventCategory string

const (
	CategoryUser       EventCategory = "user"
	CategorySystem     EventCategory = "system"
	CategoryCorrection EventCategory = "correction"
)

// Data entry event types. The format is always "<prefix>.<action>".
const (
	EventDataCreated   = "data.created"
	EventDataUpdated   = "data.updated"
	EventDataSubmitted = "data.submitted"
	EventDataConfirmed = "data.confirmed"
	EventDataRejected  = "data.rejected"
	EventDataCorrected = "data.corrected"
	EventDataCancelled = "data.cancelled"
)

// eventCategories maps each known event type to its category. Unknown event
// types default to CategoryUser.
var eventCategories = map[string]EventCategory{
	EventDataCreated:   CategoryUser,
	EventDataUpdated:   CategoryUser,
	EventDataSubmitted: CategoryUser,
	EventDataConfirmed: CategoryUser,
	EventDataRejected:  CategoryUser,
	EventDataCorrected: CategoryCorrection,
	EventDataCancelled: CategoryUser,
}

// CategoryForEventType returns the category for an event type.
func CategoryForEventType(eventType string) EventCategory {
	if cat, ok := eventCategories[eventType]; ok {
		return cat
	}
	return CategoryUser
}

// ValidateEventType checks the "<prefix>.<action>" format: exactly two
// non-empty dot-separated segments.
func ValidateEventType(eventType string) error {
	parts := strings.Split(eventType, ".")
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return Ef(KindValidation, "invalid event_type format %q, expected \"prefix.action\"", eventType)
	}
	return nil
}

// Actor identifies who triggered an event or an authorization attempt.
// Scopes are the grants carried by the actor's token; the policy engine only
// honors a role scope the token actually granted.
type Actor struct {
	ID       uuid.UUID
	Role     string
	Username string
	Scopes   []string
}

// Payload is the structured key-value body of an event. Values are the usual
// JSON shapes (string, float64, bool, map, slice, nil) so a payload survives a
// marshal round trip unchanged.
type Payload map[string]any

// Merge returns a copy of p with overlay's keys applied on top,
// last-writer-wins per key.
func (p Payload) Merge(overlay Payload) Payload {
	merged := make(Payload, len(p)+len(overlay))
	for k, v := range p {
		merged[k] = v
	}
	for k, v := range overlay {
		merged[k] = v
	}
	return merged
}

// Clone returns a shallow copy so stored payloads cannot be mutated through
// shared references.
func (p Payload) Clone() Payload {
	if p == nil {
		return nil
	}
	cloned := make(Payload, len(p))
	for k, v := range p {
		cloned[k] = v
	}
	return cloned
}

// Event is one immutable fact in an entity's history. Once appended it is
// never updated or deleted.
type Event struct {
	EventID    uuid.UUID
	EntityID   uuid.UUID
	EntityType string

	EventType string
	Category  EventCategory

	Payload Payload
	// PreviousPayload is populated only for correction events, capturing the
	// folded state immediately before the correction.
	PreviousPayload Payload

	ActorID       uuid.UUID
	ActorRole     string
	ActorUsername string

	// CorrelationID groups events from one causal chain; CausationID points
	// at the event that triggered this one.
	CorrelationID uuid.UUID
	CausationID   uuid.UUID

	Timestamp time.Time
	Context   map[string]any
}

// Validate checks the fields the event store requires before an append.
func (e Event) Validate() error {
	if e.EntityID == uuid.Nil {
		return E(KindValidation, "entity_id is required")
	}
	if e.EntityType == "" {
		return E(KindValidation, "entity_type is required")
	}
	if err := ValidateEventType(e.EventType); err != nil {
		return err
	}
	if e.ActorID == uuid.Nil {
		return E(KindValidation, "actor_id is required")
	}
	if e.ActorRole == "" {
		return E(KindValidation, "actor_role is required")
	}
	if e.ActorUsername == "" {
		return E(KindValidation, "actor_username is required")
	}
	if e.Payload == nil {
		return E(KindValidation, "payload is required")
	}
	return nil
}
