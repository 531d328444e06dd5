package eventstore

import (
	"context"

	"github.com/google/uuid"

	"entryledger/internal/domain"
)

// DefaultListLimit bounds ListForEntity when the caller passes limit <= 0.
const DefaultListLimit = 1000

// Store is the append-only event journal. Implementations must be durable
// before Append returns, must never mutate or delete a stored event, and must
// return events for one entity in ascending timestamp order.
type Store interface {
	// Append validates the event, assigns its id and write timestamp when
	// absent, and persists it atomically. The write timestamp is
	// non-decreasing across successive appends to the same entity.
	Append(ctx context.Context, event domain.Event) (uuid.UUID, error)

	// ListForEntity returns up to limit events for (entityID, entityType) in
	// ascending timestamp order. A limit <= 0 uses DefaultListLimit.
	ListForEntity(ctx context.Context, entityID uuid.UUID, entityType string, limit int) ([]domain.Event, error)

	// GetByID returns a single event by its id.
	GetByID(ctx context.Context, eventID uuid.UUID) (domain.Event, error)

	// EntityIDs lists the distinct entity ids of the given type. Used by
	// projection rebuilds, which fold every entity from scratch.
	EntityIDs(ctx context.Context, entityType string) ([]uuid.UUID, error)
}
