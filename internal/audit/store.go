package audit

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Store is the append-only audit log. Implementations never update or delete
// a stored entry; the read helpers are filtered scans.
type Store interface {
	Append(ctx context.Context, entry Entry) error
	ListByActor(ctx context.Context, actorID uuid.UUID, limit int) ([]Entry, error)
	ListByResource(ctx context.Context, resourceType string, resourceID uuid.UUID, limit int) ([]Entry, error)
	ListFailures(ctx context.Context, limit int) ([]Entry, error)
	ListBetween(ctx context.Context, from, to time.Time) ([]Entry, error)
}
