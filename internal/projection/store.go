package projection

import (
	"context"

	"github.com/google/uuid"

	"entryledger/internal/domain"
)

// ErrNotCached is returned when the projection has no row for an entry. The
// caller falls back to folding the event stream.
var ErrNotCached = domain.E(domain.KindNotFound, "entry not in projection")

// ListFilter narrows List results.
type ListFilter struct {
	Status    string
	CreatedBy uuid.UUID
	Limit     int
	Offset    int
}

// Store holds projection rows. Unlike the event and audit stores it is
// mutable: rows are overwritten as events arrive and dropped on rebuild.
type Store interface {
	Save(ctx context.Context, entry DataEntry) error
	Get(ctx context.Context, entryID uuid.UUID) (DataEntry, error)
	List(ctx context.Context, filter ListFilter) ([]DataEntry, error)
	// Reset drops all rows ahead of a rebuild.
	Reset(ctx context.Context) error
}
