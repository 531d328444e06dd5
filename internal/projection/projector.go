package projection

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"entryledger/internal/domain"
	"entryledger/internal/eventstore"
)

// Projector maintains the data_entries read model by applying events. Apply
// is idempotent per event order: re-applying a full stream from a clean
// store reproduces the same rows, which is what Rebuild relies on.
type Projector struct {
	store  Store
	logger *slog.Logger
}

// NewProjector creates a projector over the given store.
func NewProjector(store Store, logger *slog.Logger) *Projector {
	return &Projector{store: store, logger: logger}
}

// Apply folds one event into the read model row for its entity.
func (p *Projector) Apply(ctx context.Context, event domain.Event) error {
	if event.EntityType != domain.EntityTypeDataEntry {
		return nil
	}

	entry, err := p.store.Get(ctx, event.EntityID)
	if err != nil && err != ErrNotCached && !domain.IsKind(err, domain.KindNotFound) {
		return err
	}

	entry.EntryID = event.EntityID
	entry.Version++
	entry.UpdatedAt = event.Timestamp

	if state, ok := event.Payload["state"].(string); ok {
		entry.Status = state
	}

	ts := event.Timestamp
	switch event.EventType {
	case domain.EventDataCreated:
		entry.CreatedBy = event.ActorID
		entry.CreatedByRole = event.ActorRole
		entry.CreatedByUsername = event.ActorUsername
		entry.CreatedAt = ts
		if entryType, ok := event.Payload["entry_type"].(string); ok {
			entry.EntryType = entryType
		}
		if data, ok := event.Payload["data"].(map[string]any); ok {
			entry.Data = data
		}
	case domain.EventDataUpdated:
		if data, ok := event.Payload["data"].(map[string]any); ok {
			entry.Data = data
		}
	case domain.EventDataSubmitted:
		entry.SubmittedAt = &ts
	case domain.EventDataConfirmed:
		actorID := event.ActorID
		entry.ConfirmedBy = &actorID
		entry.ConfirmedByName = event.ActorUsername
		entry.ConfirmedAt = &ts
		if note, ok := event.Payload["confirmation_note"].(string); ok {
			entry.ConfirmationNote = note
		}
	case domain.EventDataRejected:
		actorID := event.ActorID
		entry.RejectedBy = &actorID
		entry.RejectedByName = event.ActorUsername
		entry.RejectedAt = &ts
		if reason, ok := event.Payload["rejection_reason"].(string); ok {
			entry.RejectionReason = reason
		}
	case domain.EventDataCorrected:
		actorID := event.ActorID
		entry.CorrectionCount++
		entry.LastCorrectedAt = &ts
		entry.LastCorrectedBy = &actorID
		if data, ok := event.Payload["corrected_data"].(map[string]any); ok {
			merged := make(map[string]any, len(entry.Data)+len(data))
			for k, v := range entry.Data {
				merged[k] = v
			}
			for k, v := range data {
				merged[k] = v
			}
			entry.Data = merged
		}
	case domain.EventDataCancelled:
		entry.CancelledAt = &ts
	}

	return p.store.Save(ctx, entry)
}

// Get returns the cached row for one entry.
func (p *Projector) Get(ctx context.Context, entryID uuid.UUID) (DataEntry, error) {
	return p.store.Get(ctx, entryID)
}

// List returns cached rows matching the filter.
func (p *Projector) List(ctx context.Context, filter ListFilter) ([]DataEntry, error) {
	return p.store.List(ctx, filter)
}

// Rebuild resets the store and replays every data entry's full event stream
// from the event store, which stays the single source of truth throughout.
func (p *Projector) Rebuild(ctx context.Context, events eventstore.Store) error {
	entityIDs, err := events.EntityIDs(ctx, domain.EntityTypeDataEntry)
	if err != nil {
		return err
	}
	if err := p.store.Reset(ctx); err != nil {
		return err
	}
	for _, entityID := range entityIDs {
		stream, err := events.ListForEntity(ctx, entityID, domain.EntityTypeDataEntry, 0)
		if err != nil {
			return err
		}
		for _, event := range stream {
			if err := p.Apply(ctx, event); err != nil {
				return err
			}
		}
	}
	p.logger.InfoContext(ctx, "projection rebuilt", "entities", len(entityIDs))
	return nil
}
