package audit

import (
	"context"
	"encoding/json"
	"log/slog"

	"entryledger/internal/platform/kafka"
)

// MaterializeHandler consumes audit records from the audit topic and appends
// them into a Store. Appends are idempotent on audit id, so redelivery is
// harmless. Malformed records are logged and skipped; they must not block
// the partition.
type MaterializeHandler struct {
	store  Store
	logger *slog.Logger
}

// NewMaterializeHandler creates the materializing topic handler.
func NewMaterializeHandler(store Store, logger *slog.Logger) *MaterializeHandler {
	return &MaterializeHandler{store: store, logger: logger}
}

// Handle processes one consumed audit record.
func (h *MaterializeHandler) Handle(ctx context.Context, msg *kafka.Message) error {
	var payload wirePayload
	if err := json.Unmarshal(msg.Value, &payload); err != nil {
		h.logger.Error("failed to unmarshal audit payload, skipping",
			"key", string(msg.Key),
			"error", err,
		)
		return nil
	}

	entry, err := fromWire(payload)
	if err != nil {
		h.logger.Error("invalid audit payload, skipping",
			"key", string(msg.Key),
			"error", err,
		)
		return nil
	}

	if err := h.store.Append(ctx, entry); err != nil {
		// Storage trouble is retryable; fail so the offset is not committed.
		return err
	}
	return nil
}
