package httptransport

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"entryledger/internal/domain"
	"entryledger/internal/eventstore"
	"entryledger/internal/identity"
	"entryledger/internal/projection"
	"entryledger/internal/workflow"
)

//go:generate mockgen -destination=mocks/mocks.go -package=mocks entryledger/internal/transport/http WorkflowService,ProjectionReader,AuditReader

// WorkflowService is the lifecycle surface handlers drive.
type WorkflowService interface {
	CreateEntry(ctx context.Context, req workflow.CreateRequest) (workflow.Result, error)
	UpdateEntry(ctx context.Context, req workflow.UpdateRequest) (workflow.Result, error)
	SubmitEntry(ctx context.Context, req workflow.SubmitRequest) (workflow.Result, error)
	ConfirmEntry(ctx context.Context, req workflow.ConfirmRequest) (workflow.Result, error)
	RejectEntry(ctx context.Context, req workflow.RejectRequest) (workflow.Result, error)
	CorrectEntry(ctx context.Context, req workflow.CorrectRequest) (workflow.Result, error)
	CancelEntry(ctx context.Context, req workflow.CancelRequest) (workflow.Result, error)
	CurrentState(ctx context.Context, entryID uuid.UUID) (eventstore.CurrentState, error)
	History(ctx context.Context, entryID uuid.UUID, limit int) ([]domain.Event, error)
}

// ProjectionReader serves entry list and detail reads from the cache.
type ProjectionReader interface {
	Get(ctx context.Context, entryID uuid.UUID) (projection.DataEntry, error)
	List(ctx context.Context, filter projection.ListFilter) ([]projection.DataEntry, error)
}

// OperatorHandler serves the data-entry surface: create, read own entries,
// submit and cancel.
type OperatorHandler struct {
	workflow    WorkflowService
	projections ProjectionReader
	logger      *slog.Logger
}

func NewOperatorHandler(workflow WorkflowService, projections ProjectionReader, logger *slog.Logger) *OperatorHandler {
	return &OperatorHandler{workflow: workflow, projections: projections, logger: logger}
}

// Register mounts operator endpoints on the router.
func (h *OperatorHandler) Register(r chi.Router, authz *Authorizer) {
	r.With(authz.Require("data", "create")).Post("/operator/entries", h.handleCreate)
	r.With(authz.Require("data", "read")).Get("/operator/entries", h.handleListOwn)
	r.With(authz.Require("data", "read")).Get("/operator/entries/{entryID}", h.handleGetOwn)
	r.With(authz.Require("data", "update")).Put("/operator/entries/{entryID}", h.handleUpdate)
	r.With(authz.Require("data", "update")).Post("/operator/entries/{entryID}/submit", h.handleSubmit)
	r.With(authz.Require("data", "update")).Post("/operator/entries/{entryID}/cancel", h.handleCancel)
}

type createEntryRequest struct {
	Data      map[string]any `json:"data"`
	EntryType string         `json:"entry_type"`
}

type updateEntryRequest struct {
	Data map[string]any `json:"data"`
}

type cancelEntryRequest struct {
	Reason string `json:"reason"`
}

type transitionResponse struct {
	EventID   uuid.UUID `json:"event_id"`
	EntryID   uuid.UUID `json:"entry_id"`
	EventType string    `json:"event_type"`
	Timestamp time.Time `json:"timestamp"`
}

func toTransitionResponse(res workflow.Result) transitionResponse {
	return transitionResponse{
		EventID:   res.EventID,
		EntryID:   res.EntityID,
		EventType: res.EventType,
		Timestamp: res.Timestamp,
	}
}

func (h *OperatorHandler) handleCreate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	actor, _ := identity.ActorFrom(ctx)

	req, ok := decodeJSON[createEntryRequest](w, r, h.logger)
	if !ok {
		return
	}
	if len(req.Data) == 0 {
		writeError(w, domain.E(domain.KindValidation, "data is required"))
		return
	}

	res, err := h.workflow.CreateEntry(ctx, workflow.CreateRequest{
		Data:      domain.Payload(req.Data),
		EntryType: req.EntryType,
		Actor:     actor,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, toTransitionResponse(res))
}

func (h *OperatorHandler) handleListOwn(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	actor, _ := identity.ActorFrom(ctx)

	entries, err := h.projections.List(ctx, projection.ListFilter{
		Status:    r.URL.Query().Get("status"),
		CreatedBy: actor.ID,
		Limit:     queryLimit(r),
	})
	if err != nil {
		writeError(w, domain.Wrap(domain.KindInternal, "listing entries failed", err))
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"entries": entries, "count": len(entries)})
}

func (h *OperatorHandler) handleGetOwn(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	actor, _ := identity.ActorFrom(ctx)

	entryID, ok := pathEntryID(w, r)
	if !ok {
		return
	}

	entry, err := h.projections.Get(ctx, entryID)
	if err == projection.ErrNotCached {
		// Cold cache: answer from the event store instead.
		state, ferr := h.workflow.CurrentState(ctx, entryID)
		if ferr != nil {
			writeError(w, ferr)
			return
		}
		if ownerOf(state.Payload) != actor.ID {
			writeError(w, domain.E(domain.KindAccessDenied, "entry belongs to another user"))
			return
		}
		writeJSON(w, http.StatusOK, currentStateResponse(state))
		return
	}
	if err != nil {
		writeError(w, domain.Wrap(domain.KindInternal, "reading entry failed", err))
		return
	}
	if entry.CreatedBy != actor.ID {
		writeError(w, domain.E(domain.KindAccessDenied, "entry belongs to another user"))
		return
	}
	writeJSON(w, http.StatusOK, entry)
}

func (h *OperatorHandler) handleUpdate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	actor, _ := identity.ActorFrom(ctx)

	entryID, ok := pathEntryID(w, r)
	if !ok {
		return
	}

	req, ok := decodeJSON[updateEntryRequest](w, r, h.logger)
	if !ok {
		return
	}
	if len(req.Data) == 0 {
		writeError(w, domain.E(domain.KindValidation, "data is required"))
		return
	}

	res, err := h.workflow.UpdateEntry(ctx, workflow.UpdateRequest{
		EntryID: entryID,
		Data:    domain.Payload(req.Data),
		Actor:   actor,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toTransitionResponse(res))
}

func (h *OperatorHandler) handleSubmit(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	actor, _ := identity.ActorFrom(ctx)

	entryID, ok := pathEntryID(w, r)
	if !ok {
		return
	}

	res, err := h.workflow.SubmitEntry(ctx, workflow.SubmitRequest{
		EntryID: entryID,
		Actor:   actor,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toTransitionResponse(res))
}

func (h *OperatorHandler) handleCancel(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	actor, _ := identity.ActorFrom(ctx)

	entryID, ok := pathEntryID(w, r)
	if !ok {
		return
	}

	var req cancelEntryRequest
	if r.ContentLength > 0 {
		if req, ok = decodeJSON[cancelEntryRequest](w, r, h.logger); !ok {
			return
		}
	}

	res, err := h.workflow.CancelEntry(ctx, workflow.CancelRequest{
		EntryID: entryID,
		Reason:  req.Reason,
		Actor:   actor,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toTransitionResponse(res))
}

func pathEntryID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	entryID, err := uuid.Parse(chi.URLParam(r, "entryID"))
	if err != nil {
		writeError(w, domain.E(domain.KindValidation, "invalid entry id"))
		return uuid.Nil, false
	}
	return entryID, true
}

func queryLimit(r *http.Request) int {
	raw := r.URL.Query().Get("limit")
	if raw == "" {
		return 0
	}
	limit := 0
	for _, c := range raw {
		if c < '0' || c > '9' {
			return 0
		}
		limit = limit*10 + int(c-'0')
		if limit > 1000 {
			return 1000
		}
	}
	return limit
}

// ownerOf pulls the creating user out of a folded payload.
func ownerOf(payload domain.Payload) uuid.UUID {
	raw, ok := payload["created_by"].(string)
	if !ok {
		return uuid.Nil
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil
	}
	return id
}

func currentStateResponse(state eventstore.CurrentState) map[string]any {
	return map[string]any{
		"entry_id":    state.EntityID,
		"state":       state.State,
		"data":        state.Payload,
		"event_count": state.EventCount,
	}
}
