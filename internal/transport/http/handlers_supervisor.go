package httptransport

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"entryledger/internal/domain"
	"entryledger/internal/identity"
	"entryledger/internal/projection"
	"entryledger/internal/workflow"
)

// SupervisorHandler serves the review surface: list and inspect any entry,
// confirm, reject, correct.
type SupervisorHandler struct {
	workflow    WorkflowService
	projections ProjectionReader
	logger      *slog.Logger
}

func NewSupervisorHandler(workflow WorkflowService, projections ProjectionReader, logger *slog.Logger) *SupervisorHandler {
	return &SupervisorHandler{workflow: workflow, projections: projections, logger: logger}
}

// Register mounts supervisor endpoints on the router.
func (h *SupervisorHandler) Register(r chi.Router, authz *Authorizer) {
	r.With(authz.Require("data", "read")).Get("/supervisor/entries", h.handleList)
	r.With(authz.Require("data", "read")).Get("/supervisor/entries/{entryID}", h.handleGet)
	r.With(authz.Require("data", "confirm")).Post("/supervisor/entries/{entryID}/confirm", h.handleConfirm)
	r.With(authz.Require("data", "reject")).Post("/supervisor/entries/{entryID}/reject", h.handleReject)
	r.With(authz.Require("data", "correct")).Post("/supervisor/entries/{entryID}/correct", h.handleCorrect)
}

type confirmEntryRequest struct {
	Note string `json:"confirmation_note"`
}

type rejectEntryRequest struct {
	Reason string `json:"reason"`
}

type correctEntryRequest struct {
	CorrectedData   map[string]any `json:"corrected_data"`
	FieldsCorrected []string       `json:"fields_corrected"`
	Note            string         `json:"correction_note"`
}

func (h *SupervisorHandler) handleList(w http.ResponseWriter, r *http.Request) {
	entries, err := h.projections.List(r.Context(), projection.ListFilter{
		Status: r.URL.Query().Get("status"),
		Limit:  queryLimit(r),
	})
	if err != nil {
		writeError(w, domain.Wrap(domain.KindInternal, "listing entries failed", err))
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"entries": entries, "count": len(entries)})
}

func (h *SupervisorHandler) handleGet(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	entryID, ok := pathEntryID(w, r)
	if !ok {
		return
	}

	entry, err := h.projections.Get(ctx, entryID)
	if err == projection.ErrNotCached {
		state, ferr := h.workflow.CurrentState(ctx, entryID)
		if ferr != nil {
			writeError(w, ferr)
			return
		}
		writeJSON(w, http.StatusOK, currentStateResponse(state))
		return
	}
	if err != nil {
		writeError(w, domain.Wrap(domain.KindInternal, "reading entry failed", err))
		return
	}
	writeJSON(w, http.StatusOK, entry)
}

func (h *SupervisorHandler) handleConfirm(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	actor, _ := identity.ActorFrom(ctx)

	entryID, ok := pathEntryID(w, r)
	if !ok {
		return
	}

	var req confirmEntryRequest
	if r.ContentLength > 0 {
		if req, ok = decodeJSON[confirmEntryRequest](w, r, h.logger); !ok {
			return
		}
	}

	res, err := h.workflow.ConfirmEntry(ctx, workflow.ConfirmRequest{
		EntryID: entryID,
		Note:    req.Note,
		Actor:   actor,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toTransitionResponse(res))
}

func (h *SupervisorHandler) handleReject(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	actor, _ := identity.ActorFrom(ctx)

	entryID, ok := pathEntryID(w, r)
	if !ok {
		return
	}

	req, ok := decodeJSON[rejectEntryRequest](w, r, h.logger)
	if !ok {
		return
	}

	res, err := h.workflow.RejectEntry(ctx, workflow.RejectRequest{
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

func (h *SupervisorHandler) handleCorrect(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	actor, _ := identity.ActorFrom(ctx)

	entryID, ok := pathEntryID(w, r)
	if !ok {
		return
	}

	req, ok := decodeJSON[correctEntryRequest](w, r, h.logger)
	if !ok {
		return
	}

	res, err := h.workflow.CorrectEntry(ctx, workflow.CorrectRequest{
		EntryID:         entryID,
		CorrectedData:   domain.Payload(req.CorrectedData),
		FieldsCorrected: req.FieldsCorrected,
		Note:            req.Note,
		Actor:           actor,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toTransitionResponse(res))
}
