package httptransport

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"entryledger/internal/audit"
	"entryledger/internal/domain"
	"entryledger/internal/projection"
)

// AuditReader is the audit trail query surface.
type AuditReader interface {
	ActorHistory(ctx context.Context, actorID uuid.UUID, limit int) ([]audit.Entry, error)
	ResourceHistory(ctx context.Context, resourceType string, resourceID uuid.UUID, limit int) ([]audit.Entry, error)
	Failures(ctx context.Context, limit int) ([]audit.Entry, error)
	ComplianceReport(ctx context.Context, from, to time.Time) (audit.ComplianceReport, error)
}

// AuditorHandler serves the audit surface: read-only access to every entry,
// entry event history, audit trail queries, and compliance reports.
type AuditorHandler struct {
	workflow    WorkflowService
	projections ProjectionReader
	audits      AuditReader
	logger      *slog.Logger
}

func NewAuditorHandler(workflow WorkflowService, projections ProjectionReader, audits AuditReader, logger *slog.Logger) *AuditorHandler {
	return &AuditorHandler{workflow: workflow, projections: projections, audits: audits, logger: logger}
}

// Register mounts auditor endpoints on the router.
func (h *AuditorHandler) Register(r chi.Router, authz *Authorizer) {
	r.With(authz.Require("data", "read")).Get("/auditor/entries", h.handleListEntries)
	r.With(authz.Require("data", "read")).Get("/auditor/entries/{entryID}", h.handleGetEntry)
	r.With(authz.Require("events", "read")).Get("/auditor/entries/{entryID}/events", h.handleEntryEvents)
	r.With(authz.Require("audit", "read")).Get("/auditor/audit/actors/{actorID}", h.handleActorHistory)
	r.With(authz.Require("audit", "read")).Get("/auditor/audit/resources/{resourceType}/{resourceID}", h.handleResourceHistory)
	r.With(authz.Require("audit", "read")).Get("/auditor/audit/failures", h.handleFailures)
	r.With(authz.Require("reports", "read")).Get("/auditor/reports/compliance", h.handleComplianceReport)
}

func (h *AuditorHandler) handleListEntries(w http.ResponseWriter, r *http.Request) {
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

func (h *AuditorHandler) handleGetEntry(w http.ResponseWriter, r *http.Request) {
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

func (h *AuditorHandler) handleEntryEvents(w http.ResponseWriter, r *http.Request) {
	entryID, ok := pathEntryID(w, r)
	if !ok {
		return
	}

	events, err := h.workflow.History(r.Context(), entryID, queryLimit(r))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"events": events, "count": len(events)})
}

func (h *AuditorHandler) handleActorHistory(w http.ResponseWriter, r *http.Request) {
	actorID, err := uuid.Parse(chi.URLParam(r, "actorID"))
	if err != nil {
		writeError(w, domain.E(domain.KindValidation, "invalid actor id"))
		return
	}

	entries, aerr := h.audits.ActorHistory(r.Context(), actorID, queryLimit(r))
	if aerr != nil {
		writeError(w, domain.Wrap(domain.KindInternal, "audit query failed", aerr))
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"entries": entries, "count": len(entries)})
}

func (h *AuditorHandler) handleResourceHistory(w http.ResponseWriter, r *http.Request) {
	resourceType := chi.URLParam(r, "resourceType")
	resourceID, err := uuid.Parse(chi.URLParam(r, "resourceID"))
	if err != nil {
		writeError(w, domain.E(domain.KindValidation, "invalid resource id"))
		return
	}

	entries, aerr := h.audits.ResourceHistory(r.Context(), resourceType, resourceID, queryLimit(r))
	if aerr != nil {
		writeError(w, domain.Wrap(domain.KindInternal, "audit query failed", aerr))
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"entries": entries, "count": len(entries)})
}

func (h *AuditorHandler) handleFailures(w http.ResponseWriter, r *http.Request) {
	entries, err := h.audits.Failures(r.Context(), queryLimit(r))
	if err != nil {
		writeError(w, domain.Wrap(domain.KindInternal, "audit query failed", err))
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"entries": entries, "count": len(entries)})
}

// handleComplianceReport aggregates audit activity between the from and to
// query parameters (RFC 3339). Defaults to the trailing 30 days.
func (h *AuditorHandler) handleComplianceReport(w http.ResponseWriter, r *http.Request) {
	to := time.Now().UTC()
	from := to.AddDate(0, 0, -30)

	if raw := r.URL.Query().Get("from"); raw != "" {
		parsed, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			writeError(w, domain.E(domain.KindValidation, "invalid 'from' timestamp"))
			return
		}
		from = parsed
	}
	if raw := r.URL.Query().Get("to"); raw != "" {
		parsed, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			writeError(w, domain.E(domain.KindValidation, "invalid 'to' timestamp"))
			return
		}
		to = parsed
	}
	if !from.Before(to) {
		writeError(w, domain.E(domain.KindValidation, "'from' must be before 'to'"))
		return
	}

	report, err := h.audits.ComplianceReport(r.Context(), from, to)
	if err != nil {
		writeError(w, domain.Wrap(domain.KindInternal, "compliance report failed", err))
		return
	}
	writeJSON(w, http.StatusOK, report)
}
