package httptransport

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"entryledger/internal/domain"
	"entryledger/internal/eventstore"
	"entryledger/internal/policy"
)

// Rebuilder replays the event store into the projection cache.
type Rebuilder interface {
	Rebuild(ctx context.Context, events eventstore.Store) error
}

// AdminHandler serves operational endpoints: projection rebuild and role
// configuration introspection.
type AdminHandler struct {
	rebuilder Rebuilder
	events    eventstore.Store
	logger    *slog.Logger
}

func NewAdminHandler(rebuilder Rebuilder, events eventstore.Store, logger *slog.Logger) *AdminHandler {
	return &AdminHandler{rebuilder: rebuilder, events: events, logger: logger}
}

// Register mounts admin endpoints on the router.
func (h *AdminHandler) Register(r chi.Router, authz *Authorizer) {
	r.With(authz.Require("system", "configure")).Post("/admin/projection/rebuild", h.handleRebuild)
	r.With(authz.Require("roles", "manage")).Get("/admin/roles", h.handleRoles)
	r.With(authz.Require("roles", "manage")).Get("/admin/roles/{role}", h.handleRoleScopes)
}

func (h *AdminHandler) handleRebuild(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	if err := h.rebuilder.Rebuild(ctx, h.events); err != nil {
		h.logger.ErrorContext(ctx, "projection rebuild failed", "error", err)
		writeError(w, domain.Wrap(domain.KindInternal, "projection rebuild failed", err))
		return
	}
	h.logger.InfoContext(ctx, "projection rebuilt")
	writeJSON(w, http.StatusOK, map[string]string{"status": "rebuilt"})
}

func (h *AdminHandler) handleRoles(w http.ResponseWriter, r *http.Request) {
	roles := []string{domain.RoleOperator, domain.RoleSupervisor, domain.RoleAuditor, domain.RoleAdmin}
	out := make(map[string][]string, len(roles))
	for _, role := range roles {
		out[role] = policy.ScopesForRole(role)
	}
	writeJSON(w, http.StatusOK, map[string]any{"roles": out})
}

func (h *AdminHandler) handleRoleScopes(w http.ResponseWriter, r *http.Request) {
	role := chi.URLParam(r, "role")
	if !domain.KnownRole(role) {
		writeError(w, domain.Ef(domain.KindUnknownRole, "unknown role: %q", role))
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"role":   role,
		"scopes": policy.ScopesForRole(role),
	})
}
