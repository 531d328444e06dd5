package httptransport

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"github.com/mssola/useragent"

	"entryledger/internal/audit"
	"entryledger/internal/domain"
	"entryledger/internal/eventstore"
	"entryledger/internal/identity"
	"entryledger/internal/platform/metrics"
	"entryledger/internal/policy"
)

// StateReader resolves the current status of an entry so constraint checks
// can see it. The workflow service satisfies this.
type StateReader interface {
	CurrentState(ctx context.Context, entryID uuid.UUID) (eventstore.CurrentState, error)
}

type contextKeyScope struct{}

// GrantedScope returns the scope that authorized the current request, when
// the authorization middleware matched one.
func GrantedScope(ctx context.Context) string {
	scope, _ := ctx.Value(contextKeyScope{}).(string)
	return scope
}

// Authorizer enforces scope-based access on routes and writes an audit entry
// for every decision and request outcome.
type Authorizer struct {
	engine  *policy.Engine
	audit   *audit.Logger
	states  StateReader
	logger  *slog.Logger
	metrics *metrics.Metrics
}

// NewAuthorizer wires the authorization middleware. states may be nil when no
// guarded route carries an entry id.
func NewAuthorizer(engine *policy.Engine, auditLog *audit.Logger, states StateReader, logger *slog.Logger, m *metrics.Metrics) *Authorizer {
	return &Authorizer{
		engine:  engine,
		audit:   auditLog,
		states:  states,
		logger:  logger,
		metrics: m,
	}
}

// Require guards a route with a resource:action check. The decision and the
// eventual request outcome are both recorded in the audit trail.
func (a *Authorizer) Require(resource, action string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			actor, ok := identity.ActorFrom(ctx)
			if !ok {
				writeJSON(w, http.StatusUnauthorized, errorBody{
					Error:   "unauthorized",
					Message: "authentication required",
				})
				return
			}

			perm := a.buildPermission(ctx, r, actor, resource, action)
			decision, err := a.engine.Evaluate(actor.Role, actor.Scopes, perm)
			if err != nil {
				a.metrics.ObserveDecision(false)
				a.record(ctx, r, actor, resource, action, perm, "", false, err.Error(), statusForKind(domain.KindOf(err)))
				writeError(w, err)
				return
			}
			a.metrics.ObserveDecision(decision.Allowed)

			if !decision.Allowed {
				a.record(ctx, r, actor, resource, action, perm, "", false, decision.Reason, http.StatusForbidden)
				writeError(w, domain.E(domain.KindAccessDenied, decision.Reason))
				return
			}

			ctx = context.WithValue(ctx, contextKeyScope{}, decision.MatchedScope)
			recorder := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
			next.ServeHTTP(recorder, r.WithContext(ctx))

			errMessage := ""
			if recorder.status >= http.StatusBadRequest {
				errMessage = http.StatusText(recorder.status)
			}
			a.record(ctx, r, actor, resource, action, perm, decision.MatchedScope,
				recorder.status < http.StatusBadRequest, errMessage, recorder.status)
		})
	}
}

// buildPermission assembles the authorization question for this request. The
// owner id is the caller's own id: the "own" filter is a presence check here,
// and handlers narrow reads to the caller's entries themselves. When the
// route carries an entry id, the entry's status feeds constraint checks.
func (a *Authorizer) buildPermission(ctx context.Context, r *http.Request, actor domain.Actor, resource, action string) policy.Permission {
	perm := policy.Permission{
		Resource: resource,
		Action:   action,
		OwnerID:  actor.ID.String(),
	}

	raw := chi.URLParam(r, "entryID")
	if raw == "" {
		return perm
	}
	entryID, err := uuid.Parse(raw)
	if err != nil {
		return perm
	}
	perm.ResourceID = entryID.String()

	if a.states == nil {
		return perm
	}
	state, err := a.states.CurrentState(ctx, entryID)
	if err != nil {
		// An entry that cannot be folded has no confirmed status. Letting
		// constraint checks pass here means a missing entry surfaces as the
		// workflow's entity_not_found, not as a misleading denial.
		perm.ResourceStatus = policy.ConstraintUnconfirmed
		return perm
	}
	if state.State == domain.StateConfirmed {
		perm.ResourceStatus = string(domain.StateConfirmed)
	} else {
		perm.ResourceStatus = policy.ConstraintUnconfirmed
	}
	return perm
}

func (a *Authorizer) record(ctx context.Context, r *http.Request, actor domain.Actor, resource, action string, perm policy.Permission, scope string, success bool, errMessage string, status int) {
	entry := audit.Entry{
		ActorID:       actor.ID,
		ActorRole:     actor.Role,
		ActorUsername: actor.Username,
		Action:        resource + ":" + action,
		ResourceType:  resource,
		ScopeGranted:  scope,
		RequestID:     requestID(ctx),
		RequestPath:   r.URL.Path,
		RequestMethod: r.Method,
		UserAgent:     r.UserAgent(),
		IPAddress:     r.RemoteAddr,
		Success:       success,
		ErrorMessage:  errMessage,
		StatusCode:    status,
		Context:       clientContext(r),
	}
	if perm.ResourceID != "" {
		if id, err := uuid.Parse(perm.ResourceID); err == nil {
			entry.ResourceID = id
		}
	}

	if _, err := a.audit.Log(ctx, entry); err != nil {
		a.logger.ErrorContext(ctx, "authorization audit write failed",
			"action", entry.Action,
			"actor", actor.Username,
			"error", err,
		)
	}
}

// clientContext extracts client details from the User-Agent header.
func clientContext(r *http.Request) map[string]any {
	raw := r.UserAgent()
	if raw == "" {
		return nil
	}
	ua := useragent.New(raw)
	name, version := ua.Browser()
	return map[string]any{
		"client_name":    name,
		"client_version": version,
		"client_os":      ua.OS(),
		"client_mobile":  ua.Mobile(),
		"client_bot":     ua.Bot(),
	}
}

// requestID converts the chi request id into a stable uuid for audit
// correlation. Requests without one get a fresh id.
func requestID(ctx context.Context) uuid.UUID {
	raw := chimw.GetReqID(ctx)
	if raw == "" {
		return uuid.New()
	}
	return uuid.NewSHA1(uuid.NameSpaceOID, []byte(raw))
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}
