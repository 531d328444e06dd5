package policy

import (
	"log/slog"
	"slices"

	"entryledger/internal/domain"
)

// AdminScope is the matched-scope identifier reported for the admin bypass.
const AdminScope = "admin:all"

// Permission is one authorization question: can this role, holding these
// scopes, perform action on resource in the given context. Not persisted.
type Permission struct {
	Resource string
	Action   string
	// ResourceID is the specific resource targeted, when known.
	ResourceID string
	// OwnerID supports the "own" filter. The engine checks presence only;
	// comparing it to the caller identity is the caller layer's job.
	OwnerID string
	// ResourceStatus supports constraint checks such as "unconfirmed".
	ResourceStatus string
}

// Decision is the outcome of one evaluation. The reason string is safe to
// surface to callers as-is.
type Decision struct {
	Allowed      bool
	Reason       string
	MatchedScope string
}

// Engine evaluates (role, granted scopes, permission) tuples with
// default-deny semantics. It holds only the immutable role-scope map, so a
// single instance serves all requests concurrently.
type Engine struct {
	logger *slog.Logger
}

// NewEngine creates a policy engine.
func NewEngine(logger *slog.Logger) *Engine {
	return &Engine{logger: logger}
}

// Evaluate decides whether the request is allowed. Access is denied unless a
// role-configured scope matches the resource:action, is among the granted
// scope ids, and has its filter and constraint satisfied. Admin bypasses
// matching entirely.
func (e *Engine) Evaluate(role string, grantedScopes []string, perm Permission) (Decision, error) {
	if role == domain.RoleAdmin {
		return Decision{
			Allowed:      true,
			Reason:       "admin role has all permissions",
			MatchedScope: AdminScope,
		}, nil
	}
	if !domain.KnownRole(role) {
		return Decision{}, domain.Ef(domain.KindUnknownRole, "unknown role: %q", role)
	}

	scopes := roleScopes[role]
	if len(scopes) == 0 {
		return Decision{
			Allowed: false,
			Reason:  "role '" + role + "' has no defined scopes",
		}, nil
	}

	var matching []Scope
	for _, s := range scopes {
		if s.Matches(perm.Resource, perm.Action) && slices.Contains(grantedScopes, s.ID) {
			matching = append(matching, s)
		}
	}
	if len(matching) == 0 {
		e.logger.Warn("access denied: no matching scope",
			"role", role,
			"resource", perm.Resource,
			"action", perm.Action,
		)
		return Decision{
			Allowed: false,
			Reason:  "no scope grants " + perm.Resource + ":" + perm.Action + " for role '" + role + "'",
		}, nil
	}

	for _, s := range matching {
		if e.satisfied(s, perm) {
			return Decision{
				Allowed:      true,
				Reason:       "access granted via scope '" + s.ID + "'",
				MatchedScope: s.ID,
			}, nil
		}
	}
	return Decision{
		Allowed: false,
		Reason:  "scope filters or constraints not satisfied for " + perm.Resource + ":" + perm.Action,
	}, nil
}

// satisfied evaluates a scope's filter and constraint against the permission
// context.
//
// The "own" filter checks only that an owner id is present in the request;
// comparing it against the authenticated user happens in the layer that knows
// that identity. Tightening this here would silently change behavior callers
// rely on.
func (e *Engine) satisfied(s Scope, perm Permission) bool {
	switch s.Filter {
	case FilterOwn:
		if perm.OwnerID == "" {
			e.logger.Warn("ownership check failed: no owner_id in permission context",
				"scope", s.ID,
			)
			return false
		}
	case FilterAll, "":
	}

	if s.Constraint == ConstraintUnconfirmed && perm.ResourceStatus != ConstraintUnconfirmed {
		e.logger.Warn("constraint check failed",
			"scope", s.ID,
			"constraint", s.Constraint,
			"resource_status", perm.ResourceStatus,
		)
		return false
	}
	return true
}
