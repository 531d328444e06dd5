package policy

import (
	"strings"

	"entryledger/internal/domain"
)

// Scope is a parsed permission descriptor. The string form is
// "resource:action[:filter]"; constraints are attached per role-scope
// definition, never parsed from the token-level string.
type Scope struct {
	ID         string
	Resource   string
	Action     string
	Filter     string
	Constraint string
}

// Filter and constraint values recognized by the engine.
const (
	FilterOwn = "own"
	FilterAll = "all"

	ConstraintUnconfirmed = "unconfirmed"
)

// ParseScope parses a colon-delimited scope string. Fewer than two segments
// is invalid.
func ParseScope(scopeID string) (Scope, error) {
	parts := strings.Split(scopeID, ":")
	if len(parts) < 2 || parts[0] == "" || parts[1] == "" {
		return Scope{}, domain.Ef(domain.KindValidation, "invalid scope format: %q", scopeID)
	}
	s := Scope{
		ID:       scopeID,
		Resource: parts[0],
		Action:   parts[1],
	}
	if len(parts) > 2 {
		s.Filter = parts[2]
	}
	return s, nil
}

// Matches reports whether the scope covers the given resource and action.
func (s Scope) Matches(resource, action string) bool {
	return s.Resource == resource && s.Action == action
}
