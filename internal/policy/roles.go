package policy

import "entryledger/internal/domain"

// roleScopes is the static role-to-scope configuration. It is built once and
// never mutated, so evaluations share it without locking. Admin bypasses
// matching entirely; its list exists for introspection only.
var roleScopes = map[string][]Scope{
	domain.RoleOperator: {
		{ID: "data:create", Resource: "data", Action: "create"},
		{ID: "data:read:own", Resource: "data", Action: "read", Filter: FilterOwn},
		{ID: "data:update:own", Resource: "data", Action: "update", Filter: FilterOwn, Constraint: ConstraintUnconfirmed},
	},
	domain.RoleSupervisor: {
		{ID: "data:read:all", Resource: "data", Action: "read", Filter: FilterAll},
		{ID: "data:confirm", Resource: "data", Action: "confirm"},
		{ID: "data:correct", Resource: "data", Action: "correct"},
		{ID: "data:reject", Resource: "data", Action: "reject"},
		{ID: "reports:read", Resource: "reports", Action: "read"},
	},
	domain.RoleAuditor: {
		{ID: "data:read:all", Resource: "data", Action: "read", Filter: FilterAll},
		{ID: "audit:read", Resource: "audit", Action: "read"},
		{ID: "reports:read", Resource: "reports", Action: "read"},
		{ID: "events:read", Resource: "events", Action: "read"},
		{ID: "users:read", Resource: "users", Action: "read"},
	},
	domain.RoleAdmin: {
		{ID: "users:manage", Resource: "users", Action: "manage"},
		{ID: "roles:manage", Resource: "roles", Action: "manage"},
		{ID: "system:configure", Resource: "system", Action: "configure"},
		{ID: "health:read", Resource: "health", Action: "read"},
		{ID: "metrics:read", Resource: "metrics", Action: "read"},
		{ID: "data:read:all", Resource: "data", Action: "read", Filter: FilterAll},
		{ID: "audit:read", Resource: "audit", Action: "read"},
		{ID: "events:read", Resource: "events", Action: "read"},
	},
}

// ScopesForRole returns the scope ids configured for a role, for
// introspection surfaces. Unknown roles yield nil.
func ScopesForRole(role string) []string {
	scopes, ok := roleScopes[role]
	if !ok {
		return nil
	}
	ids := make([]string, len(scopes))
	for i, s := range scopes {
		ids[i] = s.ID
	}
	return ids
}
