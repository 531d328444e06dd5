package domain

// Role names recognized by the policy engine and workflow role checks.
const (
	RoleOperator   = "operator"
	RoleSupervisor = "supervisor"
	RoleAuditor    = "auditor"
	RoleAdmin      = "admin"
)

// KnownRole reports whether role is one of the configured roles.
func KnownRole(role string) bool {
	switch role {
	case RoleOperator, RoleSupervisor, RoleAuditor, RoleAdmin:
		return true
	}
	return false
}
