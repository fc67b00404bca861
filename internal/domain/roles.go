package domain

// AgentRole identifies a reviewer seat on the hiring panel. Roles double as
// working-memory map keys and interview-plan assignment targets, so every
// role string that crosses a serialization boundary is validated against
// this set.
type AgentRole string

const (
	// RoleHR reviews seniority signals, leadership, communication, and
	// career trajectory.
	RoleHR AgentRole = "HR"

	// RoleTech reviews system depth, production readiness, and reliability
	// practices.
	RoleTech AgentRole = "Tech"

	// RoleProduct reviews user impact, product sense, and scope judgment.
	// Seated only when the panel configuration enables it.
	RoleProduct AgentRole = "Product"

	// RoleCompliance reviews PII handling, bias risk, and security posture.
	RoleCompliance AgentRole = "Compliance"
)

// IsValidAgentRole reports whether the role is a recognized panel seat.
func IsValidAgentRole(role AgentRole) bool {
	switch role {
	case RoleHR, RoleTech, RoleProduct, RoleCompliance:
		return true
	default:
		return false
	}
}

// AllAgentRoles returns every recognized panel role. The slice is a fresh
// copy; callers may reorder it.
func AllAgentRoles() []AgentRole {
	return []AgentRole{RoleHR, RoleTech, RoleProduct, RoleCompliance}
}
