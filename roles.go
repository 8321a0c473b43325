package lrs

// Role is the user's role. It is the sole authorization axis in the client;
// no finer grained permissions exist in this layer.
type Role string

const (
	// RoleStudent can view public schedules and the dashboard
	RoleStudent Role = "student"
	// RoleLecturer manages courses, enrollments, schedules and notification preferences
	RoleLecturer Role = "lecturer"
	// RoleSuperAdmin additionally creates user accounts
	RoleSuperAdmin Role = "super_admin"
)

// IsValid checks if the role is one of the predefined valid roles
func (r Role) IsValid() bool {
	switch r {
	case RoleStudent, RoleLecturer, RoleSuperAdmin:
		return true
	default:
		return false
	}
}

// OneOf reports whether the role is a member of the given allow list.
func (r Role) OneOf(roles ...Role) bool {
	for _, candidate := range roles {
		if r == candidate {
			return true
		}
	}
	return false
}

// Label returns a human readable name for the role
func (r Role) Label() string {
	switch r {
	case RoleStudent:
		return "Student"
	case RoleLecturer:
		return "Lecturer"
	case RoleSuperAdmin:
		return "Super Admin"
	default:
		return string(r)
	}
}

// AllRoles returns all predefined roles
func AllRoles() []Role {
	return []Role{
		RoleStudent,
		RoleLecturer,
		RoleSuperAdmin,
	}
}

// ParseRole safely parses a string into a Role type
func ParseRole(roleStr string) (Role, bool) {
	role := Role(roleStr)
	return role, role.IsValid()
}
