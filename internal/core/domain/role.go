package domain

import "strings"

// Role determines which views and resources an identity may reach.
type Role string

const (
	RoleUser       Role = "USER"
	RoleTechnician Role = "TECHNICIAN"
	RoleAdmin      Role = "ADMIN"
	RoleSuperAdmin Role = "SUPERADMIN"
)

// AllRoles lists every role the backend issues.
func AllRoles() []Role {
	return []Role{RoleUser, RoleTechnician, RoleAdmin, RoleSuperAdmin}
}

func (r Role) IsValid() bool {
	switch r {
	case RoleUser, RoleTechnician, RoleAdmin, RoleSuperAdmin:
		return true
	default:
		return false
	}
}

// ParseRole accepts any casing ("admin", "Admin") and reports whether the
// result is a known role.
func ParseRole(s string) (Role, bool) {
	r := Role(strings.ToUpper(strings.TrimSpace(s)))
	return r, r.IsValid()
}

// In reports whether r is one of roles.
func (r Role) In(roles []Role) bool {
	for _, candidate := range roles {
		if candidate == r {
			return true
		}
	}
	return false
}
