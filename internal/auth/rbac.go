package auth

import "strings"

type Role string

const (
	RoleUser       Role = "user"
	RoleAdmin      Role = "admin"
	RoleSuperAdmin Role = "superadmin"
)

// NormalizeRole maps unknown roles to RoleUser.
func NormalizeRole(role string) Role {
	switch strings.ToLower(strings.TrimSpace(role)) {
	case string(RoleAdmin):
		return RoleAdmin
	case string(RoleSuperAdmin):
		return RoleSuperAdmin
	default:
		return RoleUser
	}
}

func HasRole(role string, allowed ...Role) bool {
	if len(allowed) == 0 {
		return false
	}
	current := NormalizeRole(role)
	for _, candidate := range allowed {
		if current == candidate {
			return true
		}
	}
	return false
}

// IsAdmin is true for both organizer roles.
func IsAdmin(role string) bool {
	return HasRole(role, RoleAdmin, RoleSuperAdmin)
}
