package domain

import "fmt"

// Role is a global staff-hierarchy role, plus the out-of-band PWA role
// used by passenger accounts. Role names are fixed; unknown strings are
// rejected at the boundary by ParseRole.
type Role string

const (
	RoleSuperAdmin Role = "Super Admin"
	RoleOwner      Role = "Owner"
	RoleSupervisor Role = "Supervisor"
	RoleStaff      Role = "Staff"
	RolePwaUser    Role = "PWA User"
)

// ParseRole validates a role string against the closed role set.
func ParseRole(s string) (Role, error) {
	switch Role(s) {
	case RoleSuperAdmin, RoleOwner, RoleSupervisor, RoleStaff, RolePwaUser:
		return Role(s), nil
	}
	return "", fmt.Errorf("unknown role %q", s)
}

// IsStaffRole reports whether r is part of the staff hierarchy
// (everything except the PWA passenger role).
func (r Role) IsStaffRole() bool {
	switch r {
	case RoleSuperAdmin, RoleOwner, RoleSupervisor, RoleStaff:
		return true
	}
	return false
}

type User struct {
	ID            int32   `json:"id"`
	Email         string  `json:"email"`
	PasswordHash  string  `json:"-"`
	Name          string  `json:"name"`
	Roles         []Role  `json:"roles"`
	CurrentTeamID *int32  `json:"current_team_id"`
	ExternalID    *string `json:"external_id,omitempty"` // SSO subject id
	CreatedOn     string  `json:"created_on"`
	UpdatedOn     string  `json:"updated_on"`
	DeletedOn     *string `json:"deleted_on,omitempty"`
}

// HasRole reports whether the user holds the given role.
func (u *User) HasRole(role Role) bool {
	for _, r := range u.Roles {
		if r == role {
			return true
		}
	}
	return false
}

// HasAnyStaffRole reports whether the user holds at least one
// staff-hierarchy role.
func (u *User) HasAnyStaffRole() bool {
	for _, r := range u.Roles {
		if r.IsStaffRole() {
			return true
		}
	}
	return false
}
