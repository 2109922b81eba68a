package domain

import "fmt"

// TeamRole is the per-member role label inside a team. It is a separate
// namespace from the global staff hierarchy: "admin" roughly maps to
// Supervisor duties, "editor" to Staff duties.
type TeamRole string

const (
	TeamRoleAdmin  TeamRole = "admin"
	TeamRoleEditor TeamRole = "editor"
)

// ParseTeamRole validates a member role label.
func ParseTeamRole(s string) (TeamRole, error) {
	switch TeamRole(s) {
	case TeamRoleAdmin, TeamRoleEditor:
		return TeamRole(s), nil
	}
	return "", fmt.Errorf("unknown team role %q", s)
}

// Team is a depot: the tenant boundary for bikes, rentals and
// depot points of interest. Personal teams are non-operational
// bookkeeping teams auto-created per actor and excluded from
// depot listings.
type Team struct {
	ID        int32   `json:"id"`
	Name      string  `json:"name"`
	OwnerID   int32   `json:"owner_id"`
	Personal  bool    `json:"personal"`
	CreatedOn string  `json:"created_on"`
	UpdatedOn string  `json:"updated_on"`
	DeletedOn *string `json:"deleted_on,omitempty"`
}

type TeamMember struct {
	TeamID   int32    `json:"team_id"`
	UserID   int32    `json:"user_id"`
	Role     TeamRole `json:"role"`
	JoinedOn string   `json:"joined_on"`
}
