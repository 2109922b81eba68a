package authz

import "bikefleet-backend/internal/domain"

// Actor is the authenticated identity a policy decides for. TeamContext
// is the currently selected team, passed in explicitly per call rather
// than read from mutable user state, so decisions stay deterministic.
type Actor struct {
	ID          int32
	Roles       []domain.Role
	TeamContext *int32
}

// ActorFor builds an Actor from a stored user and an explicit team context.
func ActorFor(u *domain.User, teamContext *int32) Actor {
	return Actor{ID: u.ID, Roles: u.Roles, TeamContext: teamContext}
}

func (a Actor) HasRole(role domain.Role) bool {
	for _, r := range a.Roles {
		if r == role {
			return true
		}
	}
	return false
}

func (a Actor) HasAnyRole(roles ...domain.Role) bool {
	for _, role := range roles {
		if a.HasRole(role) {
			return true
		}
	}
	return false
}

func (a Actor) IsSuperAdmin() bool {
	return a.HasRole(domain.RoleSuperAdmin)
}

// Authenticated reports whether the actor carries a real identity.
func (a Actor) Authenticated() bool {
	return a.ID != 0
}

// CurrentTeamIs reports whether the actor's selected team equals teamID.
// False when no team is selected.
func (a Actor) CurrentTeamIs(teamID int32) bool {
	return a.TeamContext != nil && *a.TeamContext == teamID
}
