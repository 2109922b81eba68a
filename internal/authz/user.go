package authz

import "bikefleet-backend/internal/domain"

// UserPolicy governs staff-account management. Rank comparison gates
// everything before any team scoping: you may only manage accounts that
// rank strictly worse than yours, you may never manage yourself here
// (self-service profile editing is a separate flow), and a Super Admin
// account can only be touched by another Super Admin.
type UserPolicy struct{}

func NewUserPolicy() *UserPolicy {
	return &UserPolicy{}
}

func (p *UserPolicy) ViewAny(actor Actor) Decision {
	if d, done := gate(actor); done {
		return d
	}
	if actor.HasAnyRole(domain.RoleOwner, domain.RoleSupervisor) {
		return Allow()
	}
	return Deny(ReasonRoleInsufficient)
}

func (p *UserPolicy) View(actor Actor, target Actor) Decision {
	if d, done := gate(actor); done {
		return d
	}
	if target.ID == actor.ID {
		return Allow()
	}
	if actor.HasAnyRole(domain.RoleOwner, domain.RoleSupervisor) {
		return Allow()
	}
	return Deny(ReasonRoleInsufficient)
}

func (p *UserPolicy) Update(actor Actor, target Actor) Decision {
	return p.manage(actor, target)
}

func (p *UserPolicy) Delete(actor Actor, target Actor) Decision {
	return p.manage(actor, target)
}

func (p *UserPolicy) Restore(actor Actor, target Actor) Decision {
	if !actor.Authenticated() {
		return Deny(ReasonNotAuthenticated)
	}
	if actor.IsSuperAdmin() {
		return Allow()
	}
	if !Outranks(actor, target) {
		return Deny(ReasonRoleInsufficient)
	}
	return Allow()
}

func (p *UserPolicy) ForceDelete(actor Actor, target Actor) Decision {
	if !actor.Authenticated() {
		return Deny(ReasonNotAuthenticated)
	}
	// Only another Super Admin may force-delete a Super Admin account.
	if actor.IsSuperAdmin() {
		return Allow()
	}
	return Deny(ReasonRoleInsufficient)
}

// ChangeRole requires that the actor outranks the target's current rank,
// that the new role ranks strictly worse than the actor's own, and that
// Super Admin is never granted by anyone but a Super Admin.
func (p *UserPolicy) ChangeRole(actor Actor, target Actor, newRole domain.Role) Decision {
	if !actor.Authenticated() {
		return Deny(ReasonNotAuthenticated)
	}
	if target.ID == actor.ID {
		return Deny(ReasonConflict)
	}
	if actor.IsSuperAdmin() {
		return Allow()
	}
	if !Outranks(actor, target) {
		return Deny(ReasonRoleInsufficient)
	}
	if !CanGrantRole(actor, newRole) {
		return Deny(ReasonRoleInsufficient)
	}
	return Allow()
}

func (p *UserPolicy) manage(actor Actor, target Actor) Decision {
	if !actor.Authenticated() {
		return Deny(ReasonNotAuthenticated)
	}
	if target.ID == actor.ID {
		return Deny(ReasonConflict)
	}
	if actor.IsSuperAdmin() {
		return Allow()
	}
	if !Outranks(actor, target) {
		return Deny(ReasonRoleInsufficient)
	}
	return Allow()
}
