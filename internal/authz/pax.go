package authz

import "bikefleet-backend/internal/domain"

// PaxPolicy. Passenger profiles are visible to all staff; the linked PWA
// account may view and edit its own profile. Deleting is an Owner
// operation, and force-delete is never allowed, not even for a Super
// Admin: profiles back rental history.
type PaxPolicy struct{}

func NewPaxPolicy() *PaxPolicy {
	return &PaxPolicy{}
}

func (p *PaxPolicy) ViewAny(actor Actor) Decision {
	if d, done := gate(actor); done {
		return d
	}
	if actor.HasAnyRole(domain.RoleOwner, domain.RoleSupervisor, domain.RoleStaff) {
		return Allow()
	}
	return Deny(ReasonRoleInsufficient)
}

func (p *PaxPolicy) Create(actor Actor) Decision {
	return p.ViewAny(actor)
}

func (p *PaxPolicy) View(actor Actor, profile *domain.PaxProfile) Decision {
	return p.staffOrSelf(actor, profile)
}

func (p *PaxPolicy) Update(actor Actor, profile *domain.PaxProfile) Decision {
	return p.staffOrSelf(actor, profile)
}

func (p *PaxPolicy) Delete(actor Actor, profile *domain.PaxProfile) Decision {
	if d, done := gate(actor); done {
		return d
	}
	if actor.HasRole(domain.RoleOwner) {
		return Allow()
	}
	return Deny(ReasonRoleInsufficient)
}

func (p *PaxPolicy) Restore(actor Actor, profile *domain.PaxProfile) Decision {
	return p.Delete(actor, profile)
}

// ForceDelete is denied for everyone; the super-admin override does not
// apply here.
func (p *PaxPolicy) ForceDelete(actor Actor, profile *domain.PaxProfile) Decision {
	if !actor.Authenticated() {
		return Deny(ReasonNotAuthenticated)
	}
	return Deny(ReasonRoleInsufficient)
}

func (p *PaxPolicy) staffOrSelf(actor Actor, profile *domain.PaxProfile) Decision {
	if d, done := gate(actor); done {
		return d
	}
	if actor.HasAnyRole(domain.RoleOwner, domain.RoleSupervisor, domain.RoleStaff) {
		return Allow()
	}
	if profile.LinkedTo(actor.ID) {
		return Allow()
	}
	return Deny(ReasonRoleInsufficient)
}
