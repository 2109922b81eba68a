package authz

import "bikefleet-backend/internal/domain"

// DeparturePolicy. Ship departures are shared reference data: no team
// scoping at all. Any staff role may manage them; only force-delete is
// reserved for Super Admin.
type DeparturePolicy struct{}

func NewDeparturePolicy() *DeparturePolicy {
	return &DeparturePolicy{}
}

func (p *DeparturePolicy) ViewAny(actor Actor) Decision {
	return p.anyStaff(actor)
}

func (p *DeparturePolicy) View(actor Actor, dep *domain.ShipDeparture) Decision {
	return p.anyStaff(actor)
}

func (p *DeparturePolicy) Create(actor Actor) Decision {
	return p.anyStaff(actor)
}

func (p *DeparturePolicy) Update(actor Actor, dep *domain.ShipDeparture) Decision {
	return p.anyStaff(actor)
}

func (p *DeparturePolicy) Delete(actor Actor, dep *domain.ShipDeparture) Decision {
	return p.anyStaff(actor)
}

func (p *DeparturePolicy) Restore(actor Actor, dep *domain.ShipDeparture) Decision {
	return p.anyStaff(actor)
}

func (p *DeparturePolicy) ToggleActive(actor Actor, dep *domain.ShipDeparture) Decision {
	return p.anyStaff(actor)
}

func (p *DeparturePolicy) ForceDelete(actor Actor, dep *domain.ShipDeparture) Decision {
	if d, done := gate(actor); done {
		return d
	}
	return Deny(ReasonRoleInsufficient)
}

func (p *DeparturePolicy) anyStaff(actor Actor) Decision {
	if d, done := gate(actor); done {
		return d
	}
	if actor.HasAnyRole(domain.RoleOwner, domain.RoleSupervisor, domain.RoleStaff) {
		return Allow()
	}
	return Deny(ReasonRoleInsufficient)
}
