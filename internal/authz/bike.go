package authz

import (
	"context"

	"bikefleet-backend/internal/domain"
)

// BikePolicy scopes bike access to the bike's owning team. An Owner is
// in scope when they own or belong to the team; Supervisor and Staff
// only through explicit membership.
type BikePolicy struct {
	scope *ScopeResolver
}

func NewBikePolicy(scope *ScopeResolver) *BikePolicy {
	return &BikePolicy{scope: scope}
}

func (p *BikePolicy) ViewAny(actor Actor) Decision {
	if d, done := gate(actor); done {
		return d
	}
	if actor.HasAnyRole(domain.RoleOwner, domain.RoleSupervisor, domain.RoleStaff) {
		return Allow()
	}
	return Deny(ReasonRoleInsufficient)
}

func (p *BikePolicy) View(ctx context.Context, actor Actor, bike *domain.Bike) (Decision, error) {
	if d, done := gate(actor); done {
		return d, nil
	}
	return p.scoped(ctx, actor, bike, domain.RoleOwner, domain.RoleSupervisor, domain.RoleStaff)
}

func (p *BikePolicy) Update(ctx context.Context, actor Actor, bike *domain.Bike) (Decision, error) {
	if d, done := gate(actor); done {
		return d, nil
	}
	return p.scoped(ctx, actor, bike, domain.RoleOwner, domain.RoleSupervisor)
}

func (p *BikePolicy) Delete(ctx context.Context, actor Actor, bike *domain.Bike) (Decision, error) {
	if d, done := gate(actor); done {
		return d, nil
	}
	return p.scoped(ctx, actor, bike, domain.RoleOwner, domain.RoleSupervisor)
}

func (p *BikePolicy) Restore(ctx context.Context, actor Actor, bike *domain.Bike) (Decision, error) {
	if d, done := gate(actor); done {
		return d, nil
	}
	return p.scoped(ctx, actor, bike, domain.RoleOwner, domain.RoleSupervisor, domain.RoleStaff)
}

func (p *BikePolicy) ForceDelete(actor Actor, bike *domain.Bike) Decision {
	if d, done := gate(actor); done {
		return d
	}
	return Deny(ReasonRoleInsufficient)
}

// scoped allows the verb for actors holding one of the given roles who
// are in scope of the bike's team. Owners pass on ownership or
// membership; Supervisor and Staff need membership.
func (p *BikePolicy) scoped(ctx context.Context, actor Actor, bike *domain.Bike, roles ...domain.Role) (Decision, error) {
	if !actor.HasAnyRole(roles...) {
		return Deny(ReasonRoleInsufficient), nil
	}
	if actor.HasRole(domain.RoleOwner) {
		ok, err := p.scope.InScope(ctx, actor.ID, bike.TeamID)
		if err != nil {
			return Decision{}, err
		}
		if ok {
			return Allow(), nil
		}
	}
	if actor.HasAnyRole(domain.RoleSupervisor, domain.RoleStaff) {
		ok, err := p.scope.IsMember(ctx, actor.ID, bike.TeamID)
		if err != nil {
			return Decision{}, err
		}
		if ok {
			return Allow(), nil
		}
	}
	return Deny(ReasonOutOfScope), nil
}
