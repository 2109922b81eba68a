package authz

import (
	"context"

	"bikefleet-backend/internal/domain"
)

// RentalPolicy. Owners see rentals for any team they own or belong to;
// Supervisor and Staff only through their currently selected team. The
// narrower current-team test for the lower roles is deliberate: a
// supervisor working depot A must not act on depot B's rentals just
// because they also hold a membership there.
type RentalPolicy struct {
	scope *ScopeResolver
}

func NewRentalPolicy(scope *ScopeResolver) *RentalPolicy {
	return &RentalPolicy{scope: scope}
}

func (p *RentalPolicy) ViewAny(actor Actor) Decision {
	if d, done := gate(actor); done {
		return d
	}
	if actor.HasAnyRole(domain.RoleOwner, domain.RoleSupervisor, domain.RoleStaff) {
		return Allow()
	}
	return Deny(ReasonRoleInsufficient)
}

// View allows Owners in scope of the start or end team, and
// Supervisor/Staff whose current team is the start or end team.
func (p *RentalPolicy) View(ctx context.Context, actor Actor, rental *domain.Rental) (Decision, error) {
	if d, done := gate(actor); done {
		return d, nil
	}
	if !actor.HasAnyRole(domain.RoleOwner, domain.RoleSupervisor, domain.RoleStaff) {
		return Deny(ReasonRoleInsufficient), nil
	}
	if actor.HasRole(domain.RoleOwner) {
		ok, err := p.inScopeOfStartOrEnd(ctx, actor, rental)
		if err != nil {
			return Decision{}, err
		}
		if ok {
			return Allow(), nil
		}
	}
	if actor.HasAnyRole(domain.RoleSupervisor, domain.RoleStaff) {
		if actor.CurrentTeamIs(rental.StartTeamID) {
			return Allow(), nil
		}
		if rental.EndTeamID != nil && actor.CurrentTeamIs(*rental.EndTeamID) {
			return Allow(), nil
		}
	}
	return Deny(ReasonOutOfScope), nil
}

// Create requires membership in at least one operational (non-personal)
// team; a personal bookkeeping team is not a depot.
func (p *RentalPolicy) Create(ctx context.Context, actor Actor) (Decision, error) {
	if d, done := gate(actor); done {
		return d, nil
	}
	if !actor.HasAnyRole(domain.RoleOwner, domain.RoleSupervisor, domain.RoleStaff) {
		return Deny(ReasonRoleInsufficient), nil
	}
	ok, err := p.scope.BelongsToOperationalTeam(ctx, actor.ID)
	if err != nil {
		return Decision{}, err
	}
	if !ok {
		return Deny(ReasonOutOfScope), nil
	}
	return Allow(), nil
}

func (p *RentalPolicy) Update(ctx context.Context, actor Actor, rental *domain.Rental) (Decision, error) {
	return p.mutate(ctx, actor, rental)
}

func (p *RentalPolicy) Delete(ctx context.Context, actor Actor, rental *domain.Rental) (Decision, error) {
	return p.mutate(ctx, actor, rental)
}

func (p *RentalPolicy) Restore(ctx context.Context, actor Actor, rental *domain.Rental) (Decision, error) {
	return p.mutate(ctx, actor, rental)
}

func (p *RentalPolicy) ForceDelete(actor Actor, rental *domain.Rental) Decision {
	if d, done := gate(actor); done {
		return d
	}
	return Deny(ReasonRoleInsufficient)
}

// mutate gates update/delete on the start team only: the end team grants
// visibility, never mutation rights.
func (p *RentalPolicy) mutate(ctx context.Context, actor Actor, rental *domain.Rental) (Decision, error) {
	if d, done := gate(actor); done {
		return d, nil
	}
	if !actor.HasAnyRole(domain.RoleOwner, domain.RoleSupervisor, domain.RoleStaff) {
		return Deny(ReasonRoleInsufficient), nil
	}
	if actor.HasRole(domain.RoleOwner) {
		ok, err := p.scope.InScope(ctx, actor.ID, rental.StartTeamID)
		if err != nil {
			return Decision{}, err
		}
		if ok {
			return Allow(), nil
		}
	}
	if actor.HasAnyRole(domain.RoleSupervisor, domain.RoleStaff) && actor.CurrentTeamIs(rental.StartTeamID) {
		return Allow(), nil
	}
	return Deny(ReasonOutOfScope), nil
}

func (p *RentalPolicy) inScopeOfStartOrEnd(ctx context.Context, actor Actor, rental *domain.Rental) (bool, error) {
	ok, err := p.scope.InScope(ctx, actor.ID, rental.StartTeamID)
	if err != nil || ok {
		return ok, err
	}
	if rental.EndTeamID == nil {
		return false, nil
	}
	return p.scope.InScope(ctx, actor.ID, *rental.EndTeamID)
}
