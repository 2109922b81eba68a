package authz

import (
	"context"

	"bikefleet-backend/internal/domain"
)

// TeamPolicy. Team creation is reserved for the Owner role; day-to-day
// member management is open to the team's designated owner and to a
// Supervisor whose currently selected team is this team.
type TeamPolicy struct {
	scope *ScopeResolver
}

func NewTeamPolicy(scope *ScopeResolver) *TeamPolicy {
	return &TeamPolicy{scope: scope}
}

func (p *TeamPolicy) Create(actor Actor) Decision {
	if d, done := gate(actor); done {
		return d
	}
	if actor.HasRole(domain.RoleOwner) {
		return Allow()
	}
	return Deny(ReasonRoleInsufficient)
}

func (p *TeamPolicy) View(ctx context.Context, actor Actor, team *domain.Team) (Decision, error) {
	if d, done := gate(actor); done {
		return d, nil
	}
	ok, err := p.scope.InScope(ctx, actor.ID, team.ID)
	if err != nil {
		return Decision{}, err
	}
	if ok {
		return Allow(), nil
	}
	return Deny(ReasonOutOfScope), nil
}

func (p *TeamPolicy) Update(ctx context.Context, actor Actor, team *domain.Team) (Decision, error) {
	return p.ownerOrSupervisorHere(ctx, actor, team)
}

func (p *TeamPolicy) Delete(ctx context.Context, actor Actor, team *domain.Team) (Decision, error) {
	if d, done := gate(actor); done {
		return d, nil
	}
	ok, err := p.scope.IsOwner(ctx, actor.ID, team.ID)
	if err != nil {
		return Decision{}, err
	}
	if ok {
		return Allow(), nil
	}
	return Deny(ReasonOutOfScope), nil
}

func (p *TeamPolicy) AddTeamMember(ctx context.Context, actor Actor, team *domain.Team) (Decision, error) {
	return p.ownerOrSupervisorHere(ctx, actor, team)
}

func (p *TeamPolicy) UpdateTeamMember(ctx context.Context, actor Actor, team *domain.Team) (Decision, error) {
	return p.ownerOrSupervisorHere(ctx, actor, team)
}

// RemoveTeamMember forbids removing yourself, and restricts a Supervisor
// to removing Staff-rank members only; the team owner may remove anyone
// but themselves.
func (p *TeamPolicy) RemoveTeamMember(ctx context.Context, actor Actor, team *domain.Team, target Actor) (Decision, error) {
	if !actor.Authenticated() {
		return Deny(ReasonNotAuthenticated), nil
	}
	if target.ID == actor.ID {
		return Deny(ReasonConflict), nil
	}
	if actor.IsSuperAdmin() {
		return Allow(), nil
	}
	owner, err := p.scope.IsOwner(ctx, actor.ID, team.ID)
	if err != nil {
		return Decision{}, err
	}
	if owner {
		return Allow(), nil
	}
	if actor.HasRole(domain.RoleSupervisor) && actor.CurrentTeamIs(team.ID) {
		if RankOf(target.Roles) > RankOfRole(domain.RoleSupervisor) {
			return Allow(), nil
		}
		return Deny(ReasonRoleInsufficient), nil
	}
	return Deny(ReasonOutOfScope), nil
}

func (p *TeamPolicy) ForceDelete(actor Actor, team *domain.Team) Decision {
	if d, done := gate(actor); done {
		return d
	}
	return Deny(ReasonRoleInsufficient)
}

// ownerOrSupervisorHere: the team's designated owner, or a Supervisor
// whose current team equals this team. Plain membership is not enough.
func (p *TeamPolicy) ownerOrSupervisorHere(ctx context.Context, actor Actor, team *domain.Team) (Decision, error) {
	if d, done := gate(actor); done {
		return d, nil
	}
	ok, err := p.scope.IsOwner(ctx, actor.ID, team.ID)
	if err != nil {
		return Decision{}, err
	}
	if ok {
		return Allow(), nil
	}
	if actor.HasRole(domain.RoleSupervisor) && actor.CurrentTeamIs(team.ID) {
		return Allow(), nil
	}
	return Deny(ReasonOutOfScope), nil
}
