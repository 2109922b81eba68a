package authz

import (
	"context"

	"bikefleet-backend/internal/domain"
)

// PoiPolicy is category-conditioned. A depot entry mirrors a Team record
// and is managed only by an Owner in scope of that team; Supervisors are
// excluded. Staff-pick and general entries go through an approval
// workflow: the creator may touch their own unapproved submission, and
// Supervisor/Owner manage them scoped by team when one is set.
type PoiPolicy struct {
	scope *ScopeResolver
}

func NewPoiPolicy(scope *ScopeResolver) *PoiPolicy {
	return &PoiPolicy{scope: scope}
}

func (p *PoiPolicy) ViewAny(actor Actor) Decision {
	if d, done := gate(actor); done {
		return d
	}
	if actor.HasAnyRole(domain.RoleOwner, domain.RoleSupervisor, domain.RoleStaff) {
		return Allow()
	}
	return Deny(ReasonRoleInsufficient)
}

func (p *PoiPolicy) View(actor Actor, poi *domain.PointOfInterest) Decision {
	return p.ViewAny(actor)
}

func (p *PoiPolicy) Create(ctx context.Context, actor Actor, poi *domain.PointOfInterest) (Decision, error) {
	if d, done := gate(actor); done {
		return d, nil
	}
	if poi.Category == domain.PoiCategoryDepot {
		return p.depotManage(ctx, actor, poi)
	}
	if !actor.HasAnyRole(domain.RoleOwner, domain.RoleSupervisor, domain.RoleStaff) {
		return Deny(ReasonRoleInsufficient), nil
	}
	if poi.TeamID != nil {
		ok, err := p.scope.InScope(ctx, actor.ID, *poi.TeamID)
		if err != nil {
			return Decision{}, err
		}
		if !ok {
			return Deny(ReasonOutOfScope), nil
		}
	}
	return Allow(), nil
}

func (p *PoiPolicy) Update(ctx context.Context, actor Actor, poi *domain.PointOfInterest) (Decision, error) {
	return p.manage(ctx, actor, poi)
}

func (p *PoiPolicy) Delete(ctx context.Context, actor Actor, poi *domain.PointOfInterest) (Decision, error) {
	return p.manage(ctx, actor, poi)
}

func (p *PoiPolicy) Restore(ctx context.Context, actor Actor, poi *domain.PointOfInterest) (Decision, error) {
	return p.manage(ctx, actor, poi)
}

// Approve is an idempotent refusal on an already-approved entry, not an
// error: nothing would change.
func (p *PoiPolicy) Approve(ctx context.Context, actor Actor, poi *domain.PointOfInterest) (Decision, error) {
	if !actor.Authenticated() {
		return Deny(ReasonNotAuthenticated), nil
	}
	if poi.Approved {
		return Deny(ReasonAlreadyInTargetState), nil
	}
	if actor.IsSuperAdmin() {
		return Allow(), nil
	}
	if poi.Category == domain.PoiCategoryDepot {
		return p.depotManage(ctx, actor, poi)
	}
	return p.supervisorOrOwnerScoped(ctx, actor, poi)
}

// ToggleActive requires an approved entry; an unapproved one has no
// visibility to toggle.
func (p *PoiPolicy) ToggleActive(ctx context.Context, actor Actor, poi *domain.PointOfInterest) (Decision, error) {
	if !actor.Authenticated() {
		return Deny(ReasonNotAuthenticated), nil
	}
	if !poi.Approved {
		return Deny(ReasonInvalidStateTransition), nil
	}
	if actor.IsSuperAdmin() {
		return Allow(), nil
	}
	if poi.Category == domain.PoiCategoryDepot {
		return p.depotManage(ctx, actor, poi)
	}
	return p.supervisorOrOwnerScoped(ctx, actor, poi)
}

func (p *PoiPolicy) ForceDelete(actor Actor, poi *domain.PointOfInterest) Decision {
	if d, done := gate(actor); done {
		return d
	}
	return Deny(ReasonRoleInsufficient)
}

func (p *PoiPolicy) manage(ctx context.Context, actor Actor, poi *domain.PointOfInterest) (Decision, error) {
	if d, done := gate(actor); done {
		return d, nil
	}
	if poi.Category == domain.PoiCategoryDepot {
		return p.depotManage(ctx, actor, poi)
	}
	// Creators may rework their own submission while it is unapproved.
	if !poi.Approved && poi.CreatedBy == actor.ID && actor.HasAnyRole(domain.RoleOwner, domain.RoleSupervisor, domain.RoleStaff) {
		return Allow(), nil
	}
	return p.supervisorOrOwnerScoped(ctx, actor, poi)
}

// depotManage allows only an Owner in scope of the paired team.
func (p *PoiPolicy) depotManage(ctx context.Context, actor Actor, poi *domain.PointOfInterest) (Decision, error) {
	if !actor.HasRole(domain.RoleOwner) {
		return Deny(ReasonRoleInsufficient), nil
	}
	if poi.TeamID == nil {
		return Deny(ReasonInvalidStateTransition), nil
	}
	ok, err := p.scope.InScope(ctx, actor.ID, *poi.TeamID)
	if err != nil {
		return Decision{}, err
	}
	if !ok {
		return Deny(ReasonOutOfScope), nil
	}
	return Allow(), nil
}

// supervisorOrOwnerScoped allows Supervisor or Owner, scoped by the
// entry's team when one is set; a nil team means a general entry any
// Supervisor or Owner may manage.
func (p *PoiPolicy) supervisorOrOwnerScoped(ctx context.Context, actor Actor, poi *domain.PointOfInterest) (Decision, error) {
	if !actor.HasAnyRole(domain.RoleOwner, domain.RoleSupervisor) {
		return Deny(ReasonRoleInsufficient), nil
	}
	if poi.TeamID == nil {
		return Allow(), nil
	}
	ok, err := p.scope.InScope(ctx, actor.ID, *poi.TeamID)
	if err != nil {
		return Decision{}, err
	}
	if !ok {
		return Deny(ReasonOutOfScope), nil
	}
	return Allow(), nil
}
