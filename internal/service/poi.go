package service

import (
	"context"

	"bikefleet-backend/internal/authz"
	"bikefleet-backend/internal/domain"
	"bikefleet-backend/internal/repository"
)

type poiService struct {
	poiRepo repository.PoiRepository
	policy  *authz.PoiPolicy
	audit   *AuditLog
}

func NewPoiService(poiRepo repository.PoiRepository, policy *authz.PoiPolicy, audit *AuditLog) PoiService {
	return &poiService{
		poiRepo: poiRepo,
		policy:  policy,
		audit:   audit,
	}
}

func (s *poiService) CreatePoi(ctx context.Context, actor authz.Actor, poi *domain.PointOfInterest) error {
	d, err := s.policy.Create(ctx, actor, poi)
	if err != nil {
		return err
	}
	if !d.Allowed {
		return forbidden(d)
	}
	poi.CreatedBy = actor.ID
	// Depot entries mirror team records and skip the approval queue;
	// everything else waits for review.
	poi.Approved = poi.Category == domain.PoiCategoryDepot
	return s.poiRepo.Create(ctx, poi)
}

func (s *poiService) UpdatePoi(ctx context.Context, actor authz.Actor, poi *domain.PointOfInterest) error {
	current, err := s.poiRepo.GetByID(ctx, poi.ID)
	if err != nil {
		return err
	}
	d, err := s.policy.Update(ctx, actor, current)
	if err != nil {
		return err
	}
	if !d.Allowed {
		return forbidden(d)
	}
	// Category, pairing and review state are fixed after creation.
	poi.Category = current.Category
	poi.TeamID = current.TeamID
	poi.Approved = current.Approved
	poi.Active = current.Active
	poi.CreatedBy = current.CreatedBy
	return s.poiRepo.Update(ctx, poi)
}

func (s *poiService) DeletePoi(ctx context.Context, actor authz.Actor, poiID int32) error {
	current, err := s.poiRepo.GetByID(ctx, poiID)
	if err != nil {
		return err
	}
	d, err := s.policy.Delete(ctx, actor, current)
	if err != nil {
		return err
	}
	if !d.Allowed {
		return forbidden(d)
	}
	return s.poiRepo.SoftDelete(ctx, poiID)
}

func (s *poiService) ApprovePoi(ctx context.Context, actor authz.Actor, poiID int32) error {
	current, err := s.poiRepo.GetByID(ctx, poiID)
	if err != nil {
		return err
	}
	d, err := s.policy.Approve(ctx, actor, current)
	if err != nil {
		return err
	}
	s.audit.Decision(ctx, actor, "approve", "poi", poiID, d)
	if !d.Allowed {
		return forbidden(d)
	}
	return s.poiRepo.SetApproved(ctx, poiID, true)
}

func (s *poiService) TogglePoiActive(ctx context.Context, actor authz.Actor, poiID int32) error {
	current, err := s.poiRepo.GetByID(ctx, poiID)
	if err != nil {
		return err
	}
	d, err := s.policy.ToggleActive(ctx, actor, current)
	if err != nil {
		return err
	}
	if !d.Allowed {
		return forbidden(d)
	}
	return s.poiRepo.SetActive(ctx, poiID, !current.Active)
}
