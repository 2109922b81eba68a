package service

import (
	"context"

	"bikefleet-backend/internal/authz"
	"bikefleet-backend/internal/domain"
	"bikefleet-backend/internal/repository"
)

type departureService struct {
	depRepo repository.DepartureRepository
	policy  *authz.DeparturePolicy
}

func NewDepartureService(depRepo repository.DepartureRepository, policy *authz.DeparturePolicy) DepartureService {
	return &departureService{
		depRepo: depRepo,
		policy:  policy,
	}
}

func (s *departureService) CreateDeparture(ctx context.Context, actor authz.Actor, dep *domain.ShipDeparture) error {
	if d := s.policy.Create(actor); !d.Allowed {
		return forbidden(d)
	}
	dep.Active = true
	return s.depRepo.Create(ctx, dep)
}

func (s *departureService) UpdateDeparture(ctx context.Context, actor authz.Actor, dep *domain.ShipDeparture) error {
	current, err := s.depRepo.GetByID(ctx, dep.ID)
	if err != nil {
		return err
	}
	if d := s.policy.Update(actor, current); !d.Allowed {
		return forbidden(d)
	}
	dep.Active = current.Active
	return s.depRepo.Update(ctx, dep)
}

func (s *departureService) ToggleDepartureActive(ctx context.Context, actor authz.Actor, depID int32) error {
	current, err := s.depRepo.GetByID(ctx, depID)
	if err != nil {
		return err
	}
	if d := s.policy.ToggleActive(actor, current); !d.Allowed {
		return forbidden(d)
	}
	return s.depRepo.SetActive(ctx, depID, !current.Active)
}

func (s *departureService) ListDepartures(ctx context.Context, actor authz.Actor) ([]domain.ShipDeparture, error) {
	if d := s.policy.ViewAny(actor); !d.Allowed {
		return nil, forbidden(d)
	}
	return s.depRepo.List(ctx)
}
