package service

import (
	"context"
	"fmt"

	"bikefleet-backend/internal/authz"
	"bikefleet-backend/internal/domain"
	"bikefleet-backend/internal/repository"
)

type bikeService struct {
	bikeRepo   repository.BikeRepository
	rentalRepo repository.RentalRepository
	scope      *authz.ScopeResolver
	policy     *authz.BikePolicy
}

func NewBikeService(bikeRepo repository.BikeRepository, rentalRepo repository.RentalRepository, scope *authz.ScopeResolver, policy *authz.BikePolicy) BikeService {
	return &bikeService{
		bikeRepo:   bikeRepo,
		rentalRepo: rentalRepo,
		scope:      scope,
		policy:     policy,
	}
}

func (s *bikeService) AddBike(ctx context.Context, actor authz.Actor, bike *domain.Bike) error {
	// Creation is gated the same way as updating fleet stock in the
	// target team.
	d, err := s.policy.Update(ctx, actor, bike)
	if err != nil {
		return err
	}
	if !d.Allowed {
		return forbidden(d)
	}
	if bike.Status == "" {
		bike.Status = domain.BikeStatusAvailable
	}
	return s.bikeRepo.Create(ctx, bike)
}

func (s *bikeService) GetBike(ctx context.Context, actor authz.Actor, bikeID int32) (*domain.Bike, error) {
	bike, err := s.bikeRepo.GetByID(ctx, bikeID)
	if err != nil {
		return nil, err
	}
	d, err := s.policy.View(ctx, actor, bike)
	if err != nil {
		return nil, err
	}
	if !d.Allowed {
		return nil, forbidden(d)
	}
	return bike, nil
}

// UpdateBikeStatus moves a bike through its status lifecycle. A bike
// with an in-progress rental cannot leave RENTED until the rental
// itself is resolved.
func (s *bikeService) UpdateBikeStatus(ctx context.Context, actor authz.Actor, bikeID int32, status domain.BikeStatus) error {
	bike, err := s.bikeRepo.GetByID(ctx, bikeID)
	if err != nil {
		return err
	}
	d, err := s.policy.Update(ctx, actor, bike)
	if err != nil {
		return err
	}
	if !d.Allowed {
		return forbidden(d)
	}
	if bike.Status == status {
		return forbidden(authz.Deny(authz.ReasonAlreadyInTargetState))
	}
	if bike.Status == domain.BikeStatusRented {
		active, err := s.rentalRepo.HasActiveRentalForBike(ctx, bikeID)
		if err != nil {
			return fmt.Errorf("check active rental: %w", err)
		}
		if active {
			return forbidden(authz.Deny(authz.ReasonInvalidStateTransition))
		}
	}
	return s.bikeRepo.UpdateStatus(ctx, bikeID, status)
}

func (s *bikeService) DeleteBike(ctx context.Context, actor authz.Actor, bikeID int32) error {
	bike, err := s.bikeRepo.GetByID(ctx, bikeID)
	if err != nil {
		return err
	}
	d, err := s.policy.Delete(ctx, actor, bike)
	if err != nil {
		return err
	}
	if !d.Allowed {
		return forbidden(d)
	}
	active, err := s.rentalRepo.HasActiveRentalForBike(ctx, bikeID)
	if err != nil {
		return fmt.Errorf("check active rental: %w", err)
	}
	if active {
		return forbidden(authz.Deny(authz.ReasonInvalidStateTransition))
	}
	return s.bikeRepo.SoftDelete(ctx, bikeID)
}

// ListBikes returns the fleet across every team the actor owns or
// belongs to.
func (s *bikeService) ListBikes(ctx context.Context, actor authz.Actor) ([]domain.Bike, error) {
	if d := s.policy.ViewAny(actor); !d.Allowed {
		return nil, forbidden(d)
	}
	teamIDs, err := s.scope.OwnedOrMemberTeamIDs(ctx, actor.ID)
	if err != nil {
		return nil, err
	}
	if len(teamIDs) == 0 {
		return []domain.Bike{}, nil
	}
	return s.bikeRepo.ListByTeams(ctx, teamIDs)
}
