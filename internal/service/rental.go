package service

import (
	"context"
	"fmt"

	"bikefleet-backend/internal/authz"
	"bikefleet-backend/internal/domain"
	"bikefleet-backend/internal/logger"
	"bikefleet-backend/internal/repository"
)

// rentalTransitions lists the allowed forward moves of the rental
// lifecycle. OVERDUE is reached from ACTIVE by the scheduler as well.
var rentalTransitions = map[domain.RentalStatus][]domain.RentalStatus{
	domain.RentalStatusPendingPayment: {domain.RentalStatusConfirmed, domain.RentalStatusCancelled},
	domain.RentalStatusConfirmed:      {domain.RentalStatusActive, domain.RentalStatusCancelled},
	domain.RentalStatusActive:         {domain.RentalStatusCompleted, domain.RentalStatusOverdue},
	domain.RentalStatusOverdue:        {domain.RentalStatusCompleted},
}

func canTransition(from, to domain.RentalStatus) bool {
	for _, next := range rentalTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

type rentalService struct {
	rentalRepo repository.RentalRepository
	bikeRepo   repository.BikeRepository
	paxRepo    repository.PaxProfileRepository
	scope      *authz.ScopeResolver
	policy     *authz.RentalPolicy
}

func NewRentalService(rentalRepo repository.RentalRepository, bikeRepo repository.BikeRepository, paxRepo repository.PaxProfileRepository, scope *authz.ScopeResolver, policy *authz.RentalPolicy) RentalService {
	return &rentalService{
		rentalRepo: rentalRepo,
		bikeRepo:   bikeRepo,
		paxRepo:    paxRepo,
		scope:      scope,
		policy:     policy,
	}
}

// CreateRental opens a rental at the actor's current team. The booking
// code is generated server-side and handed to the passenger.
func (s *rentalService) CreateRental(ctx context.Context, actor authz.Actor, rental *domain.Rental) error {
	d, err := s.policy.Create(ctx, actor)
	if err != nil {
		return err
	}
	if !d.Allowed {
		return forbidden(d)
	}
	if actor.TeamContext == nil {
		return forbidden(authz.Deny(authz.ReasonOutOfScope))
	}

	bike, err := s.bikeRepo.GetByID(ctx, rental.BikeID)
	if err != nil {
		return err
	}
	if bike.Status != domain.BikeStatusAvailable {
		return forbidden(authz.Deny(authz.ReasonInvalidStateTransition))
	}
	if _, err := s.paxRepo.GetByID(ctx, rental.PaxProfileID); err != nil {
		return err
	}

	rental.StartTeamID = *actor.TeamContext
	rental.EndTeamID = nil
	rental.StaffID = actor.ID
	rental.BookingCode = NewBookingCode()
	rental.Status = domain.RentalStatusPendingPayment
	if err := s.rentalRepo.Create(ctx, rental); err != nil {
		return fmt.Errorf("create rental: %w", err)
	}
	logger.InfoContext(ctx, "Rental created",
		"rental_id", rental.ID, "bike_id", rental.BikeID, "team_id", rental.StartTeamID, "staff_id", actor.ID)
	return nil
}

func (s *rentalService) GetRental(ctx context.Context, actor authz.Actor, rentalID int32) (*domain.Rental, error) {
	rental, err := s.rentalRepo.GetByID(ctx, rentalID)
	if err != nil {
		return nil, err
	}
	d, err := s.policy.View(ctx, actor, rental)
	if err != nil {
		return nil, err
	}
	if !d.Allowed {
		return nil, forbidden(d)
	}
	return rental, nil
}

// UpdateRentalStatus advances the lifecycle. Reaching a terminal state
// records the actor's current team as the end team and releases the
// bike; activation marks the bike rented.
func (s *rentalService) UpdateRentalStatus(ctx context.Context, actor authz.Actor, rentalID int32, status domain.RentalStatus) (*domain.Rental, error) {
	rental, err := s.rentalRepo.GetByID(ctx, rentalID)
	if err != nil {
		return nil, err
	}
	d, err := s.policy.Update(ctx, actor, rental)
	if err != nil {
		return nil, err
	}
	if !d.Allowed {
		return nil, forbidden(d)
	}
	if rental.Status == status {
		return nil, forbidden(authz.Deny(authz.ReasonAlreadyInTargetState))
	}
	if !canTransition(rental.Status, status) {
		return nil, forbidden(authz.Deny(authz.ReasonInvalidStateTransition))
	}

	rental.Status = status
	if status.Terminal() {
		end := rental.StartTeamID
		if actor.TeamContext != nil {
			end = *actor.TeamContext
		}
		rental.EndTeamID = &end
	}
	if err := s.rentalRepo.Update(ctx, rental); err != nil {
		return nil, err
	}

	switch status {
	case domain.RentalStatusActive:
		if err := s.bikeRepo.UpdateStatus(ctx, rental.BikeID, domain.BikeStatusRented); err != nil {
			logger.WarnContext(ctx, "Failed to mark bike rented", "bike_id", rental.BikeID, "error", err)
		}
	case domain.RentalStatusCompleted, domain.RentalStatusCancelled:
		if err := s.bikeRepo.UpdateStatus(ctx, rental.BikeID, domain.BikeStatusAvailable); err != nil {
			logger.WarnContext(ctx, "Failed to release bike", "bike_id", rental.BikeID, "error", err)
		}
	}

	logger.InfoContext(ctx, "Rental status changed",
		"rental_id", rental.ID, "status", string(status), "actor_id", actor.ID)
	return rental, nil
}

// ListRentals pages rentals across every team the actor owns or belongs
// to, newest first, optionally filtered by status.
func (s *rentalService) ListRentals(ctx context.Context, actor authz.Actor, status string, page, pageSize int32) ([]domain.Rental, int32, error) {
	if d := s.policy.ViewAny(actor); !d.Allowed {
		return nil, 0, forbidden(d)
	}
	teamIDs, err := s.scope.OwnedOrMemberTeamIDs(ctx, actor.ID)
	if err != nil {
		return nil, 0, err
	}
	if len(teamIDs) == 0 {
		return []domain.Rental{}, 0, nil
	}
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}
	return s.rentalRepo.ListByTeams(ctx, teamIDs, status, page, pageSize)
}
