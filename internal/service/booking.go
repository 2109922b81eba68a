package service

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/google/uuid"

	"bikefleet-backend/internal/domain"
	"bikefleet-backend/internal/logger"
	"bikefleet-backend/internal/repository"
	"bikefleet-backend/internal/security"
)

type bookingService struct {
	rentalRepo repository.RentalRepository
	paxRepo    repository.PaxProfileRepository
	userRepo   repository.UserRepository
	tokens     security.TokenManager
	emailSvc   EmailService
}

func NewBookingService(
	rentalRepo repository.RentalRepository,
	paxRepo repository.PaxProfileRepository,
	userRepo repository.UserRepository,
	tokens security.TokenManager,
	emailSvc EmailService,
) BookingService {
	return &bookingService{
		rentalRepo: rentalRepo,
		paxRepo:    paxRepo,
		userRepo:   userRepo,
		tokens:     tokens,
		emailSvc:   emailSvc,
	}
}

// LinkBooking claims the rental's passenger profile for the actor. The
// claim itself is a conditional update on the profile row, so two
// concurrent attempts for the same unlinked profile cannot both
// succeed; the loser re-reads and sees the winner's link.
func (s *bookingService) LinkBooking(ctx context.Context, actorID int32, code string) (*LinkResult, error) {
	rental, err := s.rentalRepo.GetByBookingCode(ctx, code)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrBookingNotFound
		}
		return nil, err
	}

	profile, err := s.paxRepo.GetByID(ctx, rental.PaxProfileID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			// Data-integrity condition: a rental should never exist
			// without its profile. Logged, not user-actionable.
			logger.ErrorContext(ctx, "Rental has no passenger profile", "rental_id", rental.ID, "booking_code", rental.BookingCode)
			return nil, ErrProfileMissing
		}
		return nil, err
	}

	// Idempotent repeat: same actor, nothing to write.
	if profile.LinkedTo(actorID) {
		return &LinkResult{Rental: rental, Profile: profile, Outcome: LinkOutcomeAlreadyLinked}, nil
	}

	claimed, err := s.paxRepo.ClaimForUser(ctx, profile.ID, actorID)
	if err != nil {
		return nil, err
	}
	if !claimed {
		return nil, ErrBookingClaimed
	}

	profile.UserID = &actorID

	// First link: carry the account email onto the profile if staff
	// left it empty at the counter.
	if profile.Email == "" {
		if user, err := s.userRepo.GetByID(ctx, actorID); err == nil && user.Email != "" {
			if err := s.paxRepo.BackfillEmail(ctx, profile.ID, user.Email); err != nil {
				logger.WarnContext(ctx, "Failed to backfill profile email", "profile_id", profile.ID, "error", err)
			} else {
				profile.Email = user.Email
			}
			_ = s.emailSvc.SendBookingLinkedNotification(ctx, user.Email, user.Name, rental.BookingCode)
		}
	}

	logger.InfoContext(ctx, "Booking linked", "rental_id", rental.ID, "profile_id", profile.ID, "user_id", actorID)
	return &LinkResult{Rental: rental, Profile: profile, Outcome: LinkOutcomeNewlyLinked}, nil
}

// ValidateBooking is the public, unauthenticated booking lookup. When
// the profile already has an account we reuse it; otherwise, if the
// profile carries an email, an account is found or created from it (no
// staff role) and linked with the same claim semantics. A session
// credential is issued whenever an account could be determined.
func (s *bookingService) ValidateBooking(ctx context.Context, code, device string) (*BookingSession, error) {
	rental, err := s.rentalRepo.GetByBookingCode(ctx, code)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrBookingNotFound
		}
		return nil, err
	}

	profile, err := s.paxRepo.GetByID(ctx, rental.PaxProfileID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			logger.ErrorContext(ctx, "Rental has no passenger profile", "rental_id", rental.ID, "booking_code", rental.BookingCode)
			return nil, ErrProfileMissing
		}
		return nil, err
	}

	var accountID int32
	switch {
	case profile.UserID != nil:
		accountID = *profile.UserID
	case profile.Email != "":
		user, err := s.findOrCreatePaxUser(ctx, profile)
		if err != nil {
			return nil, err
		}
		claimed, err := s.paxRepo.ClaimForUser(ctx, profile.ID, user.ID)
		if err != nil {
			return nil, err
		}
		if !claimed {
			// Lost a race against a concurrent claim; honor the winner.
			fresh, err := s.paxRepo.GetByID(ctx, profile.ID)
			if err != nil {
				return nil, err
			}
			if fresh.UserID == nil {
				return nil, ErrBookingClaimed
			}
			accountID = *fresh.UserID
		} else {
			accountID = user.ID
		}
	default:
		// No account and no email to provision from: the caller may
		// still display booking details, just without a credential.
		return &BookingSession{Rental: rental}, nil
	}

	token, err := s.tokens.GenerateSessionToken(accountID, device)
	if err != nil {
		return nil, err
	}
	return &BookingSession{Rental: rental, Token: token}, nil
}

func (s *bookingService) findOrCreatePaxUser(ctx context.Context, profile *domain.PaxProfile) (*domain.User, error) {
	user, err := s.userRepo.GetByEmail(ctx, profile.Email)
	if err == nil {
		return user, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return nil, err
	}
	user = &domain.User{
		Email: profile.Email,
		Name:  strings.TrimSpace(profile.FirstName + " " + profile.LastName),
		Roles: []domain.Role{domain.RolePwaUser},
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}
	logger.InfoContext(ctx, "Provisioned passenger account from booking", "user_id", user.ID, "profile_id", profile.ID)
	return user, nil
}

// NewBookingCode returns a fresh 8-character uppercase booking code.
func NewBookingCode() string {
	raw := strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", ""))
	return raw[:8]
}
