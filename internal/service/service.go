package service

import (
	"context"
	"errors"

	"bikefleet-backend/internal/authz"
	"bikefleet-backend/internal/domain"
)

var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrInvalidToken       = errors.New("invalid token")
	ErrBookingNotFound    = errors.New("booking code not found")
	ErrProfileMissing     = errors.New("rental has no passenger profile")
	ErrBookingClaimed     = errors.New("booking already linked to another account")
	ErrNotPreProvisioned  = errors.New("no staff account exists for this email")
)

// ForbiddenError carries the policy decision behind a denial. The
// user-facing message is uniform so out-of-scope actors learn nothing
// about what exists.
type ForbiddenError struct {
	Decision authz.Decision
}

func (e *ForbiddenError) Error() string {
	return "not authorized"
}

func forbidden(d authz.Decision) error {
	return &ForbiddenError{Decision: d}
}

// LinkOutcome distinguishes a fresh link from an idempotent repeat.
type LinkOutcome string

const (
	LinkOutcomeNewlyLinked   LinkOutcome = "NEWLY_LINKED"
	LinkOutcomeAlreadyLinked LinkOutcome = "ALREADY_LINKED"
)

type LinkResult struct {
	Rental  *domain.Rental     `json:"rental"`
	Profile *domain.PaxProfile `json:"profile"`
	Outcome LinkOutcome        `json:"outcome"`
}

// BookingSession is the public booking lookup result. Token is empty
// when no account could be determined for the booking's profile.
type BookingSession struct {
	Rental *domain.Rental `json:"rental"`
	Token  string         `json:"token,omitempty"`
}

type AuthService interface {
	Login(ctx context.Context, email, password string) (string, string, error)
	RefreshToken(ctx context.Context, refresh string) (string, string, error)
	Logout(ctx context.Context, refresh string) error
}

type BookingService interface {
	LinkBooking(ctx context.Context, actorID int32, code string) (*LinkResult, error)
	ValidateBooking(ctx context.Context, code, device string) (*BookingSession, error)
}

type SSOService interface {
	StaffLoginURL(state string) string
	PwaLoginURL(state string) string
	// HandleStaffCallback rejects emails without an existing staff
	// account and returns an access/refresh token pair.
	HandleStaffCallback(ctx context.Context, code string) (*domain.User, string, string, error)
	// HandlePwaCallback provisions unknown emails and returns a
	// session token.
	HandlePwaCallback(ctx context.Context, code string) (*domain.User, string, error)
}

type TeamService interface {
	CreateTeam(ctx context.Context, actor authz.Actor, name string) (*domain.Team, error)
	GetTeam(ctx context.Context, actor authz.Actor, teamID int32) (*domain.Team, error)
	UpdateTeam(ctx context.Context, actor authz.Actor, team *domain.Team) error
	DeleteTeam(ctx context.Context, actor authz.Actor, teamID int32) error
	AddMember(ctx context.Context, actor authz.Actor, teamID, userID int32, role domain.TeamRole) error
	UpdateMemberRole(ctx context.Context, actor authz.Actor, teamID, userID int32, role domain.TeamRole) error
	RemoveMember(ctx context.Context, actor authz.Actor, teamID, userID int32) error
	SelectTeam(ctx context.Context, userID, teamID int32) error
}

type UserService interface {
	UpdateUser(ctx context.Context, actor authz.Actor, user *domain.User) error
	DeleteUser(ctx context.Context, actor authz.Actor, targetID int32) error
	RestoreUser(ctx context.Context, actor authz.Actor, targetID int32) error
	ChangeRole(ctx context.Context, actor authz.Actor, targetID int32, newRole domain.Role) error
}

type BikeService interface {
	AddBike(ctx context.Context, actor authz.Actor, bike *domain.Bike) error
	GetBike(ctx context.Context, actor authz.Actor, bikeID int32) (*domain.Bike, error)
	UpdateBikeStatus(ctx context.Context, actor authz.Actor, bikeID int32, status domain.BikeStatus) error
	DeleteBike(ctx context.Context, actor authz.Actor, bikeID int32) error
	ListBikes(ctx context.Context, actor authz.Actor) ([]domain.Bike, error)
}

type RentalService interface {
	CreateRental(ctx context.Context, actor authz.Actor, rental *domain.Rental) error
	GetRental(ctx context.Context, actor authz.Actor, rentalID int32) (*domain.Rental, error)
	UpdateRentalStatus(ctx context.Context, actor authz.Actor, rentalID int32, status domain.RentalStatus) (*domain.Rental, error)
	ListRentals(ctx context.Context, actor authz.Actor, status string, page, pageSize int32) ([]domain.Rental, int32, error)
}

type PoiService interface {
	CreatePoi(ctx context.Context, actor authz.Actor, poi *domain.PointOfInterest) error
	UpdatePoi(ctx context.Context, actor authz.Actor, poi *domain.PointOfInterest) error
	DeletePoi(ctx context.Context, actor authz.Actor, poiID int32) error
	ApprovePoi(ctx context.Context, actor authz.Actor, poiID int32) error
	TogglePoiActive(ctx context.Context, actor authz.Actor, poiID int32) error
}

type DepartureService interface {
	CreateDeparture(ctx context.Context, actor authz.Actor, dep *domain.ShipDeparture) error
	UpdateDeparture(ctx context.Context, actor authz.Actor, dep *domain.ShipDeparture) error
	ToggleDepartureActive(ctx context.Context, actor authz.Actor, depID int32) error
	ListDepartures(ctx context.Context, actor authz.Actor) ([]domain.ShipDeparture, error)
}

type EmailService interface {
	SendBookingLinkedNotification(ctx context.Context, email, name, bookingCode string) error
	SendRoleChangedNotification(ctx context.Context, email, name, newRole string) error
	SendWelcomeNotification(ctx context.Context, email, name string) error
}
