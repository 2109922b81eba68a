package repository

import (
	"context"

	"bikefleet-backend/internal/domain"
)

type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, id int32) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	GetByExternalID(ctx context.Context, externalID string) (*domain.User, error)
	Update(ctx context.Context, user *domain.User) error
	SoftDelete(ctx context.Context, id int32) error
	Restore(ctx context.Context, id int32) error

	// Roles and session state
	AddRole(ctx context.Context, userID int32, role domain.Role) error
	RemoveRole(ctx context.Context, userID int32, role domain.Role) error
	SetCurrentTeam(ctx context.Context, userID, teamID int32) error
	SetExternalID(ctx context.Context, userID int32, externalID string) error
}

type TeamRepository interface {
	Create(ctx context.Context, team *domain.Team) error
	GetByID(ctx context.Context, id int32) (*domain.Team, error)
	List(ctx context.Context) ([]domain.Team, error) // operational teams only
	Update(ctx context.Context, team *domain.Team) error
	SoftDelete(ctx context.Context, id int32) error
	Restore(ctx context.Context, id int32) error

	// Membership
	AddMember(ctx context.Context, member *domain.TeamMember) error
	GetMember(ctx context.Context, teamID, userID int32) (*domain.TeamMember, error)
	UpdateMember(ctx context.Context, member *domain.TeamMember) error
	RemoveMember(ctx context.Context, teamID, userID int32) error
	ListMembers(ctx context.Context, teamID int32) ([]domain.TeamMember, error)

	// Scope queries (authz.TeamDirectory)
	IsOwner(ctx context.Context, userID, teamID int32) (bool, error)
	IsMember(ctx context.Context, userID, teamID int32) (bool, error)
	OwnedOrMemberTeamIDs(ctx context.Context, userID int32) ([]int32, error)
	BelongsToOperationalTeam(ctx context.Context, userID int32) (bool, error)

	// Personal teams
	GetPersonalTeam(ctx context.Context, userID int32) (*domain.Team, error)
	EnsurePersonalTeam(ctx context.Context, userID int32, name string) (*domain.Team, error)
}

type BikeRepository interface {
	Create(ctx context.Context, bike *domain.Bike) error
	GetByID(ctx context.Context, id int32) (*domain.Bike, error)
	Update(ctx context.Context, bike *domain.Bike) error
	UpdateStatus(ctx context.Context, id int32, status domain.BikeStatus) error
	SoftDelete(ctx context.Context, id int32) error
	Restore(ctx context.Context, id int32) error
	ListByTeams(ctx context.Context, teamIDs []int32) ([]domain.Bike, error)
}

type RentalRepository interface {
	Create(ctx context.Context, rental *domain.Rental) error
	GetByID(ctx context.Context, id int32) (*domain.Rental, error)
	GetByBookingCode(ctx context.Context, code string) (*domain.Rental, error)
	Update(ctx context.Context, rental *domain.Rental) error
	SoftDelete(ctx context.Context, id int32) error
	ListByTeams(ctx context.Context, teamIDs []int32, status string, page, pageSize int32) ([]domain.Rental, int32, error)
	HasActiveRentalForBike(ctx context.Context, bikeID int32) (bool, error)
}

type PaxProfileRepository interface {
	Create(ctx context.Context, profile *domain.PaxProfile) error
	GetByID(ctx context.Context, id int32) (*domain.PaxProfile, error)
	Update(ctx context.Context, profile *domain.PaxProfile) error
	SoftDelete(ctx context.Context, id int32) error
	Restore(ctx context.Context, id int32) error

	// ClaimForUser links the profile to the user through a conditional
	// update: it succeeds only when the profile is unlinked or already
	// linked to the same user. Returns false when another user holds
	// the link.
	ClaimForUser(ctx context.Context, profileID, userID int32) (bool, error)
	// BackfillEmail sets the profile email only when it is empty.
	BackfillEmail(ctx context.Context, profileID int32, email string) error
}

type PoiRepository interface {
	Create(ctx context.Context, poi *domain.PointOfInterest) error
	GetByID(ctx context.Context, id int32) (*domain.PointOfInterest, error)
	Update(ctx context.Context, poi *domain.PointOfInterest) error
	SetApproved(ctx context.Context, id int32, approved bool) error
	SetActive(ctx context.Context, id int32, active bool) error
	SoftDelete(ctx context.Context, id int32) error
	Restore(ctx context.Context, id int32) error
	ListByCategory(ctx context.Context, category domain.PoiCategory) ([]domain.PointOfInterest, error)
}

type DepartureRepository interface {
	Create(ctx context.Context, dep *domain.ShipDeparture) error
	GetByID(ctx context.Context, id int32) (*domain.ShipDeparture, error)
	Update(ctx context.Context, dep *domain.ShipDeparture) error
	SetActive(ctx context.Context, id int32, active bool) error
	SoftDelete(ctx context.Context, id int32) error
	Restore(ctx context.Context, id int32) error
	List(ctx context.Context) ([]domain.ShipDeparture, error)
}
