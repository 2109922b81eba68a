package service_test

import (
	"context"

	"github.com/stretchr/testify/mock"

	"bikefleet-backend/internal/domain"
	"bikefleet-backend/internal/identity"
	"bikefleet-backend/internal/security"
)

// MockUserRepo
type MockUserRepo struct {
	mock.Mock
}

func (m *MockUserRepo) Create(ctx context.Context, user *domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}
func (m *MockUserRepo) GetByID(ctx context.Context, id int32) (*domain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}
func (m *MockUserRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}
func (m *MockUserRepo) GetByExternalID(ctx context.Context, externalID string) (*domain.User, error) {
	args := m.Called(ctx, externalID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}
func (m *MockUserRepo) Update(ctx context.Context, user *domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}
func (m *MockUserRepo) SoftDelete(ctx context.Context, id int32) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
func (m *MockUserRepo) Restore(ctx context.Context, id int32) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
func (m *MockUserRepo) AddRole(ctx context.Context, userID int32, role domain.Role) error {
	args := m.Called(ctx, userID, role)
	return args.Error(0)
}
func (m *MockUserRepo) RemoveRole(ctx context.Context, userID int32, role domain.Role) error {
	args := m.Called(ctx, userID, role)
	return args.Error(0)
}
func (m *MockUserRepo) SetCurrentTeam(ctx context.Context, userID, teamID int32) error {
	args := m.Called(ctx, userID, teamID)
	return args.Error(0)
}
func (m *MockUserRepo) SetExternalID(ctx context.Context, userID int32, externalID string) error {
	args := m.Called(ctx, userID, externalID)
	return args.Error(0)
}

// MockTeamRepo
type MockTeamRepo struct {
	mock.Mock
}

func (m *MockTeamRepo) Create(ctx context.Context, team *domain.Team) error {
	args := m.Called(ctx, team)
	return args.Error(0)
}
func (m *MockTeamRepo) GetByID(ctx context.Context, id int32) (*domain.Team, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Team), args.Error(1)
}
func (m *MockTeamRepo) List(ctx context.Context) ([]domain.Team, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.Team), args.Error(1)
}
func (m *MockTeamRepo) Update(ctx context.Context, team *domain.Team) error {
	args := m.Called(ctx, team)
	return args.Error(0)
}
func (m *MockTeamRepo) SoftDelete(ctx context.Context, id int32) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
func (m *MockTeamRepo) Restore(ctx context.Context, id int32) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
func (m *MockTeamRepo) AddMember(ctx context.Context, member *domain.TeamMember) error {
	args := m.Called(ctx, member)
	return args.Error(0)
}
func (m *MockTeamRepo) GetMember(ctx context.Context, teamID, userID int32) (*domain.TeamMember, error) {
	args := m.Called(ctx, teamID, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.TeamMember), args.Error(1)
}
func (m *MockTeamRepo) UpdateMember(ctx context.Context, member *domain.TeamMember) error {
	args := m.Called(ctx, member)
	return args.Error(0)
}
func (m *MockTeamRepo) RemoveMember(ctx context.Context, teamID, userID int32) error {
	args := m.Called(ctx, teamID, userID)
	return args.Error(0)
}
func (m *MockTeamRepo) ListMembers(ctx context.Context, teamID int32) ([]domain.TeamMember, error) {
	args := m.Called(ctx, teamID)
	return args.Get(0).([]domain.TeamMember), args.Error(1)
}
func (m *MockTeamRepo) IsOwner(ctx context.Context, userID, teamID int32) (bool, error) {
	args := m.Called(ctx, userID, teamID)
	return args.Bool(0), args.Error(1)
}
func (m *MockTeamRepo) IsMember(ctx context.Context, userID, teamID int32) (bool, error) {
	args := m.Called(ctx, userID, teamID)
	return args.Bool(0), args.Error(1)
}
func (m *MockTeamRepo) OwnedOrMemberTeamIDs(ctx context.Context, userID int32) ([]int32, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).([]int32), args.Error(1)
}
func (m *MockTeamRepo) BelongsToOperationalTeam(ctx context.Context, userID int32) (bool, error) {
	args := m.Called(ctx, userID)
	return args.Bool(0), args.Error(1)
}
func (m *MockTeamRepo) GetPersonalTeam(ctx context.Context, userID int32) (*domain.Team, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Team), args.Error(1)
}
func (m *MockTeamRepo) EnsurePersonalTeam(ctx context.Context, userID int32, name string) (*domain.Team, error) {
	args := m.Called(ctx, userID, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Team), args.Error(1)
}

// MockRentalRepo
type MockRentalRepo struct {
	mock.Mock
}

func (m *MockRentalRepo) Create(ctx context.Context, rental *domain.Rental) error {
	args := m.Called(ctx, rental)
	return args.Error(0)
}
func (m *MockRentalRepo) GetByID(ctx context.Context, id int32) (*domain.Rental, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Rental), args.Error(1)
}
func (m *MockRentalRepo) GetByBookingCode(ctx context.Context, code string) (*domain.Rental, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Rental), args.Error(1)
}
func (m *MockRentalRepo) Update(ctx context.Context, rental *domain.Rental) error {
	args := m.Called(ctx, rental)
	return args.Error(0)
}
func (m *MockRentalRepo) SoftDelete(ctx context.Context, id int32) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
func (m *MockRentalRepo) ListByTeams(ctx context.Context, teamIDs []int32, status string, page, pageSize int32) ([]domain.Rental, int32, error) {
	args := m.Called(ctx, teamIDs, status, page, pageSize)
	return args.Get(0).([]domain.Rental), args.Get(1).(int32), args.Error(2)
}
func (m *MockRentalRepo) HasActiveRentalForBike(ctx context.Context, bikeID int32) (bool, error) {
	args := m.Called(ctx, bikeID)
	return args.Bool(0), args.Error(1)
}

// MockPaxRepo
type MockPaxRepo struct {
	mock.Mock
}

func (m *MockPaxRepo) Create(ctx context.Context, profile *domain.PaxProfile) error {
	args := m.Called(ctx, profile)
	return args.Error(0)
}
func (m *MockPaxRepo) GetByID(ctx context.Context, id int32) (*domain.PaxProfile, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PaxProfile), args.Error(1)
}
func (m *MockPaxRepo) Update(ctx context.Context, profile *domain.PaxProfile) error {
	args := m.Called(ctx, profile)
	return args.Error(0)
}
func (m *MockPaxRepo) SoftDelete(ctx context.Context, id int32) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
func (m *MockPaxRepo) Restore(ctx context.Context, id int32) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
func (m *MockPaxRepo) ClaimForUser(ctx context.Context, profileID, userID int32) (bool, error) {
	args := m.Called(ctx, profileID, userID)
	return args.Bool(0), args.Error(1)
}
func (m *MockPaxRepo) BackfillEmail(ctx context.Context, profileID int32, email string) error {
	args := m.Called(ctx, profileID, email)
	return args.Error(0)
}

// MockBikeRepo
type MockBikeRepo struct {
	mock.Mock
}

func (m *MockBikeRepo) Create(ctx context.Context, bike *domain.Bike) error {
	args := m.Called(ctx, bike)
	return args.Error(0)
}
func (m *MockBikeRepo) GetByID(ctx context.Context, id int32) (*domain.Bike, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Bike), args.Error(1)
}
func (m *MockBikeRepo) Update(ctx context.Context, bike *domain.Bike) error {
	args := m.Called(ctx, bike)
	return args.Error(0)
}
func (m *MockBikeRepo) UpdateStatus(ctx context.Context, id int32, status domain.BikeStatus) error {
	args := m.Called(ctx, id, status)
	return args.Error(0)
}
func (m *MockBikeRepo) SoftDelete(ctx context.Context, id int32) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
func (m *MockBikeRepo) Restore(ctx context.Context, id int32) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
func (m *MockBikeRepo) ListByTeams(ctx context.Context, teamIDs []int32) ([]domain.Bike, error) {
	args := m.Called(ctx, teamIDs)
	return args.Get(0).([]domain.Bike), args.Error(1)
}

// MockTokenManager
type MockTokenManager struct {
	mock.Mock
}

func (m *MockTokenManager) GenerateAccessToken(userID int32, email string, roles []string) (string, error) {
	args := m.Called(userID, email, roles)
	return args.String(0), args.Error(1)
}
func (m *MockTokenManager) GenerateRefreshToken(userID int32, email string) (string, error) {
	args := m.Called(userID, email)
	return args.String(0), args.Error(1)
}
func (m *MockTokenManager) GenerateSessionToken(userID int32, device string) (string, error) {
	args := m.Called(userID, device)
	return args.String(0), args.Error(1)
}
func (m *MockTokenManager) ValidateToken(tokenString string) (*security.UserClaims, error) {
	args := m.Called(tokenString)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*security.UserClaims), args.Error(1)
}
func (m *MockTokenManager) Revoke(claims *security.UserClaims) {
	m.Called(claims)
}

// MockEmailService
type MockEmailService struct {
	mock.Mock
}

func (m *MockEmailService) SendBookingLinkedNotification(ctx context.Context, email, name, bookingCode string) error {
	args := m.Called(ctx, email, name, bookingCode)
	return args.Error(0)
}
func (m *MockEmailService) SendRoleChangedNotification(ctx context.Context, email, name, newRole string) error {
	args := m.Called(ctx, email, name, newRole)
	return args.Error(0)
}
func (m *MockEmailService) SendWelcomeNotification(ctx context.Context, email, name string) error {
	args := m.Called(ctx, email, name)
	return args.Error(0)
}

// MockPoiRepo
type MockPoiRepo struct {
	mock.Mock
}

func (m *MockPoiRepo) Create(ctx context.Context, poi *domain.PointOfInterest) error {
	args := m.Called(ctx, poi)
	return args.Error(0)
}
func (m *MockPoiRepo) GetByID(ctx context.Context, id int32) (*domain.PointOfInterest, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PointOfInterest), args.Error(1)
}
func (m *MockPoiRepo) Update(ctx context.Context, poi *domain.PointOfInterest) error {
	args := m.Called(ctx, poi)
	return args.Error(0)
}
func (m *MockPoiRepo) SetApproved(ctx context.Context, id int32, approved bool) error {
	args := m.Called(ctx, id, approved)
	return args.Error(0)
}
func (m *MockPoiRepo) SetActive(ctx context.Context, id int32, active bool) error {
	args := m.Called(ctx, id, active)
	return args.Error(0)
}
func (m *MockPoiRepo) SoftDelete(ctx context.Context, id int32) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
func (m *MockPoiRepo) Restore(ctx context.Context, id int32) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
func (m *MockPoiRepo) ListByCategory(ctx context.Context, category domain.PoiCategory) ([]domain.PointOfInterest, error) {
	args := m.Called(ctx, category)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.PointOfInterest), args.Error(1)
}

// MockProvider
type MockProvider struct {
	mock.Mock
}

func (m *MockProvider) Name() string {
	args := m.Called()
	return args.String(0)
}
func (m *MockProvider) AuthCodeURL(state string) string {
	args := m.Called(state)
	return args.String(0)
}
func (m *MockProvider) Exchange(ctx context.Context, code string) (*identity.Identity, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identity.Identity), args.Error(1)
}
