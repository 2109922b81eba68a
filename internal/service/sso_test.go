package service_test

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"bikefleet-backend/internal/domain"
	"bikefleet-backend/internal/identity"
	"bikefleet-backend/internal/service"
)

func newSSOFixture() (*MockProvider, *MockProvider, *MockUserRepo, *MockTeamRepo, *MockTokenManager, *MockEmailService, service.SSOService) {
	staffProv := new(MockProvider)
	pwaProv := new(MockProvider)
	userRepo := new(MockUserRepo)
	teamRepo := new(MockTeamRepo)
	tokens := new(MockTokenManager)
	emailSvc := new(MockEmailService)
	svc := service.NewSSOService(staffProv, pwaProv, userRepo, teamRepo, tokens, emailSvc, service.NewAuditLog())
	return staffProv, pwaProv, userRepo, teamRepo, tokens, emailSvc, svc
}

func TestSSOService_HandleStaffCallback(t *testing.T) {
	ctx := context.Background()

	ident := &identity.Identity{Subject: "sub-1", Email: "staff@example.com", EmailVerified: true, Name: "Staff Member"}

	t.Run("PreProvisionedStaff", func(t *testing.T) {
		staffProv, _, userRepo, teamRepo, tokens, _, svc := newSSOFixture()

		teamID := int32(10)
		extID := "sub-1"
		user := &domain.User{
			ID:            5,
			Email:         "staff@example.com",
			Roles:         []domain.Role{domain.RoleSupervisor},
			CurrentTeamID: &teamID,
			ExternalID:    &extID,
		}

		staffProv.On("Exchange", ctx, "code-1").Return(ident, nil)
		staffProv.On("Name").Return("staff")
		userRepo.On("GetByEmail", ctx, "staff@example.com").Return(user, nil)
		teamRepo.On("GetByID", ctx, teamID).Return(&domain.Team{ID: teamID}, nil)
		tokens.On("GenerateAccessToken", int32(5), "staff@example.com", []string{"Supervisor"}).Return("access", nil)
		tokens.On("GenerateRefreshToken", int32(5), "staff@example.com").Return("refresh", nil)

		got, access, refresh, err := svc.HandleStaffCallback(ctx, "code-1")
		assert.NoError(t, err)
		assert.Equal(t, user, got)
		assert.Equal(t, "access", access)
		assert.Equal(t, "refresh", refresh)
		// Subject already attached; no write.
		userRepo.AssertNotCalled(t, "SetExternalID", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("UnknownEmailRejected", func(t *testing.T) {
		staffProv, _, userRepo, _, _, _, svc := newSSOFixture()

		staffProv.On("Exchange", ctx, "code-1").Return(ident, nil)
		staffProv.On("Name").Return("staff")
		userRepo.On("GetByEmail", ctx, "staff@example.com").Return(nil, sql.ErrNoRows)

		_, _, _, err := svc.HandleStaffCallback(ctx, "code-1")
		assert.ErrorIs(t, err, service.ErrNotPreProvisioned)
		// Never provisions from the staff flow.
		userRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("PassengerAccountRejected", func(t *testing.T) {
		staffProv, _, userRepo, _, _, _, svc := newSSOFixture()

		pax := &domain.User{ID: 6, Email: "staff@example.com", Roles: []domain.Role{domain.RolePwaUser}}
		staffProv.On("Exchange", ctx, "code-1").Return(ident, nil)
		staffProv.On("Name").Return("staff")
		userRepo.On("GetByEmail", ctx, "staff@example.com").Return(pax, nil)

		_, _, _, err := svc.HandleStaffCallback(ctx, "code-1")
		assert.ErrorIs(t, err, service.ErrNotPreProvisioned)
	})

	t.Run("UnverifiedEmail", func(t *testing.T) {
		staffProv, _, _, _, _, _, svc := newSSOFixture()

		unverified := &identity.Identity{Subject: "sub-1", Email: "staff@example.com", EmailVerified: false}
		staffProv.On("Exchange", ctx, "code-1").Return(unverified, nil)

		_, _, _, err := svc.HandleStaffCallback(ctx, "code-1")
		assert.ErrorIs(t, err, identity.ErrProviderFailure)
	})

	t.Run("StaleCurrentTeamRepaired", func(t *testing.T) {
		staffProv, _, userRepo, teamRepo, tokens, _, svc := newSSOFixture()

		gone := int32(11)
		extID := "sub-1"
		user := &domain.User{
			ID:            5,
			Email:         "staff@example.com",
			Roles:         []domain.Role{domain.RoleOwner},
			CurrentTeamID: &gone,
			ExternalID:    &extID,
		}
		personal := &domain.Team{ID: 77, Personal: true}

		staffProv.On("Exchange", ctx, "code-1").Return(ident, nil)
		staffProv.On("Name").Return("staff")
		userRepo.On("GetByEmail", ctx, "staff@example.com").Return(user, nil)
		teamRepo.On("GetByID", ctx, gone).Return(nil, sql.ErrNoRows)
		teamRepo.On("EnsurePersonalTeam", ctx, int32(5), "staff@example.com").Return(personal, nil)
		userRepo.On("SetCurrentTeam", ctx, int32(5), int32(77)).Return(nil)
		tokens.On("GenerateAccessToken", int32(5), "staff@example.com", []string{"Owner"}).Return("access", nil)
		tokens.On("GenerateRefreshToken", int32(5), "staff@example.com").Return("refresh", nil)

		_, _, _, err := svc.HandleStaffCallback(ctx, "code-1")
		assert.NoError(t, err)
		assert.Equal(t, int32(77), *user.CurrentTeamID)
		userRepo.AssertExpectations(t)
	})
}

func TestSSOService_HandlePwaCallback(t *testing.T) {
	ctx := context.Background()
	ident := &identity.Identity{Subject: "google-1", Email: "pax@example.com", EmailVerified: true, Name: "Pax Person"}

	t.Run("FirstLoginProvisions", func(t *testing.T) {
		_, pwaProv, userRepo, teamRepo, tokens, emailSvc, svc := newSSOFixture()

		pwaProv.On("Exchange", ctx, "code-2").Return(ident, nil)
		pwaProv.On("Name").Return("pwa")
		userRepo.On("GetByEmail", ctx, "pax@example.com").Return(nil, sql.ErrNoRows)
		userRepo.On("Create", ctx, mock.MatchedBy(func(u *domain.User) bool {
			return u.Email == "pax@example.com" && u.HasRole(domain.RolePwaUser)
		})).Run(func(args mock.Arguments) {
			args.Get(1).(*domain.User).ID = 42
		}).Return(nil)
		emailSvc.On("SendWelcomeNotification", ctx, "pax@example.com", "Pax Person").Return(nil)
		userRepo.On("SetExternalID", ctx, int32(42), "google-1").Return(nil)
		teamRepo.On("EnsurePersonalTeam", ctx, int32(42), "Pax Person").Return(&domain.Team{ID: 100, Personal: true}, nil)
		userRepo.On("SetCurrentTeam", ctx, int32(42), int32(100)).Return(nil)
		tokens.On("GenerateSessionToken", int32(42), "pwa").Return("session", nil)

		user, token, err := svc.HandlePwaCallback(ctx, "code-2")
		assert.NoError(t, err)
		assert.Equal(t, "session", token)
		assert.Equal(t, int32(100), *user.CurrentTeamID)
		userRepo.AssertExpectations(t)
		emailSvc.AssertExpectations(t)
	})

	t.Run("RepeatLoginIsIdempotent", func(t *testing.T) {
		_, pwaProv, userRepo, teamRepo, tokens, emailSvc, svc := newSSOFixture()

		teamID := int32(100)
		extID := "google-1"
		existing := &domain.User{
			ID:            42,
			Email:         "pax@example.com",
			Roles:         []domain.Role{domain.RolePwaUser},
			CurrentTeamID: &teamID,
			ExternalID:    &extID,
		}

		pwaProv.On("Exchange", ctx, "code-2").Return(ident, nil)
		pwaProv.On("Name").Return("pwa")
		userRepo.On("GetByEmail", ctx, "pax@example.com").Return(existing, nil)
		teamRepo.On("EnsurePersonalTeam", ctx, int32(42), "pax@example.com").Return(&domain.Team{ID: teamID, Personal: true}, nil)
		tokens.On("GenerateSessionToken", int32(42), "pwa").Return("session", nil)

		_, token, err := svc.HandlePwaCallback(ctx, "code-2")
		assert.NoError(t, err)
		assert.Equal(t, "session", token)
		userRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
		userRepo.AssertNotCalled(t, "SetCurrentTeam", mock.Anything, mock.Anything, mock.Anything)
		emailSvc.AssertNotCalled(t, "SendWelcomeNotification", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("StaffKeepsRolesAndGainsPwaTag", func(t *testing.T) {
		_, pwaProv, userRepo, teamRepo, tokens, _, svc := newSSOFixture()

		teamID := int32(10)
		staff := &domain.User{
			ID:            5,
			Email:         "pax@example.com",
			Roles:         []domain.Role{domain.RoleSupervisor},
			CurrentTeamID: &teamID,
		}

		pwaProv.On("Exchange", ctx, "code-2").Return(ident, nil)
		pwaProv.On("Name").Return("pwa")
		userRepo.On("GetByEmail", ctx, "pax@example.com").Return(staff, nil)
		userRepo.On("AddRole", ctx, int32(5), domain.RolePwaUser).Return(nil)
		userRepo.On("SetExternalID", ctx, int32(5), "google-1").Return(nil)
		teamRepo.On("EnsurePersonalTeam", ctx, int32(5), "pax@example.com").Return(&domain.Team{ID: 101, Personal: true}, nil)
		userRepo.On("SetCurrentTeam", ctx, int32(5), int32(101)).Return(nil)
		tokens.On("GenerateSessionToken", int32(5), "pwa").Return("session", nil)

		user, _, err := svc.HandlePwaCallback(ctx, "code-2")
		assert.NoError(t, err)
		assert.True(t, user.HasRole(domain.RoleSupervisor))
		assert.True(t, user.HasRole(domain.RolePwaUser))
	})
}
