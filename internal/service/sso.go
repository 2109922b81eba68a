package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"bikefleet-backend/internal/domain"
	"bikefleet-backend/internal/identity"
	"bikefleet-backend/internal/logger"
	"bikefleet-backend/internal/repository"
	"bikefleet-backend/internal/security"
)

type ssoService struct {
	staffProvider identity.Provider
	pwaProvider   identity.Provider
	userRepo      repository.UserRepository
	teamRepo      repository.TeamRepository
	tokens        security.TokenManager
	emailSvc      EmailService
	audit         *AuditLog
}

func NewSSOService(
	staffProvider, pwaProvider identity.Provider,
	userRepo repository.UserRepository,
	teamRepo repository.TeamRepository,
	tokens security.TokenManager,
	emailSvc EmailService,
	audit *AuditLog,
) SSOService {
	return &ssoService{
		staffProvider: staffProvider,
		pwaProvider:   pwaProvider,
		userRepo:      userRepo,
		teamRepo:      teamRepo,
		tokens:        tokens,
		emailSvc:      emailSvc,
		audit:         audit,
	}
}

func (s *ssoService) StaffLoginURL(state string) string {
	return s.staffProvider.AuthCodeURL(state)
}

func (s *ssoService) PwaLoginURL(state string) string {
	return s.pwaProvider.AuthCodeURL(state)
}

// HandleStaffCallback never creates accounts: staff must be
// pre-provisioned, and an unknown email is rejected outright.
func (s *ssoService) HandleStaffCallback(ctx context.Context, code string) (*domain.User, string, string, error) {
	ident, err := s.staffProvider.Exchange(ctx, code)
	if err != nil {
		return nil, "", "", err
	}
	if !ident.EmailVerified {
		return nil, "", "", fmt.Errorf("%w: email not verified", identity.ErrProviderFailure)
	}

	user, err := s.userRepo.GetByEmail(ctx, ident.Email)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			s.audit.SSODenied(ctx, s.staffProvider.Name(), ident.Email, "not pre-provisioned")
			return nil, "", "", ErrNotPreProvisioned
		}
		return nil, "", "", err
	}
	if !user.HasAnyStaffRole() {
		s.audit.SSODenied(ctx, s.staffProvider.Name(), ident.Email, "no staff role")
		return nil, "", "", ErrNotPreProvisioned
	}

	if err := s.attachExternalID(ctx, user, ident.Subject); err != nil {
		return nil, "", "", err
	}
	if err := s.repairCurrentTeam(ctx, user); err != nil {
		return nil, "", "", err
	}

	roles := make([]string, len(user.Roles))
	for i, r := range user.Roles {
		roles[i] = string(r)
	}
	access, err := s.tokens.GenerateAccessToken(user.ID, user.Email, roles)
	if err != nil {
		return nil, "", "", err
	}
	refresh, err := s.tokens.GenerateRefreshToken(user.ID, user.Email)
	if err != nil {
		return nil, "", "", err
	}

	s.audit.SSOProvisioned(ctx, s.staffProvider.Name(), user.ID, user.Email, false)
	return user, access, refresh, nil
}

// HandlePwaCallback provisions unknown emails: a fresh passenger account
// gets the PWA role and a personal team. Known accounts keep any staff
// roles they already hold in addition to the PWA tag.
func (s *ssoService) HandlePwaCallback(ctx context.Context, code string) (*domain.User, string, error) {
	ident, err := s.pwaProvider.Exchange(ctx, code)
	if err != nil {
		return nil, "", err
	}
	if !ident.EmailVerified {
		return nil, "", fmt.Errorf("%w: email not verified", identity.ErrProviderFailure)
	}

	created := false
	user, err := s.userRepo.GetByEmail(ctx, ident.Email)
	if err != nil {
		if !errors.Is(err, sql.ErrNoRows) {
			return nil, "", err
		}
		user = &domain.User{
			Email: ident.Email,
			Name:  ident.Name,
			Roles: []domain.Role{domain.RolePwaUser},
		}
		if err := s.userRepo.Create(ctx, user); err != nil {
			return nil, "", err
		}
		created = true
		_ = s.emailSvc.SendWelcomeNotification(ctx, user.Email, user.Name)
	}

	if !user.HasRole(domain.RolePwaUser) {
		if err := s.userRepo.AddRole(ctx, user.ID, domain.RolePwaUser); err != nil {
			return nil, "", err
		}
		user.Roles = append(user.Roles, domain.RolePwaUser)
	}

	if err := s.attachExternalID(ctx, user, ident.Subject); err != nil {
		return nil, "", err
	}
	if err := s.ensurePersonalTeamSelected(ctx, user); err != nil {
		return nil, "", err
	}

	token, err := s.tokens.GenerateSessionToken(user.ID, "pwa")
	if err != nil {
		return nil, "", err
	}

	s.audit.SSOProvisioned(ctx, s.pwaProvider.Name(), user.ID, user.Email, created)
	return user, token, nil
}

// attachExternalID stores the provider subject once; the conditional
// update in the repository makes repeats harmless.
func (s *ssoService) attachExternalID(ctx context.Context, user *domain.User, subject string) error {
	if user.ExternalID != nil && *user.ExternalID == subject {
		return nil
	}
	if err := s.userRepo.SetExternalID(ctx, user.ID, subject); err != nil {
		return err
	}
	user.ExternalID = &subject
	return nil
}

// repairCurrentTeam leaves a usable current-team pointer untouched and
// otherwise falls back to the personal team.
func (s *ssoService) repairCurrentTeam(ctx context.Context, user *domain.User) error {
	if user.CurrentTeamID != nil {
		team, err := s.teamRepo.GetByID(ctx, *user.CurrentTeamID)
		if err == nil && team.DeletedOn == nil {
			return nil
		}
		if err != nil && !errors.Is(err, sql.ErrNoRows) {
			return err
		}
		logger.WarnContext(ctx, "Current team unusable, falling back to personal team",
			"user_id", user.ID, "team_id", *user.CurrentTeamID)
	}
	return s.ensurePersonalTeamSelected(ctx, user)
}

// ensurePersonalTeamSelected is the shared resolve-or-create routine
// used by both SSO flows. The repository creates the team inside one
// transaction, so repeated callbacks never yield a second personal team.
func (s *ssoService) ensurePersonalTeamSelected(ctx context.Context, user *domain.User) error {
	name := user.Name
	if name == "" {
		name = user.Email
	}
	team, err := s.teamRepo.EnsurePersonalTeam(ctx, user.ID, name)
	if err != nil {
		return err
	}
	if user.CurrentTeamID != nil && *user.CurrentTeamID == team.ID {
		return nil
	}
	if err := s.userRepo.SetCurrentTeam(ctx, user.ID, team.ID); err != nil {
		return err
	}
	logger.InfoContext(ctx, "Selected personal team", "user_id", user.ID, "team_id", team.ID)
	user.CurrentTeamID = &team.ID
	return nil
}
