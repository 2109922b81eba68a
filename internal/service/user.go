package service

import (
	"context"

	"bikefleet-backend/internal/authz"
	"bikefleet-backend/internal/domain"
	"bikefleet-backend/internal/logger"
	"bikefleet-backend/internal/repository"
)

type userService struct {
	userRepo repository.UserRepository
	policy   *authz.UserPolicy
	emailSvc EmailService
	audit    *AuditLog
}

func NewUserService(userRepo repository.UserRepository, policy *authz.UserPolicy, emailSvc EmailService, audit *AuditLog) UserService {
	return &userService{
		userRepo: userRepo,
		policy:   policy,
		emailSvc: emailSvc,
		audit:    audit,
	}
}

func (s *userService) UpdateUser(ctx context.Context, actor authz.Actor, user *domain.User) error {
	current, err := s.userRepo.GetByID(ctx, user.ID)
	if err != nil {
		return err
	}
	target := authz.ActorFor(current, nil)
	d := s.policy.Update(actor, target)
	s.audit.Decision(ctx, actor, "update", "user", user.ID, d)
	if !d.Allowed {
		return forbidden(d)
	}
	// Roles, credentials and SSO linkage have dedicated paths.
	user.Roles = current.Roles
	user.PasswordHash = current.PasswordHash
	user.ExternalID = current.ExternalID
	return s.userRepo.Update(ctx, user)
}

func (s *userService) DeleteUser(ctx context.Context, actor authz.Actor, targetID int32) error {
	current, err := s.userRepo.GetByID(ctx, targetID)
	if err != nil {
		return err
	}
	d := s.policy.Delete(actor, authz.ActorFor(current, nil))
	s.audit.Decision(ctx, actor, "delete", "user", targetID, d)
	if !d.Allowed {
		return forbidden(d)
	}
	return s.userRepo.SoftDelete(ctx, targetID)
}

func (s *userService) RestoreUser(ctx context.Context, actor authz.Actor, targetID int32) error {
	current, err := s.userRepo.GetByID(ctx, targetID)
	if err != nil {
		return err
	}
	d := s.policy.Restore(actor, authz.ActorFor(current, nil))
	s.audit.Decision(ctx, actor, "restore", "user", targetID, d)
	if !d.Allowed {
		return forbidden(d)
	}
	return s.userRepo.Restore(ctx, targetID)
}

// ChangeRole replaces the target's staff role. The PWA passenger tag is
// left untouched so a staff member with a linked booking keeps both.
func (s *userService) ChangeRole(ctx context.Context, actor authz.Actor, targetID int32, newRole domain.Role) error {
	current, err := s.userRepo.GetByID(ctx, targetID)
	if err != nil {
		return err
	}
	target := authz.ActorFor(current, nil)
	d := s.policy.ChangeRole(actor, target, newRole)
	s.audit.Decision(ctx, actor, "change_role", "user", targetID, d)
	if !d.Allowed {
		return forbidden(d)
	}

	oldRole := ""
	for _, r := range current.Roles {
		if r.IsStaffRole() {
			oldRole = string(r)
			if err := s.userRepo.RemoveRole(ctx, targetID, r); err != nil {
				return err
			}
		}
	}
	if err := s.userRepo.AddRole(ctx, targetID, newRole); err != nil {
		return err
	}

	s.audit.RoleChanged(ctx, actor.ID, targetID, oldRole, string(newRole))
	if err := s.emailSvc.SendRoleChangedNotification(ctx, current.Email, current.Name, string(newRole)); err != nil {
		// Notification failure does not undo the role change.
		logger.WarnContext(ctx, "Role change notification failed", "user_id", targetID, "error", err)
	}
	return nil
}
