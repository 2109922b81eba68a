package service

import (
	"context"
	"fmt"

	"bikefleet-backend/internal/authz"
	"bikefleet-backend/internal/domain"
	"bikefleet-backend/internal/repository"
)

type teamService struct {
	teamRepo repository.TeamRepository
	userRepo repository.UserRepository
	policy   *authz.TeamPolicy
	audit    *AuditLog
}

func NewTeamService(teamRepo repository.TeamRepository, userRepo repository.UserRepository, policy *authz.TeamPolicy, audit *AuditLog) TeamService {
	return &teamService{
		teamRepo: teamRepo,
		userRepo: userRepo,
		policy:   policy,
		audit:    audit,
	}
}

func (s *teamService) CreateTeam(ctx context.Context, actor authz.Actor, name string) (*domain.Team, error) {
	if d := s.policy.Create(actor); !d.Allowed {
		return nil, forbidden(d)
	}
	team := &domain.Team{
		Name:    name,
		OwnerID: actor.ID,
	}
	if err := s.teamRepo.Create(ctx, team); err != nil {
		return nil, fmt.Errorf("create team: %w", err)
	}
	return team, nil
}

func (s *teamService) GetTeam(ctx context.Context, actor authz.Actor, teamID int32) (*domain.Team, error) {
	team, err := s.teamRepo.GetByID(ctx, teamID)
	if err != nil {
		return nil, err
	}
	d, err := s.policy.View(ctx, actor, team)
	if err != nil {
		return nil, err
	}
	if !d.Allowed {
		return nil, forbidden(d)
	}
	return team, nil
}

func (s *teamService) UpdateTeam(ctx context.Context, actor authz.Actor, team *domain.Team) error {
	current, err := s.teamRepo.GetByID(ctx, team.ID)
	if err != nil {
		return err
	}
	d, err := s.policy.Update(ctx, actor, current)
	if err != nil {
		return err
	}
	if !d.Allowed {
		return forbidden(d)
	}
	// Ownership and the personal flag are not editable through here.
	team.OwnerID = current.OwnerID
	team.Personal = current.Personal
	return s.teamRepo.Update(ctx, team)
}

func (s *teamService) DeleteTeam(ctx context.Context, actor authz.Actor, teamID int32) error {
	team, err := s.teamRepo.GetByID(ctx, teamID)
	if err != nil {
		return err
	}
	d, err := s.policy.Delete(ctx, actor, team)
	if err != nil {
		return err
	}
	s.audit.Decision(ctx, actor, "delete", "team", teamID, d)
	if !d.Allowed {
		return forbidden(d)
	}
	return s.teamRepo.SoftDelete(ctx, teamID)
}

func (s *teamService) AddMember(ctx context.Context, actor authz.Actor, teamID, userID int32, role domain.TeamRole) error {
	team, err := s.teamRepo.GetByID(ctx, teamID)
	if err != nil {
		return err
	}
	d, err := s.policy.AddTeamMember(ctx, actor, team)
	if err != nil {
		return err
	}
	if !d.Allowed {
		return forbidden(d)
	}
	if _, err := s.userRepo.GetByID(ctx, userID); err != nil {
		return err
	}
	member := &domain.TeamMember{
		TeamID: teamID,
		UserID: userID,
		Role:   role,
	}
	return s.teamRepo.AddMember(ctx, member)
}

func (s *teamService) UpdateMemberRole(ctx context.Context, actor authz.Actor, teamID, userID int32, role domain.TeamRole) error {
	team, err := s.teamRepo.GetByID(ctx, teamID)
	if err != nil {
		return err
	}
	d, err := s.policy.UpdateTeamMember(ctx, actor, team)
	if err != nil {
		return err
	}
	if !d.Allowed {
		return forbidden(d)
	}
	member, err := s.teamRepo.GetMember(ctx, teamID, userID)
	if err != nil {
		return err
	}
	member.Role = role
	return s.teamRepo.UpdateMember(ctx, member)
}

func (s *teamService) RemoveMember(ctx context.Context, actor authz.Actor, teamID, userID int32) error {
	team, err := s.teamRepo.GetByID(ctx, teamID)
	if err != nil {
		return err
	}
	targetUser, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return err
	}
	target := authz.ActorFor(targetUser, nil)
	d, err := s.policy.RemoveTeamMember(ctx, actor, team, target)
	if err != nil {
		return err
	}
	s.audit.Decision(ctx, actor, "remove_member", "team", teamID, d)
	if !d.Allowed {
		return forbidden(d)
	}
	if err := s.teamRepo.RemoveMember(ctx, teamID, userID); err != nil {
		return err
	}
	// A user whose current team just vanished falls back to their
	// personal team on next login; clear it eagerly when we can.
	if targetUser.CurrentTeamID != nil && *targetUser.CurrentTeamID == teamID {
		if personal, perr := s.teamRepo.GetPersonalTeam(ctx, userID); perr == nil {
			return s.userRepo.SetCurrentTeam(ctx, userID, personal.ID)
		}
	}
	return nil
}

// SelectTeam switches the caller's own team context. The target must be
// a team the caller owns or belongs to.
func (s *teamService) SelectTeam(ctx context.Context, userID, teamID int32) error {
	owner, err := s.teamRepo.IsOwner(ctx, userID, teamID)
	if err != nil {
		return err
	}
	if !owner {
		member, err := s.teamRepo.IsMember(ctx, userID, teamID)
		if err != nil {
			return err
		}
		if !member {
			return forbidden(authz.Deny(authz.ReasonOutOfScope))
		}
	}
	return s.userRepo.SetCurrentTeam(ctx, userID, teamID)
}
