package authz

import "context"

// TeamDirectory is the read-only view of team ownership and membership
// the policies need. The postgres team repository implements it.
type TeamDirectory interface {
	IsOwner(ctx context.Context, userID, teamID int32) (bool, error)
	IsMember(ctx context.Context, userID, teamID int32) (bool, error)
	OwnedOrMemberTeamIDs(ctx context.Context, userID int32) ([]int32, error)
	BelongsToOperationalTeam(ctx context.Context, userID int32) (bool, error)
}

// ScopeResolver answers ownership and membership questions for policies.
// Owning a team and belonging to it are independent predicates: an owner
// is not implicitly a member, and several policies deliberately check
// only one side.
type ScopeResolver struct {
	dir TeamDirectory
}

func NewScopeResolver(dir TeamDirectory) *ScopeResolver {
	return &ScopeResolver{dir: dir}
}

func (r *ScopeResolver) IsOwner(ctx context.Context, userID, teamID int32) (bool, error) {
	return r.dir.IsOwner(ctx, userID, teamID)
}

func (r *ScopeResolver) IsMember(ctx context.Context, userID, teamID int32) (bool, error) {
	return r.dir.IsMember(ctx, userID, teamID)
}

// InScope reports whether the user owns or belongs to the team.
func (r *ScopeResolver) InScope(ctx context.Context, userID, teamID int32) (bool, error) {
	owner, err := r.dir.IsOwner(ctx, userID, teamID)
	if err != nil {
		return false, err
	}
	if owner {
		return true, nil
	}
	return r.dir.IsMember(ctx, userID, teamID)
}

// OwnedOrMemberTeamIDs returns the union of owned and member team ids,
// used to pre-filter list queries instead of deciding row by row.
func (r *ScopeResolver) OwnedOrMemberTeamIDs(ctx context.Context, userID int32) ([]int32, error) {
	return r.dir.OwnedOrMemberTeamIDs(ctx, userID)
}

// BelongsToOperationalTeam reports whether the user owns or belongs to
// at least one non-personal team.
func (r *ScopeResolver) BelongsToOperationalTeam(ctx context.Context, userID int32) (bool, error) {
	return r.dir.BelongsToOperationalTeam(ctx, userID)
}
