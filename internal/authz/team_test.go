package authz_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"bikefleet-backend/internal/authz"
	"bikefleet-backend/internal/domain"
)

func TestTeamPolicy_Create(t *testing.T) {
	policy := authz.NewTeamPolicy(authz.NewScopeResolver(newFakeDirectory()))

	assert.True(t, policy.Create(actorWith(1, nil, domain.RoleOwner)).Allowed)
	assert.True(t, policy.Create(actorWith(2, nil, domain.RoleSuperAdmin)).Allowed)

	d := policy.Create(actorWith(3, nil, domain.RoleSupervisor))
	assert.False(t, d.Allowed)
	assert.Equal(t, authz.ReasonRoleInsufficient, d.Reason)
}

func TestTeamPolicy_MemberManagement(t *testing.T) {
	ctx := context.Background()
	dir := newFakeDirectory().
		own(1, 10).
		member(2, 10).
		member(3, 10)
	policy := authz.NewTeamPolicy(authz.NewScopeResolver(dir))
	team := &domain.Team{ID: 10, OwnerID: 1}

	t.Run("DesignatedOwner", func(t *testing.T) {
		d, err := policy.AddTeamMember(ctx, actorWith(1, nil, domain.RoleOwner), team)
		assert.NoError(t, err)
		assert.True(t, d.Allowed)
	})

	t.Run("SupervisorWorkingHere", func(t *testing.T) {
		d, err := policy.AddTeamMember(ctx, actorWith(2, teamPtr(10), domain.RoleSupervisor), team)
		assert.NoError(t, err)
		assert.True(t, d.Allowed)
	})

	t.Run("SupervisorWorkingElsewhere", func(t *testing.T) {
		d, err := policy.AddTeamMember(ctx, actorWith(2, teamPtr(11), domain.RoleSupervisor), team)
		assert.NoError(t, err)
		assert.False(t, d.Allowed)
		assert.Equal(t, authz.ReasonOutOfScope, d.Reason)
	})

	t.Run("PlainMembershipNotEnough", func(t *testing.T) {
		d, err := policy.Update(ctx, actorWith(3, teamPtr(10), domain.RoleStaff), team)
		assert.NoError(t, err)
		assert.False(t, d.Allowed)
	})
}

func TestTeamPolicy_RemoveTeamMember(t *testing.T) {
	ctx := context.Background()
	dir := newFakeDirectory().
		own(1, 10).
		member(2, 10)
	policy := authz.NewTeamPolicy(authz.NewScopeResolver(dir))
	team := &domain.Team{ID: 10, OwnerID: 1}

	owner := actorWith(1, teamPtr(10), domain.RoleOwner)
	supervisor := actorWith(2, teamPtr(10), domain.RoleSupervisor)
	staffTarget := actorWith(5, nil, domain.RoleStaff)
	supTarget := actorWith(6, nil, domain.RoleSupervisor)

	t.Run("SelfRemovalDenied", func(t *testing.T) {
		d, err := policy.RemoveTeamMember(ctx, owner, team, owner)
		assert.NoError(t, err)
		assert.False(t, d.Allowed)
		assert.Equal(t, authz.ReasonConflict, d.Reason)
	})

	t.Run("OwnerRemovesAnyone", func(t *testing.T) {
		d, err := policy.RemoveTeamMember(ctx, owner, team, supTarget)
		assert.NoError(t, err)
		assert.True(t, d.Allowed)
	})

	t.Run("SupervisorRemovesStaffOnly", func(t *testing.T) {
		d, err := policy.RemoveTeamMember(ctx, supervisor, team, staffTarget)
		assert.NoError(t, err)
		assert.True(t, d.Allowed)

		d, err = policy.RemoveTeamMember(ctx, supervisor, team, supTarget)
		assert.NoError(t, err)
		assert.False(t, d.Allowed)
		assert.Equal(t, authz.ReasonRoleInsufficient, d.Reason)
	})

	t.Run("SuperAdminOverride", func(t *testing.T) {
		admin := actorWith(9, nil, domain.RoleSuperAdmin)
		d, err := policy.RemoveTeamMember(ctx, admin, team, supTarget)
		assert.NoError(t, err)
		assert.True(t, d.Allowed)
	})
}

func TestTeamPolicy_Delete(t *testing.T) {
	ctx := context.Background()
	dir := newFakeDirectory().own(1, 10).member(2, 10)
	policy := authz.NewTeamPolicy(authz.NewScopeResolver(dir))
	team := &domain.Team{ID: 10, OwnerID: 1}

	d, err := policy.Delete(ctx, actorWith(1, nil, domain.RoleOwner), team)
	assert.NoError(t, err)
	assert.True(t, d.Allowed)

	// A supervisor member cannot delete the team.
	d, err = policy.Delete(ctx, actorWith(2, teamPtr(10), domain.RoleSupervisor), team)
	assert.NoError(t, err)
	assert.False(t, d.Allowed)
}
