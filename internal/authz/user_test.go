package authz_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"bikefleet-backend/internal/authz"
	"bikefleet-backend/internal/domain"
)

func TestUserPolicy_Manage(t *testing.T) {
	policy := authz.NewUserPolicy()

	owner := actorWith(1, nil, domain.RoleOwner)
	supervisor := actorWith(2, nil, domain.RoleSupervisor)
	staff := actorWith(3, nil, domain.RoleStaff)
	admin := actorWith(4, nil, domain.RoleSuperAdmin)

	t.Run("HigherRankManagesLower", func(t *testing.T) {
		assert.True(t, policy.Update(owner, supervisor).Allowed)
		assert.True(t, policy.Delete(supervisor, staff).Allowed)
	})

	t.Run("EqualRankDenied", func(t *testing.T) {
		other := actorWith(5, nil, domain.RoleSupervisor)
		d := policy.Update(supervisor, other)
		assert.False(t, d.Allowed)
		assert.Equal(t, authz.ReasonRoleInsufficient, d.Reason)
	})

	t.Run("LowerRankDenied", func(t *testing.T) {
		d := policy.Delete(staff, owner)
		assert.False(t, d.Allowed)
		assert.Equal(t, authz.ReasonRoleInsufficient, d.Reason)
	})

	t.Run("SelfAlwaysDenied", func(t *testing.T) {
		d := policy.Update(owner, owner)
		assert.False(t, d.Allowed)
		assert.Equal(t, authz.ReasonConflict, d.Reason)

		// Even a Super Admin cannot manage their own account here.
		d = policy.Delete(admin, admin)
		assert.False(t, d.Allowed)
		assert.Equal(t, authz.ReasonConflict, d.Reason)
	})

	t.Run("SuperAdminManagesAnyOther", func(t *testing.T) {
		peer := actorWith(6, nil, domain.RoleSuperAdmin)
		assert.True(t, policy.Update(admin, peer).Allowed)
		assert.True(t, policy.Delete(admin, owner).Allowed)
	})
}

func TestUserPolicy_ChangeRole(t *testing.T) {
	policy := authz.NewUserPolicy()

	owner := actorWith(1, nil, domain.RoleOwner)
	supervisor := actorWith(2, nil, domain.RoleSupervisor)
	staff := actorWith(3, nil, domain.RoleStaff)
	admin := actorWith(4, nil, domain.RoleSuperAdmin)

	t.Run("OwnerPromotesStaffToSupervisor", func(t *testing.T) {
		d := policy.ChangeRole(owner, staff, domain.RoleSupervisor)
		assert.True(t, d.Allowed)
	})

	t.Run("OwnerCannotMintAnotherOwner", func(t *testing.T) {
		d := policy.ChangeRole(owner, staff, domain.RoleOwner)
		assert.False(t, d.Allowed)
		assert.Equal(t, authz.ReasonRoleInsufficient, d.Reason)
	})

	t.Run("SupervisorCannotTouchPeers", func(t *testing.T) {
		peer := actorWith(5, nil, domain.RoleSupervisor)
		d := policy.ChangeRole(supervisor, peer, domain.RoleStaff)
		assert.False(t, d.Allowed)
	})

	t.Run("NobodyGrantsSuperAdmin", func(t *testing.T) {
		d := policy.ChangeRole(owner, staff, domain.RoleSuperAdmin)
		assert.False(t, d.Allowed)
	})

	t.Run("SuperAdminGrantsAnything", func(t *testing.T) {
		d := policy.ChangeRole(admin, owner, domain.RoleSuperAdmin)
		assert.True(t, d.Allowed)
	})

	t.Run("SelfRoleChangeDenied", func(t *testing.T) {
		d := policy.ChangeRole(owner, owner, domain.RoleStaff)
		assert.False(t, d.Allowed)
		assert.Equal(t, authz.ReasonConflict, d.Reason)
	})
}

func TestUserPolicy_View(t *testing.T) {
	policy := authz.NewUserPolicy()
	staff := actorWith(3, nil, domain.RoleStaff)

	t.Run("SelfViewAllowed", func(t *testing.T) {
		assert.True(t, policy.View(staff, staff).Allowed)
	})

	t.Run("StaffCannotViewOthers", func(t *testing.T) {
		other := actorWith(9, nil, domain.RoleStaff)
		d := policy.View(staff, other)
		assert.False(t, d.Allowed)
	})
}

func TestUserPolicy_ForceDelete(t *testing.T) {
	policy := authz.NewUserPolicy()
	owner := actorWith(1, nil, domain.RoleOwner)
	admin := actorWith(4, nil, domain.RoleSuperAdmin)
	target := actorWith(3, nil, domain.RoleStaff)

	assert.False(t, policy.ForceDelete(owner, target).Allowed)
	assert.True(t, policy.ForceDelete(admin, target).Allowed)
}
