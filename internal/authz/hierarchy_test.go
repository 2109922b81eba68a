package authz_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"bikefleet-backend/internal/authz"
	"bikefleet-backend/internal/domain"
)

func TestRankOf(t *testing.T) {
	assert.Equal(t, 1, authz.RankOfRole(domain.RoleSuperAdmin))
	assert.Equal(t, 2, authz.RankOfRole(domain.RoleOwner))
	assert.Equal(t, 3, authz.RankOfRole(domain.RoleSupervisor))
	assert.Equal(t, 4, authz.RankOfRole(domain.RoleStaff))
	assert.Equal(t, authz.LowestRank, authz.RankOfRole(domain.RolePwaUser))
	assert.Equal(t, authz.LowestRank, authz.RankOfRole(domain.Role("Janitor")))

	t.Run("BestRoleWins", func(t *testing.T) {
		rank := authz.RankOf([]domain.Role{domain.RoleStaff, domain.RoleOwner, domain.RolePwaUser})
		assert.Equal(t, 2, rank)
	})

	t.Run("EmptySetIsLowest", func(t *testing.T) {
		assert.Equal(t, authz.LowestRank, authz.RankOf(nil))
	})
}

func TestOutranks(t *testing.T) {
	owner := actorWith(1, nil, domain.RoleOwner)
	supervisor := actorWith(2, nil, domain.RoleSupervisor)
	staff := actorWith(3, nil, domain.RoleStaff)
	admin := actorWith(4, nil, domain.RoleSuperAdmin)
	pax := actorWith(5, nil, domain.RolePwaUser)

	assert.True(t, authz.Outranks(owner, supervisor))
	assert.True(t, authz.Outranks(supervisor, staff))
	assert.True(t, authz.Outranks(staff, pax))

	// Equal rank never outranks.
	assert.False(t, authz.Outranks(supervisor, supervisor))
	assert.False(t, authz.Outranks(staff, actorWith(6, nil, domain.RoleStaff)))

	// Upward never outranks.
	assert.False(t, authz.Outranks(staff, owner))
	assert.False(t, authz.Outranks(owner, admin))

	// Super Admin outranks everyone, including another Super Admin.
	assert.True(t, authz.Outranks(admin, owner))
	assert.True(t, authz.Outranks(admin, actorWith(7, nil, domain.RoleSuperAdmin)))
}

func TestCanGrantRole(t *testing.T) {
	admin := actorWith(1, nil, domain.RoleSuperAdmin)
	owner := actorWith(2, nil, domain.RoleOwner)
	supervisor := actorWith(3, nil, domain.RoleSupervisor)
	staff := actorWith(4, nil, domain.RoleStaff)

	t.Run("SuperAdminGrantsAnything", func(t *testing.T) {
		assert.True(t, authz.CanGrantRole(admin, domain.RoleSuperAdmin))
		assert.True(t, authz.CanGrantRole(admin, domain.RoleOwner))
		assert.True(t, authz.CanGrantRole(admin, domain.RoleStaff))
	})

	t.Run("OnlyStrictlyLowerRoles", func(t *testing.T) {
		assert.True(t, authz.CanGrantRole(owner, domain.RoleSupervisor))
		assert.True(t, authz.CanGrantRole(owner, domain.RoleStaff))
		assert.False(t, authz.CanGrantRole(owner, domain.RoleOwner))

		assert.True(t, authz.CanGrantRole(supervisor, domain.RoleStaff))
		assert.False(t, authz.CanGrantRole(supervisor, domain.RoleSupervisor))

		assert.False(t, authz.CanGrantRole(staff, domain.RoleStaff))
	})

	t.Run("NobodyGrantsSuperAdmin", func(t *testing.T) {
		assert.False(t, authz.CanGrantRole(owner, domain.RoleSuperAdmin))
		assert.False(t, authz.CanGrantRole(supervisor, domain.RoleSuperAdmin))
	})
}
