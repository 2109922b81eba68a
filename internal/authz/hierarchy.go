package authz

import "bikefleet-backend/internal/domain"

// LowestRank is the rank assigned to any role outside the staff
// hierarchy, including "PWA User" and an empty role set.
const LowestRank = 99

// Lower rank means more privilege.
var roleRanks = map[domain.Role]int{
	domain.RoleSuperAdmin: 1,
	domain.RoleOwner:      2,
	domain.RoleSupervisor: 3,
	domain.RoleStaff:      4,
}

// RankOfRole returns the hierarchy rank of a single role.
func RankOfRole(role domain.Role) int {
	if rank, ok := roleRanks[role]; ok {
		return rank
	}
	return LowestRank
}

// RankOf returns the best (lowest) rank across a role set. An empty or
// unrecognized set is not an error: it is simply lowest privilege.
func RankOf(roles []domain.Role) int {
	rank := LowestRank
	for _, role := range roles {
		if r := RankOfRole(role); r < rank {
			rank = r
		}
	}
	return rank
}

// Rank returns the actor's effective hierarchy rank.
func (a Actor) Rank() int {
	return RankOf(a.Roles)
}

// Outranks reports whether actor a may manage actor b: strictly better
// rank, or a holds Super Admin.
func Outranks(a, b Actor) bool {
	if a.IsSuperAdmin() {
		return true
	}
	return a.Rank() < RankOf(b.Roles)
}

// CanGrantRole reports whether the actor may grant the given role: a
// Super Admin may grant anything; everyone else may only grant roles of
// strictly lower privilege than their own, and never Super Admin.
func CanGrantRole(a Actor, role domain.Role) bool {
	if a.IsSuperAdmin() {
		return true
	}
	if role == domain.RoleSuperAdmin {
		return false
	}
	return RankOfRole(role) > a.Rank()
}
