package authz_test

import (
	"context"

	"bikefleet-backend/internal/authz"
	"bikefleet-backend/internal/domain"
)

// fakeDirectory is an in-memory TeamDirectory keyed by user id.
type fakeDirectory struct {
	owns      map[int32][]int32
	memberOf  map[int32][]int32
	personals map[int32]bool // teamID -> personal
}

func newFakeDirectory() *fakeDirectory {
	return &fakeDirectory{
		owns:      make(map[int32][]int32),
		memberOf:  make(map[int32][]int32),
		personals: make(map[int32]bool),
	}
}

func (f *fakeDirectory) own(userID int32, teamIDs ...int32) *fakeDirectory {
	f.owns[userID] = append(f.owns[userID], teamIDs...)
	return f
}

func (f *fakeDirectory) member(userID int32, teamIDs ...int32) *fakeDirectory {
	f.memberOf[userID] = append(f.memberOf[userID], teamIDs...)
	return f
}

func (f *fakeDirectory) personal(teamIDs ...int32) *fakeDirectory {
	for _, id := range teamIDs {
		f.personals[id] = true
	}
	return f
}

func (f *fakeDirectory) IsOwner(_ context.Context, userID, teamID int32) (bool, error) {
	return contains(f.owns[userID], teamID), nil
}

func (f *fakeDirectory) IsMember(_ context.Context, userID, teamID int32) (bool, error) {
	return contains(f.memberOf[userID], teamID), nil
}

func (f *fakeDirectory) OwnedOrMemberTeamIDs(_ context.Context, userID int32) ([]int32, error) {
	seen := make(map[int32]bool)
	var ids []int32
	for _, id := range append(append([]int32{}, f.owns[userID]...), f.memberOf[userID]...) {
		if !seen[id] {
			seen[id] = true
			ids = append(ids, id)
		}
	}
	return ids, nil
}

func (f *fakeDirectory) BelongsToOperationalTeam(_ context.Context, userID int32) (bool, error) {
	for _, id := range append(append([]int32{}, f.owns[userID]...), f.memberOf[userID]...) {
		if !f.personals[id] {
			return true, nil
		}
	}
	return false, nil
}

func contains(ids []int32, id int32) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}

func actorWith(id int32, team *int32, roles ...domain.Role) authz.Actor {
	return authz.Actor{ID: id, Roles: roles, TeamContext: team}
}

func teamPtr(id int32) *int32 {
	return &id
}
