package postgres_test

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"

	"bikefleet-backend/internal/repository/postgres"
)

func TestTeamRepository_EnsurePersonalTeam(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("an error '%s' was not expected when opening a stub database connection", err)
	}
	defer db.Close()

	repo := postgres.NewTeamRepository(db)
	ctx := context.Background()

	t.Run("ReturnsExistingTeam", func(t *testing.T) {
		mock.ExpectBegin()
		mock.ExpectExec("SELECT id FROM users WHERE id = \\$1 FOR UPDATE").
			WithArgs(int32(42)).
			WillReturnResult(sqlmock.NewResult(0, 1))
		rows := sqlmock.NewRows([]string{"id", "name", "owner_id", "personal", "created_on", "updated_on", "deleted_on"}).
			AddRow(100, "Ada", 42, true, "2026-08-01T00:00:00Z", "2026-08-01T00:00:00Z", nil)
		mock.ExpectQuery("SELECT (.+) FROM teams WHERE owner_id = \\$1 AND personal = TRUE").
			WithArgs(int32(42)).
			WillReturnRows(rows)
		mock.ExpectCommit()

		team, err := repo.EnsurePersonalTeam(ctx, 42, "Ada")
		assert.NoError(t, err)
		assert.Equal(t, int32(100), team.ID)
		assert.True(t, team.Personal)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("CreatesWhenMissing", func(t *testing.T) {
		mock.ExpectBegin()
		mock.ExpectExec("SELECT id FROM users WHERE id = \\$1 FOR UPDATE").
			WithArgs(int32(42)).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectQuery("SELECT (.+) FROM teams WHERE owner_id = \\$1 AND personal = TRUE").
			WithArgs(int32(42)).
			WillReturnRows(sqlmock.NewRows([]string{"id", "name", "owner_id", "personal", "created_on", "updated_on", "deleted_on"}))
		mock.ExpectQuery("INSERT INTO teams").
			WithArgs("Ada", int32(42), sqlmock.AnyArg(), sqlmock.AnyArg()).
			WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(101))
		mock.ExpectCommit()

		team, err := repo.EnsurePersonalTeam(ctx, 42, "Ada")
		assert.NoError(t, err)
		assert.Equal(t, int32(101), team.ID)
		assert.Equal(t, int32(42), team.OwnerID)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestTeamRepository_ScopeQueries(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("an error '%s' was not expected when opening a stub database connection", err)
	}
	defer db.Close()

	repo := postgres.NewTeamRepository(db)
	ctx := context.Background()

	t.Run("IsOwner", func(t *testing.T) {
		mock.ExpectQuery("SELECT EXISTS").
			WithArgs(int32(10), int32(2)).
			WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))

		ok, err := repo.IsOwner(ctx, 2, 10)
		assert.NoError(t, err)
		assert.True(t, ok)
	})

	t.Run("IsMember", func(t *testing.T) {
		mock.ExpectQuery("SELECT EXISTS").
			WithArgs(int32(10), int32(4)).
			WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(false))

		ok, err := repo.IsMember(ctx, 4, 10)
		assert.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("OwnedOrMemberTeamIDs", func(t *testing.T) {
		rows := sqlmock.NewRows([]string{"id"}).AddRow(10).AddRow(11)
		mock.ExpectQuery("SELECT id FROM teams WHERE owner_id = \\$1").
			WithArgs(int32(2)).
			WillReturnRows(rows)

		ids, err := repo.OwnedOrMemberTeamIDs(ctx, 2)
		assert.NoError(t, err)
		assert.Equal(t, []int32{10, 11}, ids)
	})
}
