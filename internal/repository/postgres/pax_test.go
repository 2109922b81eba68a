package postgres_test

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"

	"bikefleet-backend/internal/repository/postgres"
)

func TestPaxProfileRepository_ClaimForUser(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("an error '%s' was not expected when opening a stub database connection", err)
	}
	defer db.Close()

	repo := postgres.NewPaxProfileRepository(db)
	ctx := context.Background()

	t.Run("ClaimWins", func(t *testing.T) {
		mock.ExpectExec("UPDATE pax_profiles SET user_id").
			WithArgs(int32(42), sqlmock.AnyArg(), int32(7)).
			WillReturnResult(sqlmock.NewResult(0, 1))

		claimed, err := repo.ClaimForUser(ctx, 7, 42)
		assert.NoError(t, err)
		assert.True(t, claimed)
	})

	t.Run("ClaimLosesToOtherUser", func(t *testing.T) {
		mock.ExpectExec("UPDATE pax_profiles SET user_id").
			WithArgs(int32(42), sqlmock.AnyArg(), int32(7)).
			WillReturnResult(sqlmock.NewResult(0, 0))

		claimed, err := repo.ClaimForUser(ctx, 7, 42)
		assert.NoError(t, err)
		assert.False(t, claimed)
	})

	t.Run("RepeatClaimBySameUserWins", func(t *testing.T) {
		// The WHERE clause matches a profile already linked to this
		// user, so the repeat still reports success.
		mock.ExpectExec("UPDATE pax_profiles SET user_id").
			WithArgs(int32(42), sqlmock.AnyArg(), int32(7)).
			WillReturnResult(sqlmock.NewResult(0, 1))

		claimed, err := repo.ClaimForUser(ctx, 7, 42)
		assert.NoError(t, err)
		assert.True(t, claimed)
	})
}

func TestPaxProfileRepository_GetByID(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("an error '%s' was not expected when opening a stub database connection", err)
	}
	defer db.Close()

	repo := postgres.NewPaxProfileRepository(db)
	ctx := context.Background()

	t.Run("UnlinkedProfile", func(t *testing.T) {
		rows := sqlmock.NewRows([]string{"id", "user_id", "first_name", "last_name", "email", "phone", "created_on", "updated_on", "deleted_on"}).
			AddRow(7, nil, "Ada", "Lovelace", "", "", "2026-08-01T00:00:00Z", "2026-08-01T00:00:00Z", nil)

		mock.ExpectQuery("SELECT (.+) FROM pax_profiles WHERE id = \\$1").
			WithArgs(int32(7)).
			WillReturnRows(rows)

		p, err := repo.GetByID(ctx, 7)
		assert.NoError(t, err)
		assert.Nil(t, p.UserID)
		assert.Equal(t, "Ada", p.FirstName)
	})

	t.Run("LinkedProfile", func(t *testing.T) {
		rows := sqlmock.NewRows([]string{"id", "user_id", "first_name", "last_name", "email", "phone", "created_on", "updated_on", "deleted_on"}).
			AddRow(7, 42, "Ada", "Lovelace", "ada@example.com", "", "2026-08-01T00:00:00Z", "2026-08-01T00:00:00Z", nil)

		mock.ExpectQuery("SELECT (.+) FROM pax_profiles WHERE id = \\$1").
			WithArgs(int32(7)).
			WillReturnRows(rows)

		p, err := repo.GetByID(ctx, 7)
		assert.NoError(t, err)
		assert.NotNil(t, p.UserID)
		assert.Equal(t, int32(42), *p.UserID)
	})
}

func TestPaxProfileRepository_BackfillEmail(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("an error '%s' was not expected when opening a stub database connection", err)
	}
	defer db.Close()

	repo := postgres.NewPaxProfileRepository(db)
	ctx := context.Background()

	t.Run("FillsEmptyEmailOnly", func(t *testing.T) {
		mock.ExpectExec("UPDATE pax_profiles SET email").
			WithArgs("ada@example.com", sqlmock.AnyArg(), int32(7)).
			WillReturnResult(sqlmock.NewResult(0, 1))

		assert.NoError(t, repo.BackfillEmail(ctx, 7, "ada@example.com"))
	})
}
