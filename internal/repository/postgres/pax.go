package postgres

import (
	"context"
	"database/sql"
	"time"

	"bikefleet-backend/internal/domain"
	"bikefleet-backend/internal/repository"
)

type paxProfileRepository struct {
	db *sql.DB
}

func NewPaxProfileRepository(db *sql.DB) repository.PaxProfileRepository {
	return &paxProfileRepository{db: db}
}

func (r *paxProfileRepository) Create(ctx context.Context, p *domain.PaxProfile) error {
	query := `INSERT INTO pax_profiles (user_id, first_name, last_name, email, phone, created_on, updated_on)
	          VALUES ($1, $2, $3, $4, $5, $6, $7) RETURNING id`
	now := time.Now().Format(time.RFC3339)
	p.CreatedOn = now
	p.UpdatedOn = now
	return r.db.QueryRowContext(ctx, query, p.UserID, p.FirstName, p.LastName, p.Email, p.Phone, p.CreatedOn, p.UpdatedOn).Scan(&p.ID)
}

func (r *paxProfileRepository) GetByID(ctx context.Context, id int32) (*domain.PaxProfile, error) {
	p := &domain.PaxProfile{}
	query := `SELECT id, user_id, first_name, last_name, COALESCE(email, ''), COALESCE(phone, ''), created_on, updated_on, deleted_on
	          FROM pax_profiles WHERE id = $1`
	var userID sql.NullInt32
	var deletedOn sql.NullString
	err := r.db.QueryRowContext(ctx, query, id).Scan(&p.ID, &userID, &p.FirstName, &p.LastName, &p.Email, &p.Phone, &p.CreatedOn, &p.UpdatedOn, &deletedOn)
	if err != nil {
		return nil, err
	}
	if userID.Valid {
		v := userID.Int32
		p.UserID = &v
	}
	if deletedOn.Valid {
		v := deletedOn.String
		p.DeletedOn = &v
	}
	return p, nil
}

func (r *paxProfileRepository) Update(ctx context.Context, p *domain.PaxProfile) error {
	query := `UPDATE pax_profiles SET first_name=$1, last_name=$2, email=$3, phone=$4, updated_on=$5 WHERE id=$6`
	p.UpdatedOn = time.Now().Format(time.RFC3339)
	_, err := r.db.ExecContext(ctx, query, p.FirstName, p.LastName, p.Email, p.Phone, p.UpdatedOn, p.ID)
	return err
}

func (r *paxProfileRepository) SoftDelete(ctx context.Context, id int32) error {
	query := `UPDATE pax_profiles SET deleted_on=$1 WHERE id=$2 AND deleted_on IS NULL`
	_, err := r.db.ExecContext(ctx, query, time.Now().Format(time.RFC3339), id)
	return err
}

func (r *paxProfileRepository) Restore(ctx context.Context, id int32) error {
	query := `UPDATE pax_profiles SET deleted_on=NULL WHERE id=$1`
	_, err := r.db.ExecContext(ctx, query, id)
	return err
}

// ClaimForUser is the compare-and-swap behind booking linking. The WHERE
// clause only matches an unlinked profile or one already linked to this
// user, so two concurrent claims for the same profile cannot both win:
// the loser matches zero rows and reads back the winner's link.
func (r *paxProfileRepository) ClaimForUser(ctx context.Context, profileID, userID int32) (bool, error) {
	query := `UPDATE pax_profiles SET user_id=$1, updated_on=$2
	          WHERE id=$3 AND (user_id IS NULL OR user_id=$1)`
	res, err := r.db.ExecContext(ctx, query, userID, time.Now().Format(time.RFC3339), profileID)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func (r *paxProfileRepository) BackfillEmail(ctx context.Context, profileID int32, email string) error {
	query := `UPDATE pax_profiles SET email=$1, updated_on=$2
	          WHERE id=$3 AND (email IS NULL OR email='')`
	_, err := r.db.ExecContext(ctx, query, email, time.Now().Format(time.RFC3339), profileID)
	return err
}
