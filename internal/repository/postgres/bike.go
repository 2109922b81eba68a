package postgres

import (
	"context"
	"database/sql"
	"time"

	"github.com/lib/pq"

	"bikefleet-backend/internal/domain"
	"bikefleet-backend/internal/repository"
)

type bikeRepository struct {
	db *sql.DB
}

func NewBikeRepository(db *sql.DB) repository.BikeRepository {
	return &bikeRepository{db: db}
}

func (r *bikeRepository) Create(ctx context.Context, b *domain.Bike) error {
	query := `INSERT INTO bikes (team_id, label, model, status, created_on, updated_on)
	          VALUES ($1, $2, $3, $4, $5, $6) RETURNING id`
	now := time.Now().Format(time.RFC3339)
	b.CreatedOn = now
	b.UpdatedOn = now
	if b.Status == "" {
		b.Status = domain.BikeStatusAvailable
	}
	return r.db.QueryRowContext(ctx, query, b.TeamID, b.Label, b.Model, string(b.Status), b.CreatedOn, b.UpdatedOn).Scan(&b.ID)
}

func (r *bikeRepository) GetByID(ctx context.Context, id int32) (*domain.Bike, error) {
	b := &domain.Bike{}
	query := `SELECT id, team_id, label, model, status, created_on, updated_on, deleted_on FROM bikes WHERE id = $1`
	var status string
	var deletedOn sql.NullString
	err := r.db.QueryRowContext(ctx, query, id).Scan(&b.ID, &b.TeamID, &b.Label, &b.Model, &status, &b.CreatedOn, &b.UpdatedOn, &deletedOn)
	if err != nil {
		return nil, err
	}
	b.Status = domain.BikeStatus(status)
	if deletedOn.Valid {
		v := deletedOn.String
		b.DeletedOn = &v
	}
	return b, nil
}

func (r *bikeRepository) Update(ctx context.Context, b *domain.Bike) error {
	query := `UPDATE bikes SET team_id=$1, label=$2, model=$3, status=$4, updated_on=$5 WHERE id=$6`
	b.UpdatedOn = time.Now().Format(time.RFC3339)
	_, err := r.db.ExecContext(ctx, query, b.TeamID, b.Label, b.Model, string(b.Status), b.UpdatedOn, b.ID)
	return err
}

func (r *bikeRepository) UpdateStatus(ctx context.Context, id int32, status domain.BikeStatus) error {
	query := `UPDATE bikes SET status=$1, updated_on=$2 WHERE id=$3`
	_, err := r.db.ExecContext(ctx, query, string(status), time.Now().Format(time.RFC3339), id)
	return err
}

func (r *bikeRepository) SoftDelete(ctx context.Context, id int32) error {
	query := `UPDATE bikes SET deleted_on=$1 WHERE id=$2 AND deleted_on IS NULL`
	_, err := r.db.ExecContext(ctx, query, time.Now().Format(time.RFC3339), id)
	return err
}

func (r *bikeRepository) Restore(ctx context.Context, id int32) error {
	query := `UPDATE bikes SET deleted_on=NULL WHERE id=$1`
	_, err := r.db.ExecContext(ctx, query, id)
	return err
}

func (r *bikeRepository) ListByTeams(ctx context.Context, teamIDs []int32) ([]domain.Bike, error) {
	query := `SELECT id, team_id, label, model, status, created_on, updated_on, deleted_on
	          FROM bikes WHERE team_id = ANY($1) AND deleted_on IS NULL ORDER BY label`
	rows, err := r.db.QueryContext(ctx, query, pq.Array(teamIDs))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var bikes []domain.Bike
	for rows.Next() {
		var b domain.Bike
		var status string
		var deletedOn sql.NullString
		if err := rows.Scan(&b.ID, &b.TeamID, &b.Label, &b.Model, &status, &b.CreatedOn, &b.UpdatedOn, &deletedOn); err != nil {
			return nil, err
		}
		b.Status = domain.BikeStatus(status)
		if deletedOn.Valid {
			v := deletedOn.String
			b.DeletedOn = &v
		}
		bikes = append(bikes, b)
	}
	return bikes, rows.Err()
}
