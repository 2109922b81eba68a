package postgres

import (
	"context"
	"database/sql"
	"time"

	"bikefleet-backend/internal/domain"
	"bikefleet-backend/internal/repository"
)

type poiRepository struct {
	db *sql.DB
}

func NewPoiRepository(db *sql.DB) repository.PoiRepository {
	return &poiRepository{db: db}
}

func (r *poiRepository) Create(ctx context.Context, p *domain.PointOfInterest) error {
	query := `INSERT INTO points_of_interest (team_id, category, name, latitude, longitude, approved, active, created_by, created_on, updated_on)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10) RETURNING id`
	now := time.Now().Format(time.RFC3339)
	p.CreatedOn = now
	p.UpdatedOn = now
	// Depot entries mirror team records and never wait for approval.
	if p.Category == domain.PoiCategoryDepot {
		p.Approved = true
	}
	return r.db.QueryRowContext(ctx, query, p.TeamID, string(p.Category), p.Name, p.Latitude, p.Longitude,
		p.Approved, p.Active, p.CreatedBy, p.CreatedOn, p.UpdatedOn).Scan(&p.ID)
}

func (r *poiRepository) GetByID(ctx context.Context, id int32) (*domain.PointOfInterest, error) {
	p := &domain.PointOfInterest{}
	query := `SELECT id, team_id, category, name, latitude, longitude, approved, active, created_by, created_on, updated_on, deleted_on
	          FROM points_of_interest WHERE id = $1`
	var teamID sql.NullInt32
	var category string
	var deletedOn sql.NullString
	err := r.db.QueryRowContext(ctx, query, id).Scan(&p.ID, &teamID, &category, &p.Name, &p.Latitude, &p.Longitude,
		&p.Approved, &p.Active, &p.CreatedBy, &p.CreatedOn, &p.UpdatedOn, &deletedOn)
	if err != nil {
		return nil, err
	}
	p.Category = domain.PoiCategory(category)
	if teamID.Valid {
		v := teamID.Int32
		p.TeamID = &v
	}
	if deletedOn.Valid {
		v := deletedOn.String
		p.DeletedOn = &v
	}
	return p, nil
}

func (r *poiRepository) Update(ctx context.Context, p *domain.PointOfInterest) error {
	query := `UPDATE points_of_interest SET name=$1, latitude=$2, longitude=$3, updated_on=$4 WHERE id=$5`
	p.UpdatedOn = time.Now().Format(time.RFC3339)
	_, err := r.db.ExecContext(ctx, query, p.Name, p.Latitude, p.Longitude, p.UpdatedOn, p.ID)
	return err
}

func (r *poiRepository) SetApproved(ctx context.Context, id int32, approved bool) error {
	query := `UPDATE points_of_interest SET approved=$1, updated_on=$2 WHERE id=$3`
	_, err := r.db.ExecContext(ctx, query, approved, time.Now().Format(time.RFC3339), id)
	return err
}

func (r *poiRepository) SetActive(ctx context.Context, id int32, active bool) error {
	query := `UPDATE points_of_interest SET active=$1, updated_on=$2 WHERE id=$3`
	_, err := r.db.ExecContext(ctx, query, active, time.Now().Format(time.RFC3339), id)
	return err
}

func (r *poiRepository) SoftDelete(ctx context.Context, id int32) error {
	query := `UPDATE points_of_interest SET deleted_on=$1 WHERE id=$2 AND deleted_on IS NULL`
	_, err := r.db.ExecContext(ctx, query, time.Now().Format(time.RFC3339), id)
	return err
}

func (r *poiRepository) Restore(ctx context.Context, id int32) error {
	query := `UPDATE points_of_interest SET deleted_on=NULL WHERE id=$1`
	_, err := r.db.ExecContext(ctx, query, id)
	return err
}

func (r *poiRepository) ListByCategory(ctx context.Context, category domain.PoiCategory) ([]domain.PointOfInterest, error) {
	query := `SELECT id, team_id, category, name, latitude, longitude, approved, active, created_by, created_on, updated_on, deleted_on
	          FROM points_of_interest WHERE category = $1 AND deleted_on IS NULL ORDER BY name`
	rows, err := r.db.QueryContext(ctx, query, string(category))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var pois []domain.PointOfInterest
	for rows.Next() {
		var p domain.PointOfInterest
		var teamID sql.NullInt32
		var cat string
		var deletedOn sql.NullString
		if err := rows.Scan(&p.ID, &teamID, &cat, &p.Name, &p.Latitude, &p.Longitude,
			&p.Approved, &p.Active, &p.CreatedBy, &p.CreatedOn, &p.UpdatedOn, &deletedOn); err != nil {
			return nil, err
		}
		p.Category = domain.PoiCategory(cat)
		if teamID.Valid {
			v := teamID.Int32
			p.TeamID = &v
		}
		if deletedOn.Valid {
			v := deletedOn.String
			p.DeletedOn = &v
		}
		pois = append(pois, p)
	}
	return pois, rows.Err()
}
