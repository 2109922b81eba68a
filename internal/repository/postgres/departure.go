package postgres

import (
	"context"
	"database/sql"
	"time"

	"bikefleet-backend/internal/domain"
	"bikefleet-backend/internal/repository"
)

type departureRepository struct {
	db *sql.DB
}

func NewDepartureRepository(db *sql.DB) repository.DepartureRepository {
	return &departureRepository{db: db}
}

func (r *departureRepository) Create(ctx context.Context, d *domain.ShipDeparture) error {
	query := `INSERT INTO ship_departures (ship_name, cruise_line, departs_at, active, created_on, updated_on)
	          VALUES ($1, $2, $3, $4, $5, $6) RETURNING id`
	now := time.Now().Format(time.RFC3339)
	d.CreatedOn = now
	d.UpdatedOn = now
	return r.db.QueryRowContext(ctx, query, d.ShipName, d.CruiseLine, d.DepartsAt, d.Active, d.CreatedOn, d.UpdatedOn).Scan(&d.ID)
}

func (r *departureRepository) GetByID(ctx context.Context, id int32) (*domain.ShipDeparture, error) {
	d := &domain.ShipDeparture{}
	query := `SELECT id, ship_name, cruise_line, departs_at, active, created_on, updated_on, deleted_on
	          FROM ship_departures WHERE id = $1`
	var deletedOn sql.NullString
	err := r.db.QueryRowContext(ctx, query, id).Scan(&d.ID, &d.ShipName, &d.CruiseLine, &d.DepartsAt, &d.Active, &d.CreatedOn, &d.UpdatedOn, &deletedOn)
	if err != nil {
		return nil, err
	}
	if deletedOn.Valid {
		v := deletedOn.String
		d.DeletedOn = &v
	}
	return d, nil
}

func (r *departureRepository) Update(ctx context.Context, d *domain.ShipDeparture) error {
	query := `UPDATE ship_departures SET ship_name=$1, cruise_line=$2, departs_at=$3, updated_on=$4 WHERE id=$5`
	d.UpdatedOn = time.Now().Format(time.RFC3339)
	_, err := r.db.ExecContext(ctx, query, d.ShipName, d.CruiseLine, d.DepartsAt, d.UpdatedOn, d.ID)
	return err
}

func (r *departureRepository) SetActive(ctx context.Context, id int32, active bool) error {
	query := `UPDATE ship_departures SET active=$1, updated_on=$2 WHERE id=$3`
	_, err := r.db.ExecContext(ctx, query, active, time.Now().Format(time.RFC3339), id)
	return err
}

func (r *departureRepository) SoftDelete(ctx context.Context, id int32) error {
	query := `UPDATE ship_departures SET deleted_on=$1 WHERE id=$2 AND deleted_on IS NULL`
	_, err := r.db.ExecContext(ctx, query, time.Now().Format(time.RFC3339), id)
	return err
}

func (r *departureRepository) Restore(ctx context.Context, id int32) error {
	query := `UPDATE ship_departures SET deleted_on=NULL WHERE id=$1`
	_, err := r.db.ExecContext(ctx, query, id)
	return err
}

func (r *departureRepository) List(ctx context.Context) ([]domain.ShipDeparture, error) {
	query := `SELECT id, ship_name, cruise_line, departs_at, active, created_on, updated_on, deleted_on
	          FROM ship_departures WHERE deleted_on IS NULL ORDER BY departs_at`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var deps []domain.ShipDeparture
	for rows.Next() {
		var d domain.ShipDeparture
		var deletedOn sql.NullString
		if err := rows.Scan(&d.ID, &d.ShipName, &d.CruiseLine, &d.DepartsAt, &d.Active, &d.CreatedOn, &d.UpdatedOn, &deletedOn); err != nil {
			return nil, err
		}
		if deletedOn.Valid {
			v := deletedOn.String
			d.DeletedOn = &v
		}
		deps = append(deps, d)
	}
	return deps, rows.Err()
}
