package postgres

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/lib/pq"

	"bikefleet-backend/internal/domain"
	"bikefleet-backend/internal/repository"
)

type rentalRepository struct {
	db *sql.DB
}

func NewRentalRepository(db *sql.DB) repository.RentalRepository {
	return &rentalRepository{db: db}
}

const rentalColumns = `id, pax_profile_id, bike_id, start_team_id, end_team_id, ship_departure_id,
	staff_id, booking_code, status, start_date, end_date, created_on, updated_on, deleted_on`

func (r *rentalRepository) Create(ctx context.Context, rt *domain.Rental) error {
	query := `INSERT INTO rentals (pax_profile_id, bike_id, start_team_id, end_team_id, ship_departure_id,
	            staff_id, booking_code, status, start_date, end_date, created_on, updated_on)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12) RETURNING id`
	now := time.Now().Format(time.RFC3339)
	rt.CreatedOn = now
	rt.UpdatedOn = now
	return r.db.QueryRowContext(ctx, query,
		rt.PaxProfileID, rt.BikeID, rt.StartTeamID, rt.EndTeamID, rt.ShipDepartureID,
		rt.StaffID, rt.BookingCode, string(rt.Status), rt.StartDate, rt.EndDate, rt.CreatedOn, rt.UpdatedOn,
	).Scan(&rt.ID)
}

func (r *rentalRepository) GetByID(ctx context.Context, id int32) (*domain.Rental, error) {
	query := `SELECT ` + rentalColumns + ` FROM rentals WHERE id = $1`
	return scanRental(r.db.QueryRowContext(ctx, query, id))
}

// GetByBookingCode is the public lookup path; codes are stored uppercase
// and normalized here.
func (r *rentalRepository) GetByBookingCode(ctx context.Context, code string) (*domain.Rental, error) {
	query := `SELECT ` + rentalColumns + ` FROM rentals WHERE booking_code = $1 AND deleted_on IS NULL`
	return scanRental(r.db.QueryRowContext(ctx, query, strings.ToUpper(strings.TrimSpace(code))))
}

// Update never touches the booking code: it is immutable after creation.
func (r *rentalRepository) Update(ctx context.Context, rt *domain.Rental) error {
	query := `UPDATE rentals SET bike_id=$1, start_team_id=$2, end_team_id=$3, ship_departure_id=$4,
	            status=$5, start_date=$6, end_date=$7, updated_on=$8 WHERE id=$9`
	rt.UpdatedOn = time.Now().Format(time.RFC3339)
	_, err := r.db.ExecContext(ctx, query,
		rt.BikeID, rt.StartTeamID, rt.EndTeamID, rt.ShipDepartureID,
		string(rt.Status), rt.StartDate, rt.EndDate, rt.UpdatedOn, rt.ID)
	return err
}

func (r *rentalRepository) SoftDelete(ctx context.Context, id int32) error {
	query := `UPDATE rentals SET deleted_on=$1 WHERE id=$2 AND deleted_on IS NULL`
	_, err := r.db.ExecContext(ctx, query, time.Now().Format(time.RFC3339), id)
	return err
}

func (r *rentalRepository) ListByTeams(ctx context.Context, teamIDs []int32, status string, page, pageSize int32) ([]domain.Rental, int32, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = 20
	}

	countQuery := `SELECT COUNT(*) FROM rentals
	               WHERE (start_team_id = ANY($1) OR end_team_id = ANY($1)) AND deleted_on IS NULL
	                 AND ($2 = '' OR status = $2)`
	var total int32
	if err := r.db.QueryRowContext(ctx, countQuery, pq.Array(teamIDs), status).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := `SELECT ` + rentalColumns + ` FROM rentals
	          WHERE (start_team_id = ANY($1) OR end_team_id = ANY($1)) AND deleted_on IS NULL
	            AND ($2 = '' OR status = $2)
	          ORDER BY created_on DESC LIMIT $3 OFFSET $4`
	rows, err := r.db.QueryContext(ctx, query, pq.Array(teamIDs), status, pageSize, (page-1)*pageSize)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var rentals []domain.Rental
	for rows.Next() {
		rt, err := scanRentalRows(rows)
		if err != nil {
			return nil, 0, err
		}
		rentals = append(rentals, *rt)
	}
	return rentals, total, rows.Err()
}

func (r *rentalRepository) HasActiveRentalForBike(ctx context.Context, bikeID int32) (bool, error) {
	query := `SELECT EXISTS (SELECT 1 FROM rentals WHERE bike_id = $1 AND status = $2 AND deleted_on IS NULL)`
	var ok bool
	err := r.db.QueryRowContext(ctx, query, bikeID, string(domain.RentalStatusActive)).Scan(&ok)
	return ok, err
}

type rentalScanner interface {
	Scan(dest ...any) error
}

func scanRental(row *sql.Row) (*domain.Rental, error) {
	return scanRentalRows(row)
}

func scanRentalRows(s rentalScanner) (*domain.Rental, error) {
	rt := &domain.Rental{}
	var endTeam, departure sql.NullInt32
	var status string
	var deletedOn sql.NullString
	err := s.Scan(&rt.ID, &rt.PaxProfileID, &rt.BikeID, &rt.StartTeamID, &endTeam, &departure,
		&rt.StaffID, &rt.BookingCode, &status, &rt.StartDate, &rt.EndDate, &rt.CreatedOn, &rt.UpdatedOn, &deletedOn)
	if err != nil {
		return nil, err
	}
	rt.Status = domain.RentalStatus(status)
	if endTeam.Valid {
		v := endTeam.Int32
		rt.EndTeamID = &v
	}
	if departure.Valid {
		v := departure.Int32
		rt.ShipDepartureID = &v
	}
	if deletedOn.Valid {
		v := deletedOn.String
		rt.DeletedOn = &v
	}
	return rt, nil
}
