package postgres

import (
	"context"
	"database/sql"
	"time"

	"bikefleet-backend/internal/domain"
	"bikefleet-backend/internal/repository"
)

type userRepository struct {
	db *sql.DB
}

func NewUserRepository(db *sql.DB) repository.UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) Create(ctx context.Context, u *domain.User) error {
	query := `INSERT INTO users (email, password_hash, name, current_team_id, external_id, created_on, updated_on)
	          VALUES ($1, $2, $3, $4, $5, $6, $7) RETURNING id`
	now := time.Now().Format(time.RFC3339)
	u.CreatedOn = now
	u.UpdatedOn = now
	if err := r.db.QueryRowContext(ctx, query, u.Email, u.PasswordHash, u.Name, u.CurrentTeamID, u.ExternalID, u.CreatedOn, u.UpdatedOn).Scan(&u.ID); err != nil {
		return err
	}
	for _, role := range u.Roles {
		if err := r.AddRole(ctx, u.ID, role); err != nil {
			return err
		}
	}
	return nil
}

func (r *userRepository) GetByID(ctx context.Context, id int32) (*domain.User, error) {
	query := `SELECT id, email, password_hash, name, current_team_id, external_id, created_on, updated_on, deleted_on
	          FROM users WHERE id = $1`
	return r.scanUser(ctx, r.db.QueryRowContext(ctx, query, id))
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	query := `SELECT id, email, password_hash, name, current_team_id, external_id, created_on, updated_on, deleted_on
	          FROM users WHERE LOWER(email) = LOWER($1) AND deleted_on IS NULL`
	return r.scanUser(ctx, r.db.QueryRowContext(ctx, query, email))
}

func (r *userRepository) GetByExternalID(ctx context.Context, externalID string) (*domain.User, error) {
	query := `SELECT id, email, password_hash, name, current_team_id, external_id, created_on, updated_on, deleted_on
	          FROM users WHERE external_id = $1 AND deleted_on IS NULL`
	return r.scanUser(ctx, r.db.QueryRowContext(ctx, query, externalID))
}

func (r *userRepository) Update(ctx context.Context, u *domain.User) error {
	query := `UPDATE users SET email=$1, name=$2, current_team_id=$3, updated_on=$4 WHERE id=$5`
	u.UpdatedOn = time.Now().Format(time.RFC3339)
	_, err := r.db.ExecContext(ctx, query, u.Email, u.Name, u.CurrentTeamID, u.UpdatedOn, u.ID)
	return err
}

func (r *userRepository) SoftDelete(ctx context.Context, id int32) error {
	query := `UPDATE users SET deleted_on=$1 WHERE id=$2 AND deleted_on IS NULL`
	_, err := r.db.ExecContext(ctx, query, time.Now().Format(time.RFC3339), id)
	return err
}

func (r *userRepository) Restore(ctx context.Context, id int32) error {
	query := `UPDATE users SET deleted_on=NULL WHERE id=$1`
	_, err := r.db.ExecContext(ctx, query, id)
	return err
}

func (r *userRepository) AddRole(ctx context.Context, userID int32, role domain.Role) error {
	query := `INSERT INTO user_roles (user_id, role) VALUES ($1, $2) ON CONFLICT (user_id, role) DO NOTHING`
	_, err := r.db.ExecContext(ctx, query, userID, string(role))
	return err
}

func (r *userRepository) RemoveRole(ctx context.Context, userID int32, role domain.Role) error {
	query := `DELETE FROM user_roles WHERE user_id=$1 AND role=$2`
	_, err := r.db.ExecContext(ctx, query, userID, string(role))
	return err
}

func (r *userRepository) SetCurrentTeam(ctx context.Context, userID, teamID int32) error {
	query := `UPDATE users SET current_team_id=$1, updated_on=$2 WHERE id=$3`
	_, err := r.db.ExecContext(ctx, query, teamID, time.Now().Format(time.RFC3339), userID)
	return err
}

// SetExternalID attaches the SSO subject only once; repeated callbacks
// with the same subject are no-ops.
func (r *userRepository) SetExternalID(ctx context.Context, userID int32, externalID string) error {
	query := `UPDATE users SET external_id=$1, updated_on=$2 WHERE id=$3 AND (external_id IS NULL OR external_id=$1)`
	_, err := r.db.ExecContext(ctx, query, externalID, time.Now().Format(time.RFC3339), userID)
	return err
}

func (r *userRepository) scanUser(ctx context.Context, row *sql.Row) (*domain.User, error) {
	u := &domain.User{}
	var currentTeam sql.NullInt32
	var externalID, deletedOn sql.NullString
	err := row.Scan(&u.ID, &u.Email, &u.PasswordHash, &u.Name, &currentTeam, &externalID, &u.CreatedOn, &u.UpdatedOn, &deletedOn)
	if err != nil {
		return nil, err
	}
	if currentTeam.Valid {
		v := currentTeam.Int32
		u.CurrentTeamID = &v
	}
	if externalID.Valid {
		v := externalID.String
		u.ExternalID = &v
	}
	if deletedOn.Valid {
		v := deletedOn.String
		u.DeletedOn = &v
	}
	roles, err := r.loadRoles(ctx, u.ID)
	if err != nil {
		return nil, err
	}
	u.Roles = roles
	return u, nil
}

func (r *userRepository) loadRoles(ctx context.Context, userID int32) ([]domain.Role, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT role FROM user_roles WHERE user_id = $1 ORDER BY role`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var roles []domain.Role
	for rows.Next() {
		var s string
		if err := rows.Scan(&s); err != nil {
			return nil, err
		}
		role, err := domain.ParseRole(s)
		if err != nil {
			return nil, err
		}
		roles = append(roles, role)
	}
	return roles, rows.Err()
}
