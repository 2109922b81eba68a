package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"bikefleet-backend/internal/domain"
	"bikefleet-backend/internal/repository"
)

type teamRepository struct {
	db *sql.DB
}

func NewTeamRepository(db *sql.DB) repository.TeamRepository {
	return &teamRepository{db: db}
}

func (r *teamRepository) Create(ctx context.Context, t *domain.Team) error {
	query := `INSERT INTO teams (name, owner_id, personal, created_on, updated_on)
	          VALUES ($1, $2, $3, $4, $5) RETURNING id`
	now := time.Now().Format(time.RFC3339)
	t.CreatedOn = now
	t.UpdatedOn = now
	return r.db.QueryRowContext(ctx, query, t.Name, t.OwnerID, t.Personal, t.CreatedOn, t.UpdatedOn).Scan(&t.ID)
}

func (r *teamRepository) GetByID(ctx context.Context, id int32) (*domain.Team, error) {
	query := `SELECT id, name, owner_id, personal, created_on, updated_on, deleted_on FROM teams WHERE id = $1`
	return scanTeam(r.db.QueryRowContext(ctx, query, id))
}

// List returns operational teams only; personal bookkeeping teams are
// excluded from depot listings.
func (r *teamRepository) List(ctx context.Context) ([]domain.Team, error) {
	query := `SELECT id, name, owner_id, personal, created_on, updated_on, deleted_on
	          FROM teams WHERE personal = FALSE AND deleted_on IS NULL ORDER BY name`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var teams []domain.Team
	for rows.Next() {
		var t domain.Team
		var deletedOn sql.NullString
		if err := rows.Scan(&t.ID, &t.Name, &t.OwnerID, &t.Personal, &t.CreatedOn, &t.UpdatedOn, &deletedOn); err != nil {
			return nil, err
		}
		if deletedOn.Valid {
			v := deletedOn.String
			t.DeletedOn = &v
		}
		teams = append(teams, t)
	}
	return teams, rows.Err()
}

func (r *teamRepository) Update(ctx context.Context, t *domain.Team) error {
	query := `UPDATE teams SET name=$1, updated_on=$2 WHERE id=$3`
	t.UpdatedOn = time.Now().Format(time.RFC3339)
	_, err := r.db.ExecContext(ctx, query, t.Name, t.UpdatedOn, t.ID)
	return err
}

func (r *teamRepository) SoftDelete(ctx context.Context, id int32) error {
	query := `UPDATE teams SET deleted_on=$1 WHERE id=$2 AND deleted_on IS NULL`
	_, err := r.db.ExecContext(ctx, query, time.Now().Format(time.RFC3339), id)
	return err
}

func (r *teamRepository) Restore(ctx context.Context, id int32) error {
	query := `UPDATE teams SET deleted_on=NULL WHERE id=$1`
	_, err := r.db.ExecContext(ctx, query, id)
	return err
}

func (r *teamRepository) AddMember(ctx context.Context, m *domain.TeamMember) error {
	query := `INSERT INTO team_members (team_id, user_id, role, joined_on) VALUES ($1, $2, $3, $4)
	          ON CONFLICT (team_id, user_id) DO NOTHING`
	m.JoinedOn = time.Now().Format(time.RFC3339)
	_, err := r.db.ExecContext(ctx, query, m.TeamID, m.UserID, string(m.Role), m.JoinedOn)
	return err
}

func (r *teamRepository) GetMember(ctx context.Context, teamID, userID int32) (*domain.TeamMember, error) {
	m := &domain.TeamMember{}
	query := `SELECT team_id, user_id, role, joined_on FROM team_members WHERE team_id = $1 AND user_id = $2`
	var role string
	err := r.db.QueryRowContext(ctx, query, teamID, userID).Scan(&m.TeamID, &m.UserID, &role, &m.JoinedOn)
	if err != nil {
		return nil, err
	}
	m.Role, err = domain.ParseTeamRole(role)
	if err != nil {
		return nil, err
	}
	return m, nil
}

func (r *teamRepository) UpdateMember(ctx context.Context, m *domain.TeamMember) error {
	query := `UPDATE team_members SET role=$1 WHERE team_id=$2 AND user_id=$3`
	_, err := r.db.ExecContext(ctx, query, string(m.Role), m.TeamID, m.UserID)
	return err
}

func (r *teamRepository) RemoveMember(ctx context.Context, teamID, userID int32) error {
	query := `DELETE FROM team_members WHERE team_id=$1 AND user_id=$2`
	_, err := r.db.ExecContext(ctx, query, teamID, userID)
	return err
}

func (r *teamRepository) ListMembers(ctx context.Context, teamID int32) ([]domain.TeamMember, error) {
	query := `SELECT team_id, user_id, role, joined_on FROM team_members WHERE team_id = $1 ORDER BY joined_on`
	rows, err := r.db.QueryContext(ctx, query, teamID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var members []domain.TeamMember
	for rows.Next() {
		var m domain.TeamMember
		var role string
		if err := rows.Scan(&m.TeamID, &m.UserID, &role, &m.JoinedOn); err != nil {
			return nil, err
		}
		if m.Role, err = domain.ParseTeamRole(role); err != nil {
			return nil, err
		}
		members = append(members, m)
	}
	return members, rows.Err()
}

func (r *teamRepository) IsOwner(ctx context.Context, userID, teamID int32) (bool, error) {
	query := `SELECT EXISTS (SELECT 1 FROM teams WHERE id = $1 AND owner_id = $2 AND deleted_on IS NULL)`
	var ok bool
	err := r.db.QueryRowContext(ctx, query, teamID, userID).Scan(&ok)
	return ok, err
}

func (r *teamRepository) IsMember(ctx context.Context, userID, teamID int32) (bool, error) {
	query := `SELECT EXISTS (SELECT 1 FROM team_members WHERE team_id = $1 AND user_id = $2)`
	var ok bool
	err := r.db.QueryRowContext(ctx, query, teamID, userID).Scan(&ok)
	return ok, err
}

func (r *teamRepository) OwnedOrMemberTeamIDs(ctx context.Context, userID int32) ([]int32, error) {
	query := `SELECT id FROM teams WHERE owner_id = $1 AND deleted_on IS NULL
	          UNION
	          SELECT tm.team_id FROM team_members tm
	          JOIN teams t ON t.id = tm.team_id AND t.deleted_on IS NULL
	          WHERE tm.user_id = $1`
	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ids []int32
	for rows.Next() {
		var id int32
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

func (r *teamRepository) BelongsToOperationalTeam(ctx context.Context, userID int32) (bool, error) {
	query := `SELECT EXISTS (
	            SELECT 1 FROM teams WHERE owner_id = $1 AND personal = FALSE AND deleted_on IS NULL
	            UNION
	            SELECT 1 FROM team_members tm
	            JOIN teams t ON t.id = tm.team_id
	            WHERE tm.user_id = $1 AND t.personal = FALSE AND t.deleted_on IS NULL)`
	var ok bool
	err := r.db.QueryRowContext(ctx, query, userID).Scan(&ok)
	return ok, err
}

func (r *teamRepository) GetPersonalTeam(ctx context.Context, userID int32) (*domain.Team, error) {
	query := `SELECT id, name, owner_id, personal, created_on, updated_on, deleted_on
	          FROM teams WHERE owner_id = $1 AND personal = TRUE AND deleted_on IS NULL`
	return scanTeam(r.db.QueryRowContext(ctx, query, userID))
}

// EnsurePersonalTeam resolves or creates the user's personal team inside
// one transaction. The row lock on the user closes the window where two
// concurrent SSO callbacks would each create a team; the re-read after
// the lock sees the winner's row. A partial unique index on
// (owner_id) WHERE personal backs this up at the schema level.
func (r *teamRepository) EnsurePersonalTeam(ctx context.Context, userID int32, name string) (*domain.Team, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `SELECT id FROM users WHERE id = $1 FOR UPDATE`, userID); err != nil {
		return nil, err
	}

	query := `SELECT id, name, owner_id, personal, created_on, updated_on, deleted_on
	          FROM teams WHERE owner_id = $1 AND personal = TRUE AND deleted_on IS NULL`
	team, err := scanTeam(tx.QueryRowContext(ctx, query, userID))
	if err == nil {
		return team, tx.Commit()
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return nil, err
	}

	now := time.Now().Format(time.RFC3339)
	team = &domain.Team{Name: name, OwnerID: userID, Personal: true, CreatedOn: now, UpdatedOn: now}
	insert := `INSERT INTO teams (name, owner_id, personal, created_on, updated_on)
	           VALUES ($1, $2, TRUE, $3, $4) RETURNING id`
	if err := tx.QueryRowContext(ctx, insert, team.Name, team.OwnerID, team.CreatedOn, team.UpdatedOn).Scan(&team.ID); err != nil {
		return nil, err
	}
	return team, tx.Commit()
}

func scanTeam(row *sql.Row) (*domain.Team, error) {
	t := &domain.Team{}
	var deletedOn sql.NullString
	err := row.Scan(&t.ID, &t.Name, &t.OwnerID, &t.Personal, &t.CreatedOn, &t.UpdatedOn, &deletedOn)
	if err != nil {
		return nil, err
	}
	if deletedOn.Valid {
		v := deletedOn.String
		t.DeletedOn = &v
	}
	return t, nil
}
