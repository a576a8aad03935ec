package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/TrashMob-eco/adopt-engine/internal/app/models"
)

// TeamRepository reads volunteer teams owned by the surrounding platform.
type TeamRepository struct {
	db *pgxpool.Pool
}

// NewTeamRepository creates a new team repository
func NewTeamRepository(db *pgxpool.Pool) *TeamRepository {
	return &TeamRepository{
		db: db,
	}
}

// GetByID retrieves a team. Returns nil when the team does not exist.
func (r *TeamRepository) GetByID(ctx context.Context, id int64) (*models.Team, error) {
	var team models.Team
	err := r.db.QueryRow(ctx,
		`SELECT id, community_id, name, is_active, created_at FROM teams WHERE id = $1`,
		id).Scan(&team.ID, &team.CommunityID, &team.Name, &team.IsActive, &team.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("error retrieving team: %w", err)
	}

	return &team, nil
}

// GetLeads retrieves the team's lead members, for notification addressing.
func (r *TeamRepository) GetLeads(ctx context.Context, teamID int64) ([]models.User, error) {
	rows, err := r.db.Query(ctx, `
		SELECT u.id, u.email, u.first_name, u.last_name
		FROM users u
		JOIN team_members tm ON tm.user_id = u.id
		WHERE tm.team_id = $1 AND tm.is_lead = TRUE
		ORDER BY u.email`,
		teamID)
	if err != nil {
		return nil, fmt.Errorf("error retrieving team leads: %w", err)
	}
	defer rows.Close()

	users := []models.User{}
	for rows.Next() {
		var user models.User
		if err := rows.Scan(&user.ID, &user.Email, &user.FirstName, &user.LastName); err != nil {
			return nil, err
		}
		users = append(users, user)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return users, nil
}
