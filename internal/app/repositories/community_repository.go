package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/TrashMob-eco/adopt-engine/internal/app/models"
)

// CommunityRepository reads partner communities and their administrators.
type CommunityRepository struct {
	db *pgxpool.Pool
}

// NewCommunityRepository creates a new community repository
func NewCommunityRepository(db *pgxpool.Pool) *CommunityRepository {
	return &CommunityRepository{
		db: db,
	}
}

// GetByID retrieves a community. Returns nil when it does not exist.
func (r *CommunityRepository) GetByID(ctx context.Context, id int64) (*models.Community, error) {
	var community models.Community
	err := r.db.QueryRow(ctx,
		`SELECT id, name, is_active, created_at FROM communities WHERE id = $1`,
		id).Scan(&community.ID, &community.Name, &community.IsActive, &community.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("error retrieving community: %w", err)
	}

	return &community, nil
}

// GetAdmins retrieves the community's administrators, for notification
// addressing.
func (r *CommunityRepository) GetAdmins(ctx context.Context, communityID int64) ([]models.User, error) {
	rows, err := r.db.Query(ctx, `
		SELECT u.id, u.email, u.first_name, u.last_name
		FROM users u
		JOIN community_admins ca ON ca.user_id = u.id
		WHERE ca.community_id = $1
		ORDER BY u.email`,
		communityID)
	if err != nil {
		return nil, fmt.Errorf("error retrieving community admins: %w", err)
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
