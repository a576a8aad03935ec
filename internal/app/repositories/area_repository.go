package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/TrashMob-eco/adopt-engine/internal/app/models"
)

// areaColumns is the canonical select list for adoptable areas.
const areaColumns = `id, community_id, name, area_type, status, allow_co_adoption,
	cleanup_frequency_days, min_events_per_year, safety_requirements, is_active,
	version, created_at, updated_at`

// AreaRepository handles database operations for adoptable areas
type AreaRepository struct {
	db *pgxpool.Pool
}

// NewAreaRepository creates a new area repository
func NewAreaRepository(db *pgxpool.Pool) *AreaRepository {
	return &AreaRepository{
		db: db,
	}
}

func scanArea(row pgx.Row) (*models.AdoptableArea, error) {
	var area models.AdoptableArea
	err := row.Scan(
		&area.ID,
		&area.CommunityID,
		&area.Name,
		&area.AreaType,
		&area.Status,
		&area.AllowCoAdoption,
		&area.CleanupFrequencyDays,
		&area.MinEventsPerYear,
		&area.SafetyRequirements,
		&area.IsActive,
		&area.Version,
		&area.CreatedAt,
		&area.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &area, nil
}

// GetByID retrieves an area by ID. Returns nil when the area does not exist.
func (r *AreaRepository) GetByID(ctx context.Context, id int64) (*models.AdoptableArea, error) {
	query := fmt.Sprintf(`SELECT %s FROM adoptable_areas WHERE id = $1`, areaColumns)

	area, err := scanArea(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("error retrieving area: %w", err)
	}

	return area, nil
}

// ListByCommunity retrieves all active areas for a community, name-ordered.
// When availableOnly is set, areas that cannot currently accept a new
// application are filtered out.
func (r *AreaRepository) ListByCommunity(ctx context.Context, communityID int64, availableOnly bool) ([]models.AdoptableArea, error) {
	builder := squirrel.Select(
		"id", "community_id", "name", "area_type", "status", "allow_co_adoption",
		"cleanup_frequency_days", "min_events_per_year", "safety_requirements", "is_active",
		"version", "created_at", "updated_at",
	).
		From("adoptable_areas").
		Where("community_id = ?", communityID).
		Where("is_active = TRUE").
		OrderBy("name").
		PlaceholderFormat(squirrel.Dollar)

	if availableOnly {
		builder = builder.Where(squirrel.Or{
			squirrel.Eq{"status": models.AreaStatusAvailable},
			squirrel.Eq{"allow_co_adoption": true},
		})
	}

	sql, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("error building SQL: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("error executing query: %w", err)
	}
	defer rows.Close()

	areas := []models.AdoptableArea{}
	for rows.Next() {
		area, err := scanArea(rows)
		if err != nil {
			return nil, err
		}
		areas = append(areas, *area)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return areas, nil
}

// IsNameAvailable checks case-insensitive name uniqueness within a community,
// optionally excluding one area id (for edit-in-place).
func (r *AreaRepository) IsNameAvailable(ctx context.Context, communityID int64, name string, excludeAreaID *int64) (bool, error) {
	query := `
		SELECT EXISTS(
			SELECT 1 FROM adoptable_areas
			WHERE community_id = $1 AND LOWER(name) = LOWER($2)
	`
	args := []interface{}{communityID, name}

	if excludeAreaID != nil {
		query += " AND id != $3"
		args = append(args, *excludeAreaID)
	}
	query += ")"

	var exists bool
	if err := r.db.QueryRow(ctx, query, args...).Scan(&exists); err != nil {
		return false, fmt.Errorf("error checking area name: %w", err)
	}

	return !exists, nil
}

// CountActive counts the community's active areas.
func (r *AreaRepository) CountActive(ctx context.Context, communityID int64) (int, error) {
	var count int
	err := r.db.QueryRow(ctx,
		`SELECT COUNT(*) FROM adoptable_areas WHERE community_id = $1 AND is_active = TRUE`,
		communityID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("error counting areas: %w", err)
	}
	return count, nil
}

// CountAdopted counts the community's active areas that carry at least one
// live approved adoption or are already flagged adopted.
func (r *AreaRepository) CountAdopted(ctx context.Context, communityID int64) (int, error) {
	query := `
		SELECT COUNT(*)
		FROM adoptable_areas a
		WHERE a.community_id = $1
		  AND a.is_active = TRUE
		  AND (
			a.status = $2
			OR EXISTS (
				SELECT 1 FROM adoptions ad
				WHERE ad.area_id = a.id
				  AND ad.status = $3
				  AND (ad.adoption_end_date IS NULL OR ad.adoption_end_date >= NOW())
			)
		  )
	`

	var count int
	err := r.db.QueryRow(ctx, query, communityID,
		models.AreaStatusAdopted, models.AdoptionStatusApproved).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("error counting adopted areas: %w", err)
	}
	return count, nil
}
