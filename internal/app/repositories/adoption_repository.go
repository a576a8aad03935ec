package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/TrashMob-eco/adopt-engine/internal/app/models"
	"github.com/TrashMob-eco/adopt-engine/internal/db"
	"github.com/TrashMob-eco/adopt-engine/internal/pkg/apperrors"
	"github.com/TrashMob-eco/adopt-engine/internal/pkg/dberrors"
)

// uqAdoptionsTeamAreaOpen is the partial unique index backing the "one
// pending-or-approved adoption per (team, area)" invariant.
const uqAdoptionsTeamAreaOpen = "uq_adoptions_team_area_open"

// adoptionSelect joins the team name and the owning area onto every adoption
// row; the area's cadence is needed wherever compliance is derived.
const adoptionSelect = `
	SELECT ad.id, ad.team_id, ad.area_id, ad.status, ad.application_date,
	       ad.application_notes, ad.reviewed_by_user_id, ad.reviewed_date,
	       ad.rejection_reason, ad.adoption_start_date, ad.adoption_end_date,
	       ad.event_count, ad.last_event_date, ad.is_compliant,
	       ad.created_at, ad.updated_at, t.name,
	       a.id, a.community_id, a.name, a.area_type, a.status, a.allow_co_adoption,
	       a.cleanup_frequency_days, a.min_events_per_year, a.safety_requirements,
	       a.is_active, a.version, a.created_at, a.updated_at
	FROM adoptions ad
	JOIN teams t ON t.id = ad.team_id
	JOIN adoptable_areas a ON a.id = ad.area_id`

// AdoptionRepository handles database operations for adoptions
type AdoptionRepository struct {
	db *pgxpool.Pool
}

// NewAdoptionRepository creates a new adoption repository
func NewAdoptionRepository(db *pgxpool.Pool) *AdoptionRepository {
	return &AdoptionRepository{
		db: db,
	}
}

func scanAdoption(row pgx.Row) (*models.Adoption, error) {
	var ad models.Adoption
	var area models.AdoptableArea
	err := row.Scan(
		&ad.ID,
		&ad.TeamID,
		&ad.AreaID,
		&ad.Status,
		&ad.ApplicationDate,
		&ad.ApplicationNotes,
		&ad.ReviewedByUserID,
		&ad.ReviewedDate,
		&ad.RejectionReason,
		&ad.AdoptionStartDate,
		&ad.AdoptionEndDate,
		&ad.EventCount,
		&ad.LastEventDate,
		&ad.IsCompliant,
		&ad.CreatedAt,
		&ad.UpdatedAt,
		&ad.TeamName,
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
	ad.Area = &area
	return &ad, nil
}

func (r *AdoptionRepository) queryAdoptions(ctx context.Context, query string, args ...interface{}) ([]models.Adoption, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("error executing query: %w", err)
	}
	defer rows.Close()

	adoptions := []models.Adoption{}
	for rows.Next() {
		ad, err := scanAdoption(rows)
		if err != nil {
			return nil, err
		}
		adoptions = append(adoptions, *ad)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return adoptions, nil
}

// Create inserts a new pending application. The partial unique index backs
// the duplicate-application invariant even when two submissions race past
// the service-level existence check.
func (r *AdoptionRepository) Create(ctx context.Context, adoption *models.Adoption) error {
	query := `
		INSERT INTO adoptions (team_id, area_id, status, application_date, application_notes,
			event_count, is_compliant)
		VALUES ($1, $2, $3, $4, $5, 0, TRUE)
		RETURNING id, created_at, updated_at
	`

	err := r.db.QueryRow(ctx, query,
		adoption.TeamID,
		adoption.AreaID,
		adoption.Status,
		adoption.ApplicationDate,
		adoption.ApplicationNotes,
	).Scan(&adoption.ID, &adoption.CreatedAt, &adoption.UpdatedAt)
	if err != nil {
		if dberrors.IsDuplicateConstraintError(err, uqAdoptionsTeamAreaOpen) {
			return apperrors.NewCustomError(apperrors.ErrDuplicateApplication,
				"This team already has a pending or approved adoption for this area.")
		}
		return fmt.Errorf("error creating adoption: %w", err)
	}

	return nil
}

// GetByID retrieves an adoption with its team name and area. Returns nil
// when the adoption does not exist.
func (r *AdoptionRepository) GetByID(ctx context.Context, id int64) (*models.Adoption, error) {
	ad, err := scanAdoption(r.db.QueryRow(ctx, adoptionSelect+` WHERE ad.id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("error retrieving adoption: %w", err)
	}

	return ad, nil
}

// HasPendingOrApproved reports whether the (team, area) pair already carries
// an open application or contract.
func (r *AdoptionRepository) HasPendingOrApproved(ctx context.Context, teamID, areaID int64) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx, `
		SELECT EXISTS(SELECT 1 FROM adoptions
			WHERE team_id = $1 AND area_id = $2 AND status IN ($3, $4))`,
		teamID, areaID, models.AdoptionStatusPending, models.AdoptionStatusApproved).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("error checking existing adoption: %w", err)
	}

	return exists, nil
}

// Approve transitions a pending adoption to approved and, for an exclusive
// area, flips the area to adopted. The whole read-modify-write runs in one
// transaction: both rows are locked, and the area update is additionally
// guarded by its optimistic version token so a concurrent approval loses
// with ErrConflict rather than slipping a second contract onto the area.
func (r *AdoptionRepository) Approve(ctx context.Context, adoptionID, reviewerID int64, now time.Time) (*models.Adoption, error) {
	err := db.WithTransaction(ctx, r.db, func(ctx context.Context, tx pgx.Tx) error {
		var areaID int64
		var status models.AdoptionStatus
		err := tx.QueryRow(ctx,
			`SELECT area_id, status FROM adoptions WHERE id = $1 FOR UPDATE`,
			adoptionID).Scan(&areaID, &status)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return apperrors.NewCustomError(apperrors.ErrAdoptionNotFound, "Adoption application not found.")
			}
			return fmt.Errorf("error locking adoption: %w", err)
		}

		if status != models.AdoptionStatusPending {
			return apperrors.NewInvalidStateError("Only pending applications can be approved.")
		}

		var areaStatus models.AreaStatus
		var allowCoAdoption bool
		var version int
		err = tx.QueryRow(ctx,
			`SELECT status, allow_co_adoption, version FROM adoptable_areas WHERE id = $1 FOR UPDATE`,
			areaID).Scan(&areaStatus, &allowCoAdoption, &version)
		if err != nil {
			return fmt.Errorf("error locking area: %w", err)
		}

		if !allowCoAdoption && areaStatus == models.AreaStatusAdopted {
			return apperrors.NewConflictError("Area was adopted by another team while this application was under review.")
		}

		_, err = tx.Exec(ctx, `
			UPDATE adoptions
			SET status = $1, reviewed_by_user_id = $2, reviewed_date = $3,
			    adoption_start_date = $3, event_count = 0, last_event_date = NULL,
			    is_compliant = TRUE, updated_at = NOW()
			WHERE id = $4`,
			models.AdoptionStatusApproved, reviewerID, now, adoptionID)
		if err != nil {
			return fmt.Errorf("error approving adoption: %w", err)
		}

		if !allowCoAdoption {
			tag, err := tx.Exec(ctx, `
				UPDATE adoptable_areas
				SET status = $1, version = version + 1, updated_at = NOW()
				WHERE id = $2 AND version = $3`,
				models.AreaStatusAdopted, areaID, version)
			if err != nil {
				return fmt.Errorf("error marking area adopted: %w", err)
			}
			if tag.RowsAffected() == 0 {
				return apperrors.NewConflictError("Area changed while this application was being approved.")
			}
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return r.GetByID(ctx, adoptionID)
}

// Reject transitions a pending adoption to rejected. The status guard in the
// WHERE clause keeps the transition one-way.
func (r *AdoptionRepository) Reject(ctx context.Context, adoptionID int64, reason string, reviewerID int64, now time.Time) (*models.Adoption, error) {
	tag, err := r.db.Exec(ctx, `
		UPDATE adoptions
		SET status = $1, rejection_reason = $2, reviewed_by_user_id = $3,
		    reviewed_date = $4, updated_at = NOW()
		WHERE id = $5 AND status = $6`,
		models.AdoptionStatusRejected, reason, reviewerID, now,
		adoptionID, models.AdoptionStatusPending)
	if err != nil {
		return nil, fmt.Errorf("error rejecting adoption: %w", err)
	}

	if tag.RowsAffected() == 0 {
		existing, err := r.GetByID(ctx, adoptionID)
		if err != nil {
			return nil, err
		}
		if existing == nil {
			return nil, apperrors.NewCustomError(apperrors.ErrAdoptionNotFound, "Adoption application not found.")
		}
		return nil, apperrors.NewInvalidStateError("Only pending applications can be rejected.")
	}

	return r.GetByID(ctx, adoptionID)
}

// ListByTeam retrieves all adoptions for a team, newest application first.
func (r *AdoptionRepository) ListByTeam(ctx context.Context, teamID int64) ([]models.Adoption, error) {
	return r.queryAdoptions(ctx, adoptionSelect+` WHERE ad.team_id = $1 ORDER BY ad.application_date DESC`, teamID)
}

// ListByArea retrieves all adoptions referencing an area.
func (r *AdoptionRepository) ListByArea(ctx context.Context, areaID int64) ([]models.Adoption, error) {
	return r.queryAdoptions(ctx, adoptionSelect+` WHERE ad.area_id = $1 ORDER BY ad.application_date DESC`, areaID)
}

// ListByCommunity retrieves a community's adoptions filtered by status.
// When activeOnly is set, approved adoptions whose contract has ended are
// excluded.
func (r *AdoptionRepository) ListByCommunity(ctx context.Context, communityID int64, status models.AdoptionStatus, activeOnly bool) ([]models.Adoption, error) {
	builder := squirrel.Select("ad.id").
		From("adoptions ad").
		Join("adoptable_areas a ON a.id = ad.area_id").
		Where("a.community_id = ?", communityID).
		Where("ad.status = ?", status).
		PlaceholderFormat(squirrel.Dollar)

	if activeOnly {
		builder = builder.Where("(ad.adoption_end_date IS NULL OR ad.adoption_end_date >= NOW())")
	}

	sql, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("error building SQL: %w", err)
	}

	return r.queryAdoptions(ctx,
		adoptionSelect+` WHERE ad.id IN (`+sql+`) ORDER BY ad.application_date DESC`, args...)
}

// ListActiveForTeam retrieves a team's approved adoptions whose contract is
// still running at the given instant.
func (r *AdoptionRepository) ListActiveForTeam(ctx context.Context, teamID int64, now time.Time) ([]models.Adoption, error) {
	return r.queryAdoptions(ctx, adoptionSelect+`
		WHERE ad.team_id = $1 AND ad.status = $2
		  AND (ad.adoption_end_date IS NULL OR ad.adoption_end_date >= $3)
		ORDER BY a.name`,
		teamID, models.AdoptionStatusApproved, now)
}

