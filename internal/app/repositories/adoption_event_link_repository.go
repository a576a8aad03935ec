package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/TrashMob-eco/adopt-engine/internal/app/models"
	"github.com/TrashMob-eco/adopt-engine/internal/db"
	"github.com/TrashMob-eco/adopt-engine/internal/pkg/apperrors"
	"github.com/TrashMob-eco/adopt-engine/internal/pkg/dberrors"
)

// uqAdoptionEventLinksPair backs the "a given (adoption, event) pair is
// linked at most once" invariant.
const uqAdoptionEventLinksPair = "uq_adoption_event_links_pair"

// AdoptionEventLinkRepository handles database operations for the ledger of
// events credited toward adoptions.
type AdoptionEventLinkRepository struct {
	db *pgxpool.Pool
}

// NewAdoptionEventLinkRepository creates a new link repository
func NewAdoptionEventLinkRepository(db *pgxpool.Pool) *AdoptionEventLinkRepository {
	return &AdoptionEventLinkRepository{
		db: db,
	}
}

const linkSelect = `
	SELECT l.id, l.adoption_id, l.event_id, l.notes, l.created_by_user_id,
	       l.created_at, l.updated_by_user_id, l.updated_at,
	       e.id, e.community_id, e.name, e.event_date
	FROM adoption_event_links l
	JOIN events e ON e.id = l.event_id`

func scanLink(row pgx.Row) (*models.AdoptionEventLink, error) {
	var link models.AdoptionEventLink
	var event models.CleanupEvent
	err := row.Scan(
		&link.ID,
		&link.AdoptionID,
		&link.EventID,
		&link.Notes,
		&link.CreatedByUserID,
		&link.CreatedAt,
		&link.UpdatedByUserID,
		&link.UpdatedAt,
		&event.ID,
		&event.CommunityID,
		&event.Name,
		&event.EventDate,
	)
	if err != nil {
		return nil, err
	}
	link.Event = &event
	return &link, nil
}

// CreateWithSnapshot inserts a ledger entry and refreshes the owning
// adoption's compliance snapshot in one transaction, so readers never see a
// committed link alongside a stale snapshot. The evaluate callback turns the
// post-insert aggregate into the compliance bit while the transaction is
// still open. The unique pair index catches racing duplicate links past the
// service-level check.
func (r *AdoptionEventLinkRepository) CreateWithSnapshot(
	ctx context.Context,
	link *models.AdoptionEventLink,
	evaluate func(eventCount int, lastEventDate *time.Time) bool,
) (*models.ComplianceSnapshot, error) {
	var snap models.ComplianceSnapshot

	err := db.WithTransaction(ctx, r.db, func(ctx context.Context, tx pgx.Tx) error {
		query := `
			INSERT INTO adoption_event_links (adoption_id, event_id, notes, created_by_user_id)
			VALUES ($1, $2, $3, $4)
			RETURNING id, created_at, updated_at
		`

		err := tx.QueryRow(ctx, query,
			link.AdoptionID,
			link.EventID,
			link.Notes,
			link.CreatedByUserID,
		).Scan(&link.ID, &link.CreatedAt, &link.UpdatedAt)
		if err != nil {
			if dberrors.IsDuplicateConstraintError(err, uqAdoptionEventLinksPair) {
				return apperrors.NewCustomError(apperrors.ErrDuplicateLink,
					"This event is already linked to this adoption.")
			}
			return fmt.Errorf("error creating adoption event link: %w", err)
		}

		snap.EventCount, snap.LastEventDate, err = r.aggregate(ctx, tx, link.AdoptionID)
		if err != nil {
			return err
		}
		snap.IsCompliant = evaluate(snap.EventCount, snap.LastEventDate)

		return r.writeSnapshot(ctx, tx, link.AdoptionID, snap)
	})
	if err != nil {
		return nil, err
	}

	return &snap, nil
}

// DeleteWithSnapshot removes a ledger entry and refreshes the owning
// adoption's compliance snapshot in one transaction. Returns false when no
// entry existed, in which case nothing is written.
func (r *AdoptionEventLinkRepository) DeleteWithSnapshot(
	ctx context.Context,
	linkID, adoptionID int64,
	evaluate func(eventCount int, lastEventDate *time.Time) bool,
) (bool, *models.ComplianceSnapshot, error) {
	var deleted bool
	var snap models.ComplianceSnapshot

	err := db.WithTransaction(ctx, r.db, func(ctx context.Context, tx pgx.Tx) error {
		tag, err := tx.Exec(ctx, `DELETE FROM adoption_event_links WHERE id = $1`, linkID)
		if err != nil {
			return fmt.Errorf("error deleting adoption event link: %w", err)
		}
		deleted = tag.RowsAffected() > 0
		if !deleted {
			return nil
		}

		snap.EventCount, snap.LastEventDate, err = r.aggregate(ctx, tx, adoptionID)
		if err != nil {
			return err
		}
		snap.IsCompliant = evaluate(snap.EventCount, snap.LastEventDate)

		return r.writeSnapshot(ctx, tx, adoptionID, snap)
	})
	if err != nil {
		return false, nil, err
	}
	if !deleted {
		return false, nil, nil
	}

	return true, &snap, nil
}

func (r *AdoptionEventLinkRepository) writeSnapshot(ctx context.Context, tx pgx.Tx, adoptionID int64, snap models.ComplianceSnapshot) error {
	tag, err := tx.Exec(ctx, `
		UPDATE adoptions
		SET event_count = $1, last_event_date = $2, is_compliant = $3, updated_at = NOW()
		WHERE id = $4`,
		snap.EventCount, snap.LastEventDate, snap.IsCompliant, adoptionID)
	if err != nil {
		return fmt.Errorf("error updating compliance snapshot: %w", err)
	}

	if tag.RowsAffected() == 0 {
		return apperrors.NewCustomError(apperrors.ErrAdoptionNotFound, "Adoption application not found.")
	}

	return nil
}

// GetByID retrieves a ledger entry. Returns nil when it does not exist.
func (r *AdoptionEventLinkRepository) GetByID(ctx context.Context, id int64) (*models.AdoptionEventLink, error) {
	link, err := scanLink(r.db.QueryRow(ctx, linkSelect+` WHERE l.id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("error retrieving adoption event link: %w", err)
	}

	return link, nil
}

// Delete removes a ledger entry. Returns false when no entry existed.
func (r *AdoptionEventLinkRepository) Delete(ctx context.Context, id int64) (bool, error) {
	tag, err := r.db.Exec(ctx, `DELETE FROM adoption_event_links WHERE id = $1`, id)
	if err != nil {
		return false, fmt.Errorf("error deleting adoption event link: %w", err)
	}

	return tag.RowsAffected() > 0, nil
}

// ListByAdoption retrieves all ledger entries for one adoption, most recent
// event first.
func (r *AdoptionEventLinkRepository) ListByAdoption(ctx context.Context, adoptionID int64) ([]models.AdoptionEventLink, error) {
	return r.queryLinks(ctx, linkSelect+` WHERE l.adoption_id = $1 ORDER BY e.event_date DESC`, adoptionID)
}

// ListByEvent retrieves all ledger entries crediting one event.
func (r *AdoptionEventLinkRepository) ListByEvent(ctx context.Context, eventID int64) ([]models.AdoptionEventLink, error) {
	return r.queryLinks(ctx, linkSelect+` WHERE l.event_id = $1 ORDER BY l.created_at`, eventID)
}

// IsLinked reports whether the (adoption, event) pair is already in the ledger.
func (r *AdoptionEventLinkRepository) IsLinked(ctx context.Context, adoptionID, eventID int64) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM adoption_event_links WHERE adoption_id = $1 AND event_id = $2)`,
		adoptionID, eventID).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("error checking adoption event link: %w", err)
	}

	return exists, nil
}

// aggregate returns the ledger's view of one adoption inside the given
// transaction: how many events are credited and the date of the most recent
// one.
func (r *AdoptionEventLinkRepository) aggregate(ctx context.Context, tx pgx.Tx, adoptionID int64) (int, *time.Time, error) {
	var count int
	var lastEventDate *time.Time
	err := tx.QueryRow(ctx, `
		SELECT COUNT(*), MAX(e.event_date)
		FROM adoption_event_links l
		JOIN events e ON e.id = l.event_id
		WHERE l.adoption_id = $1`,
		adoptionID).Scan(&count, &lastEventDate)
	if err != nil {
		return 0, nil, fmt.Errorf("error aggregating adoption event links: %w", err)
	}

	return count, lastEventDate, nil
}

func (r *AdoptionEventLinkRepository) queryLinks(ctx context.Context, query string, args ...interface{}) ([]models.AdoptionEventLink, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("error executing query: %w", err)
	}
	defer rows.Close()

	links := []models.AdoptionEventLink{}
	for rows.Next() {
		link, err := scanLink(rows)
		if err != nil {
			return nil, err
		}
		links = append(links, *link)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return links, nil
}
