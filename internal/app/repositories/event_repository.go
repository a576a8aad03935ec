package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/TrashMob-eco/adopt-engine/internal/app/models"
)

// EventRepository reads completed cleanup events owned by the surrounding
// platform's event subsystem.
type EventRepository struct {
	db *pgxpool.Pool
}

// NewEventRepository creates a new event repository
func NewEventRepository(db *pgxpool.Pool) *EventRepository {
	return &EventRepository{
		db: db,
	}
}

// GetByID retrieves an event. Returns nil when the event does not exist.
func (r *EventRepository) GetByID(ctx context.Context, id int64) (*models.CleanupEvent, error) {
	var event models.CleanupEvent
	err := r.db.QueryRow(ctx,
		`SELECT id, community_id, name, event_date FROM events WHERE id = $1`,
		id).Scan(&event.ID, &event.CommunityID, &event.Name, &event.EventDate)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("error retrieving event: %w", err)
	}

	return &event, nil
}
