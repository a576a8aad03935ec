package models

import "time"

// AdoptionEventLink is a ledger entry crediting one completed cleanup event
// toward one adoption's upkeep obligation. A given (adoption, event) pair is
// linked at most once.
type AdoptionEventLink struct {
	ID              int64     `json:"id" db:"id"`
	AdoptionID      int64     `json:"adoptionId" db:"adoption_id"`
	EventID         int64     `json:"eventId" db:"event_id"`
	Notes           string    `json:"notes,omitempty" db:"notes"`
	CreatedByUserID int64     `json:"createdByUserId" db:"created_by_user_id"`
	CreatedAt       time.Time `json:"createdAt" db:"created_at"`
	UpdatedByUserID *int64    `json:"updatedByUserId,omitempty" db:"updated_by_user_id"`
	UpdatedAt       time.Time `json:"updatedAt" db:"updated_at"`

	// Related entities
	Event *CleanupEvent `json:"event,omitempty"`
}
