package models

import "time"

// CleanupEvent is a completed cleanup event owned by the surrounding
// platform's event subsystem. The ledger references it by id and uses its
// date for compliance arithmetic.
type CleanupEvent struct {
	ID          int64     `json:"id" db:"id"`
	CommunityID int64     `json:"communityId" db:"community_id"`
	Name        string    `json:"name" db:"name"`
	EventDate   time.Time `json:"eventDate" db:"event_date"`
}
