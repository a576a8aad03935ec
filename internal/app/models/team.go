package models

import "time"

// Team is a volunteer team. Team membership management lives in the
// surrounding platform; the engine only reads teams to validate
// applications and to address notifications.
type Team struct {
	ID          int64     `json:"id" db:"id"`
	CommunityID int64     `json:"communityId" db:"community_id"`
	Name        string    `json:"name" db:"name"`
	IsActive    bool      `json:"isActive" db:"is_active"`
	CreatedAt   time.Time `json:"createdAt" db:"created_at"`
}
