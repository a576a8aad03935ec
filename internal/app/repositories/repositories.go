package repositories

import (
	"github.com/jackc/pgx/v5/pgxpool"
)

// Repositories holds all the repository instances
type Repositories struct {
	AreaRepository              *AreaRepository
	AdoptionRepository          *AdoptionRepository
	AdoptionEventLinkRepository *AdoptionEventLinkRepository
	TeamRepository              *TeamRepository
	EventRepository             *EventRepository
	CommunityRepository         *CommunityRepository
}

// NewRepositories initializes all repositories
func NewRepositories(db *pgxpool.Pool) *Repositories {
	return &Repositories{
		AreaRepository:              NewAreaRepository(db),
		AdoptionRepository:          NewAdoptionRepository(db),
		AdoptionEventLinkRepository: NewAdoptionEventLinkRepository(db),
		TeamRepository:              NewTeamRepository(db),
		EventRepository:             NewEventRepository(db),
		CommunityRepository:         NewCommunityRepository(db),
	}
}
