package services

import (
	"context"
	"time"

	"github.com/TrashMob-eco/adopt-engine/internal/app/models"
)

// Store interfaces the services depend on. The pgx repositories satisfy them
// in production; tests substitute function-field fakes.

// AreaStore is the Area Registry's persistence surface.
type AreaStore interface {
	GetByID(ctx context.Context, id int64) (*models.AdoptableArea, error)
	ListByCommunity(ctx context.Context, communityID int64, availableOnly bool) ([]models.AdoptableArea, error)
	IsNameAvailable(ctx context.Context, communityID int64, name string, excludeAreaID *int64) (bool, error)
	CountActive(ctx context.Context, communityID int64) (int, error)
	CountAdopted(ctx context.Context, communityID int64) (int, error)
}

// AdoptionStore is the workflow's persistence surface.
type AdoptionStore interface {
	Create(ctx context.Context, adoption *models.Adoption) error
	GetByID(ctx context.Context, id int64) (*models.Adoption, error)
	HasPendingOrApproved(ctx context.Context, teamID, areaID int64) (bool, error)
	Approve(ctx context.Context, adoptionID, reviewerID int64, now time.Time) (*models.Adoption, error)
	Reject(ctx context.Context, adoptionID int64, reason string, reviewerID int64, now time.Time) (*models.Adoption, error)
	ListByTeam(ctx context.Context, teamID int64) ([]models.Adoption, error)
	ListByArea(ctx context.Context, areaID int64) ([]models.Adoption, error)
	ListByCommunity(ctx context.Context, communityID int64, status models.AdoptionStatus, activeOnly bool) ([]models.Adoption, error)
	ListActiveForTeam(ctx context.Context, teamID int64, now time.Time) ([]models.Adoption, error)
}

// LinkStore is the ledger's persistence surface. Mutations refresh the
// owning adoption's compliance snapshot in the same transaction; the evaluate
// callback derives the compliance bit from the post-mutation aggregate.
type LinkStore interface {
	CreateWithSnapshot(ctx context.Context, link *models.AdoptionEventLink, evaluate func(eventCount int, lastEventDate *time.Time) bool) (*models.ComplianceSnapshot, error)
	GetByID(ctx context.Context, id int64) (*models.AdoptionEventLink, error)
	Delete(ctx context.Context, id int64) (bool, error)
	DeleteWithSnapshot(ctx context.Context, linkID, adoptionID int64, evaluate func(eventCount int, lastEventDate *time.Time) bool) (bool, *models.ComplianceSnapshot, error)
	ListByAdoption(ctx context.Context, adoptionID int64) ([]models.AdoptionEventLink, error)
	ListByEvent(ctx context.Context, eventID int64) ([]models.AdoptionEventLink, error)
	IsLinked(ctx context.Context, adoptionID, eventID int64) (bool, error)
}

// TeamStore resolves teams owned by the surrounding platform.
type TeamStore interface {
	GetByID(ctx context.Context, id int64) (*models.Team, error)
}

// EventStore resolves completed cleanup events.
type EventStore interface {
	GetByID(ctx context.Context, id int64) (*models.CleanupEvent, error)
}

// CommunityStore resolves partner communities.
type CommunityStore interface {
	GetByID(ctx context.Context, id int64) (*models.Community, error)
}
