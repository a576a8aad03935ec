package services

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/TrashMob-eco/adopt-engine/internal/app/models"
	"github.com/TrashMob-eco/adopt-engine/internal/app/notifications"
	"github.com/TrashMob-eco/adopt-engine/internal/pkg/apperrors"
	"github.com/TrashMob-eco/adopt-engine/internal/pkg/clock"
	"github.com/TrashMob-eco/adopt-engine/internal/pkg/compliance"
)

// LedgerService owns the linkage between completed cleanup events and
// adoptions. It is the only writer of the adoption's cached compliance
// snapshot after approval defaults.
type LedgerService struct {
	linkRepo     LinkStore
	adoptionRepo AdoptionStore
	eventRepo    EventStore
	publisher    notifications.Publisher
	clock        clock.Clock
	logger       zerolog.Logger
}

// NewLedgerService creates a new ledger service instance
func NewLedgerService(
	linkRepo LinkStore,
	adoptionRepo AdoptionStore,
	eventRepo EventStore,
	publisher notifications.Publisher,
	clk clock.Clock,
	logger zerolog.Logger,
) *LedgerService {
	return &LedgerService{
		linkRepo:     linkRepo,
		adoptionRepo: adoptionRepo,
		eventRepo:    eventRepo,
		publisher:    publisher,
		clock:        clk,
		logger:       logger,
	}
}

// LinkEvent credits a completed cleanup event toward an adoption's upkeep
// obligation and refreshes the adoption's compliance snapshot.
func (s *LedgerService) LinkEvent(ctx context.Context, adoptionID, eventID int64, notes string, userID int64) (*models.AdoptionEventLink, error) {
	adoption, err := s.adoptionRepo.GetByID(ctx, adoptionID)
	if err != nil {
		return nil, err
	}
	if adoption == nil {
		return nil, apperrors.NewCustomError(apperrors.ErrAdoptionNotFound, "Adoption application not found.")
	}
	if adoption.Status != models.AdoptionStatusApproved {
		return nil, apperrors.NewInvalidStateError("Only approved adoptions can have events linked.")
	}

	event, err := s.eventRepo.GetByID(ctx, eventID)
	if err != nil {
		return nil, fmt.Errorf("error checking event: %w", err)
	}
	if event == nil {
		return nil, apperrors.NewCustomError(apperrors.ErrEventInvalid, "Event does not exist.")
	}

	linked, err := s.linkRepo.IsLinked(ctx, adoptionID, eventID)
	if err != nil {
		return nil, err
	}
	if linked {
		return nil, apperrors.NewCustomError(apperrors.ErrDuplicateLink, "This event is already linked to this adoption.")
	}

	link := &models.AdoptionEventLink{
		AdoptionID:      adoptionID,
		EventID:         eventID,
		Notes:           notes,
		CreatedByUserID: userID,
	}
	snapshot, err := s.linkRepo.CreateWithSnapshot(ctx, link, s.evaluator(adoption))
	if err != nil {
		return nil, err
	}
	link.Event = event

	s.logger.Info().
		Int64("adoptionId", adoptionID).
		Int64("eventId", eventID).
		Int64("userId", userID).
		Msg("Cleanup event linked to adoption")

	s.applySnapshot(adoption, snapshot)

	return link, nil
}

// UnlinkEvent removes a ledger entry and refreshes the owning adoption's
// compliance snapshot.
func (s *LedgerService) UnlinkEvent(ctx context.Context, linkID, userID int64) error {
	link, err := s.linkRepo.GetByID(ctx, linkID)
	if err != nil {
		return err
	}
	if link == nil {
		return apperrors.NewCustomError(apperrors.ErrLinkNotFound, "Adoption event link not found.")
	}

	adoption, err := s.adoptionRepo.GetByID(ctx, link.AdoptionID)
	if err != nil {
		return err
	}
	if adoption == nil {
		// The owning adoption is gone; remove the orphan entry without a
		// snapshot to refresh.
		deleted, err := s.linkRepo.Delete(ctx, linkID)
		if err != nil {
			return err
		}
		if !deleted {
			return apperrors.NewCustomError(apperrors.ErrLinkNotFound, "Adoption event link not found.")
		}
		return nil
	}

	deleted, snapshot, err := s.linkRepo.DeleteWithSnapshot(ctx, linkID, adoption.ID, s.evaluator(adoption))
	if err != nil {
		return err
	}
	if !deleted {
		return apperrors.NewCustomError(apperrors.ErrLinkNotFound, "Adoption event link not found.")
	}

	s.logger.Info().
		Int64("linkId", linkID).
		Int64("adoptionId", link.AdoptionID).
		Int64("userId", userID).
		Msg("Cleanup event unlinked from adoption")

	s.applySnapshot(adoption, snapshot)

	return nil
}

// evaluator returns the compliance callback a ledger mutation runs inside
// its transaction, turning the post-mutation aggregate into the cached
// compliance bit.
func (s *LedgerService) evaluator(adoption *models.Adoption) func(eventCount int, lastEventDate *time.Time) bool {
	return func(_ int, lastEventDate *time.Time) bool {
		input := compliance.Input{
			AdoptionStartDate: adoption.AdoptionStartDate,
			LastEventDate:     lastEventDate,
		}
		if adoption.Area != nil {
			input.CleanupFrequencyDays = adoption.Area.CleanupFrequencyDays
		}
		return compliance.Evaluate(input, s.clock.Now()).IsCompliant
	}
}

// applySnapshot carries the committed snapshot onto the in-memory adoption
// and publishes a domain event when the compliance bit flipped.
func (s *LedgerService) applySnapshot(adoption *models.Adoption, snapshot *models.ComplianceSnapshot) {
	if snapshot.IsCompliant != adoption.IsCompliant {
		event := notifications.DomainEvent{
			Kind:        notifications.EventComplianceChanged,
			AdoptionID:  adoption.ID,
			TeamID:      adoption.TeamID,
			AreaID:      adoption.AreaID,
			TeamName:    adoption.TeamName,
			IsCompliant: snapshot.IsCompliant,
			OccurredAt:  s.clock.Now(),
		}
		if adoption.Area != nil {
			event.CommunityID = adoption.Area.CommunityID
			event.AreaName = adoption.Area.Name
		}
		s.publisher.Publish(event)
	}

	adoption.EventCount = snapshot.EventCount
	adoption.LastEventDate = snapshot.LastEventDate
	adoption.IsCompliant = snapshot.IsCompliant
}

// ListLinksByAdoption retrieves an adoption's ledger entries, newest event
// first.
func (s *LedgerService) ListLinksByAdoption(ctx context.Context, adoptionID int64) ([]models.AdoptionEventLink, error) {
	adoption, err := s.adoptionRepo.GetByID(ctx, adoptionID)
	if err != nil {
		return nil, err
	}
	if adoption == nil {
		return nil, apperrors.NewCustomError(apperrors.ErrAdoptionNotFound, "Adoption application not found.")
	}

	return s.linkRepo.ListByAdoption(ctx, adoptionID)
}

// ListLinksByEvent retrieves every adoption an event has been credited to.
func (s *LedgerService) ListLinksByEvent(ctx context.Context, eventID int64) ([]models.AdoptionEventLink, error) {
	return s.linkRepo.ListByEvent(ctx, eventID)
}

// IsEventLinked reports whether the (adoption, event) pair is already in the
// ledger.
func (s *LedgerService) IsEventLinked(ctx context.Context, adoptionID, eventID int64) (bool, error) {
	return s.linkRepo.IsLinked(ctx, adoptionID, eventID)
}

// ActiveAdoptionsForTeam retrieves a team's approved adoptions whose
// contracts are still running, the set a team may log events against.
func (s *LedgerService) ActiveAdoptionsForTeam(ctx context.Context, teamID int64) ([]models.Adoption, error) {
	return s.adoptionRepo.ListActiveForTeam(ctx, teamID, s.clock.Now())
}
