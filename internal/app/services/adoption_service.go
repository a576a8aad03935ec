package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/TrashMob-eco/adopt-engine/internal/app/models"
	"github.com/TrashMob-eco/adopt-engine/internal/app/models/dto"
	"github.com/TrashMob-eco/adopt-engine/internal/app/notifications"
	"github.com/TrashMob-eco/adopt-engine/internal/pkg/apperrors"
	"github.com/TrashMob-eco/adopt-engine/internal/pkg/clock"
	"github.com/TrashMob-eco/adopt-engine/internal/pkg/compliance"
)

// AdoptionService owns the adoption application workflow: submission,
// review, and the community-level reporting built on top of it.
type AdoptionService struct {
	adoptionRepo  AdoptionStore
	areaRepo      AreaStore
	teamRepo      TeamStore
	communityRepo CommunityStore
	publisher     notifications.Publisher
	clock         clock.Clock
	logger        zerolog.Logger
}

// NewAdoptionService creates a new adoption service instance
func NewAdoptionService(
	adoptionRepo AdoptionStore,
	areaRepo AreaStore,
	teamRepo TeamStore,
	communityRepo CommunityStore,
	publisher notifications.Publisher,
	clk clock.Clock,
	logger zerolog.Logger,
) *AdoptionService {
	return &AdoptionService{
		adoptionRepo:  adoptionRepo,
		areaRepo:      areaRepo,
		teamRepo:      teamRepo,
		communityRepo: communityRepo,
		publisher:     publisher,
		clock:         clk,
		logger:        logger,
	}
}

// SubmitApplication validates and records a team's application to adopt an
// area. Preconditions are checked in order and the first failure wins.
func (s *AdoptionService) SubmitApplication(ctx context.Context, teamID, areaID int64, notes string, submittedBy int64) (*models.Adoption, error) {
	team, err := s.teamRepo.GetByID(ctx, teamID)
	if err != nil {
		return nil, fmt.Errorf("error checking team: %w", err)
	}
	if team == nil || !team.IsActive {
		return nil, apperrors.NewCustomError(apperrors.ErrTeamInvalid, "Team does not exist or is inactive.")
	}

	area, err := s.areaRepo.GetByID(ctx, areaID)
	if err != nil {
		return nil, fmt.Errorf("error checking area: %w", err)
	}
	if area == nil || !area.IsActive {
		return nil, apperrors.NewCustomError(apperrors.ErrAreaInvalid, "Area does not exist or is inactive.")
	}

	if area.Status != models.AreaStatusAvailable && !area.AllowCoAdoption {
		return nil, apperrors.NewCustomError(apperrors.ErrAreaNotAvailable, "Area is not available for adoption.")
	}

	exists, err := s.adoptionRepo.HasPendingOrApproved(ctx, teamID, areaID)
	if err != nil {
		return nil, fmt.Errorf("error checking existing adoption: %w", err)
	}
	if exists {
		return nil, apperrors.NewCustomError(apperrors.ErrDuplicateApplication,
			"This team already has a pending or approved adoption for this area.")
	}

	adoption := &models.Adoption{
		TeamID:           teamID,
		AreaID:           areaID,
		Status:           models.AdoptionStatusPending,
		ApplicationDate:  s.clock.Now(),
		ApplicationNotes: strings.TrimSpace(notes),
		IsCompliant:      true,
	}

	if err := s.adoptionRepo.Create(ctx, adoption); err != nil {
		return nil, err
	}

	adoption.TeamName = team.Name
	adoption.Area = area

	s.logger.Info().
		Int64("adoptionId", adoption.ID).
		Int64("teamId", teamID).
		Int64("areaId", areaID).
		Int64("submittedBy", submittedBy).
		Msg("Adoption application submitted")

	s.publisher.Publish(notifications.DomainEvent{
		Kind:        notifications.EventApplicationSubmitted,
		AdoptionID:  adoption.ID,
		TeamID:      teamID,
		AreaID:      areaID,
		CommunityID: area.CommunityID,
		TeamName:    team.Name,
		AreaName:    area.Name,
		OccurredAt:  adoption.ApplicationDate,
	})

	return adoption, nil
}

// ApproveApplication transitions a pending application to approved and, for
// an exclusive area, marks the area adopted. A concurrent approval of the
// same exclusive area loses with a conflict error.
func (s *AdoptionService) ApproveApplication(ctx context.Context, adoptionID, reviewerID int64) (*models.Adoption, error) {
	existing, err := s.adoptionRepo.GetByID(ctx, adoptionID)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, apperrors.NewCustomError(apperrors.ErrAdoptionNotFound, "Adoption application not found.")
	}
	if existing.Status != models.AdoptionStatusPending {
		return nil, apperrors.NewInvalidStateError("Only pending applications can be approved.")
	}

	approved, err := s.adoptionRepo.Approve(ctx, adoptionID, reviewerID, s.clock.Now())
	if err != nil {
		return nil, err
	}

	s.logger.Info().
		Int64("adoptionId", adoptionID).
		Int64("reviewerId", reviewerID).
		Msg("Adoption application approved")

	s.publishReviewEvent(notifications.EventApplicationApproved, approved, "")

	return approved, nil
}

// RejectApplication transitions a pending application to rejected with the
// reviewer's reason. The area is never touched.
func (s *AdoptionService) RejectApplication(ctx context.Context, adoptionID int64, reason string, reviewerID int64) (*models.Adoption, error) {
	reason = strings.TrimSpace(reason)
	if reason == "" {
		return nil, apperrors.NewBadRequestError("A rejection reason is required.")
	}

	existing, err := s.adoptionRepo.GetByID(ctx, adoptionID)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, apperrors.NewCustomError(apperrors.ErrAdoptionNotFound, "Adoption application not found.")
	}
	if existing.Status != models.AdoptionStatusPending {
		return nil, apperrors.NewInvalidStateError("Only pending applications can be rejected.")
	}

	rejected, err := s.adoptionRepo.Reject(ctx, adoptionID, reason, reviewerID, s.clock.Now())
	if err != nil {
		return nil, err
	}

	s.logger.Info().
		Int64("adoptionId", adoptionID).
		Int64("reviewerId", reviewerID).
		Msg("Adoption application rejected")

	s.publishReviewEvent(notifications.EventApplicationRejected, rejected, reason)

	return rejected, nil
}

func (s *AdoptionService) publishReviewEvent(kind notifications.EventKind, adoption *models.Adoption, reason string) {
	event := notifications.DomainEvent{
		Kind:       kind,
		AdoptionID: adoption.ID,
		TeamID:     adoption.TeamID,
		AreaID:     adoption.AreaID,
		TeamName:   adoption.TeamName,
		Reason:     reason,
		OccurredAt: s.clock.Now(),
	}
	if adoption.Area != nil {
		event.CommunityID = adoption.Area.CommunityID
		event.AreaName = adoption.Area.Name
	}
	s.publisher.Publish(event)
}

// GetByID retrieves a single adoption.
func (s *AdoptionService) GetByID(ctx context.Context, adoptionID int64) (*models.Adoption, error) {
	adoption, err := s.adoptionRepo.GetByID(ctx, adoptionID)
	if err != nil {
		return nil, err
	}
	if adoption == nil {
		return nil, apperrors.NewCustomError(apperrors.ErrAdoptionNotFound, "Adoption application not found.")
	}

	return adoption, nil
}

// ListByTeam retrieves all of a team's adoptions.
func (s *AdoptionService) ListByTeam(ctx context.Context, teamID int64) ([]models.Adoption, error) {
	return s.adoptionRepo.ListByTeam(ctx, teamID)
}

// ListByArea retrieves all adoptions referencing an area.
func (s *AdoptionService) ListByArea(ctx context.Context, areaID int64) ([]models.Adoption, error) {
	return s.adoptionRepo.ListByArea(ctx, areaID)
}

// ListPendingByCommunity retrieves a community's applications awaiting review.
func (s *AdoptionService) ListPendingByCommunity(ctx context.Context, communityID int64) ([]models.Adoption, error) {
	if err := s.requireCommunity(ctx, communityID); err != nil {
		return nil, err
	}

	return s.adoptionRepo.ListByCommunity(ctx, communityID, models.AdoptionStatusPending, false)
}

// ListApprovedByCommunity retrieves a community's approved adoptions,
// including contracts that have since ended.
func (s *AdoptionService) ListApprovedByCommunity(ctx context.Context, communityID int64) ([]models.Adoption, error) {
	if err := s.requireCommunity(ctx, communityID); err != nil {
		return nil, err
	}

	return s.adoptionRepo.ListByCommunity(ctx, communityID, models.AdoptionStatusApproved, false)
}

// ListDelinquentByCommunity retrieves the community's active approved
// adoptions that are out of compliance right now. Compliance is evaluated at
// read time: the cached flag decays as time passes without ledger activity,
// so it is never trusted here.
func (s *AdoptionService) ListDelinquentByCommunity(ctx context.Context, communityID int64) ([]dto.AdoptionStatusResponse, error) {
	if err := s.requireCommunity(ctx, communityID); err != nil {
		return nil, err
	}

	adoptions, err := s.adoptionRepo.ListByCommunity(ctx, communityID, models.AdoptionStatusApproved, true)
	if err != nil {
		return nil, err
	}

	delinquent := []dto.AdoptionStatusResponse{}
	for i := range adoptions {
		ad := &adoptions[i]
		status := s.evaluate(ad)
		if status.IsCompliant {
			continue
		}
		delinquent = append(delinquent, s.statusResponse(ad, status))
	}

	return delinquent, nil
}

// ComplianceStats aggregates compliance over a community's active approved
// adoptions, evaluated at read time.
func (s *AdoptionService) ComplianceStats(ctx context.Context, communityID int64) (*dto.ComplianceStatsResponse, error) {
	community, err := s.communityRepo.GetByID(ctx, communityID)
	if err != nil {
		return nil, fmt.Errorf("error checking community: %w", err)
	}
	if community == nil {
		return nil, apperrors.NewCustomError(apperrors.ErrCommunityNotFound, "Community not found.")
	}

	adoptions, err := s.adoptionRepo.ListByCommunity(ctx, communityID, models.AdoptionStatusApproved, true)
	if err != nil {
		return nil, err
	}

	stats := &dto.ComplianceStatsResponse{
		CommunityID:   communityID,
		CommunityName: community.Name,
	}

	for i := range adoptions {
		ad := &adoptions[i]
		stats.TotalAdoptions++
		stats.TotalLinkedEvents += ad.EventCount

		status := s.evaluate(ad)
		if status.IsCompliant {
			stats.CompliantAdoptions++
			if status.IsAtRisk {
				stats.AtRiskAdoptions++
			}
		} else {
			stats.DelinquentAdoptions++
		}
	}

	stats.TotalAvailableAreas, err = s.areaRepo.CountActive(ctx, communityID)
	if err != nil {
		return nil, err
	}

	stats.AdoptedAreas, err = s.areaRepo.CountAdopted(ctx, communityID)
	if err != nil {
		return nil, err
	}

	return stats, nil
}

// ExportApprovedByCommunity produces the full export of a community's
// approved adoptions with live compliance.
func (s *AdoptionService) ExportApprovedByCommunity(ctx context.Context, communityID int64) ([]dto.AdoptionExportRow, error) {
	if err := s.requireCommunity(ctx, communityID); err != nil {
		return nil, err
	}

	adoptions, err := s.adoptionRepo.ListByCommunity(ctx, communityID, models.AdoptionStatusApproved, false)
	if err != nil {
		return nil, err
	}

	rows := make([]dto.AdoptionExportRow, 0, len(adoptions))
	for i := range adoptions {
		ad := &adoptions[i]
		row := dto.AdoptionExportRow{
			AdoptionID:        ad.ID,
			TeamName:          ad.TeamName,
			ApplicationDate:   ad.ApplicationDate,
			AdoptionStartDate: ad.AdoptionStartDate,
			AdoptionEndDate:   ad.AdoptionEndDate,
			EventCount:        ad.EventCount,
			LastEventDate:     ad.LastEventDate,
			IsCompliant:       s.evaluate(ad).IsCompliant,
		}
		if ad.Area != nil {
			row.AreaName = ad.Area.Name
			row.AreaType = string(ad.Area.AreaType)
		}
		rows = append(rows, row)
	}

	return rows, nil
}

func (s *AdoptionService) requireCommunity(ctx context.Context, communityID int64) error {
	community, err := s.communityRepo.GetByID(ctx, communityID)
	if err != nil {
		return fmt.Errorf("error checking community: %w", err)
	}
	if community == nil {
		return apperrors.NewCustomError(apperrors.ErrCommunityNotFound, "Community not found.")
	}

	return nil
}

func (s *AdoptionService) evaluate(adoption *models.Adoption) compliance.Status {
	input := compliance.Input{
		AdoptionStartDate: adoption.AdoptionStartDate,
		LastEventDate:     adoption.LastEventDate,
	}
	if adoption.Area != nil {
		input.CleanupFrequencyDays = adoption.Area.CleanupFrequencyDays
	}
	return compliance.Evaluate(input, s.clock.Now())
}

func (s *AdoptionService) statusResponse(adoption *models.Adoption, status compliance.Status) dto.AdoptionStatusResponse {
	resp := dto.AdoptionStatusResponse{
		AdoptionID:    adoption.ID,
		TeamID:        adoption.TeamID,
		TeamName:      adoption.TeamName,
		AreaID:        adoption.AreaID,
		EventCount:    adoption.EventCount,
		LastEventDate: adoption.LastEventDate,
		IsCompliant:   status.IsCompliant,
		IsAtRisk:      status.IsAtRisk,
	}
	if adoption.Area != nil {
		resp.AreaName = adoption.Area.Name
	}
	return resp
}
