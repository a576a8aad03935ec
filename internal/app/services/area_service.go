package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/TrashMob-eco/adopt-engine/internal/app/models"
	"github.com/TrashMob-eco/adopt-engine/internal/pkg/apperrors"
)

// AreaService is the Area Registry: read-side operations over adoptable
// areas. Area status mutation belongs to the adoption workflow alone, which
// keeps the exclusivity invariant in one place.
type AreaService struct {
	areaRepo      AreaStore
	communityRepo CommunityStore
}

// NewAreaService creates a new area service instance
func NewAreaService(areaRepo AreaStore, communityRepo CommunityStore) *AreaService {
	return &AreaService{
		areaRepo:      areaRepo,
		communityRepo: communityRepo,
	}
}

func (s *AreaService) requireCommunity(ctx context.Context, communityID int64) error {
	if communityID <= 0 {
		return apperrors.NewBadRequestError("Community ID must be positive.")
	}

	community, err := s.communityRepo.GetByID(ctx, communityID)
	if err != nil {
		return fmt.Errorf("error checking community: %w", err)
	}
	if community == nil {
		return apperrors.NewCustomError(apperrors.ErrCommunityNotFound, "Community not found.")
	}

	return nil
}

// ListByCommunity retrieves a community's active areas, name-ordered.
func (s *AreaService) ListByCommunity(ctx context.Context, communityID int64) ([]models.AdoptableArea, error) {
	if err := s.requireCommunity(ctx, communityID); err != nil {
		return nil, err
	}

	return s.areaRepo.ListByCommunity(ctx, communityID, false)
}

// ListAvailableByCommunity retrieves a community's active areas that can
// currently accept a new application.
func (s *AreaService) ListAvailableByCommunity(ctx context.Context, communityID int64) ([]models.AdoptableArea, error) {
	if err := s.requireCommunity(ctx, communityID); err != nil {
		return nil, err
	}

	return s.areaRepo.ListByCommunity(ctx, communityID, true)
}

// IsNameAvailable checks case-insensitive name uniqueness within a
// community, optionally excluding one area id for edit-in-place.
func (s *AreaService) IsNameAvailable(ctx context.Context, communityID int64, name string, excludeAreaID *int64) (bool, error) {
	if strings.TrimSpace(name) == "" {
		return false, apperrors.NewBadRequestError("Area name cannot be empty.")
	}

	if err := s.requireCommunity(ctx, communityID); err != nil {
		return false, err
	}

	return s.areaRepo.IsNameAvailable(ctx, communityID, strings.TrimSpace(name), excludeAreaID)
}
