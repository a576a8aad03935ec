package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/TrashMob-eco/adopt-engine/internal/app/models"
	"github.com/TrashMob-eco/adopt-engine/internal/pkg/apperrors"
)

func knownCommunity() *fakeCommunityStore {
	return &fakeCommunityStore{
		getByIDFn: func(_ context.Context, id int64) (*models.Community, error) {
			return &models.Community{ID: id, Name: "City of Redmond", IsActive: true}, nil
		},
	}
}

func TestAreaServiceListByCommunity(t *testing.T) {
	t.Run("lists all active areas", func(t *testing.T) {
		areas := &fakeAreaStore{
			listByCommunityFn: func(_ context.Context, communityID int64, availableOnly bool) ([]models.AdoptableArea, error) {
				assert.Equal(t, int64(3), communityID)
				assert.False(t, availableOnly)
				return []models.AdoptableArea{*availableArea(7)}, nil
			},
		}
		svc := NewAreaService(areas, knownCommunity())

		got, err := svc.ListByCommunity(context.Background(), 3)

		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Equal(t, "Juanita Creek Trail", got[0].Name)
	})

	t.Run("available listing asks for available only", func(t *testing.T) {
		areas := &fakeAreaStore{
			listByCommunityFn: func(_ context.Context, _ int64, availableOnly bool) ([]models.AdoptableArea, error) {
				assert.True(t, availableOnly)
				return nil, nil
			},
		}
		svc := NewAreaService(areas, knownCommunity())

		_, err := svc.ListAvailableByCommunity(context.Background(), 3)

		require.NoError(t, err)
	})

	t.Run("returns not found for unknown community", func(t *testing.T) {
		communities := &fakeCommunityStore{
			getByIDFn: func(_ context.Context, _ int64) (*models.Community, error) {
				return nil, nil
			},
		}
		svc := NewAreaService(&fakeAreaStore{}, communities)

		_, err := svc.ListByCommunity(context.Background(), 3)

		assert.ErrorIs(t, err, apperrors.ErrCommunityNotFound)
	})
}

func TestAreaServiceIsNameAvailable(t *testing.T) {
	t.Run("trims the name before checking", func(t *testing.T) {
		areas := &fakeAreaStore{
			isNameAvailableFn: func(_ context.Context, communityID int64, name string, excludeAreaID *int64) (bool, error) {
				assert.Equal(t, int64(3), communityID)
				assert.Equal(t, "Juanita Creek Trail", name)
				assert.Nil(t, excludeAreaID)
				return true, nil
			},
		}
		svc := NewAreaService(areas, knownCommunity())

		available, err := svc.IsNameAvailable(context.Background(), 3, "  Juanita Creek Trail  ", nil)

		require.NoError(t, err)
		assert.True(t, available)
	})

	t.Run("passes the excluded area through", func(t *testing.T) {
		exclude := int64(7)
		areas := &fakeAreaStore{
			isNameAvailableFn: func(_ context.Context, _ int64, _ string, excludeAreaID *int64) (bool, error) {
				require.NotNil(t, excludeAreaID)
				assert.Equal(t, exclude, *excludeAreaID)
				return false, nil
			},
		}
		svc := NewAreaService(areas, knownCommunity())

		available, err := svc.IsNameAvailable(context.Background(), 3, "Juanita Creek Trail", &exclude)

		require.NoError(t, err)
		assert.False(t, available)
	})

	t.Run("rejects an empty name", func(t *testing.T) {
		svc := NewAreaService(&fakeAreaStore{}, knownCommunity())

		_, err := svc.IsNameAvailable(context.Background(), 3, "   ", nil)

		assert.ErrorIs(t, err, apperrors.ErrBadRequest)
	})
}
