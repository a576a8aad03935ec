package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/TrashMob-eco/adopt-engine/internal/app/models"
	"github.com/TrashMob-eco/adopt-engine/internal/app/notifications"
	"github.com/TrashMob-eco/adopt-engine/internal/pkg/apperrors"
	"github.com/TrashMob-eco/adopt-engine/internal/pkg/clock"
)

func newLedgerService(
	links *fakeLinkStore,
	adoptions *fakeAdoptionStore,
	events *fakeEventStore,
	pub *fakePublisher,
) *LedgerService {
	return NewLedgerService(links, adoptions, events, pub, clock.FixedAt(testNow), zerolog.Nop())
}

func approvedAdoption(id int64) *models.Adoption {
	return &models.Adoption{
		ID:                id,
		TeamID:            12,
		AreaID:            7,
		Status:            models.AdoptionStatusApproved,
		TeamName:          "Trail Blazers",
		AdoptionStartDate: daysBeforePtr(300),
		Area:              availableArea(7),
	}
}

func TestLinkEvent(t *testing.T) {
	t.Run("links event and refreshes snapshot", func(t *testing.T) {
		pub := &fakePublisher{}
		adoption := approvedAdoption(5)
		adoption.LastEventDate = daysBeforePtr(200)
		adoption.EventCount = 3
		adoption.IsCompliant = false

		eventDate := testNow

		adoptions := &fakeAdoptionStore{
			getByIDFn: func(_ context.Context, _ int64) (*models.Adoption, error) {
				return adoption, nil
			},
		}
		events := &fakeEventStore{
			getByIDFn: func(_ context.Context, id int64) (*models.CleanupEvent, error) {
				return &models.CleanupEvent{ID: id, CommunityID: 3, Name: "Spring cleanup", EventDate: eventDate}, nil
			},
		}
		links := &fakeLinkStore{
			isLinkedFn: func(_ context.Context, _, _ int64) (bool, error) {
				return false, nil
			},
			createWithSnapshotFn: func(_ context.Context, link *models.AdoptionEventLink, evaluate func(int, *time.Time) bool) (*models.ComplianceSnapshot, error) {
				assert.Equal(t, int64(5), link.AdoptionID)
				link.ID = 501
				return &models.ComplianceSnapshot{
					EventCount:    4,
					LastEventDate: &eventDate,
					IsCompliant:   evaluate(4, &eventDate),
				}, nil
			},
		}
		svc := newLedgerService(links, adoptions, events, pub)

		link, err := svc.LinkEvent(context.Background(), 5, 301, "Quarterly cleanup", 99)

		require.NoError(t, err)
		assert.Equal(t, int64(501), link.ID)
		require.NotNil(t, link.Event)

		assert.Equal(t, 4, adoption.EventCount)
		require.NotNil(t, adoption.LastEventDate)
		assert.Equal(t, eventDate, *adoption.LastEventDate)
		assert.True(t, adoption.IsCompliant)

		// The delinquent adoption became compliant, so a change event went out.
		require.Len(t, pub.events, 1)
		assert.Equal(t, notifications.EventComplianceChanged, pub.events[0].Kind)
		assert.True(t, pub.events[0].IsCompliant)
	})

	t.Run("link and snapshot commit or fail as one unit", func(t *testing.T) {
		pub := &fakePublisher{}
		adoption := approvedAdoption(5)
		adoption.LastEventDate = daysBeforePtr(200)
		adoption.EventCount = 3
		adoption.IsCompliant = false

		adoptions := &fakeAdoptionStore{
			getByIDFn: func(_ context.Context, _ int64) (*models.Adoption, error) {
				return adoption, nil
			},
		}
		events := &fakeEventStore{
			getByIDFn: func(_ context.Context, id int64) (*models.CleanupEvent, error) {
				return &models.CleanupEvent{ID: id, EventDate: testNow}, nil
			},
		}
		links := &fakeLinkStore{
			isLinkedFn: func(_ context.Context, _, _ int64) (bool, error) {
				return false, nil
			},
			createWithSnapshotFn: func(_ context.Context, _ *models.AdoptionEventLink, _ func(int, *time.Time) bool) (*models.ComplianceSnapshot, error) {
				return nil, errors.New("deadlock detected")
			},
		}
		svc := newLedgerService(links, adoptions, events, pub)

		link, err := svc.LinkEvent(context.Background(), 5, 301, "", 99)

		require.Error(t, err)
		assert.Nil(t, link)

		// The rolled-back mutation left no trace: nothing published and the
		// cached view untouched.
		assert.Empty(t, pub.events)
		assert.Equal(t, 3, adoption.EventCount)
		assert.False(t, adoption.IsCompliant)
	})

	t.Run("stays silent when compliance does not flip", func(t *testing.T) {
		pub := &fakePublisher{}
		adoption := approvedAdoption(5)
		adoption.LastEventDate = daysBeforePtr(10)
		adoption.EventCount = 2
		adoption.IsCompliant = true

		eventDate := testNow
		adoptions := &fakeAdoptionStore{
			getByIDFn: func(_ context.Context, _ int64) (*models.Adoption, error) {
				return adoption, nil
			},
		}
		events := &fakeEventStore{
			getByIDFn: func(_ context.Context, id int64) (*models.CleanupEvent, error) {
				return &models.CleanupEvent{ID: id, EventDate: eventDate}, nil
			},
		}
		links := &fakeLinkStore{
			isLinkedFn: func(_ context.Context, _, _ int64) (bool, error) {
				return false, nil
			},
			createWithSnapshotFn: func(_ context.Context, _ *models.AdoptionEventLink, evaluate func(int, *time.Time) bool) (*models.ComplianceSnapshot, error) {
				return &models.ComplianceSnapshot{
					EventCount:    3,
					LastEventDate: &eventDate,
					IsCompliant:   evaluate(3, &eventDate),
				}, nil
			},
		}
		svc := newLedgerService(links, adoptions, events, pub)

		_, err := svc.LinkEvent(context.Background(), 5, 301, "", 99)

		require.NoError(t, err)
		assert.Empty(t, pub.events)
	})

	t.Run("returns not found for unknown adoption", func(t *testing.T) {
		adoptions := &fakeAdoptionStore{
			getByIDFn: func(_ context.Context, _ int64) (*models.Adoption, error) {
				return nil, nil
			},
		}
		svc := newLedgerService(&fakeLinkStore{}, adoptions, &fakeEventStore{}, &fakePublisher{})

		_, err := svc.LinkEvent(context.Background(), 5, 301, "", 99)

		assert.ErrorIs(t, err, apperrors.ErrAdoptionNotFound)
	})

	t.Run("refuses non-approved adoption", func(t *testing.T) {
		adoptions := &fakeAdoptionStore{
			getByIDFn: func(_ context.Context, _ int64) (*models.Adoption, error) {
				return &models.Adoption{ID: 5, Status: models.AdoptionStatusPending}, nil
			},
		}
		svc := newLedgerService(&fakeLinkStore{}, adoptions, &fakeEventStore{}, &fakePublisher{})

		_, err := svc.LinkEvent(context.Background(), 5, 301, "", 99)

		assert.ErrorIs(t, err, apperrors.ErrInvalidState)
	})

	t.Run("refuses unknown event", func(t *testing.T) {
		adoptions := &fakeAdoptionStore{
			getByIDFn: func(_ context.Context, _ int64) (*models.Adoption, error) {
				return approvedAdoption(5), nil
			},
		}
		events := &fakeEventStore{
			getByIDFn: func(_ context.Context, _ int64) (*models.CleanupEvent, error) {
				return nil, nil
			},
		}
		svc := newLedgerService(&fakeLinkStore{}, adoptions, events, &fakePublisher{})

		_, err := svc.LinkEvent(context.Background(), 5, 301, "", 99)

		assert.ErrorIs(t, err, apperrors.ErrEventInvalid)
	})

	t.Run("refuses duplicate pair", func(t *testing.T) {
		adoptions := &fakeAdoptionStore{
			getByIDFn: func(_ context.Context, _ int64) (*models.Adoption, error) {
				return approvedAdoption(5), nil
			},
		}
		events := &fakeEventStore{
			getByIDFn: func(_ context.Context, id int64) (*models.CleanupEvent, error) {
				return &models.CleanupEvent{ID: id, EventDate: testNow}, nil
			},
		}
		links := &fakeLinkStore{
			isLinkedFn: func(_ context.Context, _, _ int64) (bool, error) {
				return true, nil
			},
		}
		svc := newLedgerService(links, adoptions, events, &fakePublisher{})

		_, err := svc.LinkEvent(context.Background(), 5, 301, "", 99)

		assert.ErrorIs(t, err, apperrors.ErrDuplicateLink)
	})
}

func TestUnlinkEvent(t *testing.T) {
	t.Run("removes only link and resets snapshot", func(t *testing.T) {
		adoption := approvedAdoption(5)
		adoption.AdoptionStartDate = daysBeforePtr(30)
		adoption.LastEventDate = daysBeforePtr(3)
		adoption.EventCount = 1
		adoption.IsCompliant = true

		adoptions := &fakeAdoptionStore{
			getByIDFn: func(_ context.Context, _ int64) (*models.Adoption, error) {
				return adoption, nil
			},
		}
		links := &fakeLinkStore{
			getByIDFn: func(_ context.Context, id int64) (*models.AdoptionEventLink, error) {
				return &models.AdoptionEventLink{ID: id, AdoptionID: 5, EventID: 301}, nil
			},
			deleteWithSnapshotFn: func(_ context.Context, linkID, adoptionID int64, evaluate func(int, *time.Time) bool) (bool, *models.ComplianceSnapshot, error) {
				assert.Equal(t, int64(501), linkID)
				assert.Equal(t, int64(5), adoptionID)
				return true, &models.ComplianceSnapshot{
					EventCount:  0,
					IsCompliant: evaluate(0, nil),
				}, nil
			},
		}
		pub := &fakePublisher{}
		svc := newLedgerService(links, adoptions, &fakeEventStore{}, pub)

		err := svc.UnlinkEvent(context.Background(), 501, 99)

		require.NoError(t, err)
		assert.Equal(t, 0, adoption.EventCount)
		assert.Nil(t, adoption.LastEventDate)
		// 30 days since start with no events is inside the first-event grace.
		assert.True(t, adoption.IsCompliant)
		assert.Empty(t, pub.events)
	})

	t.Run("returns not found for unknown link", func(t *testing.T) {
		links := &fakeLinkStore{
			getByIDFn: func(_ context.Context, _ int64) (*models.AdoptionEventLink, error) {
				return nil, nil
			},
		}
		svc := newLedgerService(links, &fakeAdoptionStore{}, &fakeEventStore{}, &fakePublisher{})

		err := svc.UnlinkEvent(context.Background(), 501, 99)

		assert.ErrorIs(t, err, apperrors.ErrLinkNotFound)
	})
}

func TestActiveAdoptionsForTeam(t *testing.T) {
	adoptions := &fakeAdoptionStore{
		listActiveForTeamFn: func(_ context.Context, teamID int64, now time.Time) ([]models.Adoption, error) {
			assert.Equal(t, int64(12), teamID)
			assert.Equal(t, testNow, now)
			return []models.Adoption{*approvedAdoption(5)}, nil
		},
	}
	svc := newLedgerService(&fakeLinkStore{}, adoptions, &fakeEventStore{}, &fakePublisher{})

	active, err := svc.ActiveAdoptionsForTeam(context.Background(), 12)

	require.NoError(t, err)
	require.Len(t, active, 1)
	assert.Equal(t, int64(5), active[0].ID)
}

func TestIsEventLinked(t *testing.T) {
	links := &fakeLinkStore{
		isLinkedFn: func(_ context.Context, adoptionID, eventID int64) (bool, error) {
			return adoptionID == 5 && eventID == 301, nil
		},
	}
	svc := newLedgerService(links, &fakeAdoptionStore{}, &fakeEventStore{}, &fakePublisher{})

	linked, err := svc.IsEventLinked(context.Background(), 5, 301)

	require.NoError(t, err)
	assert.True(t, linked)
}
