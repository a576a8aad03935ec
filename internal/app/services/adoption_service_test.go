package services

import (
	"context"
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

var testNow = time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)

func daysBefore(n int) time.Time {
	return testNow.AddDate(0, 0, -n)
}

func daysBeforePtr(n int) *time.Time {
	t := daysBefore(n)
	return &t
}

func activeTeam(id int64) *models.Team {
	return &models.Team{ID: id, CommunityID: 3, Name: "Trail Blazers", IsActive: true}
}

func availableArea(id int64) *models.AdoptableArea {
	return &models.AdoptableArea{
		ID:                   id,
		CommunityID:          3,
		Name:                 "Juanita Creek Trail",
		AreaType:             models.AreaTypeTrail,
		Status:               models.AreaStatusAvailable,
		CleanupFrequencyDays: 90,
		IsActive:             true,
	}
}

func newAdoptionService(
	adoptions *fakeAdoptionStore,
	areas *fakeAreaStore,
	teams *fakeTeamStore,
	communities *fakeCommunityStore,
	pub *fakePublisher,
) *AdoptionService {
	return NewAdoptionService(adoptions, areas, teams, communities, pub, clock.FixedAt(testNow), zerolog.Nop())
}

func TestSubmitApplication(t *testing.T) {
	t.Run("creates pending application and notifies", func(t *testing.T) {
		pub := &fakePublisher{}
		adoptions := &fakeAdoptionStore{
			hasPendingOrApprovedFn: func(_ context.Context, teamID, areaID int64) (bool, error) {
				return false, nil
			},
			createFn: func(_ context.Context, adoption *models.Adoption) error {
				adoption.ID = 42
				return nil
			},
		}
		areas := &fakeAreaStore{
			getByIDFn: func(_ context.Context, id int64) (*models.AdoptableArea, error) {
				return availableArea(id), nil
			},
		}
		teams := &fakeTeamStore{
			getByIDFn: func(_ context.Context, id int64) (*models.Team, error) {
				return activeTeam(id), nil
			},
		}
		svc := newAdoptionService(adoptions, areas, teams, &fakeCommunityStore{}, pub)

		adoption, err := svc.SubmitApplication(context.Background(), 12, 7, "  We clean every Saturday.  ", 99)

		require.NoError(t, err)
		assert.Equal(t, int64(42), adoption.ID)
		assert.Equal(t, models.AdoptionStatusPending, adoption.Status)
		assert.Equal(t, testNow, adoption.ApplicationDate)
		assert.Equal(t, "We clean every Saturday.", adoption.ApplicationNotes)
		assert.True(t, adoption.IsCompliant)
		assert.Equal(t, "Trail Blazers", adoption.TeamName)

		require.Len(t, pub.events, 1)
		assert.Equal(t, notifications.EventApplicationSubmitted, pub.events[0].Kind)
		assert.Equal(t, int64(42), pub.events[0].AdoptionID)
		assert.Equal(t, int64(3), pub.events[0].CommunityID)
	})

	t.Run("rejects inactive team", func(t *testing.T) {
		teams := &fakeTeamStore{
			getByIDFn: func(_ context.Context, id int64) (*models.Team, error) {
				team := activeTeam(id)
				team.IsActive = false
				return team, nil
			},
		}
		svc := newAdoptionService(&fakeAdoptionStore{}, &fakeAreaStore{}, teams, &fakeCommunityStore{}, &fakePublisher{})

		_, err := svc.SubmitApplication(context.Background(), 12, 7, "", 99)

		assert.ErrorIs(t, err, apperrors.ErrTeamInvalid)
	})

	t.Run("rejects missing area", func(t *testing.T) {
		areas := &fakeAreaStore{
			getByIDFn: func(_ context.Context, _ int64) (*models.AdoptableArea, error) {
				return nil, nil
			},
		}
		teams := &fakeTeamStore{
			getByIDFn: func(_ context.Context, id int64) (*models.Team, error) {
				return activeTeam(id), nil
			},
		}
		svc := newAdoptionService(&fakeAdoptionStore{}, areas, teams, &fakeCommunityStore{}, &fakePublisher{})

		_, err := svc.SubmitApplication(context.Background(), 12, 7, "", 99)

		assert.ErrorIs(t, err, apperrors.ErrAreaInvalid)
	})

	t.Run("rejects adopted exclusive area", func(t *testing.T) {
		areas := &fakeAreaStore{
			getByIDFn: func(_ context.Context, id int64) (*models.AdoptableArea, error) {
				area := availableArea(id)
				area.Status = models.AreaStatusAdopted
				return area, nil
			},
		}
		teams := &fakeTeamStore{
			getByIDFn: func(_ context.Context, id int64) (*models.Team, error) {
				return activeTeam(id), nil
			},
		}
		svc := newAdoptionService(&fakeAdoptionStore{}, areas, teams, &fakeCommunityStore{}, &fakePublisher{})

		_, err := svc.SubmitApplication(context.Background(), 12, 7, "", 99)

		assert.ErrorIs(t, err, apperrors.ErrAreaNotAvailable)
	})

	t.Run("allows adopted area when co-adoption is on", func(t *testing.T) {
		adoptions := &fakeAdoptionStore{
			hasPendingOrApprovedFn: func(_ context.Context, _, _ int64) (bool, error) {
				return false, nil
			},
			createFn: func(_ context.Context, adoption *models.Adoption) error {
				adoption.ID = 43
				return nil
			},
		}
		areas := &fakeAreaStore{
			getByIDFn: func(_ context.Context, id int64) (*models.AdoptableArea, error) {
				area := availableArea(id)
				area.Status = models.AreaStatusAdopted
				area.AllowCoAdoption = true
				return area, nil
			},
		}
		teams := &fakeTeamStore{
			getByIDFn: func(_ context.Context, id int64) (*models.Team, error) {
				return activeTeam(id), nil
			},
		}
		svc := newAdoptionService(adoptions, areas, teams, &fakeCommunityStore{}, &fakePublisher{})

		adoption, err := svc.SubmitApplication(context.Background(), 12, 7, "", 99)

		require.NoError(t, err)
		assert.Equal(t, int64(43), adoption.ID)
	})

	t.Run("rejects duplicate application", func(t *testing.T) {
		adoptions := &fakeAdoptionStore{
			hasPendingOrApprovedFn: func(_ context.Context, _, _ int64) (bool, error) {
				return true, nil
			},
		}
		areas := &fakeAreaStore{
			getByIDFn: func(_ context.Context, id int64) (*models.AdoptableArea, error) {
				return availableArea(id), nil
			},
		}
		teams := &fakeTeamStore{
			getByIDFn: func(_ context.Context, id int64) (*models.Team, error) {
				return activeTeam(id), nil
			},
		}
		svc := newAdoptionService(adoptions, areas, teams, &fakeCommunityStore{}, &fakePublisher{})

		_, err := svc.SubmitApplication(context.Background(), 12, 7, "", 99)

		assert.ErrorIs(t, err, apperrors.ErrDuplicateApplication)
	})
}

func TestApproveApplication(t *testing.T) {
	t.Run("approves pending application and notifies", func(t *testing.T) {
		pub := &fakePublisher{}
		pending := &models.Adoption{
			ID:       5,
			TeamID:   12,
			AreaID:   7,
			Status:   models.AdoptionStatusPending,
			TeamName: "Trail Blazers",
			Area:     availableArea(7),
		}
		adoptions := &fakeAdoptionStore{
			getByIDFn: func(_ context.Context, _ int64) (*models.Adoption, error) {
				return pending, nil
			},
			approveFn: func(_ context.Context, adoptionID, reviewerID int64, now time.Time) (*models.Adoption, error) {
				assert.Equal(t, int64(5), adoptionID)
				assert.Equal(t, int64(200), reviewerID)
				assert.Equal(t, testNow, now)
				approved := *pending
				approved.Status = models.AdoptionStatusApproved
				approved.AdoptionStartDate = &now
				return &approved, nil
			},
		}
		svc := newAdoptionService(adoptions, &fakeAreaStore{}, &fakeTeamStore{}, &fakeCommunityStore{}, pub)

		approved, err := svc.ApproveApplication(context.Background(), 5, 200)

		require.NoError(t, err)
		assert.Equal(t, models.AdoptionStatusApproved, approved.Status)
		require.Len(t, pub.events, 1)
		assert.Equal(t, notifications.EventApplicationApproved, pub.events[0].Kind)
	})

	t.Run("returns not found for unknown adoption", func(t *testing.T) {
		adoptions := &fakeAdoptionStore{
			getByIDFn: func(_ context.Context, _ int64) (*models.Adoption, error) {
				return nil, nil
			},
		}
		svc := newAdoptionService(adoptions, &fakeAreaStore{}, &fakeTeamStore{}, &fakeCommunityStore{}, &fakePublisher{})

		_, err := svc.ApproveApplication(context.Background(), 5, 200)

		assert.ErrorIs(t, err, apperrors.ErrAdoptionNotFound)
	})

	t.Run("refuses non-pending application", func(t *testing.T) {
		adoptions := &fakeAdoptionStore{
			getByIDFn: func(_ context.Context, _ int64) (*models.Adoption, error) {
				return &models.Adoption{ID: 5, Status: models.AdoptionStatusRejected}, nil
			},
		}
		svc := newAdoptionService(adoptions, &fakeAreaStore{}, &fakeTeamStore{}, &fakeCommunityStore{}, &fakePublisher{})

		_, err := svc.ApproveApplication(context.Background(), 5, 200)

		assert.ErrorIs(t, err, apperrors.ErrInvalidState)
	})

	t.Run("surfaces exclusivity conflict from the store", func(t *testing.T) {
		adoptions := &fakeAdoptionStore{
			getByIDFn: func(_ context.Context, _ int64) (*models.Adoption, error) {
				return &models.Adoption{ID: 5, Status: models.AdoptionStatusPending}, nil
			},
			approveFn: func(_ context.Context, _, _ int64, _ time.Time) (*models.Adoption, error) {
				return nil, apperrors.NewConflictError("Area was adopted by another team.")
			},
		}
		pub := &fakePublisher{}
		svc := newAdoptionService(adoptions, &fakeAreaStore{}, &fakeTeamStore{}, &fakeCommunityStore{}, pub)

		_, err := svc.ApproveApplication(context.Background(), 5, 200)

		assert.ErrorIs(t, err, apperrors.ErrConflict)
		assert.Empty(t, pub.events)
	})
}

func TestRejectApplication(t *testing.T) {
	t.Run("rejects pending application with reason", func(t *testing.T) {
		pub := &fakePublisher{}
		reason := "Area is closed for construction."
		adoptions := &fakeAdoptionStore{
			getByIDFn: func(_ context.Context, _ int64) (*models.Adoption, error) {
				return &models.Adoption{ID: 5, TeamID: 12, Status: models.AdoptionStatusPending, TeamName: "Trail Blazers"}, nil
			},
			rejectFn: func(_ context.Context, adoptionID int64, gotReason string, reviewerID int64, now time.Time) (*models.Adoption, error) {
				assert.Equal(t, reason, gotReason)
				return &models.Adoption{
					ID:              adoptionID,
					TeamID:          12,
					Status:          models.AdoptionStatusRejected,
					RejectionReason: &gotReason,
					ReviewedByUserID: &reviewerID,
					ReviewedDate:    &now,
				}, nil
			},
		}
		svc := newAdoptionService(adoptions, &fakeAreaStore{}, &fakeTeamStore{}, &fakeCommunityStore{}, pub)

		rejected, err := svc.RejectApplication(context.Background(), 5, reason, 200)

		require.NoError(t, err)
		assert.Equal(t, models.AdoptionStatusRejected, rejected.Status)
		require.Len(t, pub.events, 1)
		assert.Equal(t, notifications.EventApplicationRejected, pub.events[0].Kind)
		assert.Equal(t, reason, pub.events[0].Reason)
	})

	t.Run("publishes the reason even when the stored row omits it", func(t *testing.T) {
		pub := &fakePublisher{}
		adoptions := &fakeAdoptionStore{
			getByIDFn: func(_ context.Context, _ int64) (*models.Adoption, error) {
				return &models.Adoption{ID: 5, TeamID: 12, Status: models.AdoptionStatusPending}, nil
			},
			rejectFn: func(_ context.Context, adoptionID int64, _ string, _ int64, _ time.Time) (*models.Adoption, error) {
				return &models.Adoption{ID: adoptionID, TeamID: 12, Status: models.AdoptionStatusRejected}, nil
			},
		}
		svc := newAdoptionService(adoptions, &fakeAreaStore{}, &fakeTeamStore{}, &fakeCommunityStore{}, pub)

		_, err := svc.RejectApplication(context.Background(), 5, "  Duplicate request.  ", 200)

		require.NoError(t, err)
		require.Len(t, pub.events, 1)
		assert.Equal(t, "Duplicate request.", pub.events[0].Reason)
	})

	t.Run("requires a reason", func(t *testing.T) {
		svc := newAdoptionService(&fakeAdoptionStore{}, &fakeAreaStore{}, &fakeTeamStore{}, &fakeCommunityStore{}, &fakePublisher{})

		_, err := svc.RejectApplication(context.Background(), 5, "   ", 200)

		assert.ErrorIs(t, err, apperrors.ErrBadRequest)
	})

	t.Run("refuses non-pending application", func(t *testing.T) {
		adoptions := &fakeAdoptionStore{
			getByIDFn: func(_ context.Context, _ int64) (*models.Adoption, error) {
				return &models.Adoption{ID: 5, Status: models.AdoptionStatusApproved}, nil
			},
		}
		svc := newAdoptionService(adoptions, &fakeAreaStore{}, &fakeTeamStore{}, &fakeCommunityStore{}, &fakePublisher{})

		_, err := svc.RejectApplication(context.Background(), 5, "reason", 200)

		assert.ErrorIs(t, err, apperrors.ErrInvalidState)
	})
}

func TestListDelinquentByCommunity(t *testing.T) {
	communities := &fakeCommunityStore{
		getByIDFn: func(_ context.Context, id int64) (*models.Community, error) {
			return &models.Community{ID: id, Name: "City of Redmond", IsActive: true}, nil
		},
	}

	t.Run("evaluates compliance at read time", func(t *testing.T) {
		area := availableArea(7)
		adoptions := &fakeAdoptionStore{
			listByCommunityFn: func(_ context.Context, _ int64, status models.AdoptionStatus, activeOnly bool) ([]models.Adoption, error) {
				assert.Equal(t, models.AdoptionStatusApproved, status)
				assert.True(t, activeOnly)
				return []models.Adoption{
					// Stale cached flag says compliant; last event 200 days ago.
					{ID: 1, TeamID: 12, Status: models.AdoptionStatusApproved, TeamName: "Stale",
						AdoptionStartDate: daysBeforePtr(300), LastEventDate: daysBeforePtr(200),
						EventCount: 3, IsCompliant: true, Area: area},
					{ID: 2, TeamID: 13, Status: models.AdoptionStatusApproved, TeamName: "Fresh",
						AdoptionStartDate: daysBeforePtr(300), LastEventDate: daysBeforePtr(10),
						EventCount: 5, IsCompliant: true, Area: area},
				}, nil
			},
		}
		svc := newAdoptionService(adoptions, &fakeAreaStore{}, &fakeTeamStore{}, communities, &fakePublisher{})

		delinquent, err := svc.ListDelinquentByCommunity(context.Background(), 3)

		require.NoError(t, err)
		require.Len(t, delinquent, 1)
		assert.Equal(t, int64(1), delinquent[0].AdoptionID)
		assert.False(t, delinquent[0].IsCompliant)
		assert.False(t, delinquent[0].IsAtRisk)
	})

	t.Run("returns not found for unknown community", func(t *testing.T) {
		missing := &fakeCommunityStore{
			getByIDFn: func(_ context.Context, _ int64) (*models.Community, error) {
				return nil, nil
			},
		}
		svc := newAdoptionService(&fakeAdoptionStore{}, &fakeAreaStore{}, &fakeTeamStore{}, missing, &fakePublisher{})

		_, err := svc.ListDelinquentByCommunity(context.Background(), 3)

		assert.ErrorIs(t, err, apperrors.ErrCommunityNotFound)
	})
}

func TestComplianceStats(t *testing.T) {
	communities := &fakeCommunityStore{
		getByIDFn: func(_ context.Context, id int64) (*models.Community, error) {
			return &models.Community{ID: id, Name: "City of Redmond", IsActive: true}, nil
		},
	}
	area := availableArea(7)
	adoptions := &fakeAdoptionStore{
		listByCommunityFn: func(_ context.Context, _ int64, _ models.AdoptionStatus, _ bool) ([]models.Adoption, error) {
			return []models.Adoption{
				// 95 days since approval, no events: delinquent.
				{ID: 1, Status: models.AdoptionStatusApproved, AdoptionStartDate: daysBeforePtr(95),
					EventCount: 0, Area: area},
				// Last event 80 days ago, frequency 90: compliant and at risk.
				{ID: 2, Status: models.AdoptionStatusApproved, AdoptionStartDate: daysBeforePtr(300),
					LastEventDate: daysBeforePtr(80), EventCount: 4, Area: area},
				// Last event 10 days ago: compliant, not at risk.
				{ID: 3, Status: models.AdoptionStatusApproved, AdoptionStartDate: daysBeforePtr(300),
					LastEventDate: daysBeforePtr(10), EventCount: 7, Area: area},
			}, nil
		},
	}
	areas := &fakeAreaStore{
		countActiveFn: func(_ context.Context, _ int64) (int, error) {
			return 40, nil
		},
		countAdoptedFn: func(_ context.Context, _ int64) (int, error) {
			return 22, nil
		},
	}
	svc := newAdoptionService(adoptions, areas, &fakeTeamStore{}, communities, &fakePublisher{})

	stats, err := svc.ComplianceStats(context.Background(), 3)

	require.NoError(t, err)
	assert.Equal(t, "City of Redmond", stats.CommunityName)
	assert.Equal(t, 3, stats.TotalAdoptions)
	assert.Equal(t, 2, stats.CompliantAdoptions)
	assert.Equal(t, 1, stats.AtRiskAdoptions)
	assert.Equal(t, 1, stats.DelinquentAdoptions)
	assert.Equal(t, 40, stats.TotalAvailableAreas)
	assert.Equal(t, 22, stats.AdoptedAreas)
	assert.Equal(t, 11, stats.TotalLinkedEvents)
}

func TestExportApprovedByCommunity(t *testing.T) {
	communities := &fakeCommunityStore{
		getByIDFn: func(_ context.Context, id int64) (*models.Community, error) {
			return &models.Community{ID: id, Name: "City of Redmond", IsActive: true}, nil
		},
	}
	area := availableArea(7)
	start := daysBefore(300)
	adoptions := &fakeAdoptionStore{
		listByCommunityFn: func(_ context.Context, _ int64, status models.AdoptionStatus, activeOnly bool) ([]models.Adoption, error) {
			assert.Equal(t, models.AdoptionStatusApproved, status)
			assert.False(t, activeOnly)
			return []models.Adoption{
				{ID: 1, TeamID: 12, Status: models.AdoptionStatusApproved, TeamName: "Trail Blazers",
					ApplicationDate: daysBefore(310), AdoptionStartDate: &start,
					LastEventDate: daysBeforePtr(200), EventCount: 3, Area: area},
			}, nil
		},
	}
	svc := newAdoptionService(adoptions, &fakeAreaStore{}, &fakeTeamStore{}, communities, &fakePublisher{})

	rows, err := svc.ExportApprovedByCommunity(context.Background(), 3)

	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "Trail Blazers", rows[0].TeamName)
	assert.Equal(t, "Juanita Creek Trail", rows[0].AreaName)
	assert.Equal(t, string(models.AreaTypeTrail), rows[0].AreaType)
	assert.Equal(t, 3, rows[0].EventCount)
	assert.False(t, rows[0].IsCompliant)
}
