package services

import (
	"context"
	"time"

	"github.com/TrashMob-eco/adopt-engine/internal/app/models"
	"github.com/TrashMob-eco/adopt-engine/internal/app/notifications"
)

// Function-field fakes for the store interfaces. Each test wires only the
// calls it expects; an unexpected call panics on the nil function.

type fakeAreaStore struct {
	getByIDFn         func(ctx context.Context, id int64) (*models.AdoptableArea, error)
	listByCommunityFn func(ctx context.Context, communityID int64, availableOnly bool) ([]models.AdoptableArea, error)
	isNameAvailableFn func(ctx context.Context, communityID int64, name string, excludeAreaID *int64) (bool, error)
	countActiveFn     func(ctx context.Context, communityID int64) (int, error)
	countAdoptedFn    func(ctx context.Context, communityID int64) (int, error)
}

func (f *fakeAreaStore) GetByID(ctx context.Context, id int64) (*models.AdoptableArea, error) {
	return f.getByIDFn(ctx, id)
}

func (f *fakeAreaStore) ListByCommunity(ctx context.Context, communityID int64, availableOnly bool) ([]models.AdoptableArea, error) {
	return f.listByCommunityFn(ctx, communityID, availableOnly)
}

func (f *fakeAreaStore) IsNameAvailable(ctx context.Context, communityID int64, name string, excludeAreaID *int64) (bool, error) {
	return f.isNameAvailableFn(ctx, communityID, name, excludeAreaID)
}

func (f *fakeAreaStore) CountActive(ctx context.Context, communityID int64) (int, error) {
	return f.countActiveFn(ctx, communityID)
}

func (f *fakeAreaStore) CountAdopted(ctx context.Context, communityID int64) (int, error) {
	return f.countAdoptedFn(ctx, communityID)
}

type fakeAdoptionStore struct {
	createFn               func(ctx context.Context, adoption *models.Adoption) error
	getByIDFn              func(ctx context.Context, id int64) (*models.Adoption, error)
	hasPendingOrApprovedFn func(ctx context.Context, teamID, areaID int64) (bool, error)
	approveFn              func(ctx context.Context, adoptionID, reviewerID int64, now time.Time) (*models.Adoption, error)
	rejectFn               func(ctx context.Context, adoptionID int64, reason string, reviewerID int64, now time.Time) (*models.Adoption, error)
	listByTeamFn           func(ctx context.Context, teamID int64) ([]models.Adoption, error)
	listByAreaFn           func(ctx context.Context, areaID int64) ([]models.Adoption, error)
	listByCommunityFn      func(ctx context.Context, communityID int64, status models.AdoptionStatus, activeOnly bool) ([]models.Adoption, error)
	listActiveForTeamFn    func(ctx context.Context, teamID int64, now time.Time) ([]models.Adoption, error)
}

func (f *fakeAdoptionStore) Create(ctx context.Context, adoption *models.Adoption) error {
	return f.createFn(ctx, adoption)
}

func (f *fakeAdoptionStore) GetByID(ctx context.Context, id int64) (*models.Adoption, error) {
	return f.getByIDFn(ctx, id)
}

func (f *fakeAdoptionStore) HasPendingOrApproved(ctx context.Context, teamID, areaID int64) (bool, error) {
	return f.hasPendingOrApprovedFn(ctx, teamID, areaID)
}

func (f *fakeAdoptionStore) Approve(ctx context.Context, adoptionID, reviewerID int64, now time.Time) (*models.Adoption, error) {
	return f.approveFn(ctx, adoptionID, reviewerID, now)
}

func (f *fakeAdoptionStore) Reject(ctx context.Context, adoptionID int64, reason string, reviewerID int64, now time.Time) (*models.Adoption, error) {
	return f.rejectFn(ctx, adoptionID, reason, reviewerID, now)
}

func (f *fakeAdoptionStore) ListByTeam(ctx context.Context, teamID int64) ([]models.Adoption, error) {
	return f.listByTeamFn(ctx, teamID)
}

func (f *fakeAdoptionStore) ListByArea(ctx context.Context, areaID int64) ([]models.Adoption, error) {
	return f.listByAreaFn(ctx, areaID)
}

func (f *fakeAdoptionStore) ListByCommunity(ctx context.Context, communityID int64, status models.AdoptionStatus, activeOnly bool) ([]models.Adoption, error) {
	return f.listByCommunityFn(ctx, communityID, status, activeOnly)
}

func (f *fakeAdoptionStore) ListActiveForTeam(ctx context.Context, teamID int64, now time.Time) ([]models.Adoption, error) {
	return f.listActiveForTeamFn(ctx, teamID, now)
}

type fakeLinkStore struct {
	createWithSnapshotFn func(ctx context.Context, link *models.AdoptionEventLink, evaluate func(int, *time.Time) bool) (*models.ComplianceSnapshot, error)
	getByIDFn            func(ctx context.Context, id int64) (*models.AdoptionEventLink, error)
	deleteFn             func(ctx context.Context, id int64) (bool, error)
	deleteWithSnapshotFn func(ctx context.Context, linkID, adoptionID int64, evaluate func(int, *time.Time) bool) (bool, *models.ComplianceSnapshot, error)
	listByAdoptionFn     func(ctx context.Context, adoptionID int64) ([]models.AdoptionEventLink, error)
	listByEventFn        func(ctx context.Context, eventID int64) ([]models.AdoptionEventLink, error)
	isLinkedFn           func(ctx context.Context, adoptionID, eventID int64) (bool, error)
}

func (f *fakeLinkStore) CreateWithSnapshot(ctx context.Context, link *models.AdoptionEventLink, evaluate func(eventCount int, lastEventDate *time.Time) bool) (*models.ComplianceSnapshot, error) {
	return f.createWithSnapshotFn(ctx, link, evaluate)
}

func (f *fakeLinkStore) GetByID(ctx context.Context, id int64) (*models.AdoptionEventLink, error) {
	return f.getByIDFn(ctx, id)
}

func (f *fakeLinkStore) Delete(ctx context.Context, id int64) (bool, error) {
	return f.deleteFn(ctx, id)
}

func (f *fakeLinkStore) DeleteWithSnapshot(ctx context.Context, linkID, adoptionID int64, evaluate func(eventCount int, lastEventDate *time.Time) bool) (bool, *models.ComplianceSnapshot, error) {
	return f.deleteWithSnapshotFn(ctx, linkID, adoptionID, evaluate)
}

func (f *fakeLinkStore) ListByAdoption(ctx context.Context, adoptionID int64) ([]models.AdoptionEventLink, error) {
	return f.listByAdoptionFn(ctx, adoptionID)
}

func (f *fakeLinkStore) ListByEvent(ctx context.Context, eventID int64) ([]models.AdoptionEventLink, error) {
	return f.listByEventFn(ctx, eventID)
}

func (f *fakeLinkStore) IsLinked(ctx context.Context, adoptionID, eventID int64) (bool, error) {
	return f.isLinkedFn(ctx, adoptionID, eventID)
}

type fakeTeamStore struct {
	getByIDFn func(ctx context.Context, id int64) (*models.Team, error)
}

func (f *fakeTeamStore) GetByID(ctx context.Context, id int64) (*models.Team, error) {
	return f.getByIDFn(ctx, id)
}

type fakeEventStore struct {
	getByIDFn func(ctx context.Context, id int64) (*models.CleanupEvent, error)
}

func (f *fakeEventStore) GetByID(ctx context.Context, id int64) (*models.CleanupEvent, error) {
	return f.getByIDFn(ctx, id)
}

type fakeCommunityStore struct {
	getByIDFn func(ctx context.Context, id int64) (*models.Community, error)
}

func (f *fakeCommunityStore) GetByID(ctx context.Context, id int64) (*models.Community, error) {
	return f.getByIDFn(ctx, id)
}

// fakePublisher records published domain events in order.
type fakePublisher struct {
	events []notifications.DomainEvent
}

func (f *fakePublisher) Publish(event notifications.DomainEvent) {
	f.events = append(f.events, event)
}
