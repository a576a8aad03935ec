package models

import "time"

// AreaType classifies the kind of geographic unit a team can adopt.
type AreaType string

// Area types
const (
	AreaTypePark           AreaType = "PARK"
	AreaTypeSchool         AreaType = "SCHOOL"
	AreaTypeTrail          AreaType = "TRAIL"
	AreaTypeStreet         AreaType = "STREET"
	AreaTypeHighway        AreaType = "HIGHWAY"
	AreaTypeHighwaySection AreaType = "HIGHWAY_SECTION"
	AreaTypeInterchange    AreaType = "INTERCHANGE"
	AreaTypeWaterway       AreaType = "WATERWAY"
	AreaTypeCityBlock      AreaType = "CITY_BLOCK"
	AreaTypeSpot           AreaType = "SPOT"
)

// AreaStatus is the adoption availability of an area.
type AreaStatus string

// Area statuses
const (
	AreaStatusAvailable   AreaStatus = "AVAILABLE"
	AreaStatusAdopted     AreaStatus = "ADOPTED"
	AreaStatusUnavailable AreaStatus = "UNAVAILABLE"
)

// AdoptableArea represents a named geographic unit a team can commit to
// maintaining. Areas are never hard-deleted, only deactivated. Status is
// mutated exclusively by the adoption approval path; the version column is
// the optimistic-concurrency token guarding that mutation.
type AdoptableArea struct {
	ID                   int64      `json:"id" db:"id"`
	CommunityID          int64      `json:"communityId" db:"community_id"`
	Name                 string     `json:"name" db:"name"`
	AreaType             AreaType   `json:"areaType" db:"area_type"`
	Status               AreaStatus `json:"status" db:"status"`
	AllowCoAdoption      bool       `json:"allowCoAdoption" db:"allow_co_adoption"`
	CleanupFrequencyDays int        `json:"cleanupFrequencyDays" db:"cleanup_frequency_days"`
	MinEventsPerYear     int        `json:"minEventsPerYear" db:"min_events_per_year"`
	SafetyRequirements   string     `json:"safetyRequirements,omitempty" db:"safety_requirements"`
	IsActive             bool       `json:"isActive" db:"is_active"`
	Version              int        `json:"-" db:"version"`
	CreatedAt            time.Time  `json:"createdAt" db:"created_at"`
	UpdatedAt            time.Time  `json:"updatedAt" db:"updated_at"`
}
