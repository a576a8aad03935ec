package models

import "time"

// AdoptionStatus is the application lifecycle state of an adoption.
type AdoptionStatus string

// Adoption statuses. Transitions are one-way: Pending to Approved or
// Pending to Rejected, nothing else.
const (
	AdoptionStatusPending  AdoptionStatus = "PENDING"
	AdoptionStatusApproved AdoptionStatus = "APPROVED"
	AdoptionStatusRejected AdoptionStatus = "REJECTED"
)

// Adoption is a team's application for, and once approved the ongoing
// contract to maintain, one adoptable area.
//
// EventCount, LastEventDate and IsCompliant are a materialized view of the
// adoption event ledger. They are written only by the ledger's recompute
// step (and the approval step's initial defaults); nothing else may set them.
type Adoption struct {
	ID                int64          `json:"id" db:"id"`
	TeamID            int64          `json:"teamId" db:"team_id"`
	AreaID            int64          `json:"areaId" db:"area_id"`
	Status            AdoptionStatus `json:"status" db:"status"`
	ApplicationDate   time.Time      `json:"applicationDate" db:"application_date"`
	ApplicationNotes  string         `json:"applicationNotes,omitempty" db:"application_notes"`
	ReviewedByUserID  *int64         `json:"reviewedByUserId,omitempty" db:"reviewed_by_user_id"`
	ReviewedDate      *time.Time     `json:"reviewedDate,omitempty" db:"reviewed_date"`
	RejectionReason   *string        `json:"rejectionReason,omitempty" db:"rejection_reason"`
	AdoptionStartDate *time.Time     `json:"adoptionStartDate,omitempty" db:"adoption_start_date"`
	AdoptionEndDate   *time.Time     `json:"adoptionEndDate,omitempty" db:"adoption_end_date"`
	EventCount        int            `json:"eventCount" db:"event_count"`
	LastEventDate     *time.Time     `json:"lastEventDate,omitempty" db:"last_event_date"`
	IsCompliant       bool           `json:"isCompliant" db:"is_compliant"`
	CreatedAt         time.Time      `json:"createdAt" db:"created_at"`
	UpdatedAt         time.Time      `json:"updatedAt" db:"updated_at"`

	// Related entities
	TeamName string         `json:"teamName,omitempty" db:"team_name"`
	Area     *AdoptableArea `json:"area,omitempty"`
}

// ComplianceSnapshot is the ledger's materialized view of one adoption:
// the credited event count, the most recent event date and the compliance
// bit derived from them.
type ComplianceSnapshot struct {
	EventCount    int
	LastEventDate *time.Time
	IsCompliant   bool
}

// IsActiveContract reports whether an approved adoption is still under its
// maintenance obligation at the given instant.
func (a *Adoption) IsActiveContract(now time.Time) bool {
	if a.Status != AdoptionStatusApproved {
		return false
	}
	return a.AdoptionEndDate == nil || !a.AdoptionEndDate.Before(now)
}
