package dto

import "time"

// SubmitAdoptionRequest is the payload for submitting an adoption application.
type SubmitAdoptionRequest struct {
	TeamID int64  `json:"teamId" binding:"required" example:"12"`
	AreaID int64  `json:"areaId" binding:"required" example:"7"`
	Notes  string `json:"notes" example:"We walk this trail every Saturday morning."`
}

// RejectAdoptionRequest is the payload for rejecting a pending application.
type RejectAdoptionRequest struct {
	Reason string `json:"reason" binding:"required" example:"Area is scheduled for construction this year."`
}

// LinkEventRequest is the payload for crediting a completed cleanup event to
// an adoption.
type LinkEventRequest struct {
	EventID int64  `json:"eventId" binding:"required" example:"301"`
	Notes   string `json:"notes" example:"Quarterly cleanup, 14 bags collected."`
}

// ComplianceStatsResponse aggregates compliance over a community's active
// approved adoptions.
type ComplianceStatsResponse struct {
	CommunityID         int64  `json:"communityId" example:"3"`
	CommunityName       string `json:"communityName" example:"City of Redmond"`
	TotalAdoptions      int    `json:"totalAdoptions" example:"24"`
	CompliantAdoptions  int    `json:"compliantAdoptions" example:"19"`
	AtRiskAdoptions     int    `json:"atRiskAdoptions" example:"4"`
	DelinquentAdoptions int    `json:"delinquentAdoptions" example:"5"`
	TotalAvailableAreas int    `json:"totalAvailableAreas" example:"40"`
	AdoptedAreas        int    `json:"adoptedAreas" example:"22"`
	TotalLinkedEvents   int    `json:"totalLinkedEvents" example:"131"`
}

// AdoptionExportRow is one line of the approved-adoptions export.
type AdoptionExportRow struct {
	AdoptionID        int64      `json:"adoptionId"`
	TeamName          string     `json:"teamName"`
	AreaName          string     `json:"areaName"`
	AreaType          string     `json:"areaType"`
	ApplicationDate   time.Time  `json:"applicationDate"`
	AdoptionStartDate *time.Time `json:"adoptionStartDate,omitempty"`
	AdoptionEndDate   *time.Time `json:"adoptionEndDate,omitempty"`
	EventCount        int        `json:"eventCount"`
	LastEventDate     *time.Time `json:"lastEventDate,omitempty"`
	IsCompliant       bool       `json:"isCompliant"`
}

// AdoptionStatusResponse captures the live compliance of one adoption, used
// by the delinquency listing.
type AdoptionStatusResponse struct {
	AdoptionID    int64      `json:"adoptionId"`
	TeamID        int64      `json:"teamId"`
	TeamName      string     `json:"teamName,omitempty"`
	AreaID        int64      `json:"areaId"`
	AreaName      string     `json:"areaName,omitempty"`
	EventCount    int        `json:"eventCount"`
	LastEventDate *time.Time `json:"lastEventDate,omitempty"`
	IsCompliant   bool       `json:"isCompliant"`
	IsAtRisk      bool       `json:"isAtRisk"`
}
