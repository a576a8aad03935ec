package notifications

import "time"

// EventKind names a workflow or ledger transition the engine announces.
type EventKind string

// Event kinds
const (
	EventApplicationSubmitted EventKind = "APPLICATION_SUBMITTED"
	EventApplicationApproved  EventKind = "APPLICATION_APPROVED"
	EventApplicationRejected  EventKind = "APPLICATION_REJECTED"
	EventComplianceChanged    EventKind = "COMPLIANCE_CHANGED"
)

// DomainEvent is the message the workflow and ledger emit on state
// transitions. Delivery is best-effort and fully decoupled from the
// transition that produced the event.
type DomainEvent struct {
	Kind        EventKind
	AdoptionID  int64
	TeamID      int64
	AreaID      int64
	CommunityID int64
	TeamName    string
	AreaName    string
	Reason      string
	IsCompliant bool
	OccurredAt  time.Time
}

// Publisher is the side the workflow and ledger see.
type Publisher interface {
	Publish(event DomainEvent)
}
