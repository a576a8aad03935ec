// Package compliance derives an adoption's compliance status from the time
// elapsed since its last credited cleanup event, measured against the area's
// required cleanup cadence. It is a pure function of its inputs and an
// explicit "now"; it never touches storage.
package compliance

import "time"

// Policy constants, in whole calendar days.
const (
	// DefaultFrequencyDays applies when an area does not specify a cadence.
	DefaultFrequencyDays = 90
	// FirstEventGraceDays is how long a newly approved adoption may go
	// before its first event without becoming delinquent.
	FirstEventGraceDays = 90
	// OngoingGraceDays is added to the required frequency once events exist.
	OngoingGraceDays = 30
	// AtRiskWindowDays is the look-ahead warning window before a deadline.
	AtRiskWindowDays = 14
)

// Input carries the three facts the calculator depends on.
type Input struct {
	// AdoptionStartDate is when the adoption contract began. Nil means the
	// clock has not started and the adoption cannot yet be judged.
	AdoptionStartDate *time.Time
	// LastEventDate is the date of the most recent linked event, nil when no
	// events have been credited.
	LastEventDate *time.Time
	// CleanupFrequencyDays is the area's required cadence. Zero or negative
	// falls back to DefaultFrequencyDays.
	CleanupFrequencyDays int
}

// Status is the derived three-tier result. AtRisk is a look-ahead warning and
// is only ever set while still compliant.
type Status struct {
	IsCompliant bool
	IsAtRisk    bool
}

// Evaluate applies the compliance decision table at the given instant.
func Evaluate(in Input, now time.Time) Status {
	freq := in.CleanupFrequencyDays
	if freq <= 0 {
		freq = DefaultFrequencyDays
	}

	if in.LastEventDate == nil {
		if in.AdoptionStartDate == nil {
			// No start date recorded, nothing to measure against.
			return Status{IsCompliant: true}
		}
		days := DaysBetween(*in.AdoptionStartDate, now)
		if days > FirstEventGraceDays {
			return Status{}
		}
		return Status{
			IsCompliant: true,
			IsAtRisk:    days >= FirstEventGraceDays-AtRiskWindowDays && days < FirstEventGraceDays,
		}
	}

	days := DaysBetween(*in.LastEventDate, now)
	if days > freq+OngoingGraceDays {
		return Status{}
	}
	return Status{
		IsCompliant: true,
		IsAtRisk:    days >= freq-AtRiskWindowDays && days < freq,
	}
}

// DaysBetween counts whole calendar days from one instant to another,
// ignoring the time-of-day component of both.
func DaysBetween(from, to time.Time) int {
	fromDay := time.Date(from.Year(), from.Month(), from.Day(), 0, 0, 0, 0, time.UTC)
	toDay := time.Date(to.Year(), to.Month(), to.Day(), 0, 0, 0, 0, time.UTC)
	return int(toDay.Sub(fromDay).Hours() / 24)
}
