package compliance

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

var now = time.Date(2025, 6, 15, 10, 30, 0, 0, time.UTC)

func daysAgo(n int) *time.Time {
	t := now.AddDate(0, 0, -n)
	return &t
}

func TestEvaluate_NoEvents(t *testing.T) {
	tests := []struct {
		name      string
		start     *time.Time
		compliant bool
		atRisk    bool
	}{
		{"no start date cannot be judged", nil, true, false},
		{"start today", daysAgo(0), true, false},
		{"inside first-event grace", daysAgo(60), true, false},
		{"entering at-risk window", daysAgo(76), true, true},
		{"last at-risk day", daysAgo(89), true, true},
		{"grace boundary day is compliant but past warning", daysAgo(90), true, false},
		{"one day past grace is delinquent", daysAgo(91), false, false},
		{"long delinquent", daysAgo(200), false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Evaluate(Input{AdoptionStartDate: tt.start}, now)
			assert.Equal(t, tt.compliant, got.IsCompliant)
			assert.Equal(t, tt.atRisk, got.IsAtRisk)
		})
	}
}

func TestEvaluate_WithEvents(t *testing.T) {
	tests := []struct {
		name      string
		lastEvent *time.Time
		frequency int
		compliant bool
		atRisk    bool
	}{
		{"event today", daysAgo(0), 90, true, false},
		{"well inside cadence", daysAgo(30), 90, true, false},
		{"at-risk ten days before deadline", daysAgo(80), 90, true, true},
		{"day before deadline", daysAgo(89), 90, true, true},
		{"deadline day inside ongoing grace", daysAgo(90), 90, true, false},
		{"last day of ongoing grace", daysAgo(120), 90, true, false},
		{"past ongoing grace is delinquent", daysAgo(121), 90, false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Evaluate(Input{LastEventDate: tt.lastEvent, CleanupFrequencyDays: tt.frequency}, now)
			assert.Equal(t, tt.compliant, got.IsCompliant)
			assert.Equal(t, tt.atRisk, got.IsAtRisk)
		})
	}
}

func TestEvaluate_DefaultFrequency(t *testing.T) {
	// Zero frequency falls back to the 90-day default.
	got := Evaluate(Input{LastEventDate: daysAgo(100)}, now)
	assert.True(t, got.IsCompliant)

	got = Evaluate(Input{LastEventDate: daysAgo(121)}, now)
	assert.False(t, got.IsCompliant)
}

func TestEvaluate_ShortCadence(t *testing.T) {
	// 30-day cadence: at risk from day 16, delinquent past day 60.
	got := Evaluate(Input{LastEventDate: daysAgo(20), CleanupFrequencyDays: 30}, now)
	assert.True(t, got.IsCompliant)
	assert.True(t, got.IsAtRisk)

	got = Evaluate(Input{LastEventDate: daysAgo(61), CleanupFrequencyDays: 30}, now)
	assert.False(t, got.IsCompliant)
	assert.False(t, got.IsAtRisk)
}

func TestEvaluate_AtRiskNeverAppliesOnceDelinquent(t *testing.T) {
	got := Evaluate(Input{LastEventDate: daysAgo(121), CleanupFrequencyDays: 90}, now)
	assert.False(t, got.IsCompliant)
	assert.False(t, got.IsAtRisk)
}

func TestDaysBetween_IgnoresTimeOfDay(t *testing.T) {
	from := time.Date(2025, 6, 14, 23, 59, 0, 0, time.UTC)
	to := time.Date(2025, 6, 15, 0, 1, 0, 0, time.UTC)
	assert.Equal(t, 1, DaysBetween(from, to))

	sameDay := time.Date(2025, 6, 15, 8, 0, 0, 0, time.UTC)
	assert.Equal(t, 0, DaysBetween(sameDay, to))
}
