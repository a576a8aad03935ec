package clock

import "time"

// Clock provides the current time. Compliance arithmetic depends on
// wall-clock time, so every consumer takes a Clock instead of calling
// time.Now directly.
type Clock interface {
	Now() time.Time
}

// SystemClock reads the real wall clock.
type SystemClock struct{}

// Now returns the current time.
func (SystemClock) Now() time.Time {
	return time.Now()
}

// Fixed is a Clock frozen at a single instant.
type Fixed struct {
	Instant time.Time
}

// Now returns the frozen instant.
func (f Fixed) Now() time.Time {
	return f.Instant
}

// FixedAt creates a Fixed clock at the given instant.
func FixedAt(t time.Time) Fixed {
	return Fixed{Instant: t}
}
