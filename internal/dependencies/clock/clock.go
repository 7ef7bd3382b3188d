package clock

import "time"

// Clock provides the current time and can be mocked for testing.
// Event timestamps come from here so replay order is reproducible in tests.
type Clock interface {
	Now() time.Time
}

// RealClock implements Clock using the system clock, normalised to UTC
type RealClock struct{}

// New creates a new RealClock
func New() *RealClock {
	return &RealClock{}
}

// Now returns the current UTC time
func (c *RealClock) Now() time.Time {
	return time.Now().UTC()
}
