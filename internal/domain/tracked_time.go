package domain

import "time"

// TrackedTime is a named amount of time the user has booked out of the clock.
type TrackedTime struct {
	Description string
	Duration    time.Duration // whole seconds, never negative
}
