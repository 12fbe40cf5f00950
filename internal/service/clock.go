package service

import (
	"time"
)

// Clock supplies the current time. Every lifecycle decision takes the time
// as an explicit argument, so handlers read the clock exactly once per
// request and tests can pin it.
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time {
	return time.Now()
}

// SystemClock returns a Clock backed by the wall clock.
func SystemClock() Clock {
	return systemClock{}
}

// FixedClock is a Clock stuck at a single instant.
type FixedClock struct {
	Time time.Time
}

func (c FixedClock) Now() time.Time {
	return c.Time
}
