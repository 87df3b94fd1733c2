package engine

import "sync/atomic"

// DefaultStepFraction is the simulation time advanced per dynamics step.
const DefaultStepFraction = 0.1

// Clock is the monotonic simulation clock.
//
// Time is derived from a step counter rather than accumulated as a
// float, so repeated advancement never drifts and replaying the same
// number of steps always lands on the same instant.
//
// Thread-safety: Clock is safe for concurrent reads (atomic counter),
// though the engine's single-writer design means only one goroutine
// advances it.
type Clock struct {
	steps atomic.Int64
	dt    float64
}

// NewClock creates a clock at time zero advancing by dt per step.
func NewClock(dt float64) *Clock {
	return &Clock{dt: dt}
}

// Now returns the current simulation time.
func (c *Clock) Now() float64 {
	return float64(c.steps.Load()) * c.dt
}

// Advance moves the clock one step forward and returns the new time.
func (c *Clock) Advance() float64 {
	return float64(c.steps.Add(1)) * c.dt
}

// Steps returns the number of steps taken.
func (c *Clock) Steps() int64 {
	return c.steps.Load()
}
