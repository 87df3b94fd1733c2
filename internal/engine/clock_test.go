package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClockStartsAtZero(t *testing.T) {
	c := NewClock(DefaultStepFraction)
	assert.Equal(t, 0.0, c.Now())
	assert.Equal(t, int64(0), c.Steps())
}

func TestClockAdvance(t *testing.T) {
	c := NewClock(0.1)

	assert.InDelta(t, 0.1, c.Advance(), 1e-12)
	assert.InDelta(t, 0.2, c.Advance(), 1e-12)
	assert.Equal(t, int64(2), c.Steps())
	assert.InDelta(t, 0.2, c.Now(), 1e-12)
}

func TestClockNoDrift(t *testing.T) {
	// Time is derived from the step count, so N steps land exactly on
	// N*dt however many times the clock advanced.
	c := NewClock(0.1)
	for i := 0; i < 1000; i++ {
		c.Advance()
	}
	assert.Equal(t, float64(1000)*0.1, c.Now())
}
