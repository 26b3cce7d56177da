package timing

import (
	"sync"
	"time"
)

var defaultClock = NewClock()

// Clock tracks elapsed time between ticks. While paused, ticks report a zero
// time delta so that objects created or updated during the pause do not
// observe the paused interval.
type Clock struct {
	mu sync.Mutex

	now      func() time.Time
	paused   bool
	lastTick time.Time
}

// Get the process-wide clock.
func Default() *Clock {
	return defaultClock
}

// Create a new clock.
func NewClock() *Clock {
	return newClockWithSource(time.Now)
}

func newClockWithSource(now func() time.Time) *Clock {
	return &Clock{
		now:      now,
		lastTick: now(),
	}
}

// Returns true if the clock is paused.
func (c *Clock) IsPaused() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.paused
}

// Set the pause state and return the previous one. Callers that pause for
// the duration of an operation should restore the returned state instead of
// unpausing unconditionally, as the operation may be nested:
//
//	defer clock.Pause(clock.Pause(true))
func (c *Clock) Pause(pause bool) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	prev := c.paused
	if prev && !pause {
		// Swallow the time spent while paused.
		c.lastTick = c.now()
	}
	c.paused = pause
	return prev
}

// Advance the clock and return the time elapsed since the previous tick. A
// paused clock always returns 0.
func (c *Clock) Tick() time.Duration {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now()
	if c.paused {
		c.lastTick = now
		return 0
	}
	delta := now.Sub(c.lastTick)
	c.lastTick = now
	return delta
}
