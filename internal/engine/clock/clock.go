// Package clock provides the game loop clock.
//
// Real time is read on demand and moves continuously. Frame time only
// moves in BeginNewFrame, so every Update in a frame sees the same delta.
package clock

import (
	"time"

	"github.com/loov/hrtime"
)

// Clock tracks time since start and the duration of the previous frame.
type Clock struct {
	now   func() time.Duration
	start time.Duration

	deltaSeconds        float32
	elapsedToFrameStart float32
}

// New creates a clock backed by the high-resolution timer.
func New() *Clock {
	return NewWithSource(hrtime.Now)
}

// NewWithSource creates a clock reading time from now.
func NewWithSource(now func() time.Duration) *Clock {
	return &Clock{now: now, start: now()}
}

// SecondsSinceStart returns real time since the clock was created.
func (c *Clock) SecondsSinceStart() float32 {
	return float32((c.now() - c.start).Seconds())
}

// BeginNewFrame marks the start of a frame and records the previous frame's duration.
func (c *Clock) BeginNewFrame() {
	elapsed := c.SecondsSinceStart()
	c.deltaSeconds = elapsed - c.elapsedToFrameStart
	c.elapsedToFrameStart = elapsed
}

// DeltaSeconds returns the duration of the previous frame.
func (c *Clock) DeltaSeconds() float32 {
	return c.deltaSeconds
}

// SecondsElapsed returns the time from start to the current frame.
func (c *Clock) SecondsElapsed() float32 {
	return c.elapsedToFrameStart
}
