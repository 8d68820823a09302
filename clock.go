package ember

import "time"

// Clock supplies monotonic time in milliseconds. Scenes never read the wall
// clock directly, so tests can drive the engine deterministically.
type Clock interface {
	Now() float64
}

// SystemClock reads the process monotonic clock.
type SystemClock struct {
	start time.Time
}

// NewSystemClock returns a clock whose zero is the moment of creation.
func NewSystemClock() *SystemClock {
	return &SystemClock{start: time.Now()}
}

// Now returns milliseconds since the clock was created.
func (c *SystemClock) Now() float64 {
	return float64(time.Since(c.start)) / float64(time.Millisecond)
}

// ManualClock is a hand-advanced clock for tests and scripted playback.
type ManualClock struct {
	ms float64
}

// Now returns the current manual time in milliseconds.
func (c *ManualClock) Now() float64 { return c.ms }

// Advance moves the clock forward by ms milliseconds.
func (c *ManualClock) Advance(ms float64) { c.ms += ms }

// Set jumps the clock to an absolute time.
func (c *ManualClock) Set(ms float64) { c.ms = ms }
