package ember

// FPSMeter maintains a rolling average of observed frame throughput. The
// frame driver feeds it every raw callback; the quality controller compares
// the average against the target rate.
type FPSMeter struct {
	samples ring[float64]
	last    float64
	primed  bool
}

// NewFPSMeter creates a meter averaging over the given number of frames.
func NewFPSMeter(window int) *FPSMeter {
	if window < 1 {
		window = 30
	}
	return &FPSMeter{samples: newRing[float64](window)}
}

// Tick records one observed frame at the given time (ms).
func (m *FPSMeter) Tick(now float64) {
	if m.primed {
		dt := now - m.last
		if dt > 0 {
			m.samples.Push(1000 / dt)
		}
	}
	m.last = now
	m.primed = true
}

// Average returns the rolling average FPS, or 0 before any samples exist.
func (m *FPSMeter) Average() float64 {
	n := m.samples.Len()
	if n == 0 {
		return 0
	}
	sum := 0.0
	for i := 0; i < n; i++ {
		sum += m.samples.At(i)
	}
	return sum / float64(n)
}

// Reset forgets all samples, e.g. across a pause, so the stall while hidden
// does not read as a frame-rate collapse on resume.
func (m *FPSMeter) Reset() {
	m.samples.Clear()
	m.primed = false
}

// Quality control thresholds. Degrade when sustained throughput falls below
// 80% of target; recover (quality only, never counts) above 95%.
const (
	qualityCheckInterval = 60 // accepted frames between evaluations
	degradeBelowRatio    = 0.80
	recoverAboveRatio    = 0.95
	degradeFactor        = 0.9
	recoverFactor        = 1.1
)

// FrameScheduler gates one scene to its target frame interval and drives the
// shared quality controller. The underlying redraw-request cadence is
// platform-driven and uncontrolled; ShouldRender decouples the simulation
// rate from it. Each scene owns its own scheduler; Tuning and the meter are
// shared process-wide.
type FrameScheduler struct {
	interval  float64 // ms between accepted frames
	targetFPS float64
	last      float64
	frames    int
	tuning    *Tuning
	meter     *FPSMeter
}

// NewFrameScheduler creates a gate for the given target rate. tuning and
// meter may be shared across schedulers; meter may be nil to disable
// adaptive quality (the gate still works).
func NewFrameScheduler(targetFPS int, tuning *Tuning, meter *FPSMeter) *FrameScheduler {
	if targetFPS < 1 {
		targetFPS = 30
	}
	return &FrameScheduler{
		interval:  1000 / float64(targetFPS),
		targetFPS: float64(targetFPS),
		tuning:    tuning,
		meter:     meter,
	}
}

// ShouldRender reports whether enough time has passed since the last
// accepted frame. On acceptance it advances the frame counter and, every
// qualityCheckInterval accepted frames, re-evaluates quality. A false return
// means the caller must skip all work this callback and wait for the next.
func (s *FrameScheduler) ShouldRender(now float64) bool {
	if now-s.last < s.interval {
		return false
	}
	s.last = now
	s.frames++
	if s.frames%qualityCheckInterval == 0 {
		s.updateQuality()
	}
	return true
}

// Interval returns the gate interval in milliseconds.
func (s *FrameScheduler) Interval() float64 { return s.interval }

// FrameCount returns the number of accepted frames.
func (s *FrameScheduler) FrameCount() int { return s.frames }

// ResetGate clears the last-render timestamp so the next poll renders
// immediately. Called on resume.
func (s *FrameScheduler) ResetGate() { s.last = 0 }

// updateQuality compares observed throughput against the target and adjusts
// the shared tuning. Degradation shrinks both quality and entity counts;
// recovery raises quality only. Counts regrowing would oscillate: the load
// that shrank them would come straight back.
func (s *FrameScheduler) updateQuality() {
	if s.tuning == nil || s.meter == nil {
		return
	}
	avg := s.meter.Average()
	if avg <= 0 {
		return
	}
	switch {
	case avg < s.targetFPS*degradeBelowRatio:
		s.tuning.degrade(degradeFactor)
	case avg > s.targetFPS*recoverAboveRatio && s.tuning.Quality < maxQuality:
		s.tuning.recover(recoverFactor)
	}
}
