package ember

// Lifecycle timing. Reclamation is throttled so the defensive trim never
// becomes per-frame work; the settle delay gives the host a few frames to
// stabilize after a visibility change before scenes resume.
const (
	reclaimIntervalMS = 5000.0
	resumeSettleMS    = 300.0
	hiddenTeardownMS  = 30000.0
)

// Lifecycle pauses and resumes scenes on visibility changes, reclaims
// oversized entity buffers periodically, and rebuilds scenes after a drawing
// surface loss. It mutates shared state only from the engine thread.
type Lifecycle struct {
	orc           *SceneOrchestrator
	lastReclaimAt float64
	hidden        bool
	hiddenAt      float64
	surfaceLost   bool
	resumeAt      float64 // nonzero while a settle delay is pending
}

func newLifecycle(orc *SceneOrchestrator) *Lifecycle {
	return &Lifecycle{orc: orc}
}

// maybeReclaim trims every scene's auxiliary buffers back to their caps, at
// most once per reclaim interval. Normal ring eviction already enforces the
// caps; this is the backstop the sequencer drives.
func (l *Lifecycle) maybeReclaim(now float64) {
	if now-l.lastReclaimAt < reclaimIntervalMS {
		return
	}
	l.lastReclaimAt = now
	for _, s := range l.orc.scenes() {
		s.Reclaim()
	}
}

// SetHidden pauses every loop when the surface becomes hidden and schedules
// a settle-delayed resume when it becomes visible again. Both directions are
// idempotent: hiding twice or showing an already-visible engine is a no-op.
func (l *Lifecycle) SetHidden(hidden bool, now float64) {
	if hidden == l.hidden {
		return
	}
	l.hidden = hidden
	if hidden {
		l.hiddenAt = now
		l.orc.pauseAll()
		return
	}
	// Long enough in the background and the scenes were effectively
	// destroyed; rebuild them rather than resuming stale state.
	if now-l.hiddenAt >= hiddenTeardownMS {
		l.orc.resetActiveScenes()
	}
	l.resumeAt = now + resumeSettleMS
	l.orc.startSequencer()
}

// checkResume resumes the active phase once the settle delay has elapsed.
// Called by the sequencer every tick.
func (l *Lifecycle) checkResume(now float64) {
	if l.resumeAt == 0 || now < l.resumeAt {
		return
	}
	l.resumeAt = 0
	if !l.surfaceLost {
		l.orc.resumePhase()
	}
}

// SurfaceLost suspends drawing. Scene state is retained; nothing renders
// until the surface is restored.
func (l *Lifecycle) SurfaceLost() {
	if l.surfaceLost {
		return
	}
	l.surfaceLost = true
	l.orc.pausePhase()
}

// SurfaceRestored recreates every canvas from the provider and rebuilds the
// active scenes from current configuration — a full reset, not an in-place
// repair — then resumes the active phase.
func (l *Lifecycle) SurfaceRestored() {
	if !l.surfaceLost {
		return
	}
	l.surfaceLost = false
	l.orc.recreateCanvases()
	l.orc.resetActiveScenes()
	if !l.hidden {
		l.orc.resumePhase()
	}
}

// Hidden reports the current visibility state.
func (l *Lifecycle) Hidden() bool { return l.hidden }
