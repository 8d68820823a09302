package ember

import (
	"fmt"
	"os"
)

// Phase identifies which part of the intro → main sequence is active.
type Phase uint8

const (
	PhaseIdle      Phase = iota // created, not started
	PhaseIntro                  // drift field running
	PhaseHandoff                // drift field fading out
	PhaseMain                   // linked + matrix fields running
	PhaseDestroyed              // torn down; terminal
)

// String returns the lower-case phase name.
func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseIntro:
		return "intro"
	case PhaseHandoff:
		return "handoff"
	case PhaseMain:
		return "main"
	default:
		return "destroyed"
	}
}

// Sequencing timing.
const (
	introDurationMS = 3500.0
	handoffFadeMS   = 600.0
)

// Env collects the host collaborators the engine never creates itself.
type Env struct {
	// NewCanvas creates a drawing surface. Nil means no surface can be
	// acquired: the engine degrades to zero entities and draws nothing.
	NewCanvas func(w, h int) Canvas
	// Clock is the monotonic time source. Nil defaults to the system clock.
	Clock Clock
	// Frames schedules next-frame callbacks. Nil leaves every loop inert,
	// which is only useful for inspection in tests.
	Frames FrameRequester
	// Pointer supplies cursor/touch coordinates. Nil disables pointer force.
	Pointer PointerSource
}

// SceneOrchestrator owns the three scenes, sequences the intro → main
// handoff, and exposes the host-facing operations: skip, replay, visibility,
// resize, surface loss, destroy. All methods run on the engine thread.
type SceneOrchestrator struct {
	cfg    Config
	tuning *Tuning
	env    Env
	clock  Clock
	width  int
	height int

	drift  *DriftScene
	linked *LinkedScene
	matrix *MatrixScene

	driftRun  *sceneRunner
	linkedRun *sceneRunner
	matrixRun *sceneRunner

	lifecycle *Lifecycle

	phase     Phase
	introAt   float64 // time the intro phase began
	fade      *fadeTween
	seqCancel func()
	seqOn     bool
	seqLastAt float64
}

// NewOrchestrator builds the engine from a configuration and the host
// environment. The configuration is normalized (clamp-and-warn); a missing
// canvas provider degrades to the zero-entity null surface instead of
// failing.
func NewOrchestrator(cfg Config, width, height int, env Env) *SceneOrchestrator {
	cfg = cfg.Normalize()
	if env.Clock == nil {
		env.Clock = NewSystemClock()
	}
	if width < 1 {
		width = 1
	}
	if height < 1 {
		height = 1
	}

	o := &SceneOrchestrator{
		cfg:    cfg,
		env:    env,
		clock:  env.Clock,
		width:  width,
		height: height,
		phase:  PhaseIdle,
	}

	o.tuning = NewTuning(cfg)
	cols := int(float64(width) / cfg.FontSize)
	if cols < 1 {
		cols = 1
	}
	o.tuning.ColumnCount = cols

	if env.NewCanvas == nil {
		fmt.Fprintln(os.Stderr, "[ember] no canvas provider; running with zero entities")
		o.tuning.DriftCount = 0
		o.tuning.LinkCount = 0
		o.tuning.ColumnCount = 0
	}

	o.drift = NewDriftScene(cfg, o.newCanvas(), o.tuning)
	o.linked = NewLinkedScene(cfg, o.newCanvas(), o.tuning, env.Pointer)
	o.matrix = NewMatrixScene(cfg, o.newCanvas(), o.tuning)

	o.driftRun = newRunnerFor(o.drift, cfg.TargetFPS, o.tuning, env.Frames)
	o.linkedRun = newRunnerFor(o.linked, cfg.TargetFPS, o.tuning, env.Frames)
	o.matrixRun = newRunnerFor(o.matrix, cfg.TargetFPS, o.tuning, env.Frames)

	o.lifecycle = newLifecycle(o)
	return o
}

// newRunnerFor builds a scene's loop with its own meter and gate. Every
// scheduler shares the one Tuning; each scene measures its own callback
// cadence.
func newRunnerFor(scene Scene, targetFPS int, tuning *Tuning, frames FrameRequester) *sceneRunner {
	meter := NewFPSMeter(30)
	return newSceneRunner(scene, NewFrameScheduler(targetFPS, tuning, meter), meter, frames)
}

func (o *SceneOrchestrator) newCanvas() Canvas {
	if o.env.NewCanvas == nil {
		return &nullCanvas{w: o.width, h: o.height}
	}
	return o.env.NewCanvas(o.width, o.height)
}

// Start begins the intro phase. Calling Start on anything but a fresh
// orchestrator is a no-op; use Replay to run the sequence again.
func (o *SceneOrchestrator) Start() {
	if o.phase != PhaseIdle {
		return
	}
	o.enterIntro()
}

func (o *SceneOrchestrator) enterIntro() {
	o.phase = PhaseIntro
	o.introAt = o.clock.Now()
	o.fade = nil
	o.drift.canvas.Resize(o.width, o.height)
	o.drift.SetDim(1)
	o.drift.Reset()
	o.driftRun.Start()
	o.startSequencer()
}

// Skip cuts the intro short and jumps straight to the main scenes. Outside
// the intro or handoff it does nothing.
func (o *SceneOrchestrator) Skip() {
	if o.phase == PhaseIntro || o.phase == PhaseHandoff {
		o.completeHandoff()
	}
}

// Replay tears down whatever is running and restarts the sequence from the
// intro. No-op after Destroy.
func (o *SceneOrchestrator) Replay() {
	if o.phase == PhaseDestroyed || o.phase == PhaseIdle {
		return
	}
	o.pauseAll()
	for _, s := range o.scenes() {
		s.Teardown()
	}
	o.enterIntro()
}

// Destroy stops every loop, clears entities, and shrinks each surface to
// minimal size. Terminal and idempotent.
func (o *SceneOrchestrator) Destroy() {
	if o.phase == PhaseDestroyed {
		return
	}
	o.pauseAll()
	for _, s := range o.scenes() {
		s.Teardown()
	}
	for _, c := range o.canvases() {
		c.Resize(1, 1)
	}
	o.phase = PhaseDestroyed
}

// SetHidden forwards the host visibility signal to the lifecycle.
func (o *SceneOrchestrator) SetHidden(hidden bool) {
	if o.phase == PhaseDestroyed {
		return
	}
	o.lifecycle.SetHidden(hidden, o.clock.Now())
}

// Resize recreates every surface at the new logical size and rebuilds the
// active scenes. Entity collections are recreated, never patched.
func (o *SceneOrchestrator) Resize(w, h int) {
	if o.phase == PhaseDestroyed || w < 1 || h < 1 {
		return
	}
	o.width, o.height = w, h
	for _, c := range o.canvases() {
		c.Resize(w, h)
	}
	o.resetActiveScenes()
}

// SurfaceLost suspends drawing until SurfaceRestored.
func (o *SceneOrchestrator) SurfaceLost() {
	if o.phase != PhaseDestroyed {
		o.lifecycle.SurfaceLost()
	}
}

// SurfaceRestored recreates surfaces and scenes, then resumes.
func (o *SceneOrchestrator) SurfaceRestored() {
	if o.phase != PhaseDestroyed {
		o.lifecycle.SurfaceRestored()
	}
}

// Phase returns the current sequence phase.
func (o *SceneOrchestrator) Phase() Phase { return o.phase }

// Tuning returns the shared adaptive state, for overlays and tests.
func (o *SceneOrchestrator) Tuning() *Tuning { return o.tuning }

// Drift returns the intro scene.
func (o *SceneOrchestrator) Drift() *DriftScene { return o.drift }

// Linked returns the hero scene.
func (o *SceneOrchestrator) Linked() *LinkedScene { return o.linked }

// Matrix returns the matrix scene.
func (o *SceneOrchestrator) Matrix() *MatrixScene { return o.matrix }

// Canvases returns the three scene surfaces in order: drift, linked, matrix.
// Hosts composite whichever belong to the active phase.
func (o *SceneOrchestrator) Canvases() []Canvas { return o.canvases() }

// --- sequencing internals ---

func (o *SceneOrchestrator) scenes() []Scene {
	return []Scene{o.drift, o.linked, o.matrix}
}

func (o *SceneOrchestrator) canvases() []Canvas {
	return []Canvas{o.drift.canvas, o.linked.canvas, o.matrix.canvas}
}

// startSequencer begins the orchestrator's own loop, which drives phase
// timing, handoff fades, settle-delayed resumes, and buffer reclamation.
func (o *SceneOrchestrator) startSequencer() {
	if o.seqOn || o.env.Frames == nil {
		return
	}
	o.seqOn = true
	o.seqLastAt = 0
	o.seqCancel = o.env.Frames(o.seqStep)
}

func (o *SceneOrchestrator) stopSequencer() {
	o.seqOn = false
	if o.seqCancel != nil {
		o.seqCancel()
		o.seqCancel = nil
	}
}

func (o *SceneOrchestrator) seqStep(now float64) {
	if !o.seqOn {
		return
	}
	o.seqCancel = nil

	dt := 0.0
	if o.seqLastAt > 0 {
		dt = now - o.seqLastAt
	}
	o.seqLastAt = now

	o.lifecycle.checkResume(now)

	switch o.phase {
	case PhaseIntro:
		if now-o.introAt >= introDurationMS {
			o.beginHandoff()
		}
	case PhaseHandoff:
		if o.fade != nil {
			o.drift.SetDim(o.fade.value)
			if o.fade.Update(dt) {
				o.completeHandoff()
			}
		}
	}

	o.lifecycle.maybeReclaim(now)

	if o.seqOn {
		o.seqCancel = o.env.Frames(o.seqStep)
	}
}

func (o *SceneOrchestrator) beginHandoff() {
	o.phase = PhaseHandoff
	o.fade = newFadeTween(1, 0, handoffFadeMS)
}

// completeHandoff retires the intro and brings up the main scenes. The intro
// surface shrinks to minimal size so its backing memory can go.
func (o *SceneOrchestrator) completeHandoff() {
	o.driftRun.Stop()
	o.drift.Teardown()
	o.drift.canvas.Resize(1, 1)
	o.fade = nil
	o.phase = PhaseMain
	o.linked.Reset()
	o.matrix.Reset()
	o.linkedRun.Start()
	o.matrixRun.Start()
	o.startSequencer()
}

// pausePhase stops the scene loops without touching the sequencer.
func (o *SceneOrchestrator) pausePhase() {
	o.driftRun.Stop()
	o.linkedRun.Stop()
	o.matrixRun.Stop()
}

// pauseAll stops the scene loops and the sequencer, cancelling every
// outstanding frame request.
func (o *SceneOrchestrator) pauseAll() {
	o.pausePhase()
	o.stopSequencer()
}

// resumePhase restarts the loops for whichever phase is active.
func (o *SceneOrchestrator) resumePhase() {
	switch o.phase {
	case PhaseIntro, PhaseHandoff:
		o.driftRun.Start()
	case PhaseMain:
		o.linkedRun.Start()
		o.matrixRun.Start()
	}
	o.startSequencer()
}

// resetActiveScenes rebuilds the scenes of the active phase from current
// configuration and tuning.
func (o *SceneOrchestrator) resetActiveScenes() {
	switch o.phase {
	case PhaseIntro, PhaseHandoff:
		o.drift.Reset()
	case PhaseMain:
		o.linked.Reset()
		o.matrix.Reset()
	}
}

// recreateCanvases replaces every scene's surface with a freshly created one
// at the current size. Used on surface restoration.
func (o *SceneOrchestrator) recreateCanvases() {
	o.drift.ReplaceCanvas(o.newCanvas())
	o.linked.ReplaceCanvas(o.newCanvas())
	o.matrix.ReplaceCanvas(o.newCanvas())
}
