package ember

import "testing"

// testEngine bundles an orchestrator with its deterministic drivers.
type testEngine struct {
	orc   *SceneOrchestrator
	pump  *testPump
	clock *ManualClock
}

func newTestEngine(cfg Config, w, h int) *testEngine {
	pump := &testPump{}
	clock := &ManualClock{}
	orc := NewOrchestrator(cfg, w, h, Env{
		NewCanvas: func(w, h int) Canvas {
			return newRecordingCanvas(w, h)
		},
		Clock:  clock,
		Frames: pump.Request,
	})
	return &testEngine{orc: orc, pump: pump, clock: clock}
}

// tick advances time and dispatches one frame batch.
func (e *testEngine) tick(ms float64) {
	e.clock.Advance(ms)
	e.pump.Dispatch(e.clock.Now())
}

// run ticks at a steady cadence until the given duration has elapsed.
func (e *testEngine) run(durationMS, stepMS float64) {
	for elapsed := 0.0; elapsed < durationMS; elapsed += stepMS {
		e.tick(stepMS)
	}
}

func TestOrchestratorStartEntersIntro(t *testing.T) {
	e := newTestEngine(ConfigFor(DeviceDesktop), 800, 600)
	if e.orc.Phase() != PhaseIdle {
		t.Fatalf("phase = %v, want idle before Start", e.orc.Phase())
	}

	e.orc.Start()
	if e.orc.Phase() != PhaseIntro {
		t.Fatalf("phase = %v, want intro", e.orc.Phase())
	}
	if len(e.orc.Drift().Particles()) != 150 {
		t.Errorf("drift particles = %d, want 150", len(e.orc.Drift().Particles()))
	}
	if e.orc.Linked().Particles() != nil {
		t.Error("linked scene must not exist during the intro")
	}

	e.orc.Start() // no-op on a running engine
	if e.orc.Phase() != PhaseIntro {
		t.Error("second Start must not restart the sequence")
	}
}

func TestOrchestratorIntroHandsOffToMain(t *testing.T) {
	e := newTestEngine(ConfigFor(DeviceDesktop), 800, 600)
	e.orc.Start()

	// Past the intro duration plus the fade, the main scenes own the stage.
	e.run(introDurationMS+handoffFadeMS+200, 16)

	if e.orc.Phase() != PhaseMain {
		t.Fatalf("phase = %v, want main after intro and fade", e.orc.Phase())
	}
	if e.orc.Drift().Particles() != nil {
		t.Error("drift scene should be torn down after the handoff")
	}
	if w, h := e.orc.Drift().canvas.Size(); w != 1 || h != 1 {
		t.Errorf("drift canvas = %dx%d, want shrunk to 1x1 after the handoff", w, h)
	}
	if len(e.orc.Linked().Particles()) == 0 {
		t.Error("linked scene should be populated in the main phase")
	}
	if len(e.orc.Matrix().Columns()) == 0 {
		t.Error("matrix scene should be populated in the main phase")
	}
}

func TestOrchestratorHandoffFadesDrift(t *testing.T) {
	e := newTestEngine(ConfigFor(DeviceDesktop), 800, 600)
	e.orc.Start()

	e.run(introDurationMS+16, 16)
	if e.orc.Phase() != PhaseHandoff {
		t.Fatalf("phase = %v, want handoff right after the intro duration", e.orc.Phase())
	}

	e.run(handoffFadeMS/2, 16)
	dim := e.orc.Drift().dim
	if dim <= 0 || dim >= 1 {
		t.Errorf("dim = %f mid-fade, want strictly between 0 and 1", dim)
	}
}

func TestOrchestratorSkipJumpsToMain(t *testing.T) {
	e := newTestEngine(ConfigFor(DeviceDesktop), 800, 600)
	e.orc.Start()
	e.tick(16)

	e.orc.Skip()
	if e.orc.Phase() != PhaseMain {
		t.Fatalf("phase = %v, want main after Skip", e.orc.Phase())
	}

	// Skip in main does nothing.
	e.orc.Skip()
	if e.orc.Phase() != PhaseMain {
		t.Error("Skip outside intro/handoff must be a no-op")
	}
}

func TestOrchestratorReplayRestartsSequence(t *testing.T) {
	e := newTestEngine(ConfigFor(DeviceDesktop), 800, 600)
	e.orc.Start()
	e.orc.Skip()
	e.run(100, 16)

	e.orc.Replay()
	if e.orc.Phase() != PhaseIntro {
		t.Fatalf("phase = %v, want intro after Replay", e.orc.Phase())
	}
	if len(e.orc.Drift().Particles()) == 0 {
		t.Error("drift scene should be rebuilt on Replay")
	}
	if e.orc.Linked().Particles() != nil {
		t.Error("linked scene should be torn down on Replay")
	}

	// The replayed sequence hands off again on its own.
	e.run(introDurationMS+handoffFadeMS+200, 16)
	if e.orc.Phase() != PhaseMain {
		t.Errorf("phase = %v, want main after the replayed intro", e.orc.Phase())
	}
}

func TestOrchestratorDestroyIsTerminal(t *testing.T) {
	e := newTestEngine(ConfigFor(DeviceDesktop), 800, 600)
	e.orc.Start()
	e.orc.Skip()

	e.orc.Destroy()
	if e.orc.Phase() != PhaseDestroyed {
		t.Fatalf("phase = %v, want destroyed", e.orc.Phase())
	}
	for i, c := range e.orc.Canvases() {
		w, h := c.Size()
		if w != 1 || h != 1 {
			t.Errorf("canvas %d = %dx%d, want shrunk to 1x1", i, w, h)
		}
	}
	if e.orc.Linked().Particles() != nil {
		t.Error("Destroy should drop every entity")
	}

	// Terminal: nothing revives it.
	e.orc.Destroy()
	e.orc.Replay()
	e.orc.SetHidden(false)
	e.tick(16)
	if e.orc.Phase() != PhaseDestroyed {
		t.Error("destroyed engine must stay destroyed")
	}
	if e.pump.pending() != 0 {
		t.Errorf("pending = %d, destroyed engine must not schedule frames", e.pump.pending())
	}
}

func TestOrchestratorResizeRebuildsScenes(t *testing.T) {
	e := newTestEngine(ConfigFor(DeviceDesktop), 800, 600)
	e.orc.Start()
	e.orc.Skip()
	e.run(100, 16)

	e.orc.Resize(1200, 900)
	for i, c := range e.orc.Canvases() {
		w, h := c.Size()
		if w != 1200 || h != 900 {
			t.Errorf("canvas %d = %dx%d, want 1200x900", i, w, h)
		}
	}
	for i, p := range e.orc.Linked().Particles() {
		if p.x < 0 || p.x > 1200 || p.y < 0 || p.y > 900 {
			t.Errorf("particle %d at (%f, %f) outside the new bounds", i, p.x, p.y)
		}
	}
}

func TestOrchestratorNilCanvasDegradesToZeroEntities(t *testing.T) {
	pump := &testPump{}
	clock := &ManualClock{}
	orc := NewOrchestrator(ConfigFor(DeviceDesktop), 800, 600, Env{
		Clock:  clock,
		Frames: pump.Request,
	})
	orc.Start()
	clock.Advance(16)
	pump.Dispatch(clock.Now())

	if orc.Phase() != PhaseIntro {
		t.Fatalf("phase = %v, the sequence still runs without a surface", orc.Phase())
	}
	if len(orc.Drift().Particles()) != 0 {
		t.Errorf("drift particles = %d, want 0 without a surface", len(orc.Drift().Particles()))
	}

	orc.Skip()
	if len(orc.Linked().Particles()) != 0 || len(orc.Matrix().Columns()) != 0 {
		t.Error("main scenes must stay empty without a surface")
	}
}

func TestOrchestratorColumnCountFromWidth(t *testing.T) {
	e := newTestEngine(ConfigFor(DeviceDesktop), 800, 600) // FontSize 16
	if got := e.orc.Tuning().ColumnCount; got != 50 {
		t.Errorf("ColumnCount = %d, want 800/16 = 50", got)
	}
}

func TestOrchestratorNormalizesConfig(t *testing.T) {
	cfg := ConfigFor(DeviceDesktop)
	cfg.TargetFPS = -5
	e := newTestEngine(cfg, 800, 600)
	e.orc.Start()
	e.tick(16)
	if e.orc.Phase() != PhaseIntro {
		t.Error("engine should run on a clamped config")
	}
}
