package ember

import (
	"fmt"
	"os"
)

// FrameRequester schedules a callback for the host's next frame and returns
// a cancel function. It models requestAnimationFrame-style cooperative
// scheduling: the callback receives the current time in milliseconds and
// runs on the single logical engine thread.
type FrameRequester func(callback func(now float64)) (cancel func())

// PointerSource supplies the current pointer position in canvas-local
// coordinates. ok is false when no pointer is present (touch lifted, cursor
// outside the surface, or input disabled for the device class).
type PointerSource interface {
	Pointer() (x, y float64, ok bool)
}

// Scene is one independently scheduled simulation+draw unit. All methods run
// on the engine thread; Advance always precedes Draw within a tick.
type Scene interface {
	// Name identifies the scene in logs.
	Name() string
	// Reset discards and recreates the entity collection from the current
	// tuning snapshot. Counts are consumed here, never resized in place.
	Reset()
	// Advance mutates entities for the tick at the given time (ms).
	Advance(now float64)
	// Draw renders the current state to the scene's canvas.
	Draw(now float64)
	// Reclaim trims any auxiliary buffer that exceeded its cap.
	Reclaim()
	// ReplaceCanvas swaps in a freshly created canvas after a surface loss.
	ReplaceCanvas(c Canvas)
	// Teardown clears entities and releases per-scene structures. The scene
	// may be Reset and reused afterwards.
	Teardown()
}

// sceneRunner owns one scene's animation loop: the cancellable pending-frame
// handle, the running flag, and the frame gate. Pausing cancels the pending
// request and clears the handle; the callback re-checks running on entry so
// a cancelled-but-already-fired callback cannot touch a stopped scene.
type sceneRunner struct {
	scene     Scene
	sched     *FrameScheduler
	meter     *FPSMeter
	requester FrameRequester
	cancel    func()
	running   bool
	failed    bool
}

func newSceneRunner(scene Scene, sched *FrameScheduler, meter *FPSMeter, requester FrameRequester) *sceneRunner {
	return &sceneRunner{scene: scene, sched: sched, meter: meter, requester: requester}
}

// Start begins the loop. Starting an already-running runner is a no-op.
func (r *sceneRunner) Start() {
	if r.running || r.requester == nil {
		return
	}
	r.running = true
	r.failed = false
	r.sched.ResetGate()
	if r.meter != nil {
		r.meter.Reset()
	}
	r.schedule()
}

// Stop cancels the pending frame request and halts the loop. Stopping twice
// is a no-op.
func (r *sceneRunner) Stop() {
	r.running = false
	if r.cancel != nil {
		r.cancel()
		r.cancel = nil
	}
}

// Running reports whether the loop is active.
func (r *sceneRunner) Running() bool { return r.running }

func (r *sceneRunner) schedule() {
	r.cancel = r.requester(r.step)
}

// step is the per-callback body. The running check guards against the race
// where a cancelled callback was already in flight when Stop ran.
func (r *sceneRunner) step(now float64) {
	if !r.running {
		return
	}
	r.cancel = nil

	defer func() {
		if rec := recover(); rec != nil {
			fmt.Fprintf(os.Stderr, "[ember] scene %q failed: %v\n", r.scene.Name(), rec)
			r.failed = true
			r.Stop()
		}
	}()

	if r.meter != nil {
		r.meter.Tick(now)
	}
	if r.sched.ShouldRender(now) {
		r.scene.Advance(now)
		r.scene.Draw(now)
	}
	if r.running {
		r.schedule()
	}
}

// guardEntity isolates one entity's update or draw so a fault in it cannot
// abort the batch for the rest of the scene.
func guardEntity(scene string, i int, fn func()) {
	defer func() {
		if rec := recover(); rec != nil {
			fmt.Fprintf(os.Stderr, "[ember] %s: entity %d fault: %v\n", scene, i, rec)
		}
	}()
	fn()
}
