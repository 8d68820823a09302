package ember

import "fmt"

// DebugOverlay renders the engine's health readout — rolling FPS, quality
// scalar, live entity counts, phase — onto a canvas corner. The text is
// refreshed at most every ~0.5 seconds to stay readable.
type DebugOverlay struct {
	orc    *SceneOrchestrator
	lastAt float64
	line   string
}

// NewDebugOverlay creates an overlay bound to an orchestrator.
func NewDebugOverlay(orc *SceneOrchestrator) *DebugOverlay {
	return &DebugOverlay{orc: orc}
}

// Draw refreshes the readout if stale and paints it at the top-left of the
// given canvas.
func (d *DebugOverlay) Draw(canvas Canvas, now float64) {
	if now-d.lastAt >= 500 || d.line == "" {
		d.lastAt = now
		t := d.orc.Tuning().Snapshot()
		fps := d.orc.driftRun.meter.Average()
		if d.orc.Phase() == PhaseMain {
			fps = d.orc.linkedRun.meter.Average()
		}
		d.line = fmt.Sprintf("FPS: %.1f  Q: %.2f  drift: %d  link: %d  cols: %d  [%s]",
			fps, t.Quality, t.DriftCount, t.LinkCount, t.ColumnCount, d.orc.Phase())
	}
	canvas.FillRect(2, 2, float64(8*len(d.line))*0.55+8, 16, Color{A: 0.5})
	canvas.FillText(d.line, 6, 4, 11, ColorWhite)
}
