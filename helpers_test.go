package ember

import (
	"math"
	"testing"
)

func assertNear(t *testing.T, name string, got, want float64) {
	t.Helper()
	if math.Abs(got-want) > 1e-6 {
		t.Errorf("%s = %f, want %f", name, got, want)
	}
}

// drawOp records one canvas call for assertion.
type drawOp struct {
	kind           string // fade, rect, circle, line, text
	x0, y0, x1, y1 float64
	r              float64
	text           string
	color          Color
}

// recordingCanvas captures draw calls instead of rendering, so scene tests
// run without a GPU.
type recordingCanvas struct {
	w, h    int
	scale   float64
	ops     []drawOp
	resizes int
}

func newRecordingCanvas(w, h int) *recordingCanvas {
	return &recordingCanvas{w: w, h: h, scale: 1}
}

func (c *recordingCanvas) Size() (int, int) { return c.w, c.h }
func (c *recordingCanvas) Scale() float64   { return c.scale }

func (c *recordingCanvas) Resize(w, h int) {
	c.w, c.h = w, h
	c.resizes++
}

func (c *recordingCanvas) FadeFill(col Color) {
	c.ops = append(c.ops, drawOp{kind: "fade", color: col})
}

func (c *recordingCanvas) FillRect(x, y, w, h float64, col Color) {
	c.ops = append(c.ops, drawOp{kind: "rect", x0: x, y0: y, x1: x + w, y1: y + h, color: col})
}

func (c *recordingCanvas) FillCircle(x, y, r float64, col Color) {
	c.ops = append(c.ops, drawOp{kind: "circle", x0: x, y0: y, r: r, color: col})
}

func (c *recordingCanvas) StrokeLine(x0, y0, x1, y1, w float64, col Color) {
	c.ops = append(c.ops, drawOp{kind: "line", x0: x0, y0: y0, x1: x1, y1: y1, color: col})
}

func (c *recordingCanvas) FillText(s string, x, y, size float64, col Color) {
	c.ops = append(c.ops, drawOp{kind: "text", x0: x, y0: y, text: s, color: col})
}

func (c *recordingCanvas) count(kind string) int {
	n := 0
	for _, op := range c.ops {
		if op.kind == kind {
			n++
		}
	}
	return n
}

func (c *recordingCanvas) reset() { c.ops = c.ops[:0] }

// testPump is a deterministic FrameRequester: callbacks queue until the test
// dispatches a frame at an explicit time.
type testPump struct {
	queue []*pumpReq
}

type pumpReq struct {
	fn        func(now float64)
	cancelled bool
}

func (p *testPump) Request(fn func(now float64)) func() {
	req := &pumpReq{fn: fn}
	p.queue = append(p.queue, req)
	return func() { req.cancelled = true }
}

// Dispatch runs callbacks queued before this call; requests made during the
// callbacks land in the next batch.
func (p *testPump) Dispatch(now float64) {
	batch := p.queue
	p.queue = nil
	for _, req := range batch {
		if !req.cancelled {
			req.fn(now)
		}
	}
}

// pending counts live queued requests.
func (p *testPump) pending() int {
	n := 0
	for _, req := range p.queue {
		if !req.cancelled {
			n++
		}
	}
	return n
}

// stubScene counts Scene calls and can panic on demand.
type stubScene struct {
	name           string
	resets         int
	advances       int
	draws          int
	reclaims       int
	teardowns      int
	replacedCanvas Canvas
	panicOnAdvance bool
}

func (s *stubScene) Name() string { return s.name }
func (s *stubScene) Reset()       { s.resets++ }

func (s *stubScene) Advance(now float64) {
	s.advances++
	if s.panicOnAdvance {
		panic("stub fault")
	}
}

func (s *stubScene) Draw(now float64)       { s.draws++ }
func (s *stubScene) Reclaim()               { s.reclaims++ }
func (s *stubScene) ReplaceCanvas(c Canvas) { s.replacedCanvas = c }
func (s *stubScene) Teardown()              { s.teardowns++ }

// fixedPointer always reports the same position.
type fixedPointer struct {
	x, y float64
	ok   bool
}

func (f fixedPointer) Pointer() (float64, float64, bool) { return f.x, f.y, f.ok }
