package ember

import (
	"fmt"
	"os"
	"time"
)

// StatsLogger samples scene tick timings and prints an average to stderr at
// most once per interval. Wrap a Scene with it before handing the scene to
// the orchestrator; it is a development aid, not part of the render path.
type StatsLogger struct {
	interval    time.Duration
	lastLog     time.Time
	advanceTime time.Duration
	drawTime    time.Duration
	frames      int
}

// NewStatsLogger logs at most once per interval.
func NewStatsLogger(interval time.Duration) *StatsLogger {
	if interval <= 0 {
		interval = time.Second
	}
	return &StatsLogger{interval: interval}
}

// Wrap returns a Scene that times the inner scene's Advance and Draw.
func (l *StatsLogger) Wrap(inner Scene) Scene {
	return &timedScene{inner: inner, logger: l}
}

// flush logs and resets the accumulated averages when the interval is up.
func (l *StatsLogger) flush(name string) {
	l.frames++
	if time.Since(l.lastLog) < l.interval {
		return
	}
	l.lastLog = time.Now()
	n := time.Duration(l.frames)
	_, _ = fmt.Fprintf(os.Stderr,
		"[ember] %s: advance %v | draw %v | averaged over %d frames\n",
		name, l.advanceTime/n, l.drawTime/n, l.frames)
	l.advanceTime = 0
	l.drawTime = 0
	l.frames = 0
}

// timedScene forwards every Scene call, timing Advance and Draw.
type timedScene struct {
	inner  Scene
	logger *StatsLogger
}

func (t *timedScene) Name() string { return t.inner.Name() }
func (t *timedScene) Reset()       { t.inner.Reset() }

func (t *timedScene) Advance(now float64) {
	t0 := time.Now()
	t.inner.Advance(now)
	t.logger.advanceTime += time.Since(t0)
}

func (t *timedScene) Draw(now float64) {
	t0 := time.Now()
	t.inner.Draw(now)
	t.logger.drawTime += time.Since(t0)
	t.logger.flush(t.inner.Name())
}

func (t *timedScene) Reclaim()               { t.inner.Reclaim() }
func (t *timedScene) ReplaceCanvas(c Canvas) { t.inner.ReplaceCanvas(c) }
func (t *timedScene) Teardown()              { t.inner.Teardown() }
