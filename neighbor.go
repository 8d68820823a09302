package ember

// NeighborQuery answers "which linked particles are near this point". Two
// strategies exist behind the one interface: a uniform-grid index and a
// linear scan fallback. Both return candidates for the same logical result
// set — everything within the radius — differing only in cost and in how
// many false positives the caller's exact distance check has to discard.
// The scene picks a strategy at construction; the hot loop never branches
// on configuration.
type NeighborQuery interface {
	// Rebuild re-registers every particle's current position. Called once
	// per tick after the update pass; results are never stale.
	Rebuild(parts []LinkedParticle)
	// Near returns candidate indices around (x, y). The slice is reused on
	// the next call.
	Near(x, y, radius float64) []int
}

// gridNeighbors backs NeighborQuery with a SpatialIndex rebuilt every tick.
type gridNeighbors struct {
	index *SpatialIndex
}

func newGridNeighbors(width, height, cellSize float64) *gridNeighbors {
	return &gridNeighbors{index: NewSpatialIndex(width, height, cellSize)}
}

func (g *gridNeighbors) Rebuild(parts []LinkedParticle) {
	g.index.Clear()
	for i := range parts {
		g.index.Insert(i, parts[i].x, parts[i].y)
	}
}

func (g *gridNeighbors) Near(x, y, radius float64) []int {
	return g.index.QueryNear(x, y, radius)
}

// linearNeighbors is the O(n) fallback used when spatial optimization is
// disabled. It pre-filters by exact distance, so it returns no false
// positives; callers re-check anyway, which is harmless.
type linearNeighbors struct {
	parts   []LinkedParticle
	scratch []int
}

func newLinearNeighbors() *linearNeighbors {
	return &linearNeighbors{scratch: make([]int, 0, 64)}
}

func (l *linearNeighbors) Rebuild(parts []LinkedParticle) {
	l.parts = parts
}

func (l *linearNeighbors) Near(x, y, radius float64) []int {
	l.scratch = l.scratch[:0]
	r2 := radius * radius
	for i := range l.parts {
		dx := l.parts[i].x - x
		dy := l.parts[i].y - y
		if dx*dx+dy*dy <= r2 {
			l.scratch = append(l.scratch, i)
		}
	}
	return l.scratch
}
