package ember

import (
	"math"
	"math/rand/v2"
)

// Linked field tuning. Pointer repulsion pushes particles away inside the
// influence radius and decays once they leave it; a slow ease toward each
// particle's home position anchors the field so it cannot drift away.
const (
	linkForceDecay = 0.95
	linkHomeEase   = 0.005
	linkWrapMargin = 8.0
	linkForceGain  = 2.5
	linkLineWidth  = 1.0
	linkBaseAlpha  = 0.35
	linkPointAlpha = 0.7
)

// LinkedParticle is one node of the interactive hero field: constant slow
// drift, pointer repulsion, home anchoring, toroidal wrap.
type LinkedParticle struct {
	x, y         float64
	homeX, homeY float64
	vx, vy       float64
	fx, fy       float64 // pointer force velocity, decays outside influence
	size         float64
}

func (p *LinkedParticle) reset(w, h float64) {
	p.x = rand.Float64() * w
	p.y = rand.Float64() * h
	p.homeX = p.x
	p.homeY = p.y
	p.vx = (rand.Float64() - 0.5) * 0.6
	p.vy = (rand.Float64() - 0.5) * 0.6
	p.fx = 0
	p.fy = 0
	p.size = 1.5 + rand.Float64()*1.5
}

// update applies drift, pointer force, home easing, and toroidal wrap.
// The pointer force magnitude is (R² − d²)/R² along the unit vector away
// from the pointer; outside the radius the accumulated force decays instead
// of snapping to zero, so released particles drift back critically damped.
func (p *LinkedParticle) update(w, h, px, py, influence float64, pointerOK bool) {
	p.x += p.vx
	p.y += p.vy

	if influence > 0 {
		applied := false
		if pointerOK {
			dx := p.x - px
			dy := p.y - py
			distSq := dx*dx + dy*dy
			infSq := influence * influence
			if distSq < infSq && distSq > 0 {
				dist := math.Sqrt(distSq)
				force := (infSq - distSq) / infSq
				p.fx = dx / dist * force * linkForceGain
				p.fy = dy / dist * force * linkForceGain
				applied = true
			}
		}
		if !applied {
			p.fx *= linkForceDecay
			p.fy *= linkForceDecay
		}
		p.x += p.fx
		p.y += p.fy
	}

	// Ease back toward home so the field stays anchored.
	p.x += (p.homeX - p.x) * linkHomeEase
	p.y += (p.homeY - p.y) * linkHomeEase

	// Toroidal wrap with a small margin.
	if p.x < -linkWrapMargin {
		p.x = w + linkWrapMargin
	} else if p.x > w+linkWrapMargin {
		p.x = -linkWrapMargin
	}
	if p.y < -linkWrapMargin {
		p.y = h + linkWrapMargin
	} else if p.y > h+linkWrapMargin {
		p.y = -linkWrapMargin
	}
}

// LinkedScene animates the hero field: particles plus distance-faded
// connection lines between near neighbors.
type LinkedScene struct {
	canvas    Canvas
	cfg       Config
	tuning    *Tuning
	pointer   PointerSource
	neighbors NeighborQuery
	parts     []LinkedParticle
	color     Color
	lineColor Color
}

// NewLinkedScene creates the hero field. The neighbor strategy is fixed at
// construction from the configuration: grid-backed when spatial optimization
// is on, linear scan otherwise.
func NewLinkedScene(cfg Config, canvas Canvas, tuning *Tuning, pointer PointerSource) *LinkedScene {
	s := &LinkedScene{
		canvas:    canvas,
		cfg:       cfg,
		tuning:    tuning,
		pointer:   pointer,
		color:     Color{R: 0.4, G: 0.85, B: 1, A: 1},
		lineColor: Color{R: 0.4, G: 0.85, B: 1, A: 1},
	}
	s.neighbors = s.newNeighborQuery()
	return s
}

func (s *LinkedScene) newNeighborQuery() NeighborQuery {
	if !s.cfg.SpatialOptimization {
		return newLinearNeighbors()
	}
	w, h := s.canvas.Size()
	return newGridNeighbors(float64(w), float64(h), s.cfg.ConnectionDistance)
}

// Name implements Scene.
func (s *LinkedScene) Name() string { return "linked" }

// Reset rebuilds entities at the tuned count and recreates the neighbor
// structure for the current canvas size.
func (s *LinkedScene) Reset() {
	snap := s.tuning.Snapshot()
	w, h := s.canvas.Size()
	s.parts = make([]LinkedParticle, snap.LinkCount)
	for i := range s.parts {
		s.parts[i].reset(float64(w), float64(h))
	}
	s.neighbors = s.newNeighborQuery()
}

// Advance updates every particle, then refreshes the neighbor structure so
// connection queries in Draw see this tick's positions.
func (s *LinkedScene) Advance(now float64) {
	w, h := s.canvas.Size()
	fw, fh := float64(w), float64(h)

	px, py := 0.0, 0.0
	pointerOK := false
	influence := 0.0
	if s.cfg.pointerEnabled() && s.pointer != nil {
		px, py, pointerOK = s.pointer.Pointer()
		influence = s.cfg.PointerInfluence
	}

	for i := range s.parts {
		guardEntity("linked", i, func() {
			s.parts[i].update(fw, fh, px, py, influence, pointerOK)
		})
	}
	s.neighbors.Rebuild(s.parts)
}

// Draw fades the surface, renders particles, then connections. Candidates
// from the neighbor query are exact-filtered by squared distance; each
// particle draws at most MaxConnections lines, first found first drawn, and
// a pair is drawn once (only toward higher indices). Line opacity falls off
// linearly with distance and is scaled by the quality state.
func (s *LinkedScene) Draw(now float64) {
	snap := s.tuning.Snapshot()
	s.canvas.FadeFill(Color{A: s.cfg.FadeAlpha})

	for i := range s.parts {
		p := &s.parts[i]
		s.canvas.FillCircle(p.x, p.y, p.size, s.color.WithAlpha(linkPointAlpha*snap.Quality))
	}

	maxConn := s.cfg.MaxConnections
	if maxConn <= 0 {
		return
	}
	dist := s.cfg.ConnectionDistance
	distSqMax := dist * dist

	for i := range s.parts {
		p := &s.parts[i]
		links := 0
		for _, j := range s.neighbors.Near(p.x, p.y, dist) {
			if j <= i {
				continue
			}
			q := &s.parts[j]
			dx := q.x - p.x
			dy := q.y - p.y
			d2 := dx*dx + dy*dy
			if d2 > distSqMax {
				continue
			}
			alpha := (1 - math.Sqrt(d2)/dist) * linkBaseAlpha * snap.Quality
			s.canvas.StrokeLine(p.x, p.y, q.x, q.y, linkLineWidth, s.lineColor.WithAlpha(alpha))
			links++
			if links >= maxConn {
				break
			}
		}
	}
}

// Reclaim implements Scene. The linked family carries no history buffers.
func (s *LinkedScene) Reclaim() {}

// ReplaceCanvas swaps the canvas and rebuilds the neighbor structure for the
// new bounds.
func (s *LinkedScene) ReplaceCanvas(c Canvas) {
	s.canvas = c
	s.neighbors = s.newNeighborQuery()
}

// Teardown drops entities and the neighbor structure.
func (s *LinkedScene) Teardown() {
	s.parts = nil
	s.neighbors = s.newNeighborQuery()
}

// Particles exposes the live entities for inspection.
func (s *LinkedScene) Particles() []LinkedParticle { return s.parts }
