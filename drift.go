package ember

import "math/rand/v2"

// Drift field tuning. Depth runs 0 (near) to driftDepthMax (far); draw
// projects it to a size/opacity scale. Trail samples are spaced by wall time
// so trail resolution does not depend on frame rate.
const (
	driftDepthMax        = 1000.0
	driftTrailIntervalMS = 50.0
	driftNearScale       = 1.0
	driftFarScale        = 0.25
)

// Title pulse bounds: the intro headline breathes between these alphas.
const (
	titlePulseMS  = 1400.0
	titleMinAlpha = 0.35
	titleMaxAlpha = 0.8
)

// DriftParticle is one star-like particle in the intro field: free drift in
// x, y and depth, with a bounded position trail. Leaving the bounding volume
// in any axis resets the particle to a fresh random state; there is no wrap
// or clamp in this family.
type DriftParticle struct {
	x, y, z    float64
	vx, vy, vz float64
	size       float64
	alpha      float64
	trail      ring[Vec2]
	trailAt    float64 // time of the last trail sample
}

// reset assigns a fresh random position, velocity, depth, and visuals, and
// clears the trail.
func (p *DriftParticle) reset(w, h float64) {
	p.x = rand.Float64() * w
	p.y = rand.Float64() * h
	p.z = rand.Float64() * driftDepthMax
	p.vx = (rand.Float64() - 0.5) * 1.2
	p.vy = (rand.Float64() - 0.5) * 1.2
	p.vz = (rand.Float64() - 0.5) * 4
	p.size = 1 + rand.Float64()*2
	p.alpha = 0.3 + rand.Float64()*0.5
	p.trail.Clear()
	p.trailAt = 0
}

// update integrates one tick and applies the out-of-bounds policy.
func (p *DriftParticle) update(now, w, h float64) {
	p.x += p.vx
	p.y += p.vy
	p.z += p.vz

	if p.trail.Cap() > 0 && now-p.trailAt >= driftTrailIntervalMS {
		p.trail.Push(Vec2{p.x, p.y})
		p.trailAt = now
	}

	if p.x < 0 || p.x > w || p.y < 0 || p.y > h || p.z < 0 || p.z > driftDepthMax {
		p.reset(w, h)
	}
}

// depthScale projects depth to a [driftFarScale, driftNearScale] multiplier.
func (p *DriftParticle) depthScale() float64 {
	t := 1 - p.z/driftDepthMax
	return lerp(driftFarScale, driftNearScale, t)
}

// DriftScene animates the intro particle field. It owns its canvas and its
// entity slice exclusively; the orchestrator dims it during the handoff to
// the main site.
type DriftScene struct {
	canvas Canvas
	cfg    Config
	tuning *Tuning
	parts  []DriftParticle
	color  Color
	dim    float64 // handoff fade multiplier in [0, 1]

	title   string
	pulse   *fadeTween
	pulseUp bool
	pulseAt float64
}

// NewDriftScene creates the intro field. Entities are created on Reset.
func NewDriftScene(cfg Config, canvas Canvas, tuning *Tuning) *DriftScene {
	return &DriftScene{
		canvas: canvas,
		cfg:    cfg,
		tuning: tuning,
		color:  Color{R: 0.55, G: 0.78, B: 1, A: 1},
		dim:    1,
	}
}

// Name implements Scene.
func (s *DriftScene) Name() string { return "drift" }

// Reset rebuilds the entity slice at the tuned count. Changing the count
// always goes through here; the slice is never resized in place.
func (s *DriftScene) Reset() {
	snap := s.tuning.Snapshot()
	w, h := s.canvas.Size()
	s.parts = make([]DriftParticle, snap.DriftCount)
	for i := range s.parts {
		s.parts[i].trail = newRing[Vec2](s.cfg.TrailCap)
		s.parts[i].reset(float64(w), float64(h))
	}
	s.dim = 1
	s.pulse = nil
}

// Advance updates every particle for this tick.
func (s *DriftScene) Advance(now float64) {
	w, h := s.canvas.Size()
	fw, fh := float64(w), float64(h)
	for i := range s.parts {
		guardEntity("drift", i, func() {
			s.parts[i].update(now, fw, fh)
		})
	}
}

// Draw fades the surface and renders particles with depth-projected size and
// opacity. Reduced motion renders nothing at all; the mobile profile skips
// trails (TrailCap 0 leaves the rings empty).
func (s *DriftScene) Draw(now float64) {
	if s.cfg.ReducedMotion {
		return
	}
	snap := s.tuning.Snapshot()
	s.canvas.FadeFill(Color{A: s.cfg.FadeAlpha})

	for i := range s.parts {
		p := &s.parts[i]
		scale := p.depthScale()
		alpha := p.alpha * scale * snap.Quality * s.dim
		if alpha <= 0 {
			continue
		}

		for j := 0; j < p.trail.Len(); j++ {
			pos := p.trail.At(j)
			t := float64(j+1) / float64(p.trail.Len()+1)
			s.canvas.FillCircle(pos.X, pos.Y, p.size*scale*t*0.6, s.color.WithAlpha(alpha*t*0.4))
		}
		s.canvas.FillCircle(p.x, p.y, p.size*scale, s.color.WithAlpha(alpha))
	}

	if s.title != "" {
		s.drawTitle(now)
	}
}

// drawTitle renders the headline centered over the field, breathing between
// the pulse bounds. The tween restarts in the opposite direction each time it
// completes.
func (s *DriftScene) drawTitle(now float64) {
	if s.pulse == nil {
		s.pulse = newFadeTween(titleMinAlpha, titleMaxAlpha, titlePulseMS)
		s.pulseUp = true
		s.pulseAt = now
	}
	if s.pulse.Update(now - s.pulseAt) {
		from, to := titleMaxAlpha, titleMinAlpha
		if !s.pulseUp {
			from, to = titleMinAlpha, titleMaxAlpha
		}
		s.pulse = newFadeTween(from, to, titlePulseMS)
		s.pulseUp = !s.pulseUp
	}
	s.pulseAt = now

	w, h := s.canvas.Size()
	size := s.cfg.FontSize * 2
	x := float64(w)/2 - float64(len(s.title))*size*0.3
	y := float64(h)/2 - size/2
	s.canvas.FillText(s.title, x, y, size, ColorWhite.WithAlpha(s.pulse.value*s.dim))
}

// Reclaim trims trails back to their cap. Normal eviction already enforces
// it; this is the lifecycle backstop.
func (s *DriftScene) Reclaim() {
	for i := range s.parts {
		s.parts[i].trail.TrimTo(s.cfg.TrailCap)
	}
}

// ReplaceCanvas implements Scene.
func (s *DriftScene) ReplaceCanvas(c Canvas) { s.canvas = c }

// SetDim sets the handoff fade multiplier applied to every particle.
func (s *DriftScene) SetDim(v float64) { s.dim = clamp(v, 0, 1) }

// SetTitle sets the headline drawn over the intro field. Empty disables it.
func (s *DriftScene) SetTitle(title string) {
	s.title = title
	s.pulse = nil
}

// Teardown drops all entities.
func (s *DriftScene) Teardown() { s.parts = nil }

// Particles exposes the live entities for inspection.
func (s *DriftScene) Particles() []DriftParticle { return s.parts }
