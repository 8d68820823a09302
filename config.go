package ember

import "log"

// Config is the startup configuration for the engine. Values describe intent;
// Normalize clamps anything out of range to the nearest valid value before
// the engine consumes it.
type Config struct {
	// Device selects the tuning profile the other defaults came from.
	Device DeviceClass
	// ParticleCount is the drift (intro) field entity count.
	ParticleCount int
	// LinkCount is the linked (hero) field entity count.
	LinkCount int
	// ConnectionDistance is the maximum link length in pixels.
	ConnectionDistance float64
	// MaxConnections caps lines drawn per particle each frame.
	MaxConnections int
	// TargetFPS is the intended simulation rate per scene.
	TargetFPS int
	// ReducedMotion disables drift rendering and pointer force entirely.
	ReducedMotion bool
	// SpatialOptimization selects the grid-backed neighbor query; when false
	// the linked scene falls back to a linear scan.
	SpatialOptimization bool
	// PointerInfluence is the pointer repulsion radius in pixels.
	// Zero disables pointer force regardless of device class.
	PointerInfluence float64
	// TrailCap is the drift particle trail capacity. Zero disables trails.
	TrailCap int
	// GlyphCap is the per-column glyph queue capacity.
	GlyphCap int
	// FontSize is the matrix glyph cell size in pixels; column count is
	// derived from canvas width divided by this.
	FontSize float64
	// FadeAlpha is the per-frame partial-alpha overdraw used to fade
	// previous frames into motion trails.
	FadeAlpha float64
}

// ConfigFor returns the default configuration for a device class.
func ConfigFor(device DeviceClass) Config {
	switch device {
	case DeviceMobile:
		return Config{
			Device:              DeviceMobile,
			ParticleCount:       60,
			LinkCount:           40,
			ConnectionDistance:  100,
			MaxConnections:      3,
			TargetFPS:           30,
			SpatialOptimization: true,
			PointerInfluence:    0,
			TrailCap:            0,
			GlyphCap:            12,
			FontSize:            18,
			FadeAlpha:           0.12,
		}
	case DeviceTablet:
		return Config{
			Device:              DeviceTablet,
			ParticleCount:       100,
			LinkCount:           60,
			ConnectionDistance:  110,
			MaxConnections:      4,
			TargetFPS:           60,
			SpatialOptimization: true,
			PointerInfluence:    120,
			TrailCap:            5,
			GlyphCap:            16,
			FontSize:            17,
			FadeAlpha:           0.10,
		}
	default:
		return Config{
			Device:              DeviceDesktop,
			ParticleCount:       150,
			LinkCount:           80,
			ConnectionDistance:  120,
			MaxConnections:      5,
			TargetFPS:           60,
			SpatialOptimization: true,
			PointerInfluence:    150,
			TrailCap:            8,
			GlyphCap:            20,
			FontSize:            16,
			FadeAlpha:           0.08,
		}
	}
}

// Normalize clamps invalid values to the nearest valid value, logging each
// clamp. The engine never rejects a configuration; it degrades it.
func (c Config) Normalize() Config {
	def := ConfigFor(c.Device)
	if c.ParticleCount < 0 {
		log.Printf("ember: config: ParticleCount %d clamped to 0", c.ParticleCount)
		c.ParticleCount = 0
	}
	if c.LinkCount < 0 {
		log.Printf("ember: config: LinkCount %d clamped to 0", c.LinkCount)
		c.LinkCount = 0
	}
	if c.ConnectionDistance <= 0 {
		log.Printf("ember: config: ConnectionDistance %v clamped to %v", c.ConnectionDistance, def.ConnectionDistance)
		c.ConnectionDistance = def.ConnectionDistance
	}
	if c.MaxConnections < 0 {
		log.Printf("ember: config: MaxConnections %d clamped to 0", c.MaxConnections)
		c.MaxConnections = 0
	}
	if c.TargetFPS <= 0 {
		log.Printf("ember: config: TargetFPS %d clamped to %d", c.TargetFPS, def.TargetFPS)
		c.TargetFPS = def.TargetFPS
	}
	if c.PointerInfluence < 0 {
		log.Printf("ember: config: PointerInfluence %v clamped to 0", c.PointerInfluence)
		c.PointerInfluence = 0
	}
	if c.TrailCap < 0 {
		c.TrailCap = 0
	}
	if c.GlyphCap <= 0 {
		c.GlyphCap = def.GlyphCap
	}
	if c.FontSize <= 0 {
		c.FontSize = def.FontSize
	}
	if c.FadeAlpha <= 0 || c.FadeAlpha > 1 {
		c.FadeAlpha = def.FadeAlpha
	}
	return c
}

// pointerEnabled reports whether pointer force applies for this config.
func (c Config) pointerEnabled() bool {
	return c.PointerInfluence > 0 && !c.ReducedMotion && c.Device != DeviceMobile
}

// Entity count floors. Quality degradation never shrinks a family below
// these, so scenes stay visible even on the slowest devices.
const (
	minDriftCount  = 20
	minLinkCount   = 16
	minColumnCount = 8

	minQuality = 0.3
	maxQuality = 1.0
)

// Tuning is the process-scoped adaptive state shared by every scene: the
// quality scalar and the live entity counts. Only the quality controller and
// the lifecycle mutate it; scenes read a Snapshot at the top of each tick and
// consume count changes on their next reset.
type Tuning struct {
	Quality     float64
	DriftCount  int
	LinkCount   int
	ColumnCount int
}

// NewTuning seeds tuning from a normalized config. ColumnCount starts at
// zero and is derived from canvas width when the matrix scene first resets.
func NewTuning(cfg Config) *Tuning {
	return &Tuning{
		Quality:    maxQuality,
		DriftCount: cfg.ParticleCount,
		LinkCount:  cfg.LinkCount,
	}
}

// Snapshot returns a by-value copy for a single tick.
func (t *Tuning) Snapshot() Tuning {
	return *t
}

// degrade multiplies quality by factor (floor minQuality) and shrinks every
// entity count by the same factor, never below its family floor.
func (t *Tuning) degrade(factor float64) {
	t.Quality = clamp(t.Quality*factor, minQuality, maxQuality)
	t.DriftCount = shrinkCount(t.DriftCount, factor, minDriftCount)
	t.LinkCount = shrinkCount(t.LinkCount, factor, minLinkCount)
	t.ColumnCount = shrinkCount(t.ColumnCount, factor, minColumnCount)
}

// recover raises quality by factor (cap maxQuality). Counts stay where they
// are: regrowing them would re-trigger the degradation that shrank them.
func (t *Tuning) recover(factor float64) {
	t.Quality = clamp(t.Quality*factor, minQuality, maxQuality)
}

func shrinkCount(n int, factor float64, min int) int {
	if n <= min {
		return n
	}
	shrunk := int(float64(n) * factor)
	if shrunk < min {
		return min
	}
	return shrunk
}
