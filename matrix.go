package ember

import "math/rand/v2"

// Matrix effect tuning. Glyph appends are gated by a randomized delay so
// columns desynchronize, and each glyph ages independently rather than
// living in a fixed-length FIFO.
const (
	glyphDelayMinMS = 100.0
	glyphDelayMaxMS = 300.0
	glyphMaxAgeMS   = 2600.0
	columnSpeedMin  = 2.0
	columnSpeedMax  = 7.0
)

var (
	glyphDelay  = Range{glyphDelayMinMS, glyphDelayMaxMS}
	columnSpeed = Range{columnSpeedMin, columnSpeedMax}
)

// matrixRunes is the glyph alphabet: half-width katakana plus digits.
var matrixRunes = []rune("ｱｲｳｴｵｶｷｸｹｺｻｼｽｾｿﾀﾁﾂﾃﾄﾅﾆﾇﾈﾉﾊﾋﾌﾍﾎﾏﾐﾑﾒﾓﾔﾕﾖﾗﾘﾙﾚﾛﾜﾝ0123456789")

// glyph is one aged character in a column's queue.
type glyph struct {
	r    rune
	born float64
}

// FallingColumn is a single matrix rain column: one vertical lead position,
// a per-column speed, and a bounded glyph queue trailing behind the lead.
type FallingColumn struct {
	x      float64
	y      float64
	speed  float64
	glyphs ring[glyph]
	nextAt float64 // earliest time the next glyph may be appended
}

func (c *FallingColumn) reset(h float64) {
	c.respawn(h)
	c.glyphs.Clear()
	c.nextAt = 0
}

// respawn moves the lead back above the surface with a fresh speed. The
// glyph queue is left alone; it ages out on its own schedule.
func (c *FallingColumn) respawn(h float64) {
	// Random negative offset staggers column re-entry.
	c.y = -rand.Float64() * h * 0.5
	c.speed = columnSpeed.Sample()
}

// update advances the lead position, appends a glyph after the randomized
// delay (if the queue has room), and expires glyphs past the age threshold.
func (c *FallingColumn) update(now, h float64) {
	c.y += c.speed
	if c.y > h {
		c.respawn(h)
	}

	if now >= c.nextAt && c.glyphs.Len() < c.glyphs.Cap() {
		c.glyphs.Push(glyph{
			r:    matrixRunes[rand.IntN(len(matrixRunes))],
			born: now,
		})
		c.nextAt = now + glyphDelay.Sample()
	}

	// Glyphs age per-tick and leave individually; insertion order is age
	// order, so expiring from the oldest end is exact.
	for c.glyphs.Len() > 0 {
		oldest := c.glyphs.At(0)
		if now-oldest.born <= glyphMaxAgeMS {
			break
		}
		c.glyphs.PopOldest()
	}
}

// MatrixScene animates the falling-character effect across the canvas.
type MatrixScene struct {
	canvas  Canvas
	cfg     Config
	tuning  *Tuning
	columns []FallingColumn
	color   Color
	lead    Color
}

// NewMatrixScene creates the matrix effect. Columns are created on Reset.
func NewMatrixScene(cfg Config, canvas Canvas, tuning *Tuning) *MatrixScene {
	return &MatrixScene{
		canvas: canvas,
		cfg:    cfg,
		tuning: tuning,
		color:  Color{R: 0.1, G: 0.9, B: 0.35, A: 1},
		lead:   Color{R: 0.75, G: 1, B: 0.85, A: 1},
	}
}

// Name implements Scene.
func (s *MatrixScene) Name() string { return "matrix" }

// Reset rebuilds columns at the tuned count, spreading them evenly across
// the canvas width. The orchestrator derives the count from canvas width and
// font size; a non-positive count leaves the scene empty.
func (s *MatrixScene) Reset() {
	snap := s.tuning.Snapshot()
	w, h := s.canvas.Size()
	count := snap.ColumnCount
	if count <= 0 {
		s.columns = nil
		return
	}
	spacing := float64(w) / float64(count)
	s.columns = make([]FallingColumn, count)
	for i := range s.columns {
		s.columns[i].x = (float64(i) + 0.5) * spacing
		s.columns[i].glyphs = newRing[glyph](s.cfg.GlyphCap)
		s.columns[i].reset(float64(h))
	}
}

// Advance updates every column for this tick.
func (s *MatrixScene) Advance(now float64) {
	_, h := s.canvas.Size()
	fh := float64(h)
	for i := range s.columns {
		guardEntity("matrix", i, func() {
			s.columns[i].update(now, fh)
		})
	}
}

// Draw renders each column's glyph queue above its lead position. Opacity
// fades with glyph age; the newest (lead) glyph draws brighter than the
// trail behind it.
func (s *MatrixScene) Draw(now float64) {
	snap := s.tuning.Snapshot()
	s.canvas.FadeFill(Color{A: s.cfg.FadeAlpha})

	size := s.cfg.FontSize
	for i := range s.columns {
		c := &s.columns[i]
		n := c.glyphs.Len()
		for j := 0; j < n; j++ {
			g := c.glyphs.At(j)
			ageT := (now - g.born) / glyphMaxAgeMS
			alpha := (1 - clamp(ageT, 0, 1)) * snap.Quality
			if alpha <= 0 {
				continue
			}
			// Newest glyph sits at the lead position; older ones stack
			// upward by queue index.
			y := c.y - float64(n-1-j)*size
			if y < -size || alpha <= 0 {
				continue
			}
			col := s.color
			if j == n-1 {
				col = s.lead
			}
			s.canvas.FillText(string(g.r), c.x-size/2, y, size, col.WithAlpha(alpha))
		}
	}
}

// Reclaim trims glyph queues back to their cap.
func (s *MatrixScene) Reclaim() {
	for i := range s.columns {
		s.columns[i].glyphs.TrimTo(s.cfg.GlyphCap)
	}
}

// ReplaceCanvas implements Scene.
func (s *MatrixScene) ReplaceCanvas(c Canvas) { s.canvas = c }

// Teardown drops all columns.
func (s *MatrixScene) Teardown() { s.columns = nil }

// Columns exposes the live entities for inspection.
func (s *MatrixScene) Columns() []FallingColumn { return s.columns }
