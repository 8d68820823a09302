package ember

// SpatialIndex is a uniform grid over a 2D surface answering "which entities
// are near this point". Cells are stored row-major in a flat slice and hold
// entity indices (not pointers) to keep GC pressure down. The index is
// rebuilt from scratch every frame: Clear, then Insert every live entity.
//
// QueryNear returns a superset of the true within-radius set (whole cells,
// no exact distance check); callers re-check exact distance. That trade buys
// O(1) average insert/query against the O(n²) pairwise scan a per-frame
// connection search would otherwise cost.
type SpatialIndex struct {
	cellSize    float64
	invCellSize float64
	cols, rows  int
	width       float64
	height      float64
	cells       [][]int
	scratch     []int
}

// NewSpatialIndex creates an index covering width × height with square cells
// of the given side length. Cell size is independent of entity count; it
// should roughly match the largest query radius.
func NewSpatialIndex(width, height, cellSize float64) *SpatialIndex {
	if cellSize <= 0 {
		cellSize = 100
	}
	cols := int(width/cellSize) + 1
	rows := int(height/cellSize) + 1
	if cols < 1 {
		cols = 1
	}
	if rows < 1 {
		rows = 1
	}
	return &SpatialIndex{
		cellSize:    cellSize,
		invCellSize: 1 / cellSize,
		cols:        cols,
		rows:        rows,
		width:       width,
		height:      height,
		cells:       make([][]int, cols*rows),
		scratch:     make([]int, 0, 64),
	}
}

// Clear empties every cell, keeping allocated capacity. O(cells).
func (g *SpatialIndex) Clear() {
	for i := range g.cells {
		g.cells[i] = g.cells[i][:0]
	}
}

// Insert places an entity index into the cell covering (x, y). Positions
// outside the indexed bounds are dropped; the boundary policy of the owning
// family brings strays back before the next rebuild.
func (g *SpatialIndex) Insert(id int, x, y float64) {
	if x < 0 || x > g.width || y < 0 || y > g.height {
		return
	}
	col := int(x * g.invCellSize)
	row := int(y * g.invCellSize)
	if col >= g.cols {
		col = g.cols - 1
	}
	if row >= g.rows {
		row = g.rows - 1
	}
	idx := row*g.cols + col
	g.cells[idx] = append(g.cells[idx], id)
}

// QueryNear returns every entity in the block of cells centered on (x, y)'s
// cell and extending ⌈radius/cellSize⌉ cells in each direction — a superset
// of the true radius match.
//
// The returned slice is an internal scratch buffer reused on the next call;
// copy it if it must outlive the query.
func (g *SpatialIndex) QueryNear(x, y, radius float64) []int {
	g.scratch = g.scratch[:0]

	reach := int(radius * g.invCellSize)
	if float64(reach)*g.cellSize < radius {
		reach++
	}
	col := int(x * g.invCellSize)
	row := int(y * g.invCellSize)

	minCol := col - reach
	maxCol := col + reach
	minRow := row - reach
	maxRow := row + reach
	if minCol < 0 {
		minCol = 0
	}
	if maxCol >= g.cols {
		maxCol = g.cols - 1
	}
	if minRow < 0 {
		minRow = 0
	}
	if maxRow >= g.rows {
		maxRow = g.rows - 1
	}

	for r := minRow; r <= maxRow; r++ {
		base := r * g.cols
		for c := minCol; c <= maxCol; c++ {
			g.scratch = append(g.scratch, g.cells[base+c]...)
		}
	}
	return g.scratch
}

// CellSize returns the configured cell side length.
func (g *SpatialIndex) CellSize() float64 { return g.cellSize }

// Dimensions returns the grid layout.
func (g *SpatialIndex) Dimensions() (cols, rows int) { return g.cols, g.rows }
