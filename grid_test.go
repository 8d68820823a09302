package ember

import (
	"math/rand/v2"
	"testing"
)

func TestSpatialIndexInsertAndQuery(t *testing.T) {
	g := NewSpatialIndex(800, 600, 100)
	g.Insert(0, 50, 50)
	g.Insert(1, 55, 55)
	g.Insert(2, 700, 500)

	got := g.QueryNear(50, 50, 50)
	if !containsID(got, 0) || !containsID(got, 1) {
		t.Errorf("QueryNear(50,50,50) = %v, want ids 0 and 1", got)
	}
	if containsID(got, 2) {
		t.Errorf("QueryNear(50,50,50) = %v, should not reach id 2", got)
	}
}

func TestSpatialIndexOutOfBoundsInsertDropped(t *testing.T) {
	g := NewSpatialIndex(800, 600, 100)
	g.Insert(0, -10, 50)
	g.Insert(1, 50, 700)
	g.Insert(2, 900, 50)

	for _, cell := range g.cells {
		if len(cell) != 0 {
			t.Fatal("out-of-bounds inserts should be dropped")
		}
	}
}

func TestSpatialIndexClear(t *testing.T) {
	g := NewSpatialIndex(800, 600, 100)
	for i := 0; i < 100; i++ {
		g.Insert(i, rand.Float64()*800, rand.Float64()*600)
	}
	g.Clear()
	if got := g.QueryNear(400, 300, 1000); len(got) != 0 {
		t.Errorf("QueryNear after Clear = %v, want empty", got)
	}
}

// The candidate set is always a superset of the true within-radius set.
func TestSpatialIndexSupersetOfBruteForce(t *testing.T) {
	const w, h = 800.0, 600.0
	for trial := 0; trial < 30; trial++ {
		cellSize := 40 + rand.Float64()*160
		g := NewSpatialIndex(w, h, cellSize)

		n := 50 + rand.IntN(150)
		xs := make([]float64, n)
		ys := make([]float64, n)
		for i := 0; i < n; i++ {
			xs[i] = rand.Float64() * w
			ys[i] = rand.Float64() * h
			g.Insert(i, xs[i], ys[i])
		}

		qx := rand.Float64() * w
		qy := rand.Float64() * h
		radius := rand.Float64() * 200
		got := g.QueryNear(qx, qy, radius)

		r2 := radius * radius
		for i := 0; i < n; i++ {
			dx := xs[i] - qx
			dy := ys[i] - qy
			if dx*dx+dy*dy <= r2 && !containsID(got, i) {
				t.Fatalf("trial %d: entity %d within radius %f missing from candidates", trial, i, radius)
			}
		}
	}
}

func TestSpatialIndexScratchReuse(t *testing.T) {
	g := NewSpatialIndex(800, 600, 100)
	for i := 0; i < 200; i++ {
		g.Insert(i, rand.Float64()*800, rand.Float64()*600)
	}
	// Warmup grows the scratch buffer to steady state.
	g.QueryNear(400, 300, 150)

	allocs := testing.AllocsPerRun(100, func() {
		g.QueryNear(400, 300, 150)
	})
	if allocs > 0 {
		t.Errorf("QueryNear allocs = %f, want 0", allocs)
	}
}

func containsID(ids []int, id int) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}

func BenchmarkSpatialIndexRebuild_200(b *testing.B) {
	g := NewSpatialIndex(800, 600, 120)
	xs := make([]float64, 200)
	ys := make([]float64, 200)
	for i := range xs {
		xs[i] = rand.Float64() * 800
		ys[i] = rand.Float64() * 600
	}
	b.ReportAllocs()
	for b.Loop() {
		g.Clear()
		for i := range xs {
			g.Insert(i, xs[i], ys[i])
		}
	}
}

func BenchmarkSpatialIndexQuery(b *testing.B) {
	g := NewSpatialIndex(800, 600, 120)
	for i := 0; i < 200; i++ {
		g.Insert(i, rand.Float64()*800, rand.Float64()*600)
	}
	b.ReportAllocs()
	for b.Loop() {
		g.QueryNear(400, 300, 120)
	}
}
