package index

import (
	"math/rand"
	"testing"
)

func TestNewQuadNodeValidation(t *testing.T) {
	bounds := Bounds{Left: 0, Right: 100, Top: 100, Bottom: 0}

	if _, err := NewQuadNode(bounds); err != nil {
		t.Errorf("expected nil error, got: %v", err)
	}

	if _, err := NewQuadNode(Bounds{Left: 0, Right: 0, Top: 100, Bottom: 0}); err == nil {
		t.Errorf("expected error for zero-width bounds, got nil")
	}

	if _, err := NewQuadNode(Bounds{Left: 0, Right: 100, Top: 0, Bottom: 100}); err == nil {
		t.Errorf("expected error for inverted bounds, got nil")
	}

	if _, err := NewQuadNode(bounds, WithMaxObjects(0)); err == nil {
		t.Errorf("expected error for maxObjects = 0, got nil")
	}

	if _, err := NewQuadNode(bounds, WithMaxLevels(-1)); err == nil {
		t.Errorf("expected error for negative maxLevels, got nil")
	}
}

func TestIndexForPoint(t *testing.T) {
	qn, err := NewQuadNode(Bounds{Left: 0, Right: 10, Top: 10, Bottom: 0})
	if err != nil {
		t.Fatalf("expected nil error, got: %v", err)
	}

	tests := []struct {
		lon, lat float64
		index    int
	}{
		{7, 8, topRight},
		{2, 2, bottomLeft},
		{2, 8, topLeft},
		{7, 2, bottomRight},
	}

	for _, test := range tests {
		got := qn.indexForPoint(Point{Lon: test.lon, Lat: test.lat})
		if got != test.index {
			t.Errorf("point (%v,%v): expected index %d, got: %d",
				test.lon, test.lat, test.index, got)
		}
	}
}

func TestSplitTilesBounds(t *testing.T) {
	qn, err := NewQuadNode(Bounds{Left: 0, Right: 10, Top: 10, Bottom: 0})
	if err != nil {
		t.Fatalf("expected nil error, got: %v", err)
	}

	qn.split()

	expected := [4]Bounds{
		bottomRight: {Left: 5, Right: 10, Top: 5, Bottom: 0},
		bottomLeft:  {Left: 0, Right: 5, Top: 5, Bottom: 0},
		topLeft:     {Left: 0, Right: 5, Top: 10, Bottom: 5},
		topRight:    {Left: 5, Right: 10, Top: 10, Bottom: 5},
	}

	for i, child := range qn.nodes {
		if child.bounds != expected[i] {
			t.Errorf("child %d: expected bounds %+v, got: %+v", i, expected[i], child.bounds)
		}
		if child.level != 1 {
			t.Errorf("child %d: expected level 1, got: %d", i, child.level)
		}
		if child.policy != qn.policy {
			t.Errorf("child %d: expected shared policy", i)
		}
	}

	// The four children tile the parent exactly.
	area := 0.0
	for _, child := range qn.nodes {
		area += child.width * child.height
	}
	if area != qn.width*qn.height {
		t.Errorf("expected children area %v, got: %v", qn.width*qn.height, area)
	}
}

func TestInsertSplitAndRedistribute(t *testing.T) {
	qn, err := NewQuadNode(Bounds{Left: 0, Right: 100, Top: 100, Bottom: 0},
		WithMaxObjects(2), WithMaxLevels(4))
	if err != nil {
		t.Fatalf("expected nil error, got: %v", err)
	}

	qn.Insert(Point{Lon: 10, Lat: 10})
	qn.Insert(Point{Lon: 20, Lat: 20})

	if qn.nodes != nil {
		t.Errorf("expected leaf before overflow")
	}

	qn.Insert(Point{Lon: 30, Lat: 30})

	if qn.nodes == nil {
		t.Fatalf("expected root to split after third insert")
	}
	if len(qn.objects) != 0 {
		t.Errorf("expected no objects left on root, got: %d", len(qn.objects))
	}
	if got := len(qn.nodes[bottomLeft].Retrieve(Rect{Left: 0, Right: 100, Top: 100, Bottom: 0})); got != 3 {
		t.Errorf("expected 3 points in bottom-left child, got: %d", got)
	}

	points := qn.Retrieve(Rect{Left: 0, Right: 50, Top: 50, Bottom: 0})
	if len(points) != 3 {
		t.Errorf("expected 3 points, got: %d", len(points))
	}

	points = qn.Retrieve(Rect{Left: 60, Right: 100, Top: 100, Bottom: 60})
	if len(points) != 0 {
		t.Errorf("expected 0 points, got: %d", len(points))
	}
}

func TestDepthCap(t *testing.T) {
	maxLevels := 2
	qn, err := NewQuadNode(Bounds{Left: 0, Right: 100, Top: 100, Bottom: 0},
		WithMaxObjects(1), WithMaxLevels(maxLevels))
	if err != nil {
		t.Fatalf("expected nil error, got: %v", err)
	}

	// Every point maps to the bottom-left child at every level.
	for i := 0; i < 10; i++ {
		qn.Insert(Point{Lon: 1, Lat: 1})
	}

	node := qn
	depth := 0
	for node.nodes != nil {
		node = node.nodes[bottomLeft]
		depth++
	}

	if depth != maxLevels {
		t.Errorf("expected depth %d, got: %d", maxLevels, depth)
	}
	if len(node.objects) != 10 {
		t.Errorf("expected 10 points in deepest node, got: %d", len(node.objects))
	}
}

func TestRetrieveContainment(t *testing.T) {
	bounds := Bounds{Left: 0, Right: 1000, Top: 1000, Bottom: 0}
	qn, err := NewQuadNode(bounds, WithMaxObjects(4), WithMaxLevels(6))
	if err != nil {
		t.Fatalf("expected nil error, got: %v", err)
	}

	rng := rand.New(rand.NewSource(42))
	inserted := 500
	for i := 0; i < inserted; i++ {
		qn.Insert(Point{
			Lon:  rng.Float64() * 1000,
			Lat:  rng.Float64() * 1000,
			Data: i,
		})
	}

	// A rectangle covering the whole root bounds returns every point.
	all := qn.Retrieve(Rect{Left: 0, Right: 1000, Top: 1000, Bottom: 0})
	if len(all) != inserted {
		t.Errorf("expected %d points, got: %d", inserted, len(all))
	}
	if qn.Len() != inserted {
		t.Errorf("expected Len %d, got: %d", inserted, qn.Len())
	}

	seen := make(map[int]bool, len(all))
	for _, p := range all {
		seen[p.Data.(int)] = true
	}
	if len(seen) != inserted {
		t.Errorf("expected %d distinct points, got: %d", inserted, len(seen))
	}
}

func TestRetrieveSuperset(t *testing.T) {
	qn, err := NewQuadNode(Bounds{Left: 0, Right: 100, Top: 100, Bottom: 0},
		WithMaxObjects(2), WithMaxLevels(5))
	if err != nil {
		t.Fatalf("expected nil error, got: %v", err)
	}

	rng := rand.New(rand.NewSource(7))
	var points []Point
	for i := 0; i < 200; i++ {
		p := Point{Lon: rng.Float64() * 100, Lat: rng.Float64() * 100, Data: i}
		points = append(points, p)
		qn.Insert(p)
	}

	rect := Rect{Left: 20, Right: 60, Top: 70, Bottom: 30}
	got := qn.Retrieve(rect)
	found := make(map[int]bool, len(got))
	for _, p := range got {
		found[p.Data.(int)] = true
	}

	// Every point actually inside the rectangle must be among the candidates.
	for _, p := range points {
		if rect.ContainsCoords(p.Lon, p.Lat) && !found[p.Data.(int)] {
			t.Errorf("point %v missing from retrieve result", p)
		}
	}
}

func TestClear(t *testing.T) {
	qn, err := NewQuadNode(Bounds{Left: 0, Right: 100, Top: 100, Bottom: 0},
		WithMaxObjects(2), WithMaxLevels(4))
	if err != nil {
		t.Fatalf("expected nil error, got: %v", err)
	}

	for i := 0; i < 20; i++ {
		qn.Insert(Point{Lon: float64(i * 5), Lat: float64(i * 5)})
	}
	if qn.nodes == nil {
		t.Fatalf("expected root to be split")
	}

	qn.Clear()

	if qn.nodes != nil {
		t.Errorf("expected leaf after Clear")
	}
	if got := qn.Retrieve(Rect{Left: 0, Right: 100, Top: 100, Bottom: 0}); len(got) != 0 {
		t.Errorf("expected 0 points after Clear, got: %d", len(got))
	}

	// The cleared tree accepts new points like a fresh one.
	qn.Insert(Point{Lon: 10, Lat: 10})
	if got := qn.Retrieve(Rect{Left: 0, Right: 100, Top: 100, Bottom: 0}); len(got) != 1 {
		t.Errorf("expected 1 point after reinsert, got: %d", len(got))
	}
}

func TestBoundsIntersects(t *testing.T) {
	b := Bounds{Left: 0, Right: 10, Top: 10, Bottom: 0}

	if !b.Intersects(Rect{Left: 5, Right: 15, Top: 15, Bottom: 5}) {
		t.Errorf("expected overlap to intersect")
	}
	// Touching edges count as intersecting.
	if !b.Intersects(Rect{Left: 10, Right: 20, Top: 10, Bottom: 0}) {
		t.Errorf("expected touching edge to intersect")
	}
	if b.Intersects(Rect{Left: 11, Right: 20, Top: 10, Bottom: 0}) {
		t.Errorf("expected disjoint rect not to intersect")
	}
	if b.Intersects(Rect{Left: 0, Right: 10, Top: -1, Bottom: -5}) {
		t.Errorf("expected rect below not to intersect")
	}
}
