package index

import "testing"

func TestHilbertSortPoints(t *testing.T) {
	points := []Point{
		{Lon: 0, Lat: 0, Data: "a"},
		{Lon: 100, Lat: 100, Data: "b"},
		{Lon: 1, Lat: 1, Data: "c"},
		{Lon: 99, Lat: 99, Data: "d"},
	}

	HilbertSortPoints(points)

	if len(points) != 4 {
		t.Fatalf("expected 4 points, got: %d", len(points))
	}

	// Spatially close points end up adjacent in the ordering.
	pos := make(map[string]int, len(points))
	for i, p := range points {
		pos[p.Data.(string)] = i
	}
	if d := pos["a"] - pos["c"]; d != 1 && d != -1 {
		t.Errorf("expected a and c to be adjacent, got positions %d and %d",
			pos["a"], pos["c"])
	}
	if d := pos["b"] - pos["d"]; d != 1 && d != -1 {
		t.Errorf("expected b and d to be adjacent, got positions %d and %d",
			pos["b"], pos["d"])
	}
}

func TestCalcExtentForPoints(t *testing.T) {
	points := []Point{
		{Lon: -3, Lat: 2},
		{Lon: 7, Lat: -1},
		{Lon: 0, Lat: 9},
	}

	extent := CalcExtentForPoints(points)
	expected := Bounds{Left: -3, Right: 7, Top: 9, Bottom: -1}

	if extent != expected {
		t.Errorf("expected extent %+v, got: %+v", expected, extent)
	}
}
