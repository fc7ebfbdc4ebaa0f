package buffer

import (
	"math"
	"testing"

	"github.com/simplegeo/jts/geom"
)

func unitSquarePattern() []geom.Coord {
	return []geom.Coord{
		geom.XY(-1, -1), geom.XY(1, -1), geom.XY(1, 1), geom.XY(-1, 1),
	}
}

// TestMinkowskiSumAlongSegment checks that sweeping a square along a
// segment yields the exact swept rectangle.
func TestMinkowskiSumAlongSegment(t *testing.T) {
	f := geom.NewFactory(nil)
	path := []geom.Coord{geom.XY(0, 0), geom.XY(10, 0)}

	res, err := MinkowskiSum(f, unitSquarePattern(), path, false)
	if err != nil {
		t.Fatalf("minkowski sum failed: %v", err)
	}
	if a := geom.Area(res); math.Abs(a-24) > 1e-9 {
		t.Fatalf("expected swept rectangle area 24, got %v", a)
	}
	env := res.Envelope()
	if env.MinX() != -1 || env.MaxX() != 11 || env.MinY() != -1 || env.MaxY() != 1 {
		t.Fatalf("expected envelope [-1,11]x[-1,1], got %v", env)
	}
}

// TestMinkowskiSumClosedPath checks that a closed path sweeps its closing
// segment: a square ring swept by a square gives a frame with a hole.
func TestMinkowskiSumClosedPath(t *testing.T) {
	f := geom.NewFactory(nil)
	path := []geom.Coord{
		geom.XY(0, 0), geom.XY(10, 0), geom.XY(10, 10), geom.XY(0, 10),
	}

	res, err := MinkowskiSum(f, unitSquarePattern(), path, true)
	if err != nil {
		t.Fatalf("minkowski sum failed: %v", err)
	}
	poly, ok := res.(*geom.Polygon)
	if !ok {
		t.Fatalf("expected frame polygon, got %T", res)
	}
	if len(poly.Holes()) != 1 {
		t.Fatalf("expected one hole in the frame, got %d", len(poly.Holes()))
	}
	// Outer 12x12 square minus the 8x8 hole.
	if a := poly.Area(); math.Abs(a-(144-64)) > 1e-9 {
		t.Fatalf("expected frame area 80, got %v", a)
	}
}

// TestMinkowskiDiffSymmetricPattern checks that a symmetric pattern makes
// sum and difference agree.
func TestMinkowskiDiffSymmetricPattern(t *testing.T) {
	f := geom.NewFactory(nil)
	path := []geom.Coord{geom.XY(0, 0), geom.XY(10, 0)}

	sum, err := MinkowskiSum(f, unitSquarePattern(), path, false)
	if err != nil {
		t.Fatalf("minkowski sum failed: %v", err)
	}
	diff, err := MinkowskiDiff(f, unitSquarePattern(), path, false)
	if err != nil {
		t.Fatalf("minkowski diff failed: %v", err)
	}
	if math.Abs(geom.Area(sum)-geom.Area(diff)) > 1e-9 {
		t.Fatalf("symmetric pattern: sum area %v != diff area %v",
			geom.Area(sum), geom.Area(diff))
	}
}

// TestMinkowskiEmptyInputs checks the input contract.
func TestMinkowskiEmptyInputs(t *testing.T) {
	f := geom.NewFactory(nil)
	if _, err := MinkowskiSum(f, nil, []geom.Coord{geom.XY(0, 0)}, false); err != ErrEmptyPattern {
		t.Fatalf("expected ErrEmptyPattern, got %v", err)
	}
	if _, err := MinkowskiSum(f, unitSquarePattern(), nil, false); err != ErrEmptyPattern {
		t.Fatalf("expected ErrEmptyPattern, got %v", err)
	}
}
