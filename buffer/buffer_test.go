package buffer

import (
	"math"
	"testing"

	"github.com/simplegeo/jts/geom"
)

func floatFactory() *geom.Factory {
	return geom.NewFactory(nil)
}

func squarePolygon(t *testing.T, f *geom.Factory) *geom.Polygon {
	t.Helper()
	p, err := f.PolygonFromCoords([]geom.Coord{
		geom.XY(0, 0), geom.XY(10, 0), geom.XY(10, 10), geom.XY(0, 10), geom.XY(0, 0),
	})
	if err != nil {
		t.Fatalf("square polygon: %v", err)
	}
	return p
}

func resultArea(g geom.Geometry) float64 { return geom.Area(g) }

func envApproxEqual(t *testing.T, env geom.Envelope, minX, minY, maxX, maxY, tol float64) {
	t.Helper()
	if math.Abs(env.MinX()-minX) > tol || math.Abs(env.MinY()-minY) > tol ||
		math.Abs(env.MaxX()-maxX) > tol || math.Abs(env.MaxY()-maxY) > tol {
		t.Fatalf("envelope %v, want [%v,%v]x[%v,%v] within %v", env, minX, maxX, minY, maxY, tol)
	}
}

// TestBufferPointRound checks that a round point buffer is the regular
// 4*Q-gon approximating the circle.
func TestBufferPointRound(t *testing.T) {
	f := floatFactory()
	res, err := Buffer(f.Point(geom.XY(0, 0)), 1)
	if err != nil {
		t.Fatalf("buffer failed: %v", err)
	}
	poly, ok := res.(*geom.Polygon)
	if !ok {
		t.Fatalf("expected a single polygon, got %T", res)
	}
	if n := poly.Shell().NumPoints() - 1; n != 4*DefaultQuadrantSegments {
		t.Fatalf("expected a %d-gon, got %d distinct vertices", 4*DefaultQuadrantSegments, n)
	}
	area := poly.Area()
	lo := math.Pi * (1 - 1.0/float64(DefaultQuadrantSegments*DefaultQuadrantSegments))
	if area < lo || area > math.Pi {
		t.Fatalf("area %v outside [%v, %v]", area, lo, math.Pi)
	}
	envApproxEqual(t, res.Envelope(), -1, -1, 1, 1, 0.005)

	if v := Validate(f.Point(geom.XY(0, 0)), 1, res); !v.Valid {
		t.Fatalf("validator rejected round point buffer: %v", v)
	}
}

// TestBufferPointSquareCap checks the square point buffer.
func TestBufferPointSquareCap(t *testing.T) {
	f := floatFactory()
	res, err := BufferWithStyle(f.Point(geom.XY(0, 0)), 1, 8, CapSquare)
	if err != nil {
		t.Fatalf("buffer failed: %v", err)
	}
	if a := resultArea(res); math.Abs(a-4) > 1e-9 {
		t.Fatalf("expected square of area 4, got %v", a)
	}
	envApproxEqual(t, res.Envelope(), -1, -1, 1, 1, 1e-9)
}

// TestBufferPointFlatCap checks that a flat cap on a point buffers to
// nothing.
func TestBufferPointFlatCap(t *testing.T) {
	f := floatFactory()
	res, err := BufferWithStyle(f.Point(geom.XY(0, 0)), 1, 8, CapFlat)
	if err != nil {
		t.Fatalf("buffer failed: %v", err)
	}
	if !res.IsEmpty() {
		t.Fatal("expected empty result for flat-capped point")
	}
}

// TestBufferLineFlat checks the exact rectangle produced by a flat-capped
// line buffer.
func TestBufferLineFlat(t *testing.T) {
	f := floatFactory()
	line, _ := f.LineString([]geom.Coord{geom.XY(0, 0), geom.XY(10, 0)})
	res, err := BufferWithStyle(line, 1, 8, CapFlat)
	if err != nil {
		t.Fatalf("buffer failed: %v", err)
	}
	if a := resultArea(res); math.Abs(a-20) > 1e-9 {
		t.Fatalf("expected rectangle area 20, got %v", a)
	}
	envApproxEqual(t, res.Envelope(), 0, -1, 10, 1, 1e-9)

	// The validator's envelope rule expects the input envelope grown by the
	// distance on every side; flat caps stop at the line ends, so the
	// validator flags this correct result.
	if v := Validate(line, 1, res); v.Valid {
		t.Fatal("expected the envelope check to flag the flat-capped buffer")
	}
}

// TestBufferLineRound checks a round-capped line buffer and its validator
// pass.
func TestBufferLineRound(t *testing.T) {
	f := floatFactory()
	line, _ := f.LineString([]geom.Coord{geom.XY(0, 0), geom.XY(10, 0), geom.XY(10, 8)})
	res, err := Buffer(line, 1)
	if err != nil {
		t.Fatalf("buffer failed: %v", err)
	}
	if res.IsEmpty() {
		t.Fatal("expected non-empty buffer")
	}
	// Length*2*d plus caps and the corner fillet, less the unit overlap at
	// the inside of the corner: the area must exceed the rectangle bound
	// and stay under the full stadium.
	a := resultArea(res)
	if a < 18*2*1 || a > 18*2*1+math.Pi+1 {
		t.Fatalf("area %v outside expected band", a)
	}
	if v := Validate(line, 1, res); !v.Valid {
		t.Fatalf("validator rejected round line buffer: %v", v)
	}
}

// TestBufferLineNegativeEmpty checks that non-positive distances on lineal
// and puntal inputs produce empty results.
func TestBufferLineNegativeEmpty(t *testing.T) {
	f := floatFactory()
	line, _ := f.LineString([]geom.Coord{geom.XY(0, 0), geom.XY(10, 0)})

	for _, d := range []float64{0, -1} {
		res, err := Buffer(line, d)
		if err != nil {
			t.Fatalf("buffer failed: %v", err)
		}
		if !res.IsEmpty() {
			t.Fatalf("expected empty result for distance %v on a line", d)
		}
		if v := Validate(line, d, res); !v.Valid {
			t.Fatalf("validator rejected mandatory-empty result: %v", v)
		}
	}

	res, err := Buffer(f.Point(geom.XY(3, 3)), -0.5)
	if err != nil {
		t.Fatalf("buffer failed: %v", err)
	}
	if !res.IsEmpty() {
		t.Fatal("expected empty result for negative distance on a point")
	}
}

// TestBufferPolygonErosion checks the inward buffer of a square.
func TestBufferPolygonErosion(t *testing.T) {
	f := floatFactory()
	res, err := Buffer(squarePolygon(t, f), -1)
	if err != nil {
		t.Fatalf("buffer failed: %v", err)
	}
	if a := resultArea(res); math.Abs(a-64) > 1e-9 {
		t.Fatalf("expected eroded area 64, got %v", a)
	}
	envApproxEqual(t, res.Envelope(), 1, 1, 9, 9, 1e-9)

	if v := Validate(squarePolygon(t, f), -1, res); !v.Valid {
		t.Fatalf("validator rejected erosion: %v", v)
	}
}

// TestBufferPolygonErosionToEmpty checks that over-eroding eliminates the
// polygon.
func TestBufferPolygonErosionToEmpty(t *testing.T) {
	f := floatFactory()
	res, err := Buffer(squarePolygon(t, f), -6)
	if err != nil {
		t.Fatalf("buffer failed: %v", err)
	}
	if !res.IsEmpty() {
		t.Fatal("expected empty result for erosion beyond the inradius")
	}
}

// TestBufferPolygonExpansion checks area growth and envelope expansion of
// a positive polygon buffer.
func TestBufferPolygonExpansion(t *testing.T) {
	f := floatFactory()
	sq := squarePolygon(t, f)
	res, err := Buffer(sq, 2)
	if err != nil {
		t.Fatalf("buffer failed: %v", err)
	}
	// Exact area: square + side strips + corner quarter-circle fans.
	want := 100 + 4*10*2 + math.Pi*4
	a := resultArea(res)
	if a > want+1e-6 || a < want-0.1 {
		t.Fatalf("area %v not within fillet error of %v", a, want)
	}
	envApproxEqual(t, res.Envelope(), -2, -2, 12, 12, 1e-9)

	if v := Validate(sq, 2, res); !v.Valid {
		t.Fatalf("validator rejected expansion: %v", v)
	}
}

// TestBufferBowtieZero checks that a zero-distance buffer repairs a
// self-intersecting shell into the two triangles.
func TestBufferBowtieZero(t *testing.T) {
	f := floatFactory()
	bow, err := f.PolygonFromCoords([]geom.Coord{
		geom.XY(0, 0), geom.XY(10, 10), geom.XY(0, 10), geom.XY(10, 0), geom.XY(0, 0),
	})
	if err != nil {
		t.Fatalf("bowtie construction: %v", err)
	}
	res, err := Buffer(bow, 0)
	if err != nil {
		t.Fatalf("buffer failed: %v", err)
	}
	mp, ok := res.(*geom.MultiPolygon)
	if !ok {
		t.Fatalf("expected multi-polygon of the two lobes, got %T", res)
	}
	if len(mp.Elements()) != 2 {
		t.Fatalf("expected 2 lobes, got %d", len(mp.Elements()))
	}
	// Each lobe is a triangle of area 25.
	if a := mp.Area(); math.Abs(a-50) > 1e-9 {
		t.Fatalf("expected total area 50, got %v", a)
	}
}

// TestBufferPolygonWithHole checks scenario and hole survival: the outer
// ring expands while the hole shrinks.
func TestBufferPolygonWithHole(t *testing.T) {
	f := floatFactory()
	poly, err := f.PolygonFromCoords(
		[]geom.Coord{geom.XY(0, 0), geom.XY(10, 0), geom.XY(10, 10), geom.XY(0, 10), geom.XY(0, 0)},
		[]geom.Coord{geom.XY(4, 4), geom.XY(6, 4), geom.XY(6, 6), geom.XY(4, 6), geom.XY(4, 4)},
	)
	if err != nil {
		t.Fatalf("holed polygon: %v", err)
	}

	res, err := Buffer(poly, 0.5)
	if err != nil {
		t.Fatalf("buffer failed: %v", err)
	}
	out, ok := res.(*geom.Polygon)
	if !ok {
		t.Fatalf("expected single polygon, got %T", res)
	}
	if len(out.Holes()) != 1 {
		t.Fatalf("expected surviving hole, got %d holes", len(out.Holes()))
	}
	holeEnv := out.Holes()[0].Envelope()
	envApproxEqual(t, holeEnv, 4.5, 4.5, 5.5, 5.5, 1e-9)

	// A distance beyond the hole inradius removes the hole.
	res2, err := Buffer(poly, 1.5)
	if err != nil {
		t.Fatalf("buffer failed: %v", err)
	}
	out2, ok := res2.(*geom.Polygon)
	if !ok {
		t.Fatalf("expected single polygon, got %T", res2)
	}
	if len(out2.Holes()) != 0 {
		t.Fatalf("expected hole to vanish, got %d holes", len(out2.Holes()))
	}
}

// TestBufferEmptyAndInvalidInputs checks the input contract.
func TestBufferEmptyAndInvalidInputs(t *testing.T) {
	f := floatFactory()

	res, err := Buffer(f.EmptyPolygon(), 2)
	if err != nil {
		t.Fatalf("buffer of empty input failed: %v", err)
	}
	if !res.IsEmpty() {
		t.Fatal("expected empty result for empty input")
	}

	if _, err := Buffer(f.Point(geom.XY(0, 0)), math.NaN()); err != ErrInvalidDistance {
		t.Fatalf("expected ErrInvalidDistance, got %v", err)
	}
	if _, err := BufferWithSegments(f.Point(geom.XY(0, 0)), 1, 0); err != ErrInvalidQuadrantSegments {
		t.Fatalf("expected ErrInvalidQuadrantSegments, got %v", err)
	}
	if _, err := BufferWithStyle(f.Point(geom.XY(0, 0)), 1, 8, CapStyle(9)); err != ErrInvalidCapStyle {
		t.Fatalf("expected ErrInvalidCapStyle, got %v", err)
	}
	if _, err := Buffer(f.Point(geom.XY(math.Inf(1), 0)), 1); err != ErrNonFiniteCoordinate {
		t.Fatalf("expected ErrNonFiniteCoordinate, got %v", err)
	}
}

// TestBufferDeterminism checks bit-identical output across runs.
func TestBufferDeterminism(t *testing.T) {
	f := floatFactory()
	line, _ := f.LineString([]geom.Coord{
		geom.XY(0, 0), geom.XY(7, 3), geom.XY(12, -2), geom.XY(20, 5),
	})
	a, err := Buffer(line, 1.5)
	if err != nil {
		t.Fatalf("buffer failed: %v", err)
	}
	b, err := Buffer(line, 1.5)
	if err != nil {
		t.Fatalf("buffer failed: %v", err)
	}
	sa := boundarySequences(a)
	sb := boundarySequences(b)
	if len(sa) != len(sb) {
		t.Fatalf("ring counts differ: %d vs %d", len(sa), len(sb))
	}
	for i := range sa {
		if len(sa[i]) != len(sb[i]) {
			t.Fatalf("ring %d lengths differ", i)
		}
		for j := range sa[i] {
			if !sa[i][j].Equals2D(sb[i][j]) {
				t.Fatalf("ring %d vertex %d differs: %v vs %v", i, j, sa[i][j], sb[i][j])
			}
		}
	}
}

// TestBufferMonotonicity checks containment of smaller buffers in larger
// ones through area growth plus boundary sampling.
func TestBufferMonotonicity(t *testing.T) {
	f := floatFactory()
	line, _ := f.LineString([]geom.Coord{geom.XY(0, 0), geom.XY(10, 0), geom.XY(10, 8)})

	small, err := Buffer(line, 0.5)
	if err != nil {
		t.Fatalf("buffer failed: %v", err)
	}
	big, err := Buffer(line, 1.5)
	if err != nil {
		t.Fatalf("buffer failed: %v", err)
	}
	if resultArea(small) >= resultArea(big) {
		t.Fatal("smaller distance must give smaller area")
	}
	bigShell := big.(*geom.Polygon).Shell().Coords()
	for _, seq := range boundarySequences(small) {
		for _, p := range seq {
			if !geom.PointInRing(p, bigShell) {
				t.Fatalf("small-buffer boundary point %v escapes the larger buffer", p)
			}
		}
	}
}

// TestBufferRoundTripSymmetry checks that buffering out and back restores
// a convex polygon within the fillet chord error.
func TestBufferRoundTripSymmetry(t *testing.T) {
	f := floatFactory()
	sq := squarePolygon(t, f)

	grown, err := Buffer(sq, 1)
	if err != nil {
		t.Fatalf("buffer failed: %v", err)
	}
	back, err := Buffer(grown, -1)
	if err != nil {
		t.Fatalf("unbuffer failed: %v", err)
	}
	if back.IsEmpty() {
		t.Fatal("round trip must not be empty")
	}
	envApproxEqual(t, back.Envelope(), 0, 0, 10, 10, 0.02)
	a := resultArea(back)
	if a > 100+1e-6 || a < 99.5 {
		t.Fatalf("round-trip area %v too far from 100", a)
	}
}

// TestBufferGeometryCollection checks that a collection buffers to the
// union of its element buffers.
func TestBufferGeometryCollection(t *testing.T) {
	f := floatFactory()
	line, _ := f.LineString([]geom.Coord{geom.XY(20, 0), geom.XY(30, 0)})
	gc := f.GeometryCollection([]geom.Geometry{
		f.Point(geom.XY(0, 0)),
		line,
	})
	res, err := Buffer(gc, 1)
	if err != nil {
		t.Fatalf("buffer failed: %v", err)
	}
	mp, ok := res.(*geom.MultiPolygon)
	if !ok {
		t.Fatalf("expected multi-polygon for disjoint elements, got %T", res)
	}
	if len(mp.Elements()) != 2 {
		t.Fatalf("expected 2 components, got %d", len(mp.Elements()))
	}
}

// TestBufferFixedPrecisionModel checks that a fixed input model is used
// directly and the output lies on its grid.
func TestBufferFixedPrecisionModel(t *testing.T) {
	f := geom.NewFactory(geom.NewFixedPrecision(10))
	line, _ := f.LineString([]geom.Coord{geom.XY(0, 0), geom.XY(10, 0)})
	res, err := Buffer(line, 1)
	if err != nil {
		t.Fatalf("buffer failed: %v", err)
	}
	if res.IsEmpty() {
		t.Fatal("expected non-empty buffer")
	}
	pm := f.PrecisionModel()
	for _, seq := range boundarySequences(res) {
		for _, p := range seq {
			if p.X != pm.MakePrecise(p.X) || p.Y != pm.MakePrecise(p.Y) {
				t.Fatalf("output vertex %v off the fixed grid", p)
			}
		}
	}
}

// TestBufferClosedLineAnnulus checks that buffering a bare ring yields an
// annulus around the ring curve.
func TestBufferClosedLineAnnulus(t *testing.T) {
	f := floatFactory()
	ring, err := f.LinearRing([]geom.Coord{
		geom.XY(0, 0), geom.XY(10, 0), geom.XY(10, 10), geom.XY(0, 10),
	})
	if err != nil {
		t.Fatalf("ring: %v", err)
	}
	res, err := Buffer(ring, 1)
	if err != nil {
		t.Fatalf("buffer failed: %v", err)
	}
	poly, ok := res.(*geom.Polygon)
	if !ok {
		t.Fatalf("expected annulus polygon, got %T", res)
	}
	if len(poly.Holes()) != 1 {
		t.Fatalf("expected one hole in the annulus, got %d", len(poly.Holes()))
	}
	if !geom.PointInRing(geom.XY(5, 5), poly.Holes()[0].Coords()) {
		t.Fatal("ring center must fall in the annulus hole")
	}
}
