package buffer

import (
	"github.com/simplegeo/jts/geom"
)

// MinkowskiSum returns the Minkowski sum of a pattern shape swept along a
// path: the union of the pattern translated to every path vertex together
// with the quadrilaterals swept between consecutive placements. A closed
// path sweeps its closing segment as well.
//
// The quadrilaterals are pushed through the same node / label / build
// pipeline as buffer curves, so the result is a valid Polygon or
// MultiPolygon in the factory's precision model.
func MinkowskiSum(fac *geom.Factory, pattern, path []geom.Coord, closed bool) (geom.Geometry, error) {
	return minkowski(fac, pattern, path, true, closed)
}

// MinkowskiDiff returns the Minkowski difference: the pattern is reflected
// through the origin before sweeping. The sweep itself is the same as in
// MinkowskiSum, so a point-symmetric pattern gives the same result.
func MinkowskiDiff(fac *geom.Factory, pattern, path []geom.Coord, closed bool) (geom.Geometry, error) {
	return minkowski(fac, pattern, path, false, closed)
}

func minkowski(fac *geom.Factory, pattern, path []geom.Coord, isSum, closed bool) (geom.Geometry, error) {
	pattern = geom.RemoveRepeated(openRing(pattern))
	path = geom.RemoveRepeated(openRing(path))
	if len(pattern) == 0 || len(path) == 0 {
		return nil, ErrEmptyPattern
	}
	for _, p := range append(geom.CloneCoords(pattern), path...) {
		if !p.IsFinite() {
			return nil, ErrNonFiniteCoordinate
		}
	}

	quads := minkowskiQuads(pattern, path, isSum, closed)
	env := geom.Envelope{}
	for _, q := range quads {
		for _, p := range q {
			env.ExpandToInclude(p)
		}
	}

	p := &pipeline{
		fac: fac,
		env: env,
		curveFn: func(pm *geom.PrecisionModel) ([][]geom.Coord, error) {
			out := make([][]geom.Coord, 0, len(quads))
			for _, q := range quads {
				rounded := make([]geom.Coord, len(q))
				for i, c := range q {
					rounded[i] = pm.MakeCoordPrecise(c)
				}
				rounded = geom.CloseRing(geom.RemoveRepeated(rounded))
				if len(rounded) >= 4 {
					out = append(out, rounded)
				}
			}
			return out, nil
		},
	}
	return p.run()
}

// openRing strips an explicit closing vertex.
func openRing(pts []geom.Coord) []geom.Coord {
	if len(pts) > 1 && pts[0].Equals2D(pts[len(pts)-1]) {
		return pts[:len(pts)-1]
	}
	return pts
}

// minkowskiQuads places the pattern at every path vertex and builds the
// swept quadrilaterals between consecutive placements, reoriented
// counter-clockwise so every quad contributes positive winding.
func minkowskiQuads(pattern, path []geom.Coord, isSum, closed bool) [][]geom.Coord {
	placed := make([][]geom.Coord, len(path))
	for i, pp := range path {
		row := make([]geom.Coord, len(pattern))
		for j, qp := range pattern {
			if isSum {
				row[j] = geom.XY(pp.X+qp.X, pp.Y+qp.Y)
			} else {
				row[j] = geom.XY(pp.X-qp.X, pp.Y-qp.Y)
			}
		}
		placed[i] = row
	}

	first := 1
	prev := 0
	if closed {
		first = 0
		prev = len(path) - 1
	}

	var quads [][]geom.Coord
	patLen := len(pattern)
	for i := first; i < len(path); i++ {
		h := patLen - 1
		for j := 0; j < patLen; j++ {
			quad := []geom.Coord{
				placed[prev][h],
				placed[i][h],
				placed[i][j],
				placed[prev][j],
			}
			if geom.SignedArea(quad) < 0 {
				geom.ReverseCoords(quad)
			}
			quads = append(quads, geom.CloseRing(quad))
			h = j
		}
		prev = i
	}

	// The pattern footprint at each placement covers the degenerate sweep
	// of zero-length steps and single-vertex paths.
	if patLen >= 3 {
		for _, row := range placed {
			ring := geom.CloneCoords(row)
			if geom.SignedArea(ring) < 0 {
				geom.ReverseCoords(ring)
			}
			quads = append(quads, geom.CloseRing(ring))
		}
	}
	return quads
}
