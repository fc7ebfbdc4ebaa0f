package buffer

import (
	"fmt"
	"math"

	"github.com/simplegeo/jts/geom"
)

// distanceBandTolerance is the relative width of the acceptable Hausdorff
// band around the buffer distance.
const distanceBandTolerance = 0.01

// envelopePadFactor pads the result envelope, relative to the buffer
// distance, before the containment check.
const envelopePadFactor = 0.01

// densifyFraction subdivides boundary segments for the discrete Hausdorff
// sampling, as a fraction of the buffer distance.
const densifyFraction = 0.25

// Validation is the outcome of the heuristic buffer result check. A failed
// validation carries a human-readable message and an error location; it is
// advisory and never raised as an error.
type Validation struct {
	Valid    bool
	Msg      string
	Location geom.Coord
}

func (v *Validation) String() string {
	if v.Valid {
		return "valid"
	}
	return fmt.Sprintf("invalid: %s near %v", v.Msg, v.Location)
}

// Validate applies the heuristic checks to a buffer result, short-circuiting
// on the first failure: the result kind, mandatory emptiness, envelope
// expansion, area sign, and the boundary distance band.
func Validate(input geom.Geometry, distance float64, result geom.Geometry) *Validation {
	switch result.(type) {
	case *geom.Polygon, *geom.MultiPolygon:
	default:
		return invalid("result is not polygonal", locationOf(result))
	}

	if distance <= 0 && input.Dimension() < 2 {
		if !result.IsEmpty() {
			return invalid("non-empty result for non-positive distance on a non-areal input", locationOf(result))
		}
		return &Validation{Valid: true}
	}

	if v := checkEnvelope(input, distance, result); v != nil {
		return v
	}
	if v := checkAreaSign(input, distance, result); v != nil {
		return v
	}
	if v := checkDistanceBand(input, distance, result); v != nil {
		return v
	}
	return &Validation{Valid: true}
}

func invalid(msg string, at geom.Coord) *Validation {
	return &Validation{Msg: msg, Location: at}
}

func locationOf(g geom.Geometry) geom.Coord {
	env := g.Envelope()
	if env.IsNull() {
		return geom.Coord{}
	}
	return geom.XY((env.MinX()+env.MaxX())/2, (env.MinY()+env.MaxY())/2)
}

// checkEnvelope verifies that the result envelope, padded slightly,
// contains the input envelope expanded by the distance.
func checkEnvelope(input geom.Geometry, distance float64, result geom.Geometry) *Validation {
	if distance < 0 || input.IsEmpty() || result.IsEmpty() {
		return nil
	}
	expected := input.Envelope().ExpandedBy(distance)
	padded := result.Envelope().ExpandedBy(envelopePadFactor * math.Abs(distance))
	if !padded.Covers(expected) {
		return invalid("result envelope does not cover the expanded input envelope", locationOf(result))
	}
	return nil
}

// checkAreaSign verifies that positive distances never shrink and negative
// distances never grow a polygonal input.
func checkAreaSign(input geom.Geometry, distance float64, result geom.Geometry) *Validation {
	if input.Dimension() < 2 {
		return nil
	}
	inArea := geom.Area(input)
	outArea := geom.Area(result)
	tol := 1e-9 * (inArea + 1)
	if distance > 0 && outArea < inArea-tol {
		return invalid("positive distance shrank the area", locationOf(result))
	}
	if distance < 0 && outArea > inArea+tol {
		return invalid("negative distance grew the area", locationOf(result))
	}
	return nil
}

// checkDistanceBand verifies that the densified discrete Hausdorff
// distance from the result boundary to the input boundary lies within one
// percent of the buffer distance. The check is one-sided: every result
// boundary point lies at exactly the buffer distance from the input
// boundary, while the reverse direction legitimately exceeds the distance
// at reflex corners and partially eroded features.
func checkDistanceBand(input geom.Geometry, distance float64, result geom.Geometry) *Validation {
	d := math.Abs(distance)
	if d == 0 || result.IsEmpty() || input.IsEmpty() {
		return nil
	}
	resB := boundarySequences(result)
	inB := boundarySequences(input)
	if len(resB) == 0 || len(inB) == 0 {
		return nil
	}

	h, at := orientedHausdorff(resB, inB, densifyFraction*d)

	lo := d * (1 - distanceBandTolerance)
	hi := d * (1 + distanceBandTolerance)
	if h < lo || h > hi {
		return invalid(fmt.Sprintf("boundary distance %.6g outside band [%.6g, %.6g]", h, lo, hi), at)
	}
	return nil
}

// boundarySequences extracts the boundary of a geometry as coordinate
// sequences: rings and lines verbatim, points as single-coordinate runs.
func boundarySequences(g geom.Geometry) [][]geom.Coord {
	var out [][]geom.Coord
	switch t := g.(type) {
	case *geom.Point:
		if !t.IsEmpty() {
			out = append(out, []geom.Coord{t.Coord()})
		}
	case *geom.LinearRing:
		out = append(out, t.Coords())
	case *geom.LineString:
		out = append(out, t.Coords())
	case *geom.Polygon:
		if !t.IsEmpty() {
			out = append(out, t.Shell().Coords())
			for _, h := range t.Holes() {
				out = append(out, h.Coords())
			}
		}
	case *geom.MultiPoint:
		for _, e := range t.Elements() {
			out = append(out, boundarySequences(e)...)
		}
	case *geom.MultiLineString:
		for _, e := range t.Elements() {
			out = append(out, boundarySequences(e)...)
		}
	case *geom.MultiPolygon:
		for _, e := range t.Elements() {
			out = append(out, boundarySequences(e)...)
		}
	case *geom.GeometryCollection:
		for _, e := range t.Elements() {
			out = append(out, boundarySequences(e)...)
		}
	}
	return out
}

// orientedHausdorff returns the maximum, over samples of the sequences in
// from (densified to the given step), of the distance to the nearest
// segment of to, along with the sample achieving it.
func orientedHausdorff(from, to [][]geom.Coord, step float64) (float64, geom.Coord) {
	var best float64
	var at geom.Coord
	visit := func(p geom.Coord) {
		d := distanceToSequences(p, to)
		if d > best {
			best = d
			at = p
		}
	}
	for _, seq := range from {
		if len(seq) == 1 {
			visit(seq[0])
			continue
		}
		for i := 0; i+1 < len(seq); i++ {
			a, b := seq[i], seq[i+1]
			visit(a)
			if step > 0 {
				segLen := a.Distance(b)
				for n := 1; float64(n)*step < segLen; n++ {
					t := float64(n) * step / segLen
					visit(geom.XY(a.X+t*(b.X-a.X), a.Y+t*(b.Y-a.Y)))
				}
			}
		}
		visit(seq[len(seq)-1])
	}
	return best, at
}

func distanceToSequences(p geom.Coord, seqs [][]geom.Coord) float64 {
	best := math.Inf(1)
	for _, seq := range seqs {
		if len(seq) == 1 {
			if d := p.Distance(seq[0]); d < best {
				best = d
			}
			continue
		}
		for i := 0; i+1 < len(seq); i++ {
			if d := geom.DistancePointSegment(p, seq[i], seq[i+1]); d < best {
				best = d
			}
		}
	}
	return best
}
