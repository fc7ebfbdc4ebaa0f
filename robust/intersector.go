package robust

import (
	"errors"
	"math"

	"github.com/simplegeo/jts/geom"
)

// ErrNonRepresentable indicates that a numerical primitive has no
// representable result, such as the intersection of near-parallel lines.
// No caller converts it into a geom.TopologyError: the line intersector
// falls back to the nearest input endpoint and the mitre join to a bevel.
var ErrNonRepresentable = errors.New("robust: intersection not representable")

// IntersectionKind classifies the result of a segment/segment intersection.
type IntersectionKind uint8

const (
	// NoIntersection means the segments are disjoint.
	NoIntersection IntersectionKind = iota
	// PointIntersection means the segments meet in a single point.
	PointIntersection
	// CollinearIntersection means the segments overlap along a line; the
	// two extreme overlap endpoints are reported.
	CollinearIntersection
)

// LineIntersector computes robust segment/segment intersections. A single
// intersector is reused across many segment pairs; each Compute call
// overwrites the previous result. Not safe for concurrent use.
type LineIntersector struct {
	pm *geom.PrecisionModel

	kind   IntersectionKind
	proper bool
	in     [2][2]geom.Coord
	pts    [2]geom.Coord
}

// NewLineIntersector returns an intersector that rounds computed proper
// intersection points through pm; nil selects no rounding.
func NewLineIntersector(pm *geom.PrecisionModel) *LineIntersector {
	return &LineIntersector{pm: pm}
}

// Compute calculates the intersection of segments (p1, p2) and (q1, q2).
// For proper intersections the stored point is the unique geometric
// intersection rounded once through the precision model. If an input
// endpoint equals an intersection endpoint after rounding, the stored point
// equals that endpoint bit-for-bit.
func (li *LineIntersector) Compute(p1, p2, q1, q2 geom.Coord) {
	li.in[0][0], li.in[0][1] = p1, p2
	li.in[1][0], li.in[1][1] = q1, q2
	li.kind = NoIntersection
	li.proper = false

	if !segEnvOverlaps(p1, p2, q1, q2) {
		return
	}

	pq1 := OrientationIndex(p1, p2, q1)
	pq2 := OrientationIndex(p1, p2, q2)
	if (pq1 > 0 && pq2 > 0) || (pq1 < 0 && pq2 < 0) {
		return
	}
	qp1 := OrientationIndex(q1, q2, p1)
	qp2 := OrientationIndex(q1, q2, p2)
	if (qp1 > 0 && qp2 > 0) || (qp1 < 0 && qp2 < 0) {
		return
	}

	if pq1 == 0 && pq2 == 0 && qp1 == 0 && qp2 == 0 {
		li.computeCollinear(p1, p2, q1, q2)
		return
	}

	if pq1 == 0 || pq2 == 0 || qp1 == 0 || qp2 == 0 {
		// A segment endpoint lies on the other segment. Return that
		// endpoint verbatim so shared vertices stay bit-for-bit equal.
		li.kind = PointIntersection
		switch {
		case p1.Equals2D(q1) || p1.Equals2D(q2):
			li.pts[0] = p1
		case p2.Equals2D(q1) || p2.Equals2D(q2):
			li.pts[0] = p2
		case pq1 == 0:
			li.pts[0] = q1
		case pq2 == 0:
			li.pts[0] = q2
		case qp1 == 0:
			li.pts[0] = p1
		default:
			li.pts[0] = p2
		}
		return
	}

	li.kind = PointIntersection
	li.proper = true
	li.pts[0] = li.properIntersection(p1, p2, q1, q2)
	if li.pts[0].Equals2D(p1) || li.pts[0].Equals2D(p2) ||
		li.pts[0].Equals2D(q1) || li.pts[0].Equals2D(q2) {
		li.proper = false
	}
}

// computeCollinear determines the overlap of two collinear segments.
func (li *LineIntersector) computeCollinear(p1, p2, q1, q2 geom.Coord) {
	q1inP := envCovers(p1, p2, q1)
	q2inP := envCovers(p1, p2, q2)
	p1inQ := envCovers(q1, q2, p1)
	p2inQ := envCovers(q1, q2, p2)

	switch {
	case q1inP && q2inP:
		li.setCollinear(q1, q2)
	case p1inQ && p2inQ:
		li.setCollinear(p1, p2)
	case q1inP && p1inQ:
		li.setCollinearMaybePoint(q1, p1, q2inP || p2inQ)
	case q1inP && p2inQ:
		li.setCollinearMaybePoint(q1, p2, q2inP || p1inQ)
	case q2inP && p1inQ:
		li.setCollinearMaybePoint(q2, p1, q1inP || p2inQ)
	case q2inP && p2inQ:
		li.setCollinearMaybePoint(q2, p2, q1inP || p1inQ)
	}
}

func (li *LineIntersector) setCollinear(a, b geom.Coord) {
	if a.Equals2D(b) {
		li.kind = PointIntersection
		li.pts[0] = a
		return
	}
	li.kind = CollinearIntersection
	li.pts[0], li.pts[1] = a, b
}

func (li *LineIntersector) setCollinearMaybePoint(a, b geom.Coord, more bool) {
	if a.Equals2D(b) && !more {
		li.kind = PointIntersection
		li.pts[0] = a
		return
	}
	li.setCollinear(a, b)
}

// properIntersection computes the interior crossing point. The inputs are
// conditioned by translating to their common midpoint before the
// homogeneous computation; if the result still falls outside either segment
// envelope, the nearest input endpoint is used instead.
func (li *LineIntersector) properIntersection(p1, p2, q1, q2 geom.Coord) geom.Coord {
	mid := geom.XY((p1.X+p2.X+q1.X+q2.X)/4, (p1.Y+p2.Y+q1.Y+q2.Y)/4)
	t := func(c geom.Coord) geom.Coord { return geom.XY(c.X-mid.X, c.Y-mid.Y) }

	pt, err := HIntersection(t(p1), t(p2), t(q1), t(q2))
	if err != nil {
		return nearestEndpoint(p1, p2, q1, q2)
	}
	pt.X += mid.X
	pt.Y += mid.Y

	if !(envCoversLoose(p1, p2, pt) && envCoversLoose(q1, q2, pt)) {
		pt = nearestEndpoint(p1, p2, q1, q2)
	}
	if li.pm != nil {
		pt = li.pm.MakeCoordPrecise(pt)
	}
	return pt
}

// HIntersection intersects the full lines through (p1, p2) and (q1, q2)
// using homogeneous coordinates. It returns ErrNonRepresentable when the
// lines are parallel or the computation overflows.
func HIntersection(p1, p2, q1, q2 geom.Coord) (geom.Coord, error) {
	px := p1.Y - p2.Y
	py := p2.X - p1.X
	pw := p1.X*p2.Y - p2.X*p1.Y

	qx := q1.Y - q2.Y
	qy := q2.X - q1.X
	qw := q1.X*q2.Y - q2.X*q1.Y

	x := py*qw - qy*pw
	y := qx*pw - px*qw
	w := px*qy - qx*py

	xInt := x / w
	yInt := y / w
	if math.IsNaN(xInt) || math.IsInf(xInt, 0) || math.IsNaN(yInt) || math.IsInf(yInt, 0) {
		return geom.Coord{}, ErrNonRepresentable
	}
	return geom.XY(xInt, yInt), nil
}

// nearestEndpoint returns the input endpoint closest to the other segment.
// Used as a safe fallback when the computed crossing is numerically
// unusable; the true intersection is within rounding distance of it.
func nearestEndpoint(p1, p2, q1, q2 geom.Coord) geom.Coord {
	nearest := p1
	minDist := geom.DistancePointSegment(p1, q1, q2)
	if d := geom.DistancePointSegment(p2, q1, q2); d < minDist {
		minDist = d
		nearest = p2
	}
	if d := geom.DistancePointSegment(q1, p1, p2); d < minDist {
		minDist = d
		nearest = q1
	}
	if d := geom.DistancePointSegment(q2, p1, p2); d < minDist {
		nearest = q2
	}
	return nearest
}

// HasIntersection reports whether the last Compute found any intersection.
func (li *LineIntersector) HasIntersection() bool {
	return li.kind != NoIntersection
}

// Kind returns the classification of the last Compute.
func (li *LineIntersector) Kind() IntersectionKind { return li.kind }

// NumPoints returns the number of intersection points available.
func (li *LineIntersector) NumPoints() int {
	switch li.kind {
	case PointIntersection:
		return 1
	case CollinearIntersection:
		return 2
	default:
		return 0
	}
}

// Point returns the i-th intersection point.
func (li *LineIntersector) Point(i int) geom.Coord { return li.pts[i] }

// IsProper reports whether the intersection lies strictly inside both
// segments.
func (li *LineIntersector) IsProper() bool {
	return li.HasIntersection() && li.proper
}

// IsInteriorIntersection reports whether an intersection point lies
// strictly inside at least one of the two input segments.
func (li *LineIntersector) IsInteriorIntersection() bool {
	for i := 0; i < li.NumPoints(); i++ {
		pt := li.pts[i]
		interior := true
		for seg := 0; seg < 2; seg++ {
			if pt.Equals2D(li.in[seg][0]) || pt.Equals2D(li.in[seg][1]) {
				interior = false
			}
		}
		if interior {
			return true
		}
	}
	return false
}

func segEnvOverlaps(p1, p2, q1, q2 geom.Coord) bool {
	if math.Max(p1.X, p2.X) < math.Min(q1.X, q2.X) ||
		math.Max(q1.X, q2.X) < math.Min(p1.X, p2.X) {
		return false
	}
	if math.Max(p1.Y, p2.Y) < math.Min(q1.Y, q2.Y) ||
		math.Max(q1.Y, q2.Y) < math.Min(p1.Y, p2.Y) {
		return false
	}
	return true
}

func envCovers(a, b, p geom.Coord) bool {
	return p.X >= math.Min(a.X, b.X) && p.X <= math.Max(a.X, b.X) &&
		p.Y >= math.Min(a.Y, b.Y) && p.Y <= math.Max(a.Y, b.Y)
}

// envCoversLoose is envCovers with a relative tolerance, used only as a
// sanity check on computed crossings.
func envCoversLoose(a, b, p geom.Coord) bool {
	tol := 1e-9 * (math.Abs(a.X) + math.Abs(b.X) + math.Abs(a.Y) + math.Abs(b.Y) + 1)
	return p.X >= math.Min(a.X, b.X)-tol && p.X <= math.Max(a.X, b.X)+tol &&
		p.Y >= math.Min(a.Y, b.Y)-tol && p.Y <= math.Max(a.Y, b.Y)+tol
}
