package buffer

import (
	"math"

	"github.com/golang/geo/r2"

	"github.com/simplegeo/jts/geom"
	"github.com/simplegeo/jts/robust"
)

// offsetSegmentSeparationFactor is the fraction of the buffer distance
// below which two offset stubs are treated as coincident.
const offsetSegmentSeparationFactor = 1.0e-3

// insideTurnVertexSnapDistanceFactor is the fraction of the buffer
// distance below which a failed inside-turn intersection collapses to a
// single offset point.
const insideTurnVertexSnapDistanceFactor = 1.0e-3

// simplifyFactor is the fraction of the buffer distance used as the input
// simplification tolerance.
const simplifyFactor = 0.01

// segmentGenerator emits one raw offset curve. The curve runs at the
// signed perpendicular distance on the right of the direction of travel
// (positive distances offset right, negative left), with fillet arcs at
// outside turns and the centre-point fix at inside turns. Every emitted
// coordinate is rounded through the precision model, and consecutive
// duplicates are collapsed.
type segmentGenerator struct {
	pm       *geom.PrecisionModel
	params   Params
	distance float64
	absDist  float64
	quantum  float64 // fillet angular step

	li *robust.LineIntersector

	s0, s1, s2       geom.Coord
	offset0, offset1 [2]geom.Coord

	pts []geom.Coord
}

func newSegmentGenerator(pm *geom.PrecisionModel, params Params, distance float64) *segmentGenerator {
	return &segmentGenerator{
		pm:       pm,
		params:   params,
		distance: distance,
		absDist:  math.Abs(distance),
		quantum:  math.Pi / 2 / float64(params.QuadrantSegments),
		li:       robust.NewLineIntersector(nil),
	}
}

// addPoint appends a curve vertex, rounding it and collapsing duplicates.
func (g *segmentGenerator) addPoint(p geom.Coord) {
	p = g.pm.MakeCoordPrecise(p)
	if n := len(g.pts); n > 0 && g.pts[n-1].Equals2D(p) {
		return
	}
	g.pts = append(g.pts, p)
}

// closeRing appends the first vertex so the curve is an explicit ring.
func (g *segmentGenerator) closeRing() {
	if len(g.pts) > 0 && !g.pts[0].Equals2D(g.pts[len(g.pts)-1]) {
		g.pts = append(g.pts, g.pts[0])
	}
}

func (g *segmentGenerator) curve() []geom.Coord { return g.pts }

// offsetSegment returns segment (a, b) translated by the signed distance
// along its right-hand unit normal.
func (g *segmentGenerator) offsetSegment(a, b geom.Coord) [2]geom.Coord {
	u := b.R2().Sub(a.R2()).Normalize()
	n := r2.Point{X: u.Y, Y: -u.X}.Mul(g.distance)
	return [2]geom.Coord{
		geom.XY(a.X+n.X, a.Y+n.Y),
		geom.XY(b.X+n.X, b.Y+n.Y),
	}
}

// initSideSegments seeds the generator with the first segment of a side.
func (g *segmentGenerator) initSideSegments(s1, s2 geom.Coord) {
	g.s1, g.s2 = s1, s2
	g.offset1 = g.offsetSegment(s1, s2)
}

// addNextSegment advances to the next input vertex, emitting the corner
// geometry between the previous and current offset segments.
func (g *segmentGenerator) addNextSegment(p geom.Coord) {
	if p.Equals2D(g.s2) {
		return
	}
	g.s0, g.s1, g.s2 = g.s1, g.s2, p
	g.offset0 = g.offset1
	g.offset1 = g.offsetSegment(g.s1, g.s2)

	orientation := robust.OrientationIndex(g.s0, g.s1, g.s2)
	outside := (orientation == robust.CounterClockwise && g.distance > 0) ||
		(orientation == robust.Clockwise && g.distance < 0)

	switch {
	case orientation == robust.Collinear:
		g.addCollinear()
	case outside:
		g.addOutsideTurn()
	default:
		g.addInsideTurn()
	}
}

// addLastSegment emits the terminal offset point of the current side.
func (g *segmentGenerator) addLastSegment() {
	g.addPoint(g.offset1[1])
}

// addCollinear handles straight-through and 180-degree-reversal corners. A
// straight continuation needs no corner geometry; a reversal (legal only on
// line inputs) gets a half-circle fillet, or a flat chord for non-round
// joins.
func (g *segmentGenerator) addCollinear() {
	g.li.Compute(g.s0, g.s1, g.s1, g.s2)
	if g.li.NumPoints() < 2 {
		return
	}
	if g.params.JoinStyle == JoinRound {
		g.addCornerFillet(g.s1, g.offset0[1], g.offset1[0])
		return
	}
	g.addPoint(g.offset0[1])
	g.addPoint(g.offset1[0])
}

// addOutsideTurn emits the join on the convex side of a corner.
func (g *segmentGenerator) addOutsideTurn() {
	if g.offset0[1].Distance(g.offset1[0]) < g.absDist*offsetSegmentSeparationFactor {
		g.addPoint(g.offset0[1])
		return
	}
	switch g.params.JoinStyle {
	case JoinMitre:
		g.addMitreJoin()
	case JoinBevel:
		g.addPoint(g.offset0[1])
		g.addPoint(g.offset1[0])
	default:
		g.addCornerFillet(g.s1, g.offset0[1], g.offset1[0])
	}
}

// addInsideTurn emits the join on the concave side of a corner: the
// crossing point of the two offset segments when they meet, otherwise the
// centre-point fix, which routes the curve through the corner vertex
// itself to keep the noded topology correct.
func (g *segmentGenerator) addInsideTurn() {
	g.li.Compute(g.offset0[0], g.offset0[1], g.offset1[0], g.offset1[1])
	if g.li.HasIntersection() {
		g.addPoint(g.li.Point(0))
		return
	}
	if g.offset0[1].Distance(g.offset1[0]) < g.absDist*insideTurnVertexSnapDistanceFactor {
		g.addPoint(g.offset0[1])
		return
	}
	g.addPoint(g.offset0[1])
	g.addPoint(g.s1)
	g.addPoint(g.offset1[0])
}

// addMitreJoin extends the offset lines to their apex, falling back to a
// bevel when the lines fail to meet or the apex exceeds the mitre limit.
func (g *segmentGenerator) addMitreJoin() {
	apex, err := robust.HIntersection(g.offset0[0], g.offset0[1], g.offset1[0], g.offset1[1])
	if err == nil && apex.Distance(g.s1) <= g.params.MitreLimit*g.absDist {
		g.addPoint(apex)
		return
	}
	g.addPoint(g.offset0[1])
	g.addPoint(g.offset1[0])
}

// addCornerFillet emits p0, the arc of radius |distance| around center
// from p0 to p1, then p1. The arc turns counter-clockwise for positive
// distances and clockwise for negative ones.
func (g *segmentGenerator) addCornerFillet(center, p0, p1 geom.Coord) {
	startAngle := math.Atan2(p0.Y-center.Y, p0.X-center.X)
	endAngle := math.Atan2(p1.Y-center.Y, p1.X-center.X)
	g.addPoint(p0)
	g.addDirectedFillet(center, startAngle, endAngle)
	g.addPoint(p1)
}

// addDirectedFillet emits the interior arc vertices between two angles.
func (g *segmentGenerator) addDirectedFillet(center geom.Coord, startAngle, endAngle float64) {
	ccw := g.distance > 0
	if ccw {
		for endAngle < startAngle {
			endAngle += 2 * math.Pi
		}
	} else {
		for endAngle > startAngle {
			endAngle -= 2 * math.Pi
		}
	}
	total := math.Abs(endAngle - startAngle)
	n := int(total/g.quantum + 0.5)
	if n < 1 {
		return
	}
	inc := total / float64(n)
	if !ccw {
		inc = -inc
	}
	for i := 1; i < n; i++ {
		a := startAngle + float64(i)*inc
		g.addPoint(geom.XY(
			center.X+g.absDist*math.Cos(a),
			center.Y+g.absDist*math.Sin(a),
		))
	}
}

// addLineEndCap closes the curve across the end of segment (p0, p1)
// according to the cap style.
func (g *segmentGenerator) addLineEndCap(p0, p1 geom.Coord) {
	u := p1.R2().Sub(p0.R2()).Normalize()
	n := r2.Point{X: u.Y, Y: -u.X}.Mul(g.distance)

	capEnd := geom.XY(p1.X+n.X, p1.Y+n.Y)
	capOpp := geom.XY(p1.X-n.X, p1.Y-n.Y)

	switch g.params.CapStyle {
	case CapRound:
		startAngle := math.Atan2(n.Y, n.X)
		g.addPoint(capEnd)
		g.addDirectedFillet(p1, startAngle, startAngle+math.Pi)
		g.addPoint(capOpp)
	case CapFlat:
		g.addPoint(capEnd)
		g.addPoint(capOpp)
	case CapSquare:
		ext := u.Mul(g.absDist)
		g.addPoint(geom.XY(capEnd.X+ext.X, capEnd.Y+ext.Y))
		g.addPoint(geom.XY(capOpp.X+ext.X, capOpp.Y+ext.Y))
	}
}

// createCircle emits a full circle of 4*QuadrantSegments chords.
func (g *segmentGenerator) createCircle(center geom.Coord, radius float64) []geom.Coord {
	n := 4 * g.params.QuadrantSegments
	for i := 0; i < n; i++ {
		a := float64(i) * g.quantum
		g.addPoint(geom.XY(
			center.X+radius*math.Cos(a),
			center.Y+radius*math.Sin(a),
		))
	}
	g.closeRing()
	return g.curve()
}

// createSquare emits the axis-aligned square of half-side radius.
func (g *segmentGenerator) createSquare(center geom.Coord, radius float64) []geom.Coord {
	g.addPoint(geom.XY(center.X+radius, center.Y+radius))
	g.addPoint(geom.XY(center.X-radius, center.Y+radius))
	g.addPoint(geom.XY(center.X-radius, center.Y-radius))
	g.addPoint(geom.XY(center.X+radius, center.Y-radius))
	g.closeRing()
	return g.curve()
}

// curveBuilder assembles complete raw offset curves for input components.
type curveBuilder struct {
	pm       *geom.PrecisionModel
	params   Params
	distance float64
}

func (b *curveBuilder) simplifyTolerance() float64 {
	return math.Abs(b.distance) * simplifyFactor
}

// pointCurve returns the buffer outline of a single point: a circle for
// round caps, a square for square caps, nothing for flat caps.
func (b *curveBuilder) pointCurve(pt geom.Coord) []geom.Coord {
	g := newSegmentGenerator(b.pm, b.params, b.distance)
	switch b.params.CapStyle {
	case CapRound:
		return g.createCircle(pt, b.distance)
	case CapSquare:
		return g.createSquare(pt, b.distance)
	default:
		return nil
	}
}

// lineCurve returns the closed raw offset curve of an open line: down one
// side, across the end cap, back along the other side, across the start
// cap.
func (b *curveBuilder) lineCurve(pts []geom.Coord) []geom.Coord {
	g := newSegmentGenerator(b.pm, b.params, b.distance)
	tol := b.simplifyTolerance()

	forward := simplifyLine(pts, -tol)
	n1 := len(forward) - 1
	g.initSideSegments(forward[0], forward[1])
	for i := 2; i <= n1; i++ {
		g.addNextSegment(forward[i])
	}
	g.addLastSegment()
	g.addLineEndCap(forward[n1-1], forward[n1])

	reversed := geom.CloneCoords(pts)
	geom.ReverseCoords(reversed)
	backward := simplifyLine(reversed, -tol)
	n2 := len(backward) - 1
	g.initSideSegments(backward[0], backward[1])
	for i := 2; i <= n2; i++ {
		g.addNextSegment(backward[i])
	}
	g.addLastSegment()
	g.addLineEndCap(backward[n2-1], backward[n2])

	g.closeRing()
	return g.curve()
}

// ringCurve returns the closed offset curve of a ring, traced in the
// ring's own vertex order at the signed distance on the right of travel.
// A zero distance reproduces the ring itself.
func (b *curveBuilder) ringCurve(pts []geom.Coord, distance float64) []geom.Coord {
	if distance == 0 {
		out := make([]geom.Coord, len(pts))
		for i, p := range pts {
			out[i] = b.pm.MakeCoordPrecise(p)
		}
		return geom.CloseRing(geom.RemoveRepeated(out))
	}
	g := newSegmentGenerator(b.pm, b.params, distance)
	simp := simplifyLine(pts, -distance*simplifyFactor)
	n := len(simp) - 1
	g.initSideSegments(simp[n-1], simp[0])
	for i := 1; i <= n; i++ {
		g.addNextSegment(simp[i])
	}
	g.closeRing()
	return g.curve()
}

// simplifyLine collapses vertices whose perpendicular deviation from their
// neighbours is below the tolerance and which deflect toward the side
// selected by the tolerance sign (positive: counter-clockwise deflections
// are removable; negative: clockwise). Endpoints are always kept. Removing
// only deviations below the buffer distance leaves the offset curve
// unchanged within the fillet resolution.
func simplifyLine(pts []geom.Coord, distanceTol float64) []geom.Coord {
	if len(pts) < 3 || distanceTol == 0 {
		return geom.CloneCoords(pts)
	}
	removable := robust.CounterClockwise
	if distanceTol < 0 {
		removable = robust.Clockwise
	}
	tol := math.Abs(distanceTol)

	kept := geom.CloneCoords(pts)
	for {
		changed := false
		out := make([]geom.Coord, 0, len(kept))
		out = append(out, kept[0])
		for i := 1; i < len(kept)-1; i++ {
			prev := out[len(out)-1]
			cur, next := kept[i], kept[i+1]
			if robust.OrientationIndex(prev, cur, next) == removable &&
				geom.DistancePointSegment(cur, prev, next) < tol {
				changed = true
				continue
			}
			out = append(out, cur)
		}
		out = append(out, kept[len(kept)-1])
		kept = out
		if !changed {
			return kept
		}
	}
}
