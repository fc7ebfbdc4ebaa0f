package buffer

import (
	"github.com/simplegeo/jts/geom"
)

// curveSetBuilder turns an input geometry into the list of closed raw
// offset curves whose non-zero-winding region is the buffer body. Shells
// are traced counter-clockwise and holes clockwise, both offset on the
// right of travel, so each curve's own orientation carries its winding
// contribution.
type curveSetBuilder struct {
	pm       *geom.PrecisionModel
	params   Params
	distance float64
	cb       curveBuilder
	curves   [][]geom.Coord
}

func newCurveSetBuilder(pm *geom.PrecisionModel, params Params, distance float64) *curveSetBuilder {
	return &curveSetBuilder{
		pm:       pm,
		params:   params,
		distance: distance,
		cb:       curveBuilder{pm: pm, params: params, distance: distance},
	}
}

func (b *curveSetBuilder) addCurve(pts []geom.Coord) {
	if len(pts) < 4 {
		return
	}
	b.curves = append(b.curves, pts)
}

func (b *curveSetBuilder) addGeometry(g geom.Geometry) error {
	switch t := g.(type) {
	case *geom.Point:
		b.addPoint(t)
	case *geom.LinearRing:
		b.addLinearRing(t)
	case *geom.LineString:
		b.addLineString(t)
	case *geom.Polygon:
		b.addPolygon(t)
	case *geom.MultiPoint:
		for _, e := range t.Elements() {
			b.addPoint(e)
		}
	case *geom.MultiLineString:
		for _, e := range t.Elements() {
			b.addLineString(e)
		}
	case *geom.MultiPolygon:
		for _, e := range t.Elements() {
			b.addPolygon(e)
		}
	case *geom.GeometryCollection:
		for _, e := range t.Elements() {
			if err := b.addGeometry(e); err != nil {
				return err
			}
		}
	default:
		return geom.ErrInvalidInput
	}
	return nil
}

// addPoint buffers a bare point. Non-positive distances produce nothing.
func (b *curveSetBuilder) addPoint(p *geom.Point) {
	if p.IsEmpty() || b.distance <= 0 {
		return
	}
	b.addCurve(b.cb.pointCurve(p.Coord()))
}

// addLineString buffers an open line. Non-positive distances and
// zero-length lines produce nothing.
func (b *curveSetBuilder) addLineString(l *geom.LineString) {
	if l.IsEmpty() || b.distance <= 0 {
		return
	}
	pts := geom.RemoveRepeated(l.Coords())
	if len(pts) < 2 {
		return
	}
	if pts[0].Equals2D(pts[len(pts)-1]) && len(pts) >= 4 {
		b.addClosedLine(pts)
		return
	}
	b.addCurve(b.cb.lineCurve(pts))
}

// addLinearRing buffers a bare ring as a closed line: the result is the
// annulus of points within the distance of the ring curve.
func (b *curveSetBuilder) addLinearRing(r *geom.LinearRing) {
	if r.IsEmpty() || b.distance <= 0 {
		return
	}
	pts := geom.RemoveRepeated(r.Coords())
	if len(pts) < 4 {
		return
	}
	b.addClosedLine(pts)
}

// addClosedLine emits the outer and inner offset curves of a closed line.
// The outer curve keeps the line's counter-clockwise sense; the inner one
// runs clockwise, so the two cancel inside the inner ring and leave an
// annulus of non-zero winding.
func (b *curveSetBuilder) addClosedLine(pts []geom.Coord) {
	ccw := geom.CloneCoords(pts)
	if !geom.IsCCW(ccw) {
		geom.ReverseCoords(ccw)
	}
	b.addCurve(b.cb.ringCurve(ccw, b.distance))
	cw := geom.CloneCoords(ccw)
	geom.ReverseCoords(cw)
	b.addCurve(b.cb.ringCurve(cw, b.distance))
}

// addPolygon buffers an areal component: the shell offset outward (or
// inward for negative distances) plus each hole offset into the hole.
// Rings that the offset erodes away entirely (the shell under a negative
// distance, a hole under a positive one) contribute no curve.
func (b *curveSetBuilder) addPolygon(p *geom.Polygon) {
	if p.IsEmpty() {
		return
	}
	shell := geom.RemoveRepeated(p.Shell().Coords())
	if len(shell) < 4 {
		return
	}
	if b.distance < 0 && erodedCompletely(geom.EnvelopeOf(shell...), b.distance) {
		return
	}
	ccw := geom.CloneCoords(shell)
	if !geom.IsCCW(ccw) {
		geom.ReverseCoords(ccw)
	}
	b.addCurve(b.cb.ringCurve(ccw, b.distance))

	for _, h := range p.Holes() {
		hole := geom.RemoveRepeated(h.Coords())
		if len(hole) < 4 {
			continue
		}
		if b.distance > 0 && erodedCompletely(geom.EnvelopeOf(hole...), b.distance) {
			continue
		}
		cw := geom.CloneCoords(hole)
		if geom.IsCCW(cw) {
			geom.ReverseCoords(cw)
		}
		b.addCurve(b.cb.ringCurve(cw, b.distance))
	}
}

// erodedCompletely reports whether an offset of the given magnitude erodes
// a ring to nothing. Any disk inscribed in the ring has diameter at most
// the smaller envelope extent, so the test is safe.
func erodedCompletely(env geom.Envelope, distance float64) bool {
	d := distance
	if d < 0 {
		d = -d
	}
	minExtent := env.Width()
	if env.Height() < minExtent {
		minExtent = env.Height()
	}
	return 2*d > minExtent
}
