package geom

import "errors"

var (
	// ErrRingTooShort indicates a linear ring with fewer than 3 distinct points.
	ErrRingTooShort = errors.New("geom: linear ring requires at least 3 distinct points")

	// ErrLineTooShort indicates a line string with fewer than 2 points.
	ErrLineTooShort = errors.New("geom: line string requires at least 2 points")
)

// Factory builds geometries bound to one precision model. Geometries from
// different factories may be mixed read-only; results of an operation are
// built with the input's factory.
type Factory struct {
	pm *PrecisionModel
}

// NewFactory returns a factory with the given precision model; nil selects
// the floating model.
func NewFactory(pm *PrecisionModel) *Factory {
	if pm == nil {
		pm = NewFloatingPrecision()
	}
	return &Factory{pm: pm}
}

// PrecisionModel returns the factory's coordinate-rounding policy.
func (f *Factory) PrecisionModel() *PrecisionModel { return f.pm }

// Point builds a point.
func (f *Factory) Point(c Coord) *Point {
	return &Point{coord: c, fac: f}
}

// EmptyPoint builds a point with no coordinate.
func (f *Factory) EmptyPoint() *Point {
	return &Point{empty: true, fac: f}
}

// LineString builds a polyline from at least two coordinates.
func (f *Factory) LineString(pts []Coord) (*LineString, error) {
	if len(pts) < 2 {
		return nil, ErrLineTooShort
	}
	return &LineString{pts: CloneCoords(pts), fac: f}, nil
}

// LinearRing builds a closed ring. The sequence is closed automatically if
// its endpoints differ; it must contain at least 3 distinct vertices.
func (f *Factory) LinearRing(pts []Coord) (*LinearRing, error) {
	closed := CloseRing(CloneCoords(pts))
	if len(RemoveRepeated(closed)) < 4 {
		return nil, ErrRingTooShort
	}
	return &LinearRing{LineString{pts: closed, fac: f}}, nil
}

// Polygon builds a polygon from a shell and optional holes.
func (f *Factory) Polygon(shell *LinearRing, holes []*LinearRing) *Polygon {
	return &Polygon{shell: shell, holes: holes, fac: f}
}

// EmptyPolygon builds a polygon with no rings.
func (f *Factory) EmptyPolygon() *Polygon {
	return &Polygon{fac: f}
}

// PolygonFromCoords is a convenience constructor from raw ring coordinates:
// the first sequence is the shell, the rest are holes.
func (f *Factory) PolygonFromCoords(rings ...[]Coord) (*Polygon, error) {
	if len(rings) == 0 {
		return f.EmptyPolygon(), nil
	}
	shell, err := f.LinearRing(rings[0])
	if err != nil {
		return nil, err
	}
	var holes []*LinearRing
	for _, h := range rings[1:] {
		hr, err := f.LinearRing(h)
		if err != nil {
			return nil, err
		}
		holes = append(holes, hr)
	}
	return f.Polygon(shell, holes), nil
}

// MultiPoint builds a point collection.
func (f *Factory) MultiPoint(elems []*Point) *MultiPoint {
	return &MultiPoint{elems: elems, fac: f}
}

// MultiLineString builds a line collection.
func (f *Factory) MultiLineString(elems []*LineString) *MultiLineString {
	return &MultiLineString{elems: elems, fac: f}
}

// MultiPolygon builds a polygon collection.
func (f *Factory) MultiPolygon(elems []*Polygon) *MultiPolygon {
	return &MultiPolygon{elems: elems, fac: f}
}

// GeometryCollection builds a heterogeneous collection.
func (f *Factory) GeometryCollection(elems []Geometry) *GeometryCollection {
	return &GeometryCollection{elems: elems, fac: f}
}

// BuildPolygonal wraps a polygon list into the smallest suitable polygonal
// geometry: an empty polygon, a single polygon, or a multi-polygon.
func (f *Factory) BuildPolygonal(polys []*Polygon) Geometry {
	switch len(polys) {
	case 0:
		return f.EmptyPolygon()
	case 1:
		return polys[0]
	default:
		return f.MultiPolygon(polys)
	}
}

// WithPrecision returns a factory sharing no state with f but using the
// given precision model. Used by operations that reduce precision.
func (f *Factory) WithPrecision(pm *PrecisionModel) *Factory {
	return NewFactory(pm)
}
