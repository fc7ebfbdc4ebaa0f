package geom

// Geometry is the read-only surface every operation consumes. Concrete
// types are Point, LineString, LinearRing, Polygon, MultiPoint,
// MultiLineString, MultiPolygon and GeometryCollection.
type Geometry interface {
	// Factory returns the factory (and precision model) that built this
	// geometry.
	Factory() *Factory
	// IsEmpty reports whether the geometry contains no points.
	IsEmpty() bool
	// Envelope returns the bounding box, null when empty.
	Envelope() Envelope
	// Dimension returns the topological dimension: 0 for puntal, 1 for
	// lineal, 2 for polygonal geometries, including the multi types even
	// when empty. A GeometryCollection reports the maximum over its
	// elements, -1 when empty.
	Dimension() int
}

// Point is a single coordinate, possibly empty.
type Point struct {
	coord Coord
	empty bool
	fac   *Factory
}

// Coord returns the point coordinate. Undefined for empty points.
func (p *Point) Coord() Coord { return p.coord }

func (p *Point) Factory() *Factory { return p.fac }
func (p *Point) IsEmpty() bool     { return p.empty }
func (p *Point) Dimension() int    { return 0 }

func (p *Point) Envelope() Envelope {
	if p.empty {
		return Envelope{}
	}
	return EnvelopeOf(p.coord)
}

// LineString is an open polyline of two or more coordinates.
type LineString struct {
	pts []Coord
	fac *Factory
}

// Coords returns the vertex sequence. Callers must not mutate it.
func (l *LineString) Coords() []Coord { return l.pts }

// NumPoints returns the vertex count.
func (l *LineString) NumPoints() int { return len(l.pts) }

// IsClosed reports whether the first and last vertices coincide.
func (l *LineString) IsClosed() bool {
	return len(l.pts) > 0 && l.pts[0].Equals2D(l.pts[len(l.pts)-1])
}

func (l *LineString) Factory() *Factory { return l.fac }
func (l *LineString) IsEmpty() bool     { return len(l.pts) == 0 }
func (l *LineString) Dimension() int    { return 1 }

func (l *LineString) Envelope() Envelope {
	return EnvelopeOf(l.pts...)
}

// LinearRing is a closed LineString bounding an area. The coordinate
// sequence repeats its first vertex at the end.
type LinearRing struct {
	LineString
}

// Polygon is a shell ring with zero or more hole rings.
type Polygon struct {
	shell *LinearRing
	holes []*LinearRing
	fac   *Factory
}

// Shell returns the exterior ring, nil when the polygon is empty.
func (p *Polygon) Shell() *LinearRing { return p.shell }

// Holes returns the interior rings.
func (p *Polygon) Holes() []*LinearRing { return p.holes }

func (p *Polygon) Factory() *Factory { return p.fac }
func (p *Polygon) IsEmpty() bool     { return p.shell == nil || p.shell.IsEmpty() }
func (p *Polygon) Dimension() int    { return 2 }

func (p *Polygon) Envelope() Envelope {
	if p.IsEmpty() {
		return Envelope{}
	}
	return p.shell.Envelope()
}

// Area returns the polygon area: shell area minus hole areas.
func (p *Polygon) Area() float64 {
	if p.IsEmpty() {
		return 0
	}
	a := absArea(p.shell.pts)
	for _, h := range p.holes {
		a -= absArea(h.pts)
	}
	return a
}

// MultiPoint is a collection of points.
type MultiPoint struct {
	elems []*Point
	fac   *Factory
}

func (m *MultiPoint) Elements() []*Point { return m.elems }
func (m *MultiPoint) Factory() *Factory  { return m.fac }
func (m *MultiPoint) IsEmpty() bool      { return len(m.elems) == 0 }
func (m *MultiPoint) Dimension() int     { return 0 }

func (m *MultiPoint) Envelope() Envelope {
	var e Envelope
	for _, p := range m.elems {
		e.ExpandToIncludeEnvelope(p.Envelope())
	}
	return e
}

// MultiLineString is a collection of line strings.
type MultiLineString struct {
	elems []*LineString
	fac   *Factory
}

func (m *MultiLineString) Elements() []*LineString { return m.elems }
func (m *MultiLineString) Factory() *Factory       { return m.fac }
func (m *MultiLineString) IsEmpty() bool           { return len(m.elems) == 0 }
func (m *MultiLineString) Dimension() int          { return 1 }

func (m *MultiLineString) Envelope() Envelope {
	var e Envelope
	for _, l := range m.elems {
		e.ExpandToIncludeEnvelope(l.Envelope())
	}
	return e
}

// MultiPolygon is a collection of polygons.
type MultiPolygon struct {
	elems []*Polygon
	fac   *Factory
}

func (m *MultiPolygon) Elements() []*Polygon { return m.elems }
func (m *MultiPolygon) Factory() *Factory    { return m.fac }
func (m *MultiPolygon) IsEmpty() bool        { return len(m.elems) == 0 }
func (m *MultiPolygon) Dimension() int       { return 2 }

func (m *MultiPolygon) Envelope() Envelope {
	var e Envelope
	for _, p := range m.elems {
		e.ExpandToIncludeEnvelope(p.Envelope())
	}
	return e
}

// Area returns the sum of element areas.
func (m *MultiPolygon) Area() float64 {
	var a float64
	for _, p := range m.elems {
		a += p.Area()
	}
	return a
}

// GeometryCollection is a heterogeneous collection of geometries.
type GeometryCollection struct {
	elems []Geometry
	fac   *Factory
}

func (g *GeometryCollection) Elements() []Geometry { return g.elems }
func (g *GeometryCollection) Factory() *Factory    { return g.fac }
func (g *GeometryCollection) IsEmpty() bool        { return len(g.elems) == 0 }

func (g *GeometryCollection) Dimension() int {
	d := -1
	for _, e := range g.elems {
		if ed := e.Dimension(); ed > d {
			d = ed
		}
	}
	return d
}

func (g *GeometryCollection) Envelope() Envelope {
	var e Envelope
	for _, el := range g.elems {
		e.ExpandToIncludeEnvelope(el.Envelope())
	}
	return e
}

// Area returns the total area of any geometry: 0 for puntal and lineal
// types, the polygon area sum otherwise.
func Area(g Geometry) float64 {
	switch t := g.(type) {
	case *Polygon:
		return t.Area()
	case *MultiPolygon:
		return t.Area()
	case *GeometryCollection:
		var a float64
		for _, e := range t.Elements() {
			a += Area(e)
		}
		return a
	default:
		return 0
	}
}
