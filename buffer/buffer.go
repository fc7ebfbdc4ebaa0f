package buffer

import (
	"math"

	"github.com/simplegeo/jts/geom"
	"github.com/simplegeo/jts/noding"
	"github.com/simplegeo/jts/robust"
)

// maxPrecisionDigits is the first (finest) rung of the precision-reduction
// schedule used when floating-point noding fails.
const maxPrecisionDigits = 12

// Buffer computes the buffer of g at the given distance with round caps
// and joins at the default fillet resolution.
//
// The result is a Polygon or MultiPolygon (possibly empty) built with the
// input's factory. Positive distances expand, negative distances erode;
// a non-positive distance on a puntal or lineal input yields an empty
// polygon.
func Buffer(g geom.Geometry, distance float64) (geom.Geometry, error) {
	return BufferWithParams(g, distance, DefaultParams())
}

// BufferWithSegments buffers with round caps at the given fillet
// resolution.
func BufferWithSegments(g geom.Geometry, distance float64, quadrantSegments int) (geom.Geometry, error) {
	p := DefaultParams()
	p.QuadrantSegments = quadrantSegments
	return BufferWithParams(g, distance, p)
}

// BufferWithStyle buffers with the given fillet resolution and end-cap
// style.
func BufferWithStyle(g geom.Geometry, distance float64, quadrantSegments int, capStyle CapStyle) (geom.Geometry, error) {
	p := DefaultParams()
	p.QuadrantSegments = quadrantSegments
	p.CapStyle = capStyle
	return BufferWithParams(g, distance, p)
}

// BufferWithParams buffers with fully explicit style settings.
func BufferWithParams(g geom.Geometry, distance float64, params Params) (geom.Geometry, error) {
	if math.IsNaN(distance) || math.IsInf(distance, 0) {
		return nil, ErrInvalidDistance
	}
	if params.QuadrantSegments < 1 {
		return nil, ErrInvalidQuadrantSegments
	}
	switch params.CapStyle {
	case CapRound, CapFlat, CapSquare:
	default:
		return nil, ErrInvalidCapStyle
	}
	switch params.JoinStyle {
	case JoinRound, JoinMitre, JoinBevel:
	default:
		return nil, ErrInvalidJoinStyle
	}
	if err := checkFinite(g); err != nil {
		return nil, err
	}

	fac := g.Factory()
	if g.IsEmpty() {
		return fac.EmptyPolygon(), nil
	}

	p := &pipeline{
		fac:  fac,
		env:  g.Envelope(),
		dist: distance,
		curveFn: func(pm *geom.PrecisionModel) ([][]geom.Coord, error) {
			csb := newCurveSetBuilder(pm, params, distance)
			if err := csb.addGeometry(g); err != nil {
				return nil, err
			}
			return csb.curves, nil
		},
	}
	return p.run()
}

// checkFinite rejects NaN and infinite ordinates anywhere in g.
func checkFinite(g geom.Geometry) error {
	var walk func(geom.Geometry) error
	checkPts := func(pts []geom.Coord) error {
		for _, p := range pts {
			if !p.IsFinite() {
				return ErrNonFiniteCoordinate
			}
		}
		return nil
	}
	walk = func(g geom.Geometry) error {
		switch t := g.(type) {
		case *geom.Point:
			if !t.IsEmpty() && !t.Coord().IsFinite() {
				return ErrNonFiniteCoordinate
			}
		case *geom.LinearRing:
			return checkPts(t.Coords())
		case *geom.LineString:
			return checkPts(t.Coords())
		case *geom.Polygon:
			if t.IsEmpty() {
				return nil
			}
			if err := checkPts(t.Shell().Coords()); err != nil {
				return err
			}
			for _, h := range t.Holes() {
				if err := checkPts(h.Coords()); err != nil {
					return err
				}
			}
		case *geom.MultiPoint:
			for _, e := range t.Elements() {
				if err := walk(e); err != nil {
					return err
				}
			}
		case *geom.MultiLineString:
			for _, e := range t.Elements() {
				if err := walk(e); err != nil {
					return err
				}
			}
		case *geom.MultiPolygon:
			for _, e := range t.Elements() {
				if err := walk(e); err != nil {
					return err
				}
			}
		case *geom.GeometryCollection:
			for _, e := range t.Elements() {
				if err := walk(e); err != nil {
					return err
				}
			}
		default:
			return geom.ErrInvalidInput
		}
		return nil
	}
	return walk(g)
}

// pipeline runs the node / label / build stages over a set of raw closed
// curves, retrying on a reducing precision schedule when a topology
// invariant fails. The same machinery serves the buffer and Minkowski
// operations.
type pipeline struct {
	fac     *geom.Factory
	env     geom.Envelope
	dist    float64
	curveFn func(pm *geom.PrecisionModel) ([][]geom.Coord, error)
}

// run tries the input precision model first. A fixed input model is used
// as-is; a floating model falls back through fixed grids of decreasing
// scale until one succeeds, re-raising the last topology error when all
// are exhausted.
func (p *pipeline) run() (geom.Geometry, error) {
	inputPM := p.fac.PrecisionModel()
	if !inputPM.IsFloating() {
		return p.runWith(inputPM)
	}

	res, err := p.runWith(inputPM)
	if err == nil {
		return res, nil
	}
	if !geom.IsTopologyError(err) {
		return nil, err
	}
	lastErr := err

	for digits := maxPrecisionDigits; digits >= 0; digits-- {
		scale := precisionScale(p.env, p.dist, digits)
		if scale <= 0 || math.IsInf(scale, 0) {
			continue
		}
		res, err = p.runWith(geom.NewFixedPrecision(scale))
		if err == nil {
			return res, nil
		}
		if !geom.IsTopologyError(err) {
			return nil, err
		}
		lastErr = err
	}
	return nil, lastErr
}

// runWith executes one pass of the full pipeline under a single precision
// model.
func (p *pipeline) runWith(pm *geom.PrecisionModel) (geom.Geometry, error) {
	curves, err := p.curveFn(pm)
	if err != nil {
		return nil, err
	}
	if len(curves) == 0 {
		return p.fac.EmptyPolygon(), nil
	}

	strings := make([]*noding.SegmentString, 0, len(curves))
	for i, c := range curves {
		if len(c) >= 2 {
			strings = append(strings, noding.NewSegmentString(c, i))
		}
	}

	// The winding probes during labeling must test against the same
	// geometry the noded edges lie on, so the curves are re-read from the
	// strings with their snap and split points inserted.
	var noded []*noding.SegmentString
	var windingCurves [][]geom.Coord
	if pm.IsFloating() {
		noded = noding.NodeStrings(strings, robust.NewLineIntersector(pm))
		for _, ss := range strings {
			windingCurves = append(windingCurves, ss.SnappedCoords())
		}
	} else {
		noded, windingCurves, err = noding.NewSnapRounder(pm).Node(strings)
		if err != nil {
			return nil, err
		}
	}
	if len(noded) == 0 {
		return p.fac.EmptyPolygon(), nil
	}

	graph := buildGraph(noded, windingCurves, p.probeEps(pm))
	if err := graph.computeLabels(); err != nil {
		return nil, err
	}

	pb := &polygonBuilder{g: graph, fac: p.fac}
	return pb.build()
}

// probeEps is the side-probe offset for edge labeling: a fraction of a
// grid cell under a fixed model, a small fraction of the problem diameter
// otherwise.
func (p *pipeline) probeEps(pm *geom.PrecisionModel) float64 {
	if !pm.IsFloating() {
		return 0.25 / pm.Scale()
	}
	return 1e-7 * (p.env.MaxExtent() + 2*math.Abs(p.dist) + 1)
}

// precisionScale computes the fallback grid scale for a digit budget:
// 10^(digits - ceil(log10(envSize + 2|d|))).
func precisionScale(env geom.Envelope, distance float64, digits int) float64 {
	size := env.MaxExtent() + 2*math.Abs(distance)
	if size <= 0 {
		size = 1
	}
	exp := math.Ceil(math.Log10(size))
	return math.Pow(10, float64(digits)-exp)
}
