// Package buffer computes the polygonal buffer of a geometry: the
// Minkowski sum (or erosion, for negative distances) of the geometry with
// a disk. The pipeline generates raw offset curves, nodes their
// self-intersections, labels a planar graph of the noded edges, and traces
// boundary rings into valid polygons, reducing coordinate precision
// automatically when floating-point robustness fails.
package buffer

// CapStyle selects the boundary shape at the ends of buffered lines, and
// the buffer shape of bare points.
type CapStyle int

const (
	// CapRound closes line ends with a half-circle fillet.
	CapRound CapStyle = 1
	// CapFlat closes line ends flush with the endpoint.
	CapFlat CapStyle = 2
	// CapSquare extends line ends by the buffer distance.
	CapSquare CapStyle = 3
)

// JoinStyle selects the treatment of convex corners of the offset curve.
type JoinStyle int

const (
	// JoinRound fills convex corners with a circular-arc fillet.
	JoinRound JoinStyle = 1
	// JoinMitre extends convex corners to their natural apex, limited by
	// MitreLimit.
	JoinMitre JoinStyle = 2
	// JoinBevel cuts convex corners with a single chord.
	JoinBevel JoinStyle = 3
)

// DefaultQuadrantSegments is the default fillet resolution: the number of
// chords approximating a quarter circle.
const DefaultQuadrantSegments = 8

// DefaultMitreLimit bounds the apex distance of mitred joins, in multiples
// of the buffer distance.
const DefaultMitreLimit = 5.0

// Params bundles the style settings of a buffer operation.
type Params struct {
	// QuadrantSegments is the number of straight chords per 90 degrees of
	// fillet arc; must be at least 1. The maximum chord error is
	// |d|*(1-cos(pi/(4*QuadrantSegments))).
	QuadrantSegments int
	// CapStyle applies to line ends and point buffers.
	CapStyle CapStyle
	// JoinStyle applies to convex corners.
	JoinStyle JoinStyle
	// MitreLimit bounds mitred joins; corners beyond the limit fall back
	// to a bevel.
	MitreLimit float64
}

// DefaultParams returns round joins and caps at the default fillet
// resolution.
func DefaultParams() Params {
	return Params{
		QuadrantSegments: DefaultQuadrantSegments,
		CapStyle:         CapRound,
		JoinStyle:        JoinRound,
		MitreLimit:       DefaultMitreLimit,
	}
}
