package robust

import "github.com/simplegeo/jts/geom"

// Orientation classifications returned by OrientationIndex.
const (
	Clockwise        = -1
	Collinear        = 0
	CounterClockwise = 1
)

// dpSafeEpsilon bounds the relative error of the double-precision
// orientation determinant; results below the bound fall through to the
// extended-precision evaluation.
const dpSafeEpsilon = 1e-15

// OrientationIndex returns the orientation of c relative to the directed
// line a -> b: CounterClockwise when c lies to the left, Clockwise when to
// the right, Collinear when on the line. The ordinary double-precision
// determinant is used whenever its error bound permits a safe sign
// decision; otherwise the determinant is re-evaluated in double-double
// precision.
func OrientationIndex(a, b, c geom.Coord) int {
	if idx, ok := orientationFilter(a, b, c); ok {
		return idx
	}
	return orientationDD(a, b, c)
}

// orientationFilter evaluates the determinant in double precision and
// reports whether the sign is certain.
func orientationFilter(a, b, c geom.Coord) (int, bool) {
	detLeft := (a.X - c.X) * (b.Y - c.Y)
	detRight := (a.Y - c.Y) * (b.X - c.X)
	det := detLeft - detRight

	var detSum float64
	switch {
	case detLeft > 0:
		if detRight <= 0 {
			return sign(det), true
		}
		detSum = detLeft + detRight
	case detLeft < 0:
		if detRight >= 0 {
			return sign(det), true
		}
		detSum = -detLeft - detRight
	default:
		return sign(det), true
	}

	errBound := dpSafeEpsilon * detSum
	if det >= errBound || -det >= errBound {
		return sign(det), true
	}
	return 0, false
}

// orientationDD evaluates the determinant (b-a) x (c-a) in double-double
// precision.
func orientationDD(a, b, c geom.Coord) int {
	ax, ay := NewDD(a.X), NewDD(a.Y)
	dx1 := NewDD(b.X).Sub(ax)
	dy1 := NewDD(b.Y).Sub(ay)
	dx2 := NewDD(c.X).Sub(ax)
	dy2 := NewDD(c.Y).Sub(ay)
	return dx1.Mul(dy2).Sub(dy1.Mul(dx2)).Sign()
}

func sign(v float64) int {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	default:
		return 0
	}
}
