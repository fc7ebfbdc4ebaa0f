// Package robust implements the numerical primitives every downstream
// invariant depends on: an extended-precision double-double number type,
// a robust orientation predicate, and the segment/segment line intersector.
package robust

// DD is an extended-precision float represented as an unevaluated sum of
// two doubles, hi + lo, with |lo| <= ulp(hi)/2. It provides roughly 106
// bits of significand, enough to evaluate the 2D orientation determinant
// exactly for all inputs that survive the double-precision filter.
type DD struct {
	hi, lo float64
}

// NewDD creates a DD from a single double.
func NewDD(x float64) DD {
	return DD{hi: x}
}

// splitConstant splits a 53-bit significand into two 26-bit halves.
const splitConstant = 134217729.0 // 2^27 + 1

// Add returns d + y.
func (d DD) Add(y DD) DD {
	s := d.hi + y.hi
	t := d.lo + y.lo
	e := s - d.hi
	f := t - d.lo
	s2 := s - e
	t2 := t - f
	s2 = (y.hi - e) + (d.hi - s2)
	t2 = (y.lo - f) + (d.lo - t2)
	e = s2 + t
	h := s + e
	h2 := e + (s - h)
	e = t2 + h2

	zhi := h + e
	zlo := e + (h - zhi)
	return DD{hi: zhi, lo: zlo}
}

// Sub returns d - y.
func (d DD) Sub(y DD) DD {
	return d.Add(y.Neg())
}

// Neg returns -d.
func (d DD) Neg() DD {
	return DD{hi: -d.hi, lo: -d.lo}
}

// Mul returns d * y.
func (d DD) Mul(y DD) DD {
	c := splitConstant * d.hi
	hx := c - d.hi
	hx = c - hx
	tx := d.hi - hx

	c2 := splitConstant * y.hi
	hy := c2 - y.hi
	hy = c2 - hy
	ty := y.hi - hy

	p := d.hi * y.hi
	q := ((hx*hy - p) + hx*ty + tx*hy) + tx*ty
	q += d.hi*y.lo + d.lo*y.hi

	zhi := p + q
	zlo := q + (p - zhi)
	return DD{hi: zhi, lo: zlo}
}

// Sign returns -1, 0 or 1 according to the sign of d.
func (d DD) Sign() int {
	switch {
	case d.hi > 0 || (d.hi == 0 && d.lo > 0):
		return 1
	case d.hi < 0 || (d.hi == 0 && d.lo < 0):
		return -1
	default:
		return 0
	}
}

// IsZero reports whether d equals zero exactly.
func (d DD) IsZero() bool {
	return d.hi == 0 && d.lo == 0
}

// Float64 returns the closest double to d.
func (d DD) Float64() float64 {
	return d.hi + d.lo
}
