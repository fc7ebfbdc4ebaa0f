package geom

import "math"

// SignedArea returns twice-halved shoelace area of a ring: positive for
// counter-clockwise orientation, negative for clockwise. The ring may be
// open or closed; the closing segment is implied.
func SignedArea(ring []Coord) float64 {
	n := len(ring)
	if n > 1 && ring[0].Equals2D(ring[n-1]) {
		n--
	}
	if n < 3 {
		return 0
	}
	var sum float64
	for i := 0; i < n; i++ {
		p := ring[i]
		q := ring[(i+1)%n]
		sum += p.X*q.Y - q.X*p.Y
	}
	return sum / 2
}

func absArea(ring []Coord) float64 {
	return math.Abs(SignedArea(ring))
}

// IsCCW reports whether the ring is counter-clockwise oriented.
func IsCCW(ring []Coord) bool {
	return SignedArea(ring) > 0
}

// WindingNumber returns the winding number of ring around p using upward
// and downward edge crossings. The boolean result reports whether p lies on
// the ring itself, in which case the count is unreliable.
func WindingNumber(p Coord, ring []Coord) (int, bool) {
	pts := ring
	if len(pts) < 3 {
		return 0, false
	}
	n := len(pts)
	if pts[0].Equals2D(pts[n-1]) {
		n--
	}
	wn := 0
	for i := 0; i < n; i++ {
		a := pts[i]
		b := pts[(i+1)%n]
		if onSegment(p, a, b) {
			return 0, true
		}
		if a.Y <= p.Y {
			if b.Y > p.Y && crossSign(a, b, p) > 0 {
				wn++
			}
		} else {
			if b.Y <= p.Y && crossSign(a, b, p) < 0 {
				wn--
			}
		}
	}
	return wn, false
}

// PointInRing reports whether p lies strictly inside ring (boundary counts
// as outside).
func PointInRing(p Coord, ring []Coord) bool {
	wn, onRing := WindingNumber(p, ring)
	return !onRing && wn != 0
}

// crossSign is the sign of the cross product (b-a) x (p-a).
func crossSign(a, b, p Coord) int {
	d := (b.X-a.X)*(p.Y-a.Y) - (b.Y-a.Y)*(p.X-a.X)
	switch {
	case d > 0:
		return 1
	case d < 0:
		return -1
	default:
		return 0
	}
}

func onSegment(p, a, b Coord) bool {
	if crossSign(a, b, p) != 0 {
		return false
	}
	return p.X >= math.Min(a.X, b.X) && p.X <= math.Max(a.X, b.X) &&
		p.Y >= math.Min(a.Y, b.Y) && p.Y <= math.Max(a.Y, b.Y)
}

// DistancePointSegment returns the distance from p to segment (a, b).
func DistancePointSegment(p, a, b Coord) float64 {
	if a.Equals2D(b) {
		return p.Distance(a)
	}
	ab := b.R2().Sub(a.R2())
	ap := p.R2().Sub(a.R2())
	t := ap.Dot(ab) / ab.Dot(ab)
	if t <= 0 {
		return p.Distance(a)
	}
	if t >= 1 {
		return p.Distance(b)
	}
	proj := a.R2().Add(ab.Mul(t))
	return p.R2().Sub(proj).Norm()
}
