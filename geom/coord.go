// Package geom provides the planar geometry object model: coordinates,
// envelopes, precision models, and the OpenGIS Simple Features geometry
// types (Point, LineString, LinearRing, Polygon and their multi/collection
// variants) together with the Factory that constructs them.
//
// The buffer engine in package buffer consumes this model read-only and
// emits results through the same Factory (and precision model) as its
// input, so callers round-trip through a single coordinate policy.
package geom

import (
	"fmt"
	"math"

	"github.com/golang/geo/r2"
)

// Coord is an ordered (X, Y) pair of IEEE-754 doubles. Z is carried through
// operations unchanged but ignored by all planar computation; equality and
// hashing are on (X, Y) only.
type Coord struct {
	X, Y, Z float64
}

// XY constructs a coordinate with no Z ordinate.
func XY(x, y float64) Coord {
	return Coord{X: x, Y: y, Z: math.NaN()}
}

// Equals2D reports exact bitwise equality on (X, Y).
func (c Coord) Equals2D(o Coord) bool {
	return c.X == o.X && c.Y == o.Y
}

// Distance returns the planar Euclidean distance to o.
func (c Coord) Distance(o Coord) float64 {
	return math.Hypot(c.X-o.X, c.Y-o.Y)
}

// R2 converts the coordinate to an r2 vector for vector arithmetic.
func (c Coord) R2() r2.Point {
	return r2.Point{X: c.X, Y: c.Y}
}

// CoordFromR2 converts an r2 vector back to a coordinate.
func CoordFromR2(p r2.Point) Coord {
	return Coord{X: p.X, Y: p.Y, Z: math.NaN()}
}

// IsFinite reports whether both ordinates are finite (not NaN or Inf).
func (c Coord) IsFinite() bool {
	return !math.IsNaN(c.X) && !math.IsInf(c.X, 0) &&
		!math.IsNaN(c.Y) && !math.IsInf(c.Y, 0)
}

func (c Coord) String() string {
	return fmt.Sprintf("(%v, %v)", c.X, c.Y)
}

// CloneCoords returns an independent copy of a coordinate slice.
func CloneCoords(pts []Coord) []Coord {
	out := make([]Coord, len(pts))
	copy(out, pts)
	return out
}

// ReverseCoords reverses a coordinate slice in place.
func ReverseCoords(pts []Coord) {
	for i, j := 0, len(pts)-1; i < j; i, j = i+1, j-1 {
		pts[i], pts[j] = pts[j], pts[i]
	}
}

// RemoveRepeated returns pts with consecutive 2D-equal coordinates collapsed.
func RemoveRepeated(pts []Coord) []Coord {
	if len(pts) == 0 {
		return pts
	}
	out := make([]Coord, 0, len(pts))
	out = append(out, pts[0])
	for _, p := range pts[1:] {
		if !p.Equals2D(out[len(out)-1]) {
			out = append(out, p)
		}
	}
	return out
}

// IsClosedRing reports whether pts starts and ends on the same coordinate
// and has enough points to bound area.
func IsClosedRing(pts []Coord) bool {
	return len(pts) >= 4 && pts[0].Equals2D(pts[len(pts)-1])
}

// CloseRing appends the first coordinate if pts does not already end on it.
func CloseRing(pts []Coord) []Coord {
	if len(pts) == 0 || pts[0].Equals2D(pts[len(pts)-1]) {
		return pts
	}
	return append(pts, pts[0])
}
