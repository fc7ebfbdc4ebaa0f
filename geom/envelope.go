package geom

import (
	"github.com/golang/geo/r1"
	"github.com/golang/geo/r2"
)

// Envelope is an axis-aligned bounding rectangle over (X, Y). The zero value
// is the null envelope, which contains nothing and unions as identity.
// Interval arithmetic is delegated to r2.Rect.
type Envelope struct {
	rect r2.Rect
	some bool
}

// EnvelopeOf returns the envelope of a set of coordinates.
func EnvelopeOf(pts ...Coord) Envelope {
	var e Envelope
	for _, p := range pts {
		e.ExpandToInclude(p)
	}
	return e
}

// NewEnvelope builds an envelope from two opposite corners in any order.
func NewEnvelope(x0, y0, x1, y1 float64) Envelope {
	return Envelope{
		rect: r2.RectFromPoints(r2.Point{X: x0, Y: y0}, r2.Point{X: x1, Y: y1}),
		some: true,
	}
}

// IsNull reports whether the envelope contains no points.
func (e Envelope) IsNull() bool { return !e.some }

// MinX returns the minimum X ordinate, or 0 for the null envelope.
func (e Envelope) MinX() float64 { return e.rect.X.Lo }

// MaxX returns the maximum X ordinate, or 0 for the null envelope.
func (e Envelope) MaxX() float64 { return e.rect.X.Hi }

// MinY returns the minimum Y ordinate, or 0 for the null envelope.
func (e Envelope) MinY() float64 { return e.rect.Y.Lo }

// MaxY returns the maximum Y ordinate, or 0 for the null envelope.
func (e Envelope) MaxY() float64 { return e.rect.Y.Hi }

// Width returns the X extent.
func (e Envelope) Width() float64 {
	if !e.some {
		return 0
	}
	return e.rect.X.Length()
}

// Height returns the Y extent.
func (e Envelope) Height() float64 {
	if !e.some {
		return 0
	}
	return e.rect.Y.Length()
}

// MaxExtent returns the larger of Width and Height.
func (e Envelope) MaxExtent() float64 {
	w, h := e.Width(), e.Height()
	if w > h {
		return w
	}
	return h
}

// ExpandToInclude grows the envelope to cover p.
func (e *Envelope) ExpandToInclude(p Coord) {
	if !e.some {
		e.rect = r2.Rect{
			X: r1.Interval{Lo: p.X, Hi: p.X},
			Y: r1.Interval{Lo: p.Y, Hi: p.Y},
		}
		e.some = true
		return
	}
	e.rect = e.rect.AddPoint(p.R2())
}

// ExpandToIncludeEnvelope grows the envelope to cover o.
func (e *Envelope) ExpandToIncludeEnvelope(o Envelope) {
	if !o.some {
		return
	}
	if !e.some {
		*e = o
		return
	}
	e.rect = e.rect.Union(o.rect)
}

// ExpandedBy returns the envelope grown by d on every side. A negative d
// that would invert the envelope yields the null envelope.
func (e Envelope) ExpandedBy(d float64) Envelope {
	if !e.some {
		return e
	}
	r := e.rect.ExpandedByMargin(d)
	if r.IsEmpty() {
		return Envelope{}
	}
	return Envelope{rect: r, some: true}
}

// Intersects reports whether the two envelopes share any point.
func (e Envelope) Intersects(o Envelope) bool {
	if !e.some || !o.some {
		return false
	}
	return e.rect.Intersects(o.rect)
}

// Covers reports whether o lies entirely inside e.
func (e Envelope) Covers(o Envelope) bool {
	if !e.some || !o.some {
		return false
	}
	return e.rect.Contains(o.rect)
}

// CoversCoord reports whether p lies inside or on the boundary of e.
func (e Envelope) CoversCoord(p Coord) bool {
	return e.some && e.rect.ContainsPoint(p.R2())
}

// IntersectsSegmentEnvelope reports whether the envelope of segment (p0, p1)
// intersects e. Used for cheap candidate rejection.
func (e Envelope) IntersectsSegmentEnvelope(p0, p1 Coord) bool {
	if !e.some {
		return false
	}
	seg := r2.RectFromPoints(p0.R2(), p1.R2())
	return e.rect.Intersects(seg)
}
