package noding

import (
	"github.com/simplegeo/jts/geom"
	"github.com/simplegeo/jts/robust"
)

// HotPixel is the axis-aligned square of side 1/scale centered on a
// rounded node coordinate. Any segment that enters the pixel is snapped so
// that it passes through the pixel center.
type HotPixel struct {
	pt      geom.Coord
	scale   float64
	half    float64
	corners [4]geom.Coord
	li      *robust.LineIntersector
}

// NewHotPixel builds a pixel around an already-rounded coordinate. A
// non-positive scale degenerates the pixel to the exact point.
func NewHotPixel(pt geom.Coord, scale float64, li *robust.LineIntersector) *HotPixel {
	hp := &HotPixel{pt: pt, scale: scale, li: li}
	if scale > 0 {
		hp.half = 0.5 / scale
		minx, maxx := pt.X-hp.half, pt.X+hp.half
		miny, maxy := pt.Y-hp.half, pt.Y+hp.half
		hp.corners = [4]geom.Coord{
			geom.XY(maxx, maxy),
			geom.XY(minx, maxy),
			geom.XY(minx, miny),
			geom.XY(maxx, miny),
		}
	}
	return hp
}

// Coord returns the pixel center.
func (hp *HotPixel) Coord() geom.Coord { return hp.pt }

// Envelope returns the pixel square, expanded marginally so index queries
// cannot miss boundary contacts.
func (hp *HotPixel) Envelope() geom.Envelope {
	pad := hp.half
	if pad == 0 {
		pad = minRectExtent
	}
	return geom.NewEnvelope(hp.pt.X-pad, hp.pt.Y-pad, hp.pt.X+pad, hp.pt.Y+pad).ExpandedBy(pad * 0.25)
}

// Intersects reports whether segment (p0, p1) enters the pixel: it passes
// through the pixel interior, or along the boundary with an endpoint
// inside, or terminates on the pixel center.
func (hp *HotPixel) Intersects(p0, p1 geom.Coord) bool {
	if hp.scale <= 0 {
		// Degenerate pixel: exact point-on-segment test.
		if p0.Equals2D(hp.pt) || p1.Equals2D(hp.pt) {
			return true
		}
		return robust.OrientationIndex(p0, p1, hp.pt) == robust.Collinear &&
			hp.pt.X >= minf(p0.X, p1.X) && hp.pt.X <= maxf(p0.X, p1.X) &&
			hp.pt.Y >= minf(p0.Y, p1.Y) && hp.pt.Y <= maxf(p0.Y, p1.Y)
	}

	if maxf(p0.X, p1.X) < hp.pt.X-hp.half || minf(p0.X, p1.X) > hp.pt.X+hp.half ||
		maxf(p0.Y, p1.Y) < hp.pt.Y-hp.half || minf(p0.Y, p1.Y) > hp.pt.Y+hp.half {
		return false
	}
	return hp.intersectsToleranceSquare(p0, p1)
}

// intersectsToleranceSquare tests the segment against the closed pixel
// square. Touching the top or right side alone does not count, so a
// segment grazing two adjacent pixels snaps into exactly one of them.
func (hp *HotPixel) intersectsToleranceSquare(p0, p1 geom.Coord) bool {
	intersectsLeft := false
	intersectsBottom := false

	hp.li.Compute(p0, p1, hp.corners[0], hp.corners[1])
	if hp.li.IsProper() {
		return true
	}

	hp.li.Compute(p0, p1, hp.corners[1], hp.corners[2])
	if hp.li.IsProper() {
		return true
	}
	if hp.li.HasIntersection() {
		intersectsLeft = true
	}

	hp.li.Compute(p0, p1, hp.corners[2], hp.corners[3])
	if hp.li.IsProper() {
		return true
	}
	if hp.li.HasIntersection() {
		intersectsBottom = true
	}

	hp.li.Compute(p0, p1, hp.corners[3], hp.corners[0])
	if hp.li.IsProper() {
		return true
	}

	if intersectsLeft && intersectsBottom {
		return true
	}
	// A segment lying wholly inside the pixel crosses no side.
	for _, p := range [2]geom.Coord{p0, p1} {
		if p.X > hp.pt.X-hp.half && p.X < hp.pt.X+hp.half &&
			p.Y > hp.pt.Y-hp.half && p.Y < hp.pt.Y+hp.half {
			return true
		}
	}
	if p0.Equals2D(hp.pt) || p1.Equals2D(hp.pt) {
		return true
	}
	return false
}

func minf(a, b float64) float64 {
	if a < b {
		return a
	}
	return b
}

func maxf(a, b float64) float64 {
	if a > b {
		return a
	}
	return b
}
