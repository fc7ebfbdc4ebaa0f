package noding

import (
	"github.com/dhconnelly/rtreego"

	"github.com/simplegeo/jts/geom"
)

// quadrant returns the direction sector of a vector: 0 NE, 1 NW, 2 SW,
// 3 SE. Segments whose vectors stay in one sector are x- and y-monotone.
func quadrant(dx, dy float64) int {
	switch {
	case dx >= 0 && dy >= 0:
		return 0
	case dx < 0 && dy >= 0:
		return 1
	case dx < 0 && dy < 0:
		return 2
	default:
		return 3
	}
}

// monotoneChain is a maximal segment run of a string whose direction stays
// in a single quadrant. Its envelope equals the bounding box of its two
// endpoint vertices, and two chains can only intersect where their
// envelopes overlap.
type monotoneChain struct {
	ss         *SegmentString
	start, end int // vertex range; segments are start..end-1
	id         int
	env        geom.Envelope
}

// buildChains partitions ss into monotone chains, assigning ids from
// nextID upward.
func buildChains(ss *SegmentString, nextID *int, out []*monotoneChain) []*monotoneChain {
	pts := ss.Coords()
	if len(pts) < 2 {
		return out
	}
	start := 0
	for start < len(pts)-1 {
		end := start + 1
		q := quadrant(pts[end].X-pts[start].X, pts[end].Y-pts[start].Y)
		for end < len(pts)-1 {
			nq := quadrant(pts[end+1].X-pts[end].X, pts[end+1].Y-pts[end].Y)
			if nq != q {
				break
			}
			end++
		}
		mc := &monotoneChain{
			ss:    ss,
			start: start,
			end:   end,
			id:    *nextID,
			env:   geom.EnvelopeOf(pts[start], pts[end]),
		}
		*nextID++
		out = append(out, mc)
		start = end
	}
	return out
}

// Bounds implements rtreego.Spatial. Degenerate extents are padded so the
// R-tree accepts axis-parallel chains.
func (mc *monotoneChain) Bounds() rtreego.Rect {
	return rtreeRect(mc.env)
}

const minRectExtent = 1e-9

// rtreeRect converts an envelope to an R-tree rectangle with non-zero side
// lengths.
func rtreeRect(env geom.Envelope) rtreego.Rect {
	w := env.Width()
	if w < minRectExtent {
		w = minRectExtent
	}
	h := env.Height()
	if h < minRectExtent {
		h = minRectExtent
	}
	r, _ := rtreego.NewRect(rtreego.Point{env.MinX(), env.MinY()}, []float64{w, h})
	return r
}

// overlapVisitor receives candidate segment pairs whose envelopes overlap.
type overlapVisitor func(a *SegmentString, ai int, b *SegmentString, bi int)

// computeOverlaps reports every pair of segments of mc and other whose
// envelopes overlap, by recursive bisection of the two monotone ranges.
func (mc *monotoneChain) computeOverlaps(other *monotoneChain, visit overlapVisitor) {
	mc.overlapRanges(mc.start, mc.end, other, other.start, other.end, visit)
}

func (mc *monotoneChain) overlapRanges(s0, e0 int, other *monotoneChain, s1, e1 int, visit overlapVisitor) {
	if e0-s0 == 1 && e1-s1 == 1 {
		visit(mc.ss, s0, other.ss, s1)
		return
	}
	if !rangesOverlap(mc.ss, s0, e0, other.ss, s1, e1) {
		return
	}
	mid0 := (s0 + e0) / 2
	mid1 := (s1 + e1) / 2
	if s0 < mid0 {
		if s1 < mid1 {
			mc.overlapRanges(s0, mid0, other, s1, mid1, visit)
		}
		if mid1 < e1 {
			mc.overlapRanges(s0, mid0, other, mid1, e1, visit)
		}
	}
	if mid0 < e0 {
		if s1 < mid1 {
			mc.overlapRanges(mid0, e0, other, s1, mid1, visit)
		}
		if mid1 < e1 {
			mc.overlapRanges(mid0, e0, other, mid1, e1, visit)
		}
	}
}

// rangesOverlap tests sub-range envelopes; exact because each sub-range of
// a monotone chain is bounded by its endpoint vertices.
func rangesOverlap(a *SegmentString, s0, e0 int, b *SegmentString, s1, e1 int) bool {
	ea := geom.EnvelopeOf(a.Coords()[s0], a.Coords()[e0])
	eb := geom.EnvelopeOf(b.Coords()[s1], b.Coords()[e1])
	return ea.Intersects(eb)
}
