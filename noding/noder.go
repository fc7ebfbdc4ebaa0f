package noding

import (
	"github.com/dhconnelly/rtreego"

	"github.com/simplegeo/jts/geom"
	"github.com/simplegeo/jts/robust"
)

// SegmentIntersector is the callback invoked for every candidate segment
// pair produced by the chain index.
type SegmentIntersector interface {
	ProcessIntersections(a *SegmentString, ai int, b *SegmentString, bi int)
}

// MCIndexNoder finds intersecting segment pairs across a set of segment
// strings (self-pairs included) using a monotone-chain R-tree. The work of
// recording intersections is delegated to the SegmentIntersector.
type MCIndexNoder struct {
	si SegmentIntersector
}

// NewMCIndexNoder returns a noder driving the given intersector.
func NewMCIndexNoder(si SegmentIntersector) *MCIndexNoder {
	return &MCIndexNoder{si: si}
}

// ComputeNodes visits every candidate segment pair of strings. Chains are
// paired through the index; each unordered chain pair is processed once.
func (n *MCIndexNoder) ComputeNodes(strings []*SegmentString) {
	var chains []*monotoneChain
	nextID := 0
	for _, ss := range strings {
		chains = buildChains(ss, &nextID, chains)
	}
	if len(chains) == 0 {
		return
	}
	tree := rtreego.NewTree(2, 4, 8)
	for _, mc := range chains {
		tree.Insert(mc)
	}
	for _, mc := range chains {
		for _, hit := range tree.SearchIntersect(mc.Bounds()) {
			other := hit.(*monotoneChain)
			if other.id <= mc.id {
				continue
			}
			mc.computeOverlaps(other, n.si.ProcessIntersections)
		}
	}
}

// IntersectionAdder records every intersection found between candidate
// segments as nodes on both segment strings.
type IntersectionAdder struct {
	LI *robust.LineIntersector
}

// NewIntersectionAdder returns an adder using the given intersector.
func NewIntersectionAdder(li *robust.LineIntersector) *IntersectionAdder {
	return &IntersectionAdder{LI: li}
}

// ProcessIntersections implements SegmentIntersector.
func (ia *IntersectionAdder) ProcessIntersections(a *SegmentString, ai int, b *SegmentString, bi int) {
	if a == b && ai == bi {
		return
	}
	a0, a1 := a.Segment(ai)
	b0, b1 := b.Segment(bi)
	ia.LI.Compute(a0, a1, b0, b1)
	if !ia.LI.HasIntersection() {
		return
	}
	for i := 0; i < ia.LI.NumPoints(); i++ {
		pt := ia.LI.Point(i)
		a.AddIntersection(pt, ai)
		b.AddIntersection(pt, bi)
	}
}

// InteriorIntersectionFinder collects the intersection points that lie in
// the interior of at least one candidate segment. Points are reported in
// discovery order; callers deduplicate.
type InteriorIntersectionFinder struct {
	LI  *robust.LineIntersector
	Pts []geom.Coord
}

// NewInteriorIntersectionFinder returns a finder using the given
// intersector.
func NewInteriorIntersectionFinder(li *robust.LineIntersector) *InteriorIntersectionFinder {
	return &InteriorIntersectionFinder{LI: li}
}

// ProcessIntersections implements SegmentIntersector.
func (f *InteriorIntersectionFinder) ProcessIntersections(a *SegmentString, ai int, b *SegmentString, bi int) {
	if a == b && ai == bi {
		return
	}
	a0, a1 := a.Segment(ai)
	b0, b1 := b.Segment(bi)
	f.LI.Compute(a0, a1, b0, b1)
	if !f.LI.HasIntersection() || !f.LI.IsInteriorIntersection() {
		return
	}
	for i := 0; i < f.LI.NumPoints(); i++ {
		f.Pts = append(f.Pts, f.LI.Point(i))
	}
}

// NodeStrings runs the full floating-point noding pipeline: pair segments
// through the chain index, record intersections on both strings, and split
// at the accumulated nodes.
func NodeStrings(strings []*SegmentString, li *robust.LineIntersector) []*SegmentString {
	noder := NewMCIndexNoder(NewIntersectionAdder(li))
	noder.ComputeNodes(strings)
	return NodedSubstringsOf(strings)
}
