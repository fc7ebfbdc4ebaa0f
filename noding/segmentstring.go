// Package noding computes fully-noded arrangements of segment strings:
// any two segments of the output either share an endpoint or have disjoint
// interiors. Candidate segment pairs are found through a monotone-chain
// R-tree index; robustness under a fixed precision model comes from
// snap-rounding on hot pixels.
package noding

import (
	"sort"

	"github.com/simplegeo/jts/geom"
)

// SegmentString is a sequence of two or more coordinates with a list of
// nodes (split points) accumulated during noding. Node indices are
// monotone and every inserted split point lies on its segment.
type SegmentString struct {
	pts []geom.Coord
	// Data carries caller context (such as the originating curve index)
	// through noding unchanged.
	Data  any
	nodes []segmentNode
}

// segmentNode is a split point on segment segIndex. A node at a vertex is
// normalized so that pt equals the vertex coordinate.
type segmentNode struct {
	segIndex int
	pt       geom.Coord
}

// NewSegmentString wraps a coordinate sequence. Consecutive duplicates are
// collapsed; the sequence must retain at least two points.
func NewSegmentString(pts []geom.Coord, data any) *SegmentString {
	return &SegmentString{pts: geom.RemoveRepeated(pts), Data: data}
}

// Coords returns the vertex sequence. Callers must not mutate it.
func (ss *SegmentString) Coords() []geom.Coord { return ss.pts }

// NumSegments returns the segment count.
func (ss *SegmentString) NumSegments() int {
	if len(ss.pts) < 2 {
		return 0
	}
	return len(ss.pts) - 1
}

// Segment returns the endpoints of segment i.
func (ss *SegmentString) Segment(i int) (geom.Coord, geom.Coord) {
	return ss.pts[i], ss.pts[i+1]
}

// Envelope returns the bounding box of the string.
func (ss *SegmentString) Envelope() geom.Envelope {
	return geom.EnvelopeOf(ss.pts...)
}

// AddIntersection records a node at pt on segment segIndex. Nodes landing
// on a segment endpoint are normalized to that vertex, so repeated
// insertions of shared endpoints collapse.
func (ss *SegmentString) AddIntersection(pt geom.Coord, segIndex int) {
	idx := segIndex
	if pt.Equals2D(ss.pts[segIndex+1]) {
		idx = segIndex + 1
		if idx < len(ss.pts)-1 {
			pt = ss.pts[idx]
		} else {
			// Node at the final vertex; splitting there is a no-op.
			return
		}
	}
	if pt.Equals2D(ss.pts[idx]) {
		pt = ss.pts[idx]
	}
	ss.nodes = append(ss.nodes, segmentNode{segIndex: idx, pt: pt})
}

// NodedSubstrings splits the string at its sorted node list and appends
// the resulting substrings to out. Zero-length pieces are dropped.
func (ss *SegmentString) NodedSubstrings(out []*SegmentString) []*SegmentString {
	if len(ss.pts) < 2 {
		return out
	}
	nodes := ss.sortedNodes()
	for i := 0; i+1 < len(nodes); i++ {
		sub := ss.substring(nodes[i], nodes[i+1])
		if len(sub) >= 2 {
			out = append(out, &SegmentString{pts: sub, Data: ss.Data})
		}
	}
	return out
}

// sortedNodes returns the node list with the string endpoints added,
// sorted along the string and deduplicated.
func (ss *SegmentString) sortedNodes() []segmentNode {
	nodes := make([]segmentNode, 0, len(ss.nodes)+2)
	nodes = append(nodes, segmentNode{segIndex: 0, pt: ss.pts[0]})
	nodes = append(nodes, ss.nodes...)
	last := len(ss.pts) - 1
	nodes = append(nodes, segmentNode{segIndex: last, pt: ss.pts[last]})

	sort.SliceStable(nodes, func(i, j int) bool {
		a, b := nodes[i], nodes[j]
		if a.segIndex != b.segIndex {
			return a.segIndex < b.segIndex
		}
		origin := ss.pts[a.segIndex]
		da := sqDist(origin, a.pt)
		db := sqDist(origin, b.pt)
		return da < db
	})

	// Drop repeated nodes at the same place along the string. A later
	// visit to the same point (a self-crossing) stays a separate split.
	uniq := nodes[:1]
	for _, n := range nodes[1:] {
		prev := uniq[len(uniq)-1]
		if n.segIndex != prev.segIndex || !n.pt.Equals2D(prev.pt) {
			uniq = append(uniq, n)
		}
	}
	return uniq
}

// substring extracts the coordinates between two nodes, inclusive.
func (ss *SegmentString) substring(from, to segmentNode) []geom.Coord {
	pts := make([]geom.Coord, 0, to.segIndex-from.segIndex+2)
	pts = append(pts, from.pt)
	for i := from.segIndex + 1; i <= to.segIndex; i++ {
		pts = append(pts, ss.pts[i])
	}
	pts = append(pts, to.pt)
	return geom.RemoveRepeated(pts)
}

// SnappedCoords returns the full vertex sequence with every node
// inserted: the concatenation of the noded substrings. For a closed input
// the result is the same closed loop traced through its split points.
func (ss *SegmentString) SnappedCoords() []geom.Coord {
	if len(ss.pts) < 2 {
		return nil
	}
	nodes := ss.sortedNodes()
	var out []geom.Coord
	for i := 0; i+1 < len(nodes); i++ {
		out = append(out, ss.substring(nodes[i], nodes[i+1])...)
	}
	return geom.RemoveRepeated(out)
}

func sqDist(a, b geom.Coord) float64 {
	dx := a.X - b.X
	dy := a.Y - b.Y
	return dx*dx + dy*dy
}

// NodedSubstringsOf splits every string and collects the results.
func NodedSubstringsOf(strings []*SegmentString) []*SegmentString {
	var out []*SegmentString
	for _, ss := range strings {
		out = ss.NodedSubstrings(out)
	}
	return out
}
