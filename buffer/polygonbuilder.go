package buffer

import (
	"math"
	"sort"

	"github.com/dhconnelly/rtreego"

	"github.com/simplegeo/jts/geom"
)

// polygonBuilder traces the boundary rings of a labeled planar graph and
// assembles them into polygons: counter-clockwise rings are shells,
// clockwise rings are holes, and each hole nests in the smallest shell
// containing it.
type polygonBuilder struct {
	g   *planarGraph
	fac *geom.Factory
}

// tracedRing is an extracted boundary ring.
type tracedRing struct {
	pts  []geom.Coord
	area float64
	env  geom.Envelope
}

// shellEntry pairs a shell ring with its accumulated holes; it also serves
// as the R-tree item for hole nesting queries.
type shellEntry struct {
	ring  *tracedRing
	holes []*tracedRing
}

// Bounds implements rtreego.Spatial.
func (s *shellEntry) Bounds() rtreego.Rect {
	return rtreeRectOf(s.ring.env)
}

func rtreeRectOf(env geom.Envelope) rtreego.Rect {
	w := env.Width()
	h := env.Height()
	const minExtent = 1e-9
	if w < minExtent {
		w = minExtent
	}
	if h < minExtent {
		h = minExtent
	}
	r, _ := rtreego.NewRect(rtreego.Point{env.MinX(), env.MinY()}, []float64{w, h})
	return r
}

// build extracts all rings and emits the polygonal result.
func (pb *polygonBuilder) build() (geom.Geometry, error) {
	rings, err := pb.traceRings()
	if err != nil {
		return nil, err
	}

	var shells []*shellEntry
	var holes []*tracedRing
	for _, r := range rings {
		if r.area > 0 {
			shells = append(shells, &shellEntry{ring: r})
		} else {
			holes = append(holes, r)
		}
	}
	if len(shells) == 0 {
		return pb.fac.EmptyPolygon(), nil
	}
	if err := pb.assignHoles(shells, holes); err != nil {
		return nil, err
	}

	polys := make([]*geom.Polygon, 0, len(shells))
	for _, s := range shells {
		poly, err := pb.toPolygon(s)
		if err != nil {
			return nil, err
		}
		polys = append(polys, poly)
	}
	return pb.fac.BuildPolygonal(polys), nil
}

// traceRings walks every unused boundary edge-end that keeps the interior
// on its left, following the next-CCW-around-the-ring pointer until the
// walk closes.
func (pb *polygonBuilder) traceRings() ([]*tracedRing, error) {
	g := pb.g
	used := make([]bool, len(g.ends))
	var rings []*tracedRing

	for start := range g.ends {
		if used[start] || !pb.isRingEnd(start) {
			continue
		}
		pts, err := pb.traceRing(start, used)
		if err != nil {
			return nil, err
		}
		pts = geom.CloseRing(geom.RemoveRepeated(pts))
		if len(pts) < 4 {
			continue
		}
		area := geom.SignedArea(pts)
		if area == 0 {
			continue
		}
		rings = append(rings, &tracedRing{
			pts:  pts,
			area: area,
			env:  geom.EnvelopeOf(pts...),
		})
	}
	return rings, nil
}

// isRingEnd reports whether the directed end lies on the result boundary
// with the interior on its left hand.
func (pb *polygonBuilder) isRingEnd(endID int) bool {
	g := pb.g
	if !g.edges[g.ends[endID].edge].label.isBoundary() {
		return false
	}
	return g.sideLoc(endID, true) == LocInterior
}

// traceRing follows one boundary ring from the starting edge-end.
func (pb *polygonBuilder) traceRing(start int, used []bool) ([]geom.Coord, error) {
	g := pb.g
	var pts []geom.Coord
	cur := start
	for {
		used[cur] = true
		pts = appendEdgeCoords(pts, g.edges[g.ends[cur].edge].pts, g.ends[cur].forward)

		next, ok := pb.nextRingEnd(cur)
		if !ok {
			return nil, geom.NewTopologyError("unable to close boundary ring",
				g.nodes[g.ends[g.ends[cur].sym].origin].pt)
		}
		if next == start {
			return pts, nil
		}
		if used[next] {
			return nil, geom.NewTopologyError("boundary ring re-enters a traced edge",
				g.nodes[g.ends[next].origin].pt)
		}
		cur = next
	}
}

// nextRingEnd picks the continuation at the node the directed end arrives
// at: scanning clockwise from the reverse direction, the first boundary
// end that keeps the interior on its left bounds the same face.
func (pb *polygonBuilder) nextRingEnd(cur int) (int, bool) {
	g := pb.g
	sym := g.ends[cur].sym
	node := &g.nodes[g.ends[sym].origin]
	m := len(node.ends)

	at := -1
	for i, id := range node.ends {
		if id == sym {
			at = i
			break
		}
	}
	if at < 0 {
		return 0, false
	}
	for step := 1; step <= m; step++ {
		cand := node.ends[((at-step)%m+m)%m]
		if pb.isRingEnd(cand) {
			return cand, true
		}
	}
	return 0, false
}

// appendEdgeCoords appends the edge coordinates in traversal direction,
// dropping the joint duplicate.
func appendEdgeCoords(dst, pts []geom.Coord, forward bool) []geom.Coord {
	if forward {
		for i, p := range pts {
			if i == 0 && len(dst) > 0 && dst[len(dst)-1].Equals2D(p) {
				continue
			}
			dst = append(dst, p)
		}
		return dst
	}
	for i := len(pts) - 1; i >= 0; i-- {
		p := pts[i]
		if i == len(pts)-1 && len(dst) > 0 && dst[len(dst)-1].Equals2D(p) {
			continue
		}
		dst = append(dst, p)
	}
	return dst
}

// assignHoles nests every hole into the smallest shell strictly containing
// one of its vertices, using an R-tree over shell envelopes to narrow the
// candidates.
func (pb *polygonBuilder) assignHoles(shells []*shellEntry, holes []*tracedRing) error {
	tree := rtreego.NewTree(2, 4, 8)
	for _, s := range shells {
		tree.Insert(s)
	}
	for _, h := range holes {
		owner := pb.findShellFor(h, tree)
		if owner == nil {
			return geom.NewTopologyError("hole not contained in any shell", h.pts[0])
		}
		owner.holes = append(owner.holes, h)
	}
	return nil
}

func (pb *polygonBuilder) findShellFor(h *tracedRing, tree *rtreego.Rtree) *shellEntry {
	var cands []*shellEntry
	for _, hit := range tree.SearchIntersect(rtreeRectOf(h.env)) {
		s := hit.(*shellEntry)
		if s.ring.env.Covers(h.env) {
			cands = append(cands, s)
		}
	}
	sort.SliceStable(cands, func(i, j int) bool {
		return math.Abs(cands[i].ring.area) < math.Abs(cands[j].ring.area)
	})
	for _, s := range cands {
		for _, p := range h.pts[:len(h.pts)-1] {
			if geom.PointInRing(p, s.ring.pts) {
				return s
			}
		}
	}
	return nil
}

func (pb *polygonBuilder) toPolygon(s *shellEntry) (*geom.Polygon, error) {
	shell, err := pb.fac.LinearRing(s.ring.pts)
	if err != nil {
		return nil, geom.NewTopologyError("degenerate shell ring", s.ring.pts[0])
	}
	var holes []*geom.LinearRing
	for _, h := range s.holes {
		hr, err := pb.fac.LinearRing(h.pts)
		if err != nil {
			return nil, geom.NewTopologyError("degenerate hole ring", h.pts[0])
		}
		holes = append(holes, hr)
	}
	return pb.fac.Polygon(shell, holes), nil
}
