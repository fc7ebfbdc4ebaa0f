package buffer

import (
	"math"
	"sort"

	"github.com/simplegeo/jts/geom"
	"github.com/simplegeo/jts/noding"
	"github.com/simplegeo/jts/robust"
)

// Location classifies the region on one side of an edge, following the
// DE-9IM location domain.
type Location uint8

const (
	// LocNone marks a side not yet resolved.
	LocNone Location = iota
	// LocInterior marks the buffer body.
	LocInterior
	// LocBoundary marks a side pinched onto the result boundary.
	LocBoundary
	// LocExterior marks the complement of the buffer body.
	LocExterior
)

func (l Location) String() string {
	switch l {
	case LocInterior:
		return "interior"
	case LocBoundary:
		return "boundary"
	case LocExterior:
		return "exterior"
	default:
		return "none"
	}
}

// Label carries the region location on each side of an edge, relative to
// the edge's forward direction.
type Label struct {
	Left, Right Location
}

// isBoundary reports whether the edge separates interior from exterior.
func (l Label) isBoundary() bool {
	return (l.Left == LocInterior && l.Right == LocExterior) ||
		(l.Left == LocExterior && l.Right == LocInterior)
}

// graphEdge is a noded, internally simple polyline between two graph
// nodes.
type graphEdge struct {
	pts   []geom.Coord
	label Label
}

// graphNode is a coordinate-keyed vertex with its incident directed
// edge-ends sorted counter-clockwise by outgoing azimuth.
type graphNode struct {
	pt   geom.Coord
	ends []int
}

// dirEdge is a directed edge-end: one traversal direction of an edge,
// anchored at its origin node. Links are arena indices, so the cyclic
// node/edge/edge-end structure needs no pointer graph.
type dirEdge struct {
	edge    int
	forward bool
	origin  int
	dx, dy  float64
	sym     int
}

// planarGraph is the labeled topology graph built from the noded offset
// curves. All storage is index-keyed and local to one buffer invocation.
type planarGraph struct {
	edges  []graphEdge
	nodes  []graphNode
	ends   []dirEdge
	curves [][]geom.Coord

	probeEps float64
}

// buildGraph interns the noded strings into nodes, edges and edge-ends.
// Same-direction duplicate edges are merged; reversed duplicates are kept,
// since their winding contributions cancel during labeling.
func buildGraph(noded []*noding.SegmentString, curves [][]geom.Coord, probeEps float64) *planarGraph {
	g := &planarGraph{curves: curves, probeEps: probeEps}
	nodeIndex := make(map[[2]float64]int)
	seen := make(map[string]struct{})

	intern := func(p geom.Coord) int {
		key := [2]float64{p.X, p.Y}
		if id, ok := nodeIndex[key]; ok {
			return id
		}
		id := len(g.nodes)
		g.nodes = append(g.nodes, graphNode{pt: p})
		nodeIndex[key] = id
		return id
	}

	for _, ss := range noded {
		pts := ss.Coords()
		if len(pts) < 2 {
			continue
		}
		key := edgeKey(pts)
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}

		e := len(g.edges)
		g.edges = append(g.edges, graphEdge{pts: pts})

		n0 := intern(pts[0])
		n1 := intern(pts[len(pts)-1])

		fwd := len(g.ends)
		bwd := fwd + 1
		g.ends = append(g.ends,
			dirEdge{
				edge: e, forward: true, origin: n0,
				dx: pts[1].X - pts[0].X, dy: pts[1].Y - pts[0].Y,
				sym: bwd,
			},
			dirEdge{
				edge: e, forward: false, origin: n1,
				dx: pts[len(pts)-2].X - pts[len(pts)-1].X, dy: pts[len(pts)-2].Y - pts[len(pts)-1].Y,
				sym: fwd,
			},
		)
		g.nodes[n0].ends = append(g.nodes[n0].ends, fwd)
		g.nodes[n1].ends = append(g.nodes[n1].ends, bwd)
	}

	g.sortNodeEnds()
	return g
}

// edgeKey builds a bit-exact key of the directed coordinate sequence.
func edgeKey(pts []geom.Coord) string {
	buf := make([]byte, 0, len(pts)*16)
	for _, p := range pts {
		buf = appendBits(buf, p.X)
		buf = appendBits(buf, p.Y)
	}
	return string(buf)
}

func appendBits(buf []byte, v float64) []byte {
	b := math.Float64bits(v)
	for i := 0; i < 8; i++ {
		buf = append(buf, byte(b>>(8*i)))
	}
	return buf
}

// sortNodeEnds orders the edge-ends around every node counter-clockwise,
// comparing by quadrant first and by robust orientation within a quadrant.
func (g *planarGraph) sortNodeEnds() {
	for ni := range g.nodes {
		n := &g.nodes[ni]
		sort.SliceStable(n.ends, func(i, j int) bool {
			a, b := g.ends[n.ends[i]], g.ends[n.ends[j]]
			qa := dirQuadrant(a.dx, a.dy)
			qb := dirQuadrant(b.dx, b.dy)
			if qa != qb {
				return qa < qb
			}
			pa := geom.XY(n.pt.X+a.dx, n.pt.Y+a.dy)
			pb := geom.XY(n.pt.X+b.dx, n.pt.Y+b.dy)
			return robust.OrientationIndex(n.pt, pa, pb) == robust.CounterClockwise
		})
	}
}

func dirQuadrant(dx, dy float64) int {
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

// sideLoc returns the region location on one side of a directed edge-end.
func (g *planarGraph) sideLoc(endID int, left bool) Location {
	e := g.ends[endID]
	lbl := g.edges[e.edge].label
	if e.forward == left {
		return lbl.Left
	}
	return lbl.Right
}

func (g *planarGraph) setSideLoc(endID int, left bool, loc Location) {
	e := g.ends[endID]
	lbl := &g.edges[e.edge].label
	if e.forward == left {
		lbl.Left = loc
	} else {
		lbl.Right = loc
	}
}

// computeLabels assigns each edge side a location by probing a point just
// off the edge midpoint against the winding of the snapped curve set, then
// resolves leftovers by propagation around nodes. Conflicting labels mean
// the noded topology is inconsistent and surface as a TopologyError for
// the precision-fallback driver.
func (g *planarGraph) computeLabels() error {
	for i := range g.edges {
		e := &g.edges[i]
		seg := longestSegment(e.pts)
		p0, p1 := e.pts[seg], e.pts[seg+1]
		mid := geom.XY((p0.X+p1.X)/2, (p0.Y+p1.Y)/2)
		u := p1.R2().Sub(p0.R2()).Normalize()
		// Left normal of the forward direction.
		nx, ny := -u.Y, u.X

		e.label.Left = g.locate(mid, nx, ny)
		e.label.Right = g.locate(mid, -nx, -ny)
	}
	return g.propagateLabels()
}

// locate classifies the probe point base + eps*(nx, ny): interior when the
// total winding of the curve set is non-zero. Probes landing exactly on a
// curve are retried closer to the edge; persistent hits yield LocNone for
// propagation to fill.
func (g *planarGraph) locate(base geom.Coord, nx, ny float64) Location {
	eps := g.probeEps
	for try := 0; try < 4; try++ {
		p := geom.XY(base.X+eps*nx, base.Y+eps*ny)
		wn := 0
		onCurve := false
		for _, c := range g.curves {
			w, on := geom.WindingNumber(p, c)
			if on {
				onCurve = true
				break
			}
			wn += w
		}
		if !onCurve {
			if wn != 0 {
				return LocInterior
			}
			return LocExterior
		}
		eps /= 2
	}
	return LocNone
}

// propagateLabels fills unresolved sides by flooding around nodes: the
// regions between counter-clockwise adjacent edge-ends coincide, so the
// left side of one end and the right side of its CCW successor must agree.
func (g *planarGraph) propagateLabels() error {
	for changed := true; changed; {
		changed = false
		for ni := range g.nodes {
			n := &g.nodes[ni]
			m := len(n.ends)
			for i := 0; i < m; i++ {
				a := n.ends[i]
				b := n.ends[(i+1)%m]
				la := g.sideLoc(a, true)
				rb := g.sideLoc(b, false)
				switch {
				case la == LocNone && rb != LocNone:
					g.setSideLoc(a, true, rb)
					changed = true
				case rb == LocNone && la != LocNone:
					g.setSideLoc(b, false, la)
					changed = true
				case la != LocNone && rb != LocNone && la != rb:
					return geom.NewTopologyError("inconsistent region labels", n.pt)
				}
			}
		}
	}
	for i := range g.edges {
		lbl := g.edges[i].label
		if lbl.Left == LocNone || lbl.Right == LocNone {
			return geom.NewTopologyError("unresolved edge label", g.edges[i].pts[0])
		}
	}
	return nil
}

func longestSegment(pts []geom.Coord) int {
	best := 0
	bestLen := -1.0
	for i := 0; i+1 < len(pts); i++ {
		if d := pts[i].Distance(pts[i+1]); d > bestLen {
			bestLen = d
			best = i
		}
	}
	return best
}
