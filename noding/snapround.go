package noding

import (
	"github.com/dhconnelly/rtreego"

	"github.com/simplegeo/jts/geom"
	"github.com/simplegeo/jts/robust"
)

// SnapRounder produces a fully-noded arrangement under a fixed precision
// model. Every intersection point and every vertex becomes a hot pixel;
// segments entering a pixel are snapped through its center. The snap
// displacement of any point is bounded by sqrt(2)/(2*scale).
type SnapRounder struct {
	pm *geom.PrecisionModel
}

// NewSnapRounder returns a snap-rounding noder for a fixed precision
// model.
func NewSnapRounder(pm *geom.PrecisionModel) *SnapRounder {
	if pm.IsFloating() {
		panic("noding: snap rounding requires a fixed precision model")
	}
	return &SnapRounder{pm: pm}
}

// Node snaps and splits the input strings, returning segment strings in
// which any two segments either share an endpoint or are interior-disjoint,
// together with the snapped full-vertex sequence of each surviving input
// string.
func (sr *SnapRounder) Node(strings []*SegmentString) ([]*SegmentString, [][]geom.Coord, error) {
	rounded := sr.roundInput(strings)
	if len(rounded) == 0 {
		return nil, nil, nil
	}

	li := robust.NewLineIntersector(sr.pm)

	// Phase 1: every interior intersection becomes a hot-pixel center.
	finder := NewInteriorIntersectionFinder(li)
	NewMCIndexNoder(finder).ComputeNodes(rounded)

	pixels := sr.collectPixels(finder.Pts, rounded, li)

	// Phase 2: snap every segment into every hot pixel it enters.
	snapper := newPointSnapper(rounded)
	for _, hp := range pixels {
		snapper.snap(hp)
	}

	out := NodedSubstringsOf(rounded)
	if err := sr.check(out); err != nil {
		return nil, nil, err
	}
	snapped := make([][]geom.Coord, 0, len(rounded))
	for _, ss := range rounded {
		snapped = append(snapped, ss.SnappedCoords())
	}
	return out, snapped, nil
}

// roundInput snaps all input vertices to the grid, dropping strings that
// collapse below two distinct points.
func (sr *SnapRounder) roundInput(strings []*SegmentString) []*SegmentString {
	out := make([]*SegmentString, 0, len(strings))
	for _, ss := range strings {
		pts := make([]geom.Coord, len(ss.Coords()))
		for i, p := range ss.Coords() {
			pts[i] = sr.pm.MakeCoordPrecise(p)
		}
		pts = geom.RemoveRepeated(pts)
		if len(pts) >= 2 {
			out = append(out, &SegmentString{pts: pts, Data: ss.Data})
		}
	}
	return out
}

// collectPixels builds the deduplicated hot-pixel set: snapped interior
// intersections first, then every vertex.
func (sr *SnapRounder) collectPixels(intPts []geom.Coord, strings []*SegmentString, li *robust.LineIntersector) []*HotPixel {
	var pixels []*HotPixel
	seen := make(map[[2]float64]struct{})
	add := func(p geom.Coord) {
		p = sr.pm.MakeCoordPrecise(p)
		key := [2]float64{p.X, p.Y}
		if _, ok := seen[key]; ok {
			return
		}
		seen[key] = struct{}{}
		pixels = append(pixels, NewHotPixel(p, sr.pm.Scale(), li))
	}
	for _, p := range intPts {
		add(p)
	}
	for _, ss := range strings {
		for _, p := range ss.Coords() {
			add(p)
		}
	}
	return pixels
}

// check verifies that every emitted vertex sits on the precision grid.
func (sr *SnapRounder) check(strings []*SegmentString) error {
	for _, ss := range strings {
		for _, p := range ss.Coords() {
			if !p.Equals2D(sr.pm.MakeCoordPrecise(p)) {
				return geom.NewTopologyError("snapped vertex off the precision grid", p)
			}
		}
	}
	return nil
}

// pointSnapper indexes the monotone chains of the strings being snapped so
// each hot pixel only visits nearby segments.
type pointSnapper struct {
	tree *rtreego.Rtree
}

func newPointSnapper(strings []*SegmentString) *pointSnapper {
	var chains []*monotoneChain
	nextID := 0
	for _, ss := range strings {
		chains = buildChains(ss, &nextID, chains)
	}
	tree := rtreego.NewTree(2, 4, 8)
	for _, mc := range chains {
		tree.Insert(mc)
	}
	return &pointSnapper{tree: tree}
}

// snap adds a node at the pixel center to every segment entering hp.
func (s *pointSnapper) snap(hp *HotPixel) {
	env := hp.Envelope()
	for _, hit := range s.tree.SearchIntersect(rtreeRect(env)) {
		mc := hit.(*monotoneChain)
		pts := mc.ss.Coords()
		for i := mc.start; i < mc.end; i++ {
			if !env.IntersectsSegmentEnvelope(pts[i], pts[i+1]) {
				continue
			}
			if hp.Intersects(pts[i], pts[i+1]) {
				mc.ss.AddIntersection(hp.Coord(), i)
			}
		}
	}
}
