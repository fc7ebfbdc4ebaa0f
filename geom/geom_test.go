package geom

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnvelopeNullAndExpand(t *testing.T) {
	var e Envelope
	require.True(t, e.IsNull())

	e.ExpandToInclude(XY(2, 3))
	require.False(t, e.IsNull())
	assert.Equal(t, 2.0, e.MinX())
	assert.Equal(t, 3.0, e.MinY())

	e.ExpandToInclude(XY(-1, 7))
	assert.Equal(t, -1.0, e.MinX())
	assert.Equal(t, 2.0, e.MaxX())
	assert.Equal(t, 7.0, e.MaxY())
	assert.Equal(t, 3.0, e.Width())
	assert.Equal(t, 4.0, e.Height())
	assert.Equal(t, 4.0, e.MaxExtent())
}

func TestEnvelopeCoversAndIntersects(t *testing.T) {
	a := NewEnvelope(0, 0, 10, 10)
	b := NewEnvelope(2, 2, 5, 5)
	c := NewEnvelope(11, 11, 12, 12)

	assert.True(t, a.Covers(b))
	assert.False(t, b.Covers(a))
	assert.True(t, a.Intersects(b))
	assert.False(t, a.Intersects(c))
	assert.True(t, a.CoversCoord(XY(10, 10)))
	assert.False(t, a.CoversCoord(XY(10.001, 5)))

	var null Envelope
	assert.False(t, a.Intersects(null))
	assert.False(t, null.Covers(a))
}

func TestEnvelopeExpandedBy(t *testing.T) {
	a := NewEnvelope(0, 0, 10, 10)
	grown := a.ExpandedBy(2)
	assert.Equal(t, -2.0, grown.MinX())
	assert.Equal(t, 12.0, grown.MaxY())

	collapsed := a.ExpandedBy(-6)
	assert.True(t, collapsed.IsNull())
}

func TestPrecisionModelRounding(t *testing.T) {
	pm := NewFixedPrecision(100)
	assert.Equal(t, 1.23, pm.MakePrecise(1.234))
	assert.Equal(t, 1.24, pm.MakePrecise(1.235))

	// Idempotence: a made-precise value rounds to itself.
	v := pm.MakePrecise(3.14159)
	assert.Equal(t, v, pm.MakePrecise(v))

	floating := NewFloatingPrecision()
	assert.Equal(t, 1.234, floating.MakePrecise(1.234))
	assert.True(t, floating.IsFloating())
	assert.False(t, pm.IsFloating())
	assert.Equal(t, 0.01, pm.GridSize())
}

func TestSignedAreaAndOrientation(t *testing.T) {
	ccw := []Coord{XY(0, 0), XY(10, 0), XY(10, 10), XY(0, 10), XY(0, 0)}
	cw := CloneCoords(ccw)
	ReverseCoords(cw)

	assert.Equal(t, 100.0, SignedArea(ccw))
	assert.Equal(t, -100.0, SignedArea(cw))
	assert.True(t, IsCCW(ccw))
	assert.False(t, IsCCW(cw))

	bowtie := []Coord{XY(0, 0), XY(10, 10), XY(0, 10), XY(10, 0), XY(0, 0)}
	assert.Equal(t, 0.0, SignedArea(bowtie))
}

func TestWindingNumber(t *testing.T) {
	ring := []Coord{XY(0, 0), XY(10, 0), XY(10, 10), XY(0, 10), XY(0, 0)}

	wn, onRing := WindingNumber(XY(5, 5), ring)
	assert.Equal(t, 1, wn)
	assert.False(t, onRing)

	wn, onRing = WindingNumber(XY(15, 5), ring)
	assert.Equal(t, 0, wn)
	assert.False(t, onRing)

	_, onRing = WindingNumber(XY(10, 5), ring)
	assert.True(t, onRing)

	rev := CloneCoords(ring)
	ReverseCoords(rev)
	wn, _ = WindingNumber(XY(5, 5), rev)
	assert.Equal(t, -1, wn)

	assert.True(t, PointInRing(XY(5, 5), ring))
	assert.False(t, PointInRing(XY(10, 5), ring))
}

func TestDistancePointSegment(t *testing.T) {
	a, b := XY(0, 0), XY(10, 0)
	assert.Equal(t, 3.0, DistancePointSegment(XY(5, 3), a, b))
	assert.Equal(t, 5.0, DistancePointSegment(XY(-3, 4), a, b))
	assert.Equal(t, 0.0, DistancePointSegment(XY(7, 0), a, b))
	assert.Equal(t, math.Sqrt(8), DistancePointSegment(XY(2, 2), a, a))
}

func TestFactoryConstruction(t *testing.T) {
	f := NewFactory(nil)
	require.True(t, f.PrecisionModel().IsFloating())

	_, err := f.LineString([]Coord{XY(0, 0)})
	require.ErrorIs(t, err, ErrLineTooShort)

	_, err = f.LinearRing([]Coord{XY(0, 0), XY(1, 1)})
	require.ErrorIs(t, err, ErrRingTooShort)

	ring, err := f.LinearRing([]Coord{XY(0, 0), XY(10, 0), XY(10, 10), XY(0, 10)})
	require.NoError(t, err)
	assert.True(t, ring.IsClosed(), "factory must close open ring input")

	poly := f.Polygon(ring, nil)
	assert.Equal(t, 100.0, poly.Area())
	assert.Equal(t, 2, poly.Dimension())

	hole, err := f.LinearRing([]Coord{XY(4, 4), XY(6, 4), XY(6, 6), XY(4, 6)})
	require.NoError(t, err)
	holed := f.Polygon(ring, []*LinearRing{hole})
	assert.Equal(t, 96.0, holed.Area())

	empty := f.EmptyPolygon()
	assert.True(t, empty.IsEmpty())
	assert.True(t, empty.Envelope().IsNull())

	mp := f.MultiPolygon([]*Polygon{poly, holed})
	assert.Equal(t, 196.0, mp.Area())
	assert.Equal(t, 196.0, Area(mp))
}

func TestRemoveRepeatedAndCloseRing(t *testing.T) {
	pts := []Coord{XY(0, 0), XY(0, 0), XY(1, 1), XY(1, 1), XY(2, 2)}
	assert.Len(t, RemoveRepeated(pts), 3)

	closed := CloseRing([]Coord{XY(0, 0), XY(1, 0), XY(1, 1)})
	assert.True(t, closed[0].Equals2D(closed[len(closed)-1]))
	assert.Len(t, CloseRing(closed), 4)
}
