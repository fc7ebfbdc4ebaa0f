package buffer

import (
	"testing"

	"github.com/simplegeo/jts/geom"
)

// TestValidateRejectsNonPolygonal checks the result-kind gate.
func TestValidateRejectsNonPolygonal(t *testing.T) {
	f := geom.NewFactory(nil)
	line, _ := f.LineString([]geom.Coord{geom.XY(0, 0), geom.XY(1, 0)})

	v := Validate(f.Point(geom.XY(0, 0)), 1, line)
	if v.Valid {
		t.Fatal("expected rejection of a non-polygonal result")
	}
}

// TestValidateMandatoryEmpty checks the non-positive-distance rule for
// non-areal inputs.
func TestValidateMandatoryEmpty(t *testing.T) {
	f := geom.NewFactory(nil)
	line, _ := f.LineString([]geom.Coord{geom.XY(0, 0), geom.XY(1, 0)})
	notEmpty, _ := f.PolygonFromCoords([]geom.Coord{
		geom.XY(0, 0), geom.XY(1, 0), geom.XY(1, 1), geom.XY(0, 1), geom.XY(0, 0),
	})

	if v := Validate(line, -1, notEmpty); v.Valid {
		t.Fatal("expected rejection: negative distance on a line must be empty")
	}
	if v := Validate(line, -1, f.EmptyPolygon()); !v.Valid {
		t.Fatalf("expected empty result accepted, got %v", v)
	}
}

// TestValidateEnvelopeCheck checks that a result failing to cover the
// expanded input envelope is flagged.
func TestValidateEnvelopeCheck(t *testing.T) {
	f := geom.NewFactory(nil)
	sq, _ := f.PolygonFromCoords([]geom.Coord{
		geom.XY(0, 0), geom.XY(10, 0), geom.XY(10, 10), geom.XY(0, 10), geom.XY(0, 0),
	})

	// The unchanged input cannot be its own positive buffer.
	v := Validate(sq, 1, sq)
	if v.Valid {
		t.Fatal("expected envelope check failure for an unexpanded result")
	}
}

// TestValidateAreaSign checks the area monotonicity rule.
func TestValidateAreaSign(t *testing.T) {
	f := geom.NewFactory(nil)
	sq, _ := f.PolygonFromCoords([]geom.Coord{
		geom.XY(0, 0), geom.XY(10, 0), geom.XY(10, 10), geom.XY(0, 10), geom.XY(0, 0),
	})
	big, _ := f.PolygonFromCoords([]geom.Coord{
		geom.XY(-2, -2), geom.XY(12, -2), geom.XY(12, 12), geom.XY(-2, 12), geom.XY(-2, -2),
	})

	if v := Validate(sq, -1, big); v.Valid {
		t.Fatal("expected rejection: negative distance grew the area")
	}
}

// TestValidateDistanceBand checks the Hausdorff band against a result at
// the wrong offset.
func TestValidateDistanceBand(t *testing.T) {
	f := geom.NewFactory(nil)
	sq, _ := f.PolygonFromCoords([]geom.Coord{
		geom.XY(0, 0), geom.XY(10, 0), geom.XY(10, 10), geom.XY(0, 10), geom.XY(0, 0),
	})
	// A buffer-by-2 shape presented as a buffer-by-1 result: envelope and
	// area pass the monotone checks, the distance band does not.
	wrong, err := Buffer(sq, 2)
	if err != nil {
		t.Fatalf("buffer failed: %v", err)
	}
	v := Validate(sq, 1, wrong)
	if v.Valid {
		t.Fatal("expected distance-band rejection of an over-expanded result")
	}

	right, err := Buffer(sq, 1)
	if err != nil {
		t.Fatalf("buffer failed: %v", err)
	}
	if v := Validate(sq, 1, right); !v.Valid {
		t.Fatalf("expected correct buffer accepted, got %v", v)
	}
}
