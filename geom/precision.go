package geom

import "math"

// PrecisionKind selects between exact floating ordinates and a fixed
// decimal grid.
type PrecisionKind uint8

const (
	// Floating performs no rounding; ordinates keep full double precision.
	Floating PrecisionKind = iota
	// Fixed snaps ordinates to a grid of spacing 1/scale.
	Fixed
)

// PrecisionModel is the coordinate-rounding policy shared by a Factory and
// every operation on the geometries it builds. Rounding is idempotent: a
// made-precise value rounds to itself.
type PrecisionModel struct {
	kind  PrecisionKind
	scale float64
}

// NewFloatingPrecision returns the no-rounding model.
func NewFloatingPrecision() *PrecisionModel {
	return &PrecisionModel{kind: Floating}
}

// NewFixedPrecision returns a fixed-grid model with the given scale.
// Scale must be positive; grid spacing is 1/scale.
func NewFixedPrecision(scale float64) *PrecisionModel {
	if scale <= 0 {
		panic("geom: fixed precision model requires scale > 0")
	}
	return &PrecisionModel{kind: Fixed, scale: scale}
}

// IsFloating reports whether the model performs no rounding.
func (pm *PrecisionModel) IsFloating() bool { return pm.kind == Floating }

// Scale returns the grid scale, or 0 for a floating model.
func (pm *PrecisionModel) Scale() float64 {
	if pm.kind == Floating {
		return 0
	}
	return pm.scale
}

// GridSize returns the grid spacing 1/scale, or 0 for a floating model.
func (pm *PrecisionModel) GridSize() float64 {
	if pm.kind == Floating {
		return 0
	}
	return 1 / pm.scale
}

// MakePrecise rounds v to the model grid: round(v*s)/s, half away from zero.
func (pm *PrecisionModel) MakePrecise(v float64) float64 {
	if pm.kind == Floating || math.IsNaN(v) || math.IsInf(v, 0) {
		return v
	}
	return math.Round(v*pm.scale) / pm.scale
}

// MakeCoordPrecise rounds both ordinates of c to the model grid.
func (pm *PrecisionModel) MakeCoordPrecise(c Coord) Coord {
	c.X = pm.MakePrecise(c.X)
	c.Y = pm.MakePrecise(c.Y)
	return c
}
