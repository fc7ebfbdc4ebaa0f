package buffer

import "errors"

var (
	// ErrInvalidDistance indicates a NaN or infinite buffer distance.
	ErrInvalidDistance = errors.New("buffer: distance must be finite")

	// ErrInvalidQuadrantSegments indicates a fillet resolution below 1.
	ErrInvalidQuadrantSegments = errors.New("buffer: quadrant segments must be >= 1")

	// ErrInvalidCapStyle indicates an unrecognized end-cap style.
	ErrInvalidCapStyle = errors.New("buffer: unknown cap style")

	// ErrInvalidJoinStyle indicates an unrecognized join style.
	ErrInvalidJoinStyle = errors.New("buffer: unknown join style")

	// ErrNonFiniteCoordinate indicates NaN or infinite input ordinates.
	ErrNonFiniteCoordinate = errors.New("buffer: input coordinate is not finite")

	// ErrEmptyPattern indicates an empty Minkowski pattern or path.
	ErrEmptyPattern = errors.New("buffer: minkowski pattern and path must be non-empty")
)
