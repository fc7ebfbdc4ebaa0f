package geom

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidInput indicates an unrecognized geometry subtype.
	ErrInvalidInput = errors.New("geom: invalid input")
)

// TopologyError reports a violated noding or labeling invariant, with the
// coordinate at which the violation was detected. Operations with precision
// fallback catch it and retry on a coarser grid; it reaches callers only
// after every fallback is exhausted.
type TopologyError struct {
	Msg string
	Pt  Coord
}

func (e *TopologyError) Error() string {
	return fmt.Sprintf("topology error: %s at %v", e.Msg, e.Pt)
}

// NewTopologyError builds a TopologyError at the given coordinate.
func NewTopologyError(msg string, pt Coord) *TopologyError {
	return &TopologyError{Msg: msg, Pt: pt}
}

// IsTopologyError reports whether err wraps a TopologyError.
func IsTopologyError(err error) bool {
	var te *TopologyError
	return errors.As(err, &te)
}
