package geometry

import (
	"errors"
	"fmt"
)

// Shape relation errors
var (
	// ErrPointOnShape is returned under Strict policy when a point lies on a shape.
	ErrPointOnShape = errors.New("point is on the shape")
	// ErrPointNotOnShape is returned under Strict policy when a point was expected on a shape.
	ErrPointNotOnShape = errors.New("point is not on the shape")
)

// Construction errors
var (
	ErrIdenticalPoints   = errors.New("a line cannot be constructed from two identical points")
	ErrTooFewPoints      = errors.New("a polyline must have at least 3 points")
	ErrTooFewLines       = errors.New("a polyline must have at least 2 lines")
	ErrLinesNotConnected = errors.New("lines are not connected")
	ErrSelfIntersecting  = errors.New("the polyline is self intersecting")
	ErrAllParallel       = errors.New("all lines in the polygon's boundary are parallel")
	ErrNotCoplanar       = errors.New("boundary lines are not coplanar")
)

// Arithmetic errors
var (
	ErrOperandLength  = errors.New("operand must have exactly 3 components")
	ErrDivisionByZero = errors.New("division by zero")
	ErrZeroLength     = errors.New("cannot normalize a zero-length vector")
	ErrNotFinite      = errors.New("operation produced a non-finite coordinate")
)

func notConnectedError(i int) error {
	return fmt.Errorf("%w: line '%d' is not connected with line '%d'", ErrLinesNotConnected, i, i+1)
}

// Policy selects how an operation reports a point that lies (or does not lie)
// on the shape it is measured against.
type Policy int

const (
	// Lenient reports the condition through the return values.
	Lenient Policy = iota
	// Strict reports the condition as an error.
	Strict
)

func (p Policy) String() string {
	switch p {
	case Lenient:
		return "lenient"
	case Strict:
		return "strict"
	default:
		return fmt.Sprintf("Policy(%d)", int(p))
	}
}
