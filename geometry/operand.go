package geometry

import (
	"fmt"
	"math"
)

// Operand is the right-hand side of an element-wise arithmetic operation:
// a Scalar applies to every coordinate, a Vector or Point pairs coordinates.
type Operand interface {
	components() [3]float64
}

// Scalar applies the same value to all three coordinates.
type Scalar float64

func (s Scalar) components() [3]float64 {
	f := float64(s)
	return [3]float64{f, f, f}
}

// Vector holds one value per coordinate.
type Vector [3]float64

func (v Vector) components() [3]float64 { return v }

// VectorFrom converts a slice of exactly three values into a Vector.
func VectorFrom(values []float64) (Vector, error) {
	if len(values) != 3 {
		return Vector{}, fmt.Errorf("%w, got %d", ErrOperandLength, len(values))
	}
	return Vector{values[0], values[1], values[2]}, nil
}

type arithOp struct {
	name  string
	apply func(a, b float64) float64
	// divides reports whether a zero right-hand side is an error
	divides bool
}

var (
	opAdd      = arithOp{name: "add", apply: func(a, b float64) float64 { return a + b }}
	opSub      = arithOp{name: "sub", apply: func(a, b float64) float64 { return a - b }}
	opMul      = arithOp{name: "mul", apply: func(a, b float64) float64 { return a * b }}
	opDiv      = arithOp{name: "div", apply: func(a, b float64) float64 { return a / b }, divides: true}
	opFloorDiv = arithOp{name: "floordiv", apply: func(a, b float64) float64 { return math.Floor(a / b) }, divides: true}
	opPow      = arithOp{name: "pow", apply: math.Pow}
)

func (op arithOp) on(p Point, o Operand) (Point, error) {
	rhs := o.components()
	if op.divides {
		for _, v := range rhs {
			if v == 0 {
				return Point{}, fmt.Errorf("%w in %s", ErrDivisionByZero, op.name)
			}
		}
	}
	lhs := p.Coords()
	return NewPoint(op.apply(lhs[0], rhs[0]), op.apply(lhs[1], rhs[1]), op.apply(lhs[2], rhs[2])), nil
}
