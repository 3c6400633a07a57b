package femglue

import (
	"fmt"
	"math"
)

// CompareOp names a tolerance-aware comparison.
type CompareOp string

const (
	OpLT CompareOp = "lt"
	OpLE CompareOp = "le"
	OpEQ CompareOp = "eq"
	OpNE CompareOp = "ne"
	OpGE CompareOp = "ge"
	OpGT CompareOp = "gt"
)

// ParseCompareOp converts a string such as "le" into a CompareOp.
func ParseCompareOp(s string) (CompareOp, error) {
	op := CompareOp(s)
	switch op {
	case OpLT, OpLE, OpEQ, OpNE, OpGE, OpGT:
		return op, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidCompareOp, s)
	}
}

// TolCompare compares a against b, treating differences smaller than tol as zero.
//
//	lt: a < b - tol    le: a < b + tol
//	eq: |a - b| < tol  ne: not eq
//	ge: a > b - tol    gt: a > b + tol
func TolCompare(a, b float64, op CompareOp, tol float64) (bool, error) {
	switch op {
	case OpLT:
		return a < b-tol, nil
	case OpLE:
		return a < b+tol, nil
	case OpEQ:
		return math.Abs(a-b) < tol, nil
	case OpNE:
		return !(math.Abs(a-b) < tol), nil
	case OpGE:
		return a > b-tol, nil
	case OpGT:
		return a > b+tol, nil
	default:
		return false, fmt.Errorf("%w: %q", ErrInvalidCompareOp, string(op))
	}
}

// IsClose reports whether a and b are equal within the absolute tolerance tol,
// or within a relative tolerance of 1e-9 for large magnitudes.
func IsClose(a, b, tol float64) bool {
	if a == b {
		return true
	}
	diff := math.Abs(a - b)
	return diff <= math.Max(1e-9*math.Max(math.Abs(a), math.Abs(b)), tol)
}

// Round rounds x to the given number of decimal places, half away from zero.
func Round(x float64, precision int) float64 {
	if math.IsInf(x, 0) || math.IsNaN(x) {
		return x
	}
	scale := math.Pow10(precision)
	r := math.Round(x*scale) / scale
	if r == 0 {
		// normalise -0
		return 0
	}
	return r
}
