package geometry

import (
	"cmp"
	"fmt"
	"math"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/GoCodeAlone/femglue"
)

// Point is a point in 3D space. Coordinates are rounded to the configured
// precision when the point is built; the zero value is the origin.
type Point struct {
	x, y, z float64
}

// NewPoint builds a point from its three coordinates.
func NewPoint(x, y, z float64) Point {
	p := femglue.Current().Precision
	return Point{
		x: femglue.Round(x, p),
		y: femglue.Round(y, p),
		z: femglue.Round(z, p),
	}
}

// PointFrom builds a point from a slice of exactly three coordinates.
func PointFrom(coords []float64) (Point, error) {
	v, err := VectorFrom(coords)
	if err != nil {
		return Point{}, err
	}
	return NewPoint(v[0], v[1], v[2]), nil
}

func pointFromVec(v r3.Vec) Point {
	return NewPoint(v.X, v.Y, v.Z)
}

func (p Point) X() float64 { return p.x }
func (p Point) Y() float64 { return p.y }
func (p Point) Z() float64 { return p.z }

// Coords returns the coordinates as an array.
func (p Point) Coords() [3]float64 { return [3]float64{p.x, p.y, p.z} }

// Vec returns the position vector of the point.
func (p Point) Vec() r3.Vec { return r3.Vec{X: p.x, Y: p.y, Z: p.z} }

func (p Point) components() [3]float64 { return p.Coords() }

// Distance returns the euclidean distance to q, rounded to the configured precision.
func (p Point) Distance(q Point) float64 {
	return femglue.Round(r3.Norm(r3.Sub(p.Vec(), q.Vec())), femglue.Current().Precision)
}

// Norm returns the euclidean norm of the position vector, rounded to the configured precision.
func (p Point) Norm() float64 {
	return femglue.Round(r3.Norm(p.Vec()), femglue.Current().Precision)
}

// Normalize returns the unit vector pointing from the origin towards p.
func (p Point) Normalize() (r3.Vec, error) {
	if p.Norm() == 0 {
		return r3.Vec{}, ErrZeroLength
	}
	return r3.Unit(p.Vec()), nil
}

// Round returns p with its coordinates rounded to precision decimal places.
func (p Point) Round(precision int) Point {
	return Point{
		x: femglue.Round(p.x, precision),
		y: femglue.Round(p.y, precision),
		z: femglue.Round(p.z, precision),
	}
}

// Reversed returns the point with its coordinates in reverse order (z, y, x).
func (p Point) Reversed() Point {
	return Point{x: p.z, y: p.y, z: p.x}
}

// HasCoordinate reports whether v, rounded to the configured precision, is one of the coordinates.
func (p Point) HasCoordinate(v float64) bool {
	v = femglue.Round(v, femglue.Current().Precision)
	return v == p.x || v == p.y || v == p.z
}

// Equal reports whether every coordinate of p and q agrees within the configured tolerance.
func (p Point) Equal(q Point) bool {
	tol := femglue.Current().Tol()
	return femglue.IsClose(p.x, q.x, tol) &&
		femglue.IsClose(p.y, q.y, tol) &&
		femglue.IsClose(p.z, q.z, tol)
}

// Compare orders points lexicographically by x, then y, then z.
func (p Point) Compare(q Point) int {
	if c := cmp.Compare(p.x, q.x); c != 0 {
		return c
	}
	if c := cmp.Compare(p.y, q.y); c != 0 {
		return c
	}
	return cmp.Compare(p.z, q.z)
}

// Less reports whether p sorts before q.
func (p Point) Less(q Point) bool { return p.Compare(q) < 0 }

func (p Point) String() string {
	return fmt.Sprintf("Point(%g, %g, %g)", p.x, p.y, p.z)
}

// Add returns p + o element-wise.
func (p Point) Add(o Operand) Point {
	r, _ := opAdd.on(p, o)
	return r
}

// Sub returns p - o element-wise.
func (p Point) Sub(o Operand) Point {
	r, _ := opSub.on(p, o)
	return r
}

// Mul returns p * o element-wise.
func (p Point) Mul(o Operand) Point {
	r, _ := opMul.on(p, o)
	return r
}

// Div returns p / o element-wise. A zero component in o is an error.
func (p Point) Div(o Operand) (Point, error) {
	return opDiv.on(p, o)
}

// FloorDiv returns floor(p / o) element-wise. A zero component in o is an error.
func (p Point) FloorDiv(o Operand) (Point, error) {
	return opFloorDiv.on(p, o)
}

// Pow raises every coordinate to exp.
func (p Point) Pow(exp float64) Point {
	r, _ := opPow.on(p, Scalar(exp))
	return r
}

// IsFinite reports whether no coordinate is infinite or NaN.
func (p Point) IsFinite() bool {
	for _, c := range p.Coords() {
		if math.IsInf(c, 0) || math.IsNaN(c) {
			return false
		}
	}
	return true
}
