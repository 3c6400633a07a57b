package geometry

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/GoCodeAlone/femglue"
)

// Line is a straight segment in 3D space directed from Start to End.
// Build it with NewLine; the zero value is not a valid line.
type Line struct {
	start, end Point
}

// NewLine builds the segment start → end. The points must differ.
func NewLine(start, end Point) (Line, error) {
	if start.Equal(end) {
		return Line{}, ErrIdenticalPoints
	}
	return Line{start: start, end: end}, nil
}

// MustLine is like NewLine but panics on identical points. Intended for
// fixed coordinates in tests and examples.
func MustLine(start, end Point) Line {
	l, err := NewLine(start, end)
	if err != nil {
		panic(err)
	}
	return l
}

func (l Line) Start() Point { return l.start }
func (l Line) End() Point   { return l.end }

// Points returns the start and end point.
func (l Line) Points() [2]Point { return [2]Point{l.start, l.end} }

func (l Line) String() string {
	return fmt.Sprintf("Line(%s, %s)", l.start, l.end)
}

// Length returns the length of the segment, rounded to the configured precision.
func (l Line) Length() float64 {
	return femglue.Round(l.length(), femglue.Current().Precision)
}

func (l Line) length() float64 {
	return r3.Norm(l.AsVector())
}

// AsVector returns end - start.
func (l Line) AsVector() r3.Vec {
	return r3.Sub(l.end.Vec(), l.start.Vec())
}

// DirUnitVector returns the unit vector along the direction of the line.
func (l Line) DirUnitVector() r3.Vec {
	return r3.Unit(l.AsVector())
}

// Normalize scales both endpoints by 1/length.
func (l Line) Normalize() (Line, error) {
	return l.Div(Scalar(l.Length()))
}

// Reversed swaps start and end.
func (l Line) Reversed() Line {
	return Line{start: l.end, end: l.start}
}

// HasEndpoint reports whether p equals the start or end point.
func (l Line) HasEndpoint(p Point) bool {
	return l.start.Equal(p) || l.end.Equal(p)
}

// Equal reports whether both endpoints match, direction included.
func (l Line) Equal(o Line) bool {
	return l.start.Equal(o.start) && l.end.Equal(o.end)
}

// Compare orders lines by start point, then end point.
func (l Line) Compare(o Line) int {
	if c := l.start.Compare(o.start); c != 0 {
		return c
	}
	return l.end.Compare(o.end)
}

// Less reports whether l sorts before o.
func (l Line) Less(o Line) bool { return l.Compare(o) < 0 }

// sorted returns the line with its endpoints in ascending order.
func (l Line) sorted() Line {
	if l.end.Less(l.start) {
		return l.Reversed()
	}
	return l
}

// ProjectOntoRay returns the orthogonal projection of p onto the infinite ray
// carrying the line. When p already lies on the ray, Lenient returns p itself
// and Strict returns ErrPointOnShape.
func (l Line) ProjectOntoRay(p Point, onRay Policy) (Point, error) {
	cfg := femglue.Current()
	u := l.DirUnitVector()
	toPoint := r3.Sub(p.Vec(), l.start.Vec())
	projected := pointFromVec(r3.Add(l.start.Vec(), r3.Scale(r3.Dot(toPoint, u), u)))

	if projected.Equal(p) {
		if onRay == Strict {
			return Point{}, fmt.Errorf("%w: %s is on the ray of %s", ErrPointOnShape, p, l)
		}
		return p, nil
	}

	// one decimal less than the configured precision absorbs the projection error
	return projected.Round(cfg.Precision - 1), nil
}

// PositionOnRay returns the coordinate of p along the ray of the line, with
// origin at Start. When normalized the unit length is the length of the line.
// ok is false when p is not on the ray; under Strict that is ErrPointNotOnShape instead.
func (l Line) PositionOnRay(p Point, normalized bool, notOnRay Policy) (pos float64, ok bool, err error) {
	cfg := femglue.Current()
	if !p.Equal(l.start) && !l.onRay(p, cfg.Tol()) {
		if notOnRay == Strict {
			return 0, false, fmt.Errorf("%w: %s is not on the ray of %s", ErrPointNotOnShape, p, l)
		}
		return 0, false, nil
	}

	pos = r3.Dot(r3.Sub(p.Vec(), l.start.Vec()), l.DirUnitVector())
	if normalized {
		pos /= l.length()
	}
	return femglue.Round(pos, cfg.Precision), true, nil
}

// onRay compares the unsigned direction from start to p with the line's direction.
func (l Line) onRay(p Point, tol float64) bool {
	u := l.DirUnitVector()
	w := r3.Unit(r3.Sub(p.Vec(), l.start.Vec()))
	for _, sign := range []float64{1, -1} {
		d := r3.Sub(u, r3.Scale(sign, w))
		if math.Abs(d.X) <= tol && math.Abs(d.Y) <= tol && math.Abs(d.Z) <= tol {
			return true
		}
	}
	return false
}

// ProjectOntoLine returns the projection of p onto the open segment.
//
// When the projection falls outside the segment (endpoints included), Lenient
// returns ok=false and Strict returns ErrPointNotOnShape. When p itself lies
// on the segment, Lenient returns p and Strict returns ErrPointOnShape.
func (l Line) ProjectOntoLine(p Point, onLine, offLine Policy) (proj Point, ok bool, err error) {
	cfg := femglue.Current()
	tol := cfg.Tol()

	u := l.DirUnitVector()
	along := r3.Dot(r3.Sub(p.Vec(), l.start.Vec()), u)
	pos := along / l.length()

	atOrBeforeStart, _ := femglue.TolCompare(pos, 0, femglue.OpLE, tol)
	atOrAfterEnd, _ := femglue.TolCompare(pos, 1, femglue.OpGE, tol)
	if atOrBeforeStart || atOrAfterEnd {
		if offLine == Strict {
			return Point{}, false, fmt.Errorf("%w: projection of %s is not on %s", ErrPointNotOnShape, p, l)
		}
		return Point{}, false, nil
	}

	proj = pointFromVec(r3.Add(l.start.Vec(), r3.Scale(along, u)))
	if proj.Equal(p) {
		if onLine == Strict {
			return Point{}, false, fmt.Errorf("%w: %s is on %s", ErrPointOnShape, p, l)
		}
		return p, true, nil
	}

	return proj.Round(cfg.Precision - 1), true, nil
}

// ShortestLineTo returns the shortest segment from the line to p, starting on
// the line and ending at p. When the projection of p falls outside the
// segment the nearest endpoint is used. If p lies on the line (endpoints
// included) there is no such segment: Lenient returns ok=false and Strict
// returns ErrPointOnShape.
func (l Line) ShortestLineTo(p Point, onLine Policy) (Line, bool, error) {
	if l.HasEndpoint(p) {
		if onLine == Strict {
			return Line{}, false, fmt.Errorf("%w: %s is an endpoint of %s", ErrPointOnShape, p, l)
		}
		return Line{}, false, nil
	}

	proj, ok, err := l.ProjectOntoLine(p, onLine, Lenient)
	if err != nil {
		return Line{}, false, err
	}

	if !ok {
		nearest := l.end
		if p.Distance(l.start) < p.Distance(l.end) {
			nearest = l.start
		}
		return Line{start: nearest, end: p}, true, nil
	}

	if proj.Equal(p) {
		return Line{}, false, nil
	}
	return Line{start: proj, end: p}, true, nil
}

// ContainsPoint reports whether p lies on the segment. Points on an endpoint
// report includeEndpoints.
func (l Line) ContainsPoint(p Point, includeEndpoints bool) bool {
	if l.HasEndpoint(p) {
		return includeEndpoints
	}
	proj, ok, err := l.ProjectOntoLine(p, Lenient, Lenient)
	return err == nil && ok && proj.Equal(p)
}

// IsParallel reports whether the lines have parallel directions.
func (l Line) IsParallel(o Line) bool {
	return l.isParallel(o, femglue.Current().Tol())
}

func (l Line) isParallel(o Line, tol float64) bool {
	return r3.Norm(r3.Cross(l.AsVector(), o.AsVector())) < tol
}

// IsCollinear reports whether both lines lie on the same infinite ray.
func (l Line) IsCollinear(o Line) bool {
	return l.isCollinear(o, femglue.Current().Tol())
}

func (l Line) isCollinear(o Line, tol float64) bool {
	if !l.isParallel(o, tol) {
		return false
	}

	v1, v2 := l.sorted(), o.sorted()
	if v1.Equal(v2) {
		return true
	}

	// vector between two distinct points of the lines
	between := r3.Sub(v2.start.Vec(), v1.start.Vec())
	if v2.start.Equal(v1.start) {
		between = r3.Sub(v2.end.Vec(), v1.end.Vec())
	}
	return r3.Norm(r3.Cross(v1.AsVector(), between)) < tol
}

// Add translates both endpoints by o.
func (l Line) Add(o Operand) (Line, error) { return l.apply(opAdd, o) }

// Sub translates both endpoints by -o.
func (l Line) Sub(o Operand) (Line, error) { return l.apply(opSub, o) }

// Mul scales both endpoints element-wise by o.
func (l Line) Mul(o Operand) (Line, error) { return l.apply(opMul, o) }

// Div divides both endpoints element-wise by o.
func (l Line) Div(o Operand) (Line, error) { return l.apply(opDiv, o) }

// FloorDiv floor-divides both endpoints element-wise by o.
func (l Line) FloorDiv(o Operand) (Line, error) { return l.apply(opFloorDiv, o) }

// Pow raises every coordinate of both endpoints to exp.
func (l Line) Pow(exp float64) (Line, error) { return l.apply(opPow, Scalar(exp)) }

func (l Line) apply(op arithOp, o Operand) (Line, error) {
	start, err := op.on(l.start, o)
	if err != nil {
		return Line{}, err
	}
	end, err := op.on(l.end, o)
	if err != nil {
		return Line{}, err
	}
	if !start.IsFinite() || !end.IsFinite() {
		return Line{}, fmt.Errorf("%w in %s of %s", ErrNotFinite, op.name, l)
	}
	return NewLine(start, end)
}

// LinesFromPoints joins consecutive points: point n ends line n-1 and starts line n.
func LinesFromPoints(points []Point) ([]Line, error) {
	if len(points) < 2 {
		return nil, nil
	}
	lines := make([]Line, 0, len(points)-1)
	for i := 0; i < len(points)-1; i++ {
		l, err := NewLine(points[i], points[i+1])
		if err != nil {
			return nil, fmt.Errorf("points %d and %d: %w", i, i+1, err)
		}
		lines = append(lines, l)
	}
	return lines, nil
}
