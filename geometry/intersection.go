package geometry

import (
	"errors"
	"math"
	"slices"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/GoCodeAlone/femglue"
)

// IntersectionKind classifies the result of intersecting two lines.
type IntersectionKind int

const (
	NoIntersection IntersectionKind = iota
	PointIntersection
	SegmentIntersection
)

func (k IntersectionKind) String() string {
	switch k {
	case NoIntersection:
		return "none"
	case PointIntersection:
		return "point"
	case SegmentIntersection:
		return "segment"
	default:
		return "unknown"
	}
}

// Intersection is the common part of two lines: nothing, a single point or a segment.
type Intersection struct {
	Kind IntersectionKind
	// Point is set when Kind is PointIntersection.
	Point Point
	// Segment is set when Kind is SegmentIntersection.
	Segment Line
}

// Empty reports whether the lines do not intersect.
func (i Intersection) Empty() bool { return i.Kind == NoIntersection }

// Intersect computes the intersection between l and o.
//
// Both lines are parametrised as L1(t) = P1 + t·d1 and L2(s) = Q1 + s·d2 with
// t, s in [0, 1] spanning the segments.
//
// Parallel lines intersect only when collinear; the overlap runs between
// t = max(0, min(t1, t2)) and t = min(1, max(t1, t2)) where L1(t1) = Q1 and
// L1(t2) = Q2. A zero-length overlap is a single point.
//
// Other lines share a mutual endpoint, or meet where L1(t) = L2(s) for t and
// s strictly inside (0, 1). Skew lines never meet.
//
// Mutual endpoints (including a zero-length collinear overlap) are only
// reported when mutualEndpoints is true.
func (l Line) Intersect(o Line, mutualEndpoints bool) Intersection {
	tol := femglue.Current().Tol()

	p1, q1 := l.start.Vec(), o.start.Vec()
	d1, d2 := l.AsVector(), o.AsVector()

	if l.isParallel(o, tol) {
		if !l.isCollinear(o, tol) {
			return Intersection{}
		}

		dd := r3.Dot(d1, d1)
		t1 := r3.Dot(r3.Sub(q1, p1), d1) / dd
		t2 := r3.Dot(r3.Sub(o.end.Vec(), p1), d1) / dd
		tMin, tMax := math.Min(t1, t2), math.Max(t1, t2)

		beforeStart, _ := femglue.TolCompare(tMax, 0, femglue.OpLT, tol)
		afterEnd, _ := femglue.TolCompare(tMin, 1, femglue.OpGT, tol)
		if beforeStart || afterEnd {
			return Intersection{}
		}

		tMin = math.Max(0, tMin)
		tMax = math.Min(1, tMax)

		start := pointFromVec(r3.Add(p1, r3.Scale(tMin, d1)))
		if math.Abs(tMax-tMin) <= tol {
			if !mutualEndpoints {
				return Intersection{}
			}
			return Intersection{Kind: PointIntersection, Point: start}
		}
		end := pointFromVec(r3.Add(p1, r3.Scale(tMax, d1)))
		return Intersection{Kind: SegmentIntersection, Segment: Line{start: start, end: end}}
	}

	for _, a := range l.Points() {
		for _, b := range o.Points() {
			if a.Equal(b) {
				if !mutualEndpoints {
					return Intersection{}
				}
				return Intersection{Kind: PointIntersection, Point: a}
			}
		}
	}

	t, s, ok := solveLineParameters(p1, d1, q1, d2)
	if !ok || !(0 < t && t < 1 && 0 < s && s < 1) {
		return Intersection{}
	}

	onL1 := r3.Add(p1, r3.Scale(t, d1))
	onL2 := r3.Add(q1, r3.Scale(s, d2))
	if r3.Norm(r3.Sub(onL1, onL2)) > tol {
		// skew lines: closest points are apart
		return Intersection{}
	}

	return Intersection{Kind: PointIntersection, Point: pointFromVec(onL1)}
}

// solveLineParameters finds the least-squares solution of P1 + t·d1 = Q1 + s·d2.
func solveLineParameters(p1, d1, q1, d2 r3.Vec) (t, s float64, ok bool) {
	a := mat.NewDense(3, 2, []float64{
		d1.X, -d2.X,
		d1.Y, -d2.Y,
		d1.Z, -d2.Z,
	})
	b := r3.Sub(q1, p1)
	rhs := mat.NewVecDense(3, []float64{b.X, b.Y, b.Z})

	var x mat.VecDense
	if err := x.SolveVec(a, rhs); err != nil {
		var cond mat.Condition
		if !errors.As(err, &cond) {
			return 0, 0, false
		}
	}
	return x.AtVec(0), x.AtVec(1), true
}

// dedupePoints sorts points and drops entries equal to their predecessor.
func dedupePoints(points []Point) []Point {
	slices.SortFunc(points, Point.Compare)
	return slices.CompactFunc(points, Point.Equal)
}

// dedupeLines sorts lines and drops entries equal to their predecessor.
func dedupeLines(lines []Line) []Line {
	slices.SortFunc(lines, Line.Compare)
	return slices.CompactFunc(lines, Line.Equal)
}
