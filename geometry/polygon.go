package geometry

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/GoCodeAlone/femglue"
)

// Polygon is a planar polygon in 3D space. Its boundary is a closed,
// non-intersecting polyline whose lines all lie in one plane.
type Polygon struct {
	boundary *Polyline

	// t1 and t2 are orthonormal tangents of the plane, n its unit normal.
	t1, t2, n r3.Vec
	origin    r3.Vec
}

// NewPolygon builds a polygon bounded by lines. A closing line is appended when
// the last line does not end at the start of the first.
func NewPolygon(lines []Line) (*Polygon, error) {
	boundary, err := NewPolyline(lines, WithClosed(), WithNonIntersecting())
	if err != nil {
		return nil, err
	}
	return newPolygon(boundary)
}

// NewPolygonFromPoints builds a polygon with points as its vertices.
func NewPolygonFromPoints(points []Point) (*Polygon, error) {
	boundary, err := NewPolylineFromPoints(points, WithClosed(), WithNonIntersecting())
	if err != nil {
		return nil, err
	}
	return newPolygon(boundary)
}

func newPolygon(boundary *Polyline) (*Polygon, error) {
	tol := femglue.Current().Tol()

	first := boundary.lines[0]
	var second *Line
	for i := 1; i < len(boundary.lines); i++ {
		if !boundary.lines[i].isParallel(first, tol) {
			second = &boundary.lines[i]
			break
		}
	}
	if second == nil {
		return nil, ErrAllParallel
	}

	t1 := first.DirUnitVector()
	n := r3.Unit(r3.Cross(t1, second.AsVector()))
	t2 := r3.Unit(r3.Cross(n, first.AsVector()))

	pg := &Polygon{
		boundary: boundary,
		t1:       t1,
		t2:       t2,
		n:        n,
		origin:   boundary.points[0].Vec(),
	}

	for i, p := range boundary.points {
		if d := pg.planeDistance(p); d > tol {
			return nil, fmt.Errorf("%w: vertex %d %s is %g away from the plane", ErrNotCoplanar, i, p, d)
		}
	}
	return pg, nil
}

// Boundary returns the closed polyline bounding the polygon.
func (pg *Polygon) Boundary() *Polyline { return pg.boundary }

// Lines returns the boundary lines.
func (pg *Polygon) Lines() []Line { return pg.boundary.Lines() }

// Points returns the vertices of the polygon.
func (pg *Polygon) Points() []Point { return pg.boundary.Points() }

// Len returns the number of boundary lines.
func (pg *Polygon) Len() int { return pg.boundary.Len() }

// Basis returns the local orthonormal basis: two tangents followed by the normal.
func (pg *Polygon) Basis() [3]r3.Vec { return [3]r3.Vec{pg.t1, pg.t2, pg.n} }

// Tangents returns the two orthonormal tangents of the plane. The first runs
// along the first boundary line.
func (pg *Polygon) Tangents() [2]r3.Vec { return [2]r3.Vec{pg.t1, pg.t2} }

// Normal returns the unit normal of the plane.
func (pg *Polygon) Normal() r3.Vec { return pg.n }

// PlaneCoefficients returns a, b, c, d of the plane a·x + b·y + c·z + d = 0.
func (pg *Polygon) PlaneCoefficients() (a, b, c, d float64) {
	return pg.n.X, pg.n.Y, pg.n.Z, -r3.Dot(pg.n, pg.origin)
}

// LineIsTangent reports whether l runs parallel to the plane of the polygon.
func (pg *Polygon) LineIsTangent(l Line) bool {
	return math.Abs(r3.Dot(pg.n, l.DirUnitVector())) <= femglue.Current().Tol()
}

func (pg *Polygon) planeDistance(p Point) float64 {
	return math.Abs(r3.Dot(pg.n, r3.Sub(p.Vec(), pg.origin)))
}

// OnPlane reports whether p lies in the plane of the polygon.
func (pg *Polygon) OnPlane(p Point) bool {
	return pg.planeDistance(p) <= femglue.Current().Tol()
}

// OnBoundary reports whether p lies on a boundary line, vertices included.
func (pg *Polygon) OnBoundary(p Point) bool {
	if !pg.OnPlane(p) {
		return false
	}
	for _, edge := range pg.boundary.lines {
		if edge.ContainsPoint(p, true) {
			return true
		}
	}
	return false
}

// Inside reports whether p lies strictly inside the polygon. Points on the
// boundary are not inside.
func (pg *Polygon) Inside(p Point) bool {
	if !pg.OnPlane(p) || pg.OnBoundary(p) {
		return false
	}

	u, v := pg.localCoordinates(p)
	verts := pg.localVertices()

	// even-odd rule on a ray cast along +u
	inside := false
	for i, j := 0, len(verts)-1; i < len(verts); j, i = i, i+1 {
		ui, vi := verts[i][0], verts[i][1]
		uj, vj := verts[j][0], verts[j][1]
		if (vi > v) != (vj > v) && u < (uj-ui)*(v-vi)/(vj-vi)+ui {
			inside = !inside
		}
	}
	return inside
}

// LocalCoordinates returns the coordinates of p along the two tangents, with
// the first vertex as origin. The normal component is dropped.
func (pg *Polygon) LocalCoordinates(p Point) (u, v float64) {
	u, v = pg.localCoordinates(p)
	prec := femglue.Current().Precision
	return femglue.Round(u, prec), femglue.Round(v, prec)
}

func (pg *Polygon) localCoordinates(p Point) (u, v float64) {
	rel := r3.Sub(p.Vec(), pg.origin)
	return r3.Dot(rel, pg.t1), r3.Dot(rel, pg.t2)
}

func (pg *Polygon) localVertices() [][2]float64 {
	verts := make([][2]float64, len(pg.boundary.points))
	for i, p := range pg.boundary.points {
		u, v := pg.localCoordinates(p)
		verts[i] = [2]float64{u, v}
	}
	return verts
}

// Area returns the enclosed area, rounded to the configured precision.
func (pg *Polygon) Area() float64 {
	verts := pg.localVertices()
	var twice float64
	for i := range verts {
		j := (i + 1) % len(verts)
		twice += verts[i][0]*verts[j][1] - verts[j][0]*verts[i][1]
	}
	return femglue.Round(math.Abs(twice)/2, femglue.Current().Precision)
}

// Perimeter returns the length of the boundary.
func (pg *Polygon) Perimeter() float64 { return pg.boundary.Perimeter() }

// Equal reports whether both polygons have equal boundaries.
func (pg *Polygon) Equal(o *Polygon) bool { return pg.boundary.Equal(o.boundary) }

func (pg *Polygon) String() string {
	return fmt.Sprintf("Polygon(%s)", joinPoints(pg.boundary.points))
}

// Add translates the polygon by o.
func (pg *Polygon) Add(o Operand) (*Polygon, error) { return pg.apply(opAdd, o) }

// Sub translates the polygon by -o.
func (pg *Polygon) Sub(o Operand) (*Polygon, error) { return pg.apply(opSub, o) }

// Mul scales the polygon element-wise by o.
func (pg *Polygon) Mul(o Operand) (*Polygon, error) { return pg.apply(opMul, o) }

// Div divides the polygon element-wise by o.
func (pg *Polygon) Div(o Operand) (*Polygon, error) { return pg.apply(opDiv, o) }

// FloorDiv floor-divides the polygon element-wise by o.
func (pg *Polygon) FloorDiv(o Operand) (*Polygon, error) { return pg.apply(opFloorDiv, o) }

// Pow raises every coordinate to exp. The result must still be a valid polygon.
func (pg *Polygon) Pow(exp float64) (*Polygon, error) { return pg.apply(opPow, Scalar(exp)) }

func (pg *Polygon) apply(op arithOp, o Operand) (*Polygon, error) {
	lines, err := mapLines(pg.boundary.lines, op, o)
	if err != nil {
		return nil, err
	}
	return NewPolygon(lines)
}
