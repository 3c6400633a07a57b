package geometry

import (
	"fmt"
	"slices"
	"strings"
	"sync"

	"github.com/GoCodeAlone/femglue"
)

// Polyline is a chain of straight lines where the end of line n is the start
// of line n+1. It may optionally be closed (the last line ends where the first
// starts) and non-intersecting.
type Polyline struct {
	lines  []Line
	points []Point
	closed bool

	intersectOnce sync.Once
	interPoints   []Point
	interLines    []Line
}

type polylineSettings struct {
	close           bool
	nonIntersecting bool
}

// PolylineOption represents a construction option for a Polyline
type PolylineOption func(*polylineSettings)

// WithClosed appends a closing line from the last point back to the first one
// when the polyline is not already closed.
func WithClosed() PolylineOption {
	return func(s *polylineSettings) { s.close = true }
}

// WithNonIntersecting rejects polylines whose lines intersect anywhere other
// than at their shared endpoints.
func WithNonIntersecting() PolylineOption {
	return func(s *polylineSettings) { s.nonIntersecting = true }
}

// NewPolylineFromPoints joins at least 3 points into a polyline.
func NewPolylineFromPoints(points []Point, opts ...PolylineOption) (*Polyline, error) {
	if len(points) < 3 {
		return nil, fmt.Errorf("%w, got %d", ErrTooFewPoints, len(points))
	}
	lines, err := LinesFromPoints(points)
	if err != nil {
		return nil, err
	}
	return newPolyline(lines, opts)
}

// NewPolyline builds a polyline from at least 2 connected lines.
func NewPolyline(lines []Line, opts ...PolylineOption) (*Polyline, error) {
	if len(lines) < 2 {
		return nil, fmt.Errorf("%w, got %d", ErrTooFewLines, len(lines))
	}
	for i := 0; i < len(lines)-1; i++ {
		if !lines[i].end.Equal(lines[i+1].start) {
			return nil, notConnectedError(i)
		}
	}
	return newPolyline(slices.Clone(lines), opts)
}

func newPolyline(lines []Line, opts []PolylineOption) (*Polyline, error) {
	var settings polylineSettings
	for _, opt := range opts {
		opt(&settings)
	}

	first, last := lines[0], lines[len(lines)-1]
	closed := last.end.Equal(first.start)
	if !closed && settings.close {
		closing, err := NewLine(last.end, first.start)
		if err != nil {
			return nil, err
		}
		lines = append(lines, closing)
		closed = true
	}

	points := make([]Point, 0, len(lines)+1)
	for _, l := range lines {
		points = append(points, l.start)
	}
	if !closed {
		points = append(points, lines[len(lines)-1].end)
	}

	pl := &Polyline{lines: lines, points: points, closed: closed}

	if settings.nonIntersecting && !pl.IsNonIntersecting() {
		return nil, fmt.Errorf("%w. If this should not raise an error, do not require a non-intersecting polyline", ErrSelfIntersecting)
	}
	return pl, nil
}

// Lines returns a copy of the lines of the polyline.
func (pl *Polyline) Lines() []Line { return slices.Clone(pl.lines) }

// Points returns the vertices in order. A closed polyline does not repeat its first vertex.
func (pl *Polyline) Points() []Point { return append([]Point(nil), pl.points...) }

// Len returns the number of lines.
func (pl *Polyline) Len() int { return len(pl.lines) }

// IsClosed reports whether the last line ends at the start of the first line.
func (pl *Polyline) IsClosed() bool { return pl.closed }

// Perimeter returns the summed length of all lines, rounded to the configured precision.
func (pl *Polyline) Perimeter() float64 {
	var sum float64
	for _, l := range pl.lines {
		sum += l.length()
	}
	return femglue.Round(sum, femglue.Current().Precision)
}

// SelfIntersections returns the points and segments where lines of the
// polyline meet, excluding the endpoints consecutive lines share. Results are
// sorted and free of duplicates.
func (pl *Polyline) SelfIntersections() ([]Point, []Line) {
	pl.intersectOnce.Do(func() {
		var points []Point
		var lines []Line
		// (n-1)·n/2 pairs
		for i := 0; i < len(pl.lines)-1; i++ {
			for _, other := range pl.lines[i+1:] {
				inter := pl.lines[i].Intersect(other, false)
				switch inter.Kind {
				case PointIntersection:
					points = append(points, inter.Point)
				case SegmentIntersection:
					lines = append(lines, inter.Segment)
				case NoIntersection:
				}
			}
		}
		pl.interPoints = dedupePoints(points)
		pl.interLines = dedupeLines(lines)
	})
	return append([]Point(nil), pl.interPoints...), append([]Line(nil), pl.interLines...)
}

// IsNonIntersecting reports whether the polyline has no self-intersections.
func (pl *Polyline) IsNonIntersecting() bool {
	points, lines := pl.SelfIntersections()
	return len(points) == 0 && len(lines) == 0
}

// Equal reports whether both polylines consist of equal lines in the same order.
func (pl *Polyline) Equal(o *Polyline) bool {
	if len(pl.lines) != len(o.lines) {
		return false
	}
	for i := range pl.lines {
		if !pl.lines[i].Equal(o.lines[i]) {
			return false
		}
	}
	return true
}

func (pl *Polyline) String() string {
	kind := "open"
	if pl.closed {
		kind = "closed"
	}
	return fmt.Sprintf("Polyline[%s](%s)", kind, joinPoints(pl.points))
}

func joinPoints(points []Point) string {
	parts := make([]string, len(points))
	for i, p := range points {
		parts[i] = p.String()
	}
	return strings.Join(parts, ", ")
}

// Add translates every line by o.
func (pl *Polyline) Add(o Operand) (*Polyline, error) { return pl.apply(opAdd, o) }

// Sub translates every line by -o.
func (pl *Polyline) Sub(o Operand) (*Polyline, error) { return pl.apply(opSub, o) }

// Mul scales every line element-wise by o.
func (pl *Polyline) Mul(o Operand) (*Polyline, error) { return pl.apply(opMul, o) }

// Div divides every line element-wise by o.
func (pl *Polyline) Div(o Operand) (*Polyline, error) { return pl.apply(opDiv, o) }

// FloorDiv floor-divides every line element-wise by o.
func (pl *Polyline) FloorDiv(o Operand) (*Polyline, error) { return pl.apply(opFloorDiv, o) }

// Pow raises every coordinate to exp.
func (pl *Polyline) Pow(exp float64) (*Polyline, error) { return pl.apply(opPow, Scalar(exp)) }

func (pl *Polyline) apply(op arithOp, o Operand) (*Polyline, error) {
	lines, err := mapLines(pl.lines, op, o)
	if err != nil {
		return nil, err
	}
	return NewPolyline(lines)
}

func mapLines(lines []Line, op arithOp, o Operand) ([]Line, error) {
	out := make([]Line, len(lines))
	for i, l := range lines {
		mapped, err := l.apply(op, o)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", i, err)
		}
		out[i] = mapped
	}
	return out, nil
}
