// Package geometry defines points, lines, polylines and planar polygons in 3D
// space.
//
// Coordinates are rounded to femglue.Current().Precision when a point is built
// and compared with femglue.Current().Tol(), so two points closer than the
// tolerance are equal. Every value is immutable: arithmetic returns a new value
// and re-runs the validation of its constructor.
//
//	square, err := geometry.NewPolygonFromPoints([]geometry.Point{
//		geometry.NewPoint(0, 0, 0),
//		geometry.NewPoint(1, 0, 0),
//		geometry.NewPoint(1, 1, 0),
//		geometry.NewPoint(0, 1, 0),
//	})
//	if err != nil {
//		return err
//	}
//	square.Inside(geometry.NewPoint(0.5, 0.5, 0)) // true
//
// Operations that can find a point on (or off) the shape take a Policy: Lenient
// reports the case through the return values and Strict turns it into
// ErrPointOnShape or ErrPointNotOnShape.
package geometry
