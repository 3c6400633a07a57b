package model

import (
	"fmt"
	"io"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"

	"github.com/GoCodeAlone/femglue/geometry"
)

// FeatureCollection converts the model to GeoJSON. Polygons use their own
// plane coordinates; lines and polylines are projected onto the XY plane.
func (m *Model) FeatureCollection() *geojson.FeatureCollection {
	fc := geojson.NewFeatureCollection()

	for _, e := range m.Lines {
		f := geojson.NewFeature(projectXY(e.Shape.Start(), e.Shape.End()))
		f.Properties = geojson.Properties{
			"name":   e.Name,
			"kind":   "line",
			"length": e.Shape.Length(),
		}
		fc.Append(f)
	}

	for _, e := range m.Polylines {
		points := e.Shape.Points()
		if e.Shape.IsClosed() {
			points = append(points, points[0])
		}
		f := geojson.NewFeature(projectXY(points...))
		f.Properties = geojson.Properties{
			"name":      e.Name,
			"kind":      "polyline",
			"closed":    e.Shape.IsClosed(),
			"perimeter": e.Shape.Perimeter(),
		}
		fc.Append(f)
	}

	for _, e := range m.Polygons {
		pg := e.Shape
		ring := make(orb.Ring, 0, pg.Len()+1)
		for _, p := range pg.Points() {
			u, v := pg.LocalCoordinates(p)
			ring = append(ring, orb.Point{u, v})
		}
		ring = append(ring, ring[0])

		n := pg.Normal()
		f := geojson.NewFeature(orb.Polygon{ring})
		f.Properties = geojson.Properties{
			"name":   e.Name,
			"kind":   "polygon",
			"area":   pg.Area(),
			"normal": geometry.NewPoint(n.X, n.Y, n.Z).Coords(),
		}
		fc.Append(f)
	}

	return fc
}

func projectXY(points ...geometry.Point) orb.LineString {
	ls := make(orb.LineString, len(points))
	for i, p := range points {
		ls[i] = orb.Point{p.X(), p.Y()}
	}
	return ls
}

// ExportGeoJSON writes the model as a GeoJSON FeatureCollection.
func ExportGeoJSON(w io.Writer, m *Model) error {
	data, err := m.FeatureCollection().MarshalJSON()
	if err != nil {
		return fmt.Errorf("failed to encode geojson: %w", err)
	}
	if _, err := w.Write(data); err != nil {
		return fmt.Errorf("failed to write geojson: %w", err)
	}
	return nil
}
