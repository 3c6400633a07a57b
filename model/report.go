package model

import (
	"fmt"
	"io"
	"strings"

	"github.com/GoCodeAlone/femglue"
	"github.com/GoCodeAlone/femglue/geometry"
)

// Report summarises a model.
type Report struct {
	Precision int              `json:"precision" yaml:"precision"`
	Points    int              `json:"points" yaml:"points"`
	Lines     []LineReport     `json:"lines,omitempty" yaml:"lines,omitempty"`
	Polylines []PolylineReport `json:"polylines,omitempty" yaml:"polylines,omitempty"`
	Polygons  []PolygonReport  `json:"polygons,omitempty" yaml:"polygons,omitempty"`
}

// LineReport describes one line of the model.
type LineReport struct {
	Name   string     `json:"name" yaml:"name"`
	Start  [3]float64 `json:"start" yaml:"start,flow"`
	End    [3]float64 `json:"end" yaml:"end,flow"`
	Length float64    `json:"length" yaml:"length"`
}

// PolylineReport describes one polyline, including its self intersections.
type PolylineReport struct {
	Name              string       `json:"name" yaml:"name"`
	Lines             int          `json:"lines" yaml:"lines"`
	Closed            bool         `json:"closed" yaml:"closed"`
	Perimeter         float64      `json:"perimeter" yaml:"perimeter"`
	IntersectionPts   [][3]float64 `json:"self_intersection_points,omitempty" yaml:"self_intersection_points,omitempty,flow"`
	IntersectionLines int          `json:"self_intersection_segments,omitempty" yaml:"self_intersection_segments,omitempty"`
}

// PolygonReport describes one polygon and the plane it lies in.
type PolygonReport struct {
	Name      string     `json:"name" yaml:"name"`
	Vertices  int        `json:"vertices" yaml:"vertices"`
	Area      float64    `json:"area" yaml:"area"`
	Perimeter float64    `json:"perimeter" yaml:"perimeter"`
	Normal    [3]float64 `json:"normal" yaml:"normal,flow"`
}

// Report builds the summary of m under the active configuration.
func (m *Model) Report() Report {
	prec := femglue.Current().Precision
	r := Report{Precision: prec, Points: len(m.Points)}

	for _, e := range m.Lines {
		r.Lines = append(r.Lines, LineReport{
			Name:   e.Name,
			Start:  e.Shape.Start().Coords(),
			End:    e.Shape.End().Coords(),
			Length: e.Shape.Length(),
		})
	}

	for _, e := range m.Polylines {
		points, segments := e.Shape.SelfIntersections()
		pr := PolylineReport{
			Name:              e.Name,
			Lines:             e.Shape.Len(),
			Closed:            e.Shape.IsClosed(),
			Perimeter:         e.Shape.Perimeter(),
			IntersectionLines: len(segments),
		}
		for _, p := range points {
			pr.IntersectionPts = append(pr.IntersectionPts, p.Coords())
		}
		r.Polylines = append(r.Polylines, pr)
	}

	for _, e := range m.Polygons {
		n := e.Shape.Normal()
		r.Polygons = append(r.Polygons, PolygonReport{
			Name:      e.Name,
			Vertices:  len(e.Shape.Points()),
			Area:      e.Shape.Area(),
			Perimeter: e.Shape.Perimeter(),
			Normal:    geometry.NewPoint(n.X, n.Y, n.Z).Coords(),
		})
	}
	return r
}

// WriteText renders the report as plain text.
func (r Report) WriteText(w io.Writer) error {
	var sb strings.Builder
	fmt.Fprintf(&sb, "precision: %d\npoints: %d\n", r.Precision, r.Points)

	for _, l := range r.Lines {
		fmt.Fprintf(&sb, "line %s: %v -> %v length=%g\n", l.Name, l.Start, l.End, l.Length)
	}
	for _, p := range r.Polylines {
		state := "open"
		if p.Closed {
			state = "closed"
		}
		fmt.Fprintf(&sb, "polyline %s: %d lines, %s, perimeter=%g", p.Name, p.Lines, state, p.Perimeter)
		if len(p.IntersectionPts) > 0 || p.IntersectionLines > 0 {
			fmt.Fprintf(&sb, ", self-intersections: %d points %d segments", len(p.IntersectionPts), p.IntersectionLines)
		}
		sb.WriteString("\n")
	}
	for _, p := range r.Polygons {
		fmt.Fprintf(&sb, "polygon %s: %d vertices, area=%g perimeter=%g normal=%v\n",
			p.Name, p.Vertices, p.Area, p.Perimeter, p.Normal)
	}

	_, err := io.WriteString(w, sb.String())
	return err
}
