package model

import (
	"errors"
	"fmt"
	"maps"
	"slices"

	"github.com/google/uuid"

	"github.com/GoCodeAlone/femglue"
	"github.com/GoCodeAlone/femglue/geometry"
)

// Entity is a named shape of a model.
type Entity[T any] struct {
	Name  string
	Shape T
}

// Model is a validated geometry built from a Document.
type Model struct {
	Points    map[string]geometry.Point
	Lines     []Entity[geometry.Line]
	Polylines []Entity[*geometry.Polyline]
	Polygons  []Entity[*geometry.Polygon]
}

// PointNames returns the point names in sorted order.
func (m *Model) PointNames() []string {
	return slices.Sorted(maps.Keys(m.Points))
}

type builder struct {
	model *Model
	names map[string]string
	errs  []error
}

// Build validates every entity of doc against the active configuration.
// All problems are reported together.
func Build(doc *Document) (*Model, error) {
	b := &builder{
		model: &Model{Points: make(map[string]geometry.Point, len(doc.Points))},
		names: make(map[string]string),
	}

	for _, name := range slices.Sorted(maps.Keys(doc.Points)) {
		p, err := geometry.PointFrom(doc.Points[name])
		if err != nil {
			b.fail("point", name, err)
			continue
		}
		b.model.Points[name] = p
	}

	for _, spec := range doc.Lines {
		name := b.claim("line", spec.Name)
		l, err := b.line(spec)
		if err != nil {
			b.fail("line", name, err)
			continue
		}
		b.model.Lines = append(b.model.Lines, Entity[geometry.Line]{Name: name, Shape: l})
	}

	for _, spec := range doc.Polylines {
		name := b.claim("polyline", spec.Name)
		pl, err := b.polyline(spec)
		if err != nil {
			b.fail("polyline", name, err)
			continue
		}
		b.model.Polylines = append(b.model.Polylines, Entity[*geometry.Polyline]{Name: name, Shape: pl})
	}

	for _, spec := range doc.Polygons {
		name := b.claim("polygon", spec.Name)
		points, err := b.resolve(spec.Points)
		if err == nil {
			var pg *geometry.Polygon
			if pg, err = geometry.NewPolygonFromPoints(points); err == nil {
				b.model.Polygons = append(b.model.Polygons, Entity[*geometry.Polygon]{Name: name, Shape: pg})
				continue
			}
		}
		b.fail("polygon", name, err)
	}

	if len(b.errs) > 0 {
		return nil, errors.Join(b.errs...)
	}

	femglue.GetLogger().Debug("Built geometry model",
		"points", len(b.model.Points),
		"lines", len(b.model.Lines),
		"polylines", len(b.model.Polylines),
		"polygons", len(b.model.Polygons))
	return b.model, nil
}

// claim reserves an entity name, generating one when empty.
func (b *builder) claim(kind, name string) string {
	if name == "" {
		return uuid.NewString()
	}
	if prev, ok := b.names[name]; ok {
		b.fail(kind, name, fmt.Errorf("%w: already used by a %s", ErrDuplicateName, prev))
		return name
	}
	b.names[name] = kind
	return name
}

func (b *builder) fail(kind, name string, err error) {
	b.errs = append(b.errs, fmt.Errorf("%s %q: %w", kind, name, err))
}

func (b *builder) resolve(refs []string) ([]geometry.Point, error) {
	points := make([]geometry.Point, 0, len(refs))
	for _, ref := range refs {
		p, ok := b.model.Points[ref]
		if !ok {
			return nil, fmt.Errorf("%w %q", ErrUnknownPoint, ref)
		}
		points = append(points, p)
	}
	return points, nil
}

func (b *builder) line(spec LineSpec) (geometry.Line, error) {
	if len(spec.Points) != 2 {
		return geometry.Line{}, fmt.Errorf("%w, got %d", ErrLineArity, len(spec.Points))
	}
	points, err := b.resolve(spec.Points)
	if err != nil {
		return geometry.Line{}, err
	}
	return geometry.NewLine(points[0], points[1])
}

func (b *builder) polyline(spec PolylineSpec) (*geometry.Polyline, error) {
	points, err := b.resolve(spec.Points)
	if err != nil {
		return nil, err
	}
	var opts []geometry.PolylineOption
	if spec.Closed {
		opts = append(opts, geometry.WithClosed())
	}
	if spec.NonIntersecting {
		opts = append(opts, geometry.WithNonIntersecting())
	}
	return geometry.NewPolylineFromPoints(points, opts...)
}
