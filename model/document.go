package model

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/GoCodeAlone/femglue/feeders"
)

// Document errors
var (
	ErrUnknownPoint      = errors.New("unknown point")
	ErrDuplicateName     = errors.New("duplicate name")
	ErrLineArity         = errors.New("a line needs exactly 2 points")
	ErrUnsupportedFormat = errors.New("unsupported document format")
)

// Document is the on-disk description of a geometry. Lines, polylines and
// polygons reference points by name.
type Document struct {
	Points    map[string][]float64 `json:"points" yaml:"points" toml:"points"`
	Lines     []LineSpec           `json:"lines" yaml:"lines" toml:"lines"`
	Polylines []PolylineSpec       `json:"polylines" yaml:"polylines" toml:"polylines"`
	Polygons  []PolygonSpec        `json:"polygons" yaml:"polygons" toml:"polygons"`
}

// LineSpec describes a line between two named points.
type LineSpec struct {
	Name   string   `json:"name,omitempty" yaml:"name,omitempty" toml:"name,omitempty"`
	Points []string `json:"points" yaml:"points" toml:"points"`
}

// PolylineSpec describes a polyline through named points.
type PolylineSpec struct {
	Name            string   `json:"name,omitempty" yaml:"name,omitempty" toml:"name,omitempty"`
	Points          []string `json:"points" yaml:"points" toml:"points"`
	Closed          bool     `json:"closed,omitempty" yaml:"closed,omitempty" toml:"closed,omitempty"`
	NonIntersecting bool     `json:"non_intersecting,omitempty" yaml:"non_intersecting,omitempty" toml:"non_intersecting,omitempty"`
}

// PolygonSpec describes a polygon with named points as vertices.
type PolygonSpec struct {
	Name   string   `json:"name,omitempty" yaml:"name,omitempty" toml:"name,omitempty"`
	Points []string `json:"points" yaml:"points" toml:"points"`
}

// Load reads a document from a .json, .yaml/.yml or .toml file.
func Load(path string) (*Document, error) {
	feeder, err := feeders.ForFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrUnsupportedFormat, err)
	}

	var doc Document
	if err := feeder.Feed(&doc); err != nil {
		return nil, fmt.Errorf("failed to load %s: %w", path, err)
	}
	return &doc, nil
}

// Decode reads a document in the given format ("json", "yaml" or "toml").
func Decode(r io.Reader, format string) (*Document, error) {
	var doc Document
	var err error

	switch strings.ToLower(format) {
	case "json":
		err = json.NewDecoder(r).Decode(&doc)
	case "yaml", "yml":
		err = yaml.NewDecoder(r).Decode(&doc)
		if errors.Is(err, io.EOF) {
			err = nil
		}
	case "toml":
		_, err = toml.NewDecoder(r).Decode(&doc)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, format)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to decode %s document: %w", format, err)
	}
	return &doc, nil
}
