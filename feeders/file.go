package feeders

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// ForFile returns the feeder matching the extension of path:
// .json, .yaml/.yml or .toml.
func ForFile(path string) (Feeder, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return NewJSONFeeder(path), nil
	case ".yaml", ".yml":
		return NewYamlFeeder(path), nil
	case ".toml":
		return NewTomlFeeder(path), nil
	default:
		return nil, wrapExtensionError(path)
	}
}

// OptionalFeeder wraps a file feeder and silently skips a file that does not exist.
type OptionalFeeder struct {
	Path  string
	inner Feeder
}

// NewOptionalFeeder wraps inner, which reads path.
func NewOptionalFeeder(path string, inner Feeder) *OptionalFeeder {
	return &OptionalFeeder{Path: path, inner: inner}
}

// Exists reports whether the wrapped file is present.
func (o *OptionalFeeder) Exists() bool {
	_, err := os.Stat(o.Path)
	return err == nil
}

// Feed delegates to the wrapped feeder when the file exists.
func (o *OptionalFeeder) Feed(structure interface{}) error {
	if _, err := os.Stat(o.Path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("failed to stat %s: %w", o.Path, err)
	}
	return o.inner.Feed(structure)
}
