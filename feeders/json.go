package feeders

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"reflect"
	"strings"
)

// Feeder interface for common operations
type Feeder interface {
	Feed(target interface{}) error
}

// feedKey is a common helper function for extracting specific keys from config files
func feedKey(
	feeder Feeder,
	key string,
	target interface{},
	marshalFunc func(interface{}) ([]byte, error),
	unmarshalFunc func([]byte, interface{}) error,
	fileType string,
) error {
	var allData map[string]interface{}

	if err := feeder.Feed(&allData); err != nil {
		return fmt.Errorf("failed to read %s: %w", fileType, err)
	}

	value, exists := allData[key]
	if !exists {
		return nil
	}

	// Remarshal and unmarshal to handle type conversions
	valueBytes, err := marshalFunc(value)
	if err != nil {
		return fmt.Errorf("failed to marshal %s data: %w", fileType, err)
	}

	if err = unmarshalFunc(valueBytes, target); err != nil {
		return fmt.Errorf("failed to unmarshal %s data: %w", fileType, err)
	}

	return nil
}

// JSONFeeder reads JSON files. The top-level value must be an object; in strict
// mode keys that do not map onto a field of the target struct are rejected.
type JSONFeeder struct {
	Path         string
	strict       bool
	verboseDebug bool
	logger       interface {
		Debug(msg string, args ...any)
	}
}

// NewJSONFeeder creates a new JSONFeeder that reads from the specified JSON file
func NewJSONFeeder(filePath string) *JSONFeeder {
	return &JSONFeeder{Path: filePath}
}

// SetStrict enables or disables rejection of unknown keys.
func (j *JSONFeeder) SetStrict(strict bool) {
	j.strict = strict
}

// SetVerboseDebug enables or disables verbose debug logging
func (j *JSONFeeder) SetVerboseDebug(enabled bool, logger interface{ Debug(msg string, args ...any) }) {
	j.verboseDebug = enabled
	j.logger = logger
	if enabled && logger != nil {
		j.logger.Debug("Verbose JSON feeder debugging enabled")
	}
}

// Feed reads the JSON file and populates the provided structure
func (j *JSONFeeder) Feed(structure interface{}) error {
	if j.verboseDebug && j.logger != nil {
		j.logger.Debug("JSONFeeder: Starting feed process", "filePath", j.Path, "structureType", reflect.TypeOf(structure))
	}

	err := j.feed(structure)

	if j.verboseDebug && j.logger != nil {
		if err != nil {
			j.logger.Debug("JSONFeeder: Feed completed with error", "filePath", j.Path, "error", err)
		} else {
			j.logger.Debug("JSONFeeder: Feed completed successfully", "filePath", j.Path)
		}
	}
	if err != nil {
		return fmt.Errorf("json feed error: %w", err)
	}
	return nil
}

// FeedKey reads a JSON file and extracts a specific key
func (j *JSONFeeder) FeedKey(key string, target interface{}) error {
	return feedKey(j, key, target, json.Marshal, json.Unmarshal, "JSON file")
}

func (j *JSONFeeder) feed(structure interface{}) error {
	data, err := os.ReadFile(j.Path)
	if err != nil {
		return fmt.Errorf("failed to read JSON file %s: %w", j.Path, err)
	}

	var top interface{}
	if err := json.Unmarshal(data, &top); err != nil {
		return fmt.Errorf("failed to parse JSON file %s: %w", j.Path, err)
	}
	if _, ok := top.(map[string]interface{}); !ok {
		return wrapJSONObjectError(j.Path, top)
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	if j.strict && isStructPointer(structure) {
		dec.DisallowUnknownFields()
	}
	if err := dec.Decode(structure); err != nil {
		// encoding/json has no typed error for unknown fields
		if strings.Contains(err.Error(), "unknown field") {
			return wrapJSONUnknownFieldError(j.Path, err)
		}
		return fmt.Errorf("failed to unmarshal JSON data: %w", err)
	}
	return nil
}

func isStructPointer(v interface{}) bool {
	rv := reflect.ValueOf(v)
	return rv.Kind() == reflect.Ptr && !rv.IsNil() && rv.Elem().Kind() == reflect.Struct
}
