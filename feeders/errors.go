package feeders

import (
	"errors"
	"fmt"
)

// JSON feeder errors
var (
	ErrJSONExpectedObject = errors.New("expected a JSON object at the top level")
	ErrJSONUnknownField   = errors.New("unknown field")
)

// Dot env feeder errors
var (
	ErrDotEnvInvalidLineFormat = errors.New("invalid .env line format")
	ErrDotEnvInvalidStructure  = errors.New("expected pointer to struct")
	ErrDotEnvConversion        = errors.New("cannot convert .env value")
)

// General feeder errors
var (
	ErrUnsupportedExtension = errors.New("unsupported config file extension")
)

func wrapJSONObjectError(path string, got interface{}) error {
	return fmt.Errorf("%w in %s, got %T", ErrJSONExpectedObject, path, got)
}

func wrapJSONUnknownFieldError(path string, cause error) error {
	return fmt.Errorf("%w in %s: %v", ErrJSONUnknownField, path, cause)
}

func wrapExtensionError(path string) error {
	return fmt.Errorf("%w: %s", ErrUnsupportedExtension, path)
}

func wrapDotEnvStructureError(got interface{}) error {
	return fmt.Errorf("%w, got %T", ErrDotEnvInvalidStructure, got)
}
