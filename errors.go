package femglue

import (
	"errors"
)

// Configuration errors
var (
	ErrConfigNil                  = errors.New("config is nil")
	ErrConfigNotPointer           = errors.New("config must be a pointer")
	ErrConfigNotStruct            = errors.New("config must be a struct")
	ErrConfigRequiredFieldMissing = errors.New("required field is missing")
	ErrConfigValidationFailed     = errors.New("config validation failed")
	ErrConfigFeederError          = errors.New("config feeder error")
	ErrConfigNotObject            = errors.New("'" + ConfigFileName + "' must be defined as a dictionary")
	ErrConfigUnknownField         = errors.New("unknown config field")
	ErrPrecisionOutOfRange        = errors.New("precision out of range")

	// Default value errors
	ErrUnsupportedTypeForDefault  = errors.New("unsupported type for default value")
	ErrDefaultValueOverflowsInt   = errors.New("default value overflows int")
	ErrDefaultValueOverflowsUint  = errors.New("default value overflows uint")
	ErrDefaultValueOverflowsFloat = errors.New("default value overflows float")
	ErrIncompatibleFieldKind      = errors.New("incompatible field kind")
	ErrUnsupportedFormatType      = errors.New("unsupported format type")
)

// Tolerance comparison errors
var (
	ErrInvalidCompareOp = errors.New("invalid comparison operator")
)
