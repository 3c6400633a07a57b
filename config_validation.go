package femglue

import (
	"encoding/json"
	"fmt"
	"reflect"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/google/renameio/v2"
	"gopkg.in/yaml.v3"
)

const (
	// Struct tag keys
	tagDefault  = "default"
	tagRequired = "required"
	tagDesc     = "desc" // Used for generating sample config and documentation
)

// ConfigValidator is implemented by configuration structs that need checks
// beyond required fields. ValidateConfig calls Validate after defaults have
// been applied.
type ConfigValidator interface {
	Validate() error
}

// ProcessConfigDefaults applies default values to a config struct based on struct tags.
// It looks for `default:"value"` tags on struct fields and sets the field value if currently zero.
//
//	type Config struct {
//	    Precision int `default:"6"`
//	}
func ProcessConfigDefaults(cfg interface{}) error {
	if cfg == nil {
		return ErrConfigNil
	}

	v := reflect.ValueOf(cfg)
	if v.Kind() != reflect.Ptr || v.IsNil() {
		return ErrConfigNotPointer
	}

	v = v.Elem()
	if v.Kind() != reflect.Struct {
		return ErrConfigNotStruct
	}

	return processStructDefaults(v)
}

// processStructDefaults recursively processes struct fields for default values
func processStructDefaults(v reflect.Value) error {
	t := v.Type()

	for i := 0; i < v.NumField(); i++ {
		field := v.Field(i)
		fieldType := t.Field(i)

		if !field.CanSet() {
			continue
		}

		if field.Kind() == reflect.Struct {
			if err := processStructDefaults(field); err != nil {
				return err
			}
			continue
		}

		// Nil struct pointers stay nil
		if field.Kind() == reflect.Ptr && field.Type().Elem().Kind() == reflect.Struct {
			if !field.IsNil() {
				if err := processStructDefaults(field.Elem()); err != nil {
					return err
				}
			}
			continue
		}

		defaultVal, hasDefault := fieldType.Tag.Lookup(tagDefault)
		if !hasDefault || !isZeroValue(field) {
			continue
		}

		if err := setDefaultValue(field, defaultVal); err != nil {
			return fmt.Errorf("failed to set default value for %s: %w", fieldType.Name, err)
		}
	}

	return nil
}

// ValidateConfigRequired checks all struct fields with `required:"true"` tag
// and verifies they are not zero/empty values
func ValidateConfigRequired(cfg interface{}) error {
	if cfg == nil {
		return ErrConfigNil
	}

	v := reflect.ValueOf(cfg)
	if v.Kind() != reflect.Ptr || v.IsNil() {
		return ErrConfigNotPointer
	}

	v = v.Elem()
	if v.Kind() != reflect.Struct {
		return ErrConfigNotStruct
	}

	var missing []string
	validateRequiredFields(v, "", &missing)

	if len(missing) > 0 {
		return fmt.Errorf("%w: %s", ErrConfigRequiredFieldMissing, strings.Join(missing, ", "))
	}

	return nil
}

// validateRequiredFields recursively validates required fields
func validateRequiredFields(v reflect.Value, prefix string, missing *[]string) {
	t := v.Type()

	for i := 0; i < v.NumField(); i++ {
		field := v.Field(i)
		fieldType := t.Field(i)
		fieldName := fieldType.Name

		if prefix != "" {
			fieldName = prefix + "." + fieldName
		}

		if !field.CanSet() {
			continue
		}

		if field.Kind() == reflect.Struct {
			validateRequiredFields(field, fieldName, missing)
			continue
		}

		if field.Kind() == reflect.Ptr && field.Type().Elem().Kind() == reflect.Struct {
			if !field.IsNil() {
				validateRequiredFields(field.Elem(), fieldName, missing)
			} else if isFieldRequired(&fieldType) {
				*missing = append(*missing, fieldName)
			}
			continue
		}

		if isFieldRequired(&fieldType) && isZeroValue(field) {
			*missing = append(*missing, fieldName)
		}
	}
}

// isFieldRequired checks if a field has the required:"true" tag
func isFieldRequired(field *reflect.StructField) bool {
	required, exists := field.Tag.Lookup(tagRequired)
	return exists && required == "true"
}

// isZeroValue determines if a field contains its zero value
func isZeroValue(v reflect.Value) bool {
	switch v.Kind() { //nolint:exhaustive // remaining kinds never count as zero
	case reflect.Array, reflect.Map, reflect.Slice, reflect.String:
		return v.Len() == 0
	case reflect.Bool:
		return !v.Bool()
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return v.Int() == 0
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return v.Uint() == 0
	case reflect.Float32, reflect.Float64:
		return v.Float() == 0
	case reflect.Interface, reflect.Ptr:
		return v.IsNil()
	case reflect.Invalid:
		return true
	default:
		return false
	}
}

// setDefaultValue sets a default value from a string to the proper field type
func setDefaultValue(field reflect.Value, defaultVal string) error {
	switch field.Kind() { //nolint:exhaustive // everything else is unsupported
	case reflect.String:
		field.SetString(defaultVal)
		return nil
	case reflect.Bool:
		b, err := strconv.ParseBool(defaultVal)
		if err != nil {
			return fmt.Errorf("failed to parse bool value: %w", err)
		}
		field.SetBool(b)
		return nil
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		i, err := strconv.ParseInt(defaultVal, 10, 64)
		if err != nil {
			return fmt.Errorf("failed to parse int value: %w", err)
		}
		if field.OverflowInt(i) {
			return fmt.Errorf("%w: %d overflows %s", ErrDefaultValueOverflowsInt, i, field.Type())
		}
		field.SetInt(i)
		return nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		u, err := strconv.ParseUint(defaultVal, 10, 64)
		if err != nil {
			return fmt.Errorf("failed to parse uint value: %w", err)
		}
		if field.OverflowUint(u) {
			return fmt.Errorf("%w: %d overflows %s", ErrDefaultValueOverflowsUint, u, field.Type())
		}
		field.SetUint(u)
		return nil
	case reflect.Float32, reflect.Float64:
		f, err := strconv.ParseFloat(defaultVal, 64)
		if err != nil {
			return fmt.Errorf("failed to parse float value: %w", err)
		}
		if field.OverflowFloat(f) {
			return fmt.Errorf("%w: %f overflows %s", ErrDefaultValueOverflowsFloat, f, field.Type())
		}
		field.SetFloat(f)
		return nil
	default:
		return fmt.Errorf("%w: %s", ErrUnsupportedTypeForDefault, field.Kind())
	}
}

// GenerateSampleConfig renders cfg with its defaults applied.
// The format parameter can be "yaml", "json", or "toml".
func GenerateSampleConfig(cfg interface{}, format string) ([]byte, error) {
	if cfg == nil {
		return nil, ErrConfigNil
	}
	if err := ProcessConfigDefaults(cfg); err != nil {
		return nil, err
	}

	switch strings.ToLower(format) {
	case "yaml":
		data, err := yaml.Marshal(cfg)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal to YAML: %w", err)
		}
		return data, nil
	case "json":
		data, err := json.MarshalIndent(cfg, "", "  ")
		if err != nil {
			return nil, fmt.Errorf("failed to marshal to JSON: %w", err)
		}
		return append(data, '\n'), nil
	case "toml":
		var buf strings.Builder
		if err := toml.NewEncoder(&buf).Encode(cfg); err != nil {
			return nil, fmt.Errorf("failed to marshal to TOML: %w", err)
		}
		return []byte(buf.String()), nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormatType, format)
	}
}

// SaveSampleConfig generates a sample configuration and writes it atomically to filePath.
func SaveSampleConfig(cfg interface{}, format, filePath string) error {
	data, err := GenerateSampleConfig(cfg, format)
	if err != nil {
		return err
	}

	if err := renameio.WriteFile(filePath, data, 0o600); err != nil {
		return fmt.Errorf("failed to write config file to %s: %w", filePath, err)
	}
	return nil
}

// DescribeConfig lists the `desc` tag of every top-level field, keyed by field name.
func DescribeConfig(cfg interface{}) map[string]string {
	out := make(map[string]string)
	t := reflect.TypeOf(cfg)
	if t == nil {
		return out
	}
	if t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	if t.Kind() != reflect.Struct {
		return out
	}
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		if desc, ok := f.Tag.Lookup(tagDesc); ok {
			out[f.Name] = desc
		}
	}
	return out
}

// ValidateConfig validates a configuration using the following steps:
// 1. Processes default values
// 2. Validates required fields
// 3. If the config implements ConfigValidator, calls its Validate method
func ValidateConfig(cfg interface{}) error {
	if cfg == nil {
		return ErrConfigNil
	}

	if err := ProcessConfigDefaults(cfg); err != nil {
		return err
	}

	if err := ValidateConfigRequired(cfg); err != nil {
		return err
	}

	if validator, ok := cfg.(ConfigValidator); ok {
		if err := validator.Validate(); err != nil {
			return fmt.Errorf("%w: %w", ErrConfigValidationFailed, err)
		}
	}

	return nil
}
