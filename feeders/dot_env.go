package feeders

import (
	"bufio"
	"fmt"
	"os"
	"reflect"
	"strings"

	"github.com/golobby/cast"
)

// DotEnvFeeder reads KEY=VALUE lines from a .env style file and populates
// fields tagged `env:"NAME"`. Variables already set in the process
// environment take precedence over the file.
type DotEnvFeeder struct {
	Path         string
	verboseDebug bool
	logger       interface {
		Debug(msg string, args ...any)
	}
	envVars map[string]string
}

// NewDotEnvFeeder creates a new DotEnvFeeder that reads from the specified .env file
func NewDotEnvFeeder(filePath string) *DotEnvFeeder {
	return &DotEnvFeeder{
		Path:    filePath,
		envVars: make(map[string]string),
	}
}

// SetVerboseDebug enables or disables verbose debug logging
func (f *DotEnvFeeder) SetVerboseDebug(enabled bool, logger interface{ Debug(msg string, args ...any) }) {
	f.verboseDebug = enabled
	f.logger = logger
	if enabled && logger != nil {
		f.logger.Debug("Verbose dot env feeder debugging enabled")
	}
}

// Feed reads the .env file and populates the provided structure
func (f *DotEnvFeeder) Feed(structure interface{}) error {
	if f.verboseDebug && f.logger != nil {
		f.logger.Debug("DotEnvFeeder: Starting feed process", "filePath", f.Path, "structureType", reflect.TypeOf(structure))
	}

	if err := f.parseDotEnvFile(); err != nil {
		return fmt.Errorf("failed to parse .env file: %w", err)
	}

	rv := reflect.ValueOf(structure)
	if rv.Kind() != reflect.Ptr || rv.IsNil() || rv.Elem().Kind() != reflect.Struct {
		return wrapDotEnvStructureError(structure)
	}
	return f.processStructFields(rv.Elem())
}

// Lookup returns the value of key, preferring the process environment.
func (f *DotEnvFeeder) Lookup(key string) (string, bool) {
	if v, ok := os.LookupEnv(key); ok {
		return v, true
	}
	v, ok := f.envVars[key]
	return v, ok
}

func (f *DotEnvFeeder) parseDotEnvFile() error {
	f.envVars = make(map[string]string)

	file, err := os.Open(f.Path)
	if err != nil {
		return fmt.Errorf("failed to open .env file: %w", err)
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	lineNum := 0
	for scanner.Scan() {
		lineNum++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if err := f.parseEnvLine(strings.TrimPrefix(line, "export "), lineNum); err != nil {
			return err
		}
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("scanner error: %w", err)
	}

	if f.verboseDebug && f.logger != nil {
		f.logger.Debug("DotEnvFeeder: Parsed .env file", "filePath", f.Path, "linesProcessed", lineNum, "varsFound", len(f.envVars))
	}
	return nil
}

func (f *DotEnvFeeder) parseEnvLine(line string, lineNum int) error {
	key, value, ok := strings.Cut(line, "=")
	if !ok {
		return fmt.Errorf("%w at line %d: %s", ErrDotEnvInvalidLineFormat, lineNum, line)
	}
	key = strings.TrimSpace(key)
	value = strings.TrimSpace(value)

	if len(value) >= 2 {
		if (value[0] == '"' && value[len(value)-1] == '"') || (value[0] == '\'' && value[len(value)-1] == '\'') {
			value = value[1 : len(value)-1]
		}
	}
	f.envVars[key] = value
	return nil
}

func (f *DotEnvFeeder) processStructFields(rv reflect.Value) error {
	structType := rv.Type()

	for i := 0; i < rv.NumField(); i++ {
		field := rv.Field(i)
		fieldType := structType.Field(i)
		if !field.CanSet() {
			continue
		}

		envTag := fieldType.Tag.Get("env")
		if envTag == "" || envTag == "-" {
			if field.Kind() == reflect.Struct {
				if err := f.processStructFields(field); err != nil {
					return err
				}
			}
			continue
		}

		value, exists := f.Lookup(envTag)
		if !exists || value == "" {
			continue
		}

		converted, err := cast.FromType(value, field.Type())
		if err != nil {
			return fmt.Errorf("%w: %s=%q for field %s: %w", ErrDotEnvConversion, envTag, value, fieldType.Name, err)
		}
		field.Set(reflect.ValueOf(converted))

		if f.verboseDebug && f.logger != nil {
			f.logger.Debug("DotEnvFeeder: Set field", "envKey", envTag, "field", fieldType.Name, "value", value)
		}
	}
	return nil
}
