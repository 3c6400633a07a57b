package femglue

import (
	"errors"
	"fmt"
	"maps"
	"math"
	"path/filepath"
	"reflect"
	"slices"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/GoCodeAlone/femglue/feeders"
)

// ConfigFileName is the static configuration file looked up in the working directory.
const ConfigFileName = "femglue.json"

// EnvFileName is an optional .env style file read after ConfigFileName.
// Variables set in the process environment override its entries.
const EnvFileName = "femglue.env"

const (
	minPrecision = 1
	maxPrecision = 15
)

// Config holds the numeric settings shared by every geometry operation.
// A published Config is never mutated; use Clone to derive a modified copy.
type Config struct {
	// Precision is the number of decimal places floats are rounded to.
	// Zero means "use the default".
	Precision int `json:"precision" yaml:"precision" toml:"precision" env:"FEMGLUE_PRECISION" default:"6" desc:"Number of decimal places floats are rounded to"`
}

// Tol is the inverse of the precision. Quantities smaller than Tol are
// considered to be approximately zero.
func (c *Config) Tol() float64 {
	return math.Pow10(-c.Precision)
}

// Validate implements ConfigValidator.
func (c *Config) Validate() error {
	if c.Precision < minPrecision || c.Precision > maxPrecision {
		return fmt.Errorf("%w: %d not in [%d, %d]", ErrPrecisionOutOfRange, c.Precision, minPrecision, maxPrecision)
	}
	return nil
}

// Clone returns a copy of c that may be modified freely.
func (c *Config) Clone() *Config {
	cp := *c
	return &cp
}

// DefaultConfig returns a Config with every default applied.
func DefaultConfig() *Config {
	cfg := &Config{}
	// defaults on Config are static and always parse
	_ = ProcessConfigDefaults(cfg)
	return cfg
}

var verboseConfig atomic.Bool

// SetVerboseConfig makes LoadConfig trace the file feeders at debug level.
func SetVerboseConfig(enabled bool) {
	verboseConfig.Store(enabled)
}

// LoadConfig builds a Config from defaults, the static file ConfigFileName in
// dir (when present), EnvFileName in dir (when present) and then each extra
// feeder in order.
//
// The static file must hold a JSON object and may only contain known keys.
func LoadConfig(dir string, extra ...Feeder) (*Config, error) {
	cfg := DefaultConfig()
	path := filepath.Join(dir, ConfigFileName)

	jsonFeeder := feeders.NewJSONFeeder(path)
	jsonFeeder.SetStrict(true)
	if verboseConfig.Load() {
		jsonFeeder.SetVerboseDebug(true, GetLogger())
	}
	static := feeders.NewOptionalFeeder(path, jsonFeeder)

	if err := static.Feed(cfg); err != nil {
		switch {
		case errors.Is(err, feeders.ErrJSONExpectedObject):
			return nil, fmt.Errorf("%w: %w", ErrConfigNotObject, err)
		case errors.Is(err, feeders.ErrJSONUnknownField):
			return nil, fmt.Errorf("%w: %w", ErrConfigUnknownField, err)
		default:
			return nil, fmt.Errorf("%w: %w", ErrConfigFeederError, err)
		}
	}
	if static.Exists() {
		GetLogger().Debug("Static config applied", "path", path, "precision", cfg.Precision)
	}

	envPath := filepath.Join(dir, EnvFileName)
	dotEnvFeeder := feeders.NewDotEnvFeeder(envPath)
	if verboseConfig.Load() {
		dotEnvFeeder.SetVerboseDebug(true, GetLogger())
	}
	dotEnv := feeders.NewOptionalFeeder(envPath, dotEnvFeeder)
	if err := dotEnv.Feed(cfg); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrConfigFeederError, err)
	}

	for _, f := range extra {
		if err := f.Feed(cfg); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrConfigFeederError, err)
		}
	}

	if err := ValidateConfig(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// ApplyConfigSection overlays the section stored under key in a config-bearing
// file (for instance the `femglue` block of a geometry document) onto a copy of base.
//
// Like the static file, the section may only contain known keys.
func ApplyConfigSection(f ComplexFeeder, key string, base *Config) (*Config, error) {
	var raw map[string]interface{}
	if err := f.FeedKey(key, &raw); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrConfigFeederError, err)
	}
	known := configKeys()
	for _, name := range slices.Sorted(maps.Keys(raw)) {
		if !slices.Contains(known, name) {
			return nil, fmt.Errorf("%w: %q in section %q", ErrConfigUnknownField, name, key)
		}
	}

	cfg := base.Clone()
	if err := f.FeedKey(key, cfg); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrConfigFeederError, err)
	}
	if err := ValidateConfig(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// configKeys lists the file keys of Config, taken from the json tags.
func configKeys() []string {
	t := reflect.TypeOf(Config{})
	keys := make([]string, 0, t.NumField())
	for i := 0; i < t.NumField(); i++ {
		name, _, _ := strings.Cut(t.Field(i).Tag.Get("json"), ",")
		if name != "" && name != "-" {
			keys = append(keys, name)
		}
	}
	return keys
}

var (
	current   atomic.Pointer[Config]
	currentMu sync.Mutex
)

// Current returns the process-wide configuration. On first use it is loaded
// from the working directory followed by ConfigFeeders. If loading fails the
// defaults are used and the failure is logged.
func Current() *Config {
	if cfg := current.Load(); cfg != nil {
		return cfg
	}

	currentMu.Lock()
	defer currentMu.Unlock()
	if cfg := current.Load(); cfg != nil {
		return cfg
	}

	cfg, err := LoadConfig(".", ConfigFeeders...)
	if err != nil {
		GetLogger().Warn("Falling back to default config", "error", err)
		cfg = DefaultConfig()
	}
	current.Store(cfg)
	return cfg
}

// SetCurrent validates cfg and publishes it as the process-wide configuration.
func SetCurrent(cfg *Config) error {
	if cfg == nil {
		return ErrConfigNil
	}
	cp := cfg.Clone()
	if err := ValidateConfig(cp); err != nil {
		return err
	}
	current.Store(cp)
	GetLogger().Info("Config published", "precision", cp.Precision)
	return nil
}

// ResetCurrent discards the process-wide configuration so the next call to
// Current loads it again.
func ResetCurrent() {
	current.Store(nil)
}
