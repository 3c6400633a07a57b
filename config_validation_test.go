package femglue

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sampleSolverConfig struct {
	Name      string  `json:"name" yaml:"name" toml:"name" default:"gmsh" desc:"Solver binary"`
	Threads   int     `json:"threads" yaml:"threads" toml:"threads" default:"4"`
	Relax     float64 `json:"relax" yaml:"relax" toml:"relax" default:"0.5"`
	Verbose   bool    `json:"verbose" yaml:"verbose" toml:"verbose" default:"true"`
	OutputDir string  `json:"output_dir" yaml:"output_dir" toml:"output_dir" required:"true"`
	Nested    struct {
		Retries uint8 `json:"retries" yaml:"retries" toml:"retries" default:"3"`
	} `json:"nested" yaml:"nested" toml:"nested"`
}

func TestProcessConfigDefaults(t *testing.T) {
	cfg := &sampleSolverConfig{Threads: 8}
	require.NoError(t, ProcessConfigDefaults(cfg))

	assert.Equal(t, "gmsh", cfg.Name)
	assert.Equal(t, 8, cfg.Threads, "explicit values are kept")
	assert.InDelta(t, 0.5, cfg.Relax, 1e-12)
	assert.True(t, cfg.Verbose)
	assert.Equal(t, uint8(3), cfg.Nested.Retries)
}

func TestProcessConfigDefaultsErrors(t *testing.T) {
	assert.ErrorIs(t, ProcessConfigDefaults(nil), ErrConfigNil)
	assert.ErrorIs(t, ProcessConfigDefaults(sampleSolverConfig{}), ErrConfigNotPointer)
	n := 3
	assert.ErrorIs(t, ProcessConfigDefaults(&n), ErrConfigNotStruct)

	type overflowing struct {
		Small int8 `default:"1000"`
	}
	assert.ErrorIs(t, ProcessConfigDefaults(&overflowing{}), ErrDefaultValueOverflowsInt)

	type unsupported struct {
		Values map[string]int `default:"{}"`
	}
	assert.ErrorIs(t, ProcessConfigDefaults(&unsupported{}), ErrUnsupportedTypeForDefault)
}

func TestValidateConfigRequired(t *testing.T) {
	cfg := &sampleSolverConfig{}
	err := ValidateConfigRequired(cfg)
	require.ErrorIs(t, err, ErrConfigRequiredFieldMissing)
	assert.Contains(t, err.Error(), "OutputDir")

	cfg.OutputDir = "/tmp/out"
	assert.NoError(t, ValidateConfigRequired(cfg))
}

func TestValidateConfigCallsValidator(t *testing.T) {
	err := ValidateConfig(&Config{Precision: 99})
	assert.ErrorIs(t, err, ErrConfigValidationFailed)

	cfg := &Config{}
	require.NoError(t, ValidateConfig(cfg))
	assert.Equal(t, 6, cfg.Precision)
}

func TestGenerateSampleConfig(t *testing.T) {
	for _, format := range []string{"json", "yaml", "toml"} {
		t.Run(format, func(t *testing.T) {
			data, err := GenerateSampleConfig(&Config{}, format)
			require.NoError(t, err)
			assert.Contains(t, string(data), "precision")
			assert.Contains(t, string(data), "6")
		})
	}

	_, err := GenerateSampleConfig(&Config{}, "ini")
	assert.ErrorIs(t, err, ErrUnsupportedFormatType)
	_, err = GenerateSampleConfig(nil, "json")
	assert.ErrorIs(t, err, ErrConfigNil)
}

func TestSaveSampleConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), ConfigFileName)
	require.NoError(t, SaveSampleConfig(&Config{}, "json", path))

	cfg, err := LoadConfig(filepath.Dir(path))
	require.NoError(t, err)
	assert.Equal(t, 6, cfg.Precision)

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())
}

func TestDescribeConfig(t *testing.T) {
	desc := DescribeConfig(&Config{})
	assert.Equal(t, "Number of decimal places floats are rounded to", desc["Precision"])

	assert.Empty(t, DescribeConfig(nil))
	assert.Equal(t, map[string]string{"Name": "Solver binary"}, DescribeConfig(sampleSolverConfig{}))
}
