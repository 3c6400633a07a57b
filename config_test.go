package femglue

import (
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GoCodeAlone/femglue/feeders"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	assert.Equal(t, 6, cfg.Precision)
	assert.InDelta(t, 1e-6, cfg.Tol(), 1e-18)
}

func TestLoadConfigWithoutFile(t *testing.T) {
	cfg, err := LoadConfig(t.TempDir())
	require.NoError(t, err)
	assert.Equal(t, 6, cfg.Precision)
}

func TestLoadConfigFromStaticFile(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, ConfigFileName, `{"precision": 5}`)

	cfg, err := LoadConfig(dir)
	require.NoError(t, err)
	assert.Equal(t, 5, cfg.Precision)
	assert.InDelta(t, 1e-5, cfg.Tol(), 1e-18)
}

func TestLoadConfigRejectsNonObject(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, ConfigFileName, `[1, 2, 3]`)

	_, err := LoadConfig(dir)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrConfigNotObject)
	assert.Contains(t, err.Error(), "'femglue.json' must be defined as a dictionary")
}

func TestLoadConfigRejectsUnknownKeys(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, ConfigFileName, `{"precision": 5, "tolerance": 0.1}`)

	_, err := LoadConfig(dir)
	assert.ErrorIs(t, err, ErrConfigUnknownField)
}

func TestLoadConfigRejectsOutOfRangePrecision(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, ConfigFileName, `{"precision": 40}`)

	_, err := LoadConfig(dir)
	assert.ErrorIs(t, err, ErrConfigValidationFailed)
	assert.ErrorIs(t, err, ErrPrecisionOutOfRange)
}

func TestLoadConfigEnvOverridesFile(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, ConfigFileName, `{"precision": 5}`)
	t.Setenv("FEMGLUE_PRECISION", "8")

	cfg, err := LoadConfig(dir, feeders.NewEnvFeeder())
	require.NoError(t, err)
	assert.Equal(t, 8, cfg.Precision)
}

func TestLoadConfigEnvFile(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, ConfigFileName, `{"precision": 5}`)
	writeFile(t, dir, EnvFileName, "FEMGLUE_PRECISION=7\n")

	cfg, err := LoadConfig(dir)
	require.NoError(t, err)
	assert.Equal(t, 7, cfg.Precision)

	t.Setenv("FEMGLUE_PRECISION", "3")
	cfg, err = LoadConfig(dir)
	require.NoError(t, err)
	assert.Equal(t, 3, cfg.Precision)
}

func TestLoadConfigBadEnvFile(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, EnvFileName, "FEMGLUE_PRECISION=many\n")

	_, err := LoadConfig(dir)
	assert.ErrorIs(t, err, ErrConfigFeederError)
}

type recordingLogger struct {
	mu       sync.Mutex
	messages []string
}

func (r *recordingLogger) record(msg string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.messages = append(r.messages, msg)
}

func (r *recordingLogger) Info(msg string, _ ...any)  { r.record(msg) }
func (r *recordingLogger) Error(msg string, _ ...any) { r.record(msg) }
func (r *recordingLogger) Warn(msg string, _ ...any)  { r.record(msg) }
func (r *recordingLogger) Debug(msg string, _ ...any) { r.record(msg) }

func TestLoadConfigVerboseFeeders(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, ConfigFileName, `{"precision": 5}`)
	writeFile(t, dir, EnvFileName, "FEMGLUE_PRECISION=7\n")

	logger := &recordingLogger{}
	prev := GetLogger()
	SetLogger(logger)
	t.Cleanup(func() {
		SetLogger(prev)
		SetVerboseConfig(false)
	})

	_, err := LoadConfig(dir)
	require.NoError(t, err)
	assert.NotContains(t, logger.messages, "JSONFeeder: Starting feed process")

	SetVerboseConfig(true)
	cfg, err := LoadConfig(dir)
	require.NoError(t, err)
	assert.Equal(t, 7, cfg.Precision)
	assert.Contains(t, logger.messages, "JSONFeeder: Starting feed process")
	assert.Contains(t, logger.messages, "JSONFeeder: Feed completed successfully")
	assert.Contains(t, logger.messages, "DotEnvFeeder: Parsed .env file")
	assert.Contains(t, logger.messages, "DotEnvFeeder: Set field")
}

func TestLoadConfigExtraYamlFeeder(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "extra.yaml", "precision: 4\n")

	cfg, err := LoadConfig(dir, feeders.NewYamlFeeder(path))
	require.NoError(t, err)
	assert.Equal(t, 4, cfg.Precision)
}

func TestApplyConfigSection(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "model.yaml", "femglue:\n  precision: 3\npoints:\n  a: [0, 0, 0]\n")

	cfg, err := ApplyConfigSection(feeders.NewYamlFeeder(path), "femglue", DefaultConfig())
	require.NoError(t, err)
	assert.Equal(t, 3, cfg.Precision)

	// missing section keeps the base values
	path = writeFile(t, dir, "plain.toml", "[points]\na = [0.0, 0.0, 0.0]\n")
	cfg, err = ApplyConfigSection(feeders.NewTomlFeeder(path), "femglue", DefaultConfig())
	require.NoError(t, err)
	assert.Equal(t, 6, cfg.Precision)
}

func TestApplyConfigSectionRejectsUnknownKeys(t *testing.T) {
	dir := t.TempDir()
	yamlPath := writeFile(t, dir, "model.yaml", "femglue:\n  precision: 3\n  tolerance: 0.1\n")
	_, err := ApplyConfigSection(feeders.NewYamlFeeder(yamlPath), "femglue", DefaultConfig())
	assert.ErrorIs(t, err, ErrConfigUnknownField)
	assert.Contains(t, err.Error(), `"tolerance"`)

	jsonPath := writeFile(t, dir, "model.json", `{"femglue": {"precison": 3}}`)
	_, err = ApplyConfigSection(feeders.NewJSONFeeder(jsonPath), "femglue", DefaultConfig())
	assert.ErrorIs(t, err, ErrConfigUnknownField)

	tomlPath := writeFile(t, dir, "model.toml", "[femglue]\nprecision = 4\n")
	cfg, err := ApplyConfigSection(feeders.NewTomlFeeder(tomlPath), "femglue", DefaultConfig())
	require.NoError(t, err)
	assert.Equal(t, 4, cfg.Precision)
}

func TestCurrentIsSingleton(t *testing.T) {
	ResetCurrent()
	t.Cleanup(ResetCurrent)

	first := Current()
	second := Current()
	assert.Same(t, first, second)
	assert.Equal(t, 6, first.Precision)
}

func TestCurrentLoadsFromWorkingDirectory(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, ConfigFileName, `{"precision": 5}`)
	t.Chdir(dir)

	ResetCurrent()
	t.Cleanup(ResetCurrent)

	assert.Equal(t, 5, Current().Precision)
}

func TestCurrentFallsBackToDefaults(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, ConfigFileName, `"not an object"`)
	t.Chdir(dir)

	ResetCurrent()
	t.Cleanup(ResetCurrent)

	assert.Equal(t, 6, Current().Precision)
}

func TestSetCurrent(t *testing.T) {
	t.Cleanup(ResetCurrent)

	cfg := DefaultConfig()
	cfg.Precision = 9
	require.NoError(t, SetCurrent(cfg))
	assert.Equal(t, 9, Current().Precision)

	// the published value is a copy
	cfg.Precision = 2
	assert.Equal(t, 9, Current().Precision)

	assert.ErrorIs(t, SetCurrent(nil), ErrConfigNil)
	assert.ErrorIs(t, SetCurrent(&Config{Precision: -1}), ErrPrecisionOutOfRange)
}
