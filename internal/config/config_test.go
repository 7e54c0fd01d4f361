package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/alexshd/framebench"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func chdir(t *testing.T, dir string) {
	t.Helper()
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(wd) })
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	require.NoError(t, cfg.Validate())

	assert.Equal(t, framebench.DefaultConfig(), cfg.Benchmark())
	assert.Equal(t, SceneSimulated, cfg.Scene)
	assert.Equal(t, 1, cfg.Runs)
	assert.Equal(t, 733, cfg.CostModel().Capacity())
}

func TestLoad_ExplicitPath(t *testing.T) {
	path := writeFile(t, t.TempDir(), "bench.yaml", `
controller: fixed
test_length: 10s
ramp_length: 2s
fixed_complexity: 250
runs: 3
scene: particles
sim:
  refresh_rate: 120
  base: 1ms
  per_unit: 5000
log_level: debug
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, framebench.ModeFixed, cfg.Controller)
	assert.Equal(t, 10*time.Second, time.Duration(cfg.TestLength))
	assert.Equal(t, 2*time.Second, time.Duration(cfg.RampLength))
	assert.Equal(t, 250, cfg.FixedComplexity)
	assert.Equal(t, 3, cfg.Runs)
	assert.Equal(t, SceneParticles, cfg.Scene)
	assert.Equal(t, "debug", cfg.LogLevel)

	model := cfg.CostModel()
	assert.Equal(t, 120.0, model.RefreshRate)
	assert.Equal(t, time.Millisecond, model.Base)
	assert.Equal(t, 5*time.Microsecond, model.PerUnit, "integer durations are nanoseconds")

	// Unset keys keep their defaults.
	assert.Equal(t, 60.0, cfg.TargetFrameRate)
	assert.Equal(t, 2.0, cfg.GrowthFactor)
}

func TestLoad_DefaultFileSearch(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir)

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg, "no file falls back to defaults")

	writeFile(t, dir, ".framebench.yaml", "runs: 4\n")
	cfg, err = Load("")
	require.NoError(t, err)
	assert.Equal(t, 4, cfg.Runs)

	writeFile(t, dir, "framebench.yaml", "runs: 2\n")
	cfg, err = Load("")
	require.NoError(t, err)
	assert.Equal(t, 2, cfg.Runs, "framebench.yaml takes precedence")
}

func TestLoad_Errors(t *testing.T) {
	dir := t.TempDir()

	_, err := Load(filepath.Join(dir, "missing.yaml"))
	assert.Error(t, err)

	_, err = Load(writeFile(t, dir, "bad.yaml", "runs: [1, 2\n"))
	assert.Error(t, err)

	_, err = Load(writeFile(t, dir, "duration.yaml", "test_length: soon\n"))
	assert.Error(t, err)

	_, err = Load(writeFile(t, dir, "scene.yaml", "scene: opengl\n"))
	assert.ErrorContains(t, err, "unknown scene")

	_, err = Load(writeFile(t, dir, "invalid.yaml", "growth_factor: 1\n"))
	assert.ErrorIs(t, err, framebench.ErrInvalidConfig)
}

func TestValidate_Runs(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Runs = 0
	assert.ErrorContains(t, cfg.Validate(), "runs must be at least 1")
}

func TestDuration_YAML(t *testing.T) {
	var out struct {
		D Duration `yaml:"d"`
	}
	require.NoError(t, yaml.Unmarshal([]byte("d: 1m30s\n"), &out))
	assert.Equal(t, 90*time.Second, time.Duration(out.D))

	data, err := yaml.Marshal(out)
	require.NoError(t, err)
	assert.Equal(t, "d: 1m30s\n", string(data))

	var d Duration
	require.NoError(t, d.Set("250ms"))
	assert.Equal(t, 250*time.Millisecond, time.Duration(d))
	assert.Error(t, d.Set("fast"))
}
