// Package config loads framebench settings from YAML.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/alexshd/framebench"
	"github.com/alexshd/framebench/internal/sim"
)

// Scenes accepted by Config.Scene.
const (
	SceneSimulated = "simulated"
	SceneParticles = "particles"
)

// DefaultFiles are searched in order when no path is given.
var DefaultFiles = []string{"framebench.yaml", ".framebench.yaml"}

// Duration is a time.Duration written as a Go duration string ("5s").
type Duration time.Duration

// UnmarshalYAML accepts duration strings and integer nanoseconds.
func (d *Duration) UnmarshalYAML(node *yaml.Node) error {
	var s string
	if err := node.Decode(&s); err != nil {
		return err
	}
	if parsed, err := time.ParseDuration(s); err == nil {
		*d = Duration(parsed)
		return nil
	}
	var n int64
	if err := node.Decode(&n); err != nil {
		return fmt.Errorf("invalid duration %q", s)
	}
	*d = Duration(n)
	return nil
}

// MarshalYAML writes the duration string form.
func (d Duration) MarshalYAML() (interface{}, error) {
	return time.Duration(d).String(), nil
}

// SimConfig is the simulated host cost model.
type SimConfig struct {
	RefreshRate float64  `yaml:"refresh_rate"`
	Base        Duration `yaml:"base"`
	PerUnit     Duration `yaml:"per_unit"`
	Jitter      float64  `yaml:"jitter"`
	Seed        int64    `yaml:"seed"`
}

// Config is the full CLI configuration.
type Config struct {
	Controller        string   `yaml:"controller"`
	TestLength        Duration `yaml:"test_length"`
	RampLength        Duration `yaml:"ramp_length"`
	TargetFrameRate   float64  `yaml:"target_frame_rate"`
	OvershootRatio    float64  `yaml:"overshoot_ratio"`
	InitialComplexity int      `yaml:"initial_complexity"`
	GrowthFactor      float64  `yaml:"growth_factor"`
	ProbeFrames       int      `yaml:"probe_frames"`
	MaxComplexity     int      `yaml:"max_complexity"`
	FixedComplexity   int      `yaml:"fixed_complexity"`

	Runs  int       `yaml:"runs"`
	Scene string    `yaml:"scene"`
	Sim   SimConfig `yaml:"sim"`

	LogLevel    string `yaml:"log_level"`
	LogFormat   string `yaml:"log_format"`
	MetricsAddr string `yaml:"metrics_addr"`
	TimelineOut string `yaml:"timeline_out"`
}

// DefaultConfig mirrors framebench.DefaultConfig and sim.DefaultCostModel.
func DefaultConfig() *Config {
	bench := framebench.DefaultConfig()
	model := sim.DefaultCostModel()
	return &Config{
		Controller:        bench.Controller,
		TestLength:        Duration(bench.TestLength),
		RampLength:        Duration(bench.RampLength),
		TargetFrameRate:   bench.TargetFrameRate,
		OvershootRatio:    bench.OvershootRatio,
		InitialComplexity: bench.InitialComplexity,
		GrowthFactor:      bench.GrowthFactor,
		ProbeFrames:       bench.ProbeFrames,
		MaxComplexity:     bench.MaxComplexity,
		FixedComplexity:   bench.FixedComplexity,
		Runs:              1,
		Scene:             SceneSimulated,
		Sim: SimConfig{
			RefreshRate: model.RefreshRate,
			Base:        Duration(model.Base),
			PerUnit:     Duration(model.PerUnit),
			Jitter:      model.Jitter,
			Seed:        model.Seed,
		},
		LogLevel:  "info",
		LogFormat: "text",
	}
}

// Load reads path, or the first of DefaultFiles that exists when path is
// empty. With no file at all the defaults are returned.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	var data []byte
	var err error
	if path != "" {
		data, err = os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	} else {
		found := false
		for _, name := range DefaultFiles {
			data, err = os.ReadFile(name)
			if err == nil {
				path = name
				found = true
				break
			}
			if !errors.Is(err, fs.ErrNotExist) {
				return nil, fmt.Errorf("failed to read config file %s: %w", name, err)
			}
		}
		if !found {
			return cfg, nil
		}
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}
	return cfg, cfg.Validate()
}

// Validate checks the CLI-only settings and the benchmark settings.
func (c *Config) Validate() error {
	if c.Runs < 1 {
		return fmt.Errorf("runs must be at least 1, got %d", c.Runs)
	}
	switch c.Scene {
	case SceneSimulated, SceneParticles:
	default:
		return fmt.Errorf("unknown scene %q (want %s or %s)", c.Scene, SceneSimulated, SceneParticles)
	}
	return c.Benchmark().Validate()
}

// Benchmark converts to the controller configuration.
func (c *Config) Benchmark() framebench.Config {
	return framebench.Config{
		Controller:        c.Controller,
		TestLength:        time.Duration(c.TestLength),
		RampLength:        time.Duration(c.RampLength),
		TargetFrameRate:   c.TargetFrameRate,
		OvershootRatio:    c.OvershootRatio,
		InitialComplexity: c.InitialComplexity,
		GrowthFactor:      c.GrowthFactor,
		ProbeFrames:       c.ProbeFrames,
		MaxComplexity:     c.MaxComplexity,
		FixedComplexity:   c.FixedComplexity,
	}
}

// CostModel converts to the simulated host cost model.
func (c *Config) CostModel() sim.CostModel {
	return sim.CostModel{
		RefreshRate: c.Sim.RefreshRate,
		Base:        time.Duration(c.Sim.Base),
		PerUnit:     time.Duration(c.Sim.PerUnit),
		Jitter:      c.Sim.Jitter,
		Seed:        c.Sim.Seed,
	}
}

// Set parses a duration string, for command line overrides.
func (d *Duration) Set(s string) error {
	parsed, err := time.ParseDuration(s)
	if err != nil {
		return err
	}
	*d = Duration(parsed)
	return nil
}
