package framebench

import (
	"errors"
	"fmt"
	"time"
)

// ErrInvalidConfig is wrapped by every Config validation failure.
var ErrInvalidConfig = errors.New("framebench: invalid config")

// Controller modes accepted by Config.Controller.
const (
	ModeFixed = "fixed"
	ModeWave  = "wave"
)

// Config controls controller selection and tuning.
type Config struct {
	Controller string        // "fixed" selects FixedController; anything else selects WaveController
	TestLength time.Duration // Total run budget; determines the number of ramps in wave mode
	RampLength time.Duration // Duration of one sweep

	TargetFrameRate float64 // Frames per second the host must sustain
	OvershootRatio  float64 // Frame may exceed the target interval by this fraction

	InitialComplexity int     // Exponential search seed
	GrowthFactor      float64 // Exponential search multiplier per probe
	ProbeFrames       int     // Judged frames held at each probe level
	MaxComplexity     int     // Search ceiling

	FixedComplexity int // Workload held in fixed mode
}

// DefaultConfig returns sensible defaults.
func DefaultConfig() Config {
	return Config{
		Controller:        ModeWave,
		TestLength:        30 * time.Second,
		RampLength:        5 * time.Second,
		TargetFrameRate:   60,
		OvershootRatio:    0.2,
		InitialComplexity: 1,
		GrowthFactor:      2,
		ProbeFrames:       1,
		MaxComplexity:     1 << 20,
		FixedComplexity:   100,
	}
}

// Mode returns the normalized controller mode.
func (c Config) Mode() string {
	if c.Controller == ModeFixed {
		return ModeFixed
	}
	return ModeWave
}

// Budget returns the frame budget implied by the target rate and tolerance.
func (c Config) Budget() FrameBudget {
	return NewFrameBudget(c.TargetFrameRate, c.OvershootRatio)
}

// RampCount is the number of search-then-sweep cycles in wave mode.
func (c Config) RampCount() int {
	if c.RampLength <= 0 {
		return 1
	}
	return max(1, int(c.TestLength/c.RampLength))
}

// Validate reports the first invalid setting.
func (c Config) Validate() error {
	switch {
	case c.TestLength <= 0:
		return fmt.Errorf("%w: test length must be positive, got %v", ErrInvalidConfig, c.TestLength)
	case c.RampLength <= 0:
		return fmt.Errorf("%w: ramp length must be positive, got %v", ErrInvalidConfig, c.RampLength)
	case c.TargetFrameRate <= 0:
		return fmt.Errorf("%w: target frame rate must be positive, got %g", ErrInvalidConfig, c.TargetFrameRate)
	case c.OvershootRatio < 0:
		return fmt.Errorf("%w: overshoot ratio must not be negative, got %g", ErrInvalidConfig, c.OvershootRatio)
	case c.InitialComplexity < 1:
		return fmt.Errorf("%w: initial complexity must be at least 1, got %d", ErrInvalidConfig, c.InitialComplexity)
	case c.GrowthFactor <= 1:
		return fmt.Errorf("%w: growth factor must exceed 1, got %g", ErrInvalidConfig, c.GrowthFactor)
	case c.ProbeFrames < 1:
		return fmt.Errorf("%w: probe frames must be at least 1, got %d", ErrInvalidConfig, c.ProbeFrames)
	case c.MaxComplexity < c.InitialComplexity:
		return fmt.Errorf("%w: max complexity %d below initial complexity %d", ErrInvalidConfig, c.MaxComplexity, c.InitialComplexity)
	case c.Mode() == ModeFixed && c.FixedComplexity < 1:
		return fmt.Errorf("%w: fixed complexity must be at least 1, got %d", ErrInvalidConfig, c.FixedComplexity)
	}
	return nil
}
