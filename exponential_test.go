package framebench

import (
	"testing"
	"time"
)

func TestExponentialController_BracketsSaturation(t *testing.T) {
	cfg := DefaultConfig()
	c := NewExponentialController(cfg)

	frames := DriveController(t, c, vsyncFrames(733), DefaultAssertionConfig())

	low, high, ok := c.NextComplexityRange()
	if !ok {
		t.Fatal("Expected the search to have bracketed saturation")
	}
	if low != 512 || high != 1024 {
		t.Errorf("Expected bracket [512, 1024], got [%d, %d]", low, high)
	}
	// Seed frame plus one judged frame per level 1, 2, 4, ..., 1024.
	if frames != 12 {
		t.Errorf("Expected 12 frames, got %d", frames)
	}

	t.Logf("✓ Bracket [%d, %d] after %d frames", low, high, frames)
}

func TestExponentialController_MonotonicGrowth(t *testing.T) {
	cfg := DefaultConfig()
	cfg.GrowthFactor = 1.5
	c := NewExponentialController(cfg)

	DriveController(t, c, vsyncFrames(300), DefaultAssertionConfig())

	samples := c.Timeline().Samples()
	// samples[0] is the unmeasured seed frame.
	for i := 2; i < len(samples); i++ {
		if samples[i].Complexity <= samples[i-1].Complexity {
			t.Errorf("Complexity did not grow at sample %d: %d -> %d",
				i, samples[i-1].Complexity, samples[i].Complexity)
		}
	}

	low, high, _ := c.NextComplexityRange()
	if low >= high {
		t.Errorf("Expected low < high, got [%d, %d]", low, high)
	}
	if low > 300 || high <= 300 {
		t.Errorf("Expected bracket to contain capacity 300, got [%d, %d]", low, high)
	}
	last, _ := c.Timeline().Last()
	if last.Complexity != high {
		t.Errorf("Expected the overshooting probe %d as the last sample, got %d", high, last.Complexity)
	}
}

func TestExponentialController_ProbeFrames(t *testing.T) {
	cfg := DefaultConfig()
	cfg.ProbeFrames = 3
	c := NewExponentialController(cfg)

	frames := DriveController(t, c, vsyncFrames(733), DefaultAssertionConfig())
	if frames != 1+3*11 {
		t.Errorf("Expected %d frames with 3 probes per level, got %d", 1+3*11, frames)
	}
	if low, high, _ := c.NextComplexityRange(); low != 512 || high != 1024 {
		t.Errorf("Expected bracket [512, 1024], got [%d, %d]", low, high)
	}
}

func TestExponentialController_Ceiling(t *testing.T) {
	cfg := DefaultConfig()
	cfg.MaxComplexity = 100
	c := NewExponentialController(cfg)

	DriveController(t, c, constantFrames(refresh), DefaultAssertionConfig())

	low, high, ok := c.NextComplexityRange()
	if !ok {
		t.Fatal("Expected the ceiling to end the search")
	}
	if low != 64 || high != 100 {
		t.Errorf("Expected bracket [64, 100] at the ceiling, got [%d, %d]", low, high)
	}
}

func TestExponentialController_SeedOvershoots(t *testing.T) {
	cfg := DefaultConfig()
	c := NewExponentialController(cfg)

	DriveController(t, c, constantFrames(3*refresh), DefaultAssertionConfig())

	low, high, _ := c.NextComplexityRange()
	if low != 0 || high != 1 {
		t.Errorf("Expected bracket [0, 1] when the seed overshoots, got [%d, %d]", low, high)
	}
}

func TestExponentialController_RangeBeforeBracket(t *testing.T) {
	c := NewExponentialController(DefaultConfig())
	c.Record(0)
	if _, _, ok := c.NextComplexityRange(); ok {
		t.Error("Expected no bracket before any frame was judged")
	}
	if got := c.CurrentFrameComplexity(); got != 1 {
		t.Errorf("Expected seed complexity 1, got %d", got)
	}
	c.Record(time.Millisecond)
	if got := c.CurrentFrameComplexity(); got != 2 {
		t.Errorf("Expected complexity 2 after a fast frame, got %d", got)
	}
}
