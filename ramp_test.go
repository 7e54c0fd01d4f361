package framebench

import (
	"testing"
	"time"
)

func TestRampController_SweepsHighToLow(t *testing.T) {
	cfg := DefaultConfig()
	cfg.RampLength = time.Second
	c := NewRampController(100, 200, 0, cfg)

	steps := []struct {
		elapsed time.Duration
		want    int
	}{
		{0, 200},
		{250 * time.Millisecond, 175},
		{500 * time.Millisecond, 150},
		{999 * time.Millisecond, 100},
		{time.Second, 0},
	}
	for _, s := range steps {
		c.Record(s.elapsed)
		if got := c.CurrentFrameComplexity(); got != s.want {
			t.Errorf("At %v: expected complexity %d, got %d", s.elapsed, s.want, got)
		}
	}
}

func TestRampController_OffsetStart(t *testing.T) {
	cfg := DefaultConfig()
	cfg.RampLength = time.Second
	start := 3 * time.Second
	c := NewRampController(10, 20, start, cfg)

	c.Record(start)
	if got := c.CurrentFrameComplexity(); got != 20 {
		t.Errorf("Expected 20 at ramp start, got %d", got)
	}
	c.Record(start + 500*time.Millisecond)
	if got := c.CurrentFrameComplexity(); got != 15 {
		t.Errorf("Expected 15 halfway through, got %d", got)
	}
	c.Record(start + time.Second)
	if got := c.CurrentFrameComplexity(); got != 0 {
		t.Errorf("Expected 0 after ramp length, got %d", got)
	}
}

func TestRampController_SwappedBounds(t *testing.T) {
	c := NewRampController(200, 100, 0, DefaultConfig())
	if low, high := c.Range(); low != 100 || high != 200 {
		t.Errorf("Expected range [100, 200], got [%d, %d]", low, high)
	}
}

func TestRampController_NeverBelowOne(t *testing.T) {
	cfg := DefaultConfig()
	cfg.RampLength = time.Second
	c := NewRampController(0, 1, 0, cfg)

	DriveController(t, c, constantFrames(refresh), DefaultAssertionConfig())

	for i, s := range c.Timeline().Samples() {
		if s.Complexity < 1 {
			t.Errorf("Sample %d requested complexity %d", i, s.Complexity)
		}
	}
}
