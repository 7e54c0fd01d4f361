package framebench

import (
	"testing"
	"time"
)

func TestFixedController_HoldsThenStops(t *testing.T) {
	cfg := DefaultConfig()
	cfg.TestLength = time.Second

	c := NewFixedController(50, cfg)

	steps := []struct {
		elapsed time.Duration
		want    int
	}{
		{0, 50},
		{500 * time.Millisecond, 50},
		{999 * time.Millisecond, 50},
		{time.Second, 0},
	}
	for _, s := range steps {
		c.Record(s.elapsed)
		if got := c.CurrentFrameComplexity(); got != s.want {
			t.Errorf("At %v: expected complexity %d, got %d", s.elapsed, s.want, got)
		}
	}

	// Terminal state is stable.
	for i := 0; i < 3; i++ {
		if got := c.CurrentFrameComplexity(); got != 0 {
			t.Errorf("Expected 0 after termination, got %d", got)
		}
	}

	if got := c.LastFrameLength(); got != time.Millisecond {
		t.Errorf("Expected last frame length 1ms, got %v", got)
	}
}

func TestFixedController_QueryIsIdempotent(t *testing.T) {
	cfg := DefaultConfig()
	cfg.TestLength = time.Second
	c := NewFixedController(7, cfg)
	c.Record(0)

	first := c.CurrentFrameComplexity()
	for i := 0; i < 5; i++ {
		if got := c.CurrentFrameComplexity(); got != first {
			t.Fatalf("Expected repeated queries to return %d, got %d", first, got)
		}
	}
}

func TestFixedController_ClampsComplexity(t *testing.T) {
	cfg := DefaultConfig()
	c := NewFixedController(0, cfg)
	c.Record(0)
	if got := c.CurrentFrameComplexity(); got != 1 {
		t.Errorf("Expected complexity clamped to 1, got %d", got)
	}
}

func TestFixedController_Lifecycle(t *testing.T) {
	cfg := DefaultConfig()
	cfg.TestLength = 100 * time.Millisecond
	c := NewFixedController(10, cfg)

	mustPanic(t, "CurrentFrameComplexity before Record", func() {
		c.CurrentFrameComplexity()
	})

	frames := DriveController(t, c, constantFrames(refresh), DefaultAssertionConfig())
	if frames < 6 || frames > 8 {
		t.Errorf("Expected about 7 frames over 100ms, got %d", frames)
	}

	mustPanic(t, "Record after termination", func() {
		c.Record(time.Second)
	})

	AssertChronological(t, c.Timeline())
	marks := c.Timeline().Marks()
	if len(marks) != 1 || marks[0].Phase != PhaseFixed {
		t.Errorf("Expected a single fixed mark, got %v", markNames(marks))
	}
}
