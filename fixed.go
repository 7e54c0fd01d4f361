package framebench

import "time"

// FixedController holds one workload for the whole test length.
// It measures steady-state behavior at a known load instead of searching
// for a ceiling.
type FixedController struct {
	rec        *recorder
	complexity int
	testLength time.Duration
}

// NewFixedController holds complexity (at least 1) for cfg.TestLength.
func NewFixedController(complexity int, cfg Config) *FixedController {
	complexity = max(complexity, 1)
	c := &FixedController{
		rec:        newRecorder(complexity),
		complexity: complexity,
		testLength: cfg.TestLength,
	}
	c.rec.timeline.Mark(PhaseFixed, 0, 0)
	return c
}

func (c *FixedController) record(elapsed time.Duration) {
	c.rec.record(elapsed)
}

func (c *FixedController) nextComplexity(elapsed time.Duration) int {
	if elapsed < c.testLength {
		return c.complexity
	}
	return 0
}

// Record appends the frame that just completed.
func (c *FixedController) Record(elapsed time.Duration) {
	c.record(elapsed)
	c.rec.request(c.nextComplexity(elapsed))
}

// CurrentFrameComplexity returns the held workload, or 0 once the test length has elapsed.
func (c *FixedController) CurrentFrameComplexity() int {
	return c.rec.current()
}

// LastFrameLength returns the most recently recorded frame length.
func (c *FixedController) LastFrameLength() time.Duration {
	return c.rec.lastFrameLength
}

// Timeline returns the run record.
func (c *FixedController) Timeline() *Timeline {
	return c.rec.timeline
}
