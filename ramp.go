package framebench

import (
	"math"
	"time"
)

// RampController sweeps complexity linearly from the high end of a bracket
// down to the low end over RampLength. The sweep is the measured part of a
// wave run; the exponential search only locates the range.
type RampController struct {
	rec    *recorder
	low    int
	high   int
	start  time.Duration
	length time.Duration
}

// NewRampController sweeps [low, high] starting at elapsed time start.
func NewRampController(low, high int, start time.Duration, cfg Config) *RampController {
	rec := newRecorder(max(high, 1))
	rec.timeline.Mark(PhaseSweep, 0, start)
	return newRamp(rec, low, high, start, cfg)
}

func newRamp(rec *recorder, low, high int, start time.Duration, cfg Config) *RampController {
	if low > high {
		low, high = high, low
	}
	return &RampController{
		rec:    rec,
		low:    low,
		high:   high,
		start:  start,
		length: cfg.RampLength,
	}
}

func (c *RampController) record(elapsed time.Duration) {
	c.rec.record(elapsed)
}

// nextComplexity interpolates between high and low by elapsed progress.
// It never returns less than 1 while the sweep is running.
func (c *RampController) nextComplexity(elapsed time.Duration) int {
	offset := elapsed - c.start
	if c.length <= 0 || offset >= c.length {
		return 0
	}
	progress := math.Max(0, float64(offset)/float64(c.length))
	complexity := int(math.Round(float64(c.high) - float64(c.high-c.low)*progress))
	return max(complexity, c.low, 1)
}

// Range returns the swept bracket.
func (c *RampController) Range() (low, high int) {
	return c.low, c.high
}

// Record appends the frame that just completed.
func (c *RampController) Record(elapsed time.Duration) {
	c.record(elapsed)
	c.rec.request(c.nextComplexity(elapsed))
}

// CurrentFrameComplexity returns the swept level, or 0 after RampLength.
func (c *RampController) CurrentFrameComplexity() int {
	return c.rec.current()
}

// LastFrameLength returns the most recently recorded frame length.
func (c *RampController) LastFrameLength() time.Duration {
	return c.rec.lastFrameLength
}

// Timeline returns the run record.
func (c *RampController) Timeline() *Timeline {
	return c.rec.timeline
}
