package framebench

import (
	"math"
	"time"
)

// ExponentialController searches for the largest complexity the host can
// sustain within the frame budget.
//
// Each probe level is held for ProbeFrames measured frames. While the mean
// frame length of a probe stays within budget the level is multiplied by
// GrowthFactor, so the saturation point is bracketed in O(log ceiling)
// probes. The first probe that overshoots closes the bracket
// [lastSustained, overshoot].
type ExponentialController struct {
	rec    *recorder
	budget FrameBudget
	growth float64
	probes int
	limit  int

	current       int
	lastSustained int
	judged        []float64 // frame lengths (ms) measured at current

	low, high int
	bracketed bool
}

// NewExponentialController starts a standalone search. The run ends as
// soon as the bracket is found.
func NewExponentialController(cfg Config) *ExponentialController {
	rec := newRecorder(max(cfg.InitialComplexity, 1))
	rec.timeline.Mark(PhaseSearch, 0, 0)
	return newExponential(rec, cfg)
}

func newExponential(rec *recorder, cfg Config) *ExponentialController {
	seed := max(cfg.InitialComplexity, 1)
	return &ExponentialController{
		rec:     rec,
		budget:  cfg.Budget(),
		growth:  cfg.GrowthFactor,
		probes:  max(cfg.ProbeFrames, 1),
		limit:   max(cfg.MaxComplexity, seed),
		current: seed,
		judged:  make([]float64, 0, max(cfg.ProbeFrames, 1)),
	}
}

func (c *ExponentialController) record(elapsed time.Duration) {
	c.rec.record(elapsed)
	if c.bracketed {
		return
	}
	last, _ := c.rec.timeline.Last()
	if last.Complexity != c.current || c.budget.Classify(last.FrameLength) == BudgetUnknown {
		return
	}
	c.judged = append(c.judged, durationMillis(last.FrameLength))
	if len(c.judged) < c.probes {
		return
	}

	mean := millisDuration(Mean(c.judged))
	c.judged = c.judged[:0]

	if c.budget.Classify(mean) == BudgetOvershoot {
		c.closeBracket(c.lastSustained, c.current)
		return
	}
	if c.current >= c.limit {
		// Ceiling reached without saturating the host.
		c.closeBracket(c.lastSustained, c.current)
		return
	}
	c.lastSustained = c.current
	c.current = c.grow(c.current)
}

func (c *ExponentialController) grow(complexity int) int {
	next := int(math.Floor(float64(complexity) * c.growth))
	return min(max(next, complexity+1), c.limit)
}

func (c *ExponentialController) closeBracket(low, high int) {
	c.low, c.high = low, high
	c.bracketed = true
}

// nextComplexity returns the level being probed, or 0 once bracketed.
func (c *ExponentialController) nextComplexity(time.Duration) int {
	if c.bracketed {
		return 0
	}
	return c.current
}

// NextComplexityRange returns the bracket found by the search.
// ok is false while the search is still running.
func (c *ExponentialController) NextComplexityRange() (low, high int, ok bool) {
	return c.low, c.high, c.bracketed
}

// Record appends the frame that just completed and judges it against the budget.
func (c *ExponentialController) Record(elapsed time.Duration) {
	c.record(elapsed)
	c.rec.request(c.nextComplexity(elapsed))
}

// CurrentFrameComplexity returns the probe level, or 0 after the bracket is found.
func (c *ExponentialController) CurrentFrameComplexity() int {
	return c.rec.current()
}

// LastFrameLength returns the most recently recorded frame length.
func (c *ExponentialController) LastFrameLength() time.Duration {
	return c.rec.lastFrameLength
}

// Timeline returns the run record.
func (c *ExponentialController) Timeline() *Timeline {
	return c.rec.timeline
}
