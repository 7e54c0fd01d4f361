package framebench

import "time"

// BudgetState is the verdict on a single measured frame.
type BudgetState string

const (
	BudgetUnknown   BudgetState = "UNKNOWN"   // No measurement yet (first frame)
	BudgetWithin    BudgetState = "WITHIN"    // Frame fit in the target interval plus tolerance
	BudgetOvershoot BudgetState = "OVERSHOOT" // Frame exceeded the tolerated interval
)

// FrameBudget is the frame interval a host must sustain and the tolerance
// allowed before a frame counts as an overshoot.
//
// With vsync, a host that keeps up produces frames of exactly Target; a
// host that falls behind skips a refresh and produces ~2·Target. The
// overshoot ratio sits between the two.
type FrameBudget struct {
	Target         time.Duration
	OvershootRatio float64
}

// NewFrameBudget derives the target interval from a frame rate.
func NewFrameBudget(frameRate, overshootRatio float64) FrameBudget {
	if frameRate <= 0 {
		frameRate = 60
	}
	return FrameBudget{
		Target:         time.Duration(float64(time.Second) / frameRate),
		OvershootRatio: overshootRatio,
	}
}

// Limit is the longest frame still considered within budget.
func (b FrameBudget) Limit() time.Duration {
	return time.Duration(float64(b.Target) * (1 + b.OvershootRatio))
}

// Classify judges one frame length against the budget.
func (b FrameBudget) Classify(frameLength time.Duration) BudgetState {
	switch {
	case frameLength <= 0:
		return BudgetUnknown
	case frameLength > b.Limit():
		return BudgetOvershoot
	default:
		return BudgetWithin
	}
}
