// Package sim provides a deterministic virtual display and stage.
//
// Host advances a virtual clock instead of waiting for real refreshes: each
// frame costs Base + PerUnit·complexity of work, rounded up to whole
// refresh intervals the way a vsync-locked display presents it.
package sim

import (
	"math"
	"math/rand"
	"time"
)

// CostModel describes how long the simulated host needs per frame.
type CostModel struct {
	RefreshRate float64       // Display refresh in Hz
	Base        time.Duration // Fixed work per frame
	PerUnit     time.Duration // Work per active unit
	Jitter      float64       // Relative noise on frame work, 0 disables
	Seed        int64
}

// DefaultCostModel saturates a 60 Hz display at roughly 730 units.
func DefaultCostModel() CostModel {
	return CostModel{
		RefreshRate: 60,
		Base:        2 * time.Millisecond,
		PerUnit:     20 * time.Microsecond,
		Jitter:      0.05,
		Seed:        1,
	}
}

// Capacity is the highest complexity whose work fits in one refresh interval.
func (m CostModel) Capacity() int {
	interval := refreshInterval(m.RefreshRate)
	if m.PerUnit <= 0 {
		return math.MaxInt
	}
	return int((interval - m.Base) / m.PerUnit)
}

// Host is a simulated display and stage. It implements the frame scheduler
// and the stage contracts and is driven explicitly with Drive.
type Host struct {
	model    CostModel
	interval time.Duration
	rng      *rand.Rand

	epoch      time.Time
	now        time.Time
	pending    func(now time.Time)
	complexity int
	frames     int
	animated   int
	lastFrame  time.Duration
}

// NewHost starts the virtual clock at the Unix epoch.
func NewHost(model CostModel) *Host {
	return &Host{
		model:    model,
		interval: refreshInterval(model.RefreshRate),
		rng:      rand.New(rand.NewSource(model.Seed)),
		epoch:    time.Unix(0, 0),
		now:      time.Unix(0, 0),
	}
}

// RequestFrame queues fn for the next virtual refresh.
func (h *Host) RequestFrame(fn func(now time.Time)) {
	h.pending = fn
}

// Tune changes the active unit count; it never drops below zero.
func (h *Host) Tune(delta int) {
	h.complexity = max(0, h.complexity+delta)
}

// Animate counts rendered frames.
func (h *Host) Animate(elapsed, lastFrameLength time.Duration) {
	h.animated++
	h.lastFrame = lastFrameLength
}

// Complexity returns the active unit count.
func (h *Host) Complexity() int {
	return h.complexity
}

// Step presents one frame and runs the pending callback.
// It reports false when nothing was pending.
func (h *Host) Step() bool {
	fn := h.pending
	if fn == nil {
		return false
	}
	h.pending = nil
	h.now = h.now.Add(h.FrameLength(h.complexity))
	h.frames++
	fn(h.now)
	return true
}

// Drive steps until no callback is pending or maxFrames frames ran
// (maxFrames <= 0 means no limit). It returns the number of frames run.
func (h *Host) Drive(maxFrames int) int {
	n := 0
	for maxFrames <= 0 || n < maxFrames {
		if !h.Step() {
			break
		}
		n++
	}
	return n
}

// FrameLength is the presented length of a frame rendering complexity units.
func (h *Host) FrameLength(complexity int) time.Duration {
	work := float64(h.model.Base + time.Duration(complexity)*h.model.PerUnit)
	if h.model.Jitter > 0 {
		work *= 1 + h.model.Jitter*(2*h.rng.Float64()-1)
	}
	intervals := math.Max(1, math.Ceil(work/float64(h.interval)))
	return time.Duration(intervals) * h.interval
}

// Now returns the virtual clock.
func (h *Host) Now() time.Time {
	return h.now
}

// Elapsed returns the virtual time presented so far.
func (h *Host) Elapsed() time.Duration {
	return h.now.Sub(h.epoch)
}

// Frames returns how many frames were presented.
func (h *Host) Frames() int {
	return h.frames
}

// Animated returns how many frames the stage was asked to animate.
func (h *Host) Animated() int {
	return h.animated
}

// Interval returns the refresh interval.
func (h *Host) Interval() time.Duration {
	return h.interval
}

func refreshInterval(rate float64) time.Duration {
	if rate <= 0 {
		rate = 60
	}
	return time.Duration(float64(time.Second) / rate)
}
