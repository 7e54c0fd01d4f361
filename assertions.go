package framebench

import (
	"fmt"
	"math"
	"testing"
	"time"
)

// AssertionConfig contains thresholds for run properties.
type AssertionConfig struct {
	// Maximum frames a controller may take before it must terminate
	MaxFrames int

	// Maximum confidence half-width as a percentage of score
	MaxSpreadPercent float64

	// Relative tolerance when comparing a score to an expected capacity
	ScoreTolerance float64
}

// DefaultAssertionConfig returns conservative thresholds.
func DefaultAssertionConfig() AssertionConfig {
	return AssertionConfig{
		MaxFrames:        100_000, // ~28 minutes at 60 fps
		MaxSpreadPercent: 25,      // ±25% of score
		ScoreTolerance:   0.10,    // 10% of expected capacity
	}
}

// DriveController feeds a controller fixed-length frames until it
// terminates, without a stage or scheduler. frameLength returns the length
// of a frame rendered at the given complexity. It returns the number of
// frames recorded, or fails the test if cfg.MaxFrames is exceeded.
func DriveController(t testing.TB, c Controller, frameLength func(complexity int) time.Duration, cfg AssertionConfig) int {
	t.Helper()

	var elapsed time.Duration
	c.Record(elapsed)
	frames := 1
	for c.CurrentFrameComplexity() != 0 {
		if frames >= cfg.MaxFrames {
			t.Fatalf("Controller did not terminate within %d frames (complexity=%d, elapsed=%v)",
				cfg.MaxFrames, c.CurrentFrameComplexity(), elapsed)
		}
		elapsed += frameLength(c.CurrentFrameComplexity())
		c.Record(elapsed)
		frames++
	}
	return frames
}

// AssertChronological verifies samples are in non-decreasing timestamp
// order and that each frame length matches the timestamp delta.
func AssertChronological(t testing.TB, tl *Timeline) {
	t.Helper()

	samples := tl.Samples()
	for i := 1; i < len(samples); i++ {
		prev, cur := samples[i-1], samples[i]
		if cur.Timestamp < prev.Timestamp {
			t.Errorf("Sample %d goes back in time: %v < %v", i, cur.Timestamp, prev.Timestamp)
		}
		if want := cur.Timestamp - prev.Timestamp; cur.FrameLength != want {
			t.Errorf("Sample %d frame length %v, expected delta %v", i, cur.FrameLength, want)
		}
	}
	if len(samples) > 0 && samples[0].FrameLength != 0 {
		t.Errorf("First sample frame length should be 0, got %v", samples[0].FrameLength)
	}
}

// AssertWaveTransitions verifies the timeline alternates search and sweep
// phases for exactly rampCount ramps.
func AssertWaveTransitions(t testing.TB, tl *Timeline, rampCount int) {
	t.Helper()

	marks := tl.Marks()
	if len(marks) != 2*rampCount {
		t.Fatalf("Expected %d phase marks for %d ramps, got %d: %v", 2*rampCount, rampCount, len(marks), markNames(marks))
	}
	for i, m := range marks {
		want := PhaseSearch
		if i%2 == 1 {
			want = PhaseSweep
		}
		if m.Phase != want || m.Ramp != i/2 {
			t.Errorf("Mark %d: expected ramp-%d:%s, got %s", i, i/2, want, m.Name)
		}
		if i > 0 && m.Index < marks[i-1].Index {
			t.Errorf("Mark %d index %d precedes previous mark index %d", i, m.Index, marks[i-1].Index)
		}
	}
}

// AssertScoreNear verifies a score lies within cfg.ScoreTolerance of expected.
func AssertScoreNear(t testing.TB, stats RunStatistics, expected float64, cfg AssertionConfig) {
	t.Helper()

	if expected == 0 {
		t.Fatalf("Expected capacity must be non-zero")
	}
	relErr := math.Abs(stats.Score-expected) / expected
	if relErr > cfg.ScoreTolerance {
		t.Errorf("Score %.2f is %.1f%% away from expected %.2f (tolerance %.1f%%)",
			stats.Score, relErr*100, expected, cfg.ScoreTolerance*100)
	}
	t.Logf("✓ Score %.2f (expected %.2f, error %.1f%%)", stats.Score, expected, relErr*100)
}

// AssertBoundsOrdered verifies low ≤ score ≤ high and that the spread is
// within cfg.MaxSpreadPercent.
func AssertBoundsOrdered(t testing.TB, stats RunStatistics, cfg AssertionConfig) {
	t.Helper()

	if stats.ScoreLow > stats.Score || stats.Score > stats.ScoreHigh {
		t.Errorf("Bounds out of order: low=%.2f score=%.2f high=%.2f", stats.ScoreLow, stats.Score, stats.ScoreHigh)
	}
	if stats.LowPercent > cfg.MaxSpreadPercent || stats.HighPercent > cfg.MaxSpreadPercent {
		t.Errorf("Confidence too wide: -%.1f%% / +%.1f%% (max %.1f%%)",
			stats.LowPercent, stats.HighPercent, cfg.MaxSpreadPercent)
	}
}

// PrintRun logs a run summary for debugging.
func PrintRun(t testing.TB, run *Run) {
	t.Helper()

	stats := run.Statistics()
	t.Logf("Run %s (%s): %d frames, %.1f fps", run.ID, run.Mode, run.Timeline.Len(), stats.Frames.FPS)
	t.Logf("  Score: %.2f [%.2f, %.2f] (-%.1f%% / +%.1f%%)",
		stats.Score, stats.ScoreLow, stats.ScoreHigh, stats.LowPercent, stats.HighPercent)
	for _, seg := range stats.Segments {
		t.Logf("  ramp %d %s: %d samples over [%d, %d] → %.2f", seg.Ramp, seg.Phase,
			seg.Samples, seg.MinSample, seg.MaxSample, seg.Score)
	}
}

func markNames(marks []Mark) []string {
	names := make([]string, len(marks))
	for i, m := range marks {
		names[i] = fmt.Sprintf("%s@%d", m.Name, m.Index)
	}
	return names
}
