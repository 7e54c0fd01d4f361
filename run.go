package framebench

import (
	"math"
	"sync"

	"github.com/google/uuid"
)

// SegmentScore is the score of one sweep (or the single fixed segment).
type SegmentScore struct {
	Ramp      int
	Phase     Phase
	Samples   int     // Measured frames in the segment
	MinSample int     // Lowest complexity sampled
	MaxSample int     // Highest complexity sampled
	Score     float64 // Complexity the host sustains at the frame budget
	Low       float64
	High      float64
	Saturated bool // Segment contained frames over budget
}

// RunStatistics is the score of one run with its confidence bounds.
type RunStatistics struct {
	Score       float64
	ScoreLow    float64
	ScoreHigh   float64
	LowPercent  float64 // (Score − ScoreLow) / Score · 100
	HighPercent float64 // (ScoreHigh − Score) / Score · 100
	Frames      FrameStatistics
	Segments    []SegmentScore
}

// Run is one completed timeline and its derived statistics.
type Run struct {
	ID       uuid.UUID
	Mode     string
	Timeline *Timeline

	budget FrameBudget
	once   sync.Once
	stats  RunStatistics
}

// NewRun wraps a completed timeline. The scoring mode follows the phases
// recorded on the timeline: a fixed phase scores as fixed mode, anything
// else as wave mode.
func NewRun(timeline *Timeline, cfg Config) *Run {
	mode := ModeWave
	for _, m := range timeline.Marks() {
		if m.Phase == PhaseFixed {
			mode = ModeFixed
			break
		}
	}
	return &Run{
		ID:       uuid.New(),
		Mode:     mode,
		Timeline: timeline,
		budget:   cfg.Budget(),
	}
}

// Statistics derives the score once; later calls return the cached value.
func (r *Run) Statistics() RunStatistics {
	r.once.Do(func() {
		r.stats = r.calculate()
	})
	return r.stats
}

func (r *Run) calculate() RunStatistics {
	stats := RunStatistics{
		Frames: CalculateFrameStatistics(r.Timeline.FrameLengths()),
	}

	if r.Mode == ModeFixed {
		seg := r.fixedScore()
		stats.Segments = []SegmentScore{seg}
		stats.Score, stats.ScoreLow, stats.ScoreHigh = seg.Score, seg.Low, seg.High
	} else {
		segments := r.Timeline.PhaseSegments(PhaseSweep)
		if len(segments) == 0 {
			// Search-only run: the best sustained probe is all there is.
			segments = r.Timeline.PhaseSegments(PhaseSearch)
		}
		var scores, lows, highs []float64
		for _, s := range segments {
			seg, ok := r.sweepScore(s)
			if !ok {
				continue
			}
			stats.Segments = append(stats.Segments, seg)
			scores = append(scores, seg.Score)
			lows = append(lows, seg.Low)
			highs = append(highs, seg.High)
		}
		stats.Score, stats.ScoreLow, stats.ScoreHigh = Mean(scores), Mean(lows), Mean(highs)
	}

	stats.LowPercent, stats.HighPercent = percentBounds(stats.Score, stats.ScoreLow, stats.ScoreHigh)
	return stats
}

// fixedScore is the last requested complexity, bounded by the relative
// variation of frame length.
func (r *Run) fixedScore() SegmentScore {
	samples := r.Timeline.Samples()
	seg := SegmentScore{Phase: PhaseFixed}

	var frameMs []float64
	for _, s := range samples {
		if s.Complexity > 0 {
			seg.Score = float64(s.Complexity)
			if seg.MinSample == 0 || s.Complexity < seg.MinSample {
				seg.MinSample = s.Complexity
			}
			seg.MaxSample = max(seg.MaxSample, s.Complexity)
		}
		if s.FrameLength > 0 {
			frameMs = append(frameMs, durationMillis(s.FrameLength))
			if r.budget.Classify(s.FrameLength) == BudgetOvershoot {
				seg.Saturated = true
			}
		}
	}
	seg.Samples = len(frameMs)

	var cv float64
	if mean := Mean(frameMs); mean > 0 {
		cv = Stdev(frameMs) / mean
	}
	seg.Low = math.Max(0, seg.Score*(1-cv))
	seg.High = seg.Score * (1 + cv)
	return seg
}

// sweepScore locates the complexity at which frame length leaves the
// budget. The breakpoint of a two-segment fit of frame length against
// complexity is the score; the residual frame length deviation, divided by
// the sweep's overall ms-per-unit slope, is the confidence half-width.
func (r *Run) sweepScore(s Segment) (SegmentScore, bool) {
	seg := SegmentScore{Ramp: s.Mark.Ramp, Phase: s.Mark.Phase}

	var xs, ys, within []float64
	for _, sample := range s.Samples {
		if sample.FrameLength <= 0 || sample.Complexity <= 0 {
			continue
		}
		x := float64(sample.Complexity)
		xs = append(xs, x)
		ys = append(ys, durationMillis(sample.FrameLength))
		if seg.MinSample == 0 || sample.Complexity < seg.MinSample {
			seg.MinSample = sample.Complexity
		}
		seg.MaxSample = max(seg.MaxSample, sample.Complexity)
		if r.budget.Classify(sample.FrameLength) == BudgetOvershoot {
			seg.Saturated = true
		} else {
			within = append(within, x)
		}
	}
	seg.Samples = len(xs)
	if seg.Samples == 0 {
		return seg, false
	}

	lo, hi := float64(seg.MinSample), float64(seg.MaxSample)
	switch {
	case len(within) == len(xs):
		// Never saturated: the host sustained the whole range.
		seg.Score = hi
		seg.Low, seg.High = hi-Stdev(within), hi
	case len(within) == 0:
		seg.Score = lo
		seg.Low, seg.High = 0, lo
	default:
		seg.Score, seg.Low, seg.High = breakpointScore(xs, ys, within)
	}

	seg.Score = clamp(seg.Score, lo, hi)
	seg.Low = math.Max(0, math.Min(seg.Low, seg.Score))
	seg.High = math.Max(seg.High, seg.Score)
	return seg, true
}

func breakpointScore(xs, ys, within []float64) (score, low, high float64) {
	pw, err := FitPiecewise(xs, ys)
	if err != nil {
		score = Mean(within)
		half := Stdev(within)
		return score, score - half, score + half
	}

	score = pw.Breakpoint
	var half float64
	if overall, err := FitLinear(xs, ys); err == nil && overall.Slope > 0 {
		half = pw.ResidualStd / overall.Slope
	} else {
		half = Stdev(within)
	}
	return score, score - half, score + half
}

func percentBounds(score, low, high float64) (lowPct, highPct float64) {
	if score == 0 {
		return 0, 0
	}
	return (score - low) / score * 100, (high - score) / score * 100
}

func clamp(v, lo, hi float64) float64 {
	return math.Min(math.Max(v, lo), hi)
}
