package framebench

// Results aggregates runs into one score.
//
// Scores of different runs are ratios of workload, so they combine
// multiplicatively: the aggregate is the geometric mean of run scores, and
// the bounds are the geometric means of run bounds.
type Results struct {
	Config Config
	runs   []*Run
}

// Summary is the externally consumed result.
type Summary struct {
	Runs        int     `json:"runs" yaml:"runs"`
	Score       float64 `json:"score" yaml:"score"`
	ScoreLow    float64 `json:"score_low" yaml:"score_low"`
	ScoreHigh   float64 `json:"score_high" yaml:"score_high"`
	LowPercent  float64 `json:"low_percent" yaml:"low_percent"`
	HighPercent float64 `json:"high_percent" yaml:"high_percent"`
}

// NewResults aggregates runs. The slice is copied.
func NewResults(cfg Config, runs ...*Run) *Results {
	out := make([]*Run, len(runs))
	copy(out, runs)
	return &Results{Config: cfg, runs: out}
}

// Runs returns the aggregated runs in order.
func (r *Results) Runs() []*Run {
	out := make([]*Run, len(r.runs))
	copy(out, r.runs)
	return out
}

func (r *Results) column(pick func(RunStatistics) float64) []float64 {
	values := make([]float64, len(r.runs))
	for i, run := range r.runs {
		values[i] = pick(run.Statistics())
	}
	return values
}

// Score is the geometric mean of run scores.
func (r *Results) Score() float64 {
	return Geomean(r.column(func(s RunStatistics) float64 { return s.Score }))
}

// ScoreLow is the geometric mean of run lower bounds.
func (r *Results) ScoreLow() float64 {
	return Geomean(r.column(func(s RunStatistics) float64 { return s.ScoreLow }))
}

// ScoreHigh is the geometric mean of run upper bounds.
func (r *Results) ScoreHigh() float64 {
	return Geomean(r.column(func(s RunStatistics) float64 { return s.ScoreHigh }))
}

// LowPercent is the lower bound as a percentage below Score.
func (r *Results) LowPercent() float64 {
	low, _ := percentBounds(r.Score(), r.ScoreLow(), r.ScoreHigh())
	return low
}

// HighPercent is the upper bound as a percentage above Score.
func (r *Results) HighPercent() float64 {
	_, high := percentBounds(r.Score(), r.ScoreLow(), r.ScoreHigh())
	return high
}

// Summary collects score and bounds.
func (r *Results) Summary() Summary {
	score, low, high := r.Score(), r.ScoreLow(), r.ScoreHigh()
	lowPct, highPct := percentBounds(score, low, high)
	return Summary{
		Runs:        len(r.runs),
		Score:       score,
		ScoreLow:    low,
		ScoreHigh:   high,
		LowPercent:  lowPct,
		HighPercent: highPct,
	}
}
