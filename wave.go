package framebench

import "time"

// WaveState is the orchestration state of a WaveController.
type WaveState string

const (
	WaveSearching WaveState = "SEARCHING" // Exponential search is active
	WaveSweeping  WaveState = "SWEEPING"  // Ramp sweep is active
	WaveDone      WaveState = "DONE"      // All ramps completed
)

// WaveController runs RampCount ramps, each an exponential search
// followed by a sweep over the bracket the search found.
//
// State machine:
//
//	SEARCHING --bracket found--> SWEEPING
//	SWEEPING  --sweep over, ramps left--> SEARCHING
//	SWEEPING  --sweep over, last ramp--> DONE
//
// The delegates share the controller's recorder, so every phase appends to
// one chronological timeline. Only the active delegate records.
type WaveController struct {
	cfg       Config
	rec       *recorder
	state     WaveState
	active    phase
	search    *ExponentialController
	ramp      int
	rampCount int
}

// NewWaveController starts in the search phase of ramp 0.
func NewWaveController(cfg Config) *WaveController {
	w := &WaveController{
		cfg:       cfg,
		rec:       newRecorder(max(cfg.InitialComplexity, 1)),
		rampCount: cfg.RampCount(),
	}
	w.startSearch(0)
	return w
}

func (w *WaveController) startSearch(at time.Duration) {
	w.state = WaveSearching
	w.search = newExponential(w.rec, w.cfg)
	w.active = w.search
	w.rec.timeline.Mark(PhaseSearch, w.ramp, at)
}

func (w *WaveController) startSweep(at time.Duration) {
	low, high, _ := w.search.NextComplexityRange()
	w.state = WaveSweeping
	w.active = newRamp(w.rec, low, high, at, w.cfg)
	w.search = nil
	w.rec.timeline.Mark(PhaseSweep, w.ramp, at)
}

// advance performs one transition after the active delegate returned 0.
func (w *WaveController) advance(elapsed time.Duration) {
	switch w.state {
	case WaveSearching:
		w.startSweep(elapsed)
	case WaveSweeping:
		w.ramp++
		if w.ramp >= w.rampCount {
			w.state = WaveDone
			w.active = nil
			return
		}
		w.startSearch(elapsed)
	}
}

func (w *WaveController) record(elapsed time.Duration) {
	if w.state == WaveDone {
		w.rec.record(elapsed) // panics: recorder is terminated
		return
	}
	w.active.record(elapsed)
}

func (w *WaveController) nextComplexity(elapsed time.Duration) int {
	for w.state != WaveDone {
		if next := w.active.nextComplexity(elapsed); next > 0 {
			return next
		}
		w.advance(elapsed)
	}
	return 0
}

// Record appends the frame that just completed through the active delegate
// and moves the state machine forward.
func (w *WaveController) Record(elapsed time.Duration) {
	w.record(elapsed)
	w.rec.request(w.nextComplexity(elapsed))
}

// CurrentFrameComplexity returns the active delegate's request, or 0 once DONE.
func (w *WaveController) CurrentFrameComplexity() int {
	return w.rec.current()
}

// LastFrameLength returns the most recently recorded frame length.
func (w *WaveController) LastFrameLength() time.Duration {
	return w.rec.lastFrameLength
}

// Timeline returns the shared run record.
func (w *WaveController) Timeline() *Timeline {
	return w.rec.timeline
}

// State returns the orchestration state.
func (w *WaveController) State() WaveState {
	return w.state
}

// Ramp returns the index of the current ramp.
func (w *WaveController) Ramp() int {
	return w.ramp
}

// RampCount returns the number of ramps this controller runs.
func (w *WaveController) RampCount() int {
	return w.rampCount
}
