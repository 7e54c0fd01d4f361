package framebench

import (
	"fmt"
	"time"
)

// Controller decides, frame by frame, how much work to request.
//
// Lifecycle: Record is called once per frame with the time elapsed since
// the run began, then CurrentFrameComplexity is read. A complexity of 0
// ends the run; recording past that point is a programming error and
// panics.
type Controller interface {
	Record(elapsed time.Duration)
	CurrentFrameComplexity() int
	LastFrameLength() time.Duration
	Timeline() *Timeline
}

// NewController builds the controller selected by cfg.
func NewController(cfg Config) (Controller, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if cfg.Mode() == ModeFixed {
		return NewFixedController(cfg.FixedComplexity, cfg), nil
	}
	return NewWaveController(cfg), nil
}

// phase is a controller stage that can be composed under WaveController.
// All phases of one run share a recorder; only the active phase calls
// record.
type phase interface {
	record(elapsed time.Duration)
	nextComplexity(elapsed time.Duration) int
}

// recorder turns per-frame elapsed times into timeline samples.
type recorder struct {
	timeline        *Timeline
	started         bool
	lastElapsed     time.Duration
	lastFrameLength time.Duration
	requested       int // complexity requested for the frame being rendered
	terminated      bool
}

func newRecorder(initial int) *recorder {
	return &recorder{
		timeline:  NewTimeline(),
		requested: initial,
	}
}

func (r *recorder) record(elapsed time.Duration) {
	if r.terminated {
		panic(fmt.Sprintf("framebench: record(%v) on a terminated controller", elapsed))
	}

	var frameLength time.Duration
	if r.started {
		frameLength = elapsed - r.lastElapsed
	}
	r.started = true
	r.lastElapsed = elapsed
	r.lastFrameLength = frameLength
	r.timeline.Append(elapsed, r.requested, frameLength)
}

// request stores the complexity for the next frame; 0 terminates.
func (r *recorder) request(complexity int) {
	r.requested = complexity
	if complexity == 0 {
		r.terminated = true
	}
}

func (r *recorder) current() int {
	if !r.started {
		panic("framebench: complexity queried before the first record")
	}
	if r.terminated {
		return 0
	}
	return r.requested
}
