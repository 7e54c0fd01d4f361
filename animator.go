package framebench

import (
	"context"
	"log/slog"
	"sync"
	"time"
)

// Stage renders the workload a controller asks for.
type Stage interface {
	// Tune adds delta units of work (removes them when negative). Tune(0) is a no-op.
	Tune(delta int)
	// Animate advances the stage by one frame.
	Animate(elapsed, lastFrameLength time.Duration)
	// Complexity returns the number of active units.
	Complexity() int
}

// FrameFunc is invoked once per display refresh.
type FrameFunc = func(now time.Time)

// Scheduler delivers display refresh callbacks.
// RequestFrame queues fn for the next refresh; it must not call fn
// synchronously, and callbacks must never overlap.
type Scheduler interface {
	RequestFrame(fn FrameFunc)
}

// Completion is the one-shot result of Animator.Run.
type Completion struct {
	once     sync.Once
	done     chan struct{}
	timeline *Timeline
	err      error
}

func newCompletion() *Completion {
	return &Completion{done: make(chan struct{})}
}

func (c *Completion) resolve(timeline *Timeline, err error) {
	c.once.Do(func() {
		c.timeline = timeline
		c.err = err
		close(c.done)
	})
}

// Done is closed when the run has finished or was cancelled.
func (c *Completion) Done() <-chan struct{} {
	return c.done
}

// Wait blocks until the run finishes or ctx ends. A cancelled run returns
// its partial timeline together with the cancellation cause.
func (c *Completion) Wait(ctx context.Context) (*Timeline, error) {
	select {
	case <-c.done:
		return c.timeline, c.err
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// Resolved reports whether Done is closed.
func (c *Completion) Resolved() bool {
	select {
	case <-c.done:
		return true
	default:
		return false
	}
}

// AnimatorOption customizes an Animator.
type AnimatorOption func(*Animator)

// WithLogger sets the logger used for run lifecycle events.
func WithLogger(logger *slog.Logger) AnimatorOption {
	return func(a *Animator) {
		if logger != nil {
			a.logger = logger
		}
	}
}

// WithFrameHook calls fn with every sample right after it is recorded.
func WithFrameHook(fn func(Sample)) AnimatorOption {
	return func(a *Animator) {
		a.onFrame = fn
	}
}

// Animator drives a Controller and a Stage from display refresh ticks.
//
// Per tick: record the elapsed time, read the requested complexity, stop
// on 0, otherwise tune and animate the stage and request the next tick.
type Animator struct {
	controller Controller
	stage      Stage
	scheduler  Scheduler
	logger     *slog.Logger
	onFrame    func(Sample)

	mu         sync.Mutex
	ctx        context.Context
	start      time.Time
	started    bool
	stopped    bool
	completion *Completion
}

// NewAnimator wires a controller to a stage and a refresh scheduler.
func NewAnimator(controller Controller, stage Stage, scheduler Scheduler, opts ...AnimatorOption) *Animator {
	a := &Animator{
		controller: controller,
		stage:      stage,
		scheduler:  scheduler,
		logger:     slog.Default(),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Run starts the frame loop. The returned Completion resolves exactly once:
// with the controller's timeline when it requests complexity 0, or with
// the partial timeline and ctx.Err() when ctx is cancelled first.
// Calling Run again returns the same Completion.
func (a *Animator) Run(ctx context.Context) *Completion {
	a.mu.Lock()
	if a.completion != nil {
		defer a.mu.Unlock()
		return a.completion
	}
	a.ctx = ctx
	a.completion = newCompletion()
	completion := a.completion
	a.mu.Unlock()

	if ctx.Done() != nil {
		go a.watch(ctx, completion)
	}

	a.logger.Debug("animator started", "timeline_samples", a.controller.Timeline().Len())
	a.scheduler.RequestFrame(a.tick)
	return completion
}

func (a *Animator) watch(ctx context.Context, completion *Completion) {
	select {
	case <-ctx.Done():
		a.mu.Lock()
		defer a.mu.Unlock()
		if !a.stopped {
			a.finish(ctx.Err())
		}
	case <-completion.Done():
	}
}

func (a *Animator) tick(now time.Time) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.stopped {
		return
	}
	if err := a.ctx.Err(); err != nil {
		a.finish(err)
		return
	}

	if !a.started {
		a.start = now
		a.started = true
	}
	elapsed := now.Sub(a.start)

	a.controller.Record(elapsed)
	if a.onFrame != nil {
		if s, ok := a.controller.Timeline().Last(); ok {
			a.onFrame(s)
		}
	}

	complexity := a.controller.CurrentFrameComplexity()
	if complexity == 0 {
		a.finish(nil)
		return
	}

	a.stage.Tune(complexity - a.stage.Complexity())
	a.stage.Animate(elapsed, a.controller.LastFrameLength())
	a.scheduler.RequestFrame(a.tick)
}

// finish resolves the completion. Caller holds a.mu.
func (a *Animator) finish(err error) {
	a.stopped = true
	timeline := a.controller.Timeline()

	if err != nil {
		a.logger.Warn("run cancelled",
			"frames", timeline.Len(),
			"error", err)
	} else {
		var duration time.Duration
		if last, ok := timeline.Last(); ok {
			duration = last.Timestamp
		}
		a.logger.Info("run complete",
			"frames", timeline.Len(),
			"duration", duration,
			"final_complexity", a.stage.Complexity())
	}

	a.completion.resolve(timeline, err)
}
