// Package engine executes benchmark runs against a scene.
package engine

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/alexshd/framebench"
	"github.com/alexshd/framebench/internal/config"
	"github.com/alexshd/framebench/internal/metrics"
	"github.com/alexshd/framebench/internal/report"
	"github.com/alexshd/framebench/internal/scene"
	"github.com/alexshd/framebench/internal/sim"
)

// Engine runs cfg.Runs benchmark runs in sequence.
type Engine struct {
	cfg      *config.Config
	logger   *slog.Logger
	metrics  *metrics.Recorder
	timeline *report.TimelineWriter
}

// Option customizes an Engine.
type Option func(*Engine)

// WithMetrics reports frames and scores to rec.
func WithMetrics(rec *metrics.Recorder) Option {
	return func(e *Engine) { e.metrics = rec }
}

// WithTimeline writes every completed run's samples to tw.
func WithTimeline(tw *report.TimelineWriter) Option {
	return func(e *Engine) { e.timeline = tw }
}

// New returns an engine for cfg.
func New(cfg *config.Config, logger *slog.Logger, opts ...Option) *Engine {
	if logger == nil {
		logger = slog.Default()
	}
	e := &Engine{cfg: cfg, logger: logger}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Run executes every run and aggregates the results. When ctx is cancelled
// mid-run, the runs completed so far are returned with the context error.
func (e *Engine) Run(ctx context.Context) (*framebench.Results, error) {
	bench := e.cfg.Benchmark()
	if err := bench.Validate(); err != nil {
		return nil, err
	}

	runs := make([]*framebench.Run, 0, e.cfg.Runs)
	for i := 0; i < e.cfg.Runs; i++ {
		e.logger.Info("starting run",
			"run", i+1,
			"of", e.cfg.Runs,
			"controller", bench.Mode(),
			"scene", e.cfg.Scene)

		timeline, err := e.runOnce(ctx, bench)
		if err != nil {
			if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
				return framebench.NewResults(bench, runs...), err
			}
			return nil, fmt.Errorf("run %d: %w", i+1, err)
		}

		run := framebench.NewRun(timeline, bench)
		stats := run.Statistics()
		e.logger.Info("run scored",
			"run_id", run.ID.String(),
			"score", fmt.Sprintf("%.2f", stats.Score),
			"low", fmt.Sprintf("%.2f", stats.ScoreLow),
			"high", fmt.Sprintf("%.2f", stats.ScoreHigh),
			"segments", len(stats.Segments),
			"fps", fmt.Sprintf("%.1f", stats.Frames.FPS))

		if e.metrics != nil {
			e.metrics.ObserveRun(run)
		}
		if e.timeline != nil {
			if err := e.timeline.WriteRun(run); err != nil {
				return nil, err
			}
		}
		runs = append(runs, run)
	}

	results := framebench.NewResults(bench, runs...)
	if e.metrics != nil {
		e.metrics.ObserveSummary(results.Summary())
	}
	return results, nil
}

func (e *Engine) runOnce(ctx context.Context, bench framebench.Config) (*framebench.Timeline, error) {
	controller, err := framebench.NewController(bench)
	if err != nil {
		return nil, err
	}

	opts := []framebench.AnimatorOption{framebench.WithLogger(e.logger)}
	if e.metrics != nil {
		opts = append(opts, framebench.WithFrameHook(e.metrics.ObserveFrame))
	}

	switch e.cfg.Scene {
	case config.SceneParticles:
		stage := scene.NewParticles(1280, 720, e.cfg.Sim.Seed)
		scheduler := framebench.NewTickerScheduler(bench.TargetFrameRate)
		defer scheduler.Stop()

		completion := framebench.NewAnimator(controller, stage, scheduler, opts...).Run(ctx)
		<-completion.Done()
		return completion.Wait(context.Background())

	default:
		host := sim.NewHost(e.cfg.CostModel())
		completion := framebench.NewAnimator(controller, host, host, opts...).Run(ctx)
		for !completion.Resolved() {
			if !host.Step() {
				break
			}
		}
		if !completion.Resolved() {
			return nil, errors.New("simulated host stopped before the controller finished")
		}
		e.logger.Debug("simulated run finished",
			"frames", host.Frames(),
			"virtual_time", host.Elapsed())
		return completion.Wait(context.Background())
	}
}
