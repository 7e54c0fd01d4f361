// Package framebench measures how much rendering work a host sustains at a
// target frame rate and reduces the measurement to one comparable score.
//
// # Overview
//
// A Controller decides, frame by frame, how much work (complexity) to
// request from a Stage. An Animator feeds the controller one measured
// frame per display refresh until the controller asks for complexity 0.
// The recorded Timeline becomes a Run, and Runs aggregate into Results.
//
//	Animator → Controller.Record → CurrentFrameComplexity → Stage.Tune/Animate
//	         → (next refresh) → … → Timeline → Run.Statistics → Results.Score
//
// # Controllers
//
//   - FixedController       - holds one complexity for the test length
//   - ExponentialController - doubles complexity until a frame overshoots the budget
//   - RampController        - sweeps a bracket from high to low over the ramp length
//   - WaveController        - repeats search-then-sweep for TestLength/RampLength ramps
//
// # Quick Start
//
//	cfg := framebench.DefaultConfig()
//	controller, err := framebench.NewController(cfg)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	scheduler := framebench.NewTickerScheduler(cfg.TargetFrameRate)
//	defer scheduler.Stop()
//
//	completion := framebench.NewAnimator(controller, stage, scheduler).Run(ctx)
//	timeline, err := completion.Wait(ctx)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	results := framebench.NewResults(cfg, framebench.NewRun(timeline, cfg))
//	fmt.Printf("Score: %.2f ±%.1f%%\n", results.Score(), results.HighPercent())
//
// # The frame budget
//
// At 60 fps a frame has 16.67 ms. Under vsync a host that keeps up
// presents frames of exactly one refresh; a host that falls behind
// presents two. A frame counts as an overshoot once it exceeds the target
// by OvershootRatio (20% by default).
//
// # Scoring
//
// Fixed runs score the held complexity, bounded by the relative deviation
// of frame length. Wave runs fit frame length against complexity in every
// sweep with a two-segment regression; the breakpoint is where the host
// stops keeping up, and the residual deviation divided by the sweep's
// ms-per-unit slope gives the confidence half-width. Results combine runs
// with the geometric mean.
//
// # Testing
//
// The assertion helpers drive controllers without a display:
//
//	func TestMyController(t *testing.T) {
//	    c := framebench.NewWaveController(cfg)
//	    framebench.DriveController(t, c, frameLength, framebench.DefaultAssertionConfig())
//	    framebench.AssertChronological(t, c.Timeline())
//	    framebench.AssertWaveTransitions(t, c.Timeline(), cfg.RampCount())
//	}
package framebench
