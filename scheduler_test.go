package framebench

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"
)

// countingStage tracks tune and animate calls without rendering.
type countingStage struct {
	complexity int
	frames     int
}

func (s *countingStage) Tune(delta int)              { s.complexity += delta }
func (s *countingStage) Animate(_, _ time.Duration) { s.frames++ }
func (s *countingStage) Complexity() int            { return s.complexity }

func TestTickerScheduler_DrivesAnimator(t *testing.T) {
	scheduler := NewTickerScheduler(200)
	defer scheduler.Stop()

	cfg := DefaultConfig()
	cfg.TestLength = 100 * time.Millisecond
	stage := &countingStage{}
	c := NewFixedController(3, cfg)

	completion := NewAnimator(c, stage, scheduler, WithLogger(discardLogger())).Run(context.Background())

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	tl, err := completion.Wait(ctx)
	if err != nil {
		t.Fatalf("Run did not finish: %v", err)
	}

	if tl.Len() < 3 {
		t.Errorf("Expected several frames in 100ms at 200 Hz, got %d", tl.Len())
	}
	if stage.complexity != 3 {
		t.Errorf("Expected stage complexity 3, got %d", stage.complexity)
	}
	AssertChronological(t, tl)

	t.Logf("✓ %d frames, %.1f fps", tl.Len(), CalculateFrameStatistics(tl.FrameLengths()).FPS)
}

func TestTickerScheduler_Cancel(t *testing.T) {
	scheduler := NewTickerScheduler(200)
	defer scheduler.Stop()

	cfg := DefaultConfig()
	cfg.TestLength = time.Hour
	c := NewFixedController(1, cfg)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	completion := NewAnimator(c, &countingStage{}, scheduler, WithLogger(discardLogger())).Run(ctx)

	waitCtx, done := context.WithTimeout(context.Background(), 5*time.Second)
	defer done()
	if _, err := completion.Wait(waitCtx); !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("Expected DeadlineExceeded, got %v", err)
	}
}

func TestTickerScheduler_StopIsIdempotent(t *testing.T) {
	scheduler := NewTickerScheduler(1000)
	var calls atomic.Int32
	scheduler.RequestFrame(func(time.Time) { calls.Add(1) })

	time.Sleep(20 * time.Millisecond)
	scheduler.Stop()
	scheduler.Stop()

	if got := calls.Load(); got != 1 {
		t.Errorf("Expected a single callback for a single request, got %d", got)
	}
	if scheduler.Interval() != time.Millisecond {
		t.Errorf("Expected 1ms interval, got %v", scheduler.Interval())
	}
}
