package framebench

import (
	"sync"
	"time"
)

// TickerScheduler emulates a display refresh on the wall clock.
//
// A single goroutine ticks at the refresh interval and runs at most one
// pending FrameFunc per tick. A callback that runs past the next refresh
// makes the ticker drop ticks, so frame lengths come out in whole refresh
// intervals the way they do under vsync.
type TickerScheduler struct {
	interval time.Duration

	mu      sync.Mutex
	pending FrameFunc

	stop     chan struct{}
	stopOnce sync.Once
	wg       sync.WaitGroup
}

// NewTickerScheduler starts a scheduler refreshing at rate frames per second.
func NewTickerScheduler(rate float64) *TickerScheduler {
	if rate <= 0 {
		rate = 60
	}
	s := &TickerScheduler{
		interval: time.Duration(float64(time.Second) / rate),
		stop:     make(chan struct{}),
	}
	s.wg.Add(1)
	go s.loop()
	return s
}

// RequestFrame queues fn for the next refresh, replacing any queued callback.
func (s *TickerScheduler) RequestFrame(fn FrameFunc) {
	s.mu.Lock()
	s.pending = fn
	s.mu.Unlock()
}

// Interval returns the refresh interval.
func (s *TickerScheduler) Interval() time.Duration {
	return s.interval
}

// Stop halts the refresh loop and waits for an in-flight callback to return.
func (s *TickerScheduler) Stop() {
	s.stopOnce.Do(func() {
		close(s.stop)
	})
	s.wg.Wait()
}

func (s *TickerScheduler) loop() {
	defer s.wg.Done()

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-s.stop:
			return
		case now := <-ticker.C:
			s.mu.Lock()
			fn := s.pending
			s.pending = nil
			s.mu.Unlock()

			if fn != nil {
				fn(now)
			}
		}
	}
}
