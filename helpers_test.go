package framebench

import (
	"io"
	"log/slog"
	"strconv"
	"testing"
	"time"
)

// refresh is one 60 Hz display interval.
const refresh = time.Second / 60

// vsyncFrames returns a frame length model that presents one refresh up to
// capacity and two refreshes beyond it.
func vsyncFrames(capacity int) func(int) time.Duration {
	return func(complexity int) time.Duration {
		if complexity <= capacity {
			return refresh
		}
		return 2 * refresh
	}
}

func constantFrames(d time.Duration) func(int) time.Duration {
	return func(int) time.Duration { return d }
}

// alternatingFrames returns a, b, a, b, ... regardless of complexity.
func alternatingFrames(a, b time.Duration) func(int) time.Duration {
	frame := 0
	return func(int) time.Duration {
		frame++
		if frame%2 == 0 {
			return b
		}
		return a
	}
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func fmtFloat(v float64, prec int) string {
	return strconv.FormatFloat(v, 'f', prec, 64)
}

// mustPanic fails the test unless fn panics.
func mustPanic(t testing.TB, name string, fn func()) {
	t.Helper()
	defer func() {
		if recover() == nil {
			t.Errorf("Expected %s to panic", name)
		}
	}()
	fn()
}
