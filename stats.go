package framebench

import (
	"math"
	"sort"
	"time"
)

// Mean returns the arithmetic mean of values, or 0 for an empty slice.
func Mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	var sum float64
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

// Stdev returns the sample standard deviation of values using the
// computational formula:
//
//	s = sqrt((Σx² − (Σx)²/n) / (n−1))
//
// Fewer than two values carry no observable variance, so the result is 0.
func Stdev(values []float64) float64 {
	n := len(values)
	if n < 2 {
		return 0
	}

	var sum, sumSquares float64
	for _, v := range values {
		sum += v
		sumSquares += v * v
	}

	variance := (sumSquares - sum*sum/float64(n)) / float64(n-1)
	if variance <= 0 {
		// Rounding residue on constant input
		return 0
	}
	return math.Sqrt(variance)
}

// Geomean returns the geometric mean of values.
//
// Each value is raised to 1/n before multiplying so that large inputs do not
// overflow the running product. A single zero makes the result 0.
func Geomean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	root := 1 / float64(len(values))
	product := 1.0
	for _, v := range values {
		if v == 0 {
			return 0
		}
		product *= math.Pow(v, root)
	}
	return product
}

// FrameStatistics summarizes a set of frame lengths.
type FrameStatistics struct {
	Count  int
	Mean   time.Duration
	Stddev time.Duration
	P50    time.Duration
	P95    time.Duration
	P99    time.Duration
	FPS    float64 // Frames per second implied by Mean
}

// CalculateFrameStatistics computes mean, sample deviation and percentile
// frame lengths. Zero-length frames (the first frame of a run) are skipped.
func CalculateFrameStatistics(frameLengths []time.Duration) FrameStatistics {
	sorted := make([]time.Duration, 0, len(frameLengths))
	for _, fl := range frameLengths {
		if fl > 0 {
			sorted = append(sorted, fl)
		}
	}
	if len(sorted) == 0 {
		return FrameStatistics{}
	}

	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i] < sorted[j]
	})

	ms := make([]float64, len(sorted))
	for i, fl := range sorted {
		ms[i] = durationMillis(fl)
	}
	mean := Mean(ms)

	stats := FrameStatistics{
		Count:  len(sorted),
		Mean:   millisDuration(mean),
		Stddev: millisDuration(Stdev(ms)),
		P50:    sorted[len(sorted)*50/100],
		P95:    sorted[len(sorted)*95/100],
		P99:    sorted[len(sorted)*99/100],
	}
	if mean > 0 {
		stats.FPS = 1000 / mean
	}
	return stats
}

// durationMillis converts d to fractional milliseconds.
func durationMillis(d time.Duration) float64 {
	return float64(d) / float64(time.Millisecond)
}

func millisDuration(ms float64) time.Duration {
	return time.Duration(ms * float64(time.Millisecond))
}
