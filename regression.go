package framebench

import (
	"errors"
	"fmt"
	"math"
	"sort"
)

var (
	// ErrInsufficientData is returned when a fit has fewer points than unknowns.
	ErrInsufficientData = errors.New("framebench: insufficient data")

	// ErrSingularFit is returned when the normal equations have no unique solution,
	// for example when every sample has the same complexity.
	ErrSingularFit = errors.New("framebench: singular fit")
)

// LinearFit is an ordinary least-squares line y = Intercept + Slope·x.
type LinearFit struct {
	Intercept   float64
	Slope       float64
	RSquared    float64 // R²: goodness of fit (1.0 = perfect)
	ResidualStd float64 // Sample standard deviation of residuals
	N           int
}

// FitLinear regresses ys on xs.
//
// Normal equations for y = b0 + b1·x:
//
//	[n    Σx ] [b0]   [Σy ]
//	[Σx   Σx²] [b1] = [Σxy]
//
// Solved with Cramer's rule.
func FitLinear(xs, ys []float64) (LinearFit, error) {
	if len(xs) != len(ys) {
		return LinearFit{}, fmt.Errorf("framebench: fit length mismatch: %d x values, %d y values", len(xs), len(ys))
	}
	if len(xs) < 2 {
		return LinearFit{}, fmt.Errorf("%w: need at least 2 points, got %d", ErrInsufficientData, len(xs))
	}

	var sumX, sumY, sumXX, sumXY float64
	n := float64(len(xs))
	for i := range xs {
		sumX += xs[i]
		sumY += ys[i]
		sumXX += xs[i] * xs[i]
		sumXY += xs[i] * ys[i]
	}

	det := n*sumXX - sumX*sumX
	if math.Abs(det) < 1e-10 {
		return LinearFit{}, ErrSingularFit
	}

	b0 := (sumY*sumXX - sumX*sumXY) / det
	b1 := (n*sumXY - sumX*sumY) / det

	meanY := sumY / n
	residuals := make([]float64, len(xs))
	var ssRes, ssTot float64
	for i := range xs {
		r := ys[i] - (b0 + b1*xs[i])
		residuals[i] = r
		ssRes += r * r
		ssTot += (ys[i] - meanY) * (ys[i] - meanY)
	}

	rSquared := 1.0
	if ssTot > 0 {
		rSquared = 1 - ssRes/ssTot
	}

	return LinearFit{
		Intercept:   b0,
		Slope:       b1,
		RSquared:    rSquared,
		ResidualStd: Stdev(residuals),
		N:           len(xs),
	}, nil
}

// Predict returns the fitted y at x.
func (f LinearFit) Predict(x float64) float64 {
	return f.Intercept + f.Slope*x
}

// SolveX returns the x at which the line reaches y.
// A flat line never reaches a different y, so the result is NaN.
func (f LinearFit) SolveX(y float64) float64 {
	if f.Slope == 0 {
		return math.NaN()
	}
	return (y - f.Intercept) / f.Slope
}

// PiecewiseFit is a two-segment least-squares fit with a breakpoint.
// Left models the region the host sustains, Right the saturated region.
type PiecewiseFit struct {
	Left        LinearFit
	Right       LinearFit
	Breakpoint  float64 // x where the two segments meet
	Split       int     // Index of the first point assigned to Right
	SSE         float64 // Sum of squared residuals over both segments
	ResidualStd float64 // Sample standard deviation of all residuals
}

// FitPiecewise finds the split of (xs, ys) into two contiguous segments,
// ordered by x, whose independent line fits minimize the total squared
// error. Each segment gets at least two points. A segment whose x values
// are all equal is fitted with a flat line through its mean.
func FitPiecewise(xs, ys []float64) (PiecewiseFit, error) {
	if len(xs) != len(ys) {
		return PiecewiseFit{}, fmt.Errorf("framebench: fit length mismatch: %d x values, %d y values", len(xs), len(ys))
	}
	n := len(xs)
	if n < 4 {
		return PiecewiseFit{}, fmt.Errorf("%w: need at least 4 points, got %d", ErrInsufficientData, n)
	}

	idx := make([]int, n)
	for i := range idx {
		idx[i] = i
	}
	sort.SliceStable(idx, func(a, b int) bool { return xs[idx[a]] < xs[idx[b]] })
	sx := make([]float64, n)
	sy := make([]float64, n)
	for i, j := range idx {
		sx[i] = xs[j]
		sy[i] = ys[j]
	}

	best := PiecewiseFit{SSE: math.Inf(1)}
	for k := 2; k <= n-2; k++ {
		left := fitOrFlat(sx[:k], sy[:k])
		right := fitOrFlat(sx[k:], sy[k:])
		sse := sumSquaredResiduals(left, sx[:k], sy[:k]) + sumSquaredResiduals(right, sx[k:], sy[k:])
		if sse < best.SSE {
			best = PiecewiseFit{Left: left, Right: right, Split: k, SSE: sse}
		}
	}

	k := best.Split
	best.Breakpoint = (sx[k-1] + sx[k]) / 2
	if best.Left.Slope != best.Right.Slope {
		x := (best.Right.Intercept - best.Left.Intercept) / (best.Left.Slope - best.Right.Slope)
		if x >= sx[k-1] && x <= sx[k] {
			best.Breakpoint = x
		}
	}

	residuals := make([]float64, 0, n)
	for i := range sx {
		fit := best.Left
		if i >= k {
			fit = best.Right
		}
		residuals = append(residuals, sy[i]-fit.Predict(sx[i]))
	}
	best.ResidualStd = Stdev(residuals)

	return best, nil
}

func fitOrFlat(xs, ys []float64) LinearFit {
	fit, err := FitLinear(xs, ys)
	if err == nil {
		return fit
	}
	return LinearFit{
		Intercept:   Mean(ys),
		ResidualStd: Stdev(ys),
		N:           len(ys),
	}
}

func sumSquaredResiduals(fit LinearFit, xs, ys []float64) float64 {
	var sse float64
	for i := range xs {
		r := ys[i] - fit.Predict(xs[i])
		sse += r * r
	}
	return sse
}
