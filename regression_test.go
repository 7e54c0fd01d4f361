package framebench

import (
	"errors"
	"math"
	"testing"
)

func TestFitLinear_PerfectLine(t *testing.T) {
	xs := []float64{1, 2, 3, 4, 5}
	ys := make([]float64, len(xs))
	for i, x := range xs {
		ys[i] = 2 + 3*x
	}

	fit, err := FitLinear(xs, ys)
	if err != nil {
		t.Fatalf("FitLinear failed: %v", err)
	}

	if math.Abs(fit.Intercept-2) > 1e-9 {
		t.Errorf("Expected intercept 2, got %f", fit.Intercept)
	}
	if math.Abs(fit.Slope-3) > 1e-9 {
		t.Errorf("Expected slope 3, got %f", fit.Slope)
	}
	if math.Abs(fit.RSquared-1) > 1e-9 {
		t.Errorf("Expected R² = 1, got %f", fit.RSquared)
	}
	if fit.N != 5 {
		t.Errorf("Expected N = 5, got %d", fit.N)
	}
	if got := fit.Predict(10); math.Abs(got-32) > 1e-9 {
		t.Errorf("Predict(10): expected 32, got %f", got)
	}
	if got := fit.SolveX(17); math.Abs(got-5) > 1e-9 {
		t.Errorf("SolveX(17): expected 5, got %f", got)
	}

	t.Logf("✓ y = %.3f + %.3f·x (R² = %.4f)", fit.Intercept, fit.Slope, fit.RSquared)
}

func TestFitLinear_NoisyLine(t *testing.T) {
	xs := []float64{1, 2, 3, 4, 5, 6, 7, 8}
	noise := []float64{0.1, -0.2, 0.15, -0.05, 0.2, -0.1, -0.15, 0.05}
	ys := make([]float64, len(xs))
	for i, x := range xs {
		ys[i] = 10 + 0.5*x + noise[i]
	}

	fit, err := FitLinear(xs, ys)
	if err != nil {
		t.Fatalf("FitLinear failed: %v", err)
	}
	if math.Abs(fit.Slope-0.5) > 0.1 {
		t.Errorf("Expected slope near 0.5, got %f", fit.Slope)
	}
	if fit.RSquared < 0.9 || fit.RSquared > 1 {
		t.Errorf("Expected R² in [0.9, 1], got %f", fit.RSquared)
	}
	if fit.ResidualStd <= 0 {
		t.Errorf("Expected positive residual deviation, got %f", fit.ResidualStd)
	}
}

func TestFitLinear_Errors(t *testing.T) {
	if _, err := FitLinear([]float64{1}, []float64{1}); !errors.Is(err, ErrInsufficientData) {
		t.Errorf("Expected ErrInsufficientData for one point, got %v", err)
	}
	if _, err := FitLinear([]float64{3, 3, 3}, []float64{1, 2, 3}); !errors.Is(err, ErrSingularFit) {
		t.Errorf("Expected ErrSingularFit for identical x values, got %v", err)
	}
	if _, err := FitLinear([]float64{1, 2}, []float64{1}); err == nil {
		t.Error("Expected error for mismatched lengths")
	}
}

func TestLinearFit_SolveXFlat(t *testing.T) {
	fit := LinearFit{Intercept: 4}
	if got := fit.SolveX(5); !math.IsNaN(got) {
		t.Errorf("Expected NaN for a flat line, got %f", got)
	}
}

func TestFitPiecewise_VsyncStep(t *testing.T) {
	// One refresh up to 10 units, two refreshes beyond.
	var xs, ys []float64
	for x := 1; x <= 20; x++ {
		xs = append(xs, float64(x))
		y := 16.67
		if x > 10 {
			y = 33.33
		}
		ys = append(ys, y)
	}

	pw, err := FitPiecewise(xs, ys)
	if err != nil {
		t.Fatalf("FitPiecewise failed: %v", err)
	}

	if pw.Split != 10 {
		t.Errorf("Expected split at index 10, got %d", pw.Split)
	}
	if pw.Breakpoint < 10 || pw.Breakpoint > 11 {
		t.Errorf("Expected breakpoint in [10, 11], got %f", pw.Breakpoint)
	}
	if pw.SSE > 1e-9 {
		t.Errorf("Expected near-zero SSE for a clean step, got %g", pw.SSE)
	}

	t.Logf("✓ Breakpoint %.2f (split %d)", pw.Breakpoint, pw.Split)
}

func TestFitPiecewise_Hinge(t *testing.T) {
	// Flat until 50, then rising 0.5 per unit: the lines meet at 50.
	var xs, ys []float64
	for x := 10; x <= 100; x += 5 {
		xs = append(xs, float64(x))
		y := 16.0
		if x > 50 {
			y = 16 + 0.5*float64(x-50)
		}
		ys = append(ys, y)
	}

	pw, err := FitPiecewise(xs, ys)
	if err != nil {
		t.Fatalf("FitPiecewise failed: %v", err)
	}
	if math.Abs(pw.Breakpoint-50) > 5 {
		t.Errorf("Expected breakpoint near 50, got %f", pw.Breakpoint)
	}
	if math.Abs(pw.Right.Slope-0.5) > 0.05 {
		t.Errorf("Expected right slope near 0.5, got %f", pw.Right.Slope)
	}
}

func TestFitPiecewise_UnsortedInput(t *testing.T) {
	xs := []float64{8, 1, 6, 3, 2, 7, 5, 4}
	ys := make([]float64, len(xs))
	for i, x := range xs {
		ys[i] = 1
		if x > 4 {
			ys[i] = 2
		}
	}

	pw, err := FitPiecewise(xs, ys)
	if err != nil {
		t.Fatalf("FitPiecewise failed: %v", err)
	}
	if pw.Breakpoint < 4 || pw.Breakpoint > 5 {
		t.Errorf("Expected breakpoint in [4, 5], got %f", pw.Breakpoint)
	}
}

func TestFitPiecewise_RepeatedComplexity(t *testing.T) {
	// Sweeps often hold a level for several frames.
	xs := []float64{1, 1, 1, 2, 2, 2, 3, 3, 3}
	ys := []float64{16, 16, 16, 16, 16, 16, 33, 33, 33}

	pw, err := FitPiecewise(xs, ys)
	if err != nil {
		t.Fatalf("FitPiecewise failed: %v", err)
	}
	if pw.Breakpoint < 2 || pw.Breakpoint > 3 {
		t.Errorf("Expected breakpoint in [2, 3], got %f", pw.Breakpoint)
	}
}

func TestFitPiecewise_InsufficientData(t *testing.T) {
	_, err := FitPiecewise([]float64{1, 2, 3}, []float64{1, 2, 3})
	if !errors.Is(err, ErrInsufficientData) {
		t.Errorf("Expected ErrInsufficientData, got %v", err)
	}
}
