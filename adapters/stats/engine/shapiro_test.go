package engine

import (
	"testing"
)

func TestShapiroWilk_NonNormalSample(t *testing.T) {
	e := NewEngine()

	// Right-skewed sample; W and p agree with the reference AS R94
	// implementation (W=0.90047, p=0.04209).
	x := []float64{0.11, 7.87, 4.61, 10.14, 7.95, 3.14, 0.46, 4.43, 0.21, 4.75,
		0.71, 1.52, 3.24, 0.93, 0.42, 4.97, 9.53, 4.55, 0.47, 6.66}

	w, p, err := e.ShapiroWilk(x)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !aeq(0.900472879318, w, 1e-6) {
		t.Errorf("Expected W = 0.900473, got %v", w)
	}
	if !aeq(0.042089575222, p, 1e-5) {
		t.Errorf("Expected p = 0.042090, got %v", p)
	}
	if p > 0.05 {
		t.Error("Expected rejection of normality at alpha 0.05")
	}
}

func TestShapiroWilk_HeavyTailSmallN(t *testing.T) {
	e := NewEngine()

	// The classical 11-observation weight sample with one extreme value
	x := []float64{148, 154, 158, 160, 161, 162, 166, 170, 182, 195, 236}

	w, p, err := e.ShapiroWilk(x)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !aeq(0.788814694835, w, 1e-6) {
		t.Errorf("Expected W = 0.788815, got %v", w)
	}
	if !aeq(0.006703814057, p, 1e-5) {
		t.Errorf("Expected p = 0.006704, got %v", p)
	}
}

func TestShapiroWilk_NearNormalSample(t *testing.T) {
	e := NewEngine()

	x := []float64{-1.23, 0.42, -0.11, 0.87, -0.65, 1.02, 0.33, -0.48, 0.15, -0.92,
		0.74, -0.27, 0.58, -1.05, 0.21, 0.66, -0.39, 0.09, -0.81, 0.95}

	w, p, err := e.ShapiroWilk(x)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !aeq(0.953017773742, w, 1e-6) {
		t.Errorf("Expected W = 0.953018, got %v", w)
	}
	if !aeq(0.415230678225, p, 1e-4) {
		t.Errorf("Expected p = 0.415231, got %v", p)
	}
	if p <= 0.05 {
		t.Error("Expected no rejection of normality for a symmetric sample")
	}
}

func TestShapiroWilk_ThreeObservations(t *testing.T) {
	e := NewEngine()

	// Perfectly symmetric triple: W=1 and the exact n=3 p-value is 1
	w, p, err := e.ShapiroWilk([]float64{1, 2, 3})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !aeq(1.0, w, 1e-12) {
		t.Errorf("Expected W = 1 for an equispaced triple, got %v", w)
	}
	if !aeq(1.0, p, 1e-9) {
		t.Errorf("Expected p = 1 for an equispaced triple, got %v", p)
	}
}

func TestShapiroWilk_ErrorCases(t *testing.T) {
	e := NewEngine()

	if _, _, err := e.ShapiroWilk([]float64{1, 2}); err == nil {
		t.Error("Expected error for fewer than 3 observations")
	}
	if _, _, err := e.ShapiroWilk([]float64{7, 7, 7, 7}); err == nil {
		t.Error("Expected error for a zero-range sample")
	}
}
