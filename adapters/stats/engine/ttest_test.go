package engine

import (
	"math"
	"testing"

	"statkit/domain/stats"
)

// aeq reports approximate equality to within tol
func aeq(want, got, tol float64) bool {
	if math.IsNaN(want) || math.IsNaN(got) {
		return false
	}
	return math.Abs(want-got) <= tol
}

func TestTTestInd_PooledVariance(t *testing.T) {
	e := NewEngine()
	s1 := []float64{2, 1, 3, 4}
	s2 := []float64{6, 5, 7, 9}

	tStat, p, err := e.TTestInd(s1, s2, true, stats.TwoSided)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !aeq(-3.9703446152237674, tStat, 1e-10) {
		t.Errorf("Expected t = -3.970344..., got %v", tStat)
	}
	if !aeq(0.0073640592242113214, p, 1e-9) {
		t.Errorf("Expected p = 0.007364..., got %v", p)
	}

	// Identical samples give t=0, p=1
	tStat, p, err = e.TTestInd(s1, s1, true, stats.TwoSided)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if tStat != 0 || !aeq(1.0, p, 1e-12) {
		t.Errorf("Expected t=0 p=1 for identical samples, got t=%v p=%v", tStat, p)
	}
}

func TestTTestInd_Welch(t *testing.T) {
	e := NewEngine()
	s1 := []float64{2, 1, 3, 4}
	s2 := []float64{6, 5, 7, 9}

	tStat, p, err := e.TTestInd(s1, s2, false, stats.TwoSided)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !aeq(-3.9703446152237674, tStat, 1e-10) {
		t.Errorf("Expected t = -3.970344..., got %v", tStat)
	}
	if !aeq(0.0085128631313781695, p, 1e-9) {
		t.Errorf("Expected p = 0.008512..., got %v", p)
	}
}

func TestTTestInd_Alternatives(t *testing.T) {
	e := NewEngine()
	s1 := []float64{2, 1, 3, 4}
	s2 := []float64{6, 5, 7, 9}

	_, pLess, err := e.TTestInd(s1, s2, true, stats.Less)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !aeq(0.003682029612, pLess, 1e-9) {
		t.Errorf("Expected one-sided less p = 0.003682..., got %v", pLess)
	}

	_, pGreater, err := e.TTestInd(s1, s2, true, stats.Greater)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !aeq(0.996317970388, pGreater, 1e-9) {
		t.Errorf("Expected one-sided greater p = 0.996317..., got %v", pGreater)
	}

	if _, _, err := e.TTestInd(s1, s2, true, stats.Alternative("sideways")); err == nil {
		t.Error("Expected error for unknown alternative")
	}
}

func TestTTestRel(t *testing.T) {
	e := NewEngine()
	s1 := []float64{2, 1, 3, 4}
	s2 := []float64{6, 5, 7, 9}

	tStat, p, err := e.TTestRel(s1, s2, stats.TwoSided)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !aeq(-17.0, tStat, 1e-10) {
		t.Errorf("Expected t = -17, got %v", tStat)
	}
	if !aeq(0.00044334353831207749, p, 1e-10) {
		t.Errorf("Expected p = 0.000443..., got %v", p)
	}
}

func TestTTest_ErrorCases(t *testing.T) {
	e := NewEngine()

	if _, _, err := e.TTestInd([]float64{1}, []float64{2, 3}, true, stats.TwoSided); err == nil {
		t.Error("Expected error for sample with fewer than 2 observations")
	}
	if _, _, err := e.TTestInd([]float64{5, 5, 5}, []float64{5, 5, 5}, true, stats.TwoSided); err == nil {
		t.Error("Expected error for zero-variance samples")
	}
	if _, _, err := e.TTestRel([]float64{1, 2}, []float64{1, 2, 3}, stats.TwoSided); err == nil {
		t.Error("Expected error for unequal paired lengths")
	}
	if _, _, err := e.TTestRel([]float64{3, 4, 5}, []float64{1, 2, 3}, stats.TwoSided); err == nil {
		t.Error("Expected error when all differences are equal")
	}
}
