package report

import (
	"math"
	"reflect"
	"testing"

	"statkit/domain/dataset"
	"statkit/domain/stats"

	"statkit/internal/errors"
)

// stubEngine returns scripted values and records what it was called with
type stubEngine struct {
	statistic float64
	pValue    float64
	err       error

	lastSamples     [][]float64
	lastAlternative stats.Alternative
	lastCenter      stats.Center
	lastEqualVar    bool
	shapiroCalls    [][]float64
}

func (s *stubEngine) ShapiroWilk(sample []float64) (float64, float64, error) {
	s.shapiroCalls = append(s.shapiroCalls, sample)
	return s.statistic, s.pValue, s.err
}

func (s *stubEngine) Levene(center stats.Center, samples ...[]float64) (float64, float64, error) {
	s.lastCenter = center
	s.lastSamples = samples
	return s.statistic, s.pValue, s.err
}

func (s *stubEngine) TTestInd(x, y []float64, equalVar bool, alternative stats.Alternative) (float64, float64, error) {
	s.lastSamples = [][]float64{x, y}
	s.lastEqualVar = equalVar
	s.lastAlternative = alternative
	return s.statistic, s.pValue, s.err
}

func (s *stubEngine) TTestRel(x, y []float64, alternative stats.Alternative) (float64, float64, error) {
	s.lastSamples = [][]float64{x, y}
	s.lastAlternative = alternative
	return s.statistic, s.pValue, s.err
}

func (s *stubEngine) ANOVAOneWay(samples ...[]float64) (float64, float64, error) {
	s.lastSamples = samples
	return s.statistic, s.pValue, s.err
}

func (s *stubEngine) Wilcoxon(x, y []float64, alternative stats.Alternative) (float64, float64, error) {
	s.lastSamples = [][]float64{x, y}
	s.lastAlternative = alternative
	return s.statistic, s.pValue, s.err
}

func (s *stubEngine) MannWhitneyU(x, y []float64, alternative stats.Alternative) (float64, float64, error) {
	s.lastSamples = [][]float64{x, y}
	s.lastAlternative = alternative
	return s.statistic, s.pValue, s.err
}

func (s *stubEngine) Friedman(samples ...[]float64) (float64, float64, error) {
	s.lastSamples = samples
	return s.statistic, s.pValue, s.err
}

func (s *stubEngine) KruskalWallis(samples ...[]float64) (float64, float64, error) {
	s.lastSamples = samples
	return s.statistic, s.pValue, s.err
}

func twoColumnFrame(t *testing.T, a, b []float64) *dataset.Frame {
	t.Helper()
	frame := dataset.NewFrame()
	if err := frame.AddNumeric("before", a); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := frame.AddNumeric("after", b); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return frame
}

func TestRun_PValueEqualToAlphaRejects(t *testing.T) {
	engine := &stubEngine{statistic: 2.0, pValue: 0.05}
	analyzer := NewAnalyzer(engine)
	frame := twoColumnFrame(t, []float64{1, 2, 3}, []float64{4, 5, 6})

	rep, err := analyzer.Run(stats.TestTTestInd, frame, Options{Alpha: 0.05})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !rep.RejectNull {
		t.Error("Expected p == alpha to reject under the strict greater-than rule")
	}
}

func TestRun_DefaultsApplied(t *testing.T) {
	engine := &stubEngine{statistic: 1, pValue: 0.5}
	analyzer := NewAnalyzer(engine)
	frame := twoColumnFrame(t, []float64{1, 2, 3}, []float64{4, 5, 6})

	rep, err := analyzer.Run(stats.TestTTestInd, frame, Options{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rep.Alpha != stats.DefaultAlpha {
		t.Errorf("Expected default alpha %v, got %v", stats.DefaultAlpha, rep.Alpha)
	}
	if engine.lastAlternative != stats.TwoSided {
		t.Errorf("Expected two-sided default, got %v", engine.lastAlternative)
	}
	if !engine.lastEqualVar {
		t.Error("Expected equal variances assumed by default")
	}
}

func TestRun_IndependentOmissionDropsPerColumn(t *testing.T) {
	engine := &stubEngine{statistic: 1, pValue: 0.5}
	analyzer := NewAnalyzer(engine)
	frame := twoColumnFrame(t,
		[]float64{1, math.NaN(), 3},
		[]float64{4, 5, math.NaN()},
	)

	if _, err := analyzer.Run(stats.TestMannWhitneyU, frame, Options{}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !reflect.DeepEqual(engine.lastSamples[0], []float64{1, 3}) {
		t.Errorf("Expected first sample [1 3], got %v", engine.lastSamples[0])
	}
	if !reflect.DeepEqual(engine.lastSamples[1], []float64{4, 5}) {
		t.Errorf("Expected second sample [4 5], got %v", engine.lastSamples[1])
	}
}

func TestRun_PairedOmissionDropsWholeRows(t *testing.T) {
	engine := &stubEngine{statistic: 1, pValue: 0.5}
	analyzer := NewAnalyzer(engine)
	frame := twoColumnFrame(t,
		[]float64{1, math.NaN(), 3},
		[]float64{4, 5, math.NaN()},
	)

	if _, err := analyzer.Run(stats.TestTTestRel, frame, Options{}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !reflect.DeepEqual(engine.lastSamples[0], []float64{1}) {
		t.Errorf("Expected first sample [1] after row drop, got %v", engine.lastSamples[0])
	}
	if !reflect.DeepEqual(engine.lastSamples[1], []float64{4}) {
		t.Errorf("Expected second sample [4] after row drop, got %v", engine.lastSamples[1])
	}
}

func TestRun_ColumnArity(t *testing.T) {
	engine := &stubEngine{statistic: 1, pValue: 0.5}
	analyzer := NewAnalyzer(engine)

	one := dataset.NewFrame()
	if err := one.AddNumeric("only", []float64{1, 2}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := analyzer.Run(stats.TestTTestInd, one, Options{}); err == nil {
		t.Error("Expected error for a single-column frame")
	}

	three := dataset.NewFrame()
	for _, name := range []string{"a", "b", "c"} {
		if err := three.AddNumeric(name, []float64{1, 2}); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}
	if _, err := analyzer.Run(stats.TestWilcoxon, three, Options{}); err == nil {
		t.Error("Expected error for a pairwise test over three columns")
	}
	if _, err := analyzer.Run(stats.TestFriedman, twoColumnFrame(t, []float64{1, 2}, []float64{3, 4}), Options{}); err == nil {
		t.Error("Expected error for friedman with fewer than three columns")
	}
	if _, err := analyzer.Run(stats.TestType("bogus"), three, Options{}); err == nil {
		t.Error("Expected error for unknown test type")
	}
}

func TestRun_EngineErrorsPropagate(t *testing.T) {
	engine := &stubEngine{err: errors.InsufficientData("too few observations")}
	analyzer := NewAnalyzer(engine)
	frame := twoColumnFrame(t, []float64{1}, []float64{2})

	_, err := analyzer.Run(stats.TestTTestInd, frame, Options{})
	if err == nil {
		t.Fatal("Expected engine error to propagate")
	}
	if errors.GetCode(err) != errors.CodeInsufficientData {
		t.Errorf("Expected insufficient-data code, got %v", errors.GetCode(err))
	}
}

func TestRun_ShapiroPerColumn(t *testing.T) {
	engine := &stubEngine{statistic: 0.95, pValue: 0.20}
	analyzer := NewAnalyzer(engine)
	frame := twoColumnFrame(t, []float64{1, 2, math.NaN(), 4}, []float64{5, 6, 7, 8})

	rep, err := analyzer.Run(stats.TestShapiroWilk, frame, Options{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(rep.Columns) != 2 {
		t.Fatalf("Expected 2 per-column results, got %d", len(rep.Columns))
	}
	if len(engine.shapiroCalls) != 2 {
		t.Fatalf("Expected 2 engine calls, got %d", len(engine.shapiroCalls))
	}
	// NaN dropped per column before the engine sees the sample
	if !reflect.DeepEqual(engine.shapiroCalls[0], []float64{1, 2, 4}) {
		t.Errorf("Expected NaN-free first sample, got %v", engine.shapiroCalls[0])
	}
	for _, col := range rep.Columns {
		if !col.Normal {
			t.Errorf("Expected column %s normal at p=0.20, got not normal", col.Column)
		}
	}
	if rep.RejectNull {
		t.Error("Expected no rejection when every column is normal")
	}
	if rep.PValue != 0.20 {
		t.Errorf("Expected report p-value from the least-normal column, got %v", rep.PValue)
	}
}
