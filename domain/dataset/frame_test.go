package dataset

import (
	"math"
	"reflect"
	"testing"
)

func TestFrame_AddAndLookup(t *testing.T) {
	f := NewFrame()
	if err := f.AddNumeric("height", []float64{1.70, 1.82}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := f.AddCategorical("group", []string{"a", "b"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if got := f.ColumnNames(); !reflect.DeepEqual(got, []string{"height", "group"}) {
		t.Errorf("Expected insertion order [height group], got %v", got)
	}
	if f.ColumnCount() != 2 {
		t.Errorf("Expected 2 columns, got %d", f.ColumnCount())
	}

	values, err := f.Numeric("height")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !reflect.DeepEqual(values, []float64{1.70, 1.82}) {
		t.Errorf("Expected height values, got %v", values)
	}

	if _, err := f.Numeric("group"); err == nil {
		t.Error("Expected error reading a categorical column as numeric")
	}
	if _, err := f.Column("missing"); err == nil {
		t.Error("Expected error for unknown column")
	}
}

func TestFrame_DuplicateName(t *testing.T) {
	f := NewFrame()
	if err := f.AddNumeric("x", []float64{1}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := f.AddNumeric("x", []float64{2}); err == nil {
		t.Error("Expected error for duplicate column name")
	}
	if err := f.AddCategorical("", []string{"a"}); err == nil {
		t.Error("Expected error for empty column name")
	}
}

func TestFromColumns_InfersKind(t *testing.T) {
	f, err := FromColumns([]Column{
		{Name: "score", Values: []float64{3, 4}},
		{Name: "tier", Labels: []string{"low", "high"}},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	score, err := f.Column("score")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if score.Kind != KindNumeric {
		t.Errorf("Expected numeric kind, got %v", score.Kind)
	}
	tier, err := f.Column("tier")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if tier.Kind != KindCategorical {
		t.Errorf("Expected categorical kind, got %v", tier.Kind)
	}

	if _, err := FromColumns([]Column{{Name: "bad", Kind: "complex"}}); err == nil {
		t.Error("Expected error for unknown column kind")
	}
}

func TestCategorical_FormatsNumericValues(t *testing.T) {
	f := NewFrame()
	if err := f.AddNumeric("code", []float64{1, 2.5, math.NaN(), 3}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	labels, err := f.Categorical("code")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []string{"1", "2.5", "", "3"}
	if !reflect.DeepEqual(labels, want) {
		t.Errorf("Expected labels %v, got %v", want, labels)
	}
}

func TestSamples_NumericOnly(t *testing.T) {
	f := NewFrame()
	if err := f.AddNumeric("a", []float64{1, 2}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := f.AddCategorical("label", []string{"x", "y"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := f.AddNumeric("b", []float64{3, 4}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	samples := f.Samples()
	if len(samples) != 2 {
		t.Fatalf("Expected 2 numeric samples, got %d", len(samples))
	}
	if !reflect.DeepEqual(samples[0], []float64{1, 2}) || !reflect.DeepEqual(samples[1], []float64{3, 4}) {
		t.Errorf("Expected numeric columns in insertion order, got %v", samples)
	}
}

func TestOmitNaN(t *testing.T) {
	got := OmitNaN([]float64{1, math.NaN(), 3, math.NaN()})
	if !reflect.DeepEqual(got, []float64{1, 3}) {
		t.Errorf("Expected [1 3], got %v", got)
	}
	if got := OmitNaN(nil); len(got) != 0 {
		t.Errorf("Expected empty result for nil input, got %v", got)
	}
}

func TestOmitIncompleteRows(t *testing.T) {
	a := []float64{1, math.NaN(), 3, 4}
	b := []float64{10, 20, math.NaN(), 40}

	out, err := OmitIncompleteRows(a, b)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !reflect.DeepEqual(out[0], []float64{1, 4}) {
		t.Errorf("Expected first sample [1 4], got %v", out[0])
	}
	if !reflect.DeepEqual(out[1], []float64{10, 40}) {
		t.Errorf("Expected second sample [10 40], got %v", out[1])
	}

	if _, err := OmitIncompleteRows([]float64{1, 2}, []float64{1}); err == nil {
		t.Error("Expected error for mismatched sample lengths")
	}
}
