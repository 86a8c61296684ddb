package dataset

import (
	"fmt"
	"math"
)

// ColumnKind distinguishes numeric sample columns from categorical columns
type ColumnKind string

const (
	KindNumeric     ColumnKind = "numeric"
	KindCategorical ColumnKind = "categorical"
)

// Column is one named column of a Frame. Exactly one of Values/Labels is
// populated, per Kind. NaN marks a missing numeric value; the empty string
// marks a missing label.
type Column struct {
	Name   string     `json:"name"`
	Kind   ColumnKind `json:"kind"`
	Values []float64  `json:"values,omitempty"`
	Labels []string   `json:"labels,omitempty"`
}

// Len returns the column's row count
func (c Column) Len() int {
	if c.Kind == KindCategorical {
		return len(c.Labels)
	}
	return len(c.Values)
}

// Frame is the canonical input for all statistical computation: an ordered
// set of named columns. Analysis code treats it as read-only; columns are
// never mutated, and missing values are preserved as stored (omission is
// the engine's concern).
type Frame struct {
	columns []Column
	index   map[string]int
}

// NewFrame creates an empty frame
func NewFrame() *Frame {
	return &Frame{index: make(map[string]int)}
}

// FromColumns builds a frame from decoded columns, e.g. an API payload.
// A column with no labels is taken as numeric.
func FromColumns(columns []Column) (*Frame, error) {
	f := NewFrame()
	for _, col := range columns {
		kind := col.Kind
		if kind == "" {
			kind = KindNumeric
			if len(col.Labels) > 0 {
				kind = KindCategorical
			}
		}
		switch kind {
		case KindNumeric:
			if err := f.AddNumeric(col.Name, col.Values); err != nil {
				return nil, err
			}
		case KindCategorical:
			if err := f.AddCategorical(col.Name, col.Labels); err != nil {
				return nil, err
			}
		default:
			return nil, fmt.Errorf("unknown column kind %q", kind)
		}
	}
	return f, nil
}

// AddNumeric appends a numeric column. Column names must be unique.
func (f *Frame) AddNumeric(name string, values []float64) error {
	return f.add(Column{Name: name, Kind: KindNumeric, Values: values})
}

// AddCategorical appends a categorical column. Column names must be unique.
func (f *Frame) AddCategorical(name string, labels []string) error {
	return f.add(Column{Name: name, Kind: KindCategorical, Labels: labels})
}

func (f *Frame) add(col Column) error {
	if col.Name == "" {
		return fmt.Errorf("column name must not be empty")
	}
	if _, exists := f.index[col.Name]; exists {
		return fmt.Errorf("column %q already exists", col.Name)
	}
	f.index[col.Name] = len(f.columns)
	f.columns = append(f.columns, col)
	return nil
}

// ColumnNames returns the column names in insertion order
func (f *Frame) ColumnNames() []string {
	names := make([]string, len(f.columns))
	for i, col := range f.columns {
		names[i] = col.Name
	}
	return names
}

// ColumnCount returns the number of columns
func (f *Frame) ColumnCount() int {
	return len(f.columns)
}

// Column returns the named column
func (f *Frame) Column(name string) (Column, error) {
	i, ok := f.index[name]
	if !ok {
		return Column{}, fmt.Errorf("column %q not found", name)
	}
	return f.columns[i], nil
}

// Numeric returns the values of the named numeric column
func (f *Frame) Numeric(name string) ([]float64, error) {
	col, err := f.Column(name)
	if err != nil {
		return nil, err
	}
	if col.Kind != KindNumeric {
		return nil, fmt.Errorf("column %q is not numeric", name)
	}
	return col.Values, nil
}

// Categorical returns the labels of the named column. Numeric columns are
// allowed: their values are formatted, so a column of small integer codes
// can feed the frequency table directly.
func (f *Frame) Categorical(name string) ([]string, error) {
	col, err := f.Column(name)
	if err != nil {
		return nil, err
	}
	if col.Kind == KindCategorical {
		return col.Labels, nil
	}
	labels := make([]string, 0, len(col.Values))
	for _, v := range col.Values {
		if math.IsNaN(v) {
			labels = append(labels, "")
			continue
		}
		labels = append(labels, formatNumericLabel(v))
	}
	return labels, nil
}

// Samples returns every numeric column's values in insertion order. This is
// the positional-argument form the test routines consume: each column is
// one independent sample or group.
func (f *Frame) Samples() [][]float64 {
	samples := make([][]float64, 0, len(f.columns))
	for _, col := range f.columns {
		if col.Kind == KindNumeric {
			samples = append(samples, col.Values)
		}
	}
	return samples
}

func formatNumericLabel(v float64) string {
	if v == math.Trunc(v) && math.Abs(v) < 1e15 {
		return fmt.Sprintf("%d", int64(v))
	}
	return fmt.Sprintf("%g", v)
}

// ============================================================================
// MISSING-VALUE POLICIES
// ============================================================================

// OmitNaN returns a copy of the sample with NaN entries removed. This is the
// per-column omit policy used by the independent-sample tests.
func OmitNaN(values []float64) []float64 {
	out := make([]float64, 0, len(values))
	for _, v := range values {
		if !math.IsNaN(v) {
			out = append(out, v)
		}
	}
	return out
}

// OmitIncompleteRows drops any row where at least one sample holds NaN and
// returns the aligned remainders. This is the pairwise omit policy used by
// the paired and repeated-measures tests, so row alignment survives the
// drop. All samples must share a length.
func OmitIncompleteRows(samples ...[]float64) ([][]float64, error) {
	if len(samples) == 0 {
		return nil, nil
	}
	n := len(samples[0])
	for _, s := range samples[1:] {
		if len(s) != n {
			return nil, fmt.Errorf("paired samples must share a length: got %d and %d", n, len(s))
		}
	}

	out := make([][]float64, len(samples))
	for i := range out {
		out[i] = make([]float64, 0, n)
	}
	for row := 0; row < n; row++ {
		complete := true
		for _, s := range samples {
			if math.IsNaN(s[row]) {
				complete = false
				break
			}
		}
		if !complete {
			continue
		}
		for i, s := range samples {
			out[i] = append(out[i], s[row])
		}
	}
	return out, nil
}
