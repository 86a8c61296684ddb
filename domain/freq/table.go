// Package freq builds frequency-distribution tables from frame columns.
package freq

import (
	"fmt"
	"math"
	"sort"
	"strconv"

	"statkit/domain/dataset"
)

// Row is one category of a frequency table. The four measures are aligned by
// category key and ordered: raw-count input keeps the caller's row order,
// categorical input is sorted by key ascending.
type Row struct {
	Key                string  `json:"key"`
	Frequency          float64 `json:"frequency"`
	Relative           float64 `json:"relative_frequency"`
	Cumulative         float64 `json:"cumulative_frequency"`
	CumulativeRelative float64 `json:"cumulative_relative_frequency"`
}

// Table is a frequency-distribution table
type Table struct {
	Rows []Row `json:"rows"`
}

// TotalFrequency returns the sum of absolute frequencies, skipping
// missing counts
func (t *Table) TotalFrequency() float64 {
	total := 0.0
	for _, row := range t.Rows {
		if !math.IsNaN(row.Frequency) {
			total += row.Frequency
		}
	}
	return total
}

// Build produces the frequency-distribution table for one frame column.
//
// With countsSupplied the column is taken as a ready sequence of frequency
// counts and the caller's row order is preserved (keys are row positions).
// Otherwise the column holds raw categorical observations: values are
// counted and the categories sorted ascending. Relative frequencies are
// normalized by the total; a zero total leaves them NaN.
func Build(f *dataset.Frame, column string, countsSupplied bool) (*Table, error) {
	if countsSupplied {
		counts, err := f.Numeric(column)
		if err != nil {
			return nil, err
		}
		keys := make([]string, len(counts))
		for i := range counts {
			keys[i] = strconv.Itoa(i)
		}
		return FromCounts(keys, counts)
	}

	labels, err := f.Categorical(column)
	if err != nil {
		return nil, err
	}

	counts := make(map[string]float64)
	for _, label := range labels {
		if label == "" {
			continue // missing observation
		}
		counts[label]++
	}

	keys := make([]string, 0, len(counts))
	for key := range counts {
		keys = append(keys, key)
	}
	sort.Slice(keys, func(i, j int) bool { return keyLess(keys[i], keys[j]) })

	ordered := make([]float64, len(keys))
	for i, key := range keys {
		ordered[i] = counts[key]
	}
	return FromCounts(keys, ordered)
}

// FromCounts builds the table from pre-counted frequencies in the given
// order. Keys and counts must align. Missing counts are skipped when
// totalling, so only their own rows carry undefined measures.
func FromCounts(keys []string, counts []float64) (*Table, error) {
	if len(keys) != len(counts) {
		return nil, fmt.Errorf("keys and counts must align: got %d keys, %d counts", len(keys), len(counts))
	}

	table := &Table{Rows: make([]Row, 0, len(counts))}
	if len(counts) == 0 {
		return table, nil
	}

	total := 0.0
	for _, c := range counts {
		if !math.IsNaN(c) {
			total += c
		}
	}

	cumulative := 0.0
	cumulativeRelative := 0.0
	for i, c := range counts {
		relative := math.NaN()
		rowCumulative := math.NaN()
		rowCumulativeRelative := math.NaN()
		if !math.IsNaN(c) {
			cumulative += c
			rowCumulative = cumulative
			if total != 0 {
				relative = c / total
				cumulativeRelative += relative
				rowCumulativeRelative = cumulativeRelative
			}
		}

		table.Rows = append(table.Rows, Row{
			Key:                keys[i],
			Frequency:          c,
			Relative:           relative,
			Cumulative:         rowCumulative,
			CumulativeRelative: rowCumulativeRelative,
		})
	}
	return table, nil
}

// keyLess orders keys numerically when both parse, lexically otherwise, so
// numeric category codes sort as numbers rather than strings.
func keyLess(a, b string) bool {
	fa, errA := strconv.ParseFloat(a, 64)
	fb, errB := strconv.ParseFloat(b, 64)
	if errA == nil && errB == nil {
		return fa < fb
	}
	return a < b
}
