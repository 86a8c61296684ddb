// Package engine implements the hypothesis-test routines. Each routine
// takes NaN-free samples positionally, returns the test statistic and its
// p-value, and delegates tail probabilities to gonum's distributions.
package engine

import (
	"math"
	"sort"

	"github.com/montanaflynn/stats"
)

// Engine provides the statistical test routines
type Engine struct {
	dist *Distributions
}

// NewEngine creates a new test engine
func NewEngine() *Engine {
	return &Engine{dist: NewDistributions()}
}

// ============================================================================
// SHARED HELPERS
// ============================================================================

// sampleVariance returns the unbiased (n-1) variance
func sampleVariance(data []float64) float64 {
	v, err := stats.SampleVariance(data)
	if err != nil {
		return math.NaN()
	}
	return v
}

func sampleMean(data []float64) float64 {
	m, err := stats.Mean(data)
	if err != nil {
		return math.NaN()
	}
	return m
}

func sampleMedian(data []float64) float64 {
	m, err := stats.Median(data)
	if err != nil {
		return math.NaN()
	}
	return m
}

// trimBoth returns a sorted copy of the data with the given proportion
// cut from each tail. Small samples where nothing is cut come back whole.
func trimBoth(data []float64, proportion float64) []float64 {
	n := len(data)
	cut := int(float64(n) * proportion)

	sorted := make([]float64, n)
	copy(sorted, data)
	sort.Float64s(sorted)
	if n-2*cut < 1 {
		return sorted
	}
	return sorted[cut : n-cut]
}

// midRanks assigns 1-based ranks to the values, averaging ranks across
// tied groups. Also returns the tie-size counts needed for the variance
// corrections of the rank tests.
func midRanks(values []float64) (ranks []float64, tieSizes []int) {
	n := len(values)
	order := make([]int, n)
	for i := range order {
		order[i] = i
	}
	sort.Slice(order, func(a, b int) bool { return values[order[a]] < values[order[b]] })

	ranks = make([]float64, n)
	i := 0
	for i < n {
		j := i
		for j+1 < n && values[order[j+1]] == values[order[i]] {
			j++
		}
		// ranks i+1 .. j+1 share the average rank
		avg := float64(i+j+2) / 2.0
		for k := i; k <= j; k++ {
			ranks[order[k]] = avg
		}
		if j > i {
			tieSizes = append(tieSizes, j-i+1)
		}
		i = j + 1
	}
	return ranks, tieSizes
}

// tieCorrectionSum computes sum(t^3 - t) over tied groups
func tieCorrectionSum(tieSizes []int) float64 {
	total := 0.0
	for _, t := range tieSizes {
		ft := float64(t)
		total += ft*ft*ft - ft
	}
	return total
}
