package engine

import (
	"math"

	"gonum.org/v1/gonum/stat/distuv"

	"statkit/domain/stats"
)

// Distributions provides unified access to the sampling distributions the
// test routines draw their p-values from. All tail probabilities are
// delegated to gonum's distuv implementations.
type Distributions struct{}

// NewDistributions creates a new distributions utility
func NewDistributions() *Distributions {
	return &Distributions{}
}

// TPValue computes the p-value for a t-statistic under the Student's
// t-distribution with the given degrees of freedom, honoring the
// alternative-hypothesis selector.
func (d *Distributions) TPValue(tStatistic, degreesOfFreedom float64, alternative stats.Alternative) float64 {
	if degreesOfFreedom <= 0 {
		return 1.0
	}

	tDist := distuv.StudentsT{Mu: 0, Sigma: 1, Nu: degreesOfFreedom}
	switch alternative {
	case stats.Less:
		return tDist.CDF(tStatistic)
	case stats.Greater:
		return 1 - tDist.CDF(tStatistic)
	default:
		return 2 * (1 - tDist.CDF(math.Abs(tStatistic)))
	}
}

// FSurvival computes the upper-tail probability of the F-distribution
// (ANOVA, Levene)
func (d *Distributions) FSurvival(fStatistic float64, df1, df2 float64) float64 {
	if df1 <= 0 || df2 <= 0 {
		return 1.0
	}

	fDist := distuv.F{D1: df1, D2: df2}
	return 1 - fDist.CDF(fStatistic)
}

// ChiSquareSurvival computes the upper-tail probability of the chi-square
// distribution (Friedman, Kruskal-Wallis)
func (d *Distributions) ChiSquareSurvival(chiSquare float64, degreesOfFreedom float64) float64 {
	if degreesOfFreedom <= 0 {
		return 1.0
	}

	chiDist := distuv.ChiSquared{K: degreesOfFreedom}
	return 1 - chiDist.CDF(chiSquare)
}

// NormalPValue computes the p-value for a z-statistic under the standard
// normal, honoring the alternative-hypothesis selector.
func (d *Distributions) NormalPValue(z float64, alternative stats.Alternative) float64 {
	switch alternative {
	case stats.Less:
		return distuv.UnitNormal.CDF(z)
	case stats.Greater:
		return 1 - distuv.UnitNormal.CDF(z)
	default:
		p := 2 * (1 - distuv.UnitNormal.CDF(math.Abs(z)))
		return math.Min(p, 1.0)
	}
}

// NormalSurvival computes the upper-tail probability of the standard normal
func (d *Distributions) NormalSurvival(z float64) float64 {
	return 1 - distuv.UnitNormal.CDF(z)
}

// NormalQuantile computes the standard normal quantile (inverse CDF)
func (d *Distributions) NormalQuantile(p float64) float64 {
	return distuv.UnitNormal.Quantile(p)
}
