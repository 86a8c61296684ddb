package engine

import (
	"math"

	"statkit/domain/stats"
	"statkit/internal/errors"
)

// trimProportion is the fraction cut from each tail for the trimmed
// centering variant, matching the conventional default.
const trimProportion = 0.05

// Levene computes Levene's test for equality of variances across two or
// more groups. The center selector picks the original Levene formulation
// (mean), the Brown-Forsythe variant (median), or trimmed centering for
// heavy-tailed data: each sorted group loses trimProportion from both
// tails before the deviations are formed, and the trimmed lengths carry
// through to the degrees of freedom. The statistic follows an F(k-1, N-k)
// distribution under the null.
func (e *Engine) Levene(center stats.Center, samples ...[]float64) (w, p float64, err error) {
	k := len(samples)
	if k < 2 {
		return 0, 0, errors.InsufficientData("levene requires at least 2 groups")
	}
	if !center.Valid() {
		return 0, 0, errors.InvalidInput("levene center must be one of mean, median, trimmed")
	}

	if center == stats.CenterTrimmed {
		trimmed := make([][]float64, k)
		for i, s := range samples {
			trimmed[i] = trimBoth(s, trimProportion)
		}
		samples = trimmed
	}

	total := 0
	for _, s := range samples {
		if len(s) < 2 {
			return 0, 0, errors.InsufficientData("levene requires at least 2 observations per group")
		}
		total += len(s)
	}

	// Absolute deviations from each group's center
	z := make([][]float64, k)
	for i, s := range samples {
		var c float64
		switch center {
		case stats.CenterMedian:
			c = sampleMedian(s)
		default:
			// trimmed groups were already cut, so their center is the
			// plain mean of what remains
			c = sampleMean(s)
		}

		z[i] = make([]float64, len(s))
		for j, v := range s {
			z[i][j] = math.Abs(v - c)
		}
	}

	groupMeans := make([]float64, k)
	grand := 0.0
	for i := range z {
		groupMeans[i] = sampleMean(z[i])
		grand += groupMeans[i] * float64(len(z[i]))
	}
	grand /= float64(total)

	// One-way ANOVA over the deviations
	between := 0.0
	for i := range z {
		d := groupMeans[i] - grand
		between += float64(len(z[i])) * d * d
	}

	within := 0.0
	for i := range z {
		for _, v := range z[i] {
			d := v - groupMeans[i]
			within += d * d
		}
	}
	if within == 0 {
		return 0, 0, errors.InvalidInput("levene is undefined when all within-group deviations are zero")
	}

	df1 := float64(k - 1)
	df2 := float64(total - k)
	w = (df2 / df1) * (between / within)

	return w, e.dist.FSurvival(w, df1, df2), nil
}
