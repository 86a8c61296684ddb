package engine

import (
	"math"

	"statkit/domain/stats"
	"statkit/internal/errors"
)

// Wilcoxon computes the Wilcoxon signed-rank test for two paired samples.
// Zero differences are discarded before ranking and the p-value comes from
// the tie-corrected normal approximation of the signed-rank distribution.
// The reported statistic is the smaller rank sum for two-sided tests and
// the positive rank sum for directional ones.
func (e *Engine) Wilcoxon(x, y []float64, alternative stats.Alternative) (w, p float64, err error) {
	if len(x) != len(y) {
		return 0, 0, errors.InvalidInput("wilcoxon requires samples of equal length")
	}
	if !alternative.Valid() {
		return 0, 0, errors.InvalidInput("alternative must be one of two-sided, less, greater")
	}

	diffs := make([]float64, 0, len(x))
	for i := range x {
		if d := x[i] - y[i]; d != 0 {
			diffs = append(diffs, d)
		}
	}
	n := len(diffs)
	if n < 1 {
		return 0, 0, errors.InsufficientData("wilcoxon requires at least one non-zero difference")
	}

	absDiffs := make([]float64, n)
	for i, d := range diffs {
		absDiffs[i] = math.Abs(d)
	}
	ranks, tieSizes := midRanks(absDiffs)

	rPlus, rMinus := 0.0, 0.0
	for i, d := range diffs {
		if d > 0 {
			rPlus += ranks[i]
		} else {
			rMinus += ranks[i]
		}
	}

	fn := float64(n)
	mu := fn * (fn + 1) / 4.0
	variance := fn*(fn+1)*(2*fn+1)/24.0 - tieCorrectionSum(tieSizes)/48.0
	if variance <= 0 {
		return 0, 0, errors.InvalidInput("wilcoxon variance collapsed to zero (all differences tied)")
	}

	z := (rPlus - mu) / math.Sqrt(variance)
	p = e.dist.NormalPValue(z, alternative)

	w = rPlus
	if alternative == stats.TwoSided {
		w = math.Min(rPlus, rMinus)
	}
	return w, p, nil
}

// MannWhitneyU computes the Mann-Whitney U rank test for two independent
// samples, using the tie-corrected normal approximation with continuity
// correction. The reported statistic is U for the first sample.
func (e *Engine) MannWhitneyU(x, y []float64, alternative stats.Alternative) (u, p float64, err error) {
	n1, n2 := len(x), len(y)
	if n1 < 1 || n2 < 1 {
		return 0, 0, errors.InsufficientData("mann-whitney requires non-empty samples")
	}
	if !alternative.Valid() {
		return 0, 0, errors.InvalidInput("alternative must be one of two-sided, less, greater")
	}

	combined := make([]float64, 0, n1+n2)
	combined = append(combined, x...)
	combined = append(combined, y...)
	ranks, tieSizes := midRanks(combined)

	r1 := 0.0
	for i := 0; i < n1; i++ {
		r1 += ranks[i]
	}

	fn1, fn2 := float64(n1), float64(n2)
	n := fn1 + fn2
	u = r1 - fn1*(fn1+1)/2.0

	mu := fn1 * fn2 / 2.0
	variance := fn1 * fn2 / 12.0 * ((n + 1) - tieCorrectionSum(tieSizes)/(n*(n-1)))
	if variance <= 0 {
		return 0, 0, errors.InvalidInput("mann-whitney variance collapsed to zero (all values tied)")
	}
	sigma := math.Sqrt(variance)

	// Continuity correction pulls the statistic half a unit toward the mean
	switch alternative {
	case stats.Greater:
		p = e.dist.NormalSurvival((u - mu - 0.5) / sigma)
	case stats.Less:
		p = 1 - e.dist.NormalSurvival((u-mu+0.5)/sigma)
	default:
		z := u - mu
		if z > 0 {
			z -= 0.5
		} else if z < 0 {
			z += 0.5
		}
		p = math.Min(2*e.dist.NormalSurvival(math.Abs(z)/sigma), 1.0)
	}
	return u, p, nil
}

// Friedman computes the Friedman chi-square test for repeated measures
// across three or more treatments. Samples are the treatment columns and
// must be row-aligned.
func (e *Engine) Friedman(samples ...[]float64) (chi2, p float64, err error) {
	k := len(samples)
	if k < 3 {
		return 0, 0, errors.InsufficientData("friedman requires at least 3 treatments")
	}
	n := len(samples[0])
	for _, s := range samples[1:] {
		if len(s) != n {
			return 0, 0, errors.InvalidInput("friedman requires row-aligned treatment columns")
		}
	}
	if n < 2 {
		return 0, 0, errors.InsufficientData("friedman requires at least 2 blocks")
	}

	// Rank each block across treatments, tracking ties for the correction
	rankSums := make([]float64, k)
	tieSum := 0.0
	row := make([]float64, k)
	for i := 0; i < n; i++ {
		for j := 0; j < k; j++ {
			row[j] = samples[j][i]
		}
		ranks, tieSizes := midRanks(row)
		for j := 0; j < k; j++ {
			rankSums[j] += ranks[j]
		}
		tieSum += tieCorrectionSum(tieSizes)
	}

	fn, fk := float64(n), float64(k)
	ssbn := 0.0
	for _, r := range rankSums {
		ssbn += r * r
	}

	correction := 1 - tieSum/(fk*(fk*fk-1)*fn)
	if correction <= 0 {
		return 0, 0, errors.InvalidInput("friedman is undefined when every block is fully tied")
	}

	chi2 = (12.0*ssbn/(fn*fk*(fk+1)) - 3*fn*(fk+1)) / correction
	return chi2, e.dist.ChiSquareSurvival(chi2, fk-1), nil
}

// KruskalWallis computes the Kruskal-Wallis H test for two or more
// independent groups, with tie correction.
func (e *Engine) KruskalWallis(samples ...[]float64) (h, p float64, err error) {
	k := len(samples)
	if k < 2 {
		return 0, 0, errors.InsufficientData("kruskal-wallis requires at least 2 groups")
	}

	total := 0
	for _, s := range samples {
		if len(s) < 1 {
			return 0, 0, errors.InsufficientData("kruskal-wallis requires non-empty groups")
		}
		total += len(s)
	}

	combined := make([]float64, 0, total)
	for _, s := range samples {
		combined = append(combined, s...)
	}
	ranks, tieSizes := midRanks(combined)

	fn := float64(total)
	h = 0.0
	offset := 0
	for _, s := range samples {
		r := 0.0
		for i := range s {
			r += ranks[offset+i]
		}
		offset += len(s)
		h += r * r / float64(len(s))
	}
	h = 12.0/(fn*(fn+1))*h - 3*(fn+1)

	correction := 1 - tieCorrectionSum(tieSizes)/(fn*fn*fn-fn)
	if correction <= 0 {
		return 0, 0, errors.InvalidInput("kruskal-wallis is undefined when all values are identical")
	}
	h /= correction

	return h, e.dist.ChiSquareSurvival(h, float64(k-1)), nil
}
