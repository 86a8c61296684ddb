package engine

import (
	"math"

	"statkit/domain/stats"
	"statkit/internal/errors"
)

// TTestInd computes the two-sample t-test for independent samples. With
// equalVar the classic pooled-variance Student form is used; otherwise
// Welch's unequal-variance form with Welch-Satterthwaite degrees of
// freedom.
func (e *Engine) TTestInd(x, y []float64, equalVar bool, alternative stats.Alternative) (t, p float64, err error) {
	if len(x) < 2 || len(y) < 2 {
		return 0, 0, errors.InsufficientData("t-test requires at least 2 observations per sample")
	}
	if !alternative.Valid() {
		return 0, 0, errors.InvalidInput("alternative must be one of two-sided, less, greater")
	}

	n1, n2 := float64(len(x)), float64(len(y))
	mean1, mean2 := sampleMean(x), sampleMean(y)
	var1, var2 := sampleVariance(x), sampleVariance(y)

	var se, df float64
	if equalVar {
		pooled := ((n1-1)*var1 + (n2-1)*var2) / (n1 + n2 - 2)
		se = math.Sqrt(pooled * (1/n1 + 1/n2))
		df = n1 + n2 - 2
	} else {
		vn1, vn2 := var1/n1, var2/n2
		se = math.Sqrt(vn1 + vn2)
		df = (vn1 + vn2) * (vn1 + vn2) / (vn1*vn1/(n1-1) + vn2*vn2/(n2-1))
	}
	if se == 0 {
		return 0, 0, errors.InvalidInput("t-test is undefined for zero-variance samples")
	}

	t = (mean1 - mean2) / se
	return t, e.dist.TPValue(t, df, alternative), nil
}

// TTestRel computes the paired t-test over two aligned samples
func (e *Engine) TTestRel(x, y []float64, alternative stats.Alternative) (t, p float64, err error) {
	if len(x) != len(y) {
		return 0, 0, errors.InvalidInput("paired t-test requires samples of equal length")
	}
	if len(x) < 2 {
		return 0, 0, errors.InsufficientData("paired t-test requires at least 2 pairs")
	}
	if !alternative.Valid() {
		return 0, 0, errors.InvalidInput("alternative must be one of two-sided, less, greater")
	}

	n := float64(len(x))
	diffs := make([]float64, len(x))
	for i := range x {
		diffs[i] = x[i] - y[i]
	}

	meanDiff := sampleMean(diffs)
	sdDiff := math.Sqrt(sampleVariance(diffs))
	if sdDiff == 0 {
		return 0, 0, errors.InvalidInput("paired t-test is undefined when all differences are equal")
	}

	t = meanDiff / (sdDiff / math.Sqrt(n))
	return t, e.dist.TPValue(t, n-1, alternative), nil
}
