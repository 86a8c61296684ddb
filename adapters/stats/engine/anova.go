package engine

import (
	"statkit/internal/errors"
)

// ANOVAOneWay computes the one-way analysis of variance F statistic over
// two or more independent groups
func (e *Engine) ANOVAOneWay(samples ...[]float64) (f, p float64, err error) {
	k := len(samples)
	if k < 2 {
		return 0, 0, errors.InsufficientData("anova requires at least 2 groups")
	}

	total := 0
	grand := 0.0
	for _, s := range samples {
		if len(s) < 2 {
			return 0, 0, errors.InsufficientData("anova requires at least 2 observations per group")
		}
		total += len(s)
		for _, v := range s {
			grand += v
		}
	}
	grand /= float64(total)

	between, within := 0.0, 0.0
	for _, s := range samples {
		mean := sampleMean(s)
		d := mean - grand
		between += float64(len(s)) * d * d
		for _, v := range s {
			dv := v - mean
			within += dv * dv
		}
	}
	if within == 0 {
		return 0, 0, errors.InvalidInput("anova is undefined when all groups have zero within-group variance")
	}

	df1 := float64(k - 1)
	df2 := float64(total - k)
	f = (between / df1) / (within / df2)

	return f, e.dist.FSurvival(f, df1, df2), nil
}
