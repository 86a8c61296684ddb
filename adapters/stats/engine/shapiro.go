package engine

import (
	"math"
	"sort"

	"statkit/internal/errors"
)

// ShapiroWilk computes the Shapiro-Wilk W statistic and its p-value for a
// single sample, following Royston's AS R94 approximation (the same
// algorithm behind R's shapiro.test and scipy's shapiro). Requires at
// least 3 observations and a non-degenerate sample.
func (e *Engine) ShapiroWilk(sample []float64) (w, p float64, err error) {
	n := len(sample)
	if n < 3 {
		return 0, 0, errors.InsufficientData("shapiro-wilk requires at least 3 observations")
	}

	x := make([]float64, n)
	copy(x, sample)
	sort.Float64s(x)

	if x[n-1] == x[0] {
		return 0, 0, errors.InvalidInput("shapiro-wilk requires a non-degenerate sample (zero range)")
	}

	a := e.shapiroWeights(n)

	mean := sampleMean(x)
	num, sse := 0.0, 0.0
	for i, v := range x {
		num += a[i] * v
		d := v - mean
		sse += d * d
	}
	w = num * num / sse
	if w > 1 {
		w = 1
	}

	return w, e.shapiroPValue(w, n), nil
}

// shapiroWeights builds the normalized coefficient vector a for sample
// size n (Royston 1995, eq. for c_n and c_{n-1} polynomials in 1/sqrt(n))
func (e *Engine) shapiroWeights(n int) []float64 {
	a := make([]float64, n)
	if n == 3 {
		a[0] = -math.Sqrt(0.5)
		a[2] = math.Sqrt(0.5)
		return a
	}

	// Expected normal order statistics via the Blom approximation
	m := make([]float64, n)
	sumM2 := 0.0
	for i := 0; i < n; i++ {
		m[i] = e.dist.NormalQuantile((float64(i+1) - 0.375) / (float64(n) + 0.25))
		sumM2 += m[i] * m[i]
	}

	rsn := 1.0 / math.Sqrt(float64(n))
	an := polyval([]float64{-2.706056, 4.434685, -2.071190, -0.147981, 0.221157, 0}, rsn) + m[n-1]/math.Sqrt(sumM2)

	var phi float64
	tail := 1 // corrected coefficients at each end
	if n > 5 {
		tail = 2
		an1 := polyval([]float64{-3.582633, 5.682633, -1.752461, -0.293762, 0.042981, 0}, rsn) + m[n-2]/math.Sqrt(sumM2)
		phi = (sumM2 - 2*m[n-1]*m[n-1] - 2*m[n-2]*m[n-2]) / (1 - 2*an*an - 2*an1*an1)
		a[n-1], a[0] = an, -an
		a[n-2], a[1] = an1, -an1
	} else {
		phi = (sumM2 - 2*m[n-1]*m[n-1]) / (1 - 2*an*an)
		a[n-1], a[0] = an, -an
	}

	for i := tail; i < n-tail; i++ {
		a[i] = m[i] / math.Sqrt(phi)
	}
	return a
}

// shapiroPValue transforms W to a p-value using Royston's normalizing
// approximations for the three sample-size regimes
func (e *Engine) shapiroPValue(w float64, n int) float64 {
	if n == 3 {
		// Exact for n=3
		p := 6.0 / math.Pi * (math.Asin(math.Sqrt(w)) - math.Asin(math.Sqrt(0.75)))
		return math.Max(0, math.Min(1, p))
	}

	oneMinusW := math.Max(1-w, 1e-15)

	var z float64
	if n <= 11 {
		fn := float64(n)
		g := -2.273 + 0.459*fn
		mu := 0.5440 - 0.39978*fn + 0.025054*fn*fn - 0.0006714*fn*fn*fn
		sigma := math.Exp(1.3822 - 0.77857*fn + 0.062767*fn*fn - 0.0020322*fn*fn*fn)
		z = (-math.Log(g-math.Log(oneMinusW)) - mu) / sigma
	} else {
		u := math.Log(float64(n))
		mu := -1.5861 - 0.31082*u - 0.083751*u*u + 0.0038915*u*u*u
		sigma := math.Exp(-0.4803 - 0.082676*u + 0.0030302*u*u)
		z = (math.Log(oneMinusW) - mu) / sigma
	}
	return e.dist.NormalSurvival(z)
}

// polyval evaluates a polynomial with coefficients from highest order down
func polyval(coeffs []float64, x float64) float64 {
	result := 0.0
	for _, c := range coeffs {
		result = result*x + c
	}
	return result
}
