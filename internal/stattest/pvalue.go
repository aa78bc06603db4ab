package stattest

import "math"

// neutralP is returned when the approximation cannot be evaluated.
const neutralP = 0.5

// NormalCDF is the standard normal cumulative distribution function.
func NormalCDF(x float64) float64 {
	return 0.5 * (1 + math.Erf(x/math.Sqrt2))
}

// ChiSquarePValue approximates the upper tail of a chi-square distribution
// with df degrees of freedom.
//
// For x = chi/2 below k+1 (k = df/2) it sums the lower incomplete gamma
// series for at most 99 terms or until a term drops below 1e-10 and returns
// one minus the result. Larger x falls back to exp(-chi/(2 df)). The result
// is coarse and can fall slightly outside [0,1] for small df; callers
// compare it against Alpha as is.
func ChiSquarePValue(chi float64, df int) float64 {
	if chi <= 0 {
		return 1.0
	}

	k := float64(df) / 2
	x := chi / 2

	var p float64
	if x < k+1 {
		if k == 0 {
			return neutralP
		}
		sum := 0.0
		term := 1 / k
		for n := 1; n < 100; n++ {
			term *= x / (k + float64(n))
			sum += term
			if term < 1e-10 {
				break
			}
		}
		lg, _ := math.Lgamma(k + 1)
		p = 1 - math.Exp(-x+k*math.Log(x)-lg)*(1+sum)
	} else {
		if df <= 0 {
			return 0
		}
		p = math.Exp(-chi / (2 * float64(df)))
	}

	if math.IsNaN(p) || math.IsInf(p, 0) {
		return neutralP
	}
	return p
}
