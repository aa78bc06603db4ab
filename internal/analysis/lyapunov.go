package analysis

import (
	"math"

	"github.com/san-kum/collatzrng/internal/chaos"
)

// LogisticLyapunov estimates the Lyapunov exponent of the logistic map at
// rate r as the mean of ln|r(1-2x)| over n iterations, after discarding
// transient iterations.
func LogisticLyapunov(r, x0 float64, transient, n int) float64 {
	if n <= 0 {
		return 0
	}

	x := x0
	for i := 0; i < transient; i++ {
		x = chaos.Map(r, x)
	}

	sumLog := 0.0
	count := 0
	for i := 0; i < n; i++ {
		d := math.Abs(r * (1 - 2*x))
		if d > 0 {
			sumLog += math.Log(d)
			count++
		}
		x = chaos.Map(r, x)
	}

	if count == 0 {
		return 0
	}
	return sumLog / float64(count)
}

// LyapunovSeparation estimates the same exponent with the trajectory
// separation method: two orbits start perturbation apart and are pulled
// back to that distance after every step.
func LyapunovSeparation(r, x0, perturbation float64, n int) float64 {
	if n <= 0 || perturbation <= 0 {
		return 0
	}

	x := x0
	xp := x0 + perturbation
	d0 := perturbation

	sumLog := 0.0
	count := 0
	for i := 0; i < n; i++ {
		x = chaos.Map(r, x)
		xp = chaos.Map(r, xp)

		sep := math.Abs(xp - x)
		if sep > 0 {
			sumLog += math.Log(sep / d0)
			count++
		} else {
			sep = d0
		}

		// Renormalize
		xp = x + (xp-x)*d0/sep
		if xp == x {
			xp = x + d0
		}
	}

	if count == 0 {
		return 0
	}
	return sumLog / float64(count)
}

// LyapunovSweep evaluates LogisticLyapunov at steps rates across
// [rMin, rMax].
func LyapunovSweep(rMin, rMax float64, steps int, x0 float64, transient, n int) []Point {
	if steps <= 1 {
		steps = 2
	}
	dr := (rMax - rMin) / float64(steps-1)

	out := make([]Point, steps)
	for i := range out {
		r := rMin + float64(i)*dr
		out[i] = Point{X: r, Y: LogisticLyapunov(r, x0, transient, n)}
	}
	return out
}

// Point is one sample of a curve.
type Point struct {
	X, Y float64
}
