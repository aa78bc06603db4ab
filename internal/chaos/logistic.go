// Package chaos implements the logistic-map bit source.
package chaos

import (
	"math"

	"github.com/san-kum/collatzrng/internal/rng"
)

const (
	// R is the fixed rate parameter, well above the onset of chaos.
	R = 3.99

	// ChaosThreshold is the approximate rate where period doubling gives way
	// to chaos.
	ChaosThreshold = 3.57

	// MinX and MaxX clamp the initial value away from the fixed points.
	MinX = 0.001
	MaxX = 0.999

	// Modulus and Denominator normalize an integer seed into (0,1).
	Modulus     = 997
	Denominator = 999.0
)

// Logistic iterates x <- R*x*(1-x) and thresholds each value at 0.5.
type Logistic struct {
	x       float64
	initial float64
	steps   uint64
}

// New clamps x0 into [MinX, MaxX].
func New(x0 float64) (*Logistic, error) {
	if math.IsNaN(x0) || math.IsInf(x0, 0) {
		return nil, rng.ErrInvalidState
	}
	x := math.Max(MinX, math.Min(MaxX, x0))
	return &Logistic{x: x, initial: x}, nil
}

// FromSeed normalizes a positive integer seed as (seed mod 997 + 1) / 999.
func FromSeed(seed int64) (*Logistic, error) {
	if err := rng.CheckSeed(seed); err != nil {
		return nil, err
	}
	return New(Normalize(seed))
}

// Normalize maps a positive seed into (0,1).
func Normalize(seed int64) float64 {
	return float64(seed%Modulus+1) / Denominator
}

// Map applies one logistic iteration at rate r.
func Map(r, x float64) float64 {
	return r * x * (1 - x)
}

// Step advances the map once and returns the new value.
func (l *Logistic) Step() float64 {
	l.x = Map(R, l.x)
	l.steps++
	return l.x
}

// NextBit advances the map and returns 1 when the new value is >= 0.5.
func (l *Logistic) NextBit() uint8 {
	if l.Step() >= 0.5 {
		return 1
	}
	return 0
}

// Bits emits n bits.
func (l *Logistic) Bits(n int) rng.Bits {
	return rng.Take(l, n)
}

// Reset restores the recorded initial value.
func (l *Logistic) Reset() {
	l.x = l.initial
	l.steps = 0
}

func (l *Logistic) X() float64       { return l.x }
func (l *Logistic) Initial() float64 { return l.initial }
func (l *Logistic) Steps() uint64    { return l.steps }

// Orbit returns the next n values without thresholding.
func (l *Logistic) Orbit(n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = l.Step()
	}
	return out
}

var _ rng.BitSource = (*Logistic)(nil)
